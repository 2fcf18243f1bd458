package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/common-nighthawk/go-figure"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/kwkoo/configparser"
	"github.com/kwkoo/quizrunner/internal"
	"github.com/kwkoo/quizrunner/internal/api"
	"github.com/kwkoo/quizrunner/internal/common"
	"github.com/kwkoo/quizrunner/internal/logging"
	"github.com/kwkoo/quizrunner/internal/persistence"
	"github.com/kwkoo/quizrunner/internal/shutdown"
	"github.com/kwkoo/quizrunner/internal/source"
)

const (
	authRealm       = "Quiz Admin"
	shutdownTimeout = 10 * time.Second
)

//go:embed docroot/*
var content embed.FS

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("error loading .env: %v", err)
	}

	config := struct {
		Port           int    `default:"8080" usage:"HTTP listener port"`
		Docroot        string `usage:"HTML document root - will use the embedded docroot if not specified"`
		QuestionsDir   string `usage:"Directory containing <name>.json question sets - will use the embedded question sets if not specified"`
		DefaultSet     string `default:"questions" usage:"Question set loaded when the browser does not name one"`
		RemoteSource   string `usage:"Base URL serving <name>.json question sets, tried after Redis"`
		SourceTimeout  int    `default:"10" usage:"Seconds allowed for loading a question set"`
		RedisHost      string `usage:"Redis host and port - question banks are not persisted if not specified"`
		RedisPassword  string `usage:"Redis password"`
		AdminUser      string `default:"admin" usage:"Admin username"`
		AdminPassword  string `usage:"Admin password"`
		SessionTimeout int    `default:"1800" usage:"Seconds of inactivity before a quiz session is discarded"`
		StatsPolicy    string `default:"reveal" usage:"When statistics are recomputed - reveal or answer"`
		RandomSeed     int    `default:"0" usage:"Seed for shuffling alternatives - 0 seeds from the clock"`
		CommandRate    int    `default:"10" usage:"Websocket commands per second allowed per client - 0 disables the limit"`
		CommandBurst   int    `default:"20" usage:"Websocket command burst allowed per client"`
		CORSOrigins    string `usage:"Comma-separated origins allowed to call the REST API"`
		LogFile        string `usage:"Log file, rotated by size - logs only go to stderr if not specified"`
		LogMaxSize     int    `default:"10" usage:"Maximum log file size in megabytes"`
		LogMaxBackups  int    `default:"3" usage:"Number of rotated log files to keep"`
	}{}
	if err := configparser.Parse(&config); err != nil {
		log.Fatal(err)
	}

	logCloser := logging.Init(logging.Config{
		File:       config.LogFile,
		MaxSizeMB:  config.LogMaxSize,
		MaxBackups: config.LogMaxBackups,
	})
	if logCloser != nil {
		defer logCloser.Close()
	}

	figure.NewFigure("QUIZ RUNNER", "", true).Print()
	fmt.Println()

	statsPolicy, err := common.ParseStatsPolicy(config.StatsPolicy)
	if err != nil {
		log.Fatal(err)
	}

	shutdown.InitShutdownHandler()

	docroot, questions := filesystems(config.Docroot, config.QuestionsDir)

	persistenceEngine := persistence.InitRedis(config.RedisHost, config.RedisPassword)
	defer persistenceEngine.Close()
	waitCtx, cancelWait := context.WithTimeout(context.Background(), 30*time.Second)
	if err := persistenceEngine.WaitForRedis(waitCtx); err != nil {
		log.Printf("redis is not available, question sets will be loaded from the other sources: %v", err)
	}
	cancelWait()

	store := source.NewRedis(persistenceEngine)
	sources := []source.Source{}
	if persistenceEngine != nil {
		sources = append(sources, store)
	}
	if config.RemoteSource != "" {
		log.Printf("loading question sets from %s", config.RemoteSource)
		sources = append(sources, source.NewHTTP(config.RemoteSource, &http.Client{
			Timeout: time.Duration(config.SourceTimeout) * time.Second,
		}))
	}
	sources = append(sources, source.NewFile(questions))

	sessions := internal.InitSessions(internal.SessionsConfig{
		Source:         source.NewFallback(sources...),
		Random:         common.NewRandomSource(int64(config.RandomSeed)),
		StatsPolicy:    statsPolicy,
		DefaultSet:     config.DefaultSet,
		SessionTimeout: time.Duration(config.SessionTimeout) * time.Second,
		SourceTimeout:  time.Duration(config.SourceTimeout) * time.Second,
	})
	go sessions.RunReaper()

	hub := internal.NewHub(sessions, store, float64(config.CommandRate), config.CommandBurst)
	go hub.Run()

	auth := api.InitAuth(config.AdminUser, config.AdminPassword, authRealm)
	restApi := api.InitRestApi(hub)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Port),
		Handler:           newRouter(hub, restApi.Router(auth, splitOrigins(config.CORSOrigins)), docroot),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("listening on port %v", config.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("error starting web server: %v", err)
			shutdown.Trigger()
		}
	}()

	<-shutdown.Done()
	log.Print("shutting down web server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("error shutting down web server: %v", err)
	}
	cancel()

	if !shutdown.WaitForShutdown(shutdownTimeout) {
		os.Exit(1)
	}
}

// RealIP and Recoverer are installed here only, so they also cover the
// mounted REST API.
func newRouter(hub *internal.Hub, apiRouter http.Handler, docroot http.FileSystem) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP, middleware.Recoverer)
	r.Mount("/api", apiRouter)
	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		internal.ServeWs(hub, w, r)
	})
	r.Handle("/*", internal.InitCookieGenerator(http.FileServer(docroot)))
	return r
}

func filesystems(docrootDir, questionsDir string) (http.FileSystem, fs.FS) {
	var docroot http.FileSystem
	if len(docrootDir) > 0 {
		log.Printf("using %s in the file system as the document root", docrootDir)
		docroot = http.Dir(docrootDir)
	} else {
		log.Print("using the embedded filesystem as the docroot")
		subdir, err := fs.Sub(content, "docroot")
		if err != nil {
			log.Fatalf("could not get subdirectory: %v", err)
		}
		docroot = http.FS(subdir)
	}

	if len(questionsDir) > 0 {
		log.Printf("loading question sets from %s", questionsDir)
		return docroot, os.DirFS(questionsDir)
	}
	questions, err := fs.Sub(content, "docroot/questions")
	if err != nil {
		log.Fatalf("could not get question sets subdirectory: %v", err)
	}
	return docroot, questions
}

func splitOrigins(s string) []string {
	origins := []string{}
	for _, origin := range strings.Split(s, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
