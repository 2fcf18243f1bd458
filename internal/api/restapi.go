package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/kwkoo/quizrunner/internal/common"
	"github.com/kwkoo/quizrunner/internal/report"
	"github.com/kwkoo/quizrunner/internal/source"
)

// SessionCookie carries the browser's session id.
const SessionCookie = "quizsession"

const maxUploadSize = 1 << 20

type QuizApp interface {
	GetSessions() []common.SessionSummary
	DeleteSession(string)
	GetResult(string) (common.FinalResultView, error)
	ListQuestionSets(context.Context) ([]string, error)
	GetQuestionSet(context.Context, string) (common.QuestionSet, error)
	SaveQuestionSet(context.Context, string, common.QuestionSet) error
	DeleteQuestionSet(context.Context, string) error
}

type RestApi struct {
	hub QuizApp

	// only used to validate uploads
	random common.RandomSource
}

func InitRestApi(hub QuizApp) *RestApi {
	return &RestApi{
		hub:    hub,
		random: common.NewRandomSource(0),
	}
}

// Router returns the handler to be mounted under /api. The result endpoints
// identify the caller by the session cookie, everything else requires admin
// credentials.
func (api *RestApi) Router(auth *Auth, corsOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(30 * time.Second))

	if len(corsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   corsOrigins,
			AllowedMethods:   []string{"GET", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/result", api.Result)
	r.Get("/result.pdf", api.ResultPDF)

	r.Group(func(ar chi.Router) {
		ar.Use(auth.BasicAuth)
		ar.Get("/questionsets", api.QuestionSets)
		ar.Route("/questionsets/{name}", func(qr chi.Router) {
			qr.Get("/", api.QuestionSet)
			qr.Put("/", api.PutQuestionSet)
			qr.Delete("/", api.DeleteQuestionSet)
		})
		ar.Get("/sessions", api.Sessions)
		ar.Delete("/sessions/{id}", api.DeleteSession)
	})

	return r
}

func (api *RestApi) Result(w http.ResponseWriter, r *http.Request) {
	result, ok := api.result(w, r)
	if !ok {
		return
	}
	writeJSON(w, result)
}

func (api *RestApi) ResultPDF(w http.ResponseWriter, r *http.Request) {
	result, ok := api.result(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="result.pdf"`)
	if err := report.WriteResult(w, result); err != nil {
		log.Printf("error generating result PDF: %v", err)
	}
}

func (api *RestApi) result(w http.ResponseWriter, r *http.Request) (common.FinalResultView, bool) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		streamResponse(w, http.StatusBadRequest, false, "missing session cookie")
		return common.FinalResultView{}, false
	}
	result, err := api.hub.GetResult(cookie.Value)
	if err != nil {
		streamResponse(w, statusFor(err), false, err.Error())
		return common.FinalResultView{}, false
	}
	return result, true
}

func (api *RestApi) QuestionSets(w http.ResponseWriter, r *http.Request) {
	names, err := api.hub.ListQuestionSets(r.Context())
	if err != nil {
		streamResponse(w, http.StatusInternalServerError, false, fmt.Sprintf("error listing question sets: %v", err))
		return
	}
	writeJSON(w, names)
}

// QuestionSet exports a set in its canonical form, whichever source it came
// from.
func (api *RestApi) QuestionSet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	set, err := api.hub.GetQuestionSet(r.Context(), name)
	if err != nil {
		streamResponse(w, statusFor(err), false, err.Error())
		return
	}
	writeJSON(w, set)
}

// PutQuestionSet only stores documents that would start a session
// successfully.
func (api *RestApi) PutQuestionSet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := source.ValidateName(name); err != nil {
		streamResponse(w, http.StatusBadRequest, false, err.Error())
		return
	}

	defer r.Body.Close()
	set, err := common.UnmarshalQuestionSet(http.MaxBytesReader(w, r.Body, maxUploadSize))
	if err != nil {
		streamResponse(w, http.StatusUnprocessableEntity, false, err.Error())
		return
	}
	if _, err := common.ProcessQuestions(api.random, set.Questions); err != nil {
		streamResponse(w, http.StatusUnprocessableEntity, false, err.Error())
		return
	}

	if err := api.hub.SaveQuestionSet(r.Context(), name, set); err != nil {
		streamResponse(w, http.StatusInternalServerError, false, fmt.Sprintf("error saving question set: %v", err))
		return
	}
	streamResponse(w, http.StatusOK, true, "")
}

func (api *RestApi) DeleteQuestionSet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := source.ValidateName(name); err != nil {
		streamResponse(w, http.StatusBadRequest, false, err.Error())
		return
	}
	if err := api.hub.DeleteQuestionSet(r.Context(), name); err != nil {
		streamResponse(w, http.StatusInternalServerError, false, fmt.Sprintf("error deleting question set: %v", err))
		return
	}
	streamResponse(w, http.StatusOK, true, "")
}

func (api *RestApi) Sessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, api.hub.GetSessions())
}

func (api *RestApi) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if len(id) == 0 {
		streamResponse(w, http.StatusBadRequest, false, "invalid session id")
		return
	}
	api.hub.DeleteSession(id)
	streamResponse(w, http.StatusOK, true, "")
}

func statusFor(err error) int {
	var (
		format    *common.SourceFormatError
		integrity *common.DataIntegrityError
		empty     *common.EmptyQuestionSetError
		noSession *common.NoSessionError
		missing   *common.SourceUnavailableError
	)
	switch {
	case errors.As(err, &format), errors.As(err, &integrity):
		return http.StatusUnprocessableEntity
	case errors.As(err, &empty):
		return http.StatusConflict
	case errors.As(err, &noSession), errors.As(err, &missing):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Add("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		log.Printf("error encoding response to JSON: %v", err)
	}
}

func streamResponse(w http.ResponseWriter, status int, success bool, errMsg string) {
	resp := struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}{
		Success: success,
		Error:   errMsg,
	}
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(&resp)
}
