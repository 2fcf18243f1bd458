package internal

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/kwkoo/quizrunner/internal/common"
	"github.com/kwkoo/quizrunner/internal/shutdown"
	"github.com/kwkoo/quizrunner/internal/source"
)

const reaperInterval = 60 * time.Second

type sessionEntry struct {
	session *common.Session
	expiry  time.Time
}

type SessionsConfig struct {
	Source         source.Source
	Random         common.RandomSource
	StatsPolicy    string
	DefaultSet     string
	SessionTimeout time.Duration
	SourceTimeout  time.Duration
}

// Sessions keeps one quiz session per browser session id. Nothing is
// persisted: idle sessions are reaped and everything is lost on restart.
type Sessions struct {
	mutex  sync.RWMutex
	all    map[string]*sessionEntry
	config SessionsConfig
	now    func() time.Time
}

func InitSessions(config SessionsConfig) *Sessions {
	log.Printf("session timeout set to %v", config.SessionTimeout)
	if config.Random == nil {
		config.Random = common.NewRandomSource(0)
	}
	return &Sessions{
		all:    make(map[string]*sessionEntry),
		config: config,
		now:    time.Now,
	}
}

// RunReaper expires idle sessions until shutdown.
func (s *Sessions) RunReaper() {
	ctx := shutdown.Context()
	defer shutdown.NotifyShutdownComplete()

	ticker := time.NewTicker(reaperInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Print("shutting down session reaper")
			return
		case <-ticker.C:
			s.expireSessions()
		}
	}
}

// Start loads a question set and replaces any session bound to id. An empty
// name selects the default set. On failure the previous session, if any, is
// left untouched.
func (s *Sessions) Start(ctx context.Context, id, name string) (*common.Session, error) {
	if name == "" {
		name = s.config.DefaultSet
	}
	set, err := s.LoadSet(ctx, name)
	if err != nil {
		return nil, err
	}
	session, err := common.NewSession(id, set, s.config.Random, s.config.StatsPolicy)
	if err != nil {
		return nil, err
	}

	s.mutex.Lock()
	s.all[id] = &sessionEntry{
		session: session,
		expiry:  s.now().Add(s.config.SessionTimeout),
	}
	s.mutex.Unlock()
	log.Printf("started session %s with question set %s (%d questions)", id, name, session.NumQuestions())
	return session, nil
}

// LoadSet fetches a question set without starting a session.
func (s *Sessions) LoadSet(ctx context.Context, name string) (common.QuestionSet, error) {
	if s.config.SourceTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.SourceTimeout)
		defer cancel()
	}
	return s.config.Source.Load(ctx, name)
}

// Get returns the session bound to id and extends its expiry.
func (s *Sessions) Get(id string) (*common.Session, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	entry, ok := s.all[id]
	if !ok {
		return nil, common.NewNoSessionError(id)
	}
	entry.expiry = s.now().Add(s.config.SessionTimeout)
	return entry.session, nil
}

func (s *Sessions) Delete(id string) {
	s.mutex.Lock()
	delete(s.all, id)
	s.mutex.Unlock()
}

func (s *Sessions) ListSets(ctx context.Context) ([]string, error) {
	lister, ok := s.config.Source.(source.Lister)
	if !ok {
		return []string{}, nil
	}
	return lister.List(ctx)
}

// GetAll is sorted by session id.
func (s *Sessions) GetAll() []common.SessionSummary {
	s.mutex.RLock()
	sessions := make([]*common.Session, 0, len(s.all))
	for _, entry := range s.all {
		sessions = append(sessions, entry.session)
	}
	s.mutex.RUnlock()

	summaries := make([]common.SessionSummary, len(sessions))
	for i, session := range sessions {
		summaries[i] = session.Summary()
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })
	return summaries
}

func (s *Sessions) expireSessions() {
	now := s.now()
	s.mutex.Lock()
	for id, entry := range s.all {
		if now.After(entry.expiry) {
			delete(s.all, id)
			log.Printf("expiring session %s", id)
		}
	}
	s.mutex.Unlock()
}
