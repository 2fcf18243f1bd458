package internal

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/kwkoo/quizrunner/internal/common"
	"github.com/kwkoo/quizrunner/internal/source"
)

// Keeps every question in document order.
type identitySource struct{}

func (identitySource) Intn(n int) int { return n - 1 }

type mapSource map[string]common.QuestionSet

func (m mapSource) Kind() string { return "map" }

func (m mapSource) Load(ctx context.Context, name string) (common.QuestionSet, error) {
	set, ok := m[name]
	if !ok {
		return common.QuestionSet{}, common.NewSourceUnavailableError(name, source.ErrNotFound)
	}
	return set, nil
}

func (m mapSource) List(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Question i has i+2 alternatives, the first one correct.
func testSet(title string, numQuestions int) common.QuestionSet {
	set := common.QuestionSet{Title: title}
	for i := 0; i < numQuestions; i++ {
		q := common.RawQuestion{
			ID:         i + 1,
			PromptText: "question",
		}
		for j := 0; j < 2+i%3; j++ {
			q.Alternatives = append(q.Alternatives, common.RawAlternative{
				Text:      string(rune('a' + j)),
				IsCorrect: j == 0,
			})
		}
		set.Questions = append(set.Questions, q)
	}
	return set
}

func newTestSessions(policy string) *Sessions {
	return InitSessions(SessionsConfig{
		Source: mapSource{
			"questions": testSet("Default", 2),
			"qpoo":      testSet("POO", 3),
			"broken": {Questions: []common.RawQuestion{{
				ID:           1,
				PromptText:   "no correct alternative",
				Alternatives: []common.RawAlternative{{Text: "a"}, {Text: "b"}},
			}}},
		},
		Random:         identitySource{},
		StatsPolicy:    policy,
		DefaultSet:     "questions",
		SessionTimeout: time.Minute,
		SourceTimeout:  time.Second,
	})
}

func TestSessionsStartUsesDefaultSet(t *testing.T) {
	sessions := newTestSessions(common.StatsOnReveal)

	session, err := sessions.Start(context.Background(), "s1", "")
	if err != nil {
		t.Fatalf("expected no error but got %v", err)
	}
	if session.Title() != "Default" {
		t.Errorf("expected the default set but got %q", session.Title())
	}

	got, err := sessions.Get("s1")
	if err != nil {
		t.Fatalf("expected no error but got %v", err)
	}
	if got != session {
		t.Error("expected Get to return the started session")
	}
}

func TestSessionsGetUnknown(t *testing.T) {
	sessions := newTestSessions(common.StatsOnReveal)

	_, err := sessions.Get("nobody")
	var noSession *common.NoSessionError
	if !errors.As(err, &noSession) {
		t.Errorf("expected NoSessionError but got %v", err)
	}
}

func TestSessionsFailedStartKeepsPreviousSession(t *testing.T) {
	sessions := newTestSessions(common.StatsOnReveal)
	ctx := context.Background()

	if _, err := sessions.Start(ctx, "s1", "qpoo"); err != nil {
		t.Fatalf("expected no error but got %v", err)
	}

	_, err := sessions.Start(ctx, "s1", "missing")
	var unavailable *common.SourceUnavailableError
	if !errors.As(err, &unavailable) {
		t.Errorf("expected SourceUnavailableError but got %v", err)
	}

	_, err = sessions.Start(ctx, "s1", "broken")
	var integrity *common.DataIntegrityError
	if !errors.As(err, &integrity) {
		t.Errorf("expected DataIntegrityError but got %v", err)
	}

	session, err := sessions.Get("s1")
	if err != nil {
		t.Fatalf("expected no error but got %v", err)
	}
	if session.Title() != "POO" {
		t.Errorf("expected the previous session to survive but got %q", session.Title())
	}
}

func TestSessionsExpiry(t *testing.T) {
	sessions := newTestSessions(common.StatsOnReveal)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	sessions.now = func() time.Time { return now }
	ctx := context.Background()

	sessions.Start(ctx, "idle", "")
	sessions.Start(ctx, "active", "")

	now = now.Add(45 * time.Second)
	if _, err := sessions.Get("active"); err != nil {
		t.Fatalf("expected no error but got %v", err)
	}

	now = now.Add(30 * time.Second)
	sessions.expireSessions()

	if _, err := sessions.Get("idle"); err == nil {
		t.Error("expected the idle session to have expired")
	}
	if _, err := sessions.Get("active"); err != nil {
		t.Errorf("expected the active session to survive but got %v", err)
	}
}

func TestSessionsGetAllSorted(t *testing.T) {
	sessions := newTestSessions(common.StatsOnReveal)
	ctx := context.Background()
	for _, id := range []string{"c", "a", "b"} {
		if _, err := sessions.Start(ctx, id, "qpoo"); err != nil {
			t.Fatalf("expected no error but got %v", err)
		}
	}

	all := sessions.GetAll()
	if len(all) != 3 {
		t.Fatalf("expected 3 sessions but got %d", len(all))
	}
	for i, id := range []string{"a", "b", "c"} {
		if all[i].ID != id {
			t.Errorf("expected session %s at position %d but got %s", id, i, all[i].ID)
		}
		if all[i].TotalQuestions != 3 {
			t.Errorf("expected 3 questions but got %d", all[i].TotalQuestions)
		}
	}

	sessions.Delete("b")
	if len(sessions.GetAll()) != 2 {
		t.Errorf("expected 2 sessions after delete but got %d", len(sessions.GetAll()))
	}
}

func TestSessionsListSets(t *testing.T) {
	sessions := newTestSessions(common.StatsOnReveal)

	names, err := sessions.ListSets(context.Background())
	if err != nil {
		t.Fatalf("expected no error but got %v", err)
	}
	expected := []string{"broken", "qpoo", "questions"}
	if len(names) != len(expected) {
		t.Fatalf("expected %v but got %v", expected, names)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("expected %v but got %v", expected, names)
			break
		}
	}
}
