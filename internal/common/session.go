package common

import (
	"sync"
)

// Session is one run through a question set. It exclusively owns the
// shuffled questions, the answer ledger, the navigation cursor and the cached
// statistics. All methods are safe for concurrent use.
type Session struct {
	mutex     sync.Mutex
	id        string
	title     string
	questions []WorkingQuestion
	ledger    *Ledger
	nav       *Navigator
	stats     SessionStats
	revealed  bool
	policy    string
}

// NewSession shuffles the alternatives of every question in set. No session
// is returned if any question fails validation.
func NewSession(id string, set QuestionSet, rs RandomSource, policy string) (*Session, error) {
	questions, err := ProcessQuestions(rs, set.Questions)
	if err != nil {
		return nil, err
	}
	if policy == "" {
		policy = StatsOnReveal
	}
	return &Session{
		id:        id,
		title:     set.Title,
		questions: questions,
		ledger:    NewLedger(),
		nav:       NewNavigator(len(questions)),
		stats:     SessionStats{Unanswered: len(questions)},
		policy:    policy,
	}, nil
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Title() string {
	return s.title
}

func (s *Session) NumQuestions() int {
	return len(s.questions)
}

func (s *Session) CurrentQuestion() (CurrentQuestionView, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.currentView()
}

// Select records the user's choice for the displayed question. Once the
// navigator is completed the last question stays on display and can still be
// answered.
func (s *Session) Select(index int) (*StatsView, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	qi, err := s.displayedIndex()
	if err != nil {
		return nil, err
	}
	q := s.questions[qi]
	if index < 0 || index >= q.NumAlternatives() {
		return nil, NewOutOfRangeError(index, q.NumAlternatives())
	}
	s.ledger.RecordAnswer(q.ID, index)

	if s.policy != StatsOnAnswer {
		return nil, nil
	}
	view := s.recompute()
	return &view, nil
}

func (s *Session) Next() (NavigationOutcome, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.nav.Next() {
		result, err := s.result()
		if err != nil {
			return NavigationOutcome{}, err
		}
		s.stats = result.Stats
		return NavigationOutcome{Result: &result}, nil
	}
	s.revealed = false
	view, err := s.currentView()
	if err != nil {
		return NavigationOutcome{}, err
	}
	return NavigationOutcome{Question: &view}, nil
}

func (s *Session) Previous() (CurrentQuestionView, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := s.nav.Previous(); err != nil {
		return CurrentQuestionView{}, err
	}
	s.revealed = false
	return s.currentView()
}

func (s *Session) JumpTo(i int) (CurrentQuestionView, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := s.nav.JumpTo(i); err != nil {
		return CurrentQuestionView{}, err
	}
	s.revealed = false
	return s.currentView()
}

// Reveal exposes the correct alternative of the displayed question and
// recomputes the statistics.
func (s *Session) Reveal() (RevealView, StatsView, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	qi, err := s.displayedIndex()
	if err != nil {
		return RevealView{}, StatsView{}, err
	}
	q := s.questions[qi]
	s.revealed = true

	reveal := RevealView{
		QuestionID:   q.ID,
		CorrectIndex: q.ShuffledCorrectIndex,
	}
	if record, ok := s.ledger.GetAnswer(q.ID); ok {
		selected := record.SelectedIndex
		reveal.SelectedIndex = &selected
	}
	return reveal, s.recompute(), nil
}

func (s *Session) Hide() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.revealed = false
}

// ResetStats clears every selection. The cursor stays where it is.
func (s *Session) ResetStats() StatsView {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.ledger.Clear()
	s.revealed = false
	return s.recompute()
}

// Stats returns the cached statistics as of the last recompute.
func (s *Session) Stats() StatsView {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return NewStatsView(s.stats)
}

// Result computes the final result regardless of the cursor position. The
// cached statistics are left alone; only completion through Next updates them.
func (s *Session) Result() (FinalResultView, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.result()
}

func (s *Session) Summary() SessionSummary {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return SessionSummary{
		ID:             s.id,
		Title:          s.title,
		Position:       s.nav.Position(),
		TotalQuestions: len(s.questions),
		Answered:       s.ledger.Len(),
		Complete:       s.nav.State() == NavigatorCompleted,
		Stats:          s.stats,
	}
}

func (s *Session) recompute() StatsView {
	s.stats = RecomputeStats(s.questions, s.ledger)
	return NewStatsView(s.stats)
}

func (s *Session) result() (FinalResultView, error) {
	percentage, err := FinalPercentage(s.questions, s.ledger)
	if err != nil {
		return FinalResultView{}, err
	}
	return FinalResultView{
		Title:          s.title,
		Percentage:     percentage,
		Stats:          RecomputeStats(s.questions, s.ledger),
		TotalQuestions: len(s.questions),
	}, nil
}

// Once completed the last question remains on display.
func (s *Session) displayedIndex() (int, error) {
	if len(s.questions) == 0 {
		return 0, NewEmptyQuestionSetError()
	}
	pos := s.nav.Position()
	if pos >= len(s.questions) {
		pos = len(s.questions) - 1
	}
	return pos, nil
}

func (s *Session) currentView() (CurrentQuestionView, error) {
	qi, err := s.displayedIndex()
	if err != nil {
		return CurrentQuestionView{}, err
	}
	q := s.questions[qi]

	alternatives := make([]AlternativeView, q.NumAlternatives())
	for i, alt := range q.Alternatives {
		alternatives[i] = AlternativeView{
			Label: alt.Label,
			Text:  alt.Text,
		}
	}

	view := CurrentQuestionView{
		QuestionID:     q.ID,
		DisplayIndex:   qi + 1,
		TotalQuestions: len(s.questions),
		Title:          s.title,
		PromptText:     q.PromptText,
		Alternatives:   alternatives,
		Revealed:       s.revealed,
		Navigation: NavigationState{
			CanGoBack:      s.nav.CanGoBack(),
			CanGoForward:   s.nav.CanGoForward(),
			IsLastQuestion: s.nav.IsLastQuestion(),
			IsComplete:     s.nav.State() == NavigatorCompleted,
		},
	}
	if record, ok := s.ledger.GetAnswer(q.ID); ok {
		selected := record.SelectedIndex
		view.SelectedIndex = &selected
	}
	return view, nil
}
