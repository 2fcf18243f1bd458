package common

type AlternativeView struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

type NavigationState struct {
	CanGoBack      bool `json:"canGoBack"`
	// Also true once complete, since the next step produces the final result.
	CanGoForward   bool `json:"canGoForward"`
	IsLastQuestion bool `json:"isLastQuestion"`
	IsComplete     bool `json:"isComplete"`
}

// Sent to the view whenever the displayed question changes. Correctness is
// never part of this view.
type CurrentQuestionView struct {
	QuestionID     int               `json:"questionId"`
	DisplayIndex   int               `json:"displayIndex"` // 1-based
	TotalQuestions int               `json:"totalQuestions"`
	Title          string            `json:"title,omitempty"`
	PromptText     string            `json:"promptText"`
	Alternatives   []AlternativeView `json:"alternatives"`
	SelectedIndex  *int              `json:"selectedIndex,omitempty"` // restores a previous selection
	Revealed       bool              `json:"revealed"`
	Navigation     NavigationState   `json:"navigation"`
}

type RevealView struct {
	QuestionID    int  `json:"questionId"`
	CorrectIndex  int  `json:"correctIndex"`
	SelectedIndex *int `json:"selectedIndex,omitempty"`
}

type StatsView struct {
	SessionStats
	Total int `json:"total"`
}

func NewStatsView(stats SessionStats) StatsView {
	return StatsView{
		SessionStats: stats,
		Total:        stats.Total(),
	}
}

type FinalResultView struct {
	Title          string       `json:"title,omitempty"`
	Percentage     int          `json:"percentage"`
	Stats          SessionStats `json:"stats"`
	TotalQuestions int          `json:"totalQuestions"`
}

// Returned by navigation. Exactly one of the fields is set.
type NavigationOutcome struct {
	Question *CurrentQuestionView `json:"question,omitempty"`
	Result   *FinalResultView     `json:"result,omitempty"`
}

// Used by the admin API to list sessions without exposing answers.
type SessionSummary struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	Position       int          `json:"position"`
	TotalQuestions int          `json:"totalQuestions"`
	Answered       int          `json:"answered"`
	Complete       bool         `json:"complete"`
	Stats          SessionStats `json:"stats"`
}
