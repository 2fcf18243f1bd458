package common

import (
	"fmt"
	"strings"
)

// Stats policies: when the cached SessionStats of a session are recomputed.
//   - StatsOnReveal recomputes on reveal, on completion and on reset only, so
//     unanswered counts the questions the user has not committed to review
//   - StatsOnAnswer additionally recomputes after every selection
const (
	StatsOnReveal = "reveal"
	StatsOnAnswer = "answer"
)

func ParseStatsPolicy(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", StatsOnReveal:
		return StatsOnReveal, nil
	case StatsOnAnswer:
		return StatsOnAnswer, nil
	default:
		return "", fmt.Errorf("%s is not a valid stats policy", s)
	}
}

type SessionStats struct {
	Correct    int `json:"correct"`
	Incorrect  int `json:"incorrect"`
	Unanswered int `json:"unanswered"`
}

func (s SessionStats) Total() int {
	return s.Correct + s.Incorrect + s.Unanswered
}

// RecomputeStats derives the statistics from scratch. It has no side effects.
func RecomputeStats(questions []WorkingQuestion, ledger *Ledger) SessionStats {
	var stats SessionStats
	for _, q := range questions {
		record, ok := ledger.GetAnswer(q.ID)
		switch {
		case !ok:
			stats.Unanswered++
		case record.SelectedIndex == q.ShuffledCorrectIndex:
			stats.Correct++
		default:
			stats.Incorrect++
		}
	}
	return stats
}

// FinalPercentage returns the share of correctly answered questions, truncated
// to an integer in [0, 100].
func FinalPercentage(questions []WorkingQuestion, ledger *Ledger) (int, error) {
	if len(questions) == 0 {
		return 0, NewEmptyQuestionSetError()
	}
	correct := 0
	for _, q := range questions {
		if record, ok := ledger.GetAnswer(q.ID); ok && record.SelectedIndex == q.ShuffledCorrectIndex {
			correct++
		}
	}
	return correct * 100 / len(questions), nil
}
