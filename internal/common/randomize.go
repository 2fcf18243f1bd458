package common

import "fmt"

type DisplayAlternative struct {
	Label     string `json:"label"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// WorkingQuestion is a question whose alternatives were shuffled for a
// session. Exactly one alternative is correct and it sits at
// ShuffledCorrectIndex.
type WorkingQuestion struct {
	ID                   int                  `json:"id"`
	PromptText           string               `json:"promptText"`
	Alternatives         []DisplayAlternative `json:"alternatives"`
	OriginalCorrectIndex int                  `json:"originalCorrectIndex"`
	ShuffledCorrectIndex int                  `json:"shuffledCorrectIndex"`
}

func (q WorkingQuestion) NumAlternatives() int {
	return len(q.Alternatives)
}

func (q WorkingQuestion) CorrectAlternative() DisplayAlternative {
	return q.Alternatives[q.ShuffledCorrectIndex]
}

// Randomize shuffles the alternatives of raw and re-attaches the labels A-E
// positionally.
//
// The correct alternative is re-identified by its text after shuffling. When
// two alternatives share the correct alternative's text, the one with the
// lowest new index that is flagged correct wins.
func Randomize(rs RandomSource, raw RawQuestion) (WorkingQuestion, error) {
	n := raw.NumAlternatives()
	if n == 0 {
		return WorkingQuestion{}, NewDataIntegrityError(raw.ID, "question has no alternatives")
	}
	if n > MaxAlternatives {
		return WorkingQuestion{}, NewDataIntegrityError(raw.ID, fmt.Sprintf("question has %d alternatives, at most %d are supported", n, MaxAlternatives))
	}

	originalCorrect, err := correctIndex(raw)
	if err != nil {
		return WorkingQuestion{}, err
	}
	correctText := raw.Alternatives[originalCorrect].Text

	shuffled := Shuffle(rs, raw.Alternatives)

	alternatives := make([]DisplayAlternative, n)
	newCorrect := -1
	for i, alt := range shuffled {
		alternatives[i] = DisplayAlternative{
			Label:     displayLabels[i],
			Text:      alt.Text,
			IsCorrect: alt.IsCorrect,
		}
		if newCorrect == -1 && alt.IsCorrect && alt.Text == correctText {
			newCorrect = i
		}
	}
	if newCorrect == -1 {
		return WorkingQuestion{}, NewDataIntegrityError(raw.ID, "correct alternative lost while shuffling")
	}

	for i := range alternatives {
		alternatives[i].IsCorrect = i == newCorrect
	}

	return WorkingQuestion{
		ID:                   raw.ID,
		PromptText:           raw.PromptText,
		Alternatives:         alternatives,
		OriginalCorrectIndex: originalCorrect,
		ShuffledCorrectIndex: newCorrect,
	}, nil
}

func correctIndex(raw RawQuestion) (int, error) {
	found := -1
	for i, alt := range raw.Alternatives {
		if !alt.IsCorrect {
			continue
		}
		if found != -1 {
			return -1, NewDataIntegrityError(raw.ID, "question has more than one correct alternative")
		}
		found = i
	}
	if found == -1 {
		return -1, NewDataIntegrityError(raw.ID, "question has no correct alternative")
	}
	return found, nil
}
