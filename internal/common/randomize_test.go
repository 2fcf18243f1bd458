package common

import (
	"errors"
	"sort"
	"testing"
)

func rawQuestion(id int, correct int, texts ...string) RawQuestion {
	q := RawQuestion{
		ID:         id,
		PromptText: "question",
	}
	for i, text := range texts {
		q.Alternatives = append(q.Alternatives, RawAlternative{
			Text:      text,
			IsCorrect: i == correct,
		})
	}
	return q
}

func TestRandomizePreservesCorrectAnswer(t *testing.T) {
	rs := NewRandomSource(1)

	tests := []struct {
		question      RawQuestion
		correctAnswer string
	}{
		{rawQuestion(1, 2, "zero", "one", "two", "three"), "two"},
		{rawQuestion(2, 0, "hello", "world", "my", "name", "is"), "hello"},
		{rawQuestion(3, 3, "wrong 0", "wrong 1", "wrong 2", "correct"), "correct"},
		{rawQuestion(4, 0, "only"), "only"},
		{rawQuestion(5, 1, "false", "true"), "true"},
	}

	for _, test := range tests {
		for run := 0; run < 20; run++ {
			shuffled, err := Randomize(rs, test.question)
			if err != nil {
				t.Fatalf("unexpected error randomizing question %d: %v", test.question.ID, err)
			}

			correctCount := 0
			for i, alt := range shuffled.Alternatives {
				if alt.IsCorrect {
					correctCount++
					if i != shuffled.ShuffledCorrectIndex {
						t.Errorf("expected correct alternative at %d but found it at %d", shuffled.ShuffledCorrectIndex, i)
					}
				}
			}
			if correctCount != 1 {
				t.Errorf("expected exactly 1 correct alternative but got %d", correctCount)
			}
			if got := shuffled.CorrectAlternative().Text; got != test.correctAnswer {
				t.Errorf("expected correct answer of %s but got %s", test.correctAnswer, got)
			}
			if got := test.question.Alternatives[shuffled.OriginalCorrectIndex].Text; got != test.correctAnswer {
				t.Errorf("expected original correct index to point at %s but it points at %s", test.correctAnswer, got)
			}
		}
	}
}

func TestRandomizeLabelsArePositional(t *testing.T) {
	rs := NewRandomSource(2)
	q := rawQuestion(1, 4, "a", "b", "c", "d", "e")

	for run := 0; run < 20; run++ {
		shuffled, err := Randomize(rs, q)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i, alt := range shuffled.Alternatives {
			if alt.Label != displayLabels[i] {
				t.Errorf("expected label %s at position %d but got %s", displayLabels[i], i, alt.Label)
			}
		}
	}
}

func TestRandomizeDoesNotPad(t *testing.T) {
	shuffled, err := Randomize(NewRandomSource(3), rawQuestion(1, 0, "yes", "no"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shuffled.NumAlternatives() != 2 {
		t.Errorf("expected 2 alternatives but got %d", shuffled.NumAlternatives())
	}
}

func TestRandomizeIsPermutationOfTexts(t *testing.T) {
	q := rawQuestion(1, 1, "dup", "dup", "x", "y")

	shuffled, err := Randomize(NewRandomSource(4), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var before, after []string
	for _, alt := range q.Alternatives {
		before = append(before, alt.Text)
	}
	for _, alt := range shuffled.Alternatives {
		after = append(after, alt.Text)
	}
	sort.Strings(before)
	sort.Strings(after)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("expected texts %v but got %v", before, after)
		}
	}
}

func TestRandomizeDuplicateTextPicksFlaggedMatch(t *testing.T) {
	// with the zero source [wrong-dup, correct-dup, x] becomes [correct-dup, x, wrong-dup]
	q := RawQuestion{
		ID: 9,
		Alternatives: []RawAlternative{
			{Text: "same", IsCorrect: false},
			{Text: "same", IsCorrect: true},
			{Text: "x"},
		},
	}
	shuffled, err := Randomize(zeroSource{}, q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shuffled.ShuffledCorrectIndex != 0 {
		t.Errorf("expected shuffled correct index 0 but got %d", shuffled.ShuffledCorrectIndex)
	}
	if shuffled.OriginalCorrectIndex != 1 {
		t.Errorf("expected original correct index 1 but got %d", shuffled.OriginalCorrectIndex)
	}
}

func TestRandomizeDoesNotMutateRaw(t *testing.T) {
	q := rawQuestion(1, 0, "a", "b", "c")
	if _, err := Randomize(zeroSource{}, q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Alternatives[0].Text != "a" || !q.Alternatives[0].IsCorrect {
		t.Errorf("expected raw question to be unchanged but got %v", q.Alternatives)
	}
}

func TestRandomizeRejectsInvalidQuestions(t *testing.T) {
	tooMany := rawQuestion(4, 0, "a", "b", "c", "d", "e", "f")
	twoCorrect := rawQuestion(2, 0, "a", "b", "c")
	twoCorrect.Alternatives[1].IsCorrect = true

	tests := []struct {
		name     string
		question RawQuestion
	}{
		{"no correct alternative", rawQuestion(1, -1, "a", "b")},
		{"two correct alternatives", twoCorrect},
		{"no alternatives", RawQuestion{ID: 3}},
		{"too many alternatives", tooMany},
	}

	for _, test := range tests {
		_, err := Randomize(NewRandomSource(5), test.question)
		var integrityErr *DataIntegrityError
		if !errors.As(err, &integrityErr) {
			t.Errorf("%s: expected a DataIntegrityError but got %v", test.name, err)
			continue
		}
		if integrityErr.QuestionID != test.question.ID {
			t.Errorf("%s: expected question id %d in error but got %d", test.name, test.question.ID, integrityErr.QuestionID)
		}
	}
}
