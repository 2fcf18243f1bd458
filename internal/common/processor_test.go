package common

import (
	"errors"
	"testing"
)

func TestProcessQuestionsKeepsQuestionOrder(t *testing.T) {
	raws := []RawQuestion{
		rawQuestion(10, 0, "a", "b"),
		rawQuestion(3, 1, "c", "d", "e"),
		rawQuestion(7, 2, "f", "g", "h", "i"),
	}

	working, err := ProcessQuestions(NewRandomSource(6), raws)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(working) != len(raws) {
		t.Fatalf("expected %d questions but got %d", len(raws), len(working))
	}
	for i := range raws {
		if working[i].ID != raws[i].ID {
			t.Errorf("expected question %d at position %d but got %d", raws[i].ID, i, working[i].ID)
		}
		if working[i].NumAlternatives() != raws[i].NumAlternatives() {
			t.Errorf("expected %d alternatives for question %d but got %d", raws[i].NumAlternatives(), raws[i].ID, working[i].NumAlternatives())
		}
	}
}

func TestProcessQuestionsEmpty(t *testing.T) {
	working, err := ProcessQuestions(NewRandomSource(0), []RawQuestion{})
	if err != nil {
		t.Fatalf("expected no error but got %v", err)
	}
	if len(working) != 0 {
		t.Errorf("expected an empty set but got %d questions", len(working))
	}
}

func TestProcessQuestionsFailsWholeSet(t *testing.T) {
	tests := []struct {
		name       string
		raws       []RawQuestion
		questionID int
	}{
		{
			name:       "malformed question in the middle",
			raws:       []RawQuestion{rawQuestion(1, 0, "a", "b"), rawQuestion(2, -1, "a", "b"), rawQuestion(3, 0, "a")},
			questionID: 2,
		},
		{
			name:       "duplicate question id",
			raws:       []RawQuestion{rawQuestion(1, 0, "a", "b"), rawQuestion(1, 0, "c", "d")},
			questionID: 1,
		},
	}

	for _, test := range tests {
		working, err := ProcessQuestions(NewRandomSource(8), test.raws)
		if working != nil {
			t.Errorf("%s: expected no partial result but got %d questions", test.name, len(working))
		}
		var integrityErr *DataIntegrityError
		if !errors.As(err, &integrityErr) {
			t.Errorf("%s: expected a DataIntegrityError but got %v", test.name, err)
			continue
		}
		if integrityErr.QuestionID != test.questionID {
			t.Errorf("%s: expected question id %d but got %d", test.name, test.questionID, integrityErr.QuestionID)
		}
	}
}
