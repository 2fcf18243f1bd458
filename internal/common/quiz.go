package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// MaxAlternatives is the number of display labels available to a question.
const MaxAlternatives = 5

var displayLabels = [MaxAlternatives]string{"A", "B", "C", "D", "E"}

type RawAlternative struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

type RawQuestion struct {
	ID           int              `json:"id"`
	PromptText   string           `json:"promptText"`
	Alternatives []RawAlternative `json:"alternatives"`
}

func (q RawQuestion) NumAlternatives() int {
	return len(q.Alternatives)
}

// QuestionSet is the canonical form of a question document. Both historical
// field-name variants are normalized into this shape by UnmarshalQuestionSet.
type QuestionSet struct {
	Title     string        `json:"title,omitempty"`
	Questions []RawQuestion `json:"questions"`
}

func (qs QuestionSet) NumQuestions() int {
	return len(qs.Questions)
}

// Marshal always writes the canonical field names.
func (qs QuestionSet) Marshal() ([]byte, error) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	if err := enc.Encode(qs); err != nil {
		return nil, fmt.Errorf("error converting question set to JSON: %v", err)
	}
	return b.Bytes(), nil
}

// The document as it arrives from a source. Every concept has two accepted
// field names; exactly one of them may be present.
type questionDocument struct {
	Title     *string            `json:"title"`
	Titulo    *string            `json:"titulo"`
	Questions *[]questionElement `json:"questions"`
	Questoes  *[]questionElement `json:"questoes"`
}

type questionElement struct {
	ID           *int                  `json:"id"`
	PromptText   *string               `json:"promptText"`
	Pergunta     *string               `json:"pergunta"`
	Alternatives *[]alternativeElement `json:"alternatives"`
	Alternativas *[]alternativeElement `json:"alternativas"`
}

// letra/label are accepted on input but never read: labels are positional.
type alternativeElement struct {
	Text      *string `json:"text"`
	Texto     *string `json:"texto"`
	IsCorrect *bool   `json:"isCorrect"`
	Correta   *bool   `json:"correta"`
}

// Ingests a single question document in JSON, in either field-name variant.
func UnmarshalQuestionSet(r io.Reader) (QuestionSet, error) {
	dec := json.NewDecoder(r)
	var doc questionDocument
	if err := dec.Decode(&doc); err != nil {
		return QuestionSet{}, &SourceFormatError{Err: err}
	}
	set, err := doc.normalize()
	if err != nil {
		return QuestionSet{}, &SourceFormatError{Err: err}
	}
	return set, nil
}

func (doc questionDocument) normalize() (QuestionSet, error) {
	title, err := pickAlias("title", doc.Title, doc.Titulo, false)
	if err != nil {
		return QuestionSet{}, err
	}
	elements, err := pickAlias("questions", doc.Questions, doc.Questoes, true)
	if err != nil {
		return QuestionSet{}, err
	}

	set := QuestionSet{
		Questions: make([]RawQuestion, 0, len(*elements)),
	}
	if title != nil {
		set.Title = *title
	}

	for i, el := range *elements {
		q, err := el.normalize(i)
		if err != nil {
			return QuestionSet{}, err
		}
		set.Questions = append(set.Questions, q)
	}
	return set, nil
}

func (el questionElement) normalize(position int) (RawQuestion, error) {
	if el.ID == nil {
		return RawQuestion{}, fmt.Errorf("question at position %d has no id", position)
	}
	prompt, err := pickAlias("promptText", el.PromptText, el.Pergunta, true)
	if err != nil {
		return RawQuestion{}, fmt.Errorf("question at position %d: %v", position, err)
	}
	alternatives, err := pickAlias("alternatives", el.Alternatives, el.Alternativas, true)
	if err != nil {
		return RawQuestion{}, fmt.Errorf("question at position %d: %v", position, err)
	}

	q := RawQuestion{
		ID:           *el.ID,
		PromptText:   *prompt,
		Alternatives: make([]RawAlternative, 0, len(*alternatives)),
	}
	for j, alt := range *alternatives {
		text, err := pickAlias("text", alt.Text, alt.Texto, true)
		if err != nil {
			return RawQuestion{}, fmt.Errorf("question at position %d, alternative %d: %v", position, j, err)
		}
		correct, err := pickAlias("isCorrect", alt.IsCorrect, alt.Correta, false)
		if err != nil {
			return RawQuestion{}, fmt.Errorf("question at position %d, alternative %d: %v", position, j, err)
		}
		q.Alternatives = append(q.Alternatives, RawAlternative{
			Text:      *text,
			IsCorrect: correct != nil && *correct,
		})
	}
	return q, nil
}

// Returns whichever of the two aliases is set. Setting both is a conflict.
func pickAlias[T any](field string, canonical, alias *T, required bool) (*T, error) {
	if canonical != nil && alias != nil {
		return nil, fmt.Errorf("both variants of field %s are present", field)
	}
	if canonical != nil {
		return canonical, nil
	}
	if alias == nil && required {
		return nil, fmt.Errorf("missing field %s", field)
	}
	return alias, nil
}
