package common

type AnswerRecord struct {
	QuestionID    int `json:"questionId"`
	SelectedIndex int `json:"selectedIndex"`
}

// Ledger holds the user's current selection per question id. It is not safe
// for concurrent use; the owning Session serializes access.
type Ledger struct {
	records map[int]AnswerRecord
}

func NewLedger() *Ledger {
	return &Ledger{records: make(map[int]AnswerRecord)}
}

// RecordAnswer replaces any earlier selection for the same question. The
// index is not range checked here.
func (l *Ledger) RecordAnswer(questionID, selectedIndex int) {
	l.records[questionID] = AnswerRecord{
		QuestionID:    questionID,
		SelectedIndex: selectedIndex,
	}
}

func (l *Ledger) GetAnswer(questionID int) (AnswerRecord, bool) {
	record, ok := l.records[questionID]
	return record, ok
}

func (l *Ledger) Clear() {
	l.records = make(map[int]AnswerRecord)
}

func (l *Ledger) Len() int {
	return len(l.records)
}
