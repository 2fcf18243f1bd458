package common

import (
	"errors"
	"fmt"
)

// Returned when a question set could not be retrieved from any configured
// source.
type SourceUnavailableError struct {
	Name string
	Err  error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("question set %s is unavailable: %v", e.Name, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}

func NewSourceUnavailableError(name string, err error) *SourceUnavailableError {
	return &SourceUnavailableError{
		Name: name,
		Err:  err,
	}
}

// Returned when a question document does not match any recognized shape.
type SourceFormatError struct {
	Err error
}

func (e *SourceFormatError) Error() string {
	return fmt.Sprintf("unrecognized question document: %v", e.Err)
}

func (e *SourceFormatError) Unwrap() error {
	return e.Err
}

func NewSourceFormatError(message string) *SourceFormatError {
	return &SourceFormatError{
		Err: errors.New(message),
	}
}

type DataIntegrityError struct {
	QuestionID int
	Err        error
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("question %d is invalid: %v", e.QuestionID, e.Err)
}

func (e *DataIntegrityError) Unwrap() error {
	return e.Err
}

func NewDataIntegrityError(questionID int, message string) *DataIntegrityError {
	return &DataIntegrityError{
		QuestionID: questionID,
		Err:        errors.New(message),
	}
}

type OutOfRangeError struct {
	Index  int
	Length int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%d is outside of the valid range [0, %d)", e.Index, e.Length)
}

func NewOutOfRangeError(index, length int) *OutOfRangeError {
	return &OutOfRangeError{
		Index:  index,
		Length: length,
	}
}

type EmptyQuestionSetError struct{}

func (e *EmptyQuestionSetError) Error() string {
	return "question set is empty"
}

func NewEmptyQuestionSetError() *EmptyQuestionSetError {
	return &EmptyQuestionSetError{}
}

// Returned by the session registry when a command arrives before a question
// set was loaded.
type NoSessionError struct {
	ID string
}

func (e *NoSessionError) Error() string {
	return fmt.Sprintf("session %s has no quiz loaded", e.ID)
}

func NewNoSessionError(id string) *NoSessionError {
	return &NoSessionError{
		ID: id,
	}
}
