package trivia

import (
	"errors"
	"fmt"
)

// Parse failure kinds, see ParseError.
var (
	// ErrMalformedJSON is returned when the model output is not valid JSON
	// after fence stripping.
	ErrMalformedJSON = errors.New("response is not valid JSON")

	// ErrWrongShape is returned when the JSON does not describe a list of questions.
	ErrWrongShape = errors.New("response does not match the question list shape")

	// ErrEmptyList is returned when the JSON is an empty list.
	ErrEmptyList = errors.New("response contains no questions")
)

// Session errors
var (
	// ErrStaleGeneration is returned when a result belongs to a loading phase
	// that has since been superseded by Begin.
	ErrStaleGeneration = errors.New("result belongs to a superseded loading phase")

	// ErrNotLoading is returned when a result arrives while the session is not loading.
	ErrNotLoading = errors.New("session is not loading")

	// ErrRetriesExhausted is returned by Game.StartWithRetry when the retry
	// policy allows no further attempts.
	ErrRetriesExhausted = errors.New("retry attempts exhausted")
)

// ParseError describes why model output could not be turned into questions.
type ParseError struct {
	// Kind is ErrMalformedJSON, ErrWrongShape or ErrEmptyList.
	Kind error
	// Index is the offending question, or -1 when the whole document is at fault.
	Index int
	Err   error
}

func (e *ParseError) Error() string {
	msg := e.Kind.Error()
	if e.Index >= 0 {
		msg = fmt.Sprintf("%s: question %d", msg, e.Index)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
