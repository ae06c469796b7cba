package generation

import (
	"errors"
	"fmt"
)

// Common errors returned by the generation package
var (
	// ErrTransport is returned when the request could not complete or the
	// service answered with a non-success status.
	ErrTransport = errors.New("text generation request failed")

	// ErrUnexpectedShape is returned when the service answered successfully but
	// the payload has no usable candidate text.
	ErrUnexpectedShape = errors.New("unexpected response shape from language model")

	// ErrContentBlocked is returned when the LLM blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrEmptyPrompt is returned when a generator is asked to send an empty prompt
	ErrEmptyPrompt = errors.New("prompt cannot be empty")
)

// RequestError describes a failed GenerateText call.
//
// Kind is one of ErrTransport or ErrUnexpectedShape, so callers can branch
// with errors.Is without inspecting the underlying cause.
type RequestError struct {
	Kind error
	// StatusCode is the HTTP status returned by the service, or 0 when the
	// request never produced a response.
	StatusCode int
	Err        error
}

// NewTransportError wraps err as a transport failure with the given status code.
func NewTransportError(status int, err error) *RequestError {
	return &RequestError{Kind: ErrTransport, StatusCode: status, Err: err}
}

// NewShapeError wraps err as an unexpected-shape failure.
func NewShapeError(err error) *RequestError {
	return &RequestError{Kind: ErrUnexpectedShape, Err: err}
}

func (e *RequestError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("%v (status %d): %v", e.Kind, e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	default:
		return fmt.Sprint(e.Kind)
	}
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *RequestError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}
