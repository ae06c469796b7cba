package generation

import "context"

// TextGenerator defines the interface for sending a single prompt to a
// text-generation service. This interface serves as a boundary between the
// application core and external AI/LLM services.
type TextGenerator interface {
	// GenerateText performs one request for prompt and returns the text of the
	// first candidate's first part. Every call is a fresh request; retry policy
	// belongs to the caller.
	//
	// An empty prompt is rejected with ErrEmptyPrompt before any request is
	// made. Every other failure is reported as *RequestError (see errors.go).
	GenerateText(ctx context.Context, prompt string) (string, error)
}
