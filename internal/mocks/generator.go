package mocks

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/phrazzld/scry-trivia/internal/generation"
)

// MockTextGenerator implements generation.TextGenerator for testing
type MockTextGenerator struct {
	// GenerateTextFn allows test cases to mock the GenerateText behavior
	GenerateTextFn func(ctx context.Context, prompt string) (string, error)

	// Default response values
	Text string
	Err  error

	// Call tracking for verification
	GenerateTextCalls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// Count tracks how many times GenerateText was called
		Count int

		// Prompts contains all prompts passed to GenerateText calls
		Prompts []string
	}
}

var _ generation.TextGenerator = (*MockTextGenerator)(nil)

// GenerateText implements the generation.TextGenerator interface
func (m *MockTextGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	m.GenerateTextCalls.mu.Lock()
	m.GenerateTextCalls.Count++
	m.GenerateTextCalls.Prompts = append(m.GenerateTextCalls.Prompts, prompt)
	m.GenerateTextCalls.mu.Unlock()

	if m.GenerateTextFn != nil {
		return m.GenerateTextFn(ctx, prompt)
	}

	return m.Text, m.Err
}

// CallCount returns how many times GenerateText was called.
func (m *MockTextGenerator) CallCount() int {
	m.GenerateTextCalls.mu.Lock()
	defer m.GenerateTextCalls.mu.Unlock()
	return m.GenerateTextCalls.Count
}

// NewMockTextGeneratorWithText creates a MockTextGenerator that returns text
func NewMockTextGeneratorWithText(text string) *MockTextGenerator {
	return &MockTextGenerator{Text: text}
}

// NewMockTextGeneratorWithError creates a MockTextGenerator that returns err
func NewMockTextGeneratorWithError(err error) *MockTextGenerator {
	return &MockTextGenerator{Err: err}
}

// MockTextGeneratorWithTransportFailure creates a MockTextGenerator that
// simulates a non-success HTTP status
func MockTextGeneratorWithTransportFailure(status int) *MockTextGenerator {
	return &MockTextGenerator{
		Err: generation.NewTransportError(status, errors.New(http.StatusText(status))),
	}
}

// Reset resets the call tracking state
func (m *MockTextGenerator) Reset() {
	m.GenerateTextCalls.mu.Lock()
	defer m.GenerateTextCalls.mu.Unlock()

	m.GenerateTextCalls.Count = 0
	m.GenerateTextCalls.Prompts = nil
}
