package mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/phrazzld/scry-trivia/internal/trivia"
)

// MockQuestionSource implements trivia.QuestionSource for testing
type MockQuestionSource struct {
	// FetchQuestionsFn allows test cases to mock the FetchQuestions behavior
	FetchQuestionsFn func(ctx context.Context) ([]trivia.Question, error)

	// Default response values
	Questions []trivia.Question
	Err       error

	// Call tracking for verification
	FetchQuestionsCalls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// Count tracks how many times FetchQuestions was called
		Count int
	}
}

var _ trivia.QuestionSource = (*MockQuestionSource)(nil)

// FetchQuestions implements the trivia.QuestionSource interface
func (m *MockQuestionSource) FetchQuestions(ctx context.Context) ([]trivia.Question, error) {
	m.FetchQuestionsCalls.mu.Lock()
	m.FetchQuestionsCalls.Count++
	m.FetchQuestionsCalls.mu.Unlock()

	if m.FetchQuestionsFn != nil {
		return m.FetchQuestionsFn(ctx)
	}

	return m.Questions, m.Err
}

// CallCount returns how many times FetchQuestions was called.
func (m *MockQuestionSource) CallCount() int {
	m.FetchQuestionsCalls.mu.Lock()
	defer m.FetchQuestionsCalls.mu.Unlock()
	return m.FetchQuestionsCalls.Count
}

// NewMockQuestionSourceWithQuestions creates a MockQuestionSource that
// always returns n sample questions
func NewMockQuestionSourceWithQuestions(n int) *MockQuestionSource {
	return &MockQuestionSource{Questions: SampleQuestions(n)}
}

// NewMockQuestionSourceWithError creates a MockQuestionSource that always fails
func NewMockQuestionSourceWithError(err error) *MockQuestionSource {
	return &MockQuestionSource{Err: err}
}

// NewMockQuestionSourceSequence creates a MockQuestionSource that returns the
// given errors in order, one per call, and n sample questions once the errors
// are used up. A nil entry also yields questions.
func NewMockQuestionSourceSequence(n int, errs ...error) *MockQuestionSource {
	var mu sync.Mutex
	call := 0
	return &MockQuestionSource{
		FetchQuestionsFn: func(ctx context.Context) ([]trivia.Question, error) {
			mu.Lock()
			i := call
			call++
			mu.Unlock()
			if i < len(errs) && errs[i] != nil {
				return nil, errs[i]
			}
			return SampleQuestions(n), nil
		},
	}
}

// Reset resets the call tracking state
func (m *MockQuestionSource) Reset() {
	m.FetchQuestionsCalls.mu.Lock()
	defer m.FetchQuestionsCalls.mu.Unlock()
	m.FetchQuestionsCalls.Count = 0
}

// sampleQuestion is the wire form used by QuestionsJSON.
type sampleQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

func sampleQuestions(n int) []sampleQuestion {
	out := make([]sampleQuestion, n)
	for i := range out {
		options := []string{
			fmt.Sprintf("Answer %d", i+1),
			fmt.Sprintf("Wrong %dA", i+1),
			fmt.Sprintf("Wrong %dB", i+1),
			fmt.Sprintf("Wrong %dC", i+1),
		}
		out[i] = sampleQuestion{
			Question:      fmt.Sprintf("Question %d?", i+1),
			Options:       options,
			CorrectAnswer: options[0],
		}
	}
	return out
}

// SampleQuestions returns n questions whose first option is always correct.
func SampleQuestions(n int) []trivia.Question {
	qs := make([]trivia.Question, 0, n)
	for _, q := range sampleQuestions(n) {
		qs = append(qs, trivia.NewQuestion(q.Question, q.Options, q.CorrectAnswer))
	}
	return qs
}

// QuestionsJSON returns the model-output JSON for SampleQuestions(n).
func QuestionsJSON(n int) string {
	data, err := json.Marshal(sampleQuestions(n))
	if err != nil {
		panic(err)
	}
	return string(data)
}
