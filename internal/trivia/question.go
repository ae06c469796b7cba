package trivia

import "slices"

// PointsPerCorrect is the score awarded for each correctly answered question.
const PointsPerCorrect = 10

// Question is one multiple-choice question. It is immutable once created.
type Question struct {
	prompt        string
	options       []string
	correctAnswer string
}

// NewQuestion creates a Question, copying options.
func NewQuestion(prompt string, options []string, correctAnswer string) Question {
	return Question{
		prompt:        prompt,
		options:       slices.Clone(options),
		correctAnswer: correctAnswer,
	}
}

// Prompt returns the question text.
func (q Question) Prompt() string { return q.prompt }

// Options returns a copy of the answer options in their original order.
func (q Question) Options() []string { return slices.Clone(q.options) }

// Option returns the i-th option and whether it exists.
func (q Question) Option(i int) (string, bool) {
	if i < 0 || i >= len(q.options) {
		return "", false
	}
	return q.options[i], true
}

// CorrectAnswer returns the correct option text.
func (q Question) CorrectAnswer() string { return q.correctAnswer }

// IsCorrect reports whether option is the correct answer. The comparison is
// exact: case and whitespace must match.
func (q Question) IsCorrect(option string) bool {
	return option == q.correctAnswer
}

// Scorable reports whether the correct answer is one of the options. A model
// can return a correct answer that matches none of its own options; such a
// question can never be answered correctly.
func (q Question) Scorable() bool {
	return slices.Contains(q.options, q.correctAnswer)
}
