package tui

import "github.com/phrazzld/scry-trivia/internal/trivia"

// fetchedMsg carries the outcome of a question fetch.
type fetchedMsg struct {
	result trivia.Result
}

// retryMsg fires when the retry delay has elapsed.
type retryMsg struct {
	generation uint64
}

// replyMsg carries the outcome of a single prompt.
type replyMsg struct {
	generation uint64
	text       string
	err        error
}
