// Package trivia implements the multiple-choice quiz: parsing a batch of
// questions out of free-form model output, the session state machine that
// tracks answers and scoring, and the Game that ties one question source,
// a retry policy and lifecycle events to a session.
//
// Session is pure state and must be driven from a single goroutine. Game.Fetch
// is the only operation that does I/O and is safe to run elsewhere; its result
// is handed back to Game.Settle, which discards results from superseded
// loading phases.
package trivia
