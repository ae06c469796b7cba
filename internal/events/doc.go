// Package events provides quiz lifecycle events and a small in-process
// dispatcher for them.
//
// The quiz flow emits events when a batch starts loading, loads, fails to
// load, when an answer is recorded and when a game finishes. Handlers receive
// them without the quiz code knowing who listens; the application registers a
// LogHandler so every transition ends up in the diagnostic log.
//
// The primary components are:
// - Event: a typed, timestamped record tied to a quiz session
// - Handler: interface for components that can handle events
// - Emitter: interface for components that can emit events
package events
