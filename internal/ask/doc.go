// Package ask implements the single prompt screen's logic: one free-text
// prompt sent to a text generator, and a small state holder for the reply.
//
// Failures are logged and never replace text that is already displayed.
package ask
