// Package tui renders the quiz and the single prompt screen with bubbletea.
//
// Models never touch quiz state outside Update. Fetches run as tea.Cmd
// goroutines and report back through messages tagged with the generation
// they were started for.
package tui
