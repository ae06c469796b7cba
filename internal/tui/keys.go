package tui

import "github.com/charmbracelet/bubbles/key"

type quizKeyMap struct {
	Pick    key.Binding
	Up      key.Binding
	Down    key.Binding
	Confirm key.Binding
	Next    key.Binding
	Prev    key.Binding
	Restart key.Binding
	Quit    key.Binding
}

var quizKeys = quizKeyMap{
	Pick: key.NewBinding(
		key.WithKeys("1", "2", "3", "4"),
		key.WithHelp("1-4", "answer"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Next: key.NewBinding(
		key.WithKeys("right", "n"),
		key.WithHelp("→/n", "next"),
	),
	Prev: key.NewBinding(
		key.WithKeys("left", "p"),
		key.WithHelp("←/p", "back"),
	),
	Restart: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "play again"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type askKeyMap struct {
	Scroll key.Binding
	Quit   key.Binding
}

var askKeys = askKeyMap{
	Scroll: key.NewBinding(
		key.WithKeys("up", "down", "pgup", "pgdown"),
		key.WithHelp("↑/↓", "scroll"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
