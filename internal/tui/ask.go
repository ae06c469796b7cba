package tui

import (
	"context"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/phrazzld/scry-trivia/internal/ask"
)

const (
	defaultAskWidth  = 80
	defaultAskHeight = 20
	// askChrome is the number of lines used around the viewport.
	askChrome = 6
)

// AskModel is the bubbletea model of the single prompt screen.
type AskModel struct {
	ctx     context.Context
	service *ask.Service
	prompt  string
	logger  *slog.Logger

	state    ask.State
	spinner  spinner.Model
	viewport viewport.Model
	help     help.Model
	quitting bool
}

var _ tea.Model = (*AskModel)(nil)

// NewAskModel creates an AskModel that sends prompt once on start.
func NewAskModel(ctx context.Context, service *ask.Service, prompt string, logger *slog.Logger) *AskModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = titleStyle

	return &AskModel{
		ctx:      ctx,
		service:  service,
		prompt:   prompt,
		logger:   logger.With("component", "ask_tui"),
		spinner:  s,
		viewport: viewport.New(defaultAskWidth, defaultAskHeight),
		help:     help.New(),
	}
}

// Init sends the prompt.
func (m *AskModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.send())
}

func (m *AskModel) send() tea.Cmd {
	ctx := m.ctx
	service := m.service
	prompt := m.prompt
	gen := m.state.Begin()
	return func() tea.Msg {
		text, err := service.Ask(ctx, prompt)
		return replyMsg{generation: gen, text: text, err: err}
	}
}

// Update handles messages.
func (m *AskModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-askChrome, 1)
		m.help.Width = msg.Width
		m.refresh()
		return m, nil

	case replyMsg:
		if msg.err != nil {
			if m.state.Fail(msg.generation, msg.err) {
				m.logger.WarnContext(m.ctx, "keeping previous reply after failure")
			}
			return m, nil
		}
		if m.state.Resolve(msg.generation, msg.text) {
			m.refresh()
			m.viewport.GotoTop()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.state.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, askKeys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// refresh rewraps the reply to the viewport width.
func (m *AskModel) refresh() {
	text := m.state.Text()
	if text == "" {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(lipgloss.NewStyle().Width(m.viewport.Width).Render(text))
}

// View renders the prompt and its reply.
func (m *AskModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Prompt"))
	b.WriteString("  ")
	b.WriteString(m.prompt)
	b.WriteString("\n\n")

	switch {
	case m.state.Loading():
		b.WriteString(m.spinner.View())
		b.WriteString(" Waiting for a reply...")
	case m.state.Text() == "":
		b.WriteString(dimStyle.Render("No reply."))
	default:
		b.WriteString(m.viewport.View())
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView([]key.Binding{askKeys.Scroll, askKeys.Quit}))
	return b.String()
}
