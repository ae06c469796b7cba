package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/phrazzld/scry-trivia/internal/trivia"
)

// QuizModel is the bubbletea model of the trivia quiz.
type QuizModel struct {
	ctx    context.Context
	game   *trivia.Game
	logger *slog.Logger

	spinner spinner.Model
	help    help.Model

	cursor       int
	notice       *notice
	pendingRetry bool
	quitting     bool
}

var _ tea.Model = (*QuizModel)(nil)

// NewQuizModel creates a QuizModel driving game. ctx bounds every fetch.
func NewQuizModel(ctx context.Context, game *trivia.Game, logger *slog.Logger) *QuizModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = titleStyle

	return &QuizModel{
		ctx:     ctx,
		game:    game,
		logger:  logger.With("component", "quiz_tui"),
		spinner: s,
		help:    help.New(),
	}
}

// Init starts the first fetch.
func (m *QuizModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.begin())
}

// begin enters Loading and returns the command that performs the fetch.
func (m *QuizModel) begin() tea.Cmd {
	m.notice = nil
	m.pendingRetry = false
	m.cursor = 0

	game := m.game
	gen := game.Begin(m.ctx)
	ctx := game.LoadContext(m.ctx)
	return func() tea.Msg {
		return fetchedMsg{result: game.Fetch(ctx, gen)}
	}
}

func (m *QuizModel) loading() bool {
	return m.game.Session().State().Phase == trivia.PhaseLoading
}

// Update handles messages.
func (m *QuizModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case fetchedMsg:
		return m.handleFetched(msg)

	case retryMsg:
		if !m.pendingRetry || msg.generation != m.game.Session().Generation() {
			return m, nil
		}
		return m, tea.Batch(m.begin(), m.spinner.Tick)

	case spinner.TickMsg:
		if !m.loading() || m.notice != nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *QuizModel) handleFetched(msg fetchedMsg) (tea.Model, tea.Cmd) {
	err := m.game.Settle(m.ctx, msg.result)
	switch {
	case err == nil:
		m.cursor = 0
		return m, nil
	case errors.Is(err, trivia.ErrStaleGeneration):
		return m, nil
	}

	delay, next := m.game.NextAttempt(err)
	m.notice = &notice{
		err:       err,
		attempt:   m.game.Session().Attempts(),
		exhausted: errors.Is(next, trivia.ErrRetriesExhausted),
		delay:     delay,
	}
	return m, nil
}

func (m *QuizModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	if m.notice != nil {
		if key.Matches(msg, quizKeys.Confirm) {
			return m.acknowledge()
		}
		return m, nil
	}

	if key.Matches(msg, quizKeys.Quit) {
		return m.quit()
	}

	session := m.game.Session()
	switch session.State().Phase {
	case trivia.PhaseInProgress:
		return m.handlePlayingKey(msg)
	case trivia.PhaseFinished:
		if key.Matches(msg, quizKeys.Restart) {
			return m, tea.Batch(m.begin(), m.spinner.Tick)
		}
	}
	return m, nil
}

// acknowledge handles the notice's single action: retry after the policy
// delay, or quit when no attempts are left.
func (m *QuizModel) acknowledge() (tea.Model, tea.Cmd) {
	n := m.notice
	if n.exhausted {
		m.logger.WarnContext(m.ctx, "giving up on loading questions", "attempts", n.attempt)
		return m.quit()
	}

	delay := n.delay
	m.logger.InfoContext(m.ctx, "retrying question fetch", "attempt", n.attempt+1, "delay", delay)
	if delay <= 0 {
		return m, tea.Batch(m.begin(), m.spinner.Tick)
	}

	m.notice = nil
	m.pendingRetry = true
	gen := m.game.Session().Generation()
	return m, tea.Batch(
		tea.Tick(delay, func(time.Time) tea.Msg { return retryMsg{generation: gen} }),
		m.spinner.Tick,
	)
}

func (m *QuizModel) handlePlayingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	q, _ := m.game.Session().Current()
	options := len(q.Options())

	switch {
	case key.Matches(msg, quizKeys.Pick):
		i := int(msg.String()[0] - '1')
		if i < options {
			m.cursor = i
			m.game.AnswerIndex(m.ctx, i)
		}
	case key.Matches(msg, quizKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, quizKeys.Down):
		if m.cursor < options-1 {
			m.cursor++
		}
	case key.Matches(msg, quizKeys.Confirm):
		m.game.AnswerIndex(m.ctx, m.cursor)
	case key.Matches(msg, quizKeys.Next):
		m.game.Advance(m.ctx)
		m.syncCursor()
	case key.Matches(msg, quizKeys.Prev):
		m.game.Retreat()
		m.syncCursor()
	}
	return m, nil
}

// syncCursor points the cursor at the current question's answer, or the first option.
func (m *QuizModel) syncCursor() {
	m.cursor = 0
	session := m.game.Session()
	q, ok := session.Current()
	if !ok {
		return
	}
	picked, ok := session.Selected(session.State().Index)
	if !ok {
		return
	}
	for i, opt := range q.Options() {
		if opt == picked {
			m.cursor = i
			return
		}
	}
}

func (m *QuizModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// View renders the current phase.
func (m *QuizModel) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch {
	case m.notice != nil:
		body = m.notice.view()
	case m.loading():
		body = m.loadingView()
	case m.game.Session().State().Phase == trivia.PhaseInProgress:
		body = m.questionView()
	default:
		body = m.finishedView()
	}
	return appStyle.Render(body)
}

func (m *QuizModel) loadingView() string {
	label := "Generating trivia questions..."
	if m.pendingRetry {
		label = "Waiting to retry..."
	}
	return m.spinner.View() + " " + label + "\n\n" +
		m.help.ShortHelpView([]key.Binding{quizKeys.Quit})
}

func (m *QuizModel) questionView() string {
	session := m.game.Session()
	state := session.State()
	q, _ := session.Current()
	picked, answered := session.Selected(state.Index)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Trivia"))
	b.WriteString("  ")
	b.WriteString(progressStyle.Render(fmt.Sprintf("Question %d of %d  •  %d answered",
		state.Index+1, session.Size(), session.Answered())))
	b.WriteString("\n\n")
	b.WriteString(promptStyle.Render(q.Prompt()))
	b.WriteString("\n")

	for i, opt := range q.Options() {
		line := fmt.Sprintf("%d. %s", i+1, opt)
		switch {
		case answered && q.IsCorrect(opt):
			line = correctStyle.Render(line + " " + markCorrect)
		case answered && opt == picked:
			line = wrongStyle.Render(line + " " + markWrong)
		}
		if i == m.cursor && !answered {
			b.WriteString(cursorStyle.Render("> " + line))
		} else {
			b.WriteString(optionStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if answered {
		b.WriteString("\n")
		if q.IsCorrect(picked) {
			b.WriteString(correctStyle.Render("Correct!"))
		} else {
			b.WriteString(wrongStyle.Render("Wrong. The answer is " + q.CorrectAnswer() + "."))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView([]key.Binding{
		quizKeys.Pick, quizKeys.Up, quizKeys.Down, quizKeys.Next, quizKeys.Prev, quizKeys.Quit,
	}))
	return b.String()
}

func (m *QuizModel) finishedView() string {
	session := m.game.Session()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Game over!"))
	b.WriteString("\n\n")
	b.WriteString(scoreStyle.Render(fmt.Sprintf("Score: %d", session.State().Score)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("You got %d of %d right.", session.Correct(), session.Size()))
	b.WriteString("\n\n")

	for i, q := range session.Questions() {
		picked, ok := session.Selected(i)
		mark := dimStyle.Render("-")
		switch {
		case ok && q.IsCorrect(picked):
			mark = correctStyle.Render(markCorrect)
		case ok:
			mark = wrongStyle.Render(markWrong)
		}
		b.WriteString(fmt.Sprintf("%s %s\n", mark, q.Prompt()))
	}

	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView([]key.Binding{quizKeys.Restart, quizKeys.Quit}))
	return b.String()
}
