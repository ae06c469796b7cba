package tui

import (
	"context"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/scry-trivia/internal/events"
	"github.com/phrazzld/scry-trivia/internal/platform/logger"
	"github.com/phrazzld/scry-trivia/internal/trivia"
)

const testBatchSize = 5

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	right = tea.KeyMsg{Type: tea.KeyRight}
	left  = tea.KeyMsg{Type: tea.KeyLeft}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	ctrlC = tea.KeyMsg{Type: tea.KeyCtrlC}
)

// collect runs cmd and every command nested in batches, returning the
// resulting messages in order.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, collect(c)...)
	}
	return out
}

// drive feeds the messages produced by cmd back into model until no command
// is left, skipping spinner ticks so the loop terminates.
func drive(t *testing.T, model tea.Model, cmd tea.Cmd) tea.Model {
	t.Helper()

	for i := 0; cmd != nil; i++ {
		require.Less(t, i, 20, "command loop did not settle")
		var next []tea.Cmd
		for _, msg := range collect(cmd) {
			if isTick(msg) {
				continue
			}
			var c tea.Cmd
			model, c = model.Update(msg)
			next = append(next, c)
		}
		cmd = tea.Batch(next...)
	}
	return model
}

// isTick reports messages that drive would loop on forever or that end the program.
func isTick(msg tea.Msg) bool {
	switch msg.(type) {
	case spinner.TickMsg, tea.QuitMsg:
		return true
	}
	return false
}

type eventLog struct {
	mu    sync.Mutex
	types []string
}

func (l *eventLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.types...)
}

func newQuiz(t *testing.T, src trivia.QuestionSource, policy trivia.RetryPolicy) (*QuizModel, *eventLog) {
	t.Helper()

	log, _ := logger.GetTestLogger(t)
	emitter := events.NewInMemoryEmitter(log)
	recorded := &eventLog{}
	emitter.RegisterHandler(events.HandlerFunc(func(_ context.Context, e *events.Event) error {
		recorded.mu.Lock()
		defer recorded.mu.Unlock()
		recorded.types = append(recorded.types, e.Type)
		return nil
	}))

	game, err := trivia.NewGame(trivia.NewSession(testBatchSize), src, policy, emitter, log)
	require.NoError(t, err)
	return NewQuizModel(context.Background(), game, log), recorded
}

// press sends a key and runs whatever it triggers.
func press(t *testing.T, m tea.Model, k tea.KeyMsg) tea.Cmd {
	t.Helper()
	_, cmd := m.Update(k)
	return cmd
}
