package trivia_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/phrazzld/scry-trivia/internal/config"
	"github.com/phrazzld/scry-trivia/internal/generation"
	"github.com/phrazzld/scry-trivia/internal/mocks"
	"github.com/phrazzld/scry-trivia/internal/platform/logger"
	"github.com/phrazzld/scry-trivia/internal/trivia"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quizConfig() config.QuizConfig {
	return config.QuizConfig{QuestionCount: 5, Topic: "astronomy"}
}

func TestNewGeneratedSourceValidation(t *testing.T) {
	t.Parallel()

	log, _ := logger.GetTestLogger(t)
	gen := mocks.NewMockTextGeneratorWithText("[]")

	_, err := trivia.NewGeneratedSource(nil, quizConfig(), log)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	_, err = trivia.NewGeneratedSource(gen, quizConfig(), nil)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	cfg := quizConfig()
	cfg.PromptTemplatePath = filepath.Join(t.TempDir(), "missing.tmpl")
	_, err = trivia.NewGeneratedSource(gen, cfg, log)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	bad := filepath.Join(t.TempDir(), "bad.tmpl")
	require.NoError(t, os.WriteFile(bad, []byte("{{.Count"), 0o600))
	cfg.PromptTemplatePath = bad
	_, err = trivia.NewGeneratedSource(gen, cfg, log)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

func TestGeneratedSourcePrompt(t *testing.T) {
	t.Parallel()

	log, _ := logger.GetTestLogger(t)

	t.Run("default template", func(t *testing.T) {
		t.Parallel()

		src, err := trivia.NewGeneratedSource(mocks.NewMockTextGeneratorWithText(""), quizConfig(), log)
		require.NoError(t, err)

		prompt, err := src.Prompt()
		require.NoError(t, err)
		assert.Contains(t, prompt, "exactly 5 multiple-choice trivia questions about astronomy")
		assert.Contains(t, prompt, "correctAnswer")
	})

	t.Run("override file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "prompt.tmpl")
		require.NoError(t, os.WriteFile(path, []byte("{{.Count}} about {{.Topic}}"), 0o600))

		cfg := quizConfig()
		cfg.PromptTemplatePath = path
		src, err := trivia.NewGeneratedSource(mocks.NewMockTextGeneratorWithText(""), cfg, log)
		require.NoError(t, err)

		prompt, err := src.Prompt()
		require.NoError(t, err)
		assert.Equal(t, "5 about astronomy", prompt)
	})

	t.Run("unknown field fails at execution", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "prompt.tmpl")
		require.NoError(t, os.WriteFile(path, []byte("{{.Difficulty}}"), 0o600))

		cfg := quizConfig()
		cfg.PromptTemplatePath = path
		src, err := trivia.NewGeneratedSource(mocks.NewMockTextGeneratorWithText(""), cfg, log)
		require.NoError(t, err)

		_, err = src.Prompt()
		assert.Error(t, err)
	})
}

func TestGeneratedSourceFetchQuestions(t *testing.T) {
	t.Parallel()

	t.Run("parses fenced reply", func(t *testing.T) {
		t.Parallel()

		log, _ := logger.GetTestLogger(t)
		gen := mocks.NewMockTextGeneratorWithText("```json\n" + mocks.QuestionsJSON(5) + "\n```")
		src, err := trivia.NewGeneratedSource(gen, quizConfig(), log)
		require.NoError(t, err)

		qs, err := src.FetchQuestions(context.Background())
		require.NoError(t, err)
		assert.Equal(t, mocks.SampleQuestions(5), qs)

		require.Equal(t, 1, gen.CallCount())
		assert.Contains(t, gen.GenerateTextCalls.Prompts[0], "astronomy")
	})

	t.Run("generator failure is returned unchanged", func(t *testing.T) {
		t.Parallel()

		log, _ := logger.GetTestLogger(t)
		gen := mocks.MockTextGeneratorWithTransportFailure(500)
		src, err := trivia.NewGeneratedSource(gen, quizConfig(), log)
		require.NoError(t, err)

		qs, err := src.FetchQuestions(context.Background())
		assert.Nil(t, qs)
		assert.ErrorIs(t, err, generation.ErrTransport)
	})

	t.Run("parse failure", func(t *testing.T) {
		t.Parallel()

		log, buf := logger.GetTestLogger(t)
		gen := mocks.NewMockTextGeneratorWithText("Sorry, I can't do that.")
		src, err := trivia.NewGeneratedSource(gen, quizConfig(), log)
		require.NoError(t, err)

		qs, err := src.FetchQuestions(context.Background())
		assert.Nil(t, qs)
		assert.ErrorIs(t, err, trivia.ErrMalformedJSON)
		logger.AssertLogContains(t, buf, "failed to parse questions")
	})

	t.Run("logs through the context logger", func(t *testing.T) {
		t.Parallel()

		log, buf := logger.GetTestLogger(t)
		ctxLog, ctxBuf := logger.GetTestLogger(t)
		gen := mocks.NewMockTextGeneratorWithText(mocks.QuestionsJSON(5))
		src, err := trivia.NewGeneratedSource(gen, quizConfig(), log)
		require.NoError(t, err)

		ctx := logger.WithLogger(context.Background(), ctxLog.With("request", "r-1"))
		_, err = src.FetchQuestions(ctx)
		require.NoError(t, err)

		logger.AssertLogField(t, ctxBuf, "request", "r-1")
		logger.AssertLogField(t, ctxBuf, "component", "question_source")
		assert.NotContains(t, buf.String(), "questions parsed")
	})

	t.Run("warns about unscorable questions", func(t *testing.T) {
		t.Parallel()

		log, buf := logger.GetTestLogger(t)
		gen := mocks.NewMockTextGeneratorWithText(
			`[{"question":"Q?","options":["a","b","c","d"],"correctAnswer":"e"}]`)
		src, err := trivia.NewGeneratedSource(gen, quizConfig(), log)
		require.NoError(t, err)

		qs, err := src.FetchQuestions(context.Background())
		require.NoError(t, err)
		assert.Len(t, qs, 1)
		logger.AssertLogContains(t, buf, "correct answer matches none of the options")
		logger.AssertLogField(t, buf, "correct_answer", "e")
	})
}
