package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/scry-trivia/internal/config"
	"github.com/phrazzld/scry-trivia/internal/generation"
	"github.com/phrazzld/scry-trivia/internal/mocks"
	"github.com/phrazzld/scry-trivia/internal/platform/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		LLM: config.LLMConfig{
			GeminiAPIKey:   "test-key",
			ModelName:      config.DefaultModelName,
			APIVersion:     config.DefaultAPIVersion,
			RequestTimeout: time.Second,
		},
		Quiz: config.QuizConfig{
			QuestionCount: 5,
			Topic:         config.DefaultTopic,
		},
		Ask: config.AskConfig{Prompt: config.DefaultAskPrompt},
		Log: config.LogConfig{Level: "debug"},
	}
}

func TestNewApplication(t *testing.T) {
	t.Parallel()

	log, _ := logger.GetTestLogger(t)

	app, err := newApplication(context.Background(), testConfig(), log)
	require.NoError(t, err)
	assert.NotNil(t, app.generator)
	assert.NotNil(t, app.eventEmitter)

	cfg := testConfig()
	cfg.LLM.GeminiAPIKey = ""
	_, err = newApplication(context.Background(), cfg, log)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

func TestApplicationQuizModel(t *testing.T) {
	t.Parallel()

	log, buf := logger.GetTestLogger(t)
	gen := mocks.NewMockTextGeneratorWithText(mocks.QuestionsJSON(5))
	app := newApplicationWithGenerator(testConfig(), log, gen)

	model, err := app.quizModel(context.Background())
	require.NoError(t, err)

	// Init begins loading, which is reported through the log handler.
	require.NotNil(t, model.Init())
	logger.AssertLogField(t, buf, "event_type", "quiz.loading")

	cfg := testConfig()
	cfg.Quiz.PromptTemplatePath = "/does/not/exist.tmpl"
	app = newApplicationWithGenerator(cfg, log, gen)
	_, err = app.quizModel(context.Background())
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

func TestApplicationAskModel(t *testing.T) {
	t.Parallel()

	log, _ := logger.GetTestLogger(t)
	gen := mocks.NewMockTextGeneratorWithText("short answer")
	app := newApplicationWithGenerator(testConfig(), log, gen)

	model, err := app.askModel(context.Background(), "")
	require.NoError(t, err)
	assert.Contains(t, model.View(), config.DefaultAskPrompt)

	model, err = app.askModel(context.Background(), "custom prompt")
	require.NoError(t, err)
	assert.Contains(t, model.View(), "custom prompt")
}
