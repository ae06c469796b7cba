package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/scry-trivia/internal/ask"
	"github.com/phrazzld/scry-trivia/internal/config"
	"github.com/phrazzld/scry-trivia/internal/events"
	"github.com/phrazzld/scry-trivia/internal/generation"
	"github.com/phrazzld/scry-trivia/internal/platform/gemini"
	"github.com/phrazzld/scry-trivia/internal/trivia"
	"github.com/phrazzld/scry-trivia/internal/tui"
)

// application holds the shared dependencies of both screens.
type application struct {
	config *config.Config
	logger *slog.Logger

	generator    generation.TextGenerator
	eventEmitter *events.InMemoryEmitter
}

// newApplication creates the Gemini client and event system for cfg.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	client, err := gemini.NewClient(ctx, logger, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return newApplicationWithGenerator(cfg, logger, client), nil
}

// newApplicationWithGenerator wires the event system around generator.
func newApplicationWithGenerator(
	cfg *config.Config,
	logger *slog.Logger,
	generator generation.TextGenerator,
) *application {
	emitter := events.NewInMemoryEmitter(logger)
	emitter.RegisterHandler(events.NewLogHandler(logger))

	return &application{
		config:       cfg,
		logger:       logger,
		generator:    generator,
		eventEmitter: emitter,
	}
}

// quizModel builds the quiz screen.
func (app *application) quizModel(ctx context.Context) (*tui.QuizModel, error) {
	source, err := trivia.NewGeneratedSource(app.generator, app.config.Quiz, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create question source: %w", err)
	}

	game, err := trivia.NewGame(
		trivia.NewSession(app.config.Quiz.QuestionCount),
		source,
		trivia.PolicyFromConfig(app.config.Quiz.Retry),
		app.eventEmitter,
		app.logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return tui.NewQuizModel(ctx, game, app.logger), nil
}

// askModel builds the single prompt screen. An empty prompt falls back to
// the configured one.
func (app *application) askModel(ctx context.Context, prompt string) (*tui.AskModel, error) {
	if prompt == "" {
		prompt = app.config.Ask.Prompt
	}

	service, err := ask.NewService(app.generator, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create ask service: %w", err)
	}

	return tui.NewAskModel(ctx, service, prompt, app.logger), nil
}
