package trivia

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"text/template"

	"github.com/phrazzld/scry-trivia/internal/config"
	"github.com/phrazzld/scry-trivia/internal/generation"
	"github.com/phrazzld/scry-trivia/internal/platform/logger"
	"github.com/phrazzld/scry-trivia/internal/redact"
)

//go:embed prompt.tmpl
var defaultPromptTemplate string

// QuestionSource produces one batch of questions per call.
type QuestionSource interface {
	FetchQuestions(ctx context.Context) ([]Question, error)
}

// promptData is the data available to the quiz prompt template.
type promptData struct {
	Count int
	Topic string
}

// GeneratedSource asks a text generator for questions and parses the reply.
type GeneratedSource struct {
	generator generation.TextGenerator
	template  *template.Template
	data      promptData
	logger    *slog.Logger
}

var _ QuestionSource = (*GeneratedSource)(nil)

// NewGeneratedSource creates a GeneratedSource for cfg. The prompt comes from
// cfg.PromptTemplatePath when set, otherwise from the built-in template.
func NewGeneratedSource(
	generator generation.TextGenerator,
	cfg config.QuizConfig,
	log *slog.Logger,
) (*GeneratedSource, error) {
	if generator == nil {
		return nil, fmt.Errorf("%w: generator cannot be nil", generation.ErrInvalidConfig)
	}
	if log == nil {
		return nil, fmt.Errorf("%w: logger cannot be nil", generation.ErrInvalidConfig)
	}

	text := defaultPromptTemplate
	name := "default"
	if cfg.PromptTemplatePath != "" {
		content, err := os.ReadFile(cfg.PromptTemplatePath)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read prompt template from %s: %v",
				generation.ErrInvalidConfig, cfg.PromptTemplatePath, err)
		}
		text = string(content)
		name = cfg.PromptTemplatePath
	}

	tmpl, err := template.New("quiz").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v", generation.ErrInvalidConfig, err)
	}

	log.Debug("quiz prompt template loaded", "template", name)

	return &GeneratedSource{
		generator: generator,
		template:  tmpl,
		data:      promptData{Count: cfg.QuestionCount, Topic: cfg.Topic},
		logger:    log,
	}, nil
}

// Prompt renders the quiz prompt.
func (s *GeneratedSource) Prompt() (string, error) {
	var buf bytes.Buffer
	if err := s.template.Execute(&buf, s.data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}

// FetchQuestions performs one generation request and parses the reply.
// Generator failures are returned unchanged, parse failures as *ParseError.
// It logs through the logger carried by ctx when there is one.
func (s *GeneratedSource) FetchQuestions(ctx context.Context) ([]Question, error) {
	log := logger.FromContext(ctx, s.logger).With("component", "question_source")

	prompt, err := s.Prompt()
	if err != nil {
		return nil, err
	}

	raw, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		log.ErrorContext(ctx, "question generation failed", "error", redact.Error(err))
		return nil, err
	}

	log.DebugContext(ctx, "received question text", "length", len(raw), "text", redact.String(raw))

	questions, err := ParseQuestions(raw)
	if err != nil {
		var parseErr *ParseError
		attrs := []any{"error", err}
		if errors.As(err, &parseErr) {
			attrs = append(attrs, "kind", parseErr.Kind.Error(), "index", parseErr.Index)
		}
		log.ErrorContext(ctx, "failed to parse questions", attrs...)
		return nil, err
	}

	for i, q := range questions {
		if !q.Scorable() {
			log.WarnContext(ctx, "correct answer matches none of the options",
				"index", i,
				"correct_answer", q.CorrectAnswer())
		}
	}

	log.InfoContext(ctx, "questions parsed", "count", len(questions))
	return questions, nil
}
