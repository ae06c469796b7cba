package ask

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/phrazzld/scry-trivia/internal/generation"
	"github.com/phrazzld/scry-trivia/internal/redact"
)

// Service sends free-text prompts to a text generator.
type Service struct {
	generator generation.TextGenerator
	logger    *slog.Logger
}

// NewService creates a Service.
func NewService(generator generation.TextGenerator, logger *slog.Logger) (*Service, error) {
	if generator == nil {
		return nil, errors.New("generator cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Service{
		generator: generator,
		logger:    logger.With("component", "ask_service"),
	}, nil
}

// Ask performs one request for prompt and returns the reply text.
func (s *Service) Ask(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	s.logger.InfoContext(ctx, "sending prompt", "prompt_length", len(prompt))

	text, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		s.logger.ErrorContext(ctx, "prompt failed", "error", redact.Error(err))
		return "", err
	}

	s.logger.InfoContext(ctx, "received reply", "reply_length", len(text))
	return text, nil
}
