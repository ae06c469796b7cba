package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/scry-trivia/internal/config"
	"github.com/phrazzld/scry-trivia/internal/generation"
)

// validateConfig checks that the LLM configuration can produce a working client.
//
// Parameters:
//   - ctx: Context for logging
//   - logger: Logger for recording validation results
//   - cfg: The LLM configuration to validate
//
// Returns:
//   - An error wrapping generation.ErrInvalidConfig if validation fails, nil otherwise
func validateConfig(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) error {
	if cfg.GeminiAPIKey == "" {
		logger.ErrorContext(ctx, "Missing Gemini API key",
			"error", "GeminiAPIKey is empty")
		return fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		logger.ErrorContext(ctx, "Missing model name",
			"error", "ModelName is empty")
		return fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.APIVersion == "" {
		logger.ErrorContext(ctx, "Missing API version",
			"error", "APIVersion is empty")
		return fmt.Errorf("%w: api version cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.RequestTimeout <= 0 {
		// Not fatal: the request then relies on the caller's context only.
		logger.WarnContext(ctx, "No request timeout configured",
			"value", cfg.RequestTimeout)
	}

	return nil
}
