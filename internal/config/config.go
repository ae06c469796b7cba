package config

import (
	"errors"
	"time"
)

// ErrMissingAPIKey is returned by ValidateCredentials when no Gemini API key is configured.
var ErrMissingAPIKey = errors.New("gemini API key is not configured")

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	LLM  LLMConfig  `mapstructure:"llm" validate:"required"`
	Quiz QuizConfig `mapstructure:"quiz" validate:"required"`
	Ask  AskConfig  `mapstructure:"ask" validate:"required"`
	Log  LogConfig  `mapstructure:"log" validate:"required"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	// GeminiAPIKey is sent as-is in the x-goog-api-key header. It may be empty
	// after Load; callers check ValidateCredentials before the first request.
	GeminiAPIKey   string        `mapstructure:"gemini_api_key"`
	ModelName      string        `mapstructure:"model_name" validate:"required"`
	BaseURL        string        `mapstructure:"base_url" validate:"omitempty,url"`
	APIVersion     string        `mapstructure:"api_version" validate:"required"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"gte=0"`
}

// QuizConfig contains the trivia quiz settings.
type QuizConfig struct {
	QuestionCount      int         `mapstructure:"question_count" validate:"required,min=1,max=20"`
	Topic              string      `mapstructure:"topic" validate:"required"`
	PromptTemplatePath string      `mapstructure:"prompt_template_path" validate:"omitempty,file"`
	Retry              RetryConfig `mapstructure:"retry"`
}

// RetryConfig controls how a failed question fetch is retried.
// MaxAttempts of zero means keep retrying for as long as the user acknowledges.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts" validate:"gte=0"`
	BaseDelay   time.Duration `mapstructure:"base_delay" validate:"gte=0"`
	MaxDelay    time.Duration `mapstructure:"max_delay" validate:"gte=0"`
}

// AskConfig contains the single prompt screen settings.
type AskConfig struct {
	Prompt string `mapstructure:"prompt" validate:"required"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	// File is where log records are written. The terminal belongs to the UI,
	// so logs never go to stdout.
	File string `mapstructure:"file"`
}

// ValidateCredentials reports whether the configuration can authenticate
// against the Gemini API.
func (c *Config) ValidateCredentials() error {
	if c.LLM.GeminiAPIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}
