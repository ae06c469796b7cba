package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"

	"github.com/phrazzld/scry-trivia/internal/config"
	"github.com/phrazzld/scry-trivia/internal/generation"
	"github.com/phrazzld/scry-trivia/internal/redact"
	"google.golang.org/genai"
)

// Client implements the generation.TextGenerator interface using
// Google's Gemini API.
type Client struct {
	// logger is used for structured logging
	logger *slog.Logger

	// client is the Gemini API client for making requests
	client *genai.Client

	// model is the name of the Gemini model to use
	model string
}

var _ generation.TextGenerator = (*Client)(nil)

// NewClient creates a new instance of Client with the provided dependencies.
//
// Parameters:
//   - ctx: Context for the operation, which can be used for cancellation
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration containing API key, model name, and transport settings
//
// Returns:
//   - A properly initialized Client or an error wrapping generation.ErrInvalidConfig
func NewClient(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	logger = logger.With("component", "gemini_client")

	if err := validateConfig(ctx, logger, cfg); err != nil {
		return nil, err
	}

	clientConfig := &genai.ClientConfig{
		APIKey:     cfg.GeminiAPIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.RequestTimeout},
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    cfg.BaseURL,
			APIVersion: cfg.APIVersion,
		},
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, redact.Error(err))
	}

	logger.InfoContext(ctx, "Gemini client initialized",
		"model", cfg.ModelName,
		"api_version", cfg.APIVersion,
		"custom_base_url", cfg.BaseURL != "")

	return &Client{
		logger: logger,
		client: client,
		model:  cfg.ModelName,
	}, nil
}

// GenerateText sends prompt in a single generateContent request and returns
// the text of the first part of the first candidate.
//
// An empty prompt returns generation.ErrEmptyPrompt without a request.
// Other failures are returned as *generation.RequestError:
//   - generation.ErrTransport when the API answers with a non-success status,
//     the network fails or ctx ends
//   - generation.ErrUnexpectedShape when a success reply cannot be decoded or
//     carries no usable candidate text
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", generation.ErrEmptyPrompt
	}

	c.logger.DebugContext(ctx, "Making Gemini API call",
		"model", c.model,
		"prompt_length", len(prompt))

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		reqErr := classifyCallError(err)
		c.logger.ErrorContext(ctx, "Gemini API call failed",
			"status", reqErr.StatusCode,
			"error", redact.Error(err))
		return "", reqErr
	}

	text, err := firstText(resp)
	if err != nil {
		c.logger.ErrorContext(ctx, "Gemini API returned an unusable response",
			"error", redact.Error(err))
		return "", err
	}

	c.logger.InfoContext(ctx, "Gemini API call successful",
		"candidates", len(resp.Candidates),
		"text_length", len(text))

	return text, nil
}

// classifyCallError maps an error from the genai client to a RequestError.
// API answers with an error status, network failures and context errors are
// transport failures; anything else (a success status with a body genai could
// not decode) is an unexpected shape.
func classifyCallError(err error) *generation.RequestError {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return generation.NewTransportError(apiErr.Code, err)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return generation.NewTransportError(apiErrPtr.Code, err)
	}

	var urlErr *url.Error
	var netErr net.Error
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return generation.NewTransportError(0, err)
	case errors.As(err, &urlErr), errors.As(err, &netErr):
		return generation.NewTransportError(0, err)
	default:
		return generation.NewShapeError(err)
	}
}

// firstText extracts candidates[0].content.parts[0].text from resp.
func firstText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", generation.NewShapeError(errors.New("nil response"))
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", generation.NewShapeError(errors.New("no candidates in response"))
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", generation.NewShapeError(generation.ErrContentBlocked)
	}

	if candidate.Content == nil {
		return "", generation.NewShapeError(errors.New("empty content in first candidate"))
	}

	if len(candidate.Content.Parts) == 0 || candidate.Content.Parts[0] == nil {
		return "", generation.NewShapeError(errors.New("no parts in first candidate"))
	}

	text := candidate.Content.Parts[0].Text
	if text == "" {
		return "", generation.NewShapeError(errors.New("first part has no text"))
	}

	return text, nil
}
