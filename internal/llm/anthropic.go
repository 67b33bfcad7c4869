package llm

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/reportero-ai/reportero/internal/config"
)

// Anthropic implements Provider on top of the Messages API.
type Anthropic struct {
	cfg        config.AnthropicConfig
	client     anthropic.Client
	httpClient *http.Client
	logger     *slog.Logger
}

func NewAnthropic(cfg config.AnthropicConfig, logger *slog.Logger) *Anthropic {
	client := anthropic.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.Endpoint),
	)
	return &Anthropic{
		cfg:        cfg,
		client:     client,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

func (a *Anthropic) Name() string { return "anthropic" }

func (a *Anthropic) GenerateText(ctx context.Context, prompt string, opts ...Option) (string, error) {
	options := &Options{
		Model:       a.cfg.Model,
		MaxTokens:   a.cfg.MaxTokens,
		Temperature: a.cfg.Temperature,
	}
	for _, opt := range opts {
		opt(options)
	}

	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(options.Model),
		MaxTokens:   options.MaxTokens,
		Temperature: anthropic.Float(options.Temperature),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		var apierr *anthropic.Error
		if errors.As(err, &apierr) {
			a.logger.Error("anthropic request failed", "status", apierr.StatusCode)
			return "", &TransportError{Provider: a.Name(), StatusCode: apierr.StatusCode, Body: apierr.Error(), Err: err}
		}
		return "", &TransportError{Provider: a.Name(), Err: err}
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			a.logger.Debug("anthropic response received", "model", options.Model, "size", len(block.Text))
			return block.Text, nil
		}
	}
	return "", &TransportError{Provider: a.Name(), Err: errors.New("no text content in response")}
}

// HealthCheck probes endpoint reachability; any HTTP response counts as
// alive since an unauthenticated GET is rejected with a status, not a
// transport failure.
func (a *Anthropic) HealthCheck(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.cfg.Endpoint, nil)
	if err != nil {
		return false
	}
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}
