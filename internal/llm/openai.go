package llm

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/reportero-ai/reportero/internal/config"
)

// OpenAI implements Provider using chat completions. It also covers any
// OpenAI-compatible endpoint via the configurable base URL.
type OpenAI struct {
	cfg        config.OpenAIConfig
	client     *openai.Client
	httpClient *http.Client
	logger     *slog.Logger
}

func NewOpenAI(cfg config.OpenAIConfig, logger *slog.Logger) *OpenAI {
	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.Endpoint),
	)
	return &OpenAI{
		cfg:        cfg,
		client:     client,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) GenerateText(ctx context.Context, prompt string, opts ...Option) (string, error) {
	options := &Options{
		Model:       o.cfg.Model,
		MaxTokens:   o.cfg.MaxTokens,
		Temperature: o.cfg.Temperature,
	}
	for _, opt := range opts {
		opt(options)
	}

	ctx, cancel := context.WithTimeout(ctx, o.cfg.Timeout)
	defer cancel()

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.F(options.Model),
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		}),
		Temperature: openai.F(options.Temperature),
		MaxTokens:   openai.F(options.MaxTokens),
	})
	if err != nil {
		var apierr *openai.Error
		if errors.As(err, &apierr) {
			o.logger.Error("openai request failed", "status", apierr.StatusCode)
			return "", &TransportError{Provider: o.Name(), StatusCode: apierr.StatusCode, Body: apierr.Error(), Err: err}
		}
		return "", &TransportError{Provider: o.Name(), Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", &TransportError{Provider: o.Name(), Err: errors.New("no choices in response")}
	}

	content := resp.Choices[0].Message.Content
	o.logger.Debug("openai response received", "model", options.Model, "size", len(content))
	return content, nil
}

func (o *OpenAI) HealthCheck(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.cfg.Endpoint+"/models", nil)
	if err != nil {
		return false
	}
	req.Header.Set("Authorization", "Bearer "+o.cfg.APIKey)
	resp, err := o.httpClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
