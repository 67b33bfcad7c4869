package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/reportero-ai/reportero/internal/config"
)

// maxOllamaTemperature caps generation randomness for the local model;
// structured-output extraction degrades badly above it.
const maxOllamaTemperature = 0.3

// Ollama talks to a local Ollama server over its native REST API.
type Ollama struct {
	cfg    config.OllamaConfig
	client *http.Client
	logger *slog.Logger
}

func NewOllama(cfg config.OllamaConfig, logger *slog.Logger) *Ollama {
	return &Ollama{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

func (o *Ollama) Name() string { return "ollama" }

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Format  string        `json:"format,omitempty"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int64   `json:"num_predict,omitempty"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

func (o *Ollama) GenerateText(ctx context.Context, prompt string, opts ...Option) (string, error) {
	options := &Options{
		Model:       o.cfg.Model,
		MaxTokens:   o.cfg.MaxTokens,
		Temperature: o.cfg.Temperature,
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.Temperature > maxOllamaTemperature {
		options.Temperature = maxOllamaTemperature
	}

	reqBody := ollamaRequest{
		Model:  options.Model,
		Prompt: prompt,
		Stream: false,
		Format: "json",
		Options: ollamaOptions{
			Temperature: options.Temperature,
			NumPredict:  options.MaxTokens,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling ollama request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.cfg.Endpoint+"/api/generate", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", &TransportError{Provider: o.Name(), Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Provider: o.Name(), Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		o.logger.Error("ollama request failed", "status", resp.StatusCode, "body", string(respBody))
		return "", &TransportError{Provider: o.Name(), StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var envelope ollamaResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return "", fmt.Errorf("parsing ollama response: %w", err)
	}

	o.logger.Debug("ollama response received", "model", options.Model, "size", len(envelope.Response))
	return envelope.Response, nil
}

func (o *Ollama) HealthCheck(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.cfg.Endpoint+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
