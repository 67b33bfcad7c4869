package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reportero-ai/reportero/internal/config"
)

func anthropicConfig(endpoint string) config.AnthropicConfig {
	return config.AnthropicConfig{
		Endpoint:    endpoint,
		APIKey:      "test-key",
		Model:       "claude-sonnet-4-5-20250929",
		MaxTokens:   128,
		Temperature: 0.2,
		Timeout:     5 * time.Second,
	}
}

const anthropicMessageBody = `{
	"id": "msg_1",
	"type": "message",
	"role": "assistant",
	"model": "claude-sonnet-4-5-20250929",
	"content": [{"type": "text", "text": "ok"}],
	"stop_reason": "end_turn",
	"usage": {"input_tokens": 1, "output_tokens": 1}
}`

func TestAnthropicSendsConfiguredTemperature(t *testing.T) {
	var captured map[string]interface{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(anthropicMessageBody))
	}))
	defer ts.Close()

	a := NewAnthropic(anthropicConfig(ts.URL), discardLogger())

	out, err := a.GenerateText(context.Background(), "p")

	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	temp, ok := captured["temperature"].(float64)
	require.True(t, ok, "request body must carry a temperature")
	assert.InDelta(t, 0.2, temp, 1e-9)
}

func TestAnthropicTemperatureOverride(t *testing.T) {
	var captured map[string]interface{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(anthropicMessageBody))
	}))
	defer ts.Close()

	a := NewAnthropic(anthropicConfig(ts.URL), discardLogger())

	_, err := a.GenerateText(context.Background(), "p", WithTemperature(0.7), WithModel("claude-opus-4"))

	require.NoError(t, err)
	assert.InDelta(t, 0.7, captured["temperature"].(float64), 1e-9)
	assert.Equal(t, "claude-opus-4", captured["model"])
}
