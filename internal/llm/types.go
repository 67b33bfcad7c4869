package llm

import (
	"context"
	"fmt"
)

// Provider is a text-generation backend. The three implementations
// (Ollama, Anthropic, OpenAI) are interchangeable behind this interface
// and selected by configuration.
type Provider interface {
	// GenerateText sends a single prompt and returns the raw model text.
	// The caller is responsible for recovering structure from it.
	GenerateText(ctx context.Context, prompt string, opts ...Option) (string, error)

	// HealthCheck reports whether the backend is reachable. It never
	// returns an error; failures are swallowed and reported as false.
	HealthCheck(ctx context.Context) bool

	// Name identifies the provider in logs and metadata.
	Name() string
}

type Option func(*Options)

type Options struct {
	Model       string
	MaxTokens   int64
	Temperature float64
}

func WithModel(model string) Option {
	return func(o *Options) {
		if model != "" {
			o.Model = model
		}
	}
}

func WithMaxTokens(n int64) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxTokens = n
		}
	}
}

func WithTemperature(t float64) Option {
	return func(o *Options) {
		if t > 0 {
			o.Temperature = t
		}
	}
}

// TransportError is a failed round-trip to a provider: unreachable host,
// timeout, or a non-2xx status. It is terminal for the request; nothing
// in this package retries.
type TransportError struct {
	Provider   string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
