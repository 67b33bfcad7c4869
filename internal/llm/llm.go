package llm

import (
	"fmt"
	"log/slog"

	"github.com/reportero-ai/reportero/internal/config"
)

const systemPrompt = `You are a business data analyst. You answer with a single JSON object and nothing else: no prose before or after it, no markdown code fences.`

// New selects the configured provider variant.
func New(cfg *config.Config, logger *slog.Logger) (Provider, error) {
	switch cfg.Provider {
	case "ollama":
		return NewOllama(cfg.Ollama, logger), nil
	case "anthropic":
		return NewAnthropic(cfg.Anthropic, logger), nil
	case "openai":
		return NewOpenAI(cfg.OpenAI, logger), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
