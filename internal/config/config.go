package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server    ServerConfig
	Provider  string `envconfig:"LLM_PROVIDER" default:"ollama"`
	Ollama    OllamaConfig
	Anthropic AnthropicConfig
	OpenAI    OpenAIConfig
	Analysis  AnalysisConfig
	Assign    AssignConfig
}

type ServerConfig struct {
	Port         string        `envconfig:"SERVER_PORT" default:"8000"`
	Host         string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	ReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"60s"`
	WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"120s"`
}

type OllamaConfig struct {
	Endpoint    string        `envconfig:"OLLAMA_ENDPOINT" default:"http://localhost:11434"`
	Model       string        `envconfig:"OLLAMA_MODEL" default:"llama3.1"`
	MaxTokens   int64         `envconfig:"OLLAMA_MAX_TOKENS" default:"2048"`
	Temperature float64       `envconfig:"OLLAMA_TEMPERATURE" default:"0.2"`
	Timeout     time.Duration `envconfig:"OLLAMA_TIMEOUT" default:"90s"`
}

type AnthropicConfig struct {
	Endpoint    string        `envconfig:"ANTHROPIC_ENDPOINT" default:"https://api.anthropic.com"`
	APIKey      string        `envconfig:"ANTHROPIC_API_KEY"`
	Model       string        `envconfig:"ANTHROPIC_MODEL" default:"claude-sonnet-4-5-20250929"`
	MaxTokens   int64         `envconfig:"ANTHROPIC_MAX_TOKENS" default:"4096"`
	Temperature float64       `envconfig:"ANTHROPIC_TEMPERATURE" default:"0.2"`
	Timeout     time.Duration `envconfig:"ANTHROPIC_TIMEOUT" default:"60s"`
}

type OpenAIConfig struct {
	Endpoint    string        `envconfig:"OPENAI_ENDPOINT" default:"https://api.openai.com/v1"`
	APIKey      string        `envconfig:"OPENAI_API_KEY"`
	Model       string        `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	MaxTokens   int64         `envconfig:"OPENAI_MAX_TOKENS" default:"4096"`
	Temperature float64       `envconfig:"OPENAI_TEMPERATURE" default:"0.2"`
	Timeout     time.Duration `envconfig:"OPENAI_TIMEOUT" default:"60s"`
}

type AnalysisConfig struct {
	// MaxPromptRows bounds how many data rows are rendered into a prompt.
	MaxPromptRows int `envconfig:"ANALYSIS_MAX_PROMPT_ROWS" default:"50"`
}

type AssignConfig struct {
	// MinConfidence is the score below which no area suggestion is emitted.
	MinConfidence float64 `envconfig:"ASSIGN_MIN_CONFIDENCE" default:"0.3"`
}

func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("processing environment: %w", err)
	}
	return &cfg, nil
}
