// cmd/server/main.go
package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/reportero-ai/reportero/internal/analyzer"
	"github.com/reportero-ai/reportero/internal/assign"
	"github.com/reportero-ai/reportero/internal/config"
	"github.com/reportero-ai/reportero/internal/extract"
	"github.com/reportero-ai/reportero/internal/llm"
	"github.com/reportero-ai/reportero/internal/narrative"
	"github.com/reportero-ai/reportero/internal/normalize"
	"github.com/reportero-ai/reportero/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	provider, err := llm.New(cfg, logger)
	if err != nil {
		log.Fatalf("failed to create provider: %v", err)
	}

	extractor := extract.New(logger)
	normalizer := normalize.New(logger)
	synthesizer := narrative.New(provider, extractor, normalizer, logger)
	pipeline := analyzer.New(provider, extractor, normalizer, synthesizer, cfg.Analysis.MaxPromptRows, logger)
	assigner := assign.New(cfg.Assign.MinConfidence, logger)

	srv := server.New(*cfg, pipeline, synthesizer, assigner, provider, logger)
	logger.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port, "provider", provider.Name())
	if err := srv.Run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
