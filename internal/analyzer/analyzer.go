// Package analyzer orchestrates the analysis pipeline: render the tabular
// data into a prompt, call the configured provider once, recover JSON from
// whatever text comes back, and normalize it into the stable result model.
package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/reportero-ai/reportero/apimodels"
	"github.com/reportero-ai/reportero/internal/extract"
	"github.com/reportero-ai/reportero/internal/llm"
	"github.com/reportero-ai/reportero/internal/narrative"
	"github.com/reportero-ai/reportero/internal/normalize"
	"github.com/reportero-ai/reportero/internal/tabular"
)

type Analyzer struct {
	provider      llm.Provider
	extractor     *extract.Extractor
	normalizer    *normalize.Normalizer
	synthesizer   *narrative.Synthesizer
	maxPromptRows int
	logger        *slog.Logger
}

func New(provider llm.Provider, extractor *extract.Extractor, normalizer *normalize.Normalizer, synthesizer *narrative.Synthesizer, maxPromptRows int, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		provider:      provider,
		extractor:     extractor,
		normalizer:    normalizer,
		synthesizer:   synthesizer,
		maxPromptRows: maxPromptRows,
		logger:        logger,
	}
}

// Analyze runs the full pipeline for one request. Exactly one provider
// call is made; there is no retry loop. Transport failures propagate to
// the caller, while unparseable model output degrades into a typed
// fallback result and still succeeds.
func (a *Analyzer) Analyze(ctx context.Context, req apimodels.AnalysisRequest) (*apimodels.AnalysisResponse, error) {
	startTime := time.Now()
	a.logger.Info("starting analysis", "rows", len(req.Data), "type", req.Config.AnalysisType)

	prompt := a.buildPrompt(req)

	raw, err := a.provider.GenerateText(ctx, prompt,
		llm.WithModel(req.Options.Model),
		llm.WithMaxTokens(req.Options.MaxTokens),
		llm.WithTemperature(req.Options.Temperature),
	)
	if err != nil {
		a.logger.Error("text generation failed", "provider", a.provider.Name(), "error", err)
		return nil, fmt.Errorf("generating analysis: %w", err)
	}

	jsonText, recovered := a.extractor.JSON(raw)
	result := a.normalizer.Analysis(jsonText)

	degraded := !recovered
	if degraded {
		a.logger.Warn("analysis degraded to fallback result", "provider", a.provider.Name())
	}

	response := &apimodels.AnalysisResponse{
		Result:    result,
		Narrative: a.synthesizer.FromAnalysis(result),
		Metadata: apimodels.AnalysisMetadata{
			Duration: time.Since(startTime).String(),
			Provider: a.provider.Name(),
			Model:    req.Options.Model,
			Rows:     len(req.Data),
			Degraded: degraded,
		},
	}

	a.logger.Info("analysis completed",
		"duration", response.Metadata.Duration,
		"insights", len(result.Insights),
		"trends", len(result.Trends),
		"degraded", degraded,
	)
	return response, nil
}

func (a *Analyzer) buildPrompt(req apimodels.AnalysisRequest) string {
	table := tabular.Render(req.Data, a.maxPromptRows)

	analysisType := req.Config.AnalysisType
	if analysisType == "" {
		analysisType = "general"
	}
	language := req.Config.Language
	if language == "" {
		language = "es"
	}
	tone := req.Config.Tone
	if tone == "" {
		tone = "professional"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Perform a %s analysis of the following business data. Write all text in language %q with a %s tone.\n\n", analysisType, language, tone))
	b.WriteString("Data:\n")
	b.WriteString(table)
	b.WriteString("\nRespond with a single JSON object, no markdown fences, shaped as:\n")
	b.WriteString(`{
  "title": "short title",
  "summary": "one-paragraph summary of the data",
  "insights": [{"title": "...", "description": "...", "severity": "Baja|Media|Alta", "confidence": 0.0, "impact": "..."}],
  "trends": [{"metric": "...", "direction": "up|down|stable", "change": 0.0, "description": "..."}],
  "recommendations": ["..."],
  "keyMetrics": {"metricName": "value"}
}`)
	return b.String()
}
