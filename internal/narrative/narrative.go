// Package narrative derives human-readable prose from a structured
// analysis. The default path is a deterministic projection with no model
// call: chaining two generations would compound their unreliability.
package narrative

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/reportero-ai/reportero/apimodels"
	"github.com/reportero-ai/reportero/internal/extract"
	"github.com/reportero-ai/reportero/internal/llm"
	"github.com/reportero-ai/reportero/internal/normalize"
)

const defaultTitle = "Analysis of Data"

type Synthesizer struct {
	provider   llm.Provider
	extractor  *extract.Extractor
	normalizer *normalize.Normalizer
	logger     *slog.Logger
}

func New(provider llm.Provider, extractor *extract.Extractor, normalizer *normalize.Normalizer, logger *slog.Logger) *Synthesizer {
	return &Synthesizer{
		provider:   provider,
		extractor:  extractor,
		normalizer: normalizer,
		logger:     logger,
	}
}

// FromAnalysis projects analysis fields into a narrative without a second
// model call. Deterministic apart from the minted id and timestamp.
func (s *Synthesizer) FromAnalysis(analysis apimodels.AnalysisResult) apimodels.NarrativeResult {
	title := analysis.Title
	if title == "" {
		title = defaultTitle
	}

	keyPoints := make([]string, 0, len(analysis.Insights))
	for _, insight := range analysis.Insights {
		if insight.Title != "" {
			keyPoints = append(keyPoints, insight.Title)
		}
	}

	content := extract.CleanContent(analysis.Summary)

	return apimodels.NarrativeResult{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		KeyPoints: keyPoints,
		Sections: map[string]string{
			"Executive Summary": content,
		},
		GeneratedAt: time.Now().UTC(),
	}
}

// Customize applies free-text modifications to an existing narrative.
// This is the one place a genuine second generation call is unavoidable,
// so it follows the same extract-then-normalize discipline as analysis.
// Transport failures propagate; unparseable output degrades in place.
func (s *Synthesizer) Customize(ctx context.Context, current apimodels.NarrativeResult, modifications string, opts ...llm.Option) (apimodels.NarrativeResult, error) {
	prompt := s.buildCustomizePrompt(current, modifications)

	raw, err := s.provider.GenerateText(ctx, prompt, opts...)
	if err != nil {
		return apimodels.NarrativeResult{}, fmt.Errorf("customizing narrative: %w", err)
	}

	jsonText, recovered := s.extractor.JSON(raw)
	if !recovered {
		// Keep the caller's prose rather than replacing it with an error
		// envelope; a failed edit leaves the narrative unchanged.
		s.logger.Warn("narrative customization output unparseable, keeping original", "id", current.ID)
		return current, nil
	}

	updated := s.normalizer.Narrative(jsonText)
	updated.ID = current.ID
	updated.Content = extract.CleanContent(updated.Content)

	if updated.Content == "" {
		updated.Content = current.Content
	}
	if updated.Title == "" {
		updated.Title = current.Title
	}
	if len(updated.KeyPoints) == 0 {
		updated.KeyPoints = current.KeyPoints
	}
	if len(updated.Sections) == 0 {
		updated.Sections = current.Sections
	}

	s.logger.Info("narrative customized", "id", updated.ID, "size", len(updated.Content))
	return updated, nil
}

func (s *Synthesizer) buildCustomizePrompt(current apimodels.NarrativeResult, modifications string) string {
	var b strings.Builder
	b.WriteString("Revise the following report narrative according to the requested modifications.\n\n")
	b.WriteString("Current narrative:\n")
	b.WriteString(fmt.Sprintf("Title: %s\n", current.Title))
	b.WriteString(fmt.Sprintf("Content: %s\n", current.Content))
	if len(current.KeyPoints) > 0 {
		b.WriteString(fmt.Sprintf("Key points: %s\n", strings.Join(current.KeyPoints, "; ")))
	}
	b.WriteString("\nRequested modifications:\n")
	b.WriteString(modifications)
	b.WriteString("\n\nRespond with a single JSON object, no markdown fences, shaped as:\n")
	b.WriteString(`{"title": "...", "content": "plain prose", "keyPoints": ["..."], "sections": {"Executive Summary": "..."}}`)
	return b.String()
}
