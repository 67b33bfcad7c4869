// Package normalize maps extracted JSON of varying shape into the fixed
// internal result model. Field presence, key casing and value kinds all
// vary by provider, so every field is recovered independently: a bad
// field gets its empty default and never invalidates the rest.
package normalize

import (
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	"github.com/reportero-ai/reportero/apimodels"
)

// stringPreviewLimit bounds string fields that actually contain JSON;
// at this level they are display text, not data to deserialize further.
const stringPreviewLimit = 100

const missingSummary = "No summary was provided by the analysis."

type Normalizer struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// Analysis builds an AnalysisResult from jsonText. It never fails:
// summary is always non-empty and the slices are always non-nil.
// GeneratedAt is the normalization time, never a model-supplied value.
func (n *Normalizer) Analysis(jsonText string) apimodels.AnalysisResult {
	doc := gjson.Parse(jsonText)

	result := apimodels.AnalysisResult{
		Title:           stringField(doc, "title", ""),
		Summary:         stringField(doc, "summary", missingSummary),
		Insights:        n.insights(doc),
		Trends:          n.trends(doc),
		Recommendations: stringSlice(doc, "recommendations"),
		KeyMetrics:      objectField(doc, "keyMetrics"),
		Narrative:       stringField(doc, "narrative", ""),
		GeneratedAt:     time.Now().UTC(),
	}
	if result.Summary == "" {
		result.Summary = missingSummary
	}
	return result
}

// Narrative recovers narrative fields from jsonText with the same
// per-field tolerance. The caller is responsible for content cleaning.
func (n *Normalizer) Narrative(jsonText string) apimodels.NarrativeResult {
	doc := gjson.Parse(jsonText)

	sections := make(map[string]string)
	if v := lookup(doc, "sections"); v.IsObject() {
		v.ForEach(func(key, val gjson.Result) bool {
			sections[key.String()] = previewString(val)
			return true
		})
	}

	return apimodels.NarrativeResult{
		Title:       stringField(doc, "title", ""),
		Content:     stringField(doc, "content", ""),
		KeyPoints:   stringSlice(doc, "keyPoints"),
		Sections:    sections,
		GeneratedAt: time.Now().UTC(),
	}
}

func (n *Normalizer) insights(doc gjson.Result) []apimodels.Insight {
	out := make([]apimodels.Insight, 0)
	v := lookup(doc, "insights")
	if !v.IsArray() {
		return out
	}
	v.ForEach(func(_, elem gjson.Result) bool {
		if !elem.IsObject() {
			return true
		}
		out = append(out, apimodels.Insight{
			Title:       stringField(elem, "title", ""),
			Description: stringField(elem, "description", ""),
			Severity:    stringField(elem, "severity", "Media"),
			Confidence:  clamp01(numberField(elem, "confidence", 0)),
			Impact:      stringField(elem, "impact", ""),
		})
		return true
	})
	return out
}

func (n *Normalizer) trends(doc gjson.Result) []apimodels.Trend {
	out := make([]apimodels.Trend, 0)
	v := lookup(doc, "trends")
	if !v.IsArray() {
		return out
	}
	v.ForEach(func(_, elem gjson.Result) bool {
		if !elem.IsObject() {
			return true
		}
		out = append(out, apimodels.Trend{
			Metric:      stringField(elem, "metric", ""),
			Direction:   direction(stringField(elem, "direction", "stable")),
			Change:      numberField(elem, "change", 0),
			Description: stringField(elem, "description", ""),
			DataPoints:  trendPoints(elem),
		})
		return true
	})
	return out
}

func trendPoints(elem gjson.Result) []apimodels.TrendPoint {
	v := lookup(elem, "dataPoints")
	if !v.IsArray() {
		return nil
	}
	var points []apimodels.TrendPoint
	v.ForEach(func(_, p gjson.Result) bool {
		if !p.IsObject() {
			return true
		}
		points = append(points, apimodels.TrendPoint{
			Label: stringField(p, "label", ""),
			Value: numberField(p, "value", 0),
		})
		return true
	})
	return points
}

func direction(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "down", "stable":
		return strings.ToLower(strings.TrimSpace(s))
	default:
		return "stable"
	}
}

// lookup resolves a top-level key case-insensitively; providers disagree
// on casing ("summary" vs "Summary").
func lookup(doc gjson.Result, key string) gjson.Result {
	if v := doc.Get(key); v.Exists() {
		return v
	}
	var found gjson.Result
	doc.ForEach(func(k, v gjson.Result) bool {
		if strings.EqualFold(k.String(), key) {
			found = v
			return false
		}
		return true
	})
	return found
}

func stringField(doc gjson.Result, key, def string) string {
	v := lookup(doc, key)
	if !v.Exists() || v.Type == gjson.Null {
		return def
	}
	s := previewString(v)
	if s == "" {
		return def
	}
	return s
}

// previewString renders a value as display text. Strings that hold JSON
// (and non-string composites) are truncated to a bounded preview instead
// of being deserialized further.
func previewString(v gjson.Result) string {
	var s string
	switch {
	case v.Type == gjson.String:
		s = v.String()
		t := strings.TrimSpace(s)
		if !strings.HasPrefix(t, "{") && !strings.HasPrefix(t, "[") {
			return s
		}
	case v.IsObject() || v.IsArray():
		s = v.Raw
	default:
		return v.String()
	}
	if len(s) > stringPreviewLimit {
		cut := stringPreviewLimit
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut] + "..."
	}
	return s
}

// numberField coerces only from JSON number kinds, never from strings.
func numberField(doc gjson.Result, key string, def float64) float64 {
	v := lookup(doc, key)
	if v.Type != gjson.Number {
		return def
	}
	return v.Float()
}

func stringSlice(doc gjson.Result, key string) []string {
	out := make([]string, 0)
	v := lookup(doc, key)
	if !v.IsArray() {
		return out
	}
	v.ForEach(func(_, elem gjson.Result) bool {
		if s := previewString(elem); s != "" {
			out = append(out, s)
		}
		return true
	})
	return out
}

func objectField(doc gjson.Result, key string) map[string]interface{} {
	v := lookup(doc, key)
	if !v.IsObject() {
		return nil
	}
	m, ok := v.Value().(map[string]interface{})
	if !ok {
		return nil
	}
	return m
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
