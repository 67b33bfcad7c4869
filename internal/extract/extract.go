// Package extract recovers structured JSON from raw model output. Model
// text is an unreliable signal: it may wrap the JSON in prose, markdown
// fences, or string-encode it inside an array element. Both entry points
// are total — they never fail, they degrade.
package extract

import (
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	// fallbackPreviewLimit bounds how much of the original text is echoed
	// into a fallback summary so no information is silently dropped.
	fallbackPreviewLimit = 200

	// maxCleanPasses bounds the unwrap chain; nesting deeper than this is
	// not produced by any known provider.
	maxCleanPasses = 4
)

// jsonObject greedily spans the first '{' to the last '}' so conversational
// wrapper text and code fences around the object are discarded, and inner
// objects are not matched instead of the outermost one.
var jsonObject = regexp.MustCompile(`(?s)\{.*\}`)

type Extractor struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// JSON returns a parseable JSON object recovered from raw. When raw holds
// no valid object, a well-formed fallback envelope is synthesized instead;
// it validates against the same shape the normalizer expects. The second
// return is false when the fallback path was taken.
func (e *Extractor) JSON(raw string) (string, bool) {
	if span := jsonObject.FindString(raw); span != "" && gjson.Valid(span) {
		return span, true
	}
	e.logger.Warn("no parseable JSON in model output", "size", len(raw))
	return e.fallback(raw), false
}

func (e *Extractor) fallback(raw string) string {
	preview := strings.TrimSpace(raw)
	if len(preview) > fallbackPreviewLimit {
		cut := fallbackPreviewLimit
		for cut > 0 && !utf8.RuneStart(preview[cut]) {
			cut--
		}
		preview = preview[:cut] + "..."
	}

	out := "{}"
	out, _ = sjson.Set(out, "title", "Analysis unavailable")
	out, _ = sjson.Set(out, "summary", "The model response could not be parsed as structured JSON. Original response: "+preview)
	out, _ = sjson.Set(out, "insights.0.title", "Unparseable model output")
	out, _ = sjson.Set(out, "insights.0.description", "The provider returned text without a valid JSON object, so no insights could be derived.")
	out, _ = sjson.Set(out, "insights.0.severity", "Media")
	out, _ = sjson.Set(out, "insights.0.confidence", 0.0)
	out, _ = sjson.SetRaw(out, "trends", "[]")
	out, _ = sjson.Set(out, "recommendations.0", "Retry the analysis with the same data")
	out, _ = sjson.Set(out, "recommendations.1", "Reduce the amount of input data")
	out, _ = sjson.Set(out, "recommendations.2", "Verify the configured model supports JSON output")
	out, _ = sjson.SetRaw(out, "keyMetrics", "{}")
	out, _ = sjson.Set(out, "narrative", "The analysis could not be completed because the model output was not machine-readable.")
	return out
}

// CleanContent enforces the plain-prose invariant on narrative content.
// Providers sometimes hand back content that is itself wrapped JSON: an
// array of typed text blocks, a fenced code block, or a bare object with
// the real prose inside. Each sniffer unwraps exactly one level; the chain
// runs to a fixed point within a bounded number of passes, so cleaning is
// idempotent and always terminates. Already-clean text passes through
// untouched.
func CleanContent(s string) string {
	current := s
	for i := 0; i < maxCleanPasses; i++ {
		next, changed := unwrapOnce(current)
		if !changed || next == current {
			return current
		}
		current = next
	}
	// Pass cap exhausted. If the remainder would still unwrap, hand back
	// the input unchanged: a partial unwrap is neither clean nor stable
	// under repeated cleaning.
	if _, changed := unwrapOnce(current); changed {
		return s
	}
	return current
}

func unwrapOnce(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)

	if out, ok := unwrapBlockArray(trimmed); ok {
		return out, true
	}
	if out, ok := unwrapFence(trimmed); ok {
		return out, true
	}
	if out, ok := unwrapObject(trimmed); ok {
		return out, true
	}
	return s, false
}

// unwrapBlockArray handles the [{"type":"text","text":"..."}] envelope.
func unwrapBlockArray(s string) (string, bool) {
	if !strings.HasPrefix(s, "[{") || !gjson.Valid(s) {
		return "", false
	}
	parsed := gjson.Parse(s)
	if !parsed.IsArray() {
		return "", false
	}
	var out string
	parsed.ForEach(func(_, elem gjson.Result) bool {
		for _, key := range []string{"text", "content"} {
			if v := elem.Get(key); v.Exists() && v.String() != "" {
				out = v.String()
				return false
			}
		}
		return true
	})
	return out, out != ""
}

// unwrapFence extracts the body of the first ```json (or bare ```) block.
func unwrapFence(s string) (string, bool) {
	start := strings.Index(s, "```")
	if start == -1 {
		return "", false
	}
	rest := s[start+3:]
	if nl := strings.IndexByte(rest, '\n'); nl != -1 && strings.EqualFold(strings.TrimSpace(rest[:nl]), "json") {
		rest = rest[nl+1:]
	} else {
		rest = strings.TrimPrefix(rest, "json")
	}
	end := strings.Index(rest, "```")
	if end == -1 {
		return "", false
	}
	body := strings.TrimSpace(rest[:end])
	return body, body != ""
}

// unwrapObject pulls prose out of a bare {"content": ...} / {"text": ...}
// object. Objects without a recognizable prose field are left alone.
func unwrapObject(s string) (string, bool) {
	if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") || !gjson.Valid(s) {
		return "", false
	}
	doc := gjson.Parse(s)
	for _, key := range []string{"content", "text"} {
		if v := doc.Get(key); v.Exists() && v.String() != "" {
			return v.String(), true
		}
	}
	return "", false
}
