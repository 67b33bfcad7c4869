package normalize

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNormalizer() *Normalizer {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestAnalysisHappyPath(t *testing.T) {
	n := newNormalizer()

	result := n.Analysis(`{"summary":"Revenue grew","insights":[],"trends":[],"recommendations":[]}`)

	assert.Equal(t, "Revenue grew", result.Summary)
	assert.Empty(t, result.Insights)
	assert.NotNil(t, result.Insights)
	assert.NotNil(t, result.Trends)
	assert.NotNil(t, result.Recommendations)
}

func TestAnalysisNeverReturnsNilFields(t *testing.T) {
	n := newNormalizer()

	inputs := []string{
		"",
		"{}",
		"null",
		`{"summary":null}`,
		`{"insights":"not an array","trends":{"a":1},"recommendations":42}`,
	}
	for _, in := range inputs {
		result := n.Analysis(in)
		assert.NotEmpty(t, result.Summary, "input %q", in)
		assert.NotNil(t, result.Insights, "input %q", in)
		assert.NotNil(t, result.Trends, "input %q", in)
		assert.NotNil(t, result.Recommendations, "input %q", in)
	}
}

func TestAnalysisCaseVariantKeys(t *testing.T) {
	n := newNormalizer()

	result := n.Analysis(`{"Summary":"S","Insights":[{"Title":"t1","Severity":"Alta","Confidence":0.8}],"Recommendations":["r1"]}`)

	assert.Equal(t, "S", result.Summary)
	require.Len(t, result.Insights, 1)
	assert.Equal(t, "t1", result.Insights[0].Title)
	assert.Equal(t, "Alta", result.Insights[0].Severity)
	assert.InDelta(t, 0.8, result.Insights[0].Confidence, 1e-9)
	assert.Equal(t, []string{"r1"}, result.Recommendations)
}

func TestAnalysisFieldIsolation(t *testing.T) {
	n := newNormalizer()

	// insights is malformed; summary and recommendations must survive
	result := n.Analysis(`{"summary":"ok","insights":{"oops":true},"recommendations":["keep"]}`)

	assert.Equal(t, "ok", result.Summary)
	assert.Empty(t, result.Insights)
	assert.Equal(t, []string{"keep"}, result.Recommendations)
}

func TestAnalysisNumbersNotCoercedFromStrings(t *testing.T) {
	n := newNormalizer()

	result := n.Analysis(`{"insights":[{"title":"t","confidence":"0.9"}],"trends":[{"metric":"m","change":"12"}]}`)

	require.Len(t, result.Insights, 1)
	assert.Zero(t, result.Insights[0].Confidence)
	require.Len(t, result.Trends, 1)
	assert.Zero(t, result.Trends[0].Change)
}

func TestAnalysisConfidenceClamped(t *testing.T) {
	n := newNormalizer()

	result := n.Analysis(`{"insights":[{"title":"t","confidence":3.7}]}`)

	require.Len(t, result.Insights, 1)
	assert.Equal(t, 1.0, result.Insights[0].Confidence)
}

func TestAnalysisJSONValuedStringsPreviewTruncated(t *testing.T) {
	n := newNormalizer()

	embedded := `{"a":"` + strings.Repeat("x", 200) + `"}`
	result := n.Analysis(`{"summary":` + quote(embedded) + `}`)

	assert.True(t, strings.HasSuffix(result.Summary, "..."))
	assert.LessOrEqual(t, len(result.Summary), stringPreviewLimit+3)
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

func TestAnalysisPreviewTruncatesOnRuneBoundary(t *testing.T) {
	n := newNormalizer()

	// 3-byte runes guarantee the byte limit lands mid-rune
	embedded := `{"a":"` + strings.Repeat("€", 60) + `"}`
	result := n.Analysis(`{"summary":` + quote(embedded) + `}`)

	assert.True(t, strings.HasSuffix(result.Summary, "..."))
	assert.True(t, utf8.ValidString(result.Summary))
	assert.NotContains(t, result.Summary, string(utf8.RuneError))
}

func TestAnalysisTrendDirectionValidated(t *testing.T) {
	n := newNormalizer()

	result := n.Analysis(`{"trends":[{"metric":"m1","direction":"UP","change":5},{"metric":"m2","direction":"sideways"}]}`)

	require.Len(t, result.Trends, 2)
	assert.Equal(t, "up", result.Trends[0].Direction)
	assert.InDelta(t, 5.0, result.Trends[0].Change, 1e-9)
	assert.Equal(t, "stable", result.Trends[1].Direction)
}

func TestAnalysisGeneratedAtIsNormalizationTime(t *testing.T) {
	n := newNormalizer()

	result := n.Analysis(`{"summary":"s","generatedAt":"1999-01-01T00:00:00Z"}`)

	assert.WithinDuration(t, time.Now().UTC(), result.GeneratedAt, 5*time.Second)
}

func TestAnalysisKeyMetricsAndDataPoints(t *testing.T) {
	n := newNormalizer()

	result := n.Analysis(`{
		"keyMetrics":{"total":100,"currency":"EUR"},
		"trends":[{"metric":"revenue","direction":"up","change":12.5,"dataPoints":[{"label":"Jan","value":100},{"label":"Feb","value":112.5}]}]
	}`)

	require.NotNil(t, result.KeyMetrics)
	assert.Equal(t, "EUR", result.KeyMetrics["currency"])
	require.Len(t, result.Trends, 1)
	require.Len(t, result.Trends[0].DataPoints, 2)
	assert.Equal(t, "Feb", result.Trends[0].DataPoints[1].Label)
	assert.InDelta(t, 112.5, result.Trends[0].DataPoints[1].Value, 1e-9)
}

func TestNarrativeNormalization(t *testing.T) {
	n := newNormalizer()

	result := n.Narrative(`{"title":"T","content":"Prose.","keyPoints":["a","b"],"sections":{"Intro":"i"}}`)

	assert.Equal(t, "T", result.Title)
	assert.Equal(t, "Prose.", result.Content)
	assert.Equal(t, []string{"a", "b"}, result.KeyPoints)
	assert.Equal(t, "i", result.Sections["Intro"])
}

func TestNarrativeToleratesMissingFields(t *testing.T) {
	n := newNormalizer()

	result := n.Narrative(`{}`)

	assert.Empty(t, result.Content)
	assert.NotNil(t, result.KeyPoints)
	assert.NotNil(t, result.Sections)
}
