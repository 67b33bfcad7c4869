package apimodels

import "time"

// AnalysisResult is the stable internal model every provider response is
// normalized into. Summary is never empty and the slices are never nil,
// only possibly empty.
type AnalysisResult struct {
	Title           string                 `json:"title,omitempty"`
	Summary         string                 `json:"summary"`
	Insights        []Insight              `json:"insights"`
	Trends          []Trend                `json:"trends"`
	Recommendations []string               `json:"recommendations"`
	KeyMetrics      map[string]interface{} `json:"keyMetrics,omitempty"`
	Narrative       string                 `json:"narrative,omitempty"`

	// GeneratedAt is set at normalization time, never taken from the model.
	GeneratedAt time.Time `json:"generatedAt"`
}

type Insight struct {
	Title       string `json:"title"`
	Description string `json:"description"`

	// Severity is accepted in Spanish or English form:
	// Baja|Media|Alta or Low|Medium|High|Info.
	Severity   string  `json:"severity"`
	Confidence float64 `json:"confidence"`
	Impact     string  `json:"impact,omitempty"`
}

type Trend struct {
	Metric string `json:"metric"`

	// Direction is one of "up", "down" or "stable".
	Direction   string       `json:"direction"`
	Change      float64      `json:"change"`
	Description string       `json:"description,omitempty"`
	DataPoints  []TrendPoint `json:"dataPoints,omitempty"`
}

type TrendPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// NarrativeResult is the human-readable projection of an analysis.
// Content is plain prose: never a JSON-encoded string, never fenced
// markdown. The cleaning step defends this invariant.
type NarrativeResult struct {
	ID          string            `json:"id,omitempty"`
	Title       string            `json:"title"`
	Content     string            `json:"content"`
	KeyPoints   []string          `json:"keyPoints"`
	Sections    map[string]string `json:"sections"`
	GeneratedAt time.Time         `json:"generatedAt"`
}

// AnalysisResponse is what the analyze endpoint returns: the normalized
// result, its narrative projection, and call metadata.
type AnalysisResponse struct {
	Result    AnalysisResult   `json:"result"`
	Narrative NarrativeResult  `json:"narrative"`
	Metadata  AnalysisMetadata `json:"metadata"`
}

type AnalysisMetadata struct {
	// Time taken for the full pipeline
	Duration string `json:"duration"`

	// Provider and model that produced the raw text
	Provider string `json:"provider"`
	Model    string `json:"model,omitempty"`

	// Rows of input data rendered into the prompt
	Rows int `json:"rows"`

	// Degraded is true when the model output could not be parsed and a
	// fallback result was synthesized. The HTTP status stays 200.
	Degraded bool `json:"degraded,omitempty"`
}
