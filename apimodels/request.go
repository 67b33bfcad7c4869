package apimodels

// AnalysisRequest carries the tabular data to analyze along with
// caller-supplied generation preferences. The pipeline treats it as
// read-only.
type AnalysisRequest struct {
	// Data is an ordered sequence of rows; the first row may be a header.
	// Cells are heterogeneous (numbers, strings, nulls).
	Data [][]interface{} `json:"data"`

	// Config tunes the generated prompt, not the transport.
	Config AnalysisConfig `json:"config,omitempty"`

	// Optional parameters to control generation behavior
	Options GenerationOptions `json:"options,omitempty"`
}

type AnalysisConfig struct {
	// AnalysisType names the kind of analysis requested (e.g. "financial")
	AnalysisType string `json:"analysisType,omitempty"`

	// Language for the generated narrative (e.g. "es", "en")
	Language string `json:"language,omitempty"`

	// Tone of the narrative (e.g. "formal", "executive")
	Tone string `json:"tone,omitempty"`
}

type GenerationOptions struct {
	// Model overrides the configured model for this request
	Model string `json:"model,omitempty"`

	// MaxTokens limits the model response length
	MaxTokens int64 `json:"maxTokens,omitempty"`

	// Temperature controls randomness (0.0-1.0)
	Temperature float64 `json:"temperature,omitempty"`
}

// NarrativeCustomizationRequest asks for targeted edits to an existing
// narrative. The narrative travels with the request; this layer keeps no
// state between calls.
type NarrativeCustomizationRequest struct {
	NarrativeID string `json:"narrativeId"`

	Narrative NarrativeResult `json:"narrative"`

	// Modifications is the free-text edit instruction for the model.
	Modifications string `json:"modifications"`

	Options GenerationOptions `json:"options,omitempty"`
}

// AssignmentRequest pairs extracted document sections with the area
// catalog they should be matched against.
type AssignmentRequest struct {
	Sections []PDFSection `json:"sections"`
	Areas    []Area       `json:"areas"`
}

// Area is an organizational unit that may own a report section. Supplied
// by the surrounding persistence layer.
type Area struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
