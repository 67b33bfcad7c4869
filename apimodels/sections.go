package apimodels

// ComponentType is the closed set of component kinds a report section may
// require for rendering.
type ComponentType string

const (
	ComponentText       ComponentType = "Text"
	ComponentTable      ComponentType = "Table"
	ComponentChart      ComponentType = "Chart"
	ComponentImage      ComponentType = "Image"
	ComponentKPI        ComponentType = "KPI"
	ComponentGraph      ComponentType = "Graph"
	ComponentList       ComponentType = "List"
	ComponentHeader     ComponentType = "Header"
	ComponentFooter     ComponentType = "Footer"
	ComponentNavigation ComponentType = "Navigation"
	ComponentSummary    ComponentType = "Summary"
	ComponentDataGrid   ComponentType = "DataGrid"
	ComponentForm       ComponentType = "Form"
	ComponentButton     ComponentType = "Button"
	ComponentLink       ComponentType = "Link"
)

// PDFComponent is a typed building block detected inside a section.
type PDFComponent struct {
	Type    ComponentType `json:"type"`
	Content string        `json:"content,omitempty"`
	Order   int           `json:"order"`
}

// PDFSection is one already-extracted section of a PDF report. Extraction
// itself happens upstream; this layer only consumes the result.
type PDFSection struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Subtitle      string         `json:"subtitle,omitempty"`
	PageNumber    int            `json:"pageNumber"`
	Order         int            `json:"order"`
	Content       string         `json:"content"`
	Components    []PDFComponent `json:"components,omitempty"`
	Keywords      []string       `json:"keywords,omitempty"`
	SuggestedArea string         `json:"suggestedArea,omitempty"`
	Confidence    float64        `json:"confidence"`
}

// AreaAssignment is a ranked suggestion that a section belongs to an
// organizational area. Reasoning lists the literal keyword/area matches
// that produced the confidence so a reviewer can audit the decision.
type AreaAssignment struct {
	SectionID          string          `json:"sectionId"`
	SectionTitle       string          `json:"sectionTitle"`
	AreaID             int             `json:"areaId"`
	AreaName           string          `json:"areaName"`
	Confidence         float64         `json:"confidence"`
	Reasoning          []string        `json:"reasoning"`
	RequiredComponents []ComponentType `json:"requiredComponents"`
}
