// Package assign scores extracted PDF sections against an organizational
// area catalog and emits ranked, auditable ownership suggestions. Scoring
// is a fixed keyword dictionary, not a model call, so results are fully
// deterministic and reproducible.
package assign

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/reportero-ai/reportero/apimodels"
)

// Independent contributions per match kind, capped at 1.0 overall.
const (
	keywordWeight  = 0.35
	areaNameWeight = 0.4
)

// areaKeywords maps domain terms (Spanish and English) to a canonical
// area key. Each matching term contributes independently to the score.
var areaKeywords = map[string]string{
	"budget":         "finance",
	"presupuesto":    "finance",
	"revenue":        "finance",
	"ingresos":       "finance",
	"cost":           "finance",
	"costs":          "finance",
	"expenses":       "finance",
	"gastos":         "finance",
	"forecast":       "finance",
	"profit":         "finance",
	"margin":         "finance",
	"personnel":      "humanresources",
	"staff":          "humanresources",
	"hiring":         "humanresources",
	"payroll":        "humanresources",
	"nomina":         "humanresources",
	"training":       "humanresources",
	"empleados":      "humanresources",
	"contratacion":   "humanresources",
	"sales":          "sales",
	"ventas":         "sales",
	"customers":      "sales",
	"clientes":       "sales",
	"pipeline":       "sales",
	"marketing":      "marketing",
	"campaign":       "marketing",
	"brand":          "marketing",
	"publicidad":     "marketing",
	"technology":     "technology",
	"software":       "technology",
	"infrastructure": "technology",
	"sistemas":       "technology",
	"servers":        "technology",
	"legal":          "legal",
	"compliance":     "legal",
	"contract":       "legal",
	"contrato":       "legal",
	"regulatory":     "legal",
	"operations":     "operations",
	"operaciones":    "operations",
	"logistics":      "operations",
	"logistica":      "operations",
	"supply":         "operations",
	"production":     "operations",
	"produccion":     "operations",
}

// areaAliases lets catalog entries written in either language resolve to
// the same canonical key the dictionary uses.
var areaAliases = map[string]string{
	"finance":         "finance",
	"finanzas":        "finance",
	"humanresources":  "humanresources",
	"recursoshumanos": "humanresources",
	"sales":           "sales",
	"ventas":          "sales",
	"marketing":       "marketing",
	"technology":      "technology",
	"tecnologia":      "technology",
	"legal":           "legal",
	"operations":      "operations",
	"operaciones":     "operations",
}

type Assigner struct {
	minConfidence float64
	logger        *slog.Logger
}

func New(minConfidence float64, logger *slog.Logger) *Assigner {
	return &Assigner{minConfidence: minConfidence, logger: logger}
}

type scored struct {
	assignment apimodels.AreaAssignment
	matches    int
}

// SuggestAssignments scores every section against every area and returns
// suggestions that clear the confidence threshold, ranked per section by
// confidence, then literal match count, then area id. A section no area
// clears the threshold for simply contributes nothing: that is valid
// output meaning "needs manual triage", not an error.
func (a *Assigner) SuggestAssignments(sections []apimodels.PDFSection, areas []apimodels.Area) []apimodels.AreaAssignment {
	out := make([]apimodels.AreaAssignment, 0)

	for _, section := range sections {
		tokens := sectionTokens(section)
		candidates := make([]scored, 0, len(areas))

		for _, area := range areas {
			s := a.scoreArea(section, tokens, area)
			if s.assignment.Confidence >= a.minConfidence && s.matches > 0 {
				candidates = append(candidates, s)
			}
		}

		sort.SliceStable(candidates, func(i, j int) bool {
			ci, cj := candidates[i], candidates[j]
			if ci.assignment.Confidence != cj.assignment.Confidence {
				return ci.assignment.Confidence > cj.assignment.Confidence
			}
			if ci.matches != cj.matches {
				return ci.matches > cj.matches
			}
			return ci.assignment.AreaID < cj.assignment.AreaID
		})

		for _, c := range candidates {
			out = append(out, c.assignment)
		}

		a.logger.Debug("section scored",
			"section", section.ID,
			"candidates", len(candidates),
			"areas", len(areas),
		)
	}

	return out
}

func (a *Assigner) scoreArea(section apimodels.PDFSection, tokens []string, area apimodels.Area) scored {
	canon := canonicalAreaKey(area.Name)
	normName := normalizeTerm(area.Name)

	var (
		score     float64
		matches   int
		reasoning []string
	)

	for _, token := range tokens {
		switch {
		case token == normName:
			score += areaNameWeight
			matches++
			reasoning = append(reasoning, fmt.Sprintf("token %q names area %q", token, area.Name))
		case canon != "" && areaKeywords[token] == canon:
			score += keywordWeight
			matches++
			reasoning = append(reasoning, fmt.Sprintf("keyword %q maps to area %q", token, area.Name))
		}
	}

	if score > 1.0 {
		score = 1.0
	}
	if reasoning == nil {
		reasoning = []string{}
	}

	return scored{
		matches: matches,
		assignment: apimodels.AreaAssignment{
			SectionID:          section.ID,
			SectionTitle:       section.Title,
			AreaID:             area.ID,
			AreaName:           area.Name,
			Confidence:         score,
			Reasoning:          reasoning,
			RequiredComponents: requiredComponents(section),
		},
	}
}

// sectionTokens derives the keyword set: explicit extracted keywords plus
// title/subtitle tokens, normalized and deduplicated in stable order.
func sectionTokens(section apimodels.PDFSection) []string {
	seen := make(map[string]bool)
	var tokens []string
	add := func(raw string) {
		t := normalizeTerm(raw)
		if t == "" || seen[t] {
			return
		}
		seen[t] = true
		tokens = append(tokens, t)
	}

	for _, kw := range section.Keywords {
		add(kw)
	}
	for _, word := range strings.Fields(section.Title) {
		add(word)
	}
	for _, word := range strings.Fields(section.Subtitle) {
		add(word)
	}
	return tokens
}

func normalizeTerm(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func canonicalAreaKey(name string) string {
	return areaAliases[normalizeTerm(name)]
}

func requiredComponents(section apimodels.PDFSection) []apimodels.ComponentType {
	components := section.Components
	if len(components) == 0 {
		components = ClassifyComponents(section.Content)
	}
	seen := make(map[apimodels.ComponentType]bool)
	out := make([]apimodels.ComponentType, 0, len(components))
	for _, c := range components {
		if !seen[c.Type] {
			seen[c.Type] = true
			out = append(out, c.Type)
		}
	}
	return out
}
