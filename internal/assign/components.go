package assign

import (
	"strings"

	"github.com/reportero-ai/reportero/apimodels"
)

// componentCues pairs each detectable component type with the literal
// cues that signal it. Evaluated in this fixed order so classification
// is deterministic.
var componentCues = []struct {
	Type apimodels.ComponentType
	Cues []string
}{
	{apimodels.ComponentTable, []string{"| ---", "tabla", "table"}},
	{apimodels.ComponentChart, []string{"chart", "grafico de", "gráfico"}},
	{apimodels.ComponentGraph, []string{"graph", "grafo"}},
	{apimodels.ComponentKPI, []string{"kpi", "indicador", "indicator", "%"}},
	{apimodels.ComponentImage, []string{"image", "imagen", "figure", "figura"}},
	{apimodels.ComponentList, []string{"\n- ", "\n* ", "\n1. "}},
	{apimodels.ComponentDataGrid, []string{"data grid", "datagrid"}},
	{apimodels.ComponentSummary, []string{"summary", "resumen"}},
	{apimodels.ComponentForm, []string{"form:", "formulario"}},
	{apimodels.ComponentHeader, []string{"header", "encabezado"}},
	{apimodels.ComponentFooter, []string{"footer", "pie de pagina", "pie de página"}},
	{apimodels.ComponentNavigation, []string{"navigation", "navegacion", "índice", "indice"}},
	{apimodels.ComponentButton, []string{"button", "boton"}},
	{apimodels.ComponentLink, []string{"http://", "https://", "enlace"}},
}

// ClassifyComponents detects which component types a section's text calls
// for. Every section carries at least a Text component; the rest come
// from literal cue matches against the closed component enumeration.
func ClassifyComponents(sectionText string) []apimodels.PDFComponent {
	lower := strings.ToLower(sectionText)

	components := []apimodels.PDFComponent{
		{Type: apimodels.ComponentText, Order: 0},
	}

	for _, cue := range componentCues {
		for _, c := range cue.Cues {
			if strings.Contains(lower, c) {
				components = append(components, apimodels.PDFComponent{
					Type:  cue.Type,
					Order: len(components),
				})
				break
			}
		}
	}

	return components
}
