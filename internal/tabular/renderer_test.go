package tabular

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderUsesFirstRowAsHeader(t *testing.T) {
	rows := [][]interface{}{
		{"Month", "Revenue"},
		{"Jan", "100"},
		{"Feb", "150"},
	}

	out := Render(rows, 10)

	assert.Contains(t, out, "| Month | Revenue |")
	assert.Contains(t, out, "| Jan | 100 |")
	assert.Contains(t, out, "| Feb | 150 |")
	// header row must not be repeated in the body
	assert.Equal(t, 1, strings.Count(out, "| Month | Revenue |"))
}

func TestRenderSyntheticHeadersForNumericFirstRow(t *testing.T) {
	rows := [][]interface{}{
		{"100", "200"},
		{"300", "400"},
	}

	out := Render(rows, 10)

	assert.Contains(t, out, "| Column 1 | Column 2 |")
	assert.Contains(t, out, "| 100 | 200 |", "numeric first row stays in the body")
}

func TestRenderTruncation(t *testing.T) {
	rows := [][]interface{}{{"Name", "Value"}}
	for i := 0; i < 20; i++ {
		rows = append(rows, []interface{}{fmt.Sprintf("row%d", i), i})
	}

	out := Render(rows, 5)

	assert.Contains(t, out, "... and 15 additional rows")
	// header + separator + 5 body rows
	assert.Equal(t, 7, strings.Count(out, "|\n"))
}

func TestRenderStringifiesCells(t *testing.T) {
	rows := [][]interface{}{
		{"A", "B", "C", "D"},
		{nil, 3.5, "x|y", 7},
	}

	out := Render(rows, 10)

	assert.Contains(t, out, "|  | 3.5 | x\\|y | 7 |")
}

func TestRenderDeterministic(t *testing.T) {
	rows := [][]interface{}{
		{"Month", "Revenue"},
		{"Jan", 100.0},
		{"Feb", 150.25},
	}

	assert.Equal(t, Render(rows, 5), Render(rows, 5))
}

func TestRenderEmpty(t *testing.T) {
	assert.Equal(t, "(no data)", Render(nil, 5))
}
