// Package tabular turns row/column data into a bounded markdown table for
// embedding in prompts. Pure formatting, no side effects.
package tabular

import (
	"fmt"
	"strconv"
	"strings"
)

// Render formats rows as a markdown table. The first row is used as the
// header when it looks like non-numeric labels; otherwise synthetic
// "Column N" headers are generated and the first row stays in the body.
// The body is truncated to maxRows with an explicit notice so the model
// knows data was elided.
func Render(rows [][]interface{}, maxRows int) string {
	if len(rows) == 0 {
		return "(no data)"
	}

	var header []string
	body := rows
	if isHeaderRow(rows[0]) {
		header = stringifyRow(rows[0])
		body = rows[1:]
	} else {
		header = make([]string, len(rows[0]))
		for i := range header {
			header[i] = fmt.Sprintf("Column %d", i+1)
		}
	}

	truncated := 0
	if maxRows > 0 && len(body) > maxRows {
		truncated = len(body) - maxRows
		body = body[:maxRows]
	}

	var b strings.Builder
	b.WriteString("| " + strings.Join(header, " | ") + " |\n")
	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	b.WriteString("| " + strings.Join(sep, " | ") + " |\n")

	for _, row := range body {
		b.WriteString("| " + strings.Join(stringifyRow(row), " | ") + " |\n")
	}

	if truncated > 0 {
		b.WriteString(fmt.Sprintf("... and %d additional rows\n", truncated))
	}

	return b.String()
}

// isHeaderRow reports whether every non-empty cell is a non-numeric label.
func isHeaderRow(row []interface{}) bool {
	labels := 0
	for _, cell := range row {
		s, ok := cell.(string)
		if !ok {
			return false
		}
		if s == "" {
			continue
		}
		if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return false
		}
		labels++
	}
	return labels > 0
}

func stringifyRow(row []interface{}) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = stringify(cell)
	}
	return out
}

// stringify renders a cell uniformly: nils become empty, floats drop the
// spurious ".000000" that fmt.Sprintf("%v") would keep via %f.
func stringify(cell interface{}) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		// pipes would break the table structure
		return strings.ReplaceAll(v, "|", "\\|")
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		return fmt.Sprintf("%v", v)
	}
}
