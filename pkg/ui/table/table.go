// Package table renders rows of data as a terminal table backed by lipgloss.
package table

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	// Packages
	lipgloss "github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	schema "github.com/mutablelogic/go-assistant/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// TableData is the interface that data sources implement to be rendered
// as a terminal table.
type TableData interface {
	// Header returns the column header labels.
	Header() []string

	// Len returns the number of rows.
	Len() int

	// Row returns the cell values for row i. Return nil to skip a row.
	Row(i int) []any
}

// Tools is a tool catalog rendered as a table
type Tools []schema.ToolDescriptor

var _ TableData = Tools(nil)

///////////////////////////////////////////////////////////////////////////////
// STYLES

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cellStyle   = lipgloss.NewStyle()
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Render renders the table data as a string suitable for terminal output.
// When width is positive and the natural render is wider, columns are
// wrapped to fit.
func Render(data TableData, width int) string {
	t := lgtable.New().
		Headers(data.Header()...).
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Wrap(true).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for i := range data.Len() {
		row := data.Row(i)
		if row == nil {
			continue
		}
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = FormatCell(v)
		}
		t.Row(cells...)
	}

	// Only constrain to the width if the natural render exceeds it
	result := t.Render()
	if width > 0 && lipgloss.Width(result) > width {
		t.Width(width)
		result = t.Render()
	}

	return result
}

// FormatCell converts a value to a display string for a table cell
func FormatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return "-"
	case string:
		if val = strings.TrimSpace(val); val == "" {
			return "-"
		}
		return val
	default:
		if s := fmt.Sprint(val); s != "" {
			return s
		}
		return "-"
	}
}

///////////////////////////////////////////////////////////////////////////////
// TOOLS

func (t Tools) Header() []string {
	return []string{"Tool", "Description", "Parameters"}
}

func (t Tools) Len() int {
	return len(t)
}

func (t Tools) Row(i int) []any {
	return []any{t[i].Name, t[i].Description, strings.Join(parameters(t[i]), ", ")}
}

// parameters returns the property names of the tool input schema, with
// required properties marked
func parameters(tool schema.ToolDescriptor) []string {
	var s struct {
		Properties map[string]any `json:"properties"`
		Required   []string       `json:"required"`
	}
	if err := json.Unmarshal(tool.InputSchema, &s); err != nil {
		return nil
	}
	result := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		if slices.Contains(s.Required, name) {
			name += "*"
		}
		result = append(result, name)
	}
	slices.Sort(result)
	return result
}
