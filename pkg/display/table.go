// Package display renders the plain tabular output `tridentctl inspect`
// and `tridentctl status` print to a terminal, adapted from the teacher's
// pkg/display/pkg/utils table helpers.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// ColumnDef defines one table column: its header and a minimum width,
// which the renderer widens to fit the widest cell actually printed in
// that column (project/version names may be wide CJK glyphs, hence
// go-runewidth rather than len()).
type ColumnDef struct {
	Name     string
	MinWidth int
}

// Table accumulates rows for one schema and renders them aligned.
type Table struct {
	columns []ColumnDef
	rows    [][]string
}

// NewTable builds an empty Table with the given columns.
func NewTable(columns ...ColumnDef) *Table {
	return &Table{columns: columns}
}

// AddRow appends one row. len(cells) must equal the column count; a
// mismatched row is truncated or padded with empty cells rather than
// panicking, since Render is a best-effort diagnostic surface.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.columns))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

func displayWidth(s string) int {
	return runewidth.StringWidth(s)
}

func padToWidth(s string, width int) string {
	current := displayWidth(s)
	if current >= width {
		return s
	}
	return s + strings.Repeat(" ", width-current)
}

// Render writes the table to w: an upper-cased header row, a dashed
// separator, then every row, each column padded to the widest cell seen
// for it.
func (t *Table) Render(w io.Writer) {
	widths := make([]int, len(t.columns))
	for i, col := range t.columns {
		widths[i] = displayWidth(strings.ToUpper(col.Name))
		if col.MinWidth > widths[i] {
			widths[i] = col.MinWidth
		}
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if w := displayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	headerParts := make([]string, len(t.columns))
	sepParts := make([]string, len(t.columns))
	for i, col := range t.columns {
		headerParts[i] = padToWidth(strings.ToUpper(col.Name), widths[i])
		sepParts[i] = strings.Repeat("-", widths[i])
	}
	_, _ = fmt.Fprintln(w, strings.Join(headerParts, "  "))
	_, _ = fmt.Fprintln(w, strings.Join(sepParts, "  "))

	for _, row := range t.rows {
		parts := make([]string, len(t.columns))
		for i, cell := range row {
			parts[i] = padToWidth(cell, widths[i])
		}
		_, _ = fmt.Fprintln(w, strings.Join(parts, "  "))
	}
}

// InspectSchema is the column set for `tridentctl inspect`: one row per
// resolved package in the instance's current polylock.
var InspectSchema = []ColumnDef{
	{Name: "project", MinWidth: 7},
	{Name: "version", MinWidth: 7},
	{Name: "kind", MinWidth: 4},
	{Name: "author", MinWidth: 6},
}

// StatusSchema is the column set for `tridentctl status`: one row per
// instance passed on the command line.
var StatusSchema = []ColumnDef{
	{Name: "instance", MinWidth: 8},
	{Name: "checked", MinWidth: 7},
	{Name: "resolved", MinWidth: 8},
	{Name: "restored", MinWidth: 8},
}
