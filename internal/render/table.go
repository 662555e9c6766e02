package render

import (
	"strings"
	"unicode/utf8"

	"github.com/tnguyen21/netscope/internal/theme"
)

// Column describes one fixed-width table column.
type Column struct {
	Title string
	Width int
	Right bool
}

// Fit truncates s to the column width with an ellipsis and pads it.
func (c Column) Fit(s string) string {
	if c.Width <= 0 {
		return ""
	}
	n := utf8.RuneCountInString(s)
	if n > c.Width {
		runes := []rune(s)
		if c.Width == 1 {
			return "…"
		}
		return string(runes[:c.Width-1]) + "…"
	}
	pad := strings.Repeat(" ", c.Width-n)
	if c.Right {
		return pad + s
	}
	return s + pad
}

// Table draws fixed-width rows into a grid, each column in its role.
type Table struct {
	Columns []Column
	Roles   []theme.Role
	Gap     int
}

// RoleFor cycles through t.Roles.
func (t Table) RoleFor(col int) theme.Role {
	if len(t.Roles) == 0 {
		return theme.RoleForeground
	}
	return t.Roles[col%len(t.Roles)]
}

// Width is the total cell width of a row.
func (t Table) Width() int {
	w := 0
	for i, c := range t.Columns {
		if i > 0 {
			w += t.Gap
		}
		w += c.Width
	}
	return w
}

// DrawHeader writes the column titles at row.
func (t Table) DrawHeader(g *Grid, row, col int) {
	cells := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cells[i] = c.Title
	}
	t.DrawRow(g, row, col, cells, false)
}

// DrawRow writes one row of cells. A selected row is drawn in reverse video.
func (t Table) DrawRow(g *Grid, row, col int, cells []string, selected bool) {
	x := col
	for i, c := range t.Columns {
		if i > 0 {
			x += t.Gap
		}
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		g.WriteString(row, x, c.Fit(text), t.RoleFor(i))
		x += c.Width
	}
	if selected {
		g.Highlight(row, col, t.Width())
	}
}
