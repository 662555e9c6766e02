package render

import (
	"strings"

	"github.com/tnguyen21/netscope/internal/ansi"
	"github.com/tnguyen21/netscope/internal/theme"
)

// Surface is a cell grid a screen draws into. Flush renders the frame.
type Surface interface {
	Size() (rows, cols int)
	SetCell(row, col int, ch rune, role theme.Role)
	Flush() string
}

type cell struct {
	ch   rune
	role theme.Role
	rev  bool
}

var blank = cell{ch: ' ', role: theme.RoleNone}

// Grid is a Surface rendered through lipgloss styles.
type Grid struct {
	rows, cols int
	cells      []cell
	styles     *theme.Styles
}

// NewGrid allocates a blank grid.
func NewGrid(rows, cols int, styles *theme.Styles) *Grid {
	g := &Grid{styles: styles}
	g.Resize(rows, cols)
	return g
}

// Resize discards content and reallocates.
func (g *Grid) Resize(rows, cols int) {
	g.rows, g.cols = max(rows, 0), max(cols, 0)
	g.cells = make([]cell, g.rows*g.cols)
	g.Clear()
}

// SetStyles changes the styles used by Flush.
func (g *Grid) SetStyles(s *theme.Styles) {
	g.styles = s
}

// Clear blanks every cell.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = blank
	}
}

func (g *Grid) Size() (int, int) {
	return g.rows, g.cols
}

// SetCell writes one cell. Out of range writes are ignored.
func (g *Grid) SetCell(row, col int, ch rune, role theme.Role) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return
	}
	g.cells[row*g.cols+col] = cell{ch: ch, role: role}
}

// Cell reads back one cell.
func (g *Grid) Cell(row, col int) (rune, theme.Role) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return 0, theme.RoleNone
	}
	c := g.cells[row*g.cols+col]
	return c.ch, c.role
}

// Highlight turns on reverse video for n cells from (row, col).
func (g *Grid) Highlight(row, col, n int) {
	if row < 0 || row >= g.rows {
		return
	}
	for c := max(col, 0); c < min(col+n, g.cols); c++ {
		g.cells[row*g.cols+c].rev = true
	}
}

// Reversed reports whether (row, col) is highlighted.
func (g *Grid) Reversed(row, col int) bool {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return false
	}
	return g.cells[row*g.cols+col].rev
}

// Fill blanks a rectangle, dropping highlights.
func (g *Grid) Fill(top, left, height, width int) {
	for r := top; r < top+height; r++ {
		for c := left; c < left+width; c++ {
			g.SetCell(r, c, ' ', theme.RoleNone)
		}
	}
}

// WriteString writes text from (row, col) in one role and returns the column
// after the last written cell.
func (g *Grid) WriteString(row, col int, text string, role theme.Role) int {
	for _, r := range text {
		g.SetCell(row, col, r, role)
		col++
	}
	return col
}

// WriteRuns writes decoded runs from (row, col).
func (g *Grid) WriteRuns(row, col int, runs []ansi.Run) int {
	for _, run := range runs {
		col = g.WriteString(row, col, run.Text, run.Role)
	}
	return col
}

// WriteANSI decodes an SGR-colored line and writes it at (row, col).
func (g *Grid) WriteANSI(row, col int, line string) int {
	return g.WriteRuns(row, col, ansi.Decode(line))
}

// Flush renders the grid, one styled segment per same-role span. Trailing
// plain spaces are trimmed unless the styles paint a background.
func (g *Grid) Flush() string {
	var b strings.Builder
	for row := 0; row < g.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		line := g.cells[row*g.cols : (row+1)*g.cols]
		end := len(line)
		for end > 0 && !g.paintsBackground() && line[end-1].ch == ' ' && !line[end-1].rev {
			end--
		}
		g.flushLine(&b, line[:end])
	}
	return b.String()
}

func (g *Grid) flushLine(b *strings.Builder, line []cell) {
	var seg strings.Builder
	role, rev := theme.RoleNone, false
	emit := func() {
		if seg.Len() == 0 {
			return
		}
		b.WriteString(g.paint(role, rev, seg.String()))
		seg.Reset()
	}
	for _, c := range line {
		r, ch := c.role, c.ch
		if r == theme.RoleBackground && g.backgroundIsDefault() {
			// the terminal default already is the theme background
			r, ch = theme.RoleNone, ' '
		}
		if r != role || c.rev != rev {
			emit()
			role, rev = r, c.rev
		}
		seg.WriteRune(ch)
	}
	emit()
}

func (g *Grid) paint(role theme.Role, rev bool, text string) string {
	if g.styles == nil {
		return text
	}
	if role == theme.RoleNone {
		if !rev {
			if g.styles.PaintsBackground() {
				return g.styles.Blank().Render(text)
			}
			return text
		}
		role = theme.RoleForeground
	}
	st := g.styles.Role(role)
	if rev {
		st = st.Reverse(true)
	}
	return st.Render(text)
}

func (g *Grid) backgroundIsDefault() bool {
	return g.styles != nil && !g.styles.PaintsBackground()
}

func (g *Grid) paintsBackground() bool {
	return g.styles != nil && g.styles.PaintsBackground()
}
