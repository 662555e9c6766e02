package pane

import (
	"unicode/utf8"

	"github.com/tnguyen21/netscope/internal/render"
	"github.com/tnguyen21/netscope/internal/theme"
)

// Box glyphs.
const (
	boxH  = '─'
	boxV  = '│'
	boxTL = '┌'
	boxTR = '┐'
	boxBL = '└'
	boxBR = '┘'
)

// rect is a screen area in cells.
type rect struct {
	top, left, height, width int
}

func (r rect) bottom() int { return r.top + r.height - 1 }
func (r rect) right() int  { return r.left + r.width - 1 }

// centered returns a height x width rect centered in a rows x cols screen.
func centered(rows, cols, height, width int) rect {
	return rect{top: max(0, (rows-height)/2), left: max(0, (cols-width)/2), height: height, width: width}
}

// drawBox draws a border around r with title set into the top edge.
func drawBox(g *render.Grid, r rect, title string) {
	if r.height < 2 || r.width < 2 {
		return
	}
	border := theme.RoleMuted
	for c := r.left + 1; c < r.right(); c++ {
		g.SetCell(r.top, c, boxH, border)
		g.SetCell(r.bottom(), c, boxH, border)
	}
	for row := r.top + 1; row < r.bottom(); row++ {
		g.SetCell(row, r.left, boxV, border)
		g.SetCell(row, r.right(), boxV, border)
	}
	g.SetCell(r.top, r.left, boxTL, border)
	g.SetCell(r.top, r.right(), boxTR, border)
	g.SetCell(r.bottom(), r.left, boxBL, border)
	g.SetCell(r.bottom(), r.right(), boxBR, border)

	if title != "" {
		g.WriteString(r.top, r.left+2, TruncateWithEllipsis(title, r.width-4), theme.RoleAccent)
	}
}

// drawPopup blanks r and boxes it.
func drawPopup(g *render.Grid, r rect, title string) {
	g.Fill(r.top, r.left, r.height, r.width)
	drawBox(g, r, title)
}

// drawHLine draws a horizontal rule.
func drawHLine(g *render.Grid, row, col, width int) {
	for c := col; c < col+max(1, width); c++ {
		g.SetCell(row, c, boxH, theme.RoleMuted)
	}
}

// frame is the full-screen rect.
func frame(g *render.Grid) rect {
	rows, cols := g.Size()
	return rect{height: rows, width: cols}
}

func textWidth(s string) int {
	return utf8.RuneCountInString(s)
}
