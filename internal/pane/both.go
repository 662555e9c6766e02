package pane

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tnguyen21/netscope/internal/data"
	"github.com/tnguyen21/netscope/internal/render"
)

var bothHelp = []string{
	" Both Connections ",
	"",
	" Tab            : switch table",
	" Up/Down        : scroll active table",
	" t              : theme dialog",
	" Backspace/Left : back to menu",
	" q              : quit",
}

// BothPane stacks the established and listening tables.
type BothPane struct {
	memo   *data.Memo
	kind   string
	lists  [2]connList
	active int
	width  int
	height int
	keys   bothKeys
}

type bothKeys struct {
	listKeys
	Switch key.Binding
}

// NewBothPane creates the split connection screen.
func NewBothPane(memo *data.Memo, kind string) *BothPane {
	return &BothPane{
		memo: memo,
		kind: kind,
		lists: [2]connList{
			{status: data.StatusEstablished},
			{status: data.StatusListen},
		},
		keys: bothKeys{
			listKeys: newListKeys("up", "k"),
			Switch:   key.NewBinding(key.WithKeys("tab")),
		},
	}
}

func (p *BothPane) ID() PaneID { return PaneBoth }
func (p *BothPane) Title() string {
	return "Both Connections (Tab = Switch, t = Theme, Back = Menu, q = Quit)"
}
func (p *BothPane) Help() []string   { return bothHelp }
func (p *BothPane) Capturing() bool  { return false }
func (p *BothPane) SetSize(w, h int) { p.width, p.height = w, h }

// Active is the status of the table that scrolls.
func (p *BothPane) Active() string { return p.lists[p.active].status }

// Offsets are the first visible rows of the two tables.
func (p *BothPane) Offsets() (established, listening int) {
	return p.lists[0].start, p.lists[1].start
}

// boxes splits the area inside the outer border into two boxes one row apart.
func boxes(rows, cols int) [2]rect {
	inner := rows - 2
	topH := max(5, (inner-1)/2)
	botH := max(5, inner-1-topH)
	return [2]rect{
		{top: 1, left: 1, height: topH, width: cols - 2},
		{top: 1 + topH + 1, left: 1, height: botH, width: cols - 2},
	}
}

func (p *BothPane) Update(msg tea.Msg) (Pane, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	if key.Matches(km, p.keys.Switch) {
		p.active = 1 - p.active
		return p, nil
	}
	b := boxes(p.height, p.width)[p.active]
	p.lists[p.active].scroll(p.keys.listKeys, km, p.memo, p.kind, max(0, b.height-5))
	return p, nil
}

func (p *BothPane) Draw(g *render.Grid) {
	f := frame(g)
	drawBox(g, f, p.Title())
	for i, b := range boxes(f.height, f.width) {
		title := statusLabel(p.lists[i].status)
		if i == p.active {
			title += " [ACTIVE]"
		}
		drawBox(g, b, title)
		p.lists[i].draw(g, p.memo, p.kind, b.top+2, b.left+1,
			rect{top: b.top + 3, left: b.left + 1, width: b.width - 2}, max(0, b.height-5))
	}
}
