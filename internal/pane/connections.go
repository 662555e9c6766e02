package pane

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tnguyen21/netscope/internal/data"
	"github.com/tnguyen21/netscope/internal/render"
	"github.com/tnguyen21/netscope/internal/theme"
)

var connTable = render.Table{
	Columns: []render.Column{
		{Title: "Local Address", Width: 25},
		{Title: "Remote Address", Width: 25},
		{Title: "Status", Width: 10},
		{Title: "PID", Width: 6, Right: true},
		{Title: "Program", Width: 18},
		{Title: "User", Width: 16},
		{Title: "Sent", Width: 10, Right: true},
		{Title: "Recv", Width: 10, Right: true},
	},
	Roles: []theme.Role{
		theme.RoleAccent, theme.RoleAccent2, theme.RoleAccent3, theme.RoleAccent4,
		theme.RoleAccent5, theme.RoleMuted, theme.RoleAccent2, theme.RoleAccent3,
	},
	Gap: 1,
}

var connHelp = []string{
	" Established/Listening Connections ",
	"",
	" Up/Down        : scroll",
	" t              : theme dialog",
	" Backspace/Left : back to menu",
	" q              : quit",
}

// connList is one scrollable connection table.
type connList struct {
	status string
	start  int
}

func (l *connList) rows(memo *data.Memo, kind string) ([]data.Conn, error) {
	snap, err := memo.Connections(kind)
	if err != nil {
		return nil, err
	}
	return snap.ByStatus(l.status), nil
}

// draw writes the header at row, a rule below it, then up to visible rows.
func (l *connList) draw(g *render.Grid, memo *data.Memo, kind string, row, col int, rule rect, visible int) {
	connTable.DrawHeader(g, row, col)
	drawHLine(g, rule.top, rule.left, rule.width)

	conns, err := l.rows(memo, kind)
	if err != nil {
		g.WriteString(row+2, col, data.NA, theme.RoleMuted)
		return
	}
	l.start = min(l.start, max(0, len(conns)-visible))
	end := min(len(conns), l.start+visible)
	for i, c := range conns[l.start:end] {
		connTable.DrawRow(g, row+2+i, col, memo.ConnRow(c), false)
	}
}

func (l *connList) scroll(keys listKeys, msg tea.KeyMsg, memo *data.Memo, kind string, visible int) bool {
	conns, _ := l.rows(memo, kind)
	start, ok := keys.scrollOffset(msg, l.start, len(conns), visible)
	l.start = start
	return ok
}

func statusLabel(status string) string {
	if status == data.StatusListen {
		return "Listening"
	}
	return "Established"
}

// ConnectionsPane lists established or listening sockets.
type ConnectionsPane struct {
	memo   *data.Memo
	kind   string
	list   connList
	width  int
	height int
	keys   listKeys
}

// NewConnectionsPane creates a connection screen for status
// (data.StatusEstablished or data.StatusListen). kind is the socket family
// passed to the provider.
func NewConnectionsPane(memo *data.Memo, status, kind string) *ConnectionsPane {
	return &ConnectionsPane{
		memo: memo,
		kind: kind,
		list: connList{status: status},
		keys: newListKeys("up", "k"),
	}
}

func (p *ConnectionsPane) ID() PaneID {
	if p.list.status == data.StatusListen {
		return PaneListening
	}
	return PaneEstablished
}

func (p *ConnectionsPane) Title() string {
	return statusLabel(p.list.status) + " Connections (Backspace/Left = Back, t = Theme, q = Quit)"
}

func (p *ConnectionsPane) Help() []string   { return connHelp }
func (p *ConnectionsPane) Capturing() bool  { return false }
func (p *ConnectionsPane) SetSize(w, h int) { p.width, p.height = w, h }

// Offset is the first visible row.
func (p *ConnectionsPane) Offset() int { return p.list.start }

// visible is the number of table rows that fit under the header.
func (p *ConnectionsPane) visible() int {
	return max(1, p.height-5)
}

func (p *ConnectionsPane) Update(msg tea.Msg) (Pane, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		p.list.scroll(p.keys, km, p.memo, p.kind, p.visible())
	}
	return p, nil
}

func (p *ConnectionsPane) Draw(g *render.Grid) {
	f := frame(g)
	drawBox(g, f, p.Title())
	p.list.draw(g, p.memo, p.kind, 2, 2, rect{top: 3, left: 1, width: f.width - 2}, max(1, f.height-5))
}
