package pane

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tnguyen21/netscope/internal/ansi"
	"github.com/tnguyen21/netscope/internal/render"
	"github.com/tnguyen21/netscope/internal/theme"
)

type menuItem struct {
	label string
	id    PaneID
	exit  bool
}

var menuItems = []menuItem{
	{label: "1. System Info", id: PaneSystemInfo},
	{label: "2. Established Connections", id: PaneEstablished},
	{label: "3. Listening Connections", id: PaneListening},
	{label: "4. Both", id: PaneBoth},
	{label: "5. Running Processes", id: PaneProcesses},
	{label: "6. Exit", exit: true},
}

var menuRoles = []theme.Role{
	theme.RoleAccent, theme.RoleAccent2, theme.RoleAccent3,
	theme.RoleAccent4, theme.RoleAccent5, theme.RoleMuted,
}

var menuHelp = []string{
	" NetScope ",
	"",
	" Up/Down or j/k : select",
	" Enter or 1-6   : open",
	" t              : theme dialog",
	" q              : quit",
}

// MenuPane is the splash screen and main menu.
type MenuPane struct {
	title  string
	splash []string
	sel    int
	width  int
	height int
	keys   menuKeys
}

type menuKeys struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
}

// NewMenuPane creates the menu. splash holds SGR-colored wordmark lines.
func NewMenuPane(version string, splash []string) *MenuPane {
	return &MenuPane{
		title:  "NetScope " + version,
		splash: splash,
		keys: menuKeys{
			Up:     key.NewBinding(key.WithKeys("up", "k")),
			Down:   key.NewBinding(key.WithKeys("down", "j")),
			Select: key.NewBinding(key.WithKeys("enter")),
		},
	}
}

func (p *MenuPane) ID() PaneID       { return PaneMenu }
func (p *MenuPane) Title() string    { return p.title }
func (p *MenuPane) Help() []string   { return menuHelp }
func (p *MenuPane) Capturing() bool  { return false }
func (p *MenuPane) SetSize(w, h int) { p.width, p.height = w, h }

// Selected is the highlighted menu index.
func (p *MenuPane) Selected() int { return p.sel }

func (p *MenuPane) Update(msg tea.Msg) (Pane, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	n := len(menuItems)
	switch {
	case key.Matches(km, p.keys.Up):
		p.sel = (p.sel - 1 + n) % n
	case key.Matches(km, p.keys.Down):
		p.sel = (p.sel + 1) % n
	case key.Matches(km, p.keys.Select):
		return p, p.choose(p.sel)
	default:
		if i, err := strconv.Atoi(km.String()); err == nil && i >= 1 && i <= n {
			p.sel = i - 1
			return p, p.choose(p.sel)
		}
	}
	return p, nil
}

func (p *MenuPane) choose(i int) tea.Cmd {
	if menuItems[i].exit {
		return tea.Quit
	}
	return open(menuItems[i].id)
}

func (p *MenuPane) Draw(g *render.Grid) {
	f := frame(g)
	drawBox(g, f, p.title)

	logoTop := max(2, f.height/6)
	for i, line := range p.splash {
		g.WriteANSI(logoTop+i, centerCol(f.width, ansi.Width(line)), line)
	}

	menuTop := logoTop + len(p.splash) + 2
	for i, item := range menuItems {
		col := centerCol(f.width, textWidth(item.label))
		g.WriteString(menuTop+i, col, item.label, menuRoles[i%len(menuRoles)])
		if i == p.sel {
			g.Highlight(menuTop+i, col, textWidth(item.label))
		}
	}
}
