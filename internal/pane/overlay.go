package pane

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tnguyen21/netscope/internal/render"
	"github.com/tnguyen21/netscope/internal/theme"
)

// Overlay is a dialog drawn over the active screen. It gets every key until
// it reports closed.
type Overlay interface {
	Update(msg tea.KeyMsg) (closed bool, cmd tea.Cmd)
	Draw(g *render.Grid)
}

// HelpPopup shows a screen's help lines until any key is pressed.
type HelpPopup struct {
	Lines []string
}

func (h *HelpPopup) Update(tea.KeyMsg) (bool, tea.Cmd) {
	return true, nil
}

func (h *HelpPopup) Draw(g *render.Grid) {
	rows, cols := g.Size()
	w := 0
	for _, l := range h.Lines {
		w = max(w, textWidth(l))
	}
	r := centered(rows, cols, len(h.Lines)+2, w+4)
	drawPopup(g, r, "Help")
	for i, l := range h.Lines {
		g.WriteString(r.top+1+i, r.left+2, l, theme.RoleAccent)
	}
}

const pickerTitle = "Select Theme (Enter = Apply, Esc = Cancel)"

// ThemePicker lists themes; enter applies the highlighted one.
type ThemePicker struct {
	options []string
	sel     int
	keys    pickerKeys
}

type pickerKeys struct {
	Up     key.Binding
	Down   key.Binding
	Apply  key.Binding
	Cancel key.Binding
}

// NewThemePicker opens the picker on current, or the first option.
func NewThemePicker(options []string, current string) *ThemePicker {
	p := &ThemePicker{
		options: options,
		keys: pickerKeys{
			Up:     key.NewBinding(key.WithKeys("up", "k")),
			Down:   key.NewBinding(key.WithKeys("down", "j")),
			Apply:  key.NewBinding(key.WithKeys("enter")),
			Cancel: key.NewBinding(key.WithKeys("esc", "q")),
		},
	}
	for i, o := range options {
		if o == current {
			p.sel = i
		}
	}
	return p
}

// Selected is the highlighted theme name.
func (p *ThemePicker) Selected() string {
	if len(p.options) == 0 {
		return ""
	}
	return p.options[p.sel]
}

func (p *ThemePicker) Update(msg tea.KeyMsg) (bool, tea.Cmd) {
	n := len(p.options)
	switch {
	case key.Matches(msg, p.keys.Cancel):
		return true, nil
	case n == 0:
		return false, nil
	case key.Matches(msg, p.keys.Up):
		p.sel = (p.sel - 1 + n) % n
	case key.Matches(msg, p.keys.Down):
		p.sel = (p.sel + 1) % n
	case key.Matches(msg, p.keys.Apply):
		name := p.Selected()
		return true, func() tea.Msg { return ApplyThemeMsg{Name: name} }
	}
	return false, nil
}

func (p *ThemePicker) Draw(g *render.Grid) {
	rows, cols := g.Size()
	w := textWidth(pickerTitle) + 4
	for _, o := range p.options {
		w = max(w, textWidth(o)+10)
	}
	r := centered(rows, cols, len(p.options)+6, w)
	drawPopup(g, r, "Themes")
	g.WriteString(r.top+1, r.left+2, pickerTitle, theme.RoleAccent)
	for i, o := range p.options {
		marker := "  "
		if i == p.sel {
			marker = theme.IconCursor + " "
		}
		g.WriteString(r.top+3+i, r.left+2, marker+o, theme.RoleAccent)
	}
}
