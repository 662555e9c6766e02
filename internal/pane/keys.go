package pane

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// listKeys move through a table or list.
type listKeys struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
}

// newListKeys builds list keys. up lists the keys that move up, since "k"
// means kill on the process screen.
func newListKeys(up ...string) listKeys {
	return listKeys{
		Up:       key.NewBinding(key.WithKeys(up...)),
		Down:     key.NewBinding(key.WithKeys("down", "j")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		Home:     key.NewBinding(key.WithKeys("home")),
		End:      key.NewBinding(key.WithKeys("end")),
	}
}

// scrollOffset moves a top-of-view offset over n rows with visible rows on
// screen. It reports whether msg was a list key.
func (k listKeys) scrollOffset(msg tea.KeyMsg, start, n, visible int) (int, bool) {
	last := max(0, n-visible)
	switch {
	case key.Matches(msg, k.Up):
		start--
	case key.Matches(msg, k.Down):
		start++
	case key.Matches(msg, k.PageUp):
		start -= visible
	case key.Matches(msg, k.PageDown):
		start += visible
	case key.Matches(msg, k.Home):
		start = 0
	case key.Matches(msg, k.End):
		start = last
	default:
		return start, false
	}
	return min(max(0, start), last), true
}
