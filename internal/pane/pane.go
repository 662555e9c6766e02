// Package pane holds the dashboard screens. Each screen draws a full frame
// into a render.Grid; the app owns the loop, the theme and the data memo.
package pane

import (
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tnguyen21/netscope/internal/render"
)

// PaneID identifies each screen.
type PaneID int

const (
	PaneMenu PaneID = iota
	PaneSystemInfo
	PaneEstablished
	PaneListening
	PaneBoth
	PaneProcesses

	paneCount
)

// Count is the number of screens.
const Count = int(paneCount)

// MinWidth is the narrowest terminal the screens are laid out for.
const MinWidth = 120

// ResizeNotice replaces every screen on narrower terminals.
const ResizeNotice = "Please resize your window to at least 120 columns."

// Pane is the interface that all screens implement.
type Pane interface {
	ID() PaneID
	Title() string
	SetSize(w, h int)
	Update(msg tea.Msg) (Pane, tea.Cmd)
	Draw(g *render.Grid)
	// Help returns the lines of the ? popup, or nil.
	Help() []string
	// Capturing is true while the screen wants every key (prompts, dialogs).
	Capturing() bool
}

// OpenMsg asks the app to switch screens.
type OpenMsg struct{ ID PaneID }

// ApplyThemeMsg asks the app to switch themes.
type ApplyThemeMsg struct{ Name string }

// ReloadMsg asks the app to start a new tick right away.
type ReloadMsg struct{}

// RefreshMsg tells the active screen a new tick has started.
type RefreshMsg struct{ Tick render.Tick }

func open(id PaneID) tea.Cmd {
	return func() tea.Msg { return OpenMsg{ID: id} }
}

func reload() tea.Msg { return ReloadMsg{} }

// TruncateWithEllipsis truncates s to maxLen, appending "…" if truncated.
// If maxLen < 1, returns an empty string.
func TruncateWithEllipsis(s string, maxLen int) string {
	if maxLen < 1 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen == 1 {
		return "…"
	}
	return string([]rune(s)[:maxLen-1]) + "…"
}

// centerCol is the column that centers a text of width n in width.
func centerCol(width, n int) int {
	return max(0, (width-n)/2)
}
