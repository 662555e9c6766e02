package app

import "github.com/tnguyen21/netscope/internal/pane"

// LayoutMode represents the display width category for responsive layout.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // below pane.MinWidth: resize notice only
	LayoutWide                     // full screens
)

// GetLayoutMode returns the appropriate layout mode for the given terminal width.
func GetLayoutMode(width int) LayoutMode {
	if width < pane.MinWidth {
		return LayoutNarrow
	}
	return LayoutWide
}

// HintRow is the row the key hints are drawn on: the bottom border.
func HintRow(totalHeight int) int {
	return max(0, totalHeight-1)
}
