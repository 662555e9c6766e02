package theme

// Glyphs shared by the screens.
const (
	IconCursor = "▶"
	IconBlock  = "█"
)
