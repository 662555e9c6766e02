package theme

import "github.com/charmbracelet/lipgloss"

// Styles are the lipgloss styles for one binding. They are rebuilt whenever
// the binding changes and must be used with the renderer they were built for.
type Styles struct {
	Binding Binding

	roles   [RoleCount]lipgloss.Style
	blank   lipgloss.Style
	painted bool
}

// NewStyles builds styles for b. r may be nil for the default renderer.
// When the bg role has a color every style also carries it as background;
// otherwise the terminal default shows through.
func NewStyles(b Binding, r *lipgloss.Renderer) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	bg := b.Color(RoleBackground)
	s := Styles{Binding: b, painted: bg.Kind != ColorDefault}
	s.blank = r.NewStyle()
	for _, role := range Roles() {
		s.roles[role] = r.NewStyle().Foreground(b.Color(role).Lipgloss())
	}
	if s.painted {
		s.blank = s.blank.Background(bg.Lipgloss())
		for _, role := range Roles() {
			s.roles[role] = s.roles[role].Background(bg.Lipgloss())
		}
	}
	return s
}

// PaintsBackground reports whether the styles set a background color.
func (s Styles) PaintsBackground() bool {
	return s.painted
}

// Blank is the style for empty cells: background only.
func (s Styles) Blank() lipgloss.Style {
	return s.blank
}

// Role returns the style for role.
func (s Styles) Role(role Role) lipgloss.Style {
	if !role.Valid() {
		return s.roles[RoleForeground]
	}
	return s.roles[role]
}

// Render is shorthand for s.Role(role).Render(text).
func (s Styles) Render(role Role, text string) string {
	return s.Role(role).Render(text)
}
