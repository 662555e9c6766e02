package theme

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// ColorKind says how a bound Color is expressed on the wire.
type ColorKind uint8

const (
	// ColorDefault leaves the terminal's default color in place.
	ColorDefault ColorKind = iota
	// ColorIndex is a fixed 256-color palette slot.
	ColorIndex
	// ColorRegister is a redefinable palette slot (16..23).
	ColorRegister
	// ColorNamed is one of the 8 basic ANSI colors.
	ColorNamed
)

func (k ColorKind) String() string {
	switch k {
	case ColorIndex:
		return "index"
	case ColorRegister:
		return "register"
	case ColorNamed:
		return "named"
	default:
		return "default"
	}
}

// Basic ANSI color numbers used by the monochrome scheme.
const (
	NamedBlue  = 4
	NamedWhite = 7
)

// Color is one role's concrete output color. It is comparable.
type Color struct {
	Kind  ColorKind
	Index uint8
}

// DefaultColor is the terminal's own default.
func DefaultColor() Color { return Color{Kind: ColorDefault} }

// IndexColor binds a 256-palette slot.
func IndexColor(i uint8) Color { return Color{Kind: ColorIndex, Index: i} }

// RegisterColor binds a custom palette register.
func RegisterColor(i uint8) Color { return Color{Kind: ColorRegister, Index: i} }

// NamedColor binds a basic ANSI color (0..7).
func NamedColor(i uint8) Color { return Color{Kind: ColorNamed, Index: i} }

// Lipgloss converts c to a lipgloss color. Default becomes NoColor.
func (c Color) Lipgloss() lipgloss.TerminalColor {
	if c.Kind == ColorDefault {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(int(c.Index)))
}

func (c Color) String() string {
	if c.Kind == ColorDefault {
		return "default"
	}
	return c.Kind.String() + ":" + strconv.Itoa(int(c.Index))
}

// Binding maps every role to a concrete color for the active theme.
// Bindings are plain values; two applies of the same theme compare equal.
type Binding struct {
	Theme    string
	Strategy Strategy
	Roles    [RoleCount]Color
}

// Color returns the color bound to r, or the foreground binding for an
// out-of-range role.
func (b Binding) Color(r Role) Color {
	if !r.Valid() {
		return b.Roles[RoleForeground]
	}
	return b.Roles[r]
}

// Monochrome reports whether every foreground role shares one color.
func (b Binding) Monochrome() bool {
	first := b.Roles[RoleForeground]
	for _, r := range ForegroundRoles() {
		if b.Roles[r] != first {
			return false
		}
	}
	return true
}

// DefaultBinding is the light-on-dark two-color scheme used by the default
// theme and every fallback path.
func DefaultBinding() Binding {
	var b Binding
	b.Theme = DefaultTheme
	b.Strategy = StrategyDefault
	b.Roles[RoleBackground] = NamedColor(NamedBlue)
	for _, r := range ForegroundRoles() {
		b.Roles[r] = NamedColor(NamedWhite)
	}
	return b
}
