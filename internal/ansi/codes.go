// Package ansi decodes pre-authored SGR-colored text into runs tagged with
// semantic theme roles.
package ansi

import "github.com/tnguyen21/netscope/internal/theme"

const (
	ESC = 0x1b

	Reset       = 0
	FG1st       = 30
	FGEnd       = 37
	SetFG       = 38
	DefaultFG   = 39
	BG1st       = 40
	BGEnd       = 47
	SetBG       = 48
	DefaultBG   = 49
	BrightFG1st = 90
	BrightFGEnd = 97
	BrightBG1st = 100
	BrightBGEnd = 107
)

// Extended color selectors following 38 or 48.
const (
	extIndexed = 5 // 38;5;n
	extRGB     = 2 // 38;2;r;g;b
)

// BlockGlyph replaces spaces painted with a background color.
const BlockGlyph = '█'

// colorRoles maps the offset of a basic color code (0 black .. 7 white) to
// its role. Normal and bright intensities share a role.
var colorRoles = [8]theme.Role{
	theme.RoleBackground,
	theme.RoleAccent2,
	theme.RoleAccent3,
	theme.RoleAccent,
	theme.RoleAccent4,
	theme.RoleAccent5,
	theme.RoleMuted,
	theme.RoleForeground,
}

// CodeRole returns the role for an SGR color parameter. isBG reports which
// state it sets; ok is false for codes that are not basic colors.
func CodeRole(code int) (role theme.Role, isBG, ok bool) {
	switch {
	case code >= FG1st && code <= FGEnd:
		return colorRoles[code-FG1st], false, true
	case code >= BrightFG1st && code <= BrightFGEnd:
		return colorRoles[code-BrightFG1st], false, true
	case code >= BG1st && code <= BGEnd:
		return colorRoles[code-BG1st], true, true
	case code >= BrightBG1st && code <= BrightBGEnd:
		return colorRoles[code-BrightBG1st], true, true
	}
	return theme.RoleNone, false, false
}

// RoleCode is the inverse of CodeRole for foreground codes, used when
// authoring assets.
func RoleCode(role theme.Role) int {
	for i, r := range colorRoles {
		if r == role {
			return FG1st + i
		}
	}
	return DefaultFG
}
