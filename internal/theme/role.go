package theme

import "strings"

// Role is a semantic color slot, decoupled from any concrete output color.
type Role uint8

const (
	RoleBackground Role = iota
	RoleForeground
	RoleAccent
	RoleAccent2
	RoleAccent3
	RoleAccent4
	RoleAccent5
	RoleMuted

	// RoleCount is the number of roles, background included.
	RoleCount = int(RoleMuted) + 1
)

// RoleNone marks "no role set" in decoder state.
const RoleNone Role = 0xff

var roleNames = [RoleCount]string{
	RoleBackground: "bg",
	RoleForeground: "fg",
	RoleAccent:     "accent",
	RoleAccent2:    "accent2",
	RoleAccent3:    "accent3",
	RoleAccent4:    "accent4",
	RoleAccent5:    "accent5",
	RoleMuted:      "muted",
}

// Roles lists every role in register order (bg first).
func Roles() []Role {
	return []Role{
		RoleBackground, RoleForeground, RoleAccent, RoleAccent2,
		RoleAccent3, RoleAccent4, RoleAccent5, RoleMuted,
	}
}

// ForegroundRoles lists the seven roles used to color text.
func ForegroundRoles() []Role {
	return Roles()[1:]
}

// String returns the theme-file key for the role.
func (r Role) String() string {
	if int(r) < RoleCount {
		return roleNames[r]
	}
	return "none"
}

// Valid reports whether r is one of the eight defined roles.
func (r Role) Valid() bool {
	return int(r) < RoleCount
}

// ParseRole maps a theme-file key (case-insensitive) to a Role.
func ParseRole(s string) (Role, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range roleNames {
		if name == s {
			return Role(i), true
		}
	}
	switch s {
	case "background":
		return RoleBackground, true
	case "foreground":
		return RoleForeground, true
	}
	return RoleNone, false
}
