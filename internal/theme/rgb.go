package theme

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is a 24-bit color. Channels are ints so callers can pass values outside
// [0,255]; NearestIndex clamps them.
type RGB struct {
	R, G, B int
}

// hexPattern accepts #RGB, #RRGGBB and #RRGGBBAA (alpha is ignored).
var hexPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// ValidHex reports whether s is a hex color the theme loader accepts.
func ValidHex(s string) bool {
	return hexPattern.MatchString(strings.TrimSpace(s))
}

// NormalizeHex returns s as lower-case #rrggbb. Three-digit values are
// expanded and an alpha byte is dropped.
func NormalizeHex(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !hexPattern.MatchString(s) {
		return "", fmt.Errorf("invalid hex color %q", s)
	}
	if len(s) == 9 {
		s = s[:7]
	}
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return "", fmt.Errorf("parsing hex color %q: %w", s, err)
	}
	return c.Hex(), nil
}

// ParseHex converts a theme hex value into an RGB triple.
func ParseHex(s string) (RGB, error) {
	norm, err := NormalizeHex(s)
	if err != nil {
		return RGB{}, err
	}
	c, err := colorful.Hex(norm)
	if err != nil {
		return RGB{}, fmt.Errorf("parsing hex color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: int(r), G: int(g), B: int(b)}, nil
}

// MustHex is ParseHex for compile-time constants.
func MustHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats c as #rrggbb after clamping.
func (c RGB) Hex() string {
	c = c.Clamp()
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Clamp forces every channel into [0,255].
func (c RGB) Clamp() RGB {
	return RGB{R: clamp8(c.R), G: clamp8(c.G), B: clamp8(c.B)}
}

// XParse formats c as an X11 rgb: specification for OSC 4.
func (c RGB) XParse() string {
	c = c.Clamp()
	return fmt.Sprintf("rgb:%02x/%02x/%02x", c.R, c.G, c.B)
}

func clamp8(v int) int {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return v
	}
}
