package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultTheme is the reserved name of the built-in white-on-blue scheme.
const DefaultTheme = "blue"

// DefaultThemeDir is where theme files are looked up unless configured.
const DefaultThemeDir = "/etc/netscope/themes"

// maxPaletteEntries bounds the positional palette array.
const maxPaletteEntries = 6

var (
	ErrThemeNotFound = errors.New("theme not found")
	ErrInvalidTheme  = errors.New("invalid theme file")
)

// themeExts are tried in order. JSON goes through the YAML decoder.
var themeExts = []string{".json", ".yaml", ".yml"}

// DefaultPalette holds the hard-coded fallback for every role.
var DefaultPalette = Palette{
	RoleBackground: "#001b4d",
	RoleForeground: "#eaeaea",
	RoleAccent:     "#ffd75f",
	RoleAccent2:    "#ff5f5f",
	RoleAccent3:    "#5fff87",
	RoleAccent4:    "#5f87ff",
	RoleAccent5:    "#af87ff",
	RoleMuted:      "#87d7ff",
}

// positional maps a role to its index in the fallback palette array, or -1.
var positional = [RoleCount]int{
	RoleBackground: -1,
	RoleForeground: 5,
	RoleAccent:     0,
	RoleAccent2:    1,
	RoleAccent3:    2,
	RoleAccent4:    3,
	RoleAccent5:    4,
	RoleMuted:      3,
}

// Palette is a fully resolved set of normalized #rrggbb values, one per role.
type Palette [RoleCount]string

// RGB returns the parsed color for r. Palette values are always valid.
func (p Palette) RGB(r Role) RGB {
	c, err := ParseHex(p[r])
	if err != nil {
		return MustHex(DefaultPalette[r])
	}
	return c
}

// Definition is a theme file as read from disk, before defaults apply.
type Definition struct {
	Name    string
	Named   map[Role]string
	Entries []string
}

// LoadDefinition reads dir/<name>.{json,yaml,yml}.
func LoadDefinition(dir, name string) (*Definition, error) {
	path, err := findThemeFile(dir, name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme %s: %w", path, err)
	}
	def, err := ParseDefinition(name, data)
	if err != nil {
		return nil, fmt.Errorf("parsing theme %s: %w", path, err)
	}
	return def, nil
}

// ParseDefinition decodes a theme document. Keys are matched case-insensitively
// and unknown keys are ignored. Non-string values count as absent.
func ParseDefinition(name string, data []byte) (*Definition, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTheme, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidTheme)
	}

	def := &Definition{Name: name, Named: make(map[Role]string)}
	for k, v := range raw {
		key := strings.ToLower(k)
		if key == "palette" {
			def.Entries = paletteEntries(v)
			continue
		}
		role, ok := ParseRole(key)
		if !ok || key == "background" || key == "foreground" {
			continue
		}
		if s, ok := v.(string); ok {
			def.Named[role] = s
		}
	}
	return def, nil
}

func paletteEntries(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	// non-strings are dropped before positions are assigned
	out := make([]string, 0, min(len(list), maxPaletteEntries))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
		if len(out) == maxPaletteEntries {
			break
		}
	}
	return out
}

// Palette resolves the definition: named fields first, then the positional
// array, then DefaultPalette. Values that are not valid hex are absent.
func (d *Definition) Palette() Palette {
	var p Palette
	for _, role := range Roles() {
		p[role] = d.pick(role)
	}
	return p
}

func (d *Definition) pick(role Role) string {
	if d != nil {
		if v, ok := d.Named[role]; ok && v != "" {
			if hex, err := NormalizeHex(v); err == nil {
				return hex
			}
			// a malformed named value is replaced by the default, not the
			// positional entry
			return DefaultPalette[role]
		}
		if i := positional[role]; i >= 0 && i < len(d.Entries) {
			if hex, err := NormalizeHex(d.Entries[i]); err == nil {
				return hex
			}
		}
	}
	return DefaultPalette[role]
}

// Available lists the default theme followed by theme files in dir, sorted.
// An unreadable dir yields just the default.
func Available(dir string) []string {
	names := []string{DefaultTheme}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return names
	}
	seen := map[string]bool{DefaultTheme: true}
	var found []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if !isThemeExt(ext) {
			continue
		}
		stem := strings.TrimSuffix(e.Name(), ext)
		if !seen[stem] {
			seen[stem] = true
			found = append(found, stem)
		}
	}
	sort.Strings(found)
	return append(names, found...)
}

func findThemeFile(dir, name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	for _, ext := range themeExts {
		path := filepath.Join(dir, name+ext)
		if st, err := os.Stat(path); err == nil && !st.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s in %s", ErrThemeNotFound, name, dir)
}

func isThemeExt(ext string) bool {
	for _, e := range themeExts {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}
