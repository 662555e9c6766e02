// Package art holds the splash wordmark and per-distro logos as SGR-colored
// lines for the ansi decoder.
package art

import (
	"embed"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/tnguyen21/netscope/internal/ansi"
	"github.com/tnguyen21/netscope/internal/data"
	"github.com/tnguyen21/netscope/internal/theme"
)

//go:embed assets
var assets embed.FS

// Splash returns the wordmark lines.
func Splash() []string {
	b, err := assets.ReadFile("assets/splash.ans")
	if err != nil {
		return nil
	}
	return splitLines(string(b))
}

// Mode is how a logo is colored.
type Mode uint8

const (
	// ModeFlat paints every line in one role.
	ModeFlat Mode = iota
	// ModeStripe cycles roles line by line. Blank lines use fg.
	ModeStripe
)

// Policy is a logo's color policy.
type Policy struct {
	Mode  Mode
	Roles []theme.Role
}

func stripe(a, b theme.Role) Policy {
	return Policy{Mode: ModeStripe, Roles: []theme.Role{a, b}}
}

var (
	fg      = theme.RoleForeground
	accent  = theme.RoleAccent
	accent2 = theme.RoleAccent2
	accent3 = theme.RoleAccent3
	accent4 = theme.RoleAccent4
	accent5 = theme.RoleAccent5
)

// policies are keyed by asset name.
var policies = map[string]Policy{
	"darwin":        {Mode: ModeStripe, Roles: []theme.Role{accent3, accent, accent2, accent2, accent5, accent4}},
	"slackware":     stripe(accent4, fg),
	"arch-linux":    stripe(accent4, accent),
	"ubuntu":        stripe(accent2, fg),
	"ubuntu-budgie": stripe(accent4, accent),
	"debian":        {Mode: ModeFlat, Roles: []theme.Role{accent2}},
	"fedora":        stripe(accent4, fg),
	"mint":          stripe(accent3, fg),
	"manjaro":       stripe(accent3, fg),
	"kali":          stripe(accent4, fg),
	"elementary":    stripe(accent4, fg),
	"red-hat":       stripe(accent2, fg),
}

var defaultPolicy = Policy{Mode: ModeFlat, Roles: []theme.Role{accent}}

// aliases map os-release IDs onto asset names.
var aliases = map[string]string{
	"arch":      "arch-linux",
	"archlinux": "arch-linux",
	"linuxmint": "mint",
	"rhel":      "red-hat",
	"redhat":    "red-hat",
	"centos":    "red-hat",
	"macos":     "darwin",
}

// fallbackOrder is tried when nothing in os-release matches.
var fallbackOrder = []string{"debian", "ubuntu", "arch", "fedora", "centos", "alpine"}

// Names lists the available logos, sorted.
func Names() []string {
	entries, _ := assets.ReadDir("assets")
	var out []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".txt") {
			out = append(out, strings.TrimSuffix(e.Name(), ".txt"))
		}
	}
	sort.Strings(out)
	return out
}

// Resolve maps a candidate distro key onto an asset name.
func Resolve(key string) (string, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	if a, ok := aliases[key]; ok {
		key = a
	}
	key = strings.ReplaceAll(key, " ", "-")
	if _, err := assets.ReadFile(path.Join("assets", key+".txt")); err != nil {
		return "", false
	}
	return key, true
}

// Detect picks the logo for a host: os-release ID, then ID_LIKE, then any
// logo named in NAME, then the fallback order.
func Detect(goos string, rel data.OSRelease) string {
	if goos == "darwin" {
		return "darwin"
	}
	for _, c := range rel.Candidates() {
		if name, ok := Resolve(c); ok {
			return name
		}
	}
	if rel.Name != "" {
		lower := strings.ToLower(rel.Name)
		// longest first so "ubuntu budgie" beats "ubuntu"
		names := Names()
		sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })
		for _, n := range names {
			if strings.Contains(lower, strings.ReplaceAll(n, "-", " ")) {
				return n
			}
		}
	}
	for _, c := range fallbackOrder {
		if name, ok := Resolve(c); ok {
			return name
		}
	}
	return ""
}

// Logo returns the named logo as SGR-colored lines. Unknown names yield nil.
func Logo(name string) []string {
	b, err := assets.ReadFile(path.Join("assets", name+".txt"))
	if err != nil {
		return nil
	}
	policy, ok := policies[name]
	if !ok {
		policy = defaultPolicy
	}
	return policy.Paint(splitLines(string(b)))
}

// Paint wraps each line in the SGR code for its role.
func (p Policy) Paint(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		role := p.roleFor(i, line)
		out[i] = sgr(ansi.RoleCode(role)) + line + sgr(ansi.Reset)
	}
	return out
}

func (p Policy) roleFor(i int, line string) theme.Role {
	if len(p.Roles) == 0 {
		return accent
	}
	if p.Mode == ModeFlat {
		return p.Roles[0]
	}
	if strings.TrimSpace(line) == "" {
		return fg
	}
	return p.Roles[i%len(p.Roles)]
}

func sgr(code int) string {
	return "\x1b[" + strconv.Itoa(code) + "m"
}

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
