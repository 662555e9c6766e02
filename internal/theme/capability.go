package theme

import (
	"os"
	"sort"
	"strings"

	"github.com/xo/terminfo"
)

// Environment variables consulted by the detector.
const (
	EnvForceTrueColor = "NETSCOPE_TRUECOLOR"
	EnvColorTerm      = "COLORTERM"
	EnvTerm           = "TERM"
	EnvTmux           = "TMUX"
)

// minPaletteRegisters is the smallest color count that can host the eight
// theme registers (slots 16-23) without touching the system colors.
const minPaletteRegisters = 24

// Tier is the classified color feature level of a terminal.
type Tier uint8

const (
	TierMonochrome Tier = iota
	TierApprox256
	TierCustomPalette
	TierTrueColor
)

func (t Tier) String() string {
	switch t {
	case TierTrueColor:
		return "truecolor"
	case TierCustomPalette:
		return "custom-palette"
	case TierApprox256:
		return "approx-256"
	default:
		return "monochrome"
	}
}

// Capabilities is the raw detector output.
type Capabilities struct {
	TrueColor     bool
	CustomPalette bool
	ColorCount    int
}

// Tier classifies c. Custom palette support inside a truecolor terminal is
// still reported via c.CustomPalette.
func (c Capabilities) Tier() Tier {
	switch {
	case c.TrueColor:
		return TierTrueColor
	case c.CustomPalette:
		return TierCustomPalette
	case c.ColorCount >= 256:
		return TierApprox256
	default:
		return TierMonochrome
	}
}

// Environ is the subset of an environment the detector reads. termenv.Environ
// satisfies it, so an SSH session environment can be passed through.
type Environ interface {
	Getenv(key string) string
}

// OSEnviron reads the process environment.
type OSEnviron struct{}

func (OSEnviron) Getenv(key string) string { return os.Getenv(key) }
func (OSEnviron) Environ() []string        { return os.Environ() }

// MapEnviron is an Environ backed by a map.
type MapEnviron map[string]string

func (m MapEnviron) Getenv(key string) string { return m[key] }

// Environ lists m as sorted KEY=VALUE pairs.
func (m MapEnviron) Environ() []string {
	out := make([]string, 0, len(m))
	for k, v := range m {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}

// EnvironFromList builds a MapEnviron from KEY=VALUE pairs.
func EnvironFromList(pairs []string) MapEnviron {
	env := make(MapEnviron, len(pairs))
	for _, kv := range pairs {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}

// TermInfo describes what the terminfo database says about a terminal type.
type TermInfo struct {
	CanChange bool
	Colors    int
}

// TermInfoFunc looks up terminal capabilities by TERM name. ok=false means
// the terminal is unknown.
type TermInfoFunc func(term string) (info TermInfo, ok bool)

// LoadTermInfo reads the system terminfo database.
func LoadTermInfo(term string) (TermInfo, bool) {
	if term == "" {
		return TermInfo{}, false
	}
	ti, err := terminfo.Load(term)
	if err != nil {
		return TermInfo{}, false
	}
	colors := ti.Num(terminfo.MaxColors)
	if colors < 0 {
		colors = 0
	}
	return TermInfo{CanChange: ti.Has(terminfo.CanChange), Colors: colors}, true
}

// Detector classifies the attached terminal from environment signals.
type Detector struct {
	Env      Environ
	TermInfo TermInfoFunc
}

// NewDetector returns a detector reading env and the system terminfo database.
func NewDetector(env Environ) Detector {
	if env == nil {
		env = OSEnviron{}
	}
	return Detector{Env: env, TermInfo: LoadTermInfo}
}

// Detect evaluates every signal. It is cheap and is called on each theme
// apply rather than cached.
func (d Detector) Detect() Capabilities {
	info := d.termInfo()
	return Capabilities{
		TrueColor:     d.TrueColor(),
		CustomPalette: info.CanChange && info.Colors >= minPaletteRegisters,
		ColorCount:    d.colorCount(info),
	}
}

// TrueColor reports direct-color support. The explicit override is always
// checked first and short-circuits the heuristics.
func (d Detector) TrueColor() bool {
	if forced, ok := d.forced(); ok {
		return forced
	}

	colorterm := strings.ToLower(d.getenv(EnvColorTerm))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		return true
	}

	term := strings.ToLower(d.getenv(EnvTerm))
	if strings.HasSuffix(term, "-direct") {
		return true
	}

	// tmux passes OSC 11 through when the outer TERM is 256-color or direct.
	if d.getenv(EnvTmux) != "" && strings.Contains(term, "-256color") {
		return true
	}
	return false
}

// forced parses the tri-state override; ok=false means unset.
func (d Detector) forced() (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(d.getenv(EnvForceTrueColor))) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	}
	return false, false
}

func (d Detector) termInfo() TermInfo {
	if d.TermInfo == nil {
		return TermInfo{}
	}
	info, ok := d.TermInfo(d.getenv(EnvTerm))
	if !ok {
		return TermInfo{}
	}
	return info
}

// colorCount prefers terminfo and falls back to the TERM name suffix.
func (d Detector) colorCount(info TermInfo) int {
	if info.Colors > 0 {
		return info.Colors
	}
	if strings.Contains(strings.ToLower(d.getenv(EnvTerm)), "256color") {
		return 256
	}
	return 0
}

func (d Detector) getenv(key string) string {
	if d.Env == nil {
		return ""
	}
	return d.Env.Getenv(key)
}
