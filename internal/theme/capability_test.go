package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fakeTermInfo(db map[string]TermInfo) TermInfoFunc {
	return func(term string) (TermInfo, bool) {
		info, ok := db[term]
		return info, ok
	}
}

var testTermDB = map[string]TermInfo{
	"xterm-256color":  {CanChange: true, Colors: 256},
	"screen-256color": {CanChange: false, Colors: 256},
	"xterm":           {CanChange: false, Colors: 8},
	"linux":           {CanChange: true, Colors: 8},
}

func TestDetectorTrueColor(t *testing.T) {
	tests := []struct {
		name string
		env  MapEnviron
		want bool
	}{
		{"empty", MapEnviron{}, false},
		{"colorterm truecolor", MapEnviron{EnvColorTerm: "truecolor"}, true},
		{"colorterm 24bit", MapEnviron{EnvColorTerm: "24bit"}, true},
		{"colorterm other", MapEnviron{EnvColorTerm: "yes"}, false},
		{"direct term", MapEnviron{EnvTerm: "xterm-direct"}, true},
		{"tmux 256", MapEnviron{EnvTmux: "/tmp/tmux-0/default,1,0", EnvTerm: "screen-256color"}, true},
		{"tmux plain", MapEnviron{EnvTmux: "/tmp/tmux-0/default,1,0", EnvTerm: "screen"}, false},
		{"256 without tmux", MapEnviron{EnvTerm: "xterm-256color"}, false},
		{"force on", MapEnviron{EnvForceTrueColor: "1"}, true},
		{"force true", MapEnviron{EnvForceTrueColor: "TRUE"}, true},
		{"force off beats colorterm", MapEnviron{EnvForceTrueColor: "0", EnvColorTerm: "truecolor"}, false},
		{"force false beats direct", MapEnviron{EnvForceTrueColor: "false", EnvTerm: "xterm-direct"}, false},
		{"force garbage is unset", MapEnviron{EnvForceTrueColor: "maybe", EnvColorTerm: "truecolor"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Detector{Env: tt.env}
			assert.Equal(t, tt.want, d.TrueColor())
		})
	}
}

func TestDetectorDetect(t *testing.T) {
	tests := []struct {
		name string
		env  MapEnviron
		want Capabilities
		tier Tier
	}{
		{
			name: "unknown terminal is conservative",
			env:  MapEnviron{EnvTerm: "vt100"},
			want: Capabilities{},
			tier: TierMonochrome,
		},
		{
			name: "xterm-256color can change",
			env:  MapEnviron{EnvTerm: "xterm-256color"},
			want: Capabilities{CustomPalette: true, ColorCount: 256},
			tier: TierCustomPalette,
		},
		{
			name: "screen-256color approximates",
			env:  MapEnviron{EnvTerm: "screen-256color"},
			want: Capabilities{ColorCount: 256},
			tier: TierApprox256,
		},
		{
			name: "ccc with too few colors",
			env:  MapEnviron{EnvTerm: "linux"},
			want: Capabilities{ColorCount: 8},
			tier: TierMonochrome,
		},
		{
			name: "truecolor with registers",
			env:  MapEnviron{EnvTerm: "xterm-256color", EnvColorTerm: "truecolor"},
			want: Capabilities{TrueColor: true, CustomPalette: true, ColorCount: 256},
			tier: TierTrueColor,
		},
		{
			name: "256color name without terminfo entry",
			env:  MapEnviron{EnvTerm: "foot-256color"},
			want: Capabilities{ColorCount: 256},
			tier: TierApprox256,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Detector{Env: tt.env, TermInfo: fakeTermInfo(testTermDB)}
			got := d.Detect()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.tier, got.Tier())
		})
	}
}

func TestDetectorNilCollaborators(t *testing.T) {
	var d Detector
	assert.Equal(t, Capabilities{}, d.Detect())
}

func TestEnvironFromList(t *testing.T) {
	env := EnvironFromList([]string{"TERM=xterm", "COLORTERM=truecolor", "BROKEN", "EMPTY="})
	assert.Equal(t, "xterm", env.Getenv("TERM"))
	assert.Equal(t, "truecolor", env.Getenv("COLORTERM"))
	assert.Equal(t, "", env.Getenv("BROKEN"))
	assert.Equal(t, "", env.Getenv("EMPTY"))
}
