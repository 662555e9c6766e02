package theme

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is a Terminal that remembers every control sequence request.
type recorder struct {
	backgrounds []string
	resets      int
	registers   []Register
	restored    []uint8
}

func (r *recorder) SetDefaultBackground(hex string) { r.backgrounds = append(r.backgrounds, hex) }
func (r *recorder) ResetDefaultBackground()         { r.resets++ }
func (r *recorder) SetPaletteColor(index uint8, c RGB) {
	r.registers = append(r.registers, Register{Index: index, Color: c})
}
func (r *recorder) ResetPaletteColor(index uint8) { r.restored = append(r.restored, index) }

func registerIndices(regs []Register) []uint8 {
	out := make([]uint8, 0, len(regs))
	for _, reg := range regs {
		out = append(out, reg.Index)
	}
	return out
}

var (
	truecolorEnv   = MapEnviron{EnvTerm: "screen-256color", EnvColorTerm: "truecolor"}
	registersEnv   = MapEnviron{EnvTerm: "xterm-256color", EnvColorTerm: "truecolor"}
	approxEnv      = MapEnviron{EnvTerm: "screen-256color"}
	monochromeEnv  = MapEnviron{EnvTerm: "xterm"}
	paletteOnlyEnv = MapEnviron{EnvTerm: "xterm-256color"}
)

func newTestResolver(t *testing.T, env MapEnviron) (*Resolver, *recorder) {
	t.Helper()
	dir := t.TempDir()
	writeTheme(t, dir, "red.json", `{"accent2": "#ff0000", "bg": "#101010"}`)
	writeTheme(t, dir, "sand.yaml", "bg: '#202020'\n")
	writeTheme(t, dir, "broken.json", `{"bg": `)
	writeTheme(t, dir, "sparse.json", `{}`)

	rec := &recorder{}
	d := Detector{Env: env, TermInfo: fakeTermInfo(testTermDB)}
	return NewResolver(dir, d, rec), rec
}

func TestApplyDefaultTheme(t *testing.T) {
	for _, env := range []MapEnviron{truecolorEnv, approxEnv, monochromeEnv, paletteOnlyEnv} {
		r, rec := newTestResolver(t, env)
		b := r.Apply(DefaultTheme)

		assert.Equal(t, DefaultBinding(), b)
		assert.True(t, b.Monochrome())
		assert.Empty(t, rec.backgrounds)
		assert.Zero(t, rec.resets)
		assert.Empty(t, rec.registers)
	}
}

func TestApplyTrueColorApprox(t *testing.T) {
	r, rec := newTestResolver(t, truecolorEnv)
	b := r.Apply("red")

	assert.Equal(t, StrategyTrueColorApprox, b.Strategy)
	assert.Equal(t, IndexColor(196), b.Roles[RoleAccent2])
	assert.Equal(t, DefaultColor(), b.Roles[RoleBackground])
	assert.Equal(t, []string{"#101010"}, rec.backgrounds)
	assert.Zero(t, rec.resets)
	assert.True(t, r.Overridden())
}

func TestApplyTrueColorRegisters(t *testing.T) {
	r, rec := newTestResolver(t, registersEnv)
	b := r.Apply("red")

	assert.Equal(t, StrategyTrueColorRegisters, b.Strategy)
	assert.Equal(t, RegisterColor(19), b.Roles[RoleAccent2])
	assert.Len(t, rec.registers, 7)
	assert.Equal(t, []string{"#101010"}, rec.backgrounds)
}

func TestApplyPaletteRegistersHasNoOverride(t *testing.T) {
	r, rec := newTestResolver(t, paletteOnlyEnv)
	b := r.Apply("red")

	assert.Equal(t, StrategyPaletteRegisters, b.Strategy)
	assert.Len(t, rec.registers, RoleCount)
	assert.Equal(t, Register{Index: 16, Color: RGB{0x10, 0x10, 0x10}}, rec.registers[0])
	assert.Empty(t, rec.backgrounds)
	assert.False(t, r.Overridden())
}

func TestApplyLimitedTerminalFallsBack(t *testing.T) {
	r, rec := newTestResolver(t, monochromeEnv)
	b := r.Apply("red")

	assert.Equal(t, DefaultBinding(), b)
	assert.Empty(t, rec.backgrounds)
	assert.Empty(t, rec.registers)
}

func TestApplyMissingAndMalformedFallBack(t *testing.T) {
	for _, name := range []string{"nope", "broken"} {
		r, rec := newTestResolver(t, truecolorEnv)
		assert.Equal(t, DefaultBinding(), r.Apply(name), name)
		assert.Empty(t, rec.backgrounds, name)
	}
}

func TestApplySparseThemeUsesDefaults(t *testing.T) {
	r, rec := newTestResolver(t, approxEnv)
	b := r.Apply("sparse")

	for _, role := range Roles() {
		want := IndexColor(NearestIndex(MustHex(DefaultPalette[role])))
		assert.Equal(t, want, b.Roles[role], role.String())
	}
	assert.Empty(t, rec.backgrounds)
}

func TestApplyIsIdempotent(t *testing.T) {
	r, rec := newTestResolver(t, truecolorEnv)
	first := r.Apply("red")
	second := r.Apply("red")

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"#101010", "#101010"}, rec.backgrounds, "every apply re-sends the background")
	assert.Zero(t, rec.resets)
}

func TestApplyRestoresRegistersOnDefault(t *testing.T) {
	r, rec := newTestResolver(t, paletteOnlyEnv)
	r.Apply("red")
	require.Len(t, rec.registers, RoleCount)

	r.Apply("red")
	assert.Empty(t, rec.restored, "slots reused by the next theme stay written")

	r.Apply(DefaultTheme)
	assert.Equal(t, registerIndices(rec.registers[:RoleCount]), rec.restored)

	r.Apply(DefaultTheme)
	assert.Len(t, rec.restored, RoleCount, "nothing left to restore")
}

func TestApplyResetsWhenSwitchingBackToDefault(t *testing.T) {
	r, rec := newTestResolver(t, truecolorEnv)
	r.Apply("red")
	r.Apply("sand")
	assert.Equal(t, []string{"#101010", "#202020"}, rec.backgrounds)

	r.Apply(DefaultTheme)
	assert.Equal(t, 1, rec.resets)
	assert.False(t, r.Overridden())

	r.Apply(DefaultTheme)
	assert.Equal(t, 1, rec.resets, "no reset without an active override")

	r.Apply("red")
	r.Apply("nope")
	assert.Equal(t, 2, rec.resets, "fallback clears the override too")
}

func TestSessionCloseResetsExactlyOnce(t *testing.T) {
	rec := &recorder{}
	s := Open(DefaultTheme, Options{Dir: t.TempDir(), Env: monochromeEnv, TermInfo: fakeTermInfo(testTermDB), Terminal: rec})

	s.Close()
	s.Close()
	assert.Equal(t, 1, rec.resets)
	assert.Empty(t, rec.restored)
}

func TestSessionCloseRestoresRegisters(t *testing.T) {
	dir := t.TempDir()
	writeTheme(t, dir, "red.json", `{"accent2": "#ff0000", "bg": "#101010"}`)
	rec := &recorder{}
	s := Open("red", Options{Dir: dir, Env: paletteOnlyEnv, TermInfo: fakeTermInfo(testTermDB), Terminal: rec})
	require.Len(t, rec.registers, RoleCount)

	s.Close()
	s.Close()
	assert.Equal(t, 1, rec.resets)
	assert.Equal(t, registerIndices(rec.registers), rec.restored)
}

func TestSessionApply(t *testing.T) {
	dir := t.TempDir()
	writeTheme(t, dir, "red.json", `{"accent2": "#ff0000"}`)
	rec := &recorder{}

	s := Open("red", Options{Dir: dir, Env: truecolorEnv, TermInfo: fakeTermInfo(testTermDB), Terminal: rec})
	defer s.Close()

	assert.Equal(t, "red", s.Current().Theme)
	assert.Equal(t, IndexColor(196), s.Current().Roles[RoleAccent2])
	assert.Equal(t, []string{DefaultPalette[RoleBackground]}, rec.backgrounds)
	assert.Equal(t, dir, s.Dir())

	b := s.Apply(DefaultTheme)
	assert.Equal(t, DefaultBinding(), b)
	assert.Equal(t, b, s.Current())
	assert.Equal(t, 1, rec.resets)
}

func TestTermenvTerminalSequences(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf, MapEnviron{})

	term.SetDefaultBackground("#001b4d")
	term.SetPaletteColor(17, RGB{0xea, 0xea, 0xea})
	term.ResetDefaultBackground()
	term.ResetPaletteColor(17)

	require.Equal(t,
		"\x1b]11;#001b4d\a"+"\x1b]4;17;rgb:ea/ea/ea\a"+"\x1b]111\a"+"\x1b]104;17\a",
		buf.String())
}
