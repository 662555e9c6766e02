package theme

import (
	"github.com/rs/zerolog/log"
)

// Resolver turns theme names into bindings for one terminal. It is owned by a
// single render loop and is not safe for concurrent use.
type Resolver struct {
	Dir      string
	Detector Detector
	Terminal Terminal

	// background is the hex of the active out-of-band override, "" when the
	// terminal default is untouched.
	background string
	// registers are the palette slots redefined and not yet restored.
	registers []uint8
}

// NewResolver builds a resolver for the given terminal.
func NewResolver(dir string, d Detector, t Terminal) *Resolver {
	if dir == "" {
		dir = DefaultThemeDir
	}
	if t == nil {
		t = Discard{}
	}
	return &Resolver{Dir: dir, Detector: d, Terminal: t}
}

// Apply resolves name. It never fails: a missing or malformed theme and a
// terminal too limited to show it all produce the default scheme.
func (r *Resolver) Apply(name string) Binding {
	if name == "" || name == DefaultTheme {
		return r.useDefault()
	}

	def, err := LoadDefinition(r.Dir, name)
	if err != nil {
		log.Debug().Err(err).Str("theme", name).Msg("theme unavailable, using default")
		return r.useDefault()
	}
	palette := def.Palette()

	caps := r.Detector.Detect()
	strategy := SelectStrategy(caps)
	log.Debug().
		Bool("truecolor", caps.TrueColor).
		Bool("custom_palette", caps.CustomPalette).
		Int("colors", caps.ColorCount).
		Str("strategy", strategy.String()).
		Msg("terminal capabilities")

	if strategy == StrategyDefault {
		log.Debug().Str("theme", name).Msg("terminal too limited for theme, using default")
		return r.useDefault()
	}

	plan := strategy.Plan(name, palette)
	r.commit(plan)
	log.Info().Str("theme", name).Str("strategy", strategy.String()).Msg("theme applied")
	return plan.Binding
}

// Overridden reports whether an out-of-band background is in effect.
func (r *Resolver) Overridden() bool {
	return r.background != ""
}

func (r *Resolver) useDefault() Binding {
	r.clearBackground()
	r.restoreRegisters()
	return DefaultBinding()
}

func (r *Resolver) commit(plan Plan) {
	written := make(map[uint8]bool, len(plan.Registers))
	for _, reg := range plan.Registers {
		r.Terminal.SetPaletteColor(reg.Index, reg.Color)
		written[reg.Index] = true
	}
	// slots the previous plan used and this one does not
	for _, i := range r.registers {
		if !written[i] {
			r.Terminal.ResetPaletteColor(i)
		}
	}
	r.registers = r.registers[:0]
	for _, reg := range plan.Registers {
		r.registers = append(r.registers, reg.Index)
	}

	if plan.Background == "" {
		r.clearBackground()
		return
	}
	r.Terminal.SetDefaultBackground(plan.Background)
	r.background = plan.Background
}

// restoreRegisters resets every redefined palette slot.
func (r *Resolver) restoreRegisters() {
	for _, i := range r.registers {
		r.Terminal.ResetPaletteColor(i)
	}
	r.registers = nil
}

func (r *Resolver) clearBackground() {
	if r.background == "" {
		return
	}
	r.Terminal.ResetDefaultBackground()
	r.background = ""
}
