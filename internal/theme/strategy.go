package theme

// Strategy is the resolution path chosen for a terminal. Each strategy is a
// pure function from a palette to a Plan.
type Strategy uint8

const (
	StrategyDefault Strategy = iota
	StrategyTrueColorRegisters
	StrategyTrueColorApprox
	StrategyPaletteRegisters
	StrategyApprox256
)

func (s Strategy) String() string {
	switch s {
	case StrategyTrueColorRegisters:
		return "truecolor-registers"
	case StrategyTrueColorApprox:
		return "truecolor-approx"
	case StrategyPaletteRegisters:
		return "palette-registers"
	case StrategyApprox256:
		return "approx-256"
	default:
		return "default"
	}
}

// RegisterBase is the first custom palette slot. Roles occupy
// RegisterBase+role in role order.
const RegisterBase = 16

// Register is one palette slot redefinition.
type Register struct {
	Index uint8
	Color RGB
}

// Plan is a strategy's output: the binding plus the side effects needed to
// make it true on the terminal.
type Plan struct {
	Binding    Binding
	Registers  []Register
	Background string // hex for the out-of-band override, "" for none
}

// SelectStrategy maps detected capabilities onto a strategy.
func SelectStrategy(c Capabilities) Strategy {
	switch c.Tier() {
	case TierTrueColor:
		if c.CustomPalette {
			return StrategyTrueColorRegisters
		}
		return StrategyTrueColorApprox
	case TierCustomPalette:
		return StrategyPaletteRegisters
	case TierApprox256:
		return StrategyApprox256
	default:
		return StrategyDefault
	}
}

var strategies = map[Strategy]func(Palette) Plan{
	StrategyDefault:            planDefault,
	StrategyTrueColorRegisters: planTrueColorRegisters,
	StrategyTrueColorApprox:    planTrueColorApprox,
	StrategyPaletteRegisters:   planPaletteRegisters,
	StrategyApprox256:          planApprox256,
}

// Plan runs the strategy for theme name over p.
func (s Strategy) Plan(name string, p Palette) Plan {
	fn, ok := strategies[s]
	if !ok {
		fn = planDefault
	}
	plan := fn(p)
	plan.Binding.Strategy = s
	if s == StrategyDefault {
		plan.Binding.Theme = DefaultTheme
	} else {
		plan.Binding.Theme = name
	}
	return plan
}

// OutOfBand reports whether s drives the background through OSC 11.
func (s Strategy) OutOfBand() bool {
	return s == StrategyTrueColorRegisters || s == StrategyTrueColorApprox
}

func planDefault(Palette) Plan {
	return Plan{Binding: DefaultBinding()}
}

func planTrueColorRegisters(p Palette) Plan {
	var plan Plan
	plan.Binding.Roles[RoleBackground] = DefaultColor()
	for _, r := range ForegroundRoles() {
		idx := uint8(RegisterBase + int(r))
		plan.Binding.Roles[r] = RegisterColor(idx)
		plan.Registers = append(plan.Registers, Register{Index: idx, Color: p.RGB(r)})
	}
	plan.Background = p[RoleBackground]
	return plan
}

func planTrueColorApprox(p Palette) Plan {
	var plan Plan
	plan.Binding.Roles[RoleBackground] = DefaultColor()
	for _, r := range ForegroundRoles() {
		plan.Binding.Roles[r] = IndexColor(NearestIndex(p.RGB(r)))
	}
	plan.Background = p[RoleBackground]
	return plan
}

func planPaletteRegisters(p Palette) Plan {
	var plan Plan
	for _, r := range Roles() {
		idx := uint8(RegisterBase + int(r))
		plan.Binding.Roles[r] = RegisterColor(idx)
		plan.Registers = append(plan.Registers, Register{Index: idx, Color: p.RGB(r)})
	}
	return plan
}

func planApprox256(p Palette) Plan {
	var plan Plan
	for _, r := range Roles() {
		plan.Binding.Roles[r] = IndexColor(NearestIndex(p.RGB(r)))
	}
	return plan
}
