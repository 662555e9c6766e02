package theme

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// Terminal receives the out-of-band control sequences a theme needs.
// Implementations must not fail: write errors are dropped.
type Terminal interface {
	SetDefaultBackground(hex string)
	ResetDefaultBackground()
	SetPaletteColor(index uint8, c RGB)
	ResetPaletteColor(index uint8)
}

// resetBackgroundSeq is OSC 111, restore the default background.
const resetBackgroundSeq = termenv.OSC + "111" + string(termenv.BEL)

// TermenvTerminal writes control sequences through a termenv.Output.
type TermenvTerminal struct {
	out *termenv.Output
}

// NewTerminal wraps w. env may be nil for the process environment.
func NewTerminal(w io.Writer, env termenv.Environ) *TermenvTerminal {
	opts := []termenv.OutputOption{termenv.WithProfile(termenv.TrueColor)}
	if env != nil {
		opts = append(opts, termenv.WithEnvironment(env))
	}
	return &TermenvTerminal{out: termenv.NewOutput(w, opts...)}
}

// NewOutputTerminal uses an existing termenv output, e.g. one bound to an
// SSH session.
func NewOutputTerminal(out *termenv.Output) *TermenvTerminal {
	return &TermenvTerminal{out: out}
}

func (t *TermenvTerminal) SetDefaultBackground(hex string) {
	t.out.SetBackgroundColor(termenv.RGBColor(hex))
}

func (t *TermenvTerminal) ResetDefaultBackground() {
	_, _ = t.out.WriteString(resetBackgroundSeq)
}

func (t *TermenvTerminal) SetPaletteColor(index uint8, c RGB) {
	_, _ = fmt.Fprintf(t.out, "%s4;%d;%s%c", termenv.OSC, index, c.XParse(), termenv.BEL)
}

// ResetPaletteColor restores one palette slot with OSC 104.
func (t *TermenvTerminal) ResetPaletteColor(index uint8) {
	_, _ = fmt.Fprintf(t.out, "%s104;%d%c", termenv.OSC, index, termenv.BEL)
}

// Discard is a Terminal that drops everything.
type Discard struct{}

func (Discard) SetDefaultBackground(string) {}
func (Discard) ResetDefaultBackground()     {}
func (Discard) SetPaletteColor(uint8, RGB)  {}
func (Discard) ResetPaletteColor(uint8)     {}
