package render

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tnguyen21/netscope/internal/theme"
)

// Engine is the render loop's owned state: the active binding, the tick
// counter and the scheduler. Per-tick caches hang off it via NewTickCache.
// It belongs to a single goroutine.
type Engine struct {
	binding theme.Binding
	styles  theme.Styles
	tick    Tick
	sched   *Scheduler
	restyle func(theme.Binding) theme.Styles
}

// NewEngine creates an engine. restyle builds styles for a binding; nil uses
// the default lipgloss renderer.
func NewEngine(b theme.Binding, sched *Scheduler, restyle func(theme.Binding) theme.Styles) *Engine {
	if sched == nil {
		sched = NewScheduler(0)
	}
	if restyle == nil {
		restyle = func(b theme.Binding) theme.Styles { return theme.NewStyles(b, nil) }
	}
	e := &Engine{sched: sched, restyle: restyle}
	e.SetBinding(b)
	return e
}

// Tick implements TickSource.
func (e *Engine) Tick() Tick {
	return e.tick
}

// AdvanceTick starts a new refresh cycle. Every TickCache bound to e drops
// its entries on next access.
func (e *Engine) AdvanceTick() Tick {
	e.tick++
	log.Trace().Uint64("tick", uint64(e.tick)).Msg("tick advanced")
	return e.tick
}

// Binding is the active color binding.
func (e *Engine) Binding() theme.Binding {
	return e.binding
}

// Styles are the lipgloss styles for the active binding.
func (e *Engine) Styles() *theme.Styles {
	return &e.styles
}

// SetBinding swaps the active binding and rebuilds styles.
func (e *Engine) SetBinding(b theme.Binding) {
	e.binding = b
	e.styles = e.restyle(b)
}

// Scheduler is the engine's poll scheduler.
func (e *Engine) Scheduler() *Scheduler {
	return e.sched
}

// Input feeds a key to the scheduler.
func (e *Engine) Input(key string, now time.Time) bool {
	return e.sched.Input(key, now)
}

// Poll runs the redraw decision, advancing the tick when the scheduler says
// data is stale.
func (e *Engine) Poll(now time.Time) (timeout time.Duration, advanced bool) {
	timeout, advanced = e.sched.Poll(now)
	if advanced {
		e.AdvanceTick()
	}
	return timeout, advanced
}
