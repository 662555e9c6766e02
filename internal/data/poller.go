package data

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// PollMsg wakes the render loop after an input wait times out. Gen lets the
// model drop polls superseded by a rescheduling.
type PollMsg struct {
	Gen uint64
	At  time.Time
}

// SchedulePoll returns a tea.Tick command for the next redraw decision.
func SchedulePoll(timeout time.Duration, gen uint64) tea.Cmd {
	return tea.Tick(timeout, func(t time.Time) tea.Msg {
		return PollMsg{Gen: gen, At: t}
	})
}
