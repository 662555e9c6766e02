package render

import (
	"time"
)

// Poll intervals.
const (
	DefaultIdle        = 80 * time.Millisecond
	DefaultScroll      = 15 * time.Millisecond
	DefaultBoostWindow = 250 * time.Millisecond
	DefaultRefresh     = 3 * time.Second
)

// Mode is the scheduler's polling mode.
type Mode uint8

const (
	ModeIdle Mode = iota
	ModeBoosted
)

func (m Mode) String() string {
	if m == ModeBoosted {
		return "boosted"
	}
	return "idle"
}

// scrollKeys are the key names (bubbletea KeyMsg.String) that boost polling.
var scrollKeys = map[string]bool{
	"up": true, "down": true, "j": true, "k": true,
	"pgup": true, "pgdown": true, "home": true, "end": true,
}

// IsScrollKey reports whether key is scroll-class.
func IsScrollKey(key string) bool {
	return scrollKeys[key]
}

// Scheduler decides the input wait timeout and when data goes stale.
// Idle and Scroll govern input latency; Refresh governs data freshness.
type Scheduler struct {
	Idle        time.Duration
	Scroll      time.Duration
	BoostWindow time.Duration
	Refresh     time.Duration

	// Now is the clock; tests replace it.
	Now func() time.Time

	mode        Mode
	expiry      time.Time
	lastAdvance time.Time
	started     bool
}

// NewScheduler returns a scheduler with default poll intervals. A
// non-positive refresh uses DefaultRefresh.
func NewScheduler(refresh time.Duration) *Scheduler {
	if refresh <= 0 {
		refresh = DefaultRefresh
	}
	return &Scheduler{
		Idle:        DefaultIdle,
		Scroll:      DefaultScroll,
		BoostWindow: DefaultBoostWindow,
		Refresh:     refresh,
		Now:         time.Now,
	}
}

// Clock returns the current time from s.Now.
func (s *Scheduler) Clock() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Mode is the current polling mode.
func (s *Scheduler) Mode() Mode {
	return s.mode
}

// Timeout is the input wait for the current mode.
func (s *Scheduler) Timeout() time.Duration {
	if s.mode == ModeBoosted {
		return s.Scroll
	}
	return s.Idle
}

// Input classifies a key event at now. Scroll-class keys enter BOOSTED and
// push the expiry out to now+BoostWindow. It reports whether the key boosted.
func (s *Scheduler) Input(key string, now time.Time) bool {
	if !IsScrollKey(key) {
		return false
	}
	s.mode = ModeBoosted
	s.expiry = now.Add(s.BoostWindow)
	return true
}

// Poll runs one redraw decision at now. It returns the timeout for the next
// input wait and whether the tick should advance.
func (s *Scheduler) Poll(now time.Time) (timeout time.Duration, advance bool) {
	if s.mode == ModeBoosted && now.After(s.expiry) {
		s.mode = ModeIdle
	}
	if !s.started || now.Sub(s.lastAdvance) >= s.Refresh {
		s.started = true
		s.lastAdvance = now
		advance = true
	}
	return s.Timeout(), advance
}
