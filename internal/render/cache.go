package render

// Tick identifies one refresh cycle.
type Tick uint64

// TickSource reports the current tick.
type TickSource interface {
	Tick() Tick
}

type cacheEntry[V any] struct {
	value V
	err   error
}

// TickCache memoizes lookups for the duration of one tick. The first Get for
// a key in a tick runs load; later Gets in the same tick return its result,
// error included. Entries from older ticks are dropped on the next access.
type TickCache[K comparable, V any] struct {
	src     TickSource
	tick    Tick
	entries map[K]cacheEntry[V]
}

// NewTickCache returns a cache keyed to src's tick.
func NewTickCache[K comparable, V any](src TickSource) *TickCache[K, V] {
	return &TickCache[K, V]{
		src:     src,
		tick:    src.Tick(),
		entries: make(map[K]cacheEntry[V]),
	}
}

// Get returns the memoized value for key, calling load on a miss.
func (c *TickCache[K, V]) Get(key K, load func() (V, error)) (V, error) {
	c.sweep()
	if e, ok := c.entries[key]; ok {
		return e.value, e.err
	}
	v, err := load()
	c.entries[key] = cacheEntry[V]{value: v, err: err}
	return v, err
}

// Len is the number of entries live in the current tick.
func (c *TickCache[K, V]) Len() int {
	c.sweep()
	return len(c.entries)
}

func (c *TickCache[K, V]) sweep() {
	if t := c.src.Tick(); t != c.tick {
		clear(c.entries)
		c.tick = t
	}
}
