package theme

import "sync"

// Session is an acquired theme resource for one terminal. Close must be
// deferred by the owner; it restores the terminal default background exactly
// once no matter how many times it is called.
type Session struct {
	resolver *Resolver
	current  Binding
	once     sync.Once
}

// Options configure Open.
type Options struct {
	Dir      string
	Env      Environ
	TermInfo TermInfoFunc
	Terminal Terminal
}

// Open acquires a session and applies name.
func Open(name string, opts Options) *Session {
	d := NewDetector(opts.Env)
	if opts.TermInfo != nil {
		d.TermInfo = opts.TermInfo
	}
	s := &Session{resolver: NewResolver(opts.Dir, d, opts.Terminal)}
	s.Apply(name)
	return s
}

// Apply switches to name and returns the new binding.
func (s *Session) Apply(name string) Binding {
	s.current = s.resolver.Apply(name)
	return s.current
}

// Current is the binding from the most recent Apply.
func (s *Session) Current() Binding {
	return s.current
}

// Dir is the theme directory this session reads.
func (s *Session) Dir() string {
	return s.resolver.Dir
}

// Close releases the session: the default background and every redefined
// palette slot are restored.
func (s *Session) Close() {
	s.once.Do(func() {
		s.resolver.Terminal.ResetDefaultBackground()
		s.resolver.background = ""
		s.resolver.restoreRegisters()
	})
}
