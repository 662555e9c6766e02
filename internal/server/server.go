package server

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/tnguyen21/netscope/internal/app"
	"github.com/tnguyen21/netscope/internal/config"
	"github.com/tnguyen21/netscope/internal/data"
	"github.com/tnguyen21/netscope/internal/render"
	"github.com/tnguyen21/netscope/internal/theme"
)

// HostKeyName is the host key file inside the configured key directory.
const HostKeyName = "netscope_host_key"

type themeKey struct{}

// Options configure New.
type Options struct {
	Config   config.Config
	Version  string
	Provider data.Provider
	Splash   []string
	Logo     []string
	// TermInfo overrides the terminfo lookup; nil reads the local database.
	TermInfo theme.TermInfoFunc
}

// Server wraps a wish SSH server that serves the NetScope dashboard of the
// host it runs on. Every session gets its own theme session and engine.
type Server struct {
	opts Options
	wish *ssh.Server
}

// New creates a Server. Unless Config.Server.AllowKill is set, sessions
// cannot terminate processes.
func New(opts Options) (*Server, error) {
	if opts.Provider == nil {
		opts.Provider = data.NewHostProvider()
	}
	if !opts.Config.Server.AllowKill {
		opts.Provider = data.ReadOnly{Provider: opts.Provider}
	}
	s := &Server{opts: opts}

	cfg := opts.Config.Server
	w, err := wish.NewServer(
		wish.WithAddress(fmt.Sprintf(":%d", cfg.Port)),
		wish.WithHostKeyPath(filepath.Join(cfg.HostKeyDir, HostKeyName)),
		wish.WithPublicKeyAuth(publicKeyHandler),
		wish.WithMiddleware(
			bubbletea.Middleware(s.teaHandler),
			activeterm.Middleware(),
			closeTheme,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating wish server: %w", err)
	}
	s.wish = w
	return s, nil
}

// Addr is the listen address.
func (s *Server) Addr() string {
	return s.wish.Addr
}

func (s *Server) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	model, ts := s.NewSession(sess.Environ(), pty.Term, sess, bubbletea.MakeRenderer(sess))
	sess.Context().SetValue(themeKey{}, ts)

	log.Info().
		Str("user", sess.User()).
		Str("remote", sess.RemoteAddr().String()).
		Str("term", pty.Term).
		Str("theme", ts.Current().Theme).
		Msg("session started")

	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// NewSession builds the dashboard for one client. env and term describe the
// client terminal; theme control sequences are written to out.
func (s *Server) NewSession(env []string, term string, out io.Writer, r *lipgloss.Renderer) (app.Model, *theme.Session) {
	cfg := s.opts.Config
	environ := theme.EnvironFromList(env)
	if term != "" {
		environ["TERM"] = term
	}

	ts := theme.Open(cfg.Theme, theme.Options{
		Dir:      cfg.ThemeDir,
		Env:      environ,
		TermInfo: s.opts.TermInfo,
		Terminal: theme.NewTerminal(out, environ),
	})

	model := app.New(app.Options{
		Version:   s.opts.Version,
		Themer:    ts,
		Provider:  s.opts.Provider,
		Scheduler: NewScheduler(cfg),
		Renderer:  r,
		ConnKind:  cfg.ConnKind,
		Splash:    s.opts.Splash,
		Logo:      s.opts.Logo,
	})
	return model, ts
}

// NewScheduler builds a render scheduler from the poll settings.
func NewScheduler(cfg config.Config) *render.Scheduler {
	sched := render.NewScheduler(cfg.Refresh())
	sched.Idle = cfg.Poll.Idle()
	sched.Scroll = cfg.Poll.Scroll()
	sched.BoostWindow = cfg.Poll.Boost()
	return sched
}

// closeTheme restores the client's background once its program exits.
func closeTheme(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		next(sess)
		if ts, ok := sess.Context().Value(themeKey{}).(*theme.Session); ok {
			ts.Close()
			log.Info().Str("user", sess.User()).Msg("session ended")
		}
	}
}

// Start begins listening for SSH connections. It blocks until the server
// is shut down or encounters a fatal error. Returns nil on graceful shutdown.
func (s *Server) Start() error {
	if err := s.wish.ListenAndServe(); err != nil && err != ssh.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.wish.Shutdown(ctx)
}

// publicKeyHandler accepts all SSH public keys. The dashboard is read-only
// by default; restrict access with a firewall.
func publicKeyHandler(_ ssh.Context, _ ssh.PublicKey) bool {
	return true
}
