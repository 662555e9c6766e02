package app

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tnguyen21/netscope/internal/data"
	"github.com/tnguyen21/netscope/internal/pane"
	"github.com/tnguyen21/netscope/internal/render"
	"github.com/tnguyen21/netscope/internal/theme"
)

// Themer switches themes on one terminal. *theme.Session implements it.
type Themer interface {
	Apply(name string) theme.Binding
	Current() theme.Binding
	Dir() string
}

// Options configure New.
type Options struct {
	Version   string
	Themer    Themer
	Provider  data.Provider
	Scheduler *render.Scheduler
	// Renderer styles the output; nil uses the lipgloss default.
	Renderer *lipgloss.Renderer
	ConnKind string
	Splash   []string
	Logo     []string
}

// Model is the root bubbletea Model. It owns the render engine: the binding,
// the tick and the per-tick data memo are only touched from Update and View.
type Model struct {
	engine     *render.Engine
	themer     Themer
	memo       *data.Memo
	grid       *render.Grid
	panes      []pane.Pane
	active     pane.PaneID
	overlay    pane.Overlay
	pollGen    uint64
	width      int
	height     int
	layoutMode LayoutMode
	keys       KeyMap
	help       help.Model
}

// New creates a root Model.
func New(opts Options) Model {
	r := opts.Renderer
	engine := render.NewEngine(opts.Themer.Current(), opts.Scheduler, func(b theme.Binding) theme.Styles {
		return theme.NewStyles(b, r)
	})
	memo := data.NewMemo(opts.Provider, engine)

	kind := opts.ConnKind
	if kind == "" {
		kind = "tcp"
	}
	panes := []pane.Pane{
		pane.NewMenuPane(opts.Version, opts.Splash),
		pane.NewSystemInfoPane(memo, opts.Logo),
		pane.NewConnectionsPane(memo, data.StatusEstablished, kind),
		pane.NewConnectionsPane(memo, data.StatusListen, kind),
		pane.NewBothPane(memo, kind),
		pane.NewProcessesPane(memo),
	}

	return Model{
		engine: engine,
		themer: opts.Themer,
		memo:   memo,
		grid:   render.NewGrid(0, 0, engine.Styles()),
		panes:  panes,
		active: pane.PaneMenu,
		keys:   DefaultKeyMap(),
		help:   newHelp(r),
	}
}

// newHelp builds an unstyled help model; the grid colors the hints.
func newHelp(r *lipgloss.Renderer) help.Model {
	style := lipgloss.NewStyle
	if r != nil {
		style = r.NewStyle
	}
	h := help.New()
	h.ShortSeparator = " • "
	h.Styles = help.Styles{
		Ellipsis:       style(),
		ShortKey:       style(),
		ShortDesc:      style(),
		ShortSeparator: style(),
		FullKey:        style(),
		FullDesc:       style(),
		FullSeparator:  style(),
	}
	return h
}

// Active is the screen on display.
func (m Model) Active() pane.PaneID { return m.active }

// Pane returns the screen with id.
func (m Model) Pane(id pane.PaneID) pane.Pane { return m.panes[id] }

// Overlay is the open dialog, or nil.
func (m Model) Overlay() pane.Overlay { return m.overlay }

// Engine is the render engine.
func (m Model) Engine() *render.Engine { return m.engine }

// Init schedules the first redraw decision.
func (m Model) Init() tea.Cmd {
	return data.SchedulePoll(0, m.pollGen)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutMode = GetLayoutMode(msg.Width)
		m.help.Width = max(0, msg.Width-4)
		m.grid.Resize(msg.Height, msg.Width)
		for _, p := range m.panes {
			p.SetSize(msg.Width, msg.Height)
		}
		return m, nil

	case data.PollMsg:
		if msg.Gen != m.pollGen {
			// superseded by a key press
			return m, nil
		}
		return m, m.poll()

	case tea.KeyMsg:
		m.engine.Input(msg.String(), m.engine.Scheduler().Clock())
		cmd := m.handleKey(msg)
		return m, tea.Batch(cmd, m.poll())

	case pane.OpenMsg:
		m.active = msg.ID
		return m, m.refreshActive()

	case pane.ApplyThemeMsg:
		m.engine.SetBinding(m.themer.Apply(msg.Name))
		return m, m.reload()

	case pane.ReloadMsg:
		return m, m.reload()
	}

	return m, nil
}

// poll runs one redraw decision and schedules the next input wait. Any
// earlier scheduled poll is dropped when it arrives.
func (m *Model) poll() tea.Cmd {
	timeout, advanced := m.engine.Poll(m.engine.Scheduler().Clock())
	var cmd tea.Cmd
	if advanced {
		cmd = m.refreshActive()
	}
	m.pollGen++
	return tea.Batch(cmd, data.SchedulePoll(timeout, m.pollGen))
}

// reload starts a new tick now.
func (m *Model) reload() tea.Cmd {
	m.engine.AdvanceTick()
	return m.refreshActive()
}

func (m *Model) refreshActive() tea.Cmd {
	return m.updateActivePane(pane.RefreshMsg{Tick: m.engine.Tick()})
}

// handleKey processes global key bindings, forwarding unhandled keys
// to the active pane.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.ForceQuit) {
		return tea.Quit
	}
	if m.overlay != nil {
		closed, cmd := m.overlay.Update(msg)
		if closed {
			m.overlay = nil
		}
		return cmd
	}
	// Prompts and dialogs get every key.
	if m.panes[m.active].Capturing() {
		return m.updateActivePane(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Back):
		if m.active != pane.PaneMenu {
			m.active = pane.PaneMenu
		}
		return nil
	case key.Matches(msg, m.keys.Theme):
		m.overlay = pane.NewThemePicker(theme.Available(m.themer.Dir()), m.themer.Current().Theme)
		return nil
	case key.Matches(msg, m.keys.Help):
		if lines := m.panes[m.active].Help(); len(lines) > 0 {
			m.overlay = &pane.HelpPopup{Lines: lines}
		}
		return nil
	}
	return m.updateActivePane(msg)
}

// updateActivePane sends a message to the active pane and stores the result.
func (m *Model) updateActivePane(msg tea.Msg) tea.Cmd {
	p, cmd := m.panes[m.active].Update(msg)
	m.panes[m.active] = p
	return cmd
}

// View draws the active screen, the key hints and any open dialog.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	m.grid.Clear()
	if m.layoutMode == LayoutNarrow {
		m.grid.WriteString(0, 0, pane.ResizeNotice, theme.RoleAccent)
		return m.grid.Flush()
	}

	m.panes[m.active].Draw(m.grid)
	if hints := m.help.ShortHelpView(m.keys.ShortHelp()); hints != "" {
		m.grid.WriteString(HintRow(m.height), 2, " "+hints+" ", theme.RoleMuted)
	}
	if m.overlay != nil {
		m.overlay.Draw(m.grid)
	}
	return m.grid.Flush()
}
