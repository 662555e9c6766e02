package pane

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/tnguyen21/netscope/internal/data"
	"github.com/tnguyen21/netscope/internal/render"
	"github.com/tnguyen21/netscope/internal/theme"
)

var procTable = render.Table{
	Columns: []render.Column{
		{Title: "PID", Width: 6, Right: true},
		{Title: "USER", Width: 12},
		{Title: "NI", Width: 3, Right: true},
		{Title: "VIRT", Width: 10, Right: true},
		{Title: "RES", Width: 10, Right: true},
		{Title: "SHR", Width: 10, Right: true},
		{Title: "STATUS", Width: 10},
		{Title: "CPU%", Width: 5, Right: true},
		{Title: "MEM%", Width: 5, Right: true},
		{Title: "TIME+", Width: 8, Right: true},
		{Title: "Command", Width: 30},
	},
	Roles: []theme.Role{
		theme.RoleAccent, theme.RoleAccent2, theme.RoleAccent3, theme.RoleAccent4,
		theme.RoleAccent5, theme.RoleMuted, theme.RoleAccent2, theme.RoleAccent3,
		theme.RoleAccent4, theme.RoleAccent5, theme.RoleMuted,
	},
	Gap: 1,
}

var procHelp = []string{
	" Running Processes ",
	"",
	" Up/Down Arrows or j: Scroll through the list of processes.",
	" k: Kill the selected process (with confirmation).",
	" s: Search for a process.",
	" n: Find next match in search.",
	" c: Sort processes by CPU usage.",
	" m: Sort processes by Memory usage.",
	" ?: Show this help menu.",
	" Left Arrow or Backspace: Return to the main menu.",
	" q: Quit the application.",
}

const searchPrompt = "Search process name: "

// SortField determines the sort order for process rows.
type SortField int

const (
	SortByCPU SortField = iota
	SortByMem
)

func (s SortField) String() string {
	if s == SortByMem {
		return "MEM"
	}
	return "CPU"
}

type procMode int

const (
	procBrowse procMode = iota
	procSearch
	procConfirm
)

// ProcessCells formats a process row for the table.
func ProcessCells(r data.ProcessRow) []string {
	user := r.User
	if user == "" {
		user = data.NA
	}
	shared := data.NA
	if r.HasShared {
		shared = data.FormatBytes(r.Shared)
	}
	return []string{
		strconv.Itoa(int(r.PID)),
		user,
		strconv.Itoa(int(r.Nice)),
		data.FormatBytes(r.VMS),
		data.FormatBytes(r.RSS),
		shared,
		r.Status,
		fmt.Sprintf("%.1f", r.CPU),
		fmt.Sprintf("%.1f", r.Mem),
		data.FormatUptime(r.Uptime),
		r.Name,
	}
}

// ProcessesPane is the process table with sort, search and kill.
type ProcessesPane struct {
	memo   *data.Memo
	rows   []data.ProcessRow
	err    error
	cursor int
	offset int
	width  int
	height int
	sortBy SortField
	term   string
	mode   procMode
	input  textinput.Model
	target data.ProcessRow
	keys   processKeys
}

type processKeys struct {
	listKeys
	Kill    key.Binding
	Search  key.Binding
	Next    key.Binding
	SortCPU key.Binding
	SortMem key.Binding
	Submit  key.Binding
	Cancel  key.Binding
	Yes     key.Binding
	No      key.Binding
}

// NewProcessesPane creates the process screen, sorted by CPU.
func NewProcessesPane(memo *data.Memo) *ProcessesPane {
	ti := textinput.New()
	ti.Prompt = ""
	return &ProcessesPane{
		memo:  memo,
		input: ti,
		keys: processKeys{
			// k is kill here, so only the arrow scrolls up
			listKeys: newListKeys("up"),
			Kill:     key.NewBinding(key.WithKeys("k")),
			Search:   key.NewBinding(key.WithKeys("s")),
			Next:     key.NewBinding(key.WithKeys("n")),
			SortCPU:  key.NewBinding(key.WithKeys("c")),
			SortMem:  key.NewBinding(key.WithKeys("m")),
			Submit:   key.NewBinding(key.WithKeys("enter")),
			Cancel:   key.NewBinding(key.WithKeys("esc")),
			Yes:      key.NewBinding(key.WithKeys("y", "Y")),
			No:       key.NewBinding(key.WithKeys("n", "N", "esc")),
		},
	}
}

func (p *ProcessesPane) ID() PaneID { return PaneProcesses }
func (p *ProcessesPane) Title() string {
	return fmt.Sprintf("Running Processes (sort: %s | c/m • k:Kill • s:Search • n:Next • ?:Help)", p.sortBy)
}
func (p *ProcessesPane) Help() []string  { return procHelp }
func (p *ProcessesPane) Capturing() bool { return p.mode != procBrowse }

func (p *ProcessesPane) SetSize(w, h int) {
	p.width = w
	p.height = h
	p.input.Width = max(1, min(w-4, 72)-4-len(searchPrompt))
	p.clampScroll()
}

// Rows are the process rows in display order.
func (p *ProcessesPane) Rows() []data.ProcessRow { return p.rows }

// Cursor is the selected row index; Offset is the first visible row.
func (p *ProcessesPane) Cursor() int { return p.cursor }
func (p *ProcessesPane) Offset() int { return p.offset }

// SortBy is the active sort order.
func (p *ProcessesPane) SortBy() SortField { return p.sortBy }

// SearchTerm is the last submitted search.
func (p *ProcessesPane) SearchTerm() string { return p.term }

// contentHeight is the number of table rows on screen.
func (p *ProcessesPane) contentHeight() int {
	return max(1, p.height-6)
}

func (p *ProcessesPane) Update(msg tea.Msg) (Pane, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshMsg:
		p.load()
	case tea.KeyMsg:
		switch p.mode {
		case procSearch:
			return p, p.updateSearch(msg)
		case procConfirm:
			return p, p.updateConfirm(msg)
		}
		return p, p.updateBrowse(msg)
	}
	return p, nil
}

func (p *ProcessesPane) updateBrowse(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, p.keys.Up):
		p.cursor = max(0, p.cursor-1)
		p.scrollToCursor()
	case key.Matches(msg, p.keys.Down):
		p.cursor = min(max(0, len(p.rows)-1), p.cursor+1)
		p.scrollToCursor()
	case key.Matches(msg, p.keys.PageUp):
		p.cursor = max(0, p.cursor-p.contentHeight())
		p.scrollToCursor()
	case key.Matches(msg, p.keys.PageDown):
		p.cursor = min(max(0, len(p.rows)-1), p.cursor+p.contentHeight())
		p.scrollToCursor()
	case key.Matches(msg, p.keys.Home):
		p.cursor = 0
		p.scrollToCursor()
	case key.Matches(msg, p.keys.End):
		p.cursor = max(0, len(p.rows)-1)
		p.scrollToCursor()
	case key.Matches(msg, p.keys.Kill):
		if p.cursor < len(p.rows) {
			p.target = p.rows[p.cursor]
			p.mode = procConfirm
		}
	case key.Matches(msg, p.keys.Search):
		p.mode = procSearch
		p.input.Reset()
		p.input.Focus()
	case key.Matches(msg, p.keys.Next):
		p.findNext()
	case key.Matches(msg, p.keys.SortCPU):
		p.sortBy = SortByCPU
		p.sortRows()
	case key.Matches(msg, p.keys.SortMem):
		p.sortBy = SortByMem
		p.sortRows()
	}
	return nil
}

func (p *ProcessesPane) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, p.keys.Submit):
		p.mode = procBrowse
		p.input.Blur()
		p.term = strings.TrimSpace(p.input.Value())
		if i := p.match(0); i >= 0 {
			p.cursor = i
			p.offset = max(0, i-2)
		}
	case key.Matches(msg, p.keys.Cancel):
		p.mode = procBrowse
		p.input.Blur()
	default:
		// the prompt is drawn from Value, so blink commands are dropped
		p.input, _ = p.input.Update(msg)
	}
	return nil
}

func (p *ProcessesPane) updateConfirm(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, p.keys.Yes):
		p.mode = procBrowse
		if err := p.memo.Terminate(p.target.PID); err != nil {
			log.Debug().Err(err).Int32("pid", p.target.PID).Msg("terminate failed")
		}
		return reload
	case key.Matches(msg, p.keys.No):
		p.mode = procBrowse
	}
	return nil
}

// match is the first row at or after from whose name contains the search
// term, case-insensitively, or -1.
func (p *ProcessesPane) match(from int) int {
	if p.term == "" {
		return -1
	}
	term := strings.ToLower(p.term)
	for i := from; i < len(p.rows); i++ {
		if strings.Contains(strings.ToLower(p.rows[i].Name), term) {
			return i
		}
	}
	return -1
}

func (p *ProcessesPane) findNext() {
	if i := p.match(p.cursor + 1); i >= 0 {
		p.cursor = i
		p.scrollToCursor()
	}
}

func (p *ProcessesPane) load() {
	rows, err := p.memo.Processes()
	p.err = err
	// the memo shares its slice with every reader this tick
	p.rows = append(p.rows[:0:0], rows...)
	p.sortRows()
	p.clampScroll()
}

func (p *ProcessesPane) sortRows() {
	metric := func(r data.ProcessRow) float64 { return r.CPU }
	if p.sortBy == SortByMem {
		metric = func(r data.ProcessRow) float64 { return float64(r.Mem) }
	}
	sort.SliceStable(p.rows, func(i, j int) bool {
		a, b := metric(p.rows[i]), metric(p.rows[j])
		if a != b {
			return a > b
		}
		return p.rows[i].PID < p.rows[j].PID
	})
}

func (p *ProcessesPane) scrollToCursor() {
	contentHeight := p.contentHeight()
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+contentHeight {
		p.offset = p.cursor - contentHeight + 1
	}
	p.clampScroll()
}

func (p *ProcessesPane) clampScroll() {
	maxOffset := max(0, len(p.rows)-p.contentHeight())
	p.offset = min(max(0, p.offset), maxOffset)
	p.cursor = min(max(0, p.cursor), max(0, len(p.rows)-1))
}

func (p *ProcessesPane) Draw(g *render.Grid) {
	f := frame(g)
	drawBox(g, f, p.Title())
	procTable.DrawHeader(g, 2, 1)
	drawHLine(g, 3, 1, f.width-2)

	if p.rows == nil && p.err == nil {
		p.load()
	}
	if p.err != nil && len(p.rows) == 0 {
		g.WriteString(4, 1, data.NA, theme.RoleMuted)
	}
	end := min(len(p.rows), p.offset+max(1, f.height-6))
	for i := p.offset; i < end; i++ {
		procTable.DrawRow(g, 4+i-p.offset, 1, ProcessCells(p.rows[i]), i == p.cursor)
	}

	switch p.mode {
	case procSearch:
		p.drawSearch(g, f)
	case procConfirm:
		p.drawConfirm(g, f)
	}
}

func (p *ProcessesPane) drawSearch(g *render.Grid, f rect) {
	r := rect{top: f.height - 4, left: 2, height: 3, width: min(f.width-4, 72)}
	drawPopup(g, r, "Search")
	col := g.WriteString(r.top+1, r.left+2, searchPrompt, theme.RoleAccent)
	col = g.WriteString(r.top+1, col, p.input.Value(), theme.RoleForeground)
	g.SetCell(r.top+1, col, []rune(theme.IconBlock)[0], theme.RoleAccent)
}

// ConfirmText is the kill prompt for a process.
func ConfirmText(name string, pid int32) string {
	return fmt.Sprintf("Terminate '%s' (PID %d)? (y/n)", name, pid)
}

func (p *ProcessesPane) drawConfirm(g *render.Grid, f rect) {
	msg := ConfirmText(p.target.Name, p.target.PID)
	w := min(max(40, textWidth(msg)+4), f.width-4)
	r := centered(f.height, f.width, 5, w)
	drawPopup(g, r, "Confirm")
	g.WriteString(r.top+2, r.left+2, TruncateWithEllipsis(msg, w-4), theme.RoleAccent)
}
