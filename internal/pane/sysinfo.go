package pane

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tnguyen21/netscope/internal/ansi"
	"github.com/tnguyen21/netscope/internal/data"
	"github.com/tnguyen21/netscope/internal/render"
	"github.com/tnguyen21/netscope/internal/theme"
)

var sysInfoHelp = []string{
	" System Info ",
	"",
	" Up/Down        : scroll when the summary does not fit",
	" t              : theme dialog",
	" Backspace/Left : back to menu",
	" q              : quit",
}

// InfoLines formats the host summary. Fields the host did not report are
// left out, except the fixed uname and CPU count lines.
func InfoLines(si data.SystemInfo) []string {
	lines := []string{
		"System: " + si.System,
		"Node Name: " + si.NodeName,
		"Release: " + si.Release,
		"Version: " + si.Version,
		"Machine: " + si.Machine,
		"CPU Cores: " + countOrNA(si.Cores),
		"CPU Threads: " + countOrNA(si.Threads),
	}
	if si.FreqMHz > 0 {
		lines = append(lines, fmt.Sprintf("CPU Frequency: %.2f MHz", si.FreqMHz))
	}
	lines = append(lines, "Total Memory: "+data.FormatBytes(si.TotalMem))
	if si.DiskTotal > 0 {
		lines = append(lines, fmt.Sprintf("Disk Usage: %.1f%% of %s", si.DiskUsed, data.FormatBytes(si.DiskTotal)))
	}
	if len(si.Interfaces) > 0 {
		lines = append(lines, "Network Interfaces: "+strings.Join(si.Interfaces, ", "))
	}
	return lines
}

func countOrNA(n int) string {
	if n <= 0 {
		return data.NA
	}
	return strconv.Itoa(n)
}

// SystemInfoPane shows the distro logo above the host summary.
type SystemInfoPane struct {
	memo  *data.Memo
	logo  []string
	block []string
	art   int
	vp    viewport.Model
}

// NewSystemInfoPane creates the system screen. logo holds SGR-colored lines
// and may be empty.
func NewSystemInfoPane(memo *data.Memo, logo []string) *SystemInfoPane {
	return &SystemInfoPane{memo: memo, logo: logo, vp: viewport.New(0, 0)}
}

func (p *SystemInfoPane) ID() PaneID { return PaneSystemInfo }
func (p *SystemInfoPane) Title() string {
	return "System Info (Backspace/Left = Back, t = Theme, q = Quit)"
}
func (p *SystemInfoPane) Help() []string  { return sysInfoHelp }
func (p *SystemInfoPane) Capturing() bool { return false }

func (p *SystemInfoPane) SetSize(w, h int) {
	p.vp.Width = max(0, w-2)
	p.vp.Height = max(0, h-2)
}

// Lines is the block drawn on screen: logo, a blank line, then the summary.
func (p *SystemInfoPane) Lines() []string {
	return p.block
}

func (p *SystemInfoPane) load() {
	var block []string
	if len(p.logo) > 0 {
		block = append(block, p.logo...)
		block = append(block, "")
	}
	p.art = len(p.logo)
	si, err := p.memo.SystemInfo()
	if err != nil {
		block = append(block, "System information: "+data.NA)
	} else {
		block = append(block, InfoLines(si)...)
	}
	p.block = block
	p.vp.SetContent(strings.Join(block, "\n"))
}

func (p *SystemInfoPane) Update(msg tea.Msg) (Pane, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshMsg:
		p.load()
	case tea.KeyMsg:
		var cmd tea.Cmd
		p.vp, cmd = p.vp.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *SystemInfoPane) Draw(g *render.Grid) {
	f := frame(g)
	if p.block == nil {
		p.load()
	}

	maxW := 0
	for _, line := range p.block {
		maxW = max(maxW, ansi.Width(line))
	}
	startY := max(1, (f.height-len(p.block))/2)
	startX := max(1, (f.width-maxW)/2)

	off, lines := 0, p.block
	if avail := max(0, f.height-2); len(lines) > avail {
		// taller than the screen: the viewport picks the window
		off = min(p.vp.YOffset, len(lines))
		lines = lines[off:min(len(lines), off+avail)]
	}
	for i, line := range lines {
		if off+i < p.art {
			g.WriteANSI(startY+i, startX, line)
			continue
		}
		g.WriteString(startY+i, startX, TruncateWithEllipsis(line, f.width-startX-1), theme.RoleForeground)
	}
	drawBox(g, f, p.Title())
}
