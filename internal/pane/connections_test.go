package pane

import (
	"strings"
	"testing"

	"github.com/tnguyen21/netscope/internal/data"
	"github.com/tnguyen21/netscope/internal/data/datatest"
	"github.com/tnguyen21/netscope/internal/theme"
)

func connFake() *datatest.Fake {
	f := datatest.New()
	f.Snapshot = data.ConnSnapshot{
		Established: conns(30, data.StatusEstablished),
		Listening:   conns(3, data.StatusListen),
	}
	f.Meta[100] = data.ProcMeta{Name: "sshd", User: "root"}
	f.IO[100] = data.IOCounters{WriteBytes: 2048, ReadBytes: 512}
	return f
}

func TestConnectionsTitle(t *testing.T) {
	memo, _ := testMemo(datatest.New())
	est := NewConnectionsPane(memo, data.StatusEstablished, "tcp")
	lis := NewConnectionsPane(memo, data.StatusListen, "tcp")

	if got := est.Title(); got != "Established Connections (Backspace/Left = Back, t = Theme, q = Quit)" {
		t.Errorf("Title() = %q", got)
	}
	if !strings.HasPrefix(lis.Title(), "Listening Connections") {
		t.Errorf("Title() = %q", lis.Title())
	}
	if lis.ID() != PaneListening {
		t.Errorf("ID() = %d, want PaneListening", lis.ID())
	}
}

func TestConnectionsDraw(t *testing.T) {
	f := connFake()
	memo, _ := testMemo(f)
	p := NewConnectionsPane(memo, data.StatusEstablished, "tcp")

	view, g := draw(p, 140, 24)
	lines := strings.Split(view, "\n")

	for _, want := range []string{"Local Address", "Remote Address", "Program", "Recv"} {
		if !strings.Contains(lines[2], want) {
			t.Errorf("header row missing %q: %q", want, lines[2])
		}
	}
	if !strings.Contains(lines[3], "────") {
		t.Errorf("row 3 should be a rule: %q", lines[3])
	}
	first := lines[4]
	for _, want := range []string{"10.0.0.1:1000", "ESTABLISHED", "100", "sshd", "root", "2.0 KiB", "512 B"} {
		if !strings.Contains(first, want) {
			t.Errorf("first row missing %q: %q", want, first)
		}
	}
	if !strings.Contains(lines[5], data.NA) {
		t.Errorf("second row should show N/A for unknown pid details: %q", lines[5])
	}
	// 24 rows leave 19 for data: rows 4..22
	if !strings.Contains(lines[22], "10.0.0.1:1018") {
		t.Errorf("last visible row = %q", lines[22])
	}
	if _, role := g.Cell(4, 2); role != theme.RoleAccent {
		t.Errorf("local address role = %v, want accent", role)
	}
	if _, role := g.Cell(4, 2+26); role != theme.RoleAccent2 {
		t.Errorf("remote address role = %v, want accent2", role)
	}
}

func TestConnectionsMemoizedPerTick(t *testing.T) {
	f := connFake()
	memo, e := testMemo(f)
	p := NewConnectionsPane(memo, data.StatusEstablished, "tcp")

	draw(p, 140, 24)
	draw(p, 140, 24)
	press(p, "down")
	if got := f.Calls["Connections:tcp"]; got != 1 {
		t.Errorf("Connections calls in one tick = %d, want 1", got)
	}
	if got := f.Calls["ProcessMeta:100"]; got != 1 {
		t.Errorf("ProcessMeta calls in one tick = %d, want 1", got)
	}

	e.AdvanceTick()
	draw(p, 140, 24)
	if got := f.Calls["Connections:tcp"]; got != 2 {
		t.Errorf("Connections calls after new tick = %d, want 2", got)
	}
}

func TestConnectionsScroll(t *testing.T) {
	memo, _ := testMemo(connFake())
	p := NewConnectionsPane(memo, data.StatusEstablished, "tcp")
	p.SetSize(140, 24) // 19 visible, 30 rows

	tests := []struct {
		key  string
		want int
	}{
		{"up", 0},
		{"down", 1},
		{"j", 2},
		{"k", 1},
		{"pgdown", 11},
		{"down", 11},
		{"home", 0},
		{"end", 11},
		{"pgup", 0},
	}
	for _, tt := range tests {
		press(p, tt.key)
		if p.Offset() != tt.want {
			t.Errorf("after %q: Offset() = %d, want %d", tt.key, p.Offset(), tt.want)
		}
	}
}

func TestConnectionsUnavailable(t *testing.T) {
	f := datatest.New()
	f.Err = data.ErrUnavailable
	memo, _ := testMemo(f)
	p := NewConnectionsPane(memo, data.StatusListen, "tcp")

	view, _ := draw(p, 140, 24)
	if !strings.Contains(strings.Split(view, "\n")[4], data.NA) {
		t.Error("failed snapshot should render N/A")
	}
}

func TestBothSwitchAndScroll(t *testing.T) {
	memo, _ := testMemo(connFake())
	p := NewBothPane(memo, "tcp")
	p.SetSize(140, 24) // top box 10 rows (5 visible), bottom 11

	if p.Active() != data.StatusEstablished {
		t.Fatalf("Active() = %q, want established first", p.Active())
	}
	press(p, "down", "down")
	if est, lis := p.Offsets(); est != 2 || lis != 0 {
		t.Errorf("Offsets() = %d, %d, want 2, 0", est, lis)
	}

	press(p, "tab")
	if p.Active() != data.StatusListen {
		t.Errorf("Active() = %q after tab", p.Active())
	}
	press(p, "down")
	if _, lis := p.Offsets(); lis != 0 {
		t.Errorf("3 listening rows fit, offset = %d, want 0", lis)
	}
	press(p, "end")
	if est, _ := p.Offsets(); est != 2 {
		t.Errorf("inactive table moved to %d", est)
	}

	press(p, "tab", "end")
	if est, _ := p.Offsets(); est != 25 {
		t.Errorf("end: Offset = %d, want 25", est)
	}
}

func TestBothDraw(t *testing.T) {
	memo, _ := testMemo(connFake())
	p := NewBothPane(memo, "tcp")

	view, _ := draw(p, 140, 24)
	lines := strings.Split(view, "\n")
	if !strings.Contains(lines[0], "Both Connections (Tab = Switch") {
		t.Errorf("title row = %q", lines[0])
	}
	if !strings.Contains(lines[1], "Established [ACTIVE]") {
		t.Errorf("top box title = %q", lines[1])
	}
	if !strings.Contains(lines[12], "Listening") || strings.Contains(lines[12], "[ACTIVE]") {
		t.Errorf("bottom box title = %q", lines[12])
	}
	if !strings.Contains(lines[5], "10.0.0.1:1000") {
		t.Errorf("first established row = %q", lines[5])
	}
	if !strings.Contains(lines[16], "10.0.0.1:1000") || !strings.Contains(lines[16], "LISTEN") {
		t.Errorf("first listening row = %q", lines[16])
	}

	press(p, "tab")
	view, _ = draw(p, 140, 24)
	if !strings.Contains(strings.Split(view, "\n")[12], "Listening [ACTIVE]") {
		t.Error("tab should move the [ACTIVE] marker")
	}
}
