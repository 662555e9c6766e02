package pane

import (
	"strings"
	"testing"

	"github.com/tnguyen21/netscope/internal/render"
)

func TestThemePickerStartsOnCurrent(t *testing.T) {
	p := NewThemePicker([]string{"blue", "dracula", "nord"}, "nord")
	if p.Selected() != "nord" {
		t.Errorf("Selected() = %q, want nord", p.Selected())
	}
	p = NewThemePicker([]string{"blue", "dracula"}, "missing")
	if p.Selected() != "blue" {
		t.Errorf("Selected() = %q, want blue", p.Selected())
	}
}

func TestThemePickerNavigation(t *testing.T) {
	p := NewThemePicker([]string{"blue", "dracula", "nord"}, "blue")
	tests := []struct {
		key  string
		want string
	}{
		{"up", "nord"},
		{"down", "blue"},
		{"j", "dracula"},
		{"k", "blue"},
	}
	for _, tt := range tests {
		closed, cmd := p.Update(keyMsg(tt.key))
		if closed || cmd != nil {
			t.Errorf("%s should not close the picker", tt.key)
		}
		if p.Selected() != tt.want {
			t.Errorf("after %s: Selected() = %q, want %q", tt.key, p.Selected(), tt.want)
		}
	}
}

func TestThemePickerApply(t *testing.T) {
	p := NewThemePicker([]string{"blue", "dracula"}, "blue")
	p.Update(keyMsg("down"))
	closed, cmd := p.Update(keyMsg("enter"))
	if !closed || cmd == nil {
		t.Fatal("enter should close and apply")
	}
	msg, ok := cmd().(ApplyThemeMsg)
	if !ok || msg.Name != "dracula" {
		t.Errorf("got %#v, want ApplyThemeMsg{dracula}", msg)
	}
}

func TestThemePickerCancel(t *testing.T) {
	for _, k := range []string{"esc", "q"} {
		p := NewThemePicker([]string{"blue"}, "blue")
		closed, cmd := p.Update(keyMsg(k))
		if !closed || cmd != nil {
			t.Errorf("%s: closed %v cmd %v", k, closed, cmd != nil)
		}
	}
}

func TestThemePickerDraw(t *testing.T) {
	p := NewThemePicker([]string{"blue", "dracula"}, "dracula")
	g := render.NewGrid(24, 120, nil)
	p.Draw(g)
	view := g.Flush()

	for _, want := range []string{"Themes", "Select Theme (Enter = Apply, Esc = Cancel)", "  blue", "▶ dracula"} {
		if !strings.Contains(view, want) {
			t.Errorf("picker should contain %q", want)
		}
	}
}

func TestHelpPopup(t *testing.T) {
	h := &HelpPopup{Lines: procHelp}
	g := render.NewGrid(30, 120, nil)
	g.WriteString(15, 0, strings.Repeat("x", 120), 0)
	h.Draw(g)
	view := g.Flush()

	if !strings.Contains(view, "Help") || !strings.Contains(view, " k: Kill the selected process (with confirmation).") {
		t.Error("popup should show the help lines")
	}
	// the popup blanks what it covers
	if strings.Count(strings.Split(view, "\n")[15], "x") == 120 {
		t.Error("popup should cover the row underneath")
	}

	closed, cmd := h.Update(keyMsg("a"))
	if !closed || cmd != nil {
		t.Error("any key closes the popup")
	}
}
