package main

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/oligo/gvfocus"
	"github.com/oligo/gvfocus/focus"
	"github.com/oligo/gvfocus/textstyle"
	"github.com/oligo/gvfocus/textstyle/decoration"
	"github.com/oligo/gvfocus/view"
)

func TestApplyDiff(t *testing.T) {
	cases := []struct {
		name   string
		before string
		after  string
	}{
		{name: "change line", before: "one\ntwo\nthree", after: "one\nTWO\nthree"},
		{name: "append lines", before: "one", after: "one\ntwo\nthree"},
		{name: "drop lines", before: "a\nb\nc\nd", after: "a\nd"},
		{name: "unicode", before: "héllo\nwörld", after: "héllo\nwörld 🌍\n"},
		{name: "same", before: "x", after: "x"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ws := view.NewWorkspace()
			v := ws.Open(tc.before)

			events := 0
			ws.OnDocumentEdited(func(gvfocus.EditEvent) { events++ })

			edits, err := applyDiff(v, tc.after)
			if err != nil {
				t.Fatal(err)
			}
			if got := v.Text(); got != tc.after {
				t.Errorf("text = %q, want %q", got, tc.after)
			}
			want := 0
			if edits > 0 {
				want = 1
			}
			if events != want {
				t.Errorf("%d edits published %d events, want %d", edits, events, want)
			}
			if tc.before == tc.after && edits != 0 {
				t.Errorf("unchanged text produced %d edits", edits)
			}
		})
	}
}

func numberedLines(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("l%02d", i)
	}
	return strings.Join(lines, "\n")
}

func TestReloadKeepsFocus(t *testing.T) {
	before := numberedLines(25)
	lines := strings.Split(before, "\n")
	for i := 6; i <= 11; i++ {
		lines[i] = strings.Repeat("#", 25)
	}
	after := strings.Join(lines, "\n")

	ws := view.NewWorkspace()
	v := ws.Open(before)
	ctrl := focus.New(ws, ws, nil)
	if err := ctrl.Activate(); err != nil {
		t.Fatal(err)
	}
	if _, err := ctrl.SetFocusRange(v, gvfocus.Position{Line: 20}, gvfocus.Position{Line: 22}); err != nil {
		t.Fatal(err)
	}

	edits, err := applyDiff(v, after)
	if err != nil {
		t.Fatal(err)
	}
	if edits == 0 || v.Text() != after {
		t.Fatalf("reload not applied: %d edits", edits)
	}

	r, ok := ctrl.Focus()
	if !ok || r != (gvfocus.FocusRange{Start: 20, End: 22}) {
		t.Fatalf("focus = %+v, %v, want lines 20-22 kept", r, ok)
	}
	if got := len(v.RegionsOf(gvfocus.BackgroundChannel)); got != 3 {
		t.Errorf("%d background regions after reload, want 3", got)
	}
}

func TestFocusedText(t *testing.T) {
	lines := []string{"a", "b", "c", "d"}

	if got := focusedText(lines, gvfocus.FocusRange{Start: 1, End: 2}); got != "b\nc" {
		t.Errorf("focusedText() = %q", got)
	}
	if got := focusedText(lines, gvfocus.FocusRange{Start: 3, End: 9}); got != "d" {
		t.Errorf("focusedText() = %q, want the clamped range", got)
	}
	if got := focusedText(nil, gvfocus.FocusRange{}); got != "" {
		t.Errorf("focusedText() = %q, want nothing", got)
	}
}

func TestTermColor(t *testing.T) {
	cases := map[string]string{
		"#4080ff":                  "#4080ff",
		"rgba(64, 128, 255, 0)":    "#1e1e1e",
		"rgba(255, 255, 255, 0.5)": "#8f8f8f",
	}
	for in, want := range cases {
		if got := termColor(textstyle.MustParseColor(in)); string(got) != want {
			t.Errorf("termColor(%s) = %s, want %s", in, got, want)
		}
	}
}

func TestLineStyle(t *testing.T) {
	top := decoration.Style{
		Background: textstyle.MustParseColor("#4080ff"),
		Border: &decoration.BorderStyle{
			Color:   textstyle.MustParseColor("#4080ff"),
			Width:   2,
			Edges:   decoration.EdgeTop | decoration.EdgeLeft | decoration.EdgeRight,
			Corners: decoration.TopCorners,
		},
	}
	style := lineStyle(top.Decorations("top", decoration.Span{Line: 0, EndCol: 8}))
	if !style.GetBorderTop() || !style.GetBorderLeft() || !style.GetBorderRight() || style.GetBorderBottom() {
		t.Errorf("border sides do not follow the edges")
	}
	if w := style.GetWidth(); w != 9 {
		t.Errorf("width = %d, want 9", w)
	}

	dim := decoration.Style{Dim: &decoration.DimStyle{Opacity: 0.25}}
	style = lineStyle(dim.Decorations("dim", decoration.Span{Line: 3, WholeLine: true}))
	if !style.GetFaint() {
		t.Errorf("dimmed line is not faint")
	}
	if style.GetBorderLeft() {
		t.Errorf("dimmed line has a border")
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "shift+down":
		return tea.KeyMsg{Type: tea.KeyShiftDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(text string) *model {
	ws := view.NewWorkspace()
	m := newModel(ws, []*fileView{{path: "test.txt", view: ws.Open(text)}})
	m.ctrl = focus.New(ws, ws, m.notices)
	m.commands = m.ctrl.Commands(m)
	m.height = 20
	return m
}

func TestPromptFlow(t *testing.T) {
	m := newTestModel("one\ntwo\nthree\nfour")

	m.Update(key("a"))
	if m.ctrl.Mode() != focus.Active {
		t.Fatalf("focus mode not activated")
	}

	m.Update(key("s"))
	if m.prompt == nil {
		t.Fatal("no prompt shown")
	}
	m.Update(key("3-1"))
	m.Update(key("enter"))
	if m.prompt == nil || m.prompt.err != "Start line must be less than or equal to end line" {
		t.Fatalf("invalid input not rejected: %+v", m.prompt)
	}
	m.Update(key("esc"))
	if m.prompt != nil {
		t.Fatalf("prompt not dismissed")
	}
	if _, ok := m.ctrl.Focus(); ok {
		t.Fatalf("dismissed prompt set a focus")
	}

	m.Update(key("s"))
	m.Update(key("2-3"))
	m.Update(key("enter"))
	if r, ok := m.ctrl.Focus(); !ok || r != (gvfocus.FocusRange{Start: 1, End: 2}) {
		t.Errorf("focus = %+v, %v, want 1-2", r, ok)
	}
	if _, msg := m.notices.get(); msg != "Focus area updated: lines 2-3" {
		t.Errorf("notice = %q", msg)
	}

	m.Update(key("x"))
	if _, ok := m.ctrl.Focus(); ok {
		t.Errorf("focus not cleared")
	}
}

func TestDispatchedUpdate(t *testing.T) {
	m := newTestModel("a\nb")

	ran := false
	m.Update(dispatchMsg(func() { ran = true }))
	if !ran {
		t.Errorf("dispatched func did not run")
	}
}

func TestSelectionKeys(t *testing.T) {
	m := newTestModel("one\ntwo\nthree")
	v := m.ws.Active()

	m.Update(key("shift+down"))
	m.Update(key("shift+down"))
	sel := v.Selection()
	if sel.Anchor != (gvfocus.Position{}) || sel.Active != (gvfocus.Position{Line: 2}) {
		t.Errorf("selection = %+v", sel)
	}

	m.Update(key("k"))
	sel = v.Selection()
	if !sel.IsEmpty() || sel.Active.Line != 1 {
		t.Errorf("moving without shift did not collapse the selection: %+v", sel)
	}
}
