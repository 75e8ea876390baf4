package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tillvoss/mindweave/pkg/errors"
	"github.com/tillvoss/mindweave/pkg/graph"
	"github.com/tillvoss/mindweave/pkg/pipeline"
)

func testViewScene() *graph.Scene {
	return &graph.Scene{
		Nodes: []graph.Node{
			{ID: "title", Text: "Project", Kind: "title", X: 800, Y: 600, Width: 160, Height: 60},
			{ID: "section-0", Text: "Goals", Kind: "section", X: 1100, Y: 600, Width: 140, Height: 50},
			{ID: "section-1", Text: "Risks", Kind: "section", X: 500, Y: 600, Width: 140, Height: 50},
		},
		Connections: []graph.Connection{
			{From: "title", To: "section-0", Tier: "primary"},
			{From: "title", To: "section-1", Tier: "primary"},
		},
	}
}

func sizeMsg(cols, rows int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: cols, Height: rows}
}

func TestViewModelFitsOnFirstResize(t *testing.T) {
	m := newViewModel("notes.md", testViewScene())

	m.Update(sizeMsg(80, 24))

	state := m.ctrl.State()
	if state.Scale == 1 && state.PanX == 0 && state.PanY == 0 {
		t.Error("first resize should fit the content, camera unchanged")
	}
}

func TestViewModelKeyZoom(t *testing.T) {
	m := newViewModel("notes.md", testViewScene())
	m.Update(sizeMsg(80, 24))

	before := m.ctrl.State().Scale
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	if m.ctrl.State().Scale <= before {
		t.Errorf("zoom in: scale = %v, want > %v", m.ctrl.State().Scale, before)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}})
	got := m.ctrl.State().Scale
	if got < before-1e-9 || got > before+1e-9 {
		t.Errorf("zoom out should undo zoom in: scale = %v, want %v", got, before)
	}
}

func TestViewModelKeyPan(t *testing.T) {
	m := newViewModel("notes.md", testViewScene())
	m.Update(sizeMsg(80, 24))

	before := m.ctrl.State()
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	after := m.ctrl.State()

	if after.PanX == before.PanX {
		t.Error("pan key should change PanX")
	}
	if m.ctrl.Panning() {
		t.Error("keyboard pan should end the pan gesture")
	}
}

func TestViewModelTabSelection(t *testing.T) {
	m := newViewModel("notes.md", testViewScene())
	m.Update(sizeMsg(80, 24))

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.selected != "title" {
		t.Errorf("selected = %q, want %q", m.selected, "title")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.selected != "section-0" {
		t.Errorf("selected = %q, want %q", m.selected, "section-0")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.selected != "title" {
		t.Errorf("selected = %q, want %q", m.selected, "title")
	}
}

func TestViewModelFocusNode(t *testing.T) {
	m := newViewModel("notes.md", testViewScene())

	if !m.focusNode("section-1") {
		t.Fatal("focusNode should find section-1")
	}
	if m.selected != "section-1" {
		t.Errorf("selected = %q, want %q", m.selected, "section-1")
	}

	if m.focusNode("section-9") {
		t.Error("focusNode should report a missing node")
	}
	if m.selected != "section-1" {
		t.Errorf("missing node should leave selection, got %q", m.selected)
	}
}

func TestRunViewRejectsBadFocus(t *testing.T) {
	c := testCLI()
	opts := pipeline.Options{}
	setCLIDefaults(&opts)

	err := c.runView(context.Background(), "missing.md", opts, true, "not a node")
	if err == nil {
		t.Fatal("expected an error for a malformed focus id")
	}
	if !errors.Is(err, errors.ErrCodeInvalidNodeID) {
		t.Errorf("error = %v, want code %s", err, errors.ErrCodeInvalidNodeID)
	}
}

func TestViewModelMouseDrag(t *testing.T) {
	m := newViewModel("notes.md", testViewScene())
	m.Update(sizeMsg(80, 24))

	before := m.ctrl.State()

	m.Update(tea.MouseMsg{X: 10, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !m.ctrl.Panning() {
		t.Error("mouse press should start panning")
	}

	m.Update(tea.MouseMsg{X: 15, Y: 12, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m.Update(tea.MouseMsg{X: 15, Y: 12, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	after := m.ctrl.State()
	if m.ctrl.Panning() {
		t.Error("release should end panning")
	}
	if after.PanX == before.PanX && after.PanY == before.PanY {
		t.Error("drag should change the pan offset")
	}
	if m.selected != "" {
		t.Errorf("drag should not select, got %q", m.selected)
	}
}

func TestViewModelMouseWheel(t *testing.T) {
	m := newViewModel("notes.md", testViewScene())
	m.Update(sizeMsg(80, 24))

	before := m.ctrl.State().Scale
	m.Update(tea.MouseMsg{X: 40, Y: 12, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	if m.ctrl.State().Scale <= before {
		t.Error("wheel up should zoom in")
	}
}

func TestViewModelView(t *testing.T) {
	m := newViewModel("notes.md", testViewScene())
	m.Update(sizeMsg(80, 24))

	out := m.View()
	if out == "" {
		t.Fatal("View() returned empty output")
	}
	if got := len(strings.Split(out, "\n")); got != 24 {
		t.Errorf("View() has %d lines, want 24", got)
	}
	if !strings.Contains(out, "Project") {
		t.Error("View() should contain the fitted title node")
	}
	if !strings.Contains(out, "notes.md") {
		t.Error("View() status line should name the source")
	}
}

func TestCellCanvasClipping(t *testing.T) {
	c := newCellCanvas(10, 2)
	c.put(-2, 0, "hello", viewItemStyle)
	c.put(8, 1, "world", viewItemStyle)
	c.put(0, 5, "off", viewItemStyle)

	out := c.String()
	if !strings.Contains(out, "llo") {
		t.Error("left-clipped text should keep its visible tail")
	}
	if strings.Contains(out, "rld") {
		t.Error("right-clipped text should not overflow the row")
	}
}

func TestCellToScreen(t *testing.T) {
	sx, sy := cellToScreen(4, 2)
	if sx != 45 || sy != 50 {
		t.Errorf("cellToScreen(4, 2) = (%v, %v), want (45, 50)", sx, sy)
	}
}
