package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"gonum.org/v1/gonum/mat"

	"github.com/nvisser/spikescope/internal/waveview"
)

func fixtureRaw() waveview.Raw {
	nspikes, nsamples, nchannels := 3, 4, 2
	wf := make([]float64, nspikes*nsamples*nchannels)
	for i := range wf {
		wf[i] = float64(i%9)/4 - 1
	}
	masks := mat.NewDense(nspikes, nchannels, nil)
	for i := 0; i < nspikes; i++ {
		for ch := 0; ch < nchannels; ch++ {
			masks.Set(i, ch, 1)
		}
	}
	return waveview.Raw{
		Waveforms: wf,
		NSpikes:   nspikes,
		NSamples:  nsamples,
		NChannels: nchannels,
		Clusters:  []int{0, 1, 0},
		Colors:    [][3]float64{{1, 0, 0}, {0, 1, 0}},
		Masks:     masks,
	}
}

func testModel(t *testing.T) Model {
	t.Helper()
	canvas := NewCanvas()
	view := waveview.New(canvas)
	if err := view.SetData(fixtureRaw()); err != nil {
		t.Fatalf("set data: %v", err)
	}
	m := New(view, canvas, "test")
	next, _ := m.handleMsg(tea.WindowSizeMsg{Width: 60, Height: 20})
	return next
}

func TestMouseDragSelectsSpikes(t *testing.T) {
	m := testModel(t)

	next, _ := m.handleMsg(tea.MouseMsg{X: 0, Y: canvasTop, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !next.dragging {
		t.Fatal("expected drag to start on left press")
	}

	next, _ = next.handleMsg(tea.MouseMsg{X: 59, Y: canvasTop + 15, Action: tea.MouseActionMotion})
	if next.curX != 59 || next.curY != 15 {
		t.Fatalf("expected drag corner (59,15), got (%d,%d)", next.curX, next.curY)
	}

	next, _ = next.handleMsg(tea.MouseMsg{X: 59, Y: canvasTop + 15, Action: tea.MouseActionRelease})
	if next.dragging {
		t.Fatal("expected drag to end on release")
	}
	if next.selected != 3 {
		t.Fatalf("expected 3 spikes selected, got %d", next.selected)
	}
	if got := len(next.view.Selected()); got != 3 {
		t.Fatalf("expected view selection of 3, got %d", got)
	}
}

func TestEscCancelsDrag(t *testing.T) {
	m := testModel(t)
	next, _ := m.handleMsg(tea.MouseMsg{X: 5, Y: canvasTop + 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	next, cmd := next.handleMsg(tea.KeyMsg{Type: tea.KeyEsc})
	if next.dragging {
		t.Fatal("expected esc to cancel the drag")
	}
	if cmd != nil {
		t.Fatal("cancel must not quit")
	}
	if len(next.view.SelectedRows()) != 0 {
		t.Fatal("expected empty selection after cancel")
	}
}

func TestPressOutsideCanvasIgnored(t *testing.T) {
	m := testModel(t)
	next, _ := m.handleMsg(tea.MouseMsg{X: 5, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if next.dragging {
		t.Fatal("press on the header must not start a drag")
	}
}

func TestToggleKeys(t *testing.T) {
	m := testModel(t)
	if m.view.Layout().Superimposed() {
		t.Fatal("expected separated default")
	}
	next, _ := m.handleMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'o'}})
	if !next.view.Layout().Superimposed() {
		t.Fatal("expected o to superimpose clusters")
	}

	if next.view.Layout().Arrangement() != waveview.Linear {
		t.Fatal("expected linear default")
	}
	next, _ = next.handleMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	if next.view.Layout().Arrangement() != waveview.Geometrical {
		t.Fatal("expected g to switch to geometrical arrangement")
	}
}

func TestBoxScaleAnimation(t *testing.T) {
	m := testModel(t)
	_, _, w0, _ := m.view.Layout().Transform()

	next, cmd := m.handleMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}})
	if cmd == nil {
		t.Fatal("expected animation tick command")
	}
	if !next.animating {
		t.Fatal("expected animation to start")
	}

	for i := 0; i < 10; i++ {
		next, _ = next.handleMsg(animTickMsg{})
	}
	_, _, w1, _ := next.view.Layout().Transform()
	if w1 >= w0 {
		t.Fatalf("expected box width to shrink, got %v -> %v", w0, w1)
	}
}

func TestExportWithoutSelection(t *testing.T) {
	m := testModel(t)
	next, cmd := m.handleMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}})
	if cmd != nil {
		t.Fatal("expected no export command without a selection")
	}
	if next.status != "nothing selected" {
		t.Fatalf("expected status message, got %q", next.status)
	}
}

func TestCellToNDC(t *testing.T) {
	m := testModel(t)
	x, y := m.cellToNDC(0, 0)
	if x >= 0 || y <= 0 {
		t.Fatalf("top-left cell must map to (-,+) quadrant, got (%v,%v)", x, y)
	}
	x, y = m.cellToNDC(m.canvasCols()-1, m.canvasRows()-1)
	if x <= 0 || y >= 0 {
		t.Fatalf("bottom-right cell must map to (+,-) quadrant, got (%v,%v)", x, y)
	}
}
