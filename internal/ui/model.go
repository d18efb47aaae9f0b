package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvisser/spikescope/internal/export"
	"github.com/nvisser/spikescope/internal/waveview"
)

// canvas rows reserved above (header + info) and below (status + help)
const (
	canvasTop    = 2
	canvasBottom = 2
)

const exportSampleRate = 20000

// Model is the Bubbletea model for the waveform viewer.
type Model struct {
	view   *waveview.View
	canvas *Canvas
	name   string
	keys   keyMap

	width  int
	height int

	dragging       bool
	pressX, pressY int // canvas cell of the mouse press
	curX, curY     int
	selected       int
	status         string
	statusTime     time.Time
	boxX, boxY     springValue
	probeX, probeY springValue
	animating      bool
	quitting       bool
}

// New creates a viewer model around a view whose renderer is canvas.
func New(view *waveview.View, canvas *Canvas, name string) Model {
	return Model{
		view:   view,
		canvas: canvas,
		name:   name,
		keys:   defaultKeyMap(),
		boxX:   newSpringValue(10, 1),
		boxY:   newSpringValue(10, 1),
		probeX: newSpringValue(10, 1),
		probeY: newSpringValue(10, 1),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("spikescope — " + m.name)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.handleMsg(msg)
}

func (m Model) handleMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case animTickMsg:
		if dx, dy := m.boxX.step(), m.boxY.step(); dx != 0 || dy != 0 {
			m.view.ChangeBoxScale(dx, dy)
		}
		if dx, dy := m.probeX.step(), m.probeY.step(); dx != 0 || dy != 0 {
			m.view.ChangeProbeScale(dx, dy)
		}
		if m.boxX.settled() && m.boxY.settled() && m.probeX.settled() && m.probeY.settled() {
			m.animating = false
			m.refit()
			return m, nil
		}
		return m, animTick()

	case exportedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("export failed: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("wrote %s", msg.path)
		}
		m.statusTime = time.Now()
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)

	case key.Matches(msg, m.keys.CancelOrEnd):
		if m.dragging {
			m.dragging = false
			m.view.DragCancel()
			m.selected = 0
			return m, nil
		}
		m.quitting = true
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)

	case key.Matches(msg, m.keys.Superpose):
		m.view.ToggleSuperposition()
		m.refit()
		return m, nil

	case key.Matches(msg, m.keys.Arrange):
		m.view.ToggleArrangement()
		m.refit()
		return m, nil

	case key.Matches(msg, m.keys.BoxGrow):
		m.boxX.target += 0.05
		m.boxY.target += 0.05
		return m.startAnim()
	case key.Matches(msg, m.keys.BoxShrink):
		m.boxX.target -= 0.05
		m.boxY.target -= 0.05
		return m.startAnim()

	case key.Matches(msg, m.keys.ProbeWider):
		m.probeX.target += 0.1
		return m.startAnim()
	case key.Matches(msg, m.keys.ProbeSlim):
		m.probeX.target -= 0.1
		return m.startAnim()
	case key.Matches(msg, m.keys.ProbeTall):
		m.probeY.target += 0.1
		return m.startAnim()
	case key.Matches(msg, m.keys.ProbeShort):
		m.probeY.target -= 0.1
		return m.startAnim()

	case key.Matches(msg, m.keys.Clear):
		m.view.DragCancel()
		m.selected = 0
		m.status = ""
		return m, nil

	case key.Matches(msg, m.keys.Export):
		rows := m.view.SelectedRows()
		if len(rows) == 0 {
			m.status = "nothing selected"
			m.statusTime = time.Now()
			return m, nil
		}
		ds := m.view.Data()
		path := fmt.Sprintf("spikescope-%s.wav", time.Now().Format("150405"))
		return m, func() tea.Msg {
			return exportedMsg{path: path, err: export.WAV(path, ds, rows, exportSampleRate)}
		}
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	x, y := msg.X, msg.Y-canvasTop

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !m.inCanvas(x, y) {
			return m, nil
		}
		m.dragging = true
		m.pressX, m.pressY = x, y
		m.curX, m.curY = x, y

	case tea.MouseActionMotion:
		if m.dragging {
			m.curX, m.curY = clampInt(x, 0, m.canvasCols()-1), clampInt(y, 0, m.canvasRows()-1)
		}

	case tea.MouseActionRelease:
		if !m.dragging {
			return m, nil
		}
		m.dragging = false
		px, py := m.cellToNDC(m.pressX, m.pressY)
		cx, cy := m.cellToNDC(m.curX, m.curY)
		ids := m.view.DragSelect(
			waveview.Rect{X0: px, Y0: py, X1: cx, Y1: cy},
			waveview.Point{X: px, Y: py},
		)
		m.selected = len(ids)
		m.status = ""
	}
	return m, nil
}

// refit re-derives the selection's screen-to-data weighting from the box
// layout: the tighter an axis is framed, the more a pixel of mouse distance
// counts on it.
func (m Model) refit() {
	ds := m.view.Data()
	if ds == nil {
		return
	}
	channels := make([]int, ds.NChannels)
	for ch := range channels {
		channels[ch] = ch
	}
	xmin, ymin, xmax, ymax := m.view.Layout().Viewbox(channels)
	sx, sy := 1.0, 1.0
	if xmax > xmin {
		sx = 2 / (xmax - xmin)
	}
	if ymax > ymin {
		sy = 2 / (ymax - ymin)
	}
	m.view.SetViewScale(sx, sy)
}

func (m Model) startAnim() (Model, tea.Cmd) {
	if m.animating {
		return m, nil
	}
	m.animating = true
	return m, animTick()
}

func (m Model) canvasCols() int {
	if m.width < 2 {
		return 2
	}
	return m.width
}

func (m Model) canvasRows() int {
	rows := m.height - canvasTop - canvasBottom
	if rows < 1 {
		return 1
	}
	return rows
}

func (m Model) inCanvas(x, y int) bool {
	return x >= 0 && x < m.canvasCols() && y >= 0 && y < m.canvasRows()
}

// cellToNDC maps a canvas cell center to normalized device coordinates;
// screen rows grow downward, NDC y grows upward.
func (m Model) cellToNDC(x, y int) (float64, float64) {
	nx := -1 + 2*(float64(x)+0.5)/float64(m.canvasCols())
	ny := 1 - 2*(float64(y)+0.5)/float64(m.canvasRows())
	return nx, ny
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	ds := m.view.Data()
	if ds == nil || m.width == 0 {
		return ""
	}

	l := m.view.Layout()
	header := headerStyle.Render("spikescope") + "  " + titleStyle.Render(m.name)
	info := infoStyle.Render(fmt.Sprintf("%d channels · %d clusters · %d spikes · %s · %s",
		ds.NChannels, ds.NClusters, ds.NSpikes, l.Arrangement(), l.Superposition()))

	var drag *dragBox
	if m.dragging {
		drag = &dragBox{x0: m.pressX, y0: m.pressY, x1: m.curX, y1: m.curY}
	}
	scene := m.canvas.Render(ds, m.canvasCols(), m.canvasRows(), drag)

	status := fmt.Sprintf("%d spikes highlighted", m.selected)
	if m.status != "" && time.Since(m.statusTime) < 5*time.Second {
		status += "  ·  " + m.status
	}

	return header + "\n" + info + "\n" +
		scene + "\n" +
		statusStyle.Render(status) + "\n" +
		helpStyle.Render(helpText())
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
