package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nvisser/spikescope/internal/palette"
	"github.com/nvisser/spikescope/internal/waveview"
)

// Canvas is the rendering collaborator: it receives derived state pushed by
// the waveform view and rasterizes the scene into terminal cells, one
// braille character per cell (a 2x4 dot grid, so 2x horizontal and 4x
// vertical resolution).
type Canvas struct {
	uniforms  waveview.Uniforms
	highlight []int32
	styles    []lipgloss.Style // per relative cluster
}

// NewCanvas returns an empty canvas awaiting view updates.
func NewCanvas() *Canvas { return &Canvas{} }

// UpdateUniforms implements waveview.Renderer.
func (c *Canvas) UpdateUniforms(changed []waveview.Uniform, u waveview.Uniforms) {
	c.uniforms = u
	for _, name := range changed {
		if name == waveview.UniformClusterColors {
			c.styles = c.styles[:0]
			for _, rgb := range u.ClusterColors {
				c.styles = append(c.styles, lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Hex(rgb))))
			}
		}
	}
}

// UpdateHighlight implements waveview.Renderer.
func (c *Canvas) UpdateHighlight(flags []int32) {
	c.highlight = append(c.highlight[:0], flags...)
}

// color indices used in the cell grid
const (
	colorEmpty     = -1
	colorHighlight = -2
	colorDrag      = -3
)

// Braille dot positions (col, row) -> bit offset:
//
//	(0,0)=0  (1,0)=3
//	(0,1)=1  (1,1)=4
//	(0,2)=2  (1,2)=5
//	(0,3)=6  (1,3)=7
var brailleBits = [2][4]uint{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

// maxTracesPerBox bounds how many spikes are drawn per (channel, cluster)
// box; the selection still considers every spike.
const maxTracesPerBox = 18

// dragBox is a live selection rectangle in canvas cell coordinates.
type dragBox struct {
	x0, y0, x1, y1 int
}

// Render rasterizes the current scene into a cols x rows block of styled
// cells. drag, when non-nil, is overlaid as a rectangle outline.
func (c *Canvas) Render(ds *waveview.Dataset, cols, rows int, drag *dragBox) string {
	if cols < 2 || rows < 1 || ds == nil || c.uniforms.ChannelPositions == nil {
		return ""
	}

	dotCols, dotRows := cols*2, rows*4
	pattern := make([][]uint8, rows)
	colors := make([][]int, rows)
	for r := range pattern {
		pattern[r] = make([]uint8, cols)
		colors[r] = make([]int, cols)
		for x := range colors[r] {
			colors[r][x] = colorEmpty
		}
	}

	nclusters := len(c.uniforms.ClusterColors)
	span := ds.NSpikes * ds.NSamples
	step := ds.NSpikes / (maxTracesPerBox * nclusters)
	if step < 1 {
		step = 1
	}

	setDot := func(dx, dy, color int) {
		if dx < 0 || dy < 0 || dx >= dotCols || dy >= dotRows {
			return
		}
		cx, cy := dx/2, dy/4
		pattern[cy][cx] |= 1 << brailleBits[dx%2][dy%4]
		if colors[cy][cx] != colorHighlight || color == colorHighlight {
			colors[cy][cx] = color
		}
	}

	for ch := 0; ch < ds.NChannels; ch++ {
		for row := 0; row < ds.NSpikes; row += step {
			base := ch*span + row*ds.NSamples
			if ds.FullMasks[base] <= 0 {
				continue
			}
			cluster := int(ds.FullClusters[base])
			cx, cy := c.boxCenter(ch, cluster, nclusters)

			color := cluster
			if len(c.highlight) > base && c.highlight[base] > 0 {
				color = colorHighlight
			}

			prevX, prevY := -1, -1
			for s := 0; s < ds.NSamples; s++ {
				p := base + s
				x := cx + ds.PointX[p]*c.uniforms.BoxW/2
				y := cy + ds.PointY[p]*c.uniforms.BoxH/2
				dx := int((x + 1) / 2 * float64(dotCols-1))
				dy := int((1 - y) / 2 * float64(dotRows-1))
				if s > 0 {
					drawLine(setDot, prevX, prevY, dx, dy, color)
				}
				prevX, prevY = dx, dy
			}
		}
	}

	runes := make([][]rune, rows)
	for r := range runes {
		runes[r] = make([]rune, cols)
		for x := range runes[r] {
			if pattern[r][x] == 0 {
				runes[r][x] = ' '
			} else {
				runes[r][x] = rune(0x2800 + int(pattern[r][x]))
			}
		}
	}

	if drag != nil {
		overlayDragBox(runes, colors, *drag)
	}

	var out strings.Builder
	for r := 0; r < rows; r++ {
		if r > 0 {
			out.WriteByte('\n')
		}
		// batch runs of equal color to keep escape sequences sparse
		runStart := 0
		runColor := colors[r][0]
		flush := func(end int) {
			text := string(runes[r][runStart:end])
			switch {
			case strings.TrimSpace(text) == "":
				out.WriteString(text)
			case runColor == colorHighlight:
				out.WriteString(highlightStyle.Render(text))
			case runColor == colorDrag:
				out.WriteString(dragStyle.Render(text))
			case runColor >= 0 && runColor < len(c.styles):
				out.WriteString(c.styles[runColor].Render(text))
			default:
				out.WriteString(text)
			}
		}
		for x := 1; x < cols; x++ {
			if colors[r][x] != runColor {
				flush(x)
				runStart, runColor = x, colors[r][x]
			}
		}
		flush(cols)
	}
	return out.String()
}

// boxCenter mirrors the transform the view publishes through uniforms:
// scaled channel position plus, in separated mode, the per-cluster fan-out.
func (c *Canvas) boxCenter(ch, cluster, nclusters int) (x, y float64) {
	u := c.uniforms
	x = u.ChannelPositions.At(ch, 0) * u.ProbeScaleX
	y = u.ChannelPositions.At(ch, 1) * u.ProbeScaleY
	if !u.Superimposed {
		x += u.BoxMarginW * (0.5 + float64(cluster) - 0.5*float64(nclusters))
	}
	return x, y
}

// drawLine walks a Bresenham line across the dot grid.
func drawLine(setDot func(x, y, color int), x0, y0, x1, y1, color int) {
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		setDot(x0, y0, color)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func overlayDragBox(runes [][]rune, colors [][]int, d dragBox) {
	rows, cols := len(runes), len(runes[0])
	x0, x1 := minInt(d.x0, d.x1), maxInt(d.x0, d.x1)
	y0, y1 := minInt(d.y0, d.y1), maxInt(d.y0, d.y1)
	set := func(x, y int, r rune) {
		if x < 0 || y < 0 || x >= cols || y >= rows {
			return
		}
		runes[y][x] = r
		colors[y][x] = colorDrag
	}
	for x := x0; x <= x1; x++ {
		set(x, y0, '─')
		set(x, y1, '─')
	}
	for y := y0; y <= y1; y++ {
		set(x0, y, '│')
		set(x1, y, '│')
	}
	set(x0, y0, '┌')
	set(x1, y0, '┐')
	set(x0, y1, '└')
	set(x1, y1, '┘')
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
