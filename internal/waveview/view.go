// Package waveview positions multi-channel spike waveforms on a normalized
// viewport and resolves interactive box selections back to spike indices.
// It owns no rendering: derived state is pushed to an injected Renderer.
package waveview

import "gonum.org/v1/gonum/mat"

// Uniform names one derived rendering quantity.
type Uniform uint8

const (
	UniformBoxSize Uniform = iota
	UniformBoxSizeMargin
	UniformProbeScale
	UniformSuperimposed
	UniformChannelPositions
	UniformClusterColors
)

func (u Uniform) String() string {
	switch u {
	case UniformBoxSize:
		return "box_size"
	case UniformBoxSizeMargin:
		return "box_size_margin"
	case UniformProbeScale:
		return "probe_scale"
	case UniformSuperimposed:
		return "superimposed"
	case UniformChannelPositions:
		return "channel_positions"
	case UniformClusterColors:
		return "cluster_colors"
	}
	return "unknown"
}

// Uniforms is the full set of derived scalar/vector rendering values.
type Uniforms struct {
	BoxW, BoxH             float64
	BoxMarginW, BoxMarginH float64
	ProbeScaleX            float64
	ProbeScaleY            float64
	Superimposed           bool
	ChannelPositions       *mat.Dense
	ClusterColors          [][3]float64
}

// Renderer consumes derived state. UpdateUniforms names exactly which
// quantities changed; UpdateHighlight replaces the whole flag buffer.
type Renderer interface {
	UpdateUniforms(changed []Uniform, u Uniforms)
	UpdateHighlight(flags []int32)
}

// Option configures a View.
type Option func(*View)

// WithCloseBoxCount overrides the candidate-box bound used by selection.
func WithCloseBoxCount(n int) Option {
	return func(v *View) {
		if n > 0 {
			v.closeBoxCount = n
		}
	}
}

// View ties the dataset, layout, selection and highlight state together
// behind the interaction surface. All methods are synchronous and must be
// called from a single goroutine.
type View struct {
	renderer Renderer
	layout   *Layout

	data *Dataset
	hl   *highlighter

	closeBoxCount int
	sx, sy        float64 // screen-to-data scale used by selection
}

// New returns a View pushing updates to r.
func New(r Renderer, opts ...Option) *View {
	v := &View{
		renderer:      r,
		layout:        NewLayout(),
		closeBoxCount: defaultCloseBoxCount,
		sx:            1,
		sy:            1,
	}
	for _, o := range opts {
		o(v)
	}
	return v
}

// SetData loads or replaces the dataset, resetting all derived state.
// On error the previous dataset, layout and highlight are left untouched.
func (v *View) SetData(raw Raw) error {
	ds, err := Organize(raw)
	if err != nil {
		return err
	}
	v.data = ds
	v.layout.SetGeometry(ds.NChannels, ds.NClusters, raw.Coords)
	v.hl = newHighlighter(ds)

	v.emitUniforms(UniformBoxSize, UniformBoxSizeMargin, UniformProbeScale,
		UniformSuperimposed, UniformChannelPositions, UniformClusterColors)
	v.renderer.UpdateHighlight(v.hl.flags())
	return nil
}

// Data returns the loaded dataset, or nil before SetData.
func (v *View) Data() *Dataset { return v.data }

// Layout exposes the layout engine.
func (v *View) Layout() *Layout { return v.layout }

// SetViewScale records the current screen zoom factors; selection weights
// box-center distances by them.
func (v *View) SetViewScale(sx, sy float64) {
	v.sx, v.sy = sx, sy
}

// DragSelect resolves the drag rectangle to enclosed spikes and highlights
// them. Returns the external ids of the selected spikes, sorted by
// reordered row. A no-op before SetData.
func (v *View) DragSelect(rect Rect, press Point) []int {
	if v.data == nil {
		return nil
	}
	rows := findEnclosedRows(v.data, v.layout, rect, press, v.sx, v.sy, v.closeBoxCount)
	if v.hl.set(rows) {
		v.renderer.UpdateHighlight(v.hl.flags())
	}
	return v.spikeIDs(rows)
}

// DragCancel clears the highlight. Equivalent to selecting nothing.
func (v *View) DragCancel() {
	if v.data == nil {
		return
	}
	if v.hl.set(nil) {
		v.renderer.UpdateHighlight(v.hl.flags())
	}
}

// SelectedRows returns the highlighted reordered spike rows.
func (v *View) SelectedRows() []int {
	if v.hl == nil {
		return nil
	}
	return v.hl.rows
}

// Selected returns the external ids of the highlighted spikes.
func (v *View) Selected() []int {
	if v.hl == nil {
		return nil
	}
	return v.spikeIDs(v.hl.rows)
}

// HighlightMask exposes the live per-point flag buffer.
func (v *View) HighlightMask() []int32 {
	if v.hl == nil {
		return nil
	}
	return v.hl.flags()
}

func (v *View) spikeIDs(rows []int) []int {
	if len(rows) == 0 {
		return nil
	}
	ids := make([]int, len(rows))
	for i, r := range rows {
		ids[i] = v.data.SpikeIDs[r]
	}
	return ids
}

// ToggleSuperposition flips the superposition mode.
func (v *View) ToggleSuperposition() {
	v.layout.ToggleSuperposition()
	v.emitUniforms(UniformSuperimposed, UniformBoxSize, UniformBoxSizeMargin)
}

// ToggleArrangement flips the spatial arrangement.
func (v *View) ToggleArrangement() {
	v.layout.ToggleArrangement()
	v.emitUniforms(UniformChannelPositions, UniformBoxSize, UniformBoxSizeMargin)
}

// ChangeBoxScale adjusts the waveform box size.
func (v *View) ChangeBoxScale(dx, dy float64) {
	v.layout.ChangeBoxScale(dx, dy)
	v.emitUniforms(UniformBoxSize, UniformBoxSizeMargin)
}

// ChangeProbeScale adjusts the probe spread.
func (v *View) ChangeProbeScale(dx, dy float64) {
	v.layout.ChangeProbeScale(dx, dy)
	v.emitUniforms(UniformProbeScale)
}

func (v *View) emitUniforms(changed ...Uniform) {
	w, h := v.layout.boxW, v.layout.boxH
	mw, mh := v.layout.BoxSizeMargin()
	sx, sy := v.layout.ProbeScale()
	u := Uniforms{
		BoxW: w, BoxH: h,
		BoxMarginW: mw, BoxMarginH: mh,
		ProbeScaleX: sx, ProbeScaleY: sy,
		Superimposed:     v.layout.Superimposed(),
		ChannelPositions: v.layout.ChannelPositions(),
	}
	if v.data != nil {
		u.ClusterColors = v.data.Colors
	}
	v.renderer.UpdateUniforms(changed, u)
}
