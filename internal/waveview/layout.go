package waveview

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Arrangement selects how channels are placed on screen.
type Arrangement uint8

const (
	// Linear stacks channels top to bottom, evenly spaced.
	Linear Arrangement = iota
	// Geometrical places channels at the true electrode coordinates.
	Geometrical
)

func (a Arrangement) String() string {
	switch a {
	case Linear:
		return "linear"
	case Geometrical:
		return "geometrical"
	}
	return "unknown"
}

// Superposition selects how clusters share a channel's box.
type Superposition uint8

const (
	// Superimposed overlays all clusters in one box per channel.
	Superimposed Superposition = iota
	// Separated fans cluster boxes out side by side.
	Separated
)

func (s Superposition) String() string {
	switch s {
	case Superimposed:
		return "superimposed"
	case Separated:
		return "separated"
	}
	return "unknown"
}

// Layout computes, for the current arrangement and superposition, the box
// center matrices (Tx, Ty) of shape [nchannels, nclusters] and the box size,
// normalized so the whole scene fits the [-1,1] viewport minus margins.
type Layout struct {
	alpha         float64 // horizontal margin ratio
	beta          float64 // vertical margin ratio
	boxSizeMin    float64
	probeScaleMin float64

	nchannels int
	nclusters int
	// heuristic spread estimate of the probe in box units
	diffxc, diffyc float64

	arrangement   Arrangement
	superposition Superposition
	probeScale    [2]float64

	// per-arrangement box size, computed lazily on first use and then
	// only changed by ChangeBoxScale; never implicitly cleared
	boxSizes map[Arrangement]*[2]float64

	// normalized channel positions per arrangement, nchannels x 2
	channelPositions map[Arrangement]*mat.Dense

	tx, ty     *mat.Dense
	boxW, boxH float64
}

// NewLayout returns a Layout in the default Linear/Separated mode.
func NewLayout() *Layout {
	l := &Layout{
		alpha:         0.02,
		beta:          0.02,
		boxSizeMin:    0.01,
		probeScaleMin: 0.01,
		probeScale:    [2]float64{1, 1},
		arrangement:   Linear,
		superposition: Separated,
	}
	l.boxSizes = map[Arrangement]*[2]float64{Linear: nil, Geometrical: nil}
	l.channelPositions = map[Arrangement]*mat.Dense{}
	return l
}

// SetGeometry installs the probe: channel and cluster counts plus optional
// electrode coordinates. Nil coords fall back to the linear column. Resets
// the box size cache and recomputes the arrangement.
func (l *Layout) SetGeometry(nchannels, nclusters int, coords *mat.Dense) {
	l.nchannels = nchannels
	l.nclusters = nclusters
	l.diffxc = math.Sqrt(float64(nchannels))
	l.diffyc = l.diffxc

	linear := mat.NewDense(nchannels, 2, nil)
	for ch := 0; ch < nchannels; ch++ {
		y := 1.0
		if nchannels > 1 {
			y = 1 - 2*float64(ch)/float64(nchannels-1)
		}
		linear.Set(ch, 1, y)
	}
	if coords == nil {
		coords = linear
	}

	l.boxSizes[Linear] = nil
	l.boxSizes[Geometrical] = nil
	l.channelPositions[Linear] = l.normalizePositions(Linear, linear)
	l.channelPositions[Geometrical] = l.normalizePositions(Geometrical, coords)

	l.updateArrangement()
}

// normalizePositions solves the affine scale and offset that fit the raw
// coordinate range into [-1,1] minus the box-plus-margin span, centered at
// zero. A degenerate range on an axis collapses to scale 0 on that axis.
func (l *Layout) normalizePositions(arr Arrangement, raw *mat.Dense) *mat.Dense {
	n, _ := raw.Dims()
	xmin, xmax := raw.At(0, 0), raw.At(0, 0)
	ymin, ymax := raw.At(0, 1), raw.At(0, 1)
	for i := 1; i < n; i++ {
		xmin = math.Min(xmin, raw.At(i, 0))
		xmax = math.Max(xmax, raw.At(i, 0))
		ymin = math.Min(ymin, raw.At(i, 1))
		ymax = math.Max(ymax, raw.At(i, 1))
	}

	w, h := l.findBoxSize(arr, l.superposition)

	ax, ay := 0.0, 0.0
	if xmin != xmax {
		ax = (2 - float64(l.nclusters)*w*(1+2*l.alpha)) / (xmax - xmin)
	}
	if ymin != ymax {
		ay = (2 - h*(1+2*l.beta)) / (ymax - ymin)
	}
	bx := -0.5 * ax * (xmax + xmin)
	by := -0.5 * ay * (ymax + ymin)

	out := mat.NewDense(n, 2, nil)
	for i := 0; i < n; i++ {
		out.Set(i, 0, ax*raw.At(i, 0)+bx)
		out.Set(i, 1, ay*raw.At(i, 1)+by)
	}
	return out
}

// findBoxSize returns the closed-form box size for a mode pair.
func (l *Layout) findBoxSize(arr Arrangement, sup Superposition) (w, h float64) {
	nch := float64(l.nchannels)
	ncl := float64(l.nclusters)
	switch arr {
	case Linear:
		switch sup {
		case Superimposed:
			w = 2 / (1 + 2*l.alpha)
			h = 2 / (nch * (1 + l.beta))
		case Separated:
			w = 2 / (ncl * (1 + 2*l.alpha))
			h = 2 / (nch * (1 + 2*l.beta))
		}
	case Geometrical:
		switch sup {
		case Superimposed:
			w = 2 / (l.diffxc * (1 + 2*l.beta))
			h = 2 / (l.diffyc * (1 + 2*l.beta))
		case Separated:
			w = 2 / ((1 + 2*l.alpha) * (1 + 2*l.beta) * ncl * l.diffxc)
			h = 2 / ((1 + 2*l.beta) * l.diffyc)
		}
	}
	return w, h
}

func (l *Layout) loadBoxSize() (w, h float64) {
	if l.boxSizes[l.arrangement] == nil {
		w, h := l.findBoxSize(l.arrangement, l.superposition)
		l.boxSizes[l.arrangement] = &[2]float64{w, h}
	}
	s := l.boxSizes[l.arrangement]
	return s[0], s[1]
}

// updateArrangement rebuilds (Tx, Ty) and the box size for the current mode.
func (l *Layout) updateArrangement() {
	pos := l.channelPositions[l.arrangement]
	w, h := l.loadBoxSize()

	psx, psy := l.probeScale[0], l.probeScale[1]
	tx := mat.NewDense(l.nchannels, l.nclusters, nil)
	ty := mat.NewDense(l.nchannels, l.nclusters, nil)
	for ch := 0; ch < l.nchannels; ch++ {
		x := pos.At(ch, 0) * psx
		y := pos.At(ch, 1) * psy
		for c := 0; c < l.nclusters; c++ {
			shift := 0.0
			if l.superposition == Separated {
				shift = w * (1 + 2*l.alpha) * (0.5 + float64(c) - float64(l.nclusters)/2)
			}
			tx.Set(ch, c, x+shift)
			ty.Set(ch, c, y)
		}
	}

	l.tx, l.ty = tx, ty
	l.boxW, l.boxH = w, h
}

// Transform returns the current box centers and box size.
func (l *Layout) Transform() (tx, ty *mat.Dense, w, h float64) {
	return l.tx, l.ty, l.boxW, l.boxH
}

// ChannelPositions returns the normalized channel positions of the current
// arrangement, shape nchannels x 2.
func (l *Layout) ChannelPositions() *mat.Dense {
	return l.channelPositions[l.arrangement]
}

// BoxSizeMargin returns the box size inflated by the margin ratios; this is
// the per-cluster pitch in Separated mode.
func (l *Layout) BoxSizeMargin() (w, h float64) {
	return l.boxW * (1 + 2*l.alpha), l.boxH * (1 + 2*l.beta)
}

// ProbeScale returns the current probe scale factors.
func (l *Layout) ProbeScale() (sx, sy float64) {
	return l.probeScale[0], l.probeScale[1]
}

// Arrangement returns the current spatial arrangement.
func (l *Layout) Arrangement() Arrangement { return l.arrangement }

// Superposition returns the current superposition mode.
func (l *Layout) Superposition() Superposition { return l.superposition }

// Superimposed reports whether clusters are overlaid.
func (l *Layout) Superimposed() bool { return l.superposition == Superimposed }

// ChangeBoxScale grows or shrinks the current arrangement's box size,
// clamped at the floor; never rejected.
func (l *Layout) ChangeBoxScale(dx, dy float64) {
	w, h := l.loadBoxSize()
	w = math.Max(l.boxSizeMin, w+dx)
	h = math.Max(l.boxSizeMin, h+dy)
	l.boxSizes[l.arrangement] = &[2]float64{w, h}
	l.updateArrangement()
}

// ChangeProbeScale grows or shrinks the probe scale, clamped at the floor.
func (l *Layout) ChangeProbeScale(dx, dy float64) {
	l.probeScale[0] = math.Max(l.probeScaleMin, l.probeScale[0]+dx)
	l.probeScale[1] = math.Max(l.probeScaleMin, l.probeScale[1]+dy)
	l.updateArrangement()
}

// ToggleSuperposition flips Superimposed/Separated and recomputes the
// transform. Cached box sizes survive the toggle.
func (l *Layout) ToggleSuperposition() {
	if l.superposition == Separated {
		l.superposition = Superimposed
	} else {
		l.superposition = Separated
	}
	l.updateArrangement()
}

// ToggleArrangement flips Linear/Geometrical and recomputes the transform.
func (l *Layout) ToggleArrangement() {
	if l.arrangement == Linear {
		l.arrangement = Geometrical
	} else {
		l.arrangement = Linear
	}
	l.updateArrangement()
}

// Viewbox returns the smallest view rectangle that shows the given channels'
// boxes, padded by the box size plus margin.
func (l *Layout) Viewbox(channels []int) (xmin, ymin, xmax, ymax float64) {
	if len(channels) == 0 || l.tx == nil {
		return -1, -1, 1, 1
	}
	first := true
	for _, ch := range channels {
		for c := 0; c < l.nclusters; c++ {
			x, y := l.tx.At(ch, c), l.ty.At(ch, c)
			if first {
				xmin, xmax, ymin, ymax = x, x, y, y
				first = false
				continue
			}
			xmin = math.Min(xmin, x)
			xmax = math.Max(xmax, x)
			ymin = math.Min(ymin, y)
			ymax = math.Max(ymax, y)
		}
	}
	mx := l.boxW * (0.5 + l.alpha)
	my := l.boxH * (0.5 + l.beta)
	return xmin - mx, ymin - my, xmax + mx, ymax + my
}
