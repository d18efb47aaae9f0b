package waveview

import "sort"

// Point is a position in normalized device coordinates.
type Point struct {
	X, Y float64
}

// Rect is a drag rectangle given by two opposite corners, in normalized
// device coordinates. Corners may come in any order.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

func (r Rect) bounds() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = r.X0, r.X1
	if xmin > xmax {
		xmin, xmax = xmax, xmin
	}
	ymin, ymax = r.Y0, r.Y1
	if ymin > ymax {
		ymin, ymax = ymax, ymin
	}
	return xmin, xmax, ymin, ymax
}

// defaultCloseBoxCount bounds the candidate boxes inspected per selection.
// It is a performance heuristic, not an exhaustive guarantee; the effective
// bound is max(closeBoxCount, nclusters) so that superimposed mode always
// covers every cluster of the nearest channel.
const defaultCloseBoxCount = 4

// findEnclosedRows resolves a drag rectangle to the reordered spike rows
// whose waveform points it encloses on any candidate box. Only the K boxes
// whose centers are closest to the press point (under the sx, sy screen
// scale) are inspected. Points with mask 0 never match. The result is
// sorted, deduplicated, and empty on no match.
func findEnclosedRows(ds *Dataset, l *Layout, rect Rect, press Point, sx, sy float64, closeBoxCount int) []int {
	xmin, xmax, ymin, ymax := rect.bounds()

	tx, ty, w, h := l.Transform()
	halfW, halfH := w/2, h/2

	nboxes := ds.NChannels * ds.NClusters
	k := closeBoxCount
	if k < ds.NClusters {
		k = ds.NClusters
	}
	if k > nboxes {
		k = nboxes
	}

	// squared scaled distance from the press point to every box center;
	// box index = channel*nclusters + clusterRel
	dist := make([]float64, nboxes)
	order := make([]int, nboxes)
	for ch := 0; ch < ds.NChannels; ch++ {
		for c := 0; c < ds.NClusters; c++ {
			i := ch*ds.NClusters + c
			dx := (tx.At(ch, c) - press.X) * sx
			dy := (ty.At(ch, c) - press.Y) * sy
			dist[i] = dx*dx + dy*dy
			order[i] = i
		}
	}
	sort.Slice(order, func(i, j int) bool { return dist[order[i]] < dist[order[j]] })

	seen := make(map[int]struct{})
	spikeSpan := ds.NSpikes * ds.NSamples
	for _, box := range order[:k] {
		ch, c := box/ds.NClusters, box%ds.NClusters
		start, end := ds.DataPosition(ch, c)

		// inverse-transform the rectangle into box-local coordinates
		u, v := tx.At(ch, c), ty.At(ch, c)
		lxmin, lxmax := (xmin-u)/halfW, (xmax-u)/halfW
		lymin, lymax := (ymin-v)/halfH, (ymax-v)/halfH

		for p := start; p < end; p++ {
			if ds.FullMasks[p] <= 0 {
				continue
			}
			x, y := ds.PointX[p], ds.PointY[p]
			if x >= lxmin && x <= lxmax && y >= lymin && y <= lymax {
				// channel offset discounted, then sample index folded away
				seen[(p%spikeSpan)/ds.NSamples] = struct{}{}
			}
		}
	}

	rows := make([]int, 0, len(seen))
	for r := range seen {
		rows = append(rows, r)
	}
	sort.Ints(rows)
	return rows
}
