package waveview

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Raw is one recording as delivered by a data provider, before any
// reordering. Waveforms is a flat cube indexed spike-major:
// Waveforms[(spike*NSamples+sample)*NChannels+channel].
type Raw struct {
	Waveforms []float64
	NSpikes   int
	NSamples  int
	NChannels int

	// Clusters holds the absolute cluster id of each spike.
	Clusters []int

	// Colors holds one RGB triple (components in [0,1]) per relative
	// cluster index.
	Colors [][3]float64

	// Masks is NSpikes x NChannels with values in [0,1]; 0 excludes a
	// channel's samples from selection queries.
	Masks *mat.Dense

	// Coords is the NChannels x 2 electrode layout. Nil means no probe
	// geometry is known and the linear layout is reused.
	Coords *mat.Dense

	// SpikeIDs are optional external spike identifiers. Nil defaults to
	// 0..NSpikes-1.
	SpikeIDs []int
}

// Dataset is a recording reordered so that spikes of the same cluster are
// contiguous, together with the flat per-point attribute buffers handed to
// the rendering collaborator. Immutable after Organize.
type Dataset struct {
	NSpikes   int
	NSamples  int
	NChannels int
	NClusters int

	// Permutation maps a reordered spike row to its original index;
	// it is a bijection over [0, NSpikes).
	Permutation []int

	// SpikeIDs holds the external id of each reordered row.
	SpikeIDs []int

	// ClustersUnique lists the absolute cluster ids present, ascending.
	// The relative index of a cluster is its position in this slice.
	ClustersUnique []int

	// ClustersRel holds the relative cluster index of each reordered row.
	ClustersRel []int

	// ClusterSizes and ClusterOffsets are keyed by absolute cluster id:
	// the spike count of the cluster and the first reordered row of its
	// contiguous block.
	ClusterSizes   map[int]int
	ClusterOffsets map[int]int

	// Waveforms is the reordered cube, same indexing as Raw.Waveforms.
	Waveforms []float64

	// Masks is the reordered NSpikes x NChannels mask matrix.
	Masks *mat.Dense

	Colors [][3]float64

	// Flat per-point buffers, channel-major: point index
	// ch*NSpikes*NSamples + row*NSamples + sample. PointX/PointY are the
	// normalized in-box coordinates in [-1,1].
	PointX       []float64
	PointY       []float64
	FullMasks    []float64
	FullClusters []int32
	FullChannels []int32
}

// NPoints returns the length of the flat point buffers.
func (d *Dataset) NPoints() int {
	return d.NSpikes * d.NSamples * d.NChannels
}

// Organize groups the raw recording by cluster: spike rows are stable-sorted
// by absolute cluster id, all per-spike arrays are permuted accordingly, and
// the cumulative offset tables used by the index arithmetic everywhere else
// are derived. Returns a ShapeError when the leading dimensions disagree.
func Organize(raw Raw) (*Dataset, error) {
	if err := raw.validate(); err != nil {
		return nil, err
	}

	ns, nt, nc := raw.NSpikes, raw.NSamples, raw.NChannels

	perm := make([]int, ns)
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(i, j int) bool {
		return raw.Clusters[perm[i]] < raw.Clusters[perm[j]]
	})

	sizes := make(map[int]int, 8)
	for _, c := range raw.Clusters {
		sizes[c]++
	}
	unique := make([]int, 0, len(sizes))
	for c := range sizes {
		unique = append(unique, c)
	}
	sort.Ints(unique)

	if len(raw.Colors) != len(unique) {
		return nil, &ShapeError{What: "cluster colors", Want: len(unique), Got: len(raw.Colors)}
	}

	// prefix sum: first reordered row of each cluster block
	offsets := make(map[int]int, len(unique))
	running := 0
	for _, c := range unique {
		offsets[c] = running
		running += sizes[c]
	}
	relOf := make(map[int]int, len(unique))
	for i, c := range unique {
		relOf[c] = i
	}

	ds := &Dataset{
		NSpikes:        ns,
		NSamples:       nt,
		NChannels:      nc,
		NClusters:      len(unique),
		Permutation:    perm,
		ClustersUnique: unique,
		ClusterSizes:   sizes,
		ClusterOffsets: offsets,
		Colors:         raw.Colors,
	}

	ds.SpikeIDs = make([]int, ns)
	ds.ClustersRel = make([]int, ns)
	ds.Waveforms = make([]float64, len(raw.Waveforms))
	masks := mat.NewDense(ns, nc, nil)
	for row, orig := range perm {
		if raw.SpikeIDs != nil {
			ds.SpikeIDs[row] = raw.SpikeIDs[orig]
		} else {
			ds.SpikeIDs[row] = orig
		}
		ds.ClustersRel[row] = relOf[raw.Clusters[orig]]
		copy(ds.Waveforms[row*nt*nc:(row+1)*nt*nc], raw.Waveforms[orig*nt*nc:(orig+1)*nt*nc])
		for ch := 0; ch < nc; ch++ {
			masks.Set(row, ch, raw.Masks.At(orig, ch))
		}
	}
	ds.Masks = masks

	ds.buildPointBuffers()
	return ds, nil
}

func (raw Raw) validate() error {
	if raw.NSpikes <= 0 || raw.NSamples <= 0 || raw.NChannels <= 0 {
		return &ShapeError{What: "waveform dims", Want: 1, Got: 0}
	}
	want := raw.NSpikes * raw.NSamples * raw.NChannels
	if len(raw.Waveforms) != want {
		return &ShapeError{What: "waveforms", Want: want, Got: len(raw.Waveforms)}
	}
	if len(raw.Clusters) != raw.NSpikes {
		return &ShapeError{What: "clusters", Want: raw.NSpikes, Got: len(raw.Clusters)}
	}
	if raw.Masks == nil {
		return &ShapeError{What: "masks", Want: raw.NSpikes, Got: 0}
	}
	if r, c := raw.Masks.Dims(); r != raw.NSpikes || c != raw.NChannels {
		return &ShapeError{What: "masks", Want: raw.NSpikes * raw.NChannels, Got: r * c}
	}
	if raw.Coords != nil {
		if r, c := raw.Coords.Dims(); r != raw.NChannels || c != 2 {
			return &ShapeError{What: "electrode coords", Want: raw.NChannels * 2, Got: r * c}
		}
	}
	if raw.SpikeIDs != nil && len(raw.SpikeIDs) != raw.NSpikes {
		return &ShapeError{What: "spike ids", Want: raw.NSpikes, Got: len(raw.SpikeIDs)}
	}
	return nil
}

// buildPointBuffers fills the flat channel-major attribute arrays: the
// in-box X ramp, the globally normalized Y values, and the mask, relative
// cluster and channel of every point.
func (d *Dataset) buildPointBuffers() {
	ns, nt, nc := d.NSpikes, d.NSamples, d.NChannels
	npoints := ns * nt * nc

	d.PointX = make([]float64, npoints)
	d.PointY = make([]float64, npoints)
	d.FullMasks = make([]float64, npoints)
	d.FullClusters = make([]int32, npoints)
	d.FullChannels = make([]int32, npoints)

	ymin := floats.Min(d.Waveforms)
	ymax := floats.Max(d.Waveforms)
	ay, by := 0.0, 0.0
	if ymin != ymax {
		ay = 2 / (ymax - ymin)
		by = -(ymax + ymin) / (ymax - ymin)
	}

	ramp := make([]float64, nt)
	for s := range ramp {
		if nt > 1 {
			ramp[s] = -1 + 2*float64(s)/float64(nt-1)
		} else {
			ramp[s] = -1
		}
	}

	for ch := 0; ch < nc; ch++ {
		base := ch * ns * nt
		for row := 0; row < ns; row++ {
			m := d.Masks.At(row, ch)
			rel := int32(d.ClustersRel[row])
			for s := 0; s < nt; s++ {
				p := base + row*nt + s
				d.PointX[p] = ramp[s]
				d.PointY[p] = ay*d.Waveforms[(row*nt+s)*nc+ch] + by
				d.FullMasks[p] = m
				d.FullClusters[p] = rel
				d.FullChannels[p] = int32(ch)
			}
		}
	}
}

// DataPosition returns the half-open point range [start, end) occupied in
// the flat buffers by the given channel and relative cluster.
func (d *Dataset) DataPosition(channel, clusterRel int) (start, end int) {
	abs := d.ClustersUnique[clusterRel]
	start = d.NSamples * (channel*d.NSpikes + d.ClusterOffsets[abs])
	end = start + d.NSamples*d.ClusterSizes[abs]
	return start, end
}
