// Package mockdata synthesizes spike-waveform recordings so the viewer can
// run without an acquisition pipeline. Waveform shapes are biphasic spikes
// attenuated across the probe with distance from a per-cluster best channel.
package mockdata

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/nvisser/spikescope/internal/palette"
	"github.com/nvisser/spikescope/internal/waveview"
)

// Geometry selects the synthetic probe layout.
type Geometry uint8

const (
	// Staggered is a two-column silicon probe.
	Staggered Geometry = iota
	// Grid is a square electrode grid.
	Grid
)

// Preset describes one built-in demo recording.
type Preset struct {
	Name     string
	Desc     string
	Channels int
	Clusters int
	Spikes   int
	Samples  int
	Geometry Geometry
}

// Presets returns the built-in demo recordings, smallest first.
func Presets() []Preset {
	return []Preset{
		{Name: "tetrode", Desc: "4 channels, 3 clusters, 600 spikes", Channels: 4, Clusters: 3, Spikes: 600, Samples: 32, Geometry: Grid},
		{Name: "probe-16", Desc: "16-channel staggered probe, 4 clusters", Channels: 16, Clusters: 4, Spikes: 1200, Samples: 32, Geometry: Staggered},
		{Name: "probe-32", Desc: "32-channel staggered probe, 6 clusters", Channels: 32, Clusters: 6, Spikes: 2000, Samples: 32, Geometry: Staggered},
	}
}

// Find returns the preset with the given name.
func Find(name string) (Preset, bool) {
	for _, p := range Presets() {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// Coords returns the electrode coordinates (micrometers) for the preset's
// geometry.
func Coords(geom Geometry, nchannels int) *mat.Dense {
	coords := mat.NewDense(nchannels, 2, nil)
	switch geom {
	case Staggered:
		for ch := 0; ch < nchannels; ch++ {
			coords.Set(ch, 0, float64(ch%2)*22)
			coords.Set(ch, 1, float64(ch)*12)
		}
	case Grid:
		cols := int(math.Ceil(math.Sqrt(float64(nchannels))))
		for ch := 0; ch < nchannels; ch++ {
			coords.Set(ch, 0, float64(ch%cols)*20)
			coords.Set(ch, 1, float64(ch/cols)*20)
		}
	}
	return coords
}

// Generate builds a deterministic synthetic recording for the preset.
func Generate(p Preset, seed int64) waveview.Raw {
	rng := rand.New(rand.NewSource(seed))
	coords := Coords(p.Geometry, p.Channels)

	type unit struct {
		best  int     // channel the unit sits on
		amp   float64 // peak amplitude
		sigma float64 // spike width in samples
		decay float64 // spatial attenuation constant
	}
	units := make([]unit, p.Clusters)
	for i := range units {
		units[i] = unit{
			best:  rng.Intn(p.Channels),
			amp:   0.6 + 0.6*rng.Float64(),
			sigma: 1.5 + rng.Float64(),
			decay: 25 + 20*rng.Float64(),
		}
	}

	// absolute cluster ids are deliberately non-contiguous so relative
	// indexing downstream is exercised
	ids := make([]int, p.Clusters)
	for i := range ids {
		ids[i] = 2 + 3*i
	}

	wf := make([]float64, p.Spikes*p.Samples*p.Channels)
	clusters := make([]int, p.Spikes)
	masks := mat.NewDense(p.Spikes, p.Channels, nil)

	gain := make([]float64, p.Channels)
	for spike := 0; spike < p.Spikes; spike++ {
		// first pass seeds every cluster so none ends up empty
		u := spike % p.Clusters
		if spike >= p.Clusters {
			u = rng.Intn(p.Clusters)
		}
		clusters[spike] = ids[u]
		unit := units[u]

		for ch := 0; ch < p.Channels; ch++ {
			dx := coords.At(ch, 0) - coords.At(unit.best, 0)
			dy := coords.At(ch, 1) - coords.At(unit.best, 1)
			gain[ch] = math.Exp(-math.Hypot(dx, dy) / unit.decay)
			masks.Set(spike, ch, clamp01(1.4*gain[ch]-0.15))
		}

		center := float64(p.Samples)/2 + rng.NormFloat64()*0.5
		amp := unit.amp * (0.85 + 0.3*rng.Float64())
		for s := 0; s < p.Samples; s++ {
			d := (float64(s) - center) / unit.sigma
			// biphasic: sharp trough followed by a slow positive lobe
			v := -amp*math.Exp(-d*d/2) + 0.35*amp*math.Exp(-(d-2.2)*(d-2.2)/4)
			for ch := 0; ch < p.Channels; ch++ {
				noise := rng.NormFloat64() * 0.02
				wf[(spike*p.Samples+s)*p.Channels+ch] = v*gain[ch] + noise
			}
		}
	}

	return waveview.Raw{
		Waveforms: wf,
		NSpikes:   p.Spikes,
		NSamples:  p.Samples,
		NChannels: p.Channels,
		Clusters:  clusters,
		Colors:    palette.Colors(p.Clusters),
		Masks:     masks,
		Coords:    coords,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
