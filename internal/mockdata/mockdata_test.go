package mockdata

import (
	"testing"

	"github.com/nvisser/spikescope/internal/waveview"
)

func TestGenerateShapesOrganize(t *testing.T) {
	for _, p := range Presets() {
		raw := Generate(p, 7)
		ds, err := waveview.Organize(raw)
		if err != nil {
			t.Fatalf("%s: organize rejected generated data: %v", p.Name, err)
		}
		if ds.NSpikes != p.Spikes || ds.NChannels != p.Channels || ds.NSamples != p.Samples {
			t.Fatalf("%s: dims mismatch", p.Name)
		}
		if ds.NClusters != p.Clusters {
			t.Fatalf("%s: expected %d clusters present, got %d", p.Name, p.Clusters, ds.NClusters)
		}
	}
}

func TestGenerateMasksInRange(t *testing.T) {
	p, ok := Find("tetrode")
	if !ok {
		t.Fatal("tetrode preset missing")
	}
	raw := Generate(p, 3)
	r, c := raw.Masks.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m := raw.Masks.At(i, j)
			if m < 0 || m > 1 {
				t.Fatalf("mask (%d,%d)=%v outside [0,1]", i, j, m)
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	p, _ := Find("tetrode")
	a := Generate(p, 42)
	b := Generate(p, 42)
	for i := range a.Waveforms {
		if a.Waveforms[i] != b.Waveforms[i] {
			t.Fatalf("waveforms diverge at %d with same seed", i)
		}
	}
	for i := range a.Clusters {
		if a.Clusters[i] != b.Clusters[i] {
			t.Fatalf("clusters diverge at %d with same seed", i)
		}
	}
}

func TestFindUnknownPreset(t *testing.T) {
	if _, ok := Find("nope"); ok {
		t.Fatal("expected lookup miss")
	}
}
