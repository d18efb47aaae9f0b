package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"gonum.org/v1/gonum/mat"

	"github.com/nvisser/spikescope/internal/waveview"
)

func testDataset(t *testing.T) *waveview.Dataset {
	t.Helper()
	nspikes, nsamples, nchannels := 3, 4, 2
	wf := make([]float64, nspikes*nsamples*nchannels)
	for i := range wf {
		wf[i] = float64(i%5) - 2
	}
	masks := mat.NewDense(nspikes, nchannels, []float64{
		1, 1,
		1, 0,
		0, 0,
	})
	ds, err := waveview.Organize(waveview.Raw{
		Waveforms: wf,
		NSpikes:   nspikes,
		NSamples:  nsamples,
		NChannels: nchannels,
		Clusters:  []int{0, 0, 0},
		Colors:    [][3]float64{{1, 0, 0}},
		Masks:     masks,
	})
	if err != nil {
		t.Fatalf("organize: %v", err)
	}
	return ds
}

func TestWAVRoundTrip(t *testing.T) {
	ds := testDataset(t)
	path := filepath.Join(t.TempDir(), "spikes.wav")

	if err := WAV(path, ds, []int{0, 2}, 20000); err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		t.Fatal("expected a valid wav file")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got, want := len(buf.Data), 2*ds.NSamples; got != want {
		t.Fatalf("expected %d frames, got %d", want, got)
	}
	if buf.Format.SampleRate != 20000 {
		t.Fatalf("expected 20kHz, got %d", buf.Format.SampleRate)
	}
}

func TestWAVEmptySelection(t *testing.T) {
	ds := testDataset(t)
	err := WAV(filepath.Join(t.TempDir(), "x.wav"), ds, nil, 20000)
	if err != ErrEmptySelection {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}
}

func TestWAVFullyMaskedSpikeIsSilence(t *testing.T) {
	ds := testDataset(t)
	path := filepath.Join(t.TempDir(), "silent.wav")
	// reordered row 2 has every channel masked out
	if err := WAV(path, ds, []int{2}, 20000); err != nil {
		t.Fatalf("export: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	buf, err := wav.NewDecoder(f).FullPCMBuffer()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for i, v := range buf.Data {
		if v != 0 {
			t.Fatalf("frame %d: expected silence, got %d", i, v)
		}
	}
}
