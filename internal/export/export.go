// Package export writes selected spikes out as audio, the classic way to
// sanity-check a cluster by ear.
package export

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/nvisser/spikescope/internal/waveview"
)

// ErrEmptySelection is returned when there is nothing to export.
var ErrEmptySelection = errors.New("export: no spikes selected")

// WAV writes the given reordered spike rows as a 16-bit mono WAV file:
// each spike contributes its waveform averaged over unmasked channels,
// concatenated in row order and peak-normalized.
func WAV(path string, ds *waveview.Dataset, rows []int, sampleRate int) error {
	if len(rows) == 0 {
		return ErrEmptySelection
	}

	samples := make([]float64, 0, len(rows)*ds.NSamples)
	peak := 0.0
	for _, row := range rows {
		if row < 0 || row >= ds.NSpikes {
			return fmt.Errorf("export: spike row %d out of range", row)
		}
		for s := 0; s < ds.NSamples; s++ {
			sum, n := 0.0, 0
			for ch := 0; ch < ds.NChannels; ch++ {
				if ds.Masks.At(row, ch) <= 0 {
					continue
				}
				sum += ds.Waveforms[(row*ds.NSamples+s)*ds.NChannels+ch]
				n++
			}
			v := 0.0
			if n > 0 {
				v = sum / float64(n)
			}
			peak = math.Max(peak, math.Abs(v))
			samples = append(samples, v)
		}
	}

	scale := 0.0
	if peak > 0 {
		scale = 0.9 * math.MaxInt16 / peak
	}
	data := make([]int, len(samples))
	for i, v := range samples {
		data[i] = int(v * scale)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}
