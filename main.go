package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvisser/spikescope/internal/logging"
	"github.com/nvisser/spikescope/internal/mockdata"
	"github.com/nvisser/spikescope/internal/ui"
	"github.com/nvisser/spikescope/internal/waveview"
)

func main() {
	var (
		presetName = flag.String("preset", "", "demo recording preset (tetrode, probe-16, probe-32)")
		channels   = flag.Int("channels", 0, "channel count for a custom recording")
		clusters   = flag.Int("clusters", 3, "cluster count for a custom recording")
		spikes     = flag.Int("spikes", 800, "spike count for a custom recording")
		samples    = flag.Int("samples", 32, "samples per waveform for a custom recording")
		seed       = flag.Int64("seed", 1, "random seed for the generated recording")
		debug      = flag.Bool("debug", false, "write a debug log to spikescope.log")
	)
	flag.Parse()

	logFile := ""
	if *debug {
		logFile = "spikescope.log"
	}
	cleanup, err := logging.Setup(logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	preset, ok := resolvePreset(*presetName, *channels, *clusters, *spikes, *samples)
	if !ok {
		picker := ui.NewPicker()
		p := tea.NewProgram(picker, tea.WithAltScreen())
		finalModel, err := p.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		pm, ok := finalModel.(ui.PickerModel)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unexpected model type from picker\n")
			os.Exit(1)
		}
		result := pm.Result()
		if result.Cancelled {
			os.Exit(0)
		}
		preset = result.Preset
	}

	raw := mockdata.Generate(preset, *seed)

	canvas := ui.NewCanvas()
	view := waveview.New(canvas)
	if err := view.SetData(raw); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log.Printf("loaded %s: %d channels, %d clusters, %d spikes",
		preset.Name, preset.Channels, preset.Clusters, preset.Spikes)

	model := ui.New(view, canvas, preset.Name)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// resolvePreset maps the command line to a recording preset. It reports
// false when neither a preset name nor custom dimensions were given, in
// which case the picker runs instead.
func resolvePreset(name string, channels, clusters, spikes, samples int) (mockdata.Preset, bool) {
	if name != "" {
		p, ok := mockdata.Find(name)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown preset %q\n", name)
			os.Exit(1)
		}
		return p, true
	}
	if channels > 0 {
		return mockdata.Preset{
			Name:     "custom",
			Desc:     fmt.Sprintf("%d channels, %d clusters, %d spikes", channels, clusters, spikes),
			Channels: channels,
			Clusters: clusters,
			Spikes:   spikes,
			Samples:  samples,
			Geometry: mockdata.Staggered,
		}, true
	}
	return mockdata.Preset{}, false
}
