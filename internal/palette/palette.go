// Package palette generates distinguishable cluster colors.
package palette

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Colors returns n cluster colors as RGB triples in [0,1], evenly spaced
// around the HCL hue wheel so neighbors stay distinguishable.
func Colors(n int) [][3]float64 {
	out := make([][3]float64, n)
	for i := range out {
		h := float64(i) * 360 / float64(n)
		c := colorful.Hcl(h, 0.55, 0.72).Clamped()
		out[i] = [3]float64{c.R, c.G, c.B}
	}
	return out
}

// Hex formats an RGB triple as a #rrggbb string for terminal styling.
func Hex(rgb [3]float64) string {
	return fmt.Sprintf("#%02x%02x%02x", channel(rgb[0]), channel(rgb[1]), channel(rgb[2]))
}

func channel(v float64) uint8 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint8(v*255 + 0.5)
}
