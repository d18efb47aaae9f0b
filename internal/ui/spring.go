package ui

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// springValue smooths a scale adjustment toward its target so repeated
// keypresses feel continuous instead of stepped.
type springValue struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	target float64
}

func newSpringValue(frequency, damping float64) springValue {
	return springValue{spring: harmonica.NewSpring(harmonica.FPS(animFPS), frequency, damping)}
}

// step advances the spring one frame and returns the position delta.
func (s *springValue) step() float64 {
	p, v := s.spring.Update(s.pos, s.vel, s.target)
	d := p - s.pos
	s.pos, s.vel = p, v
	return d
}

func (s *springValue) settled() bool {
	return math.Abs(s.target-s.pos) < 1e-4 && math.Abs(s.vel) < 1e-4
}
