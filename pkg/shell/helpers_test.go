package shell

import (
	"github.com/gonewx/fireworks/internal/particle"
	"github.com/gonewx/fireworks/pkg/rng"
)

// constSource returns the same draw forever.
type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

func newTestSim(r rng.Source, opts ...Option) *Simulation {
	opts = append([]Option{WithRandom(r)}, opts...)
	return NewSimulation(opts...)
}

// snapshot copies a bucket so stars can be returned while iterating.
func snapshot(stars []*particle.Star) []*particle.Star {
	return append([]*particle.Star(nil), stars...)
}

type fakeGlyphs struct {
	calls   int
	lattice Lattice
	err     error
}

func (f *fakeGlyphs) Rasterize(string, int, string, string, float64) (Lattice, error) {
	f.calls++
	return f.lattice, f.err
}
