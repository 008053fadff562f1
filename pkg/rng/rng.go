// Package rng provides the uniform random source shared by the shell
// factories, burst geometry and particle stores.
//
// Every draw in the simulation goes through a single Source so a show can be
// replayed deterministically from a seed.
package rng

import (
	"math"
	"math/rand/v2"
)

// Source yields uniform values in [0, 1).
type Source interface {
	Float64() float64
}

// globalRNG draws from the runtime's auto-seeded generator.
type globalRNG struct{}

func (globalRNG) Float64() float64 { return rand.Float64() }

// Default returns the non-deterministic source used by the viewers.
func Default() Source { return globalRNG{} }

// seededRNG is replayable, for tests and recorded shows.
type seededRNG struct{ r *rand.Rand }

// NewSeeded returns a PCG-backed source that replays the same sequence for the same seed.
func NewSeeded(seed uint64) Source {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 { return s.r.Float64() }

// Between draws uniformly from [min, max).
func Between(r Source, min, max float64) float64 {
	return r.Float64()*(max-min) + min
}

// Angle draws a uniform angle in [0, 2π).
func Angle(r Source) float64 {
	return r.Float64() * 2 * math.Pi
}

// Chance reports true with probability p.
func Chance(r Source, p float64) bool {
	return r.Float64() < p
}

// Index draws an index in [0, n). n must be positive.
func Index(r Source, n int) int {
	i := int(r.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
