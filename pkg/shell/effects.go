package shell

import (
	"math"

	"github.com/gonewx/fireworks/internal/particle"
	"github.com/gonewx/fireworks/pkg/burst"
)

// crossetteEffect splits a star into four same-colored stars at a random quarter turn.
func (s *Simulation) crossetteEffect(star *particle.Star) {
	startAngle := s.rng.Float64() * math.Pi / 2
	burst.ParticleArc(s.rng, startAngle, burst.FullCircle, 4, 0.5, func(angle float64) {
		s.Stars.Add(star.X, star.Y, star.Color, angle, s.rng.Float64()*0.6+0.75, 600)
	})
}

// floralEffect throws a small burst that keeps the parent star's momentum.
func (s *Simulation) floralEffect(star *particle.Star) {
	count := 12 + 6*float64(s.quality)
	burst.FullBurst(s.rng, count, func(angle, speedMult float64) {
		s.Stars.AddOffset(star.X, star.Y, star.Color, angle, speedMult*2.4,
			1000+s.rng.Float64()*300, star.SpeedX, star.SpeedY, particle.DefaultStarSize)
	})
	s.Flashes.Add(star.X, star.Y, 46)
	s.sound.PlaySound(SoundBurstSmall, 1)
}

// fallingLeavesEffect throws slow invisible stars that shed gold sparks.
func (s *Simulation) fallingLeavesEffect(star *particle.Star) {
	burst.FullBurst(s.rng, 7, func(angle, speedMult float64) {
		leaf := s.Stars.AddOffset(star.X, star.Y, particle.Invisible, angle, speedMult*2.4,
			2400+s.rng.Float64()*600, star.SpeedX, star.SpeedY, particle.DefaultStarSize)
		leaf.SparkColor = particle.Gold
		leaf.SparkFreq = 144 / float64(s.quality)
		leaf.SparkSpeed = 0.28
		leaf.SparkLife = 750
		leaf.SparkLifeVariation = 3.2
	})
	s.Flashes.Add(star.X, star.Y, 46)
	s.sound.PlaySound(SoundBurstSmall, 1)
}

// crackleEffect scatters 32 short gold sparks.
func (s *Simulation) crackleEffect(star *particle.Star) {
	burst.ParticleArc(s.rng, 0, burst.FullCircle, 32, 1.8, func(angle float64) {
		s.Sparks.Add(star.X, star.Y, particle.Gold, angle,
			math.Pow(s.rng.Float64(), 0.45)*2.4, 300+s.rng.Float64()*200)
	})
}
