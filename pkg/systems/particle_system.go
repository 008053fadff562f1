package systems

import (
	"math"

	"github.com/gonewx/fireworks/internal/particle"
	"github.com/gonewx/fireworks/pkg/rng"
	"github.com/gonewx/fireworks/pkg/shell"
)

const (
	// Gravity is added to every particle's vertical speed per simulated second.
	Gravity = 0.9

	// MaxFrameTime caps one step so a stalled tab or debugger pause does not
	// fling particles off screen.
	MaxFrameTime = 68.0

	// FrameTime60 is the nominal frame duration used to derive lag.
	FrameTime60 = 1000.0 / 60
)

// ParticleSystem advances every star and spark of a Simulation.
//
// Each frame it integrates velocity, applies air drag and gravity, burns
// down lifetimes, emits trailing sparks, swaps stars to their second color
// and toggles strobing stars. Dead stars are returned to the store, which
// fires their death effects (crossette, floral, comet bursts and so on).
type ParticleSystem struct {
	Sim *shell.Simulation

	// SimSpeed scales simulated time; 1 is real time, 0 freezes the show.
	SimSpeed float64

	recolors []recolor
}

type recolor struct {
	star  *particle.Star
	color particle.Color
}

// NewParticleSystem creates a frame driver for sim running at real time.
func NewParticleSystem(sim *shell.Simulation) *ParticleSystem {
	return &ParticleSystem{
		Sim:      sim,
		SimSpeed: 1,
	}
}

// ClampFrameTime limits a measured frame duration to [0, MaxFrameTime] ms.
func ClampFrameTime(ms float64) float64 {
	return math.Max(0, math.Min(ms, MaxFrameTime))
}

// Lag converts a frame duration to a multiple of a 60 Hz frame.
func Lag(frameTimeMs float64) float64 {
	return frameTimeMs / FrameTime60
}

// Step advances the simulation by a measured frame duration in ms.
func (ps *ParticleSystem) Step(frameTimeMs float64) {
	ft := ClampFrameTime(frameTimeMs)
	ps.Update(ft, Lag(ft))
}

// Update advances the simulation by frameTime ms. lag is the same duration
// expressed in 60 Hz frames and scales per-frame velocities and drag.
func (ps *ParticleSystem) Update(frameTime, lag float64) {
	timeStep := frameTime * ps.SimSpeed
	speed := ps.SimSpeed * lag
	if timeStep <= 0 && speed <= 0 {
		return
	}

	starDrag := 1 - (1-particle.StarAirDrag)*speed
	starDragHeavy := 1 - (1-particle.StarAirDragHeavy)*speed
	sparkDrag := 1 - (1-particle.SparkAirDrag)*speed
	gAcc := timeStep / 1000 * Gravity

	stars := ps.Sim.Stars
	sparks := ps.Sim.Sparks

	for _, c := range particle.Buckets {
		// Death effects append to buckets and returns swap-remove the current
		// index, so walk backward and re-fetch the slice every step.
		for i := len(stars.Active(c)) - 1; i >= 0; i-- {
			bucket := stars.Active(c)
			if i >= len(bucket) {
				continue
			}
			star := bucket[i]

			star.Life -= timeStep
			if star.Life <= 0 {
				stars.ReturnInstance(star)
				continue
			}
			ps.updateStar(star, timeStep, speed, starDrag, starDragHeavy, gAcc)
		}

		for i := len(sparks.Active(c)) - 1; i >= 0; i-- {
			bucket := sparks.Active(c)
			if i >= len(bucket) {
				continue
			}
			spark := bucket[i]

			spark.Life -= timeStep
			if spark.Life <= 0 {
				sparks.ReturnInstance(spark)
				continue
			}
			spark.PrevX, spark.PrevY = spark.X, spark.Y
			spark.X += spark.SpeedX * speed
			spark.Y += spark.SpeedY * speed
			spark.SpeedX *= sparkDrag
			spark.SpeedY *= sparkDrag
			spark.SpeedY += gAcc
		}
	}

	// Rebucketing mid-walk would visit a star twice when its new color comes
	// later in Buckets.
	for i, rc := range ps.recolors {
		if rc.star.Active() {
			stars.Recolor(rc.star, rc.color)
		}
		ps.recolors[i] = recolor{}
	}
	ps.recolors = ps.recolors[:0]
}

func (ps *ParticleSystem) updateStar(star *particle.Star, timeStep, speed, drag, dragHeavy, gAcc float64) {
	burnRate := math.Sqrt(star.Life / star.FullLife)
	burnRateInverse := 1 - burnRate

	star.PrevX, star.PrevY = star.X, star.Y
	star.X += star.SpeedX * speed
	star.Y += star.SpeedY * speed
	if star.Heavy {
		star.SpeedX *= dragHeavy
		star.SpeedY *= dragHeavy
	} else {
		star.SpeedX *= drag
		star.SpeedY *= drag
	}
	star.SpeedY += gAcc

	if star.SpinRadius != 0 {
		star.SpinAngle += star.SpinSpeed * speed
		star.X += math.Sin(star.SpinAngle) * star.SpinRadius * speed
		star.Y += math.Cos(star.SpinAngle) * star.SpinRadius * speed
	}

	if star.SparkFreq > 0 {
		r := ps.Sim.Random()
		star.SparkTimer -= timeStep
		for star.SparkTimer < 0 {
			star.SparkTimer += star.SparkFreq*0.75 + star.SparkFreq*burnRateInverse*4
			ps.Sim.Sparks.Add(
				star.X,
				star.Y,
				star.SparkColor,
				rng.Angle(r),
				r.Float64()*star.SparkSpeed*burnRate,
				star.SparkLife*0.8+r.Float64()*star.SparkLifeVariation*star.SparkLife,
			)
		}
	}

	if star.Life < star.TransitionTime {
		if star.SecondColor != particle.NoColor && !star.ColorChanged {
			star.ColorChanged = true
			ps.recolors = append(ps.recolors, recolor{star: star, color: star.SecondColor})
			if star.SecondColor == particle.Invisible {
				star.SparkFreq = 0
			}
		}
		if star.Strobe {
			star.Visible = int(math.Floor(star.Life/star.StrobeFreq))%3 == 0
		}
	}
}

// Clear drops every particle without firing death effects.
func (ps *ParticleSystem) Clear() {
	ps.recolors = ps.recolors[:0]
	ps.Sim.Reset()
}
