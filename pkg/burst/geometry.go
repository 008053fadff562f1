// Package burst generates the angular distributions used to place stars
// around a burst point.
package burst

import (
	"math"

	"github.com/gonewx/fireworks/pkg/rng"
)

// FullCircle is the arc length of a complete burst.
const FullCircle = 2 * math.Pi

// ParticleArc calls factory with evenly spaced angles along an arc starting
// at start and spanning arcLength radians (negative runs clockwise).
//
// count may be fractional: the number of calls is the number of steps of
// arcLength/count that fit strictly before the last half step, which is
// exactly count when count is an integer. Each angle is jittered forward by
// up to randomness steps.
func ParticleArc(r rng.Source, start, arcLength, count, randomness float64, factory func(angle float64)) {
	if count <= 0 || arcLength == 0 {
		return
	}
	delta := arcLength / count
	end := start + arcLength - delta*0.5
	dir := 1.0
	if arcLength < 0 {
		dir = -1
	}

	for i := 0; ; i++ {
		angle := start + float64(i)*delta
		if (end-angle)*dir <= 0 {
			return
		}
		factory(angle + r.Float64()*delta*randomness)
	}
}

// Burst fills a sphere projected onto the screen with roughly count stars.
//
// The sphere is sliced into rings from its equator to its pole; each ring
// holds a share of stars proportional to its circumference, and speedMult
// (the ring's cosine) makes inner rings travel slower, which reads as depth.
// startAngle and arcLength limit every ring to a partial arc.
func Burst(r rng.Source, count float64, factory func(angle, speedMult float64), startAngle, arcLength float64) {
	if count <= 0 {
		return
	}
	radius := 0.5 * math.Sqrt(count/math.Pi)
	circumference := 2 * math.Pi * radius
	halfCircumference := circumference / 2

	for i := 0.0; i <= halfCircumference; i++ {
		ringAngle := i / halfCircumference * math.Pi / 2
		ringSize := math.Cos(ringAngle)
		partsPerFullRing := circumference * ringSize
		partsPerArc := partsPerFullRing * (arcLength / FullCircle)

		angleInc := FullCircle / partsPerFullRing
		angleOffset := r.Float64()*angleInc + startAngle
		// 抖动不超过三分之一间隔，避免与相邻星重叠
		maxRandomAngleOffset := angleInc * 0.33

		for j := 0.0; j < partsPerArc; j++ {
			randomAngleOffset := r.Float64() * maxRandomAngleOffset
			factory(angleInc*j+angleOffset+randomAngleOffset, ringSize)
		}
	}
}

// FullBurst is Burst over the whole circle.
func FullBurst(r rng.Source, count float64, factory func(angle, speedMult float64)) {
	Burst(r, count, factory, 0, FullCircle)
}
