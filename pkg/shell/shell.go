package shell

import (
	"log"
	"math"

	"github.com/google/uuid"

	"github.com/gonewx/fireworks/internal/particle"
	"github.com/gonewx/fireworks/pkg/burst"
	"github.com/gonewx/fireworks/pkg/rng"
)

// Launch layout, in stage pixels.
const (
	launchHPad             = 60.0
	launchVPad             = 50.0
	launchMinHeightPercent = 0.45
)

// Shell is one firework: a comet rising from the ground and the burst it carries.
type Shell struct {
	Spec

	// ID tags the shell in log lines.
	ID string
	// StarCount is the resolved number of stars in the main burst.
	StarCount float64

	sim   *Simulation
	comet *particle.Star
}

// NewShell resolves a spec's defaults and binds it to the simulation.
func (sim *Simulation) NewShell(spec Spec) *Shell {
	s := &Shell{
		Spec: spec,
		ID:   uuid.NewString(),
		sim:  sim,
	}

	if s.StarLifeVariation == 0 {
		s.StarLifeVariation = 0.125
	}
	if s.Color.Kind == ColorUnset {
		s.Color = Single(randomColor(sim.rng, colorOptions{}))
	}
	if s.GlitterColor == particle.NoColor {
		// 随机色烟花的闪光跟随每颗星自身的颜色
		switch s.Color.Kind {
		case ColorSingle, ColorDual:
			s.GlitterColor = s.Color.A
		}
	}
	if s.StarDensity == 0 {
		s.StarDensity = 1
	}

	if s.Spec.StarCount != 0 {
		s.StarCount = math.Max(6, s.Spec.StarCount)
	} else {
		scaledSize := s.SpreadSize / 54
		s.StarCount = math.Max(6, scaledSize*scaledSize*s.StarDensity)
	}
	return s
}

// Comet returns the star carrying the shell while it rises, or nil.
func (s *Shell) Comet() *particle.Star { return s.comet }

// Launch fires the comet from the bottom of a stageWidth×stageHeight stage.
// position in [0, 1] picks the column inside the side padding; launchHeight
// in [0, 1] picks the burst altitude between the minimum height and the top.
// An invalid color shape is reported before the comet is added.
func (s *Shell) Launch(position, launchHeight, stageWidth, stageHeight float64) error {
	if err := s.Color.validate(); err != nil {
		return err
	}
	sim := s.sim
	minHeight := stageHeight - stageHeight*launchMinHeightPercent
	launchX := position*(stageWidth-launchHPad*2) + launchHPad
	launchY := stageHeight
	burstY := minHeight - launchHeight*(minHeight-launchVPad)

	launchDistance := launchY - burstY
	// 近似抵消重力和阻力后所需的初速度
	launchVelocity := math.Pow(launchDistance*0.04, 0.64)

	cometColor := particle.White
	if s.Color.Kind == ColorSingle {
		cometColor = s.Color.A
	}
	speed, life := launchVelocity, launchVelocity*400
	if s.Horsetail {
		speed, life = launchVelocity*1.2, launchVelocity*100
	}

	comet := sim.Stars.Add(launchX, launchY, cometColor, math.Pi, speed, life)
	comet.Heavy = true
	comet.SpinRadius = rng.Between(sim.rng, 0.32, 0.85)
	comet.SparkFreq = 32 / float64(sim.quality)
	if sim.quality == QualityHigh {
		comet.SparkFreq = 8
	}
	comet.SparkLife = 320
	comet.SparkLifeVariation = 3
	if s.Glitter == GlitterWillow || s.FallingLeaves {
		comet.SparkFreq = 20 / float64(sim.quality)
		comet.SparkSpeed = 0.5
		comet.SparkLife = 500
	}
	if s.Color.Is(particle.Invisible) {
		comet.SparkColor = particle.Gold
	}
	comet.Death = particle.DeathEffect{Kind: particle.EffectShellBurst, Shell: s}
	s.comet = comet

	sim.sound.PlaySound(SoundLift, 1)
	log.Printf("[Shell] %s launched: size=%.2f color=%v x=%.0f burstY=%.0f", s.ID, s.ShellSize, s.Color, launchX, burstY)
	return nil
}

// BurstAt bursts where the comet died, tuned to the simulation's target size.
func (s *Shell) BurstAt(x, y float64) error {
	target := s.sim.TargetShellSize
	if target == 0 {
		target = s.ShellSize
	}
	return s.Burst(x, y, target)
}

type glitterParams struct {
	freq, speed, life, lifeVariation float64
}

func (s *Shell) glitter() (glitterParams, bool) {
	var g glitterParams
	switch s.Glitter {
	case GlitterLight:
		g = glitterParams{400, 0.3, 300, 2}
	case GlitterMedium:
		g = glitterParams{200, 0.44, 700, 2}
	case GlitterHeavy:
		g = glitterParams{80, 0.8, 1400, 2}
	case GlitterThick:
		g = glitterParams{16, 1.5, 1400, 3}
		if s.sim.quality == QualityHigh {
			g.speed = 1.65
		}
	case GlitterStreamer:
		g = glitterParams{32, 1.05, 620, 2}
	case GlitterWillow:
		g = glitterParams{120, 0.34, 1400, 3.8}
	default:
		return g, false
	}
	g.freq /= float64(s.sim.quality)
	return g, true
}

// Burst explodes the shell at (x, y). targetShellSize is the size the
// viewer expects; a launched shell smaller than it plays a quieter burst.
// An invalid color shape is reported before any particle is emitted.
func (s *Shell) Burst(x, y, targetShellSize float64) error {
	if err := s.Color.validate(); err != nil {
		return err
	}
	sim := s.sim
	speed := s.SpreadSize / 96
	glitter, hasGlitter := s.glitter()

	latch := &particle.SoundLatch{}
	death := particle.DeathEffect{Latch: latch}
	if s.Crossette {
		death.Kind = particle.EffectCrossette
	}
	if s.Crackle {
		death.Kind = particle.EffectCrackle
	}
	if s.Floral {
		death.Kind = particle.EffectFloral
	}
	if s.FallingLeaves {
		death.Kind = particle.EffectFallingLeaves
	}

	speedOffX, speedOffY := s.initialSpeedOffset()

	applyGlitter := func(star *particle.Star) {
		if !hasGlitter {
			return
		}
		star.SparkFreq = glitter.freq
		star.SparkSpeed = glitter.speed
		star.SparkLife = glitter.life
		star.SparkLifeVariation = glitter.lifeVariation
		if s.GlitterColor.Valid() {
			star.SparkColor = s.GlitterColor
		}
		star.SparkTimer = sim.rng.Float64() * star.SparkFreq
	}

	starFactory := func(color particle.Color) func(angle, speedMult float64) {
		return func(angle, speedMult float64) {
			c := s.starColor(color)
			star := sim.Stars.AddOffset(x, y, c, angle, speedMult*speed,
				s.StarLife+sim.rng.Float64()*s.StarLife*s.StarLifeVariation,
				speedOffX, speedOffY, particle.DefaultStarSize)

			if s.SecondColor != particle.NoColor {
				star.TransitionTime = s.StarLife * (sim.rng.Float64()*0.05 + 0.32)
				star.SecondColor = s.SecondColor
			}
			if s.Strobe {
				star.TransitionTime = s.StarLife * (sim.rng.Float64()*0.08 + 0.46)
				star.Strobe = true
				star.StrobeFreq = sim.rng.Float64()*20 + 40
				if s.StrobeColor != particle.NoColor {
					star.SecondColor = s.StrobeColor
				}
			}
			star.Death = death
			applyGlitter(star)
		}
	}

	switch {
	case s.Ring && s.Color.Kind != ColorDual:
		s.ringBurst(x, y, speed, applyGlitter)
	case s.Color.Kind == ColorSingle:
		burst.FullBurst(sim.rng, s.StarCount, starFactory(s.Color.A))
	case s.Color.Kind == ColorRandom:
		burst.FullBurst(sim.rng, s.StarCount, starFactory(particle.NoColor))
	case s.Color.Kind == ColorDual:
		if rng.Chance(sim.rng, 0.5) {
			start := sim.rng.Float64() * math.Pi
			burst.Burst(sim.rng, s.StarCount, starFactory(s.Color.A), start, math.Pi)
			burst.Burst(sim.rng, s.StarCount, starFactory(s.Color.B), start+math.Pi, math.Pi)
		} else {
			burst.FullBurst(sim.rng, s.StarCount/2, starFactory(s.Color.A))
			burst.FullBurst(sim.rng, s.StarCount/2, starFactory(s.Color.B))
		}
	}

	if s.WordShell != nil || (!s.DisableWord && rng.Chance(sim.rng, sim.wordChance)) {
		s.wordBurst(x, y)
	}

	if s.Pistil {
		pistilGlitter := particle.White
		if s.PistilColor == particle.Gold {
			pistilGlitter = particle.Gold
		}
		pistil := Spec{
			SpreadSize:        s.SpreadSize * 0.5,
			StarLife:          s.StarLife * 0.6,
			StarLifeVariation: s.StarLifeVariation,
			StarDensity:       1.4,
			Glitter:           GlitterLight,
			GlitterColor:      pistilGlitter,
			DisableWord:       true,
		}
		if s.PistilColor.Valid() {
			pistil.Color = Single(s.PistilColor)
		}
		if err := sim.NewShell(pistil).Burst(x, y, targetShellSize); err != nil {
			return err
		}
	}

	if s.Streamers {
		streamers := Spec{
			SpreadSize:        s.SpreadSize * 0.9,
			StarLife:          s.StarLife * 0.8,
			StarLifeVariation: s.StarLifeVariation,
			StarCount:         math.Floor(math.Max(6, s.SpreadSize/45)),
			Color:             Single(particle.White),
			Glitter:           GlitterStreamer,
			DisableWord:       true,
		}
		if err := sim.NewShell(streamers).Burst(x, y, targetShellSize); err != nil {
			return err
		}
	}

	sim.Flashes.Add(x, y, s.SpreadSize/4)

	if s.comet != nil {
		sim.sound.PlaySound(SoundBurst, burstSoundScale(targetShellSize, s.ShellSize))
	}
	return nil
}

// initialSpeedOffset is the velocity every star inherits: the comet's for
// horsetails, otherwise a slight upward kick.
func (s *Shell) initialSpeedOffset() (float64, float64) {
	if s.Horsetail {
		if s.comet != nil {
			return s.comet.SpeedX, s.comet.SpeedY
		}
		return 0, 0
	}
	return 0, -s.SpreadSize / 1800
}

// starColor resolves the color of one star: a random pick for random
// shells and an even split between the tones of a paired color.
func (s *Shell) starColor(c particle.Color) particle.Color {
	if c == particle.NoColor {
		return randomColor(s.sim.rng, colorOptions{})
	}
	if pair, ok := c.Paired(); ok && !rng.Chance(s.sim.rng, 0.5) {
		return pair
	}
	return c
}

// ringBurst lays stars on a randomly squashed and rotated ellipse. Ring
// stars carry glitter but no death effect or color change. Two-color
// shells never take this path.
func (s *Shell) ringBurst(x, y, speed float64, applyGlitter func(*particle.Star)) {
	sim := s.sim
	ringStartAngle := sim.rng.Float64() * math.Pi
	ringSquash := math.Pow(sim.rng.Float64(), 2)*0.85 + 0.15

	burst.ParticleArc(sim.rng, 0, burst.FullCircle, s.StarCount, 0, func(angle float64) {
		newAngle, newSpeed := ringVelocity(angle, speed, ringSquash, ringStartAngle)
		star := sim.Stars.Add(x, y, s.starColor(s.ringColor()), newAngle, newSpeed,
			s.StarLife+sim.rng.Float64()*s.StarLife*s.StarLifeVariation)
		applyGlitter(star)
	})
}

func (s *Shell) ringColor() particle.Color {
	if s.Color.Kind == ColorSingle {
		return s.Color.A
	}
	return particle.NoColor
}

// ringVelocity squashes the velocity of a star at angle along one axis and
// rotates the result by rotation, returning the new angle and speed.
func ringVelocity(angle, speed, squash, rotation float64) (float64, float64) {
	initSpeedX := math.Sin(angle) * speed * squash
	initSpeedY := math.Cos(angle) * speed
	newSpeed := math.Hypot(initSpeedX, initSpeedY)
	newAngle := pointAngle(0, 0, initSpeedX, initSpeedY) + rotation
	return newAngle, newSpeed
}

// pointAngle is the angle from (x1, y1) to (x2, y2) in the star angle convention.
func pointAngle(x1, y1, x2, y2 float64) float64 {
	return math.Pi/2 + math.Atan2(y2-y1, x2-x1)
}

// burstSoundScale maps how much smaller a shell is than the target (0..2
// sizes) onto a volume scale in [0.7, 1].
func burstSoundScale(target, shellSize float64) float64 {
	diff := math.Max(0, math.Min(2, target-shellSize))
	return (1-diff/2)*0.3 + 0.7
}
