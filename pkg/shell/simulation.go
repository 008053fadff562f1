// Package shell builds firework shells and bursts them into a Simulation's
// particle stores.
//
// A Simulation owns everything a show mutates: the star and spark stores,
// the flash queue, the random source and the collaborators that play sounds
// and rasterize words. Nothing in this package advances time; a frame driver
// moves particles and returns dead stars through Simulation.Stars, which
// fires their death effects back into HandleDeath.
package shell

import (
	"log"

	"github.com/gonewx/fireworks/internal/particle"
	"github.com/gonewx/fireworks/pkg/rng"
)

// Quality scales spark density: higher quality emits more sparks.
type Quality int

const (
	QualityLow    Quality = 1
	QualityNormal Quality = 2
	QualityHigh   Quality = 3
)

// DefaultWords are drawn for random word bursts.
var DefaultWords = []string{"HAPPY", "NEW YEAR", "2026", "(*^o^*)", "WISH", "JOY", "LUCK"}

const (
	defaultWordChance = 0.05
	defaultWordFont   = "Go Bold"

	defaultWordFontMin = 50.0
	defaultWordFontMax = 80.0
)

// Simulation is the explicit context shared by shells and death effects.
type Simulation struct {
	Stars   *particle.StarStore
	Sparks  *particle.SparkStore
	Flashes *particle.FlashQueue

	// TargetShellSize is the size the viewer is tuned for; bursts of
	// smaller launched shells play quieter.
	TargetShellSize float64

	rng        rng.Source
	sound      SoundPlayer
	glyphs     GlyphRasterizer
	quality    Quality
	words      []string
	wordChance float64
	wordFont   string
	wordSparks bool

	wordFontMin, wordFontMax float64
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithRandom replaces the default random source.
func WithRandom(r rng.Source) Option {
	return func(s *Simulation) { s.rng = r }
}

// WithSound routes sound triggers to p.
func WithSound(p SoundPlayer) Option {
	return func(s *Simulation) {
		if p != nil {
			s.sound = p
		}
	}
}

// WithGlyphs enables word bursts.
func WithGlyphs(g GlyphRasterizer) Option {
	return func(s *Simulation) { s.glyphs = g }
}

// WithQuality sets the particle quality; values outside low..high are ignored.
func WithQuality(q Quality) Option {
	return func(s *Simulation) {
		if q >= QualityLow && q <= QualityHigh {
			s.quality = q
		}
	}
}

// WithWords replaces the random word list.
func WithWords(words []string) Option {
	return func(s *Simulation) {
		if len(words) > 0 {
			s.words = append([]string(nil), words...)
		}
	}
}

// WithWordChance sets the probability that a burst also writes a word.
func WithWordChance(p float64) Option {
	return func(s *Simulation) { s.wordChance = p }
}

// WithWordFont names the font family requested from the rasterizer.
func WithWordFont(family string) Option {
	return func(s *Simulation) {
		if family != "" {
			s.wordFont = family
		}
	}
}

// WithWordFontSize sets the pixel range random words are rasterized at.
func WithWordFontSize(min, max float64) Option {
	return func(s *Simulation) {
		if min > 0 && max >= min {
			s.wordFontMin, s.wordFontMax = min, max
		}
	}
}

// WithWordSparks draws words as drifting sparks instead of strobing stars.
func WithWordSparks(enabled bool) Option {
	return func(s *Simulation) { s.wordSparks = enabled }
}

// NewSimulation creates an empty show.
func NewSimulation(opts ...Option) *Simulation {
	s := &Simulation{
		rng:        rng.Default(),
		sound:      NopSound{},
		quality:    QualityHigh,
		words:      DefaultWords,
		wordChance: defaultWordChance,
		wordFont:   defaultWordFont,

		wordFontMin: defaultWordFontMin,
		wordFontMax: defaultWordFontMax,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Stars = particle.NewStarStore(s.rng)
	s.Sparks = particle.NewSparkStore()
	s.Flashes = particle.NewFlashQueue()
	s.Stars.SetDeathHandler(s)
	return s
}

// Random exposes the simulation's random source to drivers and sequencers.
func (s *Simulation) Random() rng.Source { return s.rng }

// Quality returns the particle quality spark rates are scaled by.
func (s *Simulation) Quality() Quality { return s.quality }

// SetQuality changes spark density for shells created afterwards.
func (s *Simulation) SetQuality(q Quality) {
	if q >= QualityLow && q <= QualityHigh {
		s.quality = q
	}
}

// SetSound swaps the sound player; nil mutes the show.
func (s *Simulation) SetSound(p SoundPlayer) {
	if p == nil {
		p = NopSound{}
	}
	s.sound = p
}

// Reset clears every particle and pending flash without firing death effects.
func (s *Simulation) Reset() {
	s.Stars.Reset()
	s.Sparks.Reset()
	s.Flashes.Drain(nil)
}

// HandleDeath dispatches a dying star's effect.
func (s *Simulation) HandleDeath(star *particle.Star) {
	switch star.Death.Kind {
	case particle.EffectNone:
	case particle.EffectCrossette:
		if star.Death.Latch.First() {
			s.sound.PlaySound(SoundCrackleSmall, 1)
		}
		s.crossetteEffect(star)
	case particle.EffectCrackle:
		if star.Death.Latch.First() {
			s.sound.PlaySound(SoundCrackle, 1)
		}
		s.crackleEffect(star)
	case particle.EffectFloral:
		s.floralEffect(star)
	case particle.EffectFallingLeaves:
		s.fallingLeavesEffect(star)
	case particle.EffectShellBurst:
		if star.Death.Shell == nil {
			return
		}
		if err := star.Death.Shell.BurstAt(star.X, star.Y); err != nil {
			log.Printf("[Simulation] Warning: comet burst failed: %v", err)
		}
	default:
		log.Printf("[Simulation] Warning: unknown death effect %v", star.Death.Kind)
	}
}

func (s *Simulation) randomWord() string {
	if len(s.words) == 0 {
		return ""
	}
	return s.words[rng.Index(s.rng, len(s.words))]
}
