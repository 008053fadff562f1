package shell

import (
	"log"
	"math"

	"github.com/gonewx/fireworks/internal/particle"
	"github.com/gonewx/fireworks/pkg/rng"
)

const wordLatticeDensity = 3

// wordBurst writes a word in dots centered on (x, y). A missing rasterizer
// or an empty lattice skips the word; the main burst is unaffected.
func (s *Shell) wordBurst(x, y float64) {
	sim := s.sim
	if sim.glyphs == nil {
		return
	}

	text := ""
	fontSize := 0.0
	if s.WordShell != nil {
		text, fontSize = s.WordShell.Text, s.WordShell.FontSize
	} else {
		text = sim.randomWord()
	}
	if text == "" {
		return
	}
	if fontSize <= 0 {
		fontSize = math.Floor(sim.rng.Float64()*(sim.wordFontMax-sim.wordFontMin) + sim.wordFontMin)
	}

	lattice, err := sim.glyphs.Rasterize(text, wordLatticeDensity, "bold", sim.wordFont, fontSize)
	if err != nil {
		log.Printf("[Shell] %s word burst %q skipped: %v", s.ID, text, err)
		return
	}
	if len(lattice.Points) == 0 {
		return
	}

	color := s.GlitterColor
	if !color.Valid() {
		color = randomColor(sim.rng, colorOptions{})
	}

	for _, p := range lattice.Points {
		s.wordDot(x+(p.X-lattice.Width/2), y+(p.Y-lattice.Height/2), color)
	}
}

// wordDot emits the particles of one lattice point.
func (s *Shell) wordDot(x, y float64, color particle.Color) {
	sim := s.sim
	life := s.StarLife + sim.rng.Float64()*s.StarLife*s.StarLifeVariation

	if !sim.wordSparks {
		speedOffX, speedOffY := s.initialSpeedOffset()
		star := sim.Stars.AddOffset(x, y, color, rng.Angle(sim.rng), 0.02, life+20,
			speedOffX, speedOffY, 2)
		star.TransitionTime = s.StarLife * (sim.rng.Float64()*0.08 + 0.46)
		star.Strobe = true
		star.StrobeFreq = sim.rng.Float64()*20 + 40
		star.SecondColor = color
	} else {
		sim.Sparks.Add(x, y, color, rng.Angle(sim.rng), math.Pow(sim.rng.Float64(), 0.15)*1.4, life+1000)
	}

	sim.Sparks.Add(x+5, y+10, color, rng.Angle(sim.rng), math.Pow(sim.rng.Float64(), 0.05)*0.4, life+2000)
}
