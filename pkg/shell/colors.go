package shell

import (
	"github.com/gonewx/fireworks/internal/particle"
	"github.com/gonewx/fireworks/pkg/rng"
)

type colorOptions struct {
	// notColor is redrawn until the pick differs from it.
	notColor particle.Color
	// limitWhite redraws white 60% of the time.
	limitWhite bool
}

func randomColorSimple(r rng.Source) particle.Color {
	return particle.Palette[rng.Index(r, len(particle.Palette))]
}

// randomColor draws from the palette.
func randomColor(r rng.Source, opts colorOptions) particle.Color {
	c := randomColorSimple(r)
	if opts.limitWhite && c == particle.White && rng.Chance(r, 0.6) {
		c = randomColorSimple(r)
	}
	if opts.notColor != particle.NoColor {
		for c == opts.notColor {
			c = randomColorSimple(r)
		}
	}
	return c
}

func whiteOrGold(r rng.Source) particle.Color {
	if rng.Chance(r, 0.5) {
		return particle.Gold
	}
	return particle.White
}

// pistilColor is the inner burst color paired with every shell color.
func pistilColor(particle.Color) particle.Color {
	return particle.Yellow
}
