package shell

import (
	"fmt"
	"math"
	"slices"

	"github.com/gonewx/fireworks/internal/particle"
	"github.com/gonewx/fireworks/pkg/rng"
)

// Factory builds the spec of one shell type at the given size.
type Factory func(r rng.Source, size float64) Spec

// Shell type names, as shown to users and written in config files.
const (
	TypeRandom        = "Random"
	TypeCrackle       = "Crackle"
	TypeCrossette     = "Crossette"
	TypeCrysanthemum  = "Crysanthemum"
	TypeFallingLeaves = "Falling Leaves"
	TypeFloral        = "Floral"
	TypeGhost         = "Ghost"
	TypeHorseTail     = "Horse Tail"
	TypePalm          = "Palm"
	TypeRing          = "Ring"
	TypeStrobe        = "Strobe"
	TypeWillow        = "Willow"
)

// typeNames keeps Random first; random picks skip index 0.
var typeNames = []string{
	TypeRandom,
	TypeCrackle,
	TypeCrossette,
	TypeCrysanthemum,
	TypeFallingLeaves,
	TypeFloral,
	TypeGhost,
	TypeHorseTail,
	TypePalm,
	TypeRing,
	TypeStrobe,
	TypeWillow,
}

func lookup(name string) Factory {
	switch name {
	case TypeRandom:
		return Random
	case TypeCrackle:
		return Crackle
	case TypeCrossette:
		return Crossette
	case TypeCrysanthemum:
		return Crysanthemum
	case TypeFallingLeaves:
		return FallingLeaves
	case TypeFloral:
		return Floral
	case TypeGhost:
		return Ghost
	case TypeHorseTail:
		return HorseTail
	case TypePalm:
		return Palm
	case TypeRing:
		return Ring
	case TypeStrobe:
		return Strobe
	case TypeWillow:
		return Willow
	}
	return nil
}

// Slow-building shells that clutter fast sequences.
var fastShellBlacklist = []string{TypeFallingLeaves, TypeFloral, TypeWillow}

// TypeNames lists every shell type, Random first.
func TypeNames() []string {
	return slices.Clone(typeNames)
}

// ByName looks up a factory by type name.
func ByName(name string) (Factory, error) {
	f := lookup(name)
	if f == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownShellType, name)
	}
	return f, nil
}

// RandomName picks a type name other than Random.
func RandomName(r rng.Source) string {
	return typeNames[int(r.Float64()*float64(len(typeNames)-1))+1]
}

// Random builds a shell of a uniformly chosen non-Random type.
func Random(r rng.Source, size float64) Spec {
	return lookup(RandomName(r))(r, size)
}

// RandomFast resolves base to a factory. When base is Random the pick
// excludes the slow-building types.
func RandomFast(r rng.Source, base string) (Factory, error) {
	if base != TypeRandom {
		return ByName(base)
	}
	name := RandomName(r)
	for slices.Contains(fastShellBlacklist, name) {
		name = RandomName(r)
	}
	return lookup(name), nil
}

func Crysanthemum(r rng.Source, size float64) Spec {
	glitter := rng.Chance(r, 0.25)
	singleColor := rng.Chance(r, 0.72)

	var color ColorShape
	if singleColor {
		color = Single(randomColor(r, colorOptions{limitWhite: true}))
	} else {
		first := randomColor(r, colorOptions{})
		color = Dual(first, randomColor(r, colorOptions{notColor: first}))
	}

	pistil := singleColor && rng.Chance(r, 0.42)
	pistilC := particle.NoColor
	if pistil {
		pistilC = pistilColor(color.A)
	}

	secondColor := particle.NoColor
	if singleColor && (rng.Chance(r, 0.2) || color.Is(particle.White)) {
		secondColor = pistilC
		if secondColor == particle.NoColor {
			secondColor = randomColor(r, colorOptions{notColor: color.A, limitWhite: true})
		}
	}

	streamers := !pistil && !color.Is(particle.White) && rng.Chance(r, 0.42)
	density := 1.25
	spec := Spec{
		ShellSize:    size,
		SpreadSize:   300 + size*100,
		StarLife:     900 + size*200,
		Color:        color,
		SecondColor:  secondColor,
		GlitterColor: whiteOrGold(r),
		Pistil:       pistil,
		PistilColor:  pistilC,
		Streamers:    streamers,
	}
	if glitter {
		density = 1.1
		spec.Glitter = GlitterLight
	}
	spec.StarDensity = density
	return spec
}

func Ghost(r rng.Source, size float64) Spec {
	spec := Crysanthemum(r, size)
	spec.StarLife *= 1.5
	spec.Streamers = true
	spec.Color = Single(particle.Invisible)
	spec.SecondColor = randomColor(r, colorOptions{notColor: particle.White})
	spec.Glitter = GlitterNone
	return spec
}

func Strobe(r rng.Source, size float64) Spec {
	color := randomColor(r, colorOptions{limitWhite: true})
	spec := Spec{
		ShellSize:         size,
		SpreadSize:        280 + size*92,
		StarLife:          1100 + size*200,
		StarLifeVariation: 0.4,
		StarDensity:       1.1,
		Color:             Single(color),
		Glitter:           GlitterLight,
		GlitterColor:      particle.White,
		Strobe:            true,
		Pistil:            true,
		PistilColor:       pistilColor(color),
	}
	if rng.Chance(r, 0.5) {
		spec.StrobeColor = particle.White
	}
	return spec
}

func Palm(r rng.Source, size float64) Spec {
	color := randomColor(r, colorOptions{})
	spec := Spec{
		ShellSize:   size,
		SpreadSize:  250 + size*75,
		StarLife:    1800 + size*200,
		StarDensity: 0.4,
		Color:       Single(color),
		Glitter:     GlitterHeavy,
	}
	if rng.Chance(r, 0.5) {
		spec.StarDensity = 0.15
		spec.Glitter = GlitterThick
	}
	return spec
}

func Ring(r rng.Source, size float64) Spec {
	color := randomColor(r, colorOptions{})
	pistil := rng.Chance(r, 0.75)
	spec := Spec{
		ShellSize:    size,
		SpreadSize:   300 + size*100,
		StarLife:     900 + size*200,
		StarCount:    2.2 * 2 * math.Pi * (size + 1),
		Ring:         true,
		Color:        Single(color),
		Pistil:       pistil,
		PistilColor:  pistilColor(color),
		GlitterColor: particle.White,
		Streamers:    rng.Chance(r, 0.3),
	}
	if !pistil {
		spec.Glitter = GlitterLight
	}
	if color == particle.Gold {
		spec.GlitterColor = particle.Gold
	}
	return spec
}

func Crossette(r rng.Source, size float64) Spec {
	color := randomColor(r, colorOptions{limitWhite: true})
	return Spec{
		ShellSize:         size,
		SpreadSize:        300 + size*100,
		StarLife:          750 + size*160,
		StarLifeVariation: 0.4,
		StarDensity:       0.85,
		Color:             Single(color),
		Crossette:         true,
		Pistil:            rng.Chance(r, 0.5),
		PistilColor:       pistilColor(color),
	}
}

func Floral(r rng.Source, size float64) Spec {
	var color ColorShape
	switch {
	case rng.Chance(r, 0.65):
		color = RandomPerStar()
	case rng.Chance(r, 0.15):
		color = Single(randomColor(r, colorOptions{}))
	default:
		first := randomColor(r, colorOptions{})
		color = Dual(first, randomColor(r, colorOptions{notColor: first}))
	}
	return Spec{
		ShellSize:         size,
		SpreadSize:        300 + size*120,
		StarLife:          500 + size*50,
		StarLifeVariation: 0.5,
		StarDensity:       0.12,
		Color:             color,
		Floral:            true,
	}
}

func FallingLeaves(_ rng.Source, size float64) Spec {
	return Spec{
		ShellSize:         size,
		SpreadSize:        300 + size*120,
		StarLife:          500 + size*50,
		StarLifeVariation: 0.5,
		StarDensity:       0.12,
		Color:             Single(particle.Invisible),
		Glitter:           GlitterMedium,
		GlitterColor:      particle.Gold,
		FallingLeaves:     true,
	}
}

func Willow(_ rng.Source, size float64) Spec {
	return Spec{
		ShellSize:    size,
		SpreadSize:   300 + size*100,
		StarLife:     3000 + size*300,
		StarDensity:  0.6,
		Color:        Single(particle.Invisible),
		Glitter:      GlitterWillow,
		GlitterColor: particle.Gold,
	}
}

func Crackle(r rng.Source, size float64) Spec {
	color := particle.Gold
	if !rng.Chance(r, 0.75) {
		color = randomColor(r, colorOptions{})
	}
	return Spec{
		ShellSize:         size,
		SpreadSize:        380 + size*75,
		StarLife:          600 + size*100,
		StarLifeVariation: 0.32,
		StarDensity:       1,
		Color:             Single(color),
		Glitter:           GlitterLight,
		GlitterColor:      particle.Gold,
		Crackle:           true,
		Pistil:            rng.Chance(r, 0.65),
		PistilColor:       pistilColor(color),
	}
}

func HorseTail(r rng.Source, size float64) Spec {
	color := randomColor(r, colorOptions{})
	glitterColor := color
	if rng.Chance(r, 0.5) {
		glitterColor = whiteOrGold(r)
	}
	return Spec{
		ShellSize:    size,
		SpreadSize:   250 + size*38,
		StarLife:     2500 + size*300,
		StarDensity:  0.9,
		Color:        Single(color),
		Glitter:      GlitterMedium,
		GlitterColor: glitterColor,
		Horsetail:    true,
		Strobe:       color == particle.White,
	}
}

// Placement is where and how big an automatically launched shell is.
type Placement struct {
	Size   float64
	X      float64
	Height float64
}

// RandomShellSize shrinks baseSize by a random variance of up to 2.5 sizes.
// Smaller shells launch lower and drift further from the center.
func RandomShellSize(r rng.Source, baseSize float64) Placement {
	maxVariance := math.Min(2.5, baseSize)
	variance := r.Float64() * maxVariance
	size := baseSize - variance

	var height float64
	if maxVariance == 0 {
		height = r.Float64()
	} else {
		height = 1 - variance/maxVariance
	}
	centerOffset := r.Float64() * (1 - height*0.65) * 0.5
	x := 0.5 + centerOffset
	if rng.Chance(r, 0.5) {
		x = 0.5 - centerOffset
	}
	return Placement{
		Size:   size,
		X:      FitPositionH(x),
		Height: FitPositionV(height),
	}
}

// FitPositionH keeps a horizontal launch position off the stage edges.
func FitPositionH(position float64) float64 {
	const edge = 0.18
	return (1-edge*2)*position + edge
}

// FitPositionV keeps bursts below the top quarter of the stage.
func FitPositionV(position float64) float64 {
	return position * 0.75
}

// RandomPositionH draws a horizontal launch position within bounds.
func RandomPositionH(r rng.Source) float64 { return FitPositionH(r.Float64()) }

// RandomPositionV draws a burst height within bounds.
func RandomPositionV(r rng.Source) float64 { return FitPositionV(r.Float64()) }
