package shell

import (
	"fmt"

	"github.com/gonewx/fireworks/internal/particle"
)

// ColorKind tags the variant held by a ColorShape.
type ColorKind uint8

const (
	// ColorUnset lets NewShell pick a random single color.
	ColorUnset ColorKind = iota
	ColorSingle
	// ColorRandom draws an independent color for every star.
	ColorRandom
	// ColorDual splits the burst between two colors.
	ColorDual
)

// ColorShape is the color of a shell: one color, random per star, or a pair.
type ColorShape struct {
	Kind ColorKind
	A, B particle.Color
}

// Single is a one-color shell.
func Single(c particle.Color) ColorShape { return ColorShape{Kind: ColorSingle, A: c} }

// RandomPerStar gives every star its own random color.
func RandomPerStar() ColorShape { return ColorShape{Kind: ColorRandom} }

// Dual is a two-color shell.
func Dual(a, b particle.Color) ColorShape { return ColorShape{Kind: ColorDual, A: a, B: b} }

// Is reports whether the shape is the single color c.
func (cs ColorShape) Is(c particle.Color) bool {
	return cs.Kind == ColorSingle && cs.A == c
}

func (cs ColorShape) validate() error {
	switch cs.Kind {
	case ColorSingle:
		if !cs.A.Valid() {
			return &ConfigError{Field: "color", Value: cs.A.String(), Err: ErrInvalidColor}
		}
	case ColorRandom:
	case ColorDual:
		if !cs.A.Valid() || !cs.B.Valid() {
			return &ConfigError{Field: "color", Value: fmt.Sprintf("[%v %v]", cs.A, cs.B), Err: ErrInvalidColor}
		}
	default:
		return &ConfigError{Field: "color", Value: fmt.Sprintf("kind %d", cs.Kind), Err: ErrInvalidColor}
	}
	return nil
}

func (cs ColorShape) String() string {
	switch cs.Kind {
	case ColorUnset:
		return "unset"
	case ColorSingle:
		return cs.A.String()
	case ColorRandom:
		return "random"
	case ColorDual:
		return cs.A.String() + "+" + cs.B.String()
	}
	return fmt.Sprintf("kind(%d)", cs.Kind)
}

// Glitter selects the spark trail a star sheds while it burns.
type Glitter uint8

const (
	GlitterNone Glitter = iota
	GlitterLight
	GlitterMedium
	GlitterHeavy
	GlitterThick
	GlitterStreamer
	GlitterWillow
)

func (g Glitter) String() string {
	switch g {
	case GlitterNone:
		return "none"
	case GlitterLight:
		return "light"
	case GlitterMedium:
		return "medium"
	case GlitterHeavy:
		return "heavy"
	case GlitterThick:
		return "thick"
	case GlitterStreamer:
		return "streamer"
	case GlitterWillow:
		return "willow"
	}
	return "unknown"
}

// WordShell forces a word burst with the given text.
type WordShell struct {
	Text     string
	FontSize float64
}

// Spec is the declarative description of one firework shell, produced by
// the catalog factories. Zero values mean "unset"; NewShell fills defaults.
type Spec struct {
	ShellSize         float64
	SpreadSize        float64
	StarLife          float64
	StarLifeVariation float64
	StarDensity       float64
	// StarCount overrides the count derived from SpreadSize and StarDensity.
	StarCount float64

	Color        ColorShape
	SecondColor  particle.Color
	Glitter      Glitter
	GlitterColor particle.Color

	Pistil      bool
	PistilColor particle.Color
	Streamers   bool

	Ring          bool
	Crossette     bool
	Floral        bool
	FallingLeaves bool
	Crackle       bool
	Horsetail     bool

	Strobe      bool
	StrobeColor particle.Color

	DisableWord bool
	WordShell   *WordShell
}
