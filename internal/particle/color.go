// Package particle holds the pooled particle records of a fireworks show:
// stars, sparks and burst flashes.
//
// Live stars and sparks are grouped into one bucket per color so a renderer
// can batch its draw calls. Dead records go back to a free pool and are
// reinitialized on the next Add instead of being reallocated.
package particle

import "fmt"

// Color is the closed palette a particle can be drawn in.
// NoColor is the zero value and marks an unset optional color; it never
// labels a live particle.
type Color uint8

const (
	NoColor Color = iota
	Red
	Pink
	Blue
	Blue2
	Purple
	Purple2
	Gold
	White
	Yellow
	// Invisible particles are simulated but never drawn.
	Invisible

	colorCount
)

var colorHex = [colorCount]string{
	Red:     "#993122",
	Pink:    "#DE7571",
	Blue:    "#87d2ff",
	Blue2:   "#a4ffed",
	Purple:  "#6e54b5",
	Purple2: "#e4b0f2",
	Gold:    "#ffbf36",
	White:   "#ffffff",
	Yellow:  "#EECA57",
}

var colorNames = [colorCount]string{
	NoColor:   "none",
	Red:       "red",
	Pink:      "pink",
	Blue:      "blue",
	Blue2:     "blue2",
	Purple:    "purple",
	Purple2:   "purple2",
	Gold:      "gold",
	White:     "white",
	Yellow:    "yellow",
	Invisible: "invisible",
}

// Palette lists the colors a random draw may pick.
var Palette = []Color{Red, Pink, Blue, Blue2, Purple, Purple2, Gold, White, Yellow}

// Buckets lists every color that can own live particles, in draw order.
var Buckets = []Color{Red, Pink, Blue, Blue2, Purple, Purple2, Gold, White, Yellow, Invisible}

// Valid reports whether c may label a live particle.
func (c Color) Valid() bool {
	return c > NoColor && c < colorCount
}

// Hex returns the CSS hex code of c, or "" for NoColor and Invisible.
func (c Color) Hex() string {
	if c >= colorCount {
		return ""
	}
	return colorHex[c]
}

func (c Color) String() string {
	if c >= colorCount {
		return fmt.Sprintf("color(%d)", uint8(c))
	}
	return colorNames[c]
}

// ParseColor maps a palette name (as written in config files) to its Color.
func ParseColor(name string) (Color, error) {
	for c := Red; c < colorCount; c++ {
		if colorNames[c] == name {
			return c, nil
		}
	}
	return NoColor, fmt.Errorf("unknown color %q", name)
}

// Paired returns the partner of colors that burst as a two-tone pair
// (Blue/Blue2, Red/Pink, Purple/Purple2).
func (c Color) Paired() (Color, bool) {
	switch c {
	case Blue:
		return Blue2, true
	case Red:
		return Pink, true
	case Purple:
		return Purple2, true
	}
	return c, false
}
