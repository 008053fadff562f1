package shell

//go:generate go tool mockgen -destination=./mocks/collaborators_mock.go -package=mocks . SoundPlayer,GlyphRasterizer

// Sound names understood by every SoundPlayer.
const (
	SoundLift         = "lift"
	SoundBurst        = "burst"
	SoundBurstSmall   = "burstSmall"
	SoundCrackle      = "crackle"
	SoundCrackleSmall = "crackleSmall"
)

// SoundPlayer triggers a named one-shot sound. scale in (0, 1] shrinks the
// volume and raises the pitch of smaller events. Playback must not block.
type SoundPlayer interface {
	PlaySound(name string, scale float64)
}

// NopSound discards every sound.
type NopSound struct{}

func (NopSound) PlaySound(string, float64) {}

// Point is one lit dot of a rasterized word.
type Point struct {
	X, Y float64
}

// Lattice is a word rendered into dots, in pixels from its top-left corner.
type Lattice struct {
	Width, Height float64
	Points        []Point
}

// GlyphRasterizer turns text into a dot lattice. density is the spacing
// between sampled pixels.
type GlyphRasterizer interface {
	Rasterize(text string, density int, fontWeight, fontFamily string, fontSizePx float64) (Lattice, error)
}
