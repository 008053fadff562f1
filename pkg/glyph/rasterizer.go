// Package glyph rasterizes words into dot lattices for word bursts.
//
// Text is drawn on the CPU with golang.org/x/image/font so lattices can be
// built before the game loop starts and inside tests, where GPU images
// cannot be read back.
package glyph

import (
	"fmt"
	"image"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gonewx/fireworks/pkg/shell"
)

// Built-in families, always available.
const (
	FamilyGoBold    = "Go Bold"
	FamilyGoRegular = "Go Regular"
)

// padding surrounds the text on every side of the lattice canvas.
const padding = 10

type faceKey struct {
	family string
	size   float64
}

// Rasterizer implements shell.GlyphRasterizer. It is not safe for
// concurrent use.
type Rasterizer struct {
	fonts map[string]*opentype.Font
	faces map[faceKey]font.Face
}

var _ shell.GlyphRasterizer = (*Rasterizer)(nil)

// NewRasterizer returns a rasterizer with the Go fonts registered.
func NewRasterizer() (*Rasterizer, error) {
	r := &Rasterizer{
		fonts: make(map[string]*opentype.Font),
		faces: make(map[faceKey]font.Face),
	}
	if err := r.Register(FamilyGoBold, gobold.TTF); err != nil {
		return nil, err
	}
	if err := r.Register(FamilyGoRegular, goregular.TTF); err != nil {
		return nil, err
	}
	return r, nil
}

// Register parses TrueType or OpenType data under a family name,
// replacing any font already registered under it.
func (r *Rasterizer) Register(family string, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("glyph: parse font %q: %w", family, err)
	}
	r.fonts[family] = f
	for k, face := range r.faces {
		if k.family == family {
			face.Close()
			delete(r.faces, k)
		}
	}
	return nil
}

// resolve picks the registered family, falling back on weight.
func (r *Rasterizer) resolve(weight, family string) (string, *opentype.Font) {
	if f, ok := r.fonts[family]; ok {
		return family, f
	}
	if strings.EqualFold(weight, "bold") {
		return FamilyGoBold, r.fonts[FamilyGoBold]
	}
	return FamilyGoRegular, r.fonts[FamilyGoRegular]
}

func (r *Rasterizer) face(weight, family string, size float64) (font.Face, error) {
	family, f := r.resolve(weight, family)
	key := faceKey{family, size}
	if face, ok := r.faces[key]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("glyph: face %q %.0fpx: %w", family, size, err)
	}
	r.faces[key] = face
	return face, nil
}

// Rasterize draws text on a canvas padded by 10px and returns every
// density-th pixel in both axes that has any coverage.
func (r *Rasterizer) Rasterize(text string, density int, fontWeight, fontFamily string, fontSizePx float64) (shell.Lattice, error) {
	if density < 1 {
		density = 1
	}
	if fontSizePx <= 0 {
		return shell.Lattice{}, fmt.Errorf("glyph: font size %.1f must be positive", fontSizePx)
	}
	face, err := r.face(fontWeight, fontFamily, fontSizePx)
	if err != nil {
		return shell.Lattice{}, err
	}

	d := &font.Drawer{Face: face, Src: image.White}
	width := int(math.Ceil(float64(d.MeasureString(text))/64)) + 2*padding
	height := int(math.Ceil(fontSizePx)) + 2*padding

	canvas := image.NewAlpha(image.Rect(0, 0, width, height))
	d.Dst = canvas
	d.Dot = fixed.P(padding, int(fontSizePx)+padding)
	d.DrawString(text)

	var points []shell.Point
	for y := 0; y < height; y += density {
		for x := 0; x < width; x += density {
			if canvas.AlphaAt(x, y).A > 0 {
				points = append(points, shell.Point{X: float64(x), Y: float64(y)})
			}
		}
	}
	return shell.Lattice{
		Width:  float64(width),
		Height: float64(height),
		Points: points,
	}, nil
}

// Close releases every cached face.
func (r *Rasterizer) Close() error {
	for k, face := range r.faces {
		face.Close()
		delete(r.faces, k)
	}
	return nil
}
