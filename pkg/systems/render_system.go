package systems

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/gonewx/fireworks/internal/particle"
	"github.com/gonewx/fireworks/pkg/shell"
	"github.com/gonewx/fireworks/pkg/utils"
)

// SkyLighting controls how strongly live stars tint the background.
type SkyLighting int

const (
	SkyLightingNone SkyLighting = iota
	SkyLightingDim
	SkyLightingNormal
)

const (
	starDrawWidth    = 3
	skySaturationMax = 15.0
	skyStarCountMax  = 500.0
	skyColorChange   = 10.0

	trailFade             = 0.175
	trailFadeLongExposure = 0.0025
)

// flashStops approximates the burst flash gradient with nested discs,
// outermost first: radius fraction and color.
var flashStops = []struct {
	radius float64
	color  colorful.Color
	alpha  float64
}{
	{1, colorful.Color{R: 1, G: 120.0 / 255, B: 20.0 / 255}, 0.04},
	{0.32, colorful.Color{R: 1, G: 140.0 / 255, B: 20.0 / 255}, 0.11},
	{0.125, colorful.Color{R: 1, G: 160.0 / 255, B: 20.0 / 255}, 0.2},
	{0.024, colorful.Color{R: 1, G: 1, B: 1}, 1},
}

// RenderSystem draws a Simulation in the style of a long exposure.
//
// Star and spark segments are stroked onto a persistent trails image that
// fades toward black every frame, so moving particles leave streaks. Burst
// flashes are painted into the same image and then consumed. The screen
// gets the sky color, the trails and a bright head on every visible star.
type RenderSystem struct {
	Sim *shell.Simulation

	SkyLighting  SkyLighting
	LongExposure bool

	width, height int
	trails        *ebiten.Image
	sky           colorful.Color
}

// NewRenderSystem creates a renderer for a stage of the given size.
func NewRenderSystem(sim *shell.Simulation, width, height int) *RenderSystem {
	rs := &RenderSystem{
		Sim:         sim,
		SkyLighting: SkyLightingNormal,
	}
	rs.Resize(width, height)
	return rs
}

// Resize reallocates the trails image, discarding existing trails.
func (rs *RenderSystem) Resize(width, height int) {
	if width <= 0 || height <= 0 || (width == rs.width && height == rs.height) {
		return
	}
	if rs.trails != nil {
		rs.trails.Deallocate()
	}
	rs.width, rs.height = width, height
	rs.trails = ebiten.NewImage(width, height)
}

// Sky returns the current background color.
func (rs *RenderSystem) Sky() colorful.Color { return rs.sky }

// Update eases the sky toward the color of the live stars. speed is the
// frame's lag multiplied by the simulation speed.
func (rs *RenderSystem) Update(speed float64) {
	target := SkyTarget(rs.Sim.Stars, rs.SkyLighting)
	rs.sky = colorful.Color{
		R: utils.Approach(rs.sky.R, target.R, skyColorChange, speed),
		G: utils.Approach(rs.sky.G, target.G, skyColorChange, speed),
		B: utils.Approach(rs.sky.B, target.B, skyColorChange, speed),
	}
}

// SkyTarget averages the colors of the live stars into a dim sky tint whose
// brightness grows with the star count.
func SkyTarget(stars *particle.StarStore, level SkyLighting) colorful.Color {
	if level <= SkyLightingNone {
		return colorful.Color{}
	}
	maxSaturation := float64(level) * skySaturationMax

	var r, g, b, total float64
	for _, c := range particle.Palette {
		count := float64(len(stars.Active(c)))
		if count == 0 {
			continue
		}
		col, ok := utils.ParticleColor(c)
		if !ok {
			continue
		}
		cr, cg, cb := col.RGB255()
		r += float64(cr) * count
		g += float64(cg) * count
		b += float64(cb) * count
		total += count
	}

	intensity := math.Pow(math.Min(1, total/skyStarCountMax), 0.3)
	maxComponent := math.Max(1, math.Max(r, math.Max(g, b)))
	scale := maxSaturation * intensity / maxComponent / 255
	return colorful.Color{R: r * scale, G: g * scale, B: b * scale}
}

// Draw renders one frame. speed scales the trail fade like the physics step.
func (rs *RenderSystem) Draw(screen *ebiten.Image, speed float64) {
	fade := trailFade * speed
	if rs.LongExposure {
		fade = trailFadeLongExposure
	}
	vector.DrawFilledRect(rs.trails, 0, 0, float32(rs.width), float32(rs.height),
		color.RGBA{A: uint8(utils.Clamp01(fade) * 255)}, false)

	rs.Sim.Flashes.Drain(func(f *particle.Flash) {
		drawFlash(rs.trails, f)
	})

	antialias := rs.Sim.Quality() > shell.QualityLow
	for _, c := range particle.Palette {
		clr := utils.ParticleRGBA(c, 1)
		for _, star := range rs.Sim.Stars.Active(c) {
			if !star.Visible {
				continue
			}
			vector.StrokeLine(rs.trails, float32(star.X), float32(star.Y), float32(star.PrevX), float32(star.PrevY),
				starDrawWidth, clr, antialias)
		}
		for _, spark := range rs.Sim.Sparks.Active(c) {
			vector.StrokeLine(rs.trails, float32(spark.X), float32(spark.Y), float32(spark.PrevX), float32(spark.PrevY),
				particle.SparkDrawWidth, clr, false)
		}
	}

	screen.Fill(utils.RGBA(rs.sky, 1))
	op := &ebiten.DrawImageOptions{Blend: ebiten.BlendLighter}
	screen.DrawImage(rs.trails, op)

	for _, c := range particle.Palette {
		for _, star := range rs.Sim.Stars.Active(c) {
			if !star.Visible {
				continue
			}
			vector.StrokeLine(screen, float32(star.X), float32(star.Y),
				float32(star.X-star.SpeedX*1.6), float32(star.Y-star.SpeedY*1.6), 1, color.White, antialias)
		}
	}
}

// Clear wipes the trails image.
func (rs *RenderSystem) Clear() {
	rs.trails.Clear()
}

func drawFlash(dst *ebiten.Image, f *particle.Flash) {
	for _, stop := range flashStops {
		radius := f.Radius * stop.radius
		if radius <= 0 {
			continue
		}
		clr := utils.RGBA(stop.color, stop.alpha)
		vector.DrawFilledCircle(dst, float32(f.X), float32(f.Y), float32(radius), clr, true)
	}
}
