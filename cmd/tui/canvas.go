package main

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/gonewx/fireworks/internal/particle"
	"github.com/gonewx/fireworks/pkg/shell"
	"github.com/gonewx/fireworks/pkg/utils"
)

// Each terminal cell stands for a cellWidth x cellHeight block of stage
// pixels, so shells keep their proportions on a 1:2 cell grid.
const (
	cellWidth  = 8.0
	cellHeight = 16.0

	trailFade             = 0.175
	trailFadeLongExposure = 0.0025

	skyColorChange = 10.0
)

// glowRamp maps cell brightness to a rune, dimmest first.
var glowRamp = []rune{' ', '.', ':', '+', '*', '#', '@'}

type glowCell struct {
	color colorful.Color
	level float64
}

// Canvas is a grid of glowing cells that particles are plotted into. Cells
// fade every frame, which leaves the same kind of trails as the desktop
// renderer's translucent clear.
type Canvas struct {
	cols, rows int
	cells      []glowCell
	sky        colorful.Color
}

// NewCanvas creates a cols x rows canvas.
func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{}
	c.Resize(cols, rows)
	return c
}

// Resize discards the glow and adopts the new grid size.
func (c *Canvas) Resize(cols, rows int) {
	c.cols, c.rows = max(cols, 1), max(rows, 1)
	c.cells = make([]glowCell, c.cols*c.rows)
}

// Size returns the grid size in cells.
func (c *Canvas) Size() (int, int) { return c.cols, c.rows }

// StageSize returns the stage the grid covers, in pixels.
func (c *Canvas) StageSize() (float64, float64) {
	return float64(c.cols) * cellWidth, float64(c.rows) * cellHeight
}

// CellAt maps a stage point to a cell. ok is false off the grid.
func (c *Canvas) CellAt(x, y float64) (col, row int, ok bool) {
	col = int(math.Floor(x / cellWidth))
	row = int(math.Floor(y / cellHeight))
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return 0, 0, false
	}
	return col, row, true
}

// CellCenter maps a cell back to the stage point at its center.
func (c *Canvas) CellCenter(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * cellWidth, (float64(row) + 0.5) * cellHeight
}

// Fade dims every cell by amount in [0, 1].
func (c *Canvas) Fade(amount float64) {
	keep := 1 - utils.Clamp01(amount)
	for i := range c.cells {
		c.cells[i].level *= keep
		if c.cells[i].level < 0.02 {
			c.cells[i].level = 0
		}
	}
}

// Clear wipes the glow.
func (c *Canvas) Clear() {
	clear(c.cells)
}

// Plot adds light of the given color at a stage point. Overlapping light
// mixes toward the brighter contribution.
func (c *Canvas) Plot(x, y float64, col colorful.Color, level float64) {
	cx, cy, ok := c.CellAt(x, y)
	if !ok || level <= 0 {
		return
	}
	cell := &c.cells[cy*c.cols+cx]
	total := cell.level + level
	if cell.level == 0 {
		cell.color = col
	} else {
		cell.color = cell.color.BlendRgb(col, level/total)
	}
	cell.level = math.Min(1, total)
}

// Line plots a segment, one sample per cell it crosses.
func (c *Canvas) Line(x0, y0, x1, y1 float64, col colorful.Color, level float64) {
	steps := int(math.Max(math.Abs(x1-x0)/cellWidth, math.Abs(y1-y0)/cellHeight)) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.Plot(x0+(x1-x0)*t, y0+(y1-y0)*t, col, level)
	}
}

// Disc lights every cell within radius of a stage point, brightest at the center.
func (c *Canvas) Disc(x, y, radius float64, col colorful.Color) {
	if radius <= 0 {
		return
	}
	for py := y - radius; py <= y+radius; py += cellHeight {
		for px := x - radius; px <= x+radius; px += cellWidth {
			d := math.Hypot(px-x, py-y)
			if d > radius {
				continue
			}
			c.Plot(px, py, col, 0.6*(1-d/radius))
		}
	}
}

// At returns a cell's color and brightness.
func (c *Canvas) At(col, row int) (colorful.Color, float64) {
	cell := c.cells[row*c.cols+col]
	return cell.color, cell.level
}

// Sky returns the background tint.
func (c *Canvas) Sky() colorful.Color { return c.sky }

// EaseSky moves the background toward target.
func (c *Canvas) EaseSky(target colorful.Color, speed float64) {
	c.sky = colorful.Color{
		R: utils.Approach(c.sky.R, target.R, skyColorChange, speed),
		G: utils.Approach(c.sky.G, target.G, skyColorChange, speed),
		B: utils.Approach(c.sky.B, target.B, skyColorChange, speed),
	}
}

// Glyph picks the rune for a brightness.
func Glyph(level float64) rune {
	i := int(utils.Clamp01(level) * float64(len(glowRamp)-1))
	return glowRamp[i]
}

// DrawSimulation fades the canvas by one frame and plots the live particles
// and queued flashes of sim.
func (c *Canvas) DrawSimulation(sim *shell.Simulation, speed float64, longExposure bool) {
	fade := trailFade * speed
	if longExposure {
		fade = trailFadeLongExposure
	}
	c.Fade(fade)

	white := colorful.Color{R: 1, G: 1, B: 1}
	sim.Flashes.Drain(func(f *particle.Flash) {
		c.Disc(f.X, f.Y, f.Radius, white)
	})

	for _, pc := range particle.Palette {
		col, ok := utils.ParticleColor(pc)
		if !ok {
			continue
		}
		for _, star := range sim.Stars.Active(pc) {
			if !star.Visible {
				continue
			}
			c.Line(star.PrevX, star.PrevY, star.X, star.Y, col, 0.9)
			// Hot white head.
			c.Plot(star.X, star.Y, col.BlendRgb(white, 0.5), 0.4)
		}
		for _, spark := range sim.Sparks.Active(pc) {
			c.Line(spark.PrevX, spark.PrevY, spark.X, spark.Y, col, 0.35)
		}
	}
}
