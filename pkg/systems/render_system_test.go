package systems

import (
	"math"
	"testing"

	"github.com/gonewx/fireworks/internal/particle"
	"github.com/gonewx/fireworks/pkg/rng"
)

func TestSkyTarget(t *testing.T) {
	stars := particle.NewStarStore(rng.NewSeeded(1))

	if c := SkyTarget(stars, SkyLightingNormal); c.R != 0 || c.G != 0 || c.B != 0 {
		t.Errorf("empty sky = %+v, want black", c)
	}

	for i := 0; i < 500; i++ {
		stars.Add(0, 0, particle.Gold, 0, 0, 1000)
	}
	// invisible stars never tint the sky
	for i := 0; i < 500; i++ {
		stars.Add(0, 0, particle.Invisible, 0, 0, 1000)
	}

	c := SkyTarget(stars, SkyLightingNormal)
	if math.Abs(c.R*255-30) > 1e-9 {
		t.Errorf("gold sky red = %v/255, want 30", c.R*255)
	}
	if want := 191.0 / 255 * 30; math.Abs(c.G*255-want) > 1e-9 {
		t.Errorf("gold sky green = %v/255, want %v", c.G*255, want)
	}

	dim := SkyTarget(stars, SkyLightingDim)
	if math.Abs(dim.R*255-15) > 1e-9 {
		t.Errorf("dim sky red = %v/255, want 15", dim.R*255)
	}
	if none := SkyTarget(stars, SkyLightingNone); none.R != 0 {
		t.Errorf("sky lighting off but red = %v", none.R)
	}
}

func TestSkyTargetIntensityGrowsWithStars(t *testing.T) {
	stars := particle.NewStarStore(rng.NewSeeded(2))
	prev := 0.0
	for _, n := range []int{1, 10, 100, 400, 800} {
		for stars.Len() < n {
			stars.Add(0, 0, particle.Blue, 0, 0, 1000)
		}
		c := SkyTarget(stars, SkyLightingNormal)
		if c.B < prev {
			t.Errorf("%d stars: blue %v dropped below %v", n, c.B, prev)
		}
		prev = c.B
	}
	if math.Abs(prev*255-30) > 1e-9 {
		t.Errorf("saturated blue = %v/255, want 30", prev*255)
	}
}

func TestRenderSystem_SkyEases(t *testing.T) {
	ps := newTestSystem(3)
	for i := 0; i < 500; i++ {
		ps.Sim.Stars.Add(0, 0, particle.White, 0, 0, 1000)
	}
	rs := &RenderSystem{Sim: ps.Sim, SkyLighting: SkyLightingNormal}

	rs.Update(1)
	if got, want := rs.Sky().R*255, 3.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("sky after one frame = %v/255, want %v", got, want)
	}
	for i := 0; i < 200; i++ {
		rs.Update(1)
	}
	if got := rs.Sky().R * 255; math.Abs(got-30) > 0.01 {
		t.Errorf("sky did not settle: %v/255", got)
	}
}
