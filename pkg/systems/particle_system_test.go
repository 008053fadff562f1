package systems

import (
	"math"
	"testing"

	"github.com/gonewx/fireworks/internal/particle"
	"github.com/gonewx/fireworks/pkg/rng"
	"github.com/gonewx/fireworks/pkg/shell"
)

func newTestSystem(seed uint64) *ParticleSystem {
	sim := shell.NewSimulation(shell.WithRandom(rng.NewSeeded(seed)), shell.WithWordChance(0))
	return NewParticleSystem(sim)
}

// countingBurster records where comet deaths asked for a burst.
type countingBurster struct {
	calls int
	x, y  float64
}

func (b *countingBurster) BurstAt(x, y float64) error {
	b.calls++
	b.x, b.y = x, y
	return nil
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestClampFrameTime(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-5, 0},
		{0, 0},
		{16, 16},
		{68, 68},
		{250, 68},
	}
	for _, tt := range tests {
		if got := ClampFrameTime(tt.in); got != tt.want {
			t.Errorf("ClampFrameTime(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if got := Lag(FrameTime60); !almostEqual(got, 1) {
		t.Errorf("Lag(FrameTime60) = %v, want 1", got)
	}
}

// TestParticleSystem_StarDiesAndFiresEffect tests that a star whose life runs
// out is pooled and its death effect runs once.
func TestParticleSystem_StarDiesAndFiresEffect(t *testing.T) {
	ps := newTestSystem(1)
	b := &countingBurster{}

	star := ps.Sim.Stars.Add(100, 200, particle.Gold, 0, 0, 20)
	star.Death = particle.DeathEffect{Kind: particle.EffectShellBurst, Shell: b}

	ps.Update(10, Lag(10))
	if !star.Active() || b.calls != 0 {
		t.Fatalf("star died early: active=%v calls=%d", star.Active(), b.calls)
	}

	ps.Update(10, Lag(10))
	if star.Active() {
		t.Fatal("star should be pooled once life reaches zero")
	}
	if b.calls != 1 {
		t.Errorf("burst calls = %d, want 1", b.calls)
	}
	if ps.Sim.Stars.PoolLen() != 1 {
		t.Errorf("PoolLen = %d, want 1", ps.Sim.Stars.PoolLen())
	}

	ps.Update(10, Lag(10))
	if b.calls != 1 {
		t.Errorf("burst fired again after death: %d", b.calls)
	}
}

// TestParticleSystem_DragAndGravity checks one 60 Hz step against hand-computed values.
func TestParticleSystem_DragAndGravity(t *testing.T) {
	ps := newTestSystem(2)

	light := ps.Sim.Stars.Add(0, 0, particle.Red, math.Pi/2, 2, 1000)
	heavy := ps.Sim.Stars.Add(0, 0, particle.Blue, math.Pi/2, 2, 1000)
	heavy.Heavy = true

	ps.Update(FrameTime60, 1)

	gAcc := FrameTime60 / 1000 * Gravity
	if !almostEqual(light.X, 2) || !almostEqual(light.PrevX, 0) {
		t.Errorf("light X = %v (prev %v), want 2 (prev 0)", light.X, light.PrevX)
	}
	if !almostEqual(light.SpeedX, 2*particle.StarAirDrag) {
		t.Errorf("light SpeedX = %v, want %v", light.SpeedX, 2*particle.StarAirDrag)
	}
	if !almostEqual(heavy.SpeedX, 2*particle.StarAirDragHeavy) {
		t.Errorf("heavy SpeedX = %v, want %v", heavy.SpeedX, 2*particle.StarAirDragHeavy)
	}
	wantY := math.Cos(math.Pi/2)*2*particle.StarAirDrag + gAcc
	if !almostEqual(light.SpeedY, wantY) {
		t.Errorf("light SpeedY = %v, want %v", light.SpeedY, wantY)
	}
}

func TestParticleSystem_SpinOffsetsPosition(t *testing.T) {
	ps := newTestSystem(3)
	star := ps.Sim.Stars.Add(0, 0, particle.White, 0, 0, 1000)
	star.SpinRadius = 0.5
	star.SpinAngle = 0
	star.SpinSpeed = math.Pi / 2

	ps.Update(FrameTime60, 1)

	if !almostEqual(star.SpinAngle, math.Pi/2) {
		t.Errorf("SpinAngle = %v, want π/2", star.SpinAngle)
	}
	if !almostEqual(star.X, 0.5) || !almostEqual(star.Y, 0) {
		t.Errorf("position = (%v, %v), want (0.5, 0)", star.X, star.Y)
	}
}

// TestParticleSystem_ColorTransition checks that a star moves to its second
// color bucket exactly once and that turning invisible stops its sparks.
func TestParticleSystem_ColorTransition(t *testing.T) {
	ps := newTestSystem(4)
	star := ps.Sim.Stars.Add(0, 0, particle.Red, 0, 0, 1000)
	star.SecondColor = particle.Invisible
	star.TransitionTime = 500
	star.SparkFreq = 1e6
	star.SparkTimer = 1e6

	ps.Update(400, Lag(400))
	if star.Color != particle.Red || star.ColorChanged {
		t.Fatalf("star changed color before transition time: %v", star.Color)
	}

	ps.Update(200, Lag(200))
	if star.Color != particle.Invisible || !star.ColorChanged {
		t.Fatalf("star color = %v changed=%v, want invisible", star.Color, star.ColorChanged)
	}
	if n := len(ps.Sim.Stars.Active(particle.Red)); n != 0 {
		t.Errorf("red bucket still holds %d stars", n)
	}
	if n := len(ps.Sim.Stars.Active(particle.Invisible)); n != 1 {
		t.Errorf("invisible bucket holds %d stars, want 1", n)
	}
	if star.SparkFreq != 0 {
		t.Errorf("invisible star SparkFreq = %v, want 0", star.SparkFreq)
	}
}

func TestParticleSystem_TransitionVisitsStarOnce(t *testing.T) {
	ps := newTestSystem(5)
	// Red comes before White in bucket order; the star must not be stepped
	// again after switching to white.
	star := ps.Sim.Stars.Add(0, 0, particle.Red, math.Pi/2, 1, 1000)
	star.SecondColor = particle.White
	star.TransitionTime = 2000

	ps.Update(FrameTime60, 1)

	if star.Color != particle.White {
		t.Fatalf("star color = %v, want white", star.Color)
	}
	if !almostEqual(star.X, 1) {
		t.Errorf("X = %v, want 1 after a single step", star.X)
	}
	if !almostEqual(star.Life, 1000-FrameTime60) {
		t.Errorf("Life = %v, want %v", star.Life, 1000-FrameTime60)
	}
}

func TestParticleSystem_Strobe(t *testing.T) {
	// visible when floor(life/freq) % 3 == 0, checked after a 10 ms step
	tests := []struct {
		life    float64
		visible bool
	}{
		{910, true},
		{1000, false},
		{1010, false},
		{1060, true},
	}

	for _, tt := range tests {
		ps := newTestSystem(6)
		star := ps.Sim.Stars.Add(0, 0, particle.White, 0, 0, tt.life)
		star.Strobe = true
		star.StrobeFreq = 50
		star.TransitionTime = 5000

		ps.Update(10, Lag(10))
		if star.Visible != tt.visible {
			t.Errorf("life %v: Visible = %v, want %v", tt.life, star.Visible, tt.visible)
		}
	}
}

func TestParticleSystem_StrobeWaitsForTransition(t *testing.T) {
	ps := newTestSystem(7)
	star := ps.Sim.Stars.Add(0, 0, particle.White, 0, 0, 1000)
	star.Strobe = true
	star.StrobeFreq = 50
	star.TransitionTime = 100

	ps.Update(10, Lag(10))
	if !star.Visible {
		t.Error("strobe star hidden before its transition time")
	}
}

func TestParticleSystem_SparkEmission(t *testing.T) {
	ps := newTestSystem(8)
	star := ps.Sim.Stars.Add(0, 0, particle.Gold, 0, 0, 1000)
	star.SparkFreq = 10
	// red sparks are stepped before the gold stars that emit them
	star.SparkColor = particle.Red
	star.SparkTimer = 0

	ps.Update(FrameTime60, 1)

	sparks := ps.Sim.Sparks.Active(particle.Red)
	if len(sparks) == 0 {
		t.Fatal("no sparks emitted")
	}
	if star.SparkTimer < 0 {
		t.Errorf("SparkTimer = %v, want >= 0 after emission", star.SparkTimer)
	}
	for _, sp := range sparks {
		// life is sparkLife·0.8 + U·variation·sparkLife with the default 750/0.25
		if sp.Life < 600 || sp.Life > 600+0.25*750 {
			t.Errorf("spark life %v out of range", sp.Life)
		}
	}
}

func TestParticleSystem_SparkLifecycle(t *testing.T) {
	ps := newTestSystem(9)
	spark := ps.Sim.Sparks.Add(10, 10, particle.Blue, math.Pi/2, 3, 20)

	ps.Update(FrameTime60, 1)
	if !almostEqual(spark.X, 13) || !almostEqual(spark.PrevX, 10) {
		t.Errorf("spark X = %v (prev %v), want 13 (prev 10)", spark.X, spark.PrevX)
	}
	if !almostEqual(spark.SpeedX, 3*particle.SparkAirDrag) {
		t.Errorf("spark SpeedX = %v, want %v", spark.SpeedX, 3*particle.SparkAirDrag)
	}

	ps.Update(FrameTime60, 1)
	if ps.Sim.Sparks.Len() != 0 || ps.Sim.Sparks.PoolLen() != 1 {
		t.Errorf("spark not pooled: live=%d pooled=%d", ps.Sim.Sparks.Len(), ps.Sim.Sparks.PoolLen())
	}
}

func TestParticleSystem_ZeroSpeedFreezes(t *testing.T) {
	ps := newTestSystem(10)
	ps.SimSpeed = 0
	star := ps.Sim.Stars.Add(5, 5, particle.Pink, 1, 2, 100)

	ps.Update(FrameTime60, 1)
	if star.Life != 100 || star.X != 5 {
		t.Errorf("frozen star moved: life=%v x=%v", star.Life, star.X)
	}
}

// TestParticleSystem_FullShow launches one shell of every type and runs the
// driver until the sky is empty again.
func TestParticleSystem_FullShow(t *testing.T) {
	for _, name := range shell.TypeNames() {
		t.Run(name, func(t *testing.T) {
			ps := newTestSystem(11)
			sim := ps.Sim
			f, err := shell.ByName(name)
			if err != nil {
				t.Fatal(err)
			}
			s := sim.NewShell(f(sim.Random(), 2))
			if err := s.Launch(0.5, 0.5, 1280, 720); err != nil {
				t.Fatal(err)
			}

			flashes := 0
			for frame := 0; frame < 20000; frame++ {
				ps.Step(FrameTime60)
				flashes += sim.Flashes.Len()
				sim.Flashes.Drain(nil)
				if sim.Stars.Len() == 0 && sim.Sparks.Len() == 0 {
					break
				}
			}
			if flashes == 0 {
				t.Error("shell never burst")
			}
			if sim.Stars.Len() != 0 || sim.Sparks.Len() != 0 {
				t.Errorf("particles left: stars=%d sparks=%d", sim.Stars.Len(), sim.Sparks.Len())
			}
		})
	}
}

func TestParticleSystem_Clear(t *testing.T) {
	ps := newTestSystem(12)
	b := &countingBurster{}
	star := ps.Sim.Stars.Add(0, 0, particle.Gold, 0, 0, 1000)
	star.Death = particle.DeathEffect{Kind: particle.EffectShellBurst, Shell: b}
	ps.Sim.Sparks.Add(0, 0, particle.Gold, 0, 0, 1000)
	ps.Sim.Flashes.Add(0, 0, 10)

	ps.Clear()
	if ps.Sim.Stars.Len() != 0 || ps.Sim.Sparks.Len() != 0 || ps.Sim.Flashes.Len() != 0 {
		t.Error("Clear left particles behind")
	}
	if b.calls != 0 {
		t.Error("Clear fired a death effect")
	}
}
