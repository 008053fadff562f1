package shell_test

import (
	"fmt"
	"math"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/gonewx/fireworks/internal/particle"
	"github.com/gonewx/fireworks/pkg/rng"
	"github.com/gonewx/fireworks/pkg/shell"
	"github.com/gonewx/fireworks/pkg/shell/mocks"
)

// approx matches a float64 argument within 1e-9.
type approx float64

func (a approx) Matches(x any) bool {
	f, ok := x.(float64)
	return ok && math.Abs(f-float64(a)) < 1e-9
}

func (a approx) String() string { return fmt.Sprintf("≈ %v", float64(a)) }

func returnAll(sim *shell.Simulation, c particle.Color) int {
	stars := append([]*particle.Star(nil), sim.Stars.Active(c)...)
	for _, s := range stars {
		sim.Stars.ReturnInstance(s)
	}
	return len(stars)
}

// 发射 → 彗星熄灭 → 爆炸，依次播放升空与爆炸音效
func TestLaunchAndBurstSounds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sound := mocks.NewMockSoundPlayer(ctrl)
	gomock.InOrder(
		sound.EXPECT().PlaySound(shell.SoundLift, approx(1)),
		sound.EXPECT().PlaySound(shell.SoundBurst, approx(1)),
	)

	sim := shell.NewSimulation(shell.WithRandom(rng.NewSeeded(9)), shell.WithSound(sound), shell.WithWordChance(0))
	s := sim.NewShell(shell.Spec{ShellSize: 3, SpreadSize: 600, StarLife: 1500, Color: shell.Single(particle.Gold)})
	if err := s.Launch(0.5, 0.5, 1280, 720); err != nil {
		t.Fatal(err)
	}
	sim.Stars.ReturnInstance(s.Comet())

	if sim.Flashes.Len() != 1 || sim.Flashes.Active()[0].Radius != 150 {
		t.Errorf("flashes = %d, want one of radius 150", sim.Flashes.Len())
	}
	if n := len(sim.Stars.Active(particle.Gold)); n == 0 {
		t.Error("no stars after comet burst")
	}
}

func TestSmallerShellPlaysQuieter(t *testing.T) {
	ctrl := gomock.NewController(t)
	sound := mocks.NewMockSoundPlayer(ctrl)
	sound.EXPECT().PlaySound(shell.SoundLift, approx(1))
	sound.EXPECT().PlaySound(shell.SoundBurst, approx(0.7))

	sim := shell.NewSimulation(shell.WithRandom(rng.NewSeeded(9)), shell.WithSound(sound), shell.WithWordChance(0))
	sim.TargetShellSize = 5
	s := sim.NewShell(shell.Spec{ShellSize: 3, SpreadSize: 300, StarLife: 900, Color: shell.Single(particle.White)})
	if err := s.Launch(0.3, 0.2, 1280, 720); err != nil {
		t.Fatal(err)
	}
	sim.Stars.ReturnInstance(s.Comet())
}

func TestStandaloneBurstIsSilent(t *testing.T) {
	ctrl := gomock.NewController(t)
	sound := mocks.NewMockSoundPlayer(ctrl)
	sound.EXPECT().PlaySound(gomock.Any(), gomock.Any()).Times(0)

	sim := shell.NewSimulation(shell.WithRandom(rng.NewSeeded(9)), shell.WithSound(sound), shell.WithWordChance(0))
	s := sim.NewShell(shell.Spec{SpreadSize: 300, StarLife: 900, Color: shell.Single(particle.White)})
	if err := s.Burst(0, 0, 1); err != nil {
		t.Fatal(err)
	}
}

func TestCrackleSoundOncePerBurst(t *testing.T) {
	ctrl := gomock.NewController(t)
	sound := mocks.NewMockSoundPlayer(ctrl)
	sound.EXPECT().PlaySound(shell.SoundCrackle, approx(1)).Times(1)

	sim := shell.NewSimulation(shell.WithRandom(rng.NewSeeded(4)), shell.WithSound(sound), shell.WithWordChance(0))
	s := sim.NewShell(shell.Spec{SpreadSize: 300, StarLife: 900, Color: shell.Single(particle.White), Crackle: true})
	if err := s.Burst(0, 0, 1); err != nil {
		t.Fatal(err)
	}

	died := returnAll(sim, particle.White)
	if died < 2 {
		t.Fatalf("only %d stars to kill", died)
	}
	if got := len(sim.Sparks.Active(particle.Gold)); got != died*32 {
		t.Errorf("crackle sparks = %d, want %d", got, died*32)
	}
	for _, sp := range sim.Sparks.Active(particle.Gold) {
		if sp.Life < 300 || sp.Life > 500 {
			t.Fatalf("crackle spark life = %v, want [300, 500]", sp.Life)
		}
		// 速度为 rand^0.45·2.4，不超过 2.4
		if v := math.Hypot(sp.SpeedX, sp.SpeedY); v > 2.4+1e-9 {
			t.Fatalf("crackle spark speed = %v, want <= 2.4", v)
		}
	}
}

func TestCrossetteSoundAndSplit(t *testing.T) {
	ctrl := gomock.NewController(t)
	sound := mocks.NewMockSoundPlayer(ctrl)
	sound.EXPECT().PlaySound(shell.SoundCrackleSmall, approx(1)).Times(2)

	sim := shell.NewSimulation(shell.WithRandom(rng.NewSeeded(4)), shell.WithSound(sound), shell.WithWordChance(0))
	first := sim.NewShell(shell.Spec{SpreadSize: 300, StarLife: 900, Color: shell.Single(particle.Gold), Crossette: true})
	second := sim.NewShell(shell.Spec{SpreadSize: 300, StarLife: 900, Color: shell.Single(particle.Gold), Crossette: true})
	if err := first.Burst(0, 0, 1); err != nil {
		t.Fatal(err)
	}
	if err := second.Burst(50, 50, 1); err != nil {
		t.Fatal(err)
	}

	died := returnAll(sim, particle.Gold)
	children := sim.Stars.Active(particle.Gold)
	if len(children) != died*4 {
		t.Fatalf("crossette children = %d, want %d", len(children), died*4)
	}
	for _, c := range children {
		if c.Life != 600 || c.Death.Kind != particle.EffectNone {
			t.Fatalf("child life %v effect %v", c.Life, c.Death.Kind)
		}
		if v := math.Hypot(c.SpeedX, c.SpeedY); v < 0.75 || v > 1.35 {
			t.Fatalf("child speed = %v, want [0.75, 1.35]", v)
		}
	}
}

func TestFloralAndFallingLeaves(t *testing.T) {
	ctrl := gomock.NewController(t)
	sound := mocks.NewMockSoundPlayer(ctrl)

	sim := shell.NewSimulation(shell.WithRandom(rng.NewSeeded(4)), shell.WithSound(sound), shell.WithWordChance(0))

	floral := sim.NewShell(shell.Spec{SpreadSize: 200, StarLife: 500, Color: shell.Single(particle.Red), Floral: true})
	if err := floral.Burst(0, 0, 1); err != nil {
		t.Fatal(err)
	}
	parents := append([]*particle.Star(nil), sim.Stars.Active(particle.Red)...)
	parents = append(parents, sim.Stars.Active(particle.Pink)...)
	sound.EXPECT().PlaySound(shell.SoundBurstSmall, approx(1)).Times(len(parents))

	sim.Flashes.Drain(nil)
	parent := parents[0]
	parent.SpeedX, parent.SpeedY = 3, -2
	sim.Stars.ReturnInstance(parent)
	if sim.Flashes.Len() != 1 || sim.Flashes.Active()[0].Radius != 46 {
		t.Errorf("floral flash = %d", sim.Flashes.Len())
	}
	for _, p := range parents[1:] {
		sim.Stars.ReturnInstance(p)
	}

	leavesSound := mocks.NewMockSoundPlayer(ctrl)
	leavesSound.EXPECT().PlaySound(shell.SoundBurstSmall, approx(1)).Times(1)
	sim.SetSound(leavesSound)
	sim.Reset()

	leaves := sim.NewShell(shell.Spec{SpreadSize: 10, StarLife: 500, StarCount: 6, Color: shell.Single(particle.Gold),
		FallingLeaves: true})
	if err := leaves.Burst(0, 0, 1); err != nil {
		t.Fatal(err)
	}
	sim.Stars.ReturnInstance(sim.Stars.Active(particle.Gold)[0])
	for _, leaf := range sim.Stars.Active(particle.Invisible) {
		if leaf.SparkColor != particle.Gold || leaf.SparkFreq != 48 || leaf.SparkSpeed != 0.28 || leaf.SparkLifeVariation != 3.2 {
			t.Fatalf("leaf sparks = %v/%v/%v/%v", leaf.SparkColor, leaf.SparkFreq, leaf.SparkSpeed, leaf.SparkLifeVariation)
		}
		if leaf.Life < 2400 || leaf.Life > 3000 {
			t.Fatalf("leaf life = %v, want [2400, 3000]", leaf.Life)
		}
	}
	if n := len(sim.Stars.Active(particle.Invisible)); n == 0 {
		t.Error("falling leaves produced no leaves")
	}
}
