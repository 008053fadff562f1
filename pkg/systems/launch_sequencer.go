package systems

import (
	"log"
	"math"

	"github.com/gonewx/fireworks/pkg/rng"
	"github.com/gonewx/fireworks/pkg/shell"
)

const (
	// autoLaunchStretch spaces sequences a little wider than they ask for.
	autoLaunchStretch = 1.25

	// barrageCooldown is the minimum simulated time between two barrages.
	barrageCooldown = 15000.0

	finaleLength     = 32
	finaleInterval   = 170.0
	finaleRestDelay  = 6000.0
	fallingLeavesGap = 4600.0

	barrageCount        = 11
	barrageSpecialIndex = 3
	pyramidHalfCount    = 7
)

// pendingLaunch is a shell waiting for its delay to run out.
type pendingLaunch struct {
	at     float64
	shell  *shell.Shell
	x      float64
	height float64
}

// LaunchSequencer schedules automatic launches and pointer launches.
//
// Time only advances through Update, so pausing the show also pauses the
// sequencer and every delayed launch.
type LaunchSequencer struct {
	Sim *shell.Simulation

	StageWidth  float64
	StageHeight float64

	// ShellType is a catalog name; "Random" mixes every type.
	ShellType string
	// ShellSize is the base size the sequences vary around.
	ShellSize  float64
	AutoLaunch bool
	// Finale fires fast shells back to back in long volleys.
	Finale bool

	clock          float64
	autoLaunchTime float64
	firstSequence  bool
	finaleCount    int
	lastBarrage    float64
	pending        []pendingLaunch
}

// NewLaunchSequencer creates a sequencer for a stage of the given size with
// auto launch enabled.
func NewLaunchSequencer(sim *shell.Simulation, stageWidth, stageHeight float64) *LaunchSequencer {
	return &LaunchSequencer{
		Sim:           sim,
		StageWidth:    stageWidth,
		StageHeight:   stageHeight,
		ShellType:     shell.TypeRandom,
		ShellSize:     3,
		AutoLaunch:    true,
		firstSequence: true,
	}
}

// Update advances the sequencer clock by timeStep ms, launching due shells
// and starting a new sequence when the previous one has played out.
func (ls *LaunchSequencer) Update(timeStep float64) {
	ls.clock += timeStep

	if len(ls.pending) > 0 {
		waiting := ls.pending[:0]
		due := make([]pendingLaunch, 0, len(ls.pending))
		for _, p := range ls.pending {
			if p.at <= ls.clock {
				due = append(due, p)
			} else {
				waiting = append(waiting, p)
			}
		}
		for i := len(waiting); i < len(ls.pending); i++ {
			ls.pending[i] = pendingLaunch{}
		}
		ls.pending = waiting
		for _, p := range due {
			ls.launch(p.shell, p.x, p.height)
		}
	}

	if !ls.AutoLaunch {
		return
	}
	ls.autoLaunchTime -= timeStep
	if ls.autoLaunchTime <= 0 {
		ls.autoLaunchTime = ls.startSequence() * autoLaunchStretch
	}
}

// Pending reports how many delayed launches are queued.
func (ls *LaunchSequencer) Pending() int { return len(ls.pending) }

// Reset drops queued launches and restarts the sequence schedule.
func (ls *LaunchSequencer) Reset() {
	clear(ls.pending)
	ls.pending = ls.pending[:0]
	ls.autoLaunchTime = 0
	ls.finaleCount = 0
	ls.firstSequence = true
	ls.lastBarrage = ls.clock
}

// LaunchAtPointer launches the configured shell toward a point on the stage.
func (ls *LaunchSequencer) LaunchAtPointer(px, py float64) (*shell.Shell, error) {
	s := ls.Sim.NewShell(ls.factory()(ls.Sim.Random(), ls.ShellSize))
	if err := s.Launch(px/ls.StageWidth, 1-py/ls.StageHeight, ls.StageWidth, ls.StageHeight); err != nil {
		return nil, err
	}
	return s, nil
}

// LaunchRandom launches the configured shell at a random spot.
func (ls *LaunchSequencer) LaunchRandom() (*shell.Shell, error) {
	r := ls.Sim.Random()
	s := ls.Sim.NewShell(ls.factory()(r, ls.ShellSize))
	if err := s.Launch(shell.RandomPositionH(r), shell.RandomPositionV(r), ls.StageWidth, ls.StageHeight); err != nil {
		return nil, err
	}
	return s, nil
}

// launch fires s and logs a rejected shell. Sequences drop rejected shells
// and keep their timing.
func (ls *LaunchSequencer) launch(s *shell.Shell, x, height float64) error {
	if err := s.Launch(x, height, ls.StageWidth, ls.StageHeight); err != nil {
		log.Printf("[LaunchSequencer] Warning: shell %s not launched: %v", s.ID, err)
		return err
	}
	return nil
}

func (ls *LaunchSequencer) schedule(delay float64, s *shell.Shell, x, height float64) {
	ls.pending = append(ls.pending, pendingLaunch{at: ls.clock + delay, shell: s, x: x, height: height})
}

// factory resolves the configured shell type, falling back to Random.
func (ls *LaunchSequencer) factory() shell.Factory {
	f, err := shell.ByName(ls.ShellType)
	if err != nil {
		log.Printf("[LaunchSequencer] Warning: %v, using %s", err, shell.TypeRandom)
		return shell.Random
	}
	return f
}

func (ls *LaunchSequencer) fastFactory() shell.Factory {
	f, err := shell.RandomFast(ls.Sim.Random(), ls.ShellType)
	if err != nil {
		log.Printf("[LaunchSequencer] Warning: %v, using %s", err, shell.TypeRandom)
		f, _ = shell.RandomFast(ls.Sim.Random(), shell.TypeRandom)
	}
	return f
}

// startSequence launches the next sequence and returns its length in ms.
func (ls *LaunchSequencer) startSequence() float64 {
	r := ls.Sim.Random()

	if ls.firstSequence {
		ls.firstSequence = false
		s := ls.Sim.NewShell(shell.Crysanthemum(r, ls.ShellSize))
		ls.launch(s, 0.5, 0.5)
		return 2400
	}

	if ls.Finale {
		ls.seqRandomFastShell()
		if ls.finaleCount < finaleLength {
			ls.finaleCount++
			return finaleInterval
		}
		ls.finaleCount = 0
		return finaleRestDelay
	}

	roll := r.Float64()
	switch {
	case roll < 0.08 && ls.clock-ls.lastBarrage > barrageCooldown:
		return ls.seqSmallBarrage()
	case roll < 0.1:
		return ls.seqPyramid()
	case roll < 0.6:
		return ls.seqRandomShell()
	case roll < 0.8:
		return ls.seqTwoRandom()
	default:
		return ls.seqTriple()
	}
}

func sequenceDelay(r rng.Source, starLife float64, fallingLeaves bool) float64 {
	extra := starLife
	if fallingLeaves {
		extra = fallingLeavesGap
	}
	return 900 + r.Float64()*600 + extra
}

func (ls *LaunchSequencer) seqRandomShell() float64 {
	r := ls.Sim.Random()
	p := shell.RandomShellSize(r, ls.ShellSize)
	s := ls.Sim.NewShell(ls.factory()(r, p.Size))
	ls.launch(s, p.X, p.Height)
	return sequenceDelay(r, s.StarLife, s.FallingLeaves)
}

func (ls *LaunchSequencer) seqRandomFastShell() float64 {
	r := ls.Sim.Random()
	p := shell.RandomShellSize(r, ls.ShellSize)
	s := ls.Sim.NewShell(ls.fastFactory()(r, p.Size))
	ls.launch(s, p.X, p.Height)
	return sequenceDelay(r, s.StarLife, s.FallingLeaves)
}

func (ls *LaunchSequencer) seqTwoRandom() float64 {
	r := ls.Sim.Random()
	p1 := shell.RandomShellSize(r, ls.ShellSize)
	p2 := shell.RandomShellSize(r, ls.ShellSize)
	f := ls.factory()
	s1 := ls.Sim.NewShell(f(r, p1.Size))
	s2 := ls.Sim.NewShell(f(r, p2.Size))
	leftOffset := r.Float64()*0.2 - 0.1
	rightOffset := r.Float64()*0.2 - 0.1

	ls.launch(s1, 0.3+leftOffset, p1.Height)
	ls.schedule(100, s2, 0.7+rightOffset, p2.Height)

	return sequenceDelay(r, math.Max(s1.StarLife, s2.StarLife), s1.FallingLeaves || s2.FallingLeaves)
}

func (ls *LaunchSequencer) seqTriple() float64 {
	r := ls.Sim.Random()
	f := ls.fastFactory()
	baseSize := ls.ShellSize
	smallSize := math.Max(0, baseSize-1.25)

	offset := r.Float64()*0.08 - 0.04
	ls.launch(ls.Sim.NewShell(f(r, baseSize)), 0.5+offset, 0.7)

	ls.schedule(1000+r.Float64()*400, ls.Sim.NewShell(f(r, smallSize)), 0.2, 0.1)
	ls.schedule(1000+r.Float64()*400, ls.Sim.NewShell(f(r, smallSize)), 0.8, 0.1)
	return 4000
}

// barrageShells picks the main and special shell types of a barrage. An
// explicit shell type overrides both.
func (ls *LaunchSequencer) barrageShells(special shell.Factory) (shell.Factory, shell.Factory) {
	if ls.ShellType != shell.TypeRandom {
		f := ls.factory()
		return f, f
	}
	main := shell.Factory(shell.Crysanthemum)
	if ls.Sim.Random().Float64() >= 0.78 {
		main = shell.Ring
	}
	return main, special
}

func (ls *LaunchSequencer) seqSmallBarrage() float64 {
	ls.lastBarrage = ls.clock
	r := ls.Sim.Random()
	size := math.Max(0, ls.ShellSize-2)
	main, special := ls.barrageShells(ls.fastFactory())

	launchShell := func(delay, x float64, useSpecial bool) {
		f := main
		if useSpecial {
			f = special
		}
		height := (math.Cos(x*5*math.Pi+math.Pi/2) + 1) / 2
		s := ls.Sim.NewShell(f(r, size))
		if delay <= 0 {
			ls.launch(s, x, height*0.75)
			return
		}
		ls.schedule(delay, s, x, height*0.75)
	}

	count, delay := 0, 0.0
	for count < barrageCount {
		if count == 0 {
			launchShell(0, 0.5, false)
			count++
		} else {
			offset := float64(count+1) / barrageCount / 2
			delayOffset := r.Float64()*30 + 30
			useSpecial := count == barrageSpecialIndex
			launchShell(delay, 0.5+offset, useSpecial)
			launchShell(delay+delayOffset, 0.5-offset, useSpecial)
			count += 2
		}
		delay += 200
	}
	return 3400 + barrageCount*250
}

func (ls *LaunchSequencer) seqPyramid() float64 {
	r := ls.Sim.Random()
	largeSize := ls.ShellSize
	smallSize := math.Max(0, largeSize-3)
	main, special := ls.barrageShells(shell.Random)

	launchShell := func(delay, x float64, useSpecial bool) {
		f, size := main, smallSize
		height := x / 0.5
		if x > 0.5 {
			height = (1 - x) / 0.5
		}
		height *= 0.42
		if useSpecial {
			f, size, height = special, largeSize, 0.75
		}
		s := ls.Sim.NewShell(f(r, size))
		if delay <= 0 {
			ls.launch(s, x, height)
			return
		}
		ls.schedule(delay, s, x, height)
	}

	delay := 0.0
	for count := 0; count <= pyramidHalfCount; count++ {
		if count == pyramidHalfCount {
			launchShell(delay, 0.5, true)
		} else {
			offset := float64(count) / pyramidHalfCount * 0.5
			delayOffset := r.Float64()*30 + 30
			launchShell(delay, offset, false)
			launchShell(delay+delayOffset, 1-offset, false)
		}
		delay += 200
	}
	return 3400 + pyramidHalfCount*250
}
