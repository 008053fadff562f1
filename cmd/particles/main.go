// Package main provides a shell gallery for testing and tuning individual
// firework types without the launch sequencer.
//
// Usage:
//
//	go run ./cmd/particles [flags]
//
// Flags:
//
//	--type <name>    Start with a shell type (e.g., --type=Crackle)
//	--size <n>       Shell size 0..4 (default 3)
//	--seed <n>       Replay bursts from a seed
//	--auto-play      Burst the current type at a random spot every 2 seconds
//	--comet          Launch with a comet instead of bursting in place
//
// Controls:
//
//	Mouse Click       - Burst the current type at the cursor
//	Left/Right Arrow  - Switch to previous/next type
//	- / =             - Decrease/increase size by 0.5
//	Space             - Burst at screen center
//	P                 - Toggle pause
//	R                 - Clear all particles
//	Q/Escape          - Quit
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gonewx/fireworks/pkg/glyph"
	"github.com/gonewx/fireworks/pkg/rng"
	"github.com/gonewx/fireworks/pkg/shell"
	"github.com/gonewx/fireworks/pkg/systems"
)

const (
	screenWidth  = 1024
	screenHeight = 768

	autoPlayInterval = 2000.0 // ms of simulated time
)

var (
	typeFlag     = flag.String("type", shell.TypeCrysanthemum, "Initial shell type")
	sizeFlag     = flag.Float64("size", 3, "Shell size 0..4")
	seedFlag     = flag.Uint64("seed", 0, "Random seed (0 = random)")
	autoPlayFlag = flag.Bool("auto-play", false, "Burst every 2 seconds")
	cometFlag    = flag.Bool("comet", false, "Launch with a comet")
	verboseFlag  = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

var errQuit = errors.New("quit")

// ShellGalleryGame implements ebiten.Game for the shell gallery
type ShellGalleryGame struct {
	sim            *shell.Simulation
	particleSystem *systems.ParticleSystem
	renderSystem   *systems.RenderSystem

	typeNames    []string
	currentIndex int
	size         float64

	autoPlay  bool
	autoTimer float64
	comet     bool
	paused    bool

	statusMessage string
}

// NewShellGalleryGame creates a new gallery instance
func NewShellGalleryGame() (*ShellGalleryGame, error) {
	var source rng.Source = rng.Default()
	if *seedFlag != 0 {
		source = rng.NewSeeded(*seedFlag)
	}
	glyphs, err := glyph.NewRasterizer()
	if err != nil {
		return nil, fmt.Errorf("failed to load fonts: %w", err)
	}

	sim := shell.NewSimulation(shell.WithRandom(source), shell.WithGlyphs(glyphs))
	sim.TargetShellSize = *sizeFlag

	names := shell.TypeNames()
	startIndex := -1
	for i, name := range names {
		if strings.EqualFold(name, *typeFlag) {
			startIndex = i
			break
		}
	}
	if startIndex < 0 {
		return nil, fmt.Errorf("unknown shell type %q (available: %s)", *typeFlag, strings.Join(names, ", "))
	}

	g := &ShellGalleryGame{
		sim:            sim,
		particleSystem: systems.NewParticleSystem(sim),
		renderSystem:   systems.NewRenderSystem(sim, screenWidth, screenHeight),
		typeNames:      names,
		currentIndex:   startIndex,
		size:           math.Max(0, math.Min(4, *sizeFlag)),
		autoPlay:       *autoPlayFlag,
		comet:          *cometFlag,
	}
	g.updateStatusMessage()
	log.Printf("Shell gallery initialized: %d types, starting with %s", len(names), names[startIndex])

	// 启动时在屏幕中心爆炸一次，避免空白屏幕
	g.spawn(screenWidth/2, screenHeight/2)
	return g, nil
}

// spawn bursts (or launches) the current type at a screen position
func (g *ShellGalleryGame) spawn(x, y float64) {
	factory, err := shell.ByName(g.typeNames[g.currentIndex])
	if err != nil {
		log.Printf("Warning: %v", err)
		return
	}
	s := g.sim.NewShell(factory(g.sim.Random(), g.size))
	if g.comet {
		if err := s.Launch(x/screenWidth, 1-y/screenHeight, screenWidth, screenHeight); err != nil {
			log.Printf("Warning: launch failed: %v", err)
		}
		return
	}
	if err := s.BurstAt(x, y); err != nil {
		log.Printf("Warning: burst failed: %v", err)
	}
}

func (g *ShellGalleryGame) selectType(delta int) {
	n := len(g.typeNames)
	g.currentIndex = (g.currentIndex + delta + n) % n
	g.updateStatusMessage()
}

func (g *ShellGalleryGame) updateStatusMessage() {
	mode := "burst"
	if g.comet {
		mode = "comet"
	}
	g.statusMessage = fmt.Sprintf("[%d/%d] %s  size %.1f  %s",
		g.currentIndex+1, len(g.typeNames), g.typeNames[g.currentIndex], g.size, mode)
}

// Update handles input and advances the simulation
func (g *ShellGalleryGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return errQuit
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.particleSystem.Clear()
		g.renderSystem.Clear()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		g.selectType(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		g.selectType(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		g.size = math.Min(4, g.size+0.5)
		g.updateStatusMessage()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		g.size = math.Max(0, g.size-0.5)
		g.updateStatusMessage()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.spawn(screenWidth/2, screenHeight/2)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.spawn(float64(x), float64(y))
	}

	if g.paused {
		return nil
	}
	if g.autoPlay {
		g.autoTimer += systems.FrameTime60
		if g.autoTimer >= autoPlayInterval {
			g.autoTimer = 0
			r := g.sim.Random()
			g.spawn(shell.RandomPositionH(r)*screenWidth, (1-shell.RandomPositionV(r))*screenHeight)
		}
	}
	g.particleSystem.Step(systems.FrameTime60)
	g.renderSystem.Update(1)
	return nil
}

// Draw renders the particles and the debug overlay
func (g *ShellGalleryGame) Draw(screen *ebiten.Image) {
	speed := 1.0
	if g.paused {
		speed = 0
	}
	g.renderSystem.Draw(screen, speed)

	sky := g.renderSystem.Sky()
	r, gr, b := sky.RGB255()
	ebitenutil.DebugPrintAt(screen, g.statusMessage, 10, 10)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("stars %d  sparks %d  sky #%02x%02x%02x  %.0f fps",
		g.sim.Stars.Len(), g.sim.Sparks.Len(), r, gr, b, ebiten.ActualFPS()), 10, 26)
	if g.paused {
		ebitenutil.DebugPrintAt(screen, "PAUSED", 10, 42)
	}
	ebitenutil.DebugPrintAt(screen, "click/space: burst  <-/->: type  -/=: size  P: pause  R: clear  Q: quit",
		10, screenHeight-20)
}

// Layout returns the logical screen size
func (g *ShellGalleryGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	game, err := NewShellGalleryGame()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start gallery: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Shell Gallery")
	ebiten.SetScreenClearedEveryFrame(true)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, errQuit) {
		log.Fatal(err)
	}
}
