// Package main runs the firework show in a terminal.
//
// The same simulation, particle system and launch sequencer as the desktop
// viewer drive the show; particles are drawn as colored runes and sounds are
// synthesized on the fly.
//
// Usage:
//
//	go run ./cmd/tui [flags]
//
// Controls:
//
//	Mouse Click       - Launch a shell toward the cursor
//	Left/Right Arrow  - Previous/next shell type
//	- / =             - Decrease/increase shell size
//	A                 - Toggle auto launch
//	F                 - Toggle finale mode
//	L                 - Toggle long exposure
//	S                 - Toggle sound
//	C                 - Clear the sky
//	P/Space           - Pause
//	Q/Escape          - Quit
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"math"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/glyph"
	"github.com/gonewx/fireworks/pkg/rng"
	"github.com/gonewx/fireworks/pkg/shell"
	"github.com/gonewx/fireworks/pkg/systems"
)

const defaultConfigPath = "data/show.yaml"

var (
	configFlag  = flag.String("config", defaultConfigPath, "Show config file")
	seedFlag    = flag.Uint64("seed", 0, "Random seed (0 = random)")
	muteFlag    = flag.Bool("mute", false, "Start without sound")
	logFlag     = flag.String("log", "", "Write log output to this file")
	frameRate   = flag.Int("fps", 60, "Frames per second")
	qualityFlag = flag.String("quality", "", "Override quality: low / normal / high")
)

// Viewer owns the terminal and the show running in it.
type Viewer struct {
	screen tcell.Screen
	canvas *Canvas

	sim       *shell.Simulation
	particles *systems.ParticleSystem
	sequencer *systems.LaunchSequencer
	synth     *Synth

	typeNames    []string
	skyLighting  systems.SkyLighting
	longExposure bool
	paused       bool

	lastButtons tcell.ButtonMask
}

// NewViewer initializes the screen and builds the show.
func NewViewer(show *config.ShowConfig) (*Viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.HideCursor()

	var source rng.Source = rng.Default()
	if *seedFlag != 0 {
		source = rng.NewSeeded(*seedFlag)
	}

	synth := NewSynth(show.Sounds, source)
	if !*muteFlag {
		// Non-fatal, the show runs without sound.
		if err := synth.Init(); err != nil {
			log.Printf("[TUI] Audio initialization failed: %v", err)
		}
	}

	glyphs, err := glyph.NewRasterizer()
	if err != nil {
		screen.Fini()
		return nil, fmt.Errorf("failed to load fonts: %w", err)
	}

	opts := append(show.SimulationOptions(),
		shell.WithRandom(source),
		shell.WithGlyphs(glyphs),
		shell.WithSound(synth),
	)
	sim := shell.NewSimulation(opts...)
	sim.TargetShellSize = show.ShellSize

	cols, rows := screen.Size()
	canvas := NewCanvas(cols, rows)
	stageW, stageH := canvas.StageSize()

	sequencer := systems.NewLaunchSequencer(sim, stageW, stageH)
	sequencer.ShellType = show.ShellType
	sequencer.ShellSize = show.ShellSize
	sequencer.AutoLaunch = show.AutoLaunch
	sequencer.Finale = show.Finale

	level, _ := config.ParseSkyLighting(show.SkyLighting)
	v := &Viewer{
		screen:       screen,
		canvas:       canvas,
		sim:          sim,
		particles:    systems.NewParticleSystem(sim),
		sequencer:    sequencer,
		synth:        synth,
		typeNames:    shell.TypeNames(),
		skyLighting:  systems.SkyLighting(level),
		longExposure: show.LongExposure,
	}
	synth.SetEnabled(!*muteFlag)
	log.Printf("[TUI] Stage %.0fx%.0f (%dx%d cells)", stageW, stageH, cols, rows)
	return v, nil
}

// Run polls events and draws frames until the user quits.
func (v *Viewer) Run(fps int) {
	events := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(max(fps, 1)))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case ev := <-events:
			if quit := v.handleEvent(ev); quit {
				return
			}
		case now := <-ticker.C:
			frameTime := float64(now.Sub(last)) / float64(time.Millisecond)
			last = now
			v.step(frameTime)
			v.draw()
		}
	}
}

// Close restores the terminal.
func (v *Viewer) Close() {
	v.synth.Close()
	v.screen.Fini()
}

func (v *Viewer) step(frameTime float64) {
	ft := systems.ClampFrameTime(frameTime)
	speed := systems.Lag(ft)
	if v.paused {
		speed = 0
	} else {
		v.sequencer.Update(ft)
		v.particles.Step(ft)
	}
	v.canvas.EaseSky(systems.SkyTarget(v.sim.Stars, v.skyLighting), speed)
	v.canvas.DrawSimulation(v.sim, speed, v.longExposure)
}

func (v *Viewer) draw() {
	cols, rows := v.canvas.Size()
	sky := v.canvas.Sky()
	bg := tcellColor(sky)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			c, level := v.canvas.At(col, row)
			style := tcell.StyleDefault.Background(bg).Foreground(tcellColor(sky.BlendRgb(c, math.Sqrt(level))))
			v.screen.SetContent(col, row, Glyph(level), nil, style)
		}
	}
	v.drawStatus(cols, rows)
	v.screen.Show()
}

func (v *Viewer) drawStatus(cols, rows int) {
	status := StatusLine(v.sequencer, v.synth.Enabled(), v.paused, v.sim.Stars.Len(), v.sim.Sparks.Len())
	style := tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcellColor(v.canvas.Sky()))
	for i, r := range []rune(status) {
		if i >= cols {
			break
		}
		v.screen.SetContent(i, rows-1, r, nil, style)
	}
}

// StatusLine summarizes the show's controls for the bottom row.
func StatusLine(ls *systems.LaunchSequencer, sound, paused bool, stars, sparks int) string {
	line := fmt.Sprintf(" %s  size %.1f  auto %s  finale %s  sound %s  stars %d sparks %d",
		ls.ShellType, ls.ShellSize, onOff(ls.AutoLaunch), onOff(ls.Finale), onOff(sound), stars, sparks)
	if paused {
		line += "  PAUSED"
	}
	return line
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// handleEvent applies one terminal event and reports whether to quit.
func (v *Viewer) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
		cols, rows := ev.Size()
		v.canvas.Resize(cols, rows)
		v.sequencer.StageWidth, v.sequencer.StageHeight = v.canvas.StageSize()
	case *tcell.EventMouse:
		buttons := ev.Buttons()
		pressed := buttons&tcell.Button1 != 0 && v.lastButtons&tcell.Button1 == 0
		v.lastButtons = buttons
		if pressed && !v.paused {
			col, row := ev.Position()
			x, y := v.canvas.CellCenter(col, row)
			if _, err := v.sequencer.LaunchAtPointer(x, y); err != nil {
				log.Printf("[TUI] Warning: launch failed: %v", err)
			}
		}
	case *tcell.EventKey:
		return v.handleKey(ev)
	}
	return false
}

func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		v.sequencer.ShellType = cycleName(v.typeNames, v.sequencer.ShellType, -1)
		return false
	case tcell.KeyRight:
		v.sequencer.ShellType = cycleName(v.typeNames, v.sequencer.ShellType, 1)
		return false
	case tcell.KeyRune:
	default:
		return false
	}

	switch ev.Rune() {
	case 'q', 'Q':
		return true
	case 'p', 'P', ' ':
		v.paused = !v.paused
	case '=', '+':
		v.setSize(v.sequencer.ShellSize + 0.5)
	case '-':
		v.setSize(v.sequencer.ShellSize - 0.5)
	case 'a', 'A':
		v.sequencer.AutoLaunch = !v.sequencer.AutoLaunch
	case 'f', 'F':
		v.sequencer.Finale = !v.sequencer.Finale
	case 'l', 'L':
		v.longExposure = !v.longExposure
	case 's', 'S':
		v.synth.SetEnabled(!v.synth.Enabled())
	case 'c', 'C':
		v.sim.Reset()
		v.sequencer.Reset()
		v.canvas.Clear()
	}
	return false
}

func (v *Viewer) setSize(size float64) {
	size = math.Max(0, math.Min(4, size))
	v.sequencer.ShellSize = size
	v.sim.TargetShellSize = size
}

// cycleName steps through names from current, wrapping at either end.
// Unknown names start from the first entry.
func cycleName(names []string, current string, dir int) string {
	idx := 0
	for i, n := range names {
		if n == current {
			idx = i
			break
		}
	}
	n := len(names)
	return names[((idx+dir)%n+n)%n]
}

func tcellColor(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func loadShow(path string) (*config.ShowConfig, error) {
	show, err := config.LoadShowConfig(path)
	if errors.Is(err, fs.ErrNotExist) && path == defaultConfigPath {
		return config.DefaultShowConfig(), nil
	}
	return show, err
}

func main() {
	flag.Parse()

	// The terminal is the display, so logs only go to a file.
	log.SetOutput(io.Discard)
	if *logFlag != "" {
		f, err := os.OpenFile(*logFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	show, err := loadShow(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load show config: %v\n", err)
		os.Exit(1)
	}
	if *qualityFlag != "" {
		show.Quality = *qualityFlag
	}
	if err := show.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid show config: %v\n", err)
		os.Exit(1)
	}

	viewer, err := NewViewer(show)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start terminal viewer: %v\n", err)
		os.Exit(1)
	}
	viewer.Run(*frameRate)
	viewer.Close()
}
