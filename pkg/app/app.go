// Package app 提供烟花查看器的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/game"
	"github.com/gonewx/fireworks/pkg/glyph"
	"github.com/gonewx/fireworks/pkg/rng"
	"github.com/gonewx/fireworks/pkg/shell"
	"github.com/gonewx/fireworks/pkg/systems"
	"github.com/gonewx/fireworks/pkg/utils"
)

// gdataAppName 设置存储的应用名（决定用户配置目录下的子目录）
const gdataAppName = "gonewx_fireworks"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Show 表演配置，nil 时使用内置默认配置
	Show *config.ShowConfig
	// Seed 非零时使用可重放的随机序列
	Seed uint64
	// Quality 覆盖画质（low / normal / high），为空则使用设置或配置
	Quality string
	// Mute 不创建音频上下文
	Mute bool
	// Ephemeral 不读写持久化设置
	Ephemeral bool
}

// App 是烟花查看器的核心包装器，实现 ebiten.Game 接口
type App struct {
	show *config.ShowConfig

	sim       *shell.Simulation
	particles *systems.ParticleSystem
	sequencer *systems.LaunchSequencer
	renderer  *systems.RenderSystem
	audio     *game.AudioManager
	settings  *game.SettingsManager
	hud       *HUD

	paused  bool
	showHUD bool
	pointer []image.Point

	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化烟花查看器
//
// 桌面端调用此函数前应先调用 embedded.Init() 初始化嵌入资源；
// 未初始化时配置和音效从工作目录读取。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	show := cfg.Show
	if show == nil {
		show = config.DefaultShowConfig()
	}
	if err := show.Validate(); err != nil {
		return nil, err
	}

	// 设置：默认值来自表演配置，已保存的偏好覆盖默认值
	defaults := game.DefaultSettings(show)
	if utils.IsMobile() {
		defaults.Quality = config.QualityName(shell.QualityLow)
	}
	settingsManager := game.NewSettingsManager(openSettingsStore(cfg.Ephemeral), defaults)
	if cfg.Quality != "" {
		q, err := config.ParseQuality(cfg.Quality)
		if err != nil {
			return nil, err
		}
		settingsManager.SetQuality(q)
	}
	settings := settingsManager.GetSettings()

	// 音频
	var audioContext *audio.Context
	if !cfg.Mute {
		audioContext = audio.NewContext(game.DefaultSampleRate)
	}
	resourceManager := game.NewResourceManager(audioContext)

	var source rng.Source = rng.Default()
	if cfg.Seed != 0 {
		source = rng.NewSeeded(cfg.Seed)
		log.Printf("[App] Using seed %d", cfg.Seed)
	}

	audioManager := game.NewAudioManager(resourceManager, settingsManager, show.Sounds, source)
	if audioContext != nil {
		audioManager.Preload()
	}
	log.Printf("[App] AudioManager initialized")

	glyphs, err := glyph.NewRasterizer()
	if err != nil {
		return nil, fmt.Errorf("字体初始化失败: %w", err)
	}
	registerWordFont(glyphs, show.Words.Font)

	opts := append(show.SimulationOptions(),
		shell.WithRandom(source),
		shell.WithGlyphs(glyphs),
	)
	if audioContext != nil {
		opts = append(opts, shell.WithSound(audioManager))
	}
	sim := shell.NewSimulation(opts...)

	width, height := show.Stage.Width, show.Stage.Height
	a := &App{
		show:      show,
		sim:       sim,
		particles: systems.NewParticleSystem(sim),
		sequencer: systems.NewLaunchSequencer(sim, float64(width), float64(height)),
		renderer:  systems.NewRenderSystem(sim, width, height),
		audio:     audioManager,
		settings:  settingsManager,
		showHUD:   true,
		verbose:   cfg.Verbose,
	}
	a.hud, err = NewHUD(resourceManager)
	if err != nil {
		return nil, err
	}
	a.applySettings()

	if settings.Fullscreen {
		ebiten.SetFullscreen(true)
	}
	log.Printf("[App] Stage %dx%d, shell %s size %.1f", width, height, settings.ShellType, settings.ShellSize)
	return a, nil
}

// storageLocation 日志中显示的设置存储位置，空路径表示由 gdata 决定
func storageLocation(path string) string {
	if path == "" {
		return "gdata default (" + gdataAppName + ")"
	}
	return path
}

// openSettingsStore 打开 gdata 存储，失败时降级为内存设置
func openSettingsStore(ephemeral bool) *gdata.Manager {
	if ephemeral {
		return nil
	}
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: storage dir unavailable: %v", err)
		return nil
	}
	log.Printf("[App] Settings storage: %s", storageLocation(utils.GetStoragePath()))
	manager, err := gdata.Open(gdata.Config{AppName: gdataAppName})
	if err != nil {
		log.Printf("[App] Warning: settings will not persist: %v", err)
		return nil
	}
	return manager
}

// registerWordFont 内置字体之外的字体名按文件路径加载
func registerWordFont(r *glyph.Rasterizer, font string) {
	if font == "" || font == glyph.FamilyGoBold || font == glyph.FamilyGoRegular {
		return
	}
	data, err := game.ReadResource(font)
	if err != nil {
		log.Printf("[App] Warning: word font %q unavailable, using %s: %v", font, glyph.FamilyGoBold, err)
		return
	}
	if err := r.Register(font, data); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
}

// applySettings 将当前设置推送到各系统
func (a *App) applySettings() {
	s := a.settings.GetSettings()

	q, _ := config.ParseQuality(s.Quality)
	a.sim.SetQuality(q)

	a.sequencer.ShellType = s.ShellType
	a.sequencer.ShellSize = s.ShellSize
	a.sequencer.AutoLaunch = s.AutoLaunch
	a.sequencer.Finale = s.Finale
	a.sim.TargetShellSize = s.ShellSize

	level, _ := config.ParseSkyLighting(s.SkyLighting)
	a.renderer.SkyLighting = systems.SkyLighting(level)
	a.renderer.LongExposure = s.LongExposure
}

// saveSettings 应用并持久化设置
func (a *App) saveSettings() {
	a.applySettings()
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
}

// Update 更新查看器逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.show.Stage.Width, a.show.Stage.Height)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.show.Stage.Width, a.show.Stage.Height)
			a.pendingWindowSizeReset = false
		}
	}

	a.handleKeys()

	if !a.paused {
		a.pointer = utils.AppendJustPressedPointers(a.pointer[:0])
		for _, p := range a.pointer {
			p = utils.StagePoint(p, a.show.Stage.Width, a.show.Stage.Height)
			if _, err := a.sequencer.LaunchAtPointer(float64(p.X), float64(p.Y)); err != nil {
				log.Printf("[App] Warning: pointer launch failed: %v", err)
			}
		}

		a.sequencer.Update(systems.FrameTime60 * a.particles.SimSpeed)
		a.particles.Step(systems.FrameTime60)
		a.renderer.Update(a.speed())
	}
	a.audio.Update()
	return nil
}

// speed 本帧的速度倍率，暂停时为 0（拖尾不再消退）
func (a *App) speed() float64 {
	if a.paused {
		return 0
	}
	return a.particles.SimSpeed * systems.Lag(systems.FrameTime60)
}

// handleKeys 处理键盘快捷键
func (a *App) handleKeys() {
	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		a.SetPaused(!a.paused)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		a.showHUD = !a.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		a.Clear()
	}

	s := a.settings.GetSettings()
	changed := true
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		a.settings.SetSoundEnabled(!s.SoundEnabled)
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		a.settings.SetShellType(cycle(shell.TypeNames(), s.ShellType, 1))
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		a.settings.SetShellType(cycle(shell.TypeNames(), s.ShellType, -1))
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd):
		a.settings.SetShellSize(s.ShellSize + 0.5)
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract):
		a.settings.SetShellSize(s.ShellSize - 0.5)
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		a.settings.SetAutoLaunch(!s.AutoLaunch)
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		a.settings.SetFinale(!s.Finale)
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		a.settings.SetLongExposure(!s.LongExposure)
	case inpututil.IsKeyJustPressed(ebiten.KeyK):
		level, _ := config.ParseSkyLighting(s.SkyLighting)
		a.settings.SetSkyLighting((level + 1) % 3)
	case inpututil.IsKeyJustPressed(ebiten.KeyQ):
		q, _ := config.ParseQuality(s.Quality)
		a.settings.SetQuality(q%shell.QualityHigh + 1)
	default:
		changed = false
	}
	if changed {
		a.saveSettings()
	}
}

// toggleFullscreen 切换全屏，并记住选择
func (a *App) toggleFullscreen() {
	fullscreen := ebiten.IsFullscreen()
	if fullscreen {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}
	a.settings.SetFullscreen(!fullscreen)
	a.saveSettings()
}

// SetPaused 暂停或恢复表演，同时暂停所有音效
func (a *App) SetPaused(paused bool) {
	if a.paused == paused {
		return
	}
	a.paused = paused
	if paused {
		a.audio.PauseAll()
	} else {
		a.audio.ResumeAll()
	}
	log.Printf("[App] Paused: %v", paused)
}

// Clear 清除所有粒子、拖尾和排队中的发射
func (a *App) Clear() {
	a.particles.Clear()
	a.renderer.Clear()
	a.sequencer.Reset()
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.renderer.Draw(screen, a.speed())
	if a.showHUD {
		a.hud.Draw(screen, a.hudState())
	}
}

func (a *App) hudState() HUDState {
	s := a.settings.GetSettings()
	return HUDState{
		ShellType:    s.ShellType,
		ShellSize:    s.ShellSize,
		Quality:      s.Quality,
		AutoLaunch:   s.AutoLaunch,
		Finale:       s.Finale,
		SoundEnabled: s.SoundEnabled,
		Paused:       a.paused,
		Stars:        a.sim.Stars.Len(),
		Sparks:       a.sim.Sparks.Len(),
		FPS:          ebiten.ActualFPS(),
	}
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑舞台尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.show.Stage.Width, a.show.Stage.Height
}

// Settings 返回设置管理器
// 用于在程序退出时保存设置
func (a *App) Settings() *game.SettingsManager {
	return a.settings
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

// cycle 返回 names 中 current 之后（dir=1）或之前（dir=-1）的名称
func cycle(names []string, current string, dir int) string {
	if len(names) == 0 {
		return current
	}
	idx := 0
	for i, n := range names {
		if n == current {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(names)) % len(names)
	return names[idx]
}
