package app

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gonewx/fireworks/pkg/game"
)

const (
	hudFontName   = "Go Regular"
	hudFontSize   = 14
	hudLineHeight = 18
	hudMargin     = 12
)

var (
	hudTextColor   = color.RGBA{R: 220, G: 220, B: 220, A: 255}
	hudShadowColor = color.RGBA{A: 160}
)

// HUDState 每帧显示的状态
type HUDState struct {
	ShellType    string
	ShellSize    float64
	Quality      string
	AutoLaunch   bool
	Finale       bool
	SoundEnabled bool
	Paused       bool
	Stars        int
	Sparks       int
	FPS          float64
}

// Lines 格式化为 HUD 文本行
func (s HUDState) Lines() []string {
	lines := []string{
		fmt.Sprintf("%s  size %.1f  [<-/->, -/+]", s.ShellType, s.ShellSize),
		fmt.Sprintf("auto %s  finale %s  sound %s  quality %s",
			onOff(s.AutoLaunch), onOff(s.Finale), onOff(s.SoundEnabled), s.Quality),
		fmt.Sprintf("stars %d  sparks %d  %.0f fps", s.Stars, s.Sparks, s.FPS),
	}
	if s.Paused {
		lines = append(lines, "PAUSED  [P]")
	}
	return lines
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// HUD 左上角的状态文字
type HUD struct {
	face *text.GoTextFace
}

// NewHUD 使用内置 Go Regular 字体创建 HUD
func NewHUD(rm *game.ResourceManager) (*HUD, error) {
	face, err := rm.LoadFont(hudFontName, goregular.TTF, hudFontSize)
	if err != nil {
		return nil, fmt.Errorf("HUD 字体加载失败: %w", err)
	}
	return &HUD{face: face}, nil
}

// Draw 绘制 HUD，文字带 1 像素阴影以便在亮色天空上可读
func (h *HUD) Draw(screen *ebiten.Image, state HUDState) {
	body := strings.Join(state.Lines(), "\n")

	shadowOp := &text.DrawOptions{}
	shadowOp.GeoM.Translate(hudMargin+1, hudMargin+1)
	shadowOp.LineSpacing = hudLineHeight
	shadowOp.ColorScale.ScaleWithColor(hudShadowColor)
	text.Draw(screen, body, h.face, shadowOp)

	op := &text.DrawOptions{}
	op.GeoM.Translate(hudMargin, hudMargin)
	op.LineSpacing = hudLineHeight
	op.ColorScale.ScaleWithColor(hudTextColor)
	text.Draw(screen, body, h.face, op)
}
