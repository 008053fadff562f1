package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/fireworks/pkg/embedded"
	"github.com/gonewx/fireworks/pkg/shell"
)

// ErrInvalidShowConfig 表演配置校验失败
var ErrInvalidShowConfig = errors.New("invalid show config")

// ShowConfig 烟花表演配置
//
// 描述舞台尺寸、画质、默认烟花类型、文字烟花与音效表。
// 桌面端和终端查看器共用同一份配置。
//
// 配置文件位置: data/show.yaml
type ShowConfig struct {
	// Stage 舞台（逻辑画布）尺寸
	Stage StageConfig `yaml:"stage"`

	// Quality 画质: low / normal / high
	Quality string `yaml:"quality"`

	// ShellType 默认烟花类型（目录名称，如 "Random"、"Crackle"）
	ShellType string `yaml:"shellType"`

	// ShellSize 默认烟花尺寸 [0, 4]
	ShellSize float64 `yaml:"shellSize"`

	// AutoLaunch 是否自动发射
	AutoLaunch bool `yaml:"autoLaunch"`

	// Finale 终场模式：连续快速发射
	Finale bool `yaml:"finale"`

	// SkyLighting 天空光照: none / dim / normal
	SkyLighting string `yaml:"skyLighting"`

	// LongExposure 长曝光（拖尾几乎不消退）
	LongExposure bool `yaml:"longExposure"`

	// Words 文字烟花配置
	Words WordsConfig `yaml:"words"`

	// Sounds 音效配置
	Sounds SoundsConfig `yaml:"sounds"`
}

// StageConfig 舞台尺寸（像素）
type StageConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// WordsConfig 文字烟花配置
type WordsConfig struct {
	// List 随机文字列表
	List []string `yaml:"list"`

	// Chance 每次爆炸附带文字的概率
	Chance float64 `yaml:"chance"`

	// Font 字体名称
	Font string `yaml:"font"`

	// FontSize 随机字号范围（像素）
	FontSize Range `yaml:"fontSize"`

	// Sparks 为 true 时文字由火花组成，否则由闪烁星点组成
	Sparks bool `yaml:"sparks"`
}

// Range 闭区间 [Min, Max]
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// SoundsConfig 音效配置
type SoundsConfig struct {
	// Dir 音效文件目录（相对于工作目录或嵌入资源根）
	Dir string `yaml:"dir"`

	// Sources 音效类型 -> 音效源
	Sources map[string]SoundSource `yaml:"sources"`
}

// SoundSource 一类音效的播放参数
type SoundSource struct {
	// Volume 基础音量 [0, 1]
	Volume float64 `yaml:"volume"`

	// PlaybackRate 随机播放速率范围
	PlaybackRate Range `yaml:"playbackRate"`

	// Files 候选文件名，每次播放随机选一个
	Files []string `yaml:"files"`
}

// DefaultShowConfig 返回内置默认配置
// 音效表与浏览器版烟花一致
func DefaultShowConfig() *ShowConfig {
	return &ShowConfig{
		Stage:       StageConfig{Width: 1280, Height: 720},
		Quality:     "high",
		ShellType:   shell.TypeRandom,
		ShellSize:   3,
		AutoLaunch:  true,
		SkyLighting: "normal",
		Words: WordsConfig{
			List:     append([]string(nil), shell.DefaultWords...),
			Chance:   0.05,
			Font:     "Go Bold",
			FontSize: Range{Min: 50, Max: 80},
		},
		Sounds: SoundsConfig{
			Dir: "assets/sounds",
			Sources: map[string]SoundSource{
				shell.SoundLift: {
					Volume:       1,
					PlaybackRate: Range{Min: 0.85, Max: 0.95},
					Files:        []string{"lift1.mp3", "lift2.mp3", "lift3.mp3"},
				},
				shell.SoundBurst: {
					Volume:       1,
					PlaybackRate: Range{Min: 0.8, Max: 0.9},
					Files:        []string{"burst1.mp3", "burst2.mp3"},
				},
				shell.SoundBurstSmall: {
					Volume:       0.25,
					PlaybackRate: Range{Min: 0.8, Max: 1},
					Files:        []string{"burst-sm-1.mp3", "burst-sm-2.mp3"},
				},
				shell.SoundCrackle: {
					Volume:       0.2,
					PlaybackRate: Range{Min: 1, Max: 1},
					Files:        []string{"crackle1.mp3"},
				},
				shell.SoundCrackleSmall: {
					Volume:       0.3,
					PlaybackRate: Range{Min: 1, Max: 1},
					Files:        []string{"crackle-sm-1.mp3"},
				},
			},
		},
	}
}

// LoadShowConfig 从文件加载表演配置
//
// 嵌入资源中存在该路径时优先读取嵌入版本，否则读取磁盘文件。
//
// 参数:
//   - path: 配置文件路径（如 "data/show.yaml"）
//
// 返回:
//   - *ShowConfig: 加载并校验后的配置
//   - error: 读取、解析或校验失败
func LoadShowConfig(path string) (*ShowConfig, error) {
	var data []byte
	var err error
	if embedded.Exists(path) {
		data, err = embedded.ReadFile(path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read show config: %w", err)
	}
	return ParseShowConfig(data)
}

// ParseShowConfig 解析 YAML 表演配置
//
// 未出现的字段保留默认值，因此配置文件只需写出要覆盖的部分。
func ParseShowConfig(data []byte) (*ShowConfig, error) {
	cfg := DefaultShowConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse show config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 验证配置有效性
//
// 检查内容：
//   - 舞台尺寸为正
//   - 画质与天空光照取值合法
//   - 烟花类型存在、尺寸在 [0, 4]
//   - 文字概率在 [0, 1]，字号范围有效
//   - 每个音效源至少有一个文件，速率范围有效
//
// 返回:
//   - error: 包装 ErrInvalidShowConfig 的错误，成功返回 nil
func (c *ShowConfig) Validate() error {
	if c.Stage.Width <= 0 || c.Stage.Height <= 0 {
		return fmt.Errorf("%w: stage size %dx%d must be positive", ErrInvalidShowConfig, c.Stage.Width, c.Stage.Height)
	}
	if _, err := ParseQuality(c.Quality); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidShowConfig, err)
	}
	if _, err := ParseSkyLighting(c.SkyLighting); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidShowConfig, err)
	}
	if _, err := shell.ByName(c.ShellType); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidShowConfig, err)
	}
	if c.ShellSize < 0 || c.ShellSize > 4 {
		return fmt.Errorf("%w: shell size %.2f out of [0, 4]", ErrInvalidShowConfig, c.ShellSize)
	}

	if c.Words.Chance < 0 || c.Words.Chance > 1 {
		return fmt.Errorf("%w: word chance %.2f out of [0, 1]", ErrInvalidShowConfig, c.Words.Chance)
	}
	if c.Words.FontSize.Min <= 0 || c.Words.FontSize.Min > c.Words.FontSize.Max {
		return fmt.Errorf("%w: word font size range invalid: min(%.1f) max(%.1f)",
			ErrInvalidShowConfig, c.Words.FontSize.Min, c.Words.FontSize.Max)
	}

	// 按名称排序，保证错误信息稳定
	names := make([]string, 0, len(c.Sounds.Sources))
	for name := range c.Sounds.Sources {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		src := c.Sounds.Sources[name]
		if len(src.Files) == 0 {
			return fmt.Errorf("%w: sound %q has no files", ErrInvalidShowConfig, name)
		}
		if src.Volume < 0 {
			return fmt.Errorf("%w: sound %q volume %.2f is negative", ErrInvalidShowConfig, name, src.Volume)
		}
		if src.PlaybackRate.Min <= 0 || src.PlaybackRate.Min > src.PlaybackRate.Max {
			return fmt.Errorf("%w: sound %q playback rate range invalid: min(%.2f) max(%.2f)",
				ErrInvalidShowConfig, name, src.PlaybackRate.Min, src.PlaybackRate.Max)
		}
	}
	return nil
}

// ParseQuality 将画质名称转换为 shell.Quality
func ParseQuality(name string) (shell.Quality, error) {
	switch name {
	case "low":
		return shell.QualityLow, nil
	case "normal":
		return shell.QualityNormal, nil
	case "high", "":
		return shell.QualityHigh, nil
	}
	return 0, fmt.Errorf("unknown quality %q (want low, normal or high)", name)
}

// QualityName 是 ParseQuality 的逆操作
func QualityName(q shell.Quality) string {
	switch q {
	case shell.QualityLow:
		return "low"
	case shell.QualityNormal:
		return "normal"
	}
	return "high"
}

// ParseSkyLighting 将天空光照名称转换为等级 0..2
func ParseSkyLighting(name string) (int, error) {
	switch name {
	case "none":
		return 0, nil
	case "dim":
		return 1, nil
	case "normal", "":
		return 2, nil
	}
	return 0, fmt.Errorf("unknown sky lighting %q (want none, dim or normal)", name)
}

// SimulationOptions 将配置转换为 shell.Simulation 选项
// 随机源、音效与字形由调用方另行提供
func (c *ShowConfig) SimulationOptions() []shell.Option {
	q, _ := ParseQuality(c.Quality)
	return []shell.Option{
		shell.WithQuality(q),
		shell.WithWords(c.Words.List),
		shell.WithWordChance(c.Words.Chance),
		shell.WithWordFont(c.Words.Font),
		shell.WithWordFontSize(c.Words.FontSize.Min, c.Words.FontSize.Max),
		shell.WithWordSparks(c.Words.Sparks),
	}
}
