package game

import (
	"fmt"
	"log"
	"math"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/shell"
)

// ViewerSettings 查看器偏好设置
// 这些是用户偏好（画质、烟花类型、音效开关），不是模拟状态
type ViewerSettings struct {
	// 烟花设置
	Quality    string  `yaml:"quality"`    // 画质 low / normal / high
	ShellType  string  `yaml:"shellType"`  // 烟花类型名称
	ShellSize  float64 `yaml:"shellSize"`  // 烟花尺寸 0 ~ 4
	AutoLaunch bool    `yaml:"autoLaunch"` // 自动发射
	Finale     bool    `yaml:"finale"`     // 终场模式

	// 显示设置
	SkyLighting  string `yaml:"skyLighting"`  // 天空光照 none / dim / normal
	LongExposure bool   `yaml:"longExposure"` // 长曝光
	Fullscreen   bool   `yaml:"fullscreen"`   // 启动时是否全屏

	// 音频设置
	SoundVolume  float64 `yaml:"soundVolume"`  // 音效音量 0.0 ~ 1.0
	SoundEnabled bool    `yaml:"soundEnabled"` // 音效开关
}

// DefaultSettings 从表演配置派生默认设置
func DefaultSettings(show *config.ShowConfig) *ViewerSettings {
	if show == nil {
		show = config.DefaultShowConfig()
	}
	return &ViewerSettings{
		Quality:      show.Quality,
		ShellType:    show.ShellType,
		ShellSize:    show.ShellSize,
		AutoLaunch:   show.AutoLaunch,
		Finale:       show.Finale,
		SkyLighting:  show.SkyLighting,
		LongExposure: show.LongExposure,
		SoundVolume:  0.8,
		SoundEnabled: true,
	}
}

// SettingsManager 设置管理器
// 负责查看器设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager  // gdata 跨平台存储管理器，可为 nil（降级模式）
	defaults     *ViewerSettings // 默认设置（加载失败或字段缺失时使用）
	settings     *ViewerSettings // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "viewer"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//   - defaults: 默认设置，nil 时使用内置表演配置的默认值
//
// 返回：
//   - *SettingsManager: 设置管理器实例
func NewSettingsManager(gdataManager *gdata.Manager, defaults *ViewerSettings) *SettingsManager {
	if defaults == nil {
		defaults = DefaultSettings(nil)
	}
	sm := &SettingsManager{
		gdataManager: gdataManager,
		defaults:     defaults,
		settings:     cloneSettings(defaults),
	}

	// 尝试加载已保存的设置
	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm
}

// cloneSettings 复制一份设置
func cloneSettings(s *ViewerSettings) *ViewerSettings {
	c := *s
	return &c
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置。
// 已保存的文件缺少的字段保留默认值，非法取值被替换为默认值。
//
// 返回：
//   - error: 如果读取或反序列化失败返回错误
func (sm *SettingsManager) Load() error {
	// 降级模式：无法持久化，使用默认设置
	if sm.gdataManager == nil {
		sm.settings = cloneSettings(sm.defaults)
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = cloneSettings(sm.defaults)
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = cloneSettings(sm.defaults)
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := cloneSettings(sm.defaults)
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = cloneSettings(sm.defaults)
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.settings = sm.sanitize(loaded)
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// sanitize 替换手工编辑或旧版本留下的非法取值
func (sm *SettingsManager) sanitize(s *ViewerSettings) *ViewerSettings {
	if _, err := config.ParseQuality(s.Quality); err != nil {
		s.Quality = sm.defaults.Quality
	}
	if _, err := shell.ByName(s.ShellType); err != nil {
		s.ShellType = sm.defaults.ShellType
	}
	if _, err := config.ParseSkyLighting(s.SkyLighting); err != nil {
		s.SkyLighting = sm.defaults.SkyLighting
	}
	s.ShellSize = clampShellSize(s.ShellSize)
	s.SoundVolume = clampVolume(s.SoundVolume)
	return s
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
//
// 返回：
//   - error: 如果序列化或保存失败返回错误
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *ViewerSettings {
	return sm.settings
}

// SetQuality 设置画质
//
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetQuality(q shell.Quality) {
	sm.settings.Quality = config.QualityName(q)
}

// SetShellType 设置烟花类型
//
// 返回：
//   - error: 类型不存在时返回 shell.ErrUnknownShellType
func (sm *SettingsManager) SetShellType(name string) error {
	if _, err := shell.ByName(name); err != nil {
		return err
	}
	sm.settings.ShellType = name
	return nil
}

// SetShellSize 设置烟花尺寸，限制在 0 ~ 4
func (sm *SettingsManager) SetShellSize(size float64) {
	sm.settings.ShellSize = clampShellSize(size)
}

// SetAutoLaunch 设置自动发射开关
func (sm *SettingsManager) SetAutoLaunch(enabled bool) {
	sm.settings.AutoLaunch = enabled
}

// SetFinale 设置终场模式
func (sm *SettingsManager) SetFinale(enabled bool) {
	sm.settings.Finale = enabled
}

// SetSkyLighting 设置天空光照等级 0..2
func (sm *SettingsManager) SetSkyLighting(level int) {
	names := []string{"none", "dim", "normal"}
	if level < 0 || level >= len(names) {
		return
	}
	sm.settings.SkyLighting = names[level]
}

// SetLongExposure 设置长曝光
func (sm *SettingsManager) SetLongExposure(enabled bool) {
	sm.settings.LongExposure = enabled
}

// SetSoundVolume 设置音效音量
//
// 音量值会被限制在 0.0 ~ 1.0 范围内
func (sm *SettingsManager) SetSoundVolume(volume float64) {
	sm.settings.SoundVolume = clampVolume(volume)
}

// SetSoundEnabled 设置音效开关
func (sm *SettingsManager) SetSoundEnabled(enabled bool) {
	sm.settings.SoundEnabled = enabled
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// clampVolume 将音量值限制在 0.0 ~ 1.0 范围内
func clampVolume(volume float64) float64 {
	return math.Max(0, math.Min(1, volume))
}

func clampShellSize(size float64) float64 {
	return math.Max(0, math.Min(4, size))
}
