package game

import (
	"log"
	"math"
	"path"
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/rng"
	"github.com/gonewx/fireworks/pkg/shell"
)

// smallBurstThrottle 小爆炸音效的最短间隔，避免同一帧内叠加数十个爆裂声
const smallBurstThrottle = 20 * time.Millisecond

// AudioManager 音频管理器
// 职责：
//   - 实现 shell.SoundPlayer，按名称播放烟花音效
//   - 从音效表随机挑选文件和播放速率
//   - 按事件尺寸缩放音量和音高（小烟花更轻、更尖）
//   - 与 SettingsManager 联动（音效开关、音量）
//   - 暂停时挂起所有正在播放的音效
//
// 设计原则：
//   - 中心化管理：所有音效播放都通过 AudioManager
//   - 缺失的音效文件不是致命错误，只记录日志
type AudioManager struct {
	resourceManager *ResourceManager              // 资源管理器（用于解码和创建播放器）
	settingsManager *SettingsManager              // 设置管理器（可为 nil）
	sources         map[string]config.SoundSource // 音效表
	dir             string                        // 音效目录
	rng             rng.Source                    // 随机源（文件和速率）
	now             func() time.Time              // 时钟（测试可替换）

	lastSmallBurst time.Time       // 上次播放小爆炸音效的时间
	active         []*audio.Player // 正在播放的播放器
	paused         bool            // 是否已暂停
}

// soundPlay 一次播放的参数
type soundPlay struct {
	file   string
	volume float64
	rate   float64
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - rm: ResourceManager 实例（用于加载音频文件）
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
//   - sounds: 音效表（通常来自 ShowConfig.Sounds）
//   - r: 随机源，nil 时使用默认随机源
//
// 返回：
//   - *AudioManager: 音频管理器实例
func NewAudioManager(rm *ResourceManager, sm *SettingsManager, sounds config.SoundsConfig, r rng.Source) *AudioManager {
	if r == nil {
		r = rng.Default()
	}
	return &AudioManager{
		resourceManager: rm,
		settingsManager: sm,
		sources:         sounds.Sources,
		dir:             sounds.Dir,
		rng:             r,
		now:             time.Now,
	}
}

// Preload 解码音效表中的全部文件
// 缺失或损坏的文件只记录警告，对应音效播放时会被跳过
//
// 返回：
//   - int: 成功加载的文件数
func (am *AudioManager) Preload() int {
	names := make([]string, 0, len(am.sources))
	for name := range am.sources {
		names = append(names, name)
	}
	sort.Strings(names)

	loaded := 0
	for _, name := range names {
		for _, file := range am.sources[name].Files {
			if _, err := am.resourceManager.LoadSoundEffect(am.filePath(file)); err != nil {
				log.Printf("[AudioManager] Warning: sound %q: %v", name, err)
				continue
			}
			loaded++
		}
	}
	log.Printf("[AudioManager] Preloaded %d sound files", loaded)
	return loaded
}

// PlaySound 播放音效，实现 shell.SoundPlayer
//
// 参数：
//   - name: 音效名称（shell.SoundLift 等）
//   - scale: 尺寸比例 (0, 1]，越小音量越低、音高越高
func (am *AudioManager) PlaySound(name string, scale float64) {
	play, ok := am.prepare(name, scale)
	if !ok {
		return
	}
	if am.resourceManager.GetSound(play.file) == nil {
		return
	}

	player, err := am.resourceManager.NewSoundPlayer(play.file, play.rate)
	if err != nil {
		log.Printf("[AudioManager] Failed to play %q: %v", name, err)
		return
	}
	player.SetVolume(play.volume)
	player.Play()
	am.active = append(am.active, player)
}

// prepare 计算一次播放的文件、音量和速率
// 音效禁用、名称未知、已暂停或被节流时返回 false
func (am *AudioManager) prepare(name string, scale float64) (soundPlay, bool) {
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return soundPlay{}, false
	}
	if am.paused {
		return soundPlay{}, false
	}
	source, ok := am.sources[name]
	if !ok || len(source.Files) == 0 {
		log.Printf("[AudioManager] Warning: unknown sound %q", name)
		return soundPlay{}, false
	}

	if name == shell.SoundBurstSmall {
		now := am.now()
		if now.Sub(am.lastSmallBurst) < smallBurstThrottle {
			return soundPlay{}, false
		}
		am.lastSmallBurst = now
	}

	scale = math.Max(0, math.Min(1, scale))
	rate := rng.Between(am.rng, source.PlaybackRate.Min, source.PlaybackRate.Max)
	file := source.Files[int(am.rng.Float64()*float64(len(source.Files)))]

	return soundPlay{
		file:   am.filePath(file),
		volume: source.Volume * scale * am.getSoundVolume(),
		rate:   rate * (2 - scale),
	}, true
}

// Update 回收已经播放完毕的播放器
// 每帧调用一次
func (am *AudioManager) Update() {
	if am.paused {
		return
	}
	live := am.active[:0]
	for _, p := range am.active {
		if p.IsPlaying() {
			live = append(live, p)
			continue
		}
		p.Close()
	}
	clear(am.active[len(live):])
	am.active = live
}

// PauseAll 暂停所有正在播放的音效，暂停期间的新音效被丢弃
func (am *AudioManager) PauseAll() {
	if am.paused {
		return
	}
	am.paused = true
	for _, p := range am.active {
		p.Pause()
	}
	log.Printf("[AudioManager] Paused %d sounds", len(am.active))
}

// ResumeAll 恢复暂停的音效
func (am *AudioManager) ResumeAll() {
	if !am.paused {
		return
	}
	am.paused = false
	for _, p := range am.active {
		p.Play()
	}
}

// IsPaused 返回是否处于暂停状态
func (am *AudioManager) IsPaused() bool {
	return am.paused
}

// filePath 拼接音效目录和文件名（嵌入资源使用正斜杠）
func (am *AudioManager) filePath(file string) string {
	if am.dir == "" {
		return file
	}
	return path.Join(am.dir, file)
}

// getSoundVolume 获取音效音量
func (am *AudioManager) getSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return 1.0
}
