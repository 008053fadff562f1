package game

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/gonewx/fireworks/pkg/embedded"
)

// DefaultSampleRate is used when no audio context is available.
const DefaultSampleRate = 48000

// ResourceManager is responsible for centralized management of the viewer's
// sound effects and fonts, ensuring that each is decoded only once.
//
// Sounds are decoded up front into 16-bit stereo PCM at the audio context's
// sample rate. Each playback then builds a fresh player over the cached
// bytes, so the same effect can overlap itself and play at its own rate.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. The internal caches use standard Go
// maps. Load everything from the game goroutine.
//
// Usage:
//
//	audioContext := audio.NewContext(48000)
//	rm := NewResourceManager(audioContext)
//	pcm, err := rm.LoadSoundEffect("assets/sounds/burst1.mp3")
//	if err != nil {
//	    log.Printf("Failed to load sound: %v", err)
//	}
type ResourceManager struct {
	audioContext *audio.Context // May be nil; sounds still decode but cannot play.
	sampleRate   int

	soundCache      map[string][]byte                 // path -> decoded PCM
	fontSourceCache map[string]*text.GoTextFaceSource // font name -> source
	fontFaceCache   map[string]*text.GoTextFace       // "name:size" -> face
}

// NewResourceManager creates a ResourceManager bound to audioContext, which
// may be nil in tests and in the terminal viewer.
func NewResourceManager(audioContext *audio.Context) *ResourceManager {
	sampleRate := DefaultSampleRate
	if audioContext != nil {
		sampleRate = audioContext.SampleRate()
	}
	return &ResourceManager{
		audioContext:    audioContext,
		sampleRate:      sampleRate,
		soundCache:      make(map[string][]byte),
		fontSourceCache: make(map[string]*text.GoTextFaceSource),
		fontFaceCache:   make(map[string]*text.GoTextFace),
	}
}

// AudioContext returns the context sounds play through, or nil.
func (rm *ResourceManager) AudioContext() *audio.Context {
	return rm.audioContext
}

// SampleRate returns the rate decoded sounds are stored at.
func (rm *ResourceManager) SampleRate() int {
	return rm.sampleRate
}

// ReadResource reads from the embedded assets when present and from disk otherwise.
func ReadResource(path string) ([]byte, error) {
	if embedded.Exists(path) {
		return embedded.ReadFile(path)
	}
	return os.ReadFile(path)
}

// LoadSoundEffect loads and decodes a sound effect, caching the PCM bytes.
// Supported formats are MP3, OGG/Vorbis and WAV, picked by file extension.
//
// Parameters:
//   - path: the file path, e.g. "assets/sounds/lift1.mp3"
//
// Returns:
//   - 16-bit little-endian stereo PCM at SampleRate()
//   - an error if the file is missing, unsupported or corrupted
func (rm *ResourceManager) LoadSoundEffect(path string) ([]byte, error) {
	if pcm, exists := rm.soundCache[path]; exists {
		return pcm, nil
	}

	data, err := ReadResource(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sound effect file %s: %w", path, err)
	}
	reader := bytes.NewReader(data)

	var stream io.Reader
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		s, err := mp3.DecodeWithSampleRate(rm.sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 sound effect %s: %w", path, err)
		}
		stream = s
	case ".ogg":
		s, err := vorbis.DecodeWithSampleRate(rm.sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG sound effect %s: %w", path, err)
		}
		stream = s
	case ".wav":
		s, err := wav.DecodeWithSampleRate(rm.sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode WAV sound effect %s: %w", path, err)
		}
		stream = s
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .mp3, .ogg, .wav)", ext)
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to decode sound effect %s: %w", path, err)
	}

	rm.soundCache[path] = pcm
	return pcm, nil
}

// GetSound retrieves previously decoded PCM, or nil if the sound was never
// loaded or failed to load.
func (rm *ResourceManager) GetSound(path string) []byte {
	return rm.soundCache[path]
}

// NewSoundPlayer creates a one-shot player for a cached sound. rate above 1
// plays faster and higher, like a tape sped up.
func (rm *ResourceManager) NewSoundPlayer(path string, rate float64) (*audio.Player, error) {
	if rm.audioContext == nil {
		return nil, fmt.Errorf("no audio context")
	}
	pcm := rm.soundCache[path]
	if pcm == nil {
		return nil, fmt.Errorf("sound %s not loaded", path)
	}
	if rate <= 0 || rate == 1 {
		return rm.audioContext.NewPlayerFromBytes(pcm), nil
	}
	// Claiming a higher source rate and resampling down shortens the clip.
	from := int(float64(rm.sampleRate) * rate)
	stream := audio.Resample(bytes.NewReader(pcm), int64(len(pcm)), from, rm.sampleRate)
	return rm.audioContext.NewPlayer(stream)
}

// LoadFont parses TrueType/OpenType data once under name and returns a face
// at the requested size.
func (rm *ResourceManager) LoadFont(name string, ttf []byte, size float64) (*text.GoTextFace, error) {
	cacheKey := fmt.Sprintf("%s:%.1f", name, size)
	if face, exists := rm.fontFaceCache[cacheKey]; exists {
		return face, nil
	}

	source, exists := rm.fontSourceCache[name]
	if !exists {
		var err error
		source, err = text.NewGoTextFaceSource(bytes.NewReader(ttf))
		if err != nil {
			return nil, fmt.Errorf("failed to parse font %s: %w", name, err)
		}
		rm.fontSourceCache[name] = source
	}

	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}
	rm.fontFaceCache[cacheKey] = face
	return face, nil
}

// GetFont retrieves a previously loaded face, or nil.
func (rm *ResourceManager) GetFont(name string, size float64) *text.GoTextFace {
	return rm.fontFaceCache[fmt.Sprintf("%s:%.1f", name, size)]
}
