package game

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"golang.org/x/image/font/gofont/goregular"
)

// Ebitengine only allows one audio context per process.
var testAudioContext *audio.Context

func TestMain(m *testing.M) {
	testAudioContext = audio.NewContext(DefaultSampleRate)
	os.Exit(m.Run())
}

// makeWAV builds a 16-bit stereo PCM WAV file with the given number of frames.
func makeWAV(sampleRate, frames int) []byte {
	dataSize := frames * 4
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(2)) // stereo
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*4))
	binary.Write(&buf, binary.LittleEndian, uint16(4))
	binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataSize))
	for i := 0; i < frames; i++ {
		v := int16(i * 16)
		binary.Write(&buf, binary.LittleEndian, v)
		binary.Write(&buf, binary.LittleEndian, v)
	}
	return buf.Bytes()
}

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	return writeTempFileAt(t, filepath.Join(t.TempDir(), name), data)
}

func writeTempFileAt(t *testing.T, path string, data []byte) string {
	t.Helper()
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSoundEffectWAV(t *testing.T) {
	rm := NewResourceManager(nil)
	if rm.SampleRate() != DefaultSampleRate {
		t.Fatalf("SampleRate() = %d, want %d", rm.SampleRate(), DefaultSampleRate)
	}
	path := writeTempFile(t, "pop.wav", makeWAV(DefaultSampleRate, 480))

	pcm, err := rm.LoadSoundEffect(path)
	if err != nil {
		t.Fatalf("LoadSoundEffect: %v", err)
	}
	if len(pcm) != 480*4 {
		t.Errorf("decoded %d bytes, want %d", len(pcm), 480*4)
	}
	if got := rm.GetSound(path); !bytes.Equal(got, pcm) {
		t.Error("GetSound did not return the cached PCM")
	}

	// 第二次加载命中缓存，即使文件已被删除
	os.Remove(path)
	if _, err := rm.LoadSoundEffect(path); err != nil {
		t.Errorf("cached LoadSoundEffect: %v", err)
	}
}

func TestLoadSoundEffectErrors(t *testing.T) {
	rm := NewResourceManager(nil)

	_, err := rm.LoadSoundEffect(filepath.Join(t.TempDir(), "missing.mp3"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: got %v, want os.ErrNotExist", err)
	}

	path := writeTempFile(t, "pop.flac", []byte("fLaC"))
	if _, err := rm.LoadSoundEffect(path); err == nil {
		t.Error("unsupported format: expected error")
	}

	path = writeTempFile(t, "broken.wav", []byte("not a wav"))
	if _, err := rm.LoadSoundEffect(path); err == nil {
		t.Error("corrupt wav: expected error")
	}
	if rm.GetSound(path) != nil {
		t.Error("failed sound must not be cached")
	}
}

func TestNewSoundPlayerWithoutContext(t *testing.T) {
	rm := NewResourceManager(nil)
	if _, err := rm.NewSoundPlayer("assets/sounds/lift1.mp3", 1); err == nil {
		t.Error("expected error without audio context")
	}
}

func TestNewSoundPlayer(t *testing.T) {
	rm := NewResourceManager(testAudioContext)
	path := writeTempFile(t, "pop.wav", makeWAV(DefaultSampleRate, 4800))
	if _, err := rm.NewSoundPlayer(path, 1); err == nil {
		t.Error("expected error before the sound is loaded")
	}
	if _, err := rm.LoadSoundEffect(path); err != nil {
		t.Fatalf("LoadSoundEffect: %v", err)
	}
	for _, rate := range []float64{1, 0.8, 1.5} {
		player, err := rm.NewSoundPlayer(path, rate)
		if err != nil {
			t.Errorf("NewSoundPlayer(rate=%v): %v", rate, err)
			continue
		}
		player.Close()
	}
}

func TestLoadFont(t *testing.T) {
	rm := NewResourceManager(nil)
	face, err := rm.LoadFont("Go Regular", goregular.TTF, 16)
	if err != nil {
		t.Fatalf("LoadFont: %v", err)
	}
	if face.Size != 16 {
		t.Errorf("face size = %v, want 16", face.Size)
	}
	if rm.GetFont("Go Regular", 16) != face {
		t.Error("GetFont did not return the cached face")
	}

	// 同一字体源复用，不同字号得到新的 face
	big, err := rm.LoadFont("Go Regular", nil, 32)
	if err != nil {
		t.Fatalf("LoadFont reuse: %v", err)
	}
	if big.Source != face.Source {
		t.Error("font source was parsed twice")
	}
	if rm.GetFont("Go Bold", 16) != nil {
		t.Error("GetFont returned a face for an unloaded font")
	}

	if _, err := rm.LoadFont("Broken", []byte("nope"), 12); err == nil {
		t.Error("expected error for invalid font data")
	}
}
