package main

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/rng"
	"github.com/gonewx/fireworks/pkg/shell"
)

const (
	synthSampleRate    = beep.SampleRate(44100)
	smallBurstThrottle = 20 * time.Millisecond
)

// waveType selects an oscillator shape.
type waveType int

const (
	waveNoise waveType = iota
	waveCrackle
	waveSine
)

// voice describes how one sound name is synthesized at playback rate 1.
type voice struct {
	wave     waveType
	freq     float64
	duration time.Duration
	attack   time.Duration
	release  time.Duration
	gain     float64

	// thump mixes a low sine under the voice.
	thump float64
}

var voices = map[string]voice{
	shell.SoundLift:         {wave: waveNoise, duration: 900 * time.Millisecond, attack: 350 * time.Millisecond, release: 500 * time.Millisecond, gain: 0.3},
	shell.SoundBurst:        {wave: waveNoise, duration: 1400 * time.Millisecond, attack: 4 * time.Millisecond, release: 1300 * time.Millisecond, gain: 0.8, thump: 55},
	shell.SoundBurstSmall:   {wave: waveNoise, duration: 350 * time.Millisecond, attack: 2 * time.Millisecond, release: 320 * time.Millisecond, gain: 0.5},
	shell.SoundCrackle:      {wave: waveCrackle, duration: 900 * time.Millisecond, attack: 10 * time.Millisecond, release: 400 * time.Millisecond, gain: 0.6},
	shell.SoundCrackleSmall: {wave: waveCrackle, duration: 350 * time.Millisecond, attack: 5 * time.Millisecond, release: 200 * time.Millisecond, gain: 0.4},
}

// oscillator generates raw samples for a voice.
type oscillator struct {
	wave     waveType
	freq     float64
	phase    float64
	duration int
	position int
	rate     beep.SampleRate
	rng      *rand.Rand
}

func newOscillator(wave waveType, freq float64, duration time.Duration, rate beep.SampleRate, seed uint64) *oscillator {
	return &oscillator{
		wave:     wave,
		freq:     freq,
		duration: rate.N(duration),
		rate:     rate,
		rng:      rand.New(rand.NewPCG(seed, 0x5eed)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case waveNoise:
			val = o.rng.Float64()*2 - 1
		case waveCrackle:
			// Sparse pops over silence.
			if o.rng.Float64() < 0.004 {
				val = o.rng.Float64()*2 - 1
			}
		case waveSine:
			val = math.Sin(2 * math.Pi * o.phase)
			o.phase += o.freq / float64(o.rate)
			o.phase -= math.Floor(o.phase)
		}

		samples[i][0] = val
		samples[i][1] = val
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) *envelope {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	releaseStart := e.total - e.release
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if e.position >= releaseStart && e.release > 0 {
			vol = math.Min(vol, float64(e.total-e.position)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s at a linear gain; 0 is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Synth plays the show's sounds as synthesized noise bursts through the
// speaker. Volume and playback rate come from the show's sound table the same
// way the desktop viewer applies them to sampled files.
type Synth struct {
	mu      sync.Mutex
	rate    beep.SampleRate
	sources map[string]config.SoundSource
	rng     rng.Source
	now     func() time.Time
	play    func(...beep.Streamer)

	volume         float64
	enabled        bool
	lastSmallBurst time.Time
}

// NewSynth creates a synth that draws rates from r. It stays silent until
// Init opens the speaker.
func NewSynth(sounds config.SoundsConfig, r rng.Source) *Synth {
	if r == nil {
		r = rng.Default()
	}
	return &Synth{
		rate:    synthSampleRate,
		sources: sounds.Sources,
		rng:     r,
		now:     time.Now,
		volume:  1,
		enabled: true,
	}
}

// Init opens the speaker with a 100ms buffer.
func (s *Synth) Init() error {
	if err := speaker.Init(s.rate, s.rate.N(time.Second/10)); err != nil {
		return err
	}
	s.play = speaker.Play
	return nil
}

// Close stops playback.
func (s *Synth) Close() {
	if s.play != nil {
		speaker.Clear()
	}
}

// SetEnabled toggles sound.
func (s *Synth) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = enabled
	if !enabled && s.play != nil {
		speaker.Clear()
	}
}

// Enabled reports whether sounds are played.
func (s *Synth) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// SetVolume sets the master volume in [0, 1].
func (s *Synth) SetVolume(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volume = math.Max(0, math.Min(1, v))
}

// PlaySound implements shell.SoundPlayer.
func (s *Synth) PlaySound(name string, scale float64) {
	st := s.streamer(name, scale)
	if st == nil || s.play == nil {
		return
	}
	s.play(st)
}

// streamer builds the stream for one playback, or nil when the sound is
// muted, unknown or throttled.
func (s *Synth) streamer(name string, scale float64) beep.Streamer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled {
		return nil
	}
	v, ok := voices[name]
	source, known := s.sources[name]
	if !ok || !known {
		return nil
	}
	if name == shell.SoundBurstSmall {
		now := s.now()
		if now.Sub(s.lastSmallBurst) < smallBurstThrottle {
			return nil
		}
		s.lastSmallBurst = now
	}

	scale = math.Max(0, math.Min(1, scale))
	playbackRate := rng.Between(s.rng, source.PlaybackRate.Min, source.PlaybackRate.Max) * (2 - scale)
	seed := uint64(s.rng.Float64() * (1 << 53))

	duration := scaleDuration(v.duration, playbackRate)
	voiceStream := beep.Streamer(newOscillator(v.wave, v.freq*playbackRate, duration, s.rate, seed))
	if v.thump > 0 {
		voiceStream = beep.Mix(
			newVolume(voiceStream, 0.6),
			newVolume(newOscillator(waveSine, v.thump*playbackRate, duration, s.rate, seed), 0.4),
		)
	}
	shaped := newEnvelope(voiceStream, duration,
		scaleDuration(v.attack, playbackRate), scaleDuration(v.release, playbackRate), s.rate)
	return newVolume(shaped, v.gain*source.Volume*scale*s.volume)
}

// scaleDuration shortens d as a tape played at rate would.
func scaleDuration(d time.Duration, rate float64) time.Duration {
	if rate <= 0 {
		return d
	}
	return time.Duration(float64(d) / rate)
}
