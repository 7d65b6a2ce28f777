// Package player provides the audio engine: decoding, playback rate and
// volume control, and a sample tap that feeds the spectrum sampler.
package player

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// Speed bounds match the usual 0.5x-2x playback selector.
const (
	MinSpeed = 0.5
	MaxSpeed = 2.0
)

// tapSize holds two analysis windows so a full window is always available.
const tapSize = 4096

// Player is the audio engine managing the playback pipeline:
//
//	[Decode] -> [Resample x speed] -> [Volume] -> [Tap] -> [Ctrl] -> [Speaker]
type Player struct {
	mu        sync.Mutex
	sr        beep.SampleRate
	streamer  beep.StreamSeekCloser
	format    beep.Format
	rate      *beep.Resampler
	ctrl      *beep.Ctrl
	volume    float64 // dB, range [-30, +6]
	speed     float64
	tap       *Tap
	trackDone atomic.Bool
	playing   bool
	paused    bool
}

// New initializes the speaker at sr and returns an idle Player.
func New(sr beep.SampleRate) (*Player, error) {
	if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("speaker: %w", err)
	}
	return &Player{sr: sr, speed: 1}, nil
}

// decode picks a decoder by file extension.
func decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("open: %w", err)
	}
	var (
		s      beep.StreamSeekCloser
		format beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		s, format, err = wav.Decode(f)
	default:
		s, format, err = mp3.Decode(f)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("decode: %w", err)
	}
	return s, format, nil
}

// Play opens and starts playing an audio file, building the full pipeline.
func (p *Player) Play(path string) error {
	p.Stop()

	streamer, format, err := decode(path)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.streamer = streamer
	p.format = format
	p.trackDone.Store(false)

	// One resampler covers both the sample-rate conversion and the speed.
	p.rate = beep.ResampleRatio(4, p.ratio(p.speed), streamer)
	var s beep.Streamer = p.rate
	s = &volumeStreamer{s: s, vol: &p.volume, mu: &p.mu}
	p.tap = NewTap(s, tapSize)
	p.ctrl = &beep.Ctrl{Streamer: p.tap}

	p.playing = true
	p.paused = false
	p.mu.Unlock()

	speaker.Play(beep.Seq(p.ctrl, beep.Callback(func() {
		p.trackDone.Store(true)
	})))

	return nil
}

// ratio converts a playback speed into a resampling ratio. Must be called
// with mu held.
func (p *Player) ratio(speed float64) float64 {
	return float64(p.format.SampleRate) / float64(p.sr) * speed
}

// TogglePause toggles between paused and playing states.
func (p *Player) TogglePause() {
	speaker.Lock()
	defer speaker.Unlock()
	if p.ctrl != nil {
		p.ctrl.Paused = !p.ctrl.Paused
		p.paused = p.ctrl.Paused
	}
}

// Stop halts playback and releases resources.
func (p *Player) Stop() {
	speaker.Clear()
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}
	p.rate = nil
	p.ctrl = nil
	p.tap = nil
	p.playing = false
	p.paused = false
	p.trackDone.Store(false)
}

// Seek moves the playback position by d (positive or negative).
func (p *Player) Seek(d time.Duration) error {
	return p.SeekTo(p.Position() + d)
}

// SeekTo moves playback to pos, clamped to the track.
func (p *Player) SeekTo(pos time.Duration) error {
	speaker.Lock()
	defer speaker.Unlock()
	if p.streamer == nil {
		return nil
	}
	n := p.format.SampleRate.N(pos)
	n = max(0, min(n, p.streamer.Len()-1))
	if err := p.streamer.Seek(n); err != nil {
		return fmt.Errorf("seek: %w", err)
	}
	p.mu.Lock()
	tap := p.tap
	p.mu.Unlock()
	if tap != nil {
		tap.Reset()
	}
	return nil
}

// Position returns the current media position, independent of speed.
func (p *Player) Position() time.Duration {
	speaker.Lock()
	defer speaker.Unlock()
	if p.streamer == nil {
		return 0
	}
	return p.format.SampleRate.D(p.streamer.Position())
}

// Duration returns the total duration of the current track.
func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return 0
	}
	return p.format.SampleRate.D(p.streamer.Len())
}

// SetSpeed sets the playback rate, clamped to [MinSpeed, MaxSpeed].
func (p *Player) SetSpeed(speed float64) {
	speed = max(min(speed, MaxSpeed), MinSpeed)
	speaker.Lock()
	defer speaker.Unlock()
	p.mu.Lock()
	defer p.mu.Unlock()
	p.speed = speed
	if p.rate != nil {
		p.rate.SetRatio(p.ratio(speed))
	}
}

// Speed returns the playback rate.
func (p *Player) Speed() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.speed
}

// SetVolume sets the volume in dB, clamped to [-30, +6].
func (p *Player) SetVolume(db float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = max(min(db, 6), -30)
}

// Volume returns the current volume in dB.
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// IsPlaying returns true if a track is loaded and playing (possibly paused).
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// IsPaused returns true if playback is paused.
func (p *Player) IsPaused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// TrackDone returns true if the current track has finished playing.
func (p *Player) TrackDone() bool {
	return p.trackDone.Load()
}

// Samples returns up to n of the latest mono samples for analysis. It
// returns nil when nothing is loaded.
func (p *Player) Samples(n int) []float64 {
	p.mu.Lock()
	tap := p.tap
	p.mu.Unlock()
	if tap == nil {
		return nil
	}
	return tap.Samples(n)
}

// Close stops playback and cleans up.
func (p *Player) Close() {
	p.Stop()
}

// volumeStreamer applies dB gain to an audio stream.
type volumeStreamer struct {
	s   beep.Streamer
	vol *float64
	mu  *sync.Mutex
}

func (v *volumeStreamer) Stream(samples [][2]float64) (int, bool) {
	n, ok := v.s.Stream(samples)
	v.mu.Lock()
	gain := math.Pow(10, *v.vol/20)
	v.mu.Unlock()
	for i := range n {
		samples[i][0] *= gain
		samples[i][1] *= gain
	}
	return n, ok
}

func (v *volumeStreamer) Err() error { return v.s.Err() }
