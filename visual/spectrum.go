// Package visual implements the audio-reactive frame pipeline: spectrum
// sampling, bass intensity, the particle field, the pulse and the canvas they
// draw on.
package visual

import (
	"math"
	"math/cmplx"

	"github.com/madelynnblue/go-dsp/fft"
)

// Source supplies the most recent mono time-domain samples, oldest first.
// It may return fewer than n samples, or none, while nothing is playing.
type Source interface {
	Samples(n int) []float64
}

// Snapshot holds one 8-bit magnitude per frequency bin.
type Snapshot []uint8

// SpectrumConfig mirrors the knobs of a browser AnalyserNode.
type SpectrumConfig struct {
	FFTSize     int     // analysis window, power of two
	Smoothing   float64 // weight of the previous frame, 0..1
	MinDecibels float64 // maps to 0
	MaxDecibels float64 // maps to 255
}

// DefaultSpectrumConfig returns a 2048-sample window with the analyser defaults.
func DefaultSpectrumConfig() SpectrumConfig {
	return SpectrumConfig{
		FFTSize:     2048,
		Smoothing:   0.8,
		MinDecibels: -100,
		MaxDecibels: -30,
	}
}

// Sampler turns the latest audio block into a byte-magnitude snapshot.
type Sampler struct {
	src    Source
	cfg    SpectrumConfig
	window []float64 // Blackman coefficients
	buf    []float64 // reusable FFT input
	smooth []float64 // smoothed linear magnitudes, one per bin
	out    Snapshot
}

// NewSampler creates a Sampler reading from src. src may be nil.
func NewSampler(src Source, cfg SpectrumConfig) *Sampler {
	def := DefaultSpectrumConfig()
	if cfg.FFTSize < 32 || cfg.FFTSize&(cfg.FFTSize-1) != 0 {
		cfg.FFTSize = def.FFTSize
	}
	if cfg.Smoothing < 0 || cfg.Smoothing >= 1 {
		cfg.Smoothing = def.Smoothing
	}
	if cfg.MaxDecibels <= cfg.MinDecibels {
		cfg.MinDecibels, cfg.MaxDecibels = def.MinDecibels, def.MaxDecibels
	}

	n := cfg.FFTSize
	window := make([]float64, n)
	for i := range n {
		x := 2 * math.Pi * float64(i) / float64(n)
		window[i] = 0.42 - 0.5*math.Cos(x) + 0.08*math.Cos(2*x)
	}
	return &Sampler{
		src:    src,
		cfg:    cfg,
		window: window,
		buf:    make([]float64, n),
		smooth: make([]float64, n/2),
		out:    make(Snapshot, n/2),
	}
}

// SetSource attaches (or detaches, with nil) the audio source. Hosts that
// swap engines between tracks call it; the pipeline never does.
func (s *Sampler) SetSource(src Source) {
	s.src = src
}

// Bins returns the snapshot length, half the analysis window.
func (s *Sampler) Bins() int { return len(s.out) }

// Sample returns the current spectrum. The returned slice is reused by the
// next call. Without a source the snapshot is all zeros.
func (s *Sampler) Sample() Snapshot {
	if s.src == nil {
		clear(s.smooth)
		clear(s.out)
		return s.out
	}

	n := s.cfg.FFTSize
	samples := s.src.Samples(n)
	if len(samples) > n {
		samples = samples[len(samples)-n:]
	}

	// Right-align so the newest audio always sits at the end of the window.
	clear(s.buf)
	copy(s.buf[n-len(samples):], samples)
	for i := range n {
		v := s.buf[i]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		s.buf[i] = v * s.window[i]
	}

	spectrum := fft.FFTReal(s.buf)

	span := s.cfg.MaxDecibels - s.cfg.MinDecibels
	tau := s.cfg.Smoothing
	for i := range s.smooth {
		mag := cmplx.Abs(spectrum[i]) / float64(n)
		s.smooth[i] = tau*s.smooth[i] + (1-tau)*mag
		if math.IsNaN(s.smooth[i]) || math.IsInf(s.smooth[i], 0) {
			s.smooth[i] = 0
		}

		if s.smooth[i] <= 0 {
			s.out[i] = 0
			continue
		}
		db := 20 * math.Log10(s.smooth[i])
		scaled := 255 * (db - s.cfg.MinDecibels) / span
		s.out[i] = uint8(max(0, min(255, scaled)))
	}
	return s.out
}
