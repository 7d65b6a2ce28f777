// Package config loads lyricflow runtime settings from environment variables.
package config

import (
	"os"
	"strconv"
	"time"

	"lyricflow/lyrics"
	"lyricflow/visual"
)

// Config holds all runtime configuration, loaded from environment variables.
type Config struct {
	// Audio engine
	SampleRate int     // speaker sample rate in Hz
	Volume     float64 // initial volume in dB
	Speed      float64 // initial playback rate

	// Frame loop
	FPS     int // ticks per second
	FFTSize int // analysis window size in samples

	// Particle field
	SpawnThreshold float64
	MaxParticles   int

	// Lyrics
	LyricsDir     string        // extra directory searched for <track>.json/.lrc
	LyricDebounce time.Duration // delay between fade-out and the next line
	LyricHold     time.Duration // auto-hide after a line has been shown this long

	LogFile string // empty disables logging
}

// Load reads configuration from environment variables with sane defaults.
func Load() Config {
	return Config{
		SampleRate: envInt("LYRICFLOW_SAMPLE_RATE", 44100),
		Volume:     envFloat("LYRICFLOW_VOLUME", 0),
		Speed:      envFloat("LYRICFLOW_SPEED", 1.0),

		FPS:     envInt("LYRICFLOW_FPS", 30),
		FFTSize: envInt("LYRICFLOW_FFT_SIZE", 2048),

		SpawnThreshold: envFloat("LYRICFLOW_SPAWN_THRESHOLD", 0.15),
		MaxParticles:   envInt("LYRICFLOW_MAX_PARTICLES", 600),

		LyricsDir:     envStr("LYRICFLOW_LYRICS_DIR", ""),
		LyricDebounce: envDuration("LYRICFLOW_LYRIC_DEBOUNCE", 40*time.Millisecond),
		LyricHold:     envDuration("LYRICFLOW_LYRIC_HOLD", 7*time.Second),

		LogFile: envStr("LYRICFLOW_LOG", ""),
	}
}

// TickInterval returns the frame period for the configured FPS.
func (c Config) TickInterval() time.Duration {
	fps := c.FPS
	if fps <= 0 {
		fps = 30
	}
	return time.Second / time.Duration(fps)
}

// Spectrum returns the sampler settings.
func (c Config) Spectrum() visual.SpectrumConfig {
	cfg := visual.DefaultSpectrumConfig()
	cfg.FFTSize = c.FFTSize
	return cfg
}

// Field returns the particle field settings.
func (c Config) Field() visual.FieldConfig {
	cfg := visual.DefaultFieldConfig()
	cfg.SpawnThreshold = c.SpawnThreshold
	if c.MaxParticles > 0 {
		cfg.MaxParticles = c.MaxParticles
	}
	return cfg
}

// Cursor returns the lyric cursor timings.
func (c Config) Cursor() lyrics.CursorConfig {
	return lyrics.CursorConfig{
		Debounce: c.LyricDebounce,
		Hold:     c.LyricHold,
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

// envDuration accepts Go duration strings ("40ms") or bare milliseconds ("40").
func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil && d >= 0 {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n >= 0 {
		return time.Duration(n) * time.Millisecond
	}
	return fallback
}
