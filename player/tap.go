package player

import (
	"sync"

	"github.com/gopxl/beep/v2"
)

// Tap copies the mono mix of everything it streams into a ring buffer so
// the spectrum sampler can read the latest audio without touching the
// speaker goroutine's buffers.
type Tap struct {
	s      beep.Streamer
	mu     sync.Mutex
	ring   []float64
	pos    int
	filled int
}

// NewTap wraps s with a ring of size samples.
func NewTap(s beep.Streamer, size int) *Tap {
	return &Tap{s: s, ring: make([]float64, max(1, size))}
}

// Stream passes audio through while recording it.
func (t *Tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.s.Stream(samples)
	t.mu.Lock()
	for i := range n {
		t.ring[t.pos] = (samples[i][0] + samples[i][1]) / 2
		t.pos = (t.pos + 1) % len(t.ring)
	}
	t.filled = min(len(t.ring), t.filled+n)
	t.mu.Unlock()
	return n, ok
}

// Err returns the underlying streamer's error.
func (t *Tap) Err() error {
	return t.s.Err()
}

// Samples returns up to n of the most recent samples, oldest first. Fewer
// are returned until the ring has been filled once.
func (t *Tap) Samples(n int) []float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	n = max(0, min(n, t.filled))
	out := make([]float64, n)
	size := len(t.ring)
	start := (t.pos - n + size) % size
	for i := range n {
		out[i] = t.ring[(start+i)%size]
	}
	return out
}

// Reset forgets captured audio, e.g. after a seek.
func (t *Tap) Reset() {
	t.mu.Lock()
	clear(t.ring)
	t.pos, t.filled = 0, 0
	t.mu.Unlock()
}
