package visual

import (
	"math"
	"testing"
)

type fakeSource struct {
	samples []float64
	calls   int
}

func (f *fakeSource) Samples(n int) []float64 {
	f.calls++
	if len(f.samples) > n {
		return f.samples[len(f.samples)-n:]
	}
	return f.samples
}

func sine(n int, bin, size int, amp float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * math.Sin(2*math.Pi*float64(bin)*float64(i)/float64(size))
	}
	return out
}

func allZero(s Snapshot) bool {
	for _, v := range s {
		if v != 0 {
			return false
		}
	}
	return true
}

func TestSamplerNoSource(t *testing.T) {
	s := NewSampler(nil, DefaultSpectrumConfig())
	snap := s.Sample()
	if len(snap) != 1024 {
		t.Fatalf("len(Sample()) = %d, want 1024", len(snap))
	}
	if !allZero(snap) {
		t.Error("Sample() without a source should be all zeros")
	}
}

func TestSamplerSilence(t *testing.T) {
	src := &fakeSource{samples: make([]float64, 2048)}
	s := NewSampler(src, DefaultSpectrumConfig())
	if snap := s.Sample(); !allZero(snap) {
		t.Error("Sample() of silence should be all zeros")
	}
	if src.calls != 1 {
		t.Errorf("source calls = %d, want 1", src.calls)
	}
}

func TestSamplerShortInput(t *testing.T) {
	src := &fakeSource{samples: []float64{0.5, -0.5, 0.25}}
	s := NewSampler(src, DefaultSpectrumConfig())
	snap := s.Sample()
	if len(snap) != s.Bins() {
		t.Errorf("len(Sample()) = %d, want %d", len(snap), s.Bins())
	}
}

func TestSamplerEmptyInput(t *testing.T) {
	s := NewSampler(&fakeSource{}, DefaultSpectrumConfig())
	if snap := s.Sample(); !allZero(snap) {
		t.Error("Sample() with no audio yet should be all zeros")
	}
}

func TestSamplerSinePeak(t *testing.T) {
	const bin = 20
	src := &fakeSource{samples: sine(2048, bin, 2048, 1)}
	s := NewSampler(src, DefaultSpectrumConfig())
	snap := s.Sample()

	if snap[bin] != 255 {
		t.Errorf("snap[%d] = %d, want 255 for a full-scale tone", bin, snap[bin])
	}
	if far := snap[bin+300]; far >= snap[bin] {
		t.Errorf("snap[%d] = %d, want below the tone bin (%d)", bin+300, far, snap[bin])
	}
}

func TestSamplerBassToneDrivesIntensity(t *testing.T) {
	// Bin 10 of 1024 sits inside the 12% bass band.
	src := &fakeSource{samples: sine(2048, 10, 2048, 1)}
	s := NewSampler(src, DefaultSpectrumConfig())
	ex := DefaultExtractor()

	var level float64
	for range 10 {
		level = ex.Extract(s.Sample())
	}
	if level <= 0 {
		t.Errorf("intensity for a bass tone = %v, want > 0", level)
	}

	src.samples = make([]float64, 2048)
	s.SetSource(nil)
	if got := ex.Extract(s.Sample()); got != 0 {
		t.Errorf("intensity after detaching source = %v, want 0", got)
	}
}

func TestSamplerConfigFallbacks(t *testing.T) {
	tests := []struct {
		name string
		cfg  SpectrumConfig
		bins int
	}{
		{"zero value", SpectrumConfig{}, 1024},
		{"not power of two", SpectrumConfig{FFTSize: 1000}, 1024},
		{"too small", SpectrumConfig{FFTSize: 16}, 1024},
		{"512", SpectrumConfig{FFTSize: 512, Smoothing: 0.5, MinDecibels: -90, MaxDecibels: -10}, 256},
	}
	for _, tt := range tests {
		s := NewSampler(nil, tt.cfg)
		if s.Bins() != tt.bins {
			t.Errorf("%s: Bins() = %d, want %d", tt.name, s.Bins(), tt.bins)
		}
	}
}

func TestSamplerRecoversFromNonFiniteBlock(t *testing.T) {
	tone := sine(2048, 4, 2048, 1)
	bad := append([]float64(nil), tone...)
	bad[len(bad)-1] = math.NaN()
	bad[len(bad)-2] = math.Inf(1)

	src := &fakeSource{samples: bad}
	s := NewSampler(src, DefaultSpectrumConfig())
	ref := NewSampler(&fakeSource{samples: tone}, DefaultSpectrumConfig())
	ex := DefaultExtractor()

	s.Sample()
	src.samples = tone
	var got, want float64
	var snap Snapshot
	for range 200 {
		snap = s.Sample()
		got = ex.Extract(snap)
		want = ex.Extract(ref.Sample())
	}
	for i, v := range s.smooth {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("smooth[%d] = %v after a bad block", i, v)
		}
	}
	if snap[4] != 255 {
		t.Errorf("snap[4] = %d, want 255 once the tone resumes", snap[4])
	}
	if got <= 0 || math.Abs(got-want) > 0.01 {
		t.Errorf("intensity = %v, want close to %v", got, want)
	}
}
