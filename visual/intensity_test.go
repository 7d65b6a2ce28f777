package visual

import (
	"math"
	"testing"
)

func filled(n int, v uint8) Snapshot {
	s := make(Snapshot, n)
	for i := range s {
		s[i] = v
	}
	return s
}

// --- Extract ---

func TestExtractSilence(t *testing.T) {
	ex := DefaultExtractor()
	for _, n := range []int{1, 8, 100, 1024} {
		if got := ex.Extract(filled(n, 0)); got != 0 {
			t.Errorf("Extract(zeros[%d]) = %v, want 0", n, got)
		}
	}
}

func TestExtractFullScale(t *testing.T) {
	ex := DefaultExtractor()
	for _, n := range []int{1, 8, 100, 1024} {
		if got := ex.Extract(filled(n, 255)); got != 1 {
			t.Errorf("Extract(max[%d]) = %v, want 1", n, got)
		}
	}
}

func TestExtractDegenerateLengths(t *testing.T) {
	ex := DefaultExtractor()
	tests := []struct {
		name string
		in   Snapshot
		want float64
	}{
		{"nil", nil, 0},
		{"empty", Snapshot{}, 0},
		{"single zero", Snapshot{0}, 0},
		{"single half", Snapshot{51}, 0.2},
		{"single max", Snapshot{255}, 1},
	}
	for _, tt := range tests {
		got := ex.Extract(tt.in)
		if math.IsNaN(got) || got < 0 || got > 1 {
			t.Errorf("%s: Extract = %v, want value in [0,1]", tt.name, got)
		}
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("%s: Extract = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestExtractUsesOnlyBassBand(t *testing.T) {
	// 1024 bins -> floor(1024*0.12) = 122 bass bins.
	s := make(Snapshot, 1024)
	for i := 122; i < len(s); i++ {
		s[i] = 255
	}
	if got := DefaultExtractor().Extract(s); got != 0 {
		t.Errorf("treble-only snapshot: Extract = %v, want 0", got)
	}

	s = make(Snapshot, 1024)
	for i := range 122 {
		s[i] = 255
	}
	if got := DefaultExtractor().Extract(s); got != 1 {
		t.Errorf("bass-only snapshot: Extract = %v, want 1", got)
	}
}

func TestExtractMean(t *testing.T) {
	// 100 bins -> 12 bass bins; half at 255, half at 0 -> 0.5.
	s := make(Snapshot, 100)
	for i := range 6 {
		s[i] = 255
	}
	if got := DefaultExtractor().Extract(s); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("Extract = %v, want 0.5", got)
	}
}

func TestExtractZeroMaxMagnitude(t *testing.T) {
	ex := Extractor{BassFraction: 0.12, MaxMagnitude: 0}
	got := ex.Extract(filled(64, 255))
	if got != 1 {
		t.Errorf("Extract with MaxMagnitude 0 = %v, want fallback to 255 scale (1)", got)
	}
}

// --- Clamp01 ---

func TestClamp01(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-1, 0},
		{0, 0},
		{0.4, 0.4},
		{1, 1},
		{3, 1},
		{math.NaN(), 0},
		{math.Inf(1), 1},
		{math.Inf(-1), 0},
	}
	for _, tt := range tests {
		if got := Clamp01(tt.in); got != tt.want {
			t.Errorf("Clamp01(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
