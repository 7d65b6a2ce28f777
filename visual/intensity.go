package visual

// Extractor reduces a frequency snapshot to a bass intensity in [0,1].
//
// The estimate is the mean magnitude of the lowest BassFraction of the bins.
// It tracks low-frequency energy over one analysis window and is not an
// onset detector: sustained bass reads as a sustained high intensity.
type Extractor struct {
	BassFraction float64 // share of the lowest bins treated as the bass band
	MaxMagnitude float64 // largest representable bin value
}

// DefaultExtractor returns the extractor for 8-bit analyser snapshots.
func DefaultExtractor() Extractor {
	return Extractor{BassFraction: 0.12, MaxMagnitude: 255}
}

// Extract returns the normalized bass-band mean of s.
func (e Extractor) Extract(s Snapshot) float64 {
	if len(s) == 0 {
		return 0
	}
	count := int(float64(len(s)) * e.BassFraction)
	count = max(1, min(count, len(s)))

	var sum float64
	for _, v := range s[:count] {
		sum += float64(v)
	}
	peak := e.MaxMagnitude
	if peak <= 0 {
		peak = 255
	}
	return Clamp01(sum / float64(count) / peak)
}

// Clamp01 limits v to [0,1]. NaN maps to 0.
func Clamp01(v float64) float64 {
	if v != v || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
