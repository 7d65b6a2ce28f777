package visual

import colorful "github.com/lucasb-eyer/go-colorful"

// PulseDriver maps intensity to the scale and colour of the central pulse.
// It keeps no state between ticks.
type PulseDriver struct {
	BaseScale  float64
	ScaleGain  float64
	BaseRadius float64 // fraction of the smaller surface side at scale 1

	Inner, Outer          colorful.Color
	InnerAlpha, InnerGain float64
	OuterAlpha, OuterGain float64
}

// DefaultPulse returns the pink-to-blue pulse.
func DefaultPulse() PulseDriver {
	return PulseDriver{
		BaseScale:  1,
		ScaleGain:  0.9,
		BaseRadius: 0.22,
		Inner:      colorful.Color{R: 255.0 / 255, G: 80.0 / 255, B: 160.0 / 255},
		Outer:      colorful.Color{R: 107.0 / 255, G: 156.0 / 255, B: 255.0 / 255},
		InnerAlpha: 0.28,
		InnerGain:  0.45,
		OuterAlpha: 0.06,
		OuterGain:  0.25,
	}
}

// Transform is the pulse state for one tick.
type Transform struct {
	Scale float64
	Inner GradientStop
	Outer GradientStop
}

// Tick computes the transform for intensity, clamped to [0,1].
func (d PulseDriver) Tick(intensity float64) Transform {
	i := Clamp01(intensity)
	return Transform{
		Scale: d.BaseScale + i*d.ScaleGain,
		Inner: GradientStop{Color: d.Inner, Alpha: Clamp01(d.InnerAlpha + i*d.InnerGain)},
		Outer: GradientStop{Color: d.Outer, Alpha: Clamp01(d.OuterAlpha + i*d.OuterGain)},
	}
}

// Draw paints the pulse centred on s.
func (d PulseDriver) Draw(s Surface, t Transform) {
	b := BoundsOf(s)
	if b.Empty() {
		return
	}
	// Terminal pixels are square, so the smaller side bounds the disc.
	r := min(b.W, b.H) * d.BaseRadius * t.Scale
	s.FillRadial(b.W/2, b.H/2, r, t.Inner, t.Outer)
}
