package visual

import (
	"math"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Background paints a slowly drifting two-hue gradient with a faint glow.
type Background struct {
	HueRate float64 // degrees per second
	HueGap  float64 // hue distance between the two corners
	Alpha   float64
	Glow    float64 // opacity of the central glow
}

// DefaultBackground drifts the hue by 3.2 degrees per second.
func DefaultBackground() Background {
	return Background{HueRate: 3.2, HueGap: 80, Alpha: 0.95, Glow: 0.02}
}

// Hues returns the corner hues after elapsed playback.
func (bg Background) Hues(elapsed time.Duration) (float64, float64) {
	h1 := math.Floor(math.Mod(elapsed.Seconds()*bg.HueRate, 360))
	if h1 < 0 {
		h1 += 360
	}
	return h1, math.Mod(h1+bg.HueGap, 360)
}

// Paint fills s for the given elapsed time.
func (bg Background) Paint(s Surface, elapsed time.Duration) {
	b := BoundsOf(s)
	if b.Empty() {
		return
	}
	h1, h2 := bg.Hues(elapsed)
	s.FillLinear(
		GradientStop{Color: colorful.Hsl(h1, 0.8, 0.2), Alpha: bg.Alpha},
		GradientStop{Color: colorful.Hsl(h2, 0.7, 0.3), Alpha: bg.Alpha},
	)
	s.FillRadial(b.W/2, b.H/2, max(b.W, b.H)/1.8,
		GradientStop{Color: colorful.Color{R: 1, G: 1, B: 1}, Alpha: bg.Glow},
		GradientStop{Color: colorful.Color{}, Alpha: 0},
	)
}
