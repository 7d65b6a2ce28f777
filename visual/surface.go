package visual

import colorful "github.com/lucasb-eyer/go-colorful"

// Surface is the 2D drawing target for one frame. Coordinates are in
// surface pixels; anything outside the surface is clipped.
type Surface interface {
	Size() (w, h int)
	Clear()
	FillCircle(x, y, r float64, c colorful.Color, alpha float64)
	FillEllipse(x, y, rx, ry float64, c colorful.Color, alpha float64)
	// FillRadial paints a disc whose colour runs from inner at the centre
	// to outer at radius r.
	FillRadial(x, y, r float64, inner, outer GradientStop)
	// FillLinear covers the whole surface with a gradient running from the
	// top-left corner to the bottom-right corner.
	FillLinear(from, to GradientStop)
}

// GradientStop is a colour with opacity.
type GradientStop struct {
	Color colorful.Color
	Alpha float64
}

// Bounds is the drawable area in surface pixels.
type Bounds struct {
	W, H float64
}

// Empty reports whether nothing can be drawn.
func (b Bounds) Empty() bool { return b.W <= 0 || b.H <= 0 }

// BoundsOf reads the current size of s.
func BoundsOf(s Surface) Bounds {
	if s == nil {
		return Bounds{}
	}
	w, h := s.Size()
	return Bounds{W: float64(max(0, w)), H: float64(max(0, h))}
}
