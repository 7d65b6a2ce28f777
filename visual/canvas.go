package visual

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// halfBlock draws the upper pixel as foreground and the lower as background,
// giving two vertical pixels per terminal cell.
const halfBlock = "▀"

// Canvas is an RGB pixel grid rendered to the terminal with half blocks.
// Resize may be called between frames; every draw reads the current size.
type Canvas struct {
	w, h int
	pix  []colorful.Color
}

// NewCanvas creates a canvas of w by h pixels.
func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize changes the pixel dimensions and clears the canvas.
func (c *Canvas) Resize(w, h int) {
	w, h = max(0, w), max(0, h)
	c.w, c.h = w, h
	if cap(c.pix) >= w*h {
		c.pix = c.pix[:w*h]
	} else {
		c.pix = make([]colorful.Color, w*h)
	}
	c.Clear()
}

// ResizeCells sizes the canvas to a terminal area of cols by rows cells.
func (c *Canvas) ResizeCells(cols, rows int) {
	c.Resize(cols, rows*2)
}

func (c *Canvas) Size() (int, int) { return c.w, c.h }

func (c *Canvas) Clear() { clear(c.pix) }

// At returns the pixel at x, y, or black outside the canvas.
func (c *Canvas) At(x, y int) colorful.Color {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return colorful.Color{}
	}
	return c.pix[y*c.w+x]
}

func (c *Canvas) blend(x, y int, col colorful.Color, alpha float64) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	alpha = Clamp01(alpha)
	if alpha == 0 {
		return
	}
	i := y*c.w + x
	c.pix[i] = c.pix[i].BlendRgb(col, alpha)
}

func (c *Canvas) FillCircle(x, y, r float64, col colorful.Color, alpha float64) {
	c.FillEllipse(x, y, r, r, col, alpha)
}

func (c *Canvas) FillEllipse(x, y, rx, ry float64, col colorful.Color, alpha float64) {
	if rx <= 0 || ry <= 0 || alpha <= 0 {
		return
	}
	painted := c.scan(x, y, rx, ry, func(px, py int, _ float64) {
		c.blend(px, py, col, alpha)
	})
	if !painted {
		// Sub-pixel shapes still leave a mark proportional to their area.
		c.blend(int(math.Floor(x)), int(math.Floor(y)), col, alpha*min(1, math.Pi*rx*ry))
	}
}

func (c *Canvas) FillRadial(x, y, r float64, inner, outer GradientStop) {
	if r <= 0 {
		return
	}
	c.scan(x, y, r, r, func(px, py int, d float64) {
		col := inner.Color.BlendRgb(outer.Color, d)
		alpha := inner.Alpha + (outer.Alpha-inner.Alpha)*d
		c.blend(px, py, col, alpha)
	})
}

func (c *Canvas) FillLinear(from, to GradientStop) {
	span := float64(c.w + c.h - 2)
	if span <= 0 {
		span = 1
	}
	for py := range c.h {
		for px := range c.w {
			t := float64(px+py) / span
			col := from.Color.BlendRgb(to.Color, t)
			c.blend(px, py, col, from.Alpha+(to.Alpha-from.Alpha)*t)
		}
	}
}

// scan calls fn for every pixel whose centre lies inside the ellipse, with
// the normalized distance from the centre (0 at the centre, 1 on the edge).
func (c *Canvas) scan(x, y, rx, ry float64, fn func(px, py int, d float64)) bool {
	x0 := max(0, int(math.Floor(x-rx)))
	x1 := min(c.w-1, int(math.Ceil(x+rx)))
	y0 := max(0, int(math.Floor(y-ry)))
	y1 := min(c.h-1, int(math.Ceil(y+ry)))

	painted := false
	for py := y0; py <= y1; py++ {
		dy := (float64(py) + 0.5 - y) / ry
		for px := x0; px <= x1; px++ {
			dx := (float64(px) + 0.5 - x) / rx
			d2 := dx*dx + dy*dy
			if d2 > 1 {
				continue
			}
			fn(px, py, math.Sqrt(d2))
			painted = true
		}
	}
	return painted
}

// Render returns the canvas as h/2 lines of coloured half blocks. Runs of
// identical cells share one style to keep the escape sequences short.
func (c *Canvas) Render() string {
	if c.w == 0 || c.h == 0 {
		return ""
	}
	rows := (c.h + 1) / 2
	lines := make([]string, rows)
	for row := range rows {
		var sb strings.Builder
		runStart := 0
		var runTop, runBot string
		for x := 0; x <= c.w; x++ {
			var top, bot string
			if x < c.w {
				top = c.At(x, row*2).Clamped().Hex()
				bot = c.At(x, row*2+1).Clamped().Hex()
				if x > 0 && top == runTop && bot == runBot {
					continue
				}
			}
			if x > 0 {
				style := lipgloss.NewStyle().
					Foreground(lipgloss.Color(runTop)).
					Background(lipgloss.Color(runBot))
				sb.WriteString(style.Render(strings.Repeat(halfBlock, x-runStart)))
			}
			runStart, runTop, runBot = x, top, bot
		}
		lines[row] = sb.String()
	}
	return strings.Join(lines, "\n")
}
