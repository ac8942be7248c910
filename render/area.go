package render

import (
	"image"
	"math"

	"github.com/wudi/typeset/style"
)

// Area is a drawable rectangle on a page. The width is fixed for the
// area's lifetime; the remaining height only shrinks. Areas are values:
// Skip, Child and Shrink derive sub-areas without affecting the
// original, and draw calls record ops on the underlying page at
// absolute coordinates.
type Area struct {
	page   *Page
	x, y   float64
	width  float64
	height float64
}

// NewMeasureArea returns an unbounded-height area backed by a discarded
// page, for dry-run measurement of element heights. Ops drawn into it
// are thrown away.
func NewMeasureArea(width float64) Area {
	p := NewPage(0, width, math.Inf(1), Margins{})
	return Area{page: p, width: width, height: math.Inf(1)}
}

// Width returns the fixed width of the area.
func (a Area) Width() float64 { return a.width }

// Height returns the remaining height of the area.
func (a Area) Height() float64 { return a.height }

// Skip returns a sub-area with the origin advanced down by h and the
// remaining height reduced accordingly, clamped at zero.
func (a Area) Skip(h float64) Area {
	if h < 0 {
		h = 0
	}
	if h > a.height {
		h = a.height
	}
	a.y += h
	a.height -= h
	return a
}

// Child returns a sub-area offset horizontally by x with the given
// width, sharing the current vertical extent.
func (a Area) Child(x, width float64) Area {
	a.x += x
	a.width = width
	return a
}

// WithHeight returns a copy of the area with the remaining height capped
// at h.
func (a Area) WithHeight(h float64) Area {
	if h < a.height {
		a.height = h
	}
	return a
}

// Shrink insets the area by the given margins on all four sides.
func (a Area) Shrink(m Margins) Area {
	a.x += m.Left
	a.y += m.Top
	a.width -= m.Left + m.Right
	a.height -= m.Top + m.Bottom
	if a.width < 0 {
		a.width = 0
	}
	if a.height < 0 {
		a.height = 0
	}
	return a
}

// DrawText records a text run with its baseline at (x, y) relative to
// the area origin.
func (a Area) DrawText(x, y float64, text string, st style.Style) {
	a.page.append(TextOp{X: a.x + x, Y: a.y + y, Text: text, Style: st})
}

// DrawRect records a rectangle relative to the area origin.
func (a Area) DrawRect(x, y, w, h float64, c style.Color, fill bool, lineWidth float64) {
	a.page.append(RectOp{X: a.x + x, Y: a.y + y, W: w, H: h, Color: c, Fill: fill, LineWidth: lineWidth})
}

// DrawLine records a line segment relative to the area origin.
func (a Area) DrawLine(x1, y1, x2, y2 float64, c style.Color, width float64) {
	a.page.append(LineOp{X1: a.x + x1, Y1: a.y + y1, X2: a.x + x2, Y2: a.y + y2, Color: c, Width: width})
}

// DrawImage records an image placement relative to the area origin.
func (a Area) DrawImage(x, y, w, h float64, handle string, img image.Image) {
	a.page.append(ImageOp{X: a.x + x, Y: a.y + y, W: w, H: h, Handle: handle, Image: img})
}

// Place records pre-recorded ops translated to the area origin. It is
// how pre-measured external blocks land on a page.
func (a Area) Place(ops []Op) {
	for _, op := range ops {
		a.page.append(op.translated(a.x, a.y))
	}
}

// OpCount returns the number of ops recorded on the underlying page.
func (a Area) OpCount() int { return len(a.page.ops) }
