// Package render provides the page and area model the layout engine
// draws into, and the draw-instruction interface consumed by the
// external PDF-writer collaborator.
//
// Coordinates are top-left based with y growing downwards, which is the
// natural frame for vertical pagination. PDFMatrix converts to PDF's
// bottom-left, y-up device space.
package render

import (
	"image"

	"github.com/wudi/typeset/style"
)

// Margins defines the page margins.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// Op is a single positioned draw instruction. Implementations are
// TextOp, RectOp, LineOp and ImageOp.
type Op interface {
	translated(dx, dy float64) Op
}

// TextOp draws a text run with its baseline at (X, Y).
type TextOp struct {
	X, Y  float64
	Text  string
	Style style.Style
}

func (o TextOp) translated(dx, dy float64) Op {
	o.X += dx
	o.Y += dy
	return o
}

// RectOp draws a rectangle, filled or stroked.
type RectOp struct {
	X, Y, W, H float64
	Color      style.Color
	Fill       bool
	LineWidth  float64
}

func (o RectOp) translated(dx, dy float64) Op {
	o.X += dx
	o.Y += dy
	return o
}

// LineOp draws a straight line segment.
type LineOp struct {
	X1, Y1, X2, Y2 float64
	Color          style.Color
	Width          float64
}

func (o LineOp) translated(dx, dy float64) Op {
	o.X1 += dx
	o.Y1 += dy
	o.X2 += dx
	o.Y2 += dy
	return o
}

// ImageOp places an image into the rectangle (X, Y, W, H). Handle names
// the image for writers that track resources; Image carries the decoded
// pixels when the caller provided them.
type ImageOp struct {
	X, Y, W, H float64
	Handle     string
	Image      image.Image
}

func (o ImageOp) translated(dx, dy float64) Op {
	o.X += dx
	o.Y += dy
	return o
}

// Page is an ordered sequence of draw instructions plus the page
// geometry. It is mutable while being filled and immutable once
// finalized.
type Page struct {
	number    int
	width     float64
	height    float64
	margins   Margins
	ops       []Op
	finalized bool
}

// NewPage returns an empty page with the given 1-based number and
// geometry.
func NewPage(number int, width, height float64, margins Margins) *Page {
	return &Page{number: number, width: width, height: height, margins: margins}
}

// Number returns the 1-based page number.
func (p *Page) Number() int { return p.number }

// Size returns the page width and height.
func (p *Page) Size() (width, height float64) { return p.width, p.height }

// Margins returns the page margins.
func (p *Page) Margins() Margins { return p.margins }

// Ops returns the recorded draw instructions in draw order. The slice
// must not be modified.
func (p *Page) Ops() []Op { return p.ops }

// Finalize freezes the page. Further draw calls are ignored.
func (p *Page) Finalize() { p.finalized = true }

// Finalized reports whether the page has been frozen.
func (p *Page) Finalized() bool { return p.finalized }

func (p *Page) append(op Op) {
	if p.finalized {
		return
	}
	p.ops = append(p.ops, op)
}

// Content returns the drawable area inside the margins.
func (p *Page) Content() Area {
	return Area{
		page:   p,
		x:      p.margins.Left,
		y:      p.margins.Top,
		width:  p.width - p.margins.Left - p.margins.Right,
		height: p.height - p.margins.Top - p.margins.Bottom,
	}
}

// PageWriter consumes finalized pages in order. It is the PDF-writer
// collaborator boundary; this package never produces serialized bytes.
type PageWriter interface {
	WritePage(p *Page) error
}
