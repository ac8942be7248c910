package element

import (
	"github.com/wudi/typeset"
	"github.com/wudi/typeset/render"
	"github.com/wudi/typeset/style"
)

// Styled overrides the inherited style for its child subtree. The
// override merges over the inherited style, so only its explicitly-set
// fields take effect.
type Styled struct {
	child typeset.Element
	st    style.Style
}

// NewStyled wraps child with a style override.
func NewStyled(child typeset.Element, st style.Style) *Styled {
	return &Styled{child: child, st: st}
}

func (s *Styled) Render(ctx *typeset.Context, area render.Area, st style.Style) (typeset.RenderResult, error) {
	res, err := s.child.Render(ctx, area, st.Merge(s.st))
	if err != nil {
		return typeset.RenderResult{}, err
	}
	if res.Remainder != nil {
		res.Remainder = &Styled{child: res.Remainder, st: s.st}
	}
	return res, nil
}

// Padded insets its child by fixed margins. The padding is repeated on
// every fragment of a split child, so continuation pages keep the same
// inset.
type Padded struct {
	child   typeset.Element
	padding render.Margins
}

// NewPadded wraps child with padding.
func NewPadded(child typeset.Element, padding render.Margins) *Padded {
	return &Padded{child: child, padding: padding}
}

func (p *Padded) Render(ctx *typeset.Context, area render.Area, st style.Style) (typeset.RenderResult, error) {
	res, err := p.child.Render(ctx, area.Shrink(p.padding), st)
	if err != nil {
		return typeset.RenderResult{}, err
	}
	if res.Height <= 0 && res.Remainder != nil {
		// The child made no progress; padding alone must not consume
		// space on this page.
		return typeset.Partial(0, p), nil
	}
	res.Height = min(res.Height+p.padding.Top+p.padding.Bottom, area.Height())
	if res.Remainder != nil {
		res.Remainder = &Padded{child: res.Remainder, padding: p.padding}
	}
	return res, nil
}

// Framed draws a border around its child. When the child splits, the
// fragment on each page is framed on three sides and the edge facing
// the page boundary stays open, so the frame reads as one box spanning
// the pages.
type Framed struct {
	child typeset.Element
	color style.Color
	line  float64
	cont  bool
}

// NewFramed wraps child with a border of the given color and line
// width.
func NewFramed(child typeset.Element, color style.Color, lineWidth float64) *Framed {
	if lineWidth <= 0 {
		lineWidth = 1
	}
	return &Framed{child: child, color: color, line: lineWidth}
}

func (f *Framed) Render(ctx *typeset.Context, area render.Area, st style.Style) (typeset.RenderResult, error) {
	inset := render.Margins{Top: f.line, Right: f.line, Bottom: f.line, Left: f.line}
	res, err := f.child.Render(ctx, area.Shrink(inset), st)
	if err != nil {
		return typeset.RenderResult{}, err
	}
	if res.Height <= 0 && res.Remainder != nil {
		return typeset.Partial(0, f), nil
	}

	h := min(res.Height+2*f.line, area.Height())
	w := area.Width()
	if !f.cont {
		area.DrawLine(0, 0, w, 0, f.color, f.line)
	}
	area.DrawLine(0, 0, 0, h, f.color, f.line)
	area.DrawLine(w, 0, w, h, f.color, f.line)
	if res.Remainder == nil {
		area.DrawLine(0, h, w, h, f.color, f.line)
	} else {
		res.Remainder = &Framed{child: res.Remainder, color: f.color, line: f.line, cont: true}
	}
	res.Height = h
	return res, nil
}
