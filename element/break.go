package element

import (
	"github.com/wudi/typeset"
	"github.com/wudi/typeset/render"
	"github.com/wudi/typeset/style"
)

// PageBreak forces the current page to end. It consumes no height; the
// driver finalizes the page and places subsequent content on a fresh
// one. A break on a page with no content yet is a no-op.
type PageBreak struct{}

// NewPageBreak returns a page break element.
func NewPageBreak() PageBreak { return PageBreak{} }

func (PageBreak) Render(*typeset.Context, render.Area, style.Style) (typeset.RenderResult, error) {
	return typeset.RenderResult{PageBreak: true}, nil
}

// Spacer consumes fixed vertical space without drawing anything. A
// spacer taller than the remaining area consumes what is left and
// completes; it never forces a page break.
type Spacer struct {
	height float64
}

// NewSpacer returns a spacer of the given height.
func NewSpacer(height float64) Spacer {
	if height < 0 {
		height = 0
	}
	return Spacer{height: height}
}

func (s Spacer) Render(_ *typeset.Context, area render.Area, _ style.Style) (typeset.RenderResult, error) {
	return typeset.Done(min(s.height, area.Height())), nil
}
