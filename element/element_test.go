package element

import (
	"errors"
	"strings"
	"testing"

	"github.com/wudi/typeset"
	"github.com/wudi/typeset/fonts"
	"github.com/wudi/typeset/render"
	"github.com/wudi/typeset/style"
)

// testContext registers a fixed-metrics face: at size 10 every glyph,
// space and hyphen is 5 wide, ascent is 8, descent 2, line height 10.
func testContext(t *testing.T, fullPage float64) *typeset.Context {
	t.Helper()
	c := fonts.NewCollection()
	if err := c.Register("test", fonts.Family{Regular: fonts.FixedFace{Advance: 0.5}}); err != nil {
		t.Fatal(err)
	}
	ctx := typeset.NewContext(c, nil)
	ctx.FullPage = fullPage
	return ctx
}

// newArea returns a fresh page content area of the given size with no
// margins, plus the page for op inspection.
func newArea(width, height float64) (*render.Page, render.Area) {
	p := render.NewPage(1, width, height, render.Margins{})
	return p, p.Content()
}

func textOps(p *render.Page) []render.TextOp {
	var out []render.TextOp
	for _, op := range p.Ops() {
		if t, ok := op.(render.TextOp); ok {
			out = append(out, t)
		}
	}
	return out
}

// glyphCount counts the non-space, non-hyphen characters across the
// page's text ops.
func glyphCount(p *render.Page) int {
	n := 0
	for _, op := range textOps(p) {
		n += len(strings.ReplaceAll(strings.TrimSuffix(op.Text, "-"), " ", ""))
	}
	return n
}

func typesetErrIs(err, target error) bool { return errors.Is(err, target) }

// drainElement renders e across fresh pages of the given size until it
// completes, returning the pages. It mirrors the driver's remainder
// loop for tests below the document level.
func drainElement(t *testing.T, ctx *typeset.Context, e typeset.Element, width, height float64) []*render.Page {
	t.Helper()
	var pages []*render.Page
	st := style.New().WithSize(10)
	for i := 0; e != nil; i++ {
		if i > 100 {
			t.Fatal("element did not finish within 100 pages")
		}
		p, area := newArea(width, height)
		res, err := e.Render(ctx, area, st)
		if err != nil {
			t.Fatal(err)
		}
		pages = append(pages, p)
		e = res.Remainder
	}
	return pages
}
