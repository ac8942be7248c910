// Package typeset is a deterministic document layout and pagination
// engine. Callers build a tree of elements, hand it to a Document, and
// receive ordered pages of positioned draw instructions for an external
// PDF writer.
//
// Rendering is remainder-based: an element that does not fit into the
// area it is offered reports the height it consumed and a new element
// holding the undrawn content. The original element is never mutated,
// so a tree can be rendered repeatedly with identical results.
package typeset

import (
	"fmt"
	"math"

	"github.com/wudi/typeset/fonts"
	"github.com/wudi/typeset/hyphen"
	"github.com/wudi/typeset/observability"
	"github.com/wudi/typeset/render"
	"github.com/wudi/typeset/style"
	"github.com/wudi/typeset/text"
)

// Element is a renderable node of the document tree.
type Element interface {
	// Render draws as much of the element as fits into area, under the
	// inherited style st, and reports the height consumed. Render must
	// not mutate the element: undrawn content is returned as the
	// result's remainder.
	Render(ctx *Context, area render.Area, st style.Style) (RenderResult, error)
}

// RenderResult reports the outcome of rendering one element into one
// area.
type RenderResult struct {
	// Height is the vertical extent consumed, measured from the top of
	// the offered area.
	Height float64
	// Remainder holds the content that did not fit, or nil when the
	// element rendered completely.
	Remainder Element
	// PageBreak requests that the current page end after this element
	// even though area remains.
	PageBreak bool
}

// Done reports a complete render of the given height.
func Done(height float64) RenderResult { return RenderResult{Height: height} }

// Partial reports a render that consumed height and left remainder for
// the next area.
func Partial(height float64, remainder Element) RenderResult {
	return RenderResult{Height: height, Remainder: remainder}
}

// Diagnostic records a non-fatal layout problem, such as content wider
// or taller than any area can hold. Diagnostics never stop rendering.
type Diagnostic struct {
	// Page is the 1-based page the problem occurred on, 0 when it arose
	// during dry-run measurement.
	Page int
	// Element names the element kind that reported the problem.
	Element string
	// Message describes the problem.
	Message string
}

func (d Diagnostic) String() string {
	if d.Page > 0 {
		return fmt.Sprintf("page %d: %s: %s", d.Page, d.Element, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Element, d.Message)
}

// Context carries the collaborators and per-run state elements render
// against. A single Context serves one Render call of one Document.
type Context struct {
	// Fonts resolves style descriptors to measurable faces.
	Fonts *fonts.Collection
	// Hyphenator supplies intra-word break candidates, or nil to break
	// at word boundaries only.
	Hyphenator hyphen.Hyphenator
	// Logger receives layout progress events.
	Logger observability.Logger

	// FullPage is the content height of an empty page. Elements use it
	// to decide whether deferring to a fresh page could ever help; zero
	// means unbounded.
	FullPage float64

	page   int
	silent bool
	diags  []Diagnostic
}

// NewContext returns a context with a no-op logger and unbounded page
// height, suitable for measuring or for rendering into caller-managed
// areas.
func NewContext(fc *fonts.Collection, h hyphen.Hyphenator) *Context {
	return &Context{Fonts: fc, Hyphenator: h, Logger: observability.NopLogger{}}
}

// Wrapper returns a line breaker bound to the context's collaborators.
func (c *Context) Wrapper() *text.Wrapper {
	return &text.Wrapper{Fonts: c.Fonts, Hyphenator: c.Hyphenator}
}

// FullPageHeight returns the content height of an empty page, or +Inf
// when the context is not bound to a page geometry.
func (c *Context) FullPageHeight() float64 {
	if c.FullPage <= 0 {
		return math.Inf(1)
	}
	return c.FullPage
}

// MeasureContext returns a copy of the context for dry-run
// measurement: unbounded page height and no diagnostic recording, so
// measuring an element twice never duplicates its diagnostics.
func (c *Context) MeasureContext() *Context {
	mc := *c
	mc.FullPage = 0
	mc.silent = true
	mc.diags = nil
	return &mc
}

// Overflow records a content-overflow diagnostic against the current
// page. Overflow is advisory: the caller keeps rendering.
func (c *Context) Overflow(element, format string, args ...interface{}) {
	if c.silent {
		return
	}
	d := Diagnostic{Page: c.page, Element: element, Message: fmt.Sprintf(format, args...)}
	c.diags = append(c.diags, d)
	c.Logger.Warn("content overflow",
		observability.Int("page", d.Page),
		observability.String("element", d.Element),
		observability.String("detail", d.Message))
}

// Diagnostics returns the overflow diagnostics recorded so far, in
// occurrence order.
func (c *Context) Diagnostics() []Diagnostic { return c.diags }
