package typeset

import (
	"context"
	"time"

	"github.com/wudi/typeset/fonts"
	"github.com/wudi/typeset/hyphen"
	"github.com/wudi/typeset/observability"
	"github.com/wudi/typeset/render"
	"github.com/wudi/typeset/style"
)

// PaperSize is a page geometry in points.
type PaperSize struct {
	Width, Height float64
}

// Standard paper sizes.
var (
	A4     = PaperSize{Width: 595.28, Height: 841.89}
	A5     = PaperSize{Width: 419.53, Height: 595.28}
	Letter = PaperSize{Width: 612, Height: 792}
)

// heightEpsilon is the remaining area height below which a page counts
// as exhausted.
const heightEpsilon = 1e-6

// Document owns an element sequence and the page geometry, and drives
// pagination over it.
type Document struct {
	elements     []Element
	paper        PaperSize
	margins      render.Margins
	defaultStyle style.Style
	fonts        *fonts.Collection
	hyphenator   hyphen.Hyphenator
	logger       observability.Logger
	tracer       observability.Tracer
}

// Option configures a Document.
type Option func(*Document)

// WithPaperSize sets the page geometry from a standard size.
func WithPaperSize(p PaperSize) Option {
	return func(d *Document) { d.paper = p }
}

// WithPageSize sets an explicit page width and height in points.
func WithPageSize(width, height float64) Option {
	return func(d *Document) { d.paper = PaperSize{Width: width, Height: height} }
}

// WithMargins sets the page margins.
func WithMargins(m render.Margins) Option {
	return func(d *Document) { d.margins = m }
}

// WithDefaultStyle sets the style every root element inherits.
func WithDefaultStyle(st style.Style) Option {
	return func(d *Document) { d.defaultStyle = st }
}

// WithHyphenator sets the hyphenation collaborator.
func WithHyphenator(h hyphen.Hyphenator) Option {
	return func(d *Document) { d.hyphenator = h }
}

// WithLogger sets the logger for layout progress events.
func WithLogger(l observability.Logger) Option {
	return func(d *Document) { d.logger = l }
}

// WithTracer sets the tracer for layout spans.
func WithTracer(t observability.Tracer) Option {
	return func(d *Document) { d.tracer = t }
}

// NewDocument returns an empty A4 document bound to the given font
// collection.
func NewDocument(fc *fonts.Collection, opts ...Option) *Document {
	d := &Document{
		paper:   A4,
		margins: render.Margins{Top: 72, Right: 56.7, Bottom: 72, Left: 56.7},
		fonts:   fc,
		logger:  observability.NopLogger{},
		tracer:  observability.NopTracer(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Add appends an element to the document body.
func (d *Document) Add(e Element) { d.elements = append(d.elements, e) }

// Result is the output of a layout run: finalized pages in order plus
// the non-fatal diagnostics collected along the way.
type Result struct {
	Pages       []*render.Page
	Diagnostics []Diagnostic
}

// WriteTo streams the pages to the page-writer collaborator in order.
// A writer failure aborts the stream and is reported as a collaborator
// error.
func (r *Result) WriteTo(w render.PageWriter) error {
	for _, p := range r.Pages {
		if err := w.WritePage(p); err != nil {
			return CollaboratorError("page writer", err)
		}
	}
	return nil
}

// Render lays the document out into pages. Rendering is deterministic:
// the same document produces the same pages on every call.
//
// Non-fatal problems (content that fits no page) surface as
// diagnostics on the Result. Fatal errors (invalid styles, malformed
// tables, collaborator failures) abort the run; the Result then holds
// the pages finalized before the failure.
func (d *Document) Render(ctx context.Context) (*Result, error) {
	_, span := d.tracer.StartSpan(ctx, "typeset.render")
	defer span.Finish()
	start := time.Now()

	fullPage := d.paper.Height - d.margins.Top - d.margins.Bottom
	rc := &Context{
		Fonts:      d.fonts,
		Hyphenator: d.hyphenator,
		Logger:     d.logger,
		FullPage:   fullPage,
	}

	var pages []*render.Page
	var page *render.Page
	var area render.Area
	pageHasContent := false

	openPage := func() {
		page = render.NewPage(len(pages)+1, d.paper.Width, d.paper.Height, d.margins)
		area = page.Content()
		pageHasContent = false
		rc.page = page.Number()
	}
	closePage := func() {
		page.Finalize()
		pages = append(pages, page)
		d.logger.Debug("page finalized",
			observability.Int("page", page.Number()),
			observability.Int(observability.MetricOpCount, len(page.Ops())))
	}
	rollPage := func() {
		closePage()
		openPage()
	}

	queue := append([]Element(nil), d.elements...)
	openPage()

	for len(queue) > 0 {
		el := queue[0]
		res, err := el.Render(rc, area, d.defaultStyle)
		if err != nil {
			span.SetError(err)
			result := &Result{Pages: pages, Diagnostics: rc.Diagnostics()}
			return result, err
		}
		if res.Height > 0 {
			pageHasContent = true
		}
		area = area.Skip(res.Height)

		switch {
		case res.PageBreak:
			if res.Remainder != nil {
				queue[0] = res.Remainder
			} else {
				queue = queue[1:]
			}
			// A break on an empty page, or with nothing left to place,
			// would only emit a blank page.
			if pageHasContent && len(queue) > 0 {
				rollPage()
			}
		case res.Remainder != nil:
			if res.Height <= 0 && !pageHasContent {
				// The element cannot progress even on an empty page.
				// Elements are expected to force-draw in that case, so
				// hitting this is a defect in the element; drop it with
				// a diagnostic rather than loop forever.
				rc.Overflow("element", "no progress on an empty page, content dropped")
				queue = queue[1:]
				continue
			}
			queue[0] = res.Remainder
			rollPage()
		default:
			queue = queue[1:]
			if area.Height() <= heightEpsilon && len(queue) > 0 {
				rollPage()
			}
		}
	}
	closePage()

	result := &Result{Pages: pages, Diagnostics: rc.Diagnostics()}
	d.logger.Info("layout complete",
		observability.Int(observability.MetricPageCount, len(pages)),
		observability.Int(observability.MetricElementCount, len(d.elements)),
		observability.Int(observability.MetricOverflowCount, len(result.Diagnostics)),
		observability.Int64(observability.MetricLayoutTime, time.Since(start).Milliseconds()))
	span.SetTag("pages", len(pages))
	return result, nil
}
