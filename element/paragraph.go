// Package element provides the renderable content nodes a document is
// built from: paragraphs, containers, tables, lists, images, spacers,
// page breaks and pre-measured external blocks.
//
// Every element implements the render contract of the typeset package:
// draw what fits into the offered area, report the consumed height, and
// hand back a freshly built remainder for whatever did not fit. The
// original element is never modified.
package element

import (
	"errors"
	"strings"

	"github.com/wudi/typeset"
	"github.com/wudi/typeset/fonts"
	"github.com/wudi/typeset/render"
	"github.com/wudi/typeset/style"
	"github.com/wudi/typeset/text"
)

// heightEpsilon absorbs float error in fit comparisons, mirroring the
// line breaker's width policy: exact equality fits.
const heightEpsilon = 1e-6

// Alignment selects horizontal line placement within a paragraph.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Paragraph is an ordered sequence of styled text runs, wrapped into
// lines against the width of whatever area it renders into.
type Paragraph struct {
	runs  []style.StyledString
	align Alignment
}

// NewParagraph builds a paragraph from styled runs.
func NewParagraph(runs ...style.StyledString) *Paragraph {
	return &Paragraph{runs: runs}
}

// NewTextParagraph builds a single-run paragraph with no style
// overrides of its own.
func NewTextParagraph(s string) *Paragraph {
	return NewParagraph(style.StyledString{Text: s})
}

// Append adds a styled run to the end of the paragraph. It is a
// build-time helper; paragraphs are not modified during layout.
func (p *Paragraph) Append(s string, st style.Style) *Paragraph {
	p.runs = append(p.runs, style.StyledString{Text: s, Style: st})
	return p
}

// WithAlignment returns a copy of the paragraph with the given
// alignment.
func (p *Paragraph) WithAlignment(a Alignment) *Paragraph {
	q := *p
	q.align = a
	return &q
}

// Render wraps the runs against the area width, draws the lines that
// fit the remaining height, and returns a remainder paragraph holding
// the undrawn text. The remainder carries text rather than lines, so a
// continuation page with a different width re-breaks cleanly.
func (p *Paragraph) Render(ctx *typeset.Context, area render.Area, st style.Style) (typeset.RenderResult, error) {
	lines, err := ctx.Wrapper().Wrap(p.runs, st, area.Width())
	if err != nil {
		return typeset.RenderResult{}, wrapResolveError(err)
	}
	if len(lines) == 0 {
		return typeset.Done(0), nil
	}

	fit, used := 0, 0.0
	for _, l := range lines {
		if used+l.Height > area.Height()+heightEpsilon {
			break
		}
		used += l.Height
		fit++
	}
	if fit == 0 {
		if area.Height()+heightEpsilon < ctx.FullPageHeight() {
			// A fresh page offers more room; move there untouched.
			return typeset.Partial(0, p), nil
		}
		// No page can hold even one line. Draw it overflowing rather
		// than lose the text.
		ctx.Overflow("paragraph", "line height %.2f exceeds page content height %.2f",
			lines[0].Height, ctx.FullPageHeight())
		fit, used = 1, min(lines[0].Height, area.Height())
	}

	y := 0.0
	for _, l := range lines[:fit] {
		p.drawLine(ctx, area, l, y)
		y += l.Height
	}
	if fit == len(lines) {
		return typeset.Done(used), nil
	}
	rem := &Paragraph{runs: linesToRuns(lines[fit:]), align: p.align}
	return typeset.Partial(used, rem), nil
}

func (p *Paragraph) drawLine(ctx *typeset.Context, area render.Area, l text.Line, y float64) {
	offset := 0.0
	switch p.align {
	case AlignCenter:
		offset = (area.Width() - l.Width) / 2
	case AlignRight:
		offset = area.Width() - l.Width
	}
	if offset < 0 {
		offset = 0
	}
	if l.Overflow {
		ctx.Overflow("paragraph", "line width %.2f exceeds area width %.2f", l.Width, area.Width())
	}

	baseline := y + l.Ascent
	for _, w := range l.Words {
		run := w.Text
		if w.Hyphen {
			run += "-"
		}
		area.DrawText(offset+w.X, baseline, run, w.Style)
		if w.Style.Underline() {
			uy := baseline + w.Style.Size()*0.08
			area.DrawLine(offset+w.X, uy, offset+w.X+w.Width, uy, w.Style.Color(), w.Style.Size()*0.05)
		}
	}
}

// linesToRuns reassembles undrawn lines into styled runs. Word
// separators are restored from each word's SpaceBefore; fragments that
// came from a hyphenation split carry no separator, so the split word
// is rejoined whole.
func linesToRuns(lines []text.Line) []style.StyledString {
	var runs []style.StyledString
	var sb strings.Builder
	var cur style.Style
	first := true

	flush := func() {
		if sb.Len() > 0 {
			runs = append(runs, style.StyledString{Text: sb.String(), Style: cur})
			sb.Reset()
		}
	}
	for _, l := range lines {
		for _, w := range l.Words {
			if first {
				cur = w.Style
			} else if w.Style != cur {
				flush()
				cur = w.Style
			}
			if !first && w.SpaceBefore {
				sb.WriteByte(' ')
			}
			sb.WriteString(w.Text)
			first = false
		}
	}
	flush()
	return runs
}

// wrapResolveError classifies a measurement failure: an unknown font
// family is an invalid style, anything else is the font collaborator
// misbehaving.
func wrapResolveError(err error) error {
	if errors.Is(err, fonts.ErrUnknownFamily) {
		return typeset.InvalidStyleError(err)
	}
	return typeset.CollaboratorError("font metrics", err)
}

// Text is a single styled run drawn on one line without wrapping. Text
// wider than the area overflows with a diagnostic instead of breaking.
type Text struct {
	run style.StyledString
}

// NewText builds a single-line text element.
func NewText(s string, st style.Style) *Text {
	return &Text{run: style.StyledString{Text: s, Style: st}}
}

func (t *Text) Render(ctx *typeset.Context, area render.Area, st style.Style) (typeset.RenderResult, error) {
	eff := st.Merge(t.run.Style)
	face, err := ctx.Fonts.Resolve(eff)
	if err != nil {
		return typeset.RenderResult{}, wrapResolveError(err)
	}
	h := eff.LineHeight()
	if h > area.Height()+heightEpsilon {
		if area.Height()+heightEpsilon < ctx.FullPageHeight() {
			return typeset.Partial(0, t), nil
		}
		ctx.Overflow("text", "line height %.2f exceeds page content height %.2f", h, ctx.FullPageHeight())
	}
	width := fonts.MeasureString(face, t.run.Text, eff.Size())
	if width > area.Width()+heightEpsilon {
		ctx.Overflow("text", "width %.2f exceeds area width %.2f", width, area.Width())
	}
	ascent, _ := face.LineMetrics(eff.Size())
	area.DrawText(0, ascent, t.run.Text, eff)
	return typeset.Done(min(h, area.Height())), nil
}
