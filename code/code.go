// Package code renders syntax-highlighted source as a line-oriented
// block element. Lines are never re-wrapped: code keeps its author's
// line structure, overflowing the width with a diagnostic when a line
// is too long, and splits across pages at line granularity.
package code

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/wudi/typeset"
	"github.com/wudi/typeset/fonts"
	"github.com/wudi/typeset/render"
	"github.com/wudi/typeset/style"
)

// DefaultTheme is the chroma style used when none is named.
const DefaultTheme = "github"

// Block is syntax-highlighted source, one styled run sequence per
// line.
type Block struct {
	lines [][]style.StyledString
}

// Highlight tokenizes source with the lexer registered for language
// (falling back to plain text) and colors it with the named chroma
// theme.
func Highlight(source, language, theme string) (*Block, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	if theme == "" {
		theme = DefaultTheme
	}
	cs := styles.Get(theme)
	if cs == nil {
		cs = styles.Fallback
	}

	it, err := lexer.Tokenise(nil, source)
	if err != nil {
		return nil, typeset.CollaboratorError("code renderer", err)
	}

	b := &Block{lines: [][]style.StyledString{nil}}
	for _, tok := range it.Tokens() {
		st := runStyle(cs.Get(tok.Type))
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				b.lines = append(b.lines, nil)
			}
			if part == "" {
				continue
			}
			last := len(b.lines) - 1
			b.lines[last] = append(b.lines[last], style.StyledString{Text: part, Style: st})
		}
	}
	// A trailing newline leaves an empty last line behind.
	if n := len(b.lines); n > 1 && len(b.lines[n-1]) == 0 {
		b.lines = b.lines[:n-1]
	}
	return b, nil
}

// runStyle maps a chroma token style to a text style override.
func runStyle(entry chroma.StyleEntry) style.Style {
	st := style.New()
	if entry.Colour.IsSet() {
		st = st.WithColor(style.Color{
			R: float64(entry.Colour.Red()) / 255,
			G: float64(entry.Colour.Green()) / 255,
			B: float64(entry.Colour.Blue()) / 255,
		})
	}
	if entry.Bold == chroma.Yes {
		st = st.WithBold(true)
	}
	if entry.Italic == chroma.Yes {
		st = st.WithItalic(true)
	}
	return st
}

// LineCount returns the number of source lines in the block.
func (b *Block) LineCount() int { return len(b.lines) }

// Render draws whole lines, preserving intra-line whitespace exactly,
// and defers the undrawn tail to the next page.
func (b *Block) Render(ctx *typeset.Context, area render.Area, st style.Style) (typeset.RenderResult, error) {
	lineH := st.LineHeight()
	if len(b.lines) == 0 || lineH <= 0 {
		return typeset.Done(0), nil
	}

	fit := int((area.Height() + 1e-6) / lineH)
	if fit == 0 {
		if area.Height()+1e-6 < ctx.FullPageHeight() {
			return typeset.Partial(0, b), nil
		}
		ctx.Overflow("code", "line height %.2f exceeds page content height %.2f", lineH, ctx.FullPageHeight())
		fit = 1
	}
	if fit > len(b.lines) {
		fit = len(b.lines)
	}

	for i, line := range b.lines[:fit] {
		if err := b.drawLine(ctx, area, line, float64(i)*lineH, st); err != nil {
			return typeset.RenderResult{}, err
		}
	}
	used := min(float64(fit)*lineH, area.Height())
	if fit == len(b.lines) {
		return typeset.Done(used), nil
	}
	return typeset.Partial(used, &Block{lines: b.lines[fit:]}), nil
}

func (b *Block) drawLine(ctx *typeset.Context, area render.Area, line []style.StyledString, y float64, st style.Style) error {
	x := 0.0
	for _, run := range line {
		eff := st.Merge(run.Style)
		face, err := ctx.Fonts.Resolve(eff)
		if err != nil {
			return typeset.InvalidStyleError(err)
		}
		ascent, _ := face.LineMetrics(eff.Size())
		area.DrawText(x, y+ascent, run.Text, eff)
		x += fonts.MeasureString(face, run.Text, eff.Size())
	}
	if x > area.Width()+1e-6 {
		ctx.Overflow("code", "line width %.2f exceeds area width %.2f", x, area.Width())
	}
	return nil
}
