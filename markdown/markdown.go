// Package markdown converts Markdown (with GFM tables) into the
// engine's element tree. Headings, emphasis, lists, block quotes,
// tables, fenced code and math blocks map onto the corresponding
// elements; pagination stays entirely with the layout engine.
package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	gast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/wudi/typeset"
	"github.com/wudi/typeset/code"
	"github.com/wudi/typeset/element"
	"github.com/wudi/typeset/fonts"
	"github.com/wudi/typeset/math"
	"github.com/wudi/typeset/render"
	"github.com/wudi/typeset/style"
)

// Heading size multipliers over the base font size, by level. Levels
// past the table use the last entry.
var headingScale = []float64{2.0, 1.5, 1.25, 1.1, 1.0, 1.0}

// Converter turns Markdown source into elements.
type Converter struct {
	// Fonts is needed to pre-measure math blocks.
	Fonts *fonts.Collection
	// Base is the style the document will be rendered with; heading
	// and math sizes derive from it.
	Base style.Style
	// CodeFamily, when set, names a registered font family used for
	// code spans and code blocks.
	CodeFamily string
	// Theme names the chroma style for code highlighting; empty uses
	// the package default.
	Theme string
}

// Convert parses the source and returns the document's top-level
// elements in order.
func (c *Converter) Convert(source []byte) ([]typeset.Element, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	doc := md.Parser().Parse(text.NewReader(source))
	return c.blocks(doc, source)
}

func (c *Converter) blocks(parent ast.Node, source []byte) ([]typeset.Element, error) {
	var out []typeset.Element
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		el, err := c.block(n, source)
		if err != nil {
			return nil, err
		}
		if el != nil {
			out = append(out, el)
		}
	}
	return out, nil
}

func (c *Converter) block(n ast.Node, source []byte) (typeset.Element, error) {
	switch n := n.(type) {
	case *ast.Heading:
		scale := headingScale[len(headingScale)-1]
		if n.Level-1 < len(headingScale) {
			scale = headingScale[n.Level-1]
		}
		st := style.New().WithSize(c.Base.Size() * scale).WithBold(true)
		para := element.NewParagraph(c.inlines(n, source, style.New())...)
		return c.spaced(element.NewStyled(para, st)), nil

	case *ast.Paragraph:
		return c.spaced(element.NewParagraph(c.inlines(n, source, style.New())...)), nil

	case *ast.TextBlock:
		return element.NewParagraph(c.inlines(n, source, style.New())...), nil

	case *ast.List:
		return c.list(n, source)

	case *ast.Blockquote:
		inner, err := c.blocks(n, source)
		if err != nil {
			return nil, err
		}
		quoted := element.NewStyled(element.NewLinearLayout(inner...), style.New().WithItalic(true))
		return c.spaced(element.NewPadded(quoted, render.Margins{Left: 12})), nil

	case *ast.FencedCodeBlock:
		lang := string(n.Language(source))
		content := blockContent(n, source)
		if lang == "math" || lang == "latex" || lang == "tex" {
			return c.spaced(c.mathBlock(content)), nil
		}
		return c.spaced(c.codeBlock(content, lang)), nil

	case *ast.CodeBlock:
		return c.spaced(c.codeBlock(blockContent(n, source), "")), nil

	case *gast.Table:
		return c.table(n, source)

	case *ast.ThematicBreak:
		return element.NewSpacer(c.Base.LineHeight()), nil
	}
	return nil, nil
}

// spaced follows a block with half a line of breathing room, the way
// flowed documents separate blocks.
func (c *Converter) spaced(el typeset.Element) typeset.Element {
	return element.NewLinearLayout(el, element.NewSpacer(c.Base.LineHeight()/2))
}

func (c *Converter) mathBlock(latex string) typeset.Element {
	block, err := math.Render(strings.TrimSpace(latex), c.Fonts, c.Base)
	if err != nil {
		// Degrade to the raw source rather than dropping the formula.
		return element.NewTextParagraph(strings.TrimSpace(latex))
	}
	return block
}

func (c *Converter) codeBlock(content, lang string) typeset.Element {
	block, err := code.Highlight(content, lang, c.Theme)
	if err != nil {
		return element.NewTextParagraph(content)
	}
	if c.CodeFamily != "" {
		return element.NewStyled(block, style.New().WithFamily(c.CodeFamily))
	}
	return block
}

func (c *Converter) list(n *ast.List, source []byte) (typeset.Element, error) {
	var items []typeset.Element
	for li := n.FirstChild(); li != nil; li = li.NextSibling() {
		children, err := c.blocks(li, source)
		if err != nil {
			return nil, err
		}
		items = append(items, element.NewLinearLayout(children...))
	}
	if n.IsOrdered() {
		return c.spaced(element.NewOrderedListAt(n.Start, items...)), nil
	}
	return c.spaced(element.NewUnorderedList(items...)), nil
}

func (c *Converter) table(n *gast.Table, source []byte) (typeset.Element, error) {
	var rows [][]typeset.Element
	var headers int
	for r := n.FirstChild(); r != nil; r = r.NextSibling() {
		header := false
		if _, ok := r.(*gast.TableHeader); ok {
			header = true
		}
		var cells []typeset.Element
		for cell := r.FirstChild(); cell != nil; cell = cell.NextSibling() {
			para := element.NewParagraph(c.inlines(cell, source, style.New())...)
			if header {
				cells = append(cells, element.NewStyled(para, style.New().WithBold(true)))
			} else {
				cells = append(cells, para)
			}
		}
		if header {
			headers++
		}
		rows = append(rows, cells)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, nil
	}

	tab, err := element.NewTable(len(rows[0]))
	if err != nil {
		return nil, err
	}
	for _, cells := range rows {
		// Ragged rows would be rejected by the table; pad them so a
		// sloppy document still renders.
		for len(cells) < len(rows[0]) {
			cells = append(cells, element.NewSpacer(0))
		}
		if err := tab.AddRow(cells[:len(rows[0])]...); err != nil {
			return nil, err
		}
	}
	return c.spaced(tab), nil
}

// inlines flattens an inline subtree into styled runs, carrying the
// accumulated emphasis down through nesting.
func (c *Converter) inlines(parent ast.Node, source []byte, st style.Style) []style.StyledString {
	var runs []style.StyledString
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch n := n.(type) {
		case *ast.Text:
			t := string(n.Segment.Value(source))
			if t != "" {
				runs = append(runs, style.StyledString{Text: t, Style: st})
			}
			if n.SoftLineBreak() || n.HardLineBreak() {
				runs = append(runs, style.StyledString{Text: " ", Style: st})
			}
		case *ast.Emphasis:
			sub := st
			if n.Level >= 2 {
				sub = sub.WithBold(true)
			} else {
				sub = sub.WithItalic(true)
			}
			runs = append(runs, c.inlines(n, source, sub)...)
		case *ast.CodeSpan:
			sub := st
			if c.CodeFamily != "" {
				sub = sub.WithFamily(c.CodeFamily)
			}
			runs = append(runs, style.StyledString{Text: string(n.Text(source)), Style: sub})
		case *ast.Link:
			runs = append(runs, c.inlines(n, source, st.WithUnderline(true))...)
		case *ast.AutoLink:
			runs = append(runs, style.StyledString{Text: string(n.URL(source)), Style: st.WithUnderline(true)})
		default:
			if n.HasChildren() {
				runs = append(runs, c.inlines(n, source, st)...)
			}
		}
	}
	return runs
}

func blockContent(n ast.Node, source []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(source))
	}
	return sb.String()
}
