// Package text implements text measurement and greedy line breaking.
//
// The wrapper turns styled runs into width-bounded lines of positioned
// words. Measurement delegates to the font-metrics collaborator and is
// deterministic, which pagination correctness depends on: identical
// (text, style, face) inputs always measure identically.
package text

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/wudi/typeset/fonts"
	"github.com/wudi/typeset/hyphen"
	"github.com/wudi/typeset/style"
)

// widthEpsilon absorbs float error in fit comparisons. A width exactly
// equal to the limit fits.
const widthEpsilon = 1e-6

// Word is a positioned fragment of a line.
type Word struct {
	// Text is the fragment's source text, without any hyphen glyph.
	Text string
	// Style is the fully resolved style for this fragment.
	Style style.Style
	// X is the fragment's offset from the line start.
	X float64
	// Width is the measured width, including the trailing hyphen glyph
	// when Hyphen is set.
	Width float64
	// Hyphen marks a hyphenation break: the renderer appends a hyphen
	// glyph after Text.
	Hyphen bool
	// SpaceBefore records whether the source separated this fragment
	// from its predecessor with whitespace.
	SpaceBefore bool
}

// Line is a sequence of positioned words plus its vertical metrics.
type Line struct {
	Words   []Word
	Width   float64
	Ascent  float64
	Descent float64
	Height  float64
	// Overflow marks a line whose single unbreakable fragment exceeds
	// the maximum width. It is emitted rather than dropped.
	Overflow bool
}

// Wrapper breaks styled runs into lines using the font collection for
// measurement and an optional hyphenator for intra-word breaks.
type Wrapper struct {
	Fonts      *fonts.Collection
	Hyphenator hyphen.Hyphenator
}

// MeasureRun returns the rendered width of a single styled run at the
// base style.
func (w *Wrapper) MeasureRun(run style.StyledString, base style.Style) (float64, error) {
	st := base.Merge(run.Style)
	face, err := w.Fonts.Resolve(st)
	if err != nil {
		return 0, err
	}
	return fonts.MeasureString(face, run.Text, st.Size()), nil
}

// BreakCandidates returns the valid intra-word break offsets for word,
// in ascending rune order. Without a hyphenator only whole-word
// boundaries are candidates, so the result is nil.
func (w *Wrapper) BreakCandidates(word string) []int {
	if w.Hyphenator == nil {
		return nil
	}
	return w.Hyphenator.Hyphenate(word)
}

// token is a whitespace-delimited fragment pending placement.
type token struct {
	text        string
	st          style.Style
	face        fonts.Face
	width       float64
	spaceBefore bool
}

// Wrap breaks the styled runs into lines no wider than maxWidth using
// greedy left-to-right fill. Whitespace runs collapse to a single
// inter-word space; trailing whitespace is never measured against the
// limit. A fragment wider than maxWidth is hyphenated when candidates
// exist, and otherwise emitted alone as an overflow line.
func (w *Wrapper) Wrap(spans []style.StyledString, base style.Style, maxWidth float64) ([]Line, error) {
	queue, err := w.tokenize(spans, base)
	if err != nil {
		return nil, err
	}

	var lines []Line
	var cur []Word
	var curWidth float64

	flush := func() {
		if len(cur) == 0 {
			return
		}
		lines = append(lines, w.finishLine(cur, curWidth, maxWidth))
		cur = nil
		curWidth = 0
	}

	for len(queue) > 0 {
		tok := queue[0]
		queue = queue[1:]

		sep := 0.0
		if len(cur) > 0 && tok.spaceBefore {
			sep = tok.face.GlyphWidth(' ', tok.st.Size())
		}

		if curWidth+sep+tok.width <= maxWidth+widthEpsilon {
			cur = append(cur, Word{
				Text:        tok.text,
				Style:       tok.st,
				X:           curWidth + sep,
				Width:       tok.width,
				SpaceBefore: tok.spaceBefore,
			})
			curWidth += sep + tok.width
			continue
		}

		// The fragment does not fit. Try to fill the remaining space
		// with a hyphenated prefix.
		if head, rest, ok := w.split(tok, maxWidth-curWidth-sep); ok {
			head.X = curWidth + sep
			head.SpaceBefore = tok.spaceBefore
			cur = append(cur, head)
			curWidth += sep + head.Width
			flush()
			queue = append([]token{rest}, queue...)
			continue
		}

		if len(cur) > 0 {
			// Start a new line and retry the fragment there. The token
			// keeps its SpaceBefore so callers reassembling undrawn
			// lines into text can restore the separator.
			flush()
			queue = append([]token{tok}, queue...)
			continue
		}

		// Fresh line and the fragment alone is too wide with no usable
		// break: emit it as an overflow line rather than dropping it.
		cur = append(cur, Word{Text: tok.text, Style: tok.st, Width: tok.width, SpaceBefore: tok.spaceBefore})
		curWidth = tok.width
		flush()
	}
	flush()
	return lines, nil
}

// split looks for the hyphenation candidate that maximizes the fitted
// width without exceeding avail (a fitted-with-hyphen width exactly
// equal to avail is included). It returns the head word with the hyphen
// flag set and the remaining token.
func (w *Wrapper) split(tok token, avail float64) (Word, token, bool) {
	if w.Hyphenator == nil || avail <= 0 {
		return Word{}, token{}, false
	}
	candidates := w.Hyphenator.Hyphenate(tok.text)
	if len(candidates) == 0 {
		return Word{}, token{}, false
	}
	runes := []rune(tok.text)
	hyphenWidth := tok.face.GlyphWidth('-', tok.st.Size())

	for i := len(candidates) - 1; i >= 0; i-- {
		k := candidates[i]
		if k <= 0 || k >= len(runes) {
			continue
		}
		head := string(runes[:k])
		width := fonts.MeasureString(tok.face, head, tok.st.Size()) + hyphenWidth
		if width <= avail+widthEpsilon {
			rest := tok
			rest.text = string(runes[k:])
			rest.width = fonts.MeasureString(tok.face, rest.text, tok.st.Size())
			rest.spaceBefore = false
			return Word{Text: head, Style: tok.st, Width: width, Hyphen: true}, rest, true
		}
	}
	return Word{}, token{}, false
}

func (w *Wrapper) finishLine(words []Word, width, maxWidth float64) Line {
	line := Line{Words: words, Width: width}
	for _, word := range words {
		if h := word.Style.LineHeight(); h > line.Height {
			line.Height = h
		}
		face, err := w.Fonts.Resolve(word.Style)
		if err != nil {
			continue // resolution already succeeded during tokenize
		}
		asc, desc := face.LineMetrics(word.Style.Size())
		if asc > line.Ascent {
			line.Ascent = asc
		}
		if desc > line.Descent {
			line.Descent = desc
		}
	}
	if len(words) == 1 && width > maxWidth+widthEpsilon {
		line.Overflow = true
	}
	return line
}

func (w *Wrapper) tokenize(spans []style.StyledString, base style.Style) ([]token, error) {
	var out []token
	spacePending := false
	for _, span := range spans {
		st := base.Merge(span.Style)
		face, err := w.Fonts.Resolve(st)
		if err != nil {
			return nil, err
		}
		rest := span.Text
		for rest != "" {
			i := strings.IndexFunc(rest, unicode.IsSpace)
			if i == 0 {
				_, size := utf8.DecodeRuneInString(rest)
				spacePending = true
				rest = rest[size:]
				continue
			}
			var word string
			if i < 0 {
				word, rest = rest, ""
			} else {
				word, rest = rest[:i], rest[i:]
			}
			out = append(out, token{
				text:        word,
				st:          st,
				face:        face,
				width:       fonts.MeasureString(face, word, st.Size()),
				spaceBefore: spacePending && len(out) > 0,
			})
			spacePending = false
		}
	}
	return out, nil
}
