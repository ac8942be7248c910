package text

import (
	"reflect"
	"strings"
	"testing"

	"github.com/wudi/typeset/fonts"
	"github.com/wudi/typeset/hyphen"
	"github.com/wudi/typeset/style"
)

// testWrapper measures every glyph at half the font size: at size 10
// each glyph, space and hyphen is 5 units wide.
func testWrapper(t *testing.T, h hyphen.Hyphenator) *Wrapper {
	t.Helper()
	c := fonts.NewCollection()
	if err := c.Register("test", fonts.Family{Regular: fonts.FixedFace{Advance: 0.5}}); err != nil {
		t.Fatal(err)
	}
	return &Wrapper{Fonts: c, Hyphenator: h}
}

func spans(texts ...string) []style.StyledString {
	out := make([]style.StyledString, len(texts))
	for i, s := range texts {
		out[i] = style.StyledString{Text: s}
	}
	return out
}

func lineText(l Line) string {
	var sb strings.Builder
	for i, w := range l.Words {
		if i > 0 && w.SpaceBefore {
			sb.WriteByte(' ')
		}
		sb.WriteString(w.Text)
		if w.Hyphen {
			sb.WriteByte('-')
		}
	}
	return sb.String()
}

func TestGreedyFill(t *testing.T) {
	w := testWrapper(t, nil)
	base := style.New().WithSize(10)
	// "aa bb cc" at glyph width 5: each word 10, space 5. Limit 25
	// fits "aa bb" (10+5+10) exactly; "cc" starts the next line.
	lines, err := w.Wrap(spans("aa bb cc"), base, 25)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if got := lineText(lines[0]); got != "aa bb" {
		t.Errorf("line 0: expected %q, got %q", "aa bb", got)
	}
	if got := lineText(lines[1]); got != "cc" {
		t.Errorf("line 1: expected %q, got %q", "cc", got)
	}
	if lines[0].Width != 25 {
		t.Errorf("expected line width 25, got %f", lines[0].Width)
	}
	if lines[0].Words[1].X != 15 {
		t.Errorf("expected second word at x=15, got %f", lines[0].Words[1].X)
	}
}

func TestTrailingSpaceNotMeasured(t *testing.T) {
	w := testWrapper(t, nil)
	base := style.New().WithSize(10)
	// "aa bb " with limit 25: the trailing space must not push the
	// line over or start a new line.
	lines, err := w.Wrap(spans("aa bb "), base, 25)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Width != 25 {
		t.Errorf("expected width 25, got %f", lines[0].Width)
	}
}

func TestOverflowLine(t *testing.T) {
	w := testWrapper(t, nil)
	base := style.New().WithSize(10)
	// A 6-glyph word is 30 wide; limit 20. No hyphenator, so it is
	// emitted alone and flagged, never dropped.
	lines, err := w.Wrap(spans("x aaaaaa y"), base, 20)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !lines[1].Overflow {
		t.Error("expected middle line flagged as overflow")
	}
	if got := lineText(lines[1]); got != "aaaaaa" {
		t.Errorf("expected overflowing word kept, got %q", got)
	}
	if lines[0].Overflow || lines[2].Overflow {
		t.Error("only the oversize line should be flagged")
	}
}

func TestHyphenationBestFit(t *testing.T) {
	// Candidates after 2 and 4 runes.
	h := hyphen.Func(func(word string) []int {
		if word == "abcdef" {
			return []int{2, 4}
		}
		return nil
	})
	w := testWrapper(t, h)
	base := style.New().WithSize(10)

	// Limit 25: "abcd-" is 25 wide, "ab-" is 15. The break maximizing
	// fitted width wins.
	lines, err := w.Wrap(spans("abcdef"), base, 25)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if got := lineText(lines[0]); got != "abcd-" {
		t.Errorf("expected %q, got %q", "abcd-", got)
	}
	if got := lineText(lines[1]); got != "ef" {
		t.Errorf("expected %q, got %q", "ef", got)
	}
	if !lines[0].Words[0].Hyphen {
		t.Error("expected hyphen flag on split word")
	}
}

func TestHyphenationExactFitBoundary(t *testing.T) {
	h := hyphen.Func(func(word string) []int {
		if word == "abcdef" {
			return []int{4}
		}
		return nil
	})
	w := testWrapper(t, nil)
	w.Hyphenator = h
	base := style.New().WithSize(10)

	t.Run("exact equality fits", func(t *testing.T) {
		// "abcd-" measures exactly 25.
		lines, err := w.Wrap(spans("abcdef"), base, 25)
		if err != nil {
			t.Fatal(err)
		}
		if got := lineText(lines[0]); got != "abcd-" {
			t.Errorf("width == limit must be included, got %q", got)
		}
	})

	t.Run("just under the boundary defers", func(t *testing.T) {
		lines, err := w.Wrap(spans("abcdef"), base, 24.9)
		if err != nil {
			t.Fatal(err)
		}
		// The only candidate no longer fits; whole word overflows.
		if got := lineText(lines[0]); got != "abcdef" {
			t.Errorf("expected unbroken overflow word, got %q", got)
		}
		if !lines[0].Overflow {
			t.Error("expected overflow flag just under the boundary")
		}
	})
}

func TestHyphenationFillsPartialLine(t *testing.T) {
	h := hyphen.Func(func(word string) []int {
		if word == "abcdef" {
			return []int{2, 4}
		}
		return nil
	})
	w := testWrapper(t, h)
	base := style.New().WithSize(10)
	// "xx abcdef" limit 35: "xx " consumes 15, leaving 20 for the next
	// word; "ab-" (15) fits, "abcd-" (25) does not.
	lines, err := w.Wrap(spans("xx abcdef"), base, 35)
	if err != nil {
		t.Fatal(err)
	}
	if got := lineText(lines[0]); got != "xx ab-" {
		t.Errorf("expected %q, got %q", "xx ab-", got)
	}
	if got := lineText(lines[1]); got != "cdef" {
		t.Errorf("expected %q, got %q", "cdef", got)
	}
}

func TestLineMetrics(t *testing.T) {
	w := testWrapper(t, nil)
	base := style.New().WithSize(10).WithLineSpacing(1.5)
	lines, err := w.Wrap(spans("hello"), base, 100)
	if err != nil {
		t.Fatal(err)
	}
	l := lines[0]
	if l.Height != 15 {
		t.Errorf("expected line height 15 (size x spacing), got %f", l.Height)
	}
	if l.Ascent != 8 || l.Descent != 2 {
		t.Errorf("expected face metrics (8, 2), got (%f, %f)", l.Ascent, l.Descent)
	}
}

func TestMixedStyleRuns(t *testing.T) {
	w := testWrapper(t, nil)
	base := style.New().WithSize(10)
	runs := []style.StyledString{
		{Text: "plain "},
		{Text: "bold", Style: style.New().WithBold(true)},
	}
	lines, err := w.Wrap(runs, base, 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 1 || len(lines[0].Words) != 2 {
		t.Fatalf("expected one line of two words, got %+v", lines)
	}
	if !lines[0].Words[1].Style.Bold() {
		t.Error("expected second word to carry the bold style")
	}
	if !lines[0].Words[1].SpaceBefore {
		t.Error("expected space between spans to be preserved")
	}
}

func TestWrapDeterminism(t *testing.T) {
	w := testWrapper(t, nil)
	base := style.New().WithSize(10)
	input := spans("the quick brown fox jumps over the lazy dog")
	a, err := w.Wrap(input, base, 60)
	if err != nil {
		t.Fatal(err)
	}
	b, err := w.Wrap(input, base, 60)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs produced different line sequences")
	}
}

func TestUnknownFamilyFailsFast(t *testing.T) {
	w := testWrapper(t, nil)
	base := style.New().WithFamily("missing")
	if _, err := w.Wrap(spans("x"), base, 100); err == nil {
		t.Error("expected error for unresolved font family")
	}
}

func TestMeasureRun(t *testing.T) {
	w := testWrapper(t, nil)
	base := style.New().WithSize(10)
	got, err := w.MeasureRun(style.StyledString{Text: "abc"}, base)
	if err != nil {
		t.Fatal(err)
	}
	if got != 15 {
		t.Errorf("expected width 15, got %f", got)
	}
}

func TestBreakCandidatesDisabled(t *testing.T) {
	w := testWrapper(t, nil)
	if got := w.BreakCandidates("anything"); got != nil {
		t.Errorf("expected nil candidates without hyphenator, got %v", got)
	}
}
