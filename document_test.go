package typeset_test

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/wudi/typeset"
	"github.com/wudi/typeset/element"
	"github.com/wudi/typeset/fonts"
	"github.com/wudi/typeset/render"
	"github.com/wudi/typeset/style"
)

// testDoc builds a marginless document on a fixed-metrics face: at
// size 10 every glyph is 5 wide and every line 10 high.
func testDoc(t *testing.T, width, height float64, opts ...typeset.Option) *typeset.Document {
	t.Helper()
	c := fonts.NewCollection()
	if err := c.Register("test", fonts.Family{Regular: fonts.FixedFace{Advance: 0.5}}); err != nil {
		t.Fatal(err)
	}
	base := []typeset.Option{
		typeset.WithPageSize(width, height),
		typeset.WithMargins(render.Margins{}),
		typeset.WithDefaultStyle(style.New().WithSize(10)),
	}
	return typeset.NewDocument(c, append(base, opts...)...)
}

func pageTexts(p *render.Page) []string {
	var out []string
	for _, op := range p.Ops() {
		if t, ok := op.(render.TextOp); ok {
			out = append(out, t.Text)
		}
	}
	return out
}

func TestRenderSinglePage(t *testing.T) {
	doc := testDoc(t, 100, 500)
	doc.Add(element.NewTextParagraph("hello world"))

	res, err := doc.Render(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(res.Pages))
	}
	p := res.Pages[0]
	if p.Number() != 1 {
		t.Errorf("expected page number 1, got %d", p.Number())
	}
	if !p.Finalized() {
		t.Error("returned pages must be finalized")
	}
	if got := pageTexts(p); len(got) != 2 {
		t.Errorf("expected two words drawn, got %v", got)
	}
}

func TestRenderEmptyDocumentProducesOneEmptyPage(t *testing.T) {
	res, err := testDoc(t, 100, 500).Render(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Pages) != 1 || len(res.Pages[0].Ops()) != 0 {
		t.Fatalf("expected a single empty page, got %d pages", len(res.Pages))
	}
}

func TestParagraphFlowsAcrossPages(t *testing.T) {
	// Ten one-word lines on pages holding three lines each.
	doc := testDoc(t, 20, 30)
	doc.Add(element.NewTextParagraph("w1 w2 w3 w4 w5 w6 w7 w8 w9 wa"))

	res, err := doc.Render(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Pages) != 4 {
		t.Fatalf("expected 4 pages, got %d", len(res.Pages))
	}
	total := 0
	for i, p := range res.Pages {
		if p.Number() != i+1 {
			t.Errorf("expected sequential numbering, page %d is %d", i, p.Number())
		}
		total += len(pageTexts(p))
	}
	if total != 10 {
		t.Errorf("expected all 10 words across pages, got %d", total)
	}
	if got := pageTexts(res.Pages[3]); len(got) != 1 || got[0] != "wa" {
		t.Errorf("expected the last word alone on page 4, got %v", got)
	}
}

// The scenario from the pagination contract: a break in the middle of
// a container forces a new page even with 400 of 500 units unused.
func TestBreakMidContainerForcesNewPage(t *testing.T) {
	doc := testDoc(t, 100, 500)
	doc.Add(element.NewLinearLayout(
		element.NewTextParagraph("before"),
		element.NewPageBreak(),
		element.NewTextParagraph("after"),
	))

	res, err := doc.Render(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(res.Pages))
	}
	if got := pageTexts(res.Pages[0]); len(got) != 1 || got[0] != "before" {
		t.Errorf("page 1: expected only the leading text, got %v", got)
	}
	if got := pageTexts(res.Pages[1]); len(got) != 1 || got[0] != "after" {
		t.Errorf("page 2: expected the trailing text, got %v", got)
	}
}

func TestLeadingBreakOnEmptyPageIsNoOp(t *testing.T) {
	doc := testDoc(t, 100, 500)
	doc.Add(element.NewPageBreak())
	doc.Add(element.NewTextParagraph("content"))

	res, err := doc.Render(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Pages) != 1 {
		t.Fatalf("expected the break on an empty page to be skipped, got %d pages", len(res.Pages))
	}
}

func TestTrailingBreakEmitsNoBlankPage(t *testing.T) {
	doc := testDoc(t, 100, 500)
	doc.Add(element.NewTextParagraph("content"))
	doc.Add(element.NewPageBreak())

	res, err := doc.Render(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Pages) != 1 {
		t.Fatalf("expected no blank page after a trailing break, got %d pages", len(res.Pages))
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	build := func() *typeset.Document {
		doc := testDoc(t, 60, 40)
		doc.Add(element.NewTextParagraph("the quick brown fox jumps over the lazy dog"))
		tab, err := element.NewTable(2)
		if err != nil {
			t.Fatal(err)
		}
		if err := tab.AddRow(element.NewTextParagraph("aa"), element.NewTextParagraph("bb")); err != nil {
			t.Fatal(err)
		}
		doc.Add(tab)
		return doc
	}
	a, err := build().Render(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	b, err := build().Render(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(a.Pages) != len(b.Pages) {
		t.Fatalf("page counts differ: %d vs %d", len(a.Pages), len(b.Pages))
	}
	for i := range a.Pages {
		if !reflect.DeepEqual(a.Pages[i].Ops(), b.Pages[i].Ops()) {
			t.Errorf("page %d draw instructions differ between runs", i+1)
		}
	}
}

func TestFatalErrorReturnsFinalizedPages(t *testing.T) {
	doc := testDoc(t, 20, 30)
	// Fills page 1 and spills to page 2 before the bad element.
	doc.Add(element.NewTextParagraph("w1 w2 w3 w4"))
	doc.Add(element.NewStyled(element.NewTextParagraph("boom"), style.New().WithFamily("missing")))

	res, err := doc.Render(context.Background())
	if !errors.Is(err, typeset.ErrInvalidStyle) {
		t.Fatalf("expected ErrInvalidStyle, got %v", err)
	}
	if res == nil {
		t.Fatal("expected pages-so-far alongside the error")
	}
	if len(res.Pages) != 1 {
		t.Fatalf("expected only the finalized first page, got %d", len(res.Pages))
	}
	if !res.Pages[0].Finalized() {
		t.Error("returned page must be finalized")
	}
}

func TestDocumentCollectsDiagnostics(t *testing.T) {
	doc := testDoc(t, 100, 5) // pages shorter than one line
	doc.Add(element.NewTextParagraph("hi"))

	res, err := doc.Render(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Diagnostics) == 0 {
		t.Fatal("expected an overflow diagnostic")
	}
	if res.Diagnostics[0].Page != 1 {
		t.Errorf("expected the diagnostic bound to page 1, got %d", res.Diagnostics[0].Page)
	}
}

type failingWriter struct {
	after int
	wrote int
}

func (w *failingWriter) WritePage(*render.Page) error {
	if w.wrote >= w.after {
		return fmt.Errorf("disk full")
	}
	w.wrote++
	return nil
}

func TestWriteToReportsCollaboratorFailure(t *testing.T) {
	doc := testDoc(t, 20, 30)
	doc.Add(element.NewTextParagraph("w1 w2 w3 w4"))

	res, err := doc.Render(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(res.Pages))
	}

	w := &failingWriter{after: 1}
	err = res.WriteTo(w)
	if !errors.Is(err, typeset.ErrCollaborator) {
		t.Errorf("expected ErrCollaborator, got %v", err)
	}
	if w.wrote != 1 {
		t.Errorf("expected the stream to stop at the failure, wrote %d", w.wrote)
	}

	if err := res.WriteTo(&failingWriter{after: 10}); err != nil {
		t.Errorf("expected a clean stream, got %v", err)
	}
}
