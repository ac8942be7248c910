package render

import (
	"math"
	"testing"

	"github.com/wudi/typeset/style"
)

func TestContentAreaGeometry(t *testing.T) {
	p := NewPage(1, 595, 842, Margins{Top: 72, Right: 50, Bottom: 72, Left: 50})
	a := p.Content()
	if a.Width() != 495 {
		t.Errorf("expected content width 495, got %f", a.Width())
	}
	if a.Height() != 698 {
		t.Errorf("expected content height 698, got %f", a.Height())
	}
}

func TestSkipShrinksAndClamps(t *testing.T) {
	p := NewPage(1, 100, 100, Margins{})
	a := p.Content()

	b := a.Skip(30)
	if b.Height() != 70 {
		t.Errorf("expected 70 after skip, got %f", b.Height())
	}
	if a.Height() != 100 {
		t.Errorf("skip must not mutate the source area, got %f", a.Height())
	}

	c := b.Skip(1000)
	if c.Height() != 0 {
		t.Errorf("expected clamp at zero, got %f", c.Height())
	}
	if d := c.Skip(-5); d.Height() != 0 {
		t.Errorf("negative skip must be a no-op, got %f", d.Height())
	}
}

func TestChildOffsetsDrawOrigin(t *testing.T) {
	p := NewPage(1, 200, 200, Margins{Top: 10, Left: 10})
	a := p.Content().Skip(20).Child(30, 50)
	if a.Width() != 50 {
		t.Errorf("expected child width 50, got %f", a.Width())
	}

	a.DrawText(5, 12, "x", style.New())
	op, ok := p.Ops()[0].(TextOp)
	if !ok {
		t.Fatalf("expected TextOp, got %T", p.Ops()[0])
	}
	// margin 10 + child offset 30 + local 5; margin 10 + skip 20 + local 12.
	if op.X != 45 || op.Y != 42 {
		t.Errorf("expected absolute (45, 42), got (%f, %f)", op.X, op.Y)
	}
}

func TestShrinkInsets(t *testing.T) {
	p := NewPage(1, 100, 100, Margins{})
	a := p.Content().Shrink(Margins{Top: 5, Right: 10, Bottom: 5, Left: 10})
	if a.Width() != 80 || a.Height() != 90 {
		t.Errorf("expected 80x90 after shrink, got %fx%f", a.Width(), a.Height())
	}

	a.DrawLine(0, 0, 10, 0, style.Color{}, 1)
	op := p.Ops()[0].(LineOp)
	if op.X1 != 10 || op.Y1 != 5 {
		t.Errorf("expected shrink to move the origin to (10, 5), got (%f, %f)", op.X1, op.Y1)
	}

	tiny := a.Shrink(Margins{Left: 200, Top: 200})
	if tiny.Width() != 0 || tiny.Height() != 0 {
		t.Errorf("over-shrink must clamp at zero, got %fx%f", tiny.Width(), tiny.Height())
	}
}

func TestFinalizeFreezesPage(t *testing.T) {
	p := NewPage(1, 100, 100, Margins{})
	a := p.Content()
	a.DrawText(0, 10, "kept", style.New())
	p.Finalize()
	a.DrawText(0, 20, "dropped", style.New())
	if len(p.Ops()) != 1 {
		t.Fatalf("expected draws after finalize to be ignored, got %d ops", len(p.Ops()))
	}
	if !p.Finalized() {
		t.Error("expected page to report finalized")
	}
}

func TestPlaceTranslatesOps(t *testing.T) {
	measured := []Op{
		TextOp{X: 1, Y: 2, Text: "a"},
		RectOp{X: 3, Y: 4, W: 5, H: 6},
		LineOp{X1: 0, Y1: 0, X2: 7, Y2: 8},
		ImageOp{X: 9, Y: 10, W: 1, H: 1, Handle: "img"},
	}

	p := NewPage(1, 100, 100, Margins{})
	p.Content().Skip(50).Child(20, 30).Place(measured)

	ops := p.Ops()
	if len(ops) != 4 {
		t.Fatalf("expected 4 placed ops, got %d", len(ops))
	}
	if op := ops[0].(TextOp); op.X != 21 || op.Y != 52 {
		t.Errorf("text op: expected (21, 52), got (%f, %f)", op.X, op.Y)
	}
	if op := ops[2].(LineOp); op.X2 != 27 || op.Y2 != 58 {
		t.Errorf("line op: expected endpoint (27, 58), got (%f, %f)", op.X2, op.Y2)
	}
	if op := ops[3].(ImageOp); op.X != 29 || op.Handle != "img" {
		t.Errorf("image op: expected x=29 handle kept, got x=%f handle=%q", op.X, op.Handle)
	}
	if measured[0].(TextOp).X != 1 {
		t.Error("placing must not mutate the source ops")
	}
}

func TestMeasureAreaIsUnbounded(t *testing.T) {
	a := NewMeasureArea(120)
	if a.Width() != 120 {
		t.Errorf("expected width 120, got %f", a.Width())
	}
	if !math.IsInf(a.Height(), 1) {
		t.Errorf("expected unbounded height, got %f", a.Height())
	}
	b := a.Skip(1e9)
	if !math.IsInf(b.Height(), 1) {
		t.Errorf("skipping must not exhaust a measure area, got %f", b.Height())
	}
	a.DrawText(0, 10, "discarded", style.New())
	if a.OpCount() != 1 {
		t.Error("measure area still records ops for counting")
	}
}

func TestPDFMatrixFlipsY(t *testing.T) {
	p := NewPage(1, 595, 842, Margins{})
	m := p.PDFMatrix()
	got := m.Transform(Point{X: 100, Y: 0})
	if got.X != 100 || got.Y != 842 {
		t.Errorf("top edge must map to device 842, got (%f, %f)", got.X, got.Y)
	}
	got = m.Transform(Point{X: 0, Y: 842})
	if got.Y != 0 {
		t.Errorf("bottom edge must map to device 0, got %f", got.Y)
	}

	inv, err := m.Inverse()
	if err != nil {
		t.Fatal(err)
	}
	back := inv.Transform(m.Transform(Point{X: 12, Y: 34}))
	if math.Abs(back.X-12) > 1e-9 || math.Abs(back.Y-34) > 1e-9 {
		t.Errorf("inverse round-trip drifted: (%f, %f)", back.X, back.Y)
	}
}
