package element

import (
	"github.com/wudi/typeset"
	"github.com/wudi/typeset/render"
	"github.com/wudi/typeset/style"
)

// Table is a grid of cell elements laid out in atomic rows: a row
// renders whole on one page or defers whole to the next, except when it
// is taller than a full page, in which case its cells split with the
// usual remainder semantics.
//
// Column widths are resolved once, from the width of the first area the
// table renders into, and continuation fragments reuse them so columns
// stay aligned across pages.
type Table struct {
	columns  int
	weights  []float64
	rows     [][]typeset.Element
	resolved []float64
}

// NewTable builds a table with the given column count. Weights, when
// given, set proportional column widths and must match the column
// count; without weights the columns share the width equally.
// Structural problems are rejected here, before any rendering begins.
func NewTable(columns int, weights ...float64) (*Table, error) {
	if columns <= 0 {
		return nil, typeset.MalformedTableError("column count %d", columns)
	}
	if len(weights) > 0 && len(weights) != columns {
		return nil, typeset.MalformedTableError("%d weights for %d columns", len(weights), columns)
	}
	for _, w := range weights {
		if w <= 0 {
			return nil, typeset.MalformedTableError("non-positive column weight %g", w)
		}
	}
	return &Table{columns: columns, weights: weights}, nil
}

// AddRow appends a row of cells, one element per column.
func (t *Table) AddRow(cells ...typeset.Element) error {
	if len(cells) != t.columns {
		return typeset.MalformedTableError("row has %d cells, table has %d columns", len(cells), t.columns)
	}
	t.rows = append(t.rows, cells)
	return nil
}

func (t *Table) columnWidths(total float64) []float64 {
	ws := make([]float64, t.columns)
	if len(t.weights) == 0 {
		for i := range ws {
			ws[i] = total / float64(t.columns)
		}
		return ws
	}
	sum := 0.0
	for _, w := range t.weights {
		sum += w
	}
	for i, w := range t.weights {
		ws[i] = total * w / sum
	}
	return ws
}

func (t *Table) Render(ctx *typeset.Context, area render.Area, st style.Style) (typeset.RenderResult, error) {
	widths := t.resolved
	if widths == nil {
		widths = t.columnWidths(area.Width())
	}

	used := 0.0
	for r, row := range t.rows {
		rowH, err := measureRow(ctx, row, widths, st)
		if err != nil {
			return typeset.RenderResult{}, err
		}
		avail := area.Height() - used

		if rowH <= avail+heightEpsilon {
			if err := drawRow(ctx, area.Skip(used), row, widths, rowH, st); err != nil {
				return typeset.RenderResult{}, err
			}
			used += rowH
			continue
		}

		if rowH <= ctx.FullPageHeight()+heightEpsilon || avail+heightEpsilon < ctx.FullPageHeight() {
			// The row fits a fresh page, or this page is already partly
			// used: defer it whole.
			return typeset.Partial(used, t.tail(t.rows[r:], widths)), nil
		}

		// The row is taller than any page. Split its cells against the
		// available height; each deferred cell continues on the next
		// page in the same column.
		rest, drawn, err := splitRow(ctx, area.Skip(used), row, widths, st)
		if err != nil {
			return typeset.RenderResult{}, err
		}
		used += drawn
		remRows := append([][]typeset.Element{rest}, t.rows[r+1:]...)
		return typeset.Partial(used, t.tail(remRows, widths)), nil
	}
	return typeset.Done(used), nil
}

// tail builds the continuation table over the given rows, carrying the
// resolved column widths.
func (t *Table) tail(rows [][]typeset.Element, widths []float64) *Table {
	return &Table{columns: t.columns, weights: t.weights, rows: rows, resolved: widths}
}

// measureRow dry-runs every cell at its column width against unbounded
// height and returns the tallest result.
func measureRow(ctx *typeset.Context, row []typeset.Element, widths []float64, st style.Style) (float64, error) {
	mctx := ctx.MeasureContext()
	rowH := 0.0
	for i, cell := range row {
		res, err := cell.Render(mctx, render.NewMeasureArea(widths[i]), st)
		if err != nil {
			return 0, err
		}
		if res.Height > rowH {
			rowH = res.Height
		}
	}
	return rowH, nil
}

func drawRow(ctx *typeset.Context, area render.Area, row []typeset.Element, widths []float64, rowH float64, st style.Style) error {
	x := 0.0
	for i, cell := range row {
		cellArea := area.Child(x, widths[i]).WithHeight(rowH)
		if _, err := cell.Render(ctx, cellArea, st); err != nil {
			return err
		}
		x += widths[i]
	}
	return nil
}

// splitRow renders each cell into the remaining height and collects the
// per-cell remainders. The consumed height is the tallest drawn cell;
// finished cells continue as empty spacers so the continuation row
// keeps its shape.
func splitRow(ctx *typeset.Context, area render.Area, row []typeset.Element, widths []float64, st style.Style) ([]typeset.Element, float64, error) {
	rest := make([]typeset.Element, len(row))
	drawn := 0.0
	x := 0.0
	for i, cell := range row {
		res, err := cell.Render(ctx, area.Child(x, widths[i]), st)
		if err != nil {
			return nil, 0, err
		}
		if res.Height > drawn {
			drawn = res.Height
		}
		if res.Remainder != nil {
			rest[i] = res.Remainder
		} else {
			rest[i] = NewSpacer(0)
		}
		x += widths[i]
	}
	return rest, drawn, nil
}
