package element

import (
	"github.com/wudi/typeset"
	"github.com/wudi/typeset/render"
	"github.com/wudi/typeset/style"
)

// ExternalBlock is opaque pre-measured content supplied by a
// specialized renderer, such as a math or code formatter. Its draw
// instructions were recorded against a local origin and are placed
// verbatim; the block follows the same no-split policy as Image.
type ExternalBlock struct {
	name          string
	width, height float64
	ops           []render.Op
}

// NewExternalBlock wraps pre-measured draw instructions. name labels
// the producing renderer in diagnostics.
func NewExternalBlock(name string, width, height float64, ops []render.Op) *ExternalBlock {
	return &ExternalBlock{name: name, width: width, height: height, ops: ops}
}

// Size returns the block's pre-measured dimensions.
func (b *ExternalBlock) Size() (width, height float64) { return b.width, b.height }

func (b *ExternalBlock) Render(ctx *typeset.Context, area render.Area, _ style.Style) (typeset.RenderResult, error) {
	if b.height > area.Height()+heightEpsilon {
		if area.Height()+heightEpsilon < ctx.FullPageHeight() {
			return typeset.Partial(0, b), nil
		}
		ctx.Overflow(b.name, "block height %.2f exceeds page content height %.2f", b.height, ctx.FullPageHeight())
	}
	if b.width > area.Width()+heightEpsilon {
		ctx.Overflow(b.name, "block width %.2f exceeds area width %.2f", b.width, area.Width())
	}
	area.Place(b.ops)
	return typeset.Done(min(b.height, area.Height())), nil
}
