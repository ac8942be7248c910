package element

import (
	"github.com/wudi/typeset"
	"github.com/wudi/typeset/render"
	"github.com/wudi/typeset/style"
)

// LinearLayout stacks child elements vertically in order. When a child
// only partially fits, the layout stops there: later siblings are never
// drawn on a page where an earlier sibling was cut, so reading order is
// preserved across page boundaries.
type LinearLayout struct {
	children []typeset.Element
}

// NewLinearLayout builds a vertical container over the given children.
func NewLinearLayout(children ...typeset.Element) *LinearLayout {
	return &LinearLayout{children: children}
}

// Push appends a child. It is a build-time helper; containers are not
// modified during layout.
func (l *LinearLayout) Push(e typeset.Element) *LinearLayout {
	l.children = append(l.children, e)
	return l
}

func (l *LinearLayout) Render(ctx *typeset.Context, area render.Area, st style.Style) (typeset.RenderResult, error) {
	used := 0.0
	for i, child := range l.children {
		res, err := child.Render(ctx, area.Skip(used), st)
		if err != nil {
			return typeset.RenderResult{}, err
		}
		used += res.Height

		if res.Remainder == nil && !res.PageBreak {
			continue
		}
		var rest []typeset.Element
		if res.Remainder != nil {
			rest = append(rest, res.Remainder)
		}
		rest = append(rest, l.children[i+1:]...)
		var rem typeset.Element
		if len(rest) > 0 {
			rem = NewLinearLayout(rest...)
		}
		return typeset.RenderResult{Height: used, Remainder: rem, PageBreak: res.PageBreak}, nil
	}
	return typeset.Done(used), nil
}
