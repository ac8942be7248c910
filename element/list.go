package element

import (
	"fmt"

	"github.com/wudi/typeset"
	"github.com/wudi/typeset/fonts"
	"github.com/wudi/typeset/render"
	"github.com/wudi/typeset/style"
)

// Bullet is the marker glyph unordered list items are prefixed with.
const Bullet = "•"

// List renders item elements indented behind a marker column. Markers
// are assigned at construction, so ordered-list numbering stays stable
// however the list splits across pages; a continuation item does not
// repeat its marker.
type List struct {
	items   []typeset.Element
	markers []string
}

// NewUnorderedList builds a bullet list over the given items.
func NewUnorderedList(items ...typeset.Element) *List {
	markers := make([]string, len(items))
	for i := range markers {
		markers[i] = Bullet
	}
	return &List{items: items, markers: markers}
}

// NewOrderedList builds a numbered list over the given items, starting
// at 1.
func NewOrderedList(items ...typeset.Element) *List {
	return NewOrderedListAt(1, items...)
}

// NewOrderedListAt builds a numbered list whose first item carries the
// given number.
func NewOrderedListAt(start int, items ...typeset.Element) *List {
	markers := make([]string, len(items))
	for i := range markers {
		markers[i] = fmt.Sprintf("%d.", start+i)
	}
	return &List{items: items, markers: markers}
}

func (l *List) Render(ctx *typeset.Context, area render.Area, st style.Style) (typeset.RenderResult, error) {
	face, err := ctx.Fonts.Resolve(st)
	if err != nil {
		return typeset.RenderResult{}, wrapResolveError(err)
	}
	indent := 0.0
	for _, m := range l.markers {
		if w := fonts.MeasureString(face, m, st.Size()); w > indent {
			indent = w
		}
	}
	indent += face.GlyphWidth(' ', st.Size())

	used := 0.0
	for i, item := range l.items {
		sub := area.Skip(used)
		res, err := item.Render(ctx, sub.Child(indent, sub.Width()-indent), st)
		if err != nil {
			return typeset.RenderResult{}, err
		}

		drewItem := res.Height > 0 || res.Remainder == nil
		if drewItem && l.markers[i] != "" {
			ascent, _ := face.LineMetrics(st.Size())
			sub.DrawText(0, ascent, l.markers[i], st)
			if res.Height < st.LineHeight() {
				res.Height = min(st.LineHeight(), sub.Height())
			}
		}
		used += res.Height

		if res.Remainder == nil && !res.PageBreak {
			continue
		}
		var items []typeset.Element
		var markers []string
		if res.Remainder != nil {
			items = append(items, res.Remainder)
			if drewItem {
				markers = append(markers, "")
			} else {
				markers = append(markers, l.markers[i])
			}
		}
		items = append(items, l.items[i+1:]...)
		markers = append(markers, l.markers[i+1:]...)
		var rem typeset.Element
		if len(items) > 0 {
			rem = &List{items: items, markers: markers}
		}
		return typeset.RenderResult{Height: used, Remainder: rem, PageBreak: res.PageBreak}, nil
	}
	return typeset.Done(used), nil
}
