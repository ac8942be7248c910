// Package fonts implements the font-metrics collaborator consumed by the
// layout engine: glyph advance widths and line metrics per face, and a
// collection that resolves a style's family reference and emphasis flags
// to a concrete face.
//
// Implementations must be deterministic: identical (rune, size) inputs
// always yield identical widths. Faces may memoize internally as long as
// that property holds.
package fonts

import (
	"errors"
	"fmt"

	"github.com/wudi/typeset/style"
)

// ErrUnknownFamily is returned when a style references a font family
// that was never registered with the collection.
var ErrUnknownFamily = errors.New("fonts: unknown font family")

// Face exposes the metrics of a single font face.
type Face interface {
	// GlyphWidth returns the advance width of r rendered at the given
	// font size, in the same unit as the size.
	GlyphWidth(r rune, size float64) float64
	// LineMetrics returns the ascent above and descent below the
	// baseline at the given font size. Both values are positive.
	LineMetrics(size float64) (ascent, descent float64)
}

// Family groups the faces of one font family by emphasis. Missing
// emphasis variants fall back to Regular.
type Family struct {
	Regular    Face
	Bold       Face
	Italic     Face
	BoldItalic Face
}

func (f Family) face(bold, italic bool) Face {
	switch {
	case bold && italic:
		if f.BoldItalic != nil {
			return f.BoldItalic
		}
	case bold:
		if f.Bold != nil {
			return f.Bold
		}
	case italic:
		if f.Italic != nil {
			return f.Italic
		}
	}
	return f.Regular
}

// Collection maps family names to registered faces. The first registered
// family becomes the default used for styles without an explicit family.
type Collection struct {
	families    map[string]Family
	defaultName string
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{families: make(map[string]Family)}
}

// Register adds a family under the given name. The first registration
// becomes the collection default. A family without a Regular face is
// rejected.
func (c *Collection) Register(name string, fam Family) error {
	if fam.Regular == nil {
		return fmt.Errorf("fonts: family %q has no regular face", name)
	}
	if len(c.families) == 0 {
		c.defaultName = name
	}
	c.families[name] = fam
	return nil
}

// SetDefault changes the default family.
func (c *Collection) SetDefault(name string) error {
	if _, ok := c.families[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFamily, name)
	}
	c.defaultName = name
	return nil
}

// Resolve returns the face for the style's family reference and emphasis
// flags. An unresolved family reference is fatal for layout.
func (c *Collection) Resolve(st style.Style) (Face, error) {
	name := st.Family()
	if name == "" {
		name = c.defaultName
	}
	fam, ok := c.families[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, name)
	}
	return fam.face(st.Bold(), st.Italic()), nil
}

// FixedFace is a metrics-only face with a uniform advance width,
// expressed as a fraction of the font size. It backs tests and callers
// that need deterministic geometry without font files.
type FixedFace struct {
	// Advance is the width of every glyph as a fraction of the font
	// size. Zero means 0.5.
	Advance float64
	// Ascent and Descent are fractions of the font size. Zero means
	// 0.8 and 0.2 respectively.
	Ascent, Descent float64
}

func (f FixedFace) GlyphWidth(_ rune, size float64) float64 {
	adv := f.Advance
	if adv == 0 {
		adv = 0.5
	}
	return adv * size
}

func (f FixedFace) LineMetrics(size float64) (float64, float64) {
	asc, desc := f.Ascent, f.Descent
	if asc == 0 {
		asc = 0.8
	}
	if desc == 0 {
		desc = 0.2
	}
	return asc * size, desc * size
}

// MeasureString sums the glyph advances of s at the given size.
func MeasureString(f Face, s string, size float64) float64 {
	var w float64
	for _, r := range s {
		w += f.GlyphWidth(r, size)
	}
	return w
}
