// Package style provides immutable, inheritable text style descriptors.
//
// A Style tracks which of its fields were explicitly set; Merge takes the
// explicitly-set fields of an override and falls through to the base for
// everything else. Styles are values and are never mutated after
// construction, so they can be shared freely across an element tree.
package style

// Color represents an RGB color with components in the range [0, 1].
type Color struct {
	R, G, B float64
}

// Black is the default text color.
var Black = Color{}

// Default style values used for fields that were never explicitly set.
const (
	DefaultFontSize    = 12.0
	DefaultLineSpacing = 1.0
)

const (
	fieldFamily = 1 << iota
	fieldSize
	fieldBold
	fieldItalic
	fieldUnderline
	fieldColor
	fieldLineSpacing
)

// Style describes how a run of text is rendered: font family reference,
// size, emphasis flags, color and line spacing. The zero value has no
// fields set and resolves entirely to defaults.
type Style struct {
	family      string
	size        float64
	color       Color
	lineSpacing float64
	bold        bool
	italic      bool
	underline   bool
	set         uint8
}

// New returns an empty style with no fields set.
func New() Style { return Style{} }

// WithFamily returns a copy of s with the font family reference set.
func (s Style) WithFamily(family string) Style {
	s.family = family
	s.set |= fieldFamily
	return s
}

// WithSize returns a copy of s with the font size set. Non-positive sizes
// are ignored.
func (s Style) WithSize(size float64) Style {
	if size <= 0 {
		return s
	}
	s.size = size
	s.set |= fieldSize
	return s
}

// WithBold returns a copy of s with the bold flag set.
func (s Style) WithBold(bold bool) Style {
	s.bold = bold
	s.set |= fieldBold
	return s
}

// WithItalic returns a copy of s with the italic flag set.
func (s Style) WithItalic(italic bool) Style {
	s.italic = italic
	s.set |= fieldItalic
	return s
}

// WithUnderline returns a copy of s with the underline flag set.
func (s Style) WithUnderline(underline bool) Style {
	s.underline = underline
	s.set |= fieldUnderline
	return s
}

// WithColor returns a copy of s with the text color set.
func (s Style) WithColor(c Color) Style {
	s.color = c
	s.set |= fieldColor
	return s
}

// WithLineSpacing returns a copy of s with the line spacing multiplier
// set. Non-positive values are ignored.
func (s Style) WithLineSpacing(spacing float64) Style {
	if spacing <= 0 {
		return s
	}
	s.lineSpacing = spacing
	s.set |= fieldLineSpacing
	return s
}

// Family returns the font family reference, or the empty string when
// unset (meaning the font collection's default family).
func (s Style) Family() string {
	if s.set&fieldFamily == 0 {
		return ""
	}
	return s.family
}

// Size returns the font size, defaulting to DefaultFontSize.
func (s Style) Size() float64 {
	if s.set&fieldSize == 0 {
		return DefaultFontSize
	}
	return s.size
}

// Bold reports whether the bold emphasis flag is on.
func (s Style) Bold() bool { return s.set&fieldBold != 0 && s.bold }

// Italic reports whether the italic emphasis flag is on.
func (s Style) Italic() bool { return s.set&fieldItalic != 0 && s.italic }

// Underline reports whether the underline flag is on.
func (s Style) Underline() bool { return s.set&fieldUnderline != 0 && s.underline }

// Color returns the text color, defaulting to black.
func (s Style) Color() Color {
	if s.set&fieldColor == 0 {
		return Black
	}
	return s.color
}

// LineSpacing returns the line spacing multiplier, defaulting to 1.0.
func (s Style) LineSpacing() float64 {
	if s.set&fieldLineSpacing == 0 {
		return DefaultLineSpacing
	}
	return s.lineSpacing
}

// LineHeight returns the nominal height of a line: font size times line
// spacing.
func (s Style) LineHeight() float64 { return s.Size() * s.LineSpacing() }

// Merge returns a new style taking the explicitly-set fields of override
// and s's fields for everything else.
func (s Style) Merge(override Style) Style {
	out := s
	if override.set&fieldFamily != 0 {
		out.family = override.family
	}
	if override.set&fieldSize != 0 {
		out.size = override.size
	}
	if override.set&fieldBold != 0 {
		out.bold = override.bold
	}
	if override.set&fieldItalic != 0 {
		out.italic = override.italic
	}
	if override.set&fieldUnderline != 0 {
		out.underline = override.underline
	}
	if override.set&fieldColor != 0 {
		out.color = override.color
	}
	if override.set&fieldLineSpacing != 0 {
		out.lineSpacing = override.lineSpacing
	}
	out.set |= override.set
	return out
}

// StyledString pairs a run of text with the style overriding the
// inherited style for that run.
type StyledString struct {
	Text  string
	Style Style
}
