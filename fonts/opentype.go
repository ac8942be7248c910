package fonts

import (
	"fmt"
	"sync"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// OpenTypeFace is a Face backed by a parsed TrueType/OpenType font.
// Advances are read from the font's horizontal metrics and scaled to the
// requested size. The face is safe for concurrent use; advances are
// memoized per rune in font units.
type OpenTypeFace struct {
	font       *sfnt.Font
	data       []byte
	unitsPerEm float64
	ppem       fixed.Int26_6
	ascent     float64 // font units
	descent    float64 // font units, positive

	mu       sync.Mutex
	buf      sfnt.Buffer
	advances map[rune]float64 // font units
}

// NewOpenTypeFace parses TrueType/OpenType font data and extracts the
// metrics needed for layout. The raw data is retained for shaping.
func NewOpenTypeFace(data []byte) (*OpenTypeFace, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("fonts: font data is empty")
	}
	font, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fonts: parse font: %w", err)
	}
	unitsPerEm := font.UnitsPerEm()
	if unitsPerEm == 0 {
		return nil, fmt.Errorf("fonts: invalid unitsPerEm")
	}
	f := &OpenTypeFace{
		font:       font,
		data:       data,
		unitsPerEm: float64(unitsPerEm),
		ppem:       fixed.Int26_6(int32(unitsPerEm) << 6),
		advances:   make(map[rune]float64),
	}
	var buf sfnt.Buffer
	metrics, err := font.Metrics(&buf, f.ppem, xfont.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("fonts: font metrics: %w", err)
	}
	f.ascent = fixedToUnits(metrics.Ascent)
	f.descent = fixedToUnits(metrics.Descent)
	if f.descent < 0 {
		f.descent = -f.descent
	}
	return f, nil
}

// GlyphWidth returns the advance width of r at the given size. Runes the
// font has no glyph for report the width of the missing-glyph notdef.
func (f *OpenTypeFace) GlyphWidth(r rune, size float64) float64 {
	f.mu.Lock()
	units, ok := f.advances[r]
	if !ok {
		units = f.lookupAdvance(r)
		f.advances[r] = units
	}
	f.mu.Unlock()
	return units * size / f.unitsPerEm
}

// lookupAdvance reads the advance for r in font units. Caller holds mu.
func (f *OpenTypeFace) lookupAdvance(r rune) float64 {
	idx, err := f.font.GlyphIndex(&f.buf, r)
	if err != nil {
		return 0
	}
	adv, err := f.font.GlyphAdvance(&f.buf, idx, f.ppem, xfont.HintingNone)
	if err != nil {
		return 0
	}
	return fixedToUnits(adv)
}

// LineMetrics returns the ascent and descent at the given size.
func (f *OpenTypeFace) LineMetrics(size float64) (float64, float64) {
	scale := size / f.unitsPerEm
	return f.ascent * scale, f.descent * scale
}

// Data returns the raw font file bytes the face was parsed from.
func (f *OpenTypeFace) Data() []byte { return f.data }

func fixedToUnits(v fixed.Int26_6) float64 { return float64(v) / 64.0 }
