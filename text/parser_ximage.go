package text

import (
	"errors"
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ximageParser implements FontParser using golang.org/x/image/font/sfnt.
type ximageParser struct{}

// Parse implements FontParser.Parse.
func (ximageParser) Parse(data []byte) (ParsedFont, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	return &ximageParsedFont{font: f}, nil
}

// ximageParsedFont reads metrics at ppem = unitsPerEm so every value
// comes back in font units.
type ximageParsedFont struct {
	font *sfnt.Font
	buf  sfnt.Buffer
}

func (f *ximageParsedFont) ppem() fixed.Int26_6 {
	return fixed.Int26_6(int32(f.font.UnitsPerEm()) << 6)
}

// Name implements ParsedFont.Name.
func (f *ximageParsedFont) Name() string {
	name, err := f.font.Name(&f.buf, sfnt.NameIDFamily)
	if err != nil {
		return ""
	}
	return name
}

// UnitsPerEm implements ParsedFont.UnitsPerEm.
func (f *ximageParsedFont) UnitsPerEm() float32 {
	return float32(f.font.UnitsPerEm())
}

// GlyphIndex implements ParsedFont.GlyphIndex.
func (f *ximageParsedFont) GlyphIndex(r rune) (uint32, bool) {
	idx, err := f.font.GlyphIndex(&f.buf, r)
	if err != nil || idx == 0 {
		return 0, false
	}
	return uint32(idx), true
}

// Advance implements ParsedFont.Advance.
func (f *ximageParsedFont) Advance(gid uint32) float32 {
	adv, err := f.font.GlyphAdvance(&f.buf, sfnt.GlyphIndex(gid), f.ppem(), font.HintingNone)
	if err != nil {
		return 0
	}
	return fixedToFloat32(adv)
}

// Kern implements ParsedFont.Kern. Fonts without a kern table report 0.
func (f *ximageParsedFont) Kern(a, b uint32) float32 {
	k, err := f.font.Kern(&f.buf, sfnt.GlyphIndex(a), sfnt.GlyphIndex(b), f.ppem(), font.HintingNone)
	if err != nil {
		if !errors.Is(err, sfnt.ErrNotFound) {
			slogger().Debug("text: kern lookup failed", "err", err)
		}
		return 0
	}
	return fixedToFloat32(k)
}

// Extents implements ParsedFont.Extents.
func (f *ximageParsedFont) Extents() (ascent, descent, lineGap float32) {
	m, err := f.font.Metrics(&f.buf, f.ppem(), font.HintingNone)
	if err != nil {
		return 0, 0, 0
	}
	ascent = fixedToFloat32(m.Ascent)
	descent = fixedToFloat32(m.Descent)
	if h := fixedToFloat32(m.Height); h > ascent+descent {
		lineGap = h - ascent - descent
	}
	return ascent, descent, lineGap
}

func fixedToFloat32(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
