package text

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/font"
)

// gotextParser implements FontParser using go-text/typesetting.
// It reads advances from hmtx and extents from hhea/OS2; pair kerning is
// not read, so Kern always reports 0.
type gotextParser struct{}

// Parse implements FontParser.Parse.
func (gotextParser) Parse(data []byte) (ParsedFont, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	return &gotextParsedFont{face: face}, nil
}

// gotextParsedFont wraps a go-text font.Face, which is not safe for
// concurrent use; Font serializes calls.
type gotextParsedFont struct {
	face *font.Face
}

// Name implements ParsedFont.Name.
func (f *gotextParsedFont) Name() string {
	return f.face.Describe().Family
}

// UnitsPerEm implements ParsedFont.UnitsPerEm.
func (f *gotextParsedFont) UnitsPerEm() float32 {
	return float32(f.face.Upem())
}

// GlyphIndex implements ParsedFont.GlyphIndex.
func (f *gotextParsedFont) GlyphIndex(r rune) (uint32, bool) {
	gid, ok := f.face.NominalGlyph(r)
	return uint32(gid), ok
}

// Advance implements ParsedFont.Advance.
func (f *gotextParsedFont) Advance(gid uint32) float32 {
	return f.face.HorizontalAdvance(font.GID(gid))
}

// Kern implements ParsedFont.Kern.
func (f *gotextParsedFont) Kern(uint32, uint32) float32 {
	return 0
}

// Extents implements ParsedFont.Extents.
func (f *gotextParsedFont) Extents() (ascent, descent, lineGap float32) {
	ext, ok := f.face.FontHExtents()
	if !ok {
		return 0, 0, 0
	}
	descent = ext.Descender
	if descent < 0 {
		descent = -descent
	}
	return ext.Ascender, descent, ext.LineGap
}
