package text

import (
	"sync"
)

// GlyphInfo describes one character of a font. All lengths are in em
// units and get multiplied by the font size at layout time.
// GlyphInfo is immutable once the font is published.
type GlyphInfo struct {
	// Char is the character this glyph renders.
	Char rune

	// XAdvance is the horizontal distance to the next glyph.
	XAdvance float32

	// XOffset and YOffset position the quad relative to the pen position
	// and the top of the line.
	XOffset float32
	YOffset float32

	// Width and Height are the quad size.
	Width  float32
	Height float32

	// UVX, UVY, UVWidth and UVHeight locate the glyph in its atlas page,
	// normalized to [0, 1]. All zero for fonts without an atlas.
	UVX      float32
	UVY      float32
	UVWidth  float32
	UVHeight float32

	// Page is the index of the atlas page in FontInfo.Pages.
	Page int
}

// FontInfo holds font-level metrics in em units plus atlas data.
type FontInfo struct {
	// Name is the family name reported by the font.
	Name string

	// LineHeight is the recommended baseline-to-baseline distance.
	LineHeight float32

	// Base is the distance from the top of the line to the baseline.
	Base float32

	// DistanceRange is the MSDF distance range in atlas pixels.
	// Zero for fonts without a distance field.
	DistanceRange float32

	// AtlasWidth and AtlasHeight are the atlas page size in pixels.
	AtlasWidth  int
	AtlasHeight int

	// Pages lists the atlas texture locations.
	Pages []string
}

type kernPair struct {
	first, second rune
}

// Font is a glyph table shared by every text element that uses it.
// Glyphs of TTF-backed fonts are derived lazily on first use.
//
// Font is safe for concurrent use.
type Font struct {
	info FontInfo

	mu      sync.RWMutex
	glyphs  map[rune]*GlyphInfo
	kerning map[kernPair]float32
	missing map[rune]struct{}

	// parsed is non-nil for outline fonts whose glyphs are computed on demand.
	parsed ParsedFont
}

// missingGlyph is returned for characters absent from the font.
// It measures as zero width and renders nothing.
var missingGlyph = &GlyphInfo{}

// NewFont creates a font from a prebuilt glyph table.
// Kerning amounts are in em units.
func NewFont(info FontInfo, glyphs []GlyphInfo, kerning map[[2]rune]float32) *Font {
	f := &Font{
		info:    info,
		glyphs:  make(map[rune]*GlyphInfo, len(glyphs)),
		kerning: make(map[kernPair]float32, len(kerning)),
		missing: make(map[rune]struct{}),
	}
	for i := range glyphs {
		g := glyphs[i]
		f.glyphs[g.Char] = &g
	}
	for k, v := range kerning {
		f.kerning[kernPair{k[0], k[1]}] = v
	}
	return f
}

// EmptyFont returns a font without glyphs. Every character measures as
// zero width. Used as the result of a failed load.
func EmptyFont(name string) *Font {
	return NewFont(FontInfo{Name: name, LineHeight: 1.2, Base: 1}, nil, nil)
}

// Info returns the font-level metrics.
func (f *Font) Info() FontInfo {
	return f.info
}

// Name returns the font family name.
func (f *Font) Name() string {
	return f.info.Name
}

// HasAtlas reports whether the font carries atlas UVs (MSDF/bitmap fonts).
func (f *Font) HasAtlas() bool {
	return f != nil && len(f.info.Pages) > 0
}

// Glyph returns the glyph for r, or a zero-width glyph when the font has
// none. It never returns nil.
func (f *Font) Glyph(r rune) *GlyphInfo {
	if f == nil {
		return missingGlyph
	}
	f.mu.RLock()
	g, ok := f.glyphs[r]
	f.mu.RUnlock()
	if ok {
		return g
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if g, ok := f.glyphs[r]; ok {
		return g
	}
	if _, known := f.missing[r]; known {
		return missingGlyph
	}
	if f.parsed != nil {
		if g := glyphFromOutline(f.parsed, r); g != nil {
			f.glyphs[r] = g
			return g
		}
	}
	f.missing[r] = struct{}{}
	slogger().Debug("text: missing glyph", "font", f.info.Name, "rune", string(r))
	return missingGlyph
}

// HasGlyph reports whether the font has a glyph for r.
func (f *Font) HasGlyph(r rune) bool {
	return f.Glyph(r) != missingGlyph
}

// Kerning returns the kerning adjustment between first and second, in em.
func (f *Font) Kerning(first, second rune) float32 {
	if f == nil {
		return 0
	}
	key := kernPair{first, second}
	f.mu.RLock()
	k, ok := f.kerning[key]
	f.mu.RUnlock()
	if ok || f.parsed == nil {
		return k
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if k, ok := f.kerning[key]; ok {
		return k
	}
	k = kerningFromOutline(f.parsed, first, second)
	f.kerning[key] = k
	return k
}

// glyphFromOutline derives an em-unit glyph from an outline font.
// Outline fonts have no atlas, so the quad spans the advance and one em.
func glyphFromOutline(p ParsedFont, r rune) *GlyphInfo {
	gid, ok := p.GlyphIndex(r)
	if !ok {
		return nil
	}
	upem := p.UnitsPerEm()
	if upem <= 0 {
		return nil
	}
	adv := p.Advance(gid) / upem
	return &GlyphInfo{
		Char:     r,
		XAdvance: adv,
		Width:    adv,
		Height:   1,
	}
}

func kerningFromOutline(p ParsedFont, first, second rune) float32 {
	a, ok := p.GlyphIndex(first)
	if !ok {
		return 0
	}
	b, ok := p.GlyphIndex(second)
	if !ok {
		return 0
	}
	upem := p.UnitsPerEm()
	if upem <= 0 {
		return 0
	}
	return p.Kern(a, b) / upem
}
