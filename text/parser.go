package text

import (
	"sync"
)

// FontParser is a pluggable backend that turns TTF/OTF data into a
// ParsedFont. Two backends are registered: "ximage"
// (golang.org/x/image/font/sfnt, the default, with kerning) and "gotext"
// (github.com/go-text/typesetting).
type FontParser interface {
	// Parse parses font data (TTF or OTF).
	Parse(data []byte) (ParsedFont, error)
}

// ParsedFont exposes the outline font data that Font needs to derive
// glyph metrics. All lengths are in font units.
//
// Implementations need not be safe for concurrent use; Font serializes
// access.
type ParsedFont interface {
	// Name returns the font family name, or "" if unavailable.
	Name() string

	// UnitsPerEm returns the number of font units per em.
	UnitsPerEm() float32

	// GlyphIndex returns the glyph for r and whether the font maps it.
	GlyphIndex(r rune) (uint32, bool)

	// Advance returns the horizontal advance of a glyph.
	Advance(gid uint32) float32

	// Kern returns the pair adjustment between two glyphs.
	Kern(a, b uint32) float32

	// Extents returns the ascender, descender (positive, below baseline)
	// and line gap.
	Extents() (ascent, descent, lineGap float32)
}

const defaultParserName = "ximage"

var (
	parserMu       sync.RWMutex
	parserRegistry = map[string]FontParser{
		"ximage": ximageParser{},
		"gotext": gotextParser{},
	}
)

// RegisterParser registers a font parser under name.
func RegisterParser(name string, parser FontParser) {
	parserMu.Lock()
	defer parserMu.Unlock()
	parserRegistry[name] = parser
}

// getParser returns the parser by name, or the default if not found.
func getParser(name string) FontParser {
	parserMu.RLock()
	defer parserMu.RUnlock()
	if p, ok := parserRegistry[name]; ok {
		return p
	}
	return parserRegistry[defaultParserName]
}

// NewFontFromTTF creates a font backed by TrueType/OpenType outlines.
// Glyph metrics are derived lazily when characters are first measured.
func NewFontFromTTF(data []byte, opts ...FontOption) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	cfg := defaultFontConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	parsed, err := getParser(cfg.parserName).Parse(data)
	if err != nil {
		return nil, err
	}

	name := cfg.name
	if name == "" {
		name = parsed.Name()
	}

	info := FontInfo{Name: name, LineHeight: 1.2, Base: 1}
	if upem := parsed.UnitsPerEm(); upem > 0 {
		ascent, descent, gap := parsed.Extents()
		if lh := (ascent + descent + gap) / upem; lh > 0 {
			info.LineHeight = lh
			info.Base = ascent / upem
		}
	}

	f := NewFont(info, nil, nil)
	f.parsed = parsed
	return f, nil
}
