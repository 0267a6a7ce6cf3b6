package text

import (
	"iter"
	"unicode"

	"github.com/chewxy/math32"
)

// WrapMode specifies how text is wrapped when it exceeds the available width.
type WrapMode uint8

const (
	// WrapWord breaks at whitespace only. A word wider than the available
	// width overflows instead of being split. This is the default.
	WrapWord WrapMode = iota

	// WrapNone only breaks at explicit newlines.
	WrapNone

	// WrapAll breaks between any two characters.
	WrapAll
)

// String returns the string representation of the wrap mode.
func (m WrapMode) String() string {
	switch m {
	case WrapWord:
		return "Word"
	case WrapNone:
		return "None"
	case WrapAll:
		return "All"
	default:
		return unknownStr
	}
}

// ParseWrapMode maps CSS-like names ("break-word", "word", "keep-all",
// "none", "nowrap", "break-all", "all") to a WrapMode.
func ParseWrapMode(s string) (WrapMode, bool) {
	switch s {
	case "break-word", "word", "normal":
		return WrapWord, true
	case "keep-all", "none", "nowrap":
		return WrapNone, true
	case "break-all", "all", "anywhere":
		return WrapAll, true
	default:
		return WrapWord, false
	}
}

// Func returns the wrapper implementing the mode.
func (m WrapMode) Func() WrapFunc {
	switch m {
	case WrapNone:
		return NoWrap
	case WrapAll:
		return BreakAll
	default:
		return WordWrap
	}
}

const unknownStr = "Unknown"

// widthEpsilon absorbs float noise when a measured width is fed back as
// the available width.
const widthEpsilon = 1e-3

// Unbounded as available width requests an unconstrained measurement.
var Unbounded = math32.Inf(1)

// IsUnbounded reports whether w means "no width constraint" (+Inf or NaN).
func IsUnbounded(w float32) bool {
	return math32.IsNaN(w) || math32.IsInf(w, 1)
}

// GlyphLayoutLine is one wrapped line: a span of characters of the source
// text plus its width without trailing whitespace.
//
// CharLength >= NonWhitespaceCharLength always holds. Whitespace after the
// last word of a wrapped line is part of CharLength; the newline that ends
// a line belongs to no line.
type GlyphLayoutLine struct {
	// CharIndexOffset is the index of the first character of the line.
	CharIndexOffset int

	// CharLength is the number of characters including trailing whitespace.
	CharLength int

	// NonWhitespaceCharLength counts characters up to and including the
	// last non-whitespace character.
	NonWhitespaceCharLength int

	// NonWhitespaceWidth is the width used for horizontal alignment.
	NonWhitespaceWidth float32

	// WhitespacesBetween counts whitespace characters between the first and
	// last non-whitespace character (used for block alignment).
	WhitespacesBetween int
}

// End returns the index just past the last character of the line.
func (l GlyphLayoutLine) End() int {
	return l.CharIndexOffset + l.CharLength
}

// GlyphProperties are the inputs of a glyph layout.
type GlyphProperties struct {
	// Text is indexed by character (rune).
	Text []rune

	Font          *Font
	FontSize      float32
	LetterSpacing float32
	LineHeight    LineHeight
	WordBreak     WrapMode
}

// NewGlyphProperties creates properties with the default line height and
// word wrapping.
func NewGlyphProperties(s string, font *Font, fontSize float32) *GlyphProperties {
	return &GlyphProperties{
		Text:       []rune(s),
		Font:       font,
		FontSize:   fontSize,
		LineHeight: DefaultLineHeight,
	}
}

// LineString returns the characters of a line, including trailing whitespace.
func (p *GlyphProperties) LineString(l GlyphLayoutLine) string {
	return string(p.Text[l.CharIndexOffset:l.End()])
}

// advance returns the width that character i adds to a line starting at
// lineStart: its advance, plus kerning and letter spacing against the
// previous character of the same line.
func (p *GlyphProperties) advance(i, lineStart int) float32 {
	r := p.Text[i]
	w := p.Font.Glyph(r).XAdvance * p.FontSize
	if i > lineStart {
		w += p.Font.Kerning(p.Text[i-1], r)*p.FontSize + p.LetterSpacing
	}
	return w
}

// WrapFunc produces the line that starts at (or after whitespace following)
// start, and returns the index where the next line starts. Callers iterate
// until the index reaches len(p.Text); calling again with 0 restarts.
type WrapFunc func(p *GlyphProperties, availableWidth float32, start int) (GlyphLayoutLine, int)

// isWhitespace reports whether r is breakable whitespace. Newlines are
// handled separately and no-break spaces are part of words.
func isWhitespace(r rune) bool {
	return r != '\n' && r != '\u00a0' && r != '\u202f' && unicode.IsSpace(r)
}

// skipWhitespace returns the first index >= i that is not whitespace.
func skipWhitespace(text []rune, i int) int {
	for i < len(text) && isWhitespace(text[i]) {
		i++
	}
	return i
}

// exceeds reports whether width overflows availableWidth.
func exceeds(width, availableWidth float32) bool {
	return !IsUnbounded(availableWidth) && width > availableWidth+widthEpsilon
}

// lineScanner accumulates one line.
type lineScanner struct {
	p       *GlyphProperties
	i       int
	line    GlyphLayoutLine
	width   float32
	pending int // whitespace since the last non-whitespace character
}

func newLineScanner(p *GlyphProperties, start int) lineScanner {
	i := skipWhitespace(p.Text, start)
	return lineScanner{p: p, i: i, line: GlyphLayoutLine{CharIndexOffset: i}}
}

// place adds the character at the cursor whose width is w.
func (s *lineScanner) place(w float32) {
	s.width += w
	if isWhitespace(s.p.Text[s.i]) {
		s.pending++
	} else {
		if s.line.NonWhitespaceCharLength > 0 {
			s.line.WhitespacesBetween += s.pending
		}
		s.pending = 0
		s.line.NonWhitespaceCharLength = s.i + 1 - s.line.CharIndexOffset
		s.line.NonWhitespaceWidth = s.width
	}
	s.i++
}

// finish ends the line at the cursor. If the cursor is on a newline it is
// consumed.
func (s *lineScanner) finish() (GlyphLayoutLine, int) {
	s.line.CharLength = s.i - s.line.CharIndexOffset
	next := s.i
	if next < len(s.p.Text) && s.p.Text[next] == '\n' {
		next++
	}
	return s.line, next
}

// NoWrap consumes characters until a newline or the end of the text.
// The available width is ignored.
func NoWrap(p *GlyphProperties, _ float32, start int) (GlyphLayoutLine, int) {
	s := newLineScanner(p, start)
	for s.i < len(p.Text) && p.Text[s.i] != '\n' {
		s.place(p.advance(s.i, s.line.CharIndexOffset))
	}
	return s.finish()
}

// BreakAll ends the line before the first non-whitespace character that
// would overflow the available width, once at least one non-whitespace
// character is on the line. Words are split freely.
func BreakAll(p *GlyphProperties, availableWidth float32, start int) (GlyphLayoutLine, int) {
	s := newLineScanner(p, start)
	for s.i < len(p.Text) && p.Text[s.i] != '\n' {
		w := p.advance(s.i, s.line.CharIndexOffset)
		if !isWhitespace(p.Text[s.i]) && s.line.NonWhitespaceCharLength > 0 && exceeds(s.width+w, availableWidth) {
			break
		}
		s.place(w)
	}
	return s.finish()
}

// WordWrap breaks only at whitespace. When a character overflows the
// available width, the line ends before the word containing it, provided
// an earlier word is already on the line; otherwise the word overflows.
func WordWrap(p *GlyphProperties, availableWidth float32, start int) (GlyphLayoutLine, int) {
	s := newLineScanner(p, start)
	text := p.Text

	var committed GlyphLayoutLine
	hasCommit := false
	wordStart := s.line.CharIndexOffset

	for s.i < len(text) && text[s.i] != '\n' {
		r := text[s.i]
		w := p.advance(s.i, s.line.CharIndexOffset)
		if !isWhitespace(r) {
			if s.i > s.line.CharIndexOffset && isWhitespace(text[s.i-1]) {
				wordStart = s.i
			}
			if hasCommit && exceeds(s.width+w, availableWidth) {
				committed.CharLength = wordStart - committed.CharIndexOffset
				return committed, wordStart
			}
		}
		s.place(w)
		if !isWhitespace(r) && (s.i == len(text) || text[s.i] == '\n' || isWhitespace(text[s.i])) {
			committed = s.line
			hasCommit = true
		}
	}
	return s.finish()
}

// Lines lazily yields the lines of p wrapped at availableWidth. Text
// ending in a newline yields a final empty line; empty text yields none.
func Lines(p *GlyphProperties, availableWidth float32) iter.Seq[GlyphLayoutLine] {
	wrap := p.WordBreak.Func()
	return func(yield func(GlyphLayoutLine) bool) {
		n := len(p.Text)
		for i := 0; i < n; {
			line, next := wrap(p, availableWidth, i)
			if !yield(line) {
				return
			}
			i = next
			if i == n && p.Text[n-1] == '\n' {
				yield(GlyphLayoutLine{CharIndexOffset: n})
				return
			}
		}
	}
}
