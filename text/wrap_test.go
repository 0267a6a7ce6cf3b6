package text

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/chewxy/math32"
)

// monoFont loads the fixture font: every character advances 0.5em and the
// pair "AV" kerns by -0.1em. At size 10 a character is 5px wide.
func monoFont(t testing.TB) *Font {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "mono.json"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	f, err := ParseBMFont(data)
	if err != nil {
		t.Fatalf("ParseBMFont: %v", err)
	}
	return f
}

func monoProps(t testing.TB, s string, mode WrapMode) *GlyphProperties {
	t.Helper()
	p := NewGlyphProperties(s, monoFont(t), 10)
	p.WordBreak = mode
	return p
}

func collect(p *GlyphProperties, width float32) []GlyphLayoutLine {
	var lines []GlyphLayoutLine
	for l := range Lines(p, width) {
		lines = append(lines, l)
	}
	return lines
}

func lineStrings(p *GlyphProperties, lines []GlyphLayoutLine) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = p.LineString(l)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestWrapModeString(t *testing.T) {
	tests := []struct {
		mode WrapMode
		want string
	}{
		{WrapWord, "Word"},
		{WrapNone, "None"},
		{WrapAll, "All"},
		{WrapMode(99), unknownStr},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.mode.String(); got != tt.want {
				t.Errorf("WrapMode(%d).String() = %q, want %q", tt.mode, got, tt.want)
			}
		})
	}
}

func TestParseWrapMode(t *testing.T) {
	tests := []struct {
		in     string
		want   WrapMode
		wantOK bool
	}{
		{"break-word", WrapWord, true},
		{"keep-all", WrapNone, true},
		{"nowrap", WrapNone, true},
		{"break-all", WrapAll, true},
		{"bogus", WrapWord, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseWrapMode(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseWrapMode(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestIsWhitespace(t *testing.T) {
	tests := []struct {
		r    rune
		want bool
	}{
		{' ', true},
		{'\t', true},
		{'\n', false},
		{'\u00a0', false},
		{'\u202f', false},
		{'a', false},
		{'\u3000', true},
	}

	for _, tt := range tests {
		if got := isWhitespace(tt.r); got != tt.want {
			t.Errorf("isWhitespace(%U) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestWrappers(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		mode  WrapMode
		width float32
		want  []string
	}{
		{"word fits", "hello world", WrapWord, 100, []string{"hello world"}},
		{"word breaks between words", "hello world", WrapWord, 30, []string{"hello ", "world"}},
		{"word keeps long word whole", "abcdef", WrapWord, 15, []string{"abcdef"}},
		{"word zero width one word per line", "ab cd ef", WrapWord, 0, []string{"ab ", "cd ", "ef"}},
		{"word skips leading whitespace", "   ab", WrapWord, 100, []string{"ab"}},
		{"word multiple spaces stay with line", "ab   cd", WrapWord, 20, []string{"ab   ", "cd"}},
		{"break all splits word", "abcdef", WrapAll, 15, []string{"abc", "def"}},
		{"break all keeps whitespace", "hello world", WrapAll, 30, []string{"hello ", "world"}},
		{"break all zero width", "abc", WrapAll, 0, []string{"a", "b", "c"}},
		{"none ignores width", "hello world", WrapNone, 5, []string{"hello world"}},
		{"newline", "a\nb", WrapNone, 100, []string{"a", "b"}},
		{"newline word", "a\nb", WrapWord, 100, []string{"a", "b"}},
		{"trailing newline", "a\n", WrapWord, 100, []string{"a", ""}},
		{"only newline", "\n", WrapWord, 100, []string{"", ""}},
		{"blank line", "a\n\nb", WrapWord, 100, []string{"a", "", "b"}},
		{"empty", "", WrapWord, 100, nil},
		{"whitespace only", "   ", WrapWord, 100, []string{""}},
		{"nbsp joins words", "ab\u00a0cd ef", WrapWord, 30, []string{"ab\u00a0cd ", "ef"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := monoProps(t, tt.text, tt.mode)
			got := lineStrings(p, collect(p, tt.width))
			if !equalStrings(got, tt.want) {
				t.Errorf("lines = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWordWrapLineRecord(t *testing.T) {
	p := monoProps(t, "hello world", WrapWord)

	line, next := WordWrap(p, 30, 0)
	want := GlyphLayoutLine{
		CharIndexOffset:         0,
		CharLength:              6,
		NonWhitespaceCharLength: 5,
		NonWhitespaceWidth:      25,
	}
	if line != want {
		t.Errorf("first line = %+v, want %+v", line, want)
	}
	if next != 6 {
		t.Errorf("next = %d, want 6", next)
	}

	line, next = WordWrap(p, 30, next)
	want = GlyphLayoutLine{
		CharIndexOffset:         6,
		CharLength:              5,
		NonWhitespaceCharLength: 5,
		NonWhitespaceWidth:      25,
	}
	if line != want {
		t.Errorf("second line = %+v, want %+v", line, want)
	}
	if next != len(p.Text) {
		t.Errorf("next = %d, want %d", next, len(p.Text))
	}
}

func TestWhitespacesBetween(t *testing.T) {
	p := monoProps(t, "a b  c ", WrapNone)
	line, _ := NoWrap(p, Unbounded, 0)
	if line.WhitespacesBetween != 3 {
		t.Errorf("WhitespacesBetween = %d, want 3", line.WhitespacesBetween)
	}
	if line.NonWhitespaceCharLength != 6 || line.CharLength != 7 {
		t.Errorf("lengths = %d/%d, want 6/7", line.NonWhitespaceCharLength, line.CharLength)
	}
	if line.NonWhitespaceWidth != 30 {
		t.Errorf("NonWhitespaceWidth = %v, want 30", line.NonWhitespaceWidth)
	}
}

func TestAdvance(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		spacing float32
		want    float32
	}{
		{"plain", "abc", 0, 15},
		{"kerning", "AV", 0, 9},
		{"kerning only within pair", "VA", 0, 10},
		{"letter spacing between characters", "abc", 2, 19},
		{"missing glyph is zero width", "a☃b", 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := monoProps(t, tt.text, WrapNone)
			p.LetterSpacing = tt.spacing
			line, _ := NoWrap(p, Unbounded, 0)
			if math32.Abs(line.NonWhitespaceWidth-tt.want) > 1e-4 {
				t.Errorf("width = %v, want %v", line.NonWhitespaceWidth, tt.want)
			}
		})
	}
}

func TestWrapRestart(t *testing.T) {
	p := monoProps(t, "hello world", WrapWord)
	first, _ := WordWrap(p, 30, 0)
	WordWrap(p, 30, 6)
	again, _ := WordWrap(p, 30, 0)
	if first != again {
		t.Errorf("restart = %+v, want %+v", again, first)
	}
}

func TestUnboundedMatchesNoWrap(t *testing.T) {
	texts := []string{"hello world", "a\nb c", "abcdef ghi\n\njk ", "  lead"}
	for _, mode := range []WrapMode{WrapWord, WrapAll} {
		for _, s := range texts {
			p := monoProps(t, s, mode)
			want := monoProps(t, s, WrapNone)
			for _, w := range []float32{Unbounded, math32.NaN()} {
				got := collect(p, w)
				exp := collect(want, 0)
				if len(got) != len(exp) {
					t.Fatalf("%v %q width %v: %d lines, want %d", mode, s, w, len(got), len(exp))
				}
				for i := range got {
					if got[i] != exp[i] {
						t.Errorf("%v %q width %v line %d = %+v, want %+v", mode, s, w, i, got[i], exp[i])
					}
				}
			}
		}
	}
}

func TestLinesStopsEarly(t *testing.T) {
	p := monoProps(t, "a\nb\nc", WrapNone)
	n := 0
	for range Lines(p, Unbounded) {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("iterated %d lines, want 2", n)
	}
}

// randomText builds strings from a small alphabet that mixes words,
// spaces, tabs and newlines.
func randomText(r *rand.Rand) string {
	const alphabet = "abcAV  \t\n"
	n := r.IntN(40)
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[r.IntN(len(alphabet))]
	}
	return string(b)
}

// checkSpans verifies that lines cover the text in order and that only
// whitespace and newlines fall between them.
func checkSpans(t *testing.T, p *GlyphProperties, lines []GlyphLayoutLine) {
	t.Helper()
	prev := 0
	for i, l := range lines {
		if l.CharLength < l.NonWhitespaceCharLength {
			t.Fatalf("%q line %d: CharLength %d < NonWhitespaceCharLength %d", string(p.Text), i, l.CharLength, l.NonWhitespaceCharLength)
		}
		if l.CharIndexOffset < prev {
			t.Fatalf("%q line %d: offset %d before previous end %d", string(p.Text), i, l.CharIndexOffset, prev)
		}
		for j := prev; j < l.CharIndexOffset; j++ {
			if r := p.Text[j]; r != '\n' && !isWhitespace(r) {
				t.Fatalf("%q: character %q at %d belongs to no line", string(p.Text), r, j)
			}
		}
		for j := l.CharIndexOffset; j < l.End(); j++ {
			if p.Text[j] == '\n' {
				t.Fatalf("%q line %d contains a newline", string(p.Text), i)
			}
		}
		prev = l.End()
	}
	for j := prev; j < len(p.Text); j++ {
		if r := p.Text[j]; r != '\n' && !isWhitespace(r) {
			t.Fatalf("%q: trailing character %q at %d belongs to no line", string(p.Text), r, j)
		}
	}
}

func TestWrapProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	font := monoFont(t)
	widths := []float32{-5, 0, 3, 10, 17, 25, 60, Unbounded, math32.NaN()}

	for range 300 {
		s := randomText(r)
		for _, mode := range []WrapMode{WrapWord, WrapAll, WrapNone} {
			for _, w := range widths {
				p := NewGlyphProperties(s, font, 10)
				p.WordBreak = mode
				lines := collect(p, w)
				checkSpans(t, p, lines)

				for i, l := range lines {
					end := l.End()
					brokeByWidth := end < len(p.Text) && p.Text[end] != '\n'
					if !brokeByWidth {
						continue
					}
					switch mode {
					case WrapWord:
						// A width break always falls on a word boundary.
						if !isWhitespace(p.Text[end-1]) {
							t.Fatalf("%q width %v: line %d splits a word at %d", s, w, i, end)
						}
					case WrapAll:
						if l.NonWhitespaceCharLength > 1 && exceeds(l.NonWhitespaceWidth, w) {
							t.Fatalf("%q width %v: line %d is %v wide", s, w, i, l.NonWhitespaceWidth)
						}
					case WrapNone:
						t.Fatalf("%q: NoWrap broke line %d without a newline", s, i)
					}
				}
			}
		}
	}
}

func TestWrapProgress(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	font := monoFont(t)

	for range 200 {
		s := randomText(r)
		p := NewGlyphProperties(s, font, 10)
		for _, wrap := range []WrapFunc{NoWrap, BreakAll, WordWrap} {
			for _, w := range []float32{0, 1, 12, Unbounded} {
				for i := 0; i < len(p.Text); {
					_, next := wrap(p, w, i)
					if next <= i {
						t.Fatalf("%q width %v: no progress from %d (next %d)", s, w, i, next)
					}
					i = next
				}
			}
		}
	}
}
