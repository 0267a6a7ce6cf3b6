package text

import (
	"testing"

	"github.com/chewxy/math32"
)

func approx(a, b float32) bool {
	return math32.Abs(a-b) < 1e-4
}

func TestPlaceAlign(t *testing.T) {
	// Glyph quads of the fixture font sit 1px right of the pen.
	tests := []struct {
		name  string
		align TextAlign
		wantX float32
	}{
		{"left", AlignLeft, 1},
		{"center", AlignCenter, 46},
		{"right", AlignRight, 91},
		{"block single line", AlignBlock, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Layout(monoProps(t, "ab", WrapWord), 100)
			got := Place(l, 100, 12, tt.align, AlignTop)
			if len(got) != 2 {
				t.Fatalf("placements = %d, want 2", len(got))
			}
			if !approx(got[0].X, tt.wantX) {
				t.Errorf("X = %v, want %v", got[0].X, tt.wantX)
			}
			if !approx(got[1].X-got[0].X, 5) {
				t.Errorf("glyph spacing = %v, want 5", got[1].X-got[0].X)
			}
		})
	}
}

func TestPlaceVerticalAlign(t *testing.T) {
	// Line height 12 for size 10 centers the glyph row 1px down; the
	// fixture's y offset adds 2px.
	tests := []struct {
		name   string
		valign VerticalAlign
		wantY  float32
	}{
		{"top", AlignTop, 3},
		{"middle", AlignMiddle, 17},
		{"bottom", AlignBottom, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Layout(monoProps(t, "a", WrapWord), 100)
			got := Place(l, 100, 40, AlignLeft, tt.valign)
			if len(got) != 1 {
				t.Fatalf("placements = %d, want 1", len(got))
			}
			if !approx(got[0].Y, tt.wantY) {
				t.Errorf("Y = %v, want %v", got[0].Y, tt.wantY)
			}
			if !approx(got[0].Width, 8) || !approx(got[0].Height, 12) {
				t.Errorf("size = %v x %v, want 8 x 12", got[0].Width, got[0].Height)
			}
		})
	}
}

func TestPlaceSkipsWhitespaceAndMissing(t *testing.T) {
	l := Layout(monoProps(t, "a b☃c", WrapWord), Unbounded)
	got := Place(l, 100, 12, AlignLeft, AlignTop)

	want := []int{0, 2, 4}
	if len(got) != len(want) {
		t.Fatalf("placements = %d, want %d", len(got), len(want))
	}
	for i, g := range got {
		if g.CharIndex != want[i] {
			t.Errorf("placement %d CharIndex = %d, want %d", i, g.CharIndex, want[i])
		}
		if g.Glyph == nil || g.Glyph.Char != l.Props.Text[g.CharIndex] {
			t.Errorf("placement %d has wrong glyph", i)
		}
	}
}

func TestPlaceLines(t *testing.T) {
	l := Layout(monoProps(t, "hello world", WrapWord), 30)
	got := Place(l, 30, 24, AlignLeft, AlignTop)
	if len(got) != 10 {
		t.Fatalf("placements = %d, want 10", len(got))
	}
	w := got[5]
	if w.Line != 1 || w.CharIndex != 6 {
		t.Errorf("first glyph of line 2 = line %d char %d, want line 1 char 6", w.Line, w.CharIndex)
	}
	if !approx(w.X, 1) || !approx(w.Y, 15) {
		t.Errorf("position = (%v, %v), want (1, 15)", w.X, w.Y)
	}
}

func TestPlaceBlock(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		box   float32
		char  int
		wantX float32
	}{
		// "ab cd " is 25 wide in a 30 box; the one inner space takes 5 more.
		{"stretches wrapped line", "ab cd ef", 30, 3, 21},
		{"last line not stretched", "ab cd ef", 30, 6, 1},
		{"paragraph end not stretched", "ab cd\nef", 100, 3, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Layout(monoProps(t, tt.text, WrapWord), tt.box)
			for _, g := range Place(l, tt.box, 100, AlignBlock, AlignTop) {
				if g.CharIndex != tt.char {
					continue
				}
				if !approx(g.X, tt.wantX) {
					t.Errorf("X = %v, want %v", g.X, tt.wantX)
				}
				return
			}
			t.Errorf("no placement for char %d", tt.char)
		})
	}
}

func TestPlaceKerning(t *testing.T) {
	l := Layout(monoProps(t, "AV", WrapNone), Unbounded)
	got := Place(l, 100, 12, AlignLeft, AlignTop)
	if len(got) != 2 {
		t.Fatalf("placements = %d, want 2", len(got))
	}
	// V is pulled 1px left by kerning.
	if !approx(got[1].X, 5) {
		t.Errorf("V X = %v, want 5", got[1].X)
	}
}

func TestPlaceEmpty(t *testing.T) {
	l := Layout(monoProps(t, "", WrapWord), 100)
	if got := Place(l, 100, 100, AlignLeft, AlignTop); got != nil {
		t.Errorf("Place(empty) = %v, want nil", got)
	}
}

func TestParseTextAlign(t *testing.T) {
	tests := []struct {
		in   string
		want TextAlign
		ok   bool
	}{
		{"left", AlignLeft, true},
		{"center", AlignCenter, true},
		{"end", AlignRight, true},
		{"justify", AlignBlock, true},
		{"block", AlignBlock, true},
		{"middle", AlignLeft, false},
	}

	for _, tt := range tests {
		got, ok := ParseTextAlign(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseTextAlign(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}

	if v, ok := ParseVerticalAlign("center"); v != AlignMiddle || !ok {
		t.Errorf("ParseVerticalAlign(center) = %v, %v", v, ok)
	}
	if AlignBlock.String() != "Block" {
		t.Errorf("AlignBlock.String() = %q", AlignBlock.String())
	}
}
