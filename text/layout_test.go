package text

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestLayout(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		mode       WrapMode
		width      float32
		lineHeight LineHeight
		wantLines  int
		wantWidth  float32
		wantHeight float32
	}{
		{"single line", "hello", WrapWord, 100, DefaultLineHeight, 1, 25, 12},
		{"newline", "a\nb", WrapWord, 100, DefaultLineHeight, 2, 5, 24},
		{"wrapped", "hello world", WrapWord, 30, DefaultLineHeight, 2, 25, 24},
		{"trailing whitespace excluded", "hello   ", WrapNone, 100, DefaultLineHeight, 1, 25, 12},
		{"absolute line height", "a\nb", WrapWord, 100, LineHeight{Value: 20}, 2, 5, 40},
		{"relative line height", "a", WrapWord, 100, LineHeight{Value: 2, Relative: true}, 1, 5, 20},
		{"empty", "", WrapWord, 100, DefaultLineHeight, 0, 0, 0},
		{"trailing newline", "ab\n", WrapWord, 100, DefaultLineHeight, 2, 10, 24},
		{"unbounded", "hello world", WrapWord, Unbounded, DefaultLineHeight, 1, 55, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := monoProps(t, tt.text, tt.mode)
			p.LineHeight = tt.lineHeight
			l := Layout(p, tt.width)
			if len(l.Lines) != tt.wantLines {
				t.Errorf("lines = %d, want %d", len(l.Lines), tt.wantLines)
			}
			if math32.Abs(l.Width-tt.wantWidth) > 1e-4 {
				t.Errorf("Width = %v, want %v", l.Width, tt.wantWidth)
			}
			if math32.Abs(l.Height-tt.wantHeight) > 1e-4 {
				t.Errorf("Height = %v, want %v", l.Height, tt.wantHeight)
			}
		})
	}
}

func TestMeasure(t *testing.T) {
	p := monoProps(t, "hello world", WrapWord)
	w, h := Measure(p, 30)
	if w != 25 || math32.Abs(h-24) > 1e-4 {
		t.Errorf("Measure = %v x %v, want 25 x 24", w, h)
	}
}

// TestLayoutMeasuredWidthFits feeds the intrinsic width back as the
// available width, as a flex solver does, and expects no extra wrapping.
func TestLayoutMeasuredWidthFits(t *testing.T) {
	for _, s := range []string{"hello world", "AV AV AV", "a b\ncd"} {
		for _, mode := range []WrapMode{WrapWord, WrapAll} {
			p := monoProps(t, s, mode)
			p.LetterSpacing = 0.3
			intrinsic := Layout(p, Unbounded)
			again := Layout(p, intrinsic.Width)
			if len(again.Lines) != len(intrinsic.Lines) {
				t.Errorf("%v %q: %d lines at intrinsic width, want %d", mode, s, len(again.Lines), len(intrinsic.Lines))
			}
		}
	}
}

func TestLineHeightPixels(t *testing.T) {
	tests := []struct {
		name string
		lh   LineHeight
		size float32
		want float32
	}{
		{"default", DefaultLineHeight, 10, 12},
		{"absolute", LineHeight{Value: 18}, 10, 18},
		{"relative", LineHeight{Value: 1.5, Relative: true}, 20, 30},
		{"zero falls back", LineHeight{}, 10, 12},
		{"negative falls back", LineHeight{Value: -3}, 10, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.lh.Pixels(tt.size); math32.Abs(got-tt.want) > 1e-4 {
				t.Errorf("Pixels(%v) = %v, want %v", tt.size, got, tt.want)
			}
		})
	}
}

func TestParseLineHeight(t *testing.T) {
	tests := []struct {
		in     any
		want   LineHeight
		wantOK bool
	}{
		{24, LineHeight{Value: 24}, true},
		{float64(12.5), LineHeight{Value: 12.5}, true},
		{"150%", LineHeight{Value: 1.5, Relative: true}, true},
		{" 80 % ", LineHeight{Value: 0.8, Relative: true}, true},
		{"16", LineHeight{Value: 16}, true},
		{"18px", LineHeight{Value: 18}, true},
		{"tall", LineHeight{}, false},
		{"x%", LineHeight{}, false},
		{true, LineHeight{}, false},
	}

	for _, tt := range tests {
		got, ok := ParseLineHeight(tt.in)
		if ok != tt.wantOK || got.Relative != tt.want.Relative || math32.Abs(got.Value-tt.want.Value) > 1e-5 {
			t.Errorf("ParseLineHeight(%v) = %+v, %v; want %+v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestMeasurerCaches(t *testing.T) {
	m := NewMeasurer()
	p := monoProps(t, "hello world", WrapWord)

	first := m.Layout(p, 30)
	second := m.Layout(p, 30)
	if first != second {
		t.Error("second Layout did not return the cached layout")
	}
	st := m.Stats()
	if st.Hits != 1 || st.Misses != 1 {
		t.Errorf("Stats = %+v, want 1 hit and 1 miss", st)
	}

	p.FontSize = 20
	if m.Layout(p, 30) == first {
		t.Error("different font size hit the cache")
	}
}

func TestMeasurerNormalizesWidth(t *testing.T) {
	m := NewMeasurer()
	p := monoProps(t, "hello world", WrapWord)

	nan := m.Layout(p, math32.NaN())
	inf := m.Layout(p, Unbounded)
	if nan != inf {
		t.Error("NaN and Unbounded widths produced different cache entries")
	}
	if len(nan.Lines) != 1 {
		t.Errorf("unbounded lines = %d, want 1", len(nan.Lines))
	}

	neg := m.Layout(p, -10)
	zero := m.Layout(p, 0)
	if neg != zero {
		t.Error("negative width not clamped to zero")
	}
	if len(zero.Lines) != 2 {
		t.Errorf("zero width lines = %d, want 2", len(zero.Lines))
	}
}

func TestMeasurerOwnsProperties(t *testing.T) {
	m := NewMeasurer()
	p := monoProps(t, "ab cd", WrapWord)
	l := m.Layout(p, Unbounded)

	p.Text[0] = 'x'
	if got := l.Props.LineString(l.Lines[0]); got != "ab cd" {
		t.Errorf("cached text = %q, want %q", got, "ab cd")
	}
}

func TestMeasurerForget(t *testing.T) {
	m := NewMeasurer(WithMeasureCapacity(8))
	a := monoProps(t, "hello", WrapWord)
	b := monoProps(t, "hello", WrapWord)

	m.Layout(a, 10)
	m.Layout(a, 20)
	m.Layout(b, 10)

	if n := m.Forget(a.Font); n != 2 {
		t.Errorf("Forget = %d, want 2", n)
	}
	if n := m.Stats().Len; n != 1 {
		t.Errorf("Len after Forget = %d, want 1", n)
	}
}

func BenchmarkLayoutWordWrap(b *testing.B) {
	p := monoProps(b, "The quick brown fox jumps over the lazy dog. Pack my box with five dozen liquor jugs.", WrapWord)
	b.ReportAllocs()
	for b.Loop() {
		Layout(p, 120)
	}
}

func BenchmarkMeasurerHit(b *testing.B) {
	m := NewMeasurer()
	p := monoProps(b, "The quick brown fox jumps over the lazy dog.", WrapWord)
	m.Layout(p, 120)
	b.ReportAllocs()
	for b.Loop() {
		m.Layout(p, 120)
	}
}
