package instance

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestLayoutStrides(t *testing.T) {
	tests := []struct {
		name   string
		layout gputypes.VertexBufferLayout
		stride uint64
		attrs  int
	}{
		{"panel", PanelLayout(), PanelStride, 6},
		{"glyph", GlyphLayout(), GlyphStride, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := tt.layout
			if l.ArrayStride != tt.stride {
				t.Errorf("ArrayStride = %d, want %d", l.ArrayStride, tt.stride)
			}
			if l.StepMode != gputypes.VertexStepModeInstance {
				t.Errorf("StepMode = %v, want instance", l.StepMode)
			}
			if len(l.Attributes) != tt.attrs {
				t.Fatalf("got %d attributes, want %d", len(l.Attributes), tt.attrs)
			}
			var end uint64
			for i, a := range l.Attributes {
				if a.ShaderLocation != uint32(i) {
					t.Errorf("attribute %d at location %d", i, a.ShaderLocation)
				}
				if a.Offset != end {
					t.Errorf("attribute %d offset = %d, want %d", i, a.Offset, end)
				}
				end = a.Offset + a.Format.Size()
			}
			if end != tt.stride {
				t.Errorf("attributes end at %d, want %d", end, tt.stride)
			}
		})
	}
}

func f32At(b []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
}

func TestEncodePanels(t *testing.T) {
	if EncodePanels(nil) != nil {
		t.Error("EncodePanels(nil) should be nil")
	}

	panels := []PanelInstance{
		{Center: [3]float32{1, 2, 3}, Size: [2]float32{4, 5}, Color: White, Radius: 0.25},
		{Center: [3]float32{-1, 0, 0}, BorderColor: Black, BorderWidth: [4]float32{1, 2, 3, 4}, Radius: 7},
	}
	b := EncodePanels(panels)
	if len(b) != 2*PanelStride {
		t.Fatalf("len = %d, want %d", len(b), 2*PanelStride)
	}

	checks := []struct {
		off  int
		want float32
	}{
		{0, 1}, {8, 3}, {12, 4}, {16, 5},
		{20, 1}, {32, 1}, // color r, a
		{68, 0.25},
		{PanelStride, -1},
		{PanelStride + 48, 1}, // border color alpha
		{PanelStride + 52, 1}, {PanelStride + 64, 4}, // border widths
		{PanelStride + 68, 7},
	}
	for _, c := range checks {
		if got := f32At(b, c.off); got != c.want {
			t.Errorf("float at %d = %v, want %v", c.off, got, c.want)
		}
	}
}

func TestEncodeGlyphs(t *testing.T) {
	if EncodeGlyphs(nil) != nil {
		t.Error("EncodeGlyphs(nil) should be nil")
	}

	b := EncodeGlyphs([]GlyphInstance{{
		Origin: [3]float32{1, 2, 3},
		Size:   [2]float32{0.5, 0.75},
		UV:     [4]float32{0.1, 0.2, 0.3, 0.4},
		Color:  Color{0, 0, 1, 0.5},
		Page:   3,
	}})
	if len(b) != GlyphStride {
		t.Fatalf("len = %d, want %d", len(b), GlyphStride)
	}
	if got := f32At(b, 16); got != 0.75 {
		t.Errorf("size.y = %v, want 0.75", got)
	}
	if got := f32At(b, 32); got != 0.4 {
		t.Errorf("uv.h = %v, want 0.4", got)
	}
	if got := f32At(b, 44); got != 1 {
		t.Errorf("color.b = %v, want 1", got)
	}
	if got := binary.LittleEndian.Uint32(b[52:]); got != 3 {
		t.Errorf("page = %d, want 3", got)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#fff", White},
		{"#000000", Black},
		{"#FF0000", Color{1, 0, 0, 1}},
		{"  #00ff00 ", Color{0, 1, 0, 1}},
		{"#ff000000", Color{1, 0, 0, 0}},
		{"#0000ffff", Color{0, 0, 1, 1}},
		{"#f00f", Color{1, 0, 0, 1}},
		{"transparent", Transparent},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if err != nil {
				t.Fatalf("ParseColor(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}

	c, err := ParseColor("#ffffff80")
	if err != nil {
		t.Fatal(err)
	}
	if d := c.A - 128.0/255; d > 1e-6 || d < -1e-6 {
		t.Errorf("alpha = %v, want %v", c.A, 128.0/255)
	}

	for _, bad := range []string{"", "red", "#12345", "#gggggg", "#ffffzz", "fff"} {
		if _, err := ParseColor(bad); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("ParseColor(%q) error = %v, want ErrInvalidColor", bad, err)
		}
	}
}

func TestColorHelpers(t *testing.T) {
	if got := White.Linear(); got != White {
		t.Errorf("White.Linear() = %+v", got)
	}
	gray := Color{0.5, 0.5, 0.5, 0.5}.Linear()
	if gray.R < 0.2 || gray.R > 0.23 || gray.A != 0.5 {
		t.Errorf("gray.Linear() = %+v, want about 0.214 with alpha kept", gray)
	}
	if got := White.WithAlpha(0.5); got.A != 0.5 || got.R != 1 {
		t.Errorf("WithAlpha = %+v", got)
	}
	if got := colorOf(42, Black); got != Black {
		t.Errorf("colorOf(non-string) = %+v, want default", got)
	}
	if got := colorOf("nope", White); got != White {
		t.Errorf("colorOf(invalid) = %+v, want default", got)
	}
}

func TestShaders(t *testing.T) {
	for _, s := range []Shader{ShaderPanel, ShaderGlyph} {
		t.Run(s.String(), func(t *testing.T) {
			src := s.Source()
			if src == "" {
				t.Fatal("empty source")
			}
			words, err := s.SPIRV()
			if err != nil {
				t.Fatalf("SPIRV: %v", err)
			}
			if len(words) < 5 || words[0] != 0x07230203 {
				t.Fatalf("missing SPIR-V magic number")
			}
			again, err := s.SPIRV()
			if err != nil || &again[0] != &words[0] {
				t.Error("second call should reuse the compiled module")
			}
		})
	}

	if _, err := Shader(9).SPIRV(); err == nil {
		t.Error("unknown shader should fail")
	}
	if Shader(9).String() != "unknown" || Shader(9).Source() != "" {
		t.Error("unknown shader should have no name or source")
	}
}
