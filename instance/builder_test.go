package instance

import (
	"testing"

	"github.com/gogpu/uikit/layout"
	"github.com/gogpu/uikit/props"
	"github.com/gogpu/uikit/text"
)

// atlasFont has 'a' and 'b', half an em wide, one em tall.
func atlasFont(pages ...string) *text.Font {
	glyphs := []text.GlyphInfo{
		{Char: 'a', XAdvance: 0.5, Width: 0.5, Height: 1, UVX: 0.1, UVY: 0.2, UVWidth: 0.05, UVHeight: 0.1},
		{Char: 'b', XAdvance: 0.5, Width: 0.5, Height: 1, UVX: 0.3, UVY: 0.2, UVWidth: 0.05, UVHeight: 0.1, Page: 1},
		{Char: ' ', XAdvance: 0.5},
	}
	return text.NewFont(text.FontInfo{Name: "atlas", LineHeight: 1.2, Base: 1, Pages: pages}, glyphs, nil)
}

func atlasProps(s string, f *text.Font) *text.GlyphProperties {
	p := text.NewGlyphProperties(s, f, 10)
	p.LineHeight = text.LineHeight{Value: 12}
	return p
}

func TestBuilderAddPanel(t *testing.T) {
	b := NewBuilder(WithPixelSize(0.5), WithOrigin(1, 2, 3), WithDepthStep(0.25))
	b.AddPanel(layout.Rect{X: 10, Y: 20, Width: 4, Height: 6}, PanelStyle{
		Color:  White,
		Border: layout.Edges{Left: 2, Top: 4},
		Radius: 8,
	}, 2)

	panels := b.Panels()
	if len(panels) != 1 {
		t.Fatalf("got %d panels, want 1", len(panels))
	}
	p := panels[0]
	if want := [3]float32{7, -9.5, 3.5}; p.Center != want {
		t.Errorf("Center = %v, want %v", p.Center, want)
	}
	if want := [2]float32{2, 3}; p.Size != want {
		t.Errorf("Size = %v, want %v", p.Size, want)
	}
	if want := [4]float32{1, 2, 0, 0}; p.BorderWidth != want {
		t.Errorf("BorderWidth = %v, want %v", p.BorderWidth, want)
	}
	if p.Radius != 4 {
		t.Errorf("Radius = %v, want 4", p.Radius)
	}

	b.Reset()
	if len(b.Panels()) != 0 || len(b.Glyphs()) != 0 {
		t.Error("Reset should drop instances")
	}
}

func TestBuilderAddText(t *testing.T) {
	b := NewBuilder(WithPixelSize(1), WithDepthStep(1))
	f := atlasFont("atlas.png", "atlas1.png")
	l := text.Layout(atlasProps("a b", f), text.Unbounded)

	box := layout.Rect{X: 100, Y: 50, Width: 100, Height: 12}
	if n := b.AddText(box, l, text.AlignLeft, text.AlignTop, Black, 4); n != 2 {
		t.Fatalf("AddText placed %d glyphs, want 2", n)
	}

	glyphs := b.Glyphs()
	// The 10px glyph is centered in the 12px line.
	if want := [3]float32{100, -51, 4}; glyphs[0].Origin != want {
		t.Errorf("a origin = %v, want %v", glyphs[0].Origin, want)
	}
	if want := [3]float32{110, -51, 4}; glyphs[1].Origin != want {
		t.Errorf("b origin = %v, want %v", glyphs[1].Origin, want)
	}
	if want := [2]float32{5, 10}; glyphs[1].Size != want {
		t.Errorf("b size = %v, want %v", glyphs[1].Size, want)
	}
	if want := [4]float32{0.3, 0.2, 0.05, 0.1}; glyphs[1].UV != want {
		t.Errorf("b uv = %v, want %v", glyphs[1].UV, want)
	}
	if glyphs[1].Page != 1 || glyphs[0].Page != 0 {
		t.Errorf("pages = %d, %d, want 0, 1", glyphs[0].Page, glyphs[1].Page)
	}

	noAtlas := text.Layout(atlasProps("ab", atlasFont()), text.Unbounded)
	if n := b.AddText(box, noAtlas, text.AlignLeft, text.AlignTop, Black, 0); n != 0 {
		t.Errorf("font without atlas placed %d glyphs", n)
	}
	if n := b.AddText(box, nil, text.AlignLeft, text.AlignTop, Black, 0); n != 0 {
		t.Errorf("nil layout placed %d glyphs", n)
	}
}

func TestBuilderAddTree(t *testing.T) {
	root := layout.New()
	label := layout.New()
	hidden := layout.New()
	gone := layout.New()
	for _, c := range []*layout.Node{label, hidden, gone} {
		if err := root.AppendChild(c); err != nil {
			t.Fatal(err)
		}
	}

	resolved := map[*layout.Node]props.Properties{
		root: {
			props.Width:           100,
			props.Height:          50,
			props.BackgroundColor: "#ff0000",
			props.Opacity:         0.5,
		},
		label:  {props.Color: "#00ff00"},
		hidden: {props.Width: 10, props.BackgroundColor: "#fff", props.Visibility: "hidden"},
		gone:   {props.Display: "none", props.BackgroundColor: "#fff"},
	}
	for n, p := range resolved {
		n.Apply(p)
	}
	if err := label.SetText(text.NewMeasurer(), atlasProps("ab", atlasFont("atlas.png"))); err != nil {
		t.Fatal(err)
	}
	root.Calculate(100, 50)

	b := NewBuilder(WithPixelSize(1), WithDepthStep(1))
	b.AddTree(root, func(n *layout.Node) props.Properties { return resolved[n] })

	panels := b.Panels()
	if len(panels) != 1 {
		t.Fatalf("got %d panels, want only the root background", len(panels))
	}
	if want := (Color{1, 0, 0, 0.5}); panels[0].Color != want {
		t.Errorf("root color = %+v, want %+v", panels[0].Color, want)
	}
	if want := [3]float32{50, -25, 0}; panels[0].Center != want {
		t.Errorf("root center = %v, want %v", panels[0].Center, want)
	}

	glyphs := b.Glyphs()
	if len(glyphs) != 2 {
		t.Fatalf("got %d glyphs, want 2", len(glyphs))
	}
	// Children are two levels deep, glyphs one more in front.
	if glyphs[0].Origin[2] != 3 {
		t.Errorf("glyph depth = %v, want 3", glyphs[0].Origin[2])
	}
	if want := (Color{0, 1, 0, 1}); glyphs[0].Color != want {
		t.Errorf("glyph color = %+v, want %+v", glyphs[0].Color, want)
	}
}

func TestBuilderLinearColor(t *testing.T) {
	b := NewBuilder(WithLinearColor())
	b.AddPanel(layout.Rect{Width: 1, Height: 1}, PanelStyle{Color: Color{0.5, 0.5, 0.5, 1}}, 0)
	if c := b.Panels()[0].Color; c.R > 0.25 {
		t.Errorf("color not linearized: %+v", c)
	}
}

func TestPanelStyleVisible(t *testing.T) {
	tests := []struct {
		name  string
		style PanelStyle
		want  bool
	}{
		{"empty", PanelStyle{}, false},
		{"background", PanelStyle{Color: White}, true},
		{"border without width", PanelStyle{BorderColor: White}, false},
		{"border", PanelStyle{BorderColor: White, Border: layout.Edges{Bottom: 1}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.style.visible(); got != tt.want {
				t.Errorf("visible() = %v, want %v", got, tt.want)
			}
		})
	}
}
