package instance

import (
	"github.com/gogpu/uikit/layout"
	"github.com/gogpu/uikit/props"
	"github.com/gogpu/uikit/text"
)

// Default builder settings.
const (
	DefaultPixelSize = 0.01
	DefaultDepthStep = 0.0001
)

// Option configures a Builder.
type Option func(*Builder)

// WithPixelSize sets the world size of one layout pixel.
func WithPixelSize(px float32) Option {
	return func(b *Builder) {
		if px > 0 {
			b.pixelSize = px
		}
	}
}

// WithDepthStep sets the z distance between nesting levels, so children
// draw in front of their parents.
func WithDepthStep(step float32) Option {
	return func(b *Builder) {
		b.depthStep = step
	}
}

// WithOrigin places the layout's top-left corner at the given world
// position.
func WithOrigin(x, y, z float32) Option {
	return func(b *Builder) {
		b.origin = [3]float32{x, y, z}
	}
}

// WithLinearColor converts colors from sRGB to linear RGB before they are
// stored.
func WithLinearColor() Option {
	return func(b *Builder) {
		b.linear = true
	}
}

// PanelStyle describes a panel in layout pixels.
type PanelStyle struct {
	Color       Color
	BorderColor Color
	Border      layout.Edges
	Radius      float32
}

// visible reports whether the panel would draw anything.
func (s PanelStyle) visible() bool {
	if s.Color.A > 0 {
		return true
	}
	b := s.Border
	return s.BorderColor.A > 0 && (b.Left > 0 || b.Top > 0 || b.Right > 0 || b.Bottom > 0)
}

// Builder accumulates instances for one frame. Reset it between frames to
// reuse its buffers. A Builder is not safe for concurrent use.
type Builder struct {
	pixelSize float32
	depthStep float32
	origin    [3]float32
	linear    bool

	panels []PanelInstance
	glyphs []GlyphInstance
}

// NewBuilder creates a builder with the given options.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		pixelSize: DefaultPixelSize,
		depthStep: DefaultDepthStep,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Reset drops all instances and keeps the buffers.
func (b *Builder) Reset() {
	b.panels = b.panels[:0]
	b.glyphs = b.glyphs[:0]
}

// Panels returns the panels added since the last Reset.
func (b *Builder) Panels() []PanelInstance { return b.panels }

// Glyphs returns the glyphs added since the last Reset.
func (b *Builder) Glyphs() []GlyphInstance { return b.glyphs }

// world converts a layout point to world space.
func (b *Builder) world(x, y float32, depth int) [3]float32 {
	return [3]float32{
		b.origin[0] + x*b.pixelSize,
		b.origin[1] - y*b.pixelSize,
		b.origin[2] + float32(depth)*b.depthStep,
	}
}

func (b *Builder) color(c Color) Color {
	if b.linear {
		return c.Linear()
	}
	return c
}

// AddPanel adds a panel covering r.
func (b *Builder) AddPanel(r layout.Rect, s PanelStyle, depth int) {
	px := b.pixelSize
	b.panels = append(b.panels, PanelInstance{
		Center:      b.world(r.X+r.Width/2, r.Y+r.Height/2, depth),
		Size:        [2]float32{r.Width * px, r.Height * px},
		Color:       b.color(s.Color),
		BorderColor: b.color(s.BorderColor),
		BorderWidth: [4]float32{s.Border.Left * px, s.Border.Top * px, s.Border.Right * px, s.Border.Bottom * px},
		Radius:      s.Radius * px,
	})
}

// AddText places l inside box and adds one glyph per visible character.
// Fonts without an atlas produce no glyphs.
func (b *Builder) AddText(box layout.Rect, l *text.GlyphLayout, align text.TextAlign, valign text.VerticalAlign, c Color, depth int) int {
	if l == nil || l.Props == nil || !l.Props.Font.HasAtlas() {
		return 0
	}
	placements := text.Place(l, box.Width, box.Height, align, valign)
	c = b.color(c)
	px := b.pixelSize
	for _, p := range placements {
		g := p.Glyph
		b.glyphs = append(b.glyphs, GlyphInstance{
			Origin: b.world(box.X+p.X, box.Y+p.Y, depth),
			Size:   [2]float32{p.Width * px, p.Height * px},
			UV:     [4]float32{g.UVX, g.UVY, g.UVWidth, g.UVHeight},
			Color:  c,
			Page:   uint32(g.Page),
		})
	}
	return len(placements)
}

// AddNode adds the panel and text of one element from its computed
// geometry and resolved properties. It reports whether the node's
// children should be visited.
func (b *Builder) AddNode(n *layout.Node, p props.Properties, depth int) bool {
	if !n.Alive() || p.StringOr(props.Display, "") == "none" {
		return false
	}
	if p.StringOr(props.Visibility, "") == "hidden" {
		return true
	}
	depth += int(p.FloatOr(props.ZIndexOffset, 0))
	opacity := p.FloatOr(props.Opacity, 1)
	r := n.Absolute()

	style := PanelStyle{
		Color:       colorOf(p[props.BackgroundColor], Transparent).WithAlpha(p.FloatOr(props.BackgroundOpacity, 1) * opacity),
		BorderColor: colorOf(p[props.BorderColor], Transparent).WithAlpha(opacity),
		Border:      n.Border(),
		Radius:      p.FloatOr(props.BorderRadius, 0),
	}
	if style.visible() {
		b.AddPanel(r, style, depth)
	}

	if l := n.TextLayout(); l != nil {
		content := n.Content()
		box := layout.Rect{X: r.X + content.X, Y: r.Y + content.Y, Width: content.Width, Height: content.Height}
		align, _ := text.ParseTextAlign(p.StringOr(props.TextAlign, "left"))
		valign, _ := text.ParseVerticalAlign(p.StringOr(props.VerticalAlign, "top"))
		c := colorOf(p[props.Color], Black).WithAlpha(opacity)
		// Glyphs sit just in front of their own panel.
		b.AddText(box, l, align, valign, c, depth+1)
	}
	return true
}

// AddTree walks the tree rooted at root, looking up each node's resolved
// properties with resolve. Children draw one depth level in front of
// their parent.
func (b *Builder) AddTree(root *layout.Node, resolve func(*layout.Node) props.Properties) {
	var visit func(n *layout.Node, depth int)
	visit = func(n *layout.Node, depth int) {
		if !b.AddNode(n, resolve(n), depth) {
			return
		}
		for _, c := range n.Children() {
			visit(c, depth+2)
		}
	}
	visit(root, 0)
}
