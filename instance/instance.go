package instance

import (
	"encoding/binary"

	"github.com/chewxy/math32"
	"github.com/gogpu/gputypes"
)

// PanelInstance is one rectangular panel (background and border).
// Matches PanelInput in panel.wgsl:
//
//	location 0: center       (vec3<f32>)
//	location 1: size         (vec2<f32>)
//	location 2: color        (vec4<f32>)
//	location 3: border_color (vec4<f32>)
//	location 4: border_width (vec4<f32>) left, top, right, bottom
//	location 5: radius       (f32)
type PanelInstance struct {
	Center      [3]float32
	Size        [2]float32
	Color       Color
	BorderColor Color
	BorderWidth [4]float32
	Radius      float32
}

// GlyphInstance is one textured glyph quad.
// Matches GlyphInput in glyph.wgsl:
//
//	location 0: origin (vec3<f32>) top-left corner
//	location 1: size   (vec2<f32>)
//	location 2: uv     (vec4<f32>) x, y, width, height
//	location 3: color  (vec4<f32>)
//	location 4: page   (u32)
type GlyphInstance struct {
	Origin [3]float32
	Size   [2]float32
	UV     [4]float32
	Color  Color
	Page   uint32
}

var (
	panelFormats = []gputypes.VertexFormat{
		gputypes.VertexFormatFloat32x3,
		gputypes.VertexFormatFloat32x2,
		gputypes.VertexFormatFloat32x4,
		gputypes.VertexFormatFloat32x4,
		gputypes.VertexFormatFloat32x4,
		gputypes.VertexFormatFloat32,
	}
	glyphFormats = []gputypes.VertexFormat{
		gputypes.VertexFormatFloat32x3,
		gputypes.VertexFormatFloat32x2,
		gputypes.VertexFormatFloat32x4,
		gputypes.VertexFormatFloat32x4,
		gputypes.VertexFormatUint32,
	}
)

// Byte strides of the encoded records.
const (
	PanelStride = 72
	GlyphStride = 56
)

// instanceLayout packs formats back to back at consecutive shader locations.
func instanceLayout(formats []gputypes.VertexFormat) gputypes.VertexBufferLayout {
	attrs := make([]gputypes.VertexAttribute, len(formats))
	var off uint64
	for i, f := range formats {
		attrs[i] = gputypes.VertexAttribute{Format: f, Offset: off, ShaderLocation: uint32(i)}
		off += f.Size()
	}
	return gputypes.VertexBufferLayout{
		ArrayStride: off,
		StepMode:    gputypes.VertexStepModeInstance,
		Attributes:  attrs,
	}
}

// PanelLayout returns the vertex buffer layout of encoded panels.
func PanelLayout() gputypes.VertexBufferLayout { return instanceLayout(panelFormats) }

// GlyphLayout returns the vertex buffer layout of encoded glyphs.
func GlyphLayout() gputypes.VertexBufferLayout { return instanceLayout(glyphFormats) }

// writer appends little-endian values to a fixed buffer.
type writer struct {
	buf []byte
	off int
}

func (w *writer) f32(vs ...float32) {
	for _, v := range vs {
		binary.LittleEndian.PutUint32(w.buf[w.off:], math32.Float32bits(v))
		w.off += 4
	}
}

func (w *writer) u32(v uint32) {
	binary.LittleEndian.PutUint32(w.buf[w.off:], v)
	w.off += 4
}

func (w *writer) color(c Color) { w.f32(c.R, c.G, c.B, c.A) }

// EncodePanels serializes panels for GPU upload, PanelStride bytes each.
func EncodePanels(panels []PanelInstance) []byte {
	if len(panels) == 0 {
		return nil
	}
	w := writer{buf: make([]byte, len(panels)*PanelStride)}
	for _, p := range panels {
		w.f32(p.Center[:]...)
		w.f32(p.Size[:]...)
		w.color(p.Color)
		w.color(p.BorderColor)
		w.f32(p.BorderWidth[:]...)
		w.f32(p.Radius)
	}
	return w.buf
}

// EncodeGlyphs serializes glyphs for GPU upload, GlyphStride bytes each.
func EncodeGlyphs(glyphs []GlyphInstance) []byte {
	if len(glyphs) == 0 {
		return nil
	}
	w := writer{buf: make([]byte, len(glyphs)*GlyphStride)}
	for _, g := range glyphs {
		w.f32(g.Origin[:]...)
		w.f32(g.Size[:]...)
		w.f32(g.UV[:]...)
		w.color(g.Color)
		w.u32(g.Page)
	}
	return w.buf
}
