// Package instance converts computed layout into per-instance GPU records.
//
// A Builder walks layout rectangles and text glyph placements and produces
// PanelInstance and GlyphInstance records in world units (y up, one layout
// pixel = PixelSize world units). The records are encoded little-endian
// with the strides described by PanelLayout and GlyphLayout, ready to be
// uploaded to an instance-stepped vertex buffer and drawn as a four-vertex
// triangle strip per instance with the bundled WGSL shaders.
//
//	b := instance.NewBuilder(instance.WithPixelSize(0.01))
//	b.AddNode(node, resolved, 0)
//	panels := instance.EncodePanels(b.Panels())
//	glyphs := instance.EncodeGlyphs(b.Glyphs())
//
// Submitting draws is left to the renderer.
package instance
