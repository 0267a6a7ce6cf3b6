// Package text provides font metrics, line wrapping and glyph layout for
// UI text drawn as instanced quads.
//
// The pipeline is split into small pieces:
//
//   - Font: a shared glyph table (advance, offsets, atlas UVs) and kerning
//     pairs, loaded from an msdf-bmfont JSON descriptor or a TTF/OTF file
//   - WrapFunc: NoWrap, BreakAll and WordWrap each produce the next
//     GlyphLayoutLine from a starting character index
//   - Layout: drives a wrapper over the whole text and measures the block
//   - Place: turns a layout into per-character glyph placements
//   - FontCache: reference counted, process-wide font cache with TTL eviction
//
// # Example usage
//
//	font, err := text.ParseBMFont(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	p := text.NewGlyphProperties("hello world", font, 16)
//	p.WordBreak = text.WrapWord
//
//	l := text.Layout(p, 120)
//	for _, line := range l.Lines {
//	    fmt.Println(p.LineString(line), line.NonWhitespaceWidth)
//	}
//
// Widths are in layout pixels. Unbounded (or NaN) as the available width
// requests an intrinsic measurement where only explicit newlines break lines.
package text
