package text

// TextAlign specifies horizontal alignment of lines within the box.
type TextAlign uint8

const (
	// AlignLeft aligns lines to the left edge (default).
	AlignLeft TextAlign = iota
	// AlignCenter centers lines.
	AlignCenter
	// AlignRight aligns lines to the right edge.
	AlignRight
	// AlignBlock stretches the whitespace of every line except the last
	// line of a paragraph so it fills the box width (justify).
	AlignBlock
)

// String returns the string representation of the alignment.
func (a TextAlign) String() string {
	switch a {
	case AlignLeft:
		return "Left"
	case AlignCenter:
		return "Center"
	case AlignRight:
		return "Right"
	case AlignBlock:
		return "Block"
	default:
		return unknownStr
	}
}

// ParseTextAlign maps "left", "center", "right", "block"/"justify".
func ParseTextAlign(s string) (TextAlign, bool) {
	switch s {
	case "left", "start":
		return AlignLeft, true
	case "center":
		return AlignCenter, true
	case "right", "end":
		return AlignRight, true
	case "block", "justify":
		return AlignBlock, true
	default:
		return AlignLeft, false
	}
}

// VerticalAlign specifies vertical placement of the text block in the box.
type VerticalAlign uint8

const (
	// AlignTop places the first line at the top (default).
	AlignTop VerticalAlign = iota
	// AlignMiddle centers the block.
	AlignMiddle
	// AlignBottom places the last line at the bottom.
	AlignBottom
)

// ParseVerticalAlign maps "top", "middle"/"center", "bottom".
func ParseVerticalAlign(s string) (VerticalAlign, bool) {
	switch s {
	case "top":
		return AlignTop, true
	case "middle", "center":
		return AlignMiddle, true
	case "bottom":
		return AlignBottom, true
	default:
		return AlignTop, false
	}
}

// GlyphPlacement is one visible character positioned in the text box.
// Coordinates are pixels with the origin at the box's top-left, y down.
type GlyphPlacement struct {
	CharIndex int
	Line      int
	X, Y      float32
	Width     float32
	Height    float32
	Glyph     *GlyphInfo
}

// Place positions every non-whitespace character of l inside a box of the
// given size. Characters without a glyph are skipped.
func Place(l *GlyphLayout, boxWidth, boxHeight float32, align TextAlign, valign VerticalAlign) []GlyphPlacement {
	p := l.Props
	if p == nil || len(l.Lines) == 0 {
		return nil
	}

	var top float32
	switch valign {
	case AlignMiddle:
		top = (boxHeight - l.Height) / 2
	case AlignBottom:
		top = boxHeight - l.Height
	}

	out := make([]GlyphPlacement, 0, len(p.Text))
	for li, line := range l.Lines {
		var x, spaceExtra float32
		free := boxWidth - line.NonWhitespaceWidth
		switch align {
		case AlignCenter:
			x = free / 2
		case AlignRight:
			x = free
		case AlignBlock:
			if line.WhitespacesBetween > 0 && free > 0 && !endsParagraph(l, li) {
				spaceExtra = free / float32(line.WhitespacesBetween)
			}
		}

		lineTop := top + float32(li)*l.LineHeight
		glyphTop := lineTop + (l.LineHeight-p.FontSize)/2

		start := line.CharIndexOffset
		end := start + line.NonWhitespaceCharLength
		for i := start; i < end; i++ {
			w := p.advance(i, start)
			r := p.Text[i]
			if isWhitespace(r) {
				x += w + spaceExtra
				continue
			}
			g := p.Font.Glyph(r)
			// Kerning and letter spacing move the pen before the glyph.
			pen := x + w - g.XAdvance*p.FontSize
			if g != missingGlyph {
				out = append(out, GlyphPlacement{
					CharIndex: i,
					Line:      li,
					X:         pen + g.XOffset*p.FontSize,
					Y:         glyphTop + g.YOffset*p.FontSize,
					Width:     g.Width * p.FontSize,
					Height:    g.Height * p.FontSize,
					Glyph:     g,
				})
			}
			x += w
		}
	}
	return out
}

// endsParagraph reports whether line li is the last line or ends at a newline.
func endsParagraph(l *GlyphLayout, li int) bool {
	if li == len(l.Lines)-1 {
		return true
	}
	end := l.Lines[li].End()
	text := l.Props.Text
	return end < len(text) && text[end] == '\n'
}
