package text

import (
	"encoding/json"
	"fmt"
)

// bmChar is one entry of the msdf-bmfont "chars" array (pixel units).
type bmChar struct {
	ID       int32   `json:"id"`
	Width    float32 `json:"width"`
	Height   float32 `json:"height"`
	XOffset  float32 `json:"xoffset"`
	YOffset  float32 `json:"yoffset"`
	XAdvance float32 `json:"xadvance"`
	X        float32 `json:"x"`
	Y        float32 `json:"y"`
	Page     int     `json:"page"`
}

type bmKerning struct {
	First  int32   `json:"first"`
	Second int32   `json:"second"`
	Amount float32 `json:"amount"`
}

type bmFont struct {
	Pages []string `json:"pages"`
	Chars []bmChar `json:"chars"`
	Info  struct {
		Face string  `json:"face"`
		Size float32 `json:"size"`
	} `json:"info"`
	Common struct {
		LineHeight float32 `json:"lineHeight"`
		Base       float32 `json:"base"`
		ScaleW     int     `json:"scaleW"`
		ScaleH     int     `json:"scaleH"`
	} `json:"common"`
	DistanceField struct {
		FieldType     string  `json:"fieldType"`
		DistanceRange float32 `json:"distanceRange"`
	} `json:"distanceField"`
	Kernings []bmKerning `json:"kernings"`
}

// BMFontError reports an invalid msdf-bmfont descriptor.
type BMFontError struct {
	Field  string
	Reason string
}

func (e *BMFontError) Error() string {
	return "text: invalid bmfont descriptor." + e.Field + ": " + e.Reason
}

// ParseBMFont parses an msdf-bmfont JSON descriptor (as produced by
// msdf-bmfont-xml). Page paths are kept as written.
func ParseBMFont(data []byte) (*Font, error) {
	return parseBMFont(data, "")
}

// parseBMFont parses a descriptor and resolves page paths against dir.
func parseBMFont(data []byte, dir string) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	var bm bmFont
	if err := json.Unmarshal(data, &bm); err != nil {
		return nil, fmt.Errorf("text: failed to parse bmfont: %w", err)
	}
	if bm.Info.Size <= 0 {
		return nil, &BMFontError{Field: "info.size", Reason: "must be positive"}
	}
	if bm.Common.ScaleW <= 0 || bm.Common.ScaleH <= 0 {
		return nil, &BMFontError{Field: "common.scaleW/scaleH", Reason: "must be positive"}
	}

	size := bm.Info.Size
	sw := float32(bm.Common.ScaleW)
	sh := float32(bm.Common.ScaleH)

	glyphs := make([]GlyphInfo, 0, len(bm.Chars))
	for _, c := range bm.Chars {
		glyphs = append(glyphs, GlyphInfo{
			Char:     rune(c.ID),
			XAdvance: c.XAdvance / size,
			XOffset:  c.XOffset / size,
			YOffset:  c.YOffset / size,
			Width:    c.Width / size,
			Height:   c.Height / size,
			UVX:      c.X / sw,
			UVY:      c.Y / sh,
			UVWidth:  c.Width / sw,
			UVHeight: c.Height / sh,
			Page:     c.Page,
		})
	}

	kerning := make(map[[2]rune]float32, len(bm.Kernings))
	for _, k := range bm.Kernings {
		kerning[[2]rune{rune(k.First), rune(k.Second)}] = k.Amount / size
	}

	pages := make([]string, len(bm.Pages))
	for i, p := range bm.Pages {
		pages[i] = resolvePage(dir, p)
	}

	info := FontInfo{
		Name:          bm.Info.Face,
		LineHeight:    bm.Common.LineHeight / size,
		Base:          bm.Common.Base / size,
		DistanceRange: bm.DistanceField.DistanceRange,
		AtlasWidth:    bm.Common.ScaleW,
		AtlasHeight:   bm.Common.ScaleH,
		Pages:         pages,
	}
	return NewFont(info, glyphs, kerning), nil
}
