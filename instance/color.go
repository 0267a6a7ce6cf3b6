package instance

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is returned when a color string cannot be parsed.
var ErrInvalidColor = errors.New("instance: invalid color")

// Color is a straight-alpha RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Common colors.
var (
	Transparent = Color{}
	White       = Color{1, 1, 1, 1}
	Black       = Color{0, 0, 0, 1}
)

// ParseColor parses "#rgb", "#rgba", "#rrggbb", "#rrggbbaa" and
// "transparent".
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "transparent" {
		return Transparent, nil
	}
	if !strings.HasPrefix(s, "#") {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	alpha := float32(1)
	switch len(s) {
	case 5, 9:
		n := (len(s) - 1) / 4
		a, err := strconv.ParseUint(s[len(s)-n:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		if n == 1 {
			alpha = float32(a) / 15
		} else {
			alpha = float32(a) / 255
		}
		s = s[:len(s)-n]
	}

	if len(s) != 4 && len(s) != 7 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return Color{R: float32(c.R), G: float32(c.G), B: float32(c.B), A: alpha}, nil
}

// Linear converts the color channels from sRGB to linear RGB.
func (c Color) Linear() Color {
	r, g, b := colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}.LinearRgb()
	return Color{R: float32(r), G: float32(g), B: float32(b), A: c.A}
}

// WithAlpha returns c with its alpha multiplied by a.
func (c Color) WithAlpha(a float32) Color {
	c.A *= a
	return c
}

// Array returns the channels in shader order.
func (c Color) Array() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

// colorOf returns the color stored under a property value, or def when v
// is missing or invalid.
func colorOf(v any, def Color) Color {
	s, ok := v.(string)
	if !ok {
		return def
	}
	c, err := ParseColor(s)
	if err != nil {
		slogger().Debug("instance: bad color", "value", s, "err", err)
		return def
	}
	return c
}
