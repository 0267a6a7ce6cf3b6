package text

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/gogpu/uikit/cache"
)

// LineHeight is either an absolute height in pixels or a multiple of the
// font size.
type LineHeight struct {
	Value    float32
	Relative bool
}

// DefaultLineHeight is 120% of the font size.
var DefaultLineHeight = LineHeight{Value: 1.2, Relative: true}

// Pixels resolves the line height for a font size. A non-positive value
// falls back to DefaultLineHeight.
func (l LineHeight) Pixels(fontSize float32) float32 {
	if l.Value <= 0 {
		l = DefaultLineHeight
	}
	if l.Relative {
		return l.Value * fontSize
	}
	return l.Value
}

// ParseLineHeight accepts a number or "px" string (pixels) or a
// percentage string such as "150%".
func ParseLineHeight(v any) (LineHeight, bool) {
	switch x := v.(type) {
	case float32:
		return LineHeight{Value: x}, true
	case float64:
		return LineHeight{Value: float32(x)}, true
	case int:
		return LineHeight{Value: float32(x)}, true
	case int64:
		return LineHeight{Value: float32(x)}, true
	case string:
		s := strings.TrimSpace(x)
		if pct, ok := strings.CutSuffix(s, "%"); ok {
			f, err := strconv.ParseFloat(strings.TrimSpace(pct), 32)
			if err != nil {
				return LineHeight{}, false
			}
			return LineHeight{Value: float32(f) / 100, Relative: true}, true
		}
		s, _ = strings.CutSuffix(s, "px")
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
		if err != nil {
			return LineHeight{}, false
		}
		return LineHeight{Value: float32(f)}, true
	default:
		return LineHeight{}, false
	}
}

// GlyphLayout is the result of laying out a text block.
// It is recreated on every layout pass.
type GlyphLayout struct {
	// Props are the inputs the layout was computed from.
	Props *GlyphProperties

	// Lines are the wrapped lines in order.
	Lines []GlyphLayoutLine

	// AvailableWidth is the width the layout was wrapped at.
	AvailableWidth float32

	// Width is the widest line's NonWhitespaceWidth.
	Width float32

	// Height is len(Lines) * LineHeight.
	Height float32

	// LineHeight is the resolved line height in pixels.
	LineHeight float32
}

// Layout wraps the whole text at availableWidth using p.WordBreak.
// Pass Unbounded to measure the intrinsic size.
func Layout(p *GlyphProperties, availableWidth float32) *GlyphLayout {
	l := &GlyphLayout{
		Props:          p,
		AvailableWidth: availableWidth,
		LineHeight:     p.LineHeight.Pixels(p.FontSize),
	}
	for line := range Lines(p, availableWidth) {
		l.Lines = append(l.Lines, line)
		if line.NonWhitespaceWidth > l.Width {
			l.Width = line.NonWhitespaceWidth
		}
	}
	l.Height = float32(len(l.Lines)) * l.LineHeight
	return l
}

// Measure returns the size of the laid out text.
func Measure(p *GlyphProperties, availableWidth float32) (width, height float32) {
	l := Layout(p, availableWidth)
	return l.Width, l.Height
}

// measureKey identifies a layout by all of its inputs.
type measureKey struct {
	font          *Font
	text          string
	fontSize      float32
	letterSpacing float32
	lineHeight    LineHeight
	wrap          WrapMode
	width         float32
}

func hashMeasureKey(k measureKey) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(k.text))
	var buf [4 * 5]byte
	binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(k.fontSize))
	binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(k.letterSpacing))
	binary.LittleEndian.PutUint32(buf[8:], math.Float32bits(k.lineHeight.Value))
	binary.LittleEndian.PutUint32(buf[12:], math.Float32bits(k.width))
	binary.LittleEndian.PutUint32(buf[16:], uint32(k.wrap))
	_, _ = h.Write(buf[:])
	return h.Sum64()
}

// Measurer memoizes layouts. The flex solver asks for the same text at the
// same few widths many times per pass, so hits are the common case.
//
// Measurer is safe for concurrent use.
type Measurer struct {
	cache *cache.Sharded[measureKey, *GlyphLayout]
}

// MeasurerOption configures a Measurer.
type MeasurerOption func(*measurerConfig)

type measurerConfig struct {
	capacity int
}

// WithMeasureCapacity sets the number of layouts kept per cache shard.
func WithMeasureCapacity(n int) MeasurerOption {
	return func(c *measurerConfig) {
		c.capacity = n
	}
}

// NewMeasurer creates a Measurer.
func NewMeasurer(opts ...MeasurerOption) *Measurer {
	cfg := measurerConfig{capacity: cache.DefaultCapacity}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Measurer{cache: cache.NewSharded[measureKey, *GlyphLayout](cfg.capacity, hashMeasureKey)}
}

// Layout returns the cached layout for p at availableWidth, computing it on
// a miss. The returned layout must not be modified.
func (m *Measurer) Layout(p *GlyphProperties, availableWidth float32) *GlyphLayout {
	switch {
	case IsUnbounded(availableWidth):
		// NaN never equals itself; normalize so lookups hit.
		availableWidth = Unbounded
	case availableWidth < 0:
		availableWidth = 0
	}
	key := measureKey{
		font:          p.Font,
		text:          string(p.Text),
		fontSize:      p.FontSize,
		letterSpacing: p.LetterSpacing,
		lineHeight:    p.LineHeight,
		wrap:          p.WordBreak,
		width:         availableWidth,
	}
	return m.cache.GetOrCreate(key, func() *GlyphLayout {
		// The cached layout outlives the caller's properties.
		cp := *p
		cp.Text = slices.Clone(p.Text)
		return Layout(&cp, availableWidth)
	})
}

// Forget drops every cached layout computed with font.
func (m *Measurer) Forget(font *Font) int {
	return m.cache.DeleteFunc(func(k measureKey) bool { return k.font == font })
}

// Stats returns the cache counters.
func (m *Measurer) Stats() cache.Stats {
	return m.cache.Stats()
}
