package props

import (
	"maps"
	"strconv"
	"strings"
)

// Properties is a partial property map: style keys to values. Values are
// whatever the component layer provides (numbers, strings, bools), so the
// typed accessors accept several representations.
type Properties map[string]any

// Clone returns a shallow copy of p. A nil map clones to nil.
func (p Properties) Clone() Properties {
	if p == nil {
		return nil
	}
	return maps.Clone(p)
}

// Has reports whether key is set.
func (p Properties) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Float returns key as a float32. Numeric strings are parsed; "px"
// suffixes are accepted.
func (p Properties) Float(key string) (float32, bool) {
	v, ok := p[key]
	if !ok {
		return 0, false
	}
	return ToFloat(v)
}

// FloatOr returns key as a float32, or def when it is missing or not a number.
func (p Properties) FloatOr(key string, def float32) float32 {
	if f, ok := p.Float(key); ok {
		return f
	}
	return def
}

// String returns key as a string. Numbers are not converted.
func (p Properties) String(key string) (string, bool) {
	s, ok := p[key].(string)
	return s, ok
}

// StringOr returns key as a string, or def.
func (p Properties) StringOr(key, def string) string {
	if s, ok := p.String(key); ok {
		return s
	}
	return def
}

// Bool returns key as a bool. The strings "true" and "false" are accepted.
func (p Properties) Bool(key string) (bool, bool) {
	switch v := p[key].(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(v)
		return b, err == nil
	default:
		return false, false
	}
}

// ToFloat converts a property value to float32.
func ToFloat(v any) (float32, bool) {
	switch x := v.(type) {
	case float32:
		return x, true
	case float64:
		return float32(x), true
	case int:
		return float32(x), true
	case int8:
		return float32(x), true
	case int16:
		return float32(x), true
	case int32:
		return float32(x), true
	case int64:
		return float32(x), true
	case uint:
		return float32(x), true
	case uint8:
		return float32(x), true
	case uint16:
		return float32(x), true
	case uint32:
		return float32(x), true
	case uint64:
		return float32(x), true
	case string:
		s := strings.TrimSuffix(strings.TrimSpace(x), "px")
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return 0, false
		}
		return float32(f), true
	default:
		return 0, false
	}
}
