package text

import (
	"sort"
	"strconv"
	"strings"
)

// FontWeight is a CSS-style numeric weight (100-900).
type FontWeight int

// Named font weights.
const (
	WeightThin       FontWeight = 100
	WeightExtraLight FontWeight = 200
	WeightLight      FontWeight = 300
	WeightNormal     FontWeight = 400
	WeightMedium     FontWeight = 500
	WeightSemiBold   FontWeight = 600
	WeightBold       FontWeight = 700
	WeightExtraBold  FontWeight = 800
	WeightBlack      FontWeight = 900
)

var weightNames = map[string]FontWeight{
	"thin":        WeightThin,
	"extra-light": WeightExtraLight,
	"light":       WeightLight,
	"normal":      WeightNormal,
	"regular":     WeightNormal,
	"medium":      WeightMedium,
	"semi-bold":   WeightSemiBold,
	"bold":        WeightBold,
	"extra-bold":  WeightExtraBold,
	"black":       WeightBlack,
}

// ParseFontWeight accepts a number or a weight name such as "bold".
func ParseFontWeight(v any) (FontWeight, bool) {
	switch x := v.(type) {
	case FontWeight:
		return x, true
	case int:
		return FontWeight(x), true
	case int64:
		return FontWeight(x), true
	case float32:
		return FontWeight(x), true
	case float64:
		return FontWeight(x), true
	case string:
		s := strings.ToLower(strings.TrimSpace(x))
		if w, ok := weightNames[s]; ok {
			return w, true
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, false
		}
		return FontWeight(n), true
	default:
		return 0, false
	}
}

// FontFamilies maps a family name to the font location of each weight.
type FontFamilies map[string]map[FontWeight]string

// DefaultFamily is used when an element names no family or an unknown one.
const DefaultFamily = "default"

// Resolve returns the location of the font in family closest to weight.
// Unknown or empty families fall back to DefaultFamily, then to the first
// family in name order. Ties between two weights pick the lighter one.
func (f FontFamilies) Resolve(family string, weight FontWeight) (string, bool) {
	weights, ok := f[family]
	if !ok {
		weights, ok = f[DefaultFamily]
	}
	if !ok {
		names := make([]string, 0, len(f))
		for name := range f {
			names = append(names, name)
		}
		if len(names) == 0 {
			return "", false
		}
		sort.Strings(names)
		weights = f[names[0]]
	}
	if weight == 0 {
		weight = WeightNormal
	}

	best, bestW, bestDist := "", FontWeight(0), -1
	for w, loc := range weights {
		d := int(w - weight)
		if d < 0 {
			d = -d
		}
		if bestDist < 0 || d < bestDist || (d == bestDist && w < bestW) {
			best, bestW, bestDist = loc, w, d
		}
	}
	return best, bestDist >= 0
}
