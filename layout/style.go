package layout

import (
	"strconv"
	"strings"

	"github.com/chewxy/math32"
	"github.com/kjk/flex"

	"github.com/gogpu/uikit/props"
)

// unit is the unit of a length property.
type unit uint8

const (
	unitUndefined unit = iota
	unitPoint
	unitPercent
	unitAuto
)

// length is a parsed length property: points, a percentage of the parent,
// "auto", or unset.
type length struct {
	value float32
	unit  unit
}

var undefined = length{}

// parseLength accepts numbers (points), "12px", "50%" and "auto".
func parseLength(v any) (length, bool) {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if s == "auto" {
			return length{unit: unitAuto}, true
		}
		if pct, ok := strings.CutSuffix(s, "%"); ok {
			f, err := strconv.ParseFloat(strings.TrimSpace(pct), 32)
			if err != nil {
				return undefined, false
			}
			return length{value: float32(f), unit: unitPercent}, true
		}
	}
	f, ok := props.ToFloat(v)
	if !ok || math32.IsNaN(f) {
		return undefined, false
	}
	return length{value: f, unit: unitPoint}, true
}

// lengthOf returns the length stored under key, or undefined.
func lengthOf(p props.Properties, key string) length {
	v, ok := p[key]
	if !ok {
		return undefined
	}
	l, _ := parseLength(v)
	return l
}

// edgeKeys names a shorthand group such as padding, paddingX and
// paddingLeft. Specific edges win over axes, axes over the shorthand.
type edgeKeys struct {
	all, x, y                string
	left, top, right, bottom string
}

var (
	paddingKeys = edgeKeys{props.Padding, props.PaddingX, props.PaddingY, props.PaddingLeft, props.PaddingTop, props.PaddingRight, props.PaddingBot}
	marginKeys  = edgeKeys{props.Margin, props.MarginX, props.MarginY, props.MarginLeft, props.MarginTop, props.MarginRight, props.MarginBot}
	borderKeys  = edgeKeys{props.Border, props.BorderX, props.BorderY, props.BorderLeft, props.BorderTop, props.BorderRight, props.BorderBot}
)

// edgeOrder is the index order of [4]length edge arrays.
var edgeOrder = [4]flex.Edge{flex.EdgeLeft, flex.EdgeTop, flex.EdgeRight, flex.EdgeBottom}

const (
	edgeLeft = iota
	edgeTop
	edgeRight
	edgeBottom
)

func resolveEdges(p props.Properties, k edgeKeys) [4]length {
	var out [4]length
	all := lengthOf(p, k.all)
	x, y := lengthOf(p, k.x), lengthOf(p, k.y)
	pick := func(specific, axis length) length {
		switch {
		case specific.unit != unitUndefined:
			return specific
		case axis.unit != unitUndefined:
			return axis
		default:
			return all
		}
	}
	out[edgeLeft] = pick(lengthOf(p, k.left), x)
	out[edgeRight] = pick(lengthOf(p, k.right), x)
	out[edgeTop] = pick(lengthOf(p, k.top), y)
	out[edgeBottom] = pick(lengthOf(p, k.bottom), y)
	return out
}

func positions(p props.Properties) [4]length {
	return [4]length{
		edgeLeft:   lengthOf(p, props.PositionLeft),
		edgeTop:    lengthOf(p, props.PositionTop),
		edgeRight:  lengthOf(p, props.PositionRight),
		edgeBottom: lengthOf(p, props.PositionBottom),
	}
}

var flexDirections = map[string]flex.FlexDirection{
	"row":            flex.FlexDirectionRow,
	"row-reverse":    flex.FlexDirectionRowReverse,
	"column":         flex.FlexDirectionColumn,
	"column-reverse": flex.FlexDirectionColumnReverse,
}

var justifies = map[string]flex.Justify{
	"flex-start":    flex.JustifyFlexStart,
	"start":         flex.JustifyFlexStart,
	"center":        flex.JustifyCenter,
	"flex-end":      flex.JustifyFlexEnd,
	"end":           flex.JustifyFlexEnd,
	"space-between": flex.JustifySpaceBetween,
	"space-around":  flex.JustifySpaceAround,
}

var aligns = map[string]flex.Align{
	"auto":          flex.AlignAuto,
	"flex-start":    flex.AlignFlexStart,
	"start":         flex.AlignFlexStart,
	"center":        flex.AlignCenter,
	"flex-end":      flex.AlignFlexEnd,
	"end":           flex.AlignFlexEnd,
	"stretch":       flex.AlignStretch,
	"baseline":      flex.AlignBaseline,
	"space-between": flex.AlignSpaceBetween,
	"space-around":  flex.AlignSpaceAround,
}

var wraps = map[string]flex.Wrap{
	"nowrap":       flex.WrapNoWrap,
	"no-wrap":      flex.WrapNoWrap,
	"wrap":         flex.WrapWrap,
	"wrap-reverse": flex.WrapWrapReverse,
}

var positionTypes = map[string]flex.PositionType{
	"relative": flex.PositionTypeRelative,
	"absolute": flex.PositionTypeAbsolute,
}

var overflows = map[string]flex.Overflow{
	"visible": flex.OverflowVisible,
	"hidden":  flex.OverflowHidden,
	"scroll":  flex.OverflowScroll,
}

var displays = map[string]flex.Display{
	"flex": flex.DisplayFlex,
	"none": flex.DisplayNone,
}

// enumOf looks up the string value of key in table. Unknown values fall
// back to def.
func enumOf[T any](p props.Properties, key string, table map[string]T, def T) T {
	v, ok := p[key]
	if !ok {
		return def
	}
	s, _ := v.(string)
	if e, ok := table[strings.ToLower(strings.TrimSpace(s))]; ok {
		return e
	}
	slogger().Debug("layout: unknown value", "key", key, "value", v)
	return def
}

// mainEdge returns the edge that precedes a child along the main axis.
func mainEdge(d flex.FlexDirection) int {
	switch d {
	case flex.FlexDirectionRowReverse:
		return edgeRight
	case flex.FlexDirectionColumn:
		return edgeTop
	case flex.FlexDirectionColumnReverse:
		return edgeBottom
	default:
		return edgeLeft
	}
}

// isRow reports whether d lays children out horizontally.
func isRow(d flex.FlexDirection) bool {
	return d == flex.FlexDirectionRow || d == flex.FlexDirectionRowReverse
}

// mainGap returns the gap between children along the main axis:
// gapColumn for rows, gapRow for columns, falling back to gap.
func mainGap(p props.Properties, d flex.FlexDirection) float32 {
	key := props.GapRow
	if isRow(d) {
		key = props.GapColumn
	}
	if g, ok := p.Float(key); ok {
		return g
	}
	return p.FloatOr(props.Gap, 0)
}
