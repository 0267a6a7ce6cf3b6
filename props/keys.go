package props

// Property keys understood by the layout and text engines.
const (
	// Box model.
	Width        = "width"
	Height       = "height"
	MinWidth     = "minWidth"
	MinHeight    = "minHeight"
	MaxWidth     = "maxWidth"
	MaxHeight    = "maxHeight"
	AspectRatio  = "aspectRatio"
	Padding      = "padding"
	PaddingX     = "paddingX"
	PaddingY     = "paddingY"
	PaddingLeft  = "paddingLeft"
	PaddingTop   = "paddingTop"
	PaddingRight = "paddingRight"
	PaddingBot   = "paddingBottom"
	Margin       = "margin"
	MarginX      = "marginX"
	MarginY      = "marginY"
	MarginLeft   = "marginLeft"
	MarginTop    = "marginTop"
	MarginRight  = "marginRight"
	MarginBot    = "marginBottom"
	Border       = "border"
	BorderX      = "borderX"
	BorderY      = "borderY"
	BorderLeft   = "borderLeft"
	BorderTop    = "borderTop"
	BorderRight  = "borderRight"
	BorderBot    = "borderBottom"

	// Flex container and item.
	Display        = "display"
	PositionType   = "positionType"
	PositionLeft   = "positionLeft"
	PositionTop    = "positionTop"
	PositionRight  = "positionRight"
	PositionBottom = "positionBottom"
	FlexDirection  = "flexDirection"
	FlexWrap       = "flexWrap"
	FlexGrow       = "flexGrow"
	FlexShrink     = "flexShrink"
	FlexBasis      = "flexBasis"
	JustifyContent = "justifyContent"
	AlignItems     = "alignItems"
	AlignSelf      = "alignSelf"
	AlignContent   = "alignContent"
	Gap            = "gap"
	GapRow         = "gapRow"
	GapColumn      = "gapColumn"
	Overflow       = "overflow"

	// Text.
	FontFamily    = "fontFamily"
	FontWeight    = "fontWeight"
	FontSize      = "fontSize"
	LetterSpacing = "letterSpacing"
	LineHeight    = "lineHeight"
	WordBreak     = "wordBreak"
	TextAlign     = "textAlign"
	VerticalAlign = "verticalAlign"
	Color         = "color"

	// Panel.
	BackgroundColor   = "backgroundColor"
	BackgroundOpacity = "backgroundOpacity"
	BorderColor       = "borderColor"
	BorderRadius      = "borderRadius"
	Opacity           = "opacity"
	Visibility        = "visibility"
	ZIndexOffset      = "zIndexOffset"
)

// layoutKeys are the keys that feed the flex solver or text measurement.
var layoutKeys = map[string]struct{}{
	Width: {}, Height: {}, MinWidth: {}, MinHeight: {}, MaxWidth: {}, MaxHeight: {},
	AspectRatio: {}, Padding: {}, PaddingX: {}, PaddingY: {}, PaddingLeft: {},
	PaddingTop: {}, PaddingRight: {}, PaddingBot: {}, Margin: {}, MarginX: {},
	MarginY: {}, MarginLeft: {}, MarginTop: {}, MarginRight: {}, MarginBot: {},
	Border: {}, BorderX: {}, BorderY: {}, BorderLeft: {}, BorderTop: {},
	BorderRight: {}, BorderBot: {}, Display: {}, PositionType: {}, PositionLeft: {},
	PositionTop: {}, PositionRight: {}, PositionBottom: {}, FlexDirection: {},
	FlexWrap: {}, FlexGrow: {}, FlexShrink: {}, FlexBasis: {}, JustifyContent: {},
	AlignItems: {}, AlignSelf: {}, AlignContent: {}, Gap: {}, GapRow: {},
	GapColumn: {}, Overflow: {}, FontFamily: {}, FontWeight: {}, FontSize: {},
	LetterSpacing: {}, LineHeight: {}, WordBreak: {},
}

// AffectsLayout reports whether a change of key requires a layout pass.
// Color and other paint-only keys do not.
func AffectsLayout(key string) bool {
	_, ok := layoutKeys[key]
	return ok
}

// AnyAffectsLayout reports whether any of keys affects layout.
func AnyAffectsLayout(keys []string) bool {
	for _, k := range keys {
		if AffectsLayout(k) {
			return true
		}
	}
	return false
}

// textKeys are the keys that change how text is measured.
var textKeys = map[string]struct{}{
	FontFamily: {}, FontWeight: {}, FontSize: {}, LetterSpacing: {},
	LineHeight: {}, WordBreak: {},
}

// AnyAffectsText reports whether any of keys changes text measurement.
func AnyAffectsText(keys []string) bool {
	for _, k := range keys {
		if _, ok := textKeys[k]; ok {
			return true
		}
	}
	return false
}
