package props

// Layer names one source of property overrides. Layers are applied in
// declaration order, so a later layer wins over an earlier one.
type Layer uint8

const (
	// LayerBase holds the element's own properties.
	LayerBase Layer = iota

	// Breakpoint layers apply when the viewport is at least as wide as
	// their threshold (mobile first).
	LayerSM
	LayerMD
	LayerLG
	LayerXL
	Layer2XL

	// LayerDark applies in dark mode.
	LayerDark

	// Pointer and focus state layers.
	LayerHover
	LayerActive
	LayerFocus

	// LayerInline holds explicit per-instance overrides and always wins.
	LayerInline

	// NumLayers is the number of layers.
	NumLayers int = iota
)

var layerNames = [...]string{
	LayerBase:   "base",
	LayerSM:     "sm",
	LayerMD:     "md",
	LayerLG:     "lg",
	LayerXL:     "xl",
	Layer2XL:    "2xl",
	LayerDark:   "dark",
	LayerHover:  "hover",
	LayerActive: "active",
	LayerFocus:  "focus",
	LayerInline: "inline",
}

// String returns the layer name as used in class prefixes ("md", "hover").
func (l Layer) String() string {
	if int(l) < len(layerNames) {
		return layerNames[l]
	}
	return "unknown"
}

// ParseLayer maps a layer name to a Layer. "" is the base layer.
func ParseLayer(s string) (Layer, bool) {
	if s == "" {
		return LayerBase, true
	}
	for i, name := range layerNames {
		if name == s {
			return Layer(i), true
		}
	}
	return LayerBase, false
}

// IsBreakpoint reports whether l is one of the responsive width layers.
func (l Layer) IsBreakpoint() bool {
	return l >= LayerSM && l <= Layer2XL
}

// Breakpoints holds the minimum viewport widths of the breakpoint layers.
type Breakpoints struct {
	SM  float32 `toml:"sm" yaml:"sm"`
	MD  float32 `toml:"md" yaml:"md"`
	LG  float32 `toml:"lg" yaml:"lg"`
	XL  float32 `toml:"xl" yaml:"xl"`
	XXL float32 `toml:"2xl" yaml:"2xl"`
}

// DefaultBreakpoints returns the standard thresholds.
func DefaultBreakpoints() Breakpoints {
	return Breakpoints{
		SM:  640,
		MD:  768,
		LG:  1024,
		XL:  1280,
		XXL: 1536,
	}
}

// IsZero reports whether no threshold is set.
func (b Breakpoints) IsZero() bool {
	return b == Breakpoints{}
}

// Threshold returns the minimum width of a breakpoint layer.
func (b Breakpoints) Threshold(l Layer) (float32, bool) {
	switch l {
	case LayerSM:
		return b.SM, true
	case LayerMD:
		return b.MD, true
	case LayerLG:
		return b.LG, true
	case LayerXL:
		return b.XL, true
	case Layer2XL:
		return b.XXL, true
	default:
		return 0, false
	}
}

// Active returns the widest breakpoint layer satisfied by width, or
// LayerBase below the smallest threshold.
func (b Breakpoints) Active(width float32) Layer {
	for l := Layer2XL; l >= LayerSM; l-- {
		if t, _ := b.Threshold(l); width >= t {
			return l
		}
	}
	return LayerBase
}

// Conditions is the state that decides which layers are active.
type Conditions struct {
	// Width is the viewport width in layout pixels.
	Width float32

	Dark   bool
	Hover  bool
	Active bool
	Focus  bool

	// Breakpoints overrides the default thresholds when non-zero.
	Breakpoints Breakpoints
}

func (c Conditions) breakpoints() Breakpoints {
	if c.Breakpoints.IsZero() {
		return DefaultBreakpoints()
	}
	return c.Breakpoints
}

// IsActive reports whether layer l applies under c.
func (c Conditions) IsActive(l Layer) bool {
	switch l {
	case LayerBase, LayerInline:
		return true
	case LayerDark:
		return c.Dark
	case LayerHover:
		return c.Hover
	case LayerActive:
		return c.Active
	case LayerFocus:
		return c.Focus
	}
	t, ok := c.breakpoints().Threshold(l)
	return ok && c.Width >= t
}
