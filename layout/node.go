package layout

import (
	"slices"

	"github.com/chewxy/math32"
	"github.com/kjk/flex"

	"github.com/gogpu/uikit/props"
	"github.com/gogpu/uikit/text"
)

// Rect is a computed box in layout pixels, y down.
type Rect struct {
	X, Y          float32
	Width, Height float32
}

// Edges holds per-edge insets in layout pixels.
type Edges struct {
	Left, Top, Right, Bottom float32
}

// Node is the solver node of one element. It owns the solver inputs
// translated from the element's resolved properties and exposes the
// computed geometry after Calculate.
//
// A destroyed node, or one whose parent was destroyed, is inert: every
// method is a no-op and readbacks return zero values.
//
// Node is not safe for concurrent use; it belongs to the frame loop.
type Node struct {
	yoga      *flex.Node
	parent    *Node
	children  []*Node
	destroyed bool

	// margins are the element's own margins; gap emulation adds to them.
	margins  [4]length
	absolute bool
	hidden   bool

	// direction, gap and wraps describe how children are spaced.
	direction flex.FlexDirection
	gap       float32
	wraps     bool

	// lineStart marks a child that began a wrapped line in the last solve.
	lineStart bool

	text *textContent
}

type textContent struct {
	measurer *text.Measurer
	props    *text.GlyphProperties
}

// New creates a detached node with default styles.
func New() *Node {
	n := &Node{yoga: flex.NewNode()}
	n.Apply(nil)
	return n
}

// Alive reports whether n and all its ancestors are not destroyed.
func (n *Node) Alive() bool {
	for p := n; p != nil; p = p.parent {
		if p.destroyed {
			return false
		}
	}
	return n != nil
}

// Parent returns the parent node, or nil.
func (n *Node) Parent() *Node {
	if !n.Alive() {
		return nil
	}
	return n.parent
}

// Children returns the child nodes in order.
func (n *Node) Children() []*Node {
	if !n.Alive() {
		return nil
	}
	return slices.Clone(n.children)
}

// IsText reports whether n measures text content.
func (n *Node) IsText() bool {
	return n.Alive() && n.text != nil
}

// InsertChild inserts child at index i (clamped to the child count),
// detaching it from its previous parent first.
func (n *Node) InsertChild(child *Node, i int) error {
	if !n.Alive() || !child.Alive() || child == n {
		return nil
	}
	if n.text != nil {
		return ErrTextNode
	}
	for p := n; p != nil; p = p.parent {
		if p == child {
			return ErrCycle
		}
	}
	child.detach()
	i = max(0, min(i, len(n.children)))
	n.children = slices.Insert(n.children, i, child)
	child.parent = n
	n.yoga.InsertChild(child.yoga, i)
	n.updateGaps()
	return nil
}

// AppendChild adds child as the last child.
func (n *Node) AppendChild(child *Node) error {
	if !n.Alive() {
		return nil
	}
	return n.InsertChild(child, len(n.children))
}

// RemoveChild detaches child from n.
func (n *Node) RemoveChild(child *Node) {
	if !n.Alive() || child == nil || child.parent != n {
		return
	}
	child.detach()
}

func (n *Node) detach() {
	p := n.parent
	if p == nil {
		return
	}
	if i := slices.Index(p.children, n); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
	}
	p.yoga.RemoveChild(n.yoga)
	n.parent = nil
	n.lineStart = false
	// Drop the gap that was added for the old position.
	n.applyMargins(0, 0)
	if !p.destroyed {
		p.updateGaps()
	}
}

// Destroy detaches n and destroys its subtree. Destroying twice is a no-op.
func (n *Node) Destroy() {
	if n == nil || n.destroyed {
		return
	}
	n.detach()
	n.destroyTree()
}

func (n *Node) destroyTree() {
	n.destroyed = true
	for _, c := range n.children {
		c.destroyTree()
	}
	n.children = nil
	n.text = nil
}

// Apply translates a resolved property snapshot into solver inputs. Keys
// missing from p reset to their defaults, so Apply always receives the
// full snapshot. Defaults follow CSS: row direction and flex-shrink 1.
func (n *Node) Apply(p props.Properties) {
	if !n.Alive() {
		return
	}
	y := n.yoga

	n.hidden = enumOf(p, props.Display, displays, flex.DisplayFlex) == flex.DisplayNone
	y.StyleSetDisplay(enumOf(p, props.Display, displays, flex.DisplayFlex))

	pos := enumOf(p, props.PositionType, positionTypes, flex.PositionTypeRelative)
	n.absolute = pos == flex.PositionTypeAbsolute
	y.StyleSetPositionType(pos)
	for i, l := range positions(p) {
		setPosition(y, edgeOrder[i], l)
	}

	y.StyleSetFlexDirection(enumOf(p, props.FlexDirection, flexDirections, flex.FlexDirectionRow))
	wrap := enumOf(p, props.FlexWrap, wraps, flex.WrapNoWrap)
	y.StyleSetFlexWrap(wrap)
	y.StyleSetJustifyContent(enumOf(p, props.JustifyContent, justifies, flex.JustifyFlexStart))
	y.StyleSetAlignItems(enumOf(p, props.AlignItems, aligns, flex.AlignStretch))
	y.StyleSetAlignSelf(enumOf(p, props.AlignSelf, aligns, flex.AlignAuto))
	y.StyleSetAlignContent(enumOf(p, props.AlignContent, aligns, flex.AlignFlexStart))
	y.StyleSetOverflow(enumOf(p, props.Overflow, overflows, flex.OverflowVisible))

	y.StyleSetFlexGrow(p.FloatOr(props.FlexGrow, 0))
	y.StyleSetFlexShrink(p.FloatOr(props.FlexShrink, 1))
	setFlexBasis(y, lengthOf(p, props.FlexBasis))

	setWidth(y, lengthOf(p, props.Width))
	setHeight(y, lengthOf(p, props.Height))
	setMinWidth(y, lengthOf(p, props.MinWidth))
	setMinHeight(y, lengthOf(p, props.MinHeight))
	setMaxWidth(y, lengthOf(p, props.MaxWidth))
	setMaxHeight(y, lengthOf(p, props.MaxHeight))
	y.StyleSetAspectRatio(p.FloatOr(props.AspectRatio, math32.NaN()))

	for i, l := range resolveEdges(p, paddingKeys) {
		setPadding(y, edgeOrder[i], l)
	}
	for i, l := range resolveEdges(p, borderKeys) {
		if l.unit == unitPoint {
			y.StyleSetBorder(edgeOrder[i], l.value)
		} else {
			y.StyleSetBorder(edgeOrder[i], math32.NaN())
		}
	}

	dir := enumOf(p, props.FlexDirection, flexDirections, flex.FlexDirectionRow)
	gap := mainGap(p, dir)
	n.margins = resolveEdges(p, marginKeys)
	if n.parent != nil {
		// The parent recomputes every child's margins; flow position
		// may have changed with absolute or display.
		n.parent.updateGaps()
	} else {
		n.applyMargins(0, 0)
	}
	wrapping := wrap != flex.WrapNoWrap
	if dir != n.direction || gap != n.gap || wrapping != n.wraps {
		n.direction, n.gap, n.wraps = dir, gap, wrapping
		n.updateGaps()
	}
}

// updateGaps adds the main-axis gap to the leading margin of every
// in-flow child after the first. In a wrapping container the first child
// of every line gets no gap either; lines are known only after a solve, so
// Calculate corrects them with fixWrappedGaps. The gap between lines
// (cross axis) is not emulated.
func (n *Node) updateGaps() {
	edge := mainEdge(n.direction)
	first := true
	for _, c := range n.children {
		if c.absolute || c.hidden {
			c.applyMargins(0, 0)
			continue
		}
		if first || (n.wraps && c.lineStart) {
			first = false
			c.applyMargins(0, 0)
			continue
		}
		c.applyMargins(edge, n.gap)
	}
}

// maxGapPasses bounds the re-solves done for wrapped gaps.
const maxGapPasses = 3

// fixWrappedGaps reads the lines of the last solve and moves the gap off
// every child that starts a line. It reports whether any margin changed.
func (n *Node) fixWrappedGaps() bool {
	changed := false
	if n.wraps && n.gap != 0 {
		reverse := n.direction == flex.FlexDirectionRowReverse || n.direction == flex.FlexDirectionColumnReverse
		var prev *Node
		for _, c := range n.children {
			if c.absolute || c.hidden {
				continue
			}
			start := prev == nil
			if prev != nil {
				pos, prevPos := mainPos(c, n.direction), mainPos(prev, n.direction)
				if reverse {
					start = pos >= prevPos
				} else {
					start = pos <= prevPos
				}
			}
			if start != c.lineStart {
				c.lineStart = start
				changed = true
			}
			prev = c
		}
		if changed {
			n.updateGaps()
		}
	}
	for _, c := range n.children {
		if c.fixWrappedGaps() {
			changed = true
		}
	}
	return changed
}

// mainPos returns the position of n along the main axis d of its parent.
func mainPos(n *Node, d flex.FlexDirection) float32 {
	if isRow(d) {
		return n.yoga.LayoutGetLeft()
	}
	return n.yoga.LayoutGetTop()
}

// applyMargins writes the node's margins, adding extra to edge. Percent
// and auto margins are left as they are.
func (n *Node) applyMargins(edge int, extra float32) {
	for i, m := range n.margins {
		if i == edge && extra != 0 && (m.unit == unitPoint || m.unit == unitUndefined) {
			m = length{value: m.value + extra, unit: unitPoint}
		}
		setMargin(n.yoga, edgeOrder[i], m)
	}
}

// SetText makes n a text leaf measured with m. Text nodes cannot have
// children.
func (n *Node) SetText(m *text.Measurer, p *text.GlyphProperties) error {
	if !n.Alive() {
		return nil
	}
	if len(n.children) > 0 {
		return ErrTextNode
	}
	first := n.text == nil
	n.text = &textContent{measurer: m, props: p}
	if first {
		n.yoga.SetMeasureFunc(n.measureText)
	}
	n.yoga.MarkDirty()
	return nil
}

// TextProperties returns the properties set by SetText, or nil.
func (n *Node) TextProperties() *text.GlyphProperties {
	if !n.IsText() {
		return nil
	}
	return n.text.props
}

// MarkTextDirty requests a new measurement after the text properties
// changed in place.
func (n *Node) MarkTextDirty() {
	if n.IsText() {
		n.yoga.MarkDirty()
	}
}

// measureText negotiates the intrinsic size of the text with the solver.
// An undefined width measures unconstrained; at-most clamps.
func (n *Node) measureText(_ *flex.Node, width float32, widthMode flex.MeasureMode, height float32, heightMode flex.MeasureMode) flex.Size {
	tc := n.text
	if tc == nil || tc.props == nil {
		return flex.Size{}
	}
	avail := text.Unbounded
	if widthMode != flex.MeasureModeUndefined {
		avail = width
	}
	l := tc.measurer.Layout(tc.props, avail)

	size := flex.Size{Width: l.Width, Height: l.Height}
	switch widthMode {
	case flex.MeasureModeExactly:
		size.Width = width
	case flex.MeasureModeAtMost:
		size.Width = math32.Min(size.Width, width)
	}
	switch heightMode {
	case flex.MeasureModeExactly:
		size.Height = height
	case flex.MeasureModeAtMost:
		size.Height = math32.Min(size.Height, height)
	}
	return size
}

// TextLayout lays the text out at the computed content width.
func (n *Node) TextLayout() *text.GlyphLayout {
	if !n.IsText() || n.text.props == nil {
		return nil
	}
	return n.text.measurer.Layout(n.text.props, n.Content().Width)
}

// Calculate solves the tree rooted at n for the given available size.
// NaN leaves a dimension unconstrained. Wrapping containers with a gap
// may be solved again once their lines are known. Calling it on a non-root node
// does nothing.
func (n *Node) Calculate(width, height float32) {
	if !n.Alive() || n.parent != nil {
		return
	}
	flex.CalculateLayout(n.yoga, width, height, flex.DirectionLTR)
	for range maxGapPasses {
		if !n.fixWrappedGaps() {
			return
		}
		flex.CalculateLayout(n.yoga, width, height, flex.DirectionLTR)
	}
}

// Relative returns the computed box relative to the parent's border box.
func (n *Node) Relative() Rect {
	if !n.Alive() {
		return Rect{}
	}
	return Rect{
		X:      n.yoga.LayoutGetLeft(),
		Y:      n.yoga.LayoutGetTop(),
		Width:  n.yoga.LayoutGetWidth(),
		Height: n.yoga.LayoutGetHeight(),
	}
}

// Absolute returns the computed box relative to the root.
func (n *Node) Absolute() Rect {
	if !n.Alive() {
		return Rect{}
	}
	r := n.Relative()
	for p := n.parent; p != nil; p = p.parent {
		r.X += p.yoga.LayoutGetLeft()
		r.Y += p.yoga.LayoutGetTop()
	}
	return r
}

// Padding returns the computed padding.
func (n *Node) Padding() Edges {
	if !n.Alive() {
		return Edges{}
	}
	return Edges{
		Left:   n.yoga.LayoutGetPadding(flex.EdgeLeft),
		Top:    n.yoga.LayoutGetPadding(flex.EdgeTop),
		Right:  n.yoga.LayoutGetPadding(flex.EdgeRight),
		Bottom: n.yoga.LayoutGetPadding(flex.EdgeBottom),
	}
}

// Border returns the computed border widths.
func (n *Node) Border() Edges {
	if !n.Alive() {
		return Edges{}
	}
	return Edges{
		Left:   n.yoga.LayoutGetBorder(flex.EdgeLeft),
		Top:    n.yoga.LayoutGetBorder(flex.EdgeTop),
		Right:  n.yoga.LayoutGetBorder(flex.EdgeRight),
		Bottom: n.yoga.LayoutGetBorder(flex.EdgeBottom),
	}
}

// Content returns the content box (inside padding and border) relative to
// the node's own border box.
func (n *Node) Content() Rect {
	if !n.Alive() {
		return Rect{}
	}
	r := n.Relative()
	p, b := n.Padding(), n.Border()
	left := p.Left + b.Left
	top := p.Top + b.Top
	return Rect{
		X:      left,
		Y:      top,
		Width:  math32.Max(0, r.Width-left-p.Right-b.Right),
		Height: math32.Max(0, r.Height-top-p.Bottom-b.Bottom),
	}
}

// Walk calls fn for n and its descendants in depth-first order. fn
// returning false skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !n.Alive() {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

func setWidth(y *flex.Node, l length) {
	switch l.unit {
	case unitPoint:
		y.StyleSetWidth(l.value)
	case unitPercent:
		y.StyleSetWidthPercent(l.value)
	default:
		y.StyleSetWidthAuto()
	}
}

func setHeight(y *flex.Node, l length) {
	switch l.unit {
	case unitPoint:
		y.StyleSetHeight(l.value)
	case unitPercent:
		y.StyleSetHeightPercent(l.value)
	default:
		y.StyleSetHeightAuto()
	}
}

func setMinWidth(y *flex.Node, l length) {
	if l.unit == unitPercent {
		y.StyleSetMinWidthPercent(l.value)
		return
	}
	y.StyleSetMinWidth(pointOrNaN(l))
}

func setMinHeight(y *flex.Node, l length) {
	if l.unit == unitPercent {
		y.StyleSetMinHeightPercent(l.value)
		return
	}
	y.StyleSetMinHeight(pointOrNaN(l))
}

func setMaxWidth(y *flex.Node, l length) {
	if l.unit == unitPercent {
		y.StyleSetMaxWidthPercent(l.value)
		return
	}
	y.StyleSetMaxWidth(pointOrNaN(l))
}

func setMaxHeight(y *flex.Node, l length) {
	if l.unit == unitPercent {
		y.StyleSetMaxHeightPercent(l.value)
		return
	}
	y.StyleSetMaxHeight(pointOrNaN(l))
}

func setFlexBasis(y *flex.Node, l length) {
	switch l.unit {
	case unitPoint:
		y.StyleSetFlexBasis(l.value)
	case unitPercent:
		y.StyleSetFlexBasisPercent(l.value)
	default:
		flex.NodeStyleSetFlexBasisAuto(y)
	}
}

func setPosition(y *flex.Node, edge flex.Edge, l length) {
	if l.unit == unitPercent {
		y.StyleSetPositionPercent(edge, l.value)
		return
	}
	y.StyleSetPosition(edge, pointOrNaN(l))
}

func setPadding(y *flex.Node, edge flex.Edge, l length) {
	if l.unit == unitPercent {
		y.StyleSetPaddingPercent(edge, l.value)
		return
	}
	y.StyleSetPadding(edge, pointOrNaN(l))
}

func setMargin(y *flex.Node, edge flex.Edge, l length) {
	switch l.unit {
	case unitPercent:
		y.StyleSetMarginPercent(edge, l.value)
	case unitAuto:
		y.StyleSetMarginAuto(edge)
	default:
		y.StyleSetMargin(edge, pointOrNaN(l))
	}
}

// pointOrNaN maps unset and auto lengths to the solver's undefined value.
func pointOrNaN(l length) float32 {
	if l.unit == unitPoint {
		return l.value
	}
	return math32.NaN()
}
