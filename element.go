package uikit

import (
	"slices"

	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/uikit/layout"
	"github.com/gogpu/uikit/props"
	"github.com/gogpu/uikit/text"
)

// Element is a node of the UI tree: a layered property stack, a solver
// node and, for text elements, the text content and its font.
//
// Mutations are recorded and applied by the next Root.Frame.
type Element struct {
	root     *Root
	parent   *Element
	children []*Element

	node    *layout.Node
	stack   *props.Stack
	own     [props.NumLayers]props.Properties
	classes []string

	hover, active, focus bool

	// dirty marks a pending update; stale marks a stack that must be
	// rebuilt from classes and own layers first.
	dirty   bool
	stale   bool
	mounted bool
	gone    bool

	text *textState
}

type textState struct {
	content string
	changed bool

	font    *text.Font
	fontKey string
	handle  *text.FontHandle
}

// NewElement creates a detached container element with base properties.
// Append it to a mounted element to show it.
func (r *Root) NewElement(base props.Properties) *Element {
	e := r.newElement(base, false)
	return e
}

// NewText creates a detached text element. The text is normalized to NFC.
func (r *Root) NewText(s string, base props.Properties) *Element {
	e := r.newElement(base, true)
	e.text.content = norm.NFC.String(s)
	return e
}

func (r *Root) newElement(base props.Properties, isText bool) *Element {
	e := &Element{
		root:  r,
		node:  layout.New(),
		stack: props.NewStack(nil),
		dirty: true,
		stale: true,
	}
	e.own[props.LayerBase] = base.Clone()
	if isText {
		e.text = &textState{changed: true}
		// Measure with no font until the first resolution picks one.
		_ = e.node.SetText(r.measurer, &text.GlyphProperties{LineHeight: text.DefaultLineHeight})
	}
	r.nodes[e.node] = e
	return e
}

// Root returns the root the element was created by.
func (e *Element) Root() *Root { return e.root }

// Parent returns the parent element, or nil.
func (e *Element) Parent() *Element { return e.parent }

// Children returns a copy of the child list.
func (e *Element) Children() []*Element { return slices.Clone(e.children) }

// IsText reports whether e is a text element.
func (e *Element) IsText() bool { return e.text != nil }

// Mounted reports whether e is attached to its root's tree.
func (e *Element) Mounted() bool { return e.mounted && !e.gone }

// Node returns the solver node.
func (e *Element) Node() *layout.Node { return e.node }

// Append adds child as the last child.
func (e *Element) Append(child *Element) error {
	return e.Insert(child, len(e.children))
}

// Insert adds child at index i, detaching it from its current parent.
func (e *Element) Insert(child *Element, i int) error {
	switch {
	case e.gone || child.gone:
		return ErrUnmounted
	case child.root != e.root:
		return ErrForeignElement
	case child == e.root.elem || child == e:
		return ErrCycle
	}
	if child.parent == e {
		// Reinsert at the index it would have after removal.
		if idx := slices.Index(e.children, child); idx < i {
			i--
		}
	}
	if err := e.node.InsertChild(child.node, i); err != nil {
		return err
	}
	if child.parent != nil {
		child.parent.children = slices.DeleteFunc(child.parent.children, func(c *Element) bool { return c == child })
	}
	i = min(max(i, 0), len(e.children))
	e.children = slices.Insert(e.children, i, child)
	child.parent = e
	child.setMounted(e.mounted)
	e.root.layoutDirty = true
	return nil
}

// Remove detaches child. The child keeps its state and can be appended
// again; use Unmount to discard it.
func (e *Element) Remove(child *Element) {
	if child.parent != e {
		return
	}
	e.node.RemoveChild(child.node)
	e.children = slices.DeleteFunc(e.children, func(c *Element) bool { return c == child })
	child.parent = nil
	child.setMounted(false)
	e.root.layoutDirty = true
}

// setMounted updates the mounted flag of the subtree. Newly mounted
// elements are resolved by the next frame.
func (e *Element) setMounted(m bool) {
	e.walk(func(c *Element) bool {
		c.mounted = m
		if m {
			c.markDirty()
		}
		return true
	})
}

// Unmount removes e from the tree and destroys it together with its
// descendants. Fonts are released and pending font callbacks cancelled.
// Unmounting the root element is not allowed and does nothing.
func (e *Element) Unmount() {
	if e.gone || e == e.root.elem {
		return
	}
	if e.parent != nil {
		e.parent.Remove(e)
	}
	e.walk(func(c *Element) bool {
		c.gone = true
		c.mounted = false
		if c.text != nil {
			c.text.handle.Release()
			c.text.handle = nil
		}
		delete(c.root.nodes, c.node)
		return true
	})
	e.node.Destroy()
}

// walk calls fn for e and its descendants depth-first. fn returning false
// skips the children.
func (e *Element) walk(fn func(*Element) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.children {
		c.walk(fn)
	}
}

func (e *Element) markDirty() {
	if e.gone {
		return
	}
	e.dirty = true
	if e.mounted {
		e.root.pending = true
	}
}

// SetLayer replaces the element's own properties of layer l.
func (e *Element) SetLayer(l props.Layer, p props.Properties) {
	e.own[l] = p.Clone()
	e.stale = true
	e.markDirty()
}

// SetProperties replaces the element's base properties.
func (e *Element) SetProperties(p props.Properties) {
	e.SetLayer(props.LayerBase, p)
}

// SetProperty sets one key of layer l. A nil value removes it.
func (e *Element) SetProperty(l props.Layer, key string, value any) {
	if value == nil {
		delete(e.own[l], key)
	} else {
		if e.own[l] == nil {
			e.own[l] = make(props.Properties)
		}
		e.own[l][key] = value
	}
	e.stale = true
	e.markDirty()
}

// SetClasses replaces the theme classes of the element. Own properties
// take precedence over class properties of the same layer.
func (e *Element) SetClasses(classes ...string) error {
	if e.root.theme == nil && len(classes) > 0 {
		return ErrNoTheme
	}
	e.classes = slices.Clone(classes)
	e.stale = true
	e.markDirty()
	// Validate now so the error reaches the caller.
	if len(classes) > 0 {
		return e.root.theme.Apply(props.NewStack(nil), classes...)
	}
	return nil
}

// Classes returns the theme classes of the element.
func (e *Element) Classes() []string { return slices.Clone(e.classes) }

// SetHover toggles the hover layer.
func (e *Element) SetHover(on bool) {
	if e.hover != on {
		e.hover = on
		e.markDirty()
	}
}

// SetActive toggles the active layer.
func (e *Element) SetActive(on bool) {
	if e.active != on {
		e.active = on
		e.markDirty()
	}
}

// SetFocus toggles the focus layer.
func (e *Element) SetFocus(on bool) {
	if e.focus != on {
		e.focus = on
		e.markDirty()
	}
}

// Conditions returns the conditions the element is resolved under.
func (e *Element) Conditions() props.Conditions {
	c := e.root.cond
	c.Hover, c.Active, c.Focus = e.hover, e.active, e.focus
	return c
}

// Properties returns the effective properties of the last frame. The map
// must not be modified.
func (e *Element) Properties() props.Properties {
	return e.stack.Resolved()
}

// Rect returns the computed box relative to the root element.
func (e *Element) Rect() layout.Rect {
	return e.node.Absolute()
}

// SetText replaces the content of a text element.
func (e *Element) SetText(s string) {
	if e.text == nil {
		return
	}
	s = norm.NFC.String(s)
	if s == e.text.content {
		return
	}
	e.text.content = s
	e.text.changed = true
	e.markDirty()
}

// Text returns the content of a text element.
func (e *Element) Text() string {
	if e.text == nil {
		return ""
	}
	return e.text.content
}

// Font returns the font of a text element, or nil while it is loading.
func (e *Element) Font() *text.Font {
	if e.text == nil {
		return nil
	}
	return e.text.font
}

// TextLayout returns the glyph layout of a text element at its computed
// width, or nil.
func (e *Element) TextLayout() *text.GlyphLayout {
	return e.node.TextLayout()
}

// Placements positions the glyphs of a text element inside its content
// box, honoring textAlign and verticalAlign.
func (e *Element) Placements() []text.GlyphPlacement {
	l := e.TextLayout()
	if l == nil {
		return nil
	}
	p := e.stack.Resolved()
	align, _ := text.ParseTextAlign(p.StringOr(props.TextAlign, "left"))
	valign, _ := text.ParseVerticalAlign(p.StringOr(props.VerticalAlign, "top"))
	box := e.node.Content()
	return text.Place(l, box.Width, box.Height, align, valign)
}

// rebuildStack refills the stack from the theme classes and own layers.
func (e *Element) rebuildStack() {
	e.stack.Clear()
	if th := e.root.theme; th != nil && len(e.classes) > 0 {
		if err := th.Apply(e.stack, e.classes...); err != nil {
			Logger().Warn("uikit: classes", "classes", e.classes, "err", err)
		}
	}
	for l, p := range e.own {
		e.stack.Merge(props.Layer(l), p)
	}
}

// update resolves the element and applies changes to its solver node. It
// reports whether any effective property changed.
func (e *Element) update() bool {
	if e.stale {
		e.rebuildStack()
		e.stale = false
	}
	e.dirty = false

	changed := e.stack.Update(e.Conditions())
	textChanged := e.text != nil && (e.text.changed || props.AnyAffectsText(changed))
	if len(changed) == 0 && !textChanged {
		return false
	}
	if props.AnyAffectsLayout(changed) {
		e.node.Apply(e.stack.Resolved())
		e.root.layoutDirty = true
	}
	if textChanged {
		e.syncText()
		e.root.layoutDirty = true
	}
	return len(changed) > 0
}

// syncText rebuilds the glyph properties from the resolved properties and
// requests the font they name.
func (e *Element) syncText() {
	t := e.text
	t.changed = false
	p := e.stack.Resolved()

	weight := text.WeightNormal
	if v, ok := p[props.FontWeight]; ok {
		if w, ok := text.ParseFontWeight(v); ok {
			weight = w
		}
	}
	key := e.root.fontKey(p.StringOr(props.FontFamily, text.DefaultFamily), weight)
	if key != t.fontKey {
		t.handle.Release()
		t.fontKey = key
		t.font = nil
		t.handle = e.root.fonts.Acquire(key, e.setFont)
	}
	e.setGlyphProperties()
}

// setFont receives the font from the cache on the frame loop.
func (e *Element) setFont(f *text.Font) {
	if e.gone || e.text == nil {
		return
	}
	e.text.font = f
	e.setGlyphProperties()
	e.root.layoutDirty = true
}

func (e *Element) setGlyphProperties() {
	p := e.stack.Resolved()
	gp := text.NewGlyphProperties(e.text.content, e.text.font, p.FloatOr(props.FontSize, DefaultFontSize))
	gp.LetterSpacing = p.FloatOr(props.LetterSpacing, 0)
	if v, ok := p[props.LineHeight]; ok {
		if lh, ok := text.ParseLineHeight(v); ok {
			gp.LineHeight = lh
		}
	}
	if s, ok := p.String(props.WordBreak); ok {
		if m, ok := text.ParseWrapMode(s); ok {
			gp.WordBreak = m
		}
	}
	_ = e.node.SetText(e.root.measurer, gp)
}
