package uikit

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/chewxy/math32"

	"github.com/gogpu/uikit/instance"
	"github.com/gogpu/uikit/layout"
	"github.com/gogpu/uikit/props"
	"github.com/gogpu/uikit/text"
	"github.com/gogpu/uikit/theme"
)

// Unconstrained as a viewport dimension lets the content decide the size.
var Unconstrained = math32.NaN()

// DefaultFontSize is the font size of text elements that set none.
const DefaultFontSize = 16

// FrameInfo describes the work done by one Frame.
type FrameInfo struct {
	// Number counts frames from 1.
	Number uint64

	// Posted is the number of posted functions that ran.
	Posted int

	// Resolved is the number of elements whose effective properties changed.
	Resolved int

	// Relayout reports whether the solver ran.
	Relayout bool

	// Evicted is the number of fonts evicted from the font cache.
	Evicted int
}

// Idle reports whether the frame did no work.
func (f FrameInfo) Idle() bool {
	return f.Posted == 0 && f.Resolved == 0 && !f.Relayout
}

type listener struct {
	id uint64
	fn func(FrameInfo)
}

// Root owns an element tree and schedules its work.
//
// Mutating an element only records that something is pending. Frame then
// does the work once, in a fixed order: posted functions, property
// resolution of dirty elements, one solver pass if any layout input
// changed, and finally the frame listeners. Many mutations between two
// frames therefore cost one layout.
//
// Elements and everything but Post belong to the goroutine that calls
// Frame. Other goroutines hand work to it with Post.
type Root struct {
	mu     sync.Mutex
	posted []func()
	closed bool

	cond          props.Conditions
	width, height float32
	customBP      bool

	theme     *theme.Theme
	families  text.FontFamilies
	fonts     *text.FontCache
	ownsFonts bool
	measurer  *text.Measurer

	elem  *Element
	nodes map[*layout.Node]*Element

	pending     bool
	condChanged bool
	layoutDirty bool

	frame      uint64
	listeners  []listener
	listenerID uint64
}

// NewRoot creates a root with an empty container element.
func NewRoot(opts ...Option) *Root {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	r := &Root{
		width:       o.width,
		height:      o.height,
		theme:       o.theme,
		measurer:    o.measurer,
		fonts:       o.fonts,
		nodes:       make(map[*layout.Node]*Element),
		layoutDirty: true,
	}
	if r.measurer == nil {
		r.measurer = text.NewMeasurer()
	}
	if r.fonts == nil {
		fopts := []text.FontCacheOption{text.WithDispatcher(r.Post), text.WithTTL(o.fontTTL)}
		if o.loader != nil {
			fopts = append(fopts, text.WithLoader(o.loader))
		}
		r.fonts = text.NewFontCache(fopts...)
		r.ownsFonts = true
	}
	r.fonts.OnEvict(func(f *text.Font) { r.measurer.Forget(f) })

	r.families = text.FontFamilies{}
	bp := o.breakpoints
	r.customBP = !bp.IsZero()
	if o.theme != nil {
		maps.Copy(r.families, o.theme.FontFamilies())
		if bp.IsZero() {
			bp = o.theme.Breakpoints
		}
	}
	maps.Copy(r.families, o.families)
	r.cond = props.Conditions{Width: o.width, Dark: o.dark, Breakpoints: bp}

	r.elem = r.newElement(nil, false)
	r.elem.mounted = true
	r.pending = true
	return r
}

// Element returns the root container element.
func (r *Root) Element() *Element {
	return r.elem
}

// Theme returns the current theme, or nil.
func (r *Root) Theme() *theme.Theme {
	return r.theme
}

// Fonts returns the font cache.
func (r *Root) Fonts() *text.FontCache {
	return r.fonts
}

// Conditions returns the root-wide conditions: viewport width, dark mode
// and breakpoints. Pointer and focus flags are per element.
func (r *Root) Conditions() props.Conditions {
	return r.cond
}

// Post queues fn to run at the start of the next Frame. Post is safe for
// concurrent use and never blocks. Functions posted after Close are
// dropped.
func (r *Root) Post(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.posted = append(r.posted, fn)
}

// SetViewport sets the available size of the root element. Unconstrained
// leaves a dimension to the content. The width also drives breakpoints.
func (r *Root) SetViewport(width, height float32) {
	if sameFloat(width, r.width) && sameFloat(height, r.height) {
		return
	}
	r.width, r.height = width, height
	r.layoutDirty = true
	if !sameFloat(width, r.cond.Width) {
		r.cond.Width = width
		r.condChanged = true
	}
}

// Viewport returns the available size.
func (r *Root) Viewport() (width, height float32) {
	return r.width, r.height
}

// SetDarkMode toggles the dark layer of every element.
func (r *Root) SetDarkMode(dark bool) {
	if r.cond.Dark == dark {
		return
	}
	r.cond.Dark = dark
	r.condChanged = true
}

// SetTheme replaces the theme. Classes of every element are re-applied
// from the new theme on the next frame. Font families of the old theme
// are replaced by the new theme's, and breakpoints follow the new theme
// unless they were set explicitly.
func (r *Root) SetTheme(t *theme.Theme) {
	old := r.theme
	r.theme = t
	if old != nil {
		for name := range old.FontFamilies() {
			delete(r.families, name)
		}
	}
	if t != nil {
		maps.Copy(r.families, t.FontFamilies())
		if !r.customBP {
			r.cond.Breakpoints = t.Breakpoints
		}
	}
	r.condChanged = true
	r.elem.walk(func(e *Element) bool {
		if len(e.classes) > 0 || e.text != nil {
			e.stale = true
			e.dirty = true
			if e.text != nil {
				e.text.changed = true
			}
		}
		return true
	})
	r.pending = true
}

// WatchTheme reloads the theme file at path whenever it changes and
// applies it on the next frame. It blocks until ctx is done. Failed
// reloads keep the current theme.
func (r *Root) WatchTheme(ctx context.Context, path string) error {
	return theme.Watch(ctx, path, func(t *theme.Theme, err error) {
		if err != nil {
			return
		}
		r.Post(func() { r.SetTheme(t) })
	})
}

// OnFrame registers fn to run at the end of every Frame, after layout.
// It returns a function that removes the listener.
func (r *Root) OnFrame(fn func(FrameInfo)) (remove func()) {
	r.listenerID++
	id := r.listenerID
	r.listeners = append(r.listeners, listener{id: id, fn: fn})
	return func() {
		r.listeners = slices.DeleteFunc(r.listeners, func(l listener) bool { return l.id == id })
	}
}

// Frame runs the pending work and returns what it did.
func (r *Root) Frame() FrameInfo {
	r.frame++
	info := FrameInfo{Number: r.frame}

	r.mu.Lock()
	queue := r.posted
	r.posted = nil
	r.mu.Unlock()
	for _, fn := range queue {
		fn()
	}
	info.Posted = len(queue)

	if r.pending || r.condChanged {
		info.Resolved = r.resolve()
		r.pending = false
		r.condChanged = false
	}

	if r.layoutDirty {
		r.elem.node.Calculate(r.width, r.height)
		r.layoutDirty = false
		info.Relayout = true
	}

	info.Evicted = r.fonts.Evict()

	for _, l := range slices.Clone(r.listeners) {
		l.fn(info)
	}
	if !info.Idle() {
		Logger().Debug("uikit: frame",
			"n", info.Number, "posted", info.Posted,
			"resolved", info.Resolved, "relayout", info.Relayout)
	}
	return info
}

// resolve updates the properties of dirty elements, or of all elements
// when the root conditions changed, in tree order.
func (r *Root) resolve() int {
	n := 0
	r.elem.walk(func(e *Element) bool {
		if e.dirty || r.condChanged {
			if e.update() {
				n++
			}
		}
		return true
	})
	return n
}

// Run calls Frame every interval until ctx is done, then returns the
// context's error.
func (r *Root) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.Frame()
		}
	}
}

// Close unmounts the tree, drops queued functions and closes the font
// cache if the root created it.
func (r *Root) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.posted = nil
	r.mu.Unlock()

	for _, c := range r.elem.Children() {
		c.Unmount()
	}
	if r.ownsFonts {
		return r.fonts.Close()
	}
	return nil
}

// Build adds the panels and glyphs of the mounted tree to b, using the
// geometry of the last frame.
func (r *Root) Build(b *instance.Builder) {
	b.AddTree(r.elem.node, func(n *layout.Node) props.Properties {
		if e, ok := r.nodes[n]; ok {
			return e.stack.Resolved()
		}
		return nil
	})
}

// fontKey resolves the cache key of a family and weight. Families that
// are not configured are used as keys directly.
func (r *Root) fontKey(family string, weight text.FontWeight) string {
	if _, ok := r.families[family]; ok || family == "" || family == text.DefaultFamily {
		if key, ok := r.families.Resolve(family, weight); ok {
			return key
		}
	}
	if family == "" {
		return text.DefaultFamily
	}
	return family
}

// sameFloat compares viewport sizes, treating NaN as equal to NaN.
func sameFloat(a, b float32) bool {
	return a == b || (math32.IsNaN(a) && math32.IsNaN(b))
}
