package uikit

import (
	"time"

	"github.com/gogpu/uikit/props"
	"github.com/gogpu/uikit/text"
	"github.com/gogpu/uikit/theme"
)

// Option configures a Root during creation.
//
// Example:
//
//	kit, _ := theme.Bundled("apfel")
//	r := uikit.NewRoot(
//	    uikit.WithViewport(1280, 720),
//	    uikit.WithTheme(kit),
//	)
type Option func(*rootOptions)

// rootOptions holds optional configuration for Root creation.
type rootOptions struct {
	width, height float32
	dark          bool
	breakpoints   props.Breakpoints
	theme         *theme.Theme
	families      text.FontFamilies
	fonts         *text.FontCache
	fontTTL       time.Duration
	loader        text.Loader
	measurer      *text.Measurer
}

// defaultOptions returns the default root options: an unconstrained
// viewport, light mode and the default breakpoints.
func defaultOptions() rootOptions {
	return rootOptions{
		width:   Unconstrained,
		height:  Unconstrained,
		fontTTL: text.DefaultFontTTL,
	}
}

// WithViewport sets the initial viewport size in layout pixels.
// Unconstrained leaves a dimension to the content.
func WithViewport(width, height float32) Option {
	return func(o *rootOptions) {
		o.width, o.height = width, height
	}
}

// WithDarkMode enables the dark layer from the first frame.
func WithDarkMode(dark bool) Option {
	return func(o *rootOptions) {
		o.dark = dark
	}
}

// WithBreakpoints overrides the responsive thresholds. They take
// precedence over the theme's breakpoints.
func WithBreakpoints(b props.Breakpoints) Option {
	return func(o *rootOptions) {
		o.breakpoints = b
	}
}

// WithTheme sets the theme whose classes elements can use and whose font
// families resolve fontFamily and fontWeight.
func WithTheme(t *theme.Theme) Option {
	return func(o *rootOptions) {
		o.theme = t
	}
}

// WithFontFamilies adds font families. They take precedence over the
// theme's families of the same name.
func WithFontFamilies(f text.FontFamilies) Option {
	return func(o *rootOptions) {
		o.families = f
	}
}

// WithFontCache shares an existing font cache. Its callbacks must be
// delivered on the frame loop, see text.WithDispatcher and Root.Post.
// The root does not close a shared cache.
func WithFontCache(c *text.FontCache) Option {
	return func(o *rootOptions) {
		o.fonts = c
	}
}

// WithFontLoader sets the loader of the root's own font cache.
func WithFontLoader(l text.Loader) Option {
	return func(o *rootOptions) {
		o.loader = l
	}
}

// WithFontTTL sets how long unreferenced fonts stay in the root's own
// font cache.
func WithFontTTL(ttl time.Duration) Option {
	return func(o *rootOptions) {
		o.fontTTL = ttl
	}
}

// WithMeasurer shares a text measurement cache between roots.
func WithMeasurer(m *text.Measurer) Option {
	return func(o *rootOptions) {
		o.measurer = m
	}
}
