// Package theme loads the styling tables of widget kits.
//
// A theme file, in TOML or YAML, defines responsive breakpoints, a color
// palette, font families and style classes. A class contributes partial
// properties to one or more layers of an element's props.Stack:
//
//	[classes.button.base]
//	height = 40
//	backgroundColor = "$primary"
//
//	[classes.button.hover]
//	backgroundOpacity = 0.9
//
// The "default", "apfel" and "horizon" themes are embedded; see Bundled.
// Watcher reloads a theme file when it changes on disk.
package theme
