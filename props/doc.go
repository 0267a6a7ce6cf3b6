// Package props resolves the effective properties of an element from its
// layered overrides.
//
// Every element owns a Stack of partial property maps, one per Layer:
//
//	base → sm → md → lg → xl → 2xl → dark → hover → active → focus → inline
//
// Breakpoint layers are active when the viewport is at least as wide as
// their threshold; the others follow the dark-mode, pointer and focus
// flags of Conditions. Resolution reduces the active layers left to
// right, last write wins per key:
//
//	s := props.NewStack(props.Properties{"padding": 8, "color": "#333"})
//	s.Set(props.LayerMD, props.Properties{"padding": 16})
//	s.Set(props.LayerHover, props.Properties{"color": "#000"})
//
//	s.Update(props.Conditions{Width: 800})              // [color padding]
//	s.Update(props.Conditions{Width: 800, Hover: true}) // [color]
//
// Update returns exactly the keys whose effective value changed, which the
// caller uses to decide whether layout must be recomputed (AffectsLayout).
package props
