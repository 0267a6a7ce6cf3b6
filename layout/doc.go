// Package layout bridges element trees to a flexbox solver
// (github.com/kjk/flex, a Go port of Yoga).
//
// Each element owns one Node. Apply translates the element's resolved
// property snapshot into solver styles; text elements register their
// glyph layout with SetText so the solver can negotiate their intrinsic
// size. After Calculate on the root, Relative and Absolute read back the
// computed boxes.
//
// The solver predates CSS gap. Gap is emulated by adding the main-axis gap
// to the leading margin of every in-flow child after the first; the
// cross-axis gap between wrapped lines is not emulated.
//
// Nodes are inert once destroyed, and so are their descendants, so late
// updates racing an unmount are harmless.
package layout
