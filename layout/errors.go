package layout

import "errors"

// Sentinel errors for layout package.
var (
	// ErrTextNode is returned when children are added to a text node or a
	// node with children is turned into a text node.
	ErrTextNode = errors.New("layout: text nodes cannot have children")

	// ErrCycle is returned when a node would become its own descendant.
	ErrCycle = errors.New("layout: node cannot be inserted into its own subtree")
)
