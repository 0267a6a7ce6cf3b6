package uikit

import (
	"errors"

	"github.com/gogpu/uikit/layout"
)

// Sentinel errors for element tree operations.
var (
	// ErrTextElement is returned when adding children to a text element.
	ErrTextElement = layout.ErrTextNode

	// ErrForeignElement is returned when elements of different roots are
	// combined.
	ErrForeignElement = errors.New("uikit: element belongs to another root")

	// ErrUnmounted is returned when operating on an unmounted element.
	ErrUnmounted = errors.New("uikit: element is unmounted")

	// ErrCycle is returned when an element would become its own ancestor.
	ErrCycle = layout.ErrCycle

	// ErrNoTheme is returned when classes are used on a root without a theme.
	ErrNoTheme = errors.New("uikit: no theme")
)
