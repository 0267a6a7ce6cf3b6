package text

import (
	"errors"
	"fmt"
)

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrUnknownFormat is returned when font data is neither an
	// msdf-bmfont JSON descriptor nor a TrueType/OpenType file.
	ErrUnknownFormat = errors.New("text: unknown font format")

	// ErrFontTooLarge is returned when a fetched font exceeds the size
	// limit.
	ErrFontTooLarge = errors.New("text: font too large")

	// ErrCacheClosed is returned by FontCache operations after Close.
	ErrCacheClosed = errors.New("text: font cache closed")
)

// LoadError is returned when a font cannot be loaded for a cache key.
type LoadError struct {
	Key string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("text: load font %q: %v", e.Key, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
