package theme

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"sync"
)

//go:embed themes
var bundledFS embed.FS

var (
	bundledMu    sync.Mutex
	bundledCache = map[string]*Theme{}
)

// Bundled returns one of the embedded themes: "default", "apfel" or
// "horizon". The returned theme is shared and must not be modified.
func Bundled(name string) (*Theme, error) {
	bundledMu.Lock()
	defer bundledMu.Unlock()
	if t, ok := bundledCache[name]; ok {
		return t, nil
	}

	entries, err := fs.ReadDir(bundledFS, "themes")
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		file := e.Name()
		if strings.TrimSuffix(file, path.Ext(file)) != name {
			continue
		}
		format, err := FormatOf(file)
		if err != nil {
			return nil, err
		}
		data, err := bundledFS.ReadFile(path.Join("themes", file))
		if err != nil {
			return nil, err
		}
		t, err := Parse(data, format)
		if err != nil {
			return nil, fmt.Errorf("bundled %s: %w", name, err)
		}
		if t.Name == "" {
			t.Name = name
		}
		bundledCache[name] = t
		return t, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
}

// BundledNames lists the embedded themes.
func BundledNames() []string {
	entries, err := fs.ReadDir(bundledFS, "themes")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	slices.Sort(names)
	return names
}
