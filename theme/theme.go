package theme

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/uikit/props"
	"github.com/gogpu/uikit/text"
)

// Sentinel errors for theme package.
var (
	// ErrUnknownFormat is returned for theme files that are neither TOML
	// nor YAML.
	ErrUnknownFormat = errors.New("theme: unknown format")

	// ErrUnknownClass is returned by Apply for class names the theme does
	// not define.
	ErrUnknownClass = errors.New("theme: unknown class")

	// ErrUnknownTheme is returned by Bundled for names without an
	// embedded theme.
	ErrUnknownTheme = errors.New("theme: unknown bundled theme")
)

// ValidationError reports an invalid entry of a theme file.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("theme: invalid %s: %s", e.Field, e.Reason)
}

// Format is a theme file encoding.
type Format uint8

const (
	// FormatTOML decodes with github.com/pelletier/go-toml/v2.
	FormatTOML Format = iota
	// FormatYAML decodes with gopkg.in/yaml.v3.
	FormatYAML
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "TOML"
	case FormatYAML:
		return "YAML"
	default:
		return "Unknown"
	}
}

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Class maps layer names ("", "base", "md", "dark", "hover", ...) to the
// partial properties the class contributes on that layer.
type Class map[string]props.Properties

// Theme is a named set of styling data for a widget kit.
type Theme struct {
	Name string `toml:"name" yaml:"name"`

	// Breakpoints overrides the default responsive thresholds.
	Breakpoints props.Breakpoints `toml:"breakpoints" yaml:"breakpoints"`

	// Colors is a palette; string values "$name" in classes refer to it.
	Colors map[string]string `toml:"colors" yaml:"colors"`

	// Fonts maps family → weight ("400", "bold") → font location.
	Fonts map[string]map[string]string `toml:"fonts" yaml:"fonts"`

	// Classes are the style classes elements reference by name.
	Classes map[string]Class `toml:"classes" yaml:"classes"`
}

// Parse decodes and validates a theme.
func Parse(data []byte, format Format) (*Theme, error) {
	var t Theme
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &t)
	case FormatYAML:
		err = yaml.Unmarshal(data, &t)
	default:
		return nil, ErrUnknownFormat
	}
	if err != nil {
		return nil, fmt.Errorf("theme: decode %s: %w", format, err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Load reads a theme file; the format follows the extension.
func Load(path string) (*Theme, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	// #nosec G304 -- theme path is provided by the application
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	t, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if t.Name == "" {
		t.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return t, nil
}

// Validate checks layer names, font weights, palette references and that
// breakpoints ascend.
func (t *Theme) Validate() error {
	if !t.Breakpoints.IsZero() {
		b := t.Breakpoints
		if b.SM >= b.MD || b.MD >= b.LG || b.LG >= b.XL || b.XL >= b.XXL {
			return &ValidationError{Field: "breakpoints", Reason: "must ascend sm < md < lg < xl < 2xl"}
		}
	}
	for family, weights := range t.Fonts {
		for w := range weights {
			if _, ok := text.ParseFontWeight(w); !ok {
				return &ValidationError{Field: "fonts." + family, Reason: fmt.Sprintf("bad weight %q", w)}
			}
		}
	}
	for name, class := range t.Classes {
		for layer, p := range class {
			if _, ok := props.ParseLayer(layer); !ok && layer != "base" {
				return &ValidationError{Field: "classes." + name, Reason: fmt.Sprintf("unknown layer %q", layer)}
			}
			for key, v := range p {
				s, ok := v.(string)
				if !ok || !strings.HasPrefix(s, "$") {
					continue
				}
				if _, ok := t.Colors[s[1:]]; !ok {
					return &ValidationError{Field: "classes." + name + "." + key, Reason: fmt.Sprintf("unknown color %q", s)}
				}
			}
		}
	}
	return nil
}

// FontFamilies converts the font table for text.FontFamilies.Resolve.
func (t *Theme) FontFamilies() text.FontFamilies {
	out := make(text.FontFamilies, len(t.Fonts))
	for family, weights := range t.Fonts {
		m := make(map[text.FontWeight]string, len(weights))
		for w, loc := range weights {
			if fw, ok := text.ParseFontWeight(w); ok {
				m[fw] = loc
			}
		}
		out[family] = m
	}
	return out
}

// ClassNames returns the defined class names in order.
func (t *Theme) ClassNames() []string {
	return slices.Sorted(maps.Keys(t.Classes))
}

// Layers returns the partial properties class contributes per layer, with
// palette references resolved.
func (t *Theme) Layers(class string) (map[props.Layer]props.Properties, bool) {
	c, ok := t.Classes[class]
	if !ok {
		return nil, false
	}
	out := make(map[props.Layer]props.Properties, len(c))
	for name, p := range c {
		if name == "base" {
			name = ""
		}
		l, ok := props.ParseLayer(name)
		if !ok {
			continue
		}
		dst := out[l]
		if dst == nil {
			dst = make(props.Properties, len(p))
			out[l] = dst
		}
		for k, v := range p {
			dst[k] = t.color(v)
		}
	}
	return out, true
}

// color resolves "$name" palette references.
func (t *Theme) color(v any) any {
	s, ok := v.(string)
	if !ok || !strings.HasPrefix(s, "$") {
		return v
	}
	if c, ok := t.Colors[s[1:]]; ok {
		return c
	}
	return v
}

// Apply merges classes, in order, into the layers of s. Later classes win
// over earlier ones on the same layer. Unknown classes are skipped and
// reported together.
func (t *Theme) Apply(s *props.Stack, classes ...string) error {
	var errs []error
	for _, name := range classes {
		layers, ok := t.Layers(name)
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownClass, name))
			continue
		}
		for l := range props.NumLayers {
			if p, ok := layers[props.Layer(l)]; ok {
				s.Merge(props.Layer(l), p)
			}
		}
	}
	return errors.Join(errs...)
}

// ApplyString applies a space separated class list, as written in markup.
func (t *Theme) ApplyString(s *props.Stack, classes string) error {
	return t.Apply(s, strings.Fields(classes)...)
}
