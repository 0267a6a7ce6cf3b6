package instance

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/gogpu/naga"
)

//go:embed shaders/panel.wgsl
var panelShaderSource string

//go:embed shaders/glyph.wgsl
var glyphShaderSource string

// Shader identifies a bundled WGSL program. Both programs have the entry
// points vs_main and fs_main.
type Shader uint8

const (
	// ShaderPanel draws PanelInstance records.
	ShaderPanel Shader = iota
	// ShaderGlyph draws GlyphInstance records from an MSDF atlas.
	ShaderGlyph
)

// String returns the shader name.
func (s Shader) String() string {
	switch s {
	case ShaderPanel:
		return "panel"
	case ShaderGlyph:
		return "glyph"
	default:
		return "unknown"
	}
}

// Source returns the WGSL source of s, or "" for an unknown shader.
func (s Shader) Source() string {
	switch s {
	case ShaderPanel:
		return panelShaderSource
	case ShaderGlyph:
		return glyphShaderSource
	default:
		return ""
	}
}

type compiled struct {
	once  sync.Once
	spirv []uint32
	err   error
}

var spirvCache [2]compiled

// SPIRV compiles the shader to SPIR-V words. The result is computed once
// per process.
func (s Shader) SPIRV() ([]uint32, error) {
	if int(s) >= len(spirvCache) {
		return nil, fmt.Errorf("instance: unknown shader %d", s)
	}
	c := &spirvCache[s]
	c.once.Do(func() {
		c.spirv, c.err = compileSPIRV(s.Source())
		if c.err != nil {
			c.err = fmt.Errorf("compile %s shader: %w", s, c.err)
			return
		}
		slogger().Debug("instance: shader compiled", "shader", s.String(), "words", len(c.spirv))
	})
	return c.spirv, c.err
}

// compileSPIRV compiles WGSL and converts the little-endian SPIR-V bytes
// to words.
func compileSPIRV(wgsl string) ([]uint32, error) {
	b, err := naga.Compile(wgsl)
	if err != nil {
		return nil, err
	}
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("spirv length %d is not a multiple of 4", len(b))
	}
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return words, nil
}
