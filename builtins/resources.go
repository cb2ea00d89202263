// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package builtins

import (
	"io"

	"gopkg.in/yaml.v3"
	"tlog.app/go/errors"
)

// Resources describes the implementation limits and the optional
// extensions of the driver a shader is translated for.
//
// Resources is comparable and is used as a cache key.
type Resources struct {
	MaxVertexAttribs             int `yaml:"max_vertex_attribs"`
	MaxVertexUniformVectors      int `yaml:"max_vertex_uniform_vectors"`
	MaxVaryingVectors            int `yaml:"max_varying_vectors"`
	MaxVertexTextureImageUnits   int `yaml:"max_vertex_texture_image_units"`
	MaxCombinedTextureImageUnits int `yaml:"max_combined_texture_image_units"`
	MaxTextureImageUnits         int `yaml:"max_texture_image_units"`
	MaxFragmentUniformVectors    int `yaml:"max_fragment_uniform_vectors"`
	MaxDrawBuffers               int `yaml:"max_draw_buffers"`

	// ES SL 3.00 limits.
	MaxVertexOutputVectors  int `yaml:"max_vertex_output_vectors"`
	MaxFragmentInputVectors int `yaml:"max_fragment_input_vectors"`
	MinProgramTexelOffset   int `yaml:"min_program_texel_offset"`
	MaxProgramTexelOffset   int `yaml:"max_program_texel_offset"`

	// Extensions. Set to true to make the extension available.
	OESStandardDerivatives bool `yaml:"oes_standard_derivatives"`
	OESEGLImageExternal    bool `yaml:"oes_egl_image_external"`
	ARBTextureRectangle    bool `yaml:"arb_texture_rectangle"`
	EXTDrawBuffers         bool `yaml:"ext_draw_buffers"`
	EXTFragDepth           bool `yaml:"ext_frag_depth"`
	EXTShaderTextureLOD    bool `yaml:"ext_shader_texture_lod"`

	// NVDrawBuffers makes GL_EXT_draw_buffers be written as
	// GL_NV_draw_buffers in ES SL output.
	NVDrawBuffers bool `yaml:"nv_draw_buffers"`

	// FragmentPrecisionHigh is set when highp is supported in fragment
	// shaders.
	FragmentPrecisionHigh bool `yaml:"fragment_precision_high"`
}

// DefaultResources returns the minimum limits required by OpenGL ES 2.0
// with every extension disabled.
func DefaultResources() Resources {
	return Resources{
		MaxVertexAttribs:             8,
		MaxVertexUniformVectors:      128,
		MaxVaryingVectors:            8,
		MaxVertexTextureImageUnits:   0,
		MaxCombinedTextureImageUnits: 8,
		MaxTextureImageUnits:         8,
		MaxFragmentUniformVectors:    16,
		MaxDrawBuffers:               1,

		MaxVertexOutputVectors:  16,
		MaxFragmentInputVectors: 15,
		MinProgramTexelOffset:   -8,
		MaxProgramTexelOffset:   7,
	}
}

// LoadResources reads YAML from r over the default resources. Keys that
// are not present keep their default value.
func LoadResources(r io.Reader) (Resources, error) {
	res := DefaultResources()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	err := dec.Decode(&res)
	if errors.Is(err, io.EOF) {
		return res, nil
	}
	if err != nil {
		return Resources{}, errors.Wrap(err, "decode resources")
	}

	if err := res.Validate(); err != nil {
		return Resources{}, err
	}

	return res, nil
}

// Validate checks the limits for values no driver can report.
func (r Resources) Validate() error {
	if r.MaxDrawBuffers < 1 {
		return errors.New("max_draw_buffers must be at least 1, got %d", r.MaxDrawBuffers)
	}
	if r.MinProgramTexelOffset > r.MaxProgramTexelOffset {
		return errors.New("min_program_texel_offset %d exceeds max_program_texel_offset %d",
			r.MinProgramTexelOffset, r.MaxProgramTexelOffset)
	}

	for _, l := range []struct {
		name string
		v    int
	}{
		{"max_vertex_attribs", r.MaxVertexAttribs},
		{"max_vertex_uniform_vectors", r.MaxVertexUniformVectors},
		{"max_varying_vectors", r.MaxVaryingVectors},
		{"max_vertex_texture_image_units", r.MaxVertexTextureImageUnits},
		{"max_combined_texture_image_units", r.MaxCombinedTextureImageUnits},
		{"max_texture_image_units", r.MaxTextureImageUnits},
		{"max_fragment_uniform_vectors", r.MaxFragmentUniformVectors},
	} {
		if l.v < 0 {
			return errors.New("%s must not be negative, got %d", l.name, l.v)
		}
	}

	return nil
}
