// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"github.com/gogpu/translator/ir"
)

// Options configures HLSL code generation.
type Options struct {
	// ShaderModel specifies the target shader model.
	ShaderModel ShaderModel

	// Stage is the stage of the shader.
	Stage ir.ShaderStage

	// MaxDrawBuffers sizes the color output array when gl_FragData is
	// written. Defaults to 1 if zero.
	MaxDrawBuffers int
}

// DefaultOptions returns the options of a Shader Model 4.0 vertex shader.
func DefaultOptions() *Options {
	return &Options{
		ShaderModel:    ShaderModel4_0,
		Stage:          ir.StageVertex,
		MaxDrawBuffers: 1,
	}
}

// TranslationInfo contains metadata about the HLSL translation.
type TranslationInfo struct {
	// Profile is the compiler profile the source is written for, e.g.
	// "ps_3_0".
	Profile string

	// EntryPoint is the name of the generated entry point.
	EntryPoint string

	// RegisterBindings maps sampler uniforms to their register.
	// Format: "_name" -> "s0"
	RegisterBindings map[string]string

	// HelperFunctions lists the helper functions that were generated.
	HelperFunctions []string
}

// Compile generates HLSL source code from a shader tree.
// Returns the HLSL source, translation info, or an error.
func Compile(root ir.Node, options *Options) (string, *TranslationInfo, error) {
	if root == nil {
		return "", nil, NewError(ErrInternalError, "tree is nil")
	}

	// Apply defaults for nil options
	if options == nil {
		options = DefaultOptions()
	}
	if !options.ShaderModel.IsValid() {
		return "", nil, NewError(ErrInvalidShaderModel, options.ShaderModel.String())
	}

	w := newWriter(root, options)
	if err := w.writeShader(); err != nil {
		return "", nil, err
	}

	info := &TranslationInfo{
		Profile:          options.ShaderModel.Profile(options.Stage),
		EntryPoint:       entryPointName,
		RegisterBindings: w.registerBindings,
		HelperFunctions:  w.helpers.names(),
	}

	return w.String(), info, nil
}
