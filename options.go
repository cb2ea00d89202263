// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package translator

import (
	"hash/fnv"

	"github.com/gogpu/translator/glsl"
	"github.com/gogpu/translator/transform"
)

// Output is the dialect of the object code.
type Output uint8

const (
	OutputESSL Output = iota
	OutputGLSL
	OutputGLSLCore
	OutputHLSL9
	OutputHLSL11
)

// String returns the output name as accepted by ParseOutput.
func (o Output) String() string {
	switch o {
	case OutputESSL:
		return "essl"
	case OutputGLSL:
		return "glsl"
	case OutputGLSLCore:
		return "glsl-core"
	case OutputHLSL9:
		return "hlsl9"
	case OutputHLSL11:
		return "hlsl11"
	default:
		return "unknown"
	}
}

// ParseOutput returns the output named s.
func ParseOutput(s string) (Output, bool) {
	for o := OutputESSL; o <= OutputHLSL11; o++ {
		if o.String() == s {
			return o, true
		}
	}
	return 0, false
}

// IsHLSL reports whether o is one of the HLSL dialects.
func (o Output) IsHLSL() bool {
	return o == OutputHLSL9 || o == OutputHLSL11
}

// Default limits applied when the corresponding option is enabled with
// a zero maximum.
const (
	DefaultMaxExpressionComplexity = 256
	DefaultMaxCallStackDepth       = 256
)

// CompileOptions selects the passes run by Compile and what it produces.
type CompileOptions struct {
	// IntermediateTree appends a dump of the final tree to the info log.
	IntermediateTree bool

	// ObjectCode writes the translated source.
	ObjectCode bool

	// Variables collects the attributes, uniforms and varyings.
	Variables bool

	// ValidateLoopIndexing enforces the Appendix A restrictions of
	// ES SL 1.00 on loops and indexing. It is always on for the WebGL
	// based specs.
	ValidateLoopIndexing bool

	// LimitExpressionComplexity fails trees nested deeper than
	// MaxExpressionComplexity.
	LimitExpressionComplexity bool
	MaxExpressionComplexity   int

	// LimitCallStackDepth fails call chains of MaxCallStackDepth or
	// more functions. Recursion is always an error.
	LimitCallStackDepth bool
	MaxCallStackDepth   int

	// UnrollForLoopsWithIntegerIndex marks every loop with an int index
	// for unrolling. UnrollForLoopsWithSamplerArrayIndex marks only the
	// loops whose index selects a sampler, and fails if that index is a
	// float.
	UnrollForLoopsWithIntegerIndex      bool
	UnrollForLoopsWithSamplerArrayIndex bool

	// EmulateBuiltInFunctions replaces the built-in functions some
	// drivers get wrong with emulated ones.
	EmulateBuiltInFunctions bool

	// ClampIndirectArrayBounds clamps every dynamic index into range
	// using ClampingStrategy.
	ClampIndirectArrayBounds bool
	ClampingStrategy         transform.ClampingStrategy

	// InitGLPosition assigns zero to gl_Position at the start of a
	// vertex shader main.
	InitGLPosition bool

	// ScalarizeVecAndMatConstructorArgs splits vector arguments of
	// matrix constructors and matrix arguments of vector constructors.
	ScalarizeVecAndMatConstructorArgs bool

	// HashFunction enables identifier hashing in GLSL output.
	HashFunction glsl.HashFunction
}

// DefaultCompileOptions returns the options producing validated object
// code and the variable lists.
func DefaultCompileOptions() CompileOptions {
	return CompileOptions{
		ObjectCode:           true,
		Variables:            true,
		ValidateLoopIndexing: true,
	}
}

// FNVHash hashes name with 64-bit FNV-1a. It can be used as
// CompileOptions.HashFunction.
func FNVHash(name string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return h.Sum64()
}
