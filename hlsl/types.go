// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"strconv"
	"strings"

	"github.com/gogpu/translator/ir"
)

// typeName returns the HLSL spelling of t without array bounds.
//
// GLSL matrices are column major. They are stored transposed, so matCxR
// becomes floatCxR with one HLSL row per GLSL column; the multiplication
// operators transpose accordingly.
func (w *Writer) typeName(n ir.Node, t ir.Type) string {
	if t.Basic.IsSampler() {
		return w.samplerTypeName(n, t)
	}

	var scalar string
	switch t.Basic {
	case ir.Void:
		return "void"
	case ir.Float:
		scalar = "float"
	case ir.Int:
		scalar = "int"
	case ir.UInt:
		if !w.options.ShaderModel.SupportsIntegerOps() {
			w.fail(ErrUnsupportedType, n, "uint requires %s", ShaderModel4_0)
		}
		scalar = "uint"
	case ir.Bool:
		scalar = "bool"
	case ir.Structure:
		if t.Struct == nil || t.Struct.Name == "" {
			w.fail(ErrUnsupportedType, n, "anonymous struct")
			return ""
		}
		return decorate(t.Struct.Name)
	default:
		w.fail(ErrUnsupportedType, n, "type %s", t.Basic)
		return ""
	}

	switch {
	case t.IsMatrix():
		return scalar + strconv.Itoa(t.Cols()) + "x" + strconv.Itoa(t.Rows())
	case t.IsVector():
		return scalar + strconv.Itoa(t.NominalSize())
	default:
		return scalar
	}
}

// samplerTypeName returns the sampler object type of SM3 or the texture
// object type of SM4.
func (w *Writer) samplerTypeName(n ir.Node, t ir.Type) string {
	separate := w.options.ShaderModel.SeparateSamplers()
	switch t.Basic {
	case ir.Sampler2D:
		if separate {
			return "Texture2D"
		}
		return "sampler2D"
	case ir.SamplerCube:
		if separate {
			return "TextureCube"
		}
		return "samplerCUBE"
	default:
		w.fail(ErrUnsupportedType, n, "sampler type %s", t.Basic)
		return ""
	}
}

// arrayBrackets returns "[N]" for the array size of t.
func arrayBrackets(t ir.Type) string {
	return "[" + strconv.Itoa(t.ArraySize) + "]"
}

// zeroValue returns an initializer setting every component of t to
// zero or false.
func zeroValue(t ir.Type) string {
	if t.IsArray() {
		elem := zeroValue(t.ElementType())
		parts := make([]string, t.ArraySize)
		for i := range parts {
			parts[i] = elem
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}

	if t.Basic == ir.Structure && t.Struct != nil {
		return "(" + decorate(t.Struct.Name) + ")0"
	}

	var scalar, zero string
	switch t.Basic {
	case ir.Int:
		scalar, zero = "int", "0"
	case ir.UInt:
		scalar, zero = "uint", "0u"
	case ir.Bool:
		scalar, zero = "bool", "false"
	default:
		scalar, zero = "float", "0.0"
	}

	size := t.ObjectSize()
	if size <= 1 {
		return zero
	}

	parts := make([]string, size)
	for i := range parts {
		parts[i] = zero
	}

	name := scalar + strconv.Itoa(t.NominalSize())
	if t.IsMatrix() {
		name = scalar + strconv.Itoa(t.Cols()) + "x" + strconv.Itoa(t.Rows())
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}

// parameterQualifier returns the HLSL keyword of a parameter qualifier.
func parameterQualifier(q ir.Qualifier) string {
	switch q {
	case ir.QualOut:
		return "out"
	case ir.QualInOut:
		return "inout"
	default:
		return "in"
	}
}

// semanticCount returns the number of consecutive semantic indices a
// stage variable of type t occupies.
func semanticCount(t ir.Type) int {
	n := 1
	if t.IsMatrix() {
		n = t.Cols()
	}
	if t.IsArray() {
		n *= t.ArraySize
	}
	return n
}
