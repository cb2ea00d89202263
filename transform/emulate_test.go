// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package transform

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/translator/ir"
)

func TestEmulatedFunctionName(t *testing.T) {
	assert.Equal(t, "webgl_cos_emu(", EmulatedFunctionName("cos("))
	assert.Panics(t, func() { EmulatedFunctionName("cos") })
}

func TestMarkBuiltInFunctionsForEmulation(t *testing.T) {
	x := ir.NewSymbol(1, "x", ir.Scalar(ir.Float).WithPrecision(ir.PrecisionMedium))
	v := ir.NewSymbol(2, "v", vec2T)

	cosScalar := ir.NewUnary(ir.OpCos, x, x.Type())
	cosVec := ir.NewUnary(ir.OpCos, v, vec2T)
	sinScalar := ir.NewUnary(ir.OpSin, x, x.Type())
	dot := ir.NewAggregate(ir.OpDot, ir.Scalar(ir.Float), x, x)
	dotVec := ir.NewAggregate(ir.OpDot, ir.Scalar(ir.Float), v, v)
	root, _ := shader(cosScalar, dot, cosVec, sinScalar, dotVec)

	e := NewBuiltInFunctionEmulator(ir.StageFragment, EmulateFloatScalarForms)
	e.MarkBuiltInFunctionsForEmulation(root)

	assert.True(t, cosScalar.UseEmulatedFunction)
	assert.True(t, cosVec.UseEmulatedFunction)
	assert.True(t, dot.UseEmulatedFunction)
	assert.False(t, sinScalar.UseEmulatedFunction)
	assert.False(t, dotVec.UseEmulatedFunction)
	assert.Equal(t, 3, e.Called())

	var b strings.Builder
	e.OutputEmulatedFunctionDefinitions(&b, true)
	out := b.String()

	assert.True(t, strings.HasPrefix(out, "// BEGIN: Generated code for built-in function emulation\n\n"+
		"#if defined(GL_FRAGMENT_PRECISION_HIGH)\n"))
	assert.True(t, strings.HasSuffix(out, "// END: Generated code for built-in function emulation\n\n"))

	// Definitions follow the order of the first calls.
	cosAt := strings.Index(out, "float webgl_cos_emu(")
	dotAt := strings.Index(out, "#define webgl_dot_emu(")
	vecAt := strings.Index(out, "vec2 webgl_cos_emu(")
	require.True(t, cosAt > 0 && dotAt > 0 && vecAt > 0)
	assert.Less(t, cosAt, dotAt)
	assert.Less(t, dotAt, vecAt)
}

func TestEmulationDependsOnStage(t *testing.T) {
	x := ir.NewSymbol(1, "x", ir.Scalar(ir.Float))
	cos := ir.NewUnary(ir.OpCos, x, x.Type())
	length := ir.NewUnary(ir.OpLength, x, x.Type())
	root, _ := shader(cos, length)

	e := NewBuiltInFunctionEmulator(ir.StageVertex, EmulateFloatScalarForms)
	e.MarkBuiltInFunctionsForEmulation(root)

	assert.False(t, cos.UseEmulatedFunction)
	assert.True(t, length.UseEmulatedFunction)

	var b strings.Builder
	e.OutputEmulatedFunctionDefinitions(&b, false)
	assert.Contains(t, b.String(), "#define webgl_emu_precision\n\n")
	assert.NotContains(t, b.String(), "GL_FRAGMENT_PRECISION_HIGH")

	e.Cleanup()
	b.Reset()
	e.OutputEmulatedFunctionDefinitions(&b, false)
	assert.Empty(t, b.String())
}

func TestEmulateNoneMarksNothing(t *testing.T) {
	x := ir.NewSymbol(1, "x", ir.Scalar(ir.Float))
	cos := ir.NewUnary(ir.OpCos, x, x.Type())
	root, _ := shader(cos)

	e := NewBuiltInFunctionEmulator(ir.StageFragment, EmulateNone)
	e.MarkBuiltInFunctionsForEmulation(root)

	assert.False(t, cos.UseEmulatedFunction)
	assert.Zero(t, e.Called())
}
