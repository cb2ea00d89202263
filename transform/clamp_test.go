// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package transform

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gogpu/translator/ir"
)

func TestMarkIndirectArrayBounds(t *testing.T) {
	i := ir.NewSymbol(1, "i", ir.Scalar(ir.Int))
	arr := ir.NewSymbol(2, "arr", vec4T.WithArraySize(3))
	v := ir.NewSymbol(3, "v", vec4T)

	indirect := ir.NewBinary(ir.OpIndexIndirect, arr, i, vec4T)
	swizzled := ir.NewBinary(ir.OpIndexIndirect, v, i, ir.Scalar(ir.Float))
	direct := ir.NewBinary(ir.OpIndexDirect, arr, ir.NewIntConstant(1), vec4T)
	root, _ := shader(indirect, swizzled, direct)

	c := NewArrayBoundsClamper(ClampWithClampIntrinsic)
	assert.False(t, c.Needed())
	c.MarkIndirectArrayBoundsForClamping(root)

	assert.True(t, c.Needed())
	assert.True(t, indirect.AddIndexClamp)
	assert.True(t, swizzled.AddIndexClamp)
	assert.False(t, direct.AddIndexClamp)
}

func TestOutputClampingFunctionDefinition(t *testing.T) {
	i := ir.NewSymbol(1, "i", ir.Scalar(ir.Int))
	arr := ir.NewSymbol(2, "arr", vec4T.WithArraySize(3))
	root, _ := shader(ir.NewBinary(ir.OpIndexIndirect, arr, i, vec4T))

	var b strings.Builder
	c := NewArrayBoundsClamper(ClampWithUserDefinedIntFunction)
	c.OutputClampingFunctionDefinition(&b)
	assert.Empty(t, b.String(), "nothing is written before marking")

	c.MarkIndirectArrayBoundsForClamping(root)

	c.SetStrategy(ClampWithClampIntrinsic)
	c.OutputClampingFunctionDefinition(&b)
	assert.Empty(t, b.String())

	c.SetStrategy(ClampWithUserDefinedIntFunction)
	c.OutputClampingFunctionDefinition(&b)
	out := b.String()
	assert.True(t, strings.HasPrefix(out, "// BEGIN: Generated code for array bounds clamping\n\n"))
	assert.Contains(t, out, "int webgl_int_clamp(int value, int minValue, int maxValue)")
	assert.True(t, strings.HasSuffix(out, "// END: Generated code for array bounds clamping\n\n"))
}
