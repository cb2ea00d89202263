// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/translator/ir"
)

func TestScalarizeVectorFromMatrix(t *testing.T) {
	m := ir.NewSymbol(1, "m", mat2T)
	v := ir.NewSymbol(2, "v", vec4T)
	ctor := ir.NewAggregate(ir.OpConstructVec4, vec4T, m)
	root, body := shader(declaration(v, ctor))

	ids := &counter{}
	s := NewScalarizer(ir.StageFragment, false, ids)
	s.Run(root)

	require.Len(t, body.Sequence, 2)
	assert.Equal(t, 1, s.Temporaries())

	tmp, value := initializer(body.Sequence[0])
	assert.Equal(t, "_webgl_tmp_m0", tmp.Name)
	assert.Equal(t, 1001, tmp.ID)
	assert.Equal(t, ir.PrecisionMedium, tmp.Type().Precision)
	assert.Equal(t, ir.QualTemporary, tmp.Type().Qualifier)
	assert.Same(t, m, value)

	require.Len(t, ctor.Sequence, 4)
	want := [][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	for i, arg := range ctor.Sequence {
		row := arg.(*ir.BinaryNode)
		col := row.Left.(*ir.BinaryNode)
		assert.Equal(t, ir.OpIndexDirect, row.Op)
		assert.Equal(t, ir.OpIndexDirect, col.Op)
		assert.Equal(t, "_webgl_tmp_m0", col.Left.(*ir.SymbolNode).Name)
		assert.Equal(t, want[i][0], col.Right.(*ir.ConstantNode).Values[0].AsInt())
		assert.Equal(t, want[i][1], row.Right.(*ir.ConstantNode).Values[0].AsInt())
		assert.True(t, row.Type().IsScalar())
	}
}

func TestScalarizeMatrixFromVectors(t *testing.T) {
	a := ir.NewSymbol(1, "a", vec2T)
	f := ir.NewSymbol(2, "f", ir.Scalar(ir.Float))
	m := ir.NewSymbol(3, "m", mat2T)
	inc := ir.NewUnary(ir.OpPostIncrement, f, f.Type())
	c := ir.NewConstant(ir.Scalar(ir.Float), ir.FloatValue(1))
	ctor := ir.NewAggregate(ir.OpConstructMat2, mat2T, a, inc, c)
	root, body := shader(declaration(m, ctor))

	NewScalarizer(ir.StageFragment, true, &counter{}).Run(root)

	require.Len(t, body.Sequence, 3)

	tv, _ := initializer(body.Sequence[0])
	tf, value := initializer(body.Sequence[1])
	assert.Equal(t, "_webgl_tmp_v0", tv.Name)
	assert.Equal(t, "_webgl_tmp_f1", tf.Name)
	assert.Equal(t, ir.PrecisionHigh, tv.Type().Precision)
	assert.Same(t, inc, value)

	require.Len(t, ctor.Sequence, 4)
	assert.Equal(t, ir.OpIndexDirect, ctor.Sequence[0].(*ir.BinaryNode).Op)
	assert.Equal(t, ir.OpIndexDirect, ctor.Sequence[1].(*ir.BinaryNode).Op)
	assert.Equal(t, "_webgl_tmp_f1", ctor.Sequence[2].(*ir.SymbolNode).Name)
	assert.Same(t, c, ctor.Sequence[3])
}

func TestScalarizeNestedConstructors(t *testing.T) {
	w := ir.NewSymbol(1, "w", vec4T)
	v := ir.NewSymbol(2, "v", vec2T)
	inner := ir.NewAggregate(ir.OpConstructMat2, mat2T, w)
	outer := ir.NewAggregate(ir.OpConstructVec2, vec2T, inner)
	root, body := shader(declaration(v, outer))

	NewScalarizer(ir.StageVertex, false, &counter{}).Run(root)

	require.Len(t, body.Sequence, 3)
	first, _ := initializer(body.Sequence[0])
	second, value := initializer(body.Sequence[1])
	assert.Equal(t, "_webgl_tmp_v0", first.Name)
	assert.Equal(t, "_webgl_tmp_m1", second.Name)
	assert.Same(t, inner, value)
	assert.Len(t, inner.Sequence, 4)
	assert.Len(t, outer.Sequence, 2)

	// No precision is invented outside fragment shaders.
	assert.Equal(t, ir.PrecisionUndefined, second.Type().Precision)
}

func TestScalarizeLeavesOtherConstructors(t *testing.T) {
	a := ir.NewSymbol(1, "a", vec2T)
	v := ir.NewSymbol(2, "v", vec4T)
	ctor := ir.NewAggregate(ir.OpConstructVec4, vec4T, a, a)
	root, body := shader(declaration(v, ctor))

	s := NewScalarizer(ir.StageFragment, false, &counter{})
	s.Run(root)

	assert.Len(t, body.Sequence, 1)
	assert.Zero(t, s.Temporaries())
	assert.Equal(t, []ir.Node{a, a}, ctor.Sequence)
}

func TestScalarizeTemporariesPerArgument(t *testing.T) {
	f := ir.NewSymbol(1, "f", ir.Scalar(ir.Float))
	g := ir.NewSymbol(2, "g", ir.Scalar(ir.Float))
	m := ir.NewSymbol(3, "m", mat2T)
	v := ir.NewSymbol(4, "v", vec4T)
	inc := ir.NewUnary(ir.OpPreIncrement, f, f.Type())
	ctor := ir.NewAggregate(ir.OpConstructVec4, vec4T, inc, g, m)
	root, body := shader(declaration(v, ctor))

	s := NewScalarizer(ir.StageVertex, false, &counter{})
	s.Run(root)

	// One temporary for the matrix and one keeping the increment in
	// argument order. The plain scalar is used in place.
	assert.Equal(t, 2, s.Temporaries())
	require.Len(t, body.Sequence, 3)

	tf, value := initializer(body.Sequence[0])
	tm, _ := initializer(body.Sequence[1])
	assert.Equal(t, "_webgl_tmp_f0", tf.Name)
	assert.Same(t, inc, value)
	assert.Equal(t, "_webgl_tmp_m1", tm.Name)

	require.Len(t, ctor.Sequence, 4)
	assert.Equal(t, "_webgl_tmp_f0", ctor.Sequence[0].(*ir.SymbolNode).Name)
	assert.Same(t, g, ctor.Sequence[1])
	assert.Equal(t, ir.OpIndexDirect, ctor.Sequence[2].(*ir.BinaryNode).Op)
	assert.Equal(t, ir.OpIndexDirect, ctor.Sequence[3].(*ir.BinaryNode).Op)
}
