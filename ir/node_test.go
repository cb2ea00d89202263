// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasSideEffects(t *testing.T) {
	x := NewSymbol(1, "x", Scalar(Float))
	one := NewFloatConstant(1)

	assert.False(t, x.HasSideEffects())
	assert.False(t, NewBinary(OpAdd, x, one, Scalar(Float)).HasSideEffects())
	assert.True(t, NewBinary(OpAssign, x, one, Scalar(Float)).HasSideEffects())
	assert.True(t, NewBinary(OpAddAssign, x, one, Scalar(Float)).HasSideEffects())
	assert.True(t, NewBinary(OpInitialize, x, one, Scalar(Float)).HasSideEffects())
	assert.True(t, NewUnary(OpPostIncrement, x, Scalar(Float)).HasSideEffects())
	assert.False(t, NewUnary(OpNegative, x, Scalar(Float)).HasSideEffects())

	call := NewFunctionCall("f(", true, Scalar(Float))
	assert.True(t, call.HasSideEffects())

	builtin := NewFunctionCall("sin(f1;", false, Scalar(Float), x)
	assert.False(t, builtin.HasSideEffects())

	nested := NewBinary(OpMul, NewUnary(OpPreDecrement, x, Scalar(Float)), one, Scalar(Float))
	assert.True(t, nested.HasSideEffects())

	ctor := NewAggregate(OpConstructVec2, Vector(Float, 2), x, call)
	assert.True(t, ctor.HasSideEffects())

	ternary := NewSelection(NewBoolConstant(true), one, NewBinary(OpAssign, x, one, Scalar(Float)), Scalar(Float))
	assert.True(t, ternary.HasSideEffects())
}

func TestReplaceChild(t *testing.T) {
	x := NewSymbol(1, "x", Scalar(Float))
	y := NewSymbol(2, "y", Scalar(Float))
	z := NewSymbol(3, "z", Scalar(Float))

	bin := NewBinary(OpAdd, x, y, Scalar(Float))
	require.True(t, bin.ReplaceChild(y, z))
	assert.Same(t, z, bin.Right)
	assert.False(t, bin.ReplaceChild(y, z))

	agg := NewSequence(x, bin)
	require.True(t, agg.ReplaceChild(bin, y))
	assert.Equal(t, []Node{x, y}, agg.Sequence)

	loop := NewLoop(LoopWhile, nil, x, nil, NewSequence())
	require.True(t, loop.ReplaceChild(x, z))
	assert.Same(t, z, loop.Condition)

	sel := NewSelection(x, y, nil, VoidType())
	require.True(t, sel.ReplaceChild(y, z))
	assert.Same(t, z, sel.TrueBlock)

	br := NewBranch(OpReturn, x)
	require.True(t, br.ReplaceChild(x, y))
	assert.Same(t, y, br.Expression)

	assert.False(t, x.ReplaceChild(y, z))
}

func TestReplaceTypedChildWithStatementPanics(t *testing.T) {
	x := NewSymbol(1, "x", Scalar(Float))
	un := NewUnary(OpNegative, x, Scalar(Float))

	assert.Panics(t, func() {
		un.ReplaceChild(x, NewBranch(OpBreak, nil))
	})
}

func TestEnqueueChildren(t *testing.T) {
	x := NewSymbol(1, "x", Scalar(Int))
	cond := NewBinary(OpLessThan, x, NewIntConstant(4), Scalar(Bool))
	body := NewSequence()
	loop := NewLoop(LoopFor, nil, cond, nil, body)

	assert.Equal(t, []Node{cond, body}, loop.EnqueueChildren(nil))
	assert.Equal(t, []Node{x, cond.Right}, cond.EnqueueChildren(nil))
	assert.Empty(t, x.EnqueueChildren(nil))
}

func TestSelectionUsesTernaryOperator(t *testing.T) {
	c := NewBoolConstant(true)
	assert.False(t, NewSelection(c, NewSequence(), nil, VoidType()).UsesTernaryOperator())
	assert.True(t, NewSelection(c, NewFloatConstant(1), NewFloatConstant(0), Scalar(Float)).UsesTernaryOperator())
}

func TestSwizzleAndFieldAccess(t *testing.T) {
	v := NewSymbol(1, "v", Vector(Float, 4).WithPrecision(PrecisionMedium))
	sw := NewSwizzle(v, 0, 2)

	assert.Equal(t, OpVectorSwizzle, sw.Op)
	assert.Equal(t, 2, sw.Type().NominalSize())
	assert.Equal(t, PrecisionMedium, sw.Type().Precision)
	require.IsType(t, &AggregateNode{}, sw.Right)
	assert.Len(t, sw.Right.(*AggregateNode).Sequence, 2)

	s := NewStruct(5, "S", Field{Name: "a", Type: Scalar(Int)}, Field{Name: "b", Type: Vector(Float, 3)})
	str := NewSymbol(2, "s", StructType(s).WithQualifier(QualUniform))
	fa := NewFieldAccess(str, 1)

	assert.Equal(t, OpIndexDirectStruct, fa.Op)
	assert.Equal(t, 3, fa.Type().NominalSize())
	assert.Equal(t, QualTemporary, fa.Type().Qualifier)
}
