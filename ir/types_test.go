// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeObjectSize(t *testing.T) {
	s := NewStruct(1, "S",
		Field{Name: "a", Type: Vector(Float, 3)},
		Field{Name: "b", Type: Matrix(2, 2).WithArraySize(2)},
	)

	tests := []struct {
		name string
		typ  Type
		want int
	}{
		{"float", Scalar(Float), 1},
		{"vec4", Vector(Float, 4), 4},
		{"mat3", Matrix(3, 3), 9},
		{"mat2x4", Matrix(2, 4), 8},
		{"ivec2[3]", Vector(Int, 2).WithArraySize(3), 6},
		{"struct", StructType(s), 11},
		{"struct[2]", StructType(s).WithArraySize(2), 22},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.ObjectSize())
		})
	}
}

func TestTypePredicates(t *testing.T) {
	assert.True(t, Scalar(Int).IsScalarInt())
	assert.True(t, Scalar(UInt).IsScalarInt())
	assert.False(t, Vector(Int, 2).IsScalarInt())
	assert.True(t, Vector(Bool, 2).IsVector())
	assert.False(t, Vector(Bool, 2).IsMatrix())
	assert.True(t, Matrix(4, 3).IsMatrix())
	assert.False(t, Matrix(4, 3).IsVector())
	assert.Equal(t, 4, Matrix(4, 3).Cols())
	assert.Equal(t, 3, Matrix(4, 3).Rows())
	assert.True(t, Scalar(Float).WithArraySize(4).IsAggregate())
	assert.False(t, Scalar(Float).WithArraySize(4).ElementType().IsArray())
}

func TestTypeMangledName(t *testing.T) {
	s := NewStruct(7, "Light", Field{Name: "pos", Type: Vector(Float, 3)}, Field{Name: "on", Type: Scalar(Bool)})

	tests := []struct {
		typ  Type
		want string
	}{
		{Scalar(Float), "f1;"},
		{Vector(Float, 4), "f4;"},
		{Vector(Int, 3), "i3;"},
		{Vector(Bool, 2), "b2;"},
		{Matrix(3, 3), "f3x3;"},
		{Matrix(2, 4), "f2x4;"},
		{Scalar(Sampler2D), "s21;"},
		{Scalar(SamplerCube), "sC1;"},
		{Scalar(SamplerExternalOES), "sext1;"},
		{Scalar(Float).WithArraySize(5), "f1[5];"},
		{StructType(s), "struct-Light-f3-b11;"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.typ.MangledName(), tt.typ.CompleteString())
	}
}

func TestTypeMangledNameIgnoresQualifiers(t *testing.T) {
	a := Vector(Float, 2).WithQualifier(QualUniform).WithPrecision(PrecisionHigh)
	b := Vector(Float, 2)
	assert.Equal(t, a.MangledName(), b.MangledName())
}

func TestTypeCompleteString(t *testing.T) {
	assert.Equal(t, "float", Scalar(Float).CompleteString())
	assert.Equal(t, "4-component vector of float", Vector(Float, 4).CompleteString())
	assert.Equal(t, "const highp 4-component vector of float",
		Vector(Float, 4).WithQualifier(QualConst).WithPrecision(PrecisionHigh).CompleteString())
	assert.Equal(t, "uniform array[2] of 3X3 matrix of float",
		Matrix(3, 3).WithQualifier(QualUniform).WithArraySize(2).CompleteString())
}

func TestStructHelpers(t *testing.T) {
	inner := NewStruct(1, "Inner", Field{Name: "v", Type: Scalar(Float).WithArraySize(2)})
	outer := NewStruct(2, "Outer", Field{Name: "x", Type: Scalar(Int)}, Field{Name: "in", Type: StructType(inner)})

	assert.Equal(t, 1, outer.FieldIndex("in"))
	assert.Equal(t, -1, outer.FieldIndex("missing"))
	assert.True(t, outer.ContainsArrays())
	assert.False(t, NewStruct(3, "Flat", Field{Name: "f", Type: Scalar(Float)}).ContainsArrays())
	assert.Equal(t, 3, outer.ObjectSize())
}

func TestBasicTypeStrings(t *testing.T) {
	assert.Equal(t, "sampler2D", Sampler2D.String())
	assert.Equal(t, "structure", Structure.String())
	assert.True(t, Sampler2DShadow.IsShadowSampler())
	assert.True(t, USampler3D.IsSampler())
	assert.False(t, GSampler2D.IsSampler())
	assert.True(t, GenType.IsGeneric())
	assert.True(t, Sampler2D.SupportsPrecision())
	assert.False(t, Bool.SupportsPrecision())
	assert.Equal(t, "mediump", PrecisionMedium.String())
	assert.Equal(t, "", PrecisionUndefined.String())
	assert.Equal(t, "invariant varying", QualInvariantVaryingOut.String())
	assert.True(t, QualVaryingIn.IsVarying())
	assert.False(t, QualUniform.IsVarying())
}
