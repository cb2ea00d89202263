// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ir

import (
	"strconv"
	"strings"
)

// Type is the full type of a typed node or a symbol.
//
// PrimarySize is the component count of a vector or the column count of a
// matrix; SecondarySize is the row count of a matrix and 1 otherwise.
// ArraySize is 0 for non-array types.
type Type struct {
	Basic         BasicType
	Precision     Precision
	Qualifier     Qualifier
	Invariant     bool
	Layout        LayoutQualifier
	PrimarySize   uint8
	SecondarySize uint8
	ArraySize     int

	Struct *Struct
	Block  *InterfaceBlock
}

// Scalar returns a temporary scalar type.
func Scalar(basic BasicType) Type {
	return Type{Basic: basic, PrimarySize: 1, SecondarySize: 1}
}

// Vector returns a temporary vector type with size components.
func Vector(basic BasicType, size uint8) Type {
	return Type{Basic: basic, PrimarySize: size, SecondarySize: 1}
}

// Matrix returns a temporary float matrix type.
func Matrix(cols, rows uint8) Type {
	return Type{Basic: Float, PrimarySize: cols, SecondarySize: rows}
}

// StructType returns a temporary type referring to s.
func StructType(s *Struct) Type {
	return Type{Basic: Structure, PrimarySize: 1, SecondarySize: 1, Struct: s}
}

// VoidType returns the void type.
func VoidType() Type {
	return Type{Basic: Void, PrimarySize: 1, SecondarySize: 1}
}

// WithQualifier returns a copy of t with qualifier q.
func (t Type) WithQualifier(q Qualifier) Type {
	t.Qualifier = q
	return t
}

// WithPrecision returns a copy of t with precision p.
func (t Type) WithPrecision(p Precision) Type {
	t.Precision = p
	return t
}

// WithArraySize returns a copy of t as an array of size elements.
func (t Type) WithArraySize(size int) Type {
	t.ArraySize = size
	return t
}

// ElementType returns the type of one element of an array type.
func (t Type) ElementType() Type {
	t.ArraySize = 0
	return t
}

// Cols returns the column count of a matrix.
func (t Type) Cols() int { return int(t.PrimarySize) }

// Rows returns the row count of a matrix.
func (t Type) Rows() int { return int(t.SecondarySize) }

// NominalSize returns the component count of a vector, or the column
// count of a matrix.
func (t Type) NominalSize() int { return int(t.PrimarySize) }

// IsArray reports whether t is an array type.
func (t Type) IsArray() bool { return t.ArraySize > 0 }

// IsMatrix reports whether t is a matrix type.
func (t Type) IsMatrix() bool { return t.SecondarySize > 1 }

// IsVector reports whether t is a vector type.
func (t Type) IsVector() bool { return t.PrimarySize > 1 && t.SecondarySize <= 1 }

// IsScalar reports whether t is a single scalar component.
func (t Type) IsScalar() bool {
	return t.PrimarySize <= 1 && t.SecondarySize <= 1 && t.Struct == nil && !t.IsArray() &&
		t.Basic != Structure && t.Basic != UniformBlock
}

// IsScalarInt reports whether t is a scalar int or uint.
func (t Type) IsScalarInt() bool {
	return t.IsScalar() && (t.Basic == Int || t.Basic == UInt)
}

// IsAggregate reports whether t is an array or a struct.
func (t Type) IsAggregate() bool {
	return t.IsArray() || t.Basic == Structure
}

// ObjectSize returns the number of scalar components in t.
func (t Type) ObjectSize() int {
	var size int
	if t.Basic == Structure && t.Struct != nil {
		size = t.Struct.ObjectSize()
	} else {
		size = int(max8(t.PrimarySize, 1)) * int(max8(t.SecondarySize, 1))
	}
	if t.IsArray() {
		size *= t.ArraySize
	}
	return size
}

func max8(a, b uint8) uint8 {
	if a > b {
		return a
	}
	return b
}

// SameShape reports whether a and b describe the same value type,
// ignoring qualifier, precision, invariance and layout.
func SameShape(a, b Type) bool {
	return a.Basic == b.Basic && a.PrimarySize == b.PrimarySize && a.SecondarySize == b.SecondarySize &&
		a.ArraySize == b.ArraySize && a.Struct == b.Struct && a.Block == b.Block
}

// MangledName returns the encoding of t used in function signatures.
// Each encoded parameter is terminated by ';'.
func (t Type) MangledName() string {
	var b strings.Builder
	t.writeMangled(&b)
	b.WriteByte(';')
	return b.String()
}

func (t Type) writeMangled(b *strings.Builder) {
	switch t.Basic {
	case Float:
		b.WriteByte('f')
	case Int:
		b.WriteByte('i')
	case UInt:
		b.WriteByte('u')
	case Bool:
		b.WriteByte('b')
	case Sampler2D:
		b.WriteString("s2")
	case Sampler3D:
		b.WriteString("s3")
	case SamplerCube:
		b.WriteString("sC")
	case Sampler2DArray:
		b.WriteString("s2a")
	case SamplerExternalOES:
		b.WriteString("sext")
	case Sampler2DRect:
		b.WriteString("s2r")
	case ISampler2D:
		b.WriteString("is2")
	case ISampler3D:
		b.WriteString("is3")
	case ISamplerCube:
		b.WriteString("isC")
	case ISampler2DArray:
		b.WriteString("is2a")
	case USampler2D:
		b.WriteString("us2")
	case USampler3D:
		b.WriteString("us3")
	case USamplerCube:
		b.WriteString("usC")
	case USampler2DArray:
		b.WriteString("us2a")
	case Sampler2DShadow:
		b.WriteString("s2s")
	case SamplerCubeShadow:
		b.WriteString("sCs")
	case Sampler2DArrayShadow:
		b.WriteString("s2as")
	case Structure:
		if t.Struct != nil {
			b.WriteString(t.Struct.MangledName())
		}
	case UniformBlock:
		if t.Block != nil {
			b.WriteString("iblock-")
			b.WriteString(t.Block.Name)
		}
	default:
		b.WriteString(t.Basic.String())
	}

	if t.IsMatrix() {
		b.WriteByte(byte('0' + t.PrimarySize))
		b.WriteByte('x')
		b.WriteByte(byte('0' + t.SecondarySize))
	} else {
		b.WriteByte(byte('0' + max8(t.PrimarySize, 1)))
	}

	if t.IsArray() {
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(t.ArraySize))
		b.WriteByte(']')
	}
}

// CompleteString returns a human readable description used in
// diagnostics, e.g. "const mediump 4-component vector of float".
func (t Type) CompleteString() string {
	var b strings.Builder
	if t.Qualifier != QualTemporary && t.Qualifier != QualGlobal {
		b.WriteString(t.Qualifier.String())
		b.WriteByte(' ')
		if p := t.Precision.String(); p != "" {
			b.WriteString(p)
			b.WriteByte(' ')
		}
	}
	if t.IsArray() {
		b.WriteString("array[")
		b.WriteString(strconv.Itoa(t.ArraySize))
		b.WriteString("] of ")
	}
	if t.IsMatrix() {
		b.WriteString(strconv.Itoa(t.Cols()))
		b.WriteByte('X')
		b.WriteString(strconv.Itoa(t.Rows()))
		b.WriteString(" matrix of ")
	} else if t.IsVector() {
		b.WriteString(strconv.Itoa(t.NominalSize()))
		b.WriteString("-component vector of ")
	}
	b.WriteString(t.Basic.String())
	return b.String()
}

// Field is one member of a struct or an interface block.
type Field struct {
	Name string
	Type Type
	Line SourceLoc
}

// Struct is a structure definition. ID is unique within one symbol table
// and survives tree copies, so passes track "already declared" by it.
type Struct struct {
	Name   string
	Fields []Field
	ID     int
}

// NewStruct creates a struct definition with the given unique id.
func NewStruct(id int, name string, fields ...Field) *Struct {
	return &Struct{Name: name, Fields: fields, ID: id}
}

// ObjectSize returns the total scalar component count of all fields.
func (s *Struct) ObjectSize() int {
	size := 0
	for i := range s.Fields {
		size += s.Fields[i].Type.ObjectSize()
	}
	return size
}

// FieldIndex returns the index of the named field, or -1.
func (s *Struct) FieldIndex(name string) int {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return i
		}
	}
	return -1
}

// ContainsArrays reports whether any field, directly or through a nested
// struct, is an array.
func (s *Struct) ContainsArrays() bool {
	for i := range s.Fields {
		ft := s.Fields[i].Type
		if ft.IsArray() {
			return true
		}
		if ft.Struct != nil && ft.Struct.ContainsArrays() {
			return true
		}
	}
	return false
}

// MangledName returns the signature encoding of the struct.
func (s *Struct) MangledName() string {
	var b strings.Builder
	b.WriteString("struct-")
	b.WriteString(s.Name)
	for i := range s.Fields {
		b.WriteByte('-')
		s.Fields[i].Type.writeMangled(&b)
	}
	return b.String()
}

// InterfaceBlock is a uniform block declaration (ES SL 3.00).
type InterfaceBlock struct {
	Name          string
	InstanceName  string
	ArraySize     int
	Fields        []Field
	BlockStorage  BlockStorage
	MatrixPacking MatrixPacking
	ID            int
}

// HasInstanceName reports whether the block was declared with an
// instance name, in which case members are reached through it.
func (b *InterfaceBlock) HasInstanceName() bool {
	return b.InstanceName != ""
}
