// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ir

import "strconv"

// ConstKind discriminates the payload of a ConstantValue.
type ConstKind uint8

const (
	ConstFloat ConstKind = iota
	ConstInt
	ConstUInt
	ConstBool
)

// ConstantValue is one scalar component of a constant.
type ConstantValue struct {
	Kind ConstKind
	F    float32
	I    int32
	U    uint32
	B    bool
}

// FloatValue returns a float constant component.
func FloatValue(f float32) ConstantValue { return ConstantValue{Kind: ConstFloat, F: f} }

// IntValue returns an int constant component.
func IntValue(i int32) ConstantValue { return ConstantValue{Kind: ConstInt, I: i} }

// UIntValue returns a uint constant component.
func UIntValue(u uint32) ConstantValue { return ConstantValue{Kind: ConstUInt, U: u} }

// BoolValue returns a bool constant component.
func BoolValue(b bool) ConstantValue { return ConstantValue{Kind: ConstBool, B: b} }

// AsInt converts the component to an int following GLSL conversion rules.
func (c ConstantValue) AsInt() int {
	switch c.Kind {
	case ConstFloat:
		return int(c.F)
	case ConstInt:
		return int(c.I)
	case ConstUInt:
		return int(c.U)
	case ConstBool:
		if c.B {
			return 1
		}
	}
	return 0
}

// AsFloat converts the component to a float.
func (c ConstantValue) AsFloat() float32 {
	switch c.Kind {
	case ConstFloat:
		return c.F
	case ConstInt:
		return float32(c.I)
	case ConstUInt:
		return float32(c.U)
	case ConstBool:
		if c.B {
			return 1
		}
	}
	return 0
}

// Equal reports whether both components hold the same kind and value.
func (c ConstantValue) Equal(o ConstantValue) bool {
	if c.Kind != o.Kind {
		return false
	}
	switch c.Kind {
	case ConstFloat:
		return c.F == o.F
	case ConstInt:
		return c.I == o.I
	case ConstUInt:
		return c.U == o.U
	default:
		return c.B == o.B
	}
}

func (c ConstantValue) String() string {
	switch c.Kind {
	case ConstFloat:
		return strconv.FormatFloat(float64(c.F), 'g', -1, 32) + " (const float)"
	case ConstInt:
		return strconv.FormatInt(int64(c.I), 10) + " (const int)"
	case ConstUInt:
		return strconv.FormatUint(uint64(c.U), 10) + " (const uint)"
	default:
		return strconv.FormatBool(c.B) + " (const bool)"
	}
}
