// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"fmt"

	"github.com/gogpu/translator/ir"
)

// ErrorKind categorizes HLSL compilation errors.
type ErrorKind uint8

const (
	// ErrUnsupportedFeature indicates a shader construct the target
	// shader model cannot express.
	ErrUnsupportedFeature ErrorKind = iota

	// ErrInvalidShaderModel indicates an invalid or unsupported shader model.
	ErrInvalidShaderModel

	// ErrInternalError indicates an internal compiler error.
	ErrInternalError

	// ErrInvalidTree indicates the shader tree is malformed.
	ErrInvalidTree

	// ErrUnsupportedType indicates a type that cannot be represented in HLSL.
	ErrUnsupportedType

	// ErrEntryPointNotFound indicates the tree has no main function.
	ErrEntryPointNotFound
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrUnsupportedFeature:
		return "UnsupportedFeature"
	case ErrInvalidShaderModel:
		return "InvalidShaderModel"
	case ErrInternalError:
		return "InternalError"
	case ErrInvalidTree:
		return "InvalidTree"
	case ErrUnsupportedType:
		return "UnsupportedType"
	case ErrEntryPointNotFound:
		return "EntryPointNotFound"
	default:
		return "Unknown"
	}
}

// Error represents an HLSL compilation error.
type Error struct {
	// Kind categorizes the error.
	Kind ErrorKind

	// Message provides details about the error.
	Message string

	// Loc optionally identifies the source location.
	Loc *ir.SourceLoc
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Loc != nil {
		return fmt.Sprintf("hlsl %s at %d:%d: %s", e.Kind, e.Loc.FirstFile, e.Loc.FirstLine, e.Message)
	}
	return fmt.Sprintf("hlsl %s: %s", e.Kind, e.Message)
}

// NewError creates a new HLSL error without location information.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
	}
}

// NewErrorAt creates a new HLSL error reported at the location of n.
func NewErrorAt(kind ErrorKind, n ir.Node, message string) *Error {
	loc := n.Loc()
	return &Error{
		Kind:    kind,
		Message: message,
		Loc:     &loc,
	}
}

// IsUnsupportedFeature returns true if the error is ErrUnsupportedFeature.
func (e *Error) IsUnsupportedFeature() bool {
	return e.Kind == ErrUnsupportedFeature
}

// IsInternalError returns true if the error is ErrInternalError.
func (e *Error) IsInternalError() bool {
	return e.Kind == ErrInternalError
}
