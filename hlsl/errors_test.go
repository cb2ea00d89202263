// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"strings"
	"testing"

	"github.com/gogpu/translator/ir"
)

func TestErrorKind_String(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{ErrUnsupportedFeature, "UnsupportedFeature"},
		{ErrInvalidShaderModel, "InvalidShaderModel"},
		{ErrInternalError, "InternalError"},
		{ErrInvalidTree, "InvalidTree"},
		{ErrUnsupportedType, "UnsupportedType"},
		{ErrEntryPointNotFound, "EntryPointNotFound"},
		{ErrorKind(255), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := tt.kind.String()
			if got != tt.want {
				t.Errorf("ErrorKind.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_Error(t *testing.T) {
	// Error without location
	err1 := NewError(ErrEntryPointNotFound, "no main function")
	got1 := err1.Error()
	if !strings.Contains(got1, "EntryPointNotFound") {
		t.Errorf("Error() should contain kind, got %q", got1)
	}
	if !strings.Contains(got1, "no main function") {
		t.Errorf("Error() should contain message, got %q", got1)
	}

	// Error with location
	n := ir.NewIntConstant(1)
	n.SetLoc(ir.SourceLoc{FirstFile: 2, FirstLine: 17})
	got2 := NewErrorAt(ErrUnsupportedFeature, n, "bit operations").Error()
	if !strings.Contains(got2, "2:17") {
		t.Errorf("Error() with location should contain it, got %q", got2)
	}
}

func TestError_Predicates(t *testing.T) {
	if !NewError(ErrUnsupportedFeature, "x").IsUnsupportedFeature() {
		t.Error("IsUnsupportedFeature() = false for ErrUnsupportedFeature")
	}
	if NewError(ErrInternalError, "x").IsUnsupportedFeature() {
		t.Error("IsUnsupportedFeature() = true for ErrInternalError")
	}
	if !NewError(ErrInternalError, "x").IsInternalError() {
		t.Error("IsInternalError() = false for ErrInternalError")
	}
}
