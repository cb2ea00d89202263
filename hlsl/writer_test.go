// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"strings"
	"testing"

	"github.com/gogpu/translator/ir"
)

func TestWriter_Indentation(t *testing.T) {
	w := newWriter(ir.NewSequence(), DefaultOptions())

	// Initial state
	if w.indent != 0 {
		t.Errorf("initial indent = %d, want 0", w.indent)
	}

	w.pushIndent()
	w.pushIndent()
	if w.indent != 2 {
		t.Errorf("after two pushIndent, indent = %d, want 2", w.indent)
	}

	w.popIndent()
	w.popIndent()

	// Pop below zero should stay at 0
	w.popIndent()
	if w.indent != 0 {
		t.Errorf("popIndent below zero should stay at 0, got %d", w.indent)
	}
}

func TestWriter_IndentedOutput(t *testing.T) {
	w := newWriter(ir.NewSequence(), DefaultOptions())

	w.writeLine("level 0")
	w.pushIndent()
	w.writeLine("level %d", 1)
	w.writeLine("")
	w.pushIndent()
	w.writeLine("level 2")
	w.popIndent()
	w.writeLine("back to 1")
	w.popIndent()
	w.writeLine("back to 0")

	want := []string{"level 0", "    level 1", "", "        level 2", "    back to 1", "back to 0", ""}
	lines := strings.Split(w.String(), "\n")
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %q", len(lines), len(want), w.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestDecorate(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"color", "_color"},
		{"float4", "_float4"},
		{"gl_Position", "gl_Position"},
		{"dx_Depth", "dx_Depth"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := decorate(tt.name); got != tt.want {
			t.Errorf("decorate(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestZeroValue(t *testing.T) {
	tests := []struct {
		typ  ir.Type
		want string
	}{
		{ir.Scalar(ir.Float), "0.0"},
		{ir.Scalar(ir.Bool), "false"},
		{ir.Vector(ir.Int, 2), "int2(0, 0)"},
		{ir.Matrix(2, 2), "float2x2(0.0, 0.0, 0.0, 0.0)"},
		{ir.Scalar(ir.Float).WithArraySize(2), "{0.0, 0.0}"},
	}

	for _, tt := range tests {
		if got := zeroValue(tt.typ); got != tt.want {
			t.Errorf("zeroValue(%s) = %q, want %q", tt.typ.CompleteString(), got, tt.want)
		}
	}
}
