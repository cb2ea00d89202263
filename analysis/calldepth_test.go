// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gogpu/translator/ir"
)

func TestDetectCallDepth(t *testing.T) {
	chain := ir.NewSequence(
		function("c("),
		function("b(", call("c(")),
		function("a(", call("b("), call("c(")),
		function("main(", call("a(")),
	)

	assert.Equal(t, CallDepthOK, DetectCallDepth(chain, false, 0))
	assert.Equal(t, CallDepthOK, DetectCallDepth(chain, true, 5))

	g := BuildCallGraph(chain)
	assert.Equal(t, []string{"c(", "b(", "a(", "main("}, g.Functions())
	assert.Equal(t, CallDepthExceeded, g.Check(true, 3))
	assert.Equal(t, "a( -> b( -> c(", FormatCallPath(g.Path()))
}

func TestDetectCallDepthMissingMain(t *testing.T) {
	root := ir.NewSequence(function("helper("))

	assert.Equal(t, CallDepthMissingMain, DetectCallDepth(root, false, 0))
	assert.Equal(t, CallDepthOK, DetectCallDepth(root, true, 8))
	assert.Equal(t, "Missing main()", CallDepthMissingMain.String())
}

func TestDetectCallDepthRecursion(t *testing.T) {
	root := ir.NewSequence(
		function("even(", call("odd(")),
		function("odd(", call("even(")),
		function("main(", call("even(")),
	)

	assert.Equal(t, CallDepthRecursion, DetectCallDepth(root, false, 0))
	assert.Equal(t, CallDepthRecursion, DetectCallDepth(root, true, 64))

	self := ir.NewSequence(function("main(", call("main(")))
	assert.Equal(t, CallDepthRecursion, DetectCallDepth(self, false, 0))
}

func TestDetectCallDepthIgnoresBuiltIns(t *testing.T) {
	root := ir.NewSequence(
		function("main(", ir.NewFunctionCall("texture2D(s21;f2;", false, ir.Vector(ir.Float, 4))),
	)

	g := BuildCallGraph(root)
	assert.Equal(t, []string{"main("}, g.Functions())
	assert.Equal(t, CallDepthOK, g.Check(true, 2))
}

func TestDetectCallDepthCountsSharedCallees(t *testing.T) {
	// d is reached directly from main first and through a and b later.
	root := ir.NewSequence(
		function("main(", call("d("), call("a(")),
		function("a(", call("b(")),
		function("b(", call("d(")),
		function("d(", call("e(")),
		function("e("),
	)

	g := BuildCallGraph(root)
	assert.Equal(t, CallDepthOK, g.Check(true, 6))
	assert.Equal(t, CallDepthExceeded, g.Check(true, 5))
	assert.Equal(t, "main( -> a( -> b( -> d( -> e(", FormatCallPath(g.Path()))

	assert.Equal(t, CallDepthExceeded, g.Check(true, 3))
	assert.Equal(t, "main( -> a( -> b(", FormatCallPath(g.Path()))
	assert.Equal(t, CallDepthOK, g.Check(false, 0))
}
