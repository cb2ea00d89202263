// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package transform

import (
	"io"

	"github.com/gogpu/translator/ir"
)

// ClampingStrategy selects how clamped indices are written.
type ClampingStrategy uint8

const (
	// ClampWithClampIntrinsic writes clamp(index, 0, max).
	ClampWithClampIntrinsic ClampingStrategy = iota

	// ClampWithUserDefinedIntFunction writes webgl_int_clamp(index, 0, max)
	// and emits the definition of webgl_int_clamp.
	ClampWithUserDefinedIntFunction
)

// IntClampFunctionName is the helper called by
// ClampWithUserDefinedIntFunction.
const IntClampFunctionName = "webgl_int_clamp"

const (
	intClampBegin      = "// BEGIN: Generated code for array bounds clamping\n\n"
	intClampEnd        = "// END: Generated code for array bounds clamping\n\n"
	intClampDefinition = "int webgl_int_clamp(int value, int minValue, int maxValue) { return ((value < minValue) ? minValue : ((value > maxValue) ? maxValue : value)); }\n\n"
)

// ArrayBoundsClamper marks dynamic indexing of arrays, vectors and
// matrices so that the back end clamps the index into range.
type ArrayBoundsClamper struct {
	strategy ClampingStrategy
	needed   bool
}

// NewArrayBoundsClamper returns a clamper using strategy s.
func NewArrayBoundsClamper(s ClampingStrategy) *ArrayBoundsClamper {
	return &ArrayBoundsClamper{strategy: s}
}

// Strategy returns the clamping strategy.
func (c *ArrayBoundsClamper) Strategy() ClampingStrategy { return c.strategy }

// SetStrategy changes the clamping strategy.
func (c *ArrayBoundsClamper) SetStrategy(s ClampingStrategy) { c.strategy = s }

// Needed reports whether any index was marked.
func (c *ArrayBoundsClamper) Needed() bool { return c.needed }

// MarkIndirectArrayBoundsForClamping sets AddIndexClamp on every
// indirect index node of root.
func (c *ArrayBoundsClamper) MarkIndirectArrayBoundsForClamping(root ir.Node) {
	m := &clampMarker{}
	ir.NewTraverser(m, true, false, false, false).Walk(root)
	if m.marked {
		c.needed = true
	}
}

// OutputClampingFunctionDefinition writes the webgl_int_clamp helper if
// it is used.
func (c *ArrayBoundsClamper) OutputClampingFunctionDefinition(w io.StringWriter) {
	if !c.needed || c.strategy != ClampWithUserDefinedIntFunction {
		return
	}
	_, _ = w.WriteString(intClampBegin)
	_, _ = w.WriteString(intClampDefinition)
	_, _ = w.WriteString(intClampEnd)
}

type clampMarker struct {
	ir.BaseVisitor

	marked bool
}

func (m *clampMarker) VisitBinary(_ ir.Visit, n *ir.BinaryNode) bool {
	if n.Op != ir.OpIndexIndirect {
		return true
	}

	t := n.Left.Type()
	if t.IsArray() || t.IsVector() || t.IsMatrix() {
		n.AddIndexClamp = true
		m.marked = true
	}

	return true
}
