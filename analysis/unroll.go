// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package analysis

import "github.com/gogpu/translator/ir"

// UnrollCondition selects which for loops ForLoopUnrollMarker marks.
type UnrollCondition uint8

const (
	// UnrollIntegerIndex marks every loop with an int index.
	UnrollIntegerIndex UnrollCondition = iota

	// UnrollSamplerArrayIndex marks loops whose int index is used to
	// index a sampler array.
	UnrollSamplerArrayIndex
)

// ForLoopUnrollMarker sets LoopNode.Unroll on the loops that must be
// emitted unrolled. Loops running more than MaxUnrollIterations times,
// or never failing their condition, are left rolled. It runs after the limitations check, so every for
// loop header it meets is well formed.
type ForLoopUnrollMarker struct {
	ir.BaseVisitor

	condition UnrollCondition
	loops     LoopStack
	t         *ir.Traverser

	inSamplerArrayIndex bool

	// SamplerArrayIndexIsFloatLoopIndex is set when a float loop index
	// indexes a sampler array, which can not be unrolled.
	SamplerArrayIndexIsFloatLoopIndex bool
}

// NewForLoopUnrollMarker returns a marker applying cond.
func NewForLoopUnrollMarker(cond UnrollCondition) *ForLoopUnrollMarker {
	m := &ForLoopUnrollMarker{condition: cond}
	m.t = ir.NewTraverser(m, true, false, false, false)
	return m
}

// Mark marks the loops of root.
func (m *ForLoopUnrollMarker) Mark(root ir.Node) {
	m.t.Walk(root)
}

// MarkForLoopsWithIntegerIndices marks every for loop of root indexed by
// an int.
func MarkForLoopsWithIntegerIndices(root ir.Node) {
	NewForLoopUnrollMarker(UnrollIntegerIndex).Mark(root)
}

// MarkForLoopsWithSamplerArrayIndices marks the loops whose index is used
// to index a sampler array. It returns false if a float loop index is
// used that way.
func MarkForLoopsWithSamplerArrayIndices(root ir.Node) bool {
	m := NewForLoopUnrollMarker(UnrollSamplerArrayIndex)
	m.Mark(root)
	return !m.SamplerArrayIndexIsFloatLoopIndex
}

func (m *ForLoopUnrollMarker) VisitBinary(_ ir.Visit, n *ir.BinaryNode) bool {
	if m.condition != UnrollSamplerArrayIndex || n.Op != ir.OpIndexIndirect {
		return true
	}

	sym, ok := n.Left.(*ir.SymbolNode)
	if !ok || n.Right == nil {
		return true
	}

	t := sym.Type()
	if !t.Basic.IsSampler() || !t.IsArray() || m.loops.Empty() {
		return true
	}

	m.inSamplerArrayIndex = true
	n.Right.Traverse(m.t)
	m.inSamplerArrayIndex = false

	return false
}

func (m *ForLoopUnrollMarker) VisitLoop(_ ir.Visit, n *ir.LoopNode) bool {
	if m.condition == UnrollIntegerIndex && n.Kind == ir.LoopFor {
		n.Unroll = Unrollable(n)
	}

	if n.Body != nil {
		m.loops.Push(n)
		n.Body.Traverse(m.t)
		m.loops.Pop()
	}

	return false
}

func (m *ForLoopUnrollMarker) VisitSymbol(sym *ir.SymbolNode) {
	if !m.inSamplerArrayIndex {
		return
	}

	loop := m.loops.FindLoop(sym)
	if loop == nil {
		return
	}

	switch sym.Type().Basic {
	case ir.Float:
		m.SamplerArrayIndexIsFloatLoopIndex = true
	case ir.Int:
		// Loops that never end within the bound stay rolled.
		loop.Unroll = Unrollable(loop)
	default:
		panic("unreachable: loop index of type " + sym.Type().Basic.String())
	}
}
