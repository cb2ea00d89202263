// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package analysis

import "github.com/gogpu/translator/ir"

// LoopIndexInfo describes the index of a for loop. The values are only
// meaningful for integer indices.
type LoopIndexInfo struct {
	ID   int
	Type ir.BasicType

	InitValue      int
	StopValue      int
	IncrementValue int
	CurrentValue   int

	// Op is the relational operator of the loop condition.
	Op ir.Operator
}

// FillInfo reads the index of a loop that passed the limitations check.
func (l *LoopIndexInfo) FillInfo(n *ir.LoopNode) {
	if n == nil {
		return
	}

	init, index := loopIndexDeclaration(n)
	if index == nil {
		return
	}

	l.ID = index.ID
	l.Type = index.Type().Basic
	if l.Type != ir.Int {
		return
	}

	if c, ok := init.Right.(*ir.ConstantNode); ok && len(c.Values) > 0 {
		l.InitValue = c.Values[0].AsInt()
	}
	l.CurrentValue = l.InitValue
	l.IncrementValue = loopIntIncrement(n)

	if cond, ok := n.Condition.(*ir.BinaryNode); ok {
		l.Op = cond.Op
		if c, ok := cond.Right.(*ir.ConstantNode); ok && len(c.Values) > 0 {
			l.StopValue = c.Values[0].AsInt()
		}
	}
}

// Step advances the current value by the increment.
func (l *LoopIndexInfo) Step() {
	l.CurrentValue += l.IncrementValue
}

// SatisfiesLoopCondition evaluates the loop condition for the current
// value.
func (l *LoopIndexInfo) SatisfiesLoopCondition() bool {
	switch l.Op {
	case ir.OpEqual:
		return l.CurrentValue == l.StopValue
	case ir.OpNotEqual:
		return l.CurrentValue != l.StopValue
	case ir.OpLessThan:
		return l.CurrentValue < l.StopValue
	case ir.OpGreaterThan:
		return l.CurrentValue > l.StopValue
	case ir.OpLessThanEqual:
		return l.CurrentValue <= l.StopValue
	case ir.OpGreaterThanEqual:
		return l.CurrentValue >= l.StopValue
	default:
		panic("unreachable: loop condition operator " + l.Op.String())
	}
}

// Iterations returns the number of times the body of the loop runs. It
// reports false for non int indices and when the condition still holds
// after limit steps.
func (l *LoopIndexInfo) Iterations(limit int) (int, bool) {
	if l.Type != ir.Int {
		return 0, false
	}

	c := *l
	c.CurrentValue = c.InitValue
	for n := 0; n <= limit; n++ {
		if !c.SatisfiesLoopCondition() {
			return n, true
		}
		c.Step()
	}

	return 0, false
}

// MaxUnrollIterations bounds the copies of an unrolled loop body.
const MaxUnrollIterations = 1024

// Unrollable reports whether the int indexed for loop n ends within
// MaxUnrollIterations iterations.
func Unrollable(n *ir.LoopNode) bool {
	if n == nil || n.Kind != ir.LoopFor {
		return false
	}
	if _, index := loopIndexDeclaration(n); index == nil || index.Type().Basic != ir.Int {
		return false
	}

	var info LoopIndexInfo
	info.FillInfo(n)
	_, ok := info.Iterations(MaxUnrollIterations)
	return ok
}

// loopIndexDeclaration returns the initializer and the index symbol of
// "for (T i = c; ...)", or nils if init has another shape.
func loopIndexDeclaration(n *ir.LoopNode) (*ir.BinaryNode, *ir.SymbolNode) {
	decl, ok := n.Init.(*ir.AggregateNode)
	if !ok || decl.Op != ir.OpDeclaration || len(decl.Sequence) != 1 {
		return nil, nil
	}

	init, ok := decl.Sequence[0].(*ir.BinaryNode)
	if !ok || init.Op != ir.OpInitialize {
		return nil, nil
	}

	index, ok := init.Left.(*ir.SymbolNode)
	if !ok {
		return nil, nil
	}

	return init, index
}

// loopIntIncrement evaluates the loop expression. Prefix and postfix
// forms are treated alike.
func loopIntIncrement(n *ir.LoopNode) int {
	var (
		op ir.Operator
		c  *ir.ConstantNode
	)

	switch e := n.Expression.(type) {
	case *ir.UnaryNode:
		op = e.Op
	case *ir.BinaryNode:
		op = e.Op
		c, _ = e.Right.(*ir.ConstantNode)
	}

	switch op {
	case ir.OpPostIncrement, ir.OpPreIncrement:
		return 1
	case ir.OpPostDecrement, ir.OpPreDecrement:
		return -1
	case ir.OpAddAssign, ir.OpSubAssign:
		if c == nil || len(c.Values) == 0 {
			panic("unreachable: non-constant loop increment")
		}
		if op == ir.OpSubAssign {
			return -c.Values[0].AsInt()
		}
		return c.Values[0].AsInt()
	default:
		panic("unreachable: loop expression operator " + op.String())
	}
}

type loopInfo struct {
	index LoopIndexInfo
	loop  *ir.LoopNode
}

// LoopStack tracks the loops enclosing the node being visited, innermost
// last.
type LoopStack struct {
	loops []loopInfo
}

// Push enters loop n.
func (s *LoopStack) Push(n *ir.LoopNode) {
	info := loopInfo{loop: n}
	info.index.FillInfo(n)
	s.loops = append(s.loops, info)
}

// Pop leaves the innermost loop.
func (s *LoopStack) Pop() {
	s.loops = s.loops[:len(s.loops)-1]
}

// Len returns the number of enclosing loops.
func (s *LoopStack) Len() int { return len(s.loops) }

// Empty reports whether no loop is entered.
func (s *LoopStack) Empty() bool { return len(s.loops) == 0 }

// Step advances the index of the innermost loop.
func (s *LoopStack) Step() {
	s.loops[len(s.loops)-1].index.Step()
}

// SatisfiesLoopCondition evaluates the condition of the innermost loop.
func (s *LoopStack) SatisfiesLoopCondition() bool {
	return s.loops[len(s.loops)-1].index.SatisfiesLoopCondition()
}

// FindLoop returns the loop whose index is sym, or nil.
func (s *LoopStack) FindLoop(sym *ir.SymbolNode) *ir.LoopNode {
	if info := s.find(sym); info != nil {
		return info.loop
	}
	return nil
}

// IndexInfo returns the index information of the loop whose index is
// sym, or nil.
func (s *LoopStack) IndexInfo(sym *ir.SymbolNode) *LoopIndexInfo {
	if info := s.find(sym); info != nil {
		return &info.index
	}
	return nil
}

// NeedsToReplaceSymbolWithValue reports whether sym is the index of an
// enclosing loop that is being unrolled.
func (s *LoopStack) NeedsToReplaceSymbolWithValue(sym *ir.SymbolNode) bool {
	if info := s.find(sym); info != nil {
		return info.loop.Unroll
	}
	return false
}

// LoopIndexValue returns the current value of the loop index sym.
func (s *LoopStack) LoopIndexValue(sym *ir.SymbolNode) int {
	info := s.find(sym)
	if info == nil {
		panic("unreachable: " + sym.Name + " is not a loop index")
	}
	return info.index.CurrentValue
}

func (s *LoopStack) find(sym *ir.SymbolNode) *loopInfo {
	for i := len(s.loops) - 1; i >= 0; i-- {
		if id := s.loops[i].index.ID; id != 0 && id == sym.ID {
			return &s.loops[i]
		}
	}
	return nil
}
