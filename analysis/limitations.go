// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package analysis

import (
	"github.com/gogpu/translator/diag"
	"github.com/gogpu/translator/ir"
	"github.com/gogpu/translator/symbols"
)

// Limitations checks a tree against the restricted subset of GLSL ES
// 1.00 described in Appendix A of the language specification:
//
//   - only for loops, with a header of the form
//     "for (T i = const; i op const; i++ | i-- | i += const | i -= const)";
//   - the loop index is not assigned in the body and not passed to an
//     out or inout parameter;
//   - array indices are constant-index-expressions, except for uniforms
//     indexed in a vertex shader.
type Limitations struct {
	ir.BaseVisitor

	stage   ir.ShaderStage
	table   *symbols.Table
	version int
	sink    *diag.Sink

	loops  LoopStack
	t      *ir.Traverser
	errors int
}

// NewLimitations returns a validator reporting to sink. table resolves
// the functions called with a loop index argument.
func NewLimitations(stage ir.ShaderStage, table *symbols.Table, shaderVersion int, sink *diag.Sink) *Limitations {
	v := &Limitations{
		stage:   stage,
		table:   table,
		version: shaderVersion,
		sink:    sink,
	}
	v.t = ir.NewTraverser(v, true, false, false, false)
	return v
}

// ValidateLimitations checks root and returns the number of errors found.
func ValidateLimitations(root ir.Node, stage ir.ShaderStage, table *symbols.Table, shaderVersion int, sink *diag.Sink) int {
	v := NewLimitations(stage, table, shaderVersion, sink)
	v.Validate(root)
	return v.NumErrors()
}

// Validate walks root.
func (v *Limitations) Validate(root ir.Node) {
	v.t.Walk(root)
}

// NumErrors returns the number of violations reported so far.
func (v *Limitations) NumErrors() int { return v.errors }

func (v *Limitations) error(loc ir.SourceLoc, reason, token string) {
	v.sink.Error(loc, reason, token, "")
	v.errors++
}

func (v *Limitations) VisitBinary(_ ir.Visit, n *ir.BinaryNode) bool {
	v.validateOperation(n, n.Op, n.Left)

	switch n.Op {
	case ir.OpIndexDirect, ir.OpIndexIndirect:
		v.validateIndexing(n)
	}

	return true
}

func (v *Limitations) VisitUnary(_ ir.Visit, n *ir.UnaryNode) bool {
	v.validateOperation(n, n.Op, n.Operand)
	return true
}

func (v *Limitations) VisitAggregate(_ ir.Visit, n *ir.AggregateNode) bool {
	if n.Op == ir.OpFunctionCall {
		v.validateFunctionCall(n)
	}
	return true
}

func (v *Limitations) VisitLoop(_ ir.Visit, n *ir.LoopNode) bool {
	if !v.validateLoopType(n) {
		return false
	}
	if !v.validateForLoopHeader(n) {
		return false
	}

	if n.Body != nil {
		v.loops.Push(n)
		n.Body.Traverse(v.t)
		v.loops.Pop()
	}

	return false
}

func (v *Limitations) validateLoopType(n *ir.LoopNode) bool {
	switch n.Kind {
	case ir.LoopFor:
		return true
	case ir.LoopWhile:
		v.error(n.Loc(), "This type of loop is not allowed", "while")
	default:
		v.error(n.Loc(), "This type of loop is not allowed", "do")
	}
	return false
}

func (v *Limitations) validateForLoopHeader(n *ir.LoopNode) bool {
	id := v.validateForLoopInit(n)
	if id < 0 {
		return false
	}
	if !v.validateForLoopCond(n, id) {
		return false
	}
	return v.validateForLoopExpr(n, id)
}

// validateForLoopInit returns the id of the loop index or -1.
func (v *Limitations) validateForLoopInit(n *ir.LoopNode) int {
	if n.Init == nil {
		v.error(n.Loc(), "Missing init declaration", "for")
		return -1
	}

	decl, ok := n.Init.(*ir.AggregateNode)
	if !ok || decl.Op != ir.OpDeclaration {
		v.error(n.Init.Loc(), "Invalid init declaration", "for")
		return -1
	}

	// A declaration list is not allowed.
	if len(decl.Sequence) != 1 {
		v.error(decl.Loc(), "Invalid init declaration", "for")
		return -1
	}

	init, ok := decl.Sequence[0].(*ir.BinaryNode)
	if !ok || init.Op != ir.OpInitialize {
		v.error(decl.Loc(), "Invalid init declaration", "for")
		return -1
	}

	index, ok := init.Left.(*ir.SymbolNode)
	if !ok {
		v.error(init.Loc(), "Invalid init declaration", "for")
		return -1
	}

	switch basic := index.Type().Basic; basic {
	case ir.Int, ir.Float:
	default:
		v.error(index.Loc(), "Invalid type for loop index", basic.String())
		return -1
	}

	if !isConstExpr(init.Right) {
		v.error(init.Loc(), "Loop index cannot be initialized with non-constant expression", index.Name)
		return -1
	}

	return index.ID
}

func (v *Limitations) validateForLoopCond(n *ir.LoopNode, id int) bool {
	if n.Condition == nil {
		v.error(n.Loc(), "Missing condition", "for")
		return false
	}

	cond, ok := n.Condition.(*ir.BinaryNode)
	if !ok {
		v.error(n.Loc(), "Invalid condition", "for")
		return false
	}

	// The loop index is on the left of the relational operator.
	index, ok := cond.Left.(*ir.SymbolNode)
	if !ok {
		v.error(cond.Loc(), "Invalid condition", "for")
		return false
	}
	if index.ID != id {
		v.error(index.Loc(), "Expected loop index", index.Name)
		return false
	}

	if !cond.Op.IsRelational() {
		v.error(cond.Loc(), "Invalid relational operator", cond.Op.String())
	}

	if !isConstExpr(cond.Right) {
		v.error(cond.Loc(), "Loop index cannot be compared with non-constant expression", index.Name)
		return false
	}

	return true
}

func (v *Limitations) validateForLoopExpr(n *ir.LoopNode, id int) bool {
	if n.Expression == nil {
		v.error(n.Loc(), "Missing expression", "for")
		return false
	}

	// ++i and --i are accepted as well as i++ and i--.
	var (
		op    ir.Operator
		index *ir.SymbolNode
		step  ir.Typed
	)
	switch e := n.Expression.(type) {
	case *ir.UnaryNode:
		op = e.Op
		index, _ = e.Operand.(*ir.SymbolNode)
	case *ir.BinaryNode:
		op = e.Op
		index, _ = e.Left.(*ir.SymbolNode)
		step = e.Right
	}

	if index == nil {
		v.error(n.Expression.Loc(), "Invalid expression", "for")
		return false
	}
	if index.ID != id {
		v.error(index.Loc(), "Expected loop index", index.Name)
		return false
	}

	switch op {
	case ir.OpPostIncrement, ir.OpPostDecrement, ir.OpPreIncrement, ir.OpPreDecrement:
	case ir.OpAddAssign, ir.OpSubAssign:
		if !isConstExpr(step) {
			v.error(n.Expression.Loc(), "Loop index cannot be modified by non-constant expression", index.Name)
			return false
		}
	default:
		v.error(n.Expression.Loc(), "Invalid operator", op.String())
		return false
	}

	return true
}

func (v *Limitations) validateFunctionCall(n *ir.AggregateNode) {
	if v.loops.Empty() {
		return
	}

	var args []int
	for i, arg := range n.Sequence {
		if sym, ok := arg.(*ir.SymbolNode); ok && v.loops.FindLoop(sym) != nil {
			args = append(args, i)
		}
	}
	if len(args) == 0 {
		return
	}

	sym, _, _ := v.table.Find(n.Name, v.version)
	f, ok := sym.(*symbols.Function)
	if !ok {
		panic("unreachable: call of unknown function " + n.Name)
	}

	for _, i := range args {
		if i >= len(f.Params) {
			continue
		}
		switch f.Params[i].Type.Qualifier {
		case ir.QualOut, ir.QualInOut:
			arg := n.Sequence[i].(*ir.SymbolNode)
			v.error(arg.Loc(), "Loop index cannot be used as argument to a function out or inout parameter", arg.Name)
		}
	}
}

func (v *Limitations) validateOperation(n ir.Node, op ir.Operator, operand ir.Typed) {
	if v.loops.Empty() || !(op.IsAssignment() || op.IsIncDec()) {
		return
	}

	if sym, ok := operand.(*ir.SymbolNode); ok && v.loops.FindLoop(sym) != nil {
		v.error(n.Loc(), "Loop index cannot be statically assigned to within the body of the loop", sym.Name)
	}
}

func (v *Limitations) validateIndexing(n *ir.BinaryNode) {
	index := n.Right
	if !index.Type().IsScalarInt() {
		v.error(index.Loc(), "Index expression must have integral type", index.Type().CompleteString())
	}

	// Uniforms may be indexed freely in a vertex shader.
	skip := v.stage == ir.StageVertex && n.Left.Type().Qualifier == ir.QualUniform
	if !skip && !v.isConstIndexExpr(index) {
		v.error(index.Loc(), "Index expression must be constant", "[]")
	}
}

func isConstExpr(n ir.Typed) bool {
	_, ok := n.(*ir.ConstantNode)
	return ok
}

// isConstIndexExpr reports whether n only reads constants and loop
// indices.
func (v *Limitations) isConstIndexExpr(n ir.Typed) bool {
	c := &constIndexExpr{loops: &v.loops, valid: true}
	ir.NewTraverser(c, true, false, false, false).Walk(n)
	return c.valid
}

type constIndexExpr struct {
	ir.BaseVisitor

	loops *LoopStack
	valid bool
}

func (c *constIndexExpr) VisitSymbol(n *ir.SymbolNode) {
	if c.valid {
		c.valid = n.Type().Qualifier == ir.QualConst || c.loops.FindLoop(n) != nil
	}
}
