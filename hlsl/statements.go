// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"github.com/gogpu/translator/ir"
)

// isSingleStatement reports whether n needs a terminating semicolon
// when written as a statement.
func isSingleStatement(n ir.Node) bool {
	switch n := n.(type) {
	case *ir.AggregateNode:
		return n.Op != ir.OpFunction && n.Op != ir.OpSequence && n.Op != ir.OpInvariantDeclaration
	case *ir.SelectionNode:
		return n.UsesTernaryOperator()
	case *ir.LoopNode:
		return false
	default:
		return true
	}
}

// writeSequence writes a statement list. The global sequence is written
// without braces and without the declarations of uniforms and stage
// variables, which the declaration header covers.
func (w *Writer) writeSequence(n *ir.AggregateNode) {
	global := w.t.Depth() == 0
	if !global {
		w.body.WriteString("{\n")
	}

	w.t.IncrementDepth(n)
	for _, child := range n.Sequence {
		if global && isInterfaceDeclaration(child) {
			continue
		}
		child.Traverse(w.t)
		if isSingleStatement(child) {
			w.body.WriteString(";\n")
		}
	}
	w.t.DecrementDepth()

	if !global {
		w.body.WriteString("}\n")
	}
}

// visitCodeBlock writes a block or a single statement. A missing block
// is written as an empty one.
func (w *Writer) visitCodeBlock(n ir.Node) {
	if n == nil {
		w.body.WriteString("{\n}\n")
		return
	}

	n.Traverse(w.t)
	if isSingleStatement(n) {
		w.body.WriteString(";\n")
	}
}

func (w *Writer) writeFunction(n *ir.AggregateNode) {
	w.body.WriteString(w.typeName(n, n.Type()))
	w.body.WriteByte(' ')
	w.body.WriteString(w.userFunctionName(n.Name))

	w.body.WriteByte('(')
	if len(n.Sequence) > 0 {
		if params, ok := n.Sequence[0].(*ir.AggregateNode); ok && params.Op == ir.OpParameters {
			w.writeFunctionParameters(params.Sequence)
		}
	}
	w.body.WriteString(")\n")

	var body ir.Node
	if len(n.Sequence) > 1 {
		body = n.Sequence[1]
	}

	w.t.IncrementDepth(n)
	w.visitCodeBlock(body)
	w.t.DecrementDepth()
}

func (w *Writer) VisitSelection(_ ir.Visit, n *ir.SelectionNode) bool {
	w.t.IncrementDepth(n)
	defer w.t.DecrementDepth()

	if n.UsesTernaryOperator() {
		w.body.WriteString("((")
		n.Condition.Traverse(w.t)
		w.body.WriteString(") ? (")
		n.TrueBlock.Traverse(w.t)
		w.body.WriteString(") : (")
		n.FalseBlock.Traverse(w.t)
		w.body.WriteString("))")
		return false
	}

	w.body.WriteString("if (")
	n.Condition.Traverse(w.t)
	w.body.WriteString(")\n")

	w.visitCodeBlock(n.TrueBlock)
	if n.FalseBlock != nil {
		w.body.WriteString("else\n")
		w.visitCodeBlock(n.FalseBlock)
	}

	return false
}

func (w *Writer) VisitLoop(_ ir.Visit, n *ir.LoopNode) bool {
	w.t.IncrementDepth(n)
	defer w.t.DecrementDepth()

	switch n.Kind {
	case ir.LoopFor:
		// Loops marked for unrolling are unrolled by the HLSL compiler.
		if n.Unroll {
			w.body.WriteString("[unroll] ")
		}
		w.body.WriteString("for (")
		if n.Init != nil {
			n.Init.Traverse(w.t)
		}
		w.body.WriteString("; ")
		if n.Condition != nil {
			n.Condition.Traverse(w.t)
		}
		w.body.WriteString("; ")
		if n.Expression != nil {
			n.Expression.Traverse(w.t)
		}
		w.body.WriteString(")\n")
		w.visitCodeBlock(n.Body)

	case ir.LoopWhile:
		w.body.WriteString("while (")
		n.Condition.Traverse(w.t)
		w.body.WriteString(")\n")
		w.visitCodeBlock(n.Body)

	case ir.LoopDoWhile:
		w.body.WriteString("do\n")
		w.visitCodeBlock(n.Body)
		w.body.WriteString("while (")
		n.Condition.Traverse(w.t)
		w.body.WriteString(");\n")
	}

	return false
}

func (w *Writer) VisitBranch(visit ir.Visit, n *ir.BranchNode) bool {
	switch n.Flow {
	case ir.OpKill:
		w.writeTriplet(visit, "discard", "", "")
	case ir.OpBreak:
		w.writeTriplet(visit, "break", "", "")
	case ir.OpContinue:
		w.writeTriplet(visit, "continue", "", "")
	case ir.OpReturn:
		w.writeTriplet(visit, "return ", "", "")
	default:
		w.fail(ErrInvalidTree, n, "branch %v", n.Flow)
		return false
	}
	return true
}
