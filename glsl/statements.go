// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"github.com/gogpu/translator/analysis"
	"github.com/gogpu/translator/ir"
)

// isSingleStatement reports whether n needs a terminating semicolon
// when written as a statement.
func isSingleStatement(n ir.Node) bool {
	switch n := n.(type) {
	case *ir.AggregateNode:
		return n.Op != ir.OpFunction && n.Op != ir.OpSequence
	case *ir.SelectionNode:
		// Ternaries are usually part of an assignment; this handles the
		// rare ones written on their own.
		return n.UsesTernaryOperator()
	case *ir.LoopNode:
		return false
	default:
		return true
	}
}

// writeSequence writes a statement list. Only the global sequence is
// written without braces.
func (w *Writer) writeSequence(n *ir.AggregateNode) {
	scoped := w.t.Depth() > 0
	if scoped {
		w.out.WriteString("{\n")
	}

	w.t.IncrementDepth(n)
	for _, child := range n.Sequence {
		child.Traverse(w.t)
		if isSingleStatement(child) {
			w.out.WriteString(";\n")
		}
	}
	w.t.DecrementDepth()

	if scoped {
		w.out.WriteString("}\n")
	}
}

// visitCodeBlock writes a block or a single statement. A missing block
// is written as an empty one.
func (w *Writer) visitCodeBlock(n ir.Node) {
	if n == nil {
		w.out.WriteString("{\n}\n")
		return
	}

	n.Traverse(w.t)
	if isSingleStatement(n) {
		w.out.WriteString(";\n")
	}
}

func (w *Writer) writeFunction(n *ir.AggregateNode) {
	w.writeVariableType(n.Type())
	w.out.WriteByte(' ')
	w.out.WriteString(w.hashFunctionName(n.Name))

	w.out.WriteByte('(')
	if len(n.Sequence) > 0 {
		if params, ok := n.Sequence[0].(*ir.AggregateNode); ok && params.Op == ir.OpParameters {
			w.writeFunctionParameters(params.Sequence)
		}
	}
	w.out.WriteByte(')')

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
		w.out.WriteString("((")
		n.Condition.Traverse(w.t)
		w.out.WriteString(") ? (")
		n.TrueBlock.Traverse(w.t)
		w.out.WriteString(") : (")
		n.FalseBlock.Traverse(w.t)
		w.out.WriteString("))")
		return false
	}

	w.out.WriteString("if (")
	n.Condition.Traverse(w.t)
	w.out.WriteString(")\n")

	w.visitCodeBlock(n.TrueBlock)
	if n.FalseBlock != nil {
		w.out.WriteString("else\n")
		w.visitCodeBlock(n.FalseBlock)
	}

	return false
}

func (w *Writer) VisitLoop(_ ir.Visit, n *ir.LoopNode) bool {
	w.t.IncrementDepth(n)
	defer w.t.DecrementDepth()

	unroll := n.Unroll && analysis.Unrollable(n)

	// Loop header.
	switch n.Kind {
	case ir.LoopFor:
		if unroll {
			// A single iteration loop gives break and continue a target.
			name := w.hashVariableName(unrolledIndex(n).Name)
			w.out.WriteString("for (int " + name + " = 0; " + name + " < 1; ++" + name + ")\n")
			break
		}

		w.out.WriteString("for (")
		if n.Init != nil {
			n.Init.Traverse(w.t)
		}
		w.out.WriteString("; ")
		if n.Condition != nil {
			n.Condition.Traverse(w.t)
		}
		w.out.WriteString("; ")
		if n.Expression != nil {
			n.Expression.Traverse(w.t)
		}
		w.out.WriteString(")\n")

	case ir.LoopWhile:
		w.out.WriteString("while (")
		n.Condition.Traverse(w.t)
		w.out.WriteString(")\n")

	case ir.LoopDoWhile:
		w.out.WriteString("do\n")
	}

	// Loop body.
	if unroll {
		w.out.WriteString("{\n")
		w.unroll.Push(n)
		for w.unroll.SatisfiesLoopCondition() {
			w.visitCodeBlock(n.Body)
			w.unroll.Step()
		}
		w.unroll.Pop()
		w.out.WriteString("}\n")
	} else {
		w.visitCodeBlock(n.Body)
	}

	// Loop footer.
	if n.Kind == ir.LoopDoWhile {
		w.out.WriteString("while (")
		n.Condition.Traverse(w.t)
		w.out.WriteString(");\n")
	}

	return false
}

// unrolledIndex returns the index symbol declared by an unrolled loop.
func unrolledIndex(n *ir.LoopNode) *ir.SymbolNode {
	if decl, ok := n.Init.(*ir.AggregateNode); ok && len(decl.Sequence) > 0 {
		if init, ok := decl.Sequence[0].(*ir.BinaryNode); ok {
			if sym, ok := init.Left.(*ir.SymbolNode); ok {
				return sym
			}
		}
	}
	panic("unreachable: unrolled loop without an index declaration")
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
		panic("unreachable: branch " + n.Flow.String())
	}
	return true
}
