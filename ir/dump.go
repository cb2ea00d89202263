// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ir

import (
	"fmt"
	"strings"
)

// OutputTree returns an indented text dump of the tree for debugging.
// Each line starts with the first source line of the node.
func OutputTree(root Node) string {
	d := &dumper{}
	d.t = NewTraverser(d, true, false, false, false)
	d.t.Walk(root)
	return d.out.String()
}

type dumper struct {
	t   *Traverser
	out strings.Builder
}

func (d *dumper) line(n Node, format string, args ...any) {
	fmt.Fprintf(&d.out, "%d: ", n.Loc().FirstLine)
	for i := 0; i < d.t.Depth(); i++ {
		d.out.WriteString("  ")
	}
	fmt.Fprintf(&d.out, format, args...)
	d.out.WriteByte('\n')
}

func (d *dumper) VisitSymbol(n *SymbolNode) {
	d.line(n, "'%s' (symbol %d) (%s)", n.Name, n.ID, n.Type().CompleteString())
}

func (d *dumper) VisitConstant(n *ConstantNode) {
	fmt.Fprintf(&d.out, "%d: ", n.Loc().FirstLine)
	for i := 0; i < d.t.Depth(); i++ {
		d.out.WriteString("  ")
	}
	d.out.WriteString("Constant (")
	d.out.WriteString(n.Type().CompleteString())
	d.out.WriteString(")\n")

	for _, v := range n.Values {
		d.line(n, "  %v", v)
	}
}

func (d *dumper) VisitBinary(_ Visit, n *BinaryNode) bool {
	d.line(n, "%v (%s)", n.Op, n.Type().CompleteString())
	return true
}

func (d *dumper) VisitUnary(_ Visit, n *UnaryNode) bool {
	d.line(n, "%v (%s)", n.Op, n.Type().CompleteString())
	return true
}

func (d *dumper) VisitSelection(_ Visit, n *SelectionNode) bool {
	if n.UsesTernaryOperator() {
		d.line(n, "Ternary selection (%s)", n.Type().CompleteString())
	} else {
		d.line(n, "If test")
	}
	return true
}

func (d *dumper) VisitAggregate(_ Visit, n *AggregateNode) bool {
	switch n.Op {
	case OpFunction, OpFunctionCall, OpPrototype:
		d.line(n, "%v: %s (%s)", n.Op, n.Name, n.Type().CompleteString())
	case OpSequence, OpParameters, OpDeclaration, OpInvariantDeclaration:
		d.line(n, "%v", n.Op)
	default:
		d.line(n, "%v (%s)", n.Op, n.Type().CompleteString())
	}
	return true
}

func (d *dumper) VisitLoop(_ Visit, n *LoopNode) bool {
	text := "Loop with condition tested first"
	if n.Kind == LoopDoWhile {
		text = "Loop with condition not tested first"
	}
	if n.Unroll {
		text += " (unroll)"
	}
	d.line(n, "%s", text)
	return true
}

func (d *dumper) VisitBranch(_ Visit, n *BranchNode) bool {
	d.line(n, "Branch: %v", n.Flow)
	return true
}
