// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package transform

import (
	"github.com/gogpu/translator/ir"
	"github.com/gogpu/translator/symbols"
)

// InitializeGLPosition inserts gl_Position = vec4(0.0, 0.0, 0.0, 0.0) as
// the first statement of main. The id of gl_Position is taken from the
// built-in levels of table. It reports whether main was found.
func InitializeGLPosition(root ir.Node, table *symbols.Table) bool {
	main := findMain(root)
	if main == nil {
		return false
	}

	var body *ir.AggregateNode
	if len(main.Sequence) > 1 {
		body, _ = main.Sequence[1].(*ir.AggregateNode)
	}
	if body == nil {
		body = ir.NewSequence()
		if len(main.Sequence) > 1 {
			main.Sequence[1] = body
		} else {
			main.Sequence = append(main.Sequence, body)
		}
	}

	t := ir.Vector(ir.Float, 4).WithPrecision(ir.PrecisionHigh).WithQualifier(ir.QualPosition)

	id := 0
	if v, ok := table.FindBuiltIn("gl_Position", 100).(*symbols.Variable); ok {
		id = v.ID()
		t = v.Type
	}

	zero := ir.NewConstant(ir.Vector(ir.Float, 4).WithQualifier(ir.QualConst),
		ir.FloatValue(0), ir.FloatValue(0), ir.FloatValue(0), ir.FloatValue(0))
	assign := ir.NewBinary(ir.OpAssign, ir.NewSymbol(id, "gl_Position", t), zero, t.WithQualifier(ir.QualTemporary))

	body.Sequence = append([]ir.Node{assign}, body.Sequence...)
	return true
}

// findMain returns the definition of main among the global statements.
func findMain(root ir.Node) *ir.AggregateNode {
	seq, ok := root.(*ir.AggregateNode)
	if !ok || seq.Op != ir.OpSequence {
		return nil
	}
	for _, n := range seq.Sequence {
		if f, ok := n.(*ir.AggregateNode); ok && f.Op == ir.OpFunction && f.Name == "main(" {
			return f
		}
	}
	return nil
}
