// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package transform

import "github.com/gogpu/translator/ir"

type counter struct{ next int }

func (c *counter) NextUniqueID() int {
	c.next++
	return 1000 + c.next
}

var (
	voidT = ir.VoidType()
	vec2T = ir.Vector(ir.Float, 2)
	vec4T = ir.Vector(ir.Float, 4)
	mat2T = ir.Matrix(2, 2)
)

// shader wraps statements into "void main() { ... }" and returns the
// root and the body.
func shader(statements ...ir.Node) (*ir.AggregateNode, *ir.AggregateNode) {
	body := ir.NewSequence(statements...)
	main := ir.NewFunction("main(", voidT, ir.NewAggregate(ir.OpParameters, voidT), body)
	return ir.NewSequence(main), body
}

func declaration(sym *ir.SymbolNode, value ir.Typed) *ir.AggregateNode {
	return ir.NewAggregate(ir.OpDeclaration, voidT, ir.NewBinary(ir.OpInitialize, sym, value, sym.Type()))
}

// initializer returns the symbol and value of a single declaration.
func initializer(n ir.Node) (*ir.SymbolNode, ir.Typed) {
	decl := n.(*ir.AggregateNode)
	init := decl.Sequence[0].(*ir.BinaryNode)
	return init.Left.(*ir.SymbolNode), init.Right
}
