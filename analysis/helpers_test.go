// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package analysis

import "github.com/gogpu/translator/ir"

var (
	intT   = ir.Scalar(ir.Int)
	floatT = ir.Scalar(ir.Float)
	boolT  = ir.Scalar(ir.Bool)
	voidT  = ir.VoidType()
)

func declare(init *ir.BinaryNode) *ir.AggregateNode {
	return ir.NewAggregate(ir.OpDeclaration, voidT, init)
}

// forLoop builds "for (T i = init; i op stop; i++) body".
func forLoop(index *ir.SymbolNode, init, stop ir.Typed, op ir.Operator, body ...ir.Node) *ir.LoopNode {
	return ir.NewLoop(ir.LoopFor,
		declare(ir.NewBinary(ir.OpInitialize, index, init, index.Type())),
		ir.NewBinary(op, index, stop, boolT),
		ir.NewUnary(ir.OpPostIncrement, index, index.Type()),
		ir.NewSequence(body...),
	)
}

func intLoop(index *ir.SymbolNode, init, stop int, body ...ir.Node) *ir.LoopNode {
	return forLoop(index, ir.NewIntConstant(init), ir.NewIntConstant(stop), ir.OpLessThan, body...)
}

func function(name string, body ...ir.Node) *ir.AggregateNode {
	return ir.NewFunction(name, voidT, ir.NewAggregate(ir.OpParameters, voidT), ir.NewSequence(body...))
}

func call(name string) *ir.AggregateNode {
	return ir.NewFunctionCall(name, true, voidT)
}

func assign(left, right ir.Typed) *ir.BinaryNode {
	return ir.NewBinary(ir.OpAssign, left, right, left.Type())
}
