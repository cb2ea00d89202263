// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gogpu/translator/builtins"
	"github.com/gogpu/translator/ir"
	"github.com/gogpu/translator/symbols"
)

var (
	voidT  = ir.VoidType()
	intT   = ir.Scalar(ir.Int)
	floatT = ir.Scalar(ir.Float)
	boolT  = ir.Scalar(ir.Bool)
	vec2T  = ir.Vector(ir.Float, 2)
	vec4T  = ir.Vector(ir.Float, 4)
)

func builtinTable(stage ir.ShaderStage) *symbols.Table {
	return builtins.InitBuiltInSymbolTable(stage, builtins.SpecGLES2, builtins.DefaultResources())
}

func mainFunction(statements ...ir.Node) *ir.AggregateNode {
	return ir.NewFunction("main(", voidT, ir.NewAggregate(ir.OpParameters, voidT), ir.NewSequence(statements...))
}

func shader(statements ...ir.Node) *ir.AggregateNode {
	return ir.NewSequence(mainFunction(statements...))
}

func declaration(sym *ir.SymbolNode, value ir.Typed) *ir.AggregateNode {
	if value == nil {
		return ir.NewAggregate(ir.OpDeclaration, voidT, sym)
	}
	return ir.NewAggregate(ir.OpDeclaration, voidT, ir.NewBinary(ir.OpInitialize, sym, value, sym.Type()))
}

func assign(left, right ir.Typed) *ir.BinaryNode {
	return ir.NewBinary(ir.OpAssign, left, right, left.Type())
}

func vec4Constant(x, y, z, w float32) *ir.ConstantNode {
	return ir.NewConstant(vec4T, ir.FloatValue(x), ir.FloatValue(y), ir.FloatValue(z), ir.FloatValue(w))
}

// redFragment is "void main(){ gl_FragColor = vec4(1.0,0.0,0.0,1.0); }".
func redFragment(table *symbols.Table) *ir.AggregateNode {
	fragColor := table.FindBuiltIn("gl_FragColor", 100).(*symbols.Variable)
	sym := ir.NewSymbol(fragColor.ID(), "gl_FragColor", fragColor.Type)
	return shader(assign(sym, vec4Constant(1, 0, 0, 1)))
}

// clearLoop is "for (int i=0;i<4;i++) { arr[i] = 0.0; }" in main.
func clearLoop() *ir.AggregateNode {
	i := ir.NewSymbol(10, "i", intT)
	arr := ir.NewSymbol(11, "arr", floatT.WithArraySize(4))

	body := ir.NewSequence(assign(ir.NewBinary(ir.OpIndexIndirect, arr, i, floatT), ir.NewFloatConstant(0)))
	loop := ir.NewLoop(ir.LoopFor,
		declaration(i, ir.NewIntConstant(0)),
		ir.NewBinary(ir.OpLessThan, i, ir.NewIntConstant(4), boolT),
		ir.NewUnary(ir.OpPostIncrement, i, intT),
		body,
	)

	return shader(declaration(arr, nil), loop)
}

func compile(t *testing.T, root ir.Node, opts Options) string {
	t.Helper()
	out, _, err := Compile(root, opts)
	require.NoError(t, err)
	return out
}

// samplerLoop is "for (int i=0;i<4;i++) { texture2D(s[i], uv); }" in
// main, with s a uniform sampler2D[4].
func samplerLoop() *ir.AggregateNode {
	i := ir.NewSymbol(10, "i", intT)
	s := ir.NewSymbol(12, "s", ir.Scalar(ir.Sampler2D).WithArraySize(4).WithQualifier(ir.QualUniform))
	uv := ir.NewSymbol(13, "uv", vec2T)

	lookup := ir.NewBinary(ir.OpIndexIndirect, s, i, ir.Scalar(ir.Sampler2D))
	body := ir.NewSequence(ir.NewFunctionCall("texture2D(s21;f2;", false, vec4T, lookup, uv))
	loop := ir.NewLoop(ir.LoopFor,
		declaration(i, ir.NewIntConstant(0)),
		ir.NewBinary(ir.OpLessThan, i, ir.NewIntConstant(4), boolT),
		ir.NewUnary(ir.OpPostIncrement, i, intT),
		body,
	)

	return shader(loop)
}
