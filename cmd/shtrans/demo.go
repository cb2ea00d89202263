// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/gogpu/translator"
	"github.com/gogpu/translator/ir"
	"github.com/gogpu/translator/symbols"
)

// demoShader builds the tree a front end would produce for
//
//	uniform mat4 u_mvp;
//	attribute vec4 a_position;
//	varying vec4 v_color;
//	void main() { gl_Position = u_mvp * a_position; v_color = a_position; }
//
// or, for the fragment stage,
//
//	precision mediump float;
//	varying vec4 v_color;
//	void main() { gl_FragColor = v_color; }
func demoShader(c *translator.Compiler, stage ir.ShaderStage) ir.Node {
	table := c.Table()
	if table.AtBuiltInLevel() {
		table.Push()
	}

	void := ir.VoidType()
	vec4 := ir.Vector(ir.Float, 4)

	declare := func(name string, t ir.Type) *symbols.Variable {
		v := symbols.NewVariable(name, t)
		table.Declare(v)
		return v
	}
	ref := func(v *symbols.Variable) *ir.SymbolNode {
		return ir.NewSymbol(v.ID(), v.Name(), v.Type)
	}
	builtIn := func(name string) *ir.SymbolNode {
		return ref(table.FindBuiltIn(name, 100).(*symbols.Variable))
	}
	assign := func(l, r ir.Typed) ir.Node {
		return ir.NewBinary(ir.OpAssign, l, r, l.Type().WithQualifier(ir.QualTemporary))
	}
	function := func(body ...ir.Node) ir.Node {
		return ir.NewFunction("main(", void, ir.NewAggregate(ir.OpParameters, void), ir.NewSequence(body...))
	}

	if stage == ir.StageFragment {
		color := declare("v_color", vec4.WithPrecision(ir.PrecisionMedium).WithQualifier(ir.QualVaryingIn))

		return ir.NewSequence(
			ir.NewAggregate(ir.OpDeclaration, void, ref(color)),
			function(assign(builtIn("gl_FragColor"), ref(color))),
		)
	}

	mvp := declare("u_mvp", ir.Matrix(4, 4).WithPrecision(ir.PrecisionHigh).WithQualifier(ir.QualUniform))
	pos := declare("a_position", vec4.WithPrecision(ir.PrecisionHigh).WithQualifier(ir.QualAttribute))
	color := declare("v_color", vec4.WithPrecision(ir.PrecisionHigh).WithQualifier(ir.QualVaryingOut))

	return ir.NewSequence(
		ir.NewAggregate(ir.OpDeclaration, void, ref(mvp)),
		ir.NewAggregate(ir.OpDeclaration, void, ref(pos)),
		ir.NewAggregate(ir.OpDeclaration, void, ref(color)),
		function(
			assign(builtIn("gl_Position"), ir.NewBinary(ir.OpMatrixTimesVector, ref(mvp), ref(pos), vec4.WithPrecision(ir.PrecisionHigh))),
			assign(ref(color), ref(pos)),
		),
	)
}
