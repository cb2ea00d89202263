// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/gogpu/translator/ir"
)

var (
	voidT  = ir.VoidType()
	intT   = ir.Scalar(ir.Int)
	floatT = ir.Scalar(ir.Float)
	vec2T  = ir.Vector(ir.Float, 2)
	vec4T  = ir.Vector(ir.Float, 4)
)

func mainFunction(statements ...ir.Node) *ir.AggregateNode {
	return ir.NewFunction("main(", voidT, ir.NewAggregate(ir.OpParameters, voidT), ir.NewSequence(statements...))
}

func declaration(sym *ir.SymbolNode) *ir.AggregateNode {
	return ir.NewAggregate(ir.OpDeclaration, voidT, sym)
}

func assign(left, right ir.Typed) *ir.BinaryNode {
	return ir.NewBinary(ir.OpAssign, left, right, left.Type())
}

func fragColor() *ir.SymbolNode {
	return ir.NewSymbol(100, "gl_FragColor", vec4T.WithQualifier(ir.QualFragColor))
}

func redShader() ir.Node {
	red := ir.NewConstant(vec4T, ir.FloatValue(1), ir.FloatValue(0), ir.FloatValue(0), ir.FloatValue(1))
	return ir.NewSequence(mainFunction(assign(fragColor(), red)))
}

func transformShader() ir.Node {
	mvp := ir.NewSymbol(1, "u_mvp", ir.Matrix(4, 4).WithQualifier(ir.QualUniform))
	pos := ir.NewSymbol(2, "a_position", vec4T.WithQualifier(ir.QualAttribute))
	color := ir.NewSymbol(3, "v_color", vec4T.WithQualifier(ir.QualVaryingOut))
	glPosition := ir.NewSymbol(101, "gl_Position", vec4T.WithQualifier(ir.QualPosition))

	return ir.NewSequence(
		declaration(mvp), declaration(pos), declaration(color),
		mainFunction(
			assign(glPosition, ir.NewBinary(ir.OpMatrixTimesVector, mvp, pos, vec4T)),
			assign(color, pos),
		),
	)
}

func texturedShader() ir.Node {
	s := ir.NewSymbol(1, "s", ir.Scalar(ir.Sampler2D).WithQualifier(ir.QualUniform))
	uv := ir.NewSymbol(2, "v_uv", vec2T.WithQualifier(ir.QualVaryingIn))
	lookup := ir.NewFunctionCall("texture2D(s21;f2;", false, vec4T, s, uv)

	return ir.NewSequence(declaration(s), declaration(uv), mainFunction(assign(fragColor(), lookup)))
}

func compile(t *testing.T, root ir.Node, sm ShaderModel, stage ir.ShaderStage) string {
	t.Helper()
	out, _, err := Compile(root, &Options{ShaderModel: sm, Stage: stage})
	require.NoError(t, err)
	return out
}

func TestShaders(t *testing.T) {
	archive, err := txtar.ParseFile("testdata/shaders.txtar")
	require.NoError(t, err)

	cases := map[string]func(t *testing.T) string{
		"red_sm4":       func(t *testing.T) string { return compile(t, redShader(), ShaderModel4_0, ir.StageFragment) },
		"transform_sm3": func(t *testing.T) string { return compile(t, transformShader(), ShaderModel3_0, ir.StageVertex) },
		"textured_sm3":  func(t *testing.T) string { return compile(t, texturedShader(), ShaderModel3_0, ir.StageFragment) },
		"textured_sm4":  func(t *testing.T) string { return compile(t, texturedShader(), ShaderModel4_0, ir.StageFragment) },
	}

	for _, f := range archive.Files {
		t.Run(f.Name, func(t *testing.T) {
			build, ok := cases[f.Name]
			require.True(t, ok, "no shader for %s", f.Name)
			assert.Equal(t, string(f.Data), build(t))
		})
	}
}

func TestCompileInfo(t *testing.T) {
	_, info, err := Compile(texturedShader(), &Options{ShaderModel: ShaderModel4_0, Stage: ir.StageFragment})
	require.NoError(t, err)

	assert.Equal(t, "ps_4_0", info.Profile)
	assert.Equal(t, "main", info.EntryPoint)
	assert.Equal(t, map[string]string{"_s": "s0"}, info.RegisterBindings)
	assert.Equal(t, []string{"gl_texture2D"}, info.HelperFunctions)
}

func TestCompileErrors(t *testing.T) {
	_, _, err := Compile(nil, nil)
	require.Error(t, err)

	_, _, err = Compile(redShader(), &Options{ShaderModel: ShaderModel(9)})
	var herr *Error
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, ErrInvalidShaderModel, herr.Kind)

	_, _, err = Compile(ir.NewSequence(), nil)
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, ErrEntryPointNotFound, herr.Kind)

	i := ir.NewSymbol(1, "i", intT)
	shift := ir.NewBinary(ir.OpBitShiftLeft, i, ir.NewIntConstant(1), intT)
	shift.SetLoc(ir.SourceLoc{FirstLine: 4})
	root := ir.NewSequence(mainFunction(shift))

	_, _, err = Compile(root, &Options{ShaderModel: ShaderModel3_0})
	require.ErrorAs(t, err, &herr)
	assert.True(t, herr.IsUnsupportedFeature())
	require.NotNil(t, herr.Loc)
	assert.Equal(t, 4, herr.Loc.FirstLine)

	out := compile(t, root, ShaderModel4_0, ir.StageVertex)
	assert.Contains(t, out, "(_i << 1);\n")
}

func TestSamplerArrayIndexing(t *testing.T) {
	s := ir.NewSymbol(1, "s", ir.Scalar(ir.Sampler2D).WithQualifier(ir.QualUniform).WithArraySize(2))
	uv := ir.NewSymbol(2, "uv", vec2T)
	elem := ir.NewBinary(ir.OpIndexDirect, s, ir.NewIntConstant(1), ir.Scalar(ir.Sampler2D))
	lookup := ir.NewFunctionCall("texture2D(s21;f2;", false, vec4T, elem, uv)
	root := ir.NewSequence(declaration(s), mainFunction(assign(fragColor(), lookup)))

	out := compile(t, root, ShaderModel3_0, ir.StageFragment)
	assert.Contains(t, out, "uniform sampler2D sampler__s[2] : register(s0);\n")
	assert.Contains(t, out, "gl_texture2D(sampler__s[1], _uv)")

	_, _, err := Compile(root, &Options{ShaderModel: ShaderModel4_0, Stage: ir.StageFragment})
	var herr *Error
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, ErrUnsupportedFeature, herr.Kind)
}

func TestExpressions(t *testing.T) {
	v := ir.NewSymbol(1, "v", vec4T)
	x := ir.NewSymbol(2, "x", floatT)
	m := ir.NewSymbol(3, "m", ir.Matrix(4, 4))
	b := ir.NewSymbol(4, "b", ir.Scalar(ir.Bool))

	tests := []struct {
		name string
		expr ir.Node
		want string
	}{
		{"vector times matrix", ir.NewBinary(ir.OpVectorTimesMatrix, v, m, vec4T), "mul(_v, transpose(_m))"},
		{"matrix times matrix", ir.NewBinary(ir.OpMatrixTimesMatrix, m, m, m.Type()), "transpose(mul(transpose(_m), transpose(_m)))"},
		{"vector times matrix assign", ir.NewBinary(ir.OpVectorTimesMatrixAssign, v, m, vec4T), "(_v = mul(_v, transpose(_m)))"},
		{"matrix times matrix assign", ir.NewBinary(ir.OpMatrixTimesMatrixAssign, m, m, m.Type()), "(_m = transpose(mul(transpose(_m), transpose(_m))))"},
		{"scalar equal", ir.NewBinary(ir.OpEqual, x, x, ir.Scalar(ir.Bool)), "(_x == _x)"},
		{"vector equal", ir.NewBinary(ir.OpEqual, v, v, ir.Scalar(ir.Bool)), "all(_v == _v)"},
		{"vector not equal", ir.NewBinary(ir.OpNotEqual, v, v, ir.Scalar(ir.Bool)), "!all(_v == _v)"},
		{"logical xor", ir.NewBinary(ir.OpLogicalXor, b, b, ir.Scalar(ir.Bool)), "(_b != _b)"},
		{"swizzle", ir.NewSwizzle(v, 2, 0), "_v.zx"},
		{"inversesqrt", ir.NewUnary(ir.OpInverseSqrt, x, floatT), "rsqrt(_x)"},
		{"fract", ir.NewUnary(ir.OpFract, v, vec4T), "frac(_v)"},
		{"atan", ir.NewAggregate(ir.OpAtan, floatT, x, x), "atan2(_x, _x)"},
		{"mix", ir.NewAggregate(ir.OpMix, vec4T, v, v, x), "lerp(_v, _v, _x)"},
		{"matrixCompMult", ir.NewAggregate(ir.OpMul, m.Type(), m, m), "(_m * _m)"},
		{"vector relation", ir.NewAggregate(ir.OpLessThan, ir.Vector(ir.Bool, 4), v, v), "(_v < _v)"},
		{"replicating constructor", ir.NewAggregate(ir.OpConstructVec4, vec4T, x), "((float4)(_x))"},
		{"constructor", ir.NewAggregate(ir.OpConstructVec2, vec2T, x, x), "float2(_x, _x)"},
		{"ternary", ir.NewSelection(b, x, ir.NewFloatConstant(2), floatT), "((_b) ? (_x) : (2.0))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := compile(t, ir.NewSequence(mainFunction(tt.expr)), ShaderModel4_0, ir.StageVertex)
			assert.Contains(t, out, "void gl_main()\n{\n"+tt.want+";\n}\n")
		})
	}
}

func TestUnsupportedConstructs(t *testing.T) {
	x := ir.NewSymbol(1, "x", floatT)
	tests := []struct {
		name string
		expr ir.Node
	}{
		{"diagonal matrix", ir.NewAggregate(ir.OpConstructMat2, ir.Matrix(2, 2), x)},
		{"asinh", ir.NewUnary(ir.OpAsinh, x, floatT)},
		{"unknown texture function", ir.NewFunctionCall("texture2DGradEXT(s21;f2;f2;f2;", false, vec4T)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Compile(ir.NewSequence(mainFunction(tt.expr)), nil)
			var herr *Error
			require.ErrorAs(t, err, &herr)
			assert.Equal(t, ErrUnsupportedFeature, herr.Kind)
		})
	}
}

func TestModHelper(t *testing.T) {
	v := ir.NewSymbol(1, "v", vec2T)
	x := ir.NewSymbol(2, "x", floatT)
	root := ir.NewSequence(mainFunction(
		ir.NewAggregate(ir.OpMod, vec2T, v, x),
		ir.NewAggregate(ir.OpMod, vec2T, v, x),
		ir.NewAggregate(ir.OpMod, floatT, x, x),
	))

	out, info, err := Compile(root, nil)
	require.NoError(t, err)
	assert.Contains(t, out, "float2 mod(float2 x, float y)\n{\n    return x - y * floor(x / y);\n}\n")
	assert.Contains(t, out, "float mod(float x, float y)\n")
	assert.Contains(t, out, "mod(_v, _x);\nmod(_v, _x);\nmod(_x, _x);\n")
	assert.Equal(t, []string{"mod"}, info.HelperFunctions)
}

func TestStructs(t *testing.T) {
	inner := ir.NewStruct(20, "Inner", ir.Field{Name: "w", Type: floatT})
	outer := ir.NewStruct(21, "Light", ir.Field{Name: "color", Type: vec4T}, ir.Field{Name: "inner", Type: ir.StructType(inner)})
	l := ir.NewSymbol(1, "l", ir.StructType(outer))
	x := ir.NewSymbol(2, "x", floatT)

	innerValue := ir.NewAggregate(ir.OpConstructStruct, ir.StructType(inner), x)
	init := ir.NewBinary(ir.OpInitialize, l,
		ir.NewAggregate(ir.OpConstructStruct, ir.StructType(outer), ir.NewAggregate(ir.OpConstructVec4, vec4T, x), innerValue),
		l.Type())
	root := ir.NewSequence(mainFunction(
		ir.NewAggregate(ir.OpDeclaration, voidT, init),
		ir.NewFieldAccess(ir.NewFieldAccess(l, 1), 0),
	))

	out := compile(t, root, ShaderModel4_0, ir.StageVertex)
	assert.Contains(t, out, "struct _Inner\n{\n    float _w;\n};\n\nstruct _Light\n{\n    float4 _color;\n    _Inner _inner;\n};\n")
	assert.Contains(t, out, "_Light _Light_ctor(float4 x0, _Inner x1)\n{\n    _Light structure;\n    structure._color = x0;\n    structure._inner = x1;\n    return structure;\n}\n")
	assert.Contains(t, out, "_Light _l = _Light_ctor(((float4)(_x)), _Inner_ctor(_x));\n")
	assert.Contains(t, out, "_l._inner._w;\n")
}

func TestFunctionsAndGlobals(t *testing.T) {
	x := ir.NewSymbol(1, "x", floatT.WithQualifier(ir.QualIn))
	y := ir.NewSymbol(2, "y", floatT.WithQualifier(ir.QualOut))
	g := ir.NewSymbol(3, "g", floatT.WithQualifier(ir.QualGlobal))
	k := ir.NewSymbol(4, "k", floatT.WithQualifier(ir.QualConst))

	f := ir.NewFunction("f(f1;f1;", voidT, ir.NewAggregate(ir.OpParameters, voidT, x, y),
		ir.NewSequence(assign(y, x), ir.NewBranch(ir.OpReturn, nil)))
	root := ir.NewSequence(
		ir.NewAggregate(ir.OpDeclaration, voidT, g),
		ir.NewAggregate(ir.OpDeclaration, voidT, ir.NewBinary(ir.OpInitialize, k, ir.NewFloatConstant(0.5), k.Type())),
		f,
		mainFunction(ir.NewFunctionCall("f(f1;f1;", true, voidT, k, g)),
	)

	out := compile(t, root, ShaderModel3_0, ir.StageVertex)
	assert.Contains(t, out, "static float _g;\nstatic const float _k = 0.5;\n")
	assert.Contains(t, out, "void _f(in float _x, out float _y)\n{\n(_y = _x);\nreturn ;\n}\n")
	assert.Contains(t, out, "void gl_main()\n{\n_f(_k, _g);\n}\n")
}

func TestFragmentBuiltIns(t *testing.T) {
	coord := ir.NewSymbol(101, "gl_FragCoord", vec4T.WithQualifier(ir.QualFragCoord))
	facing := ir.NewSymbol(102, "gl_FrontFacing", ir.Scalar(ir.Bool).WithQualifier(ir.QualFrontFacing))
	data := ir.NewSymbol(103, "gl_FragData", vec4T.WithQualifier(ir.QualFragData).WithArraySize(4))
	root := ir.NewSequence(mainFunction(
		ir.NewSelection(facing,
			assign(ir.NewBinary(ir.OpIndexDirect, data, ir.NewIntConstant(1), vec4T), coord), nil, voidT),
	))

	out, _, err := Compile(root, &Options{ShaderModel: ShaderModel3_0, Stage: ir.StageFragment, MaxDrawBuffers: 2})
	require.NoError(t, err)
	assert.Contains(t, out, "static float4 gl_Color[2] = {float4(0.0, 0.0, 0.0, 0.0), float4(0.0, 0.0, 0.0, 0.0)};\n")
	assert.Contains(t, out, "if (gl_FrontFacing)\n(gl_Color[1] = gl_FragCoord);\n")
	assert.Contains(t, out, "    float2 gl_FragCoord : VPOS;\n    float gl_FrontFacing : VFACE;\n")
	assert.Contains(t, out, "    gl_FragCoord.xy = input.gl_FragCoord;\n    gl_FrontFacing = (input.gl_FrontFacing >= 0.0);\n")
	assert.Contains(t, out, "    output.gl_Color0 = gl_Color[0];\n    output.gl_Color1 = gl_Color[1];\n")

	out = compile(t, root, ShaderModel4_0, ir.StageFragment)
	assert.Contains(t, out, "    float4 gl_FragCoord : SV_Position;\n    bool gl_FrontFacing : SV_IsFrontFace;\n")
	assert.Contains(t, out, "    gl_FrontFacing = input.gl_FrontFacing;\n")
	assert.Contains(t, out, "    float4 gl_Color0 : SV_Target0;\n")
}

func TestControlFlow(t *testing.T) {
	i := ir.NewSymbol(1, "i", intT)
	loop := ir.NewLoop(ir.LoopFor,
		ir.NewAggregate(ir.OpDeclaration, voidT, ir.NewBinary(ir.OpInitialize, i, ir.NewIntConstant(0), intT)),
		ir.NewBinary(ir.OpLessThan, i, ir.NewIntConstant(2), ir.Scalar(ir.Bool)),
		ir.NewUnary(ir.OpPostIncrement, i, intT),
		ir.NewSequence(ir.NewBranch(ir.OpContinue, nil)),
	)
	loop.Unroll = true
	root := ir.NewSequence(mainFunction(
		loop,
		ir.NewLoop(ir.LoopDoWhile, nil, ir.NewBoolConstant(false), nil, ir.NewSequence(ir.NewBranch(ir.OpBreak, nil))),
		ir.NewBranch(ir.OpKill, nil),
	))

	out := compile(t, root, ShaderModel4_0, ir.StageFragment)
	assert.Contains(t, out, "[unroll] for (int _i = 0; (_i < 2); (_i++))\n{\ncontinue;\n}\n")
	assert.Contains(t, out, "do\n{\nbreak;\n}\nwhile (false);\n")
	assert.Contains(t, out, "discard;\n}\n")
}
