// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package builtins

import (
	"github.com/gogpu/translator/ir"
	"github.com/gogpu/translator/symbols"
)

// ShaderSpec is the language profile shaders are validated against.
type ShaderSpec uint8

const (
	SpecGLES2 ShaderSpec = iota
	SpecWebGL
	SpecGLES3
	SpecWebGL2
	SpecCSSShaders
)

func (s ShaderSpec) String() string {
	switch s {
	case SpecGLES2:
		return "gles2"
	case SpecWebGL:
		return "webgl"
	case SpecGLES3:
		return "gles3"
	case SpecWebGL2:
		return "webgl2"
	case SpecCSSShaders:
		return "css"
	default:
		return "unknown"
	}
}

// IsWebGLBased reports whether the spec applies the WebGL restrictions.
func (s ShaderSpec) IsWebGLBased() bool {
	return s == SpecWebGL || s == SpecWebGL2 || s == SpecCSSShaders
}

var (
	float1 = ir.Scalar(ir.Float)
	float2 = ir.Vector(ir.Float, 2)
	float3 = ir.Vector(ir.Float, 3)
	float4 = ir.Vector(ir.Float, 4)

	int1 = ir.Scalar(ir.Int)
	int2 = ir.Vector(ir.Int, 2)
	int3 = ir.Vector(ir.Int, 3)

	uint1 = ir.Scalar(ir.UInt)
	bool1 = ir.Scalar(ir.Bool)

	genType  = ir.Scalar(ir.GenType)
	genIType = ir.Scalar(ir.GenIType)
	genUType = ir.Scalar(ir.GenUType)
	genBType = ir.Scalar(ir.GenBType)

	vec  = ir.Scalar(ir.Vec)
	ivec = ir.Scalar(ir.IVec)
	uvec = ir.Scalar(ir.UVec)
	bvec = ir.Scalar(ir.BVec)

	gvec4 = ir.Scalar(ir.GVec4)

	gsampler2D      = ir.Scalar(ir.GSampler2D)
	gsampler3D      = ir.Scalar(ir.GSampler3D)
	gsamplerCube    = ir.Scalar(ir.GSamplerCube)
	gsampler2DArray = ir.Scalar(ir.GSampler2DArray)

	sampler2D            = ir.Scalar(ir.Sampler2D)
	samplerCube          = ir.Scalar(ir.SamplerCube)
	samplerExternalOES   = ir.Scalar(ir.SamplerExternalOES)
	sampler2DRect        = ir.Scalar(ir.Sampler2DRect)
	sampler2DShadow      = ir.Scalar(ir.Sampler2DShadow)
	samplerCubeShadow    = ir.Scalar(ir.SamplerCubeShadow)
	sampler2DArrayShadow = ir.Scalar(ir.Sampler2DArrayShadow)
)

func mat(cols, rows uint8) ir.Type { return ir.Matrix(cols, rows) }

// InsertBuiltInFunctions fills the built-in levels of table with the
// built-in function signatures, the gl_DepthRange uniform and the
// implementation constants for the given stage.
func InsertBuiltInFunctions(stage ir.ShaderStage, spec ShaderSpec, res Resources, table *symbols.Table) {
	const (
		common = symbols.LevelCommon
		essl1  = symbols.LevelESSL1
		essl3  = symbols.LevelESSL3
	)

	ins := table.InsertBuiltIn

	// Angle and trigonometry
	ins(common, genType, "radians", genType)
	ins(common, genType, "degrees", genType)
	ins(common, genType, "sin", genType)
	ins(common, genType, "cos", genType)
	ins(common, genType, "tan", genType)
	ins(common, genType, "asin", genType)
	ins(common, genType, "acos", genType)
	ins(common, genType, "atan", genType, genType)
	ins(common, genType, "atan", genType)
	ins(essl3, genType, "sinh", genType)
	ins(essl3, genType, "cosh", genType)
	ins(essl3, genType, "tanh", genType)
	ins(essl3, genType, "asinh", genType)
	ins(essl3, genType, "acosh", genType)
	ins(essl3, genType, "atanh", genType)

	// Exponential
	ins(common, genType, "pow", genType, genType)
	ins(common, genType, "exp", genType)
	ins(common, genType, "log", genType)
	ins(common, genType, "exp2", genType)
	ins(common, genType, "log2", genType)
	ins(common, genType, "sqrt", genType)
	ins(common, genType, "inversesqrt", genType)

	// Common
	ins(common, genType, "abs", genType)
	ins(essl3, genIType, "abs", genIType)
	ins(common, genType, "sign", genType)
	ins(essl3, genIType, "sign", genIType)
	ins(common, genType, "floor", genType)
	ins(essl3, genType, "trunc", genType)
	ins(essl3, genType, "round", genType)
	ins(essl3, genType, "roundEven", genType)
	ins(common, genType, "ceil", genType)
	ins(common, genType, "fract", genType)
	ins(common, genType, "mod", genType, float1)
	ins(common, genType, "mod", genType, genType)
	ins(common, genType, "min", genType, float1)
	ins(common, genType, "min", genType, genType)
	ins(essl3, genIType, "min", genIType, genIType)
	ins(essl3, genIType, "min", genIType, int1)
	ins(essl3, genUType, "min", genUType, genUType)
	ins(essl3, genUType, "min", genUType, uint1)
	ins(common, genType, "max", genType, float1)
	ins(common, genType, "max", genType, genType)
	ins(essl3, genIType, "max", genIType, genIType)
	ins(essl3, genIType, "max", genIType, int1)
	ins(essl3, genUType, "max", genUType, genUType)
	ins(essl3, genUType, "max", genUType, uint1)
	ins(common, genType, "clamp", genType, float1, float1)
	ins(common, genType, "clamp", genType, genType, genType)
	ins(essl3, genIType, "clamp", genIType, int1, int1)
	ins(essl3, genIType, "clamp", genIType, genIType, genIType)
	ins(essl3, genUType, "clamp", genUType, uint1, uint1)
	ins(essl3, genUType, "clamp", genUType, genUType, genUType)
	ins(common, genType, "mix", genType, genType, float1)
	ins(common, genType, "mix", genType, genType, genType)
	ins(essl3, genType, "mix", genType, genType, genBType)
	ins(common, genType, "step", genType, genType)
	ins(common, genType, "step", float1, genType)
	ins(common, genType, "smoothstep", genType, genType, genType)
	ins(common, genType, "smoothstep", float1, float1, genType)
	ins(essl3, genBType, "isnan", genType)
	ins(essl3, genBType, "isinf", genType)
	ins(essl3, genIType, "floatBitsToInt", genType)
	ins(essl3, genUType, "floatBitsToUint", genType)
	ins(essl3, genType, "intBitsToFloat", genIType)
	ins(essl3, genType, "uintBitsToFloat", genUType)
	ins(essl3, uint1, "packSnorm2x16", float2)
	ins(essl3, uint1, "packUnorm2x16", float2)
	ins(essl3, uint1, "packHalf2x16", float2)
	ins(essl3, float2, "unpackSnorm2x16", uint1)
	ins(essl3, float2, "unpackUnorm2x16", uint1)
	ins(essl3, float2, "unpackHalf2x16", uint1)

	// Geometric
	ins(common, float1, "length", genType)
	ins(common, float1, "distance", genType, genType)
	ins(common, float1, "dot", genType, genType)
	ins(common, float3, "cross", float3, float3)
	ins(common, genType, "normalize", genType)
	ins(common, genType, "faceforward", genType, genType, genType)
	ins(common, genType, "reflect", genType, genType)
	ins(common, genType, "refract", genType, genType, float1)

	// Matrix
	for n := uint8(2); n <= 4; n++ {
		ins(common, mat(n, n), "matrixCompMult", mat(n, n), mat(n, n))
		ins(essl3, mat(n, n), "transpose", mat(n, n))
		ins(essl3, float1, "determinant", mat(n, n))
		ins(essl3, mat(n, n), "inverse", mat(n, n))
	}
	for cols := uint8(2); cols <= 4; cols++ {
		for rows := uint8(2); rows <= 4; rows++ {
			ins(essl3, mat(cols, rows), "outerProduct", ir.Vector(ir.Float, rows), ir.Vector(ir.Float, cols))
			if cols == rows {
				continue
			}
			ins(essl3, mat(cols, rows), "matrixCompMult", mat(cols, rows), mat(cols, rows))
			ins(essl3, mat(rows, cols), "transpose", mat(cols, rows))
		}
	}

	// Vector relational
	for _, name := range []string{"lessThan", "lessThanEqual", "greaterThan", "greaterThanEqual"} {
		ins(common, bvec, name, vec, vec)
		ins(common, bvec, name, ivec, ivec)
		ins(essl3, bvec, name, uvec, uvec)
	}
	for _, name := range []string{"equal", "notEqual"} {
		ins(common, bvec, name, vec, vec)
		ins(common, bvec, name, ivec, ivec)
		ins(essl3, bvec, name, uvec, uvec)
		ins(common, bvec, name, bvec, bvec)
	}
	ins(common, bool1, "any", bvec)
	ins(common, bool1, "all", bvec)
	ins(common, bvec, "not", bvec)

	// Texture lookup, ES SL 1.00
	ins(essl1, float4, "texture2D", sampler2D, float2)
	ins(essl1, float4, "texture2DProj", sampler2D, float3)
	ins(essl1, float4, "texture2DProj", sampler2D, float4)
	ins(essl1, float4, "textureCube", samplerCube, float3)

	if res.OESEGLImageExternal {
		ins(essl1, float4, "texture2D", samplerExternalOES, float2)
		ins(essl1, float4, "texture2DProj", samplerExternalOES, float3)
		ins(essl1, float4, "texture2DProj", samplerExternalOES, float4)
	}

	if res.ARBTextureRectangle {
		ins(essl1, float4, "texture2DRect", sampler2DRect, float2)
		ins(essl1, float4, "texture2DRectProj", sampler2DRect, float3)
		ins(essl1, float4, "texture2DRectProj", sampler2DRect, float4)
	}

	if res.EXTShaderTextureLOD {
		ins(essl1, float4, "texture2DGradEXT", sampler2D, float2, float2, float2)
		ins(essl1, float4, "texture2DProjGradEXT", sampler2D, float3, float2, float2)
		ins(essl1, float4, "texture2DProjGradEXT", sampler2D, float4, float2, float2)
		ins(essl1, float4, "textureCubeGradEXT", samplerCube, float3, float3, float3)
	}

	switch stage {
	case ir.StageFragment:
		ins(essl1, float4, "texture2D", sampler2D, float2, float1)
		ins(essl1, float4, "texture2DProj", sampler2D, float3, float1)
		ins(essl1, float4, "texture2DProj", sampler2D, float4, float1)
		ins(essl1, float4, "textureCube", samplerCube, float3, float1)

		if res.OESStandardDerivatives {
			ins(essl1, genType, "dFdx", genType)
			ins(essl1, genType, "dFdy", genType)
			ins(essl1, genType, "fwidth", genType)
		}

		if res.EXTShaderTextureLOD {
			ins(essl1, float4, "texture2DLodEXT", sampler2D, float2, float1)
			ins(essl1, float4, "texture2DProjLodEXT", sampler2D, float3, float1)
			ins(essl1, float4, "texture2DProjLodEXT", sampler2D, float4, float1)
			ins(essl1, float4, "textureCubeLodEXT", samplerCube, float3, float1)
		}

		ins(essl3, genType, "dFdx", genType)
		ins(essl3, genType, "dFdy", genType)
		ins(essl3, genType, "fwidth", genType)

	case ir.StageVertex:
		ins(essl1, float4, "texture2DLod", sampler2D, float2, float1)
		ins(essl1, float4, "texture2DProjLod", sampler2D, float3, float1)
		ins(essl1, float4, "texture2DProjLod", sampler2D, float4, float1)
		ins(essl1, float4, "textureCubeLod", samplerCube, float3, float1)
	}

	// Texture lookup, ES SL 3.00
	ins(essl3, gvec4, "texture", gsampler2D, float2)
	ins(essl3, gvec4, "texture", gsampler3D, float3)
	ins(essl3, gvec4, "texture", gsamplerCube, float3)
	ins(essl3, gvec4, "texture", gsampler2DArray, float3)
	ins(essl3, gvec4, "textureProj", gsampler2D, float3)
	ins(essl3, gvec4, "textureProj", gsampler2D, float4)
	ins(essl3, gvec4, "textureProj", gsampler3D, float4)
	ins(essl3, gvec4, "textureLod", gsampler2D, float2, float1)
	ins(essl3, gvec4, "textureLod", gsampler3D, float3, float1)
	ins(essl3, gvec4, "textureLod", gsamplerCube, float3, float1)
	ins(essl3, gvec4, "textureLod", gsampler2DArray, float3, float1)

	if stage == ir.StageFragment {
		ins(essl3, gvec4, "texture", gsampler2D, float2, float1)
		ins(essl3, gvec4, "texture", gsampler3D, float3, float1)
		ins(essl3, gvec4, "texture", gsamplerCube, float3, float1)
		ins(essl3, gvec4, "texture", gsampler2DArray, float3, float1)
		ins(essl3, gvec4, "textureProj", gsampler2D, float3, float1)
		ins(essl3, gvec4, "textureProj", gsampler2D, float4, float1)
		ins(essl3, gvec4, "textureProj", gsampler3D, float4, float1)
	}

	ins(essl3, float1, "texture", sampler2DShadow, float3)
	ins(essl3, float1, "texture", samplerCubeShadow, float4)
	ins(essl3, float1, "texture", sampler2DArrayShadow, float4)
	ins(essl3, float1, "textureProj", sampler2DShadow, float4)
	ins(essl3, float1, "textureLod", sampler2DShadow, float3, float1)

	ins(essl3, int2, "textureSize", gsampler2D, int1)
	ins(essl3, int3, "textureSize", gsampler3D, int1)
	ins(essl3, int2, "textureSize", gsamplerCube, int1)
	ins(essl3, int3, "textureSize", gsampler2DArray, int1)
	ins(essl3, int2, "textureSize", sampler2DShadow, int1)
	ins(essl3, int2, "textureSize", samplerCubeShadow, int1)
	ins(essl3, int3, "textureSize", sampler2DArrayShadow, int1)

	ins(essl3, gvec4, "texelFetch", gsampler2D, int2, int1)
	ins(essl3, gvec4, "texelFetch", gsampler3D, int3, int1)
	ins(essl3, gvec4, "texelFetch", gsampler2DArray, int3, int1)

	ins(essl3, gvec4, "textureOffset", gsampler2D, float2, int2)
	ins(essl3, gvec4, "textureOffset", gsampler3D, float3, int3)
	ins(essl3, gvec4, "textureOffset", gsampler2DArray, float3, int2)

	ins(essl3, gvec4, "textureGrad", gsampler2D, float2, float2, float2)
	ins(essl3, gvec4, "textureGrad", gsampler3D, float3, float3, float3)
	ins(essl3, gvec4, "textureGrad", gsamplerCube, float3, float3, float3)
	ins(essl3, gvec4, "textureGrad", gsampler2DArray, float3, float2, float2)

	// Depth range in window coordinates.
	highp := float1.WithPrecision(ir.PrecisionHigh).WithQualifier(ir.QualGlobal)
	depthRange := ir.NewStruct(table.NextUniqueID(), "gl_DepthRangeParameters",
		ir.Field{Name: "near", Type: highp},
		ir.Field{Name: "far", Type: highp},
		ir.Field{Name: "diff", Type: highp},
	)

	structName := symbols.NewVariable(depthRange.Name, ir.StructType(depthRange))
	structName.UserType = true
	table.Insert(common, structName)

	table.Insert(common, symbols.NewVariable("gl_DepthRange", ir.StructType(depthRange).WithQualifier(ir.QualUniform)))

	// Implementation limits.
	table.InsertConstInt(common, "gl_MaxVertexAttribs", res.MaxVertexAttribs)
	table.InsertConstInt(common, "gl_MaxVertexUniformVectors", res.MaxVertexUniformVectors)
	table.InsertConstInt(common, "gl_MaxVertexTextureImageUnits", res.MaxVertexTextureImageUnits)
	table.InsertConstInt(common, "gl_MaxCombinedTextureImageUnits", res.MaxCombinedTextureImageUnits)
	table.InsertConstInt(common, "gl_MaxTextureImageUnits", res.MaxTextureImageUnits)
	table.InsertConstInt(common, "gl_MaxFragmentUniformVectors", res.MaxFragmentUniformVectors)

	table.InsertConstInt(essl1, "gl_MaxVaryingVectors", res.MaxVaryingVectors)

	if spec != SpecCSSShaders {
		table.InsertConstInt(common, "gl_MaxDrawBuffers", res.MaxDrawBuffers)
	}

	table.InsertConstInt(essl3, "gl_MaxVertexOutputVectors", res.MaxVertexOutputVectors)
	table.InsertConstInt(essl3, "gl_MaxFragmentInputVectors", res.MaxFragmentInputVectors)
	table.InsertConstInt(essl3, "gl_MinProgramTexelOffset", res.MinProgramTexelOffset)
	table.InsertConstInt(essl3, "gl_MaxProgramTexelOffset", res.MaxProgramTexelOffset)
}

func builtInVariable(name string, basic ir.BasicType, prec ir.Precision, q ir.Qualifier, size uint8) *symbols.Variable {
	t := ir.Vector(basic, size).WithPrecision(prec).WithQualifier(q)
	return symbols.NewVariable(name, t)
}

// operatorFunctions lists the built-in functions that compile to a
// dedicated operator rather than to a call.
var operatorFunctions = []struct {
	name string
	op   ir.Operator
}{
	{"matrixCompMult", ir.OpMul},
	{"equal", ir.OpVectorEqual},
	{"notEqual", ir.OpVectorNotEqual},
	{"lessThan", ir.OpLessThan},
	{"greaterThan", ir.OpGreaterThan},
	{"lessThanEqual", ir.OpLessThanEqual},
	{"greaterThanEqual", ir.OpGreaterThanEqual},
	{"radians", ir.OpRadians},
	{"degrees", ir.OpDegrees},
	{"sin", ir.OpSin},
	{"cos", ir.OpCos},
	{"tan", ir.OpTan},
	{"asin", ir.OpAsin},
	{"acos", ir.OpAcos},
	{"atan", ir.OpAtan},
	{"pow", ir.OpPow},
	{"exp2", ir.OpExp2},
	{"log", ir.OpLog},
	{"exp", ir.OpExp},
	{"log2", ir.OpLog2},
	{"sqrt", ir.OpSqrt},
	{"inversesqrt", ir.OpInverseSqrt},
	{"abs", ir.OpAbs},
	{"sign", ir.OpSign},
	{"floor", ir.OpFloor},
	{"ceil", ir.OpCeil},
	{"fract", ir.OpFract},
	{"mod", ir.OpMod},
	{"min", ir.OpMin},
	{"max", ir.OpMax},
	{"clamp", ir.OpClamp},
	{"mix", ir.OpMix},
	{"step", ir.OpStep},
	{"smoothstep", ir.OpSmoothStep},
	{"length", ir.OpLength},
	{"distance", ir.OpDistance},
	{"dot", ir.OpDot},
	{"cross", ir.OpCross},
	{"normalize", ir.OpNormalize},
	{"faceforward", ir.OpFaceForward},
	{"reflect", ir.OpReflect},
	{"refract", ir.OpRefract},
	{"any", ir.OpAny},
	{"all", ir.OpAll},
	{"not", ir.OpVectorLogicalNot},
}

var essl3OperatorFunctions = []struct {
	name string
	op   ir.Operator
}{
	{"sinh", ir.OpSinh},
	{"cosh", ir.OpCosh},
	{"tanh", ir.OpTanh},
	{"asinh", ir.OpAsinh},
	{"acosh", ir.OpAcosh},
	{"atanh", ir.OpAtanh},
	{"trunc", ir.OpTrunc},
	{"round", ir.OpRound},
	{"roundEven", ir.OpRoundEven},
	{"isnan", ir.OpIsNan},
	{"isinf", ir.OpIsInf},
	{"floatBitsToInt", ir.OpFloatBitsToInt},
	{"floatBitsToUint", ir.OpFloatBitsToUint},
	{"intBitsToFloat", ir.OpIntBitsToFloat},
	{"uintBitsToFloat", ir.OpUintBitsToFloat},
	{"packSnorm2x16", ir.OpPackSnorm2x16},
	{"packUnorm2x16", ir.OpPackUnorm2x16},
	{"packHalf2x16", ir.OpPackHalf2x16},
	{"unpackSnorm2x16", ir.OpUnpackSnorm2x16},
	{"unpackUnorm2x16", ir.OpUnpackUnorm2x16},
	{"unpackHalf2x16", ir.OpUnpackHalf2x16},
	{"outerProduct", ir.OpOuterProduct},
	{"transpose", ir.OpTranspose},
	{"determinant", ir.OpDeterminant},
	{"inverse", ir.OpInverse},
	{"dFdx", ir.OpDFdx},
	{"dFdy", ir.OpDFdy},
	{"fwidth", ir.OpFwidth},
}

// IdentifyBuiltIns inserts the stage specific built-in variables and
// ties built-in functions to their operators and extensions.
func IdentifyBuiltIns(stage ir.ShaderStage, spec ShaderSpec, res Resources, table *symbols.Table) {
	const (
		common = symbols.LevelCommon
		essl1  = symbols.LevelESSL1
		essl3  = symbols.LevelESSL3
	)

	switch stage {
	case ir.StageFragment:
		table.Insert(common, builtInVariable("gl_FragCoord", ir.Float, ir.PrecisionMedium, ir.QualFragCoord, 4))
		table.Insert(common, builtInVariable("gl_FrontFacing", ir.Bool, ir.PrecisionUndefined, ir.QualFrontFacing, 1))
		table.Insert(common, builtInVariable("gl_PointCoord", ir.Float, ir.PrecisionMedium, ir.QualPointCoord, 2))

		// CSS shaders have no gl_FragColor and gl_FragData, they blend
		// through css_MixColor and css_ColorMatrix instead.
		if spec != SpecCSSShaders {
			table.Insert(essl1, builtInVariable("gl_FragColor", ir.Float, ir.PrecisionMedium, ir.QualFragColor, 4))

			fragData := builtInVariable("gl_FragData", ir.Float, ir.PrecisionMedium, ir.QualFragData, 4)
			fragData.Type.ArraySize = res.MaxDrawBuffers
			table.Insert(essl1, fragData)

			if res.EXTFragDepth {
				prec := ir.PrecisionMedium
				if res.FragmentPrecisionHigh {
					prec = ir.PrecisionHigh
				}
				depth := builtInVariable("gl_FragDepthEXT", ir.Float, prec, ir.QualFragDepth, 1)
				depth.Extension = ExtEXTFragDepth
				table.Insert(essl1, depth)
			}
		} else {
			table.Insert(essl1, builtInVariable("css_MixColor", ir.Float, ir.PrecisionMedium, ir.QualGlobal, 4))

			cm := symbols.NewVariable("css_ColorMatrix", ir.Matrix(4, 4).WithPrecision(ir.PrecisionMedium).WithQualifier(ir.QualGlobal))
			table.Insert(essl1, cm)
		}

		table.Insert(essl3, builtInVariable("gl_FragDepth", ir.Float, ir.PrecisionHigh, ir.QualFragDepth, 1))

	case ir.StageVertex:
		table.Insert(common, builtInVariable("gl_Position", ir.Float, ir.PrecisionHigh, ir.QualPosition, 4))
		table.Insert(common, builtInVariable("gl_PointSize", ir.Float, ir.PrecisionMedium, ir.QualPointSize, 1))
	}

	for _, f := range operatorFunctions {
		table.RelateToOperator(common, f.name, f.op)
	}
	for _, f := range essl3OperatorFunctions {
		table.RelateToOperator(essl3, f.name, f.op)
	}

	// The ES SL 3.00 level has its own overloads of these.
	for _, f := range operatorFunctions {
		table.RelateToOperator(essl3, f.name, f.op)
	}

	if stage == ir.StageFragment {
		if res.OESStandardDerivatives {
			table.RelateToOperator(essl1, "dFdx", ir.OpDFdx)
			table.RelateToOperator(essl1, "dFdy", ir.OpDFdy)
			table.RelateToOperator(essl1, "fwidth", ir.OpFwidth)

			table.RelateToExtension(essl1, "dFdx", ExtOESStandardDerivatives)
			table.RelateToExtension(essl1, "dFdy", ExtOESStandardDerivatives)
			table.RelateToExtension(essl1, "fwidth", ExtOESStandardDerivatives)
		}

		if res.EXTShaderTextureLOD {
			table.RelateToExtension(essl1, "texture2DLodEXT", ExtEXTShaderTextureLOD)
			table.RelateToExtension(essl1, "texture2DProjLodEXT", ExtEXTShaderTextureLOD)
			table.RelateToExtension(essl1, "textureCubeLodEXT", ExtEXTShaderTextureLOD)
		}
	}

	if res.EXTShaderTextureLOD {
		table.RelateToExtension(essl1, "texture2DGradEXT", ExtEXTShaderTextureLOD)
		table.RelateToExtension(essl1, "texture2DProjGradEXT", ExtEXTShaderTextureLOD)
		table.RelateToExtension(essl1, "textureCubeGradEXT", ExtEXTShaderTextureLOD)
	}

	if res.OESEGLImageExternal {
		// The samplerExternalOES overloads share names with the core
		// texture functions; only those need the extension.
		for _, name := range []string{
			symbols.MangleFunctionName("texture2D", samplerExternalOES, float2),
			symbols.MangleFunctionName("texture2DProj", samplerExternalOES, float3),
			symbols.MangleFunctionName("texture2DProj", samplerExternalOES, float4),
		} {
			if f, ok := table.FindAt(essl1, name).(*symbols.Function); ok {
				f.Extension = ExtOESEGLImageExternal
			}
		}
	}

	if res.ARBTextureRectangle {
		table.RelateToExtension(essl1, "texture2DRect", ExtARBTextureRectangle)
		table.RelateToExtension(essl1, "texture2DRectProj", ExtARBTextureRectangle)
	}
}

// InitBuiltInSymbolTable returns a table with the built-in levels fully
// populated for the given stage, spec and resources, default precisions
// included.
func InitBuiltInSymbolTable(stage ir.ShaderStage, spec ShaderSpec, res Resources) *symbols.Table {
	table := symbols.NewTable()

	switch stage {
	case ir.StageFragment:
		table.SetDefaultPrecision(int1, ir.PrecisionMedium)
	case ir.StageVertex:
		table.SetDefaultPrecision(int1, ir.PrecisionHigh)
		table.SetDefaultPrecision(float1, ir.PrecisionHigh)
	}

	table.SetDefaultPrecision(sampler2D, ir.PrecisionLow)
	table.SetDefaultPrecision(samplerCube, ir.PrecisionLow)

	if res.OESEGLImageExternal {
		table.SetDefaultPrecision(samplerExternalOES, ir.PrecisionLow)
	}
	if res.ARBTextureRectangle {
		table.SetDefaultPrecision(sampler2DRect, ir.PrecisionLow)
	}

	InsertBuiltInFunctions(stage, spec, res, table)
	IdentifyBuiltIns(stage, spec, res, table)

	return table
}
