// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ir

// Operator tags unary, binary and aggregate nodes as well as branches.
type Operator uint16

const (
	OpNull Operator = iota

	// Aggregate structure
	OpSequence
	OpFunctionCall
	OpFunction
	OpParameters
	OpDeclaration
	OpInvariantDeclaration
	OpPrototype

	// Unary
	OpNegative
	OpPositive
	OpLogicalNot
	OpVectorLogicalNot
	OpBitwiseNot
	OpPostIncrement
	OpPostDecrement
	OpPreIncrement
	OpPreDecrement

	// Binary arithmetic and logic
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpIMod
	OpEqual
	OpNotEqual
	OpLessThan
	OpGreaterThan
	OpLessThanEqual
	OpGreaterThanEqual
	OpComma
	OpVectorTimesScalar
	OpVectorTimesMatrix
	OpMatrixTimesVector
	OpMatrixTimesScalar
	OpMatrixTimesMatrix
	OpLogicalOr
	OpLogicalXor
	OpLogicalAnd
	OpBitShiftLeft
	OpBitShiftRight
	OpBitwiseAnd
	OpBitwiseXor
	OpBitwiseOr

	// Indexing
	OpIndexDirect
	OpIndexIndirect
	OpIndexDirectStruct
	OpIndexDirectInterfaceBlock
	OpVectorSwizzle

	// Built-in functions with a dedicated operator
	OpRadians
	OpDegrees
	OpSin
	OpCos
	OpTan
	OpAsin
	OpAcos
	OpAtan
	OpSinh
	OpCosh
	OpTanh
	OpAsinh
	OpAcosh
	OpAtanh
	OpPow
	OpExp
	OpLog
	OpExp2
	OpLog2
	OpSqrt
	OpInverseSqrt
	OpAbs
	OpSign
	OpFloor
	OpTrunc
	OpRound
	OpRoundEven
	OpCeil
	OpFract
	OpMod
	OpMin
	OpMax
	OpClamp
	OpMix
	OpStep
	OpSmoothStep
	OpIsNan
	OpIsInf
	OpFloatBitsToInt
	OpFloatBitsToUint
	OpIntBitsToFloat
	OpUintBitsToFloat
	OpPackSnorm2x16
	OpPackUnorm2x16
	OpPackHalf2x16
	OpUnpackSnorm2x16
	OpUnpackUnorm2x16
	OpUnpackHalf2x16
	OpLength
	OpDistance
	OpDot
	OpCross
	OpNormalize
	OpFaceForward
	OpReflect
	OpRefract
	OpDFdx
	OpDFdy
	OpFwidth
	OpOuterProduct
	OpTranspose
	OpDeterminant
	OpInverse
	OpVectorEqual
	OpVectorNotEqual
	OpAny
	OpAll

	// Branches
	OpKill
	OpReturn
	OpBreak
	OpContinue

	// Constructors
	OpConstructInt
	OpConstructUInt
	OpConstructBool
	OpConstructFloat
	OpConstructVec2
	OpConstructVec3
	OpConstructVec4
	OpConstructBVec2
	OpConstructBVec3
	OpConstructBVec4
	OpConstructIVec2
	OpConstructIVec3
	OpConstructIVec4
	OpConstructUVec2
	OpConstructUVec3
	OpConstructUVec4
	OpConstructMat2
	OpConstructMat2x3
	OpConstructMat2x4
	OpConstructMat3x2
	OpConstructMat3
	OpConstructMat3x4
	OpConstructMat4x2
	OpConstructMat4x3
	OpConstructMat4
	OpConstructStruct

	// Assignments
	OpAssign
	OpInitialize
	OpAddAssign
	OpSubAssign
	OpMulAssign
	OpVectorTimesMatrixAssign
	OpVectorTimesScalarAssign
	OpMatrixTimesScalarAssign
	OpMatrixTimesMatrixAssign
	OpDivAssign
	OpIModAssign
	OpBitShiftLeftAssign
	OpBitShiftRightAssign
	OpBitwiseAndAssign
	OpBitwiseXorAssign
	OpBitwiseOrAssign

	opCount
)

var opNames = [opCount]string{
	OpNull:                      "null",
	OpSequence:                  "Sequence",
	OpFunctionCall:              "Function Call",
	OpFunction:                  "Function Definition",
	OpParameters:                "Function Parameters",
	OpDeclaration:               "Declaration",
	OpInvariantDeclaration:      "Invariant Declaration",
	OpPrototype:                 "Function Prototype",
	OpNegative:                  "Negate value",
	OpPositive:                  "Positive sign",
	OpLogicalNot:                "Negate conditional",
	OpVectorLogicalNot:          "not",
	OpBitwiseNot:                "bit-wise not",
	OpPostIncrement:             "Post-Increment",
	OpPostDecrement:             "Post-Decrement",
	OpPreIncrement:              "Pre-Increment",
	OpPreDecrement:              "Pre-Decrement",
	OpAdd:                       "add",
	OpSub:                       "subtract",
	OpMul:                       "component-wise multiply",
	OpDiv:                       "divide",
	OpIMod:                      "modulo",
	OpEqual:                     "Compare Equal",
	OpNotEqual:                  "Compare Not Equal",
	OpLessThan:                  "Compare Less Than",
	OpGreaterThan:               "Compare Greater Than",
	OpLessThanEqual:             "Compare Less Than or Equal",
	OpGreaterThanEqual:          "Compare Greater Than or Equal",
	OpComma:                     "comma",
	OpVectorTimesScalar:         "vector-scale",
	OpVectorTimesMatrix:         "vector-times-matrix",
	OpMatrixTimesVector:         "matrix-times-vector",
	OpMatrixTimesScalar:         "matrix-scale",
	OpMatrixTimesMatrix:         "matrix-multiply",
	OpLogicalOr:                 "logical-or",
	OpLogicalXor:                "logical-xor",
	OpLogicalAnd:                "logical-and",
	OpBitShiftLeft:              "bit-wise shift left",
	OpBitShiftRight:             "bit-wise shift right",
	OpBitwiseAnd:                "bit-wise and",
	OpBitwiseXor:                "bit-wise xor",
	OpBitwiseOr:                 "bit-wise or",
	OpIndexDirect:               "direct index",
	OpIndexIndirect:             "indirect index",
	OpIndexDirectStruct:         "direct index for structure",
	OpIndexDirectInterfaceBlock: "direct index for interface block",
	OpVectorSwizzle:             "vector swizzle",
	OpRadians:                   "radians",
	OpDegrees:                   "degrees",
	OpSin:                       "sin",
	OpCos:                       "cos",
	OpTan:                       "tan",
	OpAsin:                      "asin",
	OpAcos:                      "acos",
	OpAtan:                      "atan",
	OpSinh:                      "sinh",
	OpCosh:                      "cosh",
	OpTanh:                      "tanh",
	OpAsinh:                     "asinh",
	OpAcosh:                     "acosh",
	OpAtanh:                     "atanh",
	OpPow:                       "pow",
	OpExp:                       "exp",
	OpLog:                       "log",
	OpExp2:                      "exp2",
	OpLog2:                      "log2",
	OpSqrt:                      "sqrt",
	OpInverseSqrt:               "inversesqrt",
	OpAbs:                       "abs",
	OpSign:                      "sign",
	OpFloor:                     "floor",
	OpTrunc:                     "trunc",
	OpRound:                     "round",
	OpRoundEven:                 "roundEven",
	OpCeil:                      "ceil",
	OpFract:                     "fract",
	OpMod:                       "mod",
	OpMin:                       "min",
	OpMax:                       "max",
	OpClamp:                     "clamp",
	OpMix:                       "mix",
	OpStep:                      "step",
	OpSmoothStep:                "smoothstep",
	OpIsNan:                     "isnan",
	OpIsInf:                     "isinf",
	OpFloatBitsToInt:            "floatBitsToInt",
	OpFloatBitsToUint:           "floatBitsToUint",
	OpIntBitsToFloat:            "intBitsToFloat",
	OpUintBitsToFloat:           "uintBitsToFloat",
	OpPackSnorm2x16:             "packSnorm2x16",
	OpPackUnorm2x16:             "packUnorm2x16",
	OpPackHalf2x16:              "packHalf2x16",
	OpUnpackSnorm2x16:           "unpackSnorm2x16",
	OpUnpackUnorm2x16:           "unpackUnorm2x16",
	OpUnpackHalf2x16:            "unpackHalf2x16",
	OpLength:                    "length",
	OpDistance:                  "distance",
	OpDot:                       "dot",
	OpCross:                     "cross",
	OpNormalize:                 "normalize",
	OpFaceForward:               "faceforward",
	OpReflect:                   "reflect",
	OpRefract:                   "refract",
	OpDFdx:                      "dFdx",
	OpDFdy:                      "dFdy",
	OpFwidth:                    "fwidth",
	OpOuterProduct:              "outerProduct",
	OpTranspose:                 "transpose",
	OpDeterminant:               "determinant",
	OpInverse:                   "inverse",
	OpVectorEqual:               "equal",
	OpVectorNotEqual:            "notEqual",
	OpAny:                       "any",
	OpAll:                       "all",
	OpKill:                      "kill",
	OpReturn:                    "return",
	OpBreak:                     "break",
	OpContinue:                  "continue",
	OpConstructInt:              "Construct int",
	OpConstructUInt:             "Construct uint",
	OpConstructBool:             "Construct bool",
	OpConstructFloat:            "Construct float",
	OpConstructVec2:             "Construct vec2",
	OpConstructVec3:             "Construct vec3",
	OpConstructVec4:             "Construct vec4",
	OpConstructBVec2:            "Construct bvec2",
	OpConstructBVec3:            "Construct bvec3",
	OpConstructBVec4:            "Construct bvec4",
	OpConstructIVec2:            "Construct ivec2",
	OpConstructIVec3:            "Construct ivec3",
	OpConstructIVec4:            "Construct ivec4",
	OpConstructUVec2:            "Construct uvec2",
	OpConstructUVec3:            "Construct uvec3",
	OpConstructUVec4:            "Construct uvec4",
	OpConstructMat2:             "Construct mat2",
	OpConstructMat2x3:           "Construct mat2x3",
	OpConstructMat2x4:           "Construct mat2x4",
	OpConstructMat3x2:           "Construct mat3x2",
	OpConstructMat3:             "Construct mat3",
	OpConstructMat3x4:           "Construct mat3x4",
	OpConstructMat4x2:           "Construct mat4x2",
	OpConstructMat4x3:           "Construct mat4x3",
	OpConstructMat4:             "Construct mat4",
	OpConstructStruct:           "Construct structure",
	OpAssign:                    "move second child to first child",
	OpInitialize:                "initialize first child with second child",
	OpAddAssign:                 "add second child into first child",
	OpSubAssign:                 "subtract second child into first child",
	OpMulAssign:                 "multiply second child into first child",
	OpVectorTimesMatrixAssign:   "matrix mult second child into first child",
	OpVectorTimesScalarAssign:   "vector scale second child into first child",
	OpMatrixTimesScalarAssign:   "matrix scale second child into first child",
	OpMatrixTimesMatrixAssign:   "matrix mult second child into first child",
	OpDivAssign:                 "divide second child into first child",
	OpIModAssign:                "modulo second child into first child",
	OpBitShiftLeftAssign:        "bit-wise shift first child left by second child",
	OpBitShiftRightAssign:       "bit-wise shift first child right by second child",
	OpBitwiseAndAssign:          "bit-wise and second child into first child",
	OpBitwiseXorAssign:          "bit-wise xor second child into first child",
	OpBitwiseOrAssign:           "bit-wise or second child into first child",
}

// String returns a description of the operator used in tree dumps.
func (op Operator) String() string {
	if op < opCount && opNames[op] != "" {
		return opNames[op]
	}
	return "unknown operator"
}

// FunctionName returns the GLSL function spelling of a built-in
// function operator, or "" if op is not one.
func (op Operator) FunctionName() string {
	if op >= OpRadians && op <= OpAll {
		return opNames[op]
	}
	return ""
}

// IsAssignment reports whether op writes its left operand.
// Initialization is not an assignment.
func (op Operator) IsAssignment() bool {
	switch op {
	case OpAssign, OpAddAssign, OpSubAssign, OpMulAssign,
		OpVectorTimesMatrixAssign, OpVectorTimesScalarAssign,
		OpMatrixTimesScalarAssign, OpMatrixTimesMatrixAssign,
		OpDivAssign, OpIModAssign,
		OpBitShiftLeftAssign, OpBitShiftRightAssign,
		OpBitwiseAndAssign, OpBitwiseXorAssign, OpBitwiseOrAssign:
		return true
	default:
		return false
	}
}

// IsIncDec reports whether op is a pre or post increment or decrement.
func (op Operator) IsIncDec() bool {
	return op >= OpPostIncrement && op <= OpPreDecrement
}

// IsConstructor reports whether op is a type constructor.
func (op Operator) IsConstructor() bool {
	return op >= OpConstructInt && op <= OpConstructStruct
}

// IsRelational reports whether op is one of the six scalar comparisons.
func (op Operator) IsRelational() bool {
	return op >= OpEqual && op <= OpGreaterThanEqual
}

// IsBranch reports whether op is a jump.
func (op Operator) IsBranch() bool {
	return op >= OpKill && op <= OpContinue
}
