// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"strconv"
	"strings"

	"github.com/gogpu/translator/ir"
)

// Operators spelled the same in GLSL and HLSL. Every operator
// expression is wrapped in parentheses.
var binaryOperators = map[ir.Operator]string{
	ir.OpAssign:                  " = ",
	ir.OpAddAssign:               " += ",
	ir.OpSubAssign:               " -= ",
	ir.OpMulAssign:               " *= ",
	ir.OpVectorTimesScalarAssign: " *= ",
	ir.OpMatrixTimesScalarAssign: " *= ",
	ir.OpDivAssign:               " /= ",
	ir.OpIModAssign:              " %= ",
	ir.OpBitShiftLeftAssign:      " <<= ",
	ir.OpBitShiftRightAssign:     " >>= ",
	ir.OpBitwiseAndAssign:        " &= ",
	ir.OpBitwiseXorAssign:        " ^= ",
	ir.OpBitwiseOrAssign:         " |= ",

	ir.OpAdd:               " + ",
	ir.OpSub:               " - ",
	ir.OpMul:               " * ",
	ir.OpDiv:               " / ",
	ir.OpIMod:              " % ",
	ir.OpBitShiftLeft:      " << ",
	ir.OpBitShiftRight:     " >> ",
	ir.OpBitwiseAnd:        " & ",
	ir.OpBitwiseXor:        " ^ ",
	ir.OpBitwiseOr:         " | ",
	ir.OpLessThan:          " < ",
	ir.OpGreaterThan:       " > ",
	ir.OpLessThanEqual:     " <= ",
	ir.OpGreaterThanEqual:  " >= ",
	ir.OpVectorTimesScalar: " * ",
	ir.OpMatrixTimesScalar: " * ",
	ir.OpLogicalOr:         " || ",
	ir.OpLogicalAnd:        " && ",
	ir.OpComma:             ", ",

	// Boolean xor is inequality.
	ir.OpLogicalXor: " != ",
}

// Component-wise vector comparisons are plain operators in HLSL.
var vectorRelations = map[ir.Operator]string{
	ir.OpLessThan:         " < ",
	ir.OpGreaterThan:      " > ",
	ir.OpLessThanEqual:    " <= ",
	ir.OpGreaterThanEqual: " >= ",
	ir.OpVectorEqual:      " == ",
	ir.OpVectorNotEqual:   " != ",
}

// intrinsics maps built-in function operators to HLSL intrinsics. An
// empty name marks a function HLSL has no counterpart for.
var intrinsics = map[ir.Operator]string{
	ir.OpRadians:         "radians",
	ir.OpDegrees:         "degrees",
	ir.OpSin:             "sin",
	ir.OpCos:             "cos",
	ir.OpTan:             "tan",
	ir.OpAsin:            "asin",
	ir.OpAcos:            "acos",
	ir.OpSinh:            "sinh",
	ir.OpCosh:            "cosh",
	ir.OpTanh:            "tanh",
	ir.OpPow:             "pow",
	ir.OpExp:             "exp",
	ir.OpLog:             "log",
	ir.OpExp2:            "exp2",
	ir.OpLog2:            "log2",
	ir.OpSqrt:            "sqrt",
	ir.OpInverseSqrt:     "rsqrt",
	ir.OpAbs:             "abs",
	ir.OpSign:            "sign",
	ir.OpFloor:           "floor",
	ir.OpTrunc:           "trunc",
	ir.OpRound:           "round",
	ir.OpCeil:            "ceil",
	ir.OpFract:           "frac",
	ir.OpMin:             "min",
	ir.OpMax:             "max",
	ir.OpClamp:           "clamp",
	ir.OpMix:             "lerp",
	ir.OpStep:            "step",
	ir.OpSmoothStep:      "smoothstep",
	ir.OpIsNan:           "isnan",
	ir.OpIsInf:           "isinf",
	ir.OpFloatBitsToInt:  "asint",
	ir.OpFloatBitsToUint: "asuint",
	ir.OpIntBitsToFloat:  "asfloat",
	ir.OpUintBitsToFloat: "asfloat",
	ir.OpLength:          "length",
	ir.OpDistance:        "distance",
	ir.OpDot:             "dot",
	ir.OpCross:           "cross",
	ir.OpNormalize:       "normalize",
	ir.OpFaceForward:     "faceforward",
	ir.OpReflect:         "reflect",
	ir.OpRefract:         "refract",
	ir.OpDFdx:            "ddx",
	ir.OpDFdy:            "ddy",
	ir.OpFwidth:          "fwidth",
	ir.OpTranspose:       "transpose",
	ir.OpDeterminant:     "determinant",
	ir.OpAny:             "any",
	ir.OpAll:             "all",
}

var swizzleComponents = [4]byte{'x', 'y', 'z', 'w'}

func (w *Writer) VisitSymbol(n *ir.SymbolNode) {
	w.body.WriteString(w.symbolName(n))
	if w.declaringVariables && n.Type().IsArray() {
		w.body.WriteString(arrayBrackets(n.Type()))
	}
}

// symbolName returns the spelling of a variable reference. A sampler
// expands to its texture and sampler state on SM4, so it can be passed
// straight to the texture helpers.
func (w *Writer) symbolName(n *ir.SymbolNode) string {
	switch n.Name {
	case "gl_FragColor":
		return "gl_Color[0]"
	case "gl_FragData":
		return "gl_Color"
	}

	if n.Type().Basic.IsSampler() {
		if w.options.ShaderModel.SeparateSamplers() {
			return textureName(n.Name) + ", " + samplerName(n.Name)
		}
		return samplerName(n.Name)
	}

	return decorate(n.Name)
}

func (w *Writer) VisitConstant(n *ir.ConstantNode) {
	w.writeConstantUnion(n, n.Type(), n.Values)
}

// writeConstantUnion writes the components of a constant starting at
// values[0] and returns the remaining components.
func (w *Writer) writeConstantUnion(n ir.Node, t ir.Type, values []ir.ConstantValue) []ir.ConstantValue {
	if t.Basic == ir.Structure && t.Struct != nil {
		w.body.WriteString(w.ensureStructConstructor(n, t.Struct))
		w.body.WriteByte('(')
		for i := range t.Struct.Fields {
			values = w.writeConstantUnion(n, t.Struct.Fields[i].Type, values)
			if i != len(t.Struct.Fields)-1 {
				w.body.WriteString(", ")
			}
		}
		w.body.WriteByte(')')
		return values
	}

	size := t.ObjectSize()
	writeType := size > 1
	if writeType {
		w.body.WriteString(w.typeName(n, t))
		w.body.WriteByte('(')
	}
	for i := 0; i < size && len(values) > 0; i++ {
		w.body.WriteString(constantString(values[0]))
		values = values[1:]
		if i != size-1 {
			w.body.WriteString(", ")
		}
	}
	if writeType {
		w.body.WriteByte(')')
	}

	return values
}

func constantString(v ir.ConstantValue) string {
	switch v.Kind {
	case ir.ConstFloat:
		s := strconv.FormatFloat(float64(v.F), 'g', -1, 32)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	case ir.ConstInt:
		return strconv.FormatInt(int64(v.I), 10)
	case ir.ConstUInt:
		return strconv.FormatUint(uint64(v.U), 10) + "u"
	default:
		return strconv.FormatBool(v.B)
	}
}

func (w *Writer) VisitBinary(visit ir.Visit, n *ir.BinaryNode) bool {
	switch n.Op {
	case ir.OpInitialize:
		if visit == ir.InVisit {
			w.body.WriteString(" = ")
			w.declaringVariables = false
		}
		return true

	case ir.OpIndexDirect, ir.OpIndexIndirect:
		if n.Left.Type().Basic.IsSampler() && w.options.ShaderModel.SeparateSamplers() {
			w.fail(ErrUnsupportedFeature, n, "indexing a sampler array on %s", w.options.ShaderModel)
			return false
		}
		if n.Op == ir.OpIndexIndirect && n.AddIndexClamp {
			w.writeClampedIndex(visit, n)
			return true
		}
		w.writeTriplet(visit, "", "[", "]")
		return true

	case ir.OpIndexDirectStruct:
		if visit == ir.InVisit {
			s := n.Left.Type().Struct
			idx := n.Right.(*ir.ConstantNode).Values[0].AsInt()
			w.body.WriteByte('.')
			w.body.WriteString(w.fieldName(s, s.Fields[idx].Name))
			return false
		}
		return true

	case ir.OpIndexDirectInterfaceBlock:
		w.fail(ErrUnsupportedFeature, n, "interface blocks")
		return false

	case ir.OpVectorSwizzle:
		if visit == ir.InVisit {
			w.body.WriteByte('.')
			if seq, ok := n.Right.(*ir.AggregateNode); ok {
				for _, c := range seq.Sequence {
					w.body.WriteByte(swizzleComponents[c.(*ir.ConstantNode).Values[0].AsInt()])
				}
			}
			return false
		}
		return true

	case ir.OpEqual, ir.OpNotEqual:
		return w.writeEquality(visit, n)

	case ir.OpVectorTimesMatrix:
		w.writeTriplet(visit, "mul(", ", transpose(", "))")
		return true

	case ir.OpMatrixTimesVector:
		w.writeTriplet(visit, "mul(transpose(", "), ", ")")
		return true

	case ir.OpMatrixTimesMatrix:
		w.writeTriplet(visit, "transpose(mul(transpose(", "), transpose(", ")))")
		return true

	case ir.OpVectorTimesMatrixAssign:
		// The left operand is written twice: "(v = mul(v, transpose(m)))".
		switch visit {
		case ir.PreVisit:
			w.body.WriteByte('(')
		case ir.InVisit:
			w.body.WriteString(" = mul(")
			n.Left.Traverse(w.t)
			w.body.WriteString(", transpose(")
		case ir.PostVisit:
			w.body.WriteString(")))")
		}
		return true

	case ir.OpMatrixTimesMatrixAssign:
		switch visit {
		case ir.PreVisit:
			w.body.WriteByte('(')
		case ir.InVisit:
			w.body.WriteString(" = transpose(mul(transpose(")
			n.Left.Traverse(w.t)
			w.body.WriteString("), transpose(")
		case ir.PostVisit:
			w.body.WriteString("))))")
		}
		return true

	case ir.OpBitShiftLeft, ir.OpBitShiftRight, ir.OpBitwiseAnd, ir.OpBitwiseXor, ir.OpBitwiseOr,
		ir.OpBitShiftLeftAssign, ir.OpBitShiftRightAssign, ir.OpBitwiseAndAssign, ir.OpBitwiseXorAssign, ir.OpBitwiseOrAssign:
		if !w.options.ShaderModel.SupportsIntegerOps() {
			w.fail(ErrUnsupportedFeature, n, "bit operations require %s", ShaderModel4_0)
			return false
		}
	}

	op, ok := binaryOperators[n.Op]
	if !ok {
		w.fail(ErrInternalError, n, "binary operator %v", n.Op)
		return false
	}
	w.writeTriplet(visit, "(", op, ")")

	return true
}

// writeEquality writes a comparison yielding one bool. Vectors and
// matrices compare component-wise, so the result is reduced with all().
func (w *Writer) writeEquality(visit ir.Visit, n *ir.BinaryNode) bool {
	t := n.Left.Type()
	if t.Basic == ir.Structure || t.IsArray() {
		w.fail(ErrUnsupportedFeature, n, "comparison of %s values", t.CompleteString())
		return false
	}

	not := ""
	if n.Op == ir.OpNotEqual {
		not = "!"
	}

	switch {
	case t.IsScalar() && n.Op == ir.OpEqual:
		w.writeTriplet(visit, "(", " == ", ")")
	case t.IsScalar():
		w.writeTriplet(visit, "(", " != ", ")")
	default:
		w.writeTriplet(visit, not+"all(", " == ", ")")
	}
	return true
}

// writeClampedIndex writes an index clamped to [0, size-1] where size is
// the array size or the vector or matrix dimension of the left operand.
func (w *Writer) writeClampedIndex(visit ir.Visit, n *ir.BinaryNode) {
	switch visit {
	case ir.InVisit:
		w.body.WriteString("[int(clamp(float(")
	case ir.PostVisit:
		lt := n.Left.Type()
		maxIndex := lt.NominalSize() - 1
		if lt.IsArray() {
			maxIndex = lt.ArraySize - 1
		}
		w.body.WriteString("), 0.0, float(" + strconv.Itoa(maxIndex) + ")))]")
	}
}

func (w *Writer) VisitUnary(visit ir.Visit, n *ir.UnaryNode) bool {
	switch n.Op {
	case ir.OpNegative:
		w.writeTriplet(visit, "(-", "", ")")
	case ir.OpPositive:
		w.writeTriplet(visit, "(+", "", ")")
	case ir.OpLogicalNot, ir.OpVectorLogicalNot:
		w.writeTriplet(visit, "(!", "", ")")
	case ir.OpBitwiseNot:
		if !w.options.ShaderModel.SupportsIntegerOps() {
			w.fail(ErrUnsupportedFeature, n, "bit operations require %s", ShaderModel4_0)
			return false
		}
		w.writeTriplet(visit, "(~", "", ")")
	case ir.OpPostIncrement:
		w.writeTriplet(visit, "(", "", "++)")
	case ir.OpPostDecrement:
		w.writeTriplet(visit, "(", "", "--)")
	case ir.OpPreIncrement:
		w.writeTriplet(visit, "(++", "", ")")
	case ir.OpPreDecrement:
		w.writeTriplet(visit, "(--", "", ")")
	case ir.OpAtan:
		w.writeTriplet(visit, "atan(", "", ")")
	default:
		name, ok := intrinsics[n.Op]
		if !ok {
			w.fail(ErrUnsupportedFeature, n, "built-in function %v", n.Op)
			return false
		}
		w.writeTriplet(visit, name+"(", "", ")")
	}

	return true
}

func (w *Writer) VisitAggregate(visit ir.Visit, n *ir.AggregateNode) bool {
	switch n.Op {
	case ir.OpSequence:
		w.writeSequence(n)
		return false

	case ir.OpPrototype:
		w.body.WriteString(w.typeName(n, n.Type()))
		w.body.WriteByte(' ')
		w.body.WriteString(w.userFunctionName(n.Name))
		w.body.WriteByte('(')
		w.writeFunctionParameters(n.Sequence)
		w.body.WriteByte(')')
		return false

	case ir.OpFunction:
		w.writeFunction(n)
		return false

	case ir.OpFunctionCall:
		if visit == ir.PreVisit {
			name := w.userFunctionName(n.Name)
			if !n.UserDefined {
				name = w.ensureTextureFunction(n)
			}
			w.body.WriteString(name)
			w.body.WriteByte('(')
		} else {
			w.writeTriplet(visit, "", ", ", ")")
		}
		return true

	case ir.OpParameters:
		w.writeFunctionParameters(n.Sequence)
		return false

	case ir.OpDeclaration:
		switch visit {
		case ir.PreVisit:
			first, ok := n.Sequence[0].(ir.Typed)
			if !ok {
				w.fail(ErrInvalidTree, n, "declaration without a typed child")
				return false
			}
			w.writeDeclarationType(first, first.Type())
			w.body.WriteByte(' ')
			w.declaringVariables = true
		case ir.InVisit:
			w.body.WriteString(", ")
			w.declaringVariables = true
		default:
			w.declaringVariables = false
		}
		return true

	case ir.OpInvariantDeclaration:
		// Output invariance is left to the runtime.
		return false

	case ir.OpConstructStruct:
		if visit == ir.PreVisit {
			w.body.WriteString(w.ensureStructConstructor(n, n.Type().Struct))
			w.body.WriteByte('(')
		} else {
			w.writeTriplet(visit, "", ", ", ")")
		}
		return true

	case ir.OpMul:
		// matrixCompMult
		w.writeTriplet(visit, "(", " * ", ")")
		return true

	case ir.OpAtan:
		w.writeTriplet(visit, "atan2(", ", ", ")")
		return true

	case ir.OpMod:
		if visit == ir.PreVisit {
			w.ensureModFunction(n)
		}
		w.writeTriplet(visit, "mod(", ", ", ")")
		return true
	}

	if n.Op.IsConstructor() {
		return w.writeConstructor(visit, n)
	}

	if op, ok := vectorRelations[n.Op]; ok {
		w.writeTriplet(visit, "(", op, ")")
		return true
	}

	name, ok := intrinsics[n.Op]
	if !ok {
		w.fail(ErrUnsupportedFeature, n, "built-in function %v", n.Op)
		return false
	}
	w.writeTriplet(visit, name+"(", ", ", ")")

	return true
}

// writeConstructor writes a vector, matrix or scalar constructor. A
// single argument is a cast, which replicates a scalar and drops the
// extra components of a larger vector.
func (w *Writer) writeConstructor(visit ir.Visit, n *ir.AggregateNode) bool {
	t := n.Type()

	if len(n.Sequence) != 1 {
		if visit == ir.PreVisit {
			w.body.WriteString(w.typeName(n, t))
		}
		w.writeTriplet(visit, "(", ", ", ")")
		return true
	}

	arg, ok := n.Sequence[0].(ir.Typed)
	if !ok {
		w.fail(ErrInvalidTree, n, "constructor argument is not an expression")
		return false
	}
	at := arg.Type()
	if t.IsMatrix() && (!at.IsMatrix() || at.Cols() != t.Cols() || at.Rows() != t.Rows()) {
		w.fail(ErrUnsupportedFeature, n, "matrix constructed from %s", at.CompleteString())
		return false
	}

	if visit == ir.PreVisit {
		w.body.WriteString("((" + w.typeName(n, t) + ")(")
	}
	w.writeTriplet(visit, "", "", "))")
	return true
}

// writeDeclarationType writes the storage class and the type of a
// declaration. Global variables are static; uniforms and stage
// variables never reach here.
func (w *Writer) writeDeclarationType(n ir.Node, t ir.Type) {
	if w.t.Depth() == 1 {
		w.body.WriteString("static ")
	}
	if t.Qualifier == ir.QualConst {
		w.body.WriteString("const ")
	}
	w.body.WriteString(w.typeName(n, t))
}

// userFunctionName returns the name of a function defined in the shader.
func (w *Writer) userFunctionName(mangled string) string {
	name := functionName(mangled)
	if name == "main" {
		return userMainName
	}
	return decorate(name)
}

// writeFunctionParameters writes a comma separated parameter list.
func (w *Writer) writeFunctionParameters(params []ir.Node) {
	for i, p := range params {
		sym, ok := p.(*ir.SymbolNode)
		if !ok {
			w.fail(ErrInvalidTree, p, "function parameter is not a symbol")
			return
		}

		t := sym.Type()
		if t.Basic.IsSampler() {
			if w.options.ShaderModel.SeparateSamplers() {
				w.body.WriteString(w.samplerTypeName(sym, t) + " " + textureName(sym.Name) + ", SamplerState " + samplerName(sym.Name))
			} else {
				w.body.WriteString(w.samplerTypeName(sym, t) + " " + samplerName(sym.Name))
			}
		} else {
			w.body.WriteString(parameterQualifier(t.Qualifier))
			w.body.WriteByte(' ')
			w.body.WriteString(w.typeName(sym, t))
			if sym.Name != "" {
				w.body.WriteByte(' ')
				w.body.WriteString(decorate(sym.Name))
			}
			if t.IsArray() {
				w.body.WriteString(arrayBrackets(t))
			}
		}

		if i != len(params)-1 {
			w.body.WriteString(", ")
		}
	}
}
