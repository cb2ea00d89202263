// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"strconv"

	"github.com/gogpu/translator/ir"
	"github.com/gogpu/translator/transform"
)

// Every operator expression is wrapped in its own parentheses, so the
// output never depends on precedence.

var binaryOperators = map[ir.Operator]string{
	ir.OpAssign:                  " = ",
	ir.OpAddAssign:               " += ",
	ir.OpSubAssign:               " -= ",
	ir.OpDivAssign:               " /= ",
	ir.OpIModAssign:              " %= ",
	ir.OpMulAssign:               " *= ",
	ir.OpVectorTimesMatrixAssign: " *= ",
	ir.OpVectorTimesScalarAssign: " *= ",
	ir.OpMatrixTimesScalarAssign: " *= ",
	ir.OpMatrixTimesMatrixAssign: " *= ",
	ir.OpBitShiftLeftAssign:      " <<= ",
	ir.OpBitShiftRightAssign:     " >>= ",
	ir.OpBitwiseAndAssign:        " &= ",
	ir.OpBitwiseXorAssign:        " ^= ",
	ir.OpBitwiseOrAssign:         " |= ",

	ir.OpAdd:                " + ",
	ir.OpSub:                " - ",
	ir.OpMul:                " * ",
	ir.OpDiv:                " / ",
	ir.OpIMod:               " % ",
	ir.OpBitShiftLeft:       " << ",
	ir.OpBitShiftRight:      " >> ",
	ir.OpBitwiseAnd:         " & ",
	ir.OpBitwiseXor:         " ^ ",
	ir.OpBitwiseOr:          " | ",
	ir.OpEqual:              " == ",
	ir.OpNotEqual:           " != ",
	ir.OpLessThan:           " < ",
	ir.OpGreaterThan:        " > ",
	ir.OpLessThanEqual:      " <= ",
	ir.OpGreaterThanEqual:   " >= ",
	ir.OpVectorTimesScalar:  " * ",
	ir.OpVectorTimesMatrix:  " * ",
	ir.OpMatrixTimesVector:  " * ",
	ir.OpMatrixTimesScalar:  " * ",
	ir.OpMatrixTimesMatrix:  " * ",
	ir.OpLogicalOr:          " || ",
	ir.OpLogicalXor:         " ^^ ",
	ir.OpLogicalAnd:         " && ",
	ir.OpComma:              ", ",
}

// Vector comparisons are written as function calls.
var vectorRelations = map[ir.Operator]string{
	ir.OpLessThan:         "lessThan(",
	ir.OpGreaterThan:      "greaterThan(",
	ir.OpLessThanEqual:    "lessThanEqual(",
	ir.OpGreaterThanEqual: "greaterThanEqual(",
	ir.OpVectorEqual:      "equal(",
	ir.OpVectorNotEqual:   "notEqual(",
}

var swizzleComponents = [4]byte{'x', 'y', 'z', 'w'}

func (w *Writer) VisitSymbol(n *ir.SymbolNode) {
	if w.unroll.NeedsToReplaceSymbolWithValue(n) {
		w.out.WriteString(strconv.Itoa(w.unroll.LoopIndexValue(n)))
	} else {
		w.out.WriteString(w.hashVariableName(n.Name))
	}

	if w.declaringVariables && n.Type().IsArray() {
		w.out.WriteString(arrayBrackets(n.Type()))
	}
}

func (w *Writer) VisitConstant(n *ir.ConstantNode) {
	w.writeConstantUnion(n.Type(), n.Values)
}

func (w *Writer) VisitBinary(visit ir.Visit, n *ir.BinaryNode) bool {
	switch n.Op {
	case ir.OpInitialize:
		if visit == ir.InVisit {
			w.out.WriteString(" = ")
			// Array bounds are only written for the declared name.
			w.declaringVariables = false
		}
		return true

	case ir.OpIndexDirect:
		w.writeTriplet(visit, "", "[", "]")
		return true

	case ir.OpIndexIndirect:
		if !n.AddIndexClamp {
			w.writeTriplet(visit, "", "[", "]")
			return true
		}
		w.writeClampedIndex(visit, n)
		return true

	case ir.OpIndexDirectStruct:
		if visit == ir.InVisit {
			w.out.WriteByte('.')
			w.out.WriteString(w.structFieldName(n))
			return false
		}
		return true

	case ir.OpIndexDirectInterfaceBlock:
		if visit == ir.InVisit {
			w.out.WriteByte('.')
			w.out.WriteString(w.blockFieldName(n))
			return false
		}
		return true

	case ir.OpVectorSwizzle:
		if visit == ir.InVisit {
			w.out.WriteByte('.')
			if seq, ok := n.Right.(*ir.AggregateNode); ok {
				for _, c := range seq.Sequence {
					w.out.WriteByte(swizzleComponents[c.(*ir.ConstantNode).Values[0].AsInt()])
				}
			}
			return false
		}
		return true
	}

	op, ok := binaryOperators[n.Op]
	if !ok {
		panic("unreachable: binary operator " + n.Op.String())
	}
	w.writeTriplet(visit, "(", op, ")")

	return true
}

// writeClampedIndex writes an index clamped to [0, size-1] where size is
// the array size or the vector or matrix dimension of the left operand.
func (w *Writer) writeClampedIndex(visit ir.Visit, n *ir.BinaryNode) {
	strategy := w.clampingStrategy()

	switch visit {
	case ir.InVisit:
		if strategy == transform.ClampWithClampIntrinsic {
			w.out.WriteString("[int(clamp(float(")
		} else {
			w.out.WriteString("[" + transform.IntClampFunctionName + "(")
		}

	case ir.PostVisit:
		lt := n.Left.Type()
		maxIndex := lt.NominalSize() - 1
		if lt.IsArray() {
			maxIndex = lt.ArraySize - 1
		}

		if strategy == transform.ClampWithClampIntrinsic {
			w.out.WriteString("), 0.0, float(" + strconv.Itoa(maxIndex) + ")))]")
		} else {
			w.out.WriteString(", 0, " + strconv.Itoa(maxIndex) + ")]")
		}
	}
}

func (w *Writer) structFieldName(n *ir.BinaryNode) string {
	s := n.Left.Type().Struct
	idx := n.Right.(*ir.ConstantNode).Values[0].AsInt()
	name := s.Fields[idx].Name
	if w.isBuiltIn(s.Name) {
		return name
	}
	return w.hashName(name)
}

func (w *Writer) blockFieldName(n *ir.BinaryNode) string {
	b := n.Left.Type().Block
	idx := n.Right.(*ir.ConstantNode).Values[0].AsInt()
	return w.hashName(b.Fields[idx].Name)
}

func (w *Writer) VisitUnary(visit ir.Visit, n *ir.UnaryNode) bool {
	switch n.Op {
	case ir.OpNegative:
		w.writeTriplet(visit, "(-", "", ")")
	case ir.OpPositive:
		w.writeTriplet(visit, "(+", "", ")")
	case ir.OpLogicalNot:
		w.writeTriplet(visit, "(!", "", ")")
	case ir.OpBitwiseNot:
		w.writeTriplet(visit, "(~", "", ")")
	case ir.OpVectorLogicalNot:
		w.writeTriplet(visit, "not(", "", ")")
	case ir.OpPostIncrement:
		w.writeTriplet(visit, "(", "", "++)")
	case ir.OpPostDecrement:
		w.writeTriplet(visit, "(", "", "--)")
	case ir.OpPreIncrement:
		w.writeTriplet(visit, "(++", "", ")")
	case ir.OpPreDecrement:
		w.writeTriplet(visit, "(--", "", ")")
	default:
		name := n.Op.FunctionName()
		if name == "" {
			panic("unreachable: unary operator " + n.Op.String())
		}
		w.writeBuiltInFunctionTriplet(visit, name+"(", n.UseEmulatedFunction)
	}

	return true
}

func (w *Writer) VisitAggregate(visit ir.Visit, n *ir.AggregateNode) bool {
	switch n.Op {
	case ir.OpSequence:
		w.writeSequence(n)
		return false

	case ir.OpPrototype:
		w.writeVariableType(n.Type())
		w.out.WriteByte(' ')
		w.out.WriteString(w.hashFunctionName(n.Name))
		w.out.WriteByte('(')
		w.writeFunctionParameters(n.Sequence)
		w.out.WriteByte(')')
		return false

	case ir.OpFunction:
		w.writeFunction(n)
		return false

	case ir.OpFunctionCall:
		if visit == ir.PreVisit {
			w.out.WriteString(w.hashFunctionName(n.Name))
			w.out.WriteByte('(')
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
				panic("unreachable: declaration without a typed child")
			}
			w.writeVariableType(first.Type())
			w.out.WriteByte(' ')
			w.declaringVariables = true
		case ir.InVisit:
			w.out.WriteString(", ")
			w.declaringVariables = true
		default:
			w.declaringVariables = false
		}
		return true

	case ir.OpInvariantDeclaration:
		sym, ok := n.Sequence[0].(*ir.SymbolNode)
		if !ok {
			panic("unreachable: invariant declaration of a non symbol")
		}
		w.out.WriteString("invariant ")
		w.out.WriteString(w.hashVariableName(sym.Name))
		return false

	case ir.OpConstructStruct:
		if visit == ir.PreVisit {
			w.out.WriteString(w.hashName(n.Type().Struct.Name))
			w.out.WriteByte('(')
		} else {
			w.writeTriplet(visit, "", ", ", ")")
		}
		return true

	case ir.OpMul:
		w.writeBuiltInFunctionTriplet(visit, "matrixCompMult(", n.UseEmulatedFunction)
		return true
	}

	if n.Op.IsConstructor() {
		w.writeTriplet(visit, w.typeName(n.Type())+"(", ", ", ")")
		return true
	}

	if name, ok := vectorRelations[n.Op]; ok {
		w.writeBuiltInFunctionTriplet(visit, name, n.UseEmulatedFunction)
		return true
	}

	name := n.Op.FunctionName()
	if name == "" {
		panic("unreachable: aggregate operator " + n.Op.String())
	}
	w.writeBuiltInFunctionTriplet(visit, name+"(", n.UseEmulatedFunction)

	return true
}
