// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"strconv"

	"github.com/gogpu/translator/ir"
)

// typeName returns the GLSL spelling of t without qualifiers or array
// bounds, e.g. "vec4", "mat2x3" or the struct name.
func (w *Writer) typeName(t ir.Type) string {
	switch {
	case t.IsMatrix():
		if t.Cols() == t.Rows() {
			return "mat" + strconv.Itoa(t.Cols())
		}
		return "mat" + strconv.Itoa(t.Cols()) + "x" + strconv.Itoa(t.Rows())

	case t.IsVector():
		var prefix string
		switch t.Basic {
		case ir.Int:
			prefix = "ivec"
		case ir.UInt:
			prefix = "uvec"
		case ir.Bool:
			prefix = "bvec"
		default:
			prefix = "vec"
		}
		return prefix + strconv.Itoa(t.NominalSize())

	case t.Basic == ir.Structure && t.Struct != nil:
		return w.hashName(t.Struct.Name)

	default:
		return t.Basic.String()
	}
}

// arrayBrackets returns "[N]" for the array size of t.
func arrayBrackets(t ir.Type) string {
	return "[" + strconv.Itoa(t.ArraySize) + "]"
}

// qualifierString returns the storage qualifier keyword of t for the
// target, or "" when none is written.
func (w *Writer) qualifierString(t ir.Type) string {
	q := t.Qualifier
	if q == ir.QualTemporary || q == ir.QualGlobal {
		return ""
	}

	if w.options.Target != TargetGLSLCore {
		return q.String()
	}

	vertex := w.options.Stage == ir.StageVertex
	switch q {
	case ir.QualAttribute:
		return "in"
	case ir.QualVaryingIn, ir.QualVaryingOut:
		if vertex {
			return "out"
		}
		return "in"
	case ir.QualInvariantVaryingIn, ir.QualInvariantVaryingOut:
		if vertex {
			return "invariant out"
		}
		return "invariant in"
	default:
		return q.String()
	}
}

// writeVariablePrecision writes the precision keyword if the target has
// precision qualifiers and reports whether anything was written.
func (w *Writer) writeVariablePrecision(p ir.Precision) bool {
	if w.options.Target != TargetESSL || p == ir.PrecisionUndefined {
		return false
	}
	w.out.WriteString(p.String())
	return true
}

func (w *Writer) writeLayoutQualifier(t ir.Type) {
	l := t.Layout
	if l.IsEmpty() || w.options.Target == TargetGLSL {
		return
	}

	var args []string
	if l.HasLocation {
		args = append(args, "location = "+strconv.Itoa(l.Location))
	}
	if l.BlockStorage != ir.BlockStorageUnspecified {
		args = append(args, l.BlockStorage.String())
	}
	switch l.MatrixPacking {
	case ir.MatrixPackingRowMajor:
		args = append(args, "row_major")
	case ir.MatrixPackingColumnMajor:
		args = append(args, "column_major")
	}

	w.out.WriteString("layout(")
	for i, a := range args {
		if i > 0 {
			w.out.WriteString(", ")
		}
		w.out.WriteString(a)
	}
	w.out.WriteString(") ")
}

// writeVariableType writes the qualifiers and the type of a declaration.
// A named struct is written out in full the first time it is seen.
func (w *Writer) writeVariableType(t ir.Type) {
	w.writeLayoutQualifier(t)

	q := t.Qualifier
	if t.Invariant && q != ir.QualInvariantVaryingIn && q != ir.QualInvariantVaryingOut {
		w.out.WriteString("invariant ")
	}
	if qs := w.qualifierString(t); qs != "" {
		w.out.WriteString(qs)
		w.out.WriteByte(' ')
	}
	if w.writeVariablePrecision(t.Precision) {
		w.out.WriteByte(' ')
	}

	if t.Basic == ir.Structure && t.Struct != nil && !w.structDeclared(t.Struct) {
		w.declareStruct(t.Struct)
		return
	}

	w.out.WriteString(w.typeName(t))
}

// structDeclared reports whether s was written already. Anonymous
// structs are never recorded, so they are declared at every use.
func (w *Writer) structDeclared(s *ir.Struct) bool {
	if s.Name == "" {
		return false
	}
	_, ok := w.declaredStructs[s.ID]
	return ok
}

func (w *Writer) declareStruct(s *ir.Struct) {
	w.out.WriteString("struct ")
	w.out.WriteString(w.hashName(s.Name))
	w.out.WriteString("{\n")

	for i := range s.Fields {
		f := &s.Fields[i]
		if w.writeVariablePrecision(f.Type.Precision) {
			w.out.WriteByte(' ')
		}
		if f.Type.Basic == ir.Structure && f.Type.Struct != nil && !w.structDeclared(f.Type.Struct) {
			w.declareStruct(f.Type.Struct)
		} else {
			w.out.WriteString(w.typeName(f.Type))
		}
		w.out.WriteByte(' ')
		w.out.WriteString(w.hashName(f.Name))
		if f.Type.IsArray() {
			w.out.WriteString(arrayBrackets(f.Type))
		}
		w.out.WriteString(";\n")
	}

	w.out.WriteString("}")

	if s.Name != "" {
		w.declaredStructs[s.ID] = struct{}{}
	}
}

// writeFunctionParameters writes a comma separated parameter list.
func (w *Writer) writeFunctionParameters(params []ir.Node) {
	for i, p := range params {
		sym, ok := p.(*ir.SymbolNode)
		if !ok {
			panic("unreachable: function parameter is not a symbol")
		}

		t := sym.Type()
		w.writeVariableType(t)
		if sym.Name != "" {
			w.out.WriteByte(' ')
			w.out.WriteString(w.hashName(sym.Name))
		}
		if t.IsArray() {
			w.out.WriteString(arrayBrackets(t))
		}
		if i != len(params)-1 {
			w.out.WriteString(", ")
		}
	}
}

// writeConstantUnion writes the components of a constant starting at
// values[0] and returns the remaining components.
func (w *Writer) writeConstantUnion(t ir.Type, values []ir.ConstantValue) []ir.ConstantValue {
	if t.Basic == ir.Structure && t.Struct != nil {
		w.out.WriteString(w.hashName(t.Struct.Name))
		w.out.WriteByte('(')
		for i := range t.Struct.Fields {
			values = w.writeConstantUnion(t.Struct.Fields[i].Type, values)
			if i != len(t.Struct.Fields)-1 {
				w.out.WriteString(", ")
			}
		}
		w.out.WriteByte(')')
		return values
	}

	size := t.ObjectSize()
	writeType := size > 1
	if writeType {
		w.out.WriteString(w.typeName(t))
		w.out.WriteByte('(')
	}
	for i := 0; i < size && len(values) > 0; i++ {
		w.out.WriteString(constantString(values[0]))
		values = values[1:]
		if i != size-1 {
			w.out.WriteString(", ")
		}
	}
	if writeType {
		w.out.WriteByte(')')
	}

	return values
}

func constantString(v ir.ConstantValue) string {
	switch v.Kind {
	case ir.ConstFloat:
		return formatFloat(v.F)
	case ir.ConstInt:
		return strconv.FormatInt(int64(v.I), 10)
	case ir.ConstUInt:
		return strconv.FormatUint(uint64(v.U), 10) + "u"
	default:
		return strconv.FormatBool(v.B)
	}
}
