// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package transform

import (
	"strconv"

	"github.com/gogpu/translator/ir"
)

// IDAllocator hands out fresh symbol ids. *symbols.Table implements it.
type IDAllocator interface {
	NextUniqueID() int
}

// Scalarizer rewrites vector constructors taking a matrix argument and
// matrix constructors taking a vector argument. Each composite argument
// is copied into a temporary declared just before the statement, and the
// constructor reads the components of the temporary one by one:
//
//	vec4 v = vec4(m);
//
// becomes
//
//	mat2 _webgl_tmp_m0 = m;
//	vec4 v = vec4(_webgl_tmp_m0[0][0], _webgl_tmp_m0[0][1], ...);
//
// Scalar arguments are copied only when they have side effects, to keep
// the evaluation order.
type Scalarizer struct {
	ir.BaseVisitor

	stage                 ir.ShaderStage
	fragmentPrecisionHigh bool
	ids                   IDAllocator

	t         *ir.Traverser
	sequences [][]ir.Node
	temps     int
}

// NewScalarizer returns a scalarizer allocating temporary ids from ids.
func NewScalarizer(stage ir.ShaderStage, fragmentPrecisionHigh bool, ids IDAllocator) *Scalarizer {
	s := &Scalarizer{
		stage:                 stage,
		fragmentPrecisionHigh: fragmentPrecisionHigh,
		ids:                   ids,
	}
	s.t = ir.NewTraverser(s, true, false, false, false)
	return s
}

// ScalarizeVecAndMatConstructorArgs rewrites the constructors of root.
func ScalarizeVecAndMatConstructorArgs(root ir.Node, stage ir.ShaderStage, fragmentPrecisionHigh bool, ids IDAllocator) {
	NewScalarizer(stage, fragmentPrecisionHigh, ids).Run(root)
}

// Run rewrites root.
func (s *Scalarizer) Run(root ir.Node) {
	s.t.Walk(root)
}

// Temporaries returns the number of temporaries declared so far.
func (s *Scalarizer) Temporaries() int { return s.temps }

func (s *Scalarizer) VisitAggregate(_ ir.Visit, n *ir.AggregateNode) bool {
	switch n.Op {
	case ir.OpSequence:
		s.rewriteSequence(n)
		return false

	case ir.OpConstructVec2, ir.OpConstructVec3, ir.OpConstructVec4,
		ir.OpConstructBVec2, ir.OpConstructBVec3, ir.OpConstructBVec4,
		ir.OpConstructIVec2, ir.OpConstructIVec3, ir.OpConstructIVec4:
		if containsMatrix(n.Sequence) {
			s.scalarizeArgs(n, false, true)
			return false
		}

	case ir.OpConstructMat2, ir.OpConstructMat3, ir.OpConstructMat4:
		if containsVector(n.Sequence) {
			s.scalarizeArgs(n, true, false)
			return false
		}
	}

	return true
}

// rewriteSequence visits the statements of n, splicing in the
// temporaries declared for each statement right before it.
func (s *Scalarizer) rewriteSequence(n *ir.AggregateNode) {
	s.sequences = append(s.sequences, make([]ir.Node, 0, len(n.Sequence)))

	for _, child := range n.Sequence {
		child.Traverse(s.t)
		top := len(s.sequences) - 1
		s.sequences[top] = append(s.sequences[top], child)
	}

	top := len(s.sequences) - 1
	if len(s.sequences[top]) > len(n.Sequence) {
		n.Sequence = s.sequences[top]
	}
	s.sequences = s.sequences[:top]
}

func containsMatrix(seq []ir.Node) bool {
	for _, c := range seq {
		if t, ok := c.(ir.Typed); ok && t.Type().IsMatrix() {
			return true
		}
	}
	return false
}

func containsVector(seq []ir.Node) bool {
	for _, c := range seq {
		if t, ok := c.(ir.Typed); ok && t.Type().IsVector() {
			return true
		}
	}
	return false
}

func constructorSize(op ir.Operator) int {
	switch op {
	case ir.OpConstructVec2, ir.OpConstructBVec2, ir.OpConstructIVec2:
		return 2
	case ir.OpConstructVec3, ir.OpConstructBVec3, ir.OpConstructIVec3:
		return 3
	case ir.OpConstructVec4, ir.OpConstructBVec4, ir.OpConstructIVec4, ir.OpConstructMat2:
		return 4
	case ir.OpConstructMat3:
		return 9
	case ir.OpConstructMat4:
		return 16
	default:
		return 0
	}
}

func (s *Scalarizer) scalarizeArgs(n *ir.AggregateNode, scalarizeVector, scalarizeMatrix bool) {
	if len(s.sequences) == 0 {
		// No enclosing statement list to declare temporaries in.
		return
	}

	size := constructorSize(n.Op)
	args := n.Sequence
	n.Sequence = make([]ir.Node, 0, size)

	for _, arg := range args {
		if size <= 0 {
			break
		}

		// Nested constructors are rewritten first so their temporaries
		// come before ours.
		arg.Traverse(s.t)

		node, ok := arg.(ir.Typed)
		if !ok {
			panic("unreachable: constructor argument without a value")
		}
		t := node.Type()

		switch {
		case t.IsScalar():
			if node.HasSideEffects() {
				node = s.temporary(node)
			}
			n.Sequence = append(n.Sequence, node)
			size--

		case t.IsVector():
			tmp := s.temporary(node)
			if !scalarizeVector {
				n.Sequence = append(n.Sequence, tmp)
				size -= t.NominalSize()
				break
			}
			repeat := min(size, t.NominalSize())
			size -= repeat
			for i := 0; i < repeat; i++ {
				n.Sequence = append(n.Sequence, vectorIndex(s.copySymbol(tmp), i))
			}

		case t.IsMatrix():
			tmp := s.temporary(node)
			if !scalarizeMatrix {
				n.Sequence = append(n.Sequence, tmp)
				size -= t.Cols() * t.Rows()
				break
			}
			repeat := min(size, t.Cols()*t.Rows())
			size -= repeat
			for col, row := 0, 0; repeat > 0; repeat-- {
				n.Sequence = append(n.Sequence, matrixIndex(s.copySymbol(tmp), col, row))
				row++
				if row >= t.Rows() {
					row = 0
					col++
				}
			}

		default:
			panic("unreachable: constructor argument of type " + t.CompleteString())
		}
	}
}

// temporary declares a copy of original before the current statement
// and returns a reference to it.
func (s *Scalarizer) temporary(original ir.Typed) *ir.SymbolNode {
	t := original.Type()

	name := "_webgl_tmp_"
	switch {
	case t.IsScalar():
		name += "f"
	case t.IsVector():
		name += "v"
	default:
		name += "m"
	}
	name += strconv.Itoa(s.temps)
	s.temps++

	t.Qualifier = ir.QualTemporary
	t.Invariant = false
	t.Layout = ir.LayoutQualifier{}

	// The highest available precision avoids working out the precision
	// of the expression.
	if s.stage == ir.StageFragment && t.Basic == ir.Float && t.Precision == ir.PrecisionUndefined {
		t.Precision = ir.PrecisionMedium
		if s.fragmentPrecisionHigh {
			t.Precision = ir.PrecisionHigh
		}
	}

	sym := ir.NewSymbol(s.ids.NextUniqueID(), name, t)
	init := ir.NewBinary(ir.OpInitialize, sym, original, t)
	decl := ir.NewAggregate(ir.OpDeclaration, ir.VoidType(), init)
	decl.SetLoc(original.Loc())

	top := len(s.sequences) - 1
	s.sequences[top] = append(s.sequences[top], decl)

	return s.copySymbol(sym)
}

func (s *Scalarizer) copySymbol(sym *ir.SymbolNode) *ir.SymbolNode {
	return ir.NewSymbol(sym.ID, sym.Name, sym.Type())
}

func vectorIndex(v *ir.SymbolNode, i int) *ir.BinaryNode {
	vt := v.Type()
	et := ir.Scalar(vt.Basic).WithPrecision(vt.Precision)
	return ir.NewBinary(ir.OpIndexDirect, v, ir.NewIntConstant(i), et)
}

func matrixIndex(m *ir.SymbolNode, col, row int) *ir.BinaryNode {
	mt := m.Type()
	ct := ir.Vector(mt.Basic, uint8(mt.Rows())).WithPrecision(mt.Precision)
	column := ir.NewBinary(ir.OpIndexDirect, m, ir.NewIntConstant(col), ct)
	et := ir.Scalar(mt.Basic).WithPrecision(mt.Precision)
	return ir.NewBinary(ir.OpIndexDirect, column, ir.NewIntConstant(row), et)
}
