// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ir

// SourceLoc is the source range a node was parsed from.
type SourceLoc struct {
	FirstFile int
	FirstLine int
	LastFile  int
	LastLine  int
}

// Node is one node of the shader tree.
//
// The set of implementations is closed: SymbolNode, ConstantNode,
// UnaryNode, BinaryNode, AggregateNode, SelectionNode, LoopNode and
// BranchNode.
type Node interface {
	// Loc returns the source range of the node.
	Loc() SourceLoc

	// SetLoc sets the source range of the node.
	SetLoc(SourceLoc)

	// Traverse walks the node and its children with t.
	Traverse(t *Traverser)

	// ReplaceChild replaces the direct child original by replacement and
	// reports whether original was found.
	ReplaceChild(original, replacement Node) bool

	// EnqueueChildren appends the non-nil direct children to queue.
	EnqueueChildren(queue []Node) []Node

	node()
}

// Typed is a node that evaluates to a value (possibly of void type).
type Typed interface {
	Node

	// Type returns the type of the value.
	Type() Type

	// SetType replaces the type of the value.
	SetType(Type)

	// HasSideEffects reports whether evaluating the node may write state:
	// an assignment, an increment, a user function call, or any operand
	// that has side effects.
	HasSideEffects() bool
}

type base struct {
	loc SourceLoc
}

func (b *base) Loc() SourceLoc { return b.loc }
func (b *base) SetLoc(l SourceLoc) { b.loc = l }
func (b *base) node() {}

type typed struct {
	typ Type
}

func (t *typed) Type() Type { return t.typ }
func (t *typed) SetType(x Type) { t.typ = x }

// SymbolNode is a reference to a variable.
type SymbolNode struct {
	base
	typed

	// ID is the unique symbol id, stable across tree copies.
	ID   int
	Name string
}

// NewSymbol returns a reference to the variable id.
func NewSymbol(id int, name string, t Type) *SymbolNode {
	return &SymbolNode{typed: typed{t}, ID: id, Name: name}
}

func (n *SymbolNode) HasSideEffects() bool { return false }
func (n *SymbolNode) ReplaceChild(_, _ Node) bool { return false }
func (n *SymbolNode) EnqueueChildren(q []Node) []Node { return q }

// ConstantNode is a constant value; Values holds one entry per scalar
// component.
type ConstantNode struct {
	base
	typed

	Values []ConstantValue
}

// NewConstant returns a constant of type t.
func NewConstant(t Type, values ...ConstantValue) *ConstantNode {
	return &ConstantNode{typed: typed{t.WithQualifier(QualConst)}, Values: values}
}

// NewIntConstant returns a scalar int constant.
func NewIntConstant(v int) *ConstantNode {
	return NewConstant(Scalar(Int), IntValue(int32(v)))
}

// NewFloatConstant returns a scalar float constant.
func NewFloatConstant(v float32) *ConstantNode {
	return NewConstant(Scalar(Float), FloatValue(v))
}

// NewBoolConstant returns a scalar bool constant.
func NewBoolConstant(v bool) *ConstantNode {
	return NewConstant(Scalar(Bool), BoolValue(v))
}

func (n *ConstantNode) HasSideEffects() bool { return false }
func (n *ConstantNode) ReplaceChild(_, _ Node) bool { return false }
func (n *ConstantNode) EnqueueChildren(q []Node) []Node { return q }

// UnaryNode applies a unary operator or a single-argument built-in
// function to its operand.
type UnaryNode struct {
	base
	typed

	Op      Operator
	Operand Typed

	// UseEmulatedFunction requests the emulated replacement of a
	// built-in function in the output.
	UseEmulatedFunction bool
}

// NewUnary returns op applied to operand with result type t.
func NewUnary(op Operator, operand Typed, t Type) *UnaryNode {
	return &UnaryNode{typed: typed{t}, Op: op, Operand: operand}
}

func (n *UnaryNode) HasSideEffects() bool {
	return n.Op.IsIncDec() || hasSideEffects(n.Operand)
}

func (n *UnaryNode) ReplaceChild(original, replacement Node) bool {
	if n.Operand != nil && Node(n.Operand) == original {
		n.Operand = asTyped(replacement)
		return true
	}
	return false
}

func (n *UnaryNode) EnqueueChildren(q []Node) []Node {
	return enqueue(q, n.Operand)
}

// BinaryNode applies a binary operator, an assignment or an indexing
// operation to its operands.
type BinaryNode struct {
	base
	typed

	Op    Operator
	Left  Typed
	Right Typed

	// AddIndexClamp marks an indirect index whose value must be clamped
	// to the bounds of the indexed value in the output.
	AddIndexClamp bool
}

// NewBinary returns left op right with result type t.
func NewBinary(op Operator, left, right Typed, t Type) *BinaryNode {
	return &BinaryNode{typed: typed{t}, Op: op, Left: left, Right: right}
}

// NewSwizzle returns a vector swizzle selecting the given components of
// vector, e.g. 0, 1 for ".xy".
func NewSwizzle(vector Typed, components ...int) *BinaryNode {
	seq := make([]Node, len(components))
	for i, c := range components {
		seq[i] = NewIntConstant(c)
	}

	vt := vector.Type()
	t := Scalar(vt.Basic)
	t.PrimarySize = uint8(len(components))
	t.Precision = vt.Precision
	if vt.Qualifier == QualConst {
		t.Qualifier = QualConst
	}

	return NewBinary(OpVectorSwizzle, vector, NewAggregate(OpSequence, VoidType(), seq...), t)
}

// NewFieldAccess returns a struct field selection of field index idx.
func NewFieldAccess(str Typed, idx int) *BinaryNode {
	st := str.Type().Struct
	ft := st.Fields[idx].Type
	ft.Qualifier = QualTemporary
	return NewBinary(OpIndexDirectStruct, str, NewIntConstant(idx), ft)
}

func (n *BinaryNode) HasSideEffects() bool {
	return n.Op.IsAssignment() || n.Op == OpInitialize ||
		hasSideEffects(n.Left) || hasSideEffects(n.Right)
}

func (n *BinaryNode) ReplaceChild(original, replacement Node) bool {
	switch {
	case n.Left != nil && Node(n.Left) == original:
		n.Left = asTyped(replacement)
	case n.Right != nil && Node(n.Right) == original:
		n.Right = asTyped(replacement)
	default:
		return false
	}
	return true
}

func (n *BinaryNode) EnqueueChildren(q []Node) []Node {
	return enqueue(enqueue(q, n.Left), n.Right)
}

// AggregateNode is a node with a list of children: statement sequences,
// function definitions, parameter lists, declarations, function calls,
// constructors and multi-argument built-in functions.
type AggregateNode struct {
	base
	typed

	Op       Operator
	Sequence []Node

	// Name is the mangled name of a function definition, prototype or
	// call.
	Name string

	// UserDefined marks calls to functions defined in the shader.
	UserDefined bool

	UseEmulatedFunction bool
}

// NewAggregate returns an aggregate node with result type t.
func NewAggregate(op Operator, t Type, children ...Node) *AggregateNode {
	return &AggregateNode{typed: typed{t}, Op: op, Sequence: children}
}

// NewSequence returns a statement sequence.
func NewSequence(statements ...Node) *AggregateNode {
	return NewAggregate(OpSequence, VoidType(), statements...)
}

// NewFunctionCall returns a call of the function with the given mangled
// name.
func NewFunctionCall(name string, userDefined bool, ret Type, args ...Node) *AggregateNode {
	n := NewAggregate(OpFunctionCall, ret, args...)
	n.Name = name
	n.UserDefined = userDefined
	return n
}

// NewFunction returns a function definition. params must be an
// OpParameters aggregate and body a sequence or nil.
func NewFunction(name string, ret Type, params, body *AggregateNode) *AggregateNode {
	n := NewAggregate(OpFunction, ret, params)
	if body != nil {
		n.Sequence = append(n.Sequence, body)
	}
	n.Name = name
	return n
}

// Append adds children to the end of the sequence.
func (n *AggregateNode) Append(children ...Node) {
	n.Sequence = append(n.Sequence, children...)
}

func (n *AggregateNode) HasSideEffects() bool {
	if n.Op == OpFunctionCall && n.UserDefined {
		return true
	}
	for _, c := range n.Sequence {
		if t, ok := c.(Typed); ok && t.HasSideEffects() {
			return true
		}
	}
	return false
}

func (n *AggregateNode) ReplaceChild(original, replacement Node) bool {
	for i, c := range n.Sequence {
		if c == original {
			n.Sequence[i] = replacement
			return true
		}
	}
	return false
}

func (n *AggregateNode) EnqueueChildren(q []Node) []Node {
	for _, c := range n.Sequence {
		if c != nil {
			q = append(q, c)
		}
	}
	return q
}

// SelectionNode is an if statement or, when its type is not void, a
// ternary expression.
type SelectionNode struct {
	base
	typed

	Condition  Typed
	TrueBlock  Node
	FalseBlock Node
}

// NewSelection returns an if statement or a ternary expression of type t.
func NewSelection(cond Typed, trueBlock, falseBlock Node, t Type) *SelectionNode {
	return &SelectionNode{typed: typed{t}, Condition: cond, TrueBlock: trueBlock, FalseBlock: falseBlock}
}

// UsesTernaryOperator reports whether the node is an expression.
func (n *SelectionNode) UsesTernaryOperator() bool {
	return n.typ.Basic != Void
}

func (n *SelectionNode) HasSideEffects() bool {
	return hasSideEffects(n.Condition) || nodeHasSideEffects(n.TrueBlock) || nodeHasSideEffects(n.FalseBlock)
}

func (n *SelectionNode) ReplaceChild(original, replacement Node) bool {
	switch {
	case n.Condition != nil && Node(n.Condition) == original:
		n.Condition = asTyped(replacement)
	case n.TrueBlock != nil && n.TrueBlock == original:
		n.TrueBlock = replacement
	case n.FalseBlock != nil && n.FalseBlock == original:
		n.FalseBlock = replacement
	default:
		return false
	}
	return true
}

func (n *SelectionNode) EnqueueChildren(q []Node) []Node {
	q = enqueue(q, n.Condition)
	if n.TrueBlock != nil {
		q = append(q, n.TrueBlock)
	}
	if n.FalseBlock != nil {
		q = append(q, n.FalseBlock)
	}
	return q
}

// LoopKind is the syntactic form of a loop.
type LoopKind uint8

const (
	LoopFor LoopKind = iota
	LoopWhile
	LoopDoWhile
)

// LoopNode is a for, while or do-while loop.
type LoopNode struct {
	base

	Kind       LoopKind
	Init       Node
	Condition  Typed
	Expression Typed
	Body       Node

	// Unroll marks for loops whose body is emitted once per index value.
	Unroll bool
}

// NewLoop returns a loop. Any part may be nil.
func NewLoop(kind LoopKind, init Node, cond, expr Typed, body Node) *LoopNode {
	return &LoopNode{Kind: kind, Init: init, Condition: cond, Expression: expr, Body: body}
}

func (n *LoopNode) ReplaceChild(original, replacement Node) bool {
	switch {
	case n.Init != nil && n.Init == original:
		n.Init = replacement
	case n.Condition != nil && Node(n.Condition) == original:
		n.Condition = asTyped(replacement)
	case n.Expression != nil && Node(n.Expression) == original:
		n.Expression = asTyped(replacement)
	case n.Body != nil && n.Body == original:
		n.Body = replacement
	default:
		return false
	}
	return true
}

func (n *LoopNode) EnqueueChildren(q []Node) []Node {
	if n.Init != nil {
		q = append(q, n.Init)
	}
	q = enqueue(q, n.Condition)
	q = enqueue(q, n.Expression)
	if n.Body != nil {
		q = append(q, n.Body)
	}
	return q
}

// BranchNode is discard, return, break or continue.
type BranchNode struct {
	base

	Flow       Operator
	Expression Typed
}

// NewBranch returns a jump; expr is the returned value or nil.
func NewBranch(flow Operator, expr Typed) *BranchNode {
	return &BranchNode{Flow: flow, Expression: expr}
}

func (n *BranchNode) ReplaceChild(original, replacement Node) bool {
	if n.Expression != nil && Node(n.Expression) == original {
		n.Expression = asTyped(replacement)
		return true
	}
	return false
}

func (n *BranchNode) EnqueueChildren(q []Node) []Node {
	return enqueue(q, n.Expression)
}

func hasSideEffects(t Typed) bool {
	return t != nil && t.HasSideEffects()
}

func nodeHasSideEffects(n Node) bool {
	t, ok := n.(Typed)
	return ok && t.HasSideEffects()
}

func enqueue(q []Node, t Typed) []Node {
	if t == nil {
		return q
	}
	return append(q, t)
}

// asTyped converts a replacement for a typed slot. Replacing a value
// with a statement is a bug in the calling pass.
func asTyped(n Node) Typed {
	if n == nil {
		return nil
	}
	t, ok := n.(Typed)
	if !ok {
		panic("unreachable: replacing a typed child with an untyped node")
	}
	return t
}
