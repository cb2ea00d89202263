// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ir

// Visit is the phase in which a visitor hook is called.
type Visit uint8

const (
	PreVisit Visit = iota
	InVisit
	PostVisit
)

// Visitor receives traversal callbacks. For non-leaf nodes, returning
// false from the PreVisit call skips the children and the remaining
// phases of that node; returning false from an InVisit call suppresses
// further InVisit and PostVisit calls for that node.
type Visitor interface {
	VisitSymbol(n *SymbolNode)
	VisitConstant(n *ConstantNode)
	VisitBinary(visit Visit, n *BinaryNode) bool
	VisitUnary(visit Visit, n *UnaryNode) bool
	VisitSelection(visit Visit, n *SelectionNode) bool
	VisitAggregate(visit Visit, n *AggregateNode) bool
	VisitLoop(visit Visit, n *LoopNode) bool
	VisitBranch(visit Visit, n *BranchNode) bool
}

// BaseVisitor implements Visitor by visiting everything and doing
// nothing. Embed it to override only some hooks.
type BaseVisitor struct{}

func (BaseVisitor) VisitSymbol(*SymbolNode)                   {}
func (BaseVisitor) VisitConstant(*ConstantNode)               {}
func (BaseVisitor) VisitBinary(Visit, *BinaryNode) bool       { return true }
func (BaseVisitor) VisitUnary(Visit, *UnaryNode) bool         { return true }
func (BaseVisitor) VisitSelection(Visit, *SelectionNode) bool { return true }
func (BaseVisitor) VisitAggregate(Visit, *AggregateNode) bool { return true }
func (BaseVisitor) VisitLoop(Visit, *LoopNode) bool           { return true }
func (BaseVisitor) VisitBranch(Visit, *BranchNode) bool       { return true }

// Traverser drives a Visitor over a tree.
type Traverser struct {
	Visitor Visitor

	PreVisit    bool
	InVisit     bool
	PostVisit   bool
	RightToLeft bool

	depth    int
	maxDepth int
	path     []Node
}

// NewTraverser returns a traverser calling v in the requested phases.
func NewTraverser(v Visitor, preVisit, inVisit, postVisit, rightToLeft bool) *Traverser {
	return &Traverser{
		Visitor:     v,
		PreVisit:    preVisit,
		InVisit:     inVisit,
		PostVisit:   postVisit,
		RightToLeft: rightToLeft,
	}
}

// Walk traverses root.
func (t *Traverser) Walk(root Node) {
	if root != nil {
		root.Traverse(t)
	}
}

// IncrementDepth records entering the children of current.
func (t *Traverser) IncrementDepth(current Node) {
	t.depth++
	if t.depth > t.maxDepth {
		t.maxDepth = t.depth
	}
	t.path = append(t.path, current)
}

// DecrementDepth records leaving the children of the innermost node.
func (t *Traverser) DecrementDepth() {
	t.depth--
	t.path = t.path[:len(t.path)-1]
}

// Depth returns the current nesting depth.
func (t *Traverser) Depth() int { return t.depth }

// MaxDepth returns the deepest nesting seen so far.
func (t *Traverser) MaxDepth() int { return t.maxDepth }

// ParentNode returns the parent of the node being pre or post visited,
// or nil at the root. During InVisit and while children are visited the
// innermost entry is the node itself.
func (t *Traverser) ParentNode() Node {
	if len(t.path) == 0 {
		return nil
	}
	return t.path[len(t.path)-1]
}

// Path returns the ancestors of the node being visited, outermost first.
// The slice is only valid until the traversal continues.
func (t *Traverser) Path() []Node { return t.path }

func (n *SymbolNode) Traverse(t *Traverser) {
	t.Visitor.VisitSymbol(n)
}

func (n *ConstantNode) Traverse(t *Traverser) {
	t.Visitor.VisitConstant(n)
}

func (n *BinaryNode) Traverse(t *Traverser) {
	visit := true
	if t.PreVisit {
		visit = t.Visitor.VisitBinary(PreVisit, n)
	}

	if visit {
		t.IncrementDepth(n)

		first, second := n.Left, n.Right
		if t.RightToLeft {
			first, second = second, first
		}

		if first != nil {
			first.Traverse(t)
		}
		if t.InVisit {
			visit = t.Visitor.VisitBinary(InVisit, n)
		}
		if visit && second != nil {
			second.Traverse(t)
		}

		t.DecrementDepth()
	}

	if visit && t.PostVisit {
		t.Visitor.VisitBinary(PostVisit, n)
	}
}

func (n *UnaryNode) Traverse(t *Traverser) {
	visit := true
	if t.PreVisit {
		visit = t.Visitor.VisitUnary(PreVisit, n)
	}

	if visit {
		t.IncrementDepth(n)
		if n.Operand != nil {
			n.Operand.Traverse(t)
		}
		t.DecrementDepth()
	}

	if visit && t.PostVisit {
		t.Visitor.VisitUnary(PostVisit, n)
	}
}

func (n *AggregateNode) Traverse(t *Traverser) {
	visit := true
	if t.PreVisit {
		visit = t.Visitor.VisitAggregate(PreVisit, n)
	}

	if visit {
		t.IncrementDepth(n)

		last := len(n.Sequence) - 1
		if t.RightToLeft {
			for i := last; i >= 0; i-- {
				n.Sequence[i].Traverse(t)
				if visit && t.InVisit && i != 0 {
					visit = t.Visitor.VisitAggregate(InVisit, n)
				}
			}
		} else {
			// Children appended during the visit are visited too.
			for i := 0; i < len(n.Sequence); i++ {
				n.Sequence[i].Traverse(t)
				if visit && t.InVisit && i != len(n.Sequence)-1 {
					visit = t.Visitor.VisitAggregate(InVisit, n)
				}
			}
		}

		t.DecrementDepth()
	}

	if visit && t.PostVisit {
		t.Visitor.VisitAggregate(PostVisit, n)
	}
}

func (n *SelectionNode) Traverse(t *Traverser) {
	visit := true
	if t.PreVisit {
		visit = t.Visitor.VisitSelection(PreVisit, n)
	}

	if visit {
		t.IncrementDepth(n)
		if t.RightToLeft {
			traverseOpt(t, n.FalseBlock)
			traverseOpt(t, n.TrueBlock)
			traverseOpt(t, n.Condition)
		} else {
			traverseOpt(t, n.Condition)
			traverseOpt(t, n.TrueBlock)
			traverseOpt(t, n.FalseBlock)
		}
		t.DecrementDepth()
	}

	if visit && t.PostVisit {
		t.Visitor.VisitSelection(PostVisit, n)
	}
}

func (n *LoopNode) Traverse(t *Traverser) {
	visit := true
	if t.PreVisit {
		visit = t.Visitor.VisitLoop(PreVisit, n)
	}

	if visit {
		t.IncrementDepth(n)
		if t.RightToLeft {
			traverseOpt(t, n.Expression)
			traverseOpt(t, n.Body)
			traverseOpt(t, n.Condition)
			traverseOpt(t, n.Init)
		} else {
			traverseOpt(t, n.Init)
			traverseOpt(t, n.Condition)
			traverseOpt(t, n.Body)
			traverseOpt(t, n.Expression)
		}
		t.DecrementDepth()
	}

	if visit && t.PostVisit {
		t.Visitor.VisitLoop(PostVisit, n)
	}
}

func (n *BranchNode) Traverse(t *Traverser) {
	visit := true
	if t.PreVisit {
		visit = t.Visitor.VisitBranch(PreVisit, n)
	}

	if visit && n.Expression != nil {
		t.IncrementDepth(n)
		n.Expression.Traverse(t)
		t.DecrementDepth()
	}

	if visit && t.PostVisit {
		t.Visitor.VisitBranch(PostVisit, n)
	}
}

func traverseOpt(t *Traverser, n Node) {
	if n != nil {
		n.Traverse(t)
	}
}
