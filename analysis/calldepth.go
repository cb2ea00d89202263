// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package analysis

import (
	"math"
	"strings"

	"github.com/gogpu/translator/ir"
)

// CallDepthError is the result of DetectCallDepth.
type CallDepthError uint8

const (
	CallDepthOK CallDepthError = iota
	CallDepthMissingMain
	CallDepthRecursion
	CallDepthExceeded
)

// String returns the diagnostic text of e.
func (e CallDepthError) String() string {
	switch e {
	case CallDepthOK:
		return ""
	case CallDepthMissingMain:
		return "Missing main()"
	case CallDepthRecursion:
		return "Function recursion detected"
	case CallDepthExceeded:
		return "Function call stack too deep"
	default:
		return "unknown call depth error"
	}
}

type callState uint8

const (
	callUnvisited callState = iota
	callVisiting
	callDone
)

type callNode struct {
	name    string
	callees []*callNode
	state   callState

	// height is the number of functions on the longest chain starting
	// here, next the callee continuing it.
	height int
	next   *callNode
}

func (n *callNode) addCallee(c *callNode) {
	for _, x := range n.callees {
		if x == c {
			return
		}
	}
	n.callees = append(n.callees, c)
}

// CallGraph is the static call graph of a shader, keyed by mangled
// function name.
type CallGraph struct {
	ir.BaseVisitor

	funcs   []*callNode
	byName  map[string]*callNode
	current *callNode

	maxDepth int
	path     []string
}

// BuildCallGraph collects the function definitions and calls of root.
func BuildCallGraph(root ir.Node) *CallGraph {
	g := &CallGraph{byName: map[string]*callNode{}}
	ir.NewTraverser(g, true, false, true, false).Walk(root)
	return g
}

func (g *CallGraph) function(name string) *callNode {
	n, ok := g.byName[name]
	if !ok {
		n = &callNode{name: name}
		g.byName[name] = n
		g.funcs = append(g.funcs, n)
	}
	return n
}

func (g *CallGraph) VisitAggregate(visit ir.Visit, n *ir.AggregateNode) bool {
	switch n.Op {
	case ir.OpFunction:
		if visit == ir.PreVisit {
			g.current = g.function(n.Name)
		} else if visit == ir.PostVisit {
			g.current = nil
		}
	case ir.OpFunctionCall:
		if visit == ir.PreVisit && n.UserDefined {
			callee := g.function(n.Name)
			if g.current != nil {
				g.current.addCallee(callee)
			}
		}
	}
	return true
}

// Functions returns the mangled names of the functions seen, in tree
// order.
func (g *CallGraph) Functions() []string {
	names := make([]string, len(g.funcs))
	for i, f := range g.funcs {
		names[i] = f.name
	}
	return names
}

// Path returns the call chain that exceeded the depth limit in the last
// check, outermost caller first.
func (g *CallGraph) Path() []string { return g.path }

// Check looks for recursion and, if limit is set, for call chains of
// maxDepth or more functions. Without limit only the functions reachable
// from main are checked.
func (g *CallGraph) Check(limit bool, maxDepth int) CallDepthError {
	g.maxDepth = math.MaxInt
	if limit {
		g.maxDepth = maxDepth
	}

	for _, n := range g.funcs {
		n.state = callUnvisited
	}
	g.path = g.path[:0]

	if limit {
		for _, f := range g.funcs {
			if err := g.checkFrom(f); err != CallDepthOK {
				return err
			}
		}
		return CallDepthOK
	}

	main, ok := g.byName["main("]
	if !ok {
		return CallDepthMissingMain
	}
	return g.checkFrom(main)
}

func (g *CallGraph) checkFrom(f *callNode) CallDepthError {
	if !g.measure(f) {
		return CallDepthRecursion
	}
	if f.height < g.maxDepth {
		return CallDepthOK
	}

	for n := f; n != nil && len(g.path) < g.maxDepth; n = n.next {
		g.path = append(g.path, n.name)
	}
	return CallDepthExceeded
}

// measure computes the height of f and of every function f reaches.
// It returns false on recursion.
func (g *CallGraph) measure(f *callNode) bool {
	switch f.state {
	case callVisiting:
		return false
	case callDone:
		return true
	}

	f.state = callVisiting
	f.height, f.next = 1, nil

	for _, c := range f.callees {
		if !g.measure(c) {
			return false
		}
		if c.height+1 > f.height {
			f.height, f.next = c.height+1, c
		}
	}

	f.state = callDone
	return true
}

// DetectCallDepth checks root for recursion and excessive call depth.
func DetectCallDepth(root ir.Node, limit bool, maxDepth int) CallDepthError {
	return BuildCallGraph(root).Check(limit, maxDepth)
}

// FormatCallPath renders a call chain the way it is reported in the info
// log, e.g. "main( -> a( -> b(".
func FormatCallPath(path []string) string {
	return strings.Join(path, " -> ")
}
