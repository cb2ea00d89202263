// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package ir defines the intermediate representation of one GLSL ES shader.
//
// The tree is produced by a parser (not part of this module) and consumed
// by the analysis, transform and code generation passes:
//
//	parsed tree → validation → transforms → version inference → back end
//
// # Nodes
//
// Node is a closed sum type. The concrete kinds are SymbolNode,
// ConstantNode, UnaryNode, BinaryNode, AggregateNode, SelectionNode,
// LoopNode and BranchNode; passes discriminate with a type switch.
// Every node except loops and branches is Typed and can report whether
// evaluating it has side effects.
//
// # Traversal
//
// A Traverser drives a Visitor over the tree with optional pre, in and
// post visitation, optionally right to left. Returning false from a
// pre-visit hook skips the children of that node. The traverser keeps a
// depth counter and the list of ancestors so a pass can ask for the
// parent of the node being visited.
//
// Deeply nested trees can be measured without recursion using MaxDepth,
// which walks an explicit work stack and gives up as soon as a limit is
// exceeded.
package ir
