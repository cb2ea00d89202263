// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ir

// MaxDepth returns the nesting depth of the tree under root, counting the
// root as depth 1. It walks an explicit work stack, so adversarial input
// cannot exhaust the goroutine stack. Once limit is exceeded it stops and
// reports ok == false; a limit of 0 or less disables the check.
func MaxDepth(root Node, limit int) (depth int, ok bool) {
	if root == nil {
		return 0, true
	}

	type item struct {
		n     Node
		depth int
	}

	stack := []item{{root, 1}}
	var children []Node

	for len(stack) != 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if it.depth > depth {
			depth = it.depth
		}
		if limit > 0 && depth > limit {
			return depth, false
		}

		children = it.n.EnqueueChildren(children[:0])
		for _, c := range children {
			stack = append(stack, item{c, it.depth + 1})
		}
	}

	return depth, true
}
