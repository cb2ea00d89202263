// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package analysis

import "github.com/gogpu/translator/ir"

// FlagStd140ValueStructs returns the nodes of root that evaluate to a
// whole struct read from a std140 interface block. A back end padding
// std140 structs must copy such values into an unpadded temporary before
// using them.
func FlagStd140ValueStructs(root ir.Node) []ir.Typed {
	f := &std140Flagger{}
	ir.NewTraverser(f, true, false, false, false).Walk(root)
	return f.flagged
}

type std140Flagger struct {
	ir.BaseVisitor

	flagged []ir.Typed
}

func (f *std140Flagger) VisitBinary(_ ir.Visit, n *ir.BinaryNode) bool {
	switch n.Op {
	case ir.OpIndexDirectInterfaceBlock, ir.OpIndexDirectStruct:
		if n.Type().Basic == ir.Structure {
			if inStd140Block(n.Left) {
				f.flagged = append(f.flagged, n)
			}
			return false
		}

		// Reading one field of a struct does not use the struct as a
		// whole.
		return n.Op != ir.OpIndexDirectStruct
	}

	return true
}

func (f *std140Flagger) VisitSymbol(n *ir.SymbolNode) {
	if n.Type().Basic == ir.Structure && inStd140Block(n) {
		f.flagged = append(f.flagged, n)
	}
}

// inStd140Block follows the receivers of nested member and array
// accesses down to the root value and checks its block storage.
func inStd140Block(n ir.Typed) bool {
	for {
		b, ok := n.(*ir.BinaryNode)
		if !ok {
			break
		}
		n = b.Left
	}

	if n == nil {
		return false
	}

	block := n.Type().Block
	return block != nil && block.BlockStorage == ir.BlockStorageStd140
}
