// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gogpu/translator/ir"
)

func TestFlagStd140ValueStructs(t *testing.T) {
	light := ir.NewStruct(1, "Light",
		ir.Field{Name: "color", Type: ir.Vector(ir.Float, 3)},
		ir.Field{Name: "on", Type: boolT},
	)
	lightT := ir.StructType(light)

	std140 := &ir.InterfaceBlock{Name: "Lights", BlockStorage: ir.BlockStorageStd140, ID: 2}
	shared := &ir.InterfaceBlock{Name: "Other", BlockStorage: ir.BlockStorageShared, ID: 3}

	// A struct member of a block declared without instance name.
	inBlockT := lightT.WithQualifier(ir.QualUniform)
	inBlockT.Block = std140
	inBlock := ir.NewSymbol(10, "key", inBlockT)

	local := ir.NewSymbol(11, "tmp", lightT)

	sharedT := lightT.WithQualifier(ir.QualUniform)
	sharedT.Block = shared
	inShared := ir.NewSymbol(12, "fill", sharedT)

	main := function("main(",
		assign(local, inBlock),
		assign(local, inShared),
		ir.NewFieldAccess(inBlock, 0),
	)

	flagged := FlagStd140ValueStructs(main)
	assert.Equal(t, []ir.Typed{inBlock}, flagged)
}

func TestFlagStd140MemberAccess(t *testing.T) {
	inner := ir.NewStruct(1, "Inner", ir.Field{Name: "v", Type: floatT})
	innerT := ir.StructType(inner)

	block := &ir.InterfaceBlock{
		Name:         "Block",
		InstanceName: "blk",
		BlockStorage: ir.BlockStorageStd140,
		Fields:       []ir.Field{{Name: "s", Type: innerT}},
		ID:           2,
	}
	blockT := ir.Type{Basic: ir.UniformBlock, Qualifier: ir.QualUniform, Block: block}
	blk := ir.NewSymbol(10, "blk", blockT)

	member := ir.NewBinary(ir.OpIndexDirectInterfaceBlock, blk, ir.NewIntConstant(0), innerT)
	leaf := ir.NewBinary(ir.OpIndexDirectStruct, member, ir.NewIntConstant(0), floatT)

	local := ir.NewSymbol(11, "tmp", innerT)
	x := ir.NewSymbol(12, "x", floatT)

	flagged := FlagStd140ValueStructs(function("main(", assign(local, member), assign(x, leaf)))
	assert.Equal(t, []ir.Typed{member}, flagged)

	block.BlockStorage = ir.BlockStoragePacked
	assert.Empty(t, FlagStd140ValueStructs(function("main(", assign(local, member))))
}
