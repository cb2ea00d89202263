// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/translator/diag"
	"github.com/gogpu/translator/ir"
	"github.com/gogpu/translator/symbols"
)

func validate(t *testing.T, stage ir.ShaderStage, table *symbols.Table, root ir.Node) (int, string) {
	t.Helper()

	if table == nil {
		table = symbols.NewTable()
		table.Push()
	}

	var sink diag.Sink
	n := ValidateLimitations(root, stage, table, 100, &sink)
	require.Equal(t, n, sink.ErrorCount())

	return n, sink.String()
}

func TestLimitationsAcceptsSimpleLoops(t *testing.T) {
	i := ir.NewSymbol(1, "i", intT)
	arr := ir.NewSymbol(2, "arr", floatT.WithArraySize(4))
	c := ir.NewSymbol(3, "c", intT.WithQualifier(ir.QualConst))

	body := assign(ir.NewBinary(ir.OpIndexIndirect, arr, ir.NewBinary(ir.OpAdd, i, c, intT), floatT), ir.NewFloatConstant(0))

	n, log := validate(t, ir.StageFragment, nil, function("main(", intLoop(i, 0, 4, body)))
	assert.Zero(t, n, log)
}

func TestLimitationsLoopForms(t *testing.T) {
	i := ir.NewSymbol(1, "i", intT)
	j := ir.NewSymbol(2, "j", intT)
	b := ir.NewSymbol(3, "b", boolT)
	n := ir.NewSymbol(4, "n", intT.WithQualifier(ir.QualUniform))

	cases := []struct {
		name string
		loop *ir.LoopNode
		want string
	}{
		{
			name: "while",
			loop: ir.NewLoop(ir.LoopWhile, nil, ir.NewBoolConstant(true), nil, ir.NewSequence()),
			want: "ERROR: 'while' : This type of loop is not allowed\n",
		},
		{
			name: "do",
			loop: ir.NewLoop(ir.LoopDoWhile, nil, ir.NewBoolConstant(true), nil, ir.NewSequence()),
			want: "ERROR: 'do' : This type of loop is not allowed\n",
		},
		{
			name: "missing init",
			loop: ir.NewLoop(ir.LoopFor, nil, ir.NewBoolConstant(true), nil, ir.NewSequence()),
			want: "ERROR: 'for' : Missing init declaration\n",
		},
		{
			name: "bool index",
			loop: forLoop(b, ir.NewBoolConstant(true), ir.NewBoolConstant(false), ir.OpEqual),
			want: "ERROR: 'bool' : Invalid type for loop index\n",
		},
		{
			name: "uint index",
			loop: forLoop(ir.NewSymbol(5, "u", ir.Scalar(ir.UInt)), ir.NewIntConstant(0), ir.NewIntConstant(4), ir.OpLessThan),
			want: "ERROR: 'uint' : Invalid type for loop index\n",
		},
		{
			name: "non-constant init",
			loop: forLoop(i, n, ir.NewIntConstant(4), ir.OpLessThan),
			want: "ERROR: 'i' : Loop index cannot be initialized with non-constant expression\n",
		},
		{
			name: "non-constant bound",
			loop: forLoop(i, ir.NewIntConstant(0), n, ir.OpLessThan),
			want: "ERROR: 'i' : Loop index cannot be compared with non-constant expression\n",
		},
		{
			name: "wrong index in condition",
			loop: ir.NewLoop(ir.LoopFor,
				declare(ir.NewBinary(ir.OpInitialize, i, ir.NewIntConstant(0), intT)),
				ir.NewBinary(ir.OpLessThan, j, ir.NewIntConstant(4), boolT),
				ir.NewUnary(ir.OpPostIncrement, i, intT),
				ir.NewSequence()),
			want: "ERROR: 'j' : Expected loop index\n",
		},
		{
			name: "missing expression",
			loop: ir.NewLoop(ir.LoopFor,
				declare(ir.NewBinary(ir.OpInitialize, i, ir.NewIntConstant(0), intT)),
				ir.NewBinary(ir.OpLessThan, i, ir.NewIntConstant(4), boolT),
				nil,
				ir.NewSequence()),
			want: "ERROR: 'for' : Missing expression\n",
		},
		{
			name: "non-constant step",
			loop: ir.NewLoop(ir.LoopFor,
				declare(ir.NewBinary(ir.OpInitialize, i, ir.NewIntConstant(0), intT)),
				ir.NewBinary(ir.OpLessThan, i, ir.NewIntConstant(4), boolT),
				ir.NewBinary(ir.OpAddAssign, i, n, intT),
				ir.NewSequence()),
			want: "ERROR: 'i' : Loop index cannot be modified by non-constant expression\n",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n, log := validate(t, ir.StageFragment, nil, function("main(", tc.loop))
			assert.Equal(t, 1, n)
			assert.Equal(t, tc.want, log)
		})
	}
}

func TestLimitationsPrefixIncrement(t *testing.T) {
	i := ir.NewSymbol(1, "i", intT)
	loop := intLoop(i, 0, 4)
	loop.Expression = ir.NewUnary(ir.OpPreDecrement, i, intT)

	n, log := validate(t, ir.StageFragment, nil, function("main(", loop))
	assert.Zero(t, n, log)
}

func TestLimitationsIndexAssignedInBody(t *testing.T) {
	i := ir.NewSymbol(1, "i", intT)
	loop := intLoop(i, 0, 4,
		assign(i, ir.NewIntConstant(2)),
		ir.NewUnary(ir.OpPreIncrement, i, intT),
	)
	loop.SetLoc(ir.SourceLoc{FirstLine: 3})

	n, log := validate(t, ir.StageFragment, nil, function("main(", loop))
	assert.Equal(t, 2, n)
	assert.Contains(t, log, "'i' : Loop index cannot be statically assigned to within the body of the loop")
}

func TestLimitationsIndexAsOutArgument(t *testing.T) {
	table := symbols.NewTable()
	table.Push()

	outF := symbols.NewFunction("bump", voidT, symbols.Parameter{Name: "x", Type: intT.WithQualifier(ir.QualInOut)})
	inF := symbols.NewFunction("read", voidT, symbols.Parameter{Name: "x", Type: intT.WithQualifier(ir.QualIn)})
	require.True(t, table.Declare(outF))
	require.True(t, table.Declare(inF))

	i := ir.NewSymbol(1, "i", intT)
	loop := intLoop(i, 0, 4,
		ir.NewFunctionCall(inF.MangledName(), true, voidT, i),
		ir.NewFunctionCall(outF.MangledName(), true, voidT, i),
	)

	n, log := validate(t, ir.StageFragment, table, function("main(", loop))
	assert.Equal(t, 1, n)
	assert.Equal(t, "ERROR: 'i' : Loop index cannot be used as argument to a function out or inout parameter\n", log)
}

func TestLimitationsIndexing(t *testing.T) {
	arr := ir.NewSymbol(1, "arr", floatT.WithArraySize(4))
	uarr := ir.NewSymbol(2, "u", ir.Vector(ir.Float, 4).WithArraySize(8).WithQualifier(ir.QualUniform))
	k := ir.NewSymbol(3, "k", intT)
	x := ir.NewSymbol(4, "x", floatT)
	v := ir.NewSymbol(5, "v", ir.Vector(ir.Float, 4))

	dyn := ir.NewBinary(ir.OpIndexIndirect, arr, k, floatT)
	n, log := validate(t, ir.StageFragment, nil, function("main(", assign(x, dyn)))
	assert.Equal(t, 1, n)
	assert.Equal(t, "ERROR: '[]' : Index expression must be constant\n", log)

	uniform := ir.NewBinary(ir.OpIndexIndirect, uarr, k, ir.Vector(ir.Float, 4))
	n, _ = validate(t, ir.StageVertex, nil, function("main(", assign(v, uniform)))
	assert.Zero(t, n)

	n, _ = validate(t, ir.StageFragment, nil, function("main(", assign(v, uniform)))
	assert.Equal(t, 1, n)

	floatIndex := ir.NewBinary(ir.OpIndexDirect, arr, ir.NewFloatConstant(1), floatT)
	n, log = validate(t, ir.StageFragment, nil, function("main(", assign(x, floatIndex)))
	assert.Equal(t, 1, n)
	assert.Equal(t, "ERROR: 'const float' : Index expression must have integral type\n", log)
}
