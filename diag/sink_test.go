// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gogpu/translator/ir"
)

func TestSinkFormat(t *testing.T) {
	var s Sink

	s.Error(ir.SourceLoc{FirstFile: 0, FirstLine: 4}, "Invalid type for loop index", "j", "")
	s.Warning(ir.SourceLoc{}, "extension is not supported", "GL_FOO", "")
	s.Errorf(ir.SourceLoc{FirstFile: 1, FirstLine: 2}, "%d failures", 3)

	assert.Equal(t, ""+
		"ERROR: 0:4: 'j' : Invalid type for loop index\n"+
		"WARNING: 'GL_FOO' : extension is not supported\n"+
		"ERROR: 1:2: 3 failures\n", s.String())
	assert.Equal(t, 2, s.ErrorCount())
	assert.Equal(t, 1, s.WarningCount())

	s.Reset()
	assert.Empty(t, s.String())
	assert.Zero(t, s.ErrorCount())
}

func TestSinkInternalCountsAsError(t *testing.T) {
	var s Sink
	s.Internal(ir.SourceLoc{}, "bad tree")
	s.Message(SevNote, ir.SourceLoc{}, "fyi")

	assert.Equal(t, 1, s.ErrorCount())
	assert.Equal(t, "INTERNAL ERROR: bad tree\nNOTE: fyi\n", s.String())
}
