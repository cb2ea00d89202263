// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/gogpu/translator/analysis"
	"github.com/gogpu/translator/ir"
)

func TestScenarios(t *testing.T) {
	archive, err := txtar.ParseFile("testdata/scenarios.txtar")
	require.NoError(t, err)

	fs := builtinTable(ir.StageFragment)

	cases := map[string]func(t *testing.T) (ir.Node, Options){
		"red_essl": func(t *testing.T) (ir.Node, Options) {
			return redFragment(fs), Options{Target: TargetESSL, Stage: ir.StageFragment, Table: fs}
		},
		"red_glsl": func(t *testing.T) (ir.Node, Options) {
			return redFragment(fs), Options{Target: TargetGLSL, Stage: ir.StageFragment, Table: fs}
		},
		"red_glsl_core": func(t *testing.T) (ir.Node, Options) {
			return redFragment(fs), Options{Target: TargetGLSLCore, Stage: ir.StageFragment, Table: fs}
		},
		"unrolled_essl": func(t *testing.T) (ir.Node, Options) {
			root := clearLoop()
			analysis.MarkForLoopsWithIntegerIndices(root)
			return root, Options{Target: TargetESSL, Stage: ir.StageFragment, Table: fs}
		},
		"sampler_unrolled_essl": func(t *testing.T) (ir.Node, Options) {
			root := samplerLoop()
			require.True(t, analysis.MarkForLoopsWithSamplerArrayIndices(root))
			return root, Options{Target: TargetESSL, Stage: ir.StageFragment, Table: fs}
		},
		"loop_glsl": func(t *testing.T) (ir.Node, Options) {
			return clearLoop(), Options{Target: TargetGLSL, Stage: ir.StageFragment, Table: fs}
		},
	}

	require.Len(t, archive.Files, len(cases))
	for _, f := range archive.Files {
		build, ok := cases[f.Name]
		require.True(t, ok, "no case for %s", f.Name)

		t.Run(f.Name, func(t *testing.T) {
			root, opts := build(t)
			assert.Equal(t, string(f.Data), compile(t, root, opts))
		})
	}
}
