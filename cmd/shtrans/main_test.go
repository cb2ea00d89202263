// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/translator"
	"github.com/gogpu/translator/builtins"
	"github.com/gogpu/translator/ir"
)

func TestParseStageAndSpec(t *testing.T) {
	st, err := parseStage("fragment")
	require.NoError(t, err)
	assert.Equal(t, ir.StageFragment, st)

	_, err = parseStage("geometry")
	assert.Error(t, err)

	sp, err := parseSpec(builtins.SpecWebGL.String())
	require.NoError(t, err)
	assert.Equal(t, builtins.SpecWebGL, sp)

	_, err = parseSpec("gles9")
	assert.Error(t, err)
}

func TestDemoShader(t *testing.T) {
	for _, stage := range []ir.ShaderStage{ir.StageVertex, ir.StageFragment} {
		t.Run(stage.String(), func(t *testing.T) {
			c := translator.ConstructCompiler(stage, builtins.SpecWebGL, translator.OutputESSL)
			require.NoError(t, c.Init(builtins.DefaultResources(), nil))

			err := c.Compile(context.Background(), demoShader(c, stage), translator.DefaultCompileOptions())
			require.NoError(t, err, c.InfoLog())

			vars := c.Variables()
			if stage == ir.StageVertex {
				assert.Contains(t, c.ObjectCode(), "gl_Position")
				assert.Len(t, vars.Uniforms, 1)
				assert.Len(t, vars.Attributes, 1)
				// v_color and gl_Position.
				assert.Len(t, vars.Varyings, 2)
			} else {
				assert.Contains(t, c.ObjectCode(), "gl_FragColor")
				assert.Len(t, vars.Varyings, 1)
			}
		})
	}
}
