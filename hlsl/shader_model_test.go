// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"testing"

	"github.com/gogpu/translator/ir"
)

func TestShaderModel_String(t *testing.T) {
	tests := []struct {
		sm   ShaderModel
		want string
	}{
		{ShaderModel3_0, "SM 3.0"},
		{ShaderModel4_0, "SM 4.0"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := tt.sm.String()
			if got != tt.want {
				t.Errorf("ShaderModel.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShaderModel_Profile(t *testing.T) {
	tests := []struct {
		sm    ShaderModel
		stage ir.ShaderStage
		want  string
	}{
		{ShaderModel3_0, ir.StageVertex, "vs_3_0"},
		{ShaderModel3_0, ir.StageFragment, "ps_3_0"},
		{ShaderModel4_0, ir.StageVertex, "vs_4_0"},
		{ShaderModel4_0, ir.StageFragment, "ps_4_0"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := tt.sm.Profile(tt.stage)
			if got != tt.want {
				t.Errorf("Profile() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShaderModel_Features(t *testing.T) {
	if ShaderModel3_0.SeparateSamplers() {
		t.Error("SM 3.0 should combine samplers and textures")
	}
	if !ShaderModel4_0.SeparateSamplers() {
		t.Error("SM 4.0 should separate samplers and textures")
	}
	if ShaderModel3_0.SupportsIntegerOps() || !ShaderModel4_0.SupportsIntegerOps() {
		t.Error("native integers start at SM 4.0")
	}
	if ShaderModel3_0.Dialect() != "HLSL9" || ShaderModel4_0.Dialect() != "HLSL11" {
		t.Errorf("Dialect() = %q, %q", ShaderModel3_0.Dialect(), ShaderModel4_0.Dialect())
	}
	if ShaderModel(7).IsValid() {
		t.Error("ShaderModel(7) should be invalid")
	}
}
