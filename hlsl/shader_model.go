// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"fmt"

	"github.com/gogpu/translator/ir"
)

// ShaderModel represents a Direct3D Shader Model version.
// Shader Models define the feature set available for shader compilation.
type ShaderModel uint8

// Supported Shader Model versions.
const (
	// ShaderModel3_0 targets Direct3D 9 ("HLSL9"). Samplers and
	// textures are one object and integers are emulated with floats.
	ShaderModel3_0 ShaderModel = iota

	// ShaderModel4_0 targets Direct3D 10 and 11 ("HLSL11"). Textures
	// and sampler states are split and system values use SV_ semantics.
	ShaderModel4_0
)

// String returns a human-readable representation of the shader model.
// Example: "SM 3.0", "SM 4.0"
func (sm ShaderModel) String() string {
	major, minor := sm.version()
	return fmt.Sprintf("SM %d.%d", major, minor)
}

// ProfileSuffix returns the shader profile suffix for this model.
// Example: "3_0", "4_0"
func (sm ShaderModel) ProfileSuffix() string {
	major, minor := sm.version()
	return fmt.Sprintf("%d_%d", major, minor)
}

// Profile returns the compiler profile of a stage, e.g. "vs_3_0" or
// "ps_4_0".
func (sm ShaderModel) Profile(stage ir.ShaderStage) string {
	prefix := "vs_"
	if stage == ir.StageFragment {
		prefix = "ps_"
	}
	return prefix + sm.ProfileSuffix()
}

// Dialect returns the output dialect name used by the driver.
func (sm ShaderModel) Dialect() string {
	if sm == ShaderModel3_0 {
		return "HLSL9"
	}
	return "HLSL11"
}

// IsValid reports whether sm is one of the supported models.
func (sm ShaderModel) IsValid() bool {
	return sm <= ShaderModel4_0
}

// version returns the major and minor version numbers.
func (sm ShaderModel) version() (major, minor uint8) {
	switch sm {
	case ShaderModel3_0:
		return 3, 0
	default:
		return 4, 0
	}
}

// Major returns the major version number.
func (sm ShaderModel) Major() uint8 {
	major, _ := sm.version()
	return major
}

// SeparateSamplers returns true if textures and sampler states are
// separate objects.
func (sm ShaderModel) SeparateSamplers() bool {
	return sm >= ShaderModel4_0
}

// SystemValueSemantics returns true if built-in inputs and outputs use
// SV_ semantics.
func (sm ShaderModel) SystemValueSemantics() bool {
	return sm >= ShaderModel4_0
}

// SupportsIntegerOps returns true if the model has native integer
// arithmetic, including bit operations.
func (sm ShaderModel) SupportsIntegerOps() bool {
	return sm >= ShaderModel4_0
}
