// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package glsl writes a validated shader tree back out as shader source.
//
// Three targets are supported:
//
//   - TargetESSL: OpenGL ES Shading Language, with precision qualifiers
//   - TargetGLSL: desktop GLSL 1.10/1.20, precision qualifiers dropped
//   - TargetGLSLCore: desktop GLSL 3.30 core, using the texture family
//
// # Basic Usage
//
//	source, info, err := glsl.Compile(root, glsl.Options{
//	    Target: glsl.TargetESSL,
//	    Stage:  ir.StageFragment,
//	    Table:  table,
//	})
//
// # Output Layout
//
// The object code is written in a fixed order: the #version line (only
// when the inferred version is above the implicit one), the pragma
// line, the #extension lines, the emulated built-in functions, the
// array bounds clamping helper and finally the shader itself.
//
// # Identifier Hashing
//
// With Options.HashFunction set, every user identifier is replaced by
// "webgl_" followed by the hexadecimal hash of the name. Built-in names
// and main are never hashed. The mapping is returned in
// TranslationInfo.NameMap.
package glsl
