// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package analysis contains the read-mostly passes run over a shader tree
// before code generation: the GLSL ES 1.00 Appendix A limitations,
// for-loop unroll marking, std140 struct flagging, call graph depth and
// the collection of the shader interface variables.
//
// Passes report user errors to a diag.Sink and never fail by panicking.
// A panic with an "unreachable:" message means an earlier pass let an
// invalid tree through.
package analysis
