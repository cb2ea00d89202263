// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package transform holds the passes that rewrite or annotate a shader
// tree before it is written out: constructor argument scalarization,
// array bounds clamp marking, built-in function emulation marking and
// gl_Position initialization.
package transform
