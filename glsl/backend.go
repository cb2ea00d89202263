// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"tlog.app/go/errors"

	"github.com/gogpu/translator/builtins"
	"github.com/gogpu/translator/directive"
	"github.com/gogpu/translator/ir"
	"github.com/gogpu/translator/symbols"
	"github.com/gogpu/translator/transform"
)

// Target is the dialect the tree is written in.
type Target uint8

const (
	// TargetESSL writes ES SL with precision qualifiers.
	TargetESSL Target = iota

	// TargetGLSL writes desktop GLSL 1.10 or 1.20.
	TargetGLSL

	// TargetGLSLCore writes desktop GLSL 3.30 core.
	TargetGLSLCore
)

// String returns the target name.
func (t Target) String() string {
	switch t {
	case TargetESSL:
		return "essl"
	case TargetGLSL:
		return "glsl"
	case TargetGLSLCore:
		return "glsl-core"
	default:
		return "unknown"
	}
}

// HashFunction maps an identifier to a 64-bit hash.
type HashFunction func(name string) uint64

// HashedNamePrefix starts every hashed identifier.
const HashedNamePrefix = "webgl_"

// Options configures GLSL code generation.
type Options struct {
	Target Target
	Stage  ir.ShaderStage

	// ShaderVersion is the ES SL version of the input, 100 or 300.
	// Defaults to 100 if zero.
	ShaderVersion int

	// Table resolves built-in names, which are never hashed. It may be
	// nil when no hashing is requested.
	Table *symbols.Table

	Pragma     directive.Pragma
	Extensions builtins.ExtensionBehavior

	// NVDrawBuffers writes GL_EXT_draw_buffers as GL_NV_draw_buffers.
	NVDrawBuffers bool

	// HashFunction enables identifier hashing when not nil.
	HashFunction HashFunction

	// NameMap memoizes hashed names across compiles. A new map is used
	// if nil.
	NameMap map[string]string

	// Clamper selects the index clamping strategy and writes its helper.
	// Nil means clamp with the intrinsic and no helper.
	Clamper *transform.ArrayBoundsClamper

	// Emulator writes the emulated built-in functions in use. May be nil.
	Emulator *transform.BuiltInFunctionEmulator
}

// TranslationInfo contains metadata about the translation.
type TranslationInfo struct {
	// Version is the #version of the output. Desktop GLSL 1.10 and ES SL
	// 1.00 are implicit and not written.
	Version int

	// UsedExtensions lists the #extension lines written, in order.
	UsedExtensions []string

	// NameMap maps original identifiers to their hashed names.
	NameMap map[string]string
}

// Compile writes the object code for root.
func Compile(root ir.Node, options Options) (string, TranslationInfo, error) {
	if root == nil {
		return "", TranslationInfo{}, errors.New("glsl: nil tree")
	}
	if options.Target > TargetGLSLCore {
		return "", TranslationInfo{}, errors.New("glsl: unsupported target %v", options.Target)
	}
	if options.ShaderVersion == 0 {
		options.ShaderVersion = 100
	}
	if options.NameMap == nil {
		options.NameMap = map[string]string{}
	}

	w := newWriter(&options)
	w.writeHeader(root)
	w.writeTree(root)

	info := TranslationInfo{
		Version:        w.version,
		UsedExtensions: w.extensions,
		NameMap:        options.NameMap,
	}

	return w.String(), info, nil
}
