// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

// coreKeywords contains the words reserved by desktop GLSL 3.30 that an
// ES SL 1.00 shader may use as identifiers.
var coreKeywords = map[string]struct{}{
	// Storage and interpolation
	"in": {}, "out": {}, "inout": {}, "centroid": {}, "flat": {}, "smooth": {},
	"noperspective": {}, "layout": {}, "patch": {}, "sample": {}, "subroutine": {},

	// Types
	"uint": {}, "uvec2": {}, "uvec3": {}, "uvec4": {},
	"mat2x2": {}, "mat2x3": {}, "mat2x4": {},
	"mat3x2": {}, "mat3x3": {}, "mat3x4": {},
	"mat4x2": {}, "mat4x3": {}, "mat4x4": {},
	"sampler1D": {}, "sampler1DShadow": {}, "sampler1DArray": {}, "sampler1DArrayShadow": {},
	"sampler2DShadow": {}, "samplerCubeShadow": {}, "sampler2DArray": {}, "sampler2DArrayShadow": {},
	"sampler2DRectShadow": {}, "samplerBuffer": {}, "sampler2DMS": {}, "sampler2DMSArray": {},
	"isampler1D": {}, "isampler2D": {}, "isampler3D": {}, "isamplerCube": {},
	"isampler1DArray": {}, "isampler2DArray": {}, "isampler2DRect": {}, "isamplerBuffer": {},
	"usampler1D": {}, "usampler2D": {}, "usampler3D": {}, "usamplerCube": {},
	"usampler1DArray": {}, "usampler2DArray": {}, "usampler2DRect": {}, "usamplerBuffer": {},

	// Control flow
	"switch": {}, "case": {}, "default": {},

	// Built-in functions that a user variable would hide
	"texture": {}, "textureProj": {}, "textureLod": {}, "textureProjLod": {},
	"textureGrad": {}, "textureProjGrad": {}, "textureSize": {}, "texelFetch": {},
	"textureOffset": {}, "texelFetchOffset": {},
}

// isKeyword checks if a name is reserved by the core profile.
func isKeyword(name string) bool {
	_, ok := coreKeywords[name]
	return ok
}

// escapeKeyword escapes a name if it conflicts with a core keyword.
// Returns the name with underscore prefix if it's reserved.
func escapeKeyword(name string) string {
	if isKeyword(name) {
		return "_" + name
	}
	return name
}

// legacyTextureFunctions maps the ES SL 1.00 texture functions to the
// names written for desktop GLSL 1.x.
var legacyTextureFunctions = map[string]string{
	"texture2DLodEXT":      "texture2DLod",
	"texture2DProjLodEXT":  "texture2DProjLod",
	"textureCubeLodEXT":    "textureCubeLod",
	"texture2DGradEXT":     "texture2DGradARB",
	"texture2DProjGradEXT": "texture2DProjGradARB",
	"textureCubeGradEXT":   "textureCubeGradARB",
}

// coreTextureFunctions maps the ES SL 1.00 texture functions to the
// unified texture family.
var coreTextureFunctions = map[string]string{
	"texture2D":            "texture",
	"texture2DProj":        "textureProj",
	"textureCube":          "texture",
	"texture2DRect":        "texture",
	"texture2DRectProj":    "textureProj",
	"texture2DLod":         "textureLod",
	"texture2DProjLod":     "textureProjLod",
	"textureCubeLod":       "textureLod",
	"texture2DLodEXT":      "textureLod",
	"texture2DProjLodEXT":  "textureProjLod",
	"textureCubeLodEXT":    "textureLod",
	"texture2DGradEXT":     "textureGrad",
	"texture2DProjGradEXT": "textureProjGrad",
	"textureCubeGradEXT":   "textureGrad",
}

// translateTextureFunction renames a built-in texture function for the
// target. Other names are returned unchanged.
func (w *Writer) translateTextureFunction(name string) string {
	var table map[string]string
	switch w.options.Target {
	case TargetGLSL:
		table = legacyTextureFunctions
	case TargetGLSLCore:
		table = coreTextureFunctions
	default:
		return name
	}

	if mapped, ok := table[name]; ok {
		return mapped
	}
	return name
}
