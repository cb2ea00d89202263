// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package builtins

import "sort"

// Behavior is the state a #extension directive puts an extension in.
type Behavior uint8

const (
	BehaviorRequire Behavior = iota
	BehaviorEnable
	BehaviorWarn
	BehaviorDisable
	BehaviorUndefined
)

// String returns the directive spelling of the behavior.
func (b Behavior) String() string {
	switch b {
	case BehaviorRequire:
		return "require"
	case BehaviorEnable:
		return "enable"
	case BehaviorWarn:
		return "warn"
	case BehaviorDisable:
		return "disable"
	default:
		return "undefined"
	}
}

// ParseBehavior parses a directive behavior keyword.
func ParseBehavior(s string) (Behavior, bool) {
	switch s {
	case "require":
		return BehaviorRequire, true
	case "enable":
		return BehaviorEnable, true
	case "warn":
		return BehaviorWarn, true
	case "disable":
		return BehaviorDisable, true
	default:
		return BehaviorUndefined, false
	}
}

// Extension names.
const (
	ExtOESStandardDerivatives = "GL_OES_standard_derivatives"
	ExtOESEGLImageExternal    = "GL_OES_EGL_image_external"
	ExtARBTextureRectangle    = "GL_ARB_texture_rectangle"
	ExtEXTDrawBuffers         = "GL_EXT_draw_buffers"
	ExtEXTFragDepth           = "GL_EXT_frag_depth"
	ExtEXTShaderTextureLOD    = "GL_EXT_shader_texture_lod"
)

// ExtensionBehavior maps every supported extension to its current
// behavior.
type ExtensionBehavior map[string]Behavior

// InitExtensionBehavior returns the behavior map for the extensions
// enabled in res, each in the undefined state.
func InitExtensionBehavior(res Resources) ExtensionBehavior {
	eb := ExtensionBehavior{}
	if res.OESStandardDerivatives {
		eb[ExtOESStandardDerivatives] = BehaviorUndefined
	}
	if res.OESEGLImageExternal {
		eb[ExtOESEGLImageExternal] = BehaviorUndefined
	}
	if res.ARBTextureRectangle {
		eb[ExtARBTextureRectangle] = BehaviorUndefined
	}
	if res.EXTDrawBuffers {
		eb[ExtEXTDrawBuffers] = BehaviorUndefined
	}
	if res.EXTFragDepth {
		eb[ExtEXTFragDepth] = BehaviorUndefined
	}
	if res.EXTShaderTextureLOD {
		eb[ExtEXTShaderTextureLOD] = BehaviorUndefined
	}
	return eb
}

// Supported reports whether name is known to the map.
func (eb ExtensionBehavior) Supported(name string) bool {
	_, ok := eb[name]
	return ok
}

// Enabled reports whether the shader may use the extension, possibly
// with a warning.
func (eb ExtensionBehavior) Enabled(name string) bool {
	b, ok := eb[name]
	if !ok {
		return false
	}
	return b == BehaviorRequire || b == BehaviorEnable || b == BehaviorWarn
}

// Names returns the extension names in lexical order.
func (eb ExtensionBehavior) Names() []string {
	names := make([]string, 0, len(eb))
	for name := range eb {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns an independent copy of the map.
func (eb ExtensionBehavior) Clone() ExtensionBehavior {
	c := make(ExtensionBehavior, len(eb))
	for k, v := range eb {
		c[k] = v
	}
	return c
}
