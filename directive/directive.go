// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package directive applies #pragma, #extension and #version directives
// of a shader to the per-compile state: the pragma switches and the
// extension behavior map.
package directive

import (
	"strconv"

	"github.com/gogpu/translator/builtins"
	"github.com/gogpu/translator/diag"
	"github.com/gogpu/translator/ir"
)

// Pragma holds the state set by #pragma directives.
type Pragma struct {
	Optimize bool
	Debug    bool

	// STDGL holds the pragmas in the reserved STDGL namespace.
	STDGL struct {
		InvariantAll bool
	}
}

// DefaultPragma returns the pragma state of a shader with no pragmas.
func DefaultPragma() Pragma {
	return Pragma{Optimize: true}
}

// Handler receives the directives found while preprocessing one shader.
// Diagnostics go to Sink.
type Handler struct {
	Pragma            Pragma
	ExtensionBehavior builtins.ExtensionBehavior
	ShaderVersion     int

	Sink *diag.Sink
}

// NewHandler returns a handler updating eb in place.
func NewHandler(eb builtins.ExtensionBehavior, sink *diag.Sink) *Handler {
	return &Handler{
		Pragma:            DefaultPragma(),
		ExtensionBehavior: eb,
		ShaderVersion:     100,
		Sink:              sink,
	}
}

const (
	extAll = "all"

	pragmaOptimize = "optimize"
	pragmaDebug    = "debug"
	valueOn        = "on"
	valueOff       = "off"
)

// HandleError reports an #error directive.
func (h *Handler) HandleError(loc ir.SourceLoc, msg string) {
	h.Sink.Error(loc, msg, "", "")
}

// HandlePragma applies "#pragma name(value)". stdgl is set when the
// pragma was written as "#pragma STDGL name(value)".
func (h *Handler) HandlePragma(loc ir.SourceLoc, name, value string, stdgl bool) {
	if stdgl {
		// The STDGL namespace is reserved for the implementation, so
		// anything other than invariant(all) is ignored quietly.
		if name == "invariant" && value == extAll {
			h.Pragma.STDGL.InvariantAll = true
		}
		return
	}

	var dst *bool
	switch name {
	case pragmaOptimize:
		dst = &h.Pragma.Optimize
	case pragmaDebug:
		dst = &h.Pragma.Debug
	default:
		h.Sink.Warning(loc, "unrecognized pragma", name, "")
		return
	}

	switch value {
	case valueOn:
		*dst = true
	case valueOff:
		*dst = false
	default:
		h.Sink.Error(loc, "invalid pragma value", value, "'on' or 'off' expected")
	}
}

// HandleExtension applies "#extension name : behavior".
func (h *Handler) HandleExtension(loc ir.SourceLoc, name, behavior string) {
	b, ok := builtins.ParseBehavior(behavior)
	if !ok || b == builtins.BehaviorUndefined {
		h.Sink.Error(loc, "behavior", name, "invalid")
		return
	}

	if name == extAll {
		switch b {
		case builtins.BehaviorRequire:
			h.Sink.Error(loc, "extension", name, "cannot have 'require' behavior")
		case builtins.BehaviorEnable:
			h.Sink.Error(loc, "extension", name, "cannot have 'enable' behavior")
		default:
			for ext := range h.ExtensionBehavior {
				h.ExtensionBehavior[ext] = b
			}
		}
		return
	}

	if h.ExtensionBehavior.Supported(name) {
		h.ExtensionBehavior[name] = b
		return
	}

	if b == builtins.BehaviorRequire {
		h.Sink.Error(loc, "extension", name, "is not supported")
	} else {
		h.Sink.Warning(loc, "extension", name, "is not supported")
	}
}

// HandleVersion applies "#version N". Only 100 and 300 are accepted.
func (h *Handler) HandleVersion(loc ir.SourceLoc, version int) {
	if version == 100 || version == 300 {
		h.ShaderVersion = version
		return
	}

	h.Sink.Error(loc, "version number", strconv.Itoa(version), "not supported")
}
