// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"github.com/gogpu/translator/directive"
	"github.com/gogpu/translator/ir"
)

// Desktop GLSL versions written by TargetGLSL.
const (
	GLSLVersion110 = 110
	GLSLVersion120 = 120

	// GLSLVersion330 is always written by TargetGLSLCore.
	GLSLVersion330 = 330
)

// VersionGLSL infers the lowest desktop GLSL version able to express a
// tree. It starts at 1.10, or 1.20 when invariant(all) is in effect, and
// raises to 1.20 on any of:
//
//   - a use of gl_PointCoord
//   - an invariant declaration
//   - a matrix constructed from a single matrix
//   - an array passed as an out or inout parameter
type VersionGLSL struct {
	ir.BaseVisitor

	version int
}

// NewVersionGLSL returns an inference starting from the pragma state.
func NewVersionGLSL(pragma directive.Pragma) *VersionGLSL {
	v := &VersionGLSL{version: GLSLVersion110}
	if pragma.STDGL.InvariantAll {
		v.version = GLSLVersion120
	}
	return v
}

// InferVersion returns the version required by root.
func InferVersion(root ir.Node, pragma directive.Pragma) int {
	v := NewVersionGLSL(pragma)
	v.Walk(root)
	return v.Version()
}

// Walk visits root.
func (v *VersionGLSL) Walk(root ir.Node) {
	ir.NewTraverser(v, true, false, false, false).Walk(root)
}

// Version returns the version inferred so far.
func (v *VersionGLSL) Version() int { return v.version }

// UpdateVersion raises the version to at least version.
func (v *VersionGLSL) UpdateVersion(version int) {
	v.version = max(v.version, version)
}

func (v *VersionGLSL) VisitSymbol(n *ir.SymbolNode) {
	if n.Name == "gl_PointCoord" {
		v.UpdateVersion(GLSLVersion120)
	}
}

func (v *VersionGLSL) VisitAggregate(_ ir.Visit, n *ir.AggregateNode) bool {
	switch n.Op {
	case ir.OpDeclaration:
		if len(n.Sequence) > 0 {
			if t, ok := n.Sequence[0].(ir.Typed); ok && invariant(t.Type()) {
				v.UpdateVersion(GLSLVersion120)
			}
		}

	case ir.OpInvariantDeclaration:
		v.UpdateVersion(GLSLVersion120)

	case ir.OpParameters:
		for _, p := range n.Sequence {
			t, ok := p.(ir.Typed)
			if !ok || !t.Type().IsArray() {
				continue
			}
			if q := t.Type().Qualifier; q == ir.QualOut || q == ir.QualInOut {
				v.UpdateVersion(GLSLVersion120)
				break
			}
		}
		return false

	case ir.OpConstructMat2, ir.OpConstructMat2x3, ir.OpConstructMat2x4,
		ir.OpConstructMat3x2, ir.OpConstructMat3, ir.OpConstructMat3x4,
		ir.OpConstructMat4x2, ir.OpConstructMat4x3, ir.OpConstructMat4:
		if len(n.Sequence) == 1 {
			if t, ok := n.Sequence[0].(ir.Typed); ok && t.Type().IsMatrix() {
				v.UpdateVersion(GLSLVersion120)
			}
		}
	}

	return true
}

func invariant(t ir.Type) bool {
	switch t.Qualifier {
	case ir.QualInvariantVaryingIn, ir.QualInvariantVaryingOut:
		return true
	}
	return t.Invariant
}
