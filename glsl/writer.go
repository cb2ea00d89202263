// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/translator/analysis"
	"github.com/gogpu/translator/builtins"
	"github.com/gogpu/translator/ir"
	"github.com/gogpu/translator/transform"
)

// Writer serializes a shader tree. It is an ir.Visitor driven in the
// pre, in and post phases; nodes whose children need a custom order are
// traversed by hand from their pre visit.
type Writer struct {
	options *Options

	// Output buffer
	out strings.Builder

	t *ir.Traverser

	// declaringVariables is set while the names of a declaration are
	// written, so array symbols print their bounds.
	declaringVariables bool

	// declaredStructs holds the ids of the named structs already
	// written out in full.
	declaredStructs map[int]struct{}

	unroll analysis.LoopStack

	// Output tracking
	version    int
	extensions []string
}

func newWriter(options *Options) *Writer {
	w := &Writer{
		options:         options,
		declaredStructs: make(map[int]struct{}),
	}
	w.t = ir.NewTraverser(w, true, true, true, false)
	return w
}

// String returns the generated source code.
func (w *Writer) String() string {
	return w.out.String()
}

// writeHeader writes everything that precedes the shader body.
func (w *Writer) writeHeader(root ir.Node) {
	w.writeVersion(root)
	w.writePragma()
	w.writeExtensionBehavior()

	if e := w.options.Emulator; e != nil {
		withPrecision := w.options.Target == TargetESSL && w.options.Stage == ir.StageFragment
		e.OutputEmulatedFunctionDefinitions(&w.out, withPrecision)
	}
	if c := w.options.Clamper; c != nil {
		c.OutputClampingFunctionDefinition(&w.out)
	}

	if w.options.Target == TargetGLSLCore && w.options.Stage == ir.StageFragment {
		w.writeFragmentOutputs(root)
	}
}

func (w *Writer) writeTree(root ir.Node) {
	w.t.Walk(root)
}

func (w *Writer) writeVersion(root ir.Node) {
	switch w.options.Target {
	case TargetESSL:
		w.version = w.options.ShaderVersion
		if w.version > 100 {
			fmt.Fprintf(&w.out, "#version %d es\n", w.version)
		}

	case TargetGLSL:
		w.version = InferVersion(root, w.options.Pragma)
		if w.version > GLSLVersion110 {
			fmt.Fprintf(&w.out, "#version %d\n", w.version)
		}

	case TargetGLSLCore:
		w.version = GLSLVersion330
		fmt.Fprintf(&w.out, "#version %d\n", w.version)
	}
}

func (w *Writer) writePragma() {
	if w.options.Pragma.STDGL.InvariantAll {
		w.out.WriteString("#pragma STDGL invariant(all)\n")
	}
}

// writeExtensionBehavior writes one #extension line per extension whose
// behavior was set by the shader. Desktop targets only need the texture
// LOD extension, under its ARB name.
func (w *Writer) writeExtensionBehavior() {
	eb := w.options.Extensions
	for _, name := range eb.Names() {
		b := eb[name]
		if b == builtins.BehaviorUndefined || b == builtins.BehaviorDisable {
			continue
		}

		switch w.options.Target {
		case TargetESSL:
			if w.options.NVDrawBuffers && name == builtins.ExtEXTDrawBuffers {
				name = "GL_NV_draw_buffers"
			}
		default:
			if name != builtins.ExtEXTShaderTextureLOD {
				continue
			}
			if w.options.Target == TargetGLSLCore {
				// Part of the core texture family.
				continue
			}
			name = "GL_ARB_shader_texture_lod"
		}

		fmt.Fprintf(&w.out, "#extension %s : %v\n", name, b)
		w.extensions = append(w.extensions, name)
	}
}

// writeFragmentOutputs declares the user outputs replacing gl_FragColor
// and gl_FragData, which do not exist in the core profile.
func (w *Writer) writeFragmentOutputs(root ir.Node) {
	f := &fragOutputFinder{}
	ir.NewTraverser(f, true, false, false, false).Walk(root)

	if f.color {
		w.out.WriteString("out vec4 webgl_FragColor;\n")
	}
	if f.data > 0 {
		fmt.Fprintf(&w.out, "out vec4 webgl_FragData[%d];\n", f.data)
	}
}

type fragOutputFinder struct {
	ir.BaseVisitor

	color bool
	data  int
}

func (f *fragOutputFinder) VisitSymbol(n *ir.SymbolNode) {
	switch n.Name {
	case "gl_FragColor":
		f.color = true
	case "gl_FragData":
		f.data = max(f.data, n.Type().ArraySize, 1)
	}
}

// hashName returns the output spelling of a user identifier.
func (w *Writer) hashName(name string) string {
	if w.options.HashFunction == nil || name == "" {
		if w.options.Target == TargetGLSLCore {
			return escapeKeyword(name)
		}
		return name
	}

	return HashName(name, w.options.HashFunction, w.options.NameMap)
}

// HashName returns the hashed spelling of name, memoized in nameMap.
func HashName(name string, hash HashFunction, nameMap map[string]string) string {
	if hashed, ok := nameMap[name]; ok {
		return hashed
	}
	hashed := HashedNamePrefix + strconv.FormatUint(hash(name), 16)
	nameMap[name] = hashed

	return hashed
}

// hashVariableName keeps built-in variable names.
func (w *Writer) hashVariableName(name string) string {
	if !w.isBuiltIn(name) {
		return w.hashName(name)
	}
	if w.options.Target == TargetGLSLCore {
		switch name {
		case "gl_FragColor":
			return "webgl_FragColor"
		case "gl_FragData":
			return "webgl_FragData"
		}
	}
	return name
}

// hashFunctionName maps a mangled function name to its output spelling.
// Built-in functions go through the texture function translation.
func (w *Writer) hashFunctionName(mangled string) string {
	name := mangled
	if i := strings.IndexByte(mangled, '('); i >= 0 {
		name = mangled[:i]
	}
	if name == "main" || w.isBuiltIn(mangled) {
		return w.translateTextureFunction(name)
	}
	return w.hashName(name)
}

func (w *Writer) isBuiltIn(name string) bool {
	if w.options.Table == nil {
		return strings.HasPrefix(name, "gl_")
	}
	return w.options.Table.FindBuiltIn(name, w.options.ShaderVersion) != nil
}

func (w *Writer) clampingStrategy() transform.ClampingStrategy {
	if w.options.Clamper == nil {
		return transform.ClampWithClampIntrinsic
	}
	return w.options.Clamper.Strategy()
}

// writeTriplet writes the text belonging to the phase of visit.
func (w *Writer) writeTriplet(visit ir.Visit, pre, in, post string) {
	switch visit {
	case ir.PreVisit:
		w.out.WriteString(pre)
	case ir.InVisit:
		w.out.WriteString(in)
	case ir.PostVisit:
		w.out.WriteString(post)
	}
}

// writeBuiltInFunctionTriplet writes a built-in function call, naming
// the emulated replacement when requested.
func (w *Writer) writeBuiltInFunctionTriplet(visit ir.Visit, name string, useEmulated bool) {
	if useEmulated {
		name = transform.EmulatedFunctionName(name)
	}
	w.writeTriplet(visit, name, ", ", ")")
}

// formatFloat formats a float32 for GLSL output.
func formatFloat(f float32) string {
	s := strconv.FormatFloat(float64(f), 'g', -1, 32)
	// Ensure it has a decimal point or exponent
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
