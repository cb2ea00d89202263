// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package transform

import (
	"io"
	"strings"

	"github.com/gogpu/translator/ir"
)

// EmulationProfile selects the set of built-in functions that are
// replaced by emulated versions.
type EmulationProfile uint8

const (
	// EmulateNone emulates nothing.
	EmulateNone EmulationProfile = iota

	// EmulateFloatScalarForms works around drivers that miscompile cos
	// in fragment shaders and the float forms of the geometric
	// functions.
	EmulateFloatScalarForms
)

type emulatedFunction struct {
	op     ir.Operator
	params string
}

type emulation struct {
	source   string
	vertex   bool
	fragment bool
}

var (
	float1 = ir.Scalar(ir.Float)
	float2 = ir.Vector(ir.Float, 2)
	float3 = ir.Vector(ir.Float, 3)
	float4 = ir.Vector(ir.Float, 4)
)

func key(op ir.Operator, params ...ir.Type) emulatedFunction {
	var b strings.Builder
	for _, p := range params {
		b.WriteString(p.MangledName())
	}
	return emulatedFunction{op: op, params: b.String()}
}

var floatScalarForms = map[emulatedFunction]emulation{
	key(ir.OpCos, float1): {fragment: true,
		source: "webgl_emu_precision float webgl_cos_emu(webgl_emu_precision float a) { return cos(a); }"},
	key(ir.OpCos, float2): {fragment: true,
		source: "webgl_emu_precision vec2 webgl_cos_emu(webgl_emu_precision vec2 a) { return cos(a); }"},
	key(ir.OpCos, float3): {fragment: true,
		source: "webgl_emu_precision vec3 webgl_cos_emu(webgl_emu_precision vec3 a) { return cos(a); }"},
	key(ir.OpCos, float4): {fragment: true,
		source: "webgl_emu_precision vec4 webgl_cos_emu(webgl_emu_precision vec4 a) { return cos(a); }"},
	key(ir.OpDistance, float1, float1): {vertex: true, fragment: true,
		source: "#define webgl_distance_emu(x, y) ((x) >= (y) ? (x) - (y) : (y) - (x))"},
	key(ir.OpDot, float1, float1): {vertex: true, fragment: true,
		source: "#define webgl_dot_emu(x, y) ((x) * (y))"},
	key(ir.OpLength, float1): {vertex: true, fragment: true,
		source: "#define webgl_length_emu(x) ((x) >= 0.0 ? (x) : -(x))"},
	key(ir.OpNormalize, float1): {vertex: true, fragment: true,
		source: "#define webgl_normalize_emu(x) ((x) == 0.0 ? 0.0 : ((x) > 0.0 ? 1.0 : -1.0))"},
	key(ir.OpReflect, float1, float1): {vertex: true, fragment: true,
		source: "#define webgl_reflect_emu(I, N) ((I) - 2.0 * (N) * (I) * (N))"},
}

// BuiltInFunctionEmulator marks the built-in function calls that must be
// written as calls of emulated functions and writes their definitions.
type BuiltInFunctionEmulator struct {
	stage ir.ShaderStage
	table map[emulatedFunction]emulation

	called []emulatedFunction
	seen   map[emulatedFunction]bool
}

// NewBuiltInFunctionEmulator returns an emulator for stage.
func NewBuiltInFunctionEmulator(stage ir.ShaderStage, profile EmulationProfile) *BuiltInFunctionEmulator {
	e := &BuiltInFunctionEmulator{stage: stage, seen: map[emulatedFunction]bool{}}
	if profile == EmulateFloatScalarForms {
		e.table = floatScalarForms
	}
	return e
}

// EmulatedFunctionName returns the emulated counterpart of a function
// name written with its opening parenthesis: "cos(" becomes
// "webgl_cos_emu(".
func EmulatedFunctionName(name string) string {
	if !strings.HasSuffix(name, "(") {
		panic("unreachable: function name without parenthesis: " + name)
	}
	return "webgl_" + name[:len(name)-1] + "_emu("
}

// SetFunctionCalled records a call of op with the given parameter types
// and reports whether it is emulated.
func (e *BuiltInFunctionEmulator) SetFunctionCalled(op ir.Operator, params ...ir.Type) bool {
	k := key(op, bareTypes(params)...)
	em, ok := e.table[k]
	if !ok {
		return false
	}

	if (e.stage == ir.StageVertex && !em.vertex) || (e.stage == ir.StageFragment && !em.fragment) {
		return false
	}

	if !e.seen[k] {
		e.seen[k] = true
		e.called = append(e.called, k)
	}
	return true
}

// bareTypes drops everything but the shape of the types.
func bareTypes(ts []ir.Type) []ir.Type {
	out := make([]ir.Type, len(ts))
	for i, t := range ts {
		b := ir.Scalar(t.Basic)
		b.PrimarySize = t.PrimarySize
		b.SecondarySize = t.SecondarySize
		b.ArraySize = t.ArraySize
		out[i] = b
	}
	return out
}

// MarkBuiltInFunctionsForEmulation flags the emulated calls of root.
func (e *BuiltInFunctionEmulator) MarkBuiltInFunctionsForEmulation(root ir.Node) {
	if len(e.table) == 0 {
		return
	}
	ir.NewTraverser(&emulationMarker{e: e}, true, false, false, false).Walk(root)
}

// Called returns the number of distinct emulated functions in use.
func (e *BuiltInFunctionEmulator) Called() int { return len(e.called) }

// Cleanup forgets the recorded calls.
func (e *BuiltInFunctionEmulator) Cleanup() {
	e.called = nil
	e.seen = map[emulatedFunction]bool{}
}

// OutputEmulatedFunctionDefinitions writes the definitions of the
// emulated functions in use. withPrecision selects the ES SL precision
// preamble.
func (e *BuiltInFunctionEmulator) OutputEmulatedFunctionDefinitions(w io.StringWriter, withPrecision bool) {
	if len(e.called) == 0 {
		return
	}

	_, _ = w.WriteString("// BEGIN: Generated code for built-in function emulation\n\n")
	if withPrecision {
		_, _ = w.WriteString("#if defined(GL_FRAGMENT_PRECISION_HIGH)\n" +
			"#define webgl_emu_precision highp\n" +
			"#else\n" +
			"#define webgl_emu_precision mediump\n" +
			"#endif\n\n")
	} else {
		_, _ = w.WriteString("#define webgl_emu_precision\n\n")
	}

	for _, k := range e.called {
		_, _ = w.WriteString(e.table[k].source)
		_, _ = w.WriteString("\n\n")
	}

	_, _ = w.WriteString("// END: Generated code for built-in function emulation\n\n")
}

type emulationMarker struct {
	ir.BaseVisitor

	e *BuiltInFunctionEmulator
}

func (m *emulationMarker) VisitUnary(visit ir.Visit, n *ir.UnaryNode) bool {
	if visit == ir.PreVisit && n.Operand != nil && m.e.SetFunctionCalled(n.Op, n.Operand.Type()) {
		n.UseEmulatedFunction = true
	}
	return true
}

func (m *emulationMarker) VisitAggregate(visit ir.Visit, n *ir.AggregateNode) bool {
	if visit != ir.PreVisit {
		return true
	}

	switch n.Op {
	case ir.OpSequence, ir.OpFunction, ir.OpFunctionCall, ir.OpParameters,
		ir.OpDeclaration, ir.OpInvariantDeclaration, ir.OpPrototype:
		return true
	}
	if n.Op.IsConstructor() {
		return true
	}

	// Only two argument built-ins are emulated.
	if len(n.Sequence) != 2 {
		return true
	}

	a, ok1 := n.Sequence[0].(ir.Typed)
	b, ok2 := n.Sequence[1].(ir.Typed)
	if ok1 && ok2 && m.e.SetFunctionCalled(n.Op, a.Type(), b.Type()) {
		n.UseEmulatedFunction = true
	}

	return true
}
