// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"fmt"
	"strings"

	"github.com/gogpu/translator/ir"
)

// HLSL semantic constants.
const (
	semanticSVPosition  = "SV_Position"
	semanticSVTarget    = "SV_Target"
	semanticSVFrontFace = "SV_IsFrontFace"
	semanticPosition    = "POSITION"
	semanticPointSize   = "PSIZE"
	semanticColor       = "COLOR"
	semanticVPos        = "VPOS"
	semanticVFace       = "VFACE"
	semanticTexCoord    = "TEXCOORD"
)

// Generated identifiers.
const (
	inputVar            = "input"
	outputVar           = "output"
	structureVar        = "structure"
	vertexInput         = "VS_INPUT"
	vertexOutput        = "VS_OUTPUT"
	pixelInput          = "PS_INPUT"
	pixelOutput         = "PS_OUTPUT"
	colorOutputPrefix   = "gl_Color"
	textureHelperPrefix = "gl_"
	structCtorSuffix    = "_ctor"
	modHelperName       = "mod"
)

// =============================================================================
// Helper Functions
// =============================================================================

type helper struct {
	name   string
	source string
}

// helperSet collects generated functions in first use order.
type helperSet struct {
	keys  map[string]struct{}
	funcs []helper
}

// add records source under key and reports whether it was new.
func (h *helperSet) add(key, name, source string) bool {
	if h.keys == nil {
		h.keys = make(map[string]struct{})
	}
	if _, ok := h.keys[key]; ok {
		return false
	}
	h.keys[key] = struct{}{}
	h.funcs = append(h.funcs, helper{name: name, source: source})
	return true
}

// names returns the distinct helper names.
func (h *helperSet) names() []string {
	var names []string
	seen := make(map[string]struct{})
	for _, f := range h.funcs {
		if _, ok := seen[f.name]; ok {
			continue
		}
		seen[f.name] = struct{}{}
		names = append(names, f.name)
	}
	return names
}

func (h *helperSet) writeTo(b *strings.Builder) {
	for _, f := range h.funcs {
		b.WriteString(f.source)
		b.WriteByte('\n')
	}
}

// ensureStructConstructor returns the name of the function building a
// value of s from its fields, generating it on first use.
func (w *Writer) ensureStructConstructor(n ir.Node, s *ir.Struct) string {
	if s == nil || s.Name == "" {
		w.fail(ErrUnsupportedFeature, n, "constructor of an anonymous struct")
		return ""
	}

	typeName := decorate(s.Name)
	name := typeName + structCtorSuffix

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s(", typeName, name)
	for i := range s.Fields {
		f := &s.Fields[i]
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s x%d", w.typeName(n, f.Type), i)
		if f.Type.IsArray() {
			b.WriteString(arrayBrackets(f.Type))
		}
	}
	b.WriteString(")\n{\n")
	fmt.Fprintf(&b, "    %s %s;\n", typeName, structureVar)
	for i := range s.Fields {
		fmt.Fprintf(&b, "    %s.%s = x%d;\n", structureVar, w.fieldName(s, s.Fields[i].Name), i)
	}
	fmt.Fprintf(&b, "    return %s;\n}\n", structureVar)

	w.helpers.add("struct:"+typeName, name, b.String())
	return name
}

// ensureModFunction generates the GLSL mod overload for the argument
// types of n. HLSL fmod truncates instead of flooring.
func (w *Writer) ensureModFunction(n *ir.AggregateNode) {
	if len(n.Sequence) != 2 {
		w.fail(ErrInvalidTree, n, "mod takes two arguments")
		return
	}
	x, okx := n.Sequence[0].(ir.Typed)
	y, oky := n.Sequence[1].(ir.Typed)
	if !okx || !oky {
		w.fail(ErrInvalidTree, n, "mod argument is not an expression")
		return
	}

	tx := w.typeName(n, x.Type())
	ty := w.typeName(n, y.Type())
	source := fmt.Sprintf("%s %s(%s x, %s y)\n{\n    return x - y * floor(x / y);\n}\n", tx, modHelperName, tx, ty)
	w.helpers.add("mod:"+tx+","+ty, modHelperName, source)
}

// textureFunction is a GLSL texture lookup written as a helper of the
// same name, once per shader model family.
type textureFunction struct {
	params3, body3 string
	params4, body4 string
}

// textureFunctions is keyed by mangled GLSL name.
var textureFunctions = map[string]textureFunction{
	"texture2D(s21;f2;": {
		"sampler2D s, float2 t", "tex2D(s, t)",
		"Texture2D x, SamplerState s, float2 t", "x.Sample(s, t)",
	},
	"texture2D(s21;f2;f1;": {
		"sampler2D s, float2 t, float bias", "tex2Dbias(s, float4(t.x, t.y, 0, bias))",
		"Texture2D x, SamplerState s, float2 t, float bias", "x.SampleBias(s, t, bias)",
	},
	"texture2DProj(s21;f3;": {
		"sampler2D s, float3 t", "tex2Dproj(s, float4(t.x, t.y, 0, t.z))",
		"Texture2D x, SamplerState s, float3 t", "x.Sample(s, t.xy / t.z)",
	},
	"texture2DProj(s21;f4;": {
		"sampler2D s, float4 t", "tex2Dproj(s, float4(t.x, t.y, 0, t.w))",
		"Texture2D x, SamplerState s, float4 t", "x.Sample(s, t.xy / t.w)",
	},
	"texture2DProj(s21;f3;f1;": {
		"sampler2D s, float3 t, float bias", "tex2Dbias(s, float4(t.x / t.z, t.y / t.z, 0, bias))",
		"Texture2D x, SamplerState s, float3 t, float bias", "x.SampleBias(s, t.xy / t.z, bias)",
	},
	"texture2DProj(s21;f4;f1;": {
		"sampler2D s, float4 t, float bias", "tex2Dbias(s, float4(t.x / t.w, t.y / t.w, 0, bias))",
		"Texture2D x, SamplerState s, float4 t, float bias", "x.SampleBias(s, t.xy / t.w, bias)",
	},
	"textureCube(sC1;f3;": {
		"samplerCUBE s, float3 t", "texCUBE(s, t)",
		"TextureCube x, SamplerState s, float3 t", "x.Sample(s, t)",
	},
	"textureCube(sC1;f3;f1;": {
		"samplerCUBE s, float3 t, float bias", "texCUBEbias(s, float4(t.x, t.y, t.z, bias))",
		"TextureCube x, SamplerState s, float3 t, float bias", "x.SampleBias(s, t, bias)",
	},
	"texture2DLod(s21;f2;f1;": {
		"sampler2D s, float2 t, float lod", "tex2Dlod(s, float4(t.x, t.y, 0, lod))",
		"Texture2D x, SamplerState s, float2 t, float lod", "x.SampleLevel(s, t, lod)",
	},
	"texture2DProjLod(s21;f3;f1;": {
		"sampler2D s, float3 t, float lod", "tex2Dlod(s, float4(t.x / t.z, t.y / t.z, 0, lod))",
		"Texture2D x, SamplerState s, float3 t, float lod", "x.SampleLevel(s, t.xy / t.z, lod)",
	},
	"texture2DProjLod(s21;f4;f1;": {
		"sampler2D s, float4 t, float lod", "tex2Dlod(s, float4(t.x / t.w, t.y / t.w, 0, lod))",
		"Texture2D x, SamplerState s, float4 t, float lod", "x.SampleLevel(s, t.xy / t.w, lod)",
	},
	"textureCubeLod(sC1;f3;f1;": {
		"samplerCUBE s, float3 t, float lod", "texCUBElod(s, float4(t.x, t.y, t.z, lod))",
		"TextureCube x, SamplerState s, float3 t, float lod", "x.SampleLevel(s, t, lod)",
	},
}

// ensureTextureFunction returns the helper implementing the built-in
// call n, generating it on first use.
func (w *Writer) ensureTextureFunction(n *ir.AggregateNode) string {
	tf, ok := textureFunctions[n.Name]
	if !ok {
		w.fail(ErrUnsupportedFeature, n, "built-in function %s", functionName(n.Name))
		return ""
	}

	name := textureHelperPrefix + functionName(n.Name)
	params, body := tf.params3, tf.body3
	if w.options.ShaderModel.SeparateSamplers() {
		params, body = tf.params4, tf.body4
	}

	source := fmt.Sprintf("float4 %s(%s)\n{\n    return %s;\n}\n", name, params, body)
	w.helpers.add("texture:"+n.Name, name, source)
	return name
}

// =============================================================================
// Entry Point
// =============================================================================

// stageMember is one member of an entry point input or output struct,
// copied to or from the static global of the same name.
type stageMember struct {
	typ      string
	name     string
	brackets string
	semantic string

	// copy is the statement moving the value; empty means a plain
	// assignment.
	copy string
}

// writeEntryPoint writes the input and output structs and the main
// function calling the translated GLSL main.
func (w *Writer) writeEntryPoint() {
	var inputs, outputs []stageMember
	var inName, outName string

	if w.options.Stage == ir.StageVertex {
		inName, outName = vertexInput, vertexOutput
		inputs, outputs = w.vertexMembers()
	} else {
		inName, outName = pixelInput, pixelOutput
		inputs, outputs = w.pixelMembers()
	}

	if len(inputs) > 0 {
		w.writeStageStruct(inName, inputs)
	}
	w.writeStageStruct(outName, outputs)

	if len(inputs) > 0 {
		w.writeLine("%s %s(%s %s)", outName, entryPointName, inName, inputVar)
	} else {
		w.writeLine("%s %s()", outName, entryPointName)
	}
	w.writeLine("{")
	w.pushIndent()

	for _, m := range inputs {
		if m.copy != "" {
			w.writeLine("%s", m.copy)
		} else {
			w.writeLine("%s = %s.%s;", m.name, inputVar, m.name)
		}
	}
	if len(inputs) > 0 {
		w.writeLine("")
	}

	w.writeLine("%s();", userMainName)
	w.writeLine("")

	w.writeLine("%s %s;", outName, outputVar)
	for _, m := range outputs {
		if m.copy != "" {
			w.writeLine("%s", m.copy)
		} else {
			w.writeLine("%s.%s = %s;", outputVar, m.name, m.name)
		}
	}
	w.writeLine("")
	w.writeLine("return %s;", outputVar)

	w.popIndent()
	w.writeLine("}")
}

func (w *Writer) writeStageStruct(name string, members []stageMember) {
	w.writeLine("struct %s", name)
	w.writeLine("{")
	w.pushIndent()
	for _, m := range members {
		w.writeLine("%s %s%s : %s;", m.typ, m.name, m.brackets, m.semantic)
	}
	w.popIndent()
	w.writeLine("};")
	w.writeLine("")
}

// varyingMembers assigns TEXCOORD semantics to the varyings in
// declaration order, the same order in both stages.
func (w *Writer) varyingMembers() []stageMember {
	var members []stageMember
	index := 0
	for _, sym := range w.globals.varyings {
		t := sym.Type()
		m := stageMember{
			typ:      w.typeName(sym, t),
			name:     decorate(sym.Name),
			semantic: fmt.Sprintf("%s%d", semanticTexCoord, index),
		}
		if t.IsArray() {
			m.brackets = arrayBrackets(t)
		}
		members = append(members, m)
		index += semanticCount(t)
	}
	return members
}

func (w *Writer) vertexMembers() (inputs, outputs []stageMember) {
	sm := w.options.ShaderModel

	index := 0
	for _, sym := range w.globals.attributes {
		t := sym.Type()
		inputs = append(inputs, stageMember{
			typ:      w.typeName(sym, t),
			name:     decorate(sym.Name),
			semantic: fmt.Sprintf("%s%d", semanticTexCoord, index),
		})
		index += semanticCount(t)
	}

	position := semanticPosition
	if sm.SystemValueSemantics() {
		position = semanticSVPosition
	}
	outputs = append(outputs, stageMember{typ: "float4", name: "gl_Position", semantic: position})
	if w.globals.usesBuiltIn("gl_PointSize") && !sm.SystemValueSemantics() {
		outputs = append(outputs, stageMember{typ: "float", name: "gl_PointSize", semantic: semanticPointSize})
	}
	outputs = append(outputs, w.varyingMembers()...)

	return inputs, outputs
}

func (w *Writer) pixelMembers() (inputs, outputs []stageMember) {
	g := w.globals
	sm := w.options.ShaderModel

	inputs = w.varyingMembers()

	if g.usesBuiltIn("gl_FragCoord") {
		if sm.SystemValueSemantics() {
			inputs = append(inputs, stageMember{typ: "float4", name: "gl_FragCoord", semantic: semanticSVPosition})
		} else {
			inputs = append(inputs, stageMember{
				typ:      "float2",
				name:     "gl_FragCoord",
				semantic: semanticVPos,
				copy:     "gl_FragCoord.xy = " + inputVar + ".gl_FragCoord;",
			})
		}
	}
	if g.usesBuiltIn("gl_FrontFacing") {
		if sm.SystemValueSemantics() {
			inputs = append(inputs, stageMember{typ: "bool", name: "gl_FrontFacing", semantic: semanticSVFrontFace})
		} else {
			inputs = append(inputs, stageMember{
				typ:      "float",
				name:     "gl_FrontFacing",
				semantic: semanticVFace,
				copy:     "gl_FrontFacing = (" + inputVar + ".gl_FrontFacing >= 0.0);",
			})
		}
	}

	target := semanticColor
	if sm.SystemValueSemantics() {
		target = semanticSVTarget
	}
	for i := 0; i < g.colorOutputs; i++ {
		name := fmt.Sprintf("%s%d", colorOutputPrefix, i)
		outputs = append(outputs, stageMember{
			typ:      "float4",
			name:     name,
			semantic: fmt.Sprintf("%s%d", target, i),
			copy:     fmt.Sprintf("%s.%s = %s[%d];", outputVar, name, colorOutputPrefix, i),
		})
	}

	return inputs, outputs
}
