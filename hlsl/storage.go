// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"strconv"
	"strings"

	"github.com/gogpu/translator/ir"
)

// Built-in variables declared as static globals when used, in
// declaration order. gl_Position and gl_Color are always declared.
var staticBuiltIns = []string{
	"gl_PointSize",
	"gl_FragCoord",
	"gl_FrontFacing",
	"gl_PointCoord",
}

// globals is what the shader declares and uses at global scope.
type globals struct {
	structs    []*ir.Struct
	uniforms   []*ir.SymbolNode
	attributes []*ir.SymbolNode
	varyings   []*ir.SymbolNode

	// usedBuiltIns holds the built-in variables referenced anywhere.
	usedBuiltIns map[string]struct{}

	// colorOutputs is the size of the gl_Color array.
	colorOutputs int

	hasMain bool

	seenStructs map[int]struct{}
	seenSymbols map[int]struct{}
}

// collectGlobals scans root for global interface variables, structs and
// built-in uses.
func collectGlobals(root ir.Node, options *Options) *globals {
	g := &globals{
		usedBuiltIns: make(map[string]struct{}),
		seenStructs:  make(map[int]struct{}),
		seenSymbols:  make(map[int]struct{}),
		colorOutputs: 1,
	}

	c := &globalCollector{g: g}
	c.t = ir.NewTraverser(c, true, false, false, false)
	c.t.Walk(root)

	if g.usesBuiltIn("gl_FragData") {
		g.colorOutputs = max(options.MaxDrawBuffers, 1)
	}

	return g
}

func (g *globals) usesBuiltIn(name string) bool {
	_, ok := g.usedBuiltIns[name]
	return ok
}

// addStruct records s after the structs of its fields.
func (g *globals) addStruct(t ir.Type) {
	if t.Basic != ir.Structure || t.Struct == nil {
		return
	}
	s := t.Struct
	if _, ok := g.seenStructs[s.ID]; ok {
		return
	}
	g.seenStructs[s.ID] = struct{}{}

	for _, f := range s.Fields {
		g.addStruct(f.Type)
	}
	g.structs = append(g.structs, s)
}

type globalCollector struct {
	ir.BaseVisitor

	t *ir.Traverser
	g *globals
}

func (c *globalCollector) VisitSymbol(n *ir.SymbolNode) {
	c.g.addStruct(n.Type())
	if strings.HasPrefix(n.Name, "gl_") {
		c.g.usedBuiltIns[n.Name] = struct{}{}
	}
}

func (c *globalCollector) VisitAggregate(_ ir.Visit, n *ir.AggregateNode) bool {
	c.g.addStruct(n.Type())

	switch n.Op {
	case ir.OpFunction:
		if n.Name == "main(" {
			c.g.hasMain = true
		}

	case ir.OpDeclaration:
		if c.t.Depth() != 1 {
			break
		}
		for _, child := range n.Sequence {
			if sym := declaredSymbol(child); sym != nil {
				c.g.addInterface(sym)
			}
		}
	}

	return true
}

func (g *globals) addInterface(sym *ir.SymbolNode) {
	if _, ok := g.seenSymbols[sym.ID]; ok {
		return
	}

	switch interfaceKind(sym.Type().Qualifier) {
	case interfaceUniform:
		g.uniforms = append(g.uniforms, sym)
	case interfaceAttribute:
		g.attributes = append(g.attributes, sym)
	case interfaceVarying:
		g.varyings = append(g.varyings, sym)
	default:
		return
	}
	g.seenSymbols[sym.ID] = struct{}{}
}

type interfaceClass uint8

const (
	interfaceNone interfaceClass = iota
	interfaceUniform
	interfaceAttribute
	interfaceVarying
)

func interfaceKind(q ir.Qualifier) interfaceClass {
	switch q {
	case ir.QualUniform:
		return interfaceUniform
	case ir.QualAttribute, ir.QualVertexIn:
		return interfaceAttribute
	case ir.QualVaryingIn, ir.QualVaryingOut, ir.QualInvariantVaryingIn, ir.QualInvariantVaryingOut,
		ir.QualVertexOut, ir.QualFragmentIn:
		return interfaceVarying
	default:
		return interfaceNone
	}
}

// declaredSymbol returns the variable declared by a declaration child.
func declaredSymbol(n ir.Node) *ir.SymbolNode {
	switch n := n.(type) {
	case *ir.SymbolNode:
		return n
	case *ir.BinaryNode:
		if n.Op == ir.OpInitialize {
			sym, _ := n.Left.(*ir.SymbolNode)
			return sym
		}
	}
	return nil
}

// isInterfaceDeclaration reports whether a global declaration is written
// by the declaration header instead of the body.
func isInterfaceDeclaration(n ir.Node) bool {
	decl, ok := n.(*ir.AggregateNode)
	if !ok || decl.Op != ir.OpDeclaration || len(decl.Sequence) == 0 {
		return false
	}
	sym := declaredSymbol(decl.Sequence[0])
	return sym != nil && interfaceKind(sym.Type().Qualifier) != interfaceNone
}

func textureName(name string) string { return "texture_" + decorate(name) }
func samplerName(name string) string { return "sampler_" + decorate(name) }

// writeStructs writes the definitions of all structs in use.
func (w *Writer) writeStructs() {
	for _, s := range w.globals.structs {
		if s.Name == "" {
			continue
		}
		w.writeLine("struct %s", decorate(s.Name))
		w.writeLine("{")
		w.pushIndent()
		for i := range s.Fields {
			f := &s.Fields[i]
			name := w.fieldName(s, f.Name)
			if f.Type.IsArray() {
				name += arrayBrackets(f.Type)
			}
			w.writeLine("%s %s;", w.typeName(nil, f.Type), name)
		}
		w.popIndent()
		w.writeLine("};")
		w.writeLine("")
	}
}

// fieldName returns the output name of a field of s. Fields of the
// built-in structs keep their names.
func (w *Writer) fieldName(s *ir.Struct, name string) string {
	if strings.HasPrefix(s.Name, "gl_") {
		return name
	}
	return decorate(name)
}

// writeUniforms declares uniforms. Samplers are bound to consecutive
// registers; on models with separate samplers each one is declared as a
// texture and a sampler state sharing the register number.
func (w *Writer) writeUniforms() {
	register := 0
	for _, sym := range w.globals.uniforms {
		t := sym.Type()
		brackets := ""
		if t.IsArray() {
			brackets = arrayBrackets(t)
		}

		if !t.Basic.IsSampler() {
			w.writeLine("uniform %s %s%s;", w.typeName(sym, t), decorate(sym.Name), brackets)
			continue
		}

		reg := strconv.Itoa(register)
		if w.options.ShaderModel.SeparateSamplers() {
			w.writeLine("uniform %s %s%s : register(t%s);", w.samplerTypeName(sym, t), textureName(sym.Name), brackets, reg)
			w.writeLine("uniform SamplerState %s%s : register(s%s);", samplerName(sym.Name), brackets, reg)
		} else {
			w.writeLine("uniform %s %s%s : register(s%s);", w.samplerTypeName(sym, t), samplerName(sym.Name), brackets, reg)
		}
		w.registerBindings[decorate(sym.Name)] = "s" + reg

		register += max(t.ArraySize, 1)
	}

	if len(w.globals.uniforms) > 0 {
		w.writeLine("")
	}
}

// writeStaticGlobals declares the module scope copies of the stage
// inputs and outputs. The entry point copies them from and to its
// input and output structs.
func (w *Writer) writeStaticGlobals() {
	g := w.globals
	vertex := w.options.Stage == ir.StageVertex

	if vertex {
		for _, sym := range g.attributes {
			w.writeStatic(sym, decorate(sym.Name), sym.Type())
		}
	}
	for _, sym := range g.varyings {
		w.writeStatic(sym, decorate(sym.Name), sym.Type().WithQualifier(ir.QualTemporary))
	}

	if vertex {
		w.writeLine("static float4 gl_Position = float4(0.0, 0.0, 0.0, 0.0);")
	} else {
		w.writeLine("static float4 gl_Color[%d] = %s;", g.colorOutputs, zeroValue(ir.Vector(ir.Float, 4).WithArraySize(g.colorOutputs)))
	}

	for _, name := range staticBuiltIns {
		if !g.usesBuiltIn(name) {
			continue
		}
		switch name {
		case "gl_PointSize":
			w.writeLine("static float gl_PointSize = 1.0;")
		case "gl_FragCoord":
			w.writeLine("static float4 gl_FragCoord = float4(0.0, 0.0, 0.0, 0.0);")
		case "gl_FrontFacing":
			w.writeLine("static bool gl_FrontFacing = false;")
		case "gl_PointCoord":
			w.writeLine("static float2 gl_PointCoord = float2(0.5, 0.5);")
		}
	}

	w.writeLine("")
}

func (w *Writer) writeStatic(sym *ir.SymbolNode, name string, t ir.Type) {
	if t.IsArray() {
		name += arrayBrackets(t)
	}
	w.writeLine("static %s %s = %s;", w.typeName(sym, t), name, zeroValue(t))
}
