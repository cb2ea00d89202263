// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package analysis

import (
	"strconv"
	"strings"

	"github.com/gogpu/translator/ir"
)

// ShaderVariable is one attribute, uniform or varying of a shader.
// Struct uniforms are flattened into one variable per leaf field.
type ShaderVariable struct {
	// Name is the name used in the shader source, MappedName the one
	// written to the output.
	Name       string
	MappedName string

	Type ir.Type

	// Size is the array size, 1 for non-arrays.
	Size int

	StaticUse bool
}

// InterfaceBlockInfo is one uniform block of a shader.
type InterfaceBlockInfo struct {
	Name         string
	MappedName   string
	InstanceName string
	ArraySize    int
	Storage      ir.BlockStorage
	Fields       []ShaderVariable
	StaticUse    bool
}

// Variables is the external interface of a shader.
type Variables struct {
	Attributes []ShaderVariable
	Uniforms   []ShaderVariable
	Varyings   []ShaderVariable
	Blocks     []InterfaceBlockInfo
}

// NameMapper maps a user identifier to its output spelling.
type NameMapper func(name string) string

// CollectVariables lists the attributes, uniforms, varyings and uniform
// blocks declared in root, marking those that are referenced. mapName may
// be nil.
func CollectVariables(root ir.Node, mapName NameMapper) Variables {
	if mapName == nil {
		mapName = func(name string) string { return name }
	}

	c := &variableCollector{mapName: mapName, byID: map[int][]*ShaderVariable{}}
	ir.NewTraverser(c, true, false, false, false).Walk(root)

	v := Variables{Blocks: c.blocks}
	for _, e := range c.entries {
		switch e.kind {
		case kindAttribute:
			v.Attributes = append(v.Attributes, *e.v)
		case kindUniform:
			v.Uniforms = append(v.Uniforms, *e.v)
		case kindVarying:
			v.Varyings = append(v.Varyings, *e.v)
		}
	}

	return v
}

type variableKind uint8

const (
	kindAttribute variableKind = iota
	kindUniform
	kindVarying
)

type collected struct {
	kind variableKind
	v    *ShaderVariable
}

type variableCollector struct {
	ir.BaseVisitor

	mapName NameMapper

	entries []collected
	byID    map[int][]*ShaderVariable

	blocks   []InterfaceBlockInfo
	blockIDs map[int]int

	builtins map[string]bool
}

// builtInVaryings are reported when the shader uses them.
var builtInVaryings = map[string]bool{
	"gl_Position":    true,
	"gl_PointSize":   true,
	"gl_FragCoord":   true,
	"gl_FrontFacing": true,
	"gl_PointCoord":  true,
}

func kindOf(q ir.Qualifier) (variableKind, bool) {
	switch q {
	case ir.QualAttribute, ir.QualVertexIn:
		return kindAttribute, true
	case ir.QualUniform:
		return kindUniform, true
	case ir.QualVaryingIn, ir.QualVaryingOut, ir.QualInvariantVaryingIn, ir.QualInvariantVaryingOut,
		ir.QualVertexOut, ir.QualFragmentIn:
		return kindVarying, true
	default:
		return 0, false
	}
}

func (c *variableCollector) VisitSymbol(n *ir.SymbolNode) {
	for _, v := range c.byID[n.ID] {
		v.StaticUse = true
	}

	if b := n.Type().Block; b != nil {
		if i, ok := c.blockIDs[b.ID]; ok {
			c.blocks[i].StaticUse = true
		}
	}

	if !builtInVaryings[n.Name] || c.builtins[n.Name] {
		return
	}
	if c.builtins == nil {
		c.builtins = map[string]bool{}
	}
	c.builtins[n.Name] = true

	c.add(n.ID, kindVarying, &ShaderVariable{
		Name:       n.Name,
		MappedName: n.Name,
		Type:       n.Type(),
		Size:       arraySize(n.Type()),
		StaticUse:  true,
	})
}

func (c *variableCollector) VisitAggregate(_ ir.Visit, n *ir.AggregateNode) bool {
	if n.Op != ir.OpDeclaration || len(n.Sequence) == 0 {
		return true
	}

	first, ok := declaredSymbol(n.Sequence[0])
	if !ok {
		return true
	}

	t := first.Type()
	if t.Basic == ir.UniformBlock && t.Block != nil {
		c.addBlock(first)
		return false
	}

	kind, ok := kindOf(t.Qualifier)
	if !ok {
		return true
	}

	for _, child := range n.Sequence {
		sym, ok := declaredSymbol(child)
		if !ok {
			continue
		}
		c.declare(kind, sym)
	}

	// The declared symbols are not uses.
	return false
}

func declaredSymbol(n ir.Node) (*ir.SymbolNode, bool) {
	switch n := n.(type) {
	case *ir.SymbolNode:
		return n, true
	case *ir.BinaryNode:
		if n.Op == ir.OpInitialize {
			sym, ok := n.Left.(*ir.SymbolNode)
			return sym, ok
		}
	}
	return nil, false
}

func (c *variableCollector) declare(kind variableKind, sym *ir.SymbolNode) {
	t := sym.Type()

	// A block member declared without an instance name reads like a
	// plain symbol.
	if t.Block != nil {
		return
	}

	if kind == kindUniform && t.Basic == ir.Structure && t.Struct != nil {
		c.flattenStruct(sym.ID, sym.Name, c.mapName(sym.Name), t)
		return
	}

	c.add(sym.ID, kind, &ShaderVariable{
		Name:       sym.Name,
		MappedName: c.mapName(sym.Name),
		Type:       t,
		Size:       arraySize(t),
	})
}

// flattenStruct adds one uniform per leaf field, named like
// "light.color" or "lights[1].color".
func (c *variableCollector) flattenStruct(id int, name, mapped string, t ir.Type) {
	if t.IsArray() {
		elem := t.ElementType()
		for i := 0; i < t.ArraySize; i++ {
			idx := "[" + strconv.Itoa(i) + "]"
			c.flattenStruct(id, name+idx, mapped+idx, elem)
		}
		return
	}

	if t.Basic != ir.Structure || t.Struct == nil {
		c.add(id, kindUniform, &ShaderVariable{
			Name:       name,
			MappedName: mapped,
			Type:       t,
			Size:       arraySize(t),
		})
		return
	}

	for _, f := range t.Struct.Fields {
		c.flattenStruct(id, name+"."+f.Name, mapped+"."+c.mapName(f.Name), f.Type)
	}
}

func (c *variableCollector) add(id int, kind variableKind, v *ShaderVariable) {
	c.entries = append(c.entries, collected{kind: kind, v: v})
	c.byID[id] = append(c.byID[id], v)
}

func (c *variableCollector) addBlock(sym *ir.SymbolNode) {
	b := sym.Type().Block
	if c.blockIDs == nil {
		c.blockIDs = map[int]int{}
	}
	if _, ok := c.blockIDs[b.ID]; ok {
		return
	}

	info := InterfaceBlockInfo{
		Name:         b.Name,
		MappedName:   c.mapName(b.Name),
		InstanceName: b.InstanceName,
		ArraySize:    b.ArraySize,
		Storage:      b.BlockStorage,
	}
	for _, f := range b.Fields {
		info.Fields = append(info.Fields, ShaderVariable{
			Name:       f.Name,
			MappedName: c.mapName(f.Name),
			Type:       f.Type,
			Size:       arraySize(f.Type),
		})
	}

	c.blockIDs[b.ID] = len(c.blocks)
	c.blocks = append(c.blocks, info)
}

func arraySize(t ir.Type) int {
	if t.IsArray() {
		return t.ArraySize
	}
	return 1
}

// String returns a one-line summary such as
// "u_color (uniform highp 4-component vector of float) used".
func (v ShaderVariable) String() string {
	var b strings.Builder
	b.WriteString(v.Name)
	if v.Size > 1 {
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(v.Size))
		b.WriteByte(']')
	}
	if v.MappedName != v.Name {
		b.WriteString(" -> ")
		b.WriteString(v.MappedName)
	}
	b.WriteString(" (")
	b.WriteString(v.Type.CompleteString())
	b.WriteByte(')')
	if v.StaticUse {
		b.WriteString(" used")
	}
	return b.String()
}
