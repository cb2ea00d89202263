// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package symbols

import (
	"strings"

	"github.com/gogpu/translator/ir"
)

// Symbol is a named entity stored in a Table.
//
// Implementations are *Variable, *Function and *InterfaceBlockName.
type Symbol interface {
	// Name returns the unmangled name.
	Name() string

	// MangledName returns the lookup key: the name for variables and
	// blocks, the name plus encoded parameter types for functions.
	MangledName() string

	// ID returns the unique id assigned on insertion, 0 before that.
	ID() int

	setID(id int)
	symbol()
}

type symbolBase struct {
	id   int
	name string
}

func (s *symbolBase) Name() string { return s.name }
func (s *symbolBase) ID() int { return s.id }
func (s *symbolBase) setID(id int) { s.id = id }
func (s *symbolBase) symbol() {}

// Variable is a variable, a constant or a struct type name.
type Variable struct {
	symbolBase

	Type ir.Type

	// UserType marks the symbol of a struct type declaration.
	UserType bool

	// Constant holds the value of a compile-time constant.
	Constant []ir.ConstantValue

	// Extension is the extension that must be enabled to use the variable.
	Extension string
}

// NewVariable returns a variable symbol without an id.
func NewVariable(name string, t ir.Type) *Variable {
	return &Variable{symbolBase: symbolBase{name: name}, Type: t}
}

func (v *Variable) MangledName() string { return v.name }

// IsConst reports whether the variable carries a constant value.
func (v *Variable) IsConst() bool { return len(v.Constant) != 0 }

// Parameter is one function parameter.
type Parameter struct {
	Name string
	Type ir.Type
}

// Function is a function signature or definition.
type Function struct {
	symbolBase

	Params []Parameter
	Return ir.Type

	// Op is the operator the function maps to, ir.OpNull for ordinary
	// calls.
	Op ir.Operator

	Defined bool

	// Extension is the extension that must be enabled to call the
	// function.
	Extension string

	mangled string
}

// NewFunction returns a function symbol without an id.
func NewFunction(name string, ret ir.Type, params ...Parameter) *Function {
	f := &Function{symbolBase: symbolBase{name: name}, Return: ret, Params: params}
	f.mangled = MangleFunctionName(name, paramTypes(params)...)
	return f
}

// AddParameter appends a parameter and updates the mangled name.
func (f *Function) AddParameter(p Parameter) {
	f.Params = append(f.Params, p)
	f.mangled = MangleFunctionName(f.name, paramTypes(f.Params)...)
}

func (f *Function) MangledName() string { return f.mangled }

// InterfaceBlockName is the name of a uniform block without an instance
// name; it reserves the identifier in its scope.
type InterfaceBlockName struct {
	symbolBase

	Block *ir.InterfaceBlock
}

// NewInterfaceBlockName returns a block name symbol without an id.
func NewInterfaceBlockName(b *ir.InterfaceBlock) *InterfaceBlockName {
	return &InterfaceBlockName{symbolBase: symbolBase{name: b.Name}, Block: b}
}

func (b *InterfaceBlockName) MangledName() string { return b.name }

// MangleFunctionName returns name followed by '(' and the mangled name
// of each parameter type.
func MangleFunctionName(name string, params ...ir.Type) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	for _, p := range params {
		b.WriteString(p.MangledName())
	}
	return b.String()
}

// UnmangleFunctionName returns the base name of a mangled function name.
func UnmangleFunctionName(mangled string) string {
	if i := strings.IndexByte(mangled, '('); i >= 0 {
		return mangled[:i]
	}
	return mangled
}

func paramTypes(params []Parameter) []ir.Type {
	ts := make([]ir.Type, len(params))
	for i := range params {
		ts[i] = params[i].Type
	}
	return ts
}
