// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"fmt"
	"strings"

	"github.com/gogpu/translator/ir"
)

const (
	entryPointName = "main"

	// userMainName is the GLSL main function after renaming; the
	// generated entry point calls it.
	userMainName = "gl_main"
)

// Writer generates HLSL source code from a shader tree.
//
// The tree body is written by an ir.Visitor in the pre, in and post
// phases into body. Declarations that depend on what the body uses
// (helpers, entry point structs) are written to out afterwards.
type Writer struct {
	root    ir.Node
	options *Options

	out    strings.Builder
	body   strings.Builder
	indent int

	t *ir.Traverser

	globals *globals
	helpers helperSet

	// declaringVariables is set while the names of a declaration are
	// written, so array symbols print their bounds.
	declaringVariables bool

	registerBindings map[string]string

	err error
}

func newWriter(root ir.Node, options *Options) *Writer {
	w := &Writer{
		root:             root,
		options:          options,
		registerBindings: make(map[string]string),
	}
	w.t = ir.NewTraverser(w, true, true, true, false)
	return w
}

// String returns the generated HLSL source.
func (w *Writer) String() string {
	return w.out.String()
}

// writeShader writes the whole translation unit.
func (w *Writer) writeShader() error {
	w.globals = collectGlobals(w.root, w.options)
	if !w.globals.hasMain {
		return NewError(ErrEntryPointNotFound, "no main function")
	}

	w.t.Walk(w.root)
	if w.err != nil {
		return w.err
	}

	w.writeStructs()
	w.writeUniforms()
	w.writeStaticGlobals()
	w.helpers.writeTo(&w.out)
	w.out.WriteString(w.body.String())
	w.out.WriteByte('\n')
	w.writeEntryPoint()

	return w.err
}

// fail records the first error. Writing continues, but the output is
// discarded.
func (w *Writer) fail(kind ErrorKind, n ir.Node, format string, args ...any) {
	if w.err != nil {
		return
	}
	if n == nil {
		w.err = NewError(kind, fmt.Sprintf(format, args...))
		return
	}
	w.err = NewErrorAt(kind, n, fmt.Sprintf(format, args...))
}

// decorate returns the output spelling of a user identifier. User names
// get a leading underscore, which keeps them clear of HLSL reserved
// words and of the generated gl_ and dx_ names.
func decorate(name string) string {
	if name == "" || strings.HasPrefix(name, "gl_") || strings.HasPrefix(name, "dx_") {
		return name
	}
	return "_" + name
}

// DecoratedName returns the output spelling of the user identifier name.
func DecoratedName(name string) string { return decorate(name) }

// functionName strips the parameter mangling from a function name.
func functionName(mangled string) string {
	if i := strings.IndexByte(mangled, '('); i >= 0 {
		return mangled[:i]
	}
	return mangled
}

// pushIndent increases the indentation level.
func (w *Writer) pushIndent() {
	w.indent++
}

// popIndent decreases the indentation level.
func (w *Writer) popIndent() {
	if w.indent > 0 {
		w.indent--
	}
}

// writeIndent writes the current indentation.
func (w *Writer) writeIndent() {
	for i := 0; i < w.indent; i++ {
		w.out.WriteString("    ")
	}
}

// writeLine writes a formatted, indented line to the declarations.
func (w *Writer) writeLine(format string, args ...any) {
	if format == "" {
		w.out.WriteByte('\n')
		return
	}
	w.writeIndent()
	if len(args) == 0 {
		w.out.WriteString(format)
	} else {
		fmt.Fprintf(&w.out, format, args...)
	}
	w.out.WriteByte('\n')
}

// writeTriplet writes the text belonging to the phase of visit.
func (w *Writer) writeTriplet(visit ir.Visit, pre, in, post string) {
	switch visit {
	case ir.PreVisit:
		w.body.WriteString(pre)
	case ir.InVisit:
		w.body.WriteString(in)
	case ir.PostVisit:
		w.body.WriteString(post)
	}
}
