// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package translator translates GLSL ES shader trees to ES SL, desktop
// GLSL and HLSL.
//
// A front end parses the shader source into an ir tree, resolving names
// against the symbol table of a Compiler. The Compiler validates the
// tree, runs the transform passes selected by CompileOptions and writes
// the object code in the dialect it was constructed for.
//
// Example usage:
//
//	c := translator.ConstructCompiler(ir.StageFragment, builtins.SpecWebGL, translator.OutputGLSL)
//	if c == nil {
//	    log.Fatal("unsupported output")
//	}
//	defer translator.DeleteCompiler(c)
//
//	if err := c.Init(builtins.DefaultResources(), nil); err != nil {
//	    log.Fatal(err)
//	}
//
//	root := parse(source, c.Table(), c.Directives())
//
//	if err := c.Compile(ctx, root, translator.DefaultCompileOptions()); err != nil {
//	    log.Fatal(err, c.InfoLog())
//	}
//	fmt.Print(c.ObjectCode())
//
// One Compiler translates exactly one shader. The built-in symbol tables
// may be shared between compilers through a builtins.Cache.
package translator
