// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Command shtrans inspects the translator.
//
// Usage:
//
//	shtrans builtins [stage [spec]]         # list the built-in symbol table
//	shtrans extensions [resources.yaml]     # print the extension headers per output
//	shtrans demo <output> [stage] [tree]    # translate a demo shader
//
// Stages are vertex and fragment, specs gles2, webgl, gles3, webgl2 and
// css, outputs essl, glsl, glsl-core, hlsl9 and hlsl11.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/gogpu/translator"
	"github.com/gogpu/translator/builtins"
	"github.com/gogpu/translator/ir"
)

func main() {
	builtinsCmd := &cli.Command{
		Name:        "builtins",
		Description: "list the built-in symbols of a stage and spec",
		Action:      builtinsAct,
		Args:        cli.Args{},
	}

	extensionsCmd := &cli.Command{
		Name:        "extensions",
		Description: "print the #extension lines each output writes with every extension set to warn",
		Action:      extensionsAct,
		Args:        cli.Args{},
	}

	demoCmd := &cli.Command{
		Name:        "demo",
		Description: "translate a demo shader",
		Action:      demoAct,
		Args:        cli.Args{},
	}

	app := &cli.Command{
		Name:        "shtrans",
		Description: "shtrans inspects the GLSL ES shader translator",
		Commands: []*cli.Command{
			builtinsCmd,
			extensionsCmd,
			demoCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

func builtinsAct(c *cli.Command) error {
	stage, spec := ir.StageFragment, builtins.SpecGLES2

	var err error
	if len(c.Args) > 0 {
		stage, err = parseStage(c.Args[0])
		if err != nil {
			return err
		}
	}
	if len(c.Args) > 1 {
		spec, err = parseSpec(c.Args[1])
		if err != nil {
			return err
		}
	}

	table := builtins.InitBuiltInSymbolTable(stage, spec, builtins.DefaultResources())

	for _, e := range table.Entries() {
		fmt.Printf("%-6v %s", e.Level, e.Key)
		if e.Op != ir.OpNull {
			fmt.Printf(" op=%v", e.Op)
		}
		if e.Extension != "" {
			fmt.Printf(" ext=%s", e.Extension)
		}
		fmt.Println()
	}

	return nil
}

func extensionsAct(c *cli.Command) error {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	res := builtins.DefaultResources()
	res.OESStandardDerivatives = true
	res.EXTDrawBuffers = true
	res.EXTFragDepth = true
	res.EXTShaderTextureLOD = true

	if len(c.Args) > 0 {
		f, err := os.Open(c.Args[0])
		if err != nil {
			return errors.Wrap(err, "open resources")
		}
		defer f.Close()

		res, err = builtins.LoadResources(f)
		if err != nil {
			return errors.Wrap(err, "load %v", c.Args[0])
		}
	}

	for _, o := range []translator.Output{translator.OutputESSL, translator.OutputGLSL, translator.OutputGLSLCore} {
		comp := translator.ConstructCompiler(ir.StageFragment, builtins.SpecGLES2, o)

		err := comp.Init(res, nil)
		if err != nil {
			return errors.Wrap(err, "init %v", o)
		}

		comp.Directives().HandleExtension(ir.SourceLoc{}, "all", "warn")

		root := ir.NewSequence(ir.NewFunction("main(", ir.VoidType(), ir.NewAggregate(ir.OpParameters, ir.VoidType()), ir.NewSequence()))

		err = comp.Compile(ctx, root, translator.DefaultCompileOptions())
		if err != nil {
			return errors.Wrap(err, "compile %v: %s", o, comp.InfoLog())
		}

		fmt.Printf("// %v\n", o)
		for _, line := range strings.Split(comp.ObjectCode(), "\n") {
			if strings.HasPrefix(line, "#") {
				fmt.Println(line)
			}
		}

		translator.DeleteCompiler(comp)
	}

	return nil
}

func demoAct(c *cli.Command) error {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	if len(c.Args) == 0 {
		return errors.New("output dialect expected")
	}

	output, ok := translator.ParseOutput(c.Args[0])
	if !ok {
		return errors.New("unknown output: %v", c.Args[0])
	}

	stage := ir.StageVertex
	if len(c.Args) > 1 {
		var err error
		stage, err = parseStage(c.Args[1])
		if err != nil {
			return err
		}
	}

	comp := translator.ConstructCompiler(stage, builtins.SpecWebGL, output)
	defer translator.DeleteCompiler(comp)

	err := comp.Init(builtins.DefaultResources(), nil)
	if err != nil {
		return errors.Wrap(err, "init")
	}

	opts := translator.DefaultCompileOptions()
	opts.InitGLPosition = true
	opts.ClampIndirectArrayBounds = true
	opts.IntermediateTree = len(c.Args) > 2 && c.Args[2] == "tree"

	err = comp.Compile(ctx, demoShader(comp, stage), opts)
	if err != nil {
		return errors.Wrap(err, "compile: %s", comp.InfoLog())
	}

	fmt.Print(comp.ObjectCode())

	if log := comp.InfoLog(); log != "" {
		fmt.Fprint(os.Stderr, log)
	}

	for _, v := range comp.Variables().Uniforms {
		fmt.Fprintf(os.Stderr, "uniform %v\n", v)
	}
	for _, v := range comp.Variables().Attributes {
		fmt.Fprintf(os.Stderr, "attribute %v\n", v)
	}
	for _, v := range comp.Variables().Varyings {
		fmt.Fprintf(os.Stderr, "varying %v\n", v)
	}

	return nil
}

func parseStage(s string) (ir.ShaderStage, error) {
	for _, st := range []ir.ShaderStage{ir.StageVertex, ir.StageFragment} {
		if st.String() == s {
			return st, nil
		}
	}
	return 0, errors.New("unknown stage: %v", s)
}

func parseSpec(s string) (builtins.ShaderSpec, error) {
	for sp := builtins.SpecGLES2; sp <= builtins.SpecCSSShaders; sp++ {
		if sp.String() == s {
			return sp, nil
		}
	}
	return 0, errors.New("unknown spec: %v", s)
}
