// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package translator

import (
	"context"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/gogpu/translator/analysis"
	"github.com/gogpu/translator/builtins"
	"github.com/gogpu/translator/diag"
	"github.com/gogpu/translator/directive"
	"github.com/gogpu/translator/glsl"
	"github.com/gogpu/translator/hlsl"
	"github.com/gogpu/translator/ir"
	"github.com/gogpu/translator/symbols"
	"github.com/gogpu/translator/transform"
)

// ErrValidation is wrapped by the errors Compile returns when the tree
// fails a check. The info log has the details.
var ErrValidation = errors.New("validation failed")

type state uint8

const (
	stateConstructed state = iota
	stateInitialized
	stateCompiled
	stateDeleted
)

// Compiler translates one shader to the dialect it was constructed for.
type Compiler struct {
	stage  ir.ShaderStage
	spec   builtins.ShaderSpec
	output Output
	state  state

	resources  builtins.Resources
	table      *symbols.Table
	extensions builtins.ExtensionBehavior
	directives *directive.Handler

	emulator *transform.BuiltInFunctionEmulator
	clamper  *transform.ArrayBoundsClamper

	sink       diag.Sink
	objectCode string
	version    int
	variables  analysis.Variables
	nameMap    map[string]string
}

// ConstructCompiler returns a compiler for shaders of stage written
// against spec. It returns nil if output is not a known dialect.
func ConstructCompiler(stage ir.ShaderStage, spec builtins.ShaderSpec, output Output) *Compiler {
	if output > OutputHLSL11 {
		return nil
	}

	return &Compiler{
		stage:   stage,
		spec:    spec,
		output:  output,
		nameMap: map[string]string{},
	}
}

// DeleteCompiler releases c. It must not be used afterwards.
func DeleteCompiler(c *Compiler) {
	if c == nil {
		return
	}

	*c = Compiler{state: stateDeleted}
}

// Init builds the built-in symbol table and the extension behavior for
// res. The table is taken from cache if it is not nil.
func (c *Compiler) Init(res builtins.Resources, cache *builtins.Cache) error {
	switch c.state {
	case stateDeleted:
		return errors.New("compiler deleted")
	case stateConstructed:
	default:
		return errors.New("compiler already initialized")
	}

	if err := res.Validate(); err != nil {
		return errors.Wrap(err, "resources")
	}

	if cache != nil {
		c.table = cache.Table(c.stage, c.spec, res)
	} else {
		c.table = builtins.InitBuiltInSymbolTable(c.stage, c.spec, res)
	}

	c.resources = res
	c.extensions = builtins.InitExtensionBehavior(res)
	c.directives = directive.NewHandler(c.extensions, &c.sink)
	c.state = stateInitialized

	return nil
}

// Table returns the symbol table the front end declares user symbols in.
func (c *Compiler) Table() *symbols.Table { return c.table }

// Directives returns the handler the front end passes preprocessor
// directives to.
func (c *Compiler) Directives() *directive.Handler { return c.directives }

// Sink returns the info log the front end reports parse errors to.
func (c *Compiler) Sink() *diag.Sink { return &c.sink }

// Compile validates and translates root. It may be called once.
func (c *Compiler) Compile(ctx context.Context, root ir.Node, opts CompileOptions) (err error) {
	switch c.state {
	case stateDeleted:
		return errors.New("compiler deleted")
	case stateConstructed:
		return errors.New("compiler not initialized")
	case stateCompiled:
		return errors.New("compile called twice")
	}
	c.state = stateCompiled

	if root == nil {
		return errors.New("nil tree")
	}

	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "translator: compile", "stage", c.stage, "spec", c.spec, "output", c.output)
	defer tr.Finish("err", &err)

	if n := c.sink.ErrorCount(); n != 0 {
		return errors.Wrap(ErrValidation, "front end reported %d errors", n)
	}

	version := c.directives.ShaderVersion

	err = c.validate(ctx, root, version, opts)
	if err != nil {
		return err
	}

	c.transform(ctx, root, opts)

	if opts.Variables {
		c.variables = analysis.CollectVariables(root, c.nameMapper(version, opts))

		tr.Printw("variables", "attributes", len(c.variables.Attributes), "uniforms", len(c.variables.Uniforms),
			"varyings", len(c.variables.Varyings), "blocks", len(c.variables.Blocks))
	}

	if opts.ScalarizeVecAndMatConstructorArgs {
		transform.ScalarizeVecAndMatConstructorArgs(root, c.stage, c.resources.FragmentPrecisionHigh, c.table)
	}

	if opts.IntermediateTree {
		c.sink.Raw(ir.OutputTree(root))
	}

	if opts.ObjectCode {
		err = c.translate(ctx, root, version, opts)
		if err != nil {
			return err
		}

		tr.Printw("object code", "size", len(c.objectCode), "version", c.version)
	}

	if c.emulator != nil {
		c.emulator.Cleanup()
	}

	return nil
}

// validate runs the checks that fail the compile.
func (c *Compiler) validate(ctx context.Context, root ir.Node, version int, opts CompileOptions) error {
	tr := tlog.SpanFromContext(ctx)

	maxCalls := opts.MaxCallStackDepth
	if maxCalls == 0 {
		maxCalls = DefaultMaxCallStackDepth
	}

	graph := analysis.BuildCallGraph(root)
	if res := graph.Check(opts.LimitCallStackDepth, maxCalls); res != analysis.CallDepthOK {
		msg := res.String()
		if path := graph.Path(); len(path) != 0 {
			msg += ": " + analysis.FormatCallPath(path)
		}
		c.sink.Errorf(ir.SourceLoc{}, "%s", msg)

		return errors.Wrap(ErrValidation, "call depth")
	}

	// Loops are only well formed for the passes below once checked.
	loopsValidated := false
	if version == 100 && (opts.ValidateLoopIndexing || c.spec.IsWebGLBased()) {
		if n := analysis.ValidateLimitations(root, c.stage, c.table, version, &c.sink); n != 0 {
			return errors.Wrap(ErrValidation, "limitations: %d errors", n)
		}
		loopsValidated = true
	}

	if opts.LimitExpressionComplexity {
		limit := opts.MaxExpressionComplexity
		if limit == 0 {
			limit = DefaultMaxExpressionComplexity
		}

		if depth, ok := ir.MaxDepth(root, limit); !ok {
			c.sink.Errorf(ir.SourceLoc{}, "Expression too complex.")

			return errors.Wrap(ErrValidation, "expression depth %d exceeds %d", depth, limit)
		}
	}

	if loopsValidated && opts.UnrollForLoopsWithIntegerIndex {
		analysis.MarkForLoopsWithIntegerIndices(root)
	}

	if loopsValidated && opts.UnrollForLoopsWithSamplerArrayIndex {
		if !analysis.MarkForLoopsWithSamplerArrayIndices(root) {
			c.sink.Errorf(ir.SourceLoc{}, "can't unroll loops where sampler array index is float loop index")

			return errors.Wrap(ErrValidation, "unroll")
		}
	}

	tr.Printw("validated", "version", version, "loops_validated", loopsValidated, "warnings", c.sink.WarningCount())

	return nil
}

// transform runs the rewriting and marking passes.
func (c *Compiler) transform(ctx context.Context, root ir.Node, opts CompileOptions) {
	tr := tlog.SpanFromContext(ctx)

	// The emulated definitions are GLSL; the HLSL writers do not use them.
	if opts.EmulateBuiltInFunctions && !c.output.IsHLSL() {
		c.emulator = transform.NewBuiltInFunctionEmulator(c.stage, transform.EmulateFloatScalarForms)
		c.emulator.MarkBuiltInFunctionsForEmulation(root)

		tr.Printw("emulated functions", "called", c.emulator.Called())
	}

	if opts.ClampIndirectArrayBounds {
		c.clamper = transform.NewArrayBoundsClamper(opts.ClampingStrategy)
		c.clamper.MarkIndirectArrayBoundsForClamping(root)

		tr.Printw("array bounds clamping", "strategy", opts.ClampingStrategy, "needed", c.clamper.Needed())
	}

	if opts.InitGLPosition && c.stage == ir.StageVertex {
		if !transform.InitializeGLPosition(root, c.table) {
			c.sink.Warning(ir.SourceLoc{}, "not initialized", "gl_Position", "main() not found")
		}
	}
}

// translate writes the object code.
func (c *Compiler) translate(ctx context.Context, root ir.Node, version int, opts CompileOptions) error {
	tr := tlog.SpanFromContext(ctx)

	if c.output.IsHLSL() {
		sm := hlsl.ShaderModel4_0
		if c.output == OutputHLSL9 {
			sm = hlsl.ShaderModel3_0
		}

		code, info, err := hlsl.Compile(root, &hlsl.Options{
			ShaderModel:    sm,
			Stage:          c.stage,
			MaxDrawBuffers: c.resources.MaxDrawBuffers,
		})
		if err != nil {
			c.sink.Errorf(ir.SourceLoc{}, "%v", err)
			return errors.Wrap(err, "hlsl")
		}

		tr.Printw("hlsl", "profile", info.Profile, "helpers", info.HelperFunctions)

		c.objectCode = code

		return nil
	}

	target := glsl.TargetESSL
	switch c.output {
	case OutputGLSL:
		target = glsl.TargetGLSL
	case OutputGLSLCore:
		target = glsl.TargetGLSLCore
	}

	code, info, err := glsl.Compile(root, glsl.Options{
		Target:        target,
		Stage:         c.stage,
		ShaderVersion: version,
		Table:         c.table,
		Pragma:        c.directives.Pragma,
		Extensions:    c.extensions,
		NVDrawBuffers: c.resources.NVDrawBuffers,
		HashFunction:  opts.HashFunction,
		NameMap:       c.nameMap,
		Clamper:       c.clamper,
		Emulator:      c.emulator,
	})
	if err != nil {
		return errors.Wrap(err, "glsl")
	}

	tr.Printw("glsl", "target", target, "extensions", info.UsedExtensions)

	c.objectCode = code
	c.version = info.Version

	return nil
}

// nameMapper returns the mapping from user names to the names in the
// object code.
func (c *Compiler) nameMapper(version int, opts CompileOptions) analysis.NameMapper {
	if c.output.IsHLSL() {
		return hlsl.DecoratedName
	}
	if opts.HashFunction == nil {
		return nil
	}

	return func(name string) string {
		if c.table.FindBuiltIn(name, version) != nil {
			return name
		}
		return glsl.HashName(name, opts.HashFunction, c.nameMap)
	}
}

// ObjectCode returns the translated source.
func (c *Compiler) ObjectCode() string { return c.objectCode }

// ObjectVersion returns the #version of GLSL object code, 0 for HLSL.
func (c *Compiler) ObjectVersion() int { return c.version }

// InfoLog returns the diagnostics of the compile.
func (c *Compiler) InfoLog() string { return c.sink.String() }

// Variables returns the interface variables found by Compile.
func (c *Compiler) Variables() analysis.Variables { return c.variables }

// NameMap returns the hashed names of the user identifiers.
func (c *Compiler) NameMap() map[string]string { return c.nameMap }

// ExtensionBehavior returns the extension states of the compile.
func (c *Compiler) ExtensionBehavior() builtins.ExtensionBehavior { return c.extensions }

// Stage returns the shader stage.
func (c *Compiler) Stage() ir.ShaderStage { return c.stage }

// Spec returns the shader spec.
func (c *Compiler) Spec() builtins.ShaderSpec { return c.spec }

// Output returns the output dialect.
func (c *Compiler) Output() Output { return c.output }
