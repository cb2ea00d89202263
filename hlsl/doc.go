// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package hlsl writes a validated GLSL ES shader tree as HLSL source.
//
// HLSL is Microsoft's shader language for Direct3D. Two shader model
// families are supported:
//   - SM 3.0 ("HLSL9"): Direct3D 9, combined sampler objects
//   - SM 4.0 ("HLSL11"): Direct3D 10 and 11, separate textures and
//     sampler states, SV_ system value semantics
//
// # Usage
//
//	options := hlsl.DefaultOptions()
//	options.Stage = ir.StageFragment
//
//	hlslCode, info, err := hlsl.Compile(root, options)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Output Layout
//
// User identifiers are decorated with a leading underscore. Uniforms are
// declared at global scope, stage variables and built-in outputs become
// static globals, and GLSL main is renamed gl_main. A generated main
// copies the stage inputs in, calls gl_main and returns the outputs:
//
//	struct PS_INPUT { float4 _v_color : TEXCOORD0; };
//	struct PS_OUTPUT { float4 gl_Color0 : SV_Target0; };
//	PS_OUTPUT main(PS_INPUT input) { ... }
//
// GLSL matrices are stored transposed, so linear algebra is written with
// mul and transpose. Texture lookups and mod are written as helper
// functions declared before the body.
package hlsl
