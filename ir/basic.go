// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ir

// ShaderStage identifies the pipeline stage a shader is compiled for.
type ShaderStage uint8

const (
	StageVertex ShaderStage = iota
	StageFragment
)

// String returns the stage name.
func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// BasicType is the base tag of a Type.
type BasicType uint8

const (
	Void BasicType = iota
	Float
	Int
	UInt
	Bool

	Sampler2D
	Sampler3D
	SamplerCube
	Sampler2DArray
	SamplerExternalOES
	Sampler2DRect
	ISampler2D
	ISampler3D
	ISamplerCube
	ISampler2DArray
	USampler2D
	USampler3D
	USamplerCube
	USampler2DArray
	Sampler2DShadow
	SamplerCubeShadow
	Sampler2DArrayShadow

	Structure
	UniformBlock

	// Pseudo types used only in built-in tables. They expand into the
	// concrete overloads when inserted into a symbol table.
	GenType  // float, vec2, vec3, vec4
	GenIType // int, ivec2, ivec3, ivec4
	GenUType // uint, uvec2, uvec3, uvec4
	GenBType // bool, bvec2, bvec3, bvec4
	Vec      // vec2, vec3, vec4
	IVec     // ivec2, ivec3, ivec4
	UVec     // uvec2, uvec3, uvec4
	BVec     // bvec2, bvec3, bvec4
	GVec4    // vec4, ivec4, uvec4 following the sampler kind
	GSampler2D
	GSampler3D
	GSamplerCube
	GSampler2DArray
)

var basicNames = [...]string{
	Void:                 "void",
	Float:                "float",
	Int:                  "int",
	UInt:                 "uint",
	Bool:                 "bool",
	Sampler2D:            "sampler2D",
	Sampler3D:            "sampler3D",
	SamplerCube:          "samplerCube",
	Sampler2DArray:       "sampler2DArray",
	SamplerExternalOES:   "samplerExternalOES",
	Sampler2DRect:        "sampler2DRect",
	ISampler2D:           "isampler2D",
	ISampler3D:           "isampler3D",
	ISamplerCube:         "isamplerCube",
	ISampler2DArray:      "isampler2DArray",
	USampler2D:           "usampler2D",
	USampler3D:           "usampler3D",
	USamplerCube:         "usamplerCube",
	USampler2DArray:      "usampler2DArray",
	Sampler2DShadow:      "sampler2DShadow",
	SamplerCubeShadow:    "samplerCubeShadow",
	Sampler2DArrayShadow: "sampler2DArrayShadow",
	Structure:            "structure",
	UniformBlock:         "interface block",
	GenType:              "genType",
	GenIType:             "genIType",
	GenUType:             "genUType",
	GenBType:             "genBType",
	Vec:                  "vec",
	IVec:                 "ivec",
	UVec:                 "uvec",
	BVec:                 "bvec",
	GVec4:                "gvec4",
	GSampler2D:           "gsampler2D",
	GSampler3D:           "gsampler3D",
	GSamplerCube:         "gsamplerCube",
	GSampler2DArray:      "gsampler2DArray",
}

// String returns the GLSL spelling of the basic type.
func (b BasicType) String() string {
	if int(b) < len(basicNames) && basicNames[b] != "" {
		return basicNames[b]
	}
	return "unknown type"
}

// IsSampler reports whether b is a concrete sampler type.
func (b BasicType) IsSampler() bool {
	return b >= Sampler2D && b <= Sampler2DArrayShadow
}

// IsShadowSampler reports whether b is a depth comparison sampler.
func (b BasicType) IsShadowSampler() bool {
	return b == Sampler2DShadow || b == SamplerCubeShadow || b == Sampler2DArrayShadow
}

// IsGeneric reports whether b is a built-in table pseudo type.
func (b BasicType) IsGeneric() bool {
	return b >= GenType && b <= GSampler2DArray
}

// SupportsPrecision reports whether a default precision can be declared
// for b.
func (b BasicType) SupportsPrecision() bool {
	return b == Float || b == Int || b == UInt || b.IsSampler()
}

// Precision is a GLSL ES precision qualifier.
type Precision uint8

const (
	PrecisionUndefined Precision = iota
	PrecisionLow
	PrecisionMedium
	PrecisionHigh
)

// String returns the precision keyword, or "" for undefined precision.
func (p Precision) String() string {
	switch p {
	case PrecisionLow:
		return "lowp"
	case PrecisionMedium:
		return "mediump"
	case PrecisionHigh:
		return "highp"
	default:
		return ""
	}
}

// Qualifier is the storage class of a variable.
type Qualifier uint8

const (
	QualTemporary Qualifier = iota
	QualGlobal
	QualConst
	QualAttribute
	QualVaryingIn
	QualVaryingOut
	QualInvariantVaryingIn
	QualInvariantVaryingOut
	QualUniform

	// ES SL 3.00 stage interface
	QualVertexIn
	QualVertexOut
	QualFragmentIn
	QualFragmentOut

	// Function parameters
	QualIn
	QualOut
	QualInOut
	QualConstReadOnly

	// Built-in variables
	QualPosition
	QualPointSize
	QualFragCoord
	QualFrontFacing
	QualPointCoord
	QualFragColor
	QualFragData
	QualFragDepth
)

var qualifierNames = [...]string{
	QualTemporary:           "Temporary",
	QualGlobal:              "Global",
	QualConst:               "const",
	QualAttribute:           "attribute",
	QualVaryingIn:           "varying",
	QualVaryingOut:          "varying",
	QualInvariantVaryingIn:  "invariant varying",
	QualInvariantVaryingOut: "invariant varying",
	QualUniform:             "uniform",
	QualVertexIn:            "in",
	QualVertexOut:           "out",
	QualFragmentIn:          "in",
	QualFragmentOut:         "out",
	QualIn:                  "in",
	QualOut:                 "out",
	QualInOut:               "inout",
	QualConstReadOnly:       "const",
	QualPosition:            "Position",
	QualPointSize:           "PointSize",
	QualFragCoord:           "FragCoord",
	QualFrontFacing:         "FrontFacing",
	QualPointCoord:          "PointCoord",
	QualFragColor:           "FragColor",
	QualFragData:            "FragData",
	QualFragDepth:           "FragDepth",
}

// String returns the qualifier as written in shader source.
func (q Qualifier) String() string {
	if int(q) < len(qualifierNames) {
		return qualifierNames[q]
	}
	return "unknown qualifier"
}

// IsVarying reports whether q declares a stage interface variable
// between the vertex and the fragment stage.
func (q Qualifier) IsVarying() bool {
	switch q {
	case QualVaryingIn, QualVaryingOut, QualInvariantVaryingIn, QualInvariantVaryingOut,
		QualVertexOut, QualFragmentIn:
		return true
	default:
		return false
	}
}

// BlockStorage is the memory layout of an interface block.
type BlockStorage uint8

const (
	BlockStorageUnspecified BlockStorage = iota
	BlockStorageShared
	BlockStoragePacked
	BlockStorageStd140
)

// String returns the layout keyword.
func (s BlockStorage) String() string {
	switch s {
	case BlockStorageShared:
		return "shared"
	case BlockStoragePacked:
		return "packed"
	case BlockStorageStd140:
		return "std140"
	default:
		return "mode"
	}
}

// MatrixPacking is the matrix layout qualifier of a block or block member.
type MatrixPacking uint8

const (
	MatrixPackingUnspecified MatrixPacking = iota
	MatrixPackingColumnMajor
	MatrixPackingRowMajor
)

// LayoutQualifier groups the layout(...) qualifiers of a declaration.
// The zero value means no layout(...) was written.
type LayoutQualifier struct {
	Location      int
	HasLocation   bool
	MatrixPacking MatrixPacking
	BlockStorage  BlockStorage
}

// IsEmpty reports whether no layout qualifier is set.
func (l LayoutQualifier) IsEmpty() bool {
	return !l.HasLocation && l.MatrixPacking == MatrixPackingUnspecified && l.BlockStorage == BlockStorageUnspecified
}
