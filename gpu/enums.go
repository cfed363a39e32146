// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"path/filepath"
	"strings"
)

// enumString returns the name for index i of an enum, or a
// numeric fallback for out-of-range values.
func enumString(names []string, typ string, i int32) string {
	if i >= 0 && int(i) < len(names) {
		return names[i]
	}
	return fmt.Sprintf("%s(%d)", typ, i)
}

// ShaderTypes is a list of GPU shader stages.
type ShaderTypes int32

const (
	VertexShader ShaderTypes = iota
	FragmentShader
	GeometryShader
	TessCtrlShader
	TessEvalShader
	ComputeShader
	ShaderTypesN
)

var shaderTypesNames = []string{"VertexShader", "FragmentShader", "GeometryShader", "TessCtrlShader", "TessEvalShader", "ComputeShader"}

func (st ShaderTypes) String() string {
	return enumString(shaderTypesNames, "ShaderTypes", int32(st))
}

// IsValid returns whether this is a known shader stage.
func (st ShaderTypes) IsValid() bool {
	return st >= 0 && st < ShaderTypesN
}

// shaderExts are the conventional file extensions for each stage.
var shaderExts = map[string]ShaderTypes{
	".vert": VertexShader,
	".frag": FragmentShader,
	".geom": GeometryShader,
	".tesc": TessCtrlShader,
	".tese": TessEvalShader,
	".comp": ComputeShader,
}

// ShaderTypeFromFile returns the shader stage for the given file name
// based on its extension (.vert, .frag, .geom, .tesc, .tese, .comp).
func ShaderTypeFromFile(fname string) (ShaderTypes, bool) {
	st, ok := shaderExts[strings.ToLower(filepath.Ext(fname))]
	return st, ok
}

// Primitives are the topologies that draw calls interpret the
// vertex or index stream as.
type Primitives int32

const (
	Points Primitives = iota
	Lines
	LineLoop
	LineStrip
	Triangles
	TriangleStrip
	TriangleFan
	PrimitivesN
)

var primitivesNames = []string{"Points", "Lines", "LineLoop", "LineStrip", "Triangles", "TriangleStrip", "TriangleFan"}

func (pr Primitives) String() string {
	return enumString(primitivesNames, "Primitives", int32(pr))
}

// Capabilities are the render state capabilities that can be
// enabled and disabled.
type Capabilities int32

const (
	DepthTest Capabilities = iota
	CullFace
	Blend
	PointSprite
	ProgramPointSize
	CapabilitiesN
)

var capabilitiesNames = []string{"DepthTest", "CullFace", "Blend", "PointSprite", "ProgramPointSize"}

func (cp Capabilities) String() string {
	return enumString(capabilitiesNames, "Capabilities", int32(cp))
}

// DepthFuncs are the depth comparison functions.
type DepthFuncs int32

const (
	Never DepthFuncs = iota
	Less
	Equal
	LessEqual
	Greater
	NotEqual
	GreaterEqual
	Always
	DepthFuncsN
)

var depthFuncsNames = []string{"Never", "Less", "Equal", "LessEqual", "Greater", "NotEqual", "GreaterEqual", "Always"}

func (df DepthFuncs) String() string {
	return enumString(depthFuncsNames, "DepthFuncs", int32(df))
}

// Windings are the vertex orderings that define the front face of a triangle.
type Windings int32

const (
	CCW Windings = iota
	CW
	WindingsN
)

var windingsNames = []string{"CCW", "CW"}

func (wn Windings) String() string {
	return enumString(windingsNames, "Windings", int32(wn))
}

// CullModes are the faces that are culled when face culling is enabled.
type CullModes int32

const (
	CullBack CullModes = iota
	CullFront
	CullFrontAndBack
	CullModesN
)

var cullModesNames = []string{"Back", "Front", "FrontAndBack"}

func (cm CullModes) String() string {
	return enumString(cullModesNames, "CullModes", int32(cm))
}

// BlendFactors are the source and destination factors for blending.
type BlendFactors int32

const (
	BlendZero BlendFactors = iota
	BlendOne
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
	BlendDstAlpha
	BlendOneMinusDstAlpha
	BlendFactorsN
)

var blendFactorsNames = []string{"Zero", "One", "SrcAlpha", "OneMinusSrcAlpha", "DstAlpha", "OneMinusDstAlpha"}

func (bf BlendFactors) String() string {
	return enumString(blendFactorsNames, "BlendFactors", int32(bf))
}

// BufferTargets are the binding points for buffers.
type BufferTargets int32

const (
	ArrayBuffer BufferTargets = iota
	ElementArrayBuffer
	BufferTargetsN
)

var bufferTargetsNames = []string{"ArrayBuffer", "ElementArrayBuffer"}

func (bt BufferTargets) String() string {
	return enumString(bufferTargetsNames, "BufferTargets", int32(bt))
}

// BufferUsages are hints to the graphics backend about how often
// the contents of a buffer are going to change. They do not change
// how a buffer can be used.
type BufferUsages int32

const (
	// UsageNone gives no hint, and is treated as written once.
	UsageNone BufferUsages = iota

	// WriteOnly is for buffers written once and drawn many times.
	WriteOnly

	// Dynamic is for buffers that are rewritten frequently.
	Dynamic
	BufferUsagesN
)

var bufferUsagesNames = []string{"UsageNone", "WriteOnly", "Dynamic"}

func (bu BufferUsages) String() string {
	return enumString(bufferUsagesNames, "BufferUsages", int32(bu))
}

// IndexSizes are the widths of the elements of an index buffer.
type IndexSizes int32

const (
	Index16 IndexSizes = iota
	Index32
	IndexSizesN
)

var indexSizesNames = []string{"Index16", "Index32"}

func (is IndexSizes) String() string {
	return enumString(indexSizesNames, "IndexSizes", int32(is))
}

// Bytes returns the number of bytes per index.
func (is IndexSizes) Bytes() int {
	if is == Index16 {
		return 2
	}
	return 4
}

// MaxIndex returns the largest index value that fits.
func (is IndexSizes) MaxIndex() uint32 {
	if is == Index16 {
		return 0xFFFF
	}
	return 0xFFFFFFFF
}

// IndexSizeFor returns the narrowest index size that can
// address the given number of vertices.
func IndexSizeFor(numVertex int) IndexSizes {
	if numVertex <= 0x10000 {
		return Index16
	}
	return Index32
}

// ErrorPolicy determines what happens when a graphics state call
// reports an error during drawing.
type ErrorPolicy int32

const (
	// LogErrors logs each error with its call site and continues
	// the draw; Render returns nil.
	LogErrors ErrorPolicy = iota

	// FailOnError logs each error the same way and still completes
	// the draw and unwinds all bindings, but then returns the first error.
	FailOnError
)

var errorPolicyNames = []string{"LogErrors", "FailOnError"}

func (ep ErrorPolicy) String() string {
	return enumString(errorPolicyNames, "ErrorPolicy", int32(ep))
}
