// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import "fmt"

// VertexUsages are the roles of the elements of a vertex.
type VertexUsages int32

const (
	UsagePosition VertexUsages = iota
	UsageColor
	UsageTexCoord
	UsageNormal
	UsageBinormal
	UsageTangent
	UsageBlendIndices
	UsageBlendWeight
	UsageDepth
	UsageFog
	UsagePointSize
	UsageSample
	UsageTessellateFactor
	VertexUsagesN
)

var vertexUsagesNames = []string{"Position", "Color", "TexCoord", "Normal", "Binormal", "Tangent", "BlendIndices", "BlendWeight", "Depth", "Fog", "PointSize", "Sample", "TessellateFactor"}

func (vu VertexUsages) String() string {
	return enumString(vertexUsagesNames, "VertexUsages", int32(vu))
}

// AttribName returns the name of the vertex shader input that
// receives elements of this usage, for example r_Position.
func (vu VertexUsages) AttribName() string {
	return "r_" + vu.String()
}

// VertexElement is one float32 element of a vertex.
type VertexElement struct {
	Usage VertexUsages

	// Components is the number of float32 components, 1 to 4.
	Components int

	// Offset is the byte offset of the element within the vertex.
	Offset int
}

// VertexLayout describes how the bytes of each vertex in a
// [VertexBuffer] map to shader inputs.
type VertexLayout struct {
	Name string

	// Stride is the size of each vertex in bytes.
	Stride int

	Elements []VertexElement
}

// NewVertexLayout returns a new layout with the given elements
// packed in order, with the stride computed from them.
func NewVertexLayout(name string, elements ...VertexElement) *VertexLayout {
	vl := &VertexLayout{Name: name, Elements: elements}
	off := 0
	for i := range vl.Elements {
		vl.Elements[i].Offset = off
		off += 4 * vl.Elements[i].Components
	}
	vl.Stride = off
	return vl
}

// Vertex3DLayout is the layout of a 3D vertex: position, normal,
// binormal, tangent and texture coordinates.
var Vertex3DLayout = NewVertexLayout("Vertex3D",
	VertexElement{Usage: UsagePosition, Components: 3},
	VertexElement{Usage: UsageNormal, Components: 3},
	VertexElement{Usage: UsageBinormal, Components: 3},
	VertexElement{Usage: UsageTangent, Components: 3},
	VertexElement{Usage: UsageTexCoord, Components: 2},
)

// Vertex2DLayout is the layout of a screen-aligned vertex:
// position and texture coordinates.
var Vertex2DLayout = NewVertexLayout("Vertex2D",
	VertexElement{Usage: UsagePosition, Components: 2},
	VertexElement{Usage: UsageTexCoord, Components: 2},
)

// Apply enables and points each element of the layout at the
// corresponding input of the program, reading from the currently
// bound vertex buffer. Elements that the program does not use are skipped.
// Every element is applied; the first error is returned.
func (vl *VertexLayout) Apply(pr *Program) error {
	dev := pr.gp.Device
	var first error
	for _, el := range vl.Elements {
		loc := pr.AttribLocation(el.Usage)
		if loc < 0 {
			continue
		}
		dev.EnableVertexAttribArray(uint32(loc))
		dev.VertexAttribPointer(uint32(loc), el.Components, vl.Stride, el.Offset)
		if err := pr.gp.ErrCheck(fmt.Sprintf("VertexLayout %s: %s", vl.Name, el.Usage)); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Disable disables each element of the layout used by the program.
func (vl *VertexLayout) Disable(pr *Program) {
	for _, el := range vl.Elements {
		if loc := pr.AttribLocation(el.Usage); loc >= 0 {
			pr.gp.Device.DisableVertexAttribArray(uint32(loc))
		}
	}
}
