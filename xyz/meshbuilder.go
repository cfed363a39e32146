// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"cogentcore.org/reactor/gpu"
	"cogentcore.org/reactor/math32"
	"cogentcore.org/reactor/shape"
)

// MeshBuilder is a drawable generated primitive shape: a vertex buffer,
// an optional index buffer, and the [Material] it is drawn with.
// One of the Create methods must be called before it is drawn;
// calling another one replaces the shape.
type MeshBuilder struct {
	Pose

	// Name is used in log messages.
	Name string

	// Visible is whether Render draws anything.
	Visible bool

	// Primitive is the topology the vertices are drawn as.
	Primitive gpu.Primitives

	material *Material
	buffers
}

var _ Drawable = (*MeshBuilder)(nil)

// NewMeshBuilder returns a new visible [MeshBuilder] that draws
// triangles with the default material of the context.
func NewMeshBuilder() *MeshBuilder {
	mb := &MeshBuilder{Visible: true, Primitive: gpu.Triangles}
	mb.Pose.Defaults()
	return mb
}

func (mb *MeshBuilder) AsPose() *Pose { return &mb.Pose }

// SetMaterial sets the material to draw with. The builder owns the
// material; a shared material should be copied with [Material.Clone].
// A nil material uses the default material of the context.
func (mb *MeshBuilder) SetMaterial(mt *Material) *MeshBuilder {
	mb.material = mt
	return mb
}

// Material returns the material the builder is drawn with in the given context.
func (mb *MeshBuilder) Material(rc *Context) *Material {
	if mb.material != nil {
		return mb.material
	}
	return rc.DefaultMaterial()
}

// VertexBuffer returns the vertex buffer, which is nil before a shape is created.
func (mb *MeshBuilder) VertexBuffer() *gpu.VertexBuffer { return mb.vb }

// IndexBuffer returns the index buffer, which is nil for shapes without indexes.
func (mb *MeshBuilder) IndexBuffer() *gpu.IndexBuffer { return mb.ib }

// VertexCount returns the number of vertices of the shape.
func (mb *MeshBuilder) VertexCount() int {
	if mb.vb == nil {
		return 0
	}
	return mb.vb.Count()
}

func (mb *MeshBuilder) upload(rc *Context, layout *gpu.VertexLayout, data []byte, count int, idxs []uint32, usage gpu.BufferUsages) error {
	mb.buffers.dispose()
	bf, err := newBuffers(rc.GPU, layout, data, count, idxs, usage)
	if err != nil {
		return err
	}
	mb.buffers = bf
	return nil
}

// CreateBox makes the shape a box of 36 vertices centered at center,
// extending size in each direction from it, with normals pointing
// inward if flipNormals. The box has no index buffer.
func (mb *MeshBuilder) CreateBox(rc *Context, center, size math32.Vector3, flipNormals bool) error {
	vtxs := shape.Box(size, flipNormals)
	if err := mb.upload(rc, gpu.Vertex3DLayout, shape.Encode3D(vtxs), len(vtxs), nil, gpu.WriteOnly); err != nil {
		return err
	}
	mb.Pos = center
	return nil
}

// CreateQuad makes the shape a screen-space quad at pos of the given
// size, in pixels of the context viewport or, if deviceNormalized,
// in fractions of it.
func (mb *MeshBuilder) CreateQuad(rc *Context, pos, size math32.Vector2, deviceNormalized bool) error {
	vtxs, idxs, err := shape.Quad(pos, size, deviceNormalized, rc.Viewport)
	if err != nil {
		return err
	}
	return mb.upload(rc, gpu.Vertex2DLayout, shape.Encode2D(vtxs), len(vtxs), idxs, gpu.WriteOnly)
}

// CreateFullscreenQuad makes the shape a quad covering the context viewport.
func (mb *MeshBuilder) CreateFullscreenQuad(rc *Context) error {
	vtxs, idxs, err := shape.FullscreenQuad(rc.Viewport)
	if err != nil {
		return err
	}
	return mb.upload(rc, gpu.Vertex2DLayout, shape.Encode2D(vtxs), len(vtxs), idxs, gpu.WriteOnly)
}

// CreateSphere makes the shape an indexed UV sphere centered at center,
// with the given radius and tessellation (see [shape.Sphere]).
func (mb *MeshBuilder) CreateSphere(rc *Context, center math32.Vector3, radius float32, tessellation int) error {
	vtxs, idxs, err := shape.Sphere(radius, tessellation)
	if err != nil {
		return err
	}
	if err := mb.upload(rc, gpu.Vertex3DLayout, shape.Encode3D(vtxs), len(vtxs), idxs, gpu.UsageNone); err != nil {
		return err
	}
	mb.Pos = center
	return nil
}

// Render applies the render state of the material and draws the shape.
// It does nothing if the builder is not visible or has no shape.
func (mb *MeshBuilder) Render(rc *Context) error {
	if !mb.Visible || mb.vb == nil {
		return nil
	}
	mt := mb.Material(rc)
	prog := mt.Program
	if prog == nil {
		prog = rc.DefaultProgram()
	}
	fe := &firstErr{gp: rc.GPU}
	fe.add(mt.ApplyState(rc))
	drawBuffers(rc, fe, &drawItem{
		prog:  prog,
		mat:   mt,
		vb:    mb.vb,
		ib:    mb.ib,
		prim:  mb.Primitive,
		world: mb.Pose.Matrix(),
	})
	return fe.result()
}

// Dispose disposes the buffers of the shape. The material is not
// disposed, since its program is not owned by it.
func (mb *MeshBuilder) Dispose() {
	mb.buffers.dispose()
}
