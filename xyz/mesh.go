// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"

	"cogentcore.org/reactor/base/fsx"
	"cogentcore.org/reactor/gpu"
	"cogentcore.org/reactor/shape"
)

// meshState is the render state of every [Mesh] draw.
var meshState = RenderState{
	DepthTest:  true,
	DepthWrite: true,
	DepthFunc:  gpu.Less,
	CullEnable: true,
	FrontFace:  gpu.CCW,
	CullMode:   gpu.CullBack,
}

// MeshPart is one indexed triangle list of a [Mesh] with its own material.
type MeshPart struct {

	// Material sets the uniforms and blending of the part. If nil,
	// the default material of the context is used. Its render state
	// and program are not used: the mesh provides both.
	Material *Material

	buffers
}

// NewMeshPart uploads the given vertices and indexes as a new part.
// Every index must be less than the number of vertices.
func NewMeshPart(rc *Context, vtxs []shape.Vertex3D, idxs []uint32, mat *Material) (*MeshPart, error) {
	bf, err := newBuffers(rc.GPU, gpu.Vertex3DLayout, shape.Encode3D(vtxs), len(vtxs), idxs, gpu.WriteOnly)
	if err != nil {
		return nil, err
	}
	return &MeshPart{Material: mat, buffers: bf}, nil
}

// VertexBuffer returns the vertex buffer of the part.
func (pt *MeshPart) VertexBuffer() *gpu.VertexBuffer { return pt.vb }

// IndexBuffer returns the index buffer of the part, which is nil if
// the part was made without indexes.
func (pt *MeshPart) IndexBuffer() *gpu.IndexBuffer { return pt.ib }

// Dispose disposes the buffers of the part.
func (pt *MeshPart) Dispose() {
	pt.buffers.dispose()
}

// Mesh is a drawable made of [MeshPart]s that share one program
// and the fixed render state of depth test [gpu.Less] with back
// faces culled.
type Mesh struct {
	Pose

	// Name is used in log messages.
	Name string

	// Visible is whether Render draws anything.
	Visible bool

	// Parts are drawn in order. The mesh owns them.
	Parts []*MeshPart

	// Source is the resolved path of the file the mesh was
	// loaded from, if any.
	Source string

	program *gpu.Program
}

var _ Drawable = (*Mesh)(nil)

// NewMesh returns a new visible empty [Mesh].
func NewMesh() *Mesh {
	ms := &Mesh{Visible: true}
	ms.Pose.Defaults()
	return ms
}

func (ms *Mesh) AsPose() *Pose { return &ms.Pose }

// AddPart adds the part, transferring ownership of it to the mesh.
func (ms *Mesh) AddPart(pt *MeshPart) *Mesh {
	ms.Parts = append(ms.Parts, pt)
	return ms
}

// SetProgram sets the program the parts are drawn with, transferring
// ownership of it to the mesh, which disposes any program it owned
// before. Shared programs (see [gpu.Program.SetShared]), such as the
// default program of the context, are used but never owned.
// A nil program uses the default program of the context.
func (ms *Mesh) SetProgram(prog *gpu.Program) *Mesh {
	if ms.program != prog {
		ms.releaseProgram()
	}
	ms.program = prog
	return ms
}

// releaseProgram disposes the program if the mesh owns it.
func (ms *Mesh) releaseProgram() {
	if ms.program != nil && !ms.program.IsShared() {
		ms.program.Dispose()
	}
	ms.program = nil
}

// Program returns the program the mesh is drawn with in the given context.
func (ms *Mesh) Program(rc *Context) *gpu.Program {
	if ms.program != nil {
		return ms.program
	}
	return rc.DefaultProgram()
}

// LoadSourcePath resolves the path of the named mesh source file
// through the context resolver, recording it in [Mesh.Source].
func (ms *Mesh) LoadSourcePath(rc *Context, name string) (string, error) {
	if rc.Resolver == nil {
		return "", fmt.Errorf("mesh source %q: %w", name, fsx.ErrNotFound)
	}
	p, err := rc.Resolver.Path(name)
	if err != nil {
		return "", fmt.Errorf("mesh source: %w", err)
	}
	ms.Source = p
	return p, nil
}

// Render applies the fixed mesh render state and then draws each
// part as triangles with the mesh program.
func (ms *Mesh) Render(rc *Context) error {
	if !ms.Visible {
		return nil
	}
	fe := &firstErr{gp: rc.GPU}
	fe.add(meshState.Apply(rc.GPU))
	prog := ms.Program(rc)
	world := ms.Pose.Matrix()
	for _, pt := range ms.Parts {
		if pt.vb == nil {
			continue
		}
		mt := pt.Material
		if mt == nil {
			mt = rc.DefaultMaterial()
		}
		drawBuffers(rc, fe, &drawItem{
			prog:  prog,
			mat:   mt,
			vb:    pt.vb,
			ib:    pt.ib,
			prim:  gpu.Triangles,
			world: world,
		})
	}
	return fe.result()
}

// Dispose disposes the parts and the program owned by the mesh.
func (ms *Mesh) Dispose() {
	for _, pt := range ms.Parts {
		pt.Dispose()
	}
	ms.Parts = nil
	ms.releaseProgram()
}
