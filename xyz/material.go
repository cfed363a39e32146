// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"image/color"
	"maps"
	"slices"

	"cogentcore.org/reactor/base/errors"
	"cogentcore.org/reactor/gpu"
	"github.com/jinzhu/copier"
)

// DiffuseColorUniform is the uniform that receives [Material.Color].
const DiffuseColorUniform = "r_DiffuseColor"

// RenderState is the fixed-function state applied before a draw.
type RenderState struct {

	// DepthTest enables the depth test.
	DepthTest bool

	// DepthWrite enables writing to the depth buffer.
	DepthWrite bool

	// DepthFunc is the depth comparison function.
	DepthFunc gpu.DepthFuncs

	// CullEnable enables face culling.
	CullEnable bool

	// FrontFace is the winding of front-facing triangles.
	FrontFace gpu.Windings

	// CullMode is which faces are culled when culling is enabled.
	CullMode gpu.CullModes

	// BlendEnable enables alpha blending with BlendSrc and BlendDst.
	BlendEnable bool

	BlendSrc gpu.BlendFactors
	BlendDst gpu.BlendFactors
}

// DefaultRenderState returns the render state used by default:
// depth tested and written with [gpu.Less], back faces culled with
// counter-clockwise front faces, and alpha blending on.
func DefaultRenderState() RenderState {
	return RenderState{
		DepthTest:   true,
		DepthWrite:  true,
		DepthFunc:   gpu.Less,
		CullEnable:  true,
		FrontFace:   gpu.CCW,
		CullMode:    gpu.CullBack,
		BlendEnable: true,
		BlendSrc:    gpu.BlendSrcAlpha,
		BlendDst:    gpu.BlendOneMinusSrcAlpha,
	}
}

// Apply sets the depth and cull state: depth test, depth mask, depth
// function, cull enable, front face winding and cull face, in that
// order, checking each call. It returns the first error.
func (rs *RenderState) Apply(gp *gpu.GPU) error {
	fe := &firstErr{gp: gp}
	dev := gp.Device
	gp.SetEnabled(gpu.DepthTest, rs.DepthTest)
	fe.check("RenderState DepthTest")
	dev.DepthMask(rs.DepthWrite)
	fe.check("RenderState DepthMask")
	dev.DepthFunc(rs.DepthFunc)
	fe.check("RenderState DepthFunc")
	gp.SetEnabled(gpu.CullFace, rs.CullEnable)
	fe.check("RenderState CullEnable")
	dev.FrontFace(rs.FrontFace)
	fe.check("RenderState FrontFace")
	dev.CullFace(rs.CullMode)
	fe.check("RenderState CullFace")
	return fe.err
}

// Material describes how a surface is drawn: the program, render
// state, and the uniform values the program receives.
type Material struct {

	// Name is used in log messages.
	Name string

	// Program draws objects with this material. If nil, the
	// default program of the [Context] is used. It is not
	// owned by the material.
	Program *gpu.Program `copier:"-"`

	// State is the render state applied before drawing.
	State RenderState

	// Color is the diffuse color of the surface; the alpha
	// component is its opacity.
	Color color.RGBA

	// Floats are additional float uniforms set on the program.
	Floats map[string]float32
}

// NewMaterial returns a new [Material] with default settings
// that draws with the given program.
func NewMaterial(name string, prog *gpu.Program) *Material {
	mt := &Material{Name: name, Program: prog}
	mt.Defaults()
	return mt
}

// Defaults sets the default render state and a mid gray color.
func (mt *Material) Defaults() {
	mt.State = DefaultRenderState()
	mt.Color = color.RGBA{128, 128, 128, 255}
}

// Clone returns a deep copy of the material that shares its program,
// so that edits to the copy never affect the original.
func (mt *Material) Clone() *Material {
	cl := &Material{}
	errors.Log(copier.CopyWithOption(cl, mt, copier.Option{CaseSensitive: true, DeepCopy: true}))
	cl.Program = mt.Program
	return cl
}

// SetFloat sets the named float uniform value.
func (mt *Material) SetFloat(name string, v float32) *Material {
	if mt.Floats == nil {
		mt.Floats = map[string]float32{}
	}
	mt.Floats[name] = v
	return mt
}

// IsTransparent returns whether the color has alpha < 255.
func (mt *Material) IsTransparent() bool {
	return mt.Color.A < 255
}

// ApplyState applies the render state of the material.
func (mt *Material) ApplyState(rc *Context) error {
	return mt.State.Apply(rc.GPU)
}

// Apply sets the blend state and the uniforms of the material on the
// given program, which must be bound. It returns the first error.
func (mt *Material) Apply(rc *Context, prog *gpu.Program) error {
	fe := &firstErr{gp: rc.GPU}
	dev := rc.GPU.Device
	if mt.State.BlendEnable {
		dev.Enable(gpu.Blend)
		fe.check("Material Blend")
		dev.BlendFunc(mt.State.BlendSrc, mt.State.BlendDst)
		fe.check("Material BlendFunc")
	} else {
		dev.Disable(gpu.Blend)
		fe.check("Material Blend")
	}
	c := mt.Color
	prog.SetVector4(DiffuseColorUniform, float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255)
	fe.check("Material Color")
	for _, nm := range slices.Sorted(maps.Keys(mt.Floats)) {
		prog.SetFloat(nm, mt.Floats[nm])
		fe.check("Material " + nm)
	}
	return fe.err
}
