// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz_test

import (
	"fmt"
	"image"
	"image/color"
	"slices"
	"testing"

	"cogentcore.org/reactor/gpu"
	"cogentcore.org/reactor/gpu/softgpu"
	"cogentcore.org/reactor/math32"
	"cogentcore.org/reactor/shape"
	"cogentcore.org/reactor/xyz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(t *testing.T, policy gpu.ErrorPolicy) (*softgpu.Device, *xyz.Context) {
	t.Helper()
	dev := softgpu.NewDevice()
	rc, err := xyz.NewContext(gpu.NewGPU(dev, policy), image.Pt(800, 600), nil)
	require.NoError(t, err)
	dev.ResetCalls()
	return dev, rc
}

func TestMeshBuilderBox(t *testing.T) {
	dev, rc := newContext(t, gpu.LogErrors)
	mb := xyz.NewMeshBuilder()
	require.NoError(t, mb.CreateBox(rc, math32.Vec3(1, 2, 3), math32.Vec3(1, 1, 1), false))
	assert.Equal(t, math32.Vec3(1, 2, 3), mb.Pos)
	assert.Equal(t, 36, mb.VertexCount())
	assert.Nil(t, mb.IndexBuffer())

	data, err := mb.VertexBuffer().ReadData()
	require.NoError(t, err)
	vtxs, err := shape.Decode3D(data)
	require.NoError(t, err)
	assert.Equal(t, math32.Vec3(-1, 1, -1), vtxs[0].Position)
	assert.Equal(t, math32.Vec3(0, 0, -1), vtxs[0].Normal)

	dev.ResetCalls()
	require.NoError(t, mb.Render(rc))
	assert.Equal(t, []string{
		"Enable", "DepthMask", "DepthFunc", "Enable", "FrontFace", "CullFace",
		"UseProgram",
		"Enable", "BlendFunc", "Uniform4",
		"BindBuffer", "BindVertexArray",
		"EnableVertexAttribArray", "VertexAttribPointer",
		"EnableVertexAttribArray", "VertexAttribPointer",
		"EnableVertexAttribArray", "VertexAttribPointer",
		"UniformMatrix4", "UniformMatrix4", "UniformMatrix4", "UniformMatrix4",
		"DrawArrays",
		"UseProgram",
		"DisableVertexAttribArray", "DisableVertexAttribArray", "DisableVertexAttribArray",
		"BindVertexArray", "BindBuffer",
	}, dev.CallNames())
	assert.Equal(t, []string{
		"Enable(DepthTest)", "DepthMask(true)", "DepthFunc(Less)",
		"Enable(CullFace)", "FrontFace(CCW)", "CullFace(Back)",
	}, dev.Calls[:6])
	assert.Contains(t, dev.Calls, "DrawArrays(Triangles, 0, 36)")
	assert.Equal(t, "BindBuffer(ArrayBuffer, 0)", dev.Calls[len(dev.Calls)-1])
	assert.Zero(t, dev.CurrentProgram())
	assert.Zero(t, dev.BoundVertexArray())
	assert.Empty(t, dev.EnabledAttribs())

	prog := rc.DefaultProgram()
	world := dev.Uniforms[prog.Handle()][prog.UniformLocation(gpu.WorldUniform)].(*math32.Matrix4)
	assert.Equal(t, []float32{1, 2, 3}, world[12:15])

	mb.Dispose()
	assert.Zero(t, dev.LiveBuffers())
	assert.Zero(t, dev.LiveVertexArrays())
	assert.NotPanics(t, mb.Dispose)
}

func TestMeshBuilderSphere(t *testing.T) {
	dev, rc := newContext(t, gpu.LogErrors)
	mb := xyz.NewMeshBuilder()
	require.NoError(t, mb.CreateBox(rc, math32.Vector3{}, math32.Vec3(1, 1, 1), false))
	require.NoError(t, mb.CreateSphere(rc, math32.Vec3(0, 1, 0), 2, 4))
	// the box buffers were replaced
	assert.Equal(t, 2, dev.LiveBuffers())
	assert.Equal(t, 1, dev.LiveVertexArrays())
	assert.Equal(t, 26, mb.VertexCount())
	require.NotNil(t, mb.IndexBuffer())
	assert.Equal(t, gpu.Index16, mb.IndexBuffer().IndexSize())
	idxs, err := mb.IndexBuffer().Indexes()
	require.NoError(t, err)
	assert.Len(t, idxs, 144)
	for _, ix := range idxs {
		assert.Less(t, ix, uint32(26))
	}

	dev.ResetCalls()
	require.NoError(t, mb.Render(rc))
	names := dev.CallNames()
	assert.NotContains(t, names, "DrawArrays")
	assert.Contains(t, dev.Calls, "DrawElements(Triangles, 144, Index16, 0)")
	bind := slices.Index(dev.Calls, fmt.Sprintf("BindBuffer(ElementArrayBuffer, %d)", mb.IndexBuffer().Handle()))
	draw := slices.Index(names, "DrawElements")
	require.GreaterOrEqual(t, bind, 0)
	assert.Equal(t, bind+1, draw)
	assert.Equal(t, "BindBuffer(ElementArrayBuffer, 0)", dev.Calls[draw+1])

	mb.Dispose()
	assert.Zero(t, dev.LiveBuffers())
}

func TestMeshBuilderPoints(t *testing.T) {
	dev, rc := newContext(t, gpu.LogErrors)
	mb := xyz.NewMeshBuilder()
	mb.Primitive = gpu.Points
	require.NoError(t, mb.CreateBox(rc, math32.Vector3{}, math32.Vec3(1, 1, 1), false))
	dev.ResetCalls()
	require.NoError(t, mb.Render(rc))

	draw := slices.Index(dev.Calls, "DrawArrays(Points, 0, 36)")
	require.Greater(t, draw, 2)
	assert.Equal(t, []string{"Enable(PointSprite)", "Enable(ProgramPointSize)"}, dev.Calls[draw-2:draw])
	assert.Equal(t, []string{"Disable(PointSprite)", "Disable(ProgramPointSize)"}, dev.Calls[draw+1:draw+3])
	assert.False(t, dev.IsEnabled(gpu.PointSprite))
	assert.False(t, dev.IsEnabled(gpu.ProgramPointSize))

	mb.Primitive = gpu.Triangles
	dev.ResetCalls()
	require.NoError(t, mb.Render(rc))
	assert.NotContains(t, dev.Calls, "Enable(PointSprite)")
	mb.Dispose()
}

func TestMeshBuilderQuad(t *testing.T) {
	dev, rc := newContext(t, gpu.LogErrors)
	mb := xyz.NewMeshBuilder()
	require.NoError(t, mb.CreateQuad(rc, math32.Vec2(200, 150), math32.Vec2(400, 300), false))
	data, err := mb.VertexBuffer().ReadData()
	require.NoError(t, err)
	vtxs, err := shape.Decode2D(data)
	require.NoError(t, err)
	assert.Equal(t, math32.Vec2(0.25, 0.25), vtxs[0].Position)
	assert.Equal(t, math32.Vec2(0.75, 0.75), vtxs[2].Position)
	idxs, err := mb.IndexBuffer().Indexes()
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, idxs)

	dev.ResetCalls()
	require.NoError(t, mb.Render(rc))
	assert.Contains(t, dev.Calls, "DrawElements(Triangles, 6, Index16, 0)")
	// the 2D layout has only position and texture coordinates
	nptr := 0
	for _, nm := range dev.CallNames() {
		if nm == "VertexAttribPointer" {
			nptr++
		}
	}
	assert.Equal(t, 2, nptr)
	assert.Contains(t, dev.Calls, "VertexAttribPointer(0, 2, 16, 0)")

	require.NoError(t, mb.CreateFullscreenQuad(rc))
	data, err = mb.VertexBuffer().ReadData()
	require.NoError(t, err)
	vtxs, err = shape.Decode2D(data)
	require.NoError(t, err)
	assert.Equal(t, math32.Vec2(800, 600), vtxs[2].Position)
	mb.Dispose()
	assert.Zero(t, dev.LiveBuffers())
}

func TestMeshBuilderErrors(t *testing.T) {
	dev, rc := newContext(t, gpu.LogErrors)
	mb := xyz.NewMeshBuilder()
	assert.ErrorIs(t, mb.CreateSphere(rc, math32.Vector3{}, 1, 1), shape.ErrInvalidTessellation)
	assert.ErrorIs(t, mb.CreateSphere(rc, math32.Vector3{}, 0, 8), shape.ErrInvalidRadius)

	rc.Viewport = image.Point{}
	assert.ErrorIs(t, mb.CreateQuad(rc, math32.Vec2(1, 1), math32.Vec2(10, 10), false), shape.ErrInvalidViewport)

	dev.FailAllocations = true
	assert.ErrorIs(t, mb.CreateBox(rc, math32.Vector3{}, math32.Vec3(1, 1, 1), false), gpu.ErrResourceAllocation)
	assert.Nil(t, mb.VertexBuffer())
	assert.Zero(t, dev.LiveBuffers())

	// nothing to draw
	dev.ResetCalls()
	assert.NoError(t, mb.Render(rc))
	assert.Empty(t, dev.Calls)
}

func TestMeshBuilderMaterial(t *testing.T) {
	dev, rc := newContext(t, gpu.LogErrors)
	mb := xyz.NewMeshBuilder()
	assert.Same(t, rc.DefaultMaterial(), mb.Material(rc))

	mt := rc.DefaultMaterial().Clone()
	mt.Color = color.RGBA{255, 0, 0, 255}
	mt.State.BlendEnable = false
	mt.State.CullEnable = false
	mb.SetMaterial(mt)
	assert.Same(t, mt, mb.Material(rc))
	require.NoError(t, mb.CreateBox(rc, math32.Vector3{}, math32.Vec3(1, 1, 1), true))

	dev.ResetCalls()
	require.NoError(t, mb.Render(rc))
	assert.Equal(t, "Disable(CullFace)", dev.Calls[3])
	assert.Contains(t, dev.Calls, "Disable(Blend)")
	assert.NotContains(t, dev.CallNames(), "BlendFunc")
	prog := rc.DefaultProgram()
	assert.Equal(t, [4]float32{1, 0, 0, 1}, dev.Uniforms[prog.Handle()][prog.UniformLocation(xyz.DiffuseColorUniform)])

	def := rc.DefaultMaterial()
	assert.Equal(t, color.RGBA{128, 128, 128, 255}, def.Color)
	assert.True(t, def.State.BlendEnable)
	assert.True(t, def.State.CullEnable)

	mb.Visible = false
	dev.ResetCalls()
	assert.NoError(t, mb.Render(rc))
	assert.Empty(t, dev.Calls)
	mb.Dispose()
}

func TestRenderErrorPolicy(t *testing.T) {
	dev, rc := newContext(t, gpu.LogErrors)
	mb := xyz.NewMeshBuilder()
	require.NoError(t, mb.CreateBox(rc, math32.Vector3{}, math32.Vec3(1, 1, 1), false))
	dev.ResetCalls()
	dev.InjectError("DepthFunc", gpu.InvalidEnum)
	assert.NoError(t, mb.Render(rc))
	assert.Contains(t, dev.CallNames(), "DrawArrays")
	assert.Equal(t, "BindBuffer(ArrayBuffer, 0)", dev.Calls[len(dev.Calls)-1])
	mb.Dispose()

	dev, rc = newContext(t, gpu.FailOnError)
	require.NoError(t, mb.CreateBox(rc, math32.Vector3{}, math32.Vec3(1, 1, 1), false))
	dev.ResetCalls()
	dev.InjectError("DrawArrays", gpu.InvalidOperation)
	dev.InjectError("UseProgram", gpu.InvalidValue)
	err := mb.Render(rc)
	assert.ErrorIs(t, err, gpu.ErrGraphicsState)
	var se *gpu.StateError
	require.ErrorAs(t, err, &se)
	// the first error is returned
	assert.Equal(t, []uint32{gpu.InvalidValue}, se.Codes)
	assert.Equal(t, "BindBuffer(ArrayBuffer, 0)", dev.Calls[len(dev.Calls)-1])
	assert.Zero(t, dev.CurrentProgram())

	dev.ResetCalls()
	assert.NoError(t, mb.Render(rc))
	mb.Dispose()
}
