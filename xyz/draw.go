// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"cogentcore.org/reactor/gpu"
	"cogentcore.org/reactor/math32"
)

// drawItem is one draw call of a vertex buffer with a program.
type drawItem struct {
	prog  *gpu.Program
	mat   *Material
	vb    *gpu.VertexBuffer
	ib    *gpu.IndexBuffer // nil for non-indexed
	prim  gpu.Primitives
	world *math32.Matrix4
}

// drawBuffers binds the program, material and buffers of the item,
// draws it, and unbinds everything in reverse order. The render state
// must already be applied. Every call is checked and errors are added
// to fe; drawing always runs to completion.
func drawBuffers(rc *Context, fe *firstErr, it *drawItem) {
	dev := rc.GPU.Device
	prog, vb := it.prog, it.vb

	prog.Bind()
	fe.check("Program.Bind " + prog.Name)
	fe.add(it.mat.Apply(rc, prog))

	vb.Bind()
	fe.check("VertexBuffer.Bind")
	vb.BindVertexArray()
	fe.check("VertexBuffer.BindVertexArray")
	fe.add(vb.Layout().Apply(prog))

	prog.BindSemantics(it.world, &rc.Camera.View, &rc.Camera.Projection)
	fe.check("Program.BindSemantics")

	points := it.prim == gpu.Points
	if points {
		dev.Enable(gpu.PointSprite)
		fe.check("Enable PointSprite")
		dev.Enable(gpu.ProgramPointSize)
		fe.check("Enable ProgramPointSize")
	}
	if it.ib != nil {
		it.ib.Bind()
		fe.check("IndexBuffer.Bind")
		it.ib.Draw(it.prim)
		fe.check("DrawElements")
		it.ib.Unbind()
		fe.check("IndexBuffer.Unbind")
	} else {
		dev.DrawArrays(it.prim, 0, vb.Count())
		fe.check("DrawArrays")
	}
	if points {
		dev.Disable(gpu.PointSprite)
		fe.check("Disable PointSprite")
		dev.Disable(gpu.ProgramPointSize)
		fe.check("Disable ProgramPointSize")
	}

	prog.Unbind()
	fe.check("Program.Unbind")
	vb.Layout().Disable(prog)
	fe.check("VertexLayout.Disable")
	vb.UnbindVertexArray()
	fe.check("VertexBuffer.UnbindVertexArray")
	vb.Unbind()
	fe.check("VertexBuffer.Unbind")
}
