// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"encoding/binary"
	"fmt"
)

// VertexBuffer is a buffer of vertices in device memory together
// with the vertex array object that records its attribute bindings.
type VertexBuffer struct {
	gp     *GPU
	layout *VertexLayout
	count  int
	usage  BufferUsages
	handle uint32
	vao    uint32
}

// NewVertexBuffer allocates a new vertex buffer for count vertices of
// the given layout. The buffer has no contents until [VertexBuffer.SetData].
func NewVertexBuffer(gp *GPU, layout *VertexLayout, count int, usage BufferUsages) (*VertexBuffer, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: vertex buffer count must be positive, got %d", ErrResourceAllocation, count)
	}
	dev := gp.Device
	vb := &VertexBuffer{gp: gp, layout: layout, count: count, usage: usage}
	vb.handle = dev.GenBuffer()
	vb.vao = dev.GenVertexArray()
	err := gp.ErrCheck("NewVertexBuffer")
	if vb.handle == 0 || vb.vao == 0 || err != nil {
		if vb.handle != 0 {
			dev.DeleteBuffer(vb.handle)
		}
		if vb.vao != 0 {
			dev.DeleteVertexArray(vb.vao)
		}
		return nil, fmt.Errorf("%w: vertex buffer of %d %s", ErrResourceAllocation, count, layout.Name)
	}
	gp.track(vb)
	return vb, nil
}

// Layout returns the vertex layout of the buffer.
func (vb *VertexBuffer) Layout() *VertexLayout { return vb.layout }

// Count returns the number of vertices in the buffer.
func (vb *VertexBuffer) Count() int { return vb.count }

// Usage returns the usage hint the buffer was created with.
func (vb *VertexBuffer) Usage() BufferUsages { return vb.usage }

// Handle returns the native buffer handle, which is 0 after Dispose.
func (vb *VertexBuffer) Handle() uint32 { return vb.handle }

// Size returns the size of the buffer in bytes.
func (vb *VertexBuffer) Size() int { return vb.count * vb.layout.Stride }

func (vb *VertexBuffer) valid() {
	if vb.handle == 0 {
		panic("gpu: VertexBuffer used after Dispose")
	}
}

// SetData uploads the given vertex data, which must be exactly
// [VertexBuffer.Size] bytes in the buffer's layout.
func (vb *VertexBuffer) SetData(data []byte) error {
	vb.valid()
	if len(data) != vb.Size() {
		return fmt.Errorf("%w: %d bytes for %d vertices of %d bytes", ErrDataSize, len(data), vb.count, vb.layout.Stride)
	}
	dev := vb.gp.Device
	dev.BindBuffer(ArrayBuffer, vb.handle)
	dev.BufferData(ArrayBuffer, data, vb.usage)
	dev.BindBuffer(ArrayBuffer, 0)
	if err := vb.gp.ErrCheck("VertexBuffer.SetData"); err != nil {
		return fmt.Errorf("%w: %w", ErrResourceAllocation, err)
	}
	return nil
}

// ReadData reads the contents of the buffer back from the device.
func (vb *VertexBuffer) ReadData() ([]byte, error) {
	vb.valid()
	data := make([]byte, vb.Size())
	dev := vb.gp.Device
	dev.BindBuffer(ArrayBuffer, vb.handle)
	dev.GetBufferSubData(ArrayBuffer, 0, data)
	dev.BindBuffer(ArrayBuffer, 0)
	return data, vb.gp.ErrCheck("VertexBuffer.ReadData")
}

// Bind binds the buffer as the current array buffer.
func (vb *VertexBuffer) Bind() {
	vb.valid()
	vb.gp.Device.BindBuffer(ArrayBuffer, vb.handle)
}

// Unbind unbinds the current array buffer.
func (vb *VertexBuffer) Unbind() {
	vb.gp.Device.BindBuffer(ArrayBuffer, 0)
}

// BindVertexArray binds the buffer's vertex array object.
func (vb *VertexBuffer) BindVertexArray() {
	vb.valid()
	vb.gp.Device.BindVertexArray(vb.vao)
}

// UnbindVertexArray unbinds the current vertex array object.
func (vb *VertexBuffer) UnbindVertexArray() {
	vb.gp.Device.BindVertexArray(0)
}

// Dispose deletes the buffer and its vertex array object.
func (vb *VertexBuffer) Dispose() {
	if vb.handle == 0 {
		return
	}
	dev := vb.gp.Device
	h, va := vb.handle, vb.vao
	vb.handle, vb.vao = 0, 0
	vb.gp.untrack(vb)
	disposeSafe("VertexBuffer", func() {
		dev.DeleteVertexArray(va)
		dev.DeleteBuffer(h)
	})
}

// IndexBuffer is a buffer of vertex indexes in device memory.
type IndexBuffer struct {
	gp     *GPU
	size   IndexSizes
	count  int
	usage  BufferUsages
	handle uint32
}

// NewIndexBuffer allocates a new index buffer for count indexes of
// the given size. The buffer has no contents until [IndexBuffer.SetData].
func NewIndexBuffer(gp *GPU, size IndexSizes, count int, usage BufferUsages) (*IndexBuffer, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: index buffer count must be positive, got %d", ErrResourceAllocation, count)
	}
	ib := &IndexBuffer{gp: gp, size: size, count: count, usage: usage}
	ib.handle = gp.Device.GenBuffer()
	err := gp.ErrCheck("NewIndexBuffer")
	if ib.handle == 0 || err != nil {
		if ib.handle != 0 {
			gp.Device.DeleteBuffer(ib.handle)
		}
		return nil, fmt.Errorf("%w: index buffer of %d %s", ErrResourceAllocation, count, size)
	}
	gp.track(ib)
	return ib, nil
}

// IndexSize returns the width of the indexes in the buffer.
func (ib *IndexBuffer) IndexSize() IndexSizes { return ib.size }

// Count returns the number of indexes in the buffer.
func (ib *IndexBuffer) Count() int { return ib.count }

// Handle returns the native buffer handle, which is 0 after Dispose.
func (ib *IndexBuffer) Handle() uint32 { return ib.handle }

func (ib *IndexBuffer) valid() {
	if ib.handle == 0 {
		panic("gpu: IndexBuffer used after Dispose")
	}
}

// SetData packs the indexes to the buffer's index size and uploads them.
// There must be exactly [IndexBuffer.Count] indexes, each of which must
// fit in the index size.
func (ib *IndexBuffer) SetData(idxs []uint32) error {
	ib.valid()
	if len(idxs) != ib.count {
		return fmt.Errorf("%w: %d indexes for buffer of %d", ErrDataSize, len(idxs), ib.count)
	}
	data := make([]byte, ib.count*ib.size.Bytes())
	for i, ix := range idxs {
		if ix > ib.size.MaxIndex() {
			return fmt.Errorf("%w: index %d at %d does not fit in %s", ErrDataSize, ix, i, ib.size)
		}
		if ib.size == Index16 {
			binary.NativeEndian.PutUint16(data[2*i:], uint16(ix))
		} else {
			binary.NativeEndian.PutUint32(data[4*i:], ix)
		}
	}
	dev := ib.gp.Device
	dev.BindBuffer(ElementArrayBuffer, ib.handle)
	dev.BufferData(ElementArrayBuffer, data, ib.usage)
	dev.BindBuffer(ElementArrayBuffer, 0)
	if err := ib.gp.ErrCheck("IndexBuffer.SetData"); err != nil {
		return fmt.Errorf("%w: %w", ErrResourceAllocation, err)
	}
	return nil
}

// Indexes reads the indexes back from the device.
func (ib *IndexBuffer) Indexes() ([]uint32, error) {
	ib.valid()
	data := make([]byte, ib.count*ib.size.Bytes())
	dev := ib.gp.Device
	dev.BindBuffer(ElementArrayBuffer, ib.handle)
	dev.GetBufferSubData(ElementArrayBuffer, 0, data)
	dev.BindBuffer(ElementArrayBuffer, 0)
	if err := ib.gp.ErrCheck("IndexBuffer.Indexes"); err != nil {
		return nil, err
	}
	idxs := make([]uint32, ib.count)
	for i := range idxs {
		if ib.size == Index16 {
			idxs[i] = uint32(binary.NativeEndian.Uint16(data[2*i:]))
		} else {
			idxs[i] = binary.NativeEndian.Uint32(data[4*i:])
		}
	}
	return idxs, nil
}

// Bind binds the buffer as the current element array buffer.
func (ib *IndexBuffer) Bind() {
	ib.valid()
	ib.gp.Device.BindBuffer(ElementArrayBuffer, ib.handle)
}

// Unbind unbinds the current element array buffer.
func (ib *IndexBuffer) Unbind() {
	ib.gp.Device.BindBuffer(ElementArrayBuffer, 0)
}

// Draw draws all of the indexes as the given primitives.
// The buffer must be bound.
func (ib *IndexBuffer) Draw(mode Primitives) {
	ib.valid()
	ib.gp.Device.DrawElements(mode, ib.count, ib.size, 0)
}

// Dispose deletes the buffer.
func (ib *IndexBuffer) Dispose() {
	if ib.handle == 0 {
		return
	}
	h := ib.handle
	ib.handle = 0
	ib.gp.untrack(ib)
	dev := ib.gp.Device
	disposeSafe("IndexBuffer", func() { dev.DeleteBuffer(h) })
}
