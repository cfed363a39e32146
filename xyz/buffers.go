// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"

	"cogentcore.org/reactor/gpu"
)

// buffers are the vertex buffer and optional index buffer of a drawable.
type buffers struct {
	vb *gpu.VertexBuffer
	ib *gpu.IndexBuffer
}

// newBuffers uploads count vertices of the given layout, and the
// indexes if any, using the narrowest index size for count. Indexes
// are validated before anything is allocated, and everything allocated
// is disposed if a later step fails.
func newBuffers(gp *gpu.GPU, layout *gpu.VertexLayout, data []byte, count int, idxs []uint32, usage gpu.BufferUsages) (buffers, error) {
	for i, ix := range idxs {
		if int(ix) >= count {
			return buffers{}, fmt.Errorf("%w: index %d at %d, for %d vertices", ErrIndexOutOfRange, ix, i, count)
		}
	}
	vb, err := gpu.NewVertexBuffer(gp, layout, count, usage)
	if err != nil {
		return buffers{}, err
	}
	if err := vb.SetData(data); err != nil {
		vb.Dispose()
		return buffers{}, err
	}
	if len(idxs) == 0 {
		return buffers{vb: vb}, nil
	}
	ib, err := gpu.NewIndexBuffer(gp, gpu.IndexSizeFor(count), len(idxs), usage)
	if err != nil {
		vb.Dispose()
		return buffers{}, err
	}
	if err := ib.SetData(idxs); err != nil {
		ib.Dispose()
		vb.Dispose()
		return buffers{}, err
	}
	return buffers{vb: vb, ib: ib}, nil
}

// dispose disposes the buffers, which are then nil.
func (bf *buffers) dispose() {
	if bf.ib != nil {
		bf.ib.Dispose()
		bf.ib = nil
	}
	if bf.vb != nil {
		bf.vb.Dispose()
		bf.vb = nil
	}
}
