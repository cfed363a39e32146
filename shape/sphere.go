// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"fmt"

	"cogentcore.org/reactor/math32"
)

// SphereSize returns the number of vertices and indexes generated by
// [Sphere] for the given tessellation, which must be at least 2.
func SphereSize(tessellation int) (nVtx, nIdx int) {
	stacks := tessellation
	slices := 2 * tessellation
	nVtx = (stacks-1)*slices + 2
	nIdx = 6*slices + 6*slices*(stacks-2)
	return
}

// Sphere returns the vertices and indexes of a UV sphere of the given radius,
// in local coordinates centered at the origin. The tessellation is the number
// of stacks (latitude bands); there are twice as many slices (longitude
// segments). Vertex 0 is the bottom pole, followed by Stacks-1 rings of
// Slices vertices from bottom to top, and then the top pole.
//
// The ring texture coordinates are (1 - (j/Slices - 1), 1 - i/(Stacks-1)),
// which puts U in (1, 2]. With repeat wrapping this samples the same
// texels as U in (0, 1].
func Sphere(radius float32, tessellation int) ([]Vertex3D, []uint32, error) {
	if tessellation < 2 {
		return nil, nil, fmt.Errorf("%w: got %d", ErrInvalidTessellation, tessellation)
	}
	if !math32.IsFinite(radius) || radius <= 0 {
		return nil, nil, fmt.Errorf("%w: got %g", ErrInvalidRadius, radius)
	}
	stacks := tessellation
	slices := 2 * tessellation
	nVtx, nIdx := SphereSize(tessellation)

	vtxs := make([]Vertex3D, 0, nVtx)
	vtxs = append(vtxs, Vertex3D{
		Position: math32.Vec3(0, -radius, 0),
		Normal:   math32.Vec3(0, -1, 0),
	})
	unitX := math32.Vec3(1, 0, 0)
	for i := 0; i < stacks-1; i++ {
		lat := float32(i+1)*math32.Pi/float32(stacks) - math32.Pi/2
		dy := math32.Sin(lat)
		dxz := math32.Cos(lat)
		for j := 0; j < slices; j++ {
			lon := float32(j) * 2 * math32.Pi / float32(slices)
			norm := math32.Vec3(math32.Cos(lon)*dxz, dy, math32.Sin(lon)*dxz)
			pos := norm.MulScalar(radius)
			tan := pos.Cross(unitX)
			vtxs = append(vtxs, Vertex3D{
				Position: pos,
				Normal:   norm.Normal(),
				Binormal: pos.Cross(tan),
				Tangent:  tan,
				TexCoord: math32.Vec2(1-(float32(j)/float32(slices)-1), 1-float32(i)/float32(stacks-1)),
			})
		}
	}
	vtxs = append(vtxs, Vertex3D{
		Position: math32.Vec3(0, radius, 0),
		Normal:   math32.Vec3(0, 1, 0),
	})

	idxs := make([]uint32, 0, nIdx)
	ring := func(i, j int) uint32 { return uint32(1 + i*slices + j) }

	// bottom fan
	for j := 0; j < slices; j++ {
		idxs = append(idxs, 0, ring(0, (j+1)%slices), ring(0, j))
	}
	// body, two triangles per cell between adjacent rings
	for i := 0; i < stacks-2; i++ {
		for j := 0; j < slices; j++ {
			nj := (j + 1) % slices
			idxs = append(idxs,
				ring(i, j), ring(i, nj), ring(i+1, j),
				ring(i, nj), ring(i+1, nj), ring(i+1, j))
		}
	}
	// top fan
	top := uint32(len(vtxs) - 1)
	for j := 0; j < slices; j++ {
		idxs = append(idxs, top, top-1-uint32((j+1)%slices), top-1-uint32(j))
	}
	return vtxs, idxs, nil
}
