// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"image"
	"testing"

	"cogentcore.org/reactor/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBox(t *testing.T) {
	vtxs := Box(math32.Vec3(1, 1, 1), false)
	require.Len(t, vtxs, BoxVertices)

	// front face, first vertex
	assert.Equal(t, math32.Vec3(-1, 1, -1), vtxs[0].Position)
	assert.Equal(t, math32.Vec3(0, 0, -1), vtxs[0].Normal)
	assert.Equal(t, math32.Vec2(1, 0), vtxs[0].TexCoord)

	bb := BBox(vtxs)
	assert.Equal(t, math32.Vec3(-1, -1, -1), bb.Min)
	assert.Equal(t, math32.Vec3(1, 1, 1), bb.Max)

	// each face is a constant normal over 6 vertices
	for f := 0; f < 6; f++ {
		for v := 1; v < 6; v++ {
			assert.Equal(t, vtxs[f*6].Normal, vtxs[f*6+v].Normal)
		}
	}
	assert.Equal(t, math32.Vec3(1, 0, 0), vtxs[24].Normal)  // left
	assert.Equal(t, math32.Vec3(-1, 0, 0), vtxs[30].Normal) // right
}

func TestBoxScaled(t *testing.T) {
	sz := math32.Vec3(2, 3, 4)
	vtxs := Box(sz, false)
	require.Len(t, vtxs, BoxVertices)
	assert.Equal(t, math32.Vec3(-2, 3, -4), vtxs[0].Position)
	assert.Equal(t, math32.Vec3(0, 0, -4), vtxs[0].Normal)
	assert.Equal(t, math32.Vec3(0, 3, 0), vtxs[12].Normal) // top
	assert.Equal(t, math32.Vec2(2, 0), vtxs[0].TexCoord)
	assert.Equal(t, math32.Vec2(2, 3), vtxs[1].TexCoord)
}

func TestBoxFlipNormals(t *testing.T) {
	sz := math32.Vec3(0.5, 2, 1)
	vtxs := Box(sz, false)
	flip := Box(sz, true)
	require.Len(t, flip, BoxVertices)
	for i := range vtxs {
		assert.Equal(t, vtxs[i].Normal.Negate(), flip[i].Normal)
		assert.Equal(t, vtxs[i].Position, flip[i].Position)
		assert.Equal(t, vtxs[i].TexCoord, flip[i].TexCoord)
		assert.Equal(t, vtxs[i].Tangent, flip[i].Tangent)
		assert.Equal(t, vtxs[i].Binormal, flip[i].Binormal)
	}
}

func TestQuad(t *testing.T) {
	vtxs, idxs, err := Quad(math32.Vec2(0.25, 0.5), math32.Vec2(0.5, 0.25), true, image.Point{})
	require.NoError(t, err)
	require.Len(t, vtxs, 4)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, idxs)
	assert.Equal(t, math32.Vec2(0.25, 0.5), vtxs[0].Position)
	assert.Equal(t, math32.Vec2(0.75, 0.5), vtxs[1].Position)
	assert.Equal(t, math32.Vec2(0.75, 0.75), vtxs[2].Position)
	assert.Equal(t, math32.Vec2(0.25, 0.75), vtxs[3].Position)
	assert.Equal(t, math32.Vec2(0, 0), vtxs[0].TexCoord)
	assert.Equal(t, math32.Vec2(1, 0), vtxs[1].TexCoord)
	assert.Equal(t, math32.Vec2(1, 1), vtxs[2].TexCoord)
	assert.Equal(t, math32.Vec2(0, 1), vtxs[3].TexCoord)

	// the returned indexes are a copy
	idxs[0] = 9
	assert.Equal(t, uint32(0), QuadIndexes[0])
}

func TestQuadPixels(t *testing.T) {
	vp := image.Point{800, 600}
	vpf := math32.Vec2(800, 600)
	pos := math32.Vec2(100, 150)
	size := math32.Vec2(200, 300)

	px, pidx, err := Quad(pos, size, false, vp)
	require.NoError(t, err)
	nm, nidx, err := Quad(pos.Div(vpf), size.Div(vpf), true, vp)
	require.NoError(t, err)
	assert.Equal(t, nm, px)
	assert.Equal(t, nidx, pidx)
	assert.Equal(t, math32.Vec2(0.125, 0.25), px[0].Position)

	_, _, err = Quad(pos, size, false, image.Point{800, 0})
	assert.ErrorIs(t, err, ErrInvalidViewport)
}

func TestFullscreenQuad(t *testing.T) {
	vtxs, idxs, err := FullscreenQuad(image.Point{640, 480})
	require.NoError(t, err)
	assert.Len(t, idxs, 6)
	assert.Equal(t, math32.Vec2(0, 0), vtxs[0].Position)
	assert.Equal(t, math32.Vec2(640, 480), vtxs[2].Position)
}

func TestSphereCounts(t *testing.T) {
	for tess := 2; tess <= 12; tess++ {
		vtxs, idxs, err := Sphere(1, tess)
		require.NoError(t, err)
		assert.Len(t, vtxs, (tess-1)*(2*tess)+2, "tessellation %d", tess)
		assert.Len(t, idxs, 6*(2*tess)+6*(2*tess)*(tess-2), "tessellation %d", tess)
		nv, ni := SphereSize(tess)
		assert.Len(t, vtxs, nv)
		assert.Len(t, idxs, ni)
		for _, ix := range idxs {
			assert.Less(t, ix, uint32(len(vtxs)))
		}
	}
}

func TestSphereGeometry(t *testing.T) {
	radius := float32(2.5)
	vtxs, idxs, err := Sphere(radius, 4)
	require.NoError(t, err)

	assert.Equal(t, math32.Vec3(0, -radius, 0), vtxs[0].Position)
	assert.Equal(t, math32.Vec3(0, radius, 0), vtxs[len(vtxs)-1].Position)
	for _, v := range vtxs {
		assert.InDelta(t, radius, v.Position.Length(), 1e-5)
		assert.InDelta(t, 1, v.Normal.Length(), 1e-5)
	}

	// first ring vertex: j = 0, i = 0
	v := vtxs[1]
	assert.InDelta(t, 2, v.TexCoord.X, 1e-6)
	assert.InDelta(t, 1, v.TexCoord.Y, 1e-6)
	assert.Equal(t, v.Position.Cross(math32.Vec3(1, 0, 0)), v.Tangent)
	assert.Equal(t, v.Position.Cross(v.Tangent), v.Binormal)

	// bottom fan then top fan
	assert.Equal(t, []uint32{0, 2, 1}, idxs[:3])
	top := uint32(len(vtxs) - 1)
	n := len(idxs)
	assert.Equal(t, []uint32{top, top - 1 - 1, top - 1}, idxs[n-24:n-21])
}

func TestSphereDegenerate(t *testing.T) {
	_, _, err := Sphere(1, 1)
	assert.ErrorIs(t, err, ErrInvalidTessellation)
	_, _, err = Sphere(1, 0)
	assert.ErrorIs(t, err, ErrInvalidTessellation)
	_, _, err = Sphere(0, 8)
	assert.ErrorIs(t, err, ErrInvalidRadius)
	_, _, err = Sphere(-1, 8)
	assert.ErrorIs(t, err, ErrInvalidRadius)
	_, _, err = Sphere(math32.Infinity, 8)
	assert.ErrorIs(t, err, ErrInvalidRadius)
}

func TestEncode(t *testing.T) {
	vtxs := Box(math32.Vec3(1, 2, 3), true)
	b := Encode3D(vtxs)
	assert.Len(t, b, BoxVertices*14*4)
	back, err := Decode3D(b)
	require.NoError(t, err)
	assert.Equal(t, vtxs, back)

	qv, _, err := FullscreenQuad(image.Point{4, 4})
	require.NoError(t, err)
	qb := Encode2D(qv)
	assert.Len(t, qb, 4*4*4)
	qback, err := Decode2D(qb)
	require.NoError(t, err)
	assert.Equal(t, qv, qback)
}
