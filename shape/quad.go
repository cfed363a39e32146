// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"image"

	"cogentcore.org/reactor/math32"
)

// QuadIndexes are the indexes of the two triangles of every quad.
var QuadIndexes = [6]uint32{0, 1, 2, 0, 2, 3}

// Quad returns the 4 vertices and 6 indexes of a screen-aligned quad
// at the given position with the given size. If normalized is false,
// position and size are in pixels, and are divided by the viewport size
// to map them into normalized 0..1 viewport coordinates; otherwise they
// are used as is and the viewport is ignored.
// Texture coordinates are the corners of the unit square.
func Quad(pos, size math32.Vector2, normalized bool, viewport image.Point) ([]Vertex2D, []uint32, error) {
	if !normalized {
		if viewport.X == 0 || viewport.Y == 0 {
			return nil, nil, ErrInvalidViewport
		}
		vp := math32.Vec2(float32(viewport.X), float32(viewport.Y))
		pos = pos.Div(vp)
		size = size.Div(vp)
	}
	vtxs := []Vertex2D{
		{Position: pos, TexCoord: math32.Vec2(0, 0)},
		{Position: math32.Vec2(pos.X+size.X, pos.Y), TexCoord: math32.Vec2(1, 0)},
		{Position: pos.Add(size), TexCoord: math32.Vec2(1, 1)},
		{Position: math32.Vec2(pos.X, pos.Y+size.Y), TexCoord: math32.Vec2(0, 1)},
	}
	idxs := QuadIndexes
	return vtxs, idxs[:], nil
}

// FullscreenQuad returns a quad covering the whole viewport. The viewport
// size is passed through as already normalized, so the quad spans
// (0,0) to the viewport size.
func FullscreenQuad(viewport image.Point) ([]Vertex2D, []uint32, error) {
	return Quad(math32.Vector2{}, math32.Vec2(float32(viewport.X), float32(viewport.Y)), true, viewport)
}
