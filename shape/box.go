// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import "cogentcore.org/reactor/math32"

// BoxVertices is the number of vertices generated by [Box].
const BoxVertices = 36

// box corner indexes into boxCorners
const (
	topLeftFront = iota
	topLeftBack
	topRightFront
	topRightBack
	btmLeftFront
	btmLeftBack
	btmRightFront
	btmRightBack
)

var boxCorners = [8]math32.Vector3{
	topLeftFront:  {-1, 1, -1},
	topLeftBack:   {-1, 1, 1},
	topRightFront: {1, 1, -1},
	topRightBack:  {1, 1, 1},
	btmLeftFront:  {-1, -1, -1},
	btmLeftBack:   {-1, -1, 1},
	btmRightFront: {1, -1, -1},
	btmRightBack:  {1, -1, 1},
}

// box texture corner indexes into boxTex, scaled by size
const (
	texTopLeft = iota
	texTopRight
	texBtmLeft
	texBtmRight
)

var boxTex = [4]math32.Vector2{
	texTopLeft:  {1, 0},
	texTopRight: {0, 0},
	texBtmLeft:  {1, 1},
	texBtmRight: {0, 1},
}

// boxFace is one face of the box: a normal and two triangles,
// each vertex given as a (corner, texture corner) pair.
type boxFace struct {
	normal math32.Vector3
	verts  [6][2]int
}

// The left face (-X) has normal +X and the right face (+X) has
// normal -X, both pointing into the box.
var boxFaces = [6]boxFace{
	{ // front
		normal: math32.Vec3(0, 0, -1),
		verts: [6][2]int{
			{topLeftFront, texTopLeft}, {btmLeftFront, texBtmLeft}, {topRightFront, texTopRight},
			{btmLeftFront, texBtmLeft}, {btmRightFront, texBtmRight}, {topRightFront, texTopRight},
		},
	},
	{ // back
		normal: math32.Vec3(0, 0, 1),
		verts: [6][2]int{
			{topLeftBack, texTopRight}, {topRightBack, texTopLeft}, {btmLeftBack, texBtmRight},
			{btmLeftBack, texBtmRight}, {topRightBack, texTopLeft}, {btmRightBack, texBtmLeft},
		},
	},
	{ // top
		normal: math32.Vec3(0, 1, 0),
		verts: [6][2]int{
			{topLeftFront, texBtmLeft}, {topRightBack, texTopRight}, {topLeftBack, texTopLeft},
			{topLeftFront, texBtmLeft}, {topRightFront, texBtmRight}, {topRightBack, texTopRight},
		},
	},
	{ // bottom
		normal: math32.Vec3(0, -1, 0),
		verts: [6][2]int{
			{btmLeftFront, texTopLeft}, {btmLeftBack, texBtmLeft}, {btmRightBack, texBtmRight},
			{btmLeftFront, texTopLeft}, {btmRightBack, texBtmRight}, {btmRightFront, texTopRight},
		},
	},
	{ // left
		normal: math32.Vec3(1, 0, 0),
		verts: [6][2]int{
			{topLeftFront, texTopRight}, {btmLeftBack, texBtmLeft}, {btmLeftFront, texBtmRight},
			{topLeftBack, texTopLeft}, {btmLeftBack, texBtmLeft}, {topLeftFront, texTopRight},
		},
	},
	{ // right
		normal: math32.Vec3(-1, 0, 0),
		verts: [6][2]int{
			{topRightFront, texTopLeft}, {btmRightFront, texBtmLeft}, {btmRightBack, texBtmRight},
			{topRightBack, texTopRight}, {topRightFront, texTopLeft}, {btmRightBack, texBtmRight},
		},
	},
}

// Box returns the 36 vertices of a box with the given half-extent size,
// in local coordinates centered at the origin, as 12 independent
// triangles to be drawn without an index buffer.
// Normals are scaled component-wise by size, and texture coordinates
// by the X and Y of size. If flipNormals is true, every normal is negated.
func Box(size math32.Vector3, flipNormals bool) []Vertex3D {
	vtxs := make([]Vertex3D, 0, BoxVertices)
	tsz := math32.Vec2(size.X, size.Y)
	for _, fc := range boxFaces {
		norm := fc.normal.Mul(size)
		if flipNormals {
			norm = norm.Negate()
		}
		for _, cv := range fc.verts {
			vtxs = append(vtxs, Vertex3D{
				Position: boxCorners[cv[0]].Mul(size),
				Normal:   norm,
				TexCoord: boxTex[cv[1]].Mul(tsz),
			})
		}
	}
	return vtxs
}
