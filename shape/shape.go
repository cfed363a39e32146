// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shape generates the vertex and index data for primitive shapes:
// boxes, screen-aligned quads and UV spheres. It is purely computational,
// and the resulting arrays are uploaded to the GPU by package xyz.
package shape

import (
	"bytes"
	"encoding/binary"
	"errors"

	"cogentcore.org/reactor/math32"
)

var (
	// ErrInvalidTessellation is returned for a sphere tessellation below 2.
	ErrInvalidTessellation = errors.New("shape: tessellation must be at least 2")

	// ErrInvalidRadius is returned for a sphere radius that is not a positive finite number.
	ErrInvalidRadius = errors.New("shape: radius must be positive and finite")

	// ErrInvalidViewport is returned when mapping screen coordinates into a viewport
	// with a zero dimension.
	ErrInvalidViewport = errors.New("shape: viewport must have a non-zero size")
)

// Vertex3D is a vertex of a 3D shape. Its memory layout is 14 tightly packed
// float32 values, which is the layout of [gpu.Vertex3DLayout].
type Vertex3D struct {
	Position math32.Vector3
	Normal   math32.Vector3
	Binormal math32.Vector3
	Tangent  math32.Vector3
	TexCoord math32.Vector2
}

// Vertex2D is a vertex of a screen-aligned shape. Its memory layout is 4
// tightly packed float32 values, which is the layout of [gpu.Vertex2DLayout].
type Vertex2D struct {
	Position math32.Vector2
	TexCoord math32.Vector2
}

// Encode3D returns the vertices packed in native byte order for upload.
func Encode3D(vtxs []Vertex3D) []byte {
	var buf bytes.Buffer
	buf.Grow(len(vtxs) * binary.Size(Vertex3D{}))
	binary.Write(&buf, binary.NativeEndian, vtxs)
	return buf.Bytes()
}

// Decode3D unpacks vertices from bytes in the format written by [Encode3D].
func Decode3D(b []byte) ([]Vertex3D, error) {
	vtxs := make([]Vertex3D, len(b)/binary.Size(Vertex3D{}))
	err := binary.Read(bytes.NewReader(b), binary.NativeEndian, vtxs)
	return vtxs, err
}

// Encode2D returns the vertices packed in native byte order for upload.
func Encode2D(vtxs []Vertex2D) []byte {
	var buf bytes.Buffer
	buf.Grow(len(vtxs) * binary.Size(Vertex2D{}))
	binary.Write(&buf, binary.NativeEndian, vtxs)
	return buf.Bytes()
}

// Decode2D unpacks vertices from bytes in the format written by [Encode2D].
func Decode2D(b []byte) ([]Vertex2D, error) {
	vtxs := make([]Vertex2D, len(b)/binary.Size(Vertex2D{}))
	err := binary.Read(bytes.NewReader(b), binary.NativeEndian, vtxs)
	return vtxs, err
}

// BBox returns the bounding box of the vertex positions.
func BBox(vtxs []Vertex3D) math32.Box3 {
	bb := math32.B3Empty()
	for i := range vtxs {
		bb.ExpandByPoint(vtxs[i].Position)
	}
	return bb
}
