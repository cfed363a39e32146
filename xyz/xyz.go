// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xyz provides the drawable 3D and screen-space objects
// built on package gpu: [MeshBuilder] for generated primitive shapes,
// [Mesh] for multi-part meshes, and the [Material] and [RenderState]
// that control how they are drawn. Everything is drawn through an
// explicit [Context] that supplies the viewport, camera, shared
// default material and program, and the error policy.
package xyz

import (
	"cogentcore.org/reactor/base/errors"
	"cogentcore.org/reactor/gpu"
)

var (
	// ErrIndexOutOfRange is returned when an index refers past
	// the end of the vertices it is paired with.
	ErrIndexOutOfRange = errors.New("xyz: index out of range of vertices")

	// ErrUnknownType is returned by [Registry.New] for an
	// unregistered type tag.
	ErrUnknownType = errors.New("xyz: unknown drawable type")
)

// Drawable is an object with a [Pose] that can be drawn and disposed.
type Drawable interface {

	// AsPose returns the pose that positions the object in the world.
	AsPose() *Pose

	// Render draws the object. Graphics state errors are always logged;
	// they are only returned under [gpu.FailOnError].
	Render(rc *Context) error

	// Dispose releases all GPU resources owned by the object.
	// It is safe to call more than once.
	Dispose()
}

// firstErr keeps the first error reported during a draw.
type firstErr struct {
	gp  *gpu.GPU
	err error
}

func (fe *firstErr) add(err error) {
	if fe.err == nil {
		fe.err = err
	}
}

// check runs the error check hook for the given call site.
func (fe *firstErr) check(site string) {
	fe.add(fe.gp.ErrCheck(site))
}

// result returns the error the draw reports under the GPU's policy.
func (fe *firstErr) result() error {
	if fe.gp.Policy == gpu.FailOnError {
		return fe.err
	}
	return nil
}
