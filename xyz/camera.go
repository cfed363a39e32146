// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"image"

	"cogentcore.org/reactor/math32"
)

// Camera supplies the view and projection matrices for drawing.
type Camera struct {

	// Pos is the position of the camera.
	Pos math32.Vector3

	// Target is the point the camera looks at.
	Target math32.Vector3

	// UpDir is the up direction of the camera.
	UpDir math32.Vector3

	// FOV is the vertical field of view in degrees.
	FOV float32

	// Aspect is the aspect ratio of the viewport, width / height.
	Aspect float32

	// Near is the distance of the near clipping plane.
	Near float32

	// Far is the distance of the far clipping plane.
	Far float32

	// View is the view matrix, updated by [Camera.LookAt].
	View math32.Matrix4

	// Projection is the projection matrix, updated by [Camera.SetPerspective].
	Projection math32.Matrix4
}

// NewCamera returns a new [Camera] with default settings for the given viewport.
func NewCamera(viewport image.Point) *Camera {
	cm := &Camera{}
	cm.Defaults(viewport)
	return cm
}

// Defaults looks at the origin from (0, 0, 10) with a 30 degree
// field of view for the given viewport.
func (cm *Camera) Defaults(viewport image.Point) {
	cm.LookAt(math32.Vec3(0, 0, 10), math32.Vector3{}, math32.Vec3(0, 1, 0))
	cm.SetPerspective(30, aspectOf(viewport), 0.01, 1000)
}

func aspectOf(viewport image.Point) float32 {
	if viewport.X <= 0 || viewport.Y <= 0 {
		return 1
	}
	return float32(viewport.X) / float32(viewport.Y)
}

// LookAt points the camera from pos toward target with the given up direction.
func (cm *Camera) LookAt(pos, target, up math32.Vector3) {
	cm.Pos = pos
	cm.Target = target
	cm.UpDir = up
	cm.View.SetLookAt(pos, target, up)
}

// SetPerspective sets the perspective projection.
func (cm *Camera) SetPerspective(fov, aspect, near, far float32) {
	cm.FOV = fov
	cm.Aspect = aspect
	cm.Near = near
	cm.Far = far
	cm.Projection.SetPerspective(fov, aspect, near, far)
}

// SetViewport updates the aspect ratio of the projection for the given viewport.
func (cm *Camera) SetViewport(viewport image.Point) {
	cm.SetPerspective(cm.FOV, aspectOf(viewport), cm.Near, cm.Far)
}
