// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import "cogentcore.org/reactor/math32"

// Pose contains the full description of position and orientation
// of an object in the world.
type Pose struct {

	// Pos is the position of the center of the object.
	Pos math32.Vector3

	// Scale is the scale factor on each axis.
	Scale math32.Vector3

	// Quat is the rotation of the object.
	Quat math32.Quat
}

// Defaults sets defaults only if current values are nil.
func (ps *Pose) Defaults() {
	if ps.Scale.IsNil() {
		ps.Scale.Set(1, 1, 1)
	}
	if ps.Quat.IsNil() {
		ps.Quat.SetIdentity()
	}
}

// CopyFrom copies the pose information from the other pose.
func (ps *Pose) CopyFrom(op *Pose) {
	ps.Pos = op.Pos
	ps.Scale = op.Scale
	ps.Quat = op.Quat
}

// Matrix returns the world matrix for the position, rotation and scale.
func (ps *Pose) Matrix() *math32.Matrix4 {
	ps.Defaults()
	m := &math32.Matrix4{}
	m.SetTransform(ps.Pos, ps.Quat, ps.Scale)
	return m
}

// SetAxisRotation sets the rotation from the given axis and angle (degrees).
func (ps *Pose) SetAxisRotation(x, y, z, angle float32) {
	ps.Quat.SetFromAxisAngle(math32.Vec3(x, y, z), math32.DegToRad(angle))
}

// RotateOnAxis rotates around the given local axis by the given angle (degrees).
func (ps *Pose) RotateOnAxis(x, y, z, angle float32) {
	ps.Defaults()
	ps.Quat = ps.Quat.Mul(math32.NewQuatAxisAngle(math32.Vec3(x, y, z), math32.DegToRad(angle)))
}
