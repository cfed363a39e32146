// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const standardTol = 1.0e-5

func assertVector3(t *testing.T, want, got Vector3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, standardTol)
	assert.InDelta(t, want.Y, got.Y, standardTol)
	assert.InDelta(t, want.Z, got.Z, standardTol)
}

func TestVector3(t *testing.T) {
	x := Vec3(1, 0, 0)
	y := Vec3(0, 1, 0)
	assert.Equal(t, Vec3(0, 0, 1), x.Cross(y))
	assert.Equal(t, Vec3(-1, 0, 0), x.Negate())
	assert.Equal(t, float32(5), Vec3(3, 4, 0).Length())
	assertVector3(t, Vec3(0.6, 0.8, 0), Vec3(3, 4, 0).Normal())
	assert.True(t, Vector3{}.Normal().IsNil())
	assert.False(t, Vec3(1, Infinity, 0).IsFinite())
}

func TestMatrix4Transform(t *testing.T) {
	m := Identity4()
	p := Vec3(1, 2, 3)
	assert.Equal(t, p, p.MulMatrix4AsPoint(m))

	m.SetTransform(Vec3(10, 0, 0), NewQuatAxisAngle(Vec3(0, 1, 0), DegToRad(90)), Vec3(2, 2, 2))
	// x axis rotates to -z around y
	assertVector3(t, Vec3(10, 0, -2), Vec3(1, 0, 0).MulMatrix4AsPoint(m))

	tr := &Matrix4{}
	tr.SetTransform(Vec3(0, 5, 0), Quat{W: 1}, Vec3(1, 1, 1))
	sc := &Matrix4{}
	sc.SetTransform(Vector3{}, Quat{W: 1}, Vec3(3, 3, 3))
	// translate after scale
	assertVector3(t, Vec3(3, 8, 3), Vec3(1, 1, 1).MulMatrix4AsPoint(tr.Mul(sc)))
}

func TestLookAt(t *testing.T) {
	m := &Matrix4{}
	m.SetLookAt(Vec3(0, 0, 5), Vec3(0, 0, 0), Vec3(0, 1, 0))
	assertVector3(t, Vec3(0, 0, -5), Vector3{}.MulMatrix4AsPoint(m))
}

func TestBox3(t *testing.T) {
	b := B3Empty()
	assert.True(t, b.IsEmpty())
	b.ExpandByPoint(Vec3(-1, -2, -3))
	b.ExpandByPoint(Vec3(1, 2, 3))
	assert.False(t, b.IsEmpty())
	assert.Equal(t, Vec3(2, 4, 6), b.Size())
	assert.Equal(t, Vector3{}, b.Center())
	assert.True(t, b.ContainsPoint(Vec3(0, 1, 2)))
	assert.False(t, b.ContainsPoint(Vec3(0, 3, 0)))
}
