// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"image"
	"log/slog"

	"cogentcore.org/reactor/base/fsx"
	"cogentcore.org/reactor/gpu"
)

// Context is everything drawing needs from the engine: the [gpu.GPU],
// the viewport, the camera, the file resolver, and the shared default
// program and material. Shared defaults are never modified by drawing.
type Context struct {

	// GPU is the GPU that all resources are created on.
	GPU *gpu.GPU

	// Viewport is the size of the render target in pixels.
	Viewport image.Point

	// Camera supplies the view and projection matrices.
	Camera *Camera

	// Resolver resolves shader includes and mesh source files.
	// It may be nil.
	Resolver fsx.Resolver

	defaultProgram  *gpu.Program
	defaultMaterial *Material
}

// NewContext returns a new [Context] with a default camera for the
// viewport, compiling the shared default program and material.
func NewContext(gp *gpu.GPU, viewport image.Point, res fsx.Resolver) (*Context, error) {
	prog, err := gpu.NewBasicProgram(gp)
	if err != nil {
		return nil, err
	}
	prog.SetShared(true)
	rc := &Context{
		GPU:            gp,
		Viewport:       viewport,
		Camera:         NewCamera(viewport),
		Resolver:       res,
		defaultProgram: prog,
	}
	rc.defaultMaterial = NewMaterial("default", prog)
	return rc, nil
}

// DefaultProgram returns the shared default program.
func (rc *Context) DefaultProgram() *gpu.Program {
	return rc.defaultProgram
}

// DefaultMaterial returns the shared default material.
// Use [Material.Clone] to get a copy that can be edited.
func (rc *Context) DefaultMaterial() *Material {
	return rc.defaultMaterial
}

// SetViewport sets the viewport size on the context, the camera
// and the device.
func (rc *Context) SetViewport(viewport image.Point) error {
	rc.Viewport = viewport
	rc.Camera.SetViewport(viewport)
	rc.GPU.Device.Viewport(0, 0, viewport.X, viewport.Y)
	return rc.GPU.ErrCheck("Viewport")
}

// Dispose disposes the shared defaults and then releases every GPU
// resource that was not disposed.
func (rc *Context) Dispose() {
	if rc.defaultProgram != nil {
		rc.defaultProgram.Dispose()
		rc.defaultProgram = nil
	}
	if n := rc.GPU.LiveResources(); n > 0 {
		slog.Warn("xyz: context disposed with live resources", "count", n)
	}
	rc.GPU.Release()
}
