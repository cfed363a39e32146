// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"path/filepath"

	"cogentcore.org/reactor/base/errors"
	"cogentcore.org/reactor/base/fsx"
	"cogentcore.org/reactor/config"
	"cogentcore.org/reactor/gpu"
	"cogentcore.org/reactor/math32"
	"cogentcore.org/reactor/shape"
	"cogentcore.org/reactor/xyz"
)

// sceneSources are the files in the shader directory that the sphere
// program is built from. The default program is used until they exist.
var sceneSources = map[string]gpu.ShaderTypes{
	"scene.vert": gpu.VertexShader,
	"scene.frag": gpu.FragmentShader,
}

// scene is the demo scene: a spinning box, a sphere drawn with the
// program in the shader directory, and a translucent overlay quad.
type scene struct {
	rc      *xyz.Context
	box     *xyz.MeshBuilder
	sphere  *xyz.Mesh
	overlay *xyz.MeshBuilder
	items   []xyz.Drawable
}

func newScene(rc *xyz.Context, st *config.Settings) (*scene, error) {
	sc := &scene{rc: rc}
	if err := sc.build(st); err != nil {
		sc.dispose()
		return nil, err
	}
	return sc, nil
}

func (sc *scene) build(st *config.Settings) error {
	rg := xyz.NewStdRegistry()
	bd, err := rg.New("meshbuilder")
	if err != nil {
		return err
	}
	sc.box = bd.(*xyz.MeshBuilder)
	sc.box.Name = "box"
	sc.items = append(sc.items, sc.box)
	if err := sc.box.CreateBox(sc.rc, math32.Vec3(-1.5, 0, 0), math32.Vec3(1, 1, 1), false); err != nil {
		return err
	}

	sd, err := rg.New("mesh")
	if err != nil {
		return err
	}
	sc.sphere = sd.(*xyz.Mesh)
	sc.sphere.Name = "sphere"
	sc.sphere.Pos.Set(1.5, 0, 0)
	sc.items = append(sc.items, sc.sphere)
	vtxs, idxs, err := shape.Sphere(1, st.Tessellation)
	if err != nil {
		return err
	}
	mt := sc.rc.DefaultMaterial().Clone()
	mt.Name = "sphere"
	mt.Color = color.RGBA{64, 128, 220, 255}
	pt, err := xyz.NewMeshPart(sc.rc, vtxs, idxs, mt)
	if err != nil {
		return err
	}
	sc.sphere.AddPart(pt)
	if err := sc.reload(); err != nil {
		slog.Warn("reactor: using the default sphere program", "err", err)
	}

	sc.overlay = xyz.NewMeshBuilder()
	sc.overlay.Name = "overlay"
	ov := sc.rc.DefaultMaterial().Clone()
	ov.Name = "overlay"
	ov.State.DepthTest = false
	ov.State.CullEnable = false
	ov.Color = color.RGBA{255, 255, 255, 96}
	sc.overlay.SetMaterial(ov)
	sc.items = append(sc.items, sc.overlay)
	return sc.overlay.CreateQuad(sc.rc, math32.Vec2(16, 16), math32.Vec2(160, 48), false)
}

// reload rebuilds the sphere program from [sceneSources]. The current
// program is kept when the sources are missing or fail to build.
func (sc *scene) reload() error {
	if sc.rc.Resolver == nil {
		return nil
	}
	srcs := map[gpu.ShaderTypes]string{}
	for fn, st := range sceneSources {
		b, err := sc.rc.Resolver.ReadFile(fn)
		if errors.Is(err, fsx.ErrNotFound) {
			slog.Debug("reactor: no scene shader", "file", fn)
			return nil
		}
		if err != nil {
			return err
		}
		srcs[st] = string(b)
	}
	prog, err := gpu.NewProgramFromSources(sc.rc.GPU, "scene", srcs, nil, sc.rc.Resolver)
	if err != nil {
		return fmt.Errorf("reactor: reloading scene program: %w", err)
	}
	sc.sphere.SetProgram(prog)
	slog.Info("reactor: loaded scene program")
	return nil
}

// changed handles a change to the named file in the shader directory.
// Any shader source or include rebuilds the scene program.
func (sc *scene) changed(name string) error {
	_, isShader := gpu.ShaderTypeFromFile(name)
	if !isShader && filepath.Ext(name) != ".glsl" {
		return nil
	}
	return sc.reload()
}

// update advances the animation by dt seconds.
func (sc *scene) update(dt float32) {
	sc.box.RotateOnAxis(0, 1, 0, 45*dt)
	sc.box.RotateOnAxis(1, 0, 0, 20*dt)
}

// render clears the frame and draws every item in order.
func (sc *scene) render() error {
	dev := sc.rc.GPU.Device
	dev.ClearColor(0.1, 0.1, 0.12, 1)
	dev.Clear(true, true)
	errs := []error{sc.rc.GPU.ErrCheck("Clear")}
	for _, it := range sc.items {
		errs = append(errs, it.Render(sc.rc))
	}
	return errors.Join(errs...)
}

func (sc *scene) dispose() {
	for _, it := range sc.items {
		it.Dispose()
	}
	sc.items = nil
}
