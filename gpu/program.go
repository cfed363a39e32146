// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"cogentcore.org/reactor/base/fsx"
	"cogentcore.org/reactor/math32"
)

// Names of the uniforms that receive the per-draw transforms.
const (
	WorldUniform               = "r_World"
	ViewUniform                = "r_View"
	ProjectionUniform          = "r_Projection"
	WorldViewProjectionUniform = "r_WorldViewProjection"
)

// Program is a linked set of shader stages.
type Program struct {
	gp *GPU

	// Name is used in log messages.
	Name string

	handle   uint32
	attribs  [VertexUsagesN]int32
	uniforms map[string]int32
	shared   bool
}

// NewProgram links the given effects into a new program. The effects
// are detached after linking and remain owned by the caller, which
// may dispose them. If linking fails, the program object is deleted
// and a [*LinkError] carrying the linker log is returned.
func NewProgram(gp *GPU, name string, effects ...*Effect) (*Program, error) {
	for i, ef := range effects {
		if ef == nil || !ef.IsValid() {
			return nil, fmt.Errorf("%w: program %q: effect %d is nil or disposed", ErrProgramLinkFailed, name, i)
		}
	}
	dev := gp.Device
	h := dev.CreateProgram()
	if err := gp.ErrCheck("CreateProgram"); h == 0 || err != nil {
		if h != 0 {
			dev.DeleteProgram(h)
		}
		return nil, fmt.Errorf("%w: program %q", ErrResourceAllocation, name)
	}
	for _, ef := range effects {
		dev.AttachShader(h, ef.handle)
	}
	err := gp.ErrCheck("AttachShader")
	dev.LinkProgram(h)
	if lerr := gp.ErrCheck("LinkProgram"); err == nil {
		err = lerr
	}
	for _, ef := range effects {
		dev.DetachShader(h, ef.handle)
	}
	gp.ErrCheck("DetachShader")
	if err != nil {
		dev.DeleteProgram(h)
		return nil, fmt.Errorf("program %q: %w", name, err)
	}
	if !dev.ProgramLinked(h) {
		log := dev.ProgramInfoLog(h)
		slog.Error("gpu: program link failed", "program", name, "log", log)
		dev.DeleteProgram(h)
		return nil, &LinkError{Program: name, Log: log}
	}
	pr := &Program{gp: gp, Name: name, handle: h, uniforms: map[string]int32{}}
	for u := range VertexUsagesN {
		pr.attribs[u] = dev.AttribLocation(h, u.AttribName())
	}
	for _, nm := range []string{WorldUniform, ViewUniform, ProjectionUniform, WorldViewProjectionUniform} {
		pr.uniforms[nm] = dev.UniformLocation(h, nm)
	}
	gp.track(pr)
	return pr, nil
}

// NewProgramFromSources compiles each of the given stage sources with the
// given defines and links them into a new program. The intermediate
// effects are disposed once linked, and on any failure.
func NewProgramFromSources(gp *GPU, name string, sources map[ShaderTypes]string, defines []string, res fsx.Resolver) (*Program, error) {
	var effects []*Effect
	defer func() {
		for _, ef := range effects {
			ef.Dispose()
		}
	}()
	for _, st := range slices.Sorted(maps.Keys(sources)) {
		ef, err := NewEffect(gp, st, sources[st], defines, res)
		if err != nil {
			return nil, fmt.Errorf("program %q: %w", name, err)
		}
		effects = append(effects, ef)
	}
	return NewProgram(gp, name, effects...)
}

// NewBasicProgram returns the built-in program used by default for
// meshes: world, view and projection transforms with a single
// directional light and a diffuse color uniform.
func NewBasicProgram(gp *GPU) (*Program, error) {
	vert, err := shadersFS.ReadFile("shaders/basic.vert")
	if err != nil {
		return nil, err
	}
	frag, err := shadersFS.ReadFile("shaders/basic.frag")
	if err != nil {
		return nil, err
	}
	return NewProgramFromSources(gp, "basic", map[ShaderTypes]string{
		VertexShader:   string(vert),
		FragmentShader: string(frag),
	}, nil, nil)
}

// SetShared marks the program as shared between many users, none of
// which own it. Owners such as meshes never dispose a shared program.
func (pr *Program) SetShared(shared bool) *Program {
	pr.shared = shared
	return pr
}

// IsShared returns whether the program is marked as shared.
func (pr *Program) IsShared() bool { return pr.shared }

// Handle returns the native program handle, which is 0 after Dispose.
func (pr *Program) Handle() uint32 { return pr.handle }

func (pr *Program) valid() {
	if pr.handle == 0 {
		panic("gpu: Program " + pr.Name + " used after Dispose")
	}
}

// AttribLocation returns the location of the vertex input for the
// given usage, or -1 if the program does not use it.
func (pr *Program) AttribLocation(usage VertexUsages) int32 {
	if usage < 0 || usage >= VertexUsagesN {
		return -1
	}
	return pr.attribs[usage]
}

// UniformLocation returns the location of the named uniform,
// or -1 if the program does not use it. Locations are cached.
func (pr *Program) UniformLocation(name string) int32 {
	if loc, ok := pr.uniforms[name]; ok {
		return loc
	}
	pr.valid()
	loc := pr.gp.Device.UniformLocation(pr.handle, name)
	pr.uniforms[name] = loc
	return loc
}

// Bind makes this the current program.
func (pr *Program) Bind() {
	pr.valid()
	pr.gp.Device.UseProgram(pr.handle)
}

// Unbind makes no program current.
func (pr *Program) Unbind() {
	pr.gp.Device.UseProgram(0)
}

// BindSemantics sets the transform uniforms of the current program
// from the given world, view and projection matrices. Uniforms the
// program does not use are skipped.
func (pr *Program) BindSemantics(world, view, projection *math32.Matrix4) {
	dev := pr.gp.Device
	if loc := pr.uniforms[WorldUniform]; loc >= 0 {
		dev.UniformMatrix4(loc, world)
	}
	if loc := pr.uniforms[ViewUniform]; loc >= 0 {
		dev.UniformMatrix4(loc, view)
	}
	if loc := pr.uniforms[ProjectionUniform]; loc >= 0 {
		dev.UniformMatrix4(loc, projection)
	}
	if loc := pr.uniforms[WorldViewProjectionUniform]; loc >= 0 {
		wvp := projection.Mul(view).Mul(world)
		dev.UniformMatrix4(loc, wvp)
	}
}

// SetVector4 sets the named vec4 uniform of the current program,
// if the program uses it.
func (pr *Program) SetVector4(name string, x, y, z, w float32) {
	if loc := pr.UniformLocation(name); loc >= 0 {
		pr.gp.Device.Uniform4(loc, x, y, z, w)
	}
}

// SetFloat sets the named float uniform of the current program,
// if the program uses it.
func (pr *Program) SetFloat(name string, v float32) {
	if loc := pr.UniformLocation(name); loc >= 0 {
		pr.gp.Device.Uniform1(loc, v)
	}
}

// Dispose deletes the program object.
func (pr *Program) Dispose() {
	if pr.handle == 0 {
		return
	}
	h := pr.handle
	pr.handle = 0
	pr.gp.untrack(pr)
	dev := pr.gp.Device
	disposeSafe("Program "+pr.Name, func() { dev.DeleteProgram(h) })
}
