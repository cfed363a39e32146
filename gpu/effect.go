// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"log/slog"

	"cogentcore.org/reactor/base/fsx"
)

// Effect is a single compiled shader stage.
type Effect struct {
	gp *GPU

	// Stage is the shader stage that was compiled.
	Stage ShaderTypes

	// Source is the full preprocessed source that was compiled.
	Source string

	handle uint32
}

// NewEffect preprocesses the given source with the given defines (see
// [Preprocess]) and compiles it as a shader of the given stage. Unknown
// stages are compiled as [FragmentShader]. Include failures return an
// [*IncludeError] before anything is created on the device. If compilation
// fails, the shader object is deleted and a [*CompileError] carrying the
// compiler log is returned.
func NewEffect(gp *GPU, stage ShaderTypes, src string, defines []string, res fsx.Resolver) (*Effect, error) {
	if !stage.IsValid() {
		slog.Warn("gpu: unknown shader stage, compiling as fragment shader", "stage", stage)
		stage = FragmentShader
	}
	full, err := Preprocess(src, defines, res)
	if err != nil {
		return nil, err
	}
	dev := gp.Device
	h := dev.CreateShader(stage)
	if err := gp.ErrCheck("CreateShader"); h == 0 || err != nil {
		if h != 0 {
			dev.DeleteShader(h)
		}
		return nil, fmt.Errorf("%w: %s object", ErrResourceAllocation, stage)
	}
	dev.ShaderSource(h, full)
	if err := gp.ErrCheck("ShaderSource"); err != nil {
		dev.DeleteShader(h)
		return nil, fmt.Errorf("%s shader: %w", stage, err)
	}
	dev.CompileShader(h)
	if err := gp.ErrCheck("CompileShader"); err != nil {
		dev.DeleteShader(h)
		return nil, fmt.Errorf("%s shader: %w", stage, err)
	}
	if !dev.ShaderCompiled(h) {
		log := dev.ShaderInfoLog(h)
		slog.Error("gpu: shader compilation failed", "stage", stage, "log", log)
		if dev.IsShader(h) {
			dev.DeleteShader(h)
		}
		return nil, &CompileError{Stage: stage, Log: log}
	}
	ef := &Effect{gp: gp, Stage: stage, Source: full, handle: h}
	gp.track(ef)
	return ef, nil
}

// Handle returns the native shader handle, which is 0 after Dispose.
func (ef *Effect) Handle() uint32 { return ef.handle }

// IsValid returns whether the effect can still be linked.
func (ef *Effect) IsValid() bool { return ef.handle != 0 }

// Dispose deletes the shader object. Failures are logged, not returned.
func (ef *Effect) Dispose() {
	if ef.handle == 0 {
		return
	}
	h := ef.handle
	ef.handle = 0
	ef.gp.untrack(ef)
	dev := ef.gp.Device
	disposeSafe("Effect "+ef.Stage.String(), func() {
		if dev.IsShader(h) {
			dev.DeleteShader(h)
		}
	})
}
