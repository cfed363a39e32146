// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gpu manages GPU resources on an OpenGL-style [Device]:
// vertex and index buffers, vertex layouts, shader effects with
// #include preprocessing, and linked programs. Every resource is
// tracked by the [GPU] that created it, so that anything not
// explicitly disposed is released at teardown.
package gpu

import (
	"fmt"
	"log/slog"
	"slices"
)

// maxErrorCodes bounds how many pending error codes one check drains.
const maxErrorCodes = 16

// Resource is a GPU resource that owns native handles.
type Resource interface {

	// Dispose releases the native handles. It is safe to call more than once.
	Dispose()
}

// GPU is the context for all GPU resources created on a [Device].
type GPU struct {

	// Device is the native graphics API.
	Device Device

	// Policy determines whether graphics state errors during
	// drawing are only logged or also returned.
	Policy ErrorPolicy

	// live are the resources not yet disposed, in creation order.
	live []Resource
}

// NewGPU returns a new [GPU] for the given device.
func NewGPU(dev Device, policy ErrorPolicy) *GPU {
	return &GPU{Device: dev, Policy: policy}
}

// ErrCheck drains the pending device errors, logging them with the given
// call site. It returns a [*StateError] if there were any, and nil otherwise.
func (gp *GPU) ErrCheck(site string) error {
	var codes []uint32
	for range maxErrorCodes {
		c := gp.Device.GetError()
		if c == NoError {
			break
		}
		codes = append(codes, c)
	}
	if len(codes) == 0 {
		return nil
	}
	err := &StateError{Site: site, Codes: codes}
	slog.Error(err.Error())
	return err
}

// SetEnabled enables or disables the given capability.
func (gp *GPU) SetEnabled(cp Capabilities, on bool) {
	if on {
		gp.Device.Enable(cp)
	} else {
		gp.Device.Disable(cp)
	}
}

func (gp *GPU) track(r Resource) {
	gp.live = append(gp.live, r)
}

func (gp *GPU) untrack(r Resource) {
	if i := slices.Index(gp.live, r); i >= 0 {
		gp.live = slices.Delete(gp.live, i, i+1)
	}
}

// LiveResources returns the number of resources not yet disposed.
func (gp *GPU) LiveResources() int {
	return len(gp.live)
}

// Release disposes every resource that has not been disposed yet,
// newest first, logging each one as leaked. It is the teardown
// fallback for explicit disposal, and never panics.
func (gp *GPU) Release() {
	live := slices.Clone(gp.live)
	for i := len(live) - 1; i >= 0; i-- {
		r := live[i]
		what := fmt.Sprintf("%T", r)
		slog.Warn("gpu: releasing resource that was not disposed", "resource", what)
		disposeSafe(what, r.Dispose)
	}
	gp.live = nil
}
