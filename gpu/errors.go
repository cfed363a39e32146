// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"log/slog"
	"strings"

	"cogentcore.org/reactor/base/errors"
)

var (
	// ErrResourceAllocation is returned when the device fails to create
	// or fill a buffer, vertex array, shader or program object.
	ErrResourceAllocation = errors.New("gpu: resource allocation failed")

	// ErrDataSize is returned when data uploaded to a buffer does not
	// match the size the buffer was created with.
	ErrDataSize = errors.New("gpu: data size does not match buffer")

	// ErrShaderCompilationFailed is wrapped by [CompileError].
	ErrShaderCompilationFailed = errors.New("gpu: shader compilation failed")

	// ErrProgramLinkFailed is wrapped by [LinkError].
	ErrProgramLinkFailed = errors.New("gpu: program link failed")

	// ErrGraphicsState is wrapped by [StateError].
	ErrGraphicsState = errors.New("gpu: graphics state error")

	// ErrIncludeNotFound is wrapped by an [IncludeError] for an include
	// name that is neither built in nor found by the resolver.
	ErrIncludeNotFound = errors.New("include not found")

	// ErrIncludeCycle is wrapped by an [IncludeError] for an include
	// that directly or indirectly includes itself.
	ErrIncludeCycle = errors.New("include cycle")

	// ErrIncludeSyntax is wrapped by an [IncludeError] for a malformed
	// #include directive.
	ErrIncludeSyntax = errors.New(`malformed #include, expected #include "name"`)
)

// Error codes returned by [Device.GetError], matching OpenGL.
const (
	NoError                     uint32 = 0
	InvalidEnum                 uint32 = 0x0500
	InvalidValue                uint32 = 0x0501
	InvalidOperation            uint32 = 0x0502
	OutOfMemory                 uint32 = 0x0505
	InvalidFramebufferOperation uint32 = 0x0506
)

var errorCodeNames = map[uint32]string{
	InvalidEnum:                 "INVALID_ENUM",
	InvalidValue:                "INVALID_VALUE",
	InvalidOperation:            "INVALID_OPERATION",
	OutOfMemory:                 "OUT_OF_MEMORY",
	InvalidFramebufferOperation: "INVALID_FRAMEBUFFER_OPERATION",
}

// ErrorCodeName returns the name of the given error code.
func ErrorCodeName(code uint32) string {
	if nm, ok := errorCodeNames[code]; ok {
		return nm
	}
	return fmt.Sprintf("0x%04X", code)
}

// StateError is one or more errors reported by the device after
// a graphics state call.
type StateError struct {

	// Site identifies the call that was checked.
	Site string

	// Codes are the error codes reported, oldest first.
	Codes []uint32
}

func (se *StateError) Error() string {
	nms := make([]string, len(se.Codes))
	for i, c := range se.Codes {
		nms[i] = ErrorCodeName(c)
	}
	return fmt.Sprintf("gpu: graphics state error at %s: %s", se.Site, strings.Join(nms, ", "))
}

func (se *StateError) Unwrap() error { return ErrGraphicsState }

// CompileError is returned when a shader stage fails to compile.
type CompileError struct {
	Stage ShaderTypes

	// Log is the compiler diagnostic text, verbatim.
	Log string
}

func (ce *CompileError) Error() string {
	return fmt.Sprintf("gpu: %s compilation failed:\n%s", ce.Stage, ce.Log)
}

func (ce *CompileError) Unwrap() error { return ErrShaderCompilationFailed }

// LinkError is returned when a program fails to link.
type LinkError struct {
	Program string

	// Log is the linker diagnostic text, verbatim.
	Log string
}

func (le *LinkError) Error() string {
	return fmt.Sprintf("gpu: program %q link failed:\n%s", le.Program, le.Log)
}

func (le *LinkError) Unwrap() error { return ErrProgramLinkFailed }

// IncludeError is returned when an #include directive cannot be resolved.
type IncludeError struct {

	// Name is the included file name.
	Name string

	// Line is the 1-based line of the directive in the including source.
	Line int

	Err error
}

func (ie *IncludeError) Error() string {
	return fmt.Sprintf("gpu: #include %q at line %d: %v", ie.Name, ie.Line, ie.Err)
}

func (ie *IncludeError) Unwrap() error { return ie.Err }

// disposeSafe calls fn, logging instead of propagating any panic,
// so that releasing one resource never prevents releasing the rest.
func disposeSafe(what string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("gpu: error disposing resource", "resource", what, "err", r)
		}
	}()
	fn()
}
