// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import "cogentcore.org/reactor/math32"

// Device is the native graphics API that all GPU resources are created on,
// modeled on the OpenGL 4.1 core profile. Handles are non-zero when valid;
// creation functions return 0 on failure. Errors from state calls are
// reported through GetError, and checked by [GPU.ErrCheck].
// A Device must only be used from the rendering goroutine.
type Device interface {

	// GenBuffer creates a new buffer object.
	GenBuffer() uint32

	// DeleteBuffer deletes the given buffer object.
	DeleteBuffer(buf uint32)

	// BindBuffer binds the buffer to the given target, or unbinds for buf = 0.
	BindBuffer(target BufferTargets, buf uint32)

	// BufferData allocates storage for the buffer bound to target
	// and copies data into it.
	BufferData(target BufferTargets, data []byte, usage BufferUsages)

	// GetBufferSubData copies len(data) bytes starting at offset out of
	// the buffer bound to target.
	GetBufferSubData(target BufferTargets, offset int, data []byte)

	// GenVertexArray creates a new vertex array object.
	GenVertexArray() uint32

	// DeleteVertexArray deletes the given vertex array object.
	DeleteVertexArray(va uint32)

	// BindVertexArray binds the vertex array, or unbinds for va = 0.
	BindVertexArray(va uint32)

	// EnableVertexAttribArray enables the attribute at the given location.
	EnableVertexAttribArray(loc uint32)

	// DisableVertexAttribArray disables the attribute at the given location.
	DisableVertexAttribArray(loc uint32)

	// VertexAttribPointer sets the float32 attribute at the given location
	// to read size components from the bound array buffer, at byte offset
	// within each vertex of stride bytes.
	VertexAttribPointer(loc uint32, size, stride, offset int)

	// CreateShader creates a new shader object of the given stage.
	CreateShader(typ ShaderTypes) uint32

	// ShaderSource sets the source code of the shader.
	ShaderSource(sh uint32, src string)

	// CompileShader compiles the shader's source.
	CompileShader(sh uint32)

	// ShaderCompiled returns whether the last compile succeeded.
	ShaderCompiled(sh uint32) bool

	// ShaderInfoLog returns the compiler diagnostics for the shader.
	ShaderInfoLog(sh uint32) string

	// IsShader returns whether sh names a live shader object.
	IsShader(sh uint32) bool

	// DeleteShader deletes the shader object.
	DeleteShader(sh uint32)

	// CreateProgram creates a new program object.
	CreateProgram() uint32

	// AttachShader attaches the shader to the program.
	AttachShader(prog, sh uint32)

	// DetachShader detaches the shader from the program.
	DetachShader(prog, sh uint32)

	// LinkProgram links the program's attached shaders.
	LinkProgram(prog uint32)

	// ProgramLinked returns whether the last link succeeded.
	ProgramLinked(prog uint32) bool

	// ProgramInfoLog returns the linker diagnostics for the program.
	ProgramInfoLog(prog uint32) string

	// UseProgram makes the program current, or none for prog = 0.
	UseProgram(prog uint32)

	// DeleteProgram deletes the program object.
	DeleteProgram(prog uint32)

	// AttribLocation returns the location of the named vertex attribute
	// in the linked program, or -1 if it is not an active attribute.
	AttribLocation(prog uint32, name string) int32

	// UniformLocation returns the location of the named uniform
	// in the linked program, or -1 if it is not an active uniform.
	UniformLocation(prog uint32, name string) int32

	// UniformMatrix4 sets the mat4 uniform at loc of the current program.
	UniformMatrix4(loc int32, m *math32.Matrix4)

	// Uniform4 sets the vec4 uniform at loc of the current program.
	Uniform4(loc int32, x, y, z, w float32)

	// Uniform1 sets the float uniform at loc of the current program.
	Uniform1(loc int32, v float32)

	// Enable enables the given capability.
	Enable(cp Capabilities)

	// Disable disables the given capability.
	Disable(cp Capabilities)

	// DepthMask sets whether depth values are written.
	DepthMask(on bool)

	// DepthFunc sets the depth comparison function.
	DepthFunc(fn DepthFuncs)

	// FrontFace sets the winding of front-facing triangles.
	FrontFace(wn Windings)

	// CullFace sets which faces are culled.
	CullFace(cm CullModes)

	// BlendFunc sets the source and destination blend factors.
	BlendFunc(src, dst BlendFactors)

	// Viewport sets the rendering viewport in pixels.
	Viewport(x, y, width, height int)

	// ClearColor sets the color used by Clear.
	ClearColor(r, g, b, a float32)

	// Clear clears the color and/or depth buffers.
	Clear(color, depth bool)

	// DrawArrays draws count vertices of the bound vertex array starting at first.
	DrawArrays(mode Primitives, first, count int)

	// DrawElements draws count indexes of the bound element array buffer,
	// of the given size, starting at byte offset.
	DrawElements(mode Primitives, count int, size IndexSizes, offset int)

	// GetError returns and clears the oldest pending error code,
	// or [NoError] if there is none.
	GetError() uint32
}
