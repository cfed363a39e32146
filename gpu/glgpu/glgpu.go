// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package glgpu implements [gpu.Device] on OpenGL 4.1 core profile.
// All methods must be called on the thread that owns the current
// OpenGL context, after [Init].
package glgpu

import (
	"strings"

	"cogentcore.org/reactor/gpu"
	"cogentcore.org/reactor/math32"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Init loads the OpenGL function pointers for the current context.
func Init() error {
	return gl.Init()
}

// Version returns the OpenGL version string of the current context.
func Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

// Device is the OpenGL [gpu.Device].
type Device struct{}

var _ gpu.Device = (*Device)(nil)

// NewDevice returns a new OpenGL device.
func NewDevice() *Device {
	return &Device{}
}

var glShaders = [gpu.ShaderTypesN]uint32{
	gpu.VertexShader:   gl.VERTEX_SHADER,
	gpu.FragmentShader: gl.FRAGMENT_SHADER,
	gpu.GeometryShader: gl.GEOMETRY_SHADER,
	gpu.TessCtrlShader: gl.TESS_CONTROL_SHADER,
	gpu.TessEvalShader: gl.TESS_EVALUATION_SHADER,
	gpu.ComputeShader:  gl.COMPUTE_SHADER,
}

var glPrimitives = [gpu.PrimitivesN]uint32{
	gpu.Points:        gl.POINTS,
	gpu.Lines:         gl.LINES,
	gpu.LineLoop:      gl.LINE_LOOP,
	gpu.LineStrip:     gl.LINE_STRIP,
	gpu.Triangles:     gl.TRIANGLES,
	gpu.TriangleStrip: gl.TRIANGLE_STRIP,
	gpu.TriangleFan:   gl.TRIANGLE_FAN,
}

// glCapabilities has 0 for PointSprite, which is always
// on in the core profile and has no enable flag.
var glCapabilities = [gpu.CapabilitiesN]uint32{
	gpu.DepthTest:        gl.DEPTH_TEST,
	gpu.CullFace:         gl.CULL_FACE,
	gpu.Blend:            gl.BLEND,
	gpu.ProgramPointSize: gl.PROGRAM_POINT_SIZE,
}

var glDepthFuncs = [gpu.DepthFuncsN]uint32{
	gpu.Never:        gl.NEVER,
	gpu.Less:         gl.LESS,
	gpu.Equal:        gl.EQUAL,
	gpu.LessEqual:    gl.LEQUAL,
	gpu.Greater:      gl.GREATER,
	gpu.NotEqual:     gl.NOTEQUAL,
	gpu.GreaterEqual: gl.GEQUAL,
	gpu.Always:       gl.ALWAYS,
}

var glWindings = [gpu.WindingsN]uint32{
	gpu.CCW: gl.CCW,
	gpu.CW:  gl.CW,
}

var glCullModes = [gpu.CullModesN]uint32{
	gpu.CullBack:         gl.BACK,
	gpu.CullFront:        gl.FRONT,
	gpu.CullFrontAndBack: gl.FRONT_AND_BACK,
}

var glBlendFactors = [gpu.BlendFactorsN]uint32{
	gpu.BlendZero:             gl.ZERO,
	gpu.BlendOne:              gl.ONE,
	gpu.BlendSrcAlpha:         gl.SRC_ALPHA,
	gpu.BlendOneMinusSrcAlpha: gl.ONE_MINUS_SRC_ALPHA,
	gpu.BlendDstAlpha:         gl.DST_ALPHA,
	gpu.BlendOneMinusDstAlpha: gl.ONE_MINUS_DST_ALPHA,
}

var glTargets = [gpu.BufferTargetsN]uint32{
	gpu.ArrayBuffer:        gl.ARRAY_BUFFER,
	gpu.ElementArrayBuffer: gl.ELEMENT_ARRAY_BUFFER,
}

func glUsage(us gpu.BufferUsages) uint32 {
	if us == gpu.Dynamic {
		return gl.DYNAMIC_DRAW
	}
	return gl.STATIC_DRAW
}

func glIndexType(is gpu.IndexSizes) uint32 {
	if is == gpu.Index16 {
		return gl.UNSIGNED_SHORT
	}
	return gl.UNSIGNED_INT
}

// lookup returns the GL enum for an index into the given table, or
// an invalid enum for out-of-range values so that GL reports the error.
func lookup(table []uint32, i int32) uint32 {
	if i < 0 || int(i) >= len(table) {
		return 0xFFFFFFFF
	}
	return table[i]
}

func (d *Device) GenBuffer() uint32 {
	var h uint32
	gl.GenBuffers(1, &h)
	return h
}

func (d *Device) DeleteBuffer(buf uint32) {
	gl.DeleteBuffers(1, &buf)
}

func (d *Device) BindBuffer(target gpu.BufferTargets, buf uint32) {
	gl.BindBuffer(lookup(glTargets[:], int32(target)), buf)
}

func (d *Device) BufferData(target gpu.BufferTargets, data []byte, usage gpu.BufferUsages) {
	if len(data) == 0 {
		gl.BufferData(lookup(glTargets[:], int32(target)), 0, nil, glUsage(usage))
		return
	}
	gl.BufferData(lookup(glTargets[:], int32(target)), len(data), gl.Ptr(&data[0]), glUsage(usage))
}

func (d *Device) GetBufferSubData(target gpu.BufferTargets, offset int, data []byte) {
	if len(data) == 0 {
		return
	}
	gl.GetBufferSubData(lookup(glTargets[:], int32(target)), offset, len(data), gl.Ptr(&data[0]))
}

func (d *Device) GenVertexArray() uint32 {
	var h uint32
	gl.GenVertexArrays(1, &h)
	return h
}

func (d *Device) DeleteVertexArray(va uint32) {
	gl.DeleteVertexArrays(1, &va)
}

func (d *Device) BindVertexArray(va uint32) {
	gl.BindVertexArray(va)
}

func (d *Device) EnableVertexAttribArray(loc uint32) {
	gl.EnableVertexAttribArray(loc)
}

func (d *Device) DisableVertexAttribArray(loc uint32) {
	gl.DisableVertexAttribArray(loc)
}

func (d *Device) VertexAttribPointer(loc uint32, size, stride, offset int) {
	gl.VertexAttribPointerWithOffset(loc, int32(size), gl.FLOAT, false, int32(stride), uintptr(offset))
}

func (d *Device) CreateShader(typ gpu.ShaderTypes) uint32 {
	return gl.CreateShader(lookup(glShaders[:], int32(typ)))
}

func (d *Device) ShaderSource(sh uint32, src string) {
	csources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(sh, 1, csources, nil)
	free()
}

func (d *Device) CompileShader(sh uint32) {
	gl.CompileShader(sh)
}

func (d *Device) ShaderCompiled(sh uint32) bool {
	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (d *Device) ShaderInfoLog(sh uint32) string {
	var logLength int32
	gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return ""
	}
	msg := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(sh, logLength, nil, gl.Str(msg))
	return strings.TrimRight(msg, "\x00")
}

func (d *Device) IsShader(sh uint32) bool {
	return gl.IsShader(sh)
}

func (d *Device) DeleteShader(sh uint32) {
	gl.DeleteShader(sh)
}

func (d *Device) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (d *Device) AttachShader(prog, sh uint32) {
	gl.AttachShader(prog, sh)
}

func (d *Device) DetachShader(prog, sh uint32) {
	gl.DetachShader(prog, sh)
}

func (d *Device) LinkProgram(prog uint32) {
	gl.LinkProgram(prog)
}

func (d *Device) ProgramLinked(prog uint32) bool {
	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (d *Device) ProgramInfoLog(prog uint32) string {
	var logLength int32
	gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return ""
	}
	msg := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(prog, logLength, nil, gl.Str(msg))
	return strings.TrimRight(msg, "\x00")
}

func (d *Device) UseProgram(prog uint32) {
	gl.UseProgram(prog)
}

func (d *Device) DeleteProgram(prog uint32) {
	gl.DeleteProgram(prog)
}

func (d *Device) AttribLocation(prog uint32, name string) int32 {
	return gl.GetAttribLocation(prog, gl.Str(name+"\x00"))
}

func (d *Device) UniformLocation(prog uint32, name string) int32 {
	return gl.GetUniformLocation(prog, gl.Str(name+"\x00"))
}

func (d *Device) UniformMatrix4(loc int32, m *math32.Matrix4) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

func (d *Device) Uniform4(loc int32, x, y, z, w float32) {
	gl.Uniform4f(loc, x, y, z, w)
}

func (d *Device) Uniform1(loc int32, v float32) {
	gl.Uniform1f(loc, v)
}

func (d *Device) Enable(cp gpu.Capabilities) {
	if cp == gpu.PointSprite {
		return
	}
	gl.Enable(lookup(glCapabilities[:], int32(cp)))
}

func (d *Device) Disable(cp gpu.Capabilities) {
	if cp == gpu.PointSprite {
		return
	}
	gl.Disable(lookup(glCapabilities[:], int32(cp)))
}

func (d *Device) DepthMask(on bool) {
	gl.DepthMask(on)
}

func (d *Device) DepthFunc(fn gpu.DepthFuncs) {
	gl.DepthFunc(lookup(glDepthFuncs[:], int32(fn)))
}

func (d *Device) FrontFace(wn gpu.Windings) {
	gl.FrontFace(lookup(glWindings[:], int32(wn)))
}

func (d *Device) CullFace(cm gpu.CullModes) {
	gl.CullFace(lookup(glCullModes[:], int32(cm)))
}

func (d *Device) BlendFunc(src, dst gpu.BlendFactors) {
	gl.BlendFunc(lookup(glBlendFactors[:], int32(src)), lookup(glBlendFactors[:], int32(dst)))
}

func (d *Device) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (d *Device) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (d *Device) Clear(color, depth bool) {
	bits := uint32(0)
	if color {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if depth {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(bits)
}

func (d *Device) DrawArrays(mode gpu.Primitives, first, count int) {
	gl.DrawArrays(lookup(glPrimitives[:], int32(mode)), int32(first), int32(count))
}

func (d *Device) DrawElements(mode gpu.Primitives, count int, size gpu.IndexSizes, offset int) {
	gl.DrawElementsWithOffset(lookup(glPrimitives[:], int32(mode)), int32(count), glIndexType(size), uintptr(offset))
}

func (d *Device) GetError() uint32 {
	return gl.GetError()
}
