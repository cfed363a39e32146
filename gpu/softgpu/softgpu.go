// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package softgpu provides a software [gpu.Device] that keeps all state
// in memory and records every call, for testing and headless use.
// It does not rasterize: draws are recorded and validated only.
// Shader compilation is a structural check of the source, which
// reports the vertex inputs and uniforms it declares.
package softgpu

import (
	"fmt"
	"slices"
	"strings"

	"cogentcore.org/reactor/gpu"
	"cogentcore.org/reactor/math32"
)

type shader struct {
	typ      gpu.ShaderTypes
	src      string
	compiled bool
	log      string
}

type program struct {
	attached []uint32
	linked   bool
	log      string
	attribs  map[string]int32
	uniforms map[string]int32
}

// Device is a software [gpu.Device].
type Device struct {

	// Calls is the log of every call made on the device other than
	// GetError, in order, formatted as Name(args).
	Calls []string

	// FailAllocations makes all object creation calls return 0.
	FailAllocations bool

	// Uniforms holds the last value set for each uniform location
	// of each program: a *math32.Matrix4, [4]float32 or float32.
	Uniforms map[uint32]map[int32]any

	next       uint32
	buffers    map[uint32][]byte
	vaos       map[uint32]bool
	shaders    map[uint32]*shader
	programs   map[uint32]*program
	bound      [gpu.BufferTargetsN]uint32
	boundVAO   uint32
	curProgram uint32
	caps       [gpu.CapabilitiesN]bool
	attribs    map[uint32]bool
	errs       []uint32
	inject     map[string][]uint32
}

// NewDevice returns a new empty [Device].
func NewDevice() *Device {
	return &Device{
		Uniforms: map[uint32]map[int32]any{},
		buffers:  map[uint32][]byte{},
		vaos:     map[uint32]bool{},
		shaders:  map[uint32]*shader{},
		programs: map[uint32]*program{},
		attribs:  map[uint32]bool{},
		inject:   map[string][]uint32{},
	}
}

var _ gpu.Device = (*Device)(nil)

func (d *Device) record(name string, args ...any) {
	strs := make([]string, len(args))
	for i, a := range args {
		strs[i] = fmt.Sprint(a)
	}
	d.Calls = append(d.Calls, name+"("+strings.Join(strs, ", ")+")")
	if codes, ok := d.inject[name]; ok {
		d.errs = append(d.errs, codes...)
		delete(d.inject, name)
	}
}

func (d *Device) raise(code uint32) {
	d.errs = append(d.errs, code)
}

// InjectError makes the next call of the given name, for example
// "DepthFunc", report the given error code.
func (d *Device) InjectError(call string, code uint32) {
	d.inject[call] = append(d.inject[call], code)
}

// CallNames returns the names of the recorded calls, without arguments.
func (d *Device) CallNames() []string {
	nms := make([]string, len(d.Calls))
	for i, c := range d.Calls {
		nms[i], _, _ = strings.Cut(c, "(")
	}
	return nms
}

// ResetCalls clears the call log.
func (d *Device) ResetCalls() {
	d.Calls = nil
}

// LiveBuffers returns the number of buffer objects not yet deleted.
func (d *Device) LiveBuffers() int { return len(d.buffers) }

// LiveVertexArrays returns the number of vertex array objects not yet deleted.
func (d *Device) LiveVertexArrays() int { return len(d.vaos) }

// LiveShaders returns the number of shader objects not yet deleted.
func (d *Device) LiveShaders() int { return len(d.shaders) }

// LivePrograms returns the number of program objects not yet deleted.
func (d *Device) LivePrograms() int { return len(d.programs) }

// ShaderSourceOf returns the source last given to the shader.
func (d *Device) ShaderSourceOf(sh uint32) string {
	if s, ok := d.shaders[sh]; ok {
		return s.src
	}
	return ""
}

// IsEnabled returns whether the capability is currently enabled.
func (d *Device) IsEnabled(cp gpu.Capabilities) bool {
	return d.caps[cp]
}

// CurrentProgram returns the program in use.
func (d *Device) CurrentProgram() uint32 { return d.curProgram }

// BoundBuffer returns the buffer bound to the target.
func (d *Device) BoundBuffer(target gpu.BufferTargets) uint32 { return d.bound[target] }

// BoundVertexArray returns the bound vertex array.
func (d *Device) BoundVertexArray() uint32 { return d.boundVAO }

func (d *Device) newHandle() uint32 {
	if d.FailAllocations {
		return 0
	}
	d.next++
	return d.next
}

func (d *Device) GenBuffer() uint32 {
	h := d.newHandle()
	d.record("GenBuffer")
	if h != 0 {
		d.buffers[h] = nil
	}
	return h
}

func (d *Device) DeleteBuffer(buf uint32) {
	d.record("DeleteBuffer", buf)
	delete(d.buffers, buf)
	for t, b := range d.bound {
		if b == buf {
			d.bound[t] = 0
		}
	}
}

func (d *Device) BindBuffer(target gpu.BufferTargets, buf uint32) {
	d.record("BindBuffer", target, buf)
	if _, ok := d.buffers[buf]; buf != 0 && !ok {
		d.raise(gpu.InvalidValue)
		return
	}
	d.bound[target] = buf
}

func (d *Device) BufferData(target gpu.BufferTargets, data []byte, usage gpu.BufferUsages) {
	d.record("BufferData", target, len(data), usage)
	buf := d.bound[target]
	if buf == 0 {
		d.raise(gpu.InvalidOperation)
		return
	}
	d.buffers[buf] = slices.Clone(data)
}

func (d *Device) GetBufferSubData(target gpu.BufferTargets, offset int, data []byte) {
	d.record("GetBufferSubData", target, offset, len(data))
	buf := d.bound[target]
	if buf == 0 {
		d.raise(gpu.InvalidOperation)
		return
	}
	b := d.buffers[buf]
	if offset < 0 || offset+len(data) > len(b) {
		d.raise(gpu.InvalidValue)
		return
	}
	copy(data, b[offset:])
}

func (d *Device) GenVertexArray() uint32 {
	h := d.newHandle()
	d.record("GenVertexArray")
	if h != 0 {
		d.vaos[h] = true
	}
	return h
}

func (d *Device) DeleteVertexArray(va uint32) {
	d.record("DeleteVertexArray", va)
	delete(d.vaos, va)
	if d.boundVAO == va {
		d.boundVAO = 0
	}
}

func (d *Device) BindVertexArray(va uint32) {
	d.record("BindVertexArray", va)
	if va != 0 && !d.vaos[va] {
		d.raise(gpu.InvalidOperation)
		return
	}
	d.boundVAO = va
}

func (d *Device) EnableVertexAttribArray(loc uint32) {
	d.record("EnableVertexAttribArray", loc)
	if d.boundVAO == 0 {
		d.raise(gpu.InvalidOperation)
		return
	}
	d.attribs[loc] = true
}

func (d *Device) DisableVertexAttribArray(loc uint32) {
	d.record("DisableVertexAttribArray", loc)
	delete(d.attribs, loc)
}

func (d *Device) VertexAttribPointer(loc uint32, size, stride, offset int) {
	d.record("VertexAttribPointer", loc, size, stride, offset)
	if d.boundVAO == 0 || d.bound[gpu.ArrayBuffer] == 0 {
		d.raise(gpu.InvalidOperation)
		return
	}
	if size < 1 || size > 4 || stride < 0 || offset < 0 {
		d.raise(gpu.InvalidValue)
	}
}

// EnabledAttribs returns the enabled vertex attribute locations, sorted.
func (d *Device) EnabledAttribs() []uint32 {
	locs := make([]uint32, 0, len(d.attribs))
	for l := range d.attribs {
		locs = append(locs, l)
	}
	slices.Sort(locs)
	return locs
}

func (d *Device) CreateShader(typ gpu.ShaderTypes) uint32 {
	h := d.newHandle()
	d.record("CreateShader", typ)
	if h != 0 {
		d.shaders[h] = &shader{typ: typ}
	}
	return h
}

func (d *Device) ShaderSource(sh uint32, src string) {
	d.record("ShaderSource", sh)
	s, ok := d.shaders[sh]
	if !ok {
		d.raise(gpu.InvalidValue)
		return
	}
	s.src = src
}

func (d *Device) CompileShader(sh uint32) {
	d.record("CompileShader", sh)
	s, ok := d.shaders[sh]
	if !ok {
		d.raise(gpu.InvalidValue)
		return
	}
	s.log = checkSource(s.src)
	s.compiled = s.log == ""
}

func (d *Device) ShaderCompiled(sh uint32) bool {
	s, ok := d.shaders[sh]
	return ok && s.compiled
}

func (d *Device) ShaderInfoLog(sh uint32) string {
	if s, ok := d.shaders[sh]; ok {
		return s.log
	}
	return ""
}

func (d *Device) IsShader(sh uint32) bool {
	_, ok := d.shaders[sh]
	return ok
}

func (d *Device) DeleteShader(sh uint32) {
	d.record("DeleteShader", sh)
	delete(d.shaders, sh)
}

func (d *Device) CreateProgram() uint32 {
	h := d.newHandle()
	d.record("CreateProgram")
	if h != 0 {
		d.programs[h] = &program{}
	}
	return h
}

func (d *Device) AttachShader(prog, sh uint32) {
	d.record("AttachShader", prog, sh)
	p, ok := d.programs[prog]
	if !ok || !d.IsShader(sh) {
		d.raise(gpu.InvalidValue)
		return
	}
	p.attached = append(p.attached, sh)
}

func (d *Device) DetachShader(prog, sh uint32) {
	d.record("DetachShader", prog, sh)
	if p, ok := d.programs[prog]; ok {
		if i := slices.Index(p.attached, sh); i >= 0 {
			p.attached = slices.Delete(p.attached, i, i+1)
		}
	}
}

func (d *Device) LinkProgram(prog uint32) {
	d.record("LinkProgram", prog)
	p, ok := d.programs[prog]
	if !ok {
		d.raise(gpu.InvalidValue)
		return
	}
	p.attribs = map[string]int32{}
	p.uniforms = map[string]int32{}
	p.linked = false
	stages := map[gpu.ShaderTypes]bool{}
	for _, sh := range p.attached {
		s := d.shaders[sh]
		if s == nil || !s.compiled {
			p.log = fmt.Sprintf("error: shader %d is not compiled", sh)
			return
		}
		stages[s.typ] = true
		ins, unis := declarations(s.src)
		if s.typ == gpu.VertexShader {
			for _, nm := range ins {
				if _, has := p.attribs[nm]; !has {
					p.attribs[nm] = int32(len(p.attribs))
				}
			}
		}
		for _, nm := range unis {
			if _, has := p.uniforms[nm]; !has {
				p.uniforms[nm] = int32(len(p.uniforms))
			}
		}
	}
	if !stages[gpu.ComputeShader] && (!stages[gpu.VertexShader] || !stages[gpu.FragmentShader]) {
		p.log = "error: program requires a vertex and a fragment shader"
		return
	}
	p.linked = true
	p.log = ""
}

func (d *Device) ProgramLinked(prog uint32) bool {
	p, ok := d.programs[prog]
	return ok && p.linked
}

func (d *Device) ProgramInfoLog(prog uint32) string {
	if p, ok := d.programs[prog]; ok {
		return p.log
	}
	return ""
}

func (d *Device) UseProgram(prog uint32) {
	d.record("UseProgram", prog)
	if prog != 0 {
		if p, ok := d.programs[prog]; !ok || !p.linked {
			d.raise(gpu.InvalidOperation)
			return
		}
	}
	d.curProgram = prog
}

func (d *Device) DeleteProgram(prog uint32) {
	d.record("DeleteProgram", prog)
	delete(d.programs, prog)
	delete(d.Uniforms, prog)
	if d.curProgram == prog {
		d.curProgram = 0
	}
}

func (d *Device) AttribLocation(prog uint32, name string) int32 {
	if p, ok := d.programs[prog]; ok && p.linked {
		if loc, has := p.attribs[name]; has {
			return loc
		}
	}
	return -1
}

func (d *Device) UniformLocation(prog uint32, name string) int32 {
	if p, ok := d.programs[prog]; ok && p.linked {
		if loc, has := p.uniforms[name]; has {
			return loc
		}
	}
	return -1
}

func (d *Device) setUniform(loc int32, v any) {
	if d.curProgram == 0 {
		d.raise(gpu.InvalidOperation)
		return
	}
	um := d.Uniforms[d.curProgram]
	if um == nil {
		um = map[int32]any{}
		d.Uniforms[d.curProgram] = um
	}
	um[loc] = v
}

func (d *Device) UniformMatrix4(loc int32, m *math32.Matrix4) {
	d.record("UniformMatrix4", loc)
	mc := *m
	d.setUniform(loc, &mc)
}

func (d *Device) Uniform4(loc int32, x, y, z, w float32) {
	d.record("Uniform4", loc)
	d.setUniform(loc, [4]float32{x, y, z, w})
}

func (d *Device) Uniform1(loc int32, v float32) {
	d.record("Uniform1", loc)
	d.setUniform(loc, v)
}

func (d *Device) Enable(cp gpu.Capabilities) {
	d.record("Enable", cp)
	if cp < 0 || cp >= gpu.CapabilitiesN {
		d.raise(gpu.InvalidEnum)
		return
	}
	d.caps[cp] = true
}

func (d *Device) Disable(cp gpu.Capabilities) {
	d.record("Disable", cp)
	if cp < 0 || cp >= gpu.CapabilitiesN {
		d.raise(gpu.InvalidEnum)
		return
	}
	d.caps[cp] = false
}

func (d *Device) DepthMask(on bool) { d.record("DepthMask", on) }

func (d *Device) DepthFunc(fn gpu.DepthFuncs) {
	d.record("DepthFunc", fn)
	if fn < 0 || fn >= gpu.DepthFuncsN {
		d.raise(gpu.InvalidEnum)
	}
}

func (d *Device) FrontFace(wn gpu.Windings) {
	d.record("FrontFace", wn)
	if wn < 0 || wn >= gpu.WindingsN {
		d.raise(gpu.InvalidEnum)
	}
}

func (d *Device) CullFace(cm gpu.CullModes) {
	d.record("CullFace", cm)
	if cm < 0 || cm >= gpu.CullModesN {
		d.raise(gpu.InvalidEnum)
	}
}

func (d *Device) BlendFunc(src, dst gpu.BlendFactors) { d.record("BlendFunc", src, dst) }

func (d *Device) Viewport(x, y, width, height int) {
	d.record("Viewport", x, y, width, height)
	if width < 0 || height < 0 {
		d.raise(gpu.InvalidValue)
	}
}

func (d *Device) ClearColor(r, g, b, a float32) { d.record("ClearColor", r, g, b, a) }

func (d *Device) Clear(color, depth bool) { d.record("Clear", color, depth) }

func (d *Device) DrawArrays(mode gpu.Primitives, first, count int) {
	d.record("DrawArrays", mode, first, count)
	if d.curProgram == 0 || d.boundVAO == 0 {
		d.raise(gpu.InvalidOperation)
	}
}

func (d *Device) DrawElements(mode gpu.Primitives, count int, size gpu.IndexSizes, offset int) {
	d.record("DrawElements", mode, count, size, offset)
	if d.curProgram == 0 || d.boundVAO == 0 || d.bound[gpu.ElementArrayBuffer] == 0 {
		d.raise(gpu.InvalidOperation)
		return
	}
	if offset+count*size.Bytes() > len(d.buffers[d.bound[gpu.ElementArrayBuffer]]) {
		d.raise(gpu.InvalidOperation)
	}
}

func (d *Device) GetError() uint32 {
	if len(d.errs) == 0 {
		return gpu.NoError
	}
	c := d.errs[0]
	d.errs = d.errs[1:]
	return c
}
