// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"cogentcore.org/reactor/base/fsx"
	"cogentcore.org/reactor/config"
	"cogentcore.org/reactor/gpu"
	"cogentcore.org/reactor/gpu/softgpu"
	"cogentcore.org/reactor/shape"
	"cogentcore.org/reactor/xyz"
	"github.com/hack-pad/hackpadfs"
	"github.com/hack-pad/hackpadfs/mem"
	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sceneVert = `#include "headers.glsl"

in vec3 r_Position;

void main() {
	gl_Position = r_WorldViewProjection * vec4(r_Position, 1.0);
}
`

const sceneFrag = `uniform vec4 r_DiffuseColor;

out vec4 fragColor;

void main() {
	fragColor = r_DiffuseColor;
}
`

func TestSettingsFromFlags(t *testing.T) {
	dir := t.TempDir()
	cf := filepath.Join(dir, "reactor.toml")
	require.NoError(t, os.WriteFile(cf, []byte("width = 640\nheight = 480\nshader_dir = \"glsl\"\n"), 0o644))

	opts, fs, err := parseFlags([]string{"-c", cf, "--height", "360", "--strict", "-d"})
	require.NoError(t, err)
	st, err := opts.settings(fs)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(640, 360), st.Viewport())
	assert.Equal(t, "glsl", st.ShaderDir)
	assert.True(t, st.StrictErrors)
	assert.True(t, st.Debug)
	assert.Equal(t, gpu.FailOnError, st.ErrorPolicy())

	opts, fs, err = parseFlags([]string{"--width", "0"})
	require.NoError(t, err)
	_, err = opts.settings(fs)
	assert.Error(t, err)

	_, _, err = parseFlags([]string{"--frobnicate"})
	assert.Error(t, err)

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	homedir.DisableCache = true
	defer func() { homedir.DisableCache = false }()
	require.NoError(t, os.WriteFile(filepath.Join(home, "reactor.toml"), []byte("width = 320\n"), 0o644))
	opts, fs, err = parseFlags([]string{"-c", "~/reactor.toml", "--shaders", "~/glsl"})
	require.NoError(t, err)
	st, err = opts.settings(fs)
	require.NoError(t, err)
	assert.Equal(t, 320, st.Width)
	assert.Equal(t, filepath.Join(home, "glsl"), st.ShaderDir)
}

func TestLogLevel(t *testing.T) {
	levelOf := func(args ...string) (slog.Level, bool) {
		opts, fs, err := parseFlags(args)
		require.NoError(t, err)
		st, err := opts.settings(fs)
		require.NoError(t, err)
		return opts.logLevel(st)
	}
	_, ok := levelOf()
	assert.False(t, ok)
	_, ok = levelOf("--width", "640")
	assert.False(t, ok)

	lvl, ok := levelOf("-q")
	assert.True(t, ok)
	assert.Equal(t, slog.LevelError, lvl)
	lvl, ok = levelOf("-v")
	assert.True(t, ok)
	assert.Equal(t, slog.LevelInfo, lvl)
	lvl, _ = levelOf("-d", "-q")
	assert.Equal(t, slog.LevelDebug, lvl)

	cf := filepath.Join(t.TempDir(), "reactor.yaml")
	require.NoError(t, os.WriteFile(cf, []byte("debug: true\n"), 0o644))
	lvl, ok = levelOf("-c", cf)
	assert.True(t, ok)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func newTestScene(t *testing.T) (*softgpu.Device, hackpadfs.FS, *scene) {
	t.Helper()
	mfs, err := mem.NewFS()
	require.NoError(t, err)
	dev := softgpu.NewDevice()
	rc, err := xyz.NewContext(gpu.NewGPU(dev, gpu.LogErrors), image.Pt(800, 600), fsx.NewFSResolver(mfs))
	require.NoError(t, err)
	st := config.New()
	st.Tessellation = 4
	sc, err := newScene(rc, st)
	require.NoError(t, err)
	return dev, mfs, sc
}

func TestScene(t *testing.T) {
	dev, _, sc := newTestScene(t)
	assert.Len(t, sc.items, 3)
	assert.Same(t, sc.rc.DefaultProgram(), sc.sphere.Program(sc.rc))

	dev.ResetCalls()
	require.NoError(t, sc.render())
	assert.Equal(t, []string{"ClearColor(0.1, 0.1, 0.12, 1)", "Clear(true, true)"}, dev.Calls[:2])
	assert.Contains(t, dev.Calls, "DrawArrays(Triangles, 0, 36)")
	_, nIdx := shape.SphereSize(4)
	assert.Contains(t, dev.Calls, "DrawElements(Triangles, "+strconv.Itoa(nIdx)+", Index16, 0)")
	assert.Contains(t, dev.Calls, "DrawElements(Triangles, 6, Index16, 0)")
	assert.Contains(t, dev.Calls, "Disable(DepthTest)")

	before := sc.box.Matrix()
	sc.update(0.5)
	assert.NotEqual(t, before, sc.box.Matrix())

	rc := sc.rc
	sc.dispose()
	assert.Zero(t, dev.LiveBuffers())
	rc.Dispose()
	assert.Zero(t, rc.GPU.LiveResources())
}

func TestSceneReload(t *testing.T) {
	dev, mfs, sc := newTestScene(t)
	require.NoError(t, hackpadfs.WriteFullFile(mfs, "scene.vert", []byte(sceneVert), 0o644))
	assert.NoError(t, sc.changed("scene.vert"))
	assert.Same(t, sc.rc.DefaultProgram(), sc.sphere.Program(sc.rc))

	require.NoError(t, hackpadfs.WriteFullFile(mfs, "scene.frag", []byte(sceneFrag), 0o644))
	require.NoError(t, sc.changed("scene.frag"))
	prog := sc.sphere.Program(sc.rc)
	assert.NotSame(t, sc.rc.DefaultProgram(), prog)
	assert.Equal(t, "scene", prog.Name)
	assert.Equal(t, 2, dev.LivePrograms())

	broken := strings.Replace(sceneFrag, "void main() {", "void main( {", 1)
	require.NoError(t, hackpadfs.WriteFullFile(mfs, "scene.frag", []byte(broken), 0o644))
	assert.Error(t, sc.changed("scene.frag"))
	assert.Same(t, prog, sc.sphere.Program(sc.rc))
	assert.NoError(t, sc.changed("notes.txt"))

	require.NoError(t, hackpadfs.WriteFullFile(mfs, "scene.frag", []byte(sceneFrag), 0o644))
	require.NoError(t, sc.changed("lighting.glsl"))
	assert.Zero(t, prog.Handle())
	assert.Equal(t, 2, dev.LivePrograms())

	sc.dispose()
	assert.Equal(t, 1, dev.LivePrograms())
}
