// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/reactor/gpu"
	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	st := New()
	assert.NoError(t, st.Validate())
	assert.Equal(t, image.Pt(1024, 768), st.Viewport())
	assert.Equal(t, gpu.LogErrors, st.ErrorPolicy())
	st.StrictErrors = true
	assert.Equal(t, gpu.FailOnError, st.ErrorPolicy())
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	tf := filepath.Join(dir, "reactor.toml")
	require.NoError(t, os.WriteFile(tf, []byte("title = \"Demo\"\nwidth = 640\nstrict_errors = true\n"), 0o644))
	st := New()
	require.NoError(t, st.Open(tf))
	assert.Equal(t, "Demo", st.Title)
	assert.Equal(t, 640, st.Width)
	assert.Equal(t, 768, st.Height)
	assert.True(t, st.StrictErrors)

	yf := filepath.Join(dir, "reactor.yml")
	require.NoError(t, os.WriteFile(yf, []byte("height: 480\nshader_dir: assets/shaders\nhot_reload: false\n"), 0o644))
	st = New()
	require.NoError(t, st.Open(yf))
	assert.Equal(t, 480, st.Height)
	assert.Equal(t, "assets/shaders", st.ShaderDir)
	assert.False(t, st.HotReload)
	assert.Equal(t, 16, st.Tessellation)
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()
	st := New()
	assert.ErrorIs(t, st.Open(filepath.Join(dir, "reactor.ini")), ErrFormat)
	assert.ErrorIs(t, st.Open(filepath.Join(dir, "missing.toml")), os.ErrNotExist)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("width = \n"), 0o644))
	assert.Error(t, st.Open(bad))

	neg := filepath.Join(dir, "neg.yaml")
	require.NoError(t, os.WriteFile(neg, []byte("width: -1\ntessellation: 0\n"), 0o644))
	err := New().Open(neg)
	assert.ErrorContains(t, err, "window size")
	assert.ErrorContains(t, err, "tessellation")
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	st := New()
	st.Title = "Saved"
	st.Tessellation = 4
	for _, fn := range []string{"a.toml", "a.yaml"} {
		fp := filepath.Join(dir, fn)
		require.NoError(t, st.Save(fp))
		got := &Settings{}
		require.NoError(t, got.Open(fp))
		assert.Equal(t, st, got, fn)
	}
	assert.ErrorIs(t, st.Save(filepath.Join(dir, "a.json")), ErrFormat)
}

func TestExpandPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	homedir.DisableCache = true
	defer func() { homedir.DisableCache = false }()

	require.NoError(t, os.WriteFile(filepath.Join(home, "reactor.yml"), []byte("shader_dir: ~/shaders\n"), 0o644))
	st := New()
	require.NoError(t, st.Open("~/reactor.yml"))
	assert.Equal(t, filepath.Join(home, "shaders"), st.ShaderDir)

	st.ShaderDir = "assets/shaders"
	require.NoError(t, st.ExpandPaths())
	assert.Equal(t, "assets/shaders", st.ShaderDir)
	st.ShaderDir = "~other/shaders"
	assert.Error(t, st.ExpandPaths())

	require.NoError(t, st.Save("~/saved.toml"))
	assert.FileExists(t, filepath.Join(home, "saved.toml"))
}
