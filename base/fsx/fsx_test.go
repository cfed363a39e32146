// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fsx

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"cogentcore.org/reactor/base/errors"
	"github.com/hack-pad/hackpadfs"
	"github.com/hack-pad/hackpadfs/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemResolver(t *testing.T, files map[string]string) *FSResolver {
	t.Helper()
	mfs, err := mem.NewFS()
	require.NoError(t, err)
	for name, content := range files {
		if dir := filepath.Dir(name); dir != "." {
			require.NoError(t, hackpadfs.MkdirAll(mfs, dir, 0o755))
		}
		require.NoError(t, hackpadfs.WriteFullFile(mfs, name, []byte(content), 0o644))
	}
	return NewFSResolver(mfs)
}

func TestFSResolver(t *testing.T) {
	rs := newMemResolver(t, map[string]string{
		"shaders/common.glsl": "float common;",
	})

	p, err := rs.Path("shaders/common.glsl")
	assert.NoError(t, err)
	assert.Equal(t, "shaders/common.glsl", p)

	p, err = rs.Path("./shaders/../shaders/common.glsl")
	assert.NoError(t, err)
	assert.Equal(t, "shaders/common.glsl", p)

	b, err := rs.ReadFile("shaders/common.glsl")
	assert.NoError(t, err)
	assert.Equal(t, "float common;", string(b))

	_, err = rs.Path("shaders/missing.glsl")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = rs.ReadFile("missing.glsl")
	assert.ErrorIs(t, err, ErrNotFound)

	// directories are not files
	_, err = rs.Path("shaders")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = rs.Path("")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDirResolver(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mesh.obj"), []byte("v 0 0 0"), 0o644))

	rs := NewDirResolver(dir)
	p, err := rs.Path("mesh.obj")
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "mesh.obj"), p)

	_, err = rs.Path("other.obj")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestChainResolver(t *testing.T) {
	first := newMemResolver(t, map[string]string{"a.glsl": "first a"})
	second := newMemResolver(t, map[string]string{"a.glsl": "second a", "b.glsl": "second b"})
	cr := ChainResolver{first, second}

	b, err := cr.ReadFile("a.glsl")
	assert.NoError(t, err)
	assert.Equal(t, "first a", string(b))

	b, err = cr.ReadFile("b.glsl")
	assert.NoError(t, err)
	assert.Equal(t, "second b", string(b))

	_, err = cr.Path("c.glsl")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	names := make(chan string, 16)
	wt, err := Watch(dir, func(name string) { names <- name })
	require.NoError(t, err)
	defer wt.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "basic.frag"), []byte("void main() {}"), 0o644))
	select {
	case name := <-names:
		assert.Equal(t, "basic.frag", name)
	case <-time.After(5 * time.Second):
		t.Fatal("no watch event received")
	}
	assert.NoError(t, wt.Close())
	assert.NoError(t, wt.Close())
}
