// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fsx

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"cogentcore.org/reactor/base/errors"
)

// ErrNotFound is returned by a [Resolver] when the named file does not exist.
var ErrNotFound = errors.New("fsx: file not found")

// Resolver maps relative asset names to files.
type Resolver interface {

	// Path returns the full path of the named file, or an error
	// wrapping [ErrNotFound] if there is no such file.
	Path(name string) (string, error)

	// ReadFile returns the contents of the named file, or an error
	// wrapping [ErrNotFound] if there is no such file.
	ReadFile(name string) ([]byte, error)
}

// FSResolver is a [Resolver] over an [fs.FS], such as an embedded
// file system, an [os.DirFS], or an in-memory file system.
type FSResolver struct {

	// FS is the file system that names are resolved in.
	FS fs.FS

	// Root is the operating system path of the root of FS, prepended
	// to results from Path. It is empty for file systems that have
	// no operating system location, in which case Path returns the
	// cleaned slash-separated name.
	Root string
}

// NewFSResolver returns a new [FSResolver] for the given file system,
// which has no operating system location.
func NewFSResolver(fsys fs.FS) *FSResolver {
	return &FSResolver{FS: fsys}
}

// NewDirResolver returns a new [FSResolver] rooted at the given directory.
func NewDirResolver(dir string) *FSResolver {
	return &FSResolver{FS: os.DirFS(dir), Root: dir}
}

// NewExecutableResolver returns a new [FSResolver] rooted at the
// given subdirectory of the directory containing the running executable.
// This is where assets are installed next to the program.
func NewExecutableResolver(sub string) (*FSResolver, error) {
	dir, err := ExecutableDir()
	if err != nil {
		return nil, err
	}
	return NewDirResolver(filepath.Join(dir, sub)), nil
}

// clean converts the given name to a valid [fs.FS] path,
// accepting operating system separators and a leading "./".
func (rs *FSResolver) clean(name string) (string, error) {
	nm := path.Clean(filepath.ToSlash(name))
	nm = strings.TrimPrefix(nm, "/")
	if !fs.ValidPath(nm) || nm == "." {
		return "", fmt.Errorf("%w: invalid name %q", ErrNotFound, name)
	}
	return nm, nil
}

func (rs *FSResolver) Path(name string) (string, error) {
	nm, err := rs.clean(name)
	if err != nil {
		return "", err
	}
	ok, err := FileExistsFS(rs.FS, nm)
	if err != nil {
		return "", err
	}
	if !ok {
		slog.Debug("fsx: file not found", "name", name, "root", rs.Root)
		return "", fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if rs.Root == "" {
		return nm, nil
	}
	return filepath.Join(rs.Root, filepath.FromSlash(nm)), nil
}

func (rs *FSResolver) ReadFile(name string) ([]byte, error) {
	nm, err := rs.clean(name)
	if err != nil {
		return nil, err
	}
	b, err := fs.ReadFile(rs.FS, nm)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return b, err
}

// ChainResolver tries each of its resolvers in order,
// returning the first result that is found.
type ChainResolver []Resolver

func (cr ChainResolver) Path(name string) (string, error) {
	for _, r := range cr {
		p, err := r.Path(name)
		if err == nil || !errors.Is(err, ErrNotFound) {
			return p, err
		}
	}
	return "", fmt.Errorf("%w: %q", ErrNotFound, name)
}

func (cr ChainResolver) ReadFile(name string) ([]byte, error) {
	for _, r := range cr {
		b, err := r.ReadFile(name)
		if err == nil || !errors.Is(err, ErrNotFound) {
			return b, err
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}
