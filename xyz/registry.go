// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"
	"maps"
	"slices"
)

// Registry maps type tags to constructors of [Drawable]s, so that
// drawables can be made from names in configuration and scene files.
type Registry struct {
	ctors map[string]func() Drawable
}

// NewRegistry returns a new empty [Registry].
func NewRegistry() *Registry {
	return &Registry{ctors: map[string]func() Drawable{}}
}

// NewStdRegistry returns a new [Registry] with the standard drawables:
// "meshbuilder" for [MeshBuilder] and "mesh" for [Mesh].
func NewStdRegistry() *Registry {
	rg := NewRegistry()
	rg.Register("meshbuilder", func() Drawable { return NewMeshBuilder() })
	rg.Register("mesh", func() Drawable { return NewMesh() })
	return rg
}

// Register registers the constructor for the given tag,
// replacing any existing one.
func (rg *Registry) Register(tag string, fn func() Drawable) {
	rg.ctors[tag] = fn
}

// New returns a new drawable of the type registered for the tag.
func (rg *Registry) New(tag string) (Drawable, error) {
	fn, ok := rg.ctors[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, tag)
	}
	return fn(), nil
}

// Tags returns the registered tags in sorted order.
func (rg *Registry) Tags() []string {
	return slices.Sorted(maps.Keys(rg.ctors))
}
