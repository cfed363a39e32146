// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config provides the [Settings] of the reactor viewer,
// which are read from and written to TOML or YAML files.
package config

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/reactor/base/errors"
	"cogentcore.org/reactor/gpu"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrFormat is returned for a settings file whose extension
// is not one of .toml, .yaml or .yml.
var ErrFormat = errors.New("config: unsupported settings file format")

// Settings are the settings of the reactor viewer.
type Settings struct {

	// Title is the title of the window.
	Title string `toml:"title" yaml:"title"`

	// Width is the initial width of the window in pixels.
	Width int `toml:"width" yaml:"width"`

	// Height is the initial height of the window in pixels.
	Height int `toml:"height" yaml:"height"`

	// ShaderDir is the directory shader sources and their includes
	// are resolved in. It is watched for changes when HotReload is on.
	ShaderDir string `toml:"shader_dir" yaml:"shader_dir"`

	// HotReload is whether programs are rebuilt when their
	// sources in ShaderDir change.
	HotReload bool `toml:"hot_reload" yaml:"hot_reload"`

	// Tessellation is the sphere tessellation level.
	Tessellation int `toml:"tessellation" yaml:"tessellation"`

	// StrictErrors makes graphics errors fail the operation that
	// reported them instead of only being logged.
	StrictErrors bool `toml:"strict_errors" yaml:"strict_errors"`

	// Debug turns on debug logging.
	Debug bool `toml:"debug" yaml:"debug"`

	// VSync is whether buffer swaps wait for the display refresh.
	VSync bool `toml:"vsync" yaml:"vsync"`
}

// Defaults sets the default values of the settings.
func (st *Settings) Defaults() {
	st.Title = "Reactor"
	st.Width = 1024
	st.Height = 768
	st.ShaderDir = "shaders"
	st.HotReload = true
	st.Tessellation = 16
	st.VSync = true
}

// New returns new [Settings] with their default values.
func New() *Settings {
	st := &Settings{}
	st.Defaults()
	return st
}

type format int

const (
	formatTOML format = iota
	formatYAML
)

func formatOf(fname string) (format, error) {
	switch strings.ToLower(filepath.Ext(fname)) {
	case ".toml":
		return formatTOML, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrFormat, fname)
}

// Open reads the settings from the given file on top of their
// current values, so that fields missing from the file keep them.
// The format is TOML or YAML according to the file extension.
// A leading ~ in the file name and in the paths read is expanded
// to the home directory.
func (st *Settings) Open(fname string) error {
	ft, err := formatOf(fname)
	if err != nil {
		return err
	}
	fname, err = homedir.Expand(fname)
	if err != nil {
		return err
	}
	b, err := os.ReadFile(fname)
	if err != nil {
		return err
	}
	switch ft {
	case formatYAML:
		err = yaml.Unmarshal(b, st)
	default:
		err = toml.Unmarshal(b, st)
	}
	if err != nil {
		return fmt.Errorf("config: %s: %w", fname, err)
	}
	if err := st.ExpandPaths(); err != nil {
		return err
	}
	return st.Validate()
}

// ExpandPaths expands a leading ~ in the paths of the settings
// to the home directory of the user.
func (st *Settings) ExpandPaths() error {
	dir, err := homedir.Expand(st.ShaderDir)
	if err != nil {
		return fmt.Errorf("config: shader_dir: %w", err)
	}
	st.ShaderDir = dir
	return nil
}

// Save writes the settings to the given file, in TOML or YAML
// according to the file extension.
func (st *Settings) Save(fname string) error {
	ft, err := formatOf(fname)
	if err != nil {
		return err
	}
	fname, err = homedir.Expand(fname)
	if err != nil {
		return err
	}
	var b []byte
	switch ft {
	case formatYAML:
		b, err = yaml.Marshal(st)
	default:
		b, err = toml.Marshal(st)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(fname, b, 0o644)
}

// Validate returns an error if any of the settings are out of range.
func (st *Settings) Validate() error {
	var errs []error
	if st.Width <= 0 || st.Height <= 0 {
		errs = append(errs, fmt.Errorf("config: window size %dx%d must be positive", st.Width, st.Height))
	}
	if st.Tessellation < 2 {
		errs = append(errs, fmt.Errorf("config: tessellation %d must be at least 2", st.Tessellation))
	}
	return errors.Join(errs...)
}

// ErrorPolicy returns the graphics error policy of the settings.
func (st *Settings) ErrorPolicy() gpu.ErrorPolicy {
	if st.StrictErrors {
		return gpu.FailOnError
	}
	return gpu.LogErrors
}

// Viewport returns the window size as a viewport size.
func (st *Settings) Viewport() image.Point {
	return image.Pt(st.Width, st.Height)
}
