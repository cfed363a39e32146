// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command reactor opens a window and draws a small demo scene with
// the xyz engine on OpenGL, rebuilding its shaders when they change.
package main

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"runtime"
	"time"

	"cogentcore.org/reactor/base/errors"
	"cogentcore.org/reactor/base/fsx"
	"cogentcore.org/reactor/base/logx"
	"cogentcore.org/reactor/config"
	"cogentcore.org/reactor/gpu"
	"cogentcore.org/reactor/gpu/glgpu"
	"cogentcore.org/reactor/xyz"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spf13/pflag"
)

func init() {
	// must lock main thread for gpu!
	runtime.LockOSThread()
}

// options are the command line options.
type options struct {
	config    string
	width     int
	height    int
	shaderDir string
	strict    bool
	debug     bool
	verbose   bool
	quiet     bool
}

func parseFlags(args []string) (*options, *pflag.FlagSet, error) {
	opts := &options{}
	fs := pflag.NewFlagSet("reactor", pflag.ContinueOnError)
	fs.StringVarP(&opts.config, "config", "c", "", "settings file (.toml, .yaml or .yml)")
	fs.IntVar(&opts.width, "width", 0, "window width in pixels")
	fs.IntVar(&opts.height, "height", 0, "window height in pixels")
	fs.StringVar(&opts.shaderDir, "shaders", "", "directory of shader sources")
	fs.BoolVar(&opts.strict, "strict", false, "stop on the first graphics error")
	fs.BoolVarP(&opts.debug, "debug", "d", false, "show debug log messages")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "show info log messages")
	fs.BoolVarP(&opts.quiet, "quiet", "q", false, "only show error log messages")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return opts, fs, nil
}

// settings returns the settings from the config file, if any,
// with the flags that were given applied on top.
func (opts *options) settings(fs *pflag.FlagSet) (*config.Settings, error) {
	st := config.New()
	if opts.config != "" {
		if err := st.Open(opts.config); err != nil {
			return nil, err
		}
	}
	if fs.Changed("width") {
		st.Width = opts.width
	}
	if fs.Changed("height") {
		st.Height = opts.height
	}
	if fs.Changed("shaders") {
		st.ShaderDir = opts.shaderDir
	}
	if fs.Changed("strict") {
		st.StrictErrors = opts.strict
	}
	st.Debug = st.Debug || opts.debug
	if err := st.ExpandPaths(); err != nil {
		return nil, err
	}
	return st, st.Validate()
}

func main() {
	opts, fs, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	logs := logx.SetDefaultLogger()
	defer logs.Close()
	st, err := opts.settings(fs)
	if err != nil {
		slog.Error(err.Error())
		logs.Close()
		os.Exit(1)
	}
	if lvl, ok := opts.logLevel(st); ok {
		logx.UserLevel = lvl
	}
	if err := run(st); err != nil {
		slog.Error(err.Error())
		logs.Close()
		os.Exit(1)
	}
}

// logLevel returns the log level selected by the flags and settings,
// and false if none was selected, keeping the default of the build.
func (opts *options) logLevel(st *config.Settings) (slog.Level, bool) {
	if !st.Debug && !opts.debug && !opts.verbose && !opts.quiet {
		return 0, false
	}
	return logx.LevelFromFlags(st.Debug || opts.debug, opts.verbose, opts.quiet), true
}

// resolver returns the resolver for shader sources: the shader
// directory, then the shaders installed next to the executable.
func resolver(st *config.Settings) fsx.Resolver {
	cr := fsx.ChainResolver{fsx.NewDirResolver(st.ShaderDir)}
	if er, err := fsx.NewExecutableResolver("shaders"); err == nil {
		cr = append(cr, er)
	}
	return cr
}

func run(st *config.Settings) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("reactor: glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	win, err := glfw.CreateWindow(st.Width, st.Height, st.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("reactor: creating window: %w", err)
	}
	defer win.Destroy()
	win.MakeContextCurrent()
	if st.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	if err := glgpu.Init(); err != nil {
		return fmt.Errorf("reactor: opengl: %w", err)
	}
	slog.Info("reactor: opengl", "version", glgpu.Version())

	gp := gpu.NewGPU(glgpu.NewDevice(), st.ErrorPolicy())
	fw, fh := win.GetFramebufferSize()
	rc, err := xyz.NewContext(gp, image.Pt(fw, fh), resolver(st))
	if err != nil {
		return err
	}
	defer rc.Dispose()
	if err := rc.SetViewport(image.Pt(fw, fh)); err != nil && st.StrictErrors {
		return err
	}
	win.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		errors.Log(rc.SetViewport(image.Pt(width, height)))
	})
	win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	sc, err := newScene(rc, st)
	if err != nil {
		return err
	}
	defer sc.dispose()

	changes := make(chan string, 16)
	if st.HotReload {
		wt, err := fsx.Watch(st.ShaderDir, func(name string) {
			select {
			case changes <- name:
			default:
			}
		})
		if err != nil {
			slog.Warn("reactor: shader hot reload is off", "dir", st.ShaderDir, "err", err)
		} else {
			defer wt.Close()
		}
	}

	last := time.Now()
	for !win.ShouldClose() {
		glfw.PollEvents()
	drain:
		for {
			select {
			case name := <-changes:
				errors.Log(sc.changed(name))
			default:
				break drain
			}
		}
		now := time.Now()
		sc.update(float32(now.Sub(last).Seconds()))
		last = now
		if err := sc.render(); err != nil && st.StrictErrors {
			return err
		}
		win.SwapBuffers()
	}
	return nil
}
