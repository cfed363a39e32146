// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx sets up the default [slog] logger used throughout the
// engine, with level names colored for the terminal, and provides the
// user verbosity level that gates it.
package logx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"cogentcore.org/reactor/base/errors"
	"github.com/muesli/termenv"
)

// UserLevel is the verbosity [slog.Level] that the user has selected for
// what logging messages should be shown. Messages at levels at or above
// this level will be shown. The default depends on the build tags:
// Debug with the debug tag, Error with the release tag, and Info otherwise.
var UserLevel = defaultUserLevel

// LevelFromFlags returns the [slog.Level] object corresponding to the given
// user flag options. The flags correspond to the following values:
//   - debug: [slog.LevelDebug]
//   - verbose: [slog.LevelInfo]
//   - quiet: [slog.LevelError]
//   - (default: [slog.LevelWarn])
//
// The flags are evaluated in that order, so, for example, if both
// debug and quiet are specified, it will still return [slog.LevelDebug].
func LevelFromFlags(debug, verbose, quiet bool) slog.Level {
	switch {
	case debug:
		return slog.LevelDebug
	case verbose:
		return slog.LevelInfo
	case quiet:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// userLeveler reads [UserLevel] on every record, so that
// changes to it take effect without reinstalling the logger.
type userLeveler struct{}

func (userLeveler) Level() slog.Level { return UserLevel }

// DebugLogFile is the file that debug builds (the debug tag) also
// write every log record to, regardless of [UserLevel].
var DebugLogFile = "debug.log"

// SetDefaultLogger sets the default logger to a text handler writing
// to stderr, using [NewHandler]. In debug builds all records are also
// written to [DebugLogFile]. The returned closer closes that file.
func SetDefaultLogger() io.Closer {
	var file *os.File
	if debugBuild && DebugLogFile != "" {
		f, err := os.Create(DebugLogFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "logx: debug log:", err)
		} else {
			file = f
		}
	}
	if file == nil {
		slog.SetDefault(slog.New(NewHandler(os.Stderr)))
		return io.NopCloser(nil)
	}
	slog.SetDefault(slog.New(newTeeHandler(NewHandler(os.Stderr), NewFileHandler(file))))
	return file
}

// NewFileHandler returns a new uncolored [slog.Handler] that writes
// records at every level to the given writer.
func NewFileHandler(w io.Writer) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
}

// teeHandler sends each record to all of its handlers that are
// enabled for the record level.
type teeHandler []slog.Handler

func newTeeHandler(hs ...slog.Handler) teeHandler { return teeHandler(hs) }

func (th teeHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	for _, h := range th {
		if h.Enabled(ctx, lvl) {
			return true
		}
	}
	return false
}

func (th teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range th {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (th teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := make(teeHandler, len(th))
	for i, h := range th {
		nh[i] = h.WithAttrs(attrs)
	}
	return nh
}

func (th teeHandler) WithGroup(name string) slog.Handler {
	nh := make(teeHandler, len(th))
	for i, h := range th {
		nh[i] = h.WithGroup(name)
	}
	return nh
}

// NewHandler returns a new [slog.Handler] that writes to the given
// writer, filtered by [UserLevel], with the level name colored
// according to its severity when the writer is a color terminal.
func NewHandler(w io.Writer) slog.Handler {
	out := termenv.NewOutput(w)
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: userLeveler{},
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return a
			}
			switch a.Key {
			case slog.TimeKey:
				return slog.Attr{}
			case slog.LevelKey:
				lvl, ok := a.Value.Any().(slog.Level)
				if !ok {
					return a
				}
				st := out.String(lvl.String()).Foreground(out.Color(LevelColor(lvl)))
				if lvl >= slog.LevelError {
					st = st.Bold()
				}
				a.Value = slog.StringValue(st.String())
			}
			return a
		},
	})
}

// LevelColor returns the ANSI color code used for the given level.
func LevelColor(lvl slog.Level) string {
	switch {
	case lvl >= slog.LevelError:
		return "9" // bright red
	case lvl >= slog.LevelWarn:
		return "11" // bright yellow
	case lvl >= slog.LevelInfo:
		return "12" // bright blue
	default:
		return "8" // gray
	}
}
