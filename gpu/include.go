// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"embed"
	"fmt"
	"slices"
	"strings"

	"cogentcore.org/reactor/base/errors"
	"cogentcore.org/reactor/base/fsx"
)

//go:embed shaders
var shadersFS embed.FS

// VersionHeader is the first line of every preprocessed shader source.
const VersionHeader = "#version 410"

// builtinIncludes are the include names that resolve to embedded
// snippets instead of files. Names are matched case-insensitively.
var builtinIncludes = []string{"headers.glsl", "lighting.glsl", "noise.glsl"}

// BuiltinInclude returns the text of the built-in include snippet
// with the given name, matched case-insensitively, and whether it exists.
func BuiltinInclude(name string) (string, bool) {
	lnm := strings.ToLower(name)
	if !slices.Contains(builtinIncludes, lnm) {
		return "", false
	}
	b, err := shadersFS.ReadFile("shaders/" + lnm)
	if errors.Log(err) != nil {
		return "", false
	}
	return string(b), true
}

// Preprocess returns the full source handed to the shader compiler:
// the [VersionHeader] line, then a "#define;" line for each define, then
// src with all #include directives resolved by [ResolveIncludes].
func Preprocess(src string, defines []string, res fsx.Resolver) (string, error) {
	body, err := ResolveIncludes(src, res)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString(VersionHeader)
	sb.WriteString("\n")
	for _, d := range defines {
		sb.WriteString("#" + d + ";\n")
	}
	sb.WriteString(body)
	return sb.String(), nil
}

// ResolveIncludes replaces each #include "file" line in the given source
// with the text of the file, recursively. Built-in names are resolved
// first (see [BuiltinInclude]), and all other names through the given
// resolver, which may be nil. Any include that cannot be resolved
// results in an [*IncludeError]. Each file is expanded only once: later
// includes of a name that was already expanded become empty lines, so
// that shared headers are declared once.
func ResolveIncludes(src string, res fsx.Resolver) (string, error) {
	return resolveIncludes(src, res, nil, map[string]bool{})
}

// includeDirective returns the file name of an #include directive line,
// whether the line is an include directive, and a syntax error if it is
// one but is malformed.
func includeDirective(ln string) (string, bool, error) {
	t := strings.TrimSpace(ln)
	rest, ok := strings.CutPrefix(t, "#include")
	if !ok {
		return "", false, nil
	}
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' && rest[0] != '"' {
		return "", false, nil // some other directive, e.g. #includes
	}
	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, `"`) {
		return "", true, ErrIncludeSyntax
	}
	qi := strings.IndexByte(rest[1:], '"')
	if qi <= 0 {
		return "", true, ErrIncludeSyntax
	}
	return rest[1 : 1+qi], true, nil
}

func resolveIncludes(src string, res fsx.Resolver, stack []string, done map[string]bool) (string, error) {
	fl := strings.Split(src, "\n")
	out := make([]string, 0, len(fl))
	for li, ln := range fl {
		fname, isInc, err := includeDirective(ln)
		if !isInc {
			out = append(out, ln)
			continue
		}
		if err != nil {
			return "", &IncludeError{Name: strings.TrimSpace(ln), Line: li + 1, Err: err}
		}
		key := strings.ToLower(fname)
		if slices.Contains(stack, key) {
			return "", &IncludeError{Name: fname, Line: li + 1, Err: ErrIncludeCycle}
		}
		if done[key] {
			out = append(out, "")
			continue
		}
		done[key] = true
		text, ok := BuiltinInclude(fname)
		if !ok {
			if res == nil {
				return "", &IncludeError{Name: fname, Line: li + 1, Err: ErrIncludeNotFound}
			}
			b, err := res.ReadFile(fname)
			if err != nil {
				if errors.Is(err, fsx.ErrNotFound) {
					err = fmt.Errorf("%w: %w", ErrIncludeNotFound, err)
				}
				return "", &IncludeError{Name: fname, Line: li + 1, Err: err}
			}
			text = string(b)
		}
		text, err = resolveIncludes(strings.TrimRight(text, "\r\n"), res, append(stack, key), done)
		if err != nil {
			return "", err
		}
		out = append(out, text)
	}
	return strings.Join(out, "\n"), nil
}
