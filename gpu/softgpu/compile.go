// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package softgpu

import (
	"fmt"
	"strings"
)

// stripComment removes a trailing // comment from the line.
func stripComment(ln string) string {
	if ci := strings.Index(ln, "//"); ci >= 0 {
		return ln[:ci]
	}
	return ln
}

// checkSource does a structural check of shader source, returning
// a compiler style log of the first problem found, or "" if none.
func checkSource(src string) string {
	lines := strings.Split(src, "\n")
	first := ""
	for _, ln := range lines {
		if t := strings.TrimSpace(ln); t != "" {
			first = t
			break
		}
	}
	if !strings.HasPrefix(first, "#version") {
		return "0:1: error: missing #version directive"
	}
	braces, parens := 0, 0
	for li, ln := range lines {
		t := strings.TrimSpace(stripComment(ln))
		if strings.HasPrefix(t, "#include") {
			return fmt.Sprintf("0:%d: error: unresolved #include directive", li+1)
		}
		for _, r := range t {
			switch r {
			case '{':
				braces++
			case '}':
				braces--
			case '(':
				parens++
			case ')':
				parens--
			}
			if braces < 0 || parens < 0 {
				return fmt.Sprintf("0:%d: error: unexpected %q", li+1, r)
			}
		}
	}
	if braces != 0 {
		return fmt.Sprintf("0:%d: error: unbalanced braces at end of source", len(lines))
	}
	if parens != 0 {
		return fmt.Sprintf("0:%d: error: unbalanced parentheses at end of source", len(lines))
	}
	if !strings.Contains(src, "void main") {
		return "0:0: error: missing function main"
	}
	return ""
}

// declarations returns the names of the global in variables and
// uniforms declared by the source, in order.
func declarations(src string) (ins, uniforms []string) {
	for _, ln := range strings.Split(src, "\n") {
		fs := strings.Fields(stripComment(ln))
		if len(fs) > 0 && strings.HasPrefix(fs[0], "layout(") {
			for len(fs) > 0 && !strings.HasSuffix(fs[0], ")") {
				fs = fs[1:]
			}
			if len(fs) > 0 {
				fs = fs[1:]
			}
		}
		if len(fs) < 3 {
			continue
		}
		nm := strings.TrimSuffix(fs[2], ";")
		if ai := strings.IndexByte(nm, '['); ai >= 0 {
			nm = nm[:ai]
		}
		switch fs[0] {
		case "in":
			ins = append(ins, nm)
		case "uniform":
			uniforms = append(uniforms, nm)
		}
	}
	return
}
