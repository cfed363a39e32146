// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package softgpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckSource(t *testing.T) {
	tests := []struct {
		src string
		log string
	}{
		{"#version 410\nvoid main() {}", ""},
		{"\n\n#version 410\n// void main( {\nvoid main() {}", ""},
		{"void main() {}", "0:1: error: missing #version directive"},
		{"#version 410\n#include \"a.glsl\"\nvoid main() {}", "0:2: error: unresolved #include directive"},
		{"#version 410\nvoid main() }", "0:2: error: unexpected '}'"},
		{"#version 410\nvoid main() {", "0:2: error: unbalanced braces at end of source"},
		{"#version 410\nvoid main( {}", "0:2: error: unbalanced parentheses at end of source"},
		{"#version 410\nvoid mane() {}", "0:0: error: missing function main"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.log, checkSource(tt.src), tt.src)
	}
}

func TestDeclarations(t *testing.T) {
	src := `#version 410
layout(location = 0) in vec3 r_Position;
in vec3 r_Normal; // per vertex
uniform mat4 r_Bones[32];
uniform vec4 r_DiffuseColor;
out vec4 color;
// in vec2 r_Unused;
void main() {}
`
	ins, unis := declarations(src)
	assert.Equal(t, []string{"r_Position", "r_Normal"}, ins)
	assert.Equal(t, []string{"r_Bones", "r_DiffuseColor"}, unis)
}
