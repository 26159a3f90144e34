package renderer

import (
	"fmt"
	"strings"

	"glkit/gl"
)

// Shader is a compiled shader object that can be shared between programs.
type Shader struct {
	ctx    *Context
	handle gl.Shader
	ty     gl.Enum
	source string
	err    error
}

// CreateShader compiles a VERTEX_SHADER or FRAGMENT_SHADER. A compile
// failure is logged and reported by Err; the shader is still returned.
func (c *Context) CreateShader(ty gl.Enum, source string) *Shader {
	s := &Shader{ctx: c, ty: ty, source: source}
	s.compile()
	c.track(s)
	return s
}

func (s *Shader) compile() {
	s.handle, s.err = compileShader(s.ctx.gl, s.ty, s.source)
}

// Compiled reports whether the last compile succeeded.
func (s *Shader) Compiled() bool { return s.err == nil }

// Err returns the compile error, if any.
func (s *Shader) Err() error { return s.err }

// Restore recompiles the shader.
func (s *Shader) Restore() { s.compile() }

// Delete releases the shader object.
func (s *Shader) Delete() {
	if s.handle != 0 {
		s.ctx.gl.DeleteShader(s.handle)
		s.handle = 0
	}
	s.ctx.untrack(s)
}

func compileShader(f gl.Functions, ty gl.Enum, source string) (gl.Shader, error) {
	s := f.CreateShader(ty)
	f.ShaderSource(s, source)
	f.CompileShader(s)
	if f.GetShaderi(s, gl.COMPILE_STATUS) == gl.FALSE {
		log := f.GetShaderInfoLog(s)
		Logger().Error("shader compile failed",
			"stage", stageName(ty),
			"log", strings.TrimSpace(log),
			"source", numberLines(source))
		return s, fmt.Errorf("compile %s shader: %s", stageName(ty), strings.TrimSpace(log))
	}
	return s, nil
}

func stageName(ty gl.Enum) string {
	switch ty {
	case gl.VERTEX_SHADER:
		return "vertex"
	case gl.FRAGMENT_SHADER:
		return "fragment"
	}
	return fmt.Sprintf("0x%X", uint32(ty))
}

// numberLines prefixes each line of src with its 1-based line number, to
// match the line numbers drivers put in info logs.
func numberLines(src string) string {
	lines := strings.Split(src, "\n")
	var b strings.Builder
	for i, l := range lines {
		fmt.Fprintf(&b, "%3d: %s\n", i+1, l)
	}
	return b.String()
}
