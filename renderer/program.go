package renderer

import (
	"errors"
	"fmt"
	"strings"

	"glkit/gl"
)

// Attribute is an active vertex attribute reflected at link time.
type Attribute struct {
	Location int
	Type     gl.Enum
	Size     int
}

// Program is a linked shader program with reflected uniforms, samplers,
// uniform blocks and attributes. A program that failed to compile or link is
// still a valid value; Linked reports false and draws with it are skipped.
type Program struct {
	ctx    *Context
	handle gl.Program

	// Sources for programs created from strings; shaders for programs
	// assembled from shared Shader objects.
	vsSource, fsSource string
	vs, fs             *Shader

	err        error
	uniforms   map[string]uniform
	samplers   map[string]int
	blocks     map[string]int
	attributes map[string]Attribute
}

// CreateProgram compiles and links a program from vertex and fragment
// shader sources.
func (c *Context) CreateProgram(vsSource, fsSource string) *Program {
	p := &Program{ctx: c, vsSource: vsSource, fsSource: fsSource}
	p.link()
	c.track(p)
	return p
}

// CreateProgramFromShaders links a program from already compiled shaders.
// The shaders remain owned by the caller and may be deleted once the
// program is linked; Restore then recompiles from their sources.
func (c *Context) CreateProgramFromShaders(vs, fs *Shader) *Program {
	p := &Program{ctx: c, vs: vs, fs: fs}
	p.link()
	c.track(p)
	return p
}

func (p *Program) link() {
	f := p.ctx.gl
	p.uniforms = make(map[string]uniform)
	p.samplers = make(map[string]int)
	p.blocks = make(map[string]int)
	p.attributes = make(map[string]Attribute)
	p.err = nil

	vs, vsOwned, vsErr := p.stage(p.vs, gl.VERTEX_SHADER, p.vsSource)
	fs, fsOwned, fsErr := p.stage(p.fs, gl.FRAGMENT_SHADER, p.fsSource)
	release := func() {
		if vsOwned {
			f.DeleteShader(vs)
		}
		if fsOwned {
			f.DeleteShader(fs)
		}
	}
	if err := errors.Join(vsErr, fsErr); err != nil {
		release()
		p.handle = 0
		p.err = fmt.Errorf("create program: %w", err)
		return
	}

	p.handle = f.CreateProgram()
	f.AttachShader(p.handle, vs)
	f.AttachShader(p.handle, fs)
	f.LinkProgram(p.handle)
	release()
	if f.GetProgrami(p.handle, gl.LINK_STATUS) == gl.FALSE {
		log := strings.TrimSpace(f.GetProgramInfoLog(p.handle))
		Logger().Error("program link failed",
			"log", log,
			"vertex", numberLines(p.vertexSource()),
			"fragment", numberLines(p.fragmentSource()))
		f.DeleteProgram(p.handle)
		p.handle = 0
		p.err = fmt.Errorf("link program: %s", log)
		return
	}
	p.reflect()
}

// stage returns the shader object for one stage. A shared shader is used
// as is while it is alive; once deleted, or for string programs, a
// temporary shader is compiled from the source and owned reports true.
func (p *Program) stage(shared *Shader, ty gl.Enum, source string) (s gl.Shader, owned bool, err error) {
	if shared != nil {
		if shared.handle != 0 {
			return shared.handle, false, shared.Err()
		}
		ty, source = shared.ty, shared.source
	}
	s, err = compileShader(p.ctx.gl, ty, source)
	return s, true, err
}

func (p *Program) vertexSource() string {
	if p.vs != nil {
		return p.vs.source
	}
	return p.vsSource
}

func (p *Program) fragmentSource() string {
	if p.fs != nil {
		return p.fs.source
	}
	return p.fsSource
}

// reflect builds the uniform setters, assigns texture units to samplers and
// binding indices to uniform blocks. Units and bindings are handed out in
// reflection order and stay fixed until the next link.
func (p *Program) reflect() {
	f := p.ctx.gl
	p.ctx.state.BindProgram(p)

	unit := 0
	numUniforms := f.GetProgrami(p.handle, gl.ACTIVE_UNIFORMS)
	for i := 0; i < numUniforms; i++ {
		name, size, ty := f.GetActiveUniform(p.handle, i)
		name = strings.TrimSuffix(name, "[0]")
		loc := f.GetUniformLocation(p.handle, name)
		if loc == gl.NoUniform {
			// Uniform block member.
			continue
		}
		info, ok := uniformTypes[ty]
		if !ok {
			Logger().Warn("unsupported uniform type", "name", name, "type", fmt.Sprintf("0x%X", uint32(ty)))
			continue
		}
		if info.sampler {
			if unit+size > p.ctx.caps.MaxTextureUnits {
				Logger().Warn("out of texture units", "name", name, "units", p.ctx.caps.MaxTextureUnits)
				continue
			}
			if size == 1 {
				f.Uniform1i(loc, int32(unit))
			} else {
				units := make([]int32, size)
				for j := range units {
					units[j] = int32(unit + j)
				}
				f.Uniformiv(loc, 1, units)
			}
			p.samplers[name] = unit
			unit += size
			continue
		}
		p.uniforms[name] = newUniform(f, loc, info, size)
	}

	numBlocks := f.GetProgrami(p.handle, gl.ACTIVE_UNIFORM_BLOCKS)
	for i := 0; i < numBlocks; i++ {
		name := f.GetActiveUniformBlockName(p.handle, i)
		f.UniformBlockBinding(p.handle, i, i)
		p.blocks[name] = i
	}

	numAttribs := f.GetProgrami(p.handle, gl.ACTIVE_ATTRIBUTES)
	for i := 0; i < numAttribs; i++ {
		name, size, ty := f.GetActiveAttrib(p.handle, i)
		p.attributes[name] = Attribute{
			Location: f.GetAttribLocation(p.handle, name),
			Type:     ty,
			Size:     size,
		}
	}
}

// Handle returns the GL program name.
func (p *Program) Handle() gl.Program { return p.handle }

// Linked reports whether the program compiled and linked.
func (p *Program) Linked() bool { return p.err == nil && p.handle != 0 }

// Err returns the compile or link error, if any.
func (p *Program) Err() error { return p.err }

// Uniform uploads v to the named uniform if it differs from the last value
// set. Unknown names are ignored.
func (p *Program) Uniform(name string, v any) {
	u, ok := p.uniforms[name]
	if !ok {
		return
	}
	p.ctx.state.BindProgram(p)
	if !u.set(v) {
		Logger().Debug("uniform value dropped", "name", name, "value", fmt.Sprintf("%T", v))
	}
}

// HasUniform reports whether name is an active settable uniform.
func (p *Program) HasUniform(name string) bool {
	_, ok := p.uniforms[name]
	return ok
}

// SamplerUnit returns the texture unit assigned to a sampler uniform.
func (p *Program) SamplerUnit(name string) (int, bool) {
	u, ok := p.samplers[name]
	return u, ok
}

// UniformBlockBinding returns the binding index assigned to a uniform block.
func (p *Program) UniformBlockBinding(name string) (int, bool) {
	b, ok := p.blocks[name]
	return b, ok
}

// AttributeLocation returns the location of an active attribute, or -1.
func (p *Program) AttributeLocation(name string) int {
	if a, ok := p.attributes[name]; ok {
		return a.Location
	}
	return -1
}

// Attributes returns the active attributes by name.
func (p *Program) Attributes() map[string]Attribute { return p.attributes }

// Restore relinks the program. Shared shaders are restored before programs.
func (p *Program) Restore() { p.link() }

// Delete releases the program.
func (p *Program) Delete() {
	if p.handle != 0 {
		if p.ctx.state.program == p {
			p.ctx.state.BindProgram(nil)
		}
		p.ctx.gl.DeleteProgram(p.handle)
		p.handle = 0
	}
	p.ctx.untrack(p)
}
