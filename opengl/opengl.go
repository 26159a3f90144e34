// Package opengl implements gl.Functions on top of the go-gl OpenGL 4.1 core
// bindings.
package opengl

import (
	"fmt"
	"strings"
	"unsafe"

	gogl "github.com/go-gl/gl/v4.1-core/gl"

	"glkit/gl"
)

// Functions calls straight into the go-gl bindings. The zero value is not
// usable; construct it with New once a GL context is current.
type Functions struct {
	version string
}

var _ gl.Functions = (*Functions)(nil)

// New loads the OpenGL entry points.
// Must be called after the GLFW window context is made current.
func New() (*Functions, error) {
	if err := gogl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	return &Functions{version: gogl.GoStr(gogl.GetString(gogl.VERSION))}, nil
}

// Version returns the GL_VERSION string reported at initialisation.
func (f *Functions) Version() string { return f.version }

// ── Buffers ───────────────────────────────────────────────────────────────────

func (f *Functions) CreateBuffer() gl.Buffer {
	var id uint32
	gogl.GenBuffers(1, &id)
	return gl.Buffer(id)
}

func (f *Functions) DeleteBuffer(b gl.Buffer) {
	id := uint32(b)
	gogl.DeleteBuffers(1, &id)
}

func (f *Functions) BindBuffer(target gl.Enum, b gl.Buffer) {
	gogl.BindBuffer(uint32(target), uint32(b))
}

func (f *Functions) BindBufferBase(target gl.Enum, index int, b gl.Buffer) {
	gogl.BindBufferBase(uint32(target), uint32(index), uint32(b))
}

func (f *Functions) BufferData(target gl.Enum, size int, data []byte, usage gl.Enum) {
	if len(data) < size {
		// Allocate first so a short slice never reads past its end.
		gogl.BufferData(uint32(target), size, nil, uint32(usage))
		if len(data) > 0 {
			gogl.BufferSubData(uint32(target), 0, len(data), gogl.Ptr(data))
		}
		return
	}
	gogl.BufferData(uint32(target), size, gogl.Ptr(data), uint32(usage))
}

func (f *Functions) BufferSubData(target gl.Enum, offset int, data []byte) {
	if len(data) == 0 {
		return
	}
	gogl.BufferSubData(uint32(target), offset, len(data), gogl.Ptr(data))
}

// ── Textures ──────────────────────────────────────────────────────────────────

func (f *Functions) CreateTexture() gl.Texture {
	var id uint32
	gogl.GenTextures(1, &id)
	return gl.Texture(id)
}

func (f *Functions) DeleteTexture(t gl.Texture) {
	id := uint32(t)
	gogl.DeleteTextures(1, &id)
}

func (f *Functions) ActiveTexture(unit gl.Enum) { gogl.ActiveTexture(uint32(unit)) }

func (f *Functions) BindTexture(target gl.Enum, t gl.Texture) {
	gogl.BindTexture(uint32(target), uint32(t))
}

func (f *Functions) TexParameteri(target, pname gl.Enum, param int) {
	gogl.TexParameteri(uint32(target), uint32(pname), int32(param))
}

func (f *Functions) TexImage2D(target gl.Enum, level int, internalFormat gl.Enum, width, height int, format, ty gl.Enum, data []byte) {
	gogl.TexImage2D(uint32(target), int32(level), int32(internalFormat),
		int32(width), int32(height), 0, uint32(format), uint32(ty), bytePtr(data))
}

func (f *Functions) TexImage3D(target gl.Enum, level int, internalFormat gl.Enum, width, height, depth int, format, ty gl.Enum, data []byte) {
	gogl.TexImage3D(uint32(target), int32(level), int32(internalFormat),
		int32(width), int32(height), int32(depth), 0, uint32(format), uint32(ty), bytePtr(data))
}

func (f *Functions) TexSubImage3D(target gl.Enum, level, x, y, z, width, height, depth int, format, ty gl.Enum, data []byte) {
	gogl.TexSubImage3D(uint32(target), int32(level), int32(x), int32(y), int32(z),
		int32(width), int32(height), int32(depth), uint32(format), uint32(ty), bytePtr(data))
}

func (f *Functions) GenerateMipmap(target gl.Enum) { gogl.GenerateMipmap(uint32(target)) }

// ── Shaders and programs ──────────────────────────────────────────────────────

func (f *Functions) CreateShader(ty gl.Enum) gl.Shader {
	return gl.Shader(gogl.CreateShader(uint32(ty)))
}

func (f *Functions) DeleteShader(s gl.Shader) { gogl.DeleteShader(uint32(s)) }

func (f *Functions) ShaderSource(s gl.Shader, src string) {
	csrc, free := gogl.Strs(src + "\x00")
	gogl.ShaderSource(uint32(s), 1, csrc, nil)
	free()
}

func (f *Functions) CompileShader(s gl.Shader) { gogl.CompileShader(uint32(s)) }

func (f *Functions) GetShaderi(s gl.Shader, pname gl.Enum) int {
	var v int32
	gogl.GetShaderiv(uint32(s), uint32(pname), &v)
	return int(v)
}

func (f *Functions) GetShaderInfoLog(s gl.Shader) string {
	var logLen int32
	gogl.GetShaderiv(uint32(s), gogl.INFO_LOG_LENGTH, &logLen)
	if logLen == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLen+1))
	gogl.GetShaderInfoLog(uint32(s), logLen, nil, gogl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (f *Functions) CreateProgram() gl.Program { return gl.Program(gogl.CreateProgram()) }

func (f *Functions) DeleteProgram(p gl.Program) { gogl.DeleteProgram(uint32(p)) }

func (f *Functions) AttachShader(p gl.Program, s gl.Shader) {
	gogl.AttachShader(uint32(p), uint32(s))
}

func (f *Functions) LinkProgram(p gl.Program) { gogl.LinkProgram(uint32(p)) }

func (f *Functions) GetProgrami(p gl.Program, pname gl.Enum) int {
	var v int32
	gogl.GetProgramiv(uint32(p), uint32(pname), &v)
	return int(v)
}

func (f *Functions) GetProgramInfoLog(p gl.Program) string {
	var logLen int32
	gogl.GetProgramiv(uint32(p), gogl.INFO_LOG_LENGTH, &logLen)
	if logLen == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLen+1))
	gogl.GetProgramInfoLog(uint32(p), logLen, nil, gogl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (f *Functions) UseProgram(p gl.Program) { gogl.UseProgram(uint32(p)) }

// maxNameLen bounds reflected identifier names.
const maxNameLen = 256

func (f *Functions) GetActiveUniform(p gl.Program, index int) (string, int, gl.Enum) {
	var (
		length, size int32
		ty           uint32
		buf          [maxNameLen]byte
	)
	gogl.GetActiveUniform(uint32(p), uint32(index), maxNameLen, &length, &size, &ty, &buf[0])
	return string(buf[:length]), int(size), gl.Enum(ty)
}

func (f *Functions) GetActiveAttrib(p gl.Program, index int) (string, int, gl.Enum) {
	var (
		length, size int32
		ty           uint32
		buf          [maxNameLen]byte
	)
	gogl.GetActiveAttrib(uint32(p), uint32(index), maxNameLen, &length, &size, &ty, &buf[0])
	return string(buf[:length]), int(size), gl.Enum(ty)
}

func (f *Functions) GetUniformLocation(p gl.Program, name string) gl.Uniform {
	return gl.Uniform(gogl.GetUniformLocation(uint32(p), gogl.Str(name+"\x00")))
}

func (f *Functions) GetAttribLocation(p gl.Program, name string) int {
	return int(gogl.GetAttribLocation(uint32(p), gogl.Str(name+"\x00")))
}

func (f *Functions) GetActiveUniformBlockName(p gl.Program, index int) string {
	var (
		length int32
		buf    [maxNameLen]byte
	)
	gogl.GetActiveUniformBlockName(uint32(p), uint32(index), maxNameLen, &length, &buf[0])
	return string(buf[:length])
}

func (f *Functions) UniformBlockBinding(p gl.Program, blockIndex, binding int) {
	gogl.UniformBlockBinding(uint32(p), uint32(blockIndex), uint32(binding))
}

// ── Uniform uploads ───────────────────────────────────────────────────────────

func (f *Functions) Uniform1f(u gl.Uniform, v float32) { gogl.Uniform1f(int32(u), v) }
func (f *Functions) Uniform1i(u gl.Uniform, v int32)   { gogl.Uniform1i(int32(u), v) }
func (f *Functions) Uniform1ui(u gl.Uniform, v uint32) { gogl.Uniform1ui(int32(u), v) }

func (f *Functions) Uniformfv(u gl.Uniform, components int, v []float32) {
	if len(v) == 0 {
		return
	}
	n := int32(len(v) / components)
	switch components {
	case 1:
		gogl.Uniform1fv(int32(u), n, &v[0])
	case 2:
		gogl.Uniform2fv(int32(u), n, &v[0])
	case 3:
		gogl.Uniform3fv(int32(u), n, &v[0])
	case 4:
		gogl.Uniform4fv(int32(u), n, &v[0])
	}
}

func (f *Functions) Uniformiv(u gl.Uniform, components int, v []int32) {
	if len(v) == 0 {
		return
	}
	n := int32(len(v) / components)
	switch components {
	case 1:
		gogl.Uniform1iv(int32(u), n, &v[0])
	case 2:
		gogl.Uniform2iv(int32(u), n, &v[0])
	case 3:
		gogl.Uniform3iv(int32(u), n, &v[0])
	case 4:
		gogl.Uniform4iv(int32(u), n, &v[0])
	}
}

func (f *Functions) Uniformuiv(u gl.Uniform, components int, v []uint32) {
	if len(v) == 0 {
		return
	}
	n := int32(len(v) / components)
	switch components {
	case 1:
		gogl.Uniform1uiv(int32(u), n, &v[0])
	case 2:
		gogl.Uniform2uiv(int32(u), n, &v[0])
	case 3:
		gogl.Uniform3uiv(int32(u), n, &v[0])
	case 4:
		gogl.Uniform4uiv(int32(u), n, &v[0])
	}
}

func (f *Functions) UniformMatrixfv(u gl.Uniform, cols, rows int, transpose bool, v []float32) {
	if len(v) == 0 {
		return
	}
	loc := int32(u)
	n := int32(len(v) / (cols * rows))
	switch {
	case cols == 2 && rows == 2:
		gogl.UniformMatrix2fv(loc, n, transpose, &v[0])
	case cols == 3 && rows == 3:
		gogl.UniformMatrix3fv(loc, n, transpose, &v[0])
	case cols == 4 && rows == 4:
		gogl.UniformMatrix4fv(loc, n, transpose, &v[0])
	case cols == 2 && rows == 3:
		gogl.UniformMatrix2x3fv(loc, n, transpose, &v[0])
	case cols == 2 && rows == 4:
		gogl.UniformMatrix2x4fv(loc, n, transpose, &v[0])
	case cols == 3 && rows == 2:
		gogl.UniformMatrix3x2fv(loc, n, transpose, &v[0])
	case cols == 3 && rows == 4:
		gogl.UniformMatrix3x4fv(loc, n, transpose, &v[0])
	case cols == 4 && rows == 2:
		gogl.UniformMatrix4x2fv(loc, n, transpose, &v[0])
	case cols == 4 && rows == 3:
		gogl.UniformMatrix4x3fv(loc, n, transpose, &v[0])
	}
}

// ── Vertex arrays ─────────────────────────────────────────────────────────────

func (f *Functions) CreateVertexArray() gl.VertexArray {
	var id uint32
	gogl.GenVertexArrays(1, &id)
	return gl.VertexArray(id)
}

func (f *Functions) DeleteVertexArray(a gl.VertexArray) {
	id := uint32(a)
	gogl.DeleteVertexArrays(1, &id)
}

func (f *Functions) BindVertexArray(a gl.VertexArray) { gogl.BindVertexArray(uint32(a)) }

func (f *Functions) EnableVertexAttribArray(index int) {
	gogl.EnableVertexAttribArray(uint32(index))
}

func (f *Functions) VertexAttribPointer(index, size int, ty gl.Enum, normalized bool, stride, offset int) {
	gogl.VertexAttribPointer(uint32(index), int32(size), uint32(ty), normalized, int32(stride), gogl.PtrOffset(offset))
}

func (f *Functions) VertexAttribIPointer(index, size int, ty gl.Enum, stride, offset int) {
	gogl.VertexAttribIPointer(uint32(index), int32(size), uint32(ty), int32(stride), gogl.PtrOffset(offset))
}

func (f *Functions) VertexAttribDivisor(index, divisor int) {
	gogl.VertexAttribDivisor(uint32(index), uint32(divisor))
}

// ── Framebuffers and renderbuffers ────────────────────────────────────────────

func (f *Functions) CreateFramebuffer() gl.Framebuffer {
	var id uint32
	gogl.GenFramebuffers(1, &id)
	return gl.Framebuffer(id)
}

func (f *Functions) DeleteFramebuffer(fb gl.Framebuffer) {
	id := uint32(fb)
	gogl.DeleteFramebuffers(1, &id)
}

func (f *Functions) BindFramebuffer(target gl.Enum, fb gl.Framebuffer) {
	gogl.BindFramebuffer(uint32(target), uint32(fb))
}

func (f *Functions) FramebufferTexture2D(target, attachment, texTarget gl.Enum, t gl.Texture, level int) {
	gogl.FramebufferTexture2D(uint32(target), uint32(attachment), uint32(texTarget), uint32(t), int32(level))
}

func (f *Functions) FramebufferTextureLayer(target, attachment gl.Enum, t gl.Texture, level, layer int) {
	gogl.FramebufferTextureLayer(uint32(target), uint32(attachment), uint32(t), int32(level), int32(layer))
}

func (f *Functions) FramebufferRenderbuffer(target, attachment, rbTarget gl.Enum, r gl.Renderbuffer) {
	gogl.FramebufferRenderbuffer(uint32(target), uint32(attachment), uint32(rbTarget), uint32(r))
}

func (f *Functions) CheckFramebufferStatus(target gl.Enum) gl.Enum {
	return gl.Enum(gogl.CheckFramebufferStatus(uint32(target)))
}

func (f *Functions) DrawBuffers(bufs []gl.Enum) {
	if len(bufs) == 0 {
		return
	}
	gogl.DrawBuffers(int32(len(bufs)), (*uint32)(unsafe.Pointer(&bufs[0])))
}

func (f *Functions) CreateRenderbuffer() gl.Renderbuffer {
	var id uint32
	gogl.GenRenderbuffers(1, &id)
	return gl.Renderbuffer(id)
}

func (f *Functions) DeleteRenderbuffer(r gl.Renderbuffer) {
	id := uint32(r)
	gogl.DeleteRenderbuffers(1, &id)
}

func (f *Functions) BindRenderbuffer(target gl.Enum, r gl.Renderbuffer) {
	gogl.BindRenderbuffer(uint32(target), uint32(r))
}

func (f *Functions) RenderbufferStorageMultisample(target gl.Enum, samples int, internalFormat gl.Enum, width, height int) {
	gogl.RenderbufferStorageMultisample(uint32(target), int32(samples), uint32(internalFormat), int32(width), int32(height))
}

// ── Queries ───────────────────────────────────────────────────────────────────

func (f *Functions) CreateQuery() gl.Query {
	var id uint32
	gogl.GenQueries(1, &id)
	return gl.Query(id)
}

func (f *Functions) DeleteQuery(q gl.Query) {
	id := uint32(q)
	gogl.DeleteQueries(1, &id)
}

func (f *Functions) BeginQuery(target gl.Enum, q gl.Query) {
	gogl.BeginQuery(uint32(target), uint32(q))
}

func (f *Functions) EndQuery(target gl.Enum) { gogl.EndQuery(uint32(target)) }

func (f *Functions) GetQueryObjectui64(q gl.Query, pname gl.Enum) uint64 {
	var v uint64
	gogl.GetQueryObjectui64v(uint32(q), uint32(pname), &v)
	return v
}

// ── Drawing ───────────────────────────────────────────────────────────────────

func (f *Functions) DrawArraysInstanced(mode gl.Enum, first, count, instances int) {
	gogl.DrawArraysInstanced(uint32(mode), int32(first), int32(count), int32(instances))
}

func (f *Functions) DrawElementsInstanced(mode gl.Enum, count int, ty gl.Enum, offset, instances int) {
	gogl.DrawElementsInstanced(uint32(mode), int32(count), uint32(ty), gogl.PtrOffset(offset), int32(instances))
}

// MultiDrawArraysInstanced uses glMultiDrawArrays when every range draws a
// single instance; desktop GL 4.1 has no instanced multi-draw, so ranges with
// more instances fall back to one call each.
func (f *Functions) MultiDrawArraysInstanced(mode gl.Enum, firsts, counts, instances []int32) {
	if len(counts) == 0 {
		return
	}
	if allOnes(instances) {
		gogl.MultiDrawArrays(uint32(mode), &firsts[0], &counts[0], int32(len(counts)))
		return
	}
	for i := range counts {
		gogl.DrawArraysInstanced(uint32(mode), firsts[i], counts[i], instances[i])
	}
}

func (f *Functions) MultiDrawElementsInstanced(mode gl.Enum, counts []int32, ty gl.Enum, offsets, instances []int32) {
	if len(counts) == 0 {
		return
	}
	if allOnes(instances) {
		ptrs := make([]unsafe.Pointer, len(offsets))
		for i, off := range offsets {
			ptrs[i] = gogl.PtrOffset(int(off))
		}
		gogl.MultiDrawElements(uint32(mode), &counts[0], uint32(ty), &ptrs[0], int32(len(counts)))
		return
	}
	for i := range counts {
		gogl.DrawElementsInstanced(uint32(mode), counts[i], uint32(ty), gogl.PtrOffset(int(offsets[i])), instances[i])
	}
}

// SupportsMultiDraw is always true: glMultiDrawArrays and glMultiDrawElements
// are core since OpenGL 1.4.
func (f *Functions) SupportsMultiDraw() bool { return true }

// ── Fixed-function state ──────────────────────────────────────────────────────

func (f *Functions) Viewport(x, y, width, height int) {
	gogl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (f *Functions) ClearColor(r, g, b, a float32) { gogl.ClearColor(r, g, b, a) }
func (f *Functions) Clear(mask gl.Enum)            { gogl.Clear(uint32(mask)) }
func (f *Functions) Enable(capability gl.Enum)     { gogl.Enable(uint32(capability)) }
func (f *Functions) Disable(capability gl.Enum)    { gogl.Disable(uint32(capability)) }

func (f *Functions) BlendFunc(src, dst gl.Enum) { gogl.BlendFunc(uint32(src), uint32(dst)) }

func (f *Functions) GetInteger(pname gl.Enum) int {
	var v int32
	gogl.GetIntegerv(uint32(pname), &v)
	return int(v)
}

func (f *Functions) GetString(pname gl.Enum) string {
	return gogl.GoStr(gogl.GetString(uint32(pname)))
}

func bytePtr(data []byte) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Pointer(&data[0])
}

func allOnes(v []int32) bool {
	for _, n := range v {
		if n != 1 {
			return false
		}
	}
	return true
}
