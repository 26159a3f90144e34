// Package gl defines the subset of OpenGL that glkit renders through.
//
// Every GPU call made by the renderer goes through a Functions value, so the
// same code runs against the go-gl binding in package opengl and against the
// in-memory recorder used by the tests.
package gl

type (
	// Enum is an OpenGL enumerant.
	Enum uint32

	Buffer       uint32
	Texture      uint32
	Shader       uint32
	Program      uint32
	Framebuffer  uint32
	Renderbuffer uint32
	Query        uint32
	VertexArray  uint32

	// Uniform is a uniform location; -1 means the uniform is not active.
	Uniform int32
)

// NoUniform is the location reported for names that are not active uniforms.
const NoUniform Uniform = -1

// Functions describes the OpenGL entry points used by glkit.
//
// All methods operate on the GL context that is current for the calling
// thread. Slices passed in are only read for the duration of the call.
type Functions interface {
	// ── Buffers ───────────────────────────────────────────────────────────────

	CreateBuffer() Buffer
	DeleteBuffer(b Buffer)
	BindBuffer(target Enum, b Buffer)
	BindBufferBase(target Enum, index int, b Buffer)
	// BufferData allocates size bytes for the bound buffer. data may be nil
	// or shorter than size, in which case the rest is left undefined.
	BufferData(target Enum, size int, data []byte, usage Enum)
	BufferSubData(target Enum, offset int, data []byte)

	// ── Textures ──────────────────────────────────────────────────────────────

	CreateTexture() Texture
	DeleteTexture(t Texture)
	ActiveTexture(unit Enum)
	BindTexture(target Enum, t Texture)
	TexParameteri(target, pname Enum, param int)
	TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, ty Enum, data []byte)
	TexImage3D(target Enum, level int, internalFormat Enum, width, height, depth int, format, ty Enum, data []byte)
	TexSubImage3D(target Enum, level, x, y, z, width, height, depth int, format, ty Enum, data []byte)
	GenerateMipmap(target Enum)

	// ── Shaders and programs ──────────────────────────────────────────────────

	CreateShader(ty Enum) Shader
	DeleteShader(s Shader)
	ShaderSource(s Shader, src string)
	CompileShader(s Shader)
	GetShaderi(s Shader, pname Enum) int
	GetShaderInfoLog(s Shader) string
	CreateProgram() Program
	DeleteProgram(p Program)
	AttachShader(p Program, s Shader)
	LinkProgram(p Program)
	GetProgrami(p Program, pname Enum) int
	GetProgramInfoLog(p Program) string
	UseProgram(p Program)
	// GetActiveUniform reports the name, array size and type of an active
	// uniform. Array names carry the "[0]" suffix the driver reports.
	GetActiveUniform(p Program, index int) (name string, size int, ty Enum)
	GetActiveAttrib(p Program, index int) (name string, size int, ty Enum)
	GetUniformLocation(p Program, name string) Uniform
	GetAttribLocation(p Program, name string) int
	GetActiveUniformBlockName(p Program, index int) string
	UniformBlockBinding(p Program, blockIndex, binding int)

	// ── Uniform uploads ───────────────────────────────────────────────────────
	// The vector forms upload len(v)/components elements.

	Uniform1f(u Uniform, v float32)
	Uniform1i(u Uniform, v int32)
	Uniform1ui(u Uniform, v uint32)
	Uniformfv(u Uniform, components int, v []float32)
	Uniformiv(u Uniform, components int, v []int32)
	Uniformuiv(u Uniform, components int, v []uint32)
	UniformMatrixfv(u Uniform, cols, rows int, transpose bool, v []float32)

	// ── Vertex arrays ─────────────────────────────────────────────────────────

	CreateVertexArray() VertexArray
	DeleteVertexArray(a VertexArray)
	BindVertexArray(a VertexArray)
	EnableVertexAttribArray(index int)
	VertexAttribPointer(index, size int, ty Enum, normalized bool, stride, offset int)
	VertexAttribIPointer(index, size int, ty Enum, stride, offset int)
	VertexAttribDivisor(index, divisor int)

	// ── Framebuffers and renderbuffers ────────────────────────────────────────

	CreateFramebuffer() Framebuffer
	DeleteFramebuffer(f Framebuffer)
	BindFramebuffer(target Enum, f Framebuffer)
	FramebufferTexture2D(target, attachment, texTarget Enum, t Texture, level int)
	FramebufferTextureLayer(target, attachment Enum, t Texture, level, layer int)
	FramebufferRenderbuffer(target, attachment, rbTarget Enum, r Renderbuffer)
	CheckFramebufferStatus(target Enum) Enum
	DrawBuffers(bufs []Enum)
	CreateRenderbuffer() Renderbuffer
	DeleteRenderbuffer(r Renderbuffer)
	BindRenderbuffer(target Enum, r Renderbuffer)
	RenderbufferStorageMultisample(target Enum, samples int, internalFormat Enum, width, height int)

	// ── Queries ───────────────────────────────────────────────────────────────

	CreateQuery() Query
	DeleteQuery(q Query)
	BeginQuery(target Enum, q Query)
	EndQuery(target Enum)
	GetQueryObjectui64(q Query, pname Enum) uint64

	// ── Drawing ───────────────────────────────────────────────────────────────

	DrawArraysInstanced(mode Enum, first, count, instances int)
	// DrawElementsInstanced draws count indices starting offset bytes into
	// the bound element buffer.
	DrawElementsInstanced(mode Enum, count int, ty Enum, offset, instances int)
	MultiDrawArraysInstanced(mode Enum, firsts, counts, instances []int32)
	// MultiDrawElementsInstanced takes byte offsets, like DrawElementsInstanced.
	MultiDrawElementsInstanced(mode Enum, counts []int32, ty Enum, offsets, instances []int32)
	// SupportsMultiDraw reports whether the MultiDraw entry points are backed
	// by a single driver call.
	SupportsMultiDraw() bool

	// ── Fixed-function state ──────────────────────────────────────────────────

	Viewport(x, y, width, height int)
	ClearColor(r, g, b, a float32)
	Clear(mask Enum)
	Enable(capability Enum)
	Disable(capability Enum)
	BlendFunc(src, dst Enum)
	GetInteger(pname Enum) int
	GetString(pname Enum) string
}

// TypeSize returns the size in bytes of one component of data type ty, or 0
// for types that are not plain numeric components.
func TypeSize(ty Enum) int {
	switch ty {
	case BYTE, UNSIGNED_BYTE:
		return 1
	case SHORT, UNSIGNED_SHORT, HALF_FLOAT:
		return 2
	case INT, UNSIGNED_INT, FLOAT:
		return 4
	}
	return 0
}
