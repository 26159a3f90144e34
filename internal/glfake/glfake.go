// Package glfake is an in-memory gl.Functions that records every call.
//
// It hands out handles, keeps buffer contents, and reflects active uniforms,
// uniform blocks and vertex attributes from the GLSL source passed to
// ShaderSource, which is enough to drive the renderer without a GPU.
package glfake

import (
	"fmt"
	"slices"
	"strings"

	"glkit/gl"
)

// Call is one recorded entry point invocation.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// Functions records calls made through gl.Functions.
type Functions struct {
	// MultiDraw is returned by SupportsMultiDraw.
	MultiDraw bool
	// Limits backs GetInteger.
	Limits map[gl.Enum]int
	// QueryResult is returned for QUERY_RESULT.
	QueryResult uint64
	// QueryPending makes QUERY_RESULT_AVAILABLE report false.
	QueryPending bool
	// FailLink makes every LinkProgram fail.
	FailLink bool

	Calls []Call

	next     uint32
	shaders  map[gl.Shader]*shader
	programs map[gl.Program]*program
	buffers  map[gl.Buffer][]byte
	bound    map[gl.Enum]gl.Buffer
	fbAttach map[gl.Framebuffer]int
	fbBound  map[gl.Enum]gl.Framebuffer
	texImage []byte
}

var _ gl.Functions = (*Functions)(nil)

// New returns a fake with multi-draw support and the usual desktop limits.
func New() *Functions {
	f := &Functions{
		MultiDraw: true,
		Limits: map[gl.Enum]int{
			gl.MAX_TEXTURE_IMAGE_UNITS:     16,
			gl.MAX_UNIFORM_BUFFER_BINDINGS: 24,
		},
	}
	f.Lose()
	return f
}

// Lose forgets every object, as a lost context would. Handle numbering keeps
// increasing so recreated objects get fresh names.
func (f *Functions) Lose() {
	f.shaders = make(map[gl.Shader]*shader)
	f.programs = make(map[gl.Program]*program)
	f.buffers = make(map[gl.Buffer][]byte)
	f.bound = make(map[gl.Enum]gl.Buffer)
	f.fbAttach = make(map[gl.Framebuffer]int)
	f.fbBound = make(map[gl.Enum]gl.Framebuffer)
}

// Reset clears the call log.
func (f *Functions) Reset() { f.Calls = f.Calls[:0] }

// Count returns how many times the named entry point was called.
func (f *Functions) Count(name string) int {
	n := 0
	for _, c := range f.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Named returns the recorded calls to the named entry point.
func (f *Functions) Named(name string) []Call {
	var out []Call
	for _, c := range f.Calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Names returns the entry point names in call order.
func (f *Functions) Names() []string {
	out := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		out[i] = c.Name
	}
	return out
}

// BufferContents returns the current contents of b.
func (f *Functions) BufferContents(b gl.Buffer) []byte { return f.buffers[b] }

// Exists reports whether a buffer handle is live.
func (f *Functions) Exists(b gl.Buffer) bool {
	_, ok := f.buffers[b]
	return ok
}

func (f *Functions) record(name string, args ...any) {
	f.Calls = append(f.Calls, Call{Name: name, Args: args})
}

func (f *Functions) alloc() uint32 {
	f.next++
	return f.next
}

// ── Buffers ───────────────────────────────────────────────────────────────────

func (f *Functions) CreateBuffer() gl.Buffer {
	b := gl.Buffer(f.alloc())
	f.buffers[b] = nil
	f.record("CreateBuffer", b)
	return b
}

func (f *Functions) DeleteBuffer(b gl.Buffer) {
	delete(f.buffers, b)
	f.record("DeleteBuffer", b)
}

func (f *Functions) BindBuffer(target gl.Enum, b gl.Buffer) {
	f.bound[target] = b
	f.record("BindBuffer", target, b)
}

func (f *Functions) BindBufferBase(target gl.Enum, index int, b gl.Buffer) {
	f.bound[target] = b
	f.record("BindBufferBase", target, index, b)
}

func (f *Functions) BufferData(target gl.Enum, size int, data []byte, usage gl.Enum) {
	buf := make([]byte, size)
	copy(buf, data)
	f.buffers[f.bound[target]] = buf
	f.record("BufferData", target, size, slices.Clone(data), usage)
}

func (f *Functions) BufferSubData(target gl.Enum, offset int, data []byte) {
	buf := f.buffers[f.bound[target]]
	if offset+len(data) > len(buf) {
		panic(fmt.Sprintf("glfake: BufferSubData [%d,%d) past end of %d byte buffer", offset, offset+len(data), len(buf)))
	}
	copy(buf[offset:], data)
	f.record("BufferSubData", target, offset, slices.Clone(data))
}

// ── Textures ──────────────────────────────────────────────────────────────────

func (f *Functions) CreateTexture() gl.Texture {
	t := gl.Texture(f.alloc())
	f.record("CreateTexture", t)
	return t
}

func (f *Functions) DeleteTexture(t gl.Texture) { f.record("DeleteTexture", t) }
func (f *Functions) ActiveTexture(unit gl.Enum) { f.record("ActiveTexture", unit) }

func (f *Functions) BindTexture(target gl.Enum, t gl.Texture) {
	f.record("BindTexture", target, t)
}

func (f *Functions) TexParameteri(target, pname gl.Enum, param int) {
	f.record("TexParameteri", target, pname, param)
}

// LastTexImage returns a copy of the pixels passed to the latest
// TexImage2D or TexImage3D.
func (f *Functions) LastTexImage() []byte { return f.texImage }

func (f *Functions) TexImage2D(target gl.Enum, level int, internalFormat gl.Enum, width, height int, format, ty gl.Enum, data []byte) {
	f.texImage = slices.Clone(data)
	f.record("TexImage2D", target, level, internalFormat, width, height, format, ty, len(data))
}

func (f *Functions) TexImage3D(target gl.Enum, level int, internalFormat gl.Enum, width, height, depth int, format, ty gl.Enum, data []byte) {
	f.texImage = slices.Clone(data)
	f.record("TexImage3D", target, level, internalFormat, width, height, depth, format, ty, len(data))
}

func (f *Functions) TexSubImage3D(target gl.Enum, level, x, y, z, width, height, depth int, format, ty gl.Enum, data []byte) {
	f.record("TexSubImage3D", target, level, x, y, z, width, height, depth, format, ty, len(data))
}

func (f *Functions) GenerateMipmap(target gl.Enum) { f.record("GenerateMipmap", target) }

// ── Vertex arrays ─────────────────────────────────────────────────────────────

func (f *Functions) CreateVertexArray() gl.VertexArray {
	a := gl.VertexArray(f.alloc())
	f.record("CreateVertexArray", a)
	return a
}

func (f *Functions) DeleteVertexArray(a gl.VertexArray) { f.record("DeleteVertexArray", a) }
func (f *Functions) BindVertexArray(a gl.VertexArray)   { f.record("BindVertexArray", a) }

func (f *Functions) EnableVertexAttribArray(index int) {
	f.record("EnableVertexAttribArray", index)
}

func (f *Functions) VertexAttribPointer(index, size int, ty gl.Enum, normalized bool, stride, offset int) {
	f.record("VertexAttribPointer", index, size, ty, normalized, stride, offset)
}

func (f *Functions) VertexAttribIPointer(index, size int, ty gl.Enum, stride, offset int) {
	f.record("VertexAttribIPointer", index, size, ty, stride, offset)
}

func (f *Functions) VertexAttribDivisor(index, divisor int) {
	f.record("VertexAttribDivisor", index, divisor)
}

// ── Framebuffers and renderbuffers ────────────────────────────────────────────

// FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT
const incompleteMissingAttachment gl.Enum = 0x8CD7

func (f *Functions) CreateFramebuffer() gl.Framebuffer {
	fb := gl.Framebuffer(f.alloc())
	f.fbAttach[fb] = 0
	f.record("CreateFramebuffer", fb)
	return fb
}

func (f *Functions) DeleteFramebuffer(fb gl.Framebuffer) {
	delete(f.fbAttach, fb)
	f.record("DeleteFramebuffer", fb)
}

func (f *Functions) BindFramebuffer(target gl.Enum, fb gl.Framebuffer) {
	if target == gl.FRAMEBUFFER {
		f.fbBound[gl.DRAW_FRAMEBUFFER] = fb
		f.fbBound[gl.READ_FRAMEBUFFER] = fb
	} else {
		f.fbBound[target] = fb
	}
	f.record("BindFramebuffer", target, fb)
}

func (f *Functions) attach(target gl.Enum) {
	if target == gl.FRAMEBUFFER {
		target = gl.DRAW_FRAMEBUFFER
	}
	f.fbAttach[f.fbBound[target]]++
}

func (f *Functions) FramebufferTexture2D(target, attachment, texTarget gl.Enum, t gl.Texture, level int) {
	f.attach(target)
	f.record("FramebufferTexture2D", target, attachment, texTarget, t, level)
}

func (f *Functions) FramebufferTextureLayer(target, attachment gl.Enum, t gl.Texture, level, layer int) {
	f.attach(target)
	f.record("FramebufferTextureLayer", target, attachment, t, level, layer)
}

func (f *Functions) FramebufferRenderbuffer(target, attachment, rbTarget gl.Enum, r gl.Renderbuffer) {
	f.attach(target)
	f.record("FramebufferRenderbuffer", target, attachment, rbTarget, r)
}

func (f *Functions) CheckFramebufferStatus(target gl.Enum) gl.Enum {
	f.record("CheckFramebufferStatus", target)
	if target == gl.FRAMEBUFFER {
		target = gl.DRAW_FRAMEBUFFER
	}
	if f.fbAttach[f.fbBound[target]] == 0 {
		return incompleteMissingAttachment
	}
	return gl.FRAMEBUFFER_COMPLETE
}

func (f *Functions) DrawBuffers(bufs []gl.Enum) { f.record("DrawBuffers", slices.Clone(bufs)) }

func (f *Functions) CreateRenderbuffer() gl.Renderbuffer {
	r := gl.Renderbuffer(f.alloc())
	f.record("CreateRenderbuffer", r)
	return r
}

func (f *Functions) DeleteRenderbuffer(r gl.Renderbuffer) { f.record("DeleteRenderbuffer", r) }

func (f *Functions) BindRenderbuffer(target gl.Enum, r gl.Renderbuffer) {
	f.record("BindRenderbuffer", target, r)
}

func (f *Functions) RenderbufferStorageMultisample(target gl.Enum, samples int, internalFormat gl.Enum, width, height int) {
	f.record("RenderbufferStorageMultisample", target, samples, internalFormat, width, height)
}

// ── Queries ───────────────────────────────────────────────────────────────────

func (f *Functions) CreateQuery() gl.Query {
	q := gl.Query(f.alloc())
	f.record("CreateQuery", q)
	return q
}

func (f *Functions) DeleteQuery(q gl.Query)                 { f.record("DeleteQuery", q) }
func (f *Functions) BeginQuery(target gl.Enum, q gl.Query) { f.record("BeginQuery", target, q) }
func (f *Functions) EndQuery(target gl.Enum)               { f.record("EndQuery", target) }

func (f *Functions) GetQueryObjectui64(q gl.Query, pname gl.Enum) uint64 {
	f.record("GetQueryObjectui64", q, pname)
	switch pname {
	case gl.QUERY_RESULT_AVAILABLE:
		if f.QueryPending {
			return 0
		}
		return 1
	case gl.QUERY_RESULT:
		return f.QueryResult
	}
	return 0
}

// ── Drawing ───────────────────────────────────────────────────────────────────

func (f *Functions) DrawArraysInstanced(mode gl.Enum, first, count, instances int) {
	f.record("DrawArraysInstanced", mode, first, count, instances)
}

func (f *Functions) DrawElementsInstanced(mode gl.Enum, count int, ty gl.Enum, offset, instances int) {
	f.record("DrawElementsInstanced", mode, count, ty, offset, instances)
}

func (f *Functions) MultiDrawArraysInstanced(mode gl.Enum, firsts, counts, instances []int32) {
	f.record("MultiDrawArraysInstanced", mode, slices.Clone(firsts), slices.Clone(counts), slices.Clone(instances))
}

func (f *Functions) MultiDrawElementsInstanced(mode gl.Enum, counts []int32, ty gl.Enum, offsets, instances []int32) {
	f.record("MultiDrawElementsInstanced", mode, slices.Clone(counts), ty, slices.Clone(offsets), slices.Clone(instances))
}

func (f *Functions) SupportsMultiDraw() bool { return f.MultiDraw }

// ── Fixed-function state ──────────────────────────────────────────────────────

func (f *Functions) Viewport(x, y, width, height int) {
	f.record("Viewport", x, y, width, height)
}

func (f *Functions) ClearColor(r, g, b, a float32) { f.record("ClearColor", r, g, b, a) }
func (f *Functions) Clear(mask gl.Enum)            { f.record("Clear", mask) }
func (f *Functions) Enable(capability gl.Enum)     { f.record("Enable", capability) }
func (f *Functions) Disable(capability gl.Enum)    { f.record("Disable", capability) }
func (f *Functions) BlendFunc(src, dst gl.Enum)    { f.record("BlendFunc", src, dst) }

func (f *Functions) GetInteger(pname gl.Enum) int {
	f.record("GetInteger", pname)
	return f.Limits[pname]
}

func (f *Functions) GetString(pname gl.Enum) string {
	f.record("GetString", pname)
	switch pname {
	case gl.VENDOR:
		return "glfake"
	case gl.RENDERER:
		return "glfake recorder"
	case gl.VERSION:
		return "4.1 glfake"
	}
	return ""
}

func lineOf(src string, offset int) int {
	return strings.Count(src[:offset], "\n") + 1
}
