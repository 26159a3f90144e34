package renderer

import (
	"fmt"
	"slices"

	"glkit/gl"
)

// buffer is the storage shared by every buffer resource. data is a shadow
// copy of the GPU contents, kept so Restore can re-upload it.
type buffer struct {
	ctx    *Context
	handle gl.Buffer
	target gl.Enum
	usage  gl.Enum
	data   []byte
}

func (b *buffer) init(ctx *Context, target, usage gl.Enum, data []byte) {
	if usage == 0 {
		usage = gl.STATIC_DRAW
	}
	b.ctx = ctx
	b.target = target
	b.usage = usage
	b.data = slices.Clone(data)
	b.create()
}

func (b *buffer) create() {
	b.handle = b.ctx.gl.CreateBuffer()
	b.bind()
	b.ctx.gl.BufferData(b.target, len(b.data), b.data, b.usage)
}

func (b *buffer) bind() {
	if b.target == gl.ELEMENT_ARRAY_BUFFER {
		// Keep the element binding of whatever vertex array is bound intact.
		b.ctx.state.BindVertexArray(nil)
	}
	b.ctx.state.BindBuffer(b.target, b.handle)
}

// setData replaces the contents from offset zero, reallocating only when
// data does not fit.
func (b *buffer) setData(data []byte) {
	b.bind()
	if len(data) > len(b.data) {
		b.data = slices.Clone(data)
		b.ctx.gl.BufferData(b.target, len(b.data), b.data, b.usage)
		return
	}
	copy(b.data, data)
	b.ctx.gl.BufferSubData(b.target, 0, data)
}

// subData writes data at a byte offset, growing the storage when the range
// runs past the end.
func (b *buffer) subData(offset int, data []byte) {
	if end := offset + len(data); end > len(b.data) {
		grown := make([]byte, end)
		copy(grown, b.data)
		copy(grown[offset:], data)
		b.data = grown
		b.bind()
		b.ctx.gl.BufferData(b.target, len(b.data), b.data, b.usage)
		return
	}
	copy(b.data[offset:], data)
	b.bind()
	b.ctx.gl.BufferSubData(b.target, offset, data)
}

func (b *buffer) release() {
	if b.handle == 0 {
		return
	}
	b.ctx.state.unbindBuffer(b.target, b.handle)
	b.ctx.gl.DeleteBuffer(b.handle)
	b.handle = 0
}

// Handle returns the GL buffer name.
func (b *buffer) Handle() gl.Buffer { return b.handle }

// ByteSize returns the allocated size in bytes.
func (b *buffer) ByteSize() int { return len(b.data) }

// ── Vertex buffers ────────────────────────────────────────────────────────────

// VertexBuffer holds per-vertex or per-instance attribute data.
type VertexBuffer struct {
	buffer
	ty          gl.Enum
	itemSize    int
	numColumns  int
	stride      int
	interleaved bool
}

// CreateVertexBuffer allocates a buffer of itemSize-component items of type
// ty. data is a typed slice or an element count; usage 0 means STATIC_DRAW.
func (c *Context) CreateVertexBuffer(ty gl.Enum, itemSize int, data any, usage gl.Enum) (*VertexBuffer, error) {
	raw, ok := bufferBytes(ty, data)
	if !ok {
		return nil, fmt.Errorf("create vertex buffer: unsupported data %T", data)
	}
	vb := &VertexBuffer{ty: ty, itemSize: itemSize, numColumns: 1}
	vb.init(c, gl.ARRAY_BUFFER, usage, raw)
	c.track(vb)
	return vb, nil
}

// CreateMatrixBuffer allocates a vertex buffer of matrices, one per item.
// ty is a matrix type such as FLOAT_MAT4; each column becomes an attribute.
func (c *Context) CreateMatrixBuffer(ty gl.Enum, data any, usage gl.Enum) (*VertexBuffer, error) {
	info, ok := uniformTypes[ty]
	if !ok || info.cols == 0 {
		return nil, fmt.Errorf("create matrix buffer: 0x%X is not a matrix type", uint32(ty))
	}
	raw, ok := bufferBytes(gl.FLOAT, data)
	if !ok {
		return nil, fmt.Errorf("create matrix buffer: unsupported data %T", data)
	}
	vb := &VertexBuffer{ty: gl.FLOAT, itemSize: info.rows, numColumns: info.cols}
	vb.init(c, gl.ARRAY_BUFFER, usage, raw)
	c.track(vb)
	return vb, nil
}

// CreateInterleavedBuffer allocates a buffer whose vertices are bytesPerVertex
// apart. Attribute type, size and offset are given per attribute when the
// buffer is attached to a vertex array.
func (c *Context) CreateInterleavedBuffer(bytesPerVertex int, data any, usage gl.Enum) (*VertexBuffer, error) {
	if bytesPerVertex <= 0 {
		return nil, fmt.Errorf("create interleaved buffer: invalid stride %d", bytesPerVertex)
	}
	raw, ok := bufferBytes(gl.UNSIGNED_BYTE, data)
	if !ok {
		return nil, fmt.Errorf("create interleaved buffer: unsupported data %T", data)
	}
	vb := &VertexBuffer{ty: gl.UNSIGNED_BYTE, numColumns: 1, stride: bytesPerVertex, interleaved: true}
	vb.init(c, gl.ARRAY_BUFFER, usage, raw)
	c.track(vb)
	return vb, nil
}

// NumItems returns the number of vertices (or instances) the buffer holds.
func (vb *VertexBuffer) NumItems() int {
	per := vb.itemBytes()
	if per == 0 {
		return 0
	}
	return len(vb.data) / per
}

func (vb *VertexBuffer) itemBytes() int {
	if vb.interleaved {
		return vb.stride
	}
	return vb.itemSize * vb.numColumns * gl.TypeSize(vb.ty)
}

// Type returns the component type.
func (vb *VertexBuffer) Type() gl.Enum { return vb.ty }

// ItemSize returns the components per item, or per column for matrices.
func (vb *VertexBuffer) ItemSize() int { return vb.itemSize }

// NumColumns returns the attribute slots one item occupies.
func (vb *VertexBuffer) NumColumns() int { return vb.numColumns }

// Data replaces the buffer contents starting at offset zero.
func (vb *VertexBuffer) Data(data any) {
	raw, ok := bufferBytes(vb.ty, data)
	if !ok {
		Logger().Debug("vertex buffer data dropped", "type", fmt.Sprintf("%T", data))
		return
	}
	vb.setData(raw)
}

// SubData writes data starting byteOffset bytes into the buffer.
func (vb *VertexBuffer) SubData(byteOffset int, data any) {
	raw, ok := bufferBytes(vb.ty, data)
	if !ok {
		Logger().Debug("vertex buffer data dropped", "type", fmt.Sprintf("%T", data))
		return
	}
	vb.subData(byteOffset, raw)
}

// Restore recreates the buffer with its last contents.
func (vb *VertexBuffer) Restore() { vb.create() }

// Delete releases the buffer.
func (vb *VertexBuffer) Delete() {
	vb.release()
	vb.ctx.untrack(vb)
}

// ── Index buffers ─────────────────────────────────────────────────────────────

// IndexBuffer holds element indices.
type IndexBuffer struct {
	buffer
	ty gl.Enum
}

// CreateIndexBuffer allocates an index buffer of UNSIGNED_BYTE,
// UNSIGNED_SHORT or UNSIGNED_INT indices.
func (c *Context) CreateIndexBuffer(ty gl.Enum, data any, usage gl.Enum) (*IndexBuffer, error) {
	switch ty {
	case gl.UNSIGNED_BYTE, gl.UNSIGNED_SHORT, gl.UNSIGNED_INT:
	default:
		return nil, fmt.Errorf("create index buffer: invalid index type 0x%X", uint32(ty))
	}
	raw, ok := bufferBytes(ty, data)
	if !ok {
		return nil, fmt.Errorf("create index buffer: unsupported data %T", data)
	}
	ib := &IndexBuffer{ty: ty}
	ib.init(c, gl.ELEMENT_ARRAY_BUFFER, usage, raw)
	c.track(ib)
	return ib, nil
}

// Type returns the index type.
func (ib *IndexBuffer) Type() gl.Enum { return ib.ty }

// NumItems returns the number of indices.
func (ib *IndexBuffer) NumItems() int { return len(ib.data) / gl.TypeSize(ib.ty) }

// Data replaces the indices starting at offset zero.
func (ib *IndexBuffer) Data(data any) {
	raw, ok := bufferBytes(ib.ty, data)
	if !ok {
		Logger().Debug("index buffer data dropped", "type", fmt.Sprintf("%T", data))
		return
	}
	ib.setData(raw)
}

// SubData writes indices starting byteOffset bytes into the buffer.
func (ib *IndexBuffer) SubData(byteOffset int, data any) {
	raw, ok := bufferBytes(ib.ty, data)
	if !ok {
		Logger().Debug("index buffer data dropped", "type", fmt.Sprintf("%T", data))
		return
	}
	ib.subData(byteOffset, raw)
}

// Restore recreates the buffer with its last contents.
func (ib *IndexBuffer) Restore() { ib.create() }

// Delete releases the buffer.
func (ib *IndexBuffer) Delete() {
	ib.release()
	ib.ctx.untrack(ib)
}
