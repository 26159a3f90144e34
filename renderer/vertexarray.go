package renderer

import (
	"glkit/gl"
)

// AttributeOptions override how a buffer is read by an attribute. Zero
// fields take the buffer's own type, item size and packing.
type AttributeOptions struct {
	Type       gl.Enum
	Size       int
	Stride     int
	Offset     int
	Normalized bool
	// Integer selects glVertexAttribIPointer so integer data reaches the
	// shader unconverted.
	Integer bool
}

type attributeBinding struct {
	index     int
	buffer    *VertexBuffer
	opts      AttributeOptions
	instanced bool
}

// VertexArray records attribute buffers and an optional index buffer.
type VertexArray struct {
	ctx    *Context
	handle gl.VertexArray

	attributes  []attributeBinding
	indexBuffer *IndexBuffer

	numElements  int
	numInstances int
}

// CreateVertexArray creates an empty vertex array.
func (c *Context) CreateVertexArray() *VertexArray {
	va := &VertexArray{ctx: c, numInstances: 1}
	va.handle = c.gl.CreateVertexArray()
	c.track(va)
	return va
}

// Handle returns the GL vertex array name.
func (va *VertexArray) Handle() gl.VertexArray { return va.handle }

// VertexAttributeBuffer reads per-vertex data for attribute index from vb.
// Matrix buffers occupy one attribute per column starting at index.
func (va *VertexArray) VertexAttributeBuffer(index int, vb *VertexBuffer, opts AttributeOptions) {
	b := attributeBinding{index: index, buffer: vb, opts: opts}
	va.attributes = append(va.attributes, b)
	va.attach(b)
}

// InstanceAttributeBuffer reads per-instance data for attribute index from vb.
func (va *VertexArray) InstanceAttributeBuffer(index int, vb *VertexBuffer, opts AttributeOptions) {
	b := attributeBinding{index: index, buffer: vb, opts: opts, instanced: true}
	va.attributes = append(va.attributes, b)
	va.attach(b)
}

func (va *VertexArray) attach(b attributeBinding) {
	f := va.ctx.gl
	vb := b.buffer
	ty := b.opts.Type
	if ty == 0 {
		ty = vb.ty
	}
	size := b.opts.Size
	if size == 0 {
		size = vb.itemSize
	}
	columnBytes := size * gl.TypeSize(ty)
	stride := b.opts.Stride
	if stride == 0 {
		if vb.interleaved {
			stride = vb.stride
		} else if vb.numColumns > 1 {
			stride = columnBytes * vb.numColumns
		}
	}

	va.ctx.state.BindVertexArray(va)
	va.ctx.state.BindBuffer(gl.ARRAY_BUFFER, vb.handle)
	for col := 0; col < vb.numColumns; col++ {
		loc := b.index + col
		offset := b.opts.Offset + col*columnBytes
		if b.opts.Integer {
			f.VertexAttribIPointer(loc, size, ty, stride, offset)
		} else {
			f.VertexAttribPointer(loc, size, ty, b.opts.Normalized, stride, offset)
		}
		if b.instanced {
			f.VertexAttribDivisor(loc, 1)
		}
		f.EnableVertexAttribArray(loc)
	}

	if b.instanced {
		va.numInstances = vb.NumItems()
	} else if va.indexBuffer == nil {
		va.numElements = vb.NumItems()
	}
}

// IndexBuffer makes the vertex array draw indexed from ib.
func (va *VertexArray) IndexBuffer(ib *IndexBuffer) {
	va.indexBuffer = ib
	va.attachIndices()
}

func (va *VertexArray) attachIndices() {
	va.ctx.state.BindVertexArray(va)
	va.ctx.gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, va.indexBuffer.handle)
	va.numElements = va.indexBuffer.NumItems()
}

// Indexed reports whether an index buffer is attached.
func (va *VertexArray) Indexed() bool { return va.indexBuffer != nil }

// IndexType returns the type of the attached indices, or 0.
func (va *VertexArray) IndexType() gl.Enum {
	if va.indexBuffer == nil {
		return 0
	}
	return va.indexBuffer.ty
}

// NumElements returns the vertex or index count drawn by default.
func (va *VertexArray) NumElements() int { return va.numElements }

// NumInstances returns the instance count drawn by default.
func (va *VertexArray) NumInstances() int { return va.numInstances }

// SetCounts overrides the default element and instance counts, for buffers
// whose contents are only partly in use.
func (va *VertexArray) SetCounts(elements, instances int) {
	va.numElements = elements
	va.numInstances = max(instances, 1)
}

// Restore recreates the vertex array and replays its attributes. Buffers are
// restored before vertex arrays.
func (va *VertexArray) Restore() {
	va.handle = va.ctx.gl.CreateVertexArray()
	elements, instances := va.numElements, va.numInstances
	for _, b := range va.attributes {
		va.attach(b)
	}
	if va.indexBuffer != nil {
		va.attachIndices()
	}
	va.numElements, va.numInstances = elements, instances
}

// Delete releases the vertex array. Attached buffers are not deleted.
func (va *VertexArray) Delete() {
	if va.handle != 0 {
		if va.ctx.state.vertexArray == va {
			va.ctx.state.BindVertexArray(nil)
		}
		va.ctx.gl.DeleteVertexArray(va.handle)
		va.handle = 0
	}
	va.ctx.untrack(va)
}
