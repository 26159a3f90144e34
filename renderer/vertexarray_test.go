package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glkit/gl"
)

func TestVertexAttributeBuffer(t *testing.T) {
	c, f := newTestContext(t, Options{})
	vb, err := c.CreateVertexBuffer(gl.FLOAT, 2, []float32{0, 0, 1, 0, 1, 1, 0, 1}, 0)
	require.NoError(t, err)
	va := c.CreateVertexArray()
	f.Reset()

	va.VertexAttributeBuffer(0, vb, AttributeOptions{})

	ptrs := f.Named("VertexAttribPointer")
	require.Len(t, ptrs, 1)
	assert.Equal(t, []any{0, 2, gl.Enum(gl.FLOAT), false, 0, 0}, ptrs[0].Args)
	assert.Equal(t, 1, f.Count("EnableVertexAttribArray"))
	assert.Zero(t, f.Count("VertexAttribDivisor"))
	assert.Equal(t, 4, va.NumElements())
	assert.Equal(t, 1, va.NumInstances())
	assert.False(t, va.Indexed())
}

func TestInstancedMatrixAttribute(t *testing.T) {
	c, f := newTestContext(t, Options{})
	vb, err := c.CreateMatrixBuffer(gl.FLOAT_MAT4, append(identity(), identity()...), 0)
	require.NoError(t, err)
	va := c.CreateVertexArray()
	f.Reset()

	va.InstanceAttributeBuffer(2, vb, AttributeOptions{})

	ptrs := f.Named("VertexAttribPointer")
	require.Len(t, ptrs, 4)
	for col, call := range ptrs {
		assert.Equal(t, 2+col, call.Args[0], "location")
		assert.Equal(t, 64, call.Args[4], "stride")
		assert.Equal(t, col*16, call.Args[5], "offset")
	}
	assert.Equal(t, 4, f.Count("VertexAttribDivisor"))
	assert.Equal(t, 2, va.NumInstances())
}

func TestInterleavedIntegerAttribute(t *testing.T) {
	c, f := newTestContext(t, Options{})
	vb, err := c.CreateInterleavedBuffer(12, 48, 0)
	require.NoError(t, err)
	va := c.CreateVertexArray()
	f.Reset()

	va.VertexAttributeBuffer(0, vb, AttributeOptions{Type: gl.FLOAT, Size: 2})
	va.VertexAttributeBuffer(1, vb, AttributeOptions{Type: gl.UNSIGNED_INT, Size: 1, Offset: 8, Integer: true})

	ptr := f.Named("VertexAttribPointer")[0]
	assert.Equal(t, 12, ptr.Args[4])
	iptr := f.Named("VertexAttribIPointer")
	require.Len(t, iptr, 1)
	assert.Equal(t, []any{1, 1, gl.Enum(gl.UNSIGNED_INT), 12, 8}, iptr[0].Args)
	assert.Equal(t, 4, va.NumElements())
}

func TestVertexArrayIndexBuffer(t *testing.T) {
	c, f := newTestContext(t, Options{})
	vb, err := c.CreateVertexBuffer(gl.FLOAT, 2, 8, 0)
	require.NoError(t, err)
	ib, err := c.CreateIndexBuffer(gl.UNSIGNED_SHORT, []uint16{0, 1, 2, 2, 3, 0}, 0)
	require.NoError(t, err)
	va := c.CreateVertexArray()

	va.VertexAttributeBuffer(0, vb, AttributeOptions{})
	f.Reset()
	va.IndexBuffer(ib)

	assert.Equal(t, []string{"BindBuffer"}, f.Names(), "vertex array already bound")
	assert.True(t, va.Indexed())
	assert.Equal(t, gl.Enum(gl.UNSIGNED_SHORT), va.IndexType())
	assert.Equal(t, 6, va.NumElements())
}
