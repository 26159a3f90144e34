package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glkit/gl"
	"glkit/internal/glfake"
)

func TestNewContextCaps(t *testing.T) {
	f := glfake.New()
	c := NewContext(f, Options{})
	caps := c.Caps()
	assert.True(t, caps.MultiDraw)
	assert.Equal(t, 16, caps.MaxTextureUnits)
	assert.Equal(t, 24, caps.MaxUniformBuffers)
	assert.Equal(t, "glfake", caps.Vendor)

	f.MultiDraw = false
	assert.False(t, NewContext(f, Options{}).Caps().MultiDraw)

	f.MultiDraw = true
	c = NewContext(f, Options{DisableMultiDraw: true, MaxTextureUnits: 4})
	assert.False(t, c.Caps().MultiDraw)
	assert.Equal(t, 4, c.Caps().MaxTextureUnits)
}

func TestNewContextFallbackLimits(t *testing.T) {
	f := glfake.New()
	f.Limits = nil
	c := NewContext(f, Options{})
	assert.Equal(t, fallbackTextureUnits, c.Caps().MaxTextureUnits)
	assert.Equal(t, fallbackUniformBuffers, c.Caps().MaxUniformBuffers)
}

func TestRestoreRecreatesResources(t *testing.T) {
	c, f := newTestContext(t, Options{})
	logs := captureLogs(t)

	p := c.CreateProgram(testVertexShader, testFragmentShader)
	positions := []float32{0, 0, 1, 0, 1, 1}
	vb, err := c.CreateVertexBuffer(gl.FLOAT, 2, positions, 0)
	require.NoError(t, err)
	va := c.CreateVertexArray()
	va.VertexAttributeBuffer(0, vb, AttributeOptions{})
	ub, err := c.CreateUniformBuffer([]gl.Enum{gl.FLOAT_VEC4}, 0)
	require.NoError(t, err)
	ub.Set(0, [4]float32{1, 2, 3, 4})
	ub.Update()
	tex, err := c.CreateTexture2D(2, 2, make([]byte, 16), TextureOptions{})
	require.NoError(t, err)
	tex.Bind(3)
	require.Equal(t, 5, c.Resources())

	oldBuffer, oldProgram := vb.Handle(), p.Handle()
	f.Lose()
	f.Reset()
	c.Restore()

	assert.NotEqual(t, oldBuffer, vb.Handle())
	assert.NotEqual(t, oldProgram, p.Handle())
	assert.True(t, p.Linked())
	assert.Equal(t, positions, decodeFloats(f.BufferContents(vb.Handle())))
	assert.Equal(t, []float32{1, 2, 3, 4}, decodeFloats(f.BufferContents(ub.Handle())))
	assert.Equal(t, 1, f.Count("VertexAttribPointer"), "vertex array replays its attributes")
	assert.Equal(t, 1, f.Count("TexImage2D"))
	assert.Equal(t, 3, va.NumElements())
	assert.Contains(t, logs.String(), "restoring renderer context")

	// Buffers are recreated before the vertex array that references them.
	names := f.Names()
	assert.Less(t, indexOf(names, "BufferData"), indexOf(names, "CreateVertexArray"))
}

func TestRestoreSkipsDeletedResources(t *testing.T) {
	c, f := newTestContext(t, Options{})
	vb, err := c.CreateVertexBuffer(gl.FLOAT, 2, 8, 0)
	require.NoError(t, err)
	vb.Delete()
	f.Reset()

	c.Restore()

	assert.Zero(t, f.Count("CreateBuffer"))
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
