package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glkit/gl"
)

func TestFramebufferAttachments(t *testing.T) {
	c, f := newTestContext(t, Options{})
	color, err := c.CreateTexture2D(64, 32, nil, TextureOptions{})
	require.NoError(t, err)
	layers, err := c.CreateTextureArray(64, 32, 4, nil, TextureOptions{})
	require.NoError(t, err)
	depth := c.CreateRenderbuffer(64, 32, gl.DEPTH_COMPONENT24, 0)
	fb := c.CreateFramebuffer()
	f.Reset()

	fb.ColorTarget(0, color)
	fb.ColorTargetLayer(2, layers, 3)
	fb.DepthRenderbuffer(depth)

	assert.Equal(t, 1, f.Count("BindFramebuffer"))
	assert.Equal(t, 1, f.Count("FramebufferTexture2D"))
	layer := f.Named("FramebufferTextureLayer")
	require.Len(t, layer, 1)
	assert.Equal(t, gl.Enum(gl.COLOR_ATTACHMENT0+2), layer[0].Args[1])
	assert.Equal(t, 3, layer[0].Args[4])
	assert.Equal(t, 1, f.Count("FramebufferRenderbuffer"))

	bufs := f.Named("DrawBuffers")
	assert.Equal(t, []gl.Enum{gl.COLOR_ATTACHMENT0, gl.NONE, gl.COLOR_ATTACHMENT0 + 2}, bufs[len(bufs)-1].Args[0])

	assert.Equal(t, gl.Enum(gl.FRAMEBUFFER_COMPLETE), fb.Status())
	w, h := fb.Size()
	assert.Equal(t, 64, w)
	assert.Equal(t, 32, h)
}

func TestFramebufferIncomplete(t *testing.T) {
	c, _ := newTestContext(t, Options{})
	logs := captureLogs(t)
	fb := c.CreateFramebuffer()

	assert.NotEqual(t, gl.Enum(gl.FRAMEBUFFER_COMPLETE), fb.Status())
	assert.Contains(t, logs.String(), "framebuffer incomplete")
}

func TestFramebufferResize(t *testing.T) {
	c, f := newTestContext(t, Options{})
	color, err := c.CreateTexture2D(64, 64, nil, TextureOptions{})
	require.NoError(t, err)
	depth := c.CreateRenderbuffer(64, 64, gl.DEPTH_COMPONENT24, 4)
	fb := c.CreateFramebuffer()
	fb.ColorTarget(0, color)
	fb.DepthRenderbuffer(depth)
	f.Reset()

	fb.Resize(128, 96)

	w, h, _ := color.Size()
	assert.Equal(t, 128, w)
	assert.Equal(t, 96, h)
	storage := f.Named("RenderbufferStorageMultisample")
	require.Len(t, storage, 1)
	assert.Equal(t, []any{gl.Enum(gl.RENDERBUFFER), 4, gl.Enum(gl.DEPTH_COMPONENT24), 128, 96}, storage[0].Args)
	assert.Equal(t, 1, f.Count("TexImage2D"))
}

func TestFramebufferRestore(t *testing.T) {
	c, f := newTestContext(t, Options{})
	color, err := c.CreateTexture2D(8, 8, nil, TextureOptions{})
	require.NoError(t, err)
	fb := c.CreateFramebuffer()
	fb.ColorTarget(0, color)
	f.Lose()
	f.Reset()

	c.Restore()

	names := f.Names()
	assert.Less(t, indexOf(names, "CreateTexture"), indexOf(names, "CreateFramebuffer"))
	assert.Equal(t, 1, f.Count("FramebufferTexture2D"))
	assert.Equal(t, gl.Enum(gl.FRAMEBUFFER_COMPLETE), fb.Status())
}

func TestQuery(t *testing.T) {
	c, f := newTestContext(t, Options{})
	q := c.CreateQuery(gl.ANY_SAMPLES_PASSED)

	assert.True(t, q.Ready(), "idle query is ready")
	q.Begin()
	q.Begin()
	assert.False(t, q.Ready())
	q.End()
	assert.Equal(t, 1, f.Count("BeginQuery"))

	f.QueryPending = true
	assert.False(t, q.Ready())
	q.Begin()
	assert.Equal(t, 1, f.Count("BeginQuery"), "no restart while pending")

	f.QueryPending = false
	f.QueryResult = 1
	assert.True(t, q.Ready())
	assert.Equal(t, uint64(1), q.Result())

	q.Delete()
	assert.Equal(t, 1, f.Count("DeleteQuery"))
	assert.Zero(t, c.Resources())
}
