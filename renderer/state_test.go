package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glkit/gl"
)

func newTestTexture(t *testing.T, c *Context) *Texture {
	t.Helper()
	tex, err := c.CreateTexture2D(4, 4, make([]byte, 4*4*4), TextureOptions{})
	require.NoError(t, err)
	return tex
}

func TestBindTextureSkipsRedundantBind(t *testing.T) {
	c, f := newTestContext(t, Options{})
	tex := newTestTexture(t, c)
	f.Reset()

	for i := 0; i < 5; i++ {
		c.State().BindTexture(3, tex)
	}

	assert.Equal(t, 1, f.Count("BindTexture"))
	assert.Equal(t, 1, f.Count("ActiveTexture"))
	assert.Equal(t, 3, tex.CurrentUnit())
}

func TestBindTextureEvictsOccupant(t *testing.T) {
	c, f := newTestContext(t, Options{})
	first := newTestTexture(t, c)
	second := newTestTexture(t, c)
	f.Reset()

	c.State().BindTexture(0, first)
	c.State().BindTexture(0, second)

	assert.Equal(t, -1, first.CurrentUnit())
	assert.Equal(t, 0, second.CurrentUnit())
	assert.Same(t, second, c.State().Texture(0))
}

func TestBindTextureReleasesOldUnit(t *testing.T) {
	c, _ := newTestContext(t, Options{})
	tex := newTestTexture(t, c)

	tex.Bind(1)
	tex.Bind(2)

	assert.Nil(t, c.State().Texture(1))
	assert.Same(t, tex, c.State().Texture(2))
	assert.Equal(t, 2, tex.CurrentUnit())
}

func TestBindTextureOutOfRange(t *testing.T) {
	c, f := newTestContext(t, Options{MaxTextureUnits: 2})
	tex := newTestTexture(t, c)
	f.Reset()

	c.State().BindTexture(2, tex)

	assert.Zero(t, f.Count("BindTexture"))
}

func TestDeleteBoundTextureUnbinds(t *testing.T) {
	c, f := newTestContext(t, Options{})
	tex := newTestTexture(t, c)
	tex.Bind(2)
	f.Reset()

	tex.Delete()

	binds := f.Named("BindTexture")
	require.Len(t, binds, 1)
	assert.Equal(t, []any{gl.Enum(gl.TEXTURE_2D), gl.Texture(0)}, binds[0].Args)
	assert.Nil(t, c.State().Texture(2))
	assert.Equal(t, 1, f.Count("DeleteTexture"))
	assert.Zero(t, c.Resources())
}

func TestBindProgramAndVertexArrayCached(t *testing.T) {
	c, f := newTestContext(t, Options{})
	p := c.CreateProgram(testVertexShader, testFragmentShader)
	va := c.CreateVertexArray()
	c.State().BindProgram(nil)
	c.State().BindVertexArray(nil)
	f.Reset()

	for i := 0; i < 3; i++ {
		c.State().BindProgram(p)
		c.State().BindVertexArray(va)
	}

	assert.Equal(t, 1, f.Count("UseProgram"))
	assert.Equal(t, 1, f.Count("BindVertexArray"))
	assert.Same(t, p, c.State().Program())
	assert.Same(t, va, c.State().VertexArray())
}

func TestBindUniformBufferEviction(t *testing.T) {
	c, f := newTestContext(t, Options{})
	a, err := c.CreateUniformBuffer([]gl.Enum{gl.FLOAT_VEC4}, 0)
	require.NoError(t, err)
	b, err := c.CreateUniformBuffer([]gl.Enum{gl.FLOAT_VEC4}, 0)
	require.NoError(t, err)
	f.Reset()

	a.Bind(0)
	a.Bind(0)
	assert.Equal(t, 1, f.Count("BindBufferBase"))

	b.Bind(0)
	assert.Equal(t, -1, a.CurrentBase())
	assert.Equal(t, 0, b.CurrentBase())

	b.Bind(1)
	assert.Nil(t, c.State().UniformBuffer(0))
	assert.Same(t, b, c.State().UniformBuffer(1))
}

func TestBindFramebufferTargets(t *testing.T) {
	c, f := newTestContext(t, Options{})
	fb := c.CreateFramebuffer()
	f.Reset()

	c.State().BindFramebuffer(gl.FRAMEBUFFER, fb)
	c.State().BindFramebuffer(gl.DRAW_FRAMEBUFFER, fb)
	c.State().BindFramebuffer(gl.READ_FRAMEBUFFER, fb)
	assert.Equal(t, 1, f.Count("BindFramebuffer"))

	c.State().BindFramebuffer(gl.READ_FRAMEBUFFER, nil)
	assert.Same(t, fb, c.State().DrawFramebuffer())
	assert.Nil(t, c.State().ReadFramebuffer())

	fb.Delete()
	assert.Nil(t, c.State().DrawFramebuffer())
	assert.Equal(t, 3, f.Count("BindFramebuffer"))
}

func TestGenericBufferBindingCached(t *testing.T) {
	c, f := newTestContext(t, Options{})

	c.State().BindBuffer(gl.ARRAY_BUFFER, 7)
	c.State().BindBuffer(gl.ARRAY_BUFFER, 7)
	c.State().BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 8)
	c.State().BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 8)

	assert.Equal(t, 3, f.Count("BindBuffer"))
}

func TestFixedFunctionStateCached(t *testing.T) {
	c, f := newTestContext(t, Options{})
	s := c.State()

	for i := 0; i < 2; i++ {
		s.Viewport(0, 0, 640, 480)
		s.ClearColor(0.1, 0.2, 0.3, 1)
		s.Enable(gl.BLEND)
		s.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}
	s.Disable(gl.BLEND)
	s.Disable(gl.BLEND)
	s.Viewport(0, 0, 800, 600)

	assert.Equal(t, 2, f.Count("Viewport"))
	assert.Equal(t, 1, f.Count("ClearColor"))
	assert.Equal(t, 1, f.Count("Enable"))
	assert.Equal(t, 1, f.Count("Disable"))
	assert.Equal(t, 1, f.Count("BlendFunc"))
}

func TestResetForgetsBindings(t *testing.T) {
	c, f := newTestContext(t, Options{})
	tex := newTestTexture(t, c)
	tex.Bind(1)
	c.State().Enable(gl.DEPTH_TEST)

	c.State().Reset()
	f.Reset()

	assert.Equal(t, -1, tex.CurrentUnit())
	assert.Nil(t, c.State().Texture(1))

	tex.Bind(1)
	c.State().Enable(gl.DEPTH_TEST)
	assert.Equal(t, 1, f.Count("BindTexture"))
	assert.Equal(t, 1, f.Count("ActiveTexture"))
	assert.Equal(t, 1, f.Count("Enable"))
}
