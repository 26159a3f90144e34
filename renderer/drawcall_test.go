package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glkit/gl"
	"glkit/internal/glfake"
)

func newTestDrawCall(t *testing.T, opts Options, indexed bool) (*Context, *DrawCall, *glfake.Functions) {
	t.Helper()
	c, f := newTestContext(t, opts)
	p := c.CreateProgram(testVertexShader, testFragmentShader)
	require.True(t, p.Linked())
	vb, err := c.CreateVertexBuffer(gl.FLOAT, 2, 36, 0)
	require.NoError(t, err)
	va := c.CreateVertexArray()
	va.VertexAttributeBuffer(0, vb, AttributeOptions{})
	if indexed {
		ib, err := c.CreateIndexBuffer(gl.UNSIGNED_SHORT, 18, 0)
		require.NoError(t, err)
		va.IndexBuffer(ib)
	}
	d := c.CreateDrawCall(p, va)
	f.Reset()
	return c, d, f
}

func TestDrawDefaultRange(t *testing.T) {
	_, d, f := newTestDrawCall(t, Options{}, false)

	d.Draw()

	draws := f.Named("DrawArraysInstanced")
	require.Len(t, draws, 1)
	assert.Equal(t, []any{gl.Enum(gl.TRIANGLES), 0, 18, 1}, draws[0].Args)
	assert.Equal(t, 1, d.NumDraws())
}

func TestDrawRangesMultiDraw(t *testing.T) {
	_, d, f := newTestDrawCall(t, Options{}, false)

	d.DrawRanges(DrawRange{Offset: 0, Count: 6}, DrawRange{Offset: 6, Count: 12})
	d.Draw()

	assert.Equal(t, 2, d.NumDraws())
	draws := f.Named("MultiDrawArraysInstanced")
	require.Len(t, draws, 1)
	assert.Equal(t, []int32{0, 6}, draws[0].Args[1])
	assert.Equal(t, []int32{6, 12}, draws[0].Args[2])
	assert.Equal(t, []int32{1, 1}, draws[0].Args[3])
	assert.Zero(t, f.Count("DrawArraysInstanced"))
}

func TestDrawRangesLoop(t *testing.T) {
	_, d, f := newTestDrawCall(t, Options{DisableMultiDraw: true}, false)

	d.DrawRanges(DrawRange{Offset: 0, Count: 6}, DrawRange{Offset: 6, Count: 12, Instances: 3})
	d.Draw()

	draws := f.Named("DrawArraysInstanced")
	require.Len(t, draws, 2)
	assert.Equal(t, []any{gl.Enum(gl.TRIANGLES), 0, 6, 1}, draws[0].Args)
	assert.Equal(t, []any{gl.Enum(gl.TRIANGLES), 6, 12, 3}, draws[1].Args)
	assert.Zero(t, f.Count("MultiDrawArraysInstanced"))
}

func TestDrawRangesIndexedByteOffsets(t *testing.T) {
	_, d, f := newTestDrawCall(t, Options{}, true)

	d.DrawRanges(DrawRange{Offset: 0, Count: 6}, DrawRange{Offset: 6, Count: 12})
	d.Draw()

	draws := f.Named("MultiDrawElementsInstanced")
	require.Len(t, draws, 1)
	assert.Equal(t, []int32{6, 12}, draws[0].Args[1])
	assert.Equal(t, gl.Enum(gl.UNSIGNED_SHORT), draws[0].Args[2])
	assert.Equal(t, []int32{0, 12}, draws[0].Args[3])
}

func TestDrawIndexedLoop(t *testing.T) {
	_, d, f := newTestDrawCall(t, Options{DisableMultiDraw: true}, true)

	d.DrawRanges(DrawRange{Offset: 0, Count: 6}, DrawRange{Offset: 6, Count: 12})
	d.Draw()

	draws := f.Named("DrawElementsInstanced")
	require.Len(t, draws, 2)
	assert.Equal(t, []any{gl.Enum(gl.TRIANGLES), 12, gl.Enum(gl.UNSIGNED_SHORT), 12, 1}, draws[1].Args)
}

func TestDrawRangesGrowOnce(t *testing.T) {
	_, d, _ := newTestDrawCall(t, Options{}, false)

	d.DrawRanges(DrawRange{Offset: 4, Count: 2})
	assert.Zero(t, d.offsets.Reallocs())

	d.DrawRanges(DrawRange{Offset: 0, Count: 6}, DrawRange{Offset: 6, Count: 6}, DrawRange{Offset: 12, Count: 6})
	d.DrawRanges(DrawRange{Offset: 0, Count: 3}, DrawRange{Offset: 3, Count: 3})
	assert.Equal(t, 1, d.offsets.Reallocs())
	assert.Equal(t, 1, d.counts.Reallocs())
	assert.Equal(t, []int32{0, 3, 12}, d.offsets.Data()[:3], "stale tail is preserved, not cleared")

	d.DrawRanges()
	assert.Equal(t, 1, d.NumDraws())
}

func TestDrawCallUniformOrder(t *testing.T) {
	_, d, f := newTestDrawCall(t, Options{}, false)

	d.Uniform("uAlpha", 0.25)
	d.Uniform("uTint", []float32{1, 1, 1, 1})
	d.Uniform("uAlpha", 0.75)
	d.Draw()

	assert.Equal(t, []string{"uAlpha", "uTint"}, d.uniformNames)
	calls := f.Named("Uniform1f")
	require.Len(t, calls, 1)
	assert.Equal(t, float32(0.75), calls[0].Args[1])

	f.Reset()
	d.Draw()
	assert.Zero(t, f.Count("Uniform1f"))
	assert.Zero(t, f.Count("Uniformfv"))
	assert.Zero(t, f.Count("UseProgram"))
	assert.Zero(t, f.Count("BindVertexArray"))
}

func TestDrawCallBindsTexturesAndBlocks(t *testing.T) {
	c, d, f := newTestDrawCall(t, Options{}, false)
	albedo, err := c.CreateTexture2D(2, 2, nil, TextureOptions{})
	require.NoError(t, err)
	mask, err := c.CreateTexture2D(2, 2, nil, TextureOptions{})
	require.NoError(t, err)
	scene, err := c.CreateUniformBuffer([]gl.Enum{gl.FLOAT_MAT4, gl.FLOAT_VEC4}, 0)
	require.NoError(t, err)

	d.Texture("uMask", mask)
	d.Texture("uTexture", albedo)
	d.Texture("notASampler", albedo)
	d.UniformBlock("SceneUniforms", scene)
	f.Reset()
	d.Draw()

	assert.Equal(t, 0, albedo.CurrentUnit())
	assert.Equal(t, 1, mask.CurrentUnit())
	assert.Equal(t, 0, scene.CurrentBase())

	f.Reset()
	d.Draw()
	assert.Zero(t, f.Count("BindTexture"))
	assert.Zero(t, f.Count("BindBufferBase"))
	assert.Equal(t, 1, f.Count("DrawArraysInstanced"))
}

func TestDrawCallNilTextureRemovesBinding(t *testing.T) {
	c, d, f := newTestDrawCall(t, Options{}, false)
	albedo, err := c.CreateTexture2D(2, 2, nil, TextureOptions{})
	require.NoError(t, err)
	scene, err := c.CreateUniformBuffer([]gl.Enum{gl.FLOAT_MAT4, gl.FLOAT_VEC4}, 0)
	require.NoError(t, err)

	d.Texture("uMask", nil)
	d.Texture("uTexture", albedo)
	d.Texture("uTexture", nil)
	d.UniformBlock("SceneUniforms", scene)
	d.UniformBlock("SceneUniforms", nil)
	f.Reset()

	require.NotPanics(t, d.Draw)
	assert.Zero(t, f.Count("BindTexture"))
	assert.Zero(t, f.Count("BindBufferBase"))
	assert.Equal(t, 1, f.Count("DrawArraysInstanced"))
}
