package renderer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glkit/gl"
	"glkit/internal/glfake"
)

func newTestProgram(t *testing.T) (*Context, *Program, *glfake.Functions) {
	t.Helper()
	c, f := newTestContext(t, Options{})
	p := c.CreateProgram(testVertexShader, testFragmentShader)
	require.True(t, p.Linked(), "link: %v", p.Err())
	f.Reset()
	return c, p, f
}

func TestProgramReflection(t *testing.T) {
	c, f := newTestContext(t, Options{})
	p := c.CreateProgram(testVertexShader, testFragmentShader)
	require.True(t, p.Linked())

	unit, ok := p.SamplerUnit("uTexture")
	assert.True(t, ok)
	assert.Equal(t, 0, unit)
	unit, ok = p.SamplerUnit("uMask")
	assert.True(t, ok)
	assert.Equal(t, 1, unit)

	// Samplers are set once at link.
	sets := f.Named("Uniform1i")
	require.Len(t, sets, 2)
	assert.Equal(t, int32(0), sets[0].Args[1])
	assert.Equal(t, int32(1), sets[1].Args[1])

	binding, ok := p.UniformBlockBinding("SceneUniforms")
	assert.True(t, ok)
	assert.Equal(t, 0, binding)
	assert.Equal(t, 0, f.BlockBinding(p.Handle(), "SceneUniforms"))

	assert.Equal(t, 0, p.AttributeLocation("position"))
	assert.Equal(t, 1, p.AttributeLocation("uv"))
	assert.Equal(t, -1, p.AttributeLocation("missing"))
	assert.Equal(t, gl.Enum(gl.FLOAT_VEC2), p.Attributes()["uv"].Type)

	for _, name := range []string{"uMVP", "uTint", "uAlpha", "uMode", "uFlags", "uEnabled", "uToggles", "uLights"} {
		assert.True(t, p.HasUniform(name), name)
	}
	// Block members and samplers get no setter.
	assert.False(t, p.HasUniform("viewProj"))
	assert.False(t, p.HasUniform("uTexture"))
}

func TestScalarUniformDirtyCheck(t *testing.T) {
	_, p, f := newTestProgram(t)

	p.Uniform("uAlpha", float32(0))
	assert.Zero(t, f.Count("Uniform1f"), "zero matches the post-link default")

	p.Uniform("uAlpha", 0.5)
	p.Uniform("uAlpha", float32(0.5))
	assert.Equal(t, 1, f.Count("Uniform1f"))

	p.Uniform("uMode", 3)
	p.Uniform("uMode", int32(3))
	p.Uniform("uFlags", uint32(9))
	p.Uniform("uEnabled", true)
	p.Uniform("uEnabled", true)

	// Uniform1i calls: uMode once, uEnabled once.
	assert.Equal(t, 2, f.Count("Uniform1i"))
	assert.Equal(t, 1, f.Count("Uniform1ui"))
}

func TestVectorUniformUploadsWholeArray(t *testing.T) {
	_, p, f := newTestProgram(t)
	lights := make([]float32, 12)
	for i := range lights {
		lights[i] = float32(i)
	}

	p.Uniform("uLights", lights)
	p.Uniform("uLights", lights)
	require.Equal(t, 1, f.Count("Uniformfv"))

	changed := append([]float32(nil), lights...)
	changed[7] = 70
	p.Uniform("uLights", changed)

	calls := f.Named("Uniformfv")
	require.Len(t, calls, 2)
	assert.Equal(t, 3, calls[1].Args[1])
	assert.Equal(t, changed, calls[1].Args[2])
}

func TestVectorUniformAcceptsArrays(t *testing.T) {
	_, p, f := newTestProgram(t)

	p.Uniform("uTint", [4]float32{1, 0.5, 0.25, 1})
	p.Uniform("uTint", []float32{1, 0.5, 0.25, 1})

	assert.Equal(t, 1, f.Count("Uniformfv"))
}

func TestMatrixUniform(t *testing.T) {
	_, p, f := newTestProgram(t)

	p.Uniform("uMVP", identity())
	p.Uniform("uMVP", identity())

	calls := f.Named("UniformMatrixfv")
	require.Len(t, calls, 1)
	assert.Equal(t, 4, calls[0].Args[1])
	assert.Equal(t, 4, calls[0].Args[2])
	assert.Equal(t, false, calls[0].Args[3], "matrices upload untransposed")
	assert.Equal(t, identity(), calls[0].Args[4])
}

func TestBoolVectorUniform(t *testing.T) {
	_, p, f := newTestProgram(t)

	p.Uniform("uToggles", [2]bool{true, false})
	p.Uniform("uToggles", []bool{true, false})

	calls := f.Named("Uniformiv")
	require.Len(t, calls, 1)
	assert.Equal(t, []int32{1, 0}, calls[0].Args[2])
}

func TestUnknownUniformIsIgnored(t *testing.T) {
	_, p, f := newTestProgram(t)

	p.Uniform("doesNotExist", 1.0)

	assert.Empty(t, f.Calls)
}

func TestUnconvertibleUniformValueDropped(t *testing.T) {
	_, p, f := newTestProgram(t)
	logs := captureLogs(t)

	p.Uniform("uAlpha", "loud")

	assert.Zero(t, f.Count("Uniform1f"))
	assert.Contains(t, logs.String(), "uniform value dropped")
}

func TestUnsupportedUniformTypeSkipped(t *testing.T) {
	c, _ := newTestContext(t, Options{})
	logs := captureLogs(t)
	fs := strings.Replace(testFragmentShader, "out vec4 fragColor;",
		"layout(binding = 0) uniform atomic_uint counter;\nout vec4 fragColor;", 1)

	p := c.CreateProgram(testVertexShader, fs)

	require.True(t, p.Linked())
	assert.False(t, p.HasUniform("counter"))
	assert.Contains(t, logs.String(), "unsupported uniform type")
}

func TestCompileFailure(t *testing.T) {
	c, f := newTestContext(t, Options{})
	logs := captureLogs(t)
	fs := strings.Replace(testFragmentShader, "out vec4 fragColor;", "#error broken\nout vec4 fragColor;", 1)

	p := c.CreateProgram(testVertexShader, fs)

	assert.False(t, p.Linked())
	require.Error(t, p.Err())
	assert.Contains(t, p.Err().Error(), "compile fragment shader")
	assert.Contains(t, logs.String(), "shader compile failed")
	assert.Contains(t, logs.String(), "broken")
	assert.Zero(t, f.Count("LinkProgram"))

	f.Reset()
	c.CreateDrawCall(p, nil).Draw()
	assert.Zero(t, f.Count("DrawArraysInstanced"))
	assert.Zero(t, f.Count("UseProgram"))
}

func TestProgramFromShaders(t *testing.T) {
	c, f := newTestContext(t, Options{})
	vs := c.CreateShader(gl.VERTEX_SHADER, testVertexShader)
	fs := c.CreateShader(gl.FRAGMENT_SHADER, testFragmentShader)
	require.True(t, vs.Compiled())
	require.True(t, fs.Compiled())

	a := c.CreateProgramFromShaders(vs, fs)
	b := c.CreateProgramFromShaders(vs, fs)

	assert.True(t, a.Linked())
	assert.True(t, b.Linked())
	assert.Equal(t, 2, f.Count("CompileShader"))
	assert.Zero(t, f.Count("DeleteShader"), "shared shaders stay alive")

	broken := c.CreateShader(gl.FRAGMENT_SHADER, "#error nope\n")
	assert.False(t, broken.Compiled())
	assert.False(t, c.CreateProgramFromShaders(vs, broken).Linked())
}

func TestProgramSurvivesDeletedShaders(t *testing.T) {
	c, f := newTestContext(t, Options{})
	vs := c.CreateShader(gl.VERTEX_SHADER, testVertexShader)
	fs := c.CreateShader(gl.FRAGMENT_SHADER, testFragmentShader)
	p := c.CreateProgramFromShaders(vs, fs)
	require.True(t, p.Linked())

	vs.Delete()
	fs.Delete()
	f.Lose()
	f.Reset()
	c.Restore()

	require.True(t, p.Linked(), "relink: %v", p.Err())
	assert.True(t, p.HasUniform("uTint"))
	assert.Equal(t, 2, f.Count("CompileShader"), "recompiled from the shader sources")
	assert.Equal(t, 2, f.Count("DeleteShader"), "temporary shaders released after link")
}

func TestLinkFailureReleasesProgram(t *testing.T) {
	c, f := newTestContext(t, Options{})
	logs := captureLogs(t)
	vs := c.CreateShader(gl.VERTEX_SHADER, testVertexShader)

	p := c.CreateProgramFromShaders(vs, vs)

	assert.False(t, p.Linked())
	assert.Contains(t, p.Err().Error(), "link program")
	assert.Contains(t, logs.String(), "program link failed")
	assert.Zero(t, p.Handle())
	assert.Equal(t, 1, f.Count("DeleteProgram"))

	c.Restore()
	assert.Equal(t, 2, f.Count("CreateProgram"), "no handle carried over")
	assert.Equal(t, 2, f.Count("DeleteProgram"))

	p.Delete()
	assert.Equal(t, 2, f.Count("DeleteProgram"))
}

func TestDeleteCurrentProgram(t *testing.T) {
	c, p, f := newTestProgram(t)

	p.Delete()

	assert.Equal(t, 1, f.Count("UseProgram"))
	assert.Nil(t, c.State().Program())
	assert.Equal(t, 1, f.Count("DeleteProgram"))
}

func TestNumberLines(t *testing.T) {
	assert.Equal(t, "  1: a\n  2: b\n", numberLines("a\nb"))
}
