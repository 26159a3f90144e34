package renderer

import (
	"bytes"
	"encoding/binary"
	"log/slog"
	"math"
	"testing"

	"glkit/internal/glfake"
)

const testVertexShader = `#version 410 core
layout(location = 0) in vec2 position;
in vec2 uv;

uniform mat4 uMVP;

out vec2 vUV;

void main() {
	vUV = uv;
	gl_Position = uMVP * vec4(position, 0.0, 1.0);
}
`

const testFragmentShader = `#version 410 core
in vec2 vUV;

uniform sampler2D uTexture;
uniform sampler2D uMask;
uniform vec4 uTint;
uniform float uAlpha;
uniform int uMode;
uniform uint uFlags;
uniform bool uEnabled;
uniform bvec2 uToggles;
uniform vec3 uLights[4];

uniform SceneUniforms {
	mat4 viewProj;
	vec4 ambient;
};

out vec4 fragColor;

void main() {
	fragColor = texture(uTexture, vUV) * texture(uMask, vUV) * uTint * ambient;
}
`

func newTestContext(t *testing.T, opts Options) (*Context, *glfake.Functions) {
	t.Helper()
	f := glfake.New()
	c := NewContext(f, opts)
	f.Reset()
	return c, f
}

// captureLogs routes the package logger into a buffer for the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	orig := Logger()
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(orig) })
	return &buf
}

func decodeFloats(b []byte) []float32 {
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return out
}

func decodeUint32s(b []byte) []uint32 {
	out := make([]uint32, len(b)/4)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return out
}

func identity() []float32 {
	return []float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
}
