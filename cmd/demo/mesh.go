package main

import (
	"fmt"

	"glkit/asset"
	"glkit/gl"
	"glkit/math"
	"glkit/renderer"
)

const meshVertexShader = `#version 410 core
layout(location = 0) in vec3 aPosition;
layout(location = 1) in vec2 aUV;

layout(std140) uniform MeshUniforms {
	mat4 mvp;
	vec4 tint;
};

out vec2 vUV;

void main() {
	vUV = aUV;
	gl_Position = mvp * vec4(aPosition, 1.0);
}
`

const meshFragmentShader = `#version 410 core
in vec2 vUV;

layout(std140) uniform MeshUniforms {
	mat4 mvp;
	vec4 tint;
};

uniform sampler2D uTexture;

out vec4 fragColor;

void main() {
	fragColor = texture(uTexture, vUV) * tint;
}
`

// Slots of the MeshUniforms block.
const (
	slotMVP = iota
	slotTint
)

// meshLayer draws one indexed mesh with its transform in a uniform buffer.
type meshLayer struct {
	ctx       *renderer.Context
	program   *renderer.Program
	positions *renderer.VertexBuffer
	uvs       *renderer.VertexBuffer
	indices   *renderer.IndexBuffer
	vao       *renderer.VertexArray
	uniforms  *renderer.UniformBuffer
	texture   *renderer.Texture
	draw      *renderer.DrawCall
	radius    float32
	camera    *orbitCamera
}

func newMeshLayer(ctx *renderer.Context, m *asset.Mesh) (*meshLayer, error) {
	r := meshRadius(m)
	l := &meshLayer{ctx: ctx, radius: r, camera: newOrbitCamera(math.Vec3Zero, 3*r)}
	l.program = ctx.CreateProgram(meshVertexShader, meshFragmentShader)
	if err := l.program.Err(); err != nil {
		return nil, fmt.Errorf("mesh layer: %w", err)
	}

	var err error
	if l.positions, err = ctx.CreateVertexBuffer(gl.FLOAT, 3, m.Positions, gl.STATIC_DRAW); err != nil {
		return nil, err
	}
	if l.uvs, err = ctx.CreateVertexBuffer(gl.FLOAT, 2, m.UVs, gl.STATIC_DRAW); err != nil {
		return nil, err
	}
	if l.indices, err = ctx.CreateIndexBuffer(gl.UNSIGNED_INT, m.Indices, gl.STATIC_DRAW); err != nil {
		return nil, err
	}
	l.vao = ctx.CreateVertexArray()
	l.vao.VertexAttributeBuffer(0, l.positions, renderer.AttributeOptions{})
	l.vao.VertexAttributeBuffer(1, l.uvs, renderer.AttributeOptions{})
	l.vao.IndexBuffer(l.indices)

	l.uniforms, err = ctx.CreateUniformBuffer([]gl.Enum{gl.FLOAT_MAT4, gl.FLOAT_VEC4}, gl.DYNAMIC_DRAW)
	if err != nil {
		return nil, err
	}

	img := m.Texture
	if img == nil {
		img = asset.Solid(255, 255, 255, 255)
	}
	l.texture, err = ctx.CreateTexture2D(img.Width, img.Height, img.Pix, renderer.TextureOptions{Mipmaps: true})
	if err != nil {
		return nil, err
	}

	l.draw = ctx.CreateDrawCall(l.program, l.vao)
	l.draw.UniformBlock("MeshUniforms", l.uniforms)
	l.draw.Texture("uTexture", l.texture)
	return l, nil
}

// meshRadius is the largest distance of a vertex from the origin.
func meshRadius(m *asset.Mesh) float32 {
	var r float32
	for i := 0; i+2 < len(m.Positions); i += 3 {
		r = max(r, math.NewVec3(m.Positions[i], m.Positions[i+1], m.Positions[i+2]).Length())
	}
	return max(r, 1)
}

// Draw renders the mesh turning about Z as seen by the layer's camera.
func (l *meshLayer) Draw(time, aspect float32, tint [3]float32) {
	mvp := l.camera.ViewProjection(aspect).Mul(math.RotationZ(time * 0.5))

	l.uniforms.Set(slotMVP, mvp)
	l.uniforms.Set(slotTint, [4]float32{1 - tint[0]*0.5, 1 - tint[1]*0.5, 1 - tint[2]*0.5, 1})
	l.uniforms.Update()

	state := l.ctx.State()
	state.Enable(gl.DEPTH_TEST)
	l.draw.Draw()
	state.Disable(gl.DEPTH_TEST)
}

func (l *meshLayer) Delete() {
	l.vao.Delete()
	l.positions.Delete()
	l.uvs.Delete()
	l.indices.Delete()
	l.uniforms.Delete()
	l.texture.Delete()
	l.program.Delete()
}
