package main

import (
	"fmt"
	"time"

	"glkit/gl"
	"glkit/renderer"
)

// ppVertSrc draws a fullscreen triangle from gl_VertexID; no vertex buffer
// is bound.
const ppVertSrc = `#version 410 core
out vec2 fragUV;
void main() {
	const vec2 pos[3] = vec2[3](
		vec2(-1.0, -1.0),
		vec2( 3.0, -1.0),
		vec2(-1.0,  3.0)
	);
	gl_Position = vec4(pos[gl_VertexID], 0.0, 1.0);
	fragUV      = pos[gl_VertexID] * 0.5 + 0.5;
}
`

// ppFragSrc applies exposure, Reinhard tone mapping, gamma 2.2 and a
// vignette.
const ppFragSrc = `#version 410 core
in  vec2 fragUV;
out vec4 outColor;

uniform sampler2D hdrBuffer;
uniform float     exposure;
uniform float     vignette;

void main() {
	vec3 hdr = texture(hdrBuffer, fragUV).rgb;
	vec3 mapped = vec3(1.0) - exp(-hdr * exposure);
	mapped = pow(mapped, vec3(1.0 / 2.2));

	vec2 d = fragUV - 0.5;
	mapped *= 1.0 - vignette * dot(d, d) * 2.0;
	outColor = vec4(mapped, 1.0);
}
`

// postProcess is an HDR off-screen target resolved to the default
// framebuffer with tone mapping. The scene pass is timed with a
// TIME_ELAPSED query.
type postProcess struct {
	ctx    *renderer.Context
	fbo    *renderer.Framebuffer
	color  *renderer.Texture
	depth  *renderer.Renderbuffer
	quad   *renderer.VertexArray
	prog   *renderer.Program
	draw   *renderer.DrawCall
	timing *renderer.Query

	Exposure float32
	Vignette float32
	gpuTime  time.Duration
}

func newPostProcess(ctx *renderer.Context, width, height int) (*postProcess, error) {
	pp := &postProcess{ctx: ctx, Exposure: 1.2, Vignette: 0.6}

	pp.prog = ctx.CreateProgram(ppVertSrc, ppFragSrc)
	if err := pp.prog.Err(); err != nil {
		return nil, fmt.Errorf("post-process shader: %w", err)
	}

	var err error
	pp.color, err = ctx.CreateTexture2D(width, height, nil, renderer.TextureOptions{
		InternalFormat: gl.RGBA16F,
		Type:           gl.HALF_FLOAT,
		WrapS:          gl.CLAMP_TO_EDGE,
		WrapT:          gl.CLAMP_TO_EDGE,
	})
	if err != nil {
		pp.prog.Delete()
		return nil, fmt.Errorf("post-process target: %w", err)
	}
	pp.depth = ctx.CreateRenderbuffer(width, height, gl.DEPTH_COMPONENT24, 0)

	pp.fbo = ctx.CreateFramebuffer()
	pp.fbo.ColorTarget(0, pp.color)
	pp.fbo.DepthRenderbuffer(pp.depth)
	if status := pp.fbo.Status(); status != gl.FRAMEBUFFER_COMPLETE {
		pp.Delete()
		return nil, fmt.Errorf("post-process framebuffer incomplete: 0x%x", uint32(status))
	}
	ctx.State().BindFramebuffer(gl.FRAMEBUFFER, nil)

	pp.quad = ctx.CreateVertexArray()
	pp.quad.SetCounts(3, 1)
	pp.draw = ctx.CreateDrawCall(pp.prog, pp.quad)
	pp.draw.Texture("hdrBuffer", pp.color)

	pp.timing = ctx.CreateQuery(gl.TIME_ELAPSED)
	return pp, nil
}

// Begin redirects drawing into the off-screen target.
func (pp *postProcess) Begin() {
	pp.fbo.Bind()
	pp.timing.Begin()
}

// End resolves the off-screen target into the default framebuffer.
func (pp *postProcess) End() {
	pp.timing.End()
	if pp.timing.Ready() {
		pp.gpuTime = time.Duration(pp.timing.Result())
	}

	pp.ctx.State().BindFramebuffer(gl.DRAW_FRAMEBUFFER, nil)
	pp.draw.Uniform("exposure", pp.Exposure)
	pp.draw.Uniform("vignette", pp.Vignette)
	pp.draw.Draw()
}

// GPUTime is the duration of the most recently completed scene pass.
func (pp *postProcess) GPUTime() time.Duration { return pp.gpuTime }

func (pp *postProcess) Resize(width, height int) { pp.fbo.Resize(width, height) }

func (pp *postProcess) Delete() {
	if pp.draw != nil {
		pp.quad.Delete()
		pp.timing.Delete()
	}
	pp.fbo.Delete()
	pp.depth.Delete()
	pp.color.Delete()
	pp.prog.Delete()
}
