package renderer

import (
	"fmt"

	"glkit/gl"
)

// attachment is a texture, texture-array layer or renderbuffer bound to one
// framebuffer attachment point.
type attachment struct {
	texture      *Texture
	layer        int
	renderbuffer *Renderbuffer
}

func (a attachment) empty() bool { return a.texture == nil && a.renderbuffer == nil }

func (a attachment) resize(width, height int) {
	switch {
	case a.texture != nil:
		a.texture.Resize(width, height)
	case a.renderbuffer != nil:
		a.renderbuffer.Resize(width, height)
	}
}

// Framebuffer is an offscreen render target.
type Framebuffer struct {
	ctx    *Context
	handle gl.Framebuffer

	colors []attachment
	depth  attachment

	width, height int
}

// CreateFramebuffer creates a framebuffer with no attachments.
func (c *Context) CreateFramebuffer() *Framebuffer {
	fb := &Framebuffer{ctx: c}
	fb.handle = c.gl.CreateFramebuffer()
	c.track(fb)
	return fb
}

// Handle returns the GL framebuffer name.
func (fb *Framebuffer) Handle() gl.Framebuffer { return fb.handle }

// Size returns the size of the attachments.
func (fb *Framebuffer) Size() (width, height int) { return fb.width, fb.height }

// ColorTarget attaches a 2D texture as color attachment index.
func (fb *Framebuffer) ColorTarget(index int, t *Texture) {
	fb.setColor(index, attachment{texture: t})
	fb.width, fb.height = t.width, t.height
}

// ColorTargetLayer attaches one layer of a texture array as color attachment
// index.
func (fb *Framebuffer) ColorTargetLayer(index int, t *Texture, layer int) {
	fb.setColor(index, attachment{texture: t, layer: layer})
	fb.width, fb.height = t.width, t.height
}

// ColorRenderbuffer attaches a renderbuffer as color attachment index.
func (fb *Framebuffer) ColorRenderbuffer(index int, r *Renderbuffer) {
	fb.setColor(index, attachment{renderbuffer: r})
	fb.width, fb.height = r.width, r.height
}

// DepthTarget attaches a depth texture.
func (fb *Framebuffer) DepthTarget(t *Texture) {
	fb.depth = attachment{texture: t}
	fb.attach(gl.DEPTH_ATTACHMENT, fb.depth)
	fb.width, fb.height = t.width, t.height
}

// DepthRenderbuffer attaches a depth renderbuffer.
func (fb *Framebuffer) DepthRenderbuffer(r *Renderbuffer) {
	fb.depth = attachment{renderbuffer: r}
	fb.attach(gl.DEPTH_ATTACHMENT, fb.depth)
	fb.width, fb.height = r.width, r.height
}

func (fb *Framebuffer) setColor(index int, a attachment) {
	for len(fb.colors) <= index {
		fb.colors = append(fb.colors, attachment{})
	}
	fb.colors[index] = a
	fb.attach(gl.COLOR_ATTACHMENT0+gl.Enum(index), a)
	fb.drawBuffers()
}

func (fb *Framebuffer) attach(point gl.Enum, a attachment) {
	f := fb.ctx.gl
	fb.ctx.state.BindFramebuffer(gl.DRAW_FRAMEBUFFER, fb)
	switch {
	case a.renderbuffer != nil:
		f.FramebufferRenderbuffer(gl.DRAW_FRAMEBUFFER, point, gl.RENDERBUFFER, a.renderbuffer.handle)
	case a.texture != nil && a.texture.target == gl.TEXTURE_2D_ARRAY:
		f.FramebufferTextureLayer(gl.DRAW_FRAMEBUFFER, point, a.texture.handle, 0, a.layer)
	case a.texture != nil:
		f.FramebufferTexture2D(gl.DRAW_FRAMEBUFFER, point, a.texture.target, a.texture.handle, 0)
	}
}

func (fb *Framebuffer) drawBuffers() {
	bufs := make([]gl.Enum, len(fb.colors))
	for i, a := range fb.colors {
		if a.empty() {
			bufs[i] = gl.NONE
		} else {
			bufs[i] = gl.COLOR_ATTACHMENT0 + gl.Enum(i)
		}
	}
	fb.ctx.gl.DrawBuffers(bufs)
}

func (fb *Framebuffer) reattach() {
	for i, a := range fb.colors {
		if !a.empty() {
			fb.attach(gl.COLOR_ATTACHMENT0+gl.Enum(i), a)
		}
	}
	if !fb.depth.empty() {
		fb.attach(gl.DEPTH_ATTACHMENT, fb.depth)
	}
	if len(fb.colors) > 0 {
		fb.drawBuffers()
	}
}

// Resize resizes every attachment and reattaches them.
func (fb *Framebuffer) Resize(width, height int) {
	for _, a := range fb.colors {
		a.resize(width, height)
	}
	fb.depth.resize(width, height)
	fb.width, fb.height = width, height
	fb.reattach()
}

// Status checks completeness. Incomplete framebuffers are logged.
func (fb *Framebuffer) Status() gl.Enum {
	fb.ctx.state.BindFramebuffer(gl.DRAW_FRAMEBUFFER, fb)
	status := fb.ctx.gl.CheckFramebufferStatus(gl.DRAW_FRAMEBUFFER)
	if status != gl.FRAMEBUFFER_COMPLETE {
		Logger().Error("framebuffer incomplete", "status", fmt.Sprintf("0x%X", uint32(status)))
	}
	return status
}

// Bind binds the framebuffer for drawing.
func (fb *Framebuffer) Bind() { fb.ctx.state.BindFramebuffer(gl.DRAW_FRAMEBUFFER, fb) }

// BindForRead binds the framebuffer as the read source.
func (fb *Framebuffer) BindForRead() { fb.ctx.state.BindFramebuffer(gl.READ_FRAMEBUFFER, fb) }

// Restore recreates the framebuffer and its attachment points. Attached
// textures and renderbuffers are restored before framebuffers.
func (fb *Framebuffer) Restore() {
	fb.handle = fb.ctx.gl.CreateFramebuffer()
	fb.reattach()
}

// Delete releases the framebuffer. Attachments are not deleted.
func (fb *Framebuffer) Delete() {
	if fb.handle != 0 {
		fb.ctx.state.unbindFramebuffer(fb)
		fb.ctx.gl.DeleteFramebuffer(fb.handle)
		fb.handle = 0
	}
	fb.ctx.untrack(fb)
}
