package renderer

import (
	"glkit/gl"
)

// Renderbuffer is color or depth storage that is rendered to but never
// sampled, optionally multisampled.
type Renderbuffer struct {
	ctx            *Context
	handle         gl.Renderbuffer
	width, height  int
	internalFormat gl.Enum
	samples        int
}

// CreateRenderbuffer allocates width x height storage of internalFormat
// with the given sample count; 0 samples disables multisampling.
func (c *Context) CreateRenderbuffer(width, height int, internalFormat gl.Enum, samples int) *Renderbuffer {
	r := &Renderbuffer{
		ctx:            c,
		width:          width,
		height:         height,
		internalFormat: internalFormat,
		samples:        samples,
	}
	r.create()
	c.track(r)
	return r
}

func (r *Renderbuffer) create() {
	r.handle = r.ctx.gl.CreateRenderbuffer()
	r.storage()
}

func (r *Renderbuffer) storage() {
	f := r.ctx.gl
	f.BindRenderbuffer(gl.RENDERBUFFER, r.handle)
	f.RenderbufferStorageMultisample(gl.RENDERBUFFER, r.samples, r.internalFormat, r.width, r.height)
	f.BindRenderbuffer(gl.RENDERBUFFER, 0)
}

// Handle returns the GL renderbuffer name.
func (r *Renderbuffer) Handle() gl.Renderbuffer { return r.handle }

// Resize reallocates the storage.
func (r *Renderbuffer) Resize(width, height int) {
	if width == r.width && height == r.height {
		return
	}
	r.width, r.height = width, height
	r.storage()
}

// Restore recreates the renderbuffer.
func (r *Renderbuffer) Restore() { r.create() }

// Delete releases the renderbuffer.
func (r *Renderbuffer) Delete() {
	if r.handle != 0 {
		r.ctx.gl.DeleteRenderbuffer(r.handle)
		r.handle = 0
	}
	r.ctx.untrack(r)
}
