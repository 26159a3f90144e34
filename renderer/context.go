// Package renderer is a thin layer over OpenGL that caches binding state,
// reflects shader programs into dirty-checked uniform setters, packs uniform
// buffers and issues draw calls with as few driver calls as possible.
//
// All methods must be called from the goroutine that owns the GL context.
package renderer

import (
	"slices"

	"glkit/gl"
)

// Resource is a GPU object owned by a Context. Restore recreates the GPU
// side from the retained parameters after a context loss; Delete releases it.
type Resource interface {
	Restore()
	Delete()
}

// Options tune context creation. Zero values select the driver limits.
type Options struct {
	// DisableMultiDraw forces DrawCall to loop over its ranges even when the
	// driver exposes multi-draw.
	DisableMultiDraw bool `toml:"disable_multi_draw"`
	// MaxTextureUnits caps the texture units tracked by State.
	MaxTextureUnits int `toml:"max_texture_units"`
	// MaxUniformBuffers caps the uniform buffer bindings tracked by State.
	MaxUniformBuffers int `toml:"max_uniform_buffers"`
}

// Caps are the capabilities resolved once when the context is created.
type Caps struct {
	MultiDraw         bool
	MaxTextureUnits   int
	MaxUniformBuffers int
	Vendor            string
	Renderer          string
	Version           string
}

const (
	fallbackTextureUnits   = 16
	fallbackUniformBuffers = 24
)

// Context owns the bind state and every resource created through it.
type Context struct {
	gl        gl.Functions
	state     *State
	caps      Caps
	resources []Resource
}

// NewContext wraps f. The GL context behind f must be current.
func NewContext(f gl.Functions, opts Options) *Context {
	caps := Caps{
		MultiDraw:         f.SupportsMultiDraw() && !opts.DisableMultiDraw,
		MaxTextureUnits:   opts.MaxTextureUnits,
		MaxUniformBuffers: opts.MaxUniformBuffers,
		Vendor:            f.GetString(gl.VENDOR),
		Renderer:          f.GetString(gl.RENDERER),
		Version:           f.GetString(gl.VERSION),
	}
	if caps.MaxTextureUnits <= 0 {
		caps.MaxTextureUnits = f.GetInteger(gl.MAX_TEXTURE_IMAGE_UNITS)
	}
	if caps.MaxTextureUnits <= 0 {
		caps.MaxTextureUnits = fallbackTextureUnits
	}
	if caps.MaxUniformBuffers <= 0 {
		caps.MaxUniformBuffers = f.GetInteger(gl.MAX_UNIFORM_BUFFER_BINDINGS)
	}
	if caps.MaxUniformBuffers <= 0 {
		caps.MaxUniformBuffers = fallbackUniformBuffers
	}

	c := &Context{
		gl:    f,
		caps:  caps,
		state: newState(f, caps.MaxTextureUnits, caps.MaxUniformBuffers),
	}
	Logger().Info("renderer context created",
		"renderer", caps.Renderer,
		"version", caps.Version,
		"multiDraw", caps.MultiDraw,
		"textureUnits", caps.MaxTextureUnits,
		"uniformBuffers", caps.MaxUniformBuffers)
	return c
}

// Functions returns the GL entry points the context draws through.
func (c *Context) Functions() gl.Functions { return c.gl }

// State returns the bind state cache.
func (c *Context) State() *State { return c.state }

// Caps returns the capabilities resolved at creation.
func (c *Context) Caps() Caps { return c.caps }

// Resources returns the number of live resources.
func (c *Context) Resources() int { return len(c.resources) }

// Clear clears the buffers selected by mask on the bound draw framebuffer.
func (c *Context) Clear(mask gl.Enum) { c.gl.Clear(mask) }

// Restore recreates every live resource after a context loss. The bind state
// is forgotten first; storage resources (buffers, textures, shaders,
// renderbuffers, queries) are restored in creation order before the objects
// that reference them (programs, vertex arrays, framebuffers).
func (c *Context) Restore() {
	Logger().Info("restoring renderer context", "resources", len(c.resources))
	c.state.Reset()
	for _, r := range c.resources {
		if !references(r) {
			r.Restore()
		}
	}
	for _, r := range c.resources {
		if references(r) {
			r.Restore()
		}
	}
}

func references(r Resource) bool {
	switch r.(type) {
	case *Program, *VertexArray, *Framebuffer:
		return true
	}
	return false
}

func (c *Context) track(r Resource) {
	c.resources = append(c.resources, r)
}

func (c *Context) untrack(r Resource) {
	c.resources = slices.DeleteFunc(c.resources, func(o Resource) bool { return o == r })
}
