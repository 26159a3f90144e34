package renderer

import (
	"fmt"
	"slices"

	"glkit/gl"
)

// TextureOptions describe texture storage and sampling. Zero fields take the
// defaults: RGBA8 storage from RGBA/UNSIGNED_BYTE pixels, LINEAR filtering
// and REPEAT wrapping.
type TextureOptions struct {
	InternalFormat gl.Enum
	Format         gl.Enum
	Type           gl.Enum
	MinFilter      gl.Enum
	MagFilter      gl.Enum
	WrapS          gl.Enum
	WrapT          gl.Enum
	Mipmaps        bool
}

func (o TextureOptions) withDefaults() TextureOptions {
	if o.InternalFormat == 0 {
		o.InternalFormat = gl.RGBA8
	}
	if o.Format == 0 {
		o.Format = gl.RGBA
	}
	if o.Type == 0 {
		o.Type = gl.UNSIGNED_BYTE
	}
	if o.MinFilter == 0 {
		if o.Mipmaps {
			o.MinFilter = gl.LINEAR_MIPMAP_NEAREST
		} else {
			o.MinFilter = gl.LINEAR
		}
	}
	if o.MagFilter == 0 {
		o.MagFilter = gl.LINEAR
	}
	if o.WrapS == 0 {
		o.WrapS = gl.REPEAT
	}
	if o.WrapT == 0 {
		o.WrapT = gl.REPEAT
	}
	return o
}

// Texture is a 2D texture or a 2D texture array.
type Texture struct {
	ctx         *Context
	handle      gl.Texture
	target      gl.Enum
	width       int
	height      int
	depth       int
	opts        TextureOptions
	pixels      []byte
	currentUnit int
}

// CreateTexture2D creates a 2D texture. pixels may be nil to allocate
// uninitialised storage, as for render targets.
func (c *Context) CreateTexture2D(width, height int, pixels []byte, opts TextureOptions) (*Texture, error) {
	return c.createTexture(gl.TEXTURE_2D, width, height, 1, pixels, opts)
}

// CreateTextureArray creates a 2D texture array with depth layers. pixels
// holds the layers back to back, or is nil.
func (c *Context) CreateTextureArray(width, height, depth int, pixels []byte, opts TextureOptions) (*Texture, error) {
	return c.createTexture(gl.TEXTURE_2D_ARRAY, width, height, depth, pixels, opts)
}

func (c *Context) createTexture(target gl.Enum, width, height, depth int, pixels []byte, opts TextureOptions) (*Texture, error) {
	if width <= 0 || height <= 0 || depth <= 0 {
		return nil, fmt.Errorf("create texture: invalid size %dx%dx%d", width, height, depth)
	}
	t := &Texture{
		ctx:         c,
		target:      target,
		width:       width,
		height:      height,
		depth:       depth,
		opts:        opts.withDefaults(),
		pixels:      slices.Clone(pixels),
		currentUnit: -1,
	}
	t.create()
	c.track(t)
	return t, nil
}

func (t *Texture) create() {
	f := t.ctx.gl
	t.handle = f.CreateTexture()
	t.ctx.state.bindTextureForUpdate(t)
	f.TexParameteri(t.target, gl.TEXTURE_MIN_FILTER, int(t.opts.MinFilter))
	f.TexParameteri(t.target, gl.TEXTURE_MAG_FILTER, int(t.opts.MagFilter))
	f.TexParameteri(t.target, gl.TEXTURE_WRAP_S, int(t.opts.WrapS))
	f.TexParameteri(t.target, gl.TEXTURE_WRAP_T, int(t.opts.WrapT))
	t.upload()
}

func (t *Texture) upload() {
	f := t.ctx.gl
	if t.target == gl.TEXTURE_2D_ARRAY {
		f.TexImage3D(t.target, 0, t.opts.InternalFormat, t.width, t.height, t.depth,
			t.opts.Format, t.opts.Type, t.pixels)
	} else {
		f.TexImage2D(t.target, 0, t.opts.InternalFormat, t.width, t.height,
			t.opts.Format, t.opts.Type, t.pixels)
	}
	if t.opts.Mipmaps && t.pixels != nil {
		f.GenerateMipmap(t.target)
	}
}

// Handle returns the GL texture name.
func (t *Texture) Handle() gl.Texture { return t.handle }

// Target returns TEXTURE_2D or TEXTURE_2D_ARRAY.
func (t *Texture) Target() gl.Enum { return t.target }

// Size returns the width, height and layer count.
func (t *Texture) Size() (width, height, depth int) { return t.width, t.height, t.depth }

// CurrentUnit returns the texture unit the texture is bound to, or -1.
func (t *Texture) CurrentUnit() int { return t.currentUnit }

// Bind binds the texture to a texture unit.
func (t *Texture) Bind(unit int) { t.ctx.state.BindTexture(unit, t) }

// Data replaces the whole image.
func (t *Texture) Data(pixels []byte) {
	t.pixels = slices.Clone(pixels)
	t.ctx.state.bindTextureForUpdate(t)
	t.upload()
}

// Layer replaces one layer of a texture array.
func (t *Texture) Layer(layer int, pixels []byte) {
	if t.target != gl.TEXTURE_2D_ARRAY || layer < 0 || layer >= t.depth {
		Logger().Warn("texture layer out of range", "layer", layer, "depth", t.depth)
		return
	}
	layerSize := len(pixels)
	if t.pixels == nil {
		t.pixels = make([]byte, layerSize*t.depth)
	}
	if off := layer * layerSize; off+layerSize <= len(t.pixels) {
		copy(t.pixels[off:], pixels)
	}
	t.ctx.state.bindTextureForUpdate(t)
	t.ctx.gl.TexSubImage3D(t.target, 0, 0, 0, layer, t.width, t.height, 1,
		t.opts.Format, t.opts.Type, pixels)
	if t.opts.Mipmaps {
		t.ctx.gl.GenerateMipmap(t.target)
	}
}

// Resize reallocates storage at the new size, discarding the contents.
// Texture arrays keep their layer count.
func (t *Texture) Resize(width, height int) {
	if width == t.width && height == t.height {
		return
	}
	t.width, t.height = width, height
	t.pixels = nil
	t.ctx.state.bindTextureForUpdate(t)
	t.upload()
}

// Restore recreates the texture with its last contents.
func (t *Texture) Restore() { t.create() }

// Delete releases the texture.
func (t *Texture) Delete() {
	if t.handle != 0 {
		t.ctx.state.unbindTexture(t)
		t.ctx.gl.DeleteTexture(t.handle)
		t.handle = 0
	}
	t.ctx.untrack(t)
}
