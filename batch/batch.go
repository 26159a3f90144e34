// Package batch draws many sprites through one shared vertex and index
// buffer, rewriting only the quads that changed since the last frame.
package batch

import (
	"errors"
	"fmt"

	"glkit/gl"
	"glkit/internal/growable"
	"glkit/renderer"
)

// Options configure a Batch.
type Options struct {
	// MaxQuadsPerDraw bounds how many quads one draw call covers. Longer
	// sprite lists are drawn in several flushes.
	MaxQuadsPerDraw int `toml:"max_quads_per_draw"`
	// InitialCapacity is the number of quads allocated up front.
	InitialCapacity int `toml:"initial_capacity"`
	// Color adds a per-vertex RGBA tint.
	Color bool `toml:"color"`
	// Layers samples a texture array with a per-sprite layer index.
	Layers bool `toml:"layers"`
}

// DefaultOptions returns tinted sprites without texture layers.
func DefaultOptions() Options {
	return Options{
		MaxQuadsPerDraw: 16384,
		InitialCapacity: 256,
		Color:           true,
	}
}

const (
	verticesPerQuad = 4
	indicesPerQuad  = 6
)

type layout struct {
	color  bool
	layers bool
}

func (l layout) floatsPerVertex() int {
	n := 2 + 2
	if l.color {
		n += 4
	}
	if l.layers {
		n++
	}
	return n
}

// Batch stages sprite vertices and draws them with a shared program.
type Batch struct {
	ctx    *renderer.Context
	opts   Options
	layout layout

	floatsPerQuad int

	program  *renderer.Program
	vertices *renderer.VertexBuffer
	indices  *renderer.IndexBuffer
	vao      *renderer.VertexArray
	draw     *renderer.DrawCall

	staging   growable.Slice[float32]
	occupants []*Sprite
	capacity  int

	written              bool
	dirtyStart, dirtyEnd int // in quads
}

// New compiles the sprite program and allocates the buffers.
func New(ctx *renderer.Context, opts Options) (*Batch, error) {
	if opts.MaxQuadsPerDraw <= 0 {
		return nil, fmt.Errorf("create batch: invalid max quads per draw %d", opts.MaxQuadsPerDraw)
	}
	// 32-bit indices address 4 vertices per quad.
	if opts.MaxQuadsPerDraw > (1<<30)-1 {
		return nil, errors.New("create batch: max quads per draw too large")
	}
	l := layout{color: opts.Color, layers: opts.Layers}
	b := &Batch{
		ctx:           ctx,
		opts:          opts,
		layout:        l,
		floatsPerQuad: l.floatsPerVertex() * verticesPerQuad,
	}

	vs, fs := shaderSources(l)
	b.program = ctx.CreateProgram(vs, fs)
	if err := b.program.Err(); err != nil {
		b.program.Delete()
		return nil, fmt.Errorf("create batch: %w", err)
	}

	initial := max(min(opts.InitialCapacity, opts.MaxQuadsPerDraw), 1)
	b.staging = growable.Make[float32](initial * b.floatsPerQuad)
	b.capacity = initial
	b.occupants = make([]*Sprite, initial)

	var err error
	b.vertices, err = ctx.CreateInterleavedBuffer(l.floatsPerVertex()*4, b.staging.Data(), gl.DYNAMIC_DRAW)
	if err != nil {
		b.program.Delete()
		return nil, fmt.Errorf("create batch: %w", err)
	}
	b.indices, err = ctx.CreateIndexBuffer(gl.UNSIGNED_INT, quadIndices(initial), gl.STATIC_DRAW)
	if err != nil {
		b.vertices.Delete()
		b.program.Delete()
		return nil, fmt.Errorf("create batch: %w", err)
	}

	b.vao = ctx.CreateVertexArray()
	b.attribute(attrPosition, 2, 0)
	offset := 2 * 4
	if l.color {
		b.attribute(attrColor, 4, offset)
		offset += 4 * 4
	}
	b.attribute(attrUV, 2, offset)
	offset += 2 * 4
	if l.layers {
		b.attribute(attrLayer, 1, offset)
	}
	b.vao.IndexBuffer(b.indices)

	b.draw = ctx.CreateDrawCall(b.program, b.vao)
	b.clean()
	return b, nil
}

func (b *Batch) attribute(name string, size, offset int) {
	loc := b.program.AttributeLocation(name)
	if loc < 0 {
		return
	}
	b.vao.VertexAttributeBuffer(loc, b.vertices, renderer.AttributeOptions{
		Type:   gl.FLOAT,
		Size:   size,
		Offset: offset,
	})
}

// quadIndices returns the (4i, 4i+1, 4i+2, 4i+2, 4i+3, 4i) pattern for n quads.
func quadIndices(n int) []uint32 {
	idx := make([]uint32, n*indicesPerQuad)
	for i := 0; i < n; i++ {
		base := uint32(i * verticesPerQuad)
		copy(idx[i*indicesPerQuad:], []uint32{base, base + 1, base + 2, base + 2, base + 3, base})
	}
	return idx
}

// Program returns the sprite program.
func (b *Batch) Program() *renderer.Program { return b.program }

// DrawCall returns the draw call used for every flush, for setting extra
// uniforms.
func (b *Batch) DrawCall() *renderer.DrawCall { return b.draw }

// SetProjection sets the matrix applied to sprite positions.
func (b *Batch) SetProjection(m renderer.Floats) { b.draw.Uniform(uniformProjection, m) }

// SetTexture sets the texture sampled by every sprite. It must be a texture
// array when the batch uses layers.
func (b *Batch) SetTexture(t *renderer.Texture) { b.draw.Texture(uniformTexture, t) }

// Capacity returns the number of quads the buffers hold.
func (b *Batch) Capacity() int { return b.capacity }

// Render draws sprites in order. A quad is rewritten only when its sprite is
// dirty, a different sprite held its slot last frame, or the list is longer
// than MaxQuadsPerDraw so slots are shared between flushes.
func (b *Batch) Render(sprites []*Sprite) {
	n := len(sprites)
	if n == 0 {
		return
	}
	perDraw := b.opts.MaxQuadsPerDraw
	b.ensureCapacity(min(n, perDraw))
	split := n > perDraw
	if split {
		// Occupants only describe the last chunk; forget them.
		clear(b.occupants)
	}

	staging := b.staging.Data()
	count := 0
	for _, s := range sprites {
		if s.dirty || split || b.occupants[count] != s {
			s.write(staging[count*b.floatsPerQuad:(count+1)*b.floatsPerQuad], b.layout)
			b.occupants[count] = s
			b.markDirty(count)
		}
		count++
		if count == perDraw {
			b.flush(count)
			count = 0
		}
	}
	if count > 0 {
		b.flush(count)
	}
	if split {
		clear(b.occupants)
	}
}

// ensureCapacity grows the staging and GPU buffers to hold n quads. Growth
// rewrites every slot.
func (b *Batch) ensureCapacity(n int) {
	if n <= b.capacity {
		return
	}
	b.staging.EnsureCapacity(n * b.floatsPerQuad)
	b.capacity = b.staging.Len() / b.floatsPerQuad
	b.occupants = make([]*Sprite, b.capacity)
	b.vertices.Data(b.staging.Data())
	b.indices.Data(quadIndices(b.capacity))
	b.clean()
	renderer.Logger().Debug("sprite batch grown", "quads", b.capacity)
}

func (b *Batch) markDirty(slot int) {
	b.written = true
	b.dirtyStart = min(b.dirtyStart, slot)
	b.dirtyEnd = max(b.dirtyEnd, slot+1)
}

func (b *Batch) clean() {
	b.written = false
	b.dirtyStart = b.capacity
	b.dirtyEnd = 0
}

// flush uploads the dirty quad range and draws the first count quads.
func (b *Batch) flush(count int) {
	if b.written {
		start, end := b.dirtyStart*b.floatsPerQuad, b.dirtyEnd*b.floatsPerQuad
		b.vertices.SubData(start*4, b.staging.Data()[start:end])
		b.clean()
	}
	b.draw.DrawRanges(renderer.DrawRange{Count: count * indicesPerQuad})
	b.draw.Draw()
}

// Quad returns a copy of the staged vertex floats of slot.
func (b *Batch) Quad(slot int) []float32 {
	if slot < 0 || slot >= b.capacity {
		return nil
	}
	q := make([]float32, b.floatsPerQuad)
	copy(q, b.staging.Data()[slot*b.floatsPerQuad:])
	return q
}

// Delete releases the program, buffers and vertex array.
func (b *Batch) Delete() {
	b.vao.Delete()
	b.indices.Delete()
	b.vertices.Delete()
	b.program.Delete()
}
