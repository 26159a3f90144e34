package renderer

import (
	"slices"

	"glkit/gl"
	"glkit/internal/growable"
)

// DrawRange is one sub-draw: Count elements starting at element Offset,
// drawn Instances times. Instances below 1 mean 1.
type DrawRange struct {
	Offset    int
	Count     int
	Instances int
}

// DrawCall bundles a program, a vertex array and the uniforms, uniform
// blocks and textures to bind before drawing.
type DrawCall struct {
	ctx         *Context
	program     *Program
	vertexArray *VertexArray
	primitive   gl.Enum

	uniformIndex  map[string]int
	uniformNames  []string
	uniformValues []any

	blockNames []string
	blocks     map[string]*UniformBuffer

	textureNames []string
	textures     map[string]*Texture

	offsets     growable.Slice[int32]
	counts      growable.Slice[int32]
	instances   growable.Slice[int32]
	byteOffsets growable.Slice[int32]
	numDraws    int
	ranged      bool
}

// CreateDrawCall creates a draw call drawing TRIANGLES. va may be nil for
// shaders that generate their vertices; such draws are never indexed.
func (c *Context) CreateDrawCall(p *Program, va *VertexArray) *DrawCall {
	return &DrawCall{
		ctx:          c,
		program:      p,
		vertexArray:  va,
		primitive:    gl.TRIANGLES,
		uniformIndex: make(map[string]int),
		blocks:       make(map[string]*UniformBuffer),
		textures:     make(map[string]*Texture),
		offsets:      growable.Make[int32](1),
		counts:       growable.Make[int32](1),
		instances:    growable.Make[int32](1),
		byteOffsets:  growable.Make[int32](1),
		numDraws:     1,
	}
}

// Primitive sets the primitive mode.
func (d *DrawCall) Primitive(mode gl.Enum) { d.primitive = mode }

// Program returns the program drawn with.
func (d *DrawCall) Program() *Program { return d.program }

// Uniform records a value pushed to the program on every Draw. The first
// write of a name fixes its position; later writes replace the value.
func (d *DrawCall) Uniform(name string, v any) {
	if i, ok := d.uniformIndex[name]; ok {
		d.uniformValues[i] = v
		return
	}
	d.uniformIndex[name] = len(d.uniformNames)
	d.uniformNames = append(d.uniformNames, name)
	d.uniformValues = append(d.uniformValues, v)
}

// UniformBlock binds u to the named uniform block on every Draw.
// A nil u removes the block.
func (d *DrawCall) UniformBlock(name string, u *UniformBuffer) {
	if u == nil {
		delete(d.blocks, name)
		d.blockNames = slices.DeleteFunc(d.blockNames, func(n string) bool { return n == name })
		return
	}
	if _, ok := d.blocks[name]; !ok {
		d.blockNames = append(d.blockNames, name)
	}
	d.blocks[name] = u
}

// Texture binds t to the texture unit of the named sampler on every Draw.
// A nil t removes the binding.
func (d *DrawCall) Texture(name string, t *Texture) {
	if t == nil {
		delete(d.textures, name)
		d.textureNames = slices.DeleteFunc(d.textureNames, func(n string) bool { return n == name })
		return
	}
	if _, ok := d.textures[name]; !ok {
		d.textureNames = append(d.textureNames, name)
	}
	d.textures[name] = t
}

// DrawRanges replaces the vertex array's default counts with explicit
// sub-draws. Calling it with no ranges restores the defaults.
func (d *DrawCall) DrawRanges(ranges ...DrawRange) {
	if len(ranges) == 0 {
		d.ranged = false
		d.numDraws = 1
		return
	}
	n := len(ranges)
	d.offsets.EnsureCapacity(n)
	d.counts.EnsureCapacity(n)
	d.instances.EnsureCapacity(n)
	offsets, counts, instances := d.offsets.Data(), d.counts.Data(), d.instances.Data()
	for i, r := range ranges {
		offsets[i] = int32(r.Offset)
		counts[i] = int32(r.Count)
		instances[i] = int32(max(r.Instances, 1))
	}
	d.numDraws = n
	d.ranged = true
}

// NumDraws returns the number of sub-draws issued by Draw.
func (d *DrawCall) NumDraws() int { return d.numDraws }

// Draw binds everything and issues the draw. Draws with a program that
// failed to compile or link are skipped.
func (d *DrawCall) Draw() {
	p := d.program
	if p == nil || !p.Linked() {
		Logger().Debug("draw skipped: program not linked", "err", p.errOrNil())
		return
	}
	state := d.ctx.state
	state.BindProgram(p)
	if d.vertexArray != nil {
		state.BindVertexArray(d.vertexArray)
	}

	for i, name := range d.uniformNames {
		p.Uniform(name, d.uniformValues[i])
	}
	for _, name := range d.blockNames {
		if binding, ok := p.blocks[name]; ok {
			d.blocks[name].Bind(binding)
		}
	}
	for _, name := range d.textureNames {
		if unit, ok := p.samplers[name]; ok {
			d.textures[name].Bind(unit)
		}
	}

	if !d.ranged {
		d.defaultRange()
	}
	n := d.numDraws
	offsets := d.offsets.Data()[:n]
	counts := d.counts.Data()[:n]
	instances := d.instances.Data()[:n]

	f := d.ctx.gl
	indexed := d.vertexArray != nil && d.vertexArray.Indexed()
	var indexType gl.Enum
	if indexed {
		indexType = d.vertexArray.IndexType()
	}
	indexSize := int32(gl.TypeSize(indexType))

	if n > 1 && d.ctx.caps.MultiDraw {
		if indexed {
			d.byteOffsets.EnsureCapacity(n)
			byteOffsets := d.byteOffsets.Data()[:n]
			for i, off := range offsets {
				byteOffsets[i] = off * indexSize
			}
			f.MultiDrawElementsInstanced(d.primitive, counts, indexType, byteOffsets, instances)
		} else {
			f.MultiDrawArraysInstanced(d.primitive, offsets, counts, instances)
		}
		return
	}
	for i := 0; i < n; i++ {
		if indexed {
			f.DrawElementsInstanced(d.primitive, int(counts[i]), indexType, int(offsets[i]*indexSize), int(instances[i]))
		} else {
			f.DrawArraysInstanced(d.primitive, int(offsets[i]), int(counts[i]), int(instances[i]))
		}
	}
}

// defaultRange draws the whole vertex array once per instance.
func (d *DrawCall) defaultRange() {
	d.numDraws = 1
	d.offsets.Data()[0] = 0
	d.counts.Data()[0] = 0
	d.instances.Data()[0] = 1
	if va := d.vertexArray; va != nil {
		d.counts.Data()[0] = int32(va.numElements)
		d.instances.Data()[0] = int32(max(va.numInstances, 1))
	}
}

func (p *Program) errOrNil() error {
	if p == nil {
		return nil
	}
	return p.err
}
