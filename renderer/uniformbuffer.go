package renderer

import (
	"errors"
	"fmt"
	"unsafe"

	"glkit/gl"
)

// UniformBuffer packs typed values into a std140-style block.
//
// Slot sizes and alignments in floats: scalars 1/1, 2-component vectors 2/2,
// 3- and 4-component vectors 4/4, matrices 4 per column aligned to 4. The
// total is padded to a multiple of 4 floats.
type UniformBuffer struct {
	ctx    *Context
	handle gl.Buffer
	usage  gl.Enum

	types   []gl.Enum
	offsets []int // in floats

	floats []float32
	ints   []int32  // aliases floats
	uints  []uint32 // aliases floats

	dirtyStart, dirtyEnd int
	currentBase          int
}

// CreateUniformBuffer lays out one slot per entry of layout. usage 0 means
// DYNAMIC_DRAW.
func (c *Context) CreateUniformBuffer(layout []gl.Enum, usage gl.Enum) (*UniformBuffer, error) {
	if len(layout) == 0 {
		return nil, errors.New("create uniform buffer: empty layout")
	}
	if usage == 0 {
		usage = gl.DYNAMIC_DRAW
	}
	u := &UniformBuffer{
		ctx:         c,
		usage:       usage,
		types:       append([]gl.Enum(nil), layout...),
		offsets:     make([]int, len(layout)),
		currentBase: -1,
	}
	offset := 0
	for i, ty := range layout {
		size, align, ok := slotLayout(ty)
		if !ok {
			Logger().Warn("unsupported uniform buffer slot", "index", i, "type", fmt.Sprintf("0x%X", uint32(ty)))
		}
		offset = alignUp(offset, align)
		u.offsets[i] = offset
		offset += size
	}
	total := max(alignUp(offset, 4), 4)
	u.floats = make([]float32, total)
	u.ints = unsafe.Slice((*int32)(unsafe.Pointer(&u.floats[0])), total)
	u.uints = unsafe.Slice((*uint32)(unsafe.Pointer(&u.floats[0])), total)
	u.create()
	c.track(u)
	return u, nil
}

func slotLayout(ty gl.Enum) (size, align int, ok bool) {
	info, ok := uniformTypes[ty]
	if !ok || info.sampler {
		return 0, 1, false
	}
	if info.cols > 0 {
		return info.cols * 4, 4, true
	}
	switch info.components {
	case 1:
		return 1, 1, true
	case 2:
		return 2, 2, true
	}
	return 4, 4, true
}

func alignUp(n, align int) int {
	if r := n % align; r != 0 {
		return n + align - r
	}
	return n
}

func (u *UniformBuffer) create() {
	u.handle = u.ctx.gl.CreateBuffer()
	u.ctx.state.BindBuffer(gl.UNIFORM_BUFFER, u.handle)
	u.ctx.gl.BufferData(gl.UNIFORM_BUFFER, len(u.floats)*4, rawBytes(u.floats), u.usage)
	u.clean()
}

func (u *UniformBuffer) clean() {
	u.dirtyStart = len(u.floats)
	u.dirtyEnd = 0
}

// Handle returns the GL buffer name.
func (u *UniformBuffer) Handle() gl.Buffer { return u.handle }

// ByteOffset returns the byte offset of slot i.
func (u *UniformBuffer) ByteOffset(i int) int { return u.offsets[i] * 4 }

// ByteSize returns the padded size of the block in bytes.
func (u *UniformBuffer) ByteSize() int { return len(u.floats) * 4 }

// CurrentBase returns the binding index the buffer is bound to, or -1.
func (u *UniformBuffer) CurrentBase() int { return u.currentBase }

// Set writes v into slot index. Nothing is uploaded until Update.
func (u *UniformBuffer) Set(index int, v any) {
	if index < 0 || index >= len(u.types) {
		Logger().Debug("uniform buffer slot out of range", "index", index)
		return
	}
	info, ok := uniformTypes[u.types[index]]
	if !ok || info.sampler {
		Logger().Debug("uniform buffer slot unsupported", "index", index)
		return
	}
	off := u.offsets[index]
	n := info.components
	var wrote bool
	switch info.kind {
	case kindFloat:
		vals, ok := floatsOf(v)
		if !ok {
			break
		}
		if info.cols > 0 {
			if len(vals) < info.cols*info.rows {
				break
			}
			// Each column starts on a 4-float boundary.
			for c := 0; c < info.cols; c++ {
				copy(u.floats[off+c*4:off+c*4+info.rows], vals[c*info.rows:(c+1)*info.rows])
			}
			n = info.cols * 4
		} else {
			copy(u.floats[off:off+n], vals)
		}
		wrote = true
	case kindInt:
		vals, ok := intsOf(v)
		if !ok {
			break
		}
		copy(u.ints[off:off+n], vals)
		wrote = true
	case kindUint:
		vals, ok := uintsOf(v)
		if !ok {
			break
		}
		copy(u.uints[off:off+n], vals)
		wrote = true
	case kindBool:
		vals, ok := boolsOf(v)
		if !ok {
			break
		}
		for i := 0; i < n && i < len(vals); i++ {
			u.uints[off+i] = uint32(b2i(vals[i]))
		}
		wrote = true
	}
	if !wrote {
		Logger().Debug("uniform buffer value dropped", "index", index, "value", fmt.Sprintf("%T", v))
		return
	}
	u.dirtyStart = min(u.dirtyStart, off)
	u.dirtyEnd = max(u.dirtyEnd, off+n)
}

// Update uploads the range written since the last Update with a single
// BufferSubData. It does nothing when no slot was written.
func (u *UniformBuffer) Update() {
	if u.dirtyStart >= u.dirtyEnd {
		return
	}
	u.ctx.state.BindBuffer(gl.UNIFORM_BUFFER, u.handle)
	data := rawBytes(u.floats)
	u.ctx.gl.BufferSubData(gl.UNIFORM_BUFFER, u.dirtyStart*4, data[u.dirtyStart*4:u.dirtyEnd*4])
	u.clean()
}

// Bind binds the buffer to a uniform buffer binding index.
func (u *UniformBuffer) Bind(index int) { u.ctx.state.BindUniformBuffer(index, u) }

// Restore recreates the buffer with its current contents.
func (u *UniformBuffer) Restore() { u.create() }

// Delete releases the buffer.
func (u *UniformBuffer) Delete() {
	if u.handle != 0 {
		u.ctx.state.unbindUniformBuffer(u)
		u.ctx.state.unbindBuffer(gl.UNIFORM_BUFFER, u.handle)
		u.ctx.gl.DeleteBuffer(u.handle)
		u.handle = 0
	}
	u.ctx.untrack(u)
}
