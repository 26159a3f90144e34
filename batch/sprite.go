package batch

import (
	"github.com/chewxy/math32"
)

// Sprite is one textured quad. Setters mark it dirty so the batch rewrites
// its vertices on the next Render.
type Sprite struct {
	x, y             float32
	width, height    float32
	originX, originY float32
	rotation         float32
	u0, v0, u1, v1   float32
	color            [4]float32
	layer            float32
	dirty            bool
}

// NewSprite returns a white 1x1 sprite at the origin covering the whole
// texture.
func NewSprite() *Sprite {
	return &Sprite{
		width:  1,
		height: 1,
		u1:     1,
		v1:     1,
		color:  [4]float32{1, 1, 1, 1},
		dirty:  true,
	}
}

func (s *Sprite) SetPosition(x, y float32) {
	s.x, s.y = x, y
	s.dirty = true
}

func (s *Sprite) SetSize(width, height float32) {
	s.width, s.height = width, height
	s.dirty = true
}

// SetOrigin sets the point, relative to the sprite's corner, that it is
// positioned and rotated around.
func (s *Sprite) SetOrigin(x, y float32) {
	s.originX, s.originY = x, y
	s.dirty = true
}

// SetRotation sets the rotation in radians, counter-clockwise.
func (s *Sprite) SetRotation(radians float32) {
	s.rotation = radians
	s.dirty = true
}

// SetUV sets the texture rectangle.
func (s *Sprite) SetUV(u0, v0, u1, v1 float32) {
	s.u0, s.v0, s.u1, s.v1 = u0, v0, u1, v1
	s.dirty = true
}

func (s *Sprite) SetColor(r, g, b, a float32) {
	s.color = [4]float32{r, g, b, a}
	s.dirty = true
}

// SetLayer selects the texture array layer.
func (s *Sprite) SetLayer(layer int) {
	s.layer = float32(layer)
	s.dirty = true
}

// Position returns the sprite position.
func (s *Sprite) Position() (x, y float32) { return s.x, s.y }

// Dirty reports whether the sprite changed since it was last written.
func (s *Sprite) Dirty() bool { return s.dirty }

// write stores the four vertices of the quad into dst.
func (s *Sprite) write(dst []float32, l layout) {
	sin, cos := math32.Sincos(s.rotation)
	corners := [4][2]float32{
		{-s.originX, -s.originY},
		{s.width - s.originX, -s.originY},
		{s.width - s.originX, s.height - s.originY},
		{-s.originX, s.height - s.originY},
	}
	uvs := [4][2]float32{{s.u0, s.v0}, {s.u1, s.v0}, {s.u1, s.v1}, {s.u0, s.v1}}

	i := 0
	for v, c := range corners {
		dst[i] = s.x + c[0]*cos - c[1]*sin
		dst[i+1] = s.y + c[0]*sin + c[1]*cos
		i += 2
		if l.color {
			copy(dst[i:i+4], s.color[:])
			i += 4
		}
		dst[i] = uvs[v][0]
		dst[i+1] = uvs[v][1]
		i += 2
		if l.layers {
			dst[i] = s.layer
			i++
		}
	}
	s.dirty = false
}
