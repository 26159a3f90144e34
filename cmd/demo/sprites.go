package main

import (
	"math/rand/v2"

	"github.com/chewxy/math32"

	"glkit/asset"
	"glkit/batch"
	"glkit/gl"
	"glkit/renderer"
)

const (
	spriteSize  = 24
	maxStep     = 0.05 // cap dt to avoid huge steps on hitches
	arrayLayers = 4
)

// body is the simulated state behind one sprite.
type body struct {
	x, y, vx, vy float32
	angle, spin  float32
}

// step advances b by dt and reflects it off the walls of a width x height
// box.
func (b *body) step(dt, width, height float32) {
	b.x += b.vx * dt
	b.y += b.vy * dt
	b.angle += b.spin * dt

	half := float32(spriteSize) / 2
	switch {
	case b.x < half:
		b.x, b.vx = half, math32.Abs(b.vx)
	case b.x > width-half:
		b.x, b.vx = width-half, -math32.Abs(b.vx)
	}
	switch {
	case b.y < half:
		b.y, b.vy = half, math32.Abs(b.vy)
	case b.y > height-half:
		b.y, b.vy = height-half, -math32.Abs(b.vy)
	}
}

type spriteLayer struct {
	batch   *batch.Batch
	texture *renderer.Texture
	bodies  []body
	sprites []*batch.Sprite
	width   float32
	height  float32
}

func newSpriteLayer(ctx *renderer.Context, opts batch.Options, img *asset.Image, n int) (*spriteLayer, error) {
	b, err := batch.New(ctx, opts)
	if err != nil {
		return nil, err
	}
	texOpts := renderer.TextureOptions{
		MagFilter: gl.NEAREST,
		WrapS:     gl.CLAMP_TO_EDGE,
		WrapT:     gl.CLAMP_TO_EDGE,
	}
	var tex *renderer.Texture
	if opts.Layers {
		tex, err = ctx.CreateTextureArray(img.Width, img.Height, arrayLayers, tintedLayers(img, arrayLayers), texOpts)
	} else {
		tex, err = ctx.CreateTexture2D(img.Width, img.Height, img.Pix, texOpts)
	}
	if err != nil {
		b.Delete()
		return nil, err
	}
	b.SetTexture(tex)

	l := &spriteLayer{batch: b, texture: tex}
	l.spawn(n)
	return l, nil
}

// tintedLayers stacks n copies of img, each tinted a different hue.
func tintedLayers(img *asset.Image, n int) []byte {
	tints := [][3]float32{{1, 1, 1}, {1, 0.5, 0.5}, {0.5, 1, 0.5}, {0.5, 0.6, 1}}
	out := make([]byte, 0, n*len(img.Pix))
	for layer := 0; layer < n; layer++ {
		t := tints[layer%len(tints)]
		for i := 0; i < len(img.Pix); i += 4 {
			out = append(out,
				byte(float32(img.Pix[i])*t[0]),
				byte(float32(img.Pix[i+1])*t[1]),
				byte(float32(img.Pix[i+2])*t[2]),
				img.Pix[i+3])
		}
	}
	return out
}

func (l *spriteLayer) spawn(n int) {
	for i := 0; i < n; i++ {
		angle := rand.Float32() * 2 * math32.Pi
		speed := 60 + rand.Float32()*180
		sin, cos := math32.Sincos(angle)
		l.bodies = append(l.bodies, body{
			x:    spriteSize + rand.Float32()*400,
			y:    spriteSize + rand.Float32()*300,
			vx:   cos * speed,
			vy:   sin * speed,
			spin: (rand.Float32() - 0.5) * 4,
		})

		s := batch.NewSprite()
		s.SetSize(spriteSize, spriteSize)
		s.SetOrigin(spriteSize/2, spriteSize/2)
		s.SetColor(0.6+0.4*rand.Float32(), 0.6+0.4*rand.Float32(), 0.6+0.4*rand.Float32(), 1)
		s.SetLayer(i % arrayLayers)
		l.sprites = append(l.sprites, s)
	}
}

// Resize updates the bounds the sprites bounce in and the projection.
func (l *spriteLayer) Resize(width, height float32) {
	l.width, l.height = width, height
	l.batch.SetProjection(ortho(width, height))
}

func (l *spriteLayer) Update(dt float32) {
	dt = min(dt, maxStep)
	for i := range l.bodies {
		b := &l.bodies[i]
		b.step(dt, l.width, l.height)
		l.sprites[i].SetPosition(b.x, b.y)
		l.sprites[i].SetRotation(b.angle)
	}
}

func (l *spriteLayer) Draw() { l.batch.Render(l.sprites) }

func (l *spriteLayer) Len() int { return len(l.sprites) }

func (l *spriteLayer) Capacity() int { return l.batch.Capacity() }

func (l *spriteLayer) Delete() {
	l.batch.Delete()
	l.texture.Delete()
}
