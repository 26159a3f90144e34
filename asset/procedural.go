package asset

import (
	"image/color"

	"github.com/chewxy/math32"
)

// Checker returns a size x size checkerboard of cells x cells squares,
// starting with c1 in the top left corner.
func Checker(size, cells int, c1, c2 color.RGBA) *Image {
	img := &Image{Width: size, Height: size, Pix: make([]byte, 4*size*size)}
	block := max(size/max(cells, 1), 1)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := c1
			if (x/block+y/block)%2 == 1 {
				c = c2
			}
			i := 4 * (y*size + x)
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
		}
	}
	return img
}

// Sphere returns a UV sphere of the given radius.
func Sphere(radius float32, segments, rings int) *Mesh {
	segments = max(segments, 3)
	rings = max(rings, 2)

	m := &Mesh{Name: "sphere"}
	for ring := 0; ring <= rings; ring++ {
		sinPhi, cosPhi := math32.Sincos(float32(ring) * math32.Pi / float32(rings))
		for seg := 0; seg <= segments; seg++ {
			sinTheta, cosTheta := math32.Sincos(float32(seg) * 2 * math32.Pi / float32(segments))
			nx, ny, nz := sinPhi*cosTheta, cosPhi, sinPhi*sinTheta
			m.Normals = append(m.Normals, nx, ny, nz)
			m.Positions = append(m.Positions, nx*radius, ny*radius, nz*radius)
			m.UVs = append(m.UVs, float32(seg)/float32(segments), float32(ring)/float32(rings))
		}
	}
	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			current := uint32(ring*(segments+1) + seg)
			next := current + uint32(segments+1)
			m.Indices = append(m.Indices,
				current, next, current+1,
				current+1, next, next+1)
		}
	}
	return m
}

// Plane returns a width x depth plane in XZ facing +Y, split into
// subdivisions x subdivisions cells.
func Plane(width, depth float32, subdivisions int) *Mesh {
	subdivisions = max(subdivisions, 1)

	m := &Mesh{Name: "plane"}
	for z := 0; z <= subdivisions; z++ {
		for x := 0; x <= subdivisions; x++ {
			u := float32(x) / float32(subdivisions)
			v := float32(z) / float32(subdivisions)
			m.Positions = append(m.Positions, -width/2+u*width, 0, -depth/2+v*depth)
			m.Normals = append(m.Normals, 0, 1, 0)
			m.UVs = append(m.UVs, u, v)
		}
	}
	for z := 0; z < subdivisions; z++ {
		for x := 0; x < subdivisions; x++ {
			topLeft := uint32(z*(subdivisions+1) + x)
			topRight := topLeft + 1
			bottomLeft := topLeft + uint32(subdivisions+1)
			bottomRight := bottomLeft + 1
			m.Indices = append(m.Indices,
				topLeft, bottomLeft, topRight,
				topRight, bottomLeft, bottomRight)
		}
	}
	return m
}
