// Package asset loads the pixel and mesh data that renderer resources are
// created from.
package asset

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Image is RGBA8 pixel data, 4 bytes per pixel, rows top to bottom.
type Image struct {
	Width  int
	Height int
	Pix    []byte
}

// Solid returns a 1x1 image of the given color.
func Solid(r, g, b, a uint8) *Image {
	return &Image{Width: 1, Height: 1, Pix: []byte{r, g, b, a}}
}

// Decode reads a PNG, JPEG, BMP or WebP image and converts it to RGBA8.
func Decode(r io.Reader) (*Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return fromImage(img), nil
}

func decodeBytes(data []byte) (*Image, error) {
	return Decode(bytes.NewReader(data))
}

func fromImage(img image.Image) *Image {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == 4*rgba.Rect.Dx() {
		return &Image{Width: rgba.Rect.Dx(), Height: rgba.Rect.Dy(), Pix: rgba.Pix}
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return &Image{Width: b.Dx(), Height: b.Dy(), Pix: rgba.Pix}
}

// RGBA returns img as an image.RGBA sharing its pixels.
func (img *Image) RGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    img.Pix,
		Stride: 4 * img.Width,
		Rect:   image.Rect(0, 0, img.Width, img.Height),
	}
}

// Scaled returns a copy of img resampled to width x height. Texture array
// layers must share one size, which is what this is for.
func (img *Image) Scaled(width, height int) *Image {
	if width == img.Width && height == img.Height {
		pix := make([]byte, len(img.Pix))
		copy(pix, img.Pix)
		return &Image{Width: width, Height: height, Pix: pix}
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img.RGBA(), img.RGBA().Bounds(), draw.Src, nil)
	return &Image{Width: width, Height: height, Pix: dst.Pix}
}

// FlipVertical reverses the row order in place, for APIs that expect the
// first row at the bottom.
func (img *Image) FlipVertical() {
	stride := 4 * img.Width
	row := make([]byte, stride)
	for top, bottom := 0, img.Height-1; top < bottom; top, bottom = top+1, bottom-1 {
		t := img.Pix[top*stride : (top+1)*stride]
		b := img.Pix[bottom*stride : (bottom+1)*stride]
		copy(row, t)
		copy(t, b)
		copy(b, row)
	}
}
