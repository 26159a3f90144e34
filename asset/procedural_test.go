package asset

import (
	"context"
	"errors"
	"image/color"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecker(t *testing.T) {
	white := color.RGBA{255, 255, 255, 255}
	grey := color.RGBA{160, 160, 160, 255}
	img := Checker(4, 2, white, grey)

	assert.Len(t, img.Pix, 4*4*4)
	assert.Equal(t, []byte{255, 255, 255, 255}, img.Pix[0:4])
	assert.Equal(t, []byte{160, 160, 160, 255}, img.Pix[8:12], "second cell")
	assert.Equal(t, []byte{255, 255, 255, 255}, img.Pix[4*(2*4+2):4*(2*4+2)+4], "diagonal cell")
}

func TestSphere(t *testing.T) {
	m := Sphere(2, 8, 4)
	assert.Equal(t, (8+1)*(4+1), m.NumVertices())
	assert.Len(t, m.Indices, 8*4*6)
	for i := 0; i < m.NumVertices(); i++ {
		p := m.Positions[3*i : 3*i+3]
		assert.InDelta(t, 4, p[0]*p[0]+p[1]*p[1]+p[2]*p[2], 1e-4)
	}
	assert.Equal(t, []float32{0, 2, 0}, m.Positions[:3], "first ring is the north pole")
}

func TestPlane(t *testing.T) {
	m := Plane(2, 4, 2)
	assert.Equal(t, 9, m.NumVertices())
	assert.Len(t, m.Indices, 2*2*6)
	assert.Equal(t, []float32{-1, 0, -2}, m.Positions[:3])
	assert.Equal(t, []float32{1, 0, 2}, m.Positions[len(m.Positions)-3:])
	assert.Equal(t, []float32{0, 1, 0}, m.Normals[:3])
}

type countingLoader struct {
	calls *atomic.Int32
	err   error
}

func (l countingLoader) Load(context.Context) (*Image, error) {
	l.calls.Add(1)
	if l.err != nil {
		return nil, l.err
	}
	return Solid(1, 2, 3, 4), nil
}

func TestCacheLoadsOnce(t *testing.T) {
	var calls atomic.Int32
	c := NewCache()
	c.Loader = func(string) Loader { return countingLoader{calls: &calls} }

	a, err := c.Get(context.Background(), "a.png")
	require.NoError(t, err)
	b, err := c.Get(context.Background(), "a.png")
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestCacheZeroValue(t *testing.T) {
	var calls atomic.Int32
	c := &Cache{Loader: func(string) Loader { return countingLoader{calls: &calls} }}

	img, err := c.Get(context.Background(), "x")
	require.NoError(t, err)
	assert.NotNil(t, img)
	assert.Equal(t, 1, c.Len())

	c.Clear()
	_, err = c.Get(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCacheDoesNotKeepFailures(t *testing.T) {
	var calls atomic.Int32
	boom := errors.New("boom")
	c := NewCache()
	c.Loader = func(string) Loader { return countingLoader{calls: &calls, err: boom} }

	_, err := c.Get(context.Background(), "bad.png")
	assert.ErrorIs(t, err, boom)
	_, err = c.Get(context.Background(), "bad.png")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, 0, c.Len())
}

func TestLoaderFor(t *testing.T) {
	assert.IsType(t, HTTPLoader{}, LoaderFor("https://example.com/a.png"))
	assert.IsType(t, FileLoader{}, LoaderFor("sprites/a.png"))
}
