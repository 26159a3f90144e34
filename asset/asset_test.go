package asset

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func testPNG(t *testing.T) []byte {
	t.Helper()
	pal := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{
		color.RGBA{255, 0, 0, 255},
		color.RGBA{0, 0, 255, 255},
	})
	pal.SetColorIndex(1, 0, 1)
	pal.SetColorIndex(0, 1, 1)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, pal))
	return buf.Bytes()
}

func TestDecodeConvertsToRGBA(t *testing.T) {
	img, err := Decode(bytes.NewReader(testPNG(t)))
	require.NoError(t, err)

	assert.Equal(t, 2, img.Width)
	assert.Equal(t, 2, img.Height)
	assert.Equal(t, []byte{
		255, 0, 0, 255, 0, 0, 255, 255,
		0, 0, 255, 255, 255, 0, 0, 255,
	}, img.Pix)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("not an image")))
	assert.ErrorContains(t, err, "decode image")
}

func TestFlipVertical(t *testing.T) {
	img := &Image{Width: 1, Height: 3, Pix: []byte{
		1, 1, 1, 1,
		2, 2, 2, 2,
		3, 3, 3, 3,
	}}
	img.FlipVertical()
	assert.Equal(t, []byte{3, 3, 3, 3, 2, 2, 2, 2, 1, 1, 1, 1}, img.Pix)
}

func TestScaled(t *testing.T) {
	src := &Image{Width: 2, Height: 2, Pix: bytes.Repeat([]byte{10, 20, 30, 255}, 4)}

	same := src.Scaled(2, 2)
	assert.Equal(t, src.Pix, same.Pix)
	same.Pix[0] = 99
	assert.Equal(t, byte(10), src.Pix[0], "copy must not alias")

	big := src.Scaled(4, 4)
	assert.Equal(t, 4, big.Width)
	assert.Len(t, big.Pix, 4*4*4)
	for i, want := range []byte{10, 20, 30, 255} {
		assert.InDelta(t, want, big.Pix[i], 1)
	}
}

func TestFileLoader(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 3, 1))
	rgba.Set(2, 0, color.RGBA{1, 2, 3, 255})
	path := filepath.Join(t.TempDir(), "tex.bmp")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, bmp.Encode(f, rgba))
	require.NoError(t, f.Close())

	img, err := FileLoader{Path: path}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, img.Width)
	assert.Equal(t, []byte{1, 2, 3, 255}, img.Pix[8:12])

	_, err = FileLoader{Path: filepath.Join(t.TempDir(), "missing.png")}.Load(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestHTTPLoader(t *testing.T) {
	data := testPNG(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tex.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(data)
	}))
	defer srv.Close()

	img, err := HTTPLoader{URL: srv.URL + "/tex.png"}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, img.Width)

	_, err = HTTPLoader{URL: srv.URL + "/gone.png", Client: srv.Client()}.Load(context.Background())
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Contains(t, err.Error(), "404 Not Found")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = HTTPLoader{URL: srv.URL + "/tex.png"}.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func writeTestGLB(t *testing.T) string {
	t.Helper()
	doc := gltf.NewDocument()
	quadPos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}})
	quadUV := modeler.WriteTextureCoord(doc, [][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}})
	quadIdx := modeler.WriteIndices(doc, []uint16{0, 1, 2, 2, 3, 0})
	triPos := modeler.WritePosition(doc, [][3]float32{{5, 5, 5}, {6, 5, 5}, {6, 6, 5}})

	doc.Meshes = []*gltf.Mesh{{
		Name: "sprite",
		Primitives: []*gltf.Primitive{
			{Attributes: map[string]int{"POSITION": quadPos, "TEXCOORD_0": quadUV}, Indices: &quadIdx},
			{Attributes: map[string]int{"POSITION": triPos}},
		},
	}}

	path := filepath.Join(t.TempDir(), "mesh.glb")
	require.NoError(t, gltf.SaveBinary(doc, path))
	return path
}

func TestLoadMeshMergesPrimitives(t *testing.T) {
	m, err := LoadMesh(writeTestGLB(t))
	require.NoError(t, err)

	assert.Equal(t, 7, m.NumVertices())
	assert.Len(t, m.UVs, 7*2)
	assert.Len(t, m.Normals, 7*3)
	assert.Equal(t, []float32{1, 1}, m.UVs[4:6])
	assert.Equal(t, []float32{0, 0}, m.UVs[8:10], "missing UVs are zero filled")
	assert.Equal(t, []float32{5, 5, 5}, m.Positions[12:15])
	assert.Equal(t, []uint32{0, 1, 2, 2, 3, 0, 4, 5, 6}, m.Indices)
	assert.Nil(t, m.Texture)
}

func TestLoadMeshMissingFile(t *testing.T) {
	_, err := LoadMesh(filepath.Join(t.TempDir(), "none.glb"))
	assert.ErrorContains(t, err, "gltf open")
}
