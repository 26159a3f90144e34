package asset

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quadOBJ = `# unit quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestParseOBJTriangulatesAndMerges(t *testing.T) {
	m, err := ParseOBJ(strings.NewReader(quadOBJ), "")
	require.NoError(t, err)

	assert.Equal(t, 4, m.NumVertices(), "shared corners merged")
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, m.Indices)
	assert.Equal(t, []float32{1, 1}, m.UVs[4:6])
	assert.Equal(t, []float32{0, 0, 1}, m.Normals[9:12])
}

func TestParseOBJGeneratesNormals(t *testing.T) {
	m, err := ParseOBJ(strings.NewReader("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"), "")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		assert.InDelta(t, 0, m.Normals[3*i], 1e-6)
		assert.InDelta(t, 0, m.Normals[3*i+1], 1e-6)
		assert.InDelta(t, 1, m.Normals[3*i+2], 1e-6)
	}
	assert.Equal(t, make([]float32, 6), m.UVs)
}

func TestParseOBJNegativeIndices(t *testing.T) {
	m, err := ParseOBJ(strings.NewReader("v 0 0 0\nv 1 0 0\nv 0 1 0\nf -3 -2 -1\n"), "")
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, m.Positions)
}

func TestParseOBJRejectsEmpty(t *testing.T) {
	_, err := ParseOBJ(strings.NewReader("# nothing\nv 0 0 0\n"), "")
	assert.ErrorContains(t, err, "no geometry")
}

func TestLoadMeshOBJWithDiffuseMap(t *testing.T) {
	dir := t.TempDir()
	rgba := image.NewRGBA(image.Rect(0, 0, 1, 1))
	rgba.Set(0, 0, color.RGBA{9, 8, 7, 255})
	f, err := os.Create(filepath.Join(dir, "diffuse.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, rgba))
	require.NoError(t, f.Close())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "quad.mtl"), []byte("newmtl quad\nKd 1 1 1\nmap_Kd diffuse.png\n"), 0o644))
	path := filepath.Join(dir, "quad.obj")
	require.NoError(t, os.WriteFile(path, []byte("mtllib quad.mtl\nusemtl quad\n"+quadOBJ), 0o644))

	m, err := LoadMesh(path)
	require.NoError(t, err)
	assert.Equal(t, "quad.obj", m.Name)
	assert.Equal(t, 4, m.NumVertices())
	require.NotNil(t, m.Texture)
	assert.Equal(t, []byte{9, 8, 7, 255}, m.Texture.Pix)
}
