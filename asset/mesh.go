package asset

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// Mesh is geometry flattened for direct upload: three floats per position,
// two per texture coordinate, three per normal.
type Mesh struct {
	Name      string
	Positions []float32
	UVs       []float32
	Normals   []float32
	Indices   []uint32
	// Texture is the base color texture of the first textured primitive,
	// when the file carries one.
	Texture *Image
}

// NumVertices reports the number of vertices in the mesh.
func (m *Mesh) NumVertices() int { return len(m.Positions) / 3 }

// LoadMesh reads a .gltf, .glb or .obj file. glTF triangle primitives are
// merged into one indexed Mesh; missing UVs and normals are zero filled so
// the arrays stay parallel, and primitives without indices get a sequential
// index list.
func LoadMesh(path string) (*Mesh, error) {
	if strings.EqualFold(filepath.Ext(path), ".obj") {
		return LoadOBJ(path)
	}
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	m := &Mesh{Name: filepath.Base(path)}
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}
			if err := m.appendPrimitive(doc, prim); err != nil {
				return nil, fmt.Errorf("gltf %q mesh %d prim %d: %w", path, mi, pi, err)
			}
			if m.Texture == nil {
				m.Texture, err = baseColorTexture(doc, filepath.Dir(path), prim)
				if err != nil {
					return nil, fmt.Errorf("gltf %q mesh %d prim %d: %w", path, mi, pi, err)
				}
			}
		}
	}
	if len(m.Positions) == 0 {
		return nil, fmt.Errorf("gltf %q: no triangle geometry", path)
	}
	return m, nil
}

func (m *Mesh) appendPrimitive(doc *gltf.Document, prim *gltf.Primitive) error {
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return fmt.Errorf("positions: %w", err)
	}

	var (
		normals [][3]float32
		uvs     [][2]float32
	)
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return fmt.Errorf("normals: %w", err)
		}
	}
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return fmt.Errorf("texcoords: %w", err)
		}
	}

	base := uint32(m.NumVertices())
	for i, p := range positions {
		m.Positions = append(m.Positions, p[0], p[1], p[2])
		var n [3]float32
		if i < len(normals) {
			n = normals[i]
		}
		m.Normals = append(m.Normals, n[0], n[1], n[2])
		var uv [2]float32
		if i < len(uvs) {
			uv = uvs[i]
		}
		m.UVs = append(m.UVs, uv[0], uv[1])
	}

	if prim.Indices == nil {
		for i := range positions {
			m.Indices = append(m.Indices, base+uint32(i))
		}
		return nil
	}
	indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
	if err != nil {
		return fmt.Errorf("indices: %w", err)
	}
	for _, i := range indices {
		m.Indices = append(m.Indices, base+i)
	}
	return nil
}

func baseColorTexture(doc *gltf.Document, dir string, prim *gltf.Primitive) (*Image, error) {
	if prim.Material == nil || *prim.Material >= len(doc.Materials) {
		return nil, nil
	}
	pbr := doc.Materials[*prim.Material].PBRMetallicRoughness
	if pbr == nil || pbr.BaseColorTexture == nil {
		return nil, nil
	}
	tex := doc.Textures[pbr.BaseColorTexture.Index]
	if tex.Source == nil {
		return nil, nil
	}
	img := doc.Images[*tex.Source]

	switch {
	case img.BufferView != nil:
		raw, err := modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
		if err != nil {
			return nil, fmt.Errorf("image %d bufferview: %w", *tex.Source, err)
		}
		return decodeBytes(raw)
	case img.IsEmbeddedResource():
		raw, err := img.MarshalData()
		if err != nil {
			return nil, fmt.Errorf("image %d: %w", *tex.Source, err)
		}
		return decodeBytes(raw)
	case img.URI != "":
		return FileLoader{Path: filepath.Join(dir, img.URI)}.Load(context.Background())
	}
	return nil, nil
}
