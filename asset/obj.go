package asset

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"glkit/math"
)

// objCorner is one face corner: 0-based position, UV and normal indices, -1
// when absent.
type objCorner struct{ v, vt, vn int }

// LoadOBJ parses a Wavefront .obj file into one indexed Mesh. Polygons are
// fan triangulated and corners sharing position, UV and normal are merged.
// The diffuse map of the first material that has one becomes Mesh.Texture.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj %q: %w", path, err)
	}
	defer f.Close()

	m, err := ParseOBJ(f, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("obj %q: %w", path, err)
	}
	m.Name = filepath.Base(path)
	return m, nil
}

// ParseOBJ reads OBJ data from r. Material libraries and textures are
// resolved relative to dir.
func ParseOBJ(r io.Reader, dir string) (*Mesh, error) {
	var (
		positions [][3]float32
		normals   [][3]float32
		uvs       [][2]float32
		corners   []objCorner
		diffuse   string
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			if len(fields) >= 4 {
				positions = append(positions, parse3(fields[1:4]))
			}
		case "vn":
			if len(fields) >= 4 {
				normals = append(normals, parse3(fields[1:4]))
			}
		case "vt":
			if len(fields) >= 3 {
				u, _ := strconv.ParseFloat(fields[1], 32)
				v, _ := strconv.ParseFloat(fields[2], 32)
				uvs = append(uvs, [2]float32{float32(u), float32(v)})
			}
		case "mtllib":
			if len(fields) > 1 && diffuse == "" {
				diffuse, _ = mtlDiffuseMap(filepath.Join(dir, fields[1]))
			}
		case "f":
			if len(fields) < 4 {
				continue
			}
			face := make([]objCorner, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				face = append(face, parseCorner(tok, len(positions), len(uvs), len(normals)))
			}
			// Fan triangulation: 0-1-2, 0-2-3, 0-3-4, ...
			for i := 1; i+1 < len(face); i++ {
				corners = append(corners, face[0], face[i], face[i+1])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan obj: %w", err)
	}
	if len(corners) == 0 {
		return nil, fmt.Errorf("no geometry found")
	}

	m := &Mesh{}
	seen := map[objCorner]uint32{}
	for _, c := range corners {
		if idx, ok := seen[c]; ok {
			m.Indices = append(m.Indices, idx)
			continue
		}
		idx := uint32(m.NumVertices())
		seen[c] = idx
		m.Indices = append(m.Indices, idx)

		p := at(positions, c.v)
		n := at(normals, c.vn)
		uv := at(uvs, c.vt)
		m.Positions = append(m.Positions, p[0], p[1], p[2])
		m.Normals = append(m.Normals, n[0], n[1], n[2])
		m.UVs = append(m.UVs, uv[0], uv[1])
	}
	if len(normals) == 0 {
		m.generateNormals()
	}

	if diffuse != "" {
		img, err := FileLoader{Path: filepath.Join(dir, diffuse)}.Load(context.Background())
		if err != nil {
			return nil, err
		}
		m.Texture = img
	}
	return m, nil
}

func at[T any](s []T, i int) T {
	var zero T
	if i < 0 || i >= len(s) {
		return zero
	}
	return s[i]
}

func parse3(f []string) [3]float32 {
	var out [3]float32
	for i := range out {
		v, _ := strconv.ParseFloat(f[i], 32)
		out[i] = float32(v)
	}
	return out
}

// parseCorner parses "v", "v/vt", "v//vn" or "v/vt/vn". OBJ indices are
// 1-based; negative ones count back from the last element read so far.
func parseCorner(tok string, np, nt, nn int) objCorner {
	index := func(s string, n int) int {
		if s == "" {
			return -1
		}
		i, err := strconv.Atoi(s)
		switch {
		case err != nil:
			return -1
		case i > 0:
			return i - 1
		case i < 0:
			return n + i
		}
		return -1
	}
	parts := strings.Split(tok, "/")
	c := objCorner{v: -1, vt: -1, vn: -1}
	c.v = index(parts[0], np)
	if len(parts) > 1 {
		c.vt = index(parts[1], nt)
	}
	if len(parts) > 2 {
		c.vn = index(parts[2], nn)
	}
	return c
}

// generateNormals writes area weighted vertex normals.
func (m *Mesh) generateNormals() {
	pos := func(i uint32) math.Vec3 {
		return math.NewVec3(m.Positions[3*i], m.Positions[3*i+1], m.Positions[3*i+2])
	}
	accum := make([]math.Vec3, m.NumVertices())
	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0, i1, i2 := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		v0 := pos(i0)
		n := pos(i1).Sub(v0).Cross(pos(i2).Sub(v0))
		accum[i0] = accum[i0].Add(n)
		accum[i1] = accum[i1].Add(n)
		accum[i2] = accum[i2].Add(n)
	}
	for i, n := range accum {
		n = n.Normalize()
		m.Normals[3*i], m.Normals[3*i+1], m.Normals[3*i+2] = n.X, n.Y, n.Z
	}
}

// mtlDiffuseMap returns the first map_Kd entry of the material library.
func mtlDiffuseMap(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) >= 2 && fields[0] == "map_Kd" {
			return fields[len(fields)-1], nil
		}
	}
	return "", scanner.Err()
}
