package renderer

import (
	"slices"

	"glkit/gl"
)

// uniform uploads a value to one active uniform when it differs from the
// last value uploaded. set reports false when v cannot be converted.
type uniform interface {
	set(v any) bool
}

func newUniform(f gl.Functions, loc gl.Uniform, t uniformType, count int) uniform {
	switch {
	case t.cols > 0:
		return &matrixUniform{gl: f, loc: loc, cols: t.cols, rows: t.rows, cache: make([]float32, t.floats()*count)}
	case t.components == 1 && count == 1:
		switch t.kind {
		case kindFloat:
			return &floatUniform{gl: f, loc: loc}
		case kindInt:
			return &intUniform{gl: f, loc: loc}
		case kindUint:
			return &uintUniform{gl: f, loc: loc}
		case kindBool:
			return &boolUniform{gl: f, loc: loc}
		}
	}
	n := t.components * count
	switch t.kind {
	case kindInt:
		return &intVector{gl: f, loc: loc, components: t.components, cache: make([]int32, n)}
	case kindUint:
		return &uintVector{gl: f, loc: loc, components: t.components, cache: make([]uint32, n)}
	case kindBool:
		return &boolVector{gl: f, loc: loc, components: t.components, cache: make([]int32, n)}
	}
	return &floatVector{gl: f, loc: loc, components: t.components, cache: make([]float32, n)}
}

// ── Scalars ───────────────────────────────────────────────────────────────────

type floatUniform struct {
	gl    gl.Functions
	loc   gl.Uniform
	value float32
}

func (u *floatUniform) set(v any) bool {
	x, ok := floatOf(v)
	if !ok {
		return false
	}
	if x != u.value {
		u.value = x
		u.gl.Uniform1f(u.loc, x)
	}
	return true
}

type intUniform struct {
	gl    gl.Functions
	loc   gl.Uniform
	value int32
}

func (u *intUniform) set(v any) bool {
	x, ok := intOf(v)
	if !ok {
		return false
	}
	if x != u.value {
		u.value = x
		u.gl.Uniform1i(u.loc, x)
	}
	return true
}

type uintUniform struct {
	gl    gl.Functions
	loc   gl.Uniform
	value uint32
}

func (u *uintUniform) set(v any) bool {
	x, ok := uintOf(v)
	if !ok {
		return false
	}
	if x != u.value {
		u.value = x
		u.gl.Uniform1ui(u.loc, x)
	}
	return true
}

type boolUniform struct {
	gl    gl.Functions
	loc   gl.Uniform
	value bool
}

func (u *boolUniform) set(v any) bool {
	x, ok := boolOf(v)
	if !ok {
		return false
	}
	if x != u.value {
		u.value = x
		u.gl.Uniform1i(u.loc, b2i(x))
	}
	return true
}

// ── Vectors and arrays ────────────────────────────────────────────────────────
// On any element difference the whole new array is uploaded and cached.

type floatVector struct {
	gl         gl.Functions
	loc        gl.Uniform
	components int
	cache      []float32
}

func (u *floatVector) set(v any) bool {
	vals, ok := floatsOf(v)
	if !ok {
		return false
	}
	vals = clip(vals, len(u.cache), u.components)
	if !slices.Equal(vals, u.cache[:len(vals)]) {
		copy(u.cache, vals)
		u.gl.Uniformfv(u.loc, u.components, vals)
	}
	return true
}

type intVector struct {
	gl         gl.Functions
	loc        gl.Uniform
	components int
	cache      []int32
}

func (u *intVector) set(v any) bool {
	vals, ok := intsOf(v)
	if !ok {
		return false
	}
	vals = clip(vals, len(u.cache), u.components)
	if !slices.Equal(vals, u.cache[:len(vals)]) {
		copy(u.cache, vals)
		u.gl.Uniformiv(u.loc, u.components, vals)
	}
	return true
}

type uintVector struct {
	gl         gl.Functions
	loc        gl.Uniform
	components int
	cache      []uint32
}

func (u *uintVector) set(v any) bool {
	vals, ok := uintsOf(v)
	if !ok {
		return false
	}
	vals = clip(vals, len(u.cache), u.components)
	if !slices.Equal(vals, u.cache[:len(vals)]) {
		copy(u.cache, vals)
		u.gl.Uniformuiv(u.loc, u.components, vals)
	}
	return true
}

// boolVector stores bools as the 0/1 ints GL expects.
type boolVector struct {
	gl         gl.Functions
	loc        gl.Uniform
	components int
	cache      []int32
}

func (u *boolVector) set(v any) bool {
	bools, ok := boolsOf(v)
	if !ok {
		return false
	}
	vals := make([]int32, len(bools))
	for i, b := range bools {
		vals[i] = b2i(b)
	}
	vals = clip(vals, len(u.cache), u.components)
	if !slices.Equal(vals, u.cache[:len(vals)]) {
		copy(u.cache, vals)
		u.gl.Uniformiv(u.loc, u.components, vals)
	}
	return true
}

// ── Matrices ──────────────────────────────────────────────────────────────────

type matrixUniform struct {
	gl         gl.Functions
	loc        gl.Uniform
	cols, rows int
	cache      []float32
}

func (u *matrixUniform) set(v any) bool {
	vals, ok := floatsOf(v)
	if !ok {
		return false
	}
	vals = clip(vals, len(u.cache), u.cols*u.rows)
	if !slices.Equal(vals, u.cache[:len(vals)]) {
		copy(u.cache, vals)
		u.gl.UniformMatrixfv(u.loc, u.cols, u.rows, false, vals)
	}
	return true
}

// clip trims vals to at most n values and to whole elements of size per.
func clip[T any](vals []T, n, per int) []T {
	if len(vals) > n {
		vals = vals[:n]
	}
	return vals[:len(vals)-len(vals)%per]
}

func b2i(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// ── Value conversion ──────────────────────────────────────────────────────────

func floatOf(v any) (float32, bool) {
	switch x := v.(type) {
	case float32:
		return x, true
	case float64:
		return float32(x), true
	case int:
		return float32(x), true
	case []float32:
		if len(x) > 0 {
			return x[0], true
		}
	}
	return 0, false
}

func intOf(v any) (int32, bool) {
	switch x := v.(type) {
	case int:
		return int32(x), true
	case int32:
		return x, true
	case uint32:
		return int32(x), true
	case bool:
		return b2i(x), true
	case []int32:
		if len(x) > 0 {
			return x[0], true
		}
	}
	return 0, false
}

func uintOf(v any) (uint32, bool) {
	switch x := v.(type) {
	case uint32:
		return x, true
	case uint:
		return uint32(x), true
	case int:
		if x >= 0 {
			return uint32(x), true
		}
	case []uint32:
		if len(x) > 0 {
			return x[0], true
		}
	}
	return 0, false
}

func boolOf(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case int:
		return x != 0, true
	case []bool:
		if len(x) > 0 {
			return x[0], true
		}
	}
	return false, false
}

func floatsOf(v any) ([]float32, bool) {
	switch x := v.(type) {
	case []float32:
		return x, true
	case Floats:
		return x.Floats(), true
	case [2]float32:
		return x[:], true
	case [3]float32:
		return x[:], true
	case [4]float32:
		return x[:], true
	case [9]float32:
		return x[:], true
	case [16]float32:
		return x[:], true
	case []float64:
		out := make([]float32, len(x))
		for i, f := range x {
			out[i] = float32(f)
		}
		return out, true
	case float32:
		return []float32{x}, true
	case float64:
		return []float32{float32(x)}, true
	case int:
		return []float32{float32(x)}, true
	}
	return nil, false
}

func intsOf(v any) ([]int32, bool) {
	switch x := v.(type) {
	case []int32:
		return x, true
	case [2]int32:
		return x[:], true
	case [3]int32:
		return x[:], true
	case [4]int32:
		return x[:], true
	case []int:
		out := make([]int32, len(x))
		for i, n := range x {
			out[i] = int32(n)
		}
		return out, true
	case int32:
		return []int32{x}, true
	case int:
		return []int32{int32(x)}, true
	}
	return nil, false
}

func uintsOf(v any) ([]uint32, bool) {
	switch x := v.(type) {
	case []uint32:
		return x, true
	case [2]uint32:
		return x[:], true
	case [3]uint32:
		return x[:], true
	case [4]uint32:
		return x[:], true
	case uint32:
		return []uint32{x}, true
	}
	return nil, false
}

func boolsOf(v any) ([]bool, bool) {
	switch x := v.(type) {
	case []bool:
		return x, true
	case [2]bool:
		return x[:], true
	case [3]bool:
		return x[:], true
	case [4]bool:
		return x[:], true
	case bool:
		return []bool{x}, true
	}
	return nil, false
}
