package renderer

import "glkit/gl"

type uniformKind uint8

const (
	kindFloat uniformKind = iota
	kindInt
	kindUint
	kindBool
)

// uniformType describes how values of one GL uniform type are uploaded and
// laid out in a uniform buffer.
type uniformType struct {
	kind       uniformKind
	components int
	// cols and rows are non-zero for matrices.
	cols, rows int
	sampler    bool
}

func (t uniformType) floats() int {
	if t.cols > 0 {
		return t.cols * t.rows
	}
	return t.components
}

var uniformTypes = map[gl.Enum]uniformType{
	gl.FLOAT:      {kind: kindFloat, components: 1},
	gl.FLOAT_VEC2: {kind: kindFloat, components: 2},
	gl.FLOAT_VEC3: {kind: kindFloat, components: 3},
	gl.FLOAT_VEC4: {kind: kindFloat, components: 4},

	gl.INT:      {kind: kindInt, components: 1},
	gl.INT_VEC2: {kind: kindInt, components: 2},
	gl.INT_VEC3: {kind: kindInt, components: 3},
	gl.INT_VEC4: {kind: kindInt, components: 4},

	gl.UNSIGNED_INT:      {kind: kindUint, components: 1},
	gl.UNSIGNED_INT_VEC2: {kind: kindUint, components: 2},
	gl.UNSIGNED_INT_VEC3: {kind: kindUint, components: 3},
	gl.UNSIGNED_INT_VEC4: {kind: kindUint, components: 4},

	gl.BOOL:      {kind: kindBool, components: 1},
	gl.BOOL_VEC2: {kind: kindBool, components: 2},
	gl.BOOL_VEC3: {kind: kindBool, components: 3},
	gl.BOOL_VEC4: {kind: kindBool, components: 4},

	gl.FLOAT_MAT2:   {kind: kindFloat, cols: 2, rows: 2},
	gl.FLOAT_MAT3:   {kind: kindFloat, cols: 3, rows: 3},
	gl.FLOAT_MAT4:   {kind: kindFloat, cols: 4, rows: 4},
	gl.FLOAT_MAT2x3: {kind: kindFloat, cols: 2, rows: 3},
	gl.FLOAT_MAT2x4: {kind: kindFloat, cols: 2, rows: 4},
	gl.FLOAT_MAT3x2: {kind: kindFloat, cols: 3, rows: 2},
	gl.FLOAT_MAT3x4: {kind: kindFloat, cols: 3, rows: 4},
	gl.FLOAT_MAT4x2: {kind: kindFloat, cols: 4, rows: 2},
	gl.FLOAT_MAT4x3: {kind: kindFloat, cols: 4, rows: 3},

	gl.SAMPLER_2D:                    {kind: kindInt, components: 1, sampler: true},
	gl.SAMPLER_3D:                    {kind: kindInt, components: 1, sampler: true},
	gl.SAMPLER_CUBE:                  {kind: kindInt, components: 1, sampler: true},
	gl.SAMPLER_2D_SHADOW:             {kind: kindInt, components: 1, sampler: true},
	gl.SAMPLER_2D_ARRAY:              {kind: kindInt, components: 1, sampler: true},
	gl.SAMPLER_2D_ARRAY_SHADOW:       {kind: kindInt, components: 1, sampler: true},
	gl.SAMPLER_CUBE_SHADOW:           {kind: kindInt, components: 1, sampler: true},
	gl.INT_SAMPLER_2D:                {kind: kindInt, components: 1, sampler: true},
	gl.INT_SAMPLER_3D:                {kind: kindInt, components: 1, sampler: true},
	gl.INT_SAMPLER_CUBE:              {kind: kindInt, components: 1, sampler: true},
	gl.INT_SAMPLER_2D_ARRAY:          {kind: kindInt, components: 1, sampler: true},
	gl.UNSIGNED_INT_SAMPLER_2D:       {kind: kindInt, components: 1, sampler: true},
	gl.UNSIGNED_INT_SAMPLER_3D:       {kind: kindInt, components: 1, sampler: true},
	gl.UNSIGNED_INT_SAMPLER_CUBE:     {kind: kindInt, components: 1, sampler: true},
	gl.UNSIGNED_INT_SAMPLER_2D_ARRAY: {kind: kindInt, components: 1, sampler: true},
}
