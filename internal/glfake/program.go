package glfake

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"glkit/gl"
)

type shader struct {
	ty       gl.Enum
	src      string
	compiled bool
	log      string
}

type variable struct {
	name     string
	ty       gl.Enum
	size     int
	array    bool
	location int
}

type program struct {
	attached   []gl.Shader
	linked     bool
	log        string
	uniforms   []variable
	attributes []variable
	blocks     []string
	bindings   map[int]int
}

var (
	commentRE   = regexp.MustCompile(`(?s)//[^\n]*|/\*.*?\*/`)
	blockRE     = regexp.MustCompile(`(?s)(?:layout\s*\([^)]*\)\s*)?uniform\s+(\w+)\s*\{(.*?)\}\s*(\w*)\s*;`)
	memberRE    = regexp.MustCompile(`(?:(?:lowp|mediump|highp)\s+)?(\w+)\s+(\w+)\s*(?:\[\s*(\d+)\s*\])?\s*;`)
	uniformRE   = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?uniform\s+(?:(?:lowp|mediump|highp)\s+)?(\w+)\s+(\w+)\s*(?:\[\s*(\d+)\s*\])?\s*;`)
	attributeRE = regexp.MustCompile(`(?m)^\s*(?:layout\s*\(\s*location\s*=\s*(\d+)\s*\)\s*)?(?:in|attribute)\s+(?:(?:lowp|mediump|highp)\s+)?(\w+)\s+(\w+)\s*;`)
	errorRE     = regexp.MustCompile(`(?m)^\s*#error\b(.*)$`)
)

// glslTypes maps GLSL type names to the enums glGetActiveUniform reports.
var glslTypes = map[string]gl.Enum{
	"float": gl.FLOAT, "vec2": gl.FLOAT_VEC2, "vec3": gl.FLOAT_VEC3, "vec4": gl.FLOAT_VEC4,
	"int": gl.INT, "ivec2": gl.INT_VEC2, "ivec3": gl.INT_VEC3, "ivec4": gl.INT_VEC4,
	"uint": gl.UNSIGNED_INT, "uvec2": gl.UNSIGNED_INT_VEC2, "uvec3": gl.UNSIGNED_INT_VEC3, "uvec4": gl.UNSIGNED_INT_VEC4,
	"bool": gl.BOOL, "bvec2": gl.BOOL_VEC2, "bvec3": gl.BOOL_VEC3, "bvec4": gl.BOOL_VEC4,
	"mat2": gl.FLOAT_MAT2, "mat3": gl.FLOAT_MAT3, "mat4": gl.FLOAT_MAT4,
	"mat2x3": gl.FLOAT_MAT2x3, "mat2x4": gl.FLOAT_MAT2x4, "mat3x2": gl.FLOAT_MAT3x2,
	"mat3x4": gl.FLOAT_MAT3x4, "mat4x2": gl.FLOAT_MAT4x2, "mat4x3": gl.FLOAT_MAT4x3,
	"sampler2D": gl.SAMPLER_2D, "sampler3D": gl.SAMPLER_3D, "samplerCube": gl.SAMPLER_CUBE,
	"sampler2DShadow": gl.SAMPLER_2D_SHADOW, "sampler2DArray": gl.SAMPLER_2D_ARRAY,
	"sampler2DArrayShadow": gl.SAMPLER_2D_ARRAY_SHADOW, "samplerCubeShadow": gl.SAMPLER_CUBE_SHADOW,
	"isampler2D": gl.INT_SAMPLER_2D, "isampler3D": gl.INT_SAMPLER_3D, "isamplerCube": gl.INT_SAMPLER_CUBE,
	"isampler2DArray": gl.INT_SAMPLER_2D_ARRAY, "usampler2D": gl.UNSIGNED_INT_SAMPLER_2D,
	"usampler3D": gl.UNSIGNED_INT_SAMPLER_3D, "usamplerCube": gl.UNSIGNED_INT_SAMPLER_CUBE,
	"usampler2DArray": gl.UNSIGNED_INT_SAMPLER_2D_ARRAY,
	// Reported by real drivers but not settable through glUniform*.
	"atomic_uint": 0x92DB,
}

// locationSlots is the number of uniform locations one element of ty uses.
func locationSlots(ty gl.Enum) int {
	switch ty {
	case gl.FLOAT_MAT2, gl.FLOAT_MAT2x3, gl.FLOAT_MAT2x4:
		return 2
	case gl.FLOAT_MAT3, gl.FLOAT_MAT3x2, gl.FLOAT_MAT3x4:
		return 3
	case gl.FLOAT_MAT4, gl.FLOAT_MAT4x2, gl.FLOAT_MAT4x3:
		return 4
	}
	return 1
}

func (f *Functions) CreateShader(ty gl.Enum) gl.Shader {
	s := gl.Shader(f.alloc())
	f.shaders[s] = &shader{ty: ty}
	f.record("CreateShader", s, ty)
	return s
}

func (f *Functions) DeleteShader(s gl.Shader) {
	delete(f.shaders, s)
	f.record("DeleteShader", s)
}

func (f *Functions) ShaderSource(s gl.Shader, src string) {
	if sh := f.shaders[s]; sh != nil {
		sh.src = src
	}
	f.record("ShaderSource", s, src)
}

// CompileShader fails for sources containing an #error directive.
func (f *Functions) CompileShader(s gl.Shader) {
	f.record("CompileShader", s)
	sh := f.shaders[s]
	if sh == nil {
		return
	}
	if m := errorRE.FindStringSubmatchIndex(sh.src); m != nil {
		sh.compiled = false
		sh.log = "ERROR: 0:" + strconv.Itoa(lineOf(sh.src, m[0])) + ": '#error' :" + sh.src[m[2]:m[3]] + "\n"
		return
	}
	sh.compiled = true
	sh.log = ""
}

func (f *Functions) GetShaderi(s gl.Shader, pname gl.Enum) int {
	f.record("GetShaderi", s, pname)
	sh := f.shaders[s]
	if sh == nil {
		return 0
	}
	switch pname {
	case gl.COMPILE_STATUS:
		if sh.compiled {
			return gl.TRUE
		}
		return gl.FALSE
	case gl.INFO_LOG_LENGTH:
		return len(sh.log)
	}
	return 0
}

func (f *Functions) GetShaderInfoLog(s gl.Shader) string {
	f.record("GetShaderInfoLog", s)
	if sh := f.shaders[s]; sh != nil {
		return sh.log
	}
	return ""
}

func (f *Functions) CreateProgram() gl.Program {
	p := gl.Program(f.alloc())
	f.programs[p] = &program{bindings: make(map[int]int)}
	f.record("CreateProgram", p)
	return p
}

func (f *Functions) DeleteProgram(p gl.Program) {
	delete(f.programs, p)
	f.record("DeleteProgram", p)
}

func (f *Functions) AttachShader(p gl.Program, s gl.Shader) {
	if pr := f.programs[p]; pr != nil {
		pr.attached = append(pr.attached, s)
	}
	f.record("AttachShader", p, s)
}

// LinkProgram succeeds when one compiled vertex and one compiled fragment
// shader are attached, and reflects their declarations.
func (f *Functions) LinkProgram(p gl.Program) {
	f.record("LinkProgram", p)
	pr := f.programs[p]
	if pr == nil {
		return
	}
	*pr = program{attached: pr.attached, bindings: make(map[int]int)}
	if f.FailLink {
		pr.log = "ERROR: link failed\n"
		return
	}
	var vs, fs *shader
	for _, s := range pr.attached {
		sh := f.shaders[s]
		switch {
		case sh == nil || !sh.compiled:
			pr.log = "ERROR: one or more attached shaders not successfully compiled\n"
			return
		case sh.ty == gl.VERTEX_SHADER:
			vs = sh
		case sh.ty == gl.FRAGMENT_SHADER:
			fs = sh
		}
	}
	if vs == nil || fs == nil {
		pr.log = "ERROR: missing vertex or fragment shader\n"
		return
	}
	pr.linked = true
	reflectUniforms(pr, vs.src)
	reflectUniforms(pr, fs.src)
	reflectAttributes(pr, vs.src)
}

func reflectUniforms(pr *program, src string) {
	src = commentRE.ReplaceAllString(src, "")
	for _, m := range blockRE.FindAllStringSubmatch(src, -1) {
		if slices.Contains(pr.blocks, m[1]) {
			continue
		}
		pr.blocks = append(pr.blocks, m[1])
		for _, mm := range memberRE.FindAllStringSubmatch(m[2], -1) {
			name := mm[2]
			if m[3] != "" {
				name = m[1] + "." + name
			}
			v, ok := newVariable(mm[1], name, mm[3])
			if !ok {
				continue
			}
			v.location = -1
			pr.uniforms = append(pr.uniforms, v)
		}
	}
	src = blockRE.ReplaceAllString(src, "")

	next := 0
	for _, u := range pr.uniforms {
		if u.location >= 0 {
			next = max(next, u.location+u.size*locationSlots(u.ty))
		}
	}
	for _, m := range uniformRE.FindAllStringSubmatch(src, -1) {
		if pr.hasUniform(m[2]) {
			continue
		}
		v, ok := newVariable(m[1], m[2], m[3])
		if !ok {
			continue
		}
		v.location = next
		next += v.size * locationSlots(v.ty)
		pr.uniforms = append(pr.uniforms, v)
	}
}

func reflectAttributes(pr *program, src string) {
	src = commentRE.ReplaceAllString(src, "")
	next := 0
	for _, m := range attributeRE.FindAllStringSubmatch(src, -1) {
		v, ok := newVariable(m[2], m[3], "")
		if !ok {
			continue
		}
		if m[1] != "" {
			v.location, _ = strconv.Atoi(m[1])
		} else {
			v.location = next
		}
		next = v.location + locationSlots(v.ty)
		pr.attributes = append(pr.attributes, v)
	}
}

func newVariable(typeName, name, count string) (variable, bool) {
	ty, ok := glslTypes[typeName]
	if !ok {
		return variable{}, false
	}
	v := variable{name: name, ty: ty, size: 1}
	if count != "" {
		v.size, _ = strconv.Atoi(count)
		v.array = true
	}
	return v, true
}

func (pr *program) hasUniform(name string) bool {
	for _, u := range pr.uniforms {
		if u.name == name {
			return true
		}
	}
	return false
}

func (f *Functions) GetProgrami(p gl.Program, pname gl.Enum) int {
	f.record("GetProgrami", p, pname)
	pr := f.programs[p]
	if pr == nil {
		return 0
	}
	switch pname {
	case gl.LINK_STATUS:
		if pr.linked {
			return gl.TRUE
		}
		return gl.FALSE
	case gl.INFO_LOG_LENGTH:
		return len(pr.log)
	case gl.ACTIVE_UNIFORMS:
		return len(pr.uniforms)
	case gl.ACTIVE_ATTRIBUTES:
		return len(pr.attributes)
	case gl.ACTIVE_UNIFORM_BLOCKS:
		return len(pr.blocks)
	}
	return 0
}

func (f *Functions) GetProgramInfoLog(p gl.Program) string {
	f.record("GetProgramInfoLog", p)
	if pr := f.programs[p]; pr != nil {
		return pr.log
	}
	return ""
}

func (f *Functions) UseProgram(p gl.Program) { f.record("UseProgram", p) }

func (f *Functions) GetActiveUniform(p gl.Program, index int) (string, int, gl.Enum) {
	f.record("GetActiveUniform", p, index)
	pr := f.programs[p]
	if pr == nil || index >= len(pr.uniforms) {
		return "", 0, 0
	}
	u := pr.uniforms[index]
	name := u.name
	if u.array {
		name += "[0]"
	}
	return name, u.size, u.ty
}

func (f *Functions) GetActiveAttrib(p gl.Program, index int) (string, int, gl.Enum) {
	f.record("GetActiveAttrib", p, index)
	pr := f.programs[p]
	if pr == nil || index >= len(pr.attributes) {
		return "", 0, 0
	}
	a := pr.attributes[index]
	return a.name, a.size, a.ty
}

func (f *Functions) GetUniformLocation(p gl.Program, name string) gl.Uniform {
	f.record("GetUniformLocation", p, name)
	pr := f.programs[p]
	if pr == nil {
		return gl.NoUniform
	}
	name = strings.TrimSuffix(name, "[0]")
	for _, u := range pr.uniforms {
		if u.name == name {
			return gl.Uniform(u.location)
		}
	}
	return gl.NoUniform
}

func (f *Functions) GetAttribLocation(p gl.Program, name string) int {
	f.record("GetAttribLocation", p, name)
	if pr := f.programs[p]; pr != nil {
		for _, a := range pr.attributes {
			if a.name == name {
				return a.location
			}
		}
	}
	return -1
}

func (f *Functions) GetActiveUniformBlockName(p gl.Program, index int) string {
	f.record("GetActiveUniformBlockName", p, index)
	if pr := f.programs[p]; pr != nil && index < len(pr.blocks) {
		return pr.blocks[index]
	}
	return ""
}

func (f *Functions) UniformBlockBinding(p gl.Program, blockIndex, binding int) {
	if pr := f.programs[p]; pr != nil {
		pr.bindings[blockIndex] = binding
	}
	f.record("UniformBlockBinding", p, blockIndex, binding)
}

// BlockBinding returns the binding assigned to the named uniform block of p,
// or -1.
func (f *Functions) BlockBinding(p gl.Program, block string) int {
	pr := f.programs[p]
	if pr == nil {
		return -1
	}
	i := slices.Index(pr.blocks, block)
	if b, ok := pr.bindings[i]; i >= 0 && ok {
		return b
	}
	return -1
}

// ── Uniform uploads ───────────────────────────────────────────────────────────

func (f *Functions) Uniform1f(u gl.Uniform, v float32) { f.record("Uniform1f", u, v) }
func (f *Functions) Uniform1i(u gl.Uniform, v int32)   { f.record("Uniform1i", u, v) }
func (f *Functions) Uniform1ui(u gl.Uniform, v uint32) { f.record("Uniform1ui", u, v) }

func (f *Functions) Uniformfv(u gl.Uniform, components int, v []float32) {
	f.record("Uniformfv", u, components, slices.Clone(v))
}

func (f *Functions) Uniformiv(u gl.Uniform, components int, v []int32) {
	f.record("Uniformiv", u, components, slices.Clone(v))
}

func (f *Functions) Uniformuiv(u gl.Uniform, components int, v []uint32) {
	f.record("Uniformuiv", u, components, slices.Clone(v))
}

func (f *Functions) UniformMatrixfv(u gl.Uniform, cols, rows int, transpose bool, v []float32) {
	f.record("UniformMatrixfv", u, cols, rows, transpose, slices.Clone(v))
}
