package renderer

import (
	"glkit/gl"
)

// State mirrors the GL binding state so that binds which would not change
// anything are never issued. Every method updates the record in the same
// call that talks to the driver.
type State struct {
	gl gl.Functions

	program     *Program
	vertexArray *VertexArray

	textures   []*Texture
	activeUnit int

	uniformBuffers []*UniformBuffer

	drawFramebuffer *Framebuffer
	readFramebuffer *Framebuffer

	// Generic buffer targets. A missing entry means unknown.
	buffers map[gl.Enum]gl.Buffer

	viewport      [4]int
	viewportKnown bool
	clearColor    [4]float32
	clearKnown    bool
	enabled       map[gl.Enum]bool
	blend         [2]gl.Enum
	blendKnown    bool
}

func newState(f gl.Functions, textureUnits, uniformBuffers int) *State {
	s := &State{
		gl:             f,
		textures:       make([]*Texture, textureUnits),
		uniformBuffers: make([]*UniformBuffer, uniformBuffers),
	}
	s.Reset()
	return s
}

// Reset forgets every recorded binding. Back-references held by textures and
// uniform buffers are cleared too, so the next bind of anything is issued.
func (s *State) Reset() {
	for i, t := range s.textures {
		if t != nil {
			t.currentUnit = -1
		}
		s.textures[i] = nil
	}
	for i, u := range s.uniformBuffers {
		if u != nil {
			u.currentBase = -1
		}
		s.uniformBuffers[i] = nil
	}
	s.program = nil
	s.vertexArray = nil
	s.activeUnit = -1
	s.drawFramebuffer = nil
	s.readFramebuffer = nil
	s.buffers = make(map[gl.Enum]gl.Buffer)
	s.viewportKnown = false
	s.clearKnown = false
	s.enabled = make(map[gl.Enum]bool)
	s.blendKnown = false
}

// ── Programs and vertex arrays ────────────────────────────────────────────────

// BindProgram makes p current. nil unbinds.
func (s *State) BindProgram(p *Program) {
	if s.program == p {
		return
	}
	var h gl.Program
	if p != nil {
		h = p.handle
	}
	s.gl.UseProgram(h)
	s.program = p
}

// Program returns the current program.
func (s *State) Program() *Program { return s.program }

// BindVertexArray binds a. nil unbinds.
func (s *State) BindVertexArray(a *VertexArray) {
	if s.vertexArray == a {
		return
	}
	var h gl.VertexArray
	if a != nil {
		h = a.handle
	}
	s.gl.BindVertexArray(h)
	s.vertexArray = a
}

// VertexArray returns the bound vertex array.
func (s *State) VertexArray() *VertexArray { return s.vertexArray }

// ── Textures ──────────────────────────────────────────────────────────────────

// BindTexture binds t to the texture unit. A texture previously recorded at
// the unit loses its back-reference; t releases the unit it occupied before.
func (s *State) BindTexture(unit int, t *Texture) {
	if unit < 0 || unit >= len(s.textures) {
		Logger().Warn("texture unit out of range", "unit", unit, "units", len(s.textures))
		return
	}
	old := s.textures[unit]
	if old == t {
		return
	}
	if old != nil {
		old.currentUnit = -1
	}
	var (
		target gl.Enum
		h      gl.Texture
	)
	if t != nil {
		if t.currentUnit >= 0 {
			s.textures[t.currentUnit] = nil
		}
		target, h = t.target, t.handle
	} else {
		target = old.target
	}
	s.activeTexture(unit)
	s.gl.BindTexture(target, h)
	s.textures[unit] = t
	if t != nil {
		t.currentUnit = unit
	}
}

// Texture returns the texture recorded at unit.
func (s *State) Texture(unit int) *Texture {
	if unit < 0 || unit >= len(s.textures) {
		return nil
	}
	return s.textures[unit]
}

func (s *State) activeTexture(unit int) {
	if s.activeUnit == unit {
		return
	}
	s.gl.ActiveTexture(gl.TEXTURE0 + gl.Enum(unit))
	s.activeUnit = unit
}

// bindTextureForUpdate binds t somewhere so it can be uploaded to.
func (s *State) bindTextureForUpdate(t *Texture) {
	unit := max(t.currentUnit, 0)
	s.BindTexture(unit, t)
	s.activeTexture(unit)
}

func (s *State) unbindTexture(t *Texture) {
	if t.currentUnit < 0 {
		return
	}
	s.BindTexture(t.currentUnit, nil)
}

// ── Buffers ───────────────────────────────────────────────────────────────────

// BindBuffer binds b to a generic buffer target. ELEMENT_ARRAY_BUFFER is part
// of vertex array state and is never cached here.
func (s *State) BindBuffer(target gl.Enum, b gl.Buffer) {
	if target == gl.ELEMENT_ARRAY_BUFFER {
		s.gl.BindBuffer(target, b)
		return
	}
	if cur, ok := s.buffers[target]; ok && cur == b {
		return
	}
	s.gl.BindBuffer(target, b)
	s.buffers[target] = b
}

func (s *State) unbindBuffer(target gl.Enum, b gl.Buffer) {
	if cur, ok := s.buffers[target]; ok && cur == b {
		s.gl.BindBuffer(target, 0)
		s.buffers[target] = 0
	}
}

// BindUniformBuffer binds u to the indexed uniform buffer binding point.
// Eviction follows the same rule as BindTexture.
func (s *State) BindUniformBuffer(index int, u *UniformBuffer) {
	if index < 0 || index >= len(s.uniformBuffers) {
		Logger().Warn("uniform buffer binding out of range", "index", index, "bindings", len(s.uniformBuffers))
		return
	}
	old := s.uniformBuffers[index]
	if old == u {
		return
	}
	if old != nil {
		old.currentBase = -1
	}
	var h gl.Buffer
	if u != nil {
		if u.currentBase >= 0 {
			s.uniformBuffers[u.currentBase] = nil
		}
		h = u.handle
	}
	s.gl.BindBufferBase(gl.UNIFORM_BUFFER, index, h)
	// glBindBufferBase also binds the generic target.
	s.buffers[gl.UNIFORM_BUFFER] = h
	s.uniformBuffers[index] = u
	if u != nil {
		u.currentBase = index
	}
}

// UniformBuffer returns the uniform buffer recorded at index.
func (s *State) UniformBuffer(index int) *UniformBuffer {
	if index < 0 || index >= len(s.uniformBuffers) {
		return nil
	}
	return s.uniformBuffers[index]
}

func (s *State) unbindUniformBuffer(u *UniformBuffer) {
	if u.currentBase >= 0 {
		s.BindUniformBuffer(u.currentBase, nil)
	}
}

// ── Framebuffers ──────────────────────────────────────────────────────────────

// BindFramebuffer binds f to FRAMEBUFFER, DRAW_FRAMEBUFFER or
// READ_FRAMEBUFFER. nil selects the default framebuffer.
func (s *State) BindFramebuffer(target gl.Enum, f *Framebuffer) {
	switch target {
	case gl.FRAMEBUFFER:
		if s.drawFramebuffer == f && s.readFramebuffer == f {
			return
		}
		s.drawFramebuffer, s.readFramebuffer = f, f
	case gl.DRAW_FRAMEBUFFER:
		if s.drawFramebuffer == f {
			return
		}
		s.drawFramebuffer = f
	case gl.READ_FRAMEBUFFER:
		if s.readFramebuffer == f {
			return
		}
		s.readFramebuffer = f
	default:
		Logger().Warn("unknown framebuffer target", "target", target)
		return
	}
	var h gl.Framebuffer
	if f != nil {
		h = f.handle
	}
	s.gl.BindFramebuffer(target, h)
}

// DrawFramebuffer returns the bound draw framebuffer, nil for the default.
func (s *State) DrawFramebuffer() *Framebuffer { return s.drawFramebuffer }

// ReadFramebuffer returns the bound read framebuffer, nil for the default.
func (s *State) ReadFramebuffer() *Framebuffer { return s.readFramebuffer }

func (s *State) unbindFramebuffer(f *Framebuffer) {
	switch {
	case s.drawFramebuffer == f && s.readFramebuffer == f:
		s.BindFramebuffer(gl.FRAMEBUFFER, nil)
	case s.drawFramebuffer == f:
		s.BindFramebuffer(gl.DRAW_FRAMEBUFFER, nil)
	case s.readFramebuffer == f:
		s.BindFramebuffer(gl.READ_FRAMEBUFFER, nil)
	}
}

// ── Fixed-function state ──────────────────────────────────────────────────────

// Viewport sets the viewport rectangle.
func (s *State) Viewport(x, y, width, height int) {
	v := [4]int{x, y, width, height}
	if s.viewportKnown && s.viewport == v {
		return
	}
	s.gl.Viewport(x, y, width, height)
	s.viewport, s.viewportKnown = v, true
}

// ClearColor sets the color used by Context.Clear.
func (s *State) ClearColor(r, g, b, a float32) {
	c := [4]float32{r, g, b, a}
	if s.clearKnown && s.clearColor == c {
		return
	}
	s.gl.ClearColor(r, g, b, a)
	s.clearColor, s.clearKnown = c, true
}

// Enable turns on a capability such as BLEND or DEPTH_TEST.
func (s *State) Enable(capability gl.Enum) {
	if on, ok := s.enabled[capability]; ok && on {
		return
	}
	s.gl.Enable(capability)
	s.enabled[capability] = true
}

// Disable turns off a capability.
func (s *State) Disable(capability gl.Enum) {
	if on, ok := s.enabled[capability]; ok && !on {
		return
	}
	s.gl.Disable(capability)
	s.enabled[capability] = false
}

// BlendFunc sets the source and destination blend factors.
func (s *State) BlendFunc(src, dst gl.Enum) {
	b := [2]gl.Enum{src, dst}
	if s.blendKnown && s.blend == b {
		return
	}
	s.gl.BlendFunc(src, dst)
	s.blend, s.blendKnown = b, true
}
