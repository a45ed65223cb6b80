package shader

import (
	"fmt"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/learngl/internal/logger"
)

// Program is a linked shader program with a uniform location cache.
// The zero Program is valid; all of its methods are no-ops, so a program
// that failed to link renders nothing instead of crashing.
type Program struct {
	id        uint32
	name      string
	locations map[string]int32
}

// New compiles and links a program from sources. name is used in logs.
func New(name, vertexSrc, fragmentSrc string) (*Program, error) {
	id, err := CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return &Program{name: name}, fmt.Errorf("program %s: %w", name, err)
	}
	return &Program{id: id, name: name, locations: make(map[string]int32)}, nil
}

// Load reads vertex and fragment sources from disk and builds a program.
func Load(name, vertexPath, fragmentPath string) (*Program, error) {
	vs, err := os.ReadFile(vertexPath)
	if err != nil {
		return &Program{name: name}, fmt.Errorf("program %s: reading vertex shader: %w", name, err)
	}
	fs, err := os.ReadFile(fragmentPath)
	if err != nil {
		return &Program{name: name}, fmt.Errorf("program %s: reading fragment shader: %w", name, err)
	}
	return New(name, string(vs), string(fs))
}

// ID returns the GL program name, zero if linking failed.
func (p *Program) ID() uint32 { return p.id }

// Valid reports whether the program linked.
func (p *Program) Valid() bool { return p.id != 0 }

// Use makes the program current.
func (p *Program) Use() {
	if p.id == 0 {
		return
	}
	gl.UseProgram(p.id)
}

// Delete releases the program. Safe to call more than once.
func (p *Program) Delete() {
	if p.id == 0 {
		return
	}
	gl.DeleteProgram(p.id)
	p.id = 0
	p.locations = nil
}

// Uniform returns the cached location of a uniform, -1 if it is inactive.
func (p *Program) Uniform(name string) int32 {
	if p.id == 0 {
		return -1
	}
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	if loc < 0 {
		logger.Debug("inactive uniform", zap.String("program", p.name), zap.String("uniform", name))
	}
	p.locations[name] = loc
	return loc
}

// MustUniform is like Uniform but panics when the uniform is missing.
func (p *Program) MustUniform(name string) int32 {
	loc := p.Uniform(name)
	if loc < 0 {
		panic(fmt.Sprintf("uniform %q not found in program %s", name, p.name))
	}
	return loc
}

// SetInt sets an int or sampler uniform.
func (p *Program) SetInt(name string, v int32) {
	if loc := p.Uniform(name); loc >= 0 {
		gl.Uniform1i(loc, v)
	}
}

// SetBool sets a bool uniform.
func (p *Program) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	p.SetInt(name, i)
}

// SetFloat sets a float uniform.
func (p *Program) SetFloat(name string, v float32) {
	if loc := p.Uniform(name); loc >= 0 {
		gl.Uniform1f(loc, v)
	}
}

// SetVec3 sets a vec3 uniform.
func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	if loc := p.Uniform(name); loc >= 0 {
		gl.Uniform3f(loc, v[0], v[1], v[2])
	}
}

// SetMat4 sets a mat4 uniform.
func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	if loc := p.Uniform(name); loc >= 0 {
		gl.UniformMatrix4fv(loc, 1, false, &m[0])
	}
}
