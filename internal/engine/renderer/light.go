package renderer

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// lightMarkerScale is the size of the cube drawn at the light position.
const lightMarkerScale = 0.2

// Light is a point light with distance attenuation.
type Light struct {
	Position mgl32.Vec3
	Color    mgl32.Vec3

	// Radius of the orbit followed by Orbit.
	Radius float32

	// Ambient, Diffuse and Specular scale Color for each lighting term.
	Ambient  float32
	Diffuse  float32
	Specular float32

	Constant  float32
	Linear    float32
	Quadratic float32
}

// NewLight returns a light with attenuation tuned for a range of about 50 units.
func NewLight(color mgl32.Vec3, radius float32) Light {
	return Light{
		Color:     color,
		Radius:    radius,
		Ambient:   0.2,
		Diffuse:   0.8,
		Specular:  1.0,
		Constant:  1.0,
		Linear:    0.09,
		Quadratic: 0.032,
	}
}

// Orbit places the light on a circle of Radius around the origin in the
// XZ plane, at angle t radians.
func (l *Light) Orbit(t float32) {
	l.Position = mgl32.Vec3{math32.Sin(t) * l.Radius, 0, math32.Cos(t) * l.Radius}
}

// MarkerMatrix returns the model matrix of the light marker cube.
func (l *Light) MarkerMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(l.Position[0], l.Position[1], l.Position[2]).
		Mul4(mgl32.Scale3D(lightMarkerScale, lightMarkerScale, lightMarkerScale))
}

// lightUniforms is the subset of shader.Program used to upload a light.
type lightUniforms interface {
	SetVec3(name string, v mgl32.Vec3)
	SetFloat(name string, v float32)
}

func (l *Light) apply(u lightUniforms) {
	u.SetVec3("light.position", l.Position)
	u.SetVec3("light.ambient", l.Color.Mul(l.Ambient))
	u.SetVec3("light.diffuse", l.Color.Mul(l.Diffuse))
	u.SetVec3("light.specular", l.Color.Mul(l.Specular))
	u.SetFloat("light.constant", l.Constant)
	u.SetFloat("light.linear", l.Linear)
	u.SetFloat("light.quadratic", l.Quadratic)
}
