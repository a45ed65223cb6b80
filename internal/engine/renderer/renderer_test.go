package renderer

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-5

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < eps
}

func nearVec(a, b mgl32.Vec3) bool {
	return near(a[0], b[0]) && near(a[1], b[1]) && near(a[2], b[2])
}

func nearMat(a, b mgl32.Mat4) bool {
	for i := range a {
		if !near(a[i], b[i]) {
			return false
		}
	}
	return true
}

func TestCubeMesh(t *testing.T) {
	vertices, indices := cubeMesh()
	if len(vertices) != 24 || len(indices) != 36 {
		t.Fatalf("got %d vertices, %d indices, want 24 and 36", len(vertices), len(indices))
	}

	for tri := 0; tri < len(indices); tri += 3 {
		a := mgl32.Vec3(vertices[indices[tri]].Position)
		b := mgl32.Vec3(vertices[indices[tri+1]].Position)
		c := mgl32.Vec3(vertices[indices[tri+2]].Position)
		geom := b.Sub(a).Cross(c.Sub(a)).Normalize()
		want := mgl32.Vec3(vertices[indices[tri]].Normal)
		if !nearVec(geom, want) {
			t.Errorf("triangle %d winds towards %v, normal is %v", tri/3, geom, want)
		}
	}

	for i, v := range vertices {
		for k := 0; k < 3; k++ {
			if math.Abs(float64(v.Position[k])) != 0.5 {
				t.Errorf("vertex %d = %v, not a unit cube corner", i, v.Position)
				break
			}
		}
	}
}

func TestLightOrbit(t *testing.T) {
	l := NewLight(mgl32.Vec3{1, 1, 0}, 2)

	tests := []struct {
		t    float32
		want mgl32.Vec3
	}{
		{0, mgl32.Vec3{0, 0, 2}},
		{math.Pi / 2, mgl32.Vec3{2, 0, 0}},
		{math.Pi, mgl32.Vec3{0, 0, -2}},
	}
	for _, tt := range tests {
		l.Orbit(tt.t)
		if !nearVec(l.Position, tt.want) {
			t.Errorf("Orbit(%v) = %v, want %v", tt.t, l.Position, tt.want)
		}
		if d := l.Position.Len(); !near(d, 2) {
			t.Errorf("Orbit(%v) distance = %v, want 2", tt.t, d)
		}
	}
}

func TestLightMarkerMatrix(t *testing.T) {
	l := NewLight(mgl32.Vec3{1, 1, 1}, 1)
	l.Position = mgl32.Vec3{3, 4, 5}

	m := l.MarkerMatrix()
	corner := m.Mul4x1(mgl32.Vec4{0.5, 0.5, 0.5, 1}).Vec3()
	want := mgl32.Vec3{3.1, 4.1, 5.1}
	if !nearVec(corner, want) {
		t.Errorf("marker corner = %v, want %v", corner, want)
	}
}

type recordedUniforms struct {
	vec3s  map[string]mgl32.Vec3
	floats map[string]float32
}

func (u *recordedUniforms) SetVec3(name string, v mgl32.Vec3) { u.vec3s[name] = v }
func (u *recordedUniforms) SetFloat(name string, v float32)   { u.floats[name] = v }

func TestLightApply(t *testing.T) {
	l := NewLight(mgl32.Vec3{1, 0.5, 0}, 1)
	l.Position = mgl32.Vec3{1, 2, 3}

	u := &recordedUniforms{vec3s: map[string]mgl32.Vec3{}, floats: map[string]float32{}}
	l.apply(u)

	if got := u.vec3s["light.position"]; got != l.Position {
		t.Errorf("light.position = %v", got)
	}
	if got := u.vec3s["light.diffuse"]; !nearVec(got, mgl32.Vec3{0.8, 0.4, 0}) {
		t.Errorf("light.diffuse = %v, want color scaled by 0.8", got)
	}
	if got := u.vec3s["light.ambient"]; !nearVec(got, mgl32.Vec3{0.2, 0.1, 0}) {
		t.Errorf("light.ambient = %v", got)
	}
	if got := u.floats["light.constant"]; got != 1 {
		t.Errorf("light.constant = %v, want 1", got)
	}
	for _, name := range []string{"light.linear", "light.quadratic"} {
		if _, ok := u.floats[name]; !ok {
			t.Errorf("%s not set", name)
		}
	}
}

func TestDemoCubeMatrix(t *testing.T) {
	// Cube 0 never rotates.
	m := demoCubeMatrix(0, 123)
	if !nearMat(m, mgl32.Ident4()) {
		t.Errorf("cube 0 matrix = %v, want identity", m)
	}

	// Cube 1 sits at (0, 1, -1) and turns 10 degrees per second.
	m = demoCubeMatrix(1, 9)
	center := m.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	if !nearVec(center, demoCubes[1]) {
		t.Errorf("cube 1 center = %v, want %v", center, demoCubes[1])
	}
	// 90 degrees about +Y maps +X to -Z.
	x := m.Mul4x1(mgl32.Vec4{1, 0, 0, 0}).Vec3()
	if !nearVec(x, mgl32.Vec3{0, 0, -1}) {
		t.Errorf("cube 1 +X axis = %v, want (0, 0, -1)", x)
	}
}
