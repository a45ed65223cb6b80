package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestOrbitEyeDistance(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = mgl32.Vec3{1, 2, 3}
	c.Yaw = 1.2
	c.Pitch = -0.3

	if d := c.Eye().Sub(c.Center).Len(); !near(d, c.Distance) {
		t.Errorf("eye distance = %f, want %f", d, c.Distance)
	}
}

func TestOrbitEyeAtZeroAngles(t *testing.T) {
	c := NewOrbitCamera()
	c.Pitch = 0
	c.Yaw = 0
	c.Distance = 10
	if !nearVec(c.Eye(), mgl32.Vec3{0, 0, 10}) {
		t.Errorf("eye = %v, want (0,0,10)", c.Eye())
	}
}

func TestOrbitHandleDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(0, 1e6)
	if c.Pitch != c.MaxPitch {
		t.Errorf("pitch = %f, want %f", c.Pitch, c.MaxPitch)
	}
	c.HandleDrag(0, -1e6)
	if c.Pitch != c.MinPitch {
		t.Errorf("pitch = %f, want %f", c.Pitch, c.MinPitch)
	}
}

func TestOrbitHandleZoomClamps(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleZoom(100)
	if c.Distance != c.MinDistance {
		t.Errorf("distance = %f, want %f", c.Distance, c.MinDistance)
	}
	for i := 0; i < 200; i++ {
		c.HandleZoom(-5)
	}
	if c.Distance != c.MaxDistance {
		t.Errorf("distance = %f, want %f", c.Distance, c.MaxDistance)
	}
}

func TestOrbitFitToBounds(t *testing.T) {
	c := NewOrbitCamera()
	c.FitToBounds(mgl32.Vec3{-1, 0, -1}, mgl32.Vec3{1, 4, 1})

	if !nearVec(c.Center, mgl32.Vec3{0, 2, 0}) {
		t.Errorf("center = %v, want (0,2,0)", c.Center)
	}
	radius := mgl32.Vec3{2, 4, 2}.Len() / 2
	if c.Distance <= radius {
		t.Errorf("distance %f does not clear bounding radius %f", c.Distance, radius)
	}
	if c.Distance > c.MaxDistance || c.Distance < c.MinDistance {
		t.Errorf("distance %f outside [%f,%f]", c.Distance, c.MinDistance, c.MaxDistance)
	}
}

func TestOrbitHandleMovementForward(t *testing.T) {
	c := NewOrbitCamera()
	c.Yaw = 0
	c.Distance = 2
	c.HandleMovement(1, 0, 0, 0.5)
	// Eye is on +Z, so forward pans toward -Z.
	if !nearVec(c.Center, mgl32.Vec3{0, 0, -1}) {
		t.Errorf("center = %v, want (0,0,-1)", c.Center)
	}
}

func TestOrbitViewMatrixLooksAtCenter(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = mgl32.Vec3{3, 1, -2}
	p := c.ViewMatrix().Mul4x1(c.Center.Vec4(1))
	if !near(p[0], 0) || !near(p[1], 0) || !near(p[2], -c.Distance) {
		t.Errorf("center in view space = %v, want (0,0,%f)", p, -c.Distance)
	}
}
