package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center mgl32.Vec3

	// Spherical coordinates
	Distance float32
	Pitch    float32 // radians, above the XZ plane
	Yaw      float32 // radians, around +Y

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	// Fov is the vertical field of view in degrees.
	Fov float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        5,
		Pitch:           0.4,
		MinDistance:     0.1,
		MaxDistance:     500,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		Fov:             DefaultZoom,
	}
}

// Eye returns the camera position in world space.
func (c *OrbitCamera) Eye() mgl32.Vec3 {
	cp := math32.Cos(c.Pitch)
	offset := mgl32.Vec3{
		c.Distance * cp * math32.Sin(c.Yaw),
		c.Distance * math32.Sin(c.Pitch),
		c.Distance * cp * math32.Cos(c.Yaw),
	}
	return c.Center.Add(offset)
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye(), c.Center, mgl32.Vec3{0, 1, 0})
}

// FOV returns the vertical field of view in degrees.
func (c *OrbitCamera) FOV() float32 { return c.Fov }

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch = clamp(c.Pitch+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
// The step is proportional to the current distance.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance = clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// HandleMovement pans the center point. forward, right and up are in [-1, 1].
func (c *OrbitCamera) HandleMovement(forward, right, up, dt float32) {
	speed := c.Distance * dt

	dirX, dirZ := math32.Sin(c.Yaw), math32.Cos(c.Yaw)
	rightX, rightZ := math32.Cos(c.Yaw), -math32.Sin(c.Yaw)

	// The eye sits at +dir from the center, so forward is -dir.
	c.Center[0] += (-dirX*forward + rightX*right) * speed
	c.Center[2] += (-dirZ*forward + rightZ*right) * speed
	c.Center[1] += up * speed
}

// FitToBounds centers the camera on an axis-aligned box and backs off far
// enough to keep it in view.
func (c *OrbitCamera) FitToBounds(min, max mgl32.Vec3) {
	c.Center = min.Add(max).Mul(0.5)

	radius := max.Sub(min).Len() / 2
	if radius <= 0 {
		radius = 1
	}
	halfFov := mgl32.DegToRad(c.Fov) / 2
	c.Distance = radius / math32.Sin(halfFov)
	if c.MaxDistance < c.Distance*2 {
		c.MaxDistance = c.Distance * 2
	}
	if c.MinDistance > radius/10 {
		c.MinDistance = radius / 10
	}

	c.Pitch = 0.4
	c.Yaw = 0
}
