// Package camera provides camera implementations for 3D rendering.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Movement is a window-system independent movement intent.
type Movement int

const (
	Forward Movement = iota
	Backward
	Left
	Right
	Up
	Down
)

// String returns the movement name.
func (m Movement) String() string {
	switch m {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// Default camera values.
const (
	DefaultYaw         float32 = -90
	DefaultPitch       float32 = 0
	DefaultSpeed       float32 = 2.5
	DefaultSensitivity float32 = 0.1
	DefaultZoom        float32 = 45

	MaxPitch float32 = 89
	MinZoom  float32 = 1
	MaxZoom  float32 = 90
)

// Camera is a free-fly camera driven by yaw and pitch in degrees.
// Front, Right and Up are always derived from yaw, pitch and the world up vector.
type Camera struct {
	position mgl32.Vec3
	front    mgl32.Vec3
	up       mgl32.Vec3
	right    mgl32.Vec3
	worldUp  mgl32.Vec3

	yaw   float32
	pitch float32

	// Speed is the translation speed in units per second.
	Speed float32
	// Sensitivity scales look offsets (pixels) into degrees.
	Sensitivity float32

	zoom float32
}

// Option configures a Camera at construction.
type Option func(*Camera)

// WithUp sets the world up vector. It is normalized.
func WithUp(up mgl32.Vec3) Option {
	return func(c *Camera) {
		if up.Len() > 0 {
			c.worldUp = up.Normalize()
		}
	}
}

// WithYaw sets the initial yaw in degrees.
func WithYaw(yaw float32) Option {
	return func(c *Camera) { c.yaw = yaw }
}

// WithPitch sets the initial pitch in degrees. It is clamped like a look update.
func WithPitch(pitch float32) Option {
	return func(c *Camera) { c.pitch = clamp(pitch, -MaxPitch, MaxPitch) }
}

// WithSpeed sets the movement speed.
func WithSpeed(speed float32) Option {
	return func(c *Camera) { c.Speed = speed }
}

// WithSensitivity sets the look sensitivity.
func WithSensitivity(s float32) Option {
	return func(c *Camera) { c.Sensitivity = s }
}

// WithZoom sets the initial field of view in degrees, clamped to [1, 90].
func WithZoom(zoom float32) Option {
	return func(c *Camera) { c.zoom = clamp(zoom, MinZoom, MaxZoom) }
}

// New creates a camera at position with the default orientation unless overridden.
func New(position mgl32.Vec3, opts ...Option) *Camera {
	c := &Camera{
		position:    position,
		front:       mgl32.Vec3{0, 0, -1},
		worldUp:     mgl32.Vec3{0, 1, 0},
		yaw:         DefaultYaw,
		pitch:       DefaultPitch,
		Speed:       DefaultSpeed,
		Sensitivity: DefaultSensitivity,
		zoom:        DefaultZoom,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.updateVectors()
	return c
}

// ViewMatrix returns the look-at transform for the current position and orientation.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.position.Add(c.front), c.up)
}

// Projection returns a perspective projection using the current zoom as vertical FOV.
func (c *Camera) Projection(aspect, near, far float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.zoom), aspect, near, far)
}

// ProcessMovement moves the camera along its basis, scaled by Speed and dt seconds.
func (c *Camera) ProcessMovement(direction Movement, dt float32) {
	var dir mgl32.Vec3
	switch direction {
	case Forward:
		dir = c.front
	case Backward:
		dir = c.front.Mul(-1)
	case Left:
		dir = c.right.Mul(-1)
	case Right:
		dir = c.right
	case Up:
		dir = c.worldUp
	case Down:
		dir = c.worldUp.Mul(-1)
	}

	if dir.Len() == 0 {
		return
	}
	c.position = c.position.Add(dir.Normalize().Mul(c.Speed * dt))
}

// ProcessLook applies a mouse offset in pixels. Yaw wraps into [0, 360);
// pitch is clamped to [-89, 89] when constrainPitch is set.
func (c *Camera) ProcessLook(xOffset, yOffset float32, constrainPitch bool) {
	xOffset *= c.Sensitivity
	yOffset *= c.Sensitivity

	c.yaw = wrapDegrees(c.yaw + xOffset)
	c.pitch += yOffset

	if constrainPitch {
		c.pitch = clamp(c.pitch, -MaxPitch, MaxPitch)
	}

	c.updateVectors()
}

// ProcessZoom narrows the field of view by a scroll offset, clamped to [1, 90].
func (c *Camera) ProcessZoom(offset float32) {
	c.zoom = clamp(c.zoom-offset, MinZoom, MaxZoom)
}

// updateVectors rebuilds the orthonormal basis from yaw and pitch.
func (c *Camera) updateVectors() {
	yaw := mgl32.DegToRad(c.yaw)
	pitch := mgl32.DegToRad(c.pitch)

	front := mgl32.Vec3{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	}
	c.front = front.Normalize()
	c.right = c.front.Cross(c.worldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}

// Position returns the camera position.
func (c *Camera) Position() mgl32.Vec3 { return c.position }

// SetPosition moves the camera without changing its orientation.
func (c *Camera) SetPosition(p mgl32.Vec3) { c.position = p }

// Eye returns the camera position; it lets Camera serve as a viewpoint.
func (c *Camera) Eye() mgl32.Vec3 { return c.position }

// Front returns the unit view direction.
func (c *Camera) Front() mgl32.Vec3 { return c.front }

// Right returns the unit right vector.
func (c *Camera) Right() mgl32.Vec3 { return c.right }

// Up returns the unit camera up vector.
func (c *Camera) Up() mgl32.Vec3 { return c.up }

// WorldUp returns the fixed world up reference.
func (c *Camera) WorldUp() mgl32.Vec3 { return c.worldUp }

// Yaw returns the yaw in degrees.
func (c *Camera) Yaw() float32 { return c.yaw }

// Pitch returns the pitch in degrees.
func (c *Camera) Pitch() float32 { return c.pitch }

// Zoom returns the vertical field of view in degrees.
func (c *Camera) Zoom() float32 { return c.zoom }

// FOV is an alias of Zoom.
func (c *Camera) FOV() float32 { return c.zoom }

func wrapDegrees(deg float32) float32 {
	deg = math32.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// -tiny + 360 rounds to 360 in float32.
	if deg >= 360 {
		deg = 0
	}
	return deg
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
