package app

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/learngl/internal/config"
	"github.com/Faultbox/learngl/internal/engine/camera"
	"github.com/Faultbox/learngl/internal/engine/input"
	"github.com/Faultbox/learngl/internal/engine/model"
)

// Controls is the camera-relevant input of one frame.
type Controls struct {
	Forward, Backward bool
	Left, Right       bool
	Up, Down          bool

	// LookX and LookY are relative mouse motion in pixels, y downwards.
	LookX, LookY float32
	// Drag is set while the left mouse button is held.
	Drag  bool
	Wheel float32
}

func readControls(in *input.Input) Controls {
	dx, dy := in.MouseDelta()
	return Controls{
		Forward:  in.IsKeyDown(sdl.SCANCODE_W),
		Backward: in.IsKeyDown(sdl.SCANCODE_S),
		Left:     in.IsKeyDown(sdl.SCANCODE_A),
		Right:    in.IsKeyDown(sdl.SCANCODE_D),
		Up:       in.IsKeyDown(sdl.SCANCODE_SPACE),
		Down:     in.IsKeyDown(sdl.SCANCODE_LSHIFT),
		LookX:    dx,
		LookY:    dy,
		Drag:     in.IsButtonDown(sdl.BUTTON_LEFT),
		Wheel:    in.Wheel(),
	}
}

func (c Controls) movements() []camera.Movement {
	var m []camera.Movement
	if c.Forward {
		m = append(m, camera.Forward)
	}
	if c.Backward {
		m = append(m, camera.Backward)
	}
	if c.Left {
		m = append(m, camera.Left)
	}
	if c.Right {
		m = append(m, camera.Right)
	}
	if c.Up {
		m = append(m, camera.Up)
	}
	if c.Down {
		m = append(m, camera.Down)
	}
	return m
}

func axis(pos, neg bool) float32 {
	switch {
	case pos && !neg:
		return 1
	case neg && !pos:
		return -1
	}
	return 0
}

// Viewpoint is what the renderer needs from a camera.
type Viewpoint interface {
	ViewMatrix() mgl32.Mat4
	Eye() mgl32.Vec3
	FOV() float32
}

// Controller is a camera driven by per-frame controls.
type Controller interface {
	Viewpoint
	Apply(c Controls, dt float32)
}

type flyController struct {
	*camera.Camera
}

func (f flyController) Apply(c Controls, dt float32) {
	for _, m := range c.movements() {
		f.ProcessMovement(m, dt)
	}
	if c.LookX != 0 || c.LookY != 0 {
		// Screen y grows downwards; pitch grows upwards.
		f.ProcessLook(c.LookX, -c.LookY, true)
	}
	if c.Wheel != 0 {
		f.ProcessZoom(c.Wheel)
	}
}

type orbitController struct {
	*camera.OrbitCamera
}

func (o orbitController) Apply(c Controls, dt float32) {
	o.HandleMovement(axis(c.Forward, c.Backward), axis(c.Right, c.Left), axis(c.Up, c.Down), dt)
	if c.Drag {
		o.HandleDrag(c.LookX, c.LookY)
	}
	if c.Wheel != 0 {
		o.HandleZoom(c.Wheel)
	}
}

// newController builds the camera selected by cfg. An orbit camera frames
// bounds when ok is set.
func newController(cfg config.CameraConfig, bounds model.Bounds, ok bool) Controller {
	if cfg.Mode == config.CameraOrbit {
		oc := camera.NewOrbitCamera()
		oc.Fov = cfg.Zoom
		if ok {
			oc.FitToBounds(bounds.Min, bounds.Max)
		}
		return orbitController{oc}
	}
	return flyController{camera.New(cfg.Position,
		camera.WithYaw(cfg.Yaw),
		camera.WithPitch(cfg.Pitch),
		camera.WithSpeed(cfg.Speed),
		camera.WithSensitivity(cfg.Sensitivity),
		camera.WithZoom(cfg.Zoom),
	)}
}

// projection returns the perspective matrix for a vertical fov in degrees.
func projection(fov, aspect, near, far float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(fov), aspect, near, far)
}
