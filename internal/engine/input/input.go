// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies a processed event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseWheel
	EventMouseButton
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	XRel   int32
	YRel   int32
	Wheel  float32
	Button uint8
}

// Input collects the events of one frame and tracks held keys across frames.
type Input struct {
	events  []Event
	held    map[sdl.Scancode]bool
	pressed map[sdl.Scancode]bool
	buttons map[uint8]bool

	mouseDX, mouseDY int32
	wheel            float32

	quit          bool
	resized       bool
	width, height int
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events:  make([]Event, 0, 16),
		held:    make(map[sdl.Scancode]bool),
		pressed: make(map[sdl.Scancode]bool),
		buttons: make(map[uint8]bool),
	}
}

// Update clears per-frame state, then polls and handles all pending SDL events.
// Returns true once a quit was requested.
func (i *Input) Update() bool {
	i.beginFrame()
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		i.Handle(event)
	}
	return i.quit
}

func (i *Input) beginFrame() {
	i.events = i.events[:0]
	clear(i.pressed)
	i.mouseDX, i.mouseDY = 0, 0
	i.wheel = 0
	i.resized = false
}

// Handle applies a single SDL event.
func (i *Input) Handle(event sdl.Event) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		i.quit = true
		i.events = append(i.events, Event{Type: EventQuit})

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			i.resized = true
			i.width, i.height = int(e.Data1), int(e.Data2)
			i.events = append(i.events, Event{
				Type:   EventWindowResize,
				Width:  i.width,
				Height: i.height,
			})
		}

	case *sdl.KeyboardEvent:
		sc := e.Keysym.Scancode
		switch e.Type {
		case sdl.KEYDOWN:
			if !i.held[sc] && e.Repeat == 0 {
				i.pressed[sc] = true
			}
			i.held[sc] = true
			i.events = append(i.events, Event{Type: EventKeyDown, Key: sc})
		case sdl.KEYUP:
			delete(i.held, sc)
			i.events = append(i.events, Event{Type: EventKeyUp, Key: sc})
		}

	case *sdl.MouseMotionEvent:
		i.mouseDX += e.XRel
		i.mouseDY += e.YRel
		i.events = append(i.events, Event{Type: EventMouseMove, XRel: e.XRel, YRel: e.YRel})

	case *sdl.MouseButtonEvent:
		i.buttons[e.Button] = e.State == sdl.PRESSED
		i.events = append(i.events, Event{Type: EventMouseButton, Button: e.Button})

	case *sdl.MouseWheelEvent:
		y := float32(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			y = -y
		}
		i.wheel += y
		i.events = append(i.events, Event{Type: EventMouseWheel, Wheel: y})
	}
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed reports whether the key went down this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	return i.pressed[scancode]
}

// IsKeyDown reports whether the key is currently held.
func (i *Input) IsKeyDown(scancode sdl.Scancode) bool {
	return i.held[scancode]
}

// IsButtonDown reports whether the mouse button (sdl.BUTTON_LEFT, ...) is held.
func (i *Input) IsButtonDown(button uint8) bool {
	return i.buttons[button]
}

// MouseDelta returns the relative mouse motion accumulated this frame.
// Positive y is downwards.
func (i *Input) MouseDelta() (dx, dy float32) {
	return float32(i.mouseDX), float32(i.mouseDY)
}

// Wheel returns the vertical scroll accumulated this frame, positive away
// from the user.
func (i *Input) Wheel() float32 {
	return i.wheel
}

// QuitRequested reports whether the window was asked to close.
func (i *Input) QuitRequested() bool {
	return i.quit
}

// RequestQuit marks the input as quitting, as if the window had been closed.
func (i *Input) RequestQuit() {
	i.quit = true
}

// Resized returns the new window size if it changed this frame.
func (i *Input) Resized() (width, height int, ok bool) {
	return i.width, i.height, i.resized
}
