package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func keyEvent(typ uint32, sc sdl.Scancode, repeat uint8) *sdl.KeyboardEvent {
	return &sdl.KeyboardEvent{Type: typ, Repeat: repeat, Keysym: sdl.Keysym{Scancode: sc}}
}

func TestHeldKeys(t *testing.T) {
	in := New()

	in.beginFrame()
	in.Handle(keyEvent(sdl.KEYDOWN, sdl.SCANCODE_W, 0))
	if !in.IsKeyDown(sdl.SCANCODE_W) || !in.IsKeyPressed(sdl.SCANCODE_W) {
		t.Fatal("W not down and pressed after KEYDOWN")
	}

	// Held across frames, pressed only on the first.
	in.beginFrame()
	in.Handle(keyEvent(sdl.KEYDOWN, sdl.SCANCODE_W, 1))
	if !in.IsKeyDown(sdl.SCANCODE_W) {
		t.Error("W released by a new frame")
	}
	if in.IsKeyPressed(sdl.SCANCODE_W) {
		t.Error("key repeat reported as a press")
	}

	in.beginFrame()
	in.Handle(keyEvent(sdl.KEYUP, sdl.SCANCODE_W, 0))
	if in.IsKeyDown(sdl.SCANCODE_W) {
		t.Error("W still down after KEYUP")
	}
	if in.IsKeyDown(sdl.SCANCODE_S) {
		t.Error("S down without an event")
	}
}

func TestMouseAccumulates(t *testing.T) {
	in := New()
	in.beginFrame()
	in.Handle(&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, XRel: 3, YRel: -2})
	in.Handle(&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, XRel: 4, YRel: 5})
	in.Handle(&sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: 1})
	in.Handle(&sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: 2, Direction: sdl.MOUSEWHEEL_FLIPPED})

	dx, dy := in.MouseDelta()
	if dx != 7 || dy != 3 {
		t.Errorf("MouseDelta() = (%v, %v), want (7, 3)", dx, dy)
	}
	if got := in.Wheel(); got != -1 {
		t.Errorf("Wheel() = %v, want -1", got)
	}
	if got := len(in.Events()); got != 4 {
		t.Errorf("got %d events, want 4", got)
	}

	in.beginFrame()
	dx, dy = in.MouseDelta()
	if dx != 0 || dy != 0 || in.Wheel() != 0 || len(in.Events()) != 0 {
		t.Error("per-frame state not cleared")
	}
}

func TestQuitAndResize(t *testing.T) {
	in := New()
	in.beginFrame()
	if in.QuitRequested() {
		t.Fatal("quit before any event")
	}
	in.Handle(&sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_RESIZED, Data1: 1024, Data2: 768})
	in.Handle(&sdl.QuitEvent{Type: sdl.QUIT})

	if !in.QuitRequested() {
		t.Error("QuitEvent not recorded")
	}
	w, h, ok := in.Resized()
	if !ok || w != 1024 || h != 768 {
		t.Errorf("Resized() = (%d, %d, %v)", w, h, ok)
	}

	in.beginFrame()
	if _, _, ok := in.Resized(); ok {
		t.Error("resize reported on the next frame")
	}
	if !in.QuitRequested() {
		t.Error("quit cleared by a new frame")
	}
}

func TestRequestQuit(t *testing.T) {
	in := New()
	in.RequestQuit()
	if !in.QuitRequested() {
		t.Error("RequestQuit had no effect")
	}
}

func TestMouseButtons(t *testing.T) {
	in := New()
	in.Handle(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_LEFT, State: sdl.PRESSED})
	if !in.IsButtonDown(sdl.BUTTON_LEFT) {
		t.Fatal("left button not down after press")
	}
	if in.IsButtonDown(sdl.BUTTON_RIGHT) {
		t.Error("right button down without an event")
	}

	in.beginFrame()
	if !in.IsButtonDown(sdl.BUTTON_LEFT) {
		t.Error("button released by a new frame")
	}
	in.Handle(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONUP, Button: sdl.BUTTON_LEFT, State: sdl.RELEASED})
	if in.IsButtonDown(sdl.BUTTON_LEFT) {
		t.Error("left button still down after release")
	}
}
