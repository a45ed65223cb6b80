package app

import "time"

// FrameTimer measures per-frame delta time and frames per second.
type FrameTimer struct {
	now func() time.Time

	start    time.Time
	last     time.Time
	fpsStart time.Time
	frames   int
}

// NewFrameTimer returns a timer started now.
func NewFrameTimer() *FrameTimer {
	return newFrameTimer(time.Now)
}

func newFrameTimer(now func() time.Time) *FrameTimer {
	t := now()
	return &FrameTimer{now: now, start: t, last: t, fpsStart: t}
}

// Tick marks the start of a frame and returns the seconds since the previous
// one. Once per second it also returns the frame count of that second with
// report set.
func (t *FrameTimer) Tick() (dt float32, fps int, report bool) {
	now := t.now()
	dt = float32(now.Sub(t.last).Seconds())
	t.last = now

	t.frames++
	if now.Sub(t.fpsStart) >= time.Second {
		fps, report = t.frames, true
		t.frames = 0
		t.fpsStart = now
	}
	return dt, fps, report
}

// Elapsed returns the seconds from the timer start to the last Tick.
func (t *FrameTimer) Elapsed() float32 {
	return float32(t.last.Sub(t.start).Seconds())
}
