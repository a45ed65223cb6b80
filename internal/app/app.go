// Package app implements the viewer main loop and owns all runtime state.
package app

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/learngl/internal/config"
	"github.com/Faultbox/learngl/internal/engine/debug"
	"github.com/Faultbox/learngl/internal/engine/gfx"
	"github.com/Faultbox/learngl/internal/engine/input"
	"github.com/Faultbox/learngl/internal/engine/model"
	"github.com/Faultbox/learngl/internal/engine/renderer"
	"github.com/Faultbox/learngl/internal/engine/scene"
	"github.com/Faultbox/learngl/internal/engine/window"
	"github.com/Faultbox/learngl/internal/logger"
)

// App is the viewer instance.
type App struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	input    *input.Input
	device   gfx.Device
	renderer *renderer.Renderer

	camera Controller
	model  *model.Model
	light  renderer.Light
	timer  *FrameTimer

	showBounds  bool
	screenshots *debug.Screenshots
}

// New creates the window, GL state, camera and loads the configured model.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.String("camera", cfg.Camera.Mode),
	)

	a := &App{
		cfg:   cfg,
		input: input.New(),
		light: renderer.NewLight(cfg.Render.LightColor, cfg.Render.LightRadius),

		showBounds:  cfg.Render.ShowBounds,
		screenshots: debug.NewScreenshots(cfg.Render.ScreenshotDir, "learngl"),
	}

	// Create window (this also creates OpenGL context)
	var err error
	a.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	if err := gfx.Init(); err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	a.device = gfx.NewGL()

	// Viewport is in pixels, which differs from window size on HiDPI displays.
	width, height := a.window.DrawableSize()
	a.renderer = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		ClearColor: cfg.Render.ClearColor,
		Wireframe:  cfg.Render.Wireframe,
		ShaderDir:  cfg.Scene.ShaderDir,
	}, a.device)

	logger.Debug("scene importers", zap.Strings("formats", scene.Formats()))
	if cfg.Scene.ModelPath != "" {
		a.model = a.loadModel(cfg.Scene.ModelPath)
	}

	var bounds model.Bounds
	var ok bool
	if a.model != nil {
		bounds, ok = a.model.Bounds()
	}
	a.camera = newController(cfg.Camera, bounds, ok)
	a.window.CaptureMouse(cfg.Camera.Mode == config.CameraFly)

	logger.Info("viewer initialized successfully")
	return a, nil
}

// loadModel loads path, returning nil when nothing could be loaded so the
// demo scene is shown instead.
func (a *App) loadModel(path string) *model.Model {
	m, err := model.Load(path, model.DefaultLoader(a.device))
	if err != nil {
		// Load has logged the cause already.
		logger.Warn("showing demo scene instead", zap.String("model", path))
		m.Close()
		return nil
	}
	if len(m.Meshes) == 0 {
		logger.Warn("model has no meshes", zap.String("path", path))
	}
	return m
}

// Run starts the main loop and returns when the window is closed or Escape
// is pressed.
func (a *App) Run() error {
	a.running = true
	a.timer = NewFrameTimer()

	logger.Info("starting main loop")

	for a.running {
		dt, fps, report := a.timer.Tick()
		if report {
			logger.Debug("fps", zap.Int("count", fps), zap.Float32("dt_ms", dt*1000))
			a.window.SetTitle(fmt.Sprintf("%s - %d fps", a.cfg.Window.Title, fps))
		}

		// 1. Process input
		if a.input.Update() {
			break
		}
		a.handleEvents()
		if !a.running {
			break
		}

		// 2. Update camera and light
		a.camera.Apply(readControls(a.input), dt)
		a.light.Orbit(a.timer.Elapsed())

		// 3. Render
		a.render()
		if a.input.IsKeyPressed(sdl.SCANCODE_F12) {
			a.screenshot()
		}

		// 4. Present
		a.window.SwapBuffers()
	}

	return nil
}

func (a *App) handleEvents() {
	if w, h, ok := a.input.Resized(); ok {
		a.onResize(w, h)
	}
	if a.input.IsKeyPressed(sdl.SCANCODE_ESCAPE) {
		a.running = false
	}
	if a.input.IsKeyPressed(sdl.SCANCODE_F) {
		a.renderer.SetWireframe(!a.renderer.Wireframe())
	}
	if a.input.IsKeyPressed(sdl.SCANCODE_B) {
		a.showBounds = !a.showBounds
	}
}

// screenshot saves the frame just rendered, before it is presented.
func (a *App) screenshot() {
	pixels, w, h := a.renderer.ReadPixels()
	name, err := a.screenshots.Save(pixels, w, h)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("file", name))
}

// onResize receives window coordinates; the viewport wants pixels.
func (a *App) onResize(_, _ int) {
	w, h := a.window.DrawableSize()
	a.renderer.Resize(w, h)
}

func (a *App) render() {
	a.renderer.Begin()
	a.renderer.Draw(&renderer.Frame{
		Projection: projection(a.camera.FOV(), a.renderer.AspectRatio(), a.cfg.Render.Near, a.cfg.Render.Far),
		View:       a.camera.ViewMatrix(),
		Eye:        a.camera.Eye(),
		Light:      a.light,
		Model:      a.model,
		Time:       a.timer.Elapsed(),
		ShowBounds: a.showBounds,
	})
	a.renderer.End()
}

// Close releases GPU resources, then the window.
func (a *App) Close() {
	logger.Info("closing viewer")

	if a.model != nil {
		a.model.Close()
		a.model = nil
	}
	if a.renderer != nil {
		a.renderer.Close()
		a.renderer = nil
	}
	if a.window != nil {
		a.window.Close()
		a.window = nil
	}
}
