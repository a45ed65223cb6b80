// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Camera  CameraConfig  `yaml:"camera"`
	Scene   SceneConfig   `yaml:"scene"`
	Render  RenderConfig  `yaml:"render"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// CameraConfig holds the initial camera state and tuning.
type CameraConfig struct {
	Mode        string     `yaml:"mode"` // "fly" or "orbit"
	Position    [3]float32 `yaml:"position"`
	Yaw         float32    `yaml:"yaw"`   // degrees
	Pitch       float32    `yaml:"pitch"` // degrees
	Speed       float32    `yaml:"speed"`
	Sensitivity float32    `yaml:"sensitivity"`
	Zoom        float32    `yaml:"zoom"` // vertical FOV, degrees
}

// SceneConfig holds what to load.
type SceneConfig struct {
	ModelPath string `yaml:"model_path"`
	// ShaderDir overrides the embedded shaders with model.vert/model.frag from disk.
	ShaderDir string `yaml:"shader_dir"`
}

// RenderConfig holds per-frame render settings.
type RenderConfig struct {
	ClearColor    [3]float32 `yaml:"clear_color"`
	Near          float32    `yaml:"near"`
	Far           float32    `yaml:"far"`
	LightColor    [3]float32 `yaml:"light_color"`
	LightRadius   float32    `yaml:"light_radius"`
	Wireframe     bool       `yaml:"wireframe"`
	ShowBounds    bool       `yaml:"show_bounds"`
	ScreenshotDir string     `yaml:"screenshot_dir"` // F12 captures
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Camera modes.
const (
	CameraFly   = "fly"
	CameraOrbit = "orbit"
)

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "learngl",
			Width:  800,
			Height: 600,
			VSync:  true,
		},
		Camera: CameraConfig{
			Mode:        CameraFly,
			Position:    [3]float32{0, 1, 4},
			Yaw:         -90,
			Pitch:       0,
			Speed:       2.5,
			Sensitivity: 0.1,
			Zoom:        45,
		},
		Render: RenderConfig{
			ClearColor:    [3]float32{0.2, 0.3, 0.3},
			Near:          0.1,
			Far:           100,
			LightColor:    [3]float32{1, 1, 1},
			LightRadius:   1.5,
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate replaces values the viewer cannot work with by their defaults.
func (c *Config) Validate() {
	def := Default()
	if c.Window.Width <= 0 {
		c.Window.Width = def.Window.Width
	}
	if c.Window.Height <= 0 {
		c.Window.Height = def.Window.Height
	}
	if c.Camera.Mode != CameraFly && c.Camera.Mode != CameraOrbit {
		c.Camera.Mode = def.Camera.Mode
	}
	if c.Camera.Zoom < 1 || c.Camera.Zoom > 90 {
		c.Camera.Zoom = def.Camera.Zoom
	}
	if c.Camera.Speed <= 0 {
		c.Camera.Speed = def.Camera.Speed
	}
	if c.Camera.Sensitivity <= 0 {
		c.Camera.Sensitivity = def.Camera.Sensitivity
	}
	if c.Render.Near <= 0 || c.Render.Far <= c.Render.Near {
		c.Render.Near = def.Render.Near
		c.Render.Far = def.Render.Far
	}
}
