// Package renderer draws a loaded model, or a demo scene, lit by one point light.
package renderer

import (
	"path/filepath"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/learngl/internal/engine/debug"
	"github.com/Faultbox/learngl/internal/engine/gfx"
	"github.com/Faultbox/learngl/internal/engine/model"
	"github.com/Faultbox/learngl/internal/engine/shader"
	"github.com/Faultbox/learngl/internal/engine/shader/shaders"
	"github.com/Faultbox/learngl/internal/engine/texture"
	"github.com/Faultbox/learngl/internal/logger"
)

// Material shininess used for every model mesh.
const shininess = 32

var boundsColor = mgl32.Vec3{1, 1, 0}

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor [3]float32
	Wireframe  bool
	// ShaderDir, when set, holds model.vert and model.frag replacing the
	// embedded model shaders.
	ShaderDir string
}

// Frame is everything needed to draw one frame.
type Frame struct {
	Projection mgl32.Mat4
	View       mgl32.Mat4
	Eye        mgl32.Vec3
	Light      Light
	// Model is drawn when non-nil; otherwise the demo cubes are.
	Model *model.Model
	// Time in seconds, drives the demo cube rotation.
	Time float32
	// ShowBounds outlines the model bounding box.
	ShowBounds bool
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config
	device gfx.Device

	modelProgram *shader.Program
	cubeProgram  *shader.Program
	lightProgram *shader.Program

	cube     gfx.Buffers
	fallback gfx.TextureID
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER gfx.Init!
//
// Shader failures are logged, not returned. A pass whose program failed to
// build is skipped.
func New(cfg Config, dev gfx.Device) *Renderer {
	r := &Renderer{
		config: cfg,
		device: dev,
	}

	r.modelProgram = r.loadModelProgram()
	r.cubeProgram = buildProgram("cube", shaders.ModelVertexShader, shaders.CubeFragmentShader)
	r.lightProgram = buildProgram("light", shaders.LightVertexShader, shaders.LightFragmentShader)

	r.cube = dev.UploadMesh(cubeMesh())

	// Meshes without a diffuse or specular map sample plain white.
	r.fallback = dev.UploadTexture(&texture.Image{
		Pix: []byte{255, 255, 255, 255}, Width: 1, Height: 1, Channels: 4,
	})

	r.SetWireframe(cfg.Wireframe)
	r.Resize(cfg.Width, cfg.Height)
	return r
}

func buildProgram(name, vs, fs string) *shader.Program {
	p, err := shader.New(name, vs, fs)
	if err != nil {
		logger.Error("shader program failed", zap.String("program", name), zap.Error(err))
	}
	return p
}

func (r *Renderer) loadModelProgram() *shader.Program {
	if r.config.ShaderDir == "" {
		return buildProgram("model", shaders.ModelVertexShader, shaders.ModelFragmentShader)
	}
	p, err := shader.Load("model",
		filepath.Join(r.config.ShaderDir, "model.vert"),
		filepath.Join(r.config.ShaderDir, "model.frag"))
	if err != nil {
		logger.Error("shader program failed",
			zap.String("program", "model"), zap.String("dir", r.config.ShaderDir), zap.Error(err))
	}
	return p
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	r.device.DeleteMesh(r.cube)
	r.device.DeleteTexture(r.fallback)
	r.cube = gfx.Buffers{}
	r.fallback = 0
	r.modelProgram.Delete()
	r.cubeProgram.Delete()
	r.lightProgram.Delete()
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// AspectRatio returns the viewport width over height.
func (r *Renderer) AspectRatio() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// SetWireframe switches between filled and line polygon rasterization.
func (r *Renderer) SetWireframe(on bool) {
	r.config.Wireframe = on
	mode := uint32(gl.FILL)
	if on {
		mode = gl.LINE
	}
	gl.PolygonMode(gl.FRONT_AND_BACK, mode)
}

// Wireframe reports whether wireframe mode is on.
func (r *Renderer) Wireframe() bool {
	return r.config.Wireframe
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	c := r.config.ClearColor
	gl.ClearColor(c[0], c[1], c[2], 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// Draw draws the model (or demo cubes) and the light marker.
func (r *Renderer) Draw(f *Frame) {
	if f.Model != nil {
		r.drawModel(f)
	} else {
		r.drawDemoCubes(f)
	}
	r.drawLight(f)
	if f.ShowBounds && f.Model != nil {
		if b, ok := f.Model.Bounds(); ok {
			r.drawBounds(f, b)
		}
	}
}

func (r *Renderer) drawModel(f *Frame) {
	p := r.modelProgram
	if !p.Valid() {
		return
	}
	p.Use()
	p.SetMat4("projection", f.Projection)
	p.SetMat4("view", f.View)
	p.SetMat4("model", mgl32.Ident4())
	p.SetVec3("viewPos", f.Eye)
	p.SetFloat("material.shininess", shininess)
	f.Light.apply(p)

	f.Model.SetFallback(r.fallback)
	f.Model.Draw(p)
}

func (r *Renderer) drawDemoCubes(f *Frame) {
	p := r.cubeProgram
	if !p.Valid() {
		return
	}
	p.Use()
	p.SetMat4("projection", f.Projection)
	p.SetMat4("view", f.View)
	p.SetVec3("viewPos", f.Eye)
	p.SetVec3("objectColor", demoCubeColor)
	p.SetVec3("lightColor", f.Light.Color)
	p.SetVec3("lightPos", f.Light.Position)

	for i := range demoCubes {
		p.SetMat4("model", demoCubeMatrix(i, f.Time))
		r.device.DrawIndexed(r.cube)
	}
}

func (r *Renderer) drawLight(f *Frame) {
	p := r.lightProgram
	if !p.Valid() {
		return
	}
	p.Use()
	p.SetMat4("projection", f.Projection)
	p.SetMat4("view", f.View)
	p.SetMat4("model", f.Light.MarkerMatrix())
	p.SetVec3("lightColor", f.Light.Color)
	r.device.DrawIndexed(r.cube)
}

// drawBounds outlines b with the marker cube in line mode. Triangle diagonals
// show on each face.
func (r *Renderer) drawBounds(f *Frame, b model.Bounds) {
	p := r.lightProgram
	if !p.Valid() {
		return
	}
	p.Use()
	p.SetMat4("projection", f.Projection)
	p.SetMat4("view", f.View)
	p.SetMat4("model", debug.BoxMatrix(b.Min, b.Max, debug.DefaultBoxPadding))
	p.SetVec3("lightColor", boundsColor)

	if !r.config.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		defer gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
	r.device.DrawIndexed(r.cube)
}

// ReadPixels returns the current framebuffer as RGBA rows ordered bottom-up.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	pixels = make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels, width, height
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}
