package gfx

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/learngl/internal/engine/texture"
	"github.com/Faultbox/learngl/internal/logger"
)

// Init loads OpenGL function pointers and sets the default pipeline state.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func Init() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	return nil
}

// GL implements Device with OpenGL 4.1 core.
type GL struct{}

// NewGL returns the OpenGL device. Init must have succeeded first.
func NewGL() *GL {
	return &GL{}
}

// UploadTexture implements Device.
func (*GL) UploadTexture(img *texture.Image) TextureID {
	var format uint32
	switch img.Channels {
	case 1:
		format = gl.RED
	case 3:
		format = gl.RGB
	case 4:
		format = gl.RGBA
	default:
		logger.Warn("unsupported channel count", zap.Int("channels", img.Channels))
		return 0
	}
	if img.Width == 0 || img.Height == 0 || len(img.Pix) < img.Stride()*img.Height {
		logger.Warn("empty or short texture data",
			zap.Int("width", img.Width), zap.Int("height", img.Height), zap.Int("bytes", len(img.Pix)))
		return 0
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	// Rows of 1 and 3 channel images are not 4-byte aligned.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(img.Width), int32(img.Height), 0,
		format, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return TextureID(id)
}

// DeleteTexture implements Device.
func (*GL) DeleteTexture(id TextureID) {
	if !id.Valid() {
		return
	}
	tex := uint32(id)
	gl.DeleteTextures(1, &tex)
}

// UploadMesh implements Device.
func (*GL) UploadMesh(vertices []Vertex, indices []uint32) Buffers {
	var b Buffers
	if len(vertices) == 0 || len(indices) == 0 {
		return b
	}

	gl.GenVertexArrays(1, &b.VAO)
	gl.GenBuffers(1, &b.VBO)
	gl.GenBuffers(1, &b.EBO)

	gl.BindVertexArray(b.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, b.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*int(VertexStride), unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(AttribPosition)
	gl.VertexAttribPointerWithOffset(AttribPosition, 3, gl.FLOAT, false, VertexStride, 0)
	gl.EnableVertexAttribArray(AttribNormal)
	gl.VertexAttribPointerWithOffset(AttribNormal, 3, gl.FLOAT, false, VertexStride, uintptr(normalOffset))
	gl.EnableVertexAttribArray(AttribTexCoord)
	gl.VertexAttribPointerWithOffset(AttribTexCoord, 2, gl.FLOAT, false, VertexStride, uintptr(texCoordOffset))

	gl.BindVertexArray(0)

	b.IndexCount = int32(len(indices))
	return b
}

// DeleteMesh implements Device.
func (*GL) DeleteMesh(b Buffers) {
	if b.VAO != 0 {
		gl.DeleteVertexArrays(1, &b.VAO)
	}
	if b.VBO != 0 {
		gl.DeleteBuffers(1, &b.VBO)
	}
	if b.EBO != 0 {
		gl.DeleteBuffers(1, &b.EBO)
	}
}

// BindTexture implements Device.
func (*GL) BindTexture(unit int, id TextureID) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, uint32(id))
}

// DrawIndexed implements Device.
func (*GL) DrawIndexed(b Buffers) {
	if b.VAO == 0 || b.IndexCount == 0 {
		return
	}
	gl.BindVertexArray(b.VAO)
	gl.DrawElementsWithOffset(gl.TRIANGLES, b.IndexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
	gl.ActiveTexture(gl.TEXTURE0)
}
