// Package gfx abstracts the GPU calls the engine needs behind a small interface.
package gfx

import (
	"unsafe"

	"github.com/Faultbox/learngl/internal/engine/texture"
)

// Vertex is the interleaved GPU vertex layout: position, normal, texcoord.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Vertex attribute layout shared by every mesh program.
const (
	AttribPosition = 0
	AttribNormal   = 1
	AttribTexCoord = 2

	VertexStride   = int32(unsafe.Sizeof(Vertex{}))
	normalOffset   = int(unsafe.Offsetof(Vertex{}.Normal))
	texCoordOffset = int(unsafe.Offsetof(Vertex{}.TexCoord))
)

// TextureID is a GPU texture name. Zero is never a valid texture.
type TextureID uint32

// Valid reports whether the id names an uploaded texture.
func (id TextureID) Valid() bool { return id != 0 }

// Buffers holds the GPU objects backing one indexed mesh.
type Buffers struct {
	VAO        uint32
	VBO        uint32
	EBO        uint32
	IndexCount int32
}

// Device performs GPU resource management and draw submission.
// All calls must happen on the thread that owns the GL context.
type Device interface {
	// UploadTexture creates a mipmapped, linearly filtered, repeating RGBA
	// texture from img. The source format follows img.Channels.
	UploadTexture(img *texture.Image) TextureID
	DeleteTexture(id TextureID)

	UploadMesh(vertices []Vertex, indices []uint32) Buffers
	DeleteMesh(b Buffers)

	// BindTexture makes id current on texture unit unit.
	BindTexture(unit int, id TextureID)
	// DrawIndexed draws b as a triangle list.
	DrawIndexed(b Buffers)
}
