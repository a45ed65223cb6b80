package model

import (
	"fmt"

	"github.com/Faultbox/learngl/internal/engine/gfx"
	"github.com/Faultbox/learngl/internal/engine/scene"
)

// Mesh is one drawable piece of a model with its GPU buffers.
type Mesh struct {
	Name     string
	Vertices []gfx.Vertex
	Indices  []uint32
	Textures []*Texture
	Bounds   Bounds

	samplers []string // uniform name per entry of Textures
	buffers  gfx.Buffers
	device   gfx.Device
}

// buildMesh copies a scene mesh into the interleaved vertex layout.
// Missing normals and texture coordinates are left zero.
func buildMesh(raw *scene.MeshData) *Mesh {
	m := &Mesh{
		Name:     raw.Name,
		Vertices: make([]gfx.Vertex, len(raw.Positions)),
		Bounds:   emptyBounds(),
	}

	for i, p := range raw.Positions {
		v := &m.Vertices[i]
		v.Position = p
		if i < len(raw.Normals) {
			v.Normal = raw.Normals[i]
		}
		if raw.HasTexCoords() {
			v.TexCoord = raw.TexCoords[i]
		}
		m.Bounds.extend(p)
	}

	indexCount := 0
	for _, f := range raw.Faces {
		indexCount += len(f)
	}
	m.Indices = make([]uint32, 0, indexCount)
	for _, f := range raw.Faces {
		m.Indices = append(m.Indices, f...)
	}
	return m
}

// setTextures assigns the mesh textures and precomputes their sampler names.
// Diffuse and specular samplers are numbered separately, starting at 1.
func (m *Mesh) setTextures(textures []*Texture) {
	m.Textures = textures
	m.samplers = make([]string, len(textures))

	counters := map[TextureType]int{}
	for i, t := range textures {
		counters[t.Type]++
		m.samplers[i] = samplerName(t.Type, counters[t.Type])
	}
}

func samplerName(t TextureType, n int) string {
	return fmt.Sprintf("material.%s%d", t, n)
}

// fallbackSamplers are the samplers the model shader reads for every mesh.
var fallbackSamplers = []string{
	samplerName(TextureDiffuse, 1),
	samplerName(TextureSpecular, 1),
}

func (m *Mesh) upload(dev gfx.Device) {
	m.device = dev
	m.buffers = dev.UploadMesh(m.Vertices, m.Indices)
}

// Draw binds each texture to its own unit, points the matching sampler
// uniform at it and issues one indexed draw.
func (m *Mesh) Draw(u Uniforms) {
	m.draw(u, 0)
}

// draw is Draw with a fallback texture. When fallback is valid it replaces
// textures that failed to load, and the first diffuse and specular samplers
// the mesh has no texture for read it from the unit after the mesh's own.
func (m *Mesh) draw(u Uniforms, fallback gfx.TextureID) {
	if m.device == nil {
		return
	}
	for i, t := range m.Textures {
		id := t.ID
		if !id.Valid() {
			id = fallback
		}
		u.SetInt(m.samplers[i], int32(i))
		m.device.BindTexture(i, id)
	}

	if fallback.Valid() {
		unit := len(m.Textures)
		bound := false
		for _, name := range fallbackSamplers {
			if !m.hasSampler(name) {
				u.SetInt(name, int32(unit))
				bound = true
			}
		}
		if bound {
			m.device.BindTexture(unit, fallback)
		}
	}
	m.device.DrawIndexed(m.buffers)
}

func (m *Mesh) hasSampler(name string) bool {
	for _, s := range m.samplers {
		if s == name {
			return true
		}
	}
	return false
}

func (m *Mesh) release() {
	if m.device == nil {
		return
	}
	m.device.DeleteMesh(m.buffers)
	m.buffers = gfx.Buffers{}
	m.device = nil
}
