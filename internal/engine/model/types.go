// Package model loads scene files into GPU meshes and draws them.
package model

import (
	"fmt"

	"github.com/Faultbox/learngl/internal/engine/gfx"
)

// TextureType names a material channel. Its string form is the sampler
// uniform prefix used by the model shader.
type TextureType string

const (
	TextureDiffuse  TextureType = "texture_diffuse"
	TextureSpecular TextureType = "texture_specular"
)

// Texture is a GPU texture loaded from a material reference.
// A zero ID means the image could not be decoded or uploaded.
type Texture struct {
	ID   gfx.TextureID
	Type TextureType
	Path string // as written in the material, relative to the model directory
}

// Uniforms receives sampler unit assignments while drawing.
// *shader.Program implements it.
type Uniforms interface {
	SetInt(name string, v int32)
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// emptyBounds is inverted so the first extend sets both corners.
func emptyBounds() Bounds {
	return Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
}

// Empty reports whether no point was ever added.
func (b Bounds) Empty() bool {
	return b.Min[0] > b.Max[0]
}

// Center returns the midpoint of the box.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

func (b *Bounds) extend(p [3]float32) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

func (b *Bounds) union(o Bounds) {
	if o.Empty() {
		return
	}
	b.extend(o.Min)
	b.extend(o.Max)
}

// Stats summarizes a loaded model for logging.
type Stats struct {
	Meshes         int
	Vertices       int
	Indices        int
	Textures       int
	FailedTextures int
}

// LoadError reports a model that could not be imported.
// The Model returned alongside it is empty but usable.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading model %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
