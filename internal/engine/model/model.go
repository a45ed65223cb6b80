package model

import (
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/learngl/internal/engine/gfx"
	"github.com/Faultbox/learngl/internal/engine/scene"
	"github.com/Faultbox/learngl/internal/engine/texture"
	"github.com/Faultbox/learngl/internal/logger"
)

// Loader holds the collaborators used to build a Model.
type Loader struct {
	Device gfx.Device
	Decode texture.DecodeFunc // defaults to texture.Decode
	Import scene.ImportFunc   // defaults to scene.Import
}

// DefaultLoader wires the real decoder and scene importer to dev.
func DefaultLoader(dev gfx.Device) Loader {
	return Loader{
		Device: dev,
		Decode: texture.Decode,
		Import: scene.Import,
	}
}

// Model is a set of meshes loaded from one scene file, sharing a texture cache.
type Model struct {
	Meshes []*Mesh

	path     string
	dir      string
	textures map[string]*Texture
	device   gfx.Device
	decode   texture.DecodeFunc
	log      *zap.Logger
	closed   bool

	// fallback is bound for samplers a mesh has no usable texture for.
	// It belongs to the caller.
	fallback gfx.TextureID
}

// Load imports the scene file at path and uploads its meshes and textures.
//
// Load never fails hard. When the file cannot be imported the error is logged
// and returned as a *LoadError together with an empty Model that draws nothing.
func Load(path string, l Loader) (*Model, error) {
	if l.Decode == nil {
		l.Decode = texture.Decode
	}
	if l.Import == nil {
		l.Import = scene.Import
	}

	m := &Model{
		path:     path,
		dir:      filepath.Dir(path),
		textures: make(map[string]*Texture),
		device:   l.Device,
		decode:   l.Decode,
		log:      logger.Named("model"),
	}

	s, err := l.Import(path, scene.DefaultFlags)
	if err == nil {
		err = checkScene(s)
	}
	if err != nil {
		m.log.Error("model import failed", zap.String("path", path), zap.Error(err))
		return m, &LoadError{Path: path, Err: err}
	}

	m.traverse(s, 0)

	st := m.Stats()
	m.log.Info("model loaded",
		zap.String("path", path),
		zap.Int("meshes", st.Meshes),
		zap.Int("vertices", st.Vertices),
		zap.Int("indices", st.Indices),
		zap.Int("textures", st.Textures),
		zap.Int("failedTextures", st.FailedTextures),
	)
	return m, nil
}

func checkScene(s *scene.Scene) error {
	switch {
	case s == nil:
		return scene.ErrNoScene
	case s.Incomplete:
		return scene.ErrIncomplete
	case s.Root() == nil:
		return scene.ErrNoRoot
	}
	return s.Validate()
}

// traverse visits node n depth-first: its own meshes in order, then its
// children in order.
func (m *Model) traverse(s *scene.Scene, n int) {
	node := &s.Nodes[n]
	for _, mi := range node.Meshes {
		m.Meshes = append(m.Meshes, m.convertMesh(s, &s.Meshes[mi]))
	}
	for _, child := range node.Children {
		m.traverse(s, child)
	}
}

func (m *Model) convertMesh(s *scene.Scene, raw *scene.MeshData) *Mesh {
	mesh := buildMesh(raw)

	var textures []*Texture
	if raw.Material >= 0 {
		mat := &s.Materials[raw.Material]
		textures = append(textures, m.resolveTextures(mat, scene.SlotDiffuse, TextureDiffuse)...)
		textures = append(textures, m.resolveTextures(mat, scene.SlotSpecular, TextureSpecular)...)
	}
	mesh.setTextures(textures)

	if m.device != nil {
		mesh.upload(m.device)
	}
	return mesh
}

// resolveTextures returns the textures of one material slot, loading each
// path at most once per model. Paths that fail to decode are cached with a
// zero ID so they are not retried.
func (m *Model) resolveTextures(mat *scene.Material, slot scene.TextureSlot, typ TextureType) []*Texture {
	paths := mat.Textures[slot]
	if len(paths) == 0 {
		return nil
	}

	out := make([]*Texture, 0, len(paths))
	for _, rel := range paths {
		if t, ok := m.textures[rel]; ok {
			out = append(out, t)
			continue
		}

		t := &Texture{Type: typ, Path: rel}
		full := filepath.Join(m.dir, rel)
		img, err := m.decode(full, true)
		if err != nil {
			m.log.Warn("texture failed to load",
				zap.String("path", full), zap.String("material", mat.Name), zap.Error(err))
		} else if m.device != nil {
			t.ID = m.device.UploadTexture(img)
			if !t.ID.Valid() {
				m.log.Warn("texture upload failed", zap.String("path", full))
			}
		}

		m.textures[rel] = t
		out = append(out, t)
	}
	return out
}

// Draw draws every mesh in load order.
func (m *Model) Draw(u Uniforms) {
	if m.closed {
		return
	}
	for _, mesh := range m.Meshes {
		mesh.draw(u, m.fallback)
	}
}

// SetFallback sets the texture drawn in place of missing or failed diffuse
// and specular maps. The model never deletes it.
func (m *Model) SetFallback(id gfx.TextureID) {
	m.fallback = id
}

// Close releases all GPU buffers and textures. Safe to call more than once.
func (m *Model) Close() {
	if m.closed {
		return
	}
	m.closed = true

	for _, mesh := range m.Meshes {
		mesh.release()
	}
	if m.device != nil {
		for _, t := range m.textures {
			if t.ID.Valid() {
				m.device.DeleteTexture(t.ID)
				t.ID = 0
			}
		}
	}
	m.Meshes = nil
	m.textures = nil
}

// Path returns the file the model was loaded from.
func (m *Model) Path() string { return m.path }

// Directory returns the directory texture paths are resolved against.
func (m *Model) Directory() string { return m.dir }

// Texture returns the cached texture for a material path.
func (m *Model) Texture(path string) (*Texture, bool) {
	t, ok := m.textures[path]
	return t, ok
}

// Bounds returns the union of all mesh bounds. ok is false for an empty model.
func (m *Model) Bounds() (b Bounds, ok bool) {
	b = emptyBounds()
	for _, mesh := range m.Meshes {
		b.union(mesh.Bounds)
	}
	if b.Empty() {
		return Bounds{}, false
	}
	return b, true
}

// Stats counts the loaded geometry and textures.
func (m *Model) Stats() Stats {
	var st Stats
	st.Meshes = len(m.Meshes)
	for _, mesh := range m.Meshes {
		st.Vertices += len(mesh.Vertices)
		st.Indices += len(mesh.Indices)
	}
	for _, t := range m.textures {
		st.Textures++
		if !t.ID.Valid() {
			st.FailedTextures++
		}
	}
	return st
}
