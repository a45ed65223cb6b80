// Package scene defines an importer-neutral scene graph.
//
// A Scene is an arena: nodes, meshes and materials live in flat slices and
// refer to each other by index. Node 0 is the root. Importers for concrete file
// formats live in sub-packages and register themselves by file extension.
package scene

import (
	"errors"
	"fmt"
)

// Scene errors.
var (
	ErrNoScene           = errors.New("importer returned no scene")
	ErrIncomplete        = errors.New("scene is incomplete")
	ErrNoRoot            = errors.New("scene has no root node")
	ErrUnsupportedFormat = errors.New("unsupported scene format")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrInvalidGraph      = errors.New("node graph is not a tree")
)

// TextureSlot is a material channel that may reference texture images.
type TextureSlot int

const (
	SlotDiffuse TextureSlot = iota
	SlotSpecular
	SlotNormal
	SlotEmissive
)

// String returns the slot name.
func (s TextureSlot) String() string {
	switch s {
	case SlotDiffuse:
		return "diffuse"
	case SlotSpecular:
		return "specular"
	case SlotNormal:
		return "normal"
	case SlotEmissive:
		return "emissive"
	default:
		return fmt.Sprintf("slot(%d)", int(s))
	}
}

// Scene is a fully parsed scene graph.
type Scene struct {
	Nodes     []Node
	Meshes    []MeshData
	Materials []Material

	// Incomplete is set by importers (or validation) when the scene could only
	// be partially read. Incomplete scenes must not be rendered.
	Incomplete bool
}

// Node is one element of the scene hierarchy.
type Node struct {
	Name     string
	Meshes   []int // indices into Scene.Meshes
	Children []int // indices into Scene.Nodes
}

// Face is one polygon as indices into the mesh's vertex arrays.
type Face []uint32

// MeshData is raw geometry with per-vertex attributes in parallel slices.
type MeshData struct {
	Name      string
	Positions [][3]float32
	Normals   [][3]float32 // empty or len(Positions)
	TexCoords [][2]float32 // first UV channel; nil when absent
	Faces     []Face
	Material  int // index into Scene.Materials, -1 for none
}

// HasTexCoords reports whether the mesh carries a first UV channel.
func (m *MeshData) HasTexCoords() bool {
	return len(m.TexCoords) > 0
}

// Material lists texture paths per slot, relative to the scene file.
type Material struct {
	Name     string
	Textures map[TextureSlot][]string
}

// TextureCount returns the number of textures in slot.
func (m *Material) TextureCount(slot TextureSlot) int {
	return len(m.Textures[slot])
}

// AddTexture appends a texture path to slot.
func (m *Material) AddTexture(slot TextureSlot, path string) {
	if m.Textures == nil {
		m.Textures = make(map[TextureSlot][]string)
	}
	m.Textures[slot] = append(m.Textures[slot], path)
}

// Root returns the root node, or nil if the scene has none.
func (s *Scene) Root() *Node {
	if s == nil || len(s.Nodes) == 0 {
		return nil
	}
	return &s.Nodes[0]
}

// Validate checks that every index in the scene is in range and that the
// nodes reachable from the root form a tree.
func (s *Scene) Validate() error {
	if s.Root() == nil {
		return ErrNoRoot
	}

	visited := make([]bool, len(s.Nodes))
	stack := []int{0}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[n] {
			return fmt.Errorf("%w: node %d reached twice", ErrInvalidGraph, n)
		}
		visited[n] = true

		node := &s.Nodes[n]
		for _, mi := range node.Meshes {
			if mi < 0 || mi >= len(s.Meshes) {
				return fmt.Errorf("node %q mesh %d: %w", node.Name, mi, ErrIndexOutOfRange)
			}
		}
		for _, ci := range node.Children {
			if ci <= 0 || ci >= len(s.Nodes) {
				return fmt.Errorf("node %q child %d: %w", node.Name, ci, ErrIndexOutOfRange)
			}
			stack = append(stack, ci)
		}
	}

	for i := range s.Meshes {
		if err := s.validateMesh(&s.Meshes[i]); err != nil {
			return fmt.Errorf("mesh %d (%s): %w", i, s.Meshes[i].Name, err)
		}
	}
	return nil
}

func (s *Scene) validateMesh(m *MeshData) error {
	n := len(m.Positions)
	if len(m.Normals) != 0 && len(m.Normals) != n {
		return fmt.Errorf("%d normals for %d positions: %w", len(m.Normals), n, ErrIndexOutOfRange)
	}
	if len(m.TexCoords) != 0 && len(m.TexCoords) != n {
		return fmt.Errorf("%d texcoords for %d positions: %w", len(m.TexCoords), n, ErrIndexOutOfRange)
	}
	if m.Material < -1 || m.Material >= len(s.Materials) {
		return fmt.Errorf("material %d: %w", m.Material, ErrIndexOutOfRange)
	}
	for fi, f := range m.Faces {
		for _, idx := range f {
			if int(idx) >= n {
				return fmt.Errorf("face %d vertex %d of %d: %w", fi, idx, n, ErrIndexOutOfRange)
			}
		}
	}
	return nil
}
