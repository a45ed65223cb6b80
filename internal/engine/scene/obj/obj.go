// Package obj imports Wavefront OBJ files with their MTL libraries into the
// scene IR.
package obj

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/g3n/engine/loader/obj"
	"go.uber.org/zap"

	"github.com/Faultbox/learngl/internal/engine/scene"
	"github.com/Faultbox/learngl/internal/logger"
)

func init() {
	scene.Register(scene.ImporterFunc(Import), ".obj")
}

// Import reads the OBJ file at path together with the MTL library it names.
// A missing MTL library is logged and the model is imported untextured.
func Import(path string) (*scene.Scene, error) {
	objData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading OBJ %s: %w", path, err)
	}
	mtlData := loadMaterialLibrary(path, objData)

	maps, err := parseMTLMaps(bytes.NewReader(mtlData))
	if err != nil {
		logger.Warn("reading MTL library", zap.String("obj", path), zap.Error(err))
	}

	dec, err := obj.DecodeReader(bytes.NewReader(objData), bytes.NewReader(mtlData))
	if err != nil {
		return nil, fmt.Errorf("decoding OBJ %s: %w", path, err)
	}
	for _, w := range dec.Warnings {
		logger.Debug("OBJ decoder warning", zap.String("path", path), zap.String("warning", w))
	}
	return convert(dec, maps), nil
}

// loadMaterialLibrary reads the mtllib named by the OBJ source, resolved
// against the OBJ file's directory. Returns nil when there is none.
func loadMaterialLibrary(objPath string, objData []byte) []byte {
	lib, err := findMTLLib(bytes.NewReader(objData))
	if err != nil || lib == "" {
		return nil
	}

	mtlPath := filepath.Join(filepath.Dir(objPath), lib)
	data, err := os.ReadFile(mtlPath)
	if err != nil {
		logger.Warn("MTL library not found", zap.String("path", mtlPath), zap.Error(err))
		return nil
	}
	return data
}

// g3n stores math.MaxUint32 in Face.Uvs and Face.Normals for a corner that
// has no vt or vn.
const decoderAbsent = math.MaxUint32

// present reports whether a decoded vt or vn index refers to data.
func present(i int) bool {
	return i >= 0 && uint64(i) != decoderAbsent
}

// corner identifies one (v, vt, vn) triple; -1 marks an absent element.
type corner struct {
	v, vt, vn int
}

type meshBuilder struct {
	mesh    scene.MeshData
	corners map[corner]uint32
	normals bool // every corner has a normal
	uvs     bool // some corner has a texture coordinate
}

type converter struct {
	dec       *obj.Decoder
	maps      map[string]mtlMaps
	out       *scene.Scene
	materials map[string]int
}

func convert(dec *obj.Decoder, maps map[string]mtlMaps) *scene.Scene {
	c := &converter{
		dec:       dec,
		maps:      maps,
		out:       &scene.Scene{Nodes: []scene.Node{{Name: "root"}}},
		materials: make(map[string]int),
	}
	for i := range dec.Objects {
		c.convertObject(&dec.Objects[i])
	}
	return c.out
}

// convertObject adds one child node per OBJ object with one mesh per material.
func (c *converter) convertObject(o *obj.Object) {
	var order []string
	builders := make(map[string]*meshBuilder)

	for _, face := range o.Faces {
		b, ok := builders[face.Material]
		if !ok {
			b = &meshBuilder{
				mesh: scene.MeshData{
					Name:     o.Name,
					Material: c.material(face.Material),
				},
				corners: make(map[corner]uint32),
				normals: true,
			}
			builders[face.Material] = b
			order = append(order, face.Material)
		}
		c.addFace(b, face)
	}

	node := scene.Node{Name: o.Name}
	for _, name := range order {
		b := builders[name]
		if len(b.mesh.Faces) == 0 {
			continue
		}
		// Corners without a normal leave the mesh for GenNormals.
		if !b.normals {
			b.mesh.Normals = nil
		}
		if !b.uvs {
			b.mesh.TexCoords = nil
		}
		node.Meshes = append(node.Meshes, len(c.out.Meshes))
		c.out.Meshes = append(c.out.Meshes, b.mesh)
	}

	c.out.Nodes[0].Children = append(c.out.Nodes[0].Children, len(c.out.Nodes))
	c.out.Nodes = append(c.out.Nodes, node)
}

func (c *converter) addFace(b *meshBuilder, face obj.Face) {
	dec := c.dec
	f := make(scene.Face, 0, len(face.Vertices))
	for k, v := range face.Vertices {
		key := corner{v: v, vt: -1, vn: -1}
		if k < len(face.Uvs) && present(face.Uvs[k]) {
			key.vt = face.Uvs[k]
		}
		if k < len(face.Normals) && present(face.Normals[k]) {
			key.vn = face.Normals[k]
		}

		if v < 0 || (v+1)*3 > len(dec.Vertices) ||
			(key.vt >= 0 && (key.vt+1)*2 > len(dec.Uvs)) ||
			(key.vn >= 0 && (key.vn+1)*3 > len(dec.Normals)) {
			logger.Warn("OBJ face references missing vertex data", zap.String("object", b.mesh.Name))
			c.out.Incomplete = true
			return
		}

		idx, ok := b.corners[key]
		if !ok {
			idx = uint32(len(b.mesh.Positions))
			b.corners[key] = idx
			b.mesh.Positions = append(b.mesh.Positions,
				[3]float32{dec.Vertices[v*3], dec.Vertices[v*3+1], dec.Vertices[v*3+2]})

			var uv [2]float32
			if key.vt >= 0 {
				uv = [2]float32{dec.Uvs[key.vt*2], dec.Uvs[key.vt*2+1]}
				b.uvs = true
			}
			b.mesh.TexCoords = append(b.mesh.TexCoords, uv)

			var n [3]float32
			if key.vn >= 0 {
				n = [3]float32{dec.Normals[key.vn*3], dec.Normals[key.vn*3+1], dec.Normals[key.vn*3+2]}
			} else {
				b.normals = false
			}
			b.mesh.Normals = append(b.mesh.Normals, n)
		}
		f = append(f, idx)
	}
	b.mesh.Faces = append(b.mesh.Faces, f)
}

// material returns the IR index for an MTL material name, adding it on first use.
func (c *converter) material(name string) int {
	if name == "" {
		return -1
	}
	if idx, ok := c.materials[name]; ok {
		return idx
	}

	m := scene.Material{Name: name}
	maps := c.maps[name]
	if src, ok := c.dec.Materials[name]; ok && src != nil && src.MapKd != "" {
		m.AddTexture(scene.SlotDiffuse, src.MapKd)
	} else {
		for _, p := range maps[scene.SlotDiffuse] {
			m.AddTexture(scene.SlotDiffuse, p)
		}
	}
	for _, slot := range []scene.TextureSlot{scene.SlotSpecular, scene.SlotNormal, scene.SlotEmissive} {
		for _, p := range maps[slot] {
			m.AddTexture(slot, p)
		}
	}

	idx := len(c.out.Materials)
	c.out.Materials = append(c.out.Materials, m)
	c.materials[name] = idx
	return idx
}
