// Package gltf imports glTF 2.0 scenes (.gltf and .glb) into the scene IR.
//
// Node transforms, skins and animations are ignored; only the node hierarchy,
// triangle geometry and material texture references are read.
package gltf

import (
	"fmt"
	"net/url"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/Faultbox/learngl/internal/engine/scene"
	"github.com/Faultbox/learngl/internal/logger"
)

func init() {
	scene.Register(scene.ImporterFunc(Import), ".gltf", ".glb")
}

// Import reads the glTF file at path.
func Import(path string) (*scene.Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening glTF %s: %w", path, err)
	}
	return Convert(doc), nil
}

// Convert builds a scene from an already decoded document.
// The IR root is synthetic; the roots of the glTF scene become its children.
func Convert(doc *gltf.Document) *scene.Scene {
	c := &converter{
		doc:    doc,
		out:    &scene.Scene{},
		meshes: make(map[int][]int),
		active: make(map[int]bool),
	}
	c.convertMaterials()

	c.out.Nodes = append(c.out.Nodes, scene.Node{Name: "root"})
	for _, n := range c.rootNodes() {
		if idx, ok := c.convertNode(n); ok {
			c.out.Nodes[0].Children = append(c.out.Nodes[0].Children, idx)
		}
	}
	return c.out
}

type converter struct {
	doc *gltf.Document
	out *scene.Scene

	// glTF mesh index to IR mesh indices, one per primitive.
	meshes map[int][]int
	// glTF nodes on the current traversal path.
	active map[int]bool
}

// rootNodes picks the default scene, then scene 0, then every node that is
// nobody's child.
func (c *converter) rootNodes() []int {
	doc := c.doc
	if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	if len(doc.Scenes) > 0 {
		return doc.Scenes[0].Nodes
	}

	isChild := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, ch := range n.Children {
			if ch >= 0 && ch < len(isChild) {
				isChild[ch] = true
			}
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !isChild[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

func (c *converter) convertNode(n int) (int, bool) {
	if n < 0 || n >= len(c.doc.Nodes) {
		logger.Warn("glTF node index out of range", zap.Int("node", n))
		c.out.Incomplete = true
		return 0, false
	}
	if c.active[n] {
		logger.Warn("glTF node cycle", zap.Int("node", n))
		c.out.Incomplete = true
		return 0, false
	}
	c.active[n] = true
	defer delete(c.active, n)

	src := c.doc.Nodes[n]
	idx := len(c.out.Nodes)
	c.out.Nodes = append(c.out.Nodes, scene.Node{Name: src.Name})

	if src.Mesh != nil {
		meshes := c.convertMesh(*src.Mesh)
		c.out.Nodes[idx].Meshes = append(c.out.Nodes[idx].Meshes, meshes...)
	}

	for _, ch := range src.Children {
		if childIdx, ok := c.convertNode(ch); ok {
			// The append in convertNode may have moved the slice.
			c.out.Nodes[idx].Children = append(c.out.Nodes[idx].Children, childIdx)
		}
	}
	return idx, true
}

func (c *converter) convertMesh(m int) []int {
	if ids, ok := c.meshes[m]; ok {
		return ids
	}
	if m < 0 || m >= len(c.doc.Meshes) {
		logger.Warn("glTF mesh index out of range", zap.Int("mesh", m))
		c.out.Incomplete = true
		return nil
	}

	src := c.doc.Meshes[m]
	var ids []int
	for pi, prim := range src.Primitives {
		data, err := c.convertPrimitive(prim)
		if err != nil {
			// The rest of the mesh and the scene still load.
			logger.Warn("skipping unreadable glTF primitive",
				zap.String("mesh", src.Name), zap.Int("primitive", pi), zap.Error(err))
			continue
		}
		if data == nil {
			continue
		}
		data.Name = src.Name
		ids = append(ids, len(c.out.Meshes))
		c.out.Meshes = append(c.out.Meshes, *data)
	}
	c.meshes[m] = ids
	return ids
}

func (c *converter) accessor(i int) (*gltf.Accessor, error) {
	if i < 0 || i >= len(c.doc.Accessors) {
		return nil, fmt.Errorf("accessor %d: %w", i, scene.ErrIndexOutOfRange)
	}
	return c.doc.Accessors[i], nil
}

func (c *converter) convertPrimitive(prim *gltf.Primitive) (*scene.MeshData, error) {
	switch prim.Mode {
	case gltf.PrimitiveTriangles, gltf.PrimitiveTriangleStrip, gltf.PrimitiveTriangleFan:
	default:
		logger.Debug("ignoring non-triangle glTF primitive", zap.Int("mode", int(prim.Mode)))
		return nil, nil
	}

	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("primitive has no POSITION attribute")
	}
	acc, err := c.accessor(posIdx)
	if err != nil {
		return nil, err
	}
	data := &scene.MeshData{Material: -1}
	if data.Positions, err = modeler.ReadPosition(c.doc, acc, nil); err != nil {
		return nil, fmt.Errorf("reading positions: %w", err)
	}

	if i, ok := prim.Attributes["NORMAL"]; ok {
		if acc, err = c.accessor(i); err != nil {
			return nil, err
		}
		if data.Normals, err = modeler.ReadNormal(c.doc, acc, nil); err != nil {
			return nil, fmt.Errorf("reading normals: %w", err)
		}
	}
	if i, ok := prim.Attributes["TEXCOORD_0"]; ok {
		if acc, err = c.accessor(i); err != nil {
			return nil, err
		}
		if data.TexCoords, err = modeler.ReadTextureCoord(c.doc, acc, nil); err != nil {
			return nil, fmt.Errorf("reading texcoords: %w", err)
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		if acc, err = c.accessor(*prim.Indices); err != nil {
			return nil, err
		}
		if indices, err = modeler.ReadIndices(c.doc, acc, nil); err != nil {
			return nil, fmt.Errorf("reading indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(data.Positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	data.Faces = assembleFaces(prim.Mode, indices)

	if prim.Material != nil {
		if *prim.Material < 0 || *prim.Material >= len(c.out.Materials) {
			return nil, fmt.Errorf("material %d: %w", *prim.Material, scene.ErrIndexOutOfRange)
		}
		data.Material = *prim.Material
	}
	return data, nil
}

// assembleFaces turns an index stream into triangles for the given topology.
// Strips alternate winding so every triangle keeps the orientation of the first.
func assembleFaces(mode gltf.PrimitiveMode, indices []uint32) []scene.Face {
	var faces []scene.Face
	switch mode {
	case gltf.PrimitiveTriangleStrip:
		for i := 0; i+2 < len(indices); i++ {
			if i%2 == 0 {
				faces = append(faces, scene.Face{indices[i], indices[i+1], indices[i+2]})
			} else {
				faces = append(faces, scene.Face{indices[i+1], indices[i], indices[i+2]})
			}
		}
	case gltf.PrimitiveTriangleFan:
		for i := 1; i+1 < len(indices); i++ {
			faces = append(faces, scene.Face{indices[0], indices[i], indices[i+1]})
		}
	default:
		faces = make([]scene.Face, 0, len(indices)/3)
		for i := 0; i+2 < len(indices); i += 3 {
			faces = append(faces, scene.Face{indices[i], indices[i+1], indices[i+2]})
		}
	}
	return faces
}

func (c *converter) convertMaterials() {
	c.out.Materials = make([]scene.Material, len(c.doc.Materials))
	for i, src := range c.doc.Materials {
		dst := &c.out.Materials[i]
		dst.Name = src.Name
		if pbr := src.PBRMetallicRoughness; pbr != nil {
			if pbr.BaseColorTexture != nil {
				c.addTexture(dst, scene.SlotDiffuse, pbr.BaseColorTexture.Index)
			}
			if pbr.MetallicRoughnessTexture != nil {
				c.addTexture(dst, scene.SlotSpecular, pbr.MetallicRoughnessTexture.Index)
			}
		}
		if src.NormalTexture != nil && src.NormalTexture.Index != nil {
			c.addTexture(dst, scene.SlotNormal, *src.NormalTexture.Index)
		}
		if src.EmissiveTexture != nil {
			c.addTexture(dst, scene.SlotEmissive, src.EmissiveTexture.Index)
		}
	}
}

func (c *converter) addTexture(m *scene.Material, slot scene.TextureSlot, texIdx int) {
	path, ok := c.imagePath(texIdx)
	if !ok {
		return
	}
	m.AddTexture(slot, path)
}

// imagePath resolves a texture index to the URI of its source image.
// Images stored in buffer views or data URIs have no path and are skipped.
func (c *converter) imagePath(texIdx int) (string, bool) {
	doc := c.doc
	if texIdx < 0 || texIdx >= len(doc.Textures) {
		logger.Warn("glTF texture index out of range", zap.Int("texture", texIdx))
		return "", false
	}
	tex := doc.Textures[texIdx]
	if tex.Source == nil || *tex.Source < 0 || *tex.Source >= len(doc.Images) {
		logger.Warn("glTF texture has no usable source", zap.Int("texture", texIdx))
		return "", false
	}
	img := doc.Images[*tex.Source]
	if img.URI == "" || img.IsEmbeddedResource() {
		logger.Warn("skipping embedded glTF image",
			zap.Int("image", *tex.Source), zap.String("name", img.Name))
		return "", false
	}
	if p, err := url.PathUnescape(img.URI); err == nil {
		return p, true
	}
	return img.URI, true
}
