package gltf

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"

	"github.com/Faultbox/learngl/internal/engine/scene"
)

// A triangle mesh used by two nodes, a child with a two-triangle strip and a
// material whose metallic-roughness image is a data URI.
const testDocument = `{
  "asset": {"version": "2.0"},
  "scene": 0,
  "scenes": [{"nodes": [0, 2]}],
  "nodes": [
    {"name": "parent", "mesh": 0, "children": [1]},
    {"name": "child", "mesh": 1},
    {"name": "shared", "mesh": 0}
  ],
  "meshes": [
    {"name": "tri", "primitives": [{"attributes": {"POSITION": 0, "TEXCOORD_0": 2}, "indices": 1, "material": 0}]},
    {"name": "strip", "primitives": [{"attributes": {"POSITION": 3}, "mode": 5}]}
  ],
  "materials": [{
    "name": "mat",
    "pbrMetallicRoughness": {"baseColorTexture": {"index": 0}, "metallicRoughnessTexture": {"index": 1}},
    "normalTexture": {"index": 2}
  }],
  "textures": [{"source": 0}, {"source": 1}, {"source": 0}],
  "images": [{"uri": "base%20color.png"}, {"uri": "data:image/png;base64,iVBORw0KGgo="}],
  "buffers": [{"byteLength": 116, "uri": "data:application/octet-stream;base64,AAAAAAAAAAAAAAAAAACAPwAAAAAAAAAAAAAAAAAAgD8AAAAAAAABAAIAAAAAAAAAAAAAAAAAgD8AAAAAAAAAAAAAgD8AAAAAAAAAAAAAAAAAAIA/AAAAAAAAAAAAAAAAAACAPwAAAAAAAIA/AACAPwAAAAA="}],
  "bufferViews": [
    {"buffer": 0, "byteOffset": 0, "byteLength": 36},
    {"buffer": 0, "byteOffset": 36, "byteLength": 6},
    {"buffer": 0, "byteOffset": 44, "byteLength": 24},
    {"buffer": 0, "byteOffset": 68, "byteLength": 48}
  ],
  "accessors": [
    {"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3", "min": [0, 0, 0], "max": [1, 1, 0]},
    {"bufferView": 1, "componentType": 5123, "count": 3, "type": "SCALAR"},
    {"bufferView": 2, "componentType": 5126, "count": 3, "type": "VEC2"},
    {"bufferView": 3, "componentType": 5126, "count": 4, "type": "VEC3", "min": [0, 0, 0], "max": [1, 1, 0]}
  ]
}`

func writeDocument(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.gltf")
	if err := os.WriteFile(path, []byte(testDocument), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImport(t *testing.T) {
	s, err := Import(writeDocument(t))
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if s.Incomplete {
		t.Fatal("scene marked incomplete")
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}

	if len(s.Nodes) != 4 {
		t.Fatalf("got %d nodes, want 4", len(s.Nodes))
	}
	root := s.Nodes[0]
	if len(root.Children) != 2 {
		t.Fatalf("root children = %v, want 2", root.Children)
	}
	parent := s.Nodes[root.Children[0]]
	shared := s.Nodes[root.Children[1]]
	if parent.Name != "parent" || shared.Name != "shared" {
		t.Errorf("root children named %q, %q", parent.Name, shared.Name)
	}
	if len(parent.Children) != 1 || s.Nodes[parent.Children[0]].Name != "child" {
		t.Errorf("parent children = %v", parent.Children)
	}

	// The mesh used by two nodes is converted once.
	if len(s.Meshes) != 2 {
		t.Fatalf("got %d meshes, want 2", len(s.Meshes))
	}
	if parent.Meshes[0] != shared.Meshes[0] {
		t.Errorf("shared mesh converted twice: %v vs %v", parent.Meshes, shared.Meshes)
	}

	tri := s.Meshes[parent.Meshes[0]]
	if tri.Name != "tri" || len(tri.Positions) != 3 || len(tri.Faces) != 1 {
		t.Errorf("tri = %q with %d positions, %d faces", tri.Name, len(tri.Positions), len(tri.Faces))
	}
	if tri.TexCoords[1] != [2]float32{1, 0} {
		t.Errorf("tri uv[1] = %v, want (1, 0)", tri.TexCoords[1])
	}
	if tri.Material != 0 {
		t.Errorf("tri material = %d, want 0", tri.Material)
	}
	if len(tri.Normals) != 0 {
		t.Errorf("tri has %d normals, want none before post-processing", len(tri.Normals))
	}

	strip := s.Meshes[s.Nodes[parent.Children[0]].Meshes[0]]
	if strip.Material != -1 || strip.HasTexCoords() {
		t.Errorf("strip material = %d, texcoords = %v", strip.Material, strip.HasTexCoords())
	}
	if len(strip.Faces) != 2 {
		t.Fatalf("strip faces = %v, want 2", strip.Faces)
	}
	if f := strip.Faces[1]; f[0] != 2 || f[1] != 1 || f[2] != 3 {
		t.Errorf("strip face[1] = %v, want [2 1 3]", f)
	}

	mat := s.Materials[0]
	if got := mat.Textures[scene.SlotDiffuse]; len(got) != 1 || got[0] != "base color.png" {
		t.Errorf("diffuse = %v, want [base color.png]", got)
	}
	if got := mat.TextureCount(scene.SlotSpecular); got != 0 {
		t.Errorf("specular count = %d, want embedded image skipped", got)
	}
	if got := mat.TextureCount(scene.SlotNormal); got != 1 {
		t.Errorf("normal count = %d, want 1", got)
	}
}

func TestImportRegistered(t *testing.T) {
	s, err := scene.Import(writeDocument(t), scene.DefaultFlags)
	if err != nil {
		t.Fatalf("scene.Import() error = %v", err)
	}
	for i, m := range s.Meshes {
		if len(m.Normals) != len(m.Positions) {
			t.Errorf("mesh %d: %d normals for %d positions", i, len(m.Normals), len(m.Positions))
		}
	}
	// FlipUVs applied to the triangle's first UV (0, 0).
	if got := s.Meshes[0].TexCoords[0]; got != [2]float32{0, 1} {
		t.Errorf("uv[0] = %v, want (0, 1)", got)
	}
}

func TestImportMissingFile(t *testing.T) {
	_, err := Import(filepath.Join(t.TempDir(), "missing.gltf"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestConvertWithoutScenes(t *testing.T) {
	doc := &gltf.Document{
		Nodes: []*gltf.Node{
			{Name: "a", Children: []int{1}},
			{Name: "b"},
			{Name: "c"},
		},
	}
	s := Convert(doc)

	if len(s.Nodes[0].Children) != 2 {
		t.Fatalf("root children = %v, want a and c", s.Nodes[0].Children)
	}
	if got := s.Nodes[s.Nodes[0].Children[1]].Name; got != "c" {
		t.Errorf("second root = %q, want c", got)
	}
	if s.Incomplete {
		t.Error("scene marked incomplete")
	}
}

func TestConvertCycle(t *testing.T) {
	doc := &gltf.Document{
		Scenes: []*gltf.Scene{{Nodes: []int{0}}},
		Nodes: []*gltf.Node{
			{Name: "a", Children: []int{1}},
			{Name: "b", Children: []int{0}},
		},
	}
	s := Convert(doc)
	if !s.Incomplete {
		t.Error("cycle not reported")
	}
	if err := s.Validate(); err != nil {
		t.Errorf("converted nodes are not a tree: %v", err)
	}
}

func TestConvertBadMesh(t *testing.T) {
	mesh := 3
	doc := &gltf.Document{
		Scenes: []*gltf.Scene{{Nodes: []int{0}}},
		Nodes:  []*gltf.Node{{Name: "a", Mesh: &mesh}},
	}
	s := Convert(doc)
	if !s.Incomplete {
		t.Error("bad mesh index not reported")
	}
	if len(s.Meshes) != 0 {
		t.Errorf("got %d meshes, want 0", len(s.Meshes))
	}
}

func TestConvertSkipsUnreadablePrimitives(t *testing.T) {
	mesh := 0
	doc := &gltf.Document{
		Scenes: []*gltf.Scene{{Nodes: []int{0}}},
		Nodes:  []*gltf.Node{{Name: "a", Mesh: &mesh}},
		Meshes: []*gltf.Mesh{{
			Name: "broken",
			Primitives: []*gltf.Primitive{
				{Mode: gltf.PrimitiveTriangles, Attributes: map[string]int{"NORMAL": 0}},
				{Mode: gltf.PrimitiveTriangles, Attributes: map[string]int{"POSITION": 7}},
			},
		}},
	}
	s := Convert(doc)
	if s.Incomplete {
		t.Error("unreadable primitives rejected the whole scene")
	}
	if len(s.Meshes) != 0 {
		t.Errorf("got %d meshes, want 0", len(s.Meshes))
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestAssembleFaces(t *testing.T) {
	tests := []struct {
		name    string
		mode    gltf.PrimitiveMode
		indices []uint32
		want    []scene.Face
	}{
		{"triangles", gltf.PrimitiveTriangles, []uint32{0, 1, 2, 3, 4, 5, 6}, []scene.Face{{0, 1, 2}, {3, 4, 5}}},
		{"strip", gltf.PrimitiveTriangleStrip, []uint32{0, 1, 2, 3, 4}, []scene.Face{{0, 1, 2}, {2, 1, 3}, {2, 3, 4}}},
		{"fan", gltf.PrimitiveTriangleFan, []uint32{0, 1, 2, 3}, []scene.Face{{0, 1, 2}, {0, 2, 3}}},
		{"too short", gltf.PrimitiveTriangles, []uint32{0, 1}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := assembleFaces(tt.mode, tt.indices)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				for j := range got[i] {
					if got[i][j] != tt.want[i][j] {
						t.Errorf("face %d = %v, want %v", i, got[i], tt.want[i])
						break
					}
				}
			}
		})
	}
}

func TestImageOutOfRange(t *testing.T) {
	c := &converter{doc: &gltf.Document{}, out: &scene.Scene{}}
	if _, ok := c.imagePath(4); ok {
		t.Error("imagePath accepted missing texture")
	}
	_, err := c.accessor(0)
	if !errors.Is(err, scene.ErrIndexOutOfRange) {
		t.Errorf("accessor err = %v, want ErrIndexOutOfRange", err)
	}
}
