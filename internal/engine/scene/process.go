package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// PostProcess applies the steps selected by flags to every mesh. The scene
// must have passed Validate.
// Triangulation runs first so generated normals see the final faces.
func (s *Scene) PostProcess(flags ImportFlags) {
	for i := range s.Meshes {
		m := &s.Meshes[i]
		if flags.Has(Triangulate) {
			m.Triangulate()
		}
		if flags.Has(FlipUVs) {
			m.FlipUVs()
		}
		if flags.Has(GenNormals) && len(m.Normals) == 0 {
			m.GenNormals()
		}
	}
}

// Triangulate converts polygons into triangle fans around their first vertex.
// Faces with fewer than three indices are dropped.
func (m *MeshData) Triangulate() {
	out := make([]Face, 0, len(m.Faces))
	for _, f := range m.Faces {
		switch {
		case len(f) < 3:
			continue
		case len(f) == 3:
			out = append(out, f)
		default:
			for k := 1; k+1 < len(f); k++ {
				out = append(out, Face{f[0], f[k], f[k+1]})
			}
		}
	}
	m.Faces = out
}

// FlipUVs mirrors texture coordinates vertically.
func (m *MeshData) FlipUVs() {
	for i := range m.TexCoords {
		m.TexCoords[i][1] = 1 - m.TexCoords[i][1]
	}
}

// GenNormals gives every face its own vertices carrying the face normal.
// The polygon normal uses Newell's method so quads and n-gons are handled
// without triangulating first. Vertices referenced by no face are dropped.
func (m *MeshData) GenNormals() {
	corners := 0
	for _, f := range m.Faces {
		corners += len(f)
	}

	positions := make([][3]float32, 0, corners)
	normals := make([][3]float32, 0, corners)
	var texCoords [][2]float32
	if m.HasTexCoords() {
		texCoords = make([][2]float32, 0, corners)
	}

	faces := make([]Face, len(m.Faces))
	for fi, f := range m.Faces {
		n := faceNormal(m.Positions, f)
		out := make(Face, len(f))
		for k, idx := range f {
			out[k] = uint32(len(positions))
			positions = append(positions, m.Positions[idx])
			normals = append(normals, n)
			if texCoords != nil {
				texCoords = append(texCoords, m.TexCoords[idx])
			}
		}
		faces[fi] = out
	}

	m.Positions = positions
	m.Normals = normals
	m.TexCoords = texCoords
	m.Faces = faces
}

func faceNormal(positions [][3]float32, f Face) [3]float32 {
	var n mgl32.Vec3
	for k := range f {
		cur := mgl32.Vec3(positions[f[k]])
		next := mgl32.Vec3(positions[f[(k+1)%len(f)]])
		n[0] += (cur[1] - next[1]) * (cur[2] + next[2])
		n[1] += (cur[2] - next[2]) * (cur[0] + next[0])
		n[2] += (cur[0] - next[0]) * (cur[1] + next[1])
	}
	if n.Len() < 1e-12 {
		return [3]float32{}
	}
	return n.Normalize()
}
