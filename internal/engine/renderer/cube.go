package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/learngl/internal/engine/gfx"
)

// demoCubes are drawn when no model is loaded.
var demoCubes = []mgl32.Vec3{
	{0, 0, 0},
	{0, 1, -1},
	{-1.5, -2.2, -2.5},
	{-1.3, 1, -1.5},
}

// demoCubeColor is the flat surface color of the demo cubes.
var demoCubeColor = mgl32.Vec3{1, 0.5, 0.31}

// demoCubeMatrix places demo cube i at time t. Each cube spins about +Y at
// i*10 degrees per second.
func demoCubeMatrix(i int, t float32) mgl32.Mat4 {
	p := demoCubes[i]
	angle := mgl32.DegToRad(float32(i)*10) * t
	return mgl32.Translate3D(p[0], p[1], p[2]).Mul4(mgl32.HomogRotate3DY(angle))
}

// cubeFaces lists the outward normal and the four corners of each face,
// counter-clockwise when seen from outside.
var cubeFaces = [6]struct {
	normal  [3]float32
	corners [4][3]float32
}{
	{[3]float32{0, 0, -1}, [4][3]float32{{0.5, -0.5, -0.5}, {-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}}},
	{[3]float32{0, 0, 1}, [4][3]float32{{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}}},
	{[3]float32{-1, 0, 0}, [4][3]float32{{-0.5, -0.5, -0.5}, {-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, 0.5, -0.5}}},
	{[3]float32{1, 0, 0}, [4][3]float32{{0.5, -0.5, 0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5}}},
	{[3]float32{0, -1, 0}, [4][3]float32{{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}, {-0.5, -0.5, 0.5}}},
	{[3]float32{0, 1, 0}, [4][3]float32{{-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5}}},
}

// cubeMesh builds a unit cube centered on the origin with per-face normals.
func cubeMesh() ([]gfx.Vertex, []uint32) {
	uvs := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	vertices := make([]gfx.Vertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, f := range cubeFaces {
		base := uint32(len(vertices))
		for k, c := range f.corners {
			vertices = append(vertices, gfx.Vertex{Position: c, Normal: f.normal, TexCoord: uvs[k]})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return vertices, indices
}
