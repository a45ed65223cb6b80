package debug

import "github.com/go-gl/mathgl/mgl32"

// DefaultBoxPadding grows bounding boxes slightly so they do not z-fight with
// the surfaces they enclose.
const DefaultBoxPadding = 0.01

// BoxMatrix returns the model matrix mapping the unit cube centered on the
// origin onto the axis-aligned box [min, max], grown by padding on all sides.
// Swapped corners are reordered.
func BoxMatrix(min, max mgl32.Vec3, padding float32) mgl32.Mat4 {
	for i := 0; i < 3; i++ {
		if min[i] > max[i] {
			min[i], max[i] = max[i], min[i]
		}
		min[i] -= padding
		max[i] += padding
	}
	center := min.Add(max).Mul(0.5)
	size := max.Sub(min)
	return mgl32.Translate3D(center[0], center[1], center[2]).
		Mul4(mgl32.Scale3D(size[0], size[1], size[2]))
}
