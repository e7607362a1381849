package raster

import (
	"image"

	"mesh-subdivider/internal/halfedge"
	"mesh-subdivider/internal/mathutil"
	"mesh-subdivider/internal/viewmatrix"
)

// BaseColor is the unlit surface color of rendered meshes.
var BaseColor = [3]uint8{160, 160, 170}

// RenderMesh renders m under the view rotation R into a square NRGBA image
// of size*supersample pixels. Faces are fan-triangulated and flat shaded;
// the background stays transparent.
func RenderMesh(m *halfedge.Mesh, R mathutil.Mat3, size, supersample int) *image.NRGBA {
	if supersample < 1 {
		supersample = 1
	}
	renderSize := size * supersample
	if len(m.Faces) == 0 {
		return image.NewNRGBA(image.Rect(0, 0, renderSize, renderSize))
	}

	positions := make([]mathutil.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		positions[i] = v.Position
	}

	frame := viewmatrix.Fit(positions, R, renderSize, max(renderSize/16, 1))
	px, py, pz := viewmatrix.ProjectVertices(positions, R, frame)

	fb := NewFrameBuffer(renderSize, renderSize)
	lc := DefaultLightConfig()

	for f := range m.Faces {
		vs := m.FaceVertices(f)
		for i := 1; i+1 < len(vs); i++ {
			RasterizeTriangle(fb, px, py, pz, [3]int{vs[0], vs[i], vs[i+1]}, BaseColor, &lc)
		}
	}

	img := image.NewNRGBA(image.Rect(0, 0, renderSize, renderSize))
	copy(img.Pix, fb.Color)
	return img
}
