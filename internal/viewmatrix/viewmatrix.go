package viewmatrix

import (
	"math"

	"mesh-subdivider/internal/mathutil"
)

// Camera returns the view rotation for a camera orbiting the model: yaw
// around the Y axis, then pitch around the X axis. Angles in degrees.
func Camera(yawDeg, pitchDeg float64) mathutil.Mat3 {
	return mathutil.Mat3Mul(mathutil.RotX(mathutil.Deg2Rad(pitchDeg)), mathutil.RotY(mathutil.Deg2Rad(yawDeg)))
}

// Frame maps view-space coordinates onto a square render target.
type Frame struct {
	Center mathutil.Vec3 // view-space center of the bounding box
	Scale  float64       // pixels per model unit
	Size   int           // render target width and height
}

// Fit returns the Frame that centers all positions, rotated by R, in a
// size×size target and keeps margin pixels free on every side.
func Fit(positions []mathutil.Vec3, R mathutil.Mat3, size, margin int) Frame {
	min := mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	max := mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, p := range positions {
		t := R.MulVec3(p)
		min = min.Min(t)
		max = max.Max(t)
	}
	if len(positions) == 0 {
		min, max = mathutil.Vec3{}, mathutil.Vec3{}
	}

	span := math.Max(max[0]-min[0], max[1]-min[1])
	if span < 0.001 {
		span = 0.001
	}
	avail := size - 2*margin
	if avail < 1 {
		avail = 1
	}
	return Frame{
		Center: min.Add(max).Scale(0.5),
		Scale:  float64(avail) / span,
		Size:   size,
	}
}

// ProjectVertices transforms 3D positions to 2D screen coordinates with an
// orthographic projection. Returns px, py, pz slices (screen X, screen Y,
// depth; larger depth is nearer the viewer).
func ProjectVertices(positions []mathutil.Vec3, R mathutil.Mat3, f Frame) ([]float64, []float64, []float64) {
	n := len(positions)
	px := make([]float64, n)
	py := make([]float64, n)
	pz := make([]float64, n)

	half := float64(f.Size) / 2
	for i, p := range positions {
		t := R.MulVec3(p)
		px[i] = (t[0]-f.Center[0])*f.Scale + half
		py[i] = -(t[1]-f.Center[1])*f.Scale + half
		pz[i] = t[2]
	}
	return px, py, pz
}
