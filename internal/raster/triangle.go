package raster

import (
	"math"

	"mesh-subdivider/internal/mathutil"
)

// RasterizeTriangle fills one flat-shaded triangle into fb with a depth test.
// px, py, pz are projected vertex coordinates and vi indexes into them.
// Triangles with out-of-range indices or zero area are skipped.
func RasterizeTriangle(
	fb *FrameBuffer,
	px, py, pz []float64,
	vi [3]int,
	base [3]uint8,
	lc *LightConfig,
) {
	nv := len(px)
	for _, i := range vi {
		if i < 0 || i >= nv {
			return
		}
	}

	x0, y0, z0 := px[vi[0]], py[vi[0]], pz[vi[0]]
	x1, y1, z1 := px[vi[1]], py[vi[1]], pz[vi[1]]
	x2, y2, z2 := px[vi[2]], py[vi[2]], pz[vi[2]]

	// Face normal for flat shading. Screen Y points down, so flip it back
	// before lighting.
	e1 := mathutil.Vec3{x1 - x0, y0 - y1, z1 - z0}
	e2 := mathutil.Vec3{x2 - x0, y0 - y2, z2 - z0}
	n := e1.Cross(e2)
	if n.Len() < 1e-8 {
		return
	}
	color := lc.shadeColor(base, lc.ComputeShade(n.Normalize()))

	// Bounding box
	minX := int(math.Max(math.Min(math.Min(x0, x1), x2), 0))
	maxX := int(math.Min(math.Max(math.Max(x0, x1), x2)+1, float64(fb.Width-1)))
	minY := int(math.Max(math.Min(math.Min(y0, y1), y2), 0))
	maxY := int(math.Min(math.Max(math.Max(y0, y1), y2)+1, float64(fb.Height-1)))
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	// Pixel loop, sampled at pixel centers.
	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) + 0.5 - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*z0 + w1*z1 + w2*z2
			zIdx := rowOff + sx
			if z <= fb.ZBuf[zIdx] {
				continue
			}
			fb.ZBuf[zIdx] = z

			pxIdx := zIdx * 4
			fb.Color[pxIdx] = color[0]
			fb.Color[pxIdx+1] = color[1]
			fb.Color[pxIdx+2] = color[2]
			fb.Color[pxIdx+3] = 255
		}
	}
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
