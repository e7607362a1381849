package postprocess

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Frame crops img to its opaque pixels, scales the result so its longer side
// covers fillRatio of a size×size canvas, and centers it. A fully
// transparent image yields an empty canvas.
func Frame(img *image.NRGBA, size int, fillRatio float64) *image.NRGBA {
	canvas := image.NewNRGBA(image.Rect(0, 0, size, size))
	crop, ok := alphaBounds(img)
	if !ok {
		return canvas
	}

	scale := float64(size) * fillRatio / math.Max(float64(crop.Dx()), float64(crop.Dy()))
	w := max(int(float64(crop.Dx())*scale+0.5), 1)
	h := max(int(float64(crop.Dy())*scale+0.5), 1)
	offX := (size - w) / 2
	offY := (size - h) / 2

	draw.CatmullRom.Scale(canvas, image.Rect(offX, offY, offX+w, offY+h), img, crop, draw.Src, nil)
	return canvas
}

// alphaBounds returns the smallest rectangle holding every pixel with
// non-zero alpha.
func alphaBounds(img *image.NRGBA) (image.Rectangle, bool) {
	b := img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.Pix[img.PixOffset(x, y)+3] == 0 {
				continue
			}
			minX = min(minX, x)
			maxX = max(maxX, x)
			minY = min(minY, y)
			maxY = max(maxY, y)
		}
	}
	if maxX < minX {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}
