package lut

import (
	"image"
	"image/color"

	"github.com/gogpu/postfx/render"
)

// Test helper functions shared across lut tests.

// identityStrip renders the identity cube of the given dim as a strip image
// using the layout Convert expects.
func identityStrip(dim int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, dim*dim, dim))
	step := 255 / (dim - 1)
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			for k := 0; k < dim; k++ {
				img.SetNRGBA(k*dim+i, dim-1-j, color.NRGBA{
					R: uint8(i * step),
					G: uint8(j * step),
					B: uint8(k * step),
					A: 255,
				})
			}
		}
	}
	return img
}

// colorApproxEqual compares two colors with tolerance.
func colorApproxEqual(a, b render.RGBA, tolerance float32) bool {
	return absf32(a.R-b.R) < tolerance &&
		absf32(a.G-b.G) < tolerance &&
		absf32(a.B-b.B) < tolerance &&
		absf32(a.A-b.A) < tolerance
}

// absf32 returns the absolute value of a float32.
func absf32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
