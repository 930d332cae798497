package lut

import (
	"image"
	"image/color"
)

// Strip packs t into a strip image in the layout Convert reads, so that
// Convert(Strip(t)) reproduces t up to 16-bit quantization. Editing the
// strip of an identity table in an image editor is the usual way to author
// a grading table. A nil or destroyed table yields nil.
func Strip(t *Table) *image.NRGBA64 {
	dim := t.Dim()
	if dim == 0 {
		return nil
	}
	img := image.NewNRGBA64(image.Rect(0, 0, dim*dim, dim))
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			for k := 0; k < dim; k++ {
				c := t.Texel(i, j, k).Clamp()
				img.SetNRGBA64(k*dim+i, dim-1-j, color.NRGBA64{
					R: quantize(c.R),
					G: quantize(c.G),
					B: quantize(c.B),
					A: quantize(c.A),
				})
			}
		}
	}
	return img
}

func quantize(v float32) uint16 {
	return uint16(v*0xffff + 0.5)
}
