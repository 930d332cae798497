package lut

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/postfx/render"
)

// Conversion errors.
var (
	// ErrInvalidDimensions is matched by every *ValidationError.
	ErrInvalidDimensions = errors.New("lut: strip image cannot be used as a 3D LUT")

	// ErrNilImage is returned when Convert receives no image.
	ErrNilImage = errors.New("lut: nil strip image")
)

// ValidationError reports a strip image whose height is not
// floor(sqrt(width)).
type ValidationError struct {
	Width  int
	Height int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("lut: %dx%d strip image cannot be used as a 3D LUT (height must be %d)",
		e.Width, e.Height, floorSqrt(e.Width))
}

// Is reports whether target is ErrInvalidDimensions.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidDimensions
}

// ValidDimensions reports whether a width×height strip encodes a cube:
// height == floor(sqrt(width)). Cubes smaller than 2 are rejected.
//
// The check does not require width == height², so a strip a few columns
// wider than dim² passes; the extra columns are ignored by Convert.
func ValidDimensions(width, height int) bool {
	if height < 2 || width < 0 {
		return false
	}
	return height == floorSqrt(width)
}

func floorSqrt(n int) int {
	if n <= 0 {
		return 0
	}
	r := int(math.Sqrt(float64(n)))
	// correct float rounding at perfect squares
	for r*r > n {
		r--
	}
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}

// Convert unpacks a strip image into a table with dim = height.
//
// The strip holds dim horizontal tiles of dim×dim pixels. The pixel at
// column k·dim+i, row dim-1-j (rows counted from the top of the image)
// becomes cell (i, j, k); the vertical flip turns the top-left image origin
// into the bottom-up green axis of the cube. Colors are read
// non-premultiplied.
func Convert(img image.Image) (*Table, error) {
	if img == nil {
		return nil, ErrNilImage
	}

	b := img.Bounds()
	if !ValidDimensions(b.Dx(), b.Dy()) {
		return nil, &ValidationError{Width: b.Dx(), Height: b.Dy()}
	}

	dim := b.Dy()
	texels := make([]render.RGBA, dim*dim*dim)

	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			row := dim - 1 - j
			for k := 0; k < dim; k++ {
				c := img.At(b.Min.X+k*dim+i, b.Min.Y+row)
				texels[i+j*dim+k*dim*dim] = toRGBA(c)
			}
		}
	}
	return newTable(dim, texels), nil
}

// toRGBA converts any color to non-premultiplied float components.
func toRGBA(c color.Color) render.RGBA {
	n, _ := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	const maxv = 0xffff
	return render.RGBA{
		R: float32(n.R) / maxv,
		G: float32(n.G) / maxv,
		B: float32(n.B) / maxv,
		A: float32(n.A) / maxv,
	}
}
