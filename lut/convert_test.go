package lut

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestValidDimensions(t *testing.T) {
	tests := []struct {
		width, height int
		want          bool
	}{
		{256, 16, true},
		{1024, 32, true},
		{4096, 64, true},
		{4, 2, true},
		{300, 16, false}, // floor(sqrt(300)) = 17
		{300, 17, true},  // tolerated: width != 17²
		{257, 16, true},  // tolerated: width != 16²
		{255, 16, false}, // floor(sqrt(255)) = 15
		{256, 15, false},
		{1, 1, false},
		{0, 0, false},
	}
	for _, tt := range tests {
		if got := ValidDimensions(tt.width, tt.height); got != tt.want {
			t.Errorf("ValidDimensions(%d, %d) = %v, want %v", tt.width, tt.height, got, tt.want)
		}
	}
}

func TestFloorSqrt(t *testing.T) {
	for n := 0; n < 5000; n++ {
		r := floorSqrt(n)
		if r*r > n || (r+1)*(r+1) <= n {
			t.Fatalf("floorSqrt(%d) = %d", n, r)
		}
	}
}

func TestConvertProducesCube(t *testing.T) {
	for _, dim := range []int{2, 4, 8, 16} {
		img := image.NewRGBA(image.Rect(0, 0, dim*dim, dim))
		tbl, err := Convert(img)
		if err != nil {
			t.Fatalf("Convert(%dx%d) error: %v", dim*dim, dim, err)
		}
		if tbl.Dim() != dim {
			t.Errorf("Dim() = %d, want %d", tbl.Dim(), dim)
		}
		if tbl.Len() != dim*dim*dim {
			t.Errorf("Len() = %d, want %d", tbl.Len(), dim*dim*dim)
		}
	}
}

func TestConvertAddressing(t *testing.T) {
	const dim = 4
	img := image.NewNRGBA(image.Rect(0, 0, dim*dim, dim))
	// Tag every pixel with its own column and row.
	for y := 0; y < dim; y++ {
		for x := 0; x < dim*dim; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 0, A: 255})
		}
	}

	tbl, err := Convert(img)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			for k := 0; k < dim; k++ {
				got := tbl.Texel(i, j, k)
				wantX := float32(k*dim+i) / 255
				wantY := float32(dim-1-j) / 255
				if absf32(got.R-wantX) > 1e-6 || absf32(got.G-wantY) > 1e-6 {
					t.Fatalf("cell (%d,%d,%d) read pixel (%v,%v), want (%v,%v)",
						i, j, k, got.R*255, got.G*255, wantX*255, wantY*255)
				}
			}
		}
	}
}

func TestConvertIdentityStrip(t *testing.T) {
	const dim = 16
	tbl, err := Convert(identityStrip(dim))
	if err != nil {
		t.Fatal(err)
	}
	want := Identity(dim)
	for n := 0; n < want.Len(); n++ {
		if !colorApproxEqual(tbl.At(n), want.At(n), 1e-5) {
			t.Fatalf("entry %d = %v, want %v", n, tbl.At(n), want.At(n))
		}
	}
}

func TestConvertHonorsBoundsOrigin(t *testing.T) {
	const dim = 2
	src := identityStrip(dim)
	shifted := image.NewNRGBA(image.Rect(10, 20, 10+dim*dim, 20+dim))
	for y := 0; y < dim; y++ {
		for x := 0; x < dim*dim; x++ {
			shifted.Set(10+x, 20+y, src.At(x, y))
		}
	}
	tbl, err := Convert(shifted)
	if err != nil {
		t.Fatal(err)
	}
	if got := tbl.Texel(1, 1, 1); !colorApproxEqual(got, Identity(dim).Texel(1, 1, 1), 1e-6) {
		t.Errorf("Texel(1,1,1) = %v", got)
	}
}

func TestConvertRejectsBadAspect(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 300, 16))
	tbl, err := Convert(img)
	if tbl != nil {
		t.Error("Convert should not return a table on validation failure")
	}
	if !errors.Is(err, ErrInvalidDimensions) {
		t.Fatalf("err = %v, want ErrInvalidDimensions", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %T, want *ValidationError", err)
	}
	if verr.Width != 300 || verr.Height != 16 {
		t.Errorf("ValidationError = %+v", verr)
	}
}

func TestConvertNilImage(t *testing.T) {
	if _, err := Convert(nil); !errors.Is(err, ErrNilImage) {
		t.Errorf("Convert(nil) err = %v, want ErrNilImage", err)
	}
}
