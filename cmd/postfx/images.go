package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	// Registered decoders for scene, mask and LUT strip inputs.
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// loadImage decodes an image file in any registered format.
func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// savePNG encodes img to path.
func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// framePath returns the output path of frame i: path itself for a single
// frame, otherwise the index inserted before the extension.
func framePath(path string, i, frames int) string {
	if frames <= 1 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s_%03d%s", strings.TrimSuffix(path, ext), i, ext)
}

// luminanceMask returns the Rec. 709 luminance of img above threshold,
// rescaled to [0, 1].
func luminanceMask(img image.Image, threshold float64) *image.Gray {
	b := img.Bounds()
	mask := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBA64Model.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA64)
			l := (0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)) / 0xffff
			if l <= threshold || threshold >= 1 {
				continue
			}
			v := (l - threshold) / (1 - threshold)
			mask.SetGray(x, y, color.Gray{Y: uint8(v*255 + 0.5)})
		}
	}
	return mask
}

// scaleMask returns mask with every value multiplied by s in [0, 1].
func scaleMask(mask image.Image, s float32) *image.Gray {
	b := mask.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			g := color.GrayModel.Convert(mask.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			out.SetGray(x, y, color.Gray{Y: uint8(float32(g.Y)*s + 0.5)})
		}
	}
	return out
}
