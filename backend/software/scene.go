// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"errors"
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
)

// ErrNoScene is returned by DrawScene without a main image.
var ErrNoScene = errors.New("software: no scene image")

// DrawScene stands in for the host's scene render. It writes main into the
// first bound render target (the display when none is bound) and bloom, if
// given, into the second. Images of another size are scaled to the target.
func (b *Backend) DrawScene(main, bloom image.Image) error {
	if main == nil {
		return ErrNoScene
	}
	if len(b.targets) == 0 {
		drawInto(b.display, main)
		return nil
	}

	mainSurf, err := b.lookup(b.targets[0])
	if err != nil {
		return fmt.Errorf("software: draw scene: %w", err)
	}
	drawInto(mainSurf, main)

	if bloom != nil && len(b.targets) > 1 {
		bloomSurf, err := b.lookup(b.targets[1])
		if err != nil {
			return fmt.Errorf("software: draw bloom source: %w", err)
		}
		drawInto(bloomSurf, bloom)
	}
	return nil
}

// drawInto replaces the content of dst with img, scaled to fit.
func drawInto(dst *surface, img image.Image) {
	if img.Bounds().Dx() == dst.width && img.Bounds().Dy() == dst.height {
		dst.load(img)
		return
	}
	scaled := image.NewNRGBA64(image.Rect(0, 0, dst.width, dst.height))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	dst.load(scaled)
}
