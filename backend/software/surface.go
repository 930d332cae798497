// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"image"
	"image/color"

	"github.com/gogpu/postfx/render"
)

// surface is a float RGBA plane. Single-channel surfaces keep only R; the
// other components read as zero (alpha one).
type surface struct {
	width  int
	height int
	format render.ChannelFormat
	pix    []render.RGBA
}

func newSurface(width, height int, format render.ChannelFormat) *surface {
	return &surface{
		width:  width,
		height: height,
		format: format,
		pix:    make([]render.RGBA, width*height),
	}
}

func (s *surface) at(x, y int) render.RGBA {
	return s.pix[y*s.width+x]
}

func (s *surface) set(x, y int, c render.RGBA) {
	if s.format == render.SingleChannel {
		c = render.RGBA{R: c.R, A: 1}
	}
	s.pix[y*s.width+x] = c
}

func (s *surface) fill(c render.RGBA) {
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			s.set(x, y, c)
		}
	}
}

// sample reads s at normalized coordinates (u, v) with bilinear filtering
// and clamp-to-edge addressing.
func (s *surface) sample(u, v float32) render.RGBA {
	fx := u*float32(s.width) - 0.5
	fy := v*float32(s.height) - 0.5
	x0, tx := split(fx, s.width)
	y0, ty := split(fy, s.height)
	x1 := clampIndex(x0+1, s.width)
	y1 := clampIndex(y0+1, s.height)

	top := lerp(s.at(x0, y0), s.at(x1, y0), tx)
	bottom := lerp(s.at(x0, y1), s.at(x1, y1), tx)
	return lerp(top, bottom, ty)
}

// split returns the clamped lower texel index of f and the weight of the
// upper one.
func split(f float32, n int) (int, float32) {
	if f <= 0 {
		return 0, 0
	}
	if f >= float32(n-1) {
		return n - 1, 0
	}
	i := int(f)
	return i, f - float32(i)
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func lerp(a, b render.RGBA, t float32) render.RGBA {
	if t == 0 {
		return a
	}
	return a.Scale(1 - t).Add(b.Scale(t))
}

// image returns a 16-bit copy of s for the scaling and encoding paths.
func (s *surface) image() *image.NRGBA64 {
	img := image.NewNRGBA64(image.Rect(0, 0, s.width, s.height))
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			c := s.at(x, y).Clamp()
			img.SetNRGBA64(x, y, color.NRGBA64{
				R: to16(c.R),
				G: to16(c.G),
				B: to16(c.B),
				A: to16(c.A),
			})
		}
	}
	return img
}

// load replaces the content of s with img, which must have the size of s.
func (s *surface) load(img image.Image) {
	b := img.Bounds()
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			s.set(x, y, fromColor(img.At(b.Min.X+x, b.Min.Y+y)))
		}
	}
}

func to16(v float32) uint16 {
	return uint16(v*0xffff + 0.5)
}

// fromColor converts c to a non-premultiplied render.RGBA.
func fromColor(c color.Color) render.RGBA {
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return render.RGBA{
		R: float32(n.R) / 0xffff,
		G: float32(n.G) / 0xffff,
		B: float32(n.B) / 0xffff,
		A: float32(n.A) / 0xffff,
	}
}
