// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"github.com/nfnt/resize"

	"github.com/gogpu/postfx/render"
)

// rowFunc runs fn over row bands covering [0, height).
type rowFunc func(height int, fn func(y0, y1 int))

// serialRows runs the whole range on the calling goroutine.
func serialRows(height int, fn func(y0, y1 int)) {
	fn(0, height)
}

// forEachTexel evaluates f at the centre of every texel of dst, in
// normalized coordinates, and stores the result. f must only read shared
// state; rows may run it from several goroutines.
func forEachTexel(dst *surface, rows rowFunc, f func(u, v float32) render.RGBA) {
	w, h := float32(dst.width), float32(dst.height)
	rows(dst.height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			v := (float32(y) + 0.5) / h
			for x := 0; x < dst.width; x++ {
				u := (float32(x) + 0.5) / w
				dst.set(x, y, f(u, v))
			}
		}
	})
}

// copySurface is the plain blit: a straight copy for equal sizes, a bilinear
// rescale otherwise.
func copySurface(src, dst *surface) {
	if src.width == dst.width && src.height == dst.height {
		for i, c := range src.pix {
			dst.set(i%dst.width, i/dst.width, c)
		}
		return
	}
	scaled := resize.Resize(uint(dst.width), uint(dst.height), src.image(), resize.Bilinear)
	dst.load(scaled)
}

// downsample runs the dual-filter down kernel: the centre tap weighted four
// plus four diagonal taps half a texel away, divided by eight.
func downsample(src, dst *surface, hx, hy float32, rows rowFunc) {
	forEachTexel(dst, rows, func(u, v float32) render.RGBA {
		sum := src.sample(u, v).Scale(4)
		sum = sum.Add(src.sample(u-hx, v-hy))
		sum = sum.Add(src.sample(u+hx, v+hy))
		sum = sum.Add(src.sample(u+hx, v-hy))
		sum = sum.Add(src.sample(u-hx, v+hy))
		return sum.Scale(1.0 / 8)
	})
}

// upsample runs the dual-filter up kernel: an eight-tap tent with the axis
// taps two half-texels out and the diagonal taps weighted two, divided by
// twelve.
func upsample(src, dst *surface, hx, hy float32, rows rowFunc) {
	forEachTexel(dst, rows, func(u, v float32) render.RGBA {
		sum := src.sample(u-2*hx, v)
		sum = sum.Add(src.sample(u-hx, v+hy).Scale(2))
		sum = sum.Add(src.sample(u, v+2*hy))
		sum = sum.Add(src.sample(u+hx, v+hy).Scale(2))
		sum = sum.Add(src.sample(u+2*hx, v))
		sum = sum.Add(src.sample(u+hx, v-hy).Scale(2))
		sum = sum.Add(src.sample(u, v-2*hy))
		sum = sum.Add(src.sample(u-hx, v-hy).Scale(2))
		return sum.Scale(1.0 / 12)
	})
}
