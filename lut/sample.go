package lut

import (
	"math"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/postfx/render"
)

// addressed is implemented by volumes with their own wrap mode, like Table.
type addressed interface {
	AddressMode() gputypes.AddressMode
}

// Sample looks c up in v with trilinear filtering, the CPU equivalent of
// sampling a 3D texture at c·scale + offset. Volumes implementing
// AddressMode are wrapped with their mode, others are clamped to the edge.
// Alpha is taken from c.
//
// With the constants from SamplingConstants the texture coordinate of a
// channel value x lands exactly on cell x·(dim-1), so an identity table
// returns c unchanged.
func Sample(v render.Volume, c render.RGBA, scale, offset float32) render.RGBA {
	dim := v.Dim()
	if dim <= 0 {
		return c
	}

	mode := DefaultAddressMode
	if a, ok := v.(addressed); ok {
		mode = a.AddressMode()
	}
	clampInput := mode != gputypes.AddressModeRepeat && mode != gputypes.AddressModeMirrorRepeat

	x0, x1, fx := split(texelCoord(c.R, scale, offset, dim, clampInput), dim, mode)
	y0, y1, fy := split(texelCoord(c.G, scale, offset, dim, clampInput), dim, mode)
	z0, z1, fz := split(texelCoord(c.B, scale, offset, dim, clampInput), dim, mode)

	c00 := lerp(v.Texel(x0, y0, z0), v.Texel(x1, y0, z0), fx)
	c10 := lerp(v.Texel(x0, y1, z0), v.Texel(x1, y1, z0), fx)
	c01 := lerp(v.Texel(x0, y0, z1), v.Texel(x1, y0, z1), fx)
	c11 := lerp(v.Texel(x0, y1, z1), v.Texel(x1, y1, z1), fx)

	out := lerp(lerp(c00, c10, fy), lerp(c01, c11, fy), fz)
	out.A = c.A
	return out
}

// texelCoord returns the continuous texel-space coordinate of a channel
// value: texture coordinate times dim, minus the half texel of linear
// filtering. With clampInput the value is first limited to [0, 1].
func texelCoord(v, scale, offset float32, dim int, clampInput bool) float32 {
	if clampInput {
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
	}
	u := v*scale + offset
	return u*float32(dim) - 0.5
}

// split returns the two cells a texel coordinate falls between, wrapped with
// mode, and the blend fraction towards the upper one.
func split(x float32, dim int, mode gputypes.AddressMode) (lo, hi int, f float32) {
	fl := float32(math.Floor(float64(x)))
	i := int(fl)
	f = x - fl
	lo, hi = wrapIndex(i, dim, mode), wrapIndex(i+1, dim, mode)
	if lo == hi {
		f = 0
	}
	return lo, hi, f
}

func lerp(a, b render.RGBA, t float32) render.RGBA {
	if t == 0 {
		return a
	}
	return render.RGBA{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}
