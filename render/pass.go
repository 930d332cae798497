// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "fmt"

// RGBA is a non-premultiplied color with float32 components in [0, 1].
type RGBA struct {
	R, G, B, A float32
}

// Common colors.
var (
	Transparent = RGBA{}
	White       = RGBA{R: 1, G: 1, B: 1, A: 1}
)

// Add returns the component-wise sum c + o.
func (c RGBA) Add(o RGBA) RGBA {
	return RGBA{R: c.R + o.R, G: c.G + o.G, B: c.B + o.B, A: c.A + o.A}
}

// Mul returns the component-wise product c * o.
func (c RGBA) Mul(o RGBA) RGBA {
	return RGBA{R: c.R * o.R, G: c.G * o.G, B: c.B * o.B, A: c.A * o.A}
}

// Scale returns c with every component multiplied by s.
func (c RGBA) Scale(s float32) RGBA {
	return RGBA{R: c.R * s, G: c.G * s, B: c.B * s, A: c.A * s}
}

// Clamp returns c with every component clamped to [0, 1].
func (c RGBA) Clamp() RGBA {
	return RGBA{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B), A: clamp01(c.A)}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Volume is a cubic 3D texture bound as a uniform, e.g. a color grading LUT.
type Volume interface {
	// Dim returns the edge length of the cube.
	Dim() int

	// Texel returns the entry at cell (i, j, k), each in [0, Dim()).
	Texel(i, j, k int) RGBA
}

// UniformKind is the type of value carried by a Uniform.
type UniformKind uint8

const (
	UniformFloat UniformKind = iota
	UniformColor
	UniformTexture
	UniformVolume
)

// String returns the kind name.
func (k UniformKind) String() string {
	switch k {
	case UniformFloat:
		return "float"
	case UniformColor:
		return "color"
	case UniformTexture:
		return "texture"
	case UniformVolume:
		return "volume"
	default:
		return fmt.Sprintf("UniformKind(%d)", k)
	}
}

// Uniform is a named shader parameter value. Only the field matching Kind is
// meaningful.
type Uniform struct {
	Name    string
	Kind    UniformKind
	Float   float32
	Color   RGBA
	Texture Handle
	Volume  Volume
}

// Float returns a float uniform.
func Float(name string, v float32) Uniform {
	return Uniform{Name: name, Kind: UniformFloat, Float: v}
}

// Color returns a color uniform.
func Color(name string, c RGBA) Uniform {
	return Uniform{Name: name, Kind: UniformColor, Color: c}
}

// Texture returns a texture uniform referencing a buffer.
func Texture(name string, h Handle) Uniform {
	return Uniform{Name: name, Kind: UniformTexture, Texture: h}
}

// VolumeTexture returns a 3D texture uniform.
func VolumeTexture(name string, v Volume) Uniform {
	return Uniform{Name: name, Kind: UniformVolume, Volume: v}
}

// Pass selects a shader program pass for a Blit and carries every uniform
// the pass reads. Uniform values are passed per call; backends must not
// retain them across blits.
type Pass struct {
	Program  string
	Index    int
	Uniforms []Uniform
}

// Lookup returns the uniform with the given name.
func (p *Pass) Lookup(name string) (Uniform, bool) {
	if p == nil {
		return Uniform{}, false
	}
	for _, u := range p.Uniforms {
		if u.Name == name {
			return u, true
		}
	}
	return Uniform{}, false
}

// FloatValue returns the float uniform name, or def when it is missing or has
// another kind.
func (p *Pass) FloatValue(name string, def float32) float32 {
	u, ok := p.Lookup(name)
	if !ok || u.Kind != UniformFloat {
		return def
	}
	return u.Float
}

// ColorValue returns the color uniform name, or def.
func (p *Pass) ColorValue(name string, def RGBA) RGBA {
	u, ok := p.Lookup(name)
	if !ok || u.Kind != UniformColor {
		return def
	}
	return u.Color
}

// TextureValue returns the texture uniform name.
func (p *Pass) TextureValue(name string) (Handle, bool) {
	u, ok := p.Lookup(name)
	if !ok || u.Kind != UniformTexture {
		return Display, false
	}
	return u.Texture, true
}

// VolumeValue returns the volume uniform name.
func (p *Pass) VolumeValue(name string) (Volume, bool) {
	u, ok := p.Lookup(name)
	if !ok || u.Kind != UniformVolume || u.Volume == nil {
		return nil, false
	}
	return u.Volume, true
}
