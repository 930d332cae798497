// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "testing"

type cube struct{ dim int }

func (c cube) Dim() int               { return c.dim }
func (c cube) Texel(i, j, k int) RGBA { return RGBA{R: float32(i), G: float32(j), B: float32(k), A: 1} }

func TestPassLookup(t *testing.T) {
	p := &Pass{
		Program: "prog",
		Index:   2,
		Uniforms: []Uniform{
			Float("_Scale", 0.5),
			Color("_BloomColor", White),
			Texture("_SourceTex", Handle(7)),
			VolumeTexture("_ClutTex", cube{dim: 4}),
		},
	}

	if got := p.FloatValue("_Scale", 0); got != 0.5 {
		t.Errorf("FloatValue(_Scale) = %v, want 0.5", got)
	}
	if got := p.FloatValue("_Missing", 3); got != 3 {
		t.Errorf("FloatValue(missing) = %v, want default 3", got)
	}
	if got := p.FloatValue("_BloomColor", 3); got != 3 {
		t.Errorf("FloatValue(color uniform) = %v, want default 3", got)
	}
	if got := p.ColorValue("_BloomColor", Transparent); got != White {
		t.Errorf("ColorValue(_BloomColor) = %v, want white", got)
	}
	if h, ok := p.TextureValue("_SourceTex"); !ok || h != 7 {
		t.Errorf("TextureValue(_SourceTex) = %v, %v; want buffer#7, true", h, ok)
	}
	if v, ok := p.VolumeValue("_ClutTex"); !ok || v.Dim() != 4 {
		t.Errorf("VolumeValue(_ClutTex) = %v, %v", v, ok)
	}
	if _, ok := p.VolumeValue("_SourceTex"); ok {
		t.Error("VolumeValue on a texture uniform should fail")
	}
}

func TestNilPassLookup(t *testing.T) {
	var p *Pass
	if _, ok := p.Lookup("x"); ok {
		t.Error("nil pass Lookup should fail")
	}
	if got := p.FloatValue("x", 1); got != 1 {
		t.Errorf("nil pass FloatValue = %v, want default", got)
	}
}

func TestRGBAOps(t *testing.T) {
	c := RGBA{R: 0.5, G: 0.25, B: 1, A: 1}
	if got := c.Scale(2); got != (RGBA{R: 1, G: 0.5, B: 2, A: 2}) {
		t.Errorf("Scale(2) = %v", got)
	}
	if got := c.Scale(2).Clamp(); got != (RGBA{R: 1, G: 0.5, B: 1, A: 1}) {
		t.Errorf("Clamp() = %v", got)
	}
	if got := c.Add(c); got != (RGBA{R: 1, G: 0.5, B: 2, A: 2}) {
		t.Errorf("Add() = %v", got)
	}
	if got := c.Mul(White); got != c {
		t.Errorf("Mul(White) = %v, want %v", got, c)
	}
}

func TestHandleString(t *testing.T) {
	if got := Display.String(); got != "display" {
		t.Errorf("Display.String() = %q", got)
	}
	if got := Handle(3).String(); got != "buffer#3" {
		t.Errorf("Handle(3).String() = %q", got)
	}
}
