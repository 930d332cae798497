// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"fmt"

	"github.com/gogpu/postfx/lut"
	"github.com/gogpu/postfx/render"
	"github.com/gogpu/postfx/shader"
)

// composite runs one of the final passes. bloomSrc is the blit source: the
// filtered bloom for the bloom passes, the main buffer for grading only. The
// scene color always comes from the _SourceTex uniform.
func (b *Backend) composite(pass *render.Pass, bloomSrc, dst *surface) error {
	h, ok := pass.TextureValue(shader.SourceTex)
	if !ok {
		return fmt.Errorf("software: pass %d: missing %s", pass.Index, shader.SourceTex)
	}
	scene, err := b.lookup(h)
	if err != nil {
		return fmt.Errorf("software: pass %d %s: %w", pass.Index, shader.SourceTex, err)
	}

	addBloom := pass.Index != shader.PassGrading
	tint := pass.ColorValue(shader.BloomColor, render.White)
	strength := pass.FloatValue(shader.GlobalBloomStrength, 1)

	var (
		clut          render.Volume
		scale, offset float32
	)
	if pass.Index != shader.PassBloom {
		clut, ok = pass.VolumeValue(shader.ClutTex)
		if !ok {
			return fmt.Errorf("software: pass %d: missing %s", pass.Index, shader.ClutTex)
		}
		scale = pass.FloatValue(shader.Scale, 0)
		offset = pass.FloatValue(shader.Offset, 0)
	}

	forEachTexel(dst, b.rows, func(u, v float32) render.RGBA {
		base := scene.sample(u, v)
		c := base
		if addBloom {
			glow := bloomSrc.sample(u, v).R * strength
			c = c.Add(tint.Scale(glow)).Clamp()
		}
		if clut != nil {
			c = lut.Sample(clut, c, scale, offset)
		}
		c.A = base.A
		return c
	})
	return nil
}
