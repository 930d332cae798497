// Package bloom implements the dual-filtering mip chain behind the bloom
// effect.
//
// The engine halves the bloom source step by step into a pyramid of
// transient buffers, filtering at every level, then walks the pyramid back
// up to full resolution. Small fixed kernels at shrinking resolutions
// approximate a large-radius blur in O(log n) passes.
//
// Per-level pass selection:
//   - first downsample step: plain blit (no filter weights)
//   - later downsample steps: dual-filter down with the source half-texel
//   - upsample steps into levels above 0: dual-filter up with the target
//     half-texel
//   - final upsample step into level 0: plain blit
//
// Buffers are tracked on an ownership stack. Level 0 is borrowed from the
// caller; every other level is acquired on push and released on pop, so a
// level can neither be read after release nor released twice.
package bloom
