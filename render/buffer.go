// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
)

// ErrInvalidDescriptor is returned by BufferDescriptor.Validate.
var ErrInvalidDescriptor = errors.New("render: invalid buffer descriptor")

// ChannelFormat is the color layout of a buffer.
type ChannelFormat uint8

const (
	// FullColor is four 8-bit channels (RGBA).
	FullColor ChannelFormat = iota

	// SingleChannel is one 8-bit channel, used for the bloom source.
	SingleChannel
)

// String returns a human-readable name for the format.
func (f ChannelFormat) String() string {
	switch f {
	case FullColor:
		return "FullColor"
	case SingleChannel:
		return "SingleChannel"
	default:
		return fmt.Sprintf("Unknown(%d)", f)
	}
}

// Channels returns the number of color channels of the format.
func (f ChannelFormat) Channels() int {
	if f == SingleChannel {
		return 1
	}
	return 4
}

// GPUFormat converts to the WebGPU texture format.
func (f ChannelFormat) GPUFormat() gputypes.TextureFormat {
	switch f {
	case SingleChannel:
		return gputypes.TextureFormatR8Unorm
	default:
		return gputypes.TextureFormatRGBA8Unorm
	}
}

// BufferDescriptor describes an allocatable render surface. It never carries
// pixel data.
type BufferDescriptor struct {
	Width     int
	Height    int
	Format    ChannelFormat
	DepthBits int
}

// Validate reports whether the descriptor can be allocated.
func (d BufferDescriptor) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidDescriptor, d.Width, d.Height)
	}
	if d.DepthBits < 0 {
		return fmt.Errorf("%w: depth bits %d", ErrInvalidDescriptor, d.DepthBits)
	}
	if d.Format > SingleChannel {
		return fmt.Errorf("%w: format %v", ErrInvalidDescriptor, d.Format)
	}
	return nil
}

// Resized returns a copy with the given size and no depth attachment.
// Mip levels never carry depth.
func (d BufferDescriptor) Resized(width, height int) BufferDescriptor {
	return BufferDescriptor{Width: width, Height: height, Format: d.Format}
}

// HalfTexel returns the half-texel offsets (1/width, 1/height) used by the
// dual-filter kernels.
func (d BufferDescriptor) HalfTexel() (x, y float32) {
	return 1 / float32(d.Width), 1 / float32(d.Height)
}

// DepthFormat returns the smallest depth attachment format holding
// DepthBits, or gputypes.TextureFormatUndefined when the descriptor has no
// depth.
func (d BufferDescriptor) DepthFormat() gputypes.TextureFormat {
	switch {
	case d.DepthBits <= 0:
		return gputypes.TextureFormatUndefined
	case d.DepthBits <= 16:
		return gputypes.TextureFormatDepth16Unorm
	case d.DepthBits <= 24:
		return gputypes.TextureFormatDepth24PlusStencil8
	default:
		return gputypes.TextureFormatDepth32Float
	}
}

// SizeBytes returns the storage of the color and depth attachments in their
// GPU formats.
func (d BufferDescriptor) SizeBytes() int64 {
	texel := TexelBytes(d.Format.GPUFormat()) + TexelBytes(d.DepthFormat())
	return int64(d.Width) * int64(d.Height) * int64(texel)
}

// TexelBytes returns the size of one texel of a format used by postfx
// buffers, or 0 for other formats.
func TexelBytes(f gputypes.TextureFormat) int {
	switch f {
	case gputypes.TextureFormatR8Unorm:
		return 1
	case gputypes.TextureFormatDepth16Unorm:
		return 2
	case gputypes.TextureFormatRGBA8Unorm,
		gputypes.TextureFormatDepth24PlusStencil8,
		gputypes.TextureFormatDepth32Float:
		return 4
	default:
		return 0
	}
}

// String returns a compact description, e.g. "256x128 FullColor d16".
func (d BufferDescriptor) String() string {
	return fmt.Sprintf("%dx%d %v d%d", d.Width, d.Height, d.Format, d.DepthBits)
}
