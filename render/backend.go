// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
)

// Common backend errors.
var (
	// ErrResourceExhausted is returned when a buffer cannot be allocated.
	// Backends wrap it so callers can match with errors.Is.
	ErrResourceExhausted = errors.New("render: resource exhausted")

	// ErrUnknownHandle is returned when an operation names a handle the
	// backend never issued or already released.
	ErrUnknownHandle = errors.New("render: unknown buffer handle")
)

// Handle identifies a buffer issued by a Backend.
type Handle uint32

// Display is the default display framebuffer. Blitting to Display writes the
// final image; binding no targets restores it as the render target.
const Display Handle = 0

// String returns a debug representation of the handle.
func (h Handle) String() string {
	if h == Display {
		return "display"
	}
	return fmt.Sprintf("buffer#%d", uint32(h))
}

// Backend is the render backend consumed by the pipeline.
//
// All calls are issued from the render thread in strict frame order. A
// Backend implementation is typically a thin adapter over the host engine's
// render-texture and blit APIs.
type Backend interface {
	// AcquireBuffer allocates a transient buffer matching desc.
	// Allocation failures must wrap ErrResourceExhausted.
	AcquireBuffer(desc BufferDescriptor) (Handle, error)

	// ReleaseBuffer returns a buffer obtained from AcquireBuffer.
	ReleaseBuffer(h Handle)

	// BindRenderTargets makes targets the color outputs of the next scene
	// render, with depth taken from the depth handle. More than one target
	// is a multiple-render-target bind. An empty slice binds the display.
	BindRenderTargets(targets []Handle, depth Handle) error

	// Clear fills a buffer with c.
	Clear(h Handle, c RGBA) error

	// Blit draws src into dst. dst may be Display. A nil pass is a plain
	// copy (scaled when sizes differ); otherwise the pass program runs with
	// the uniforms carried by the pass.
	Blit(src, dst Handle, pass *Pass) error

	// QueryCapability reports whether the platform supports a capability.
	// See the Cap* constants for the names used by the pipeline.
	QueryCapability(name string) bool

	// DisplaySize returns the current display resolution in pixels.
	DisplaySize() (width, height int)
}

// Discarder is implemented by backends that can drop the contents of a
// buffer so that the next write does not trigger a read-back.
type Discarder interface {
	DiscardContents(h Handle)
}

// DepthRequester is implemented by backends that can attach scene depth to
// the camera output on request.
type DepthRequester interface {
	RequestDepthTexture()
}

// CapabilityQuerier is the subset of Backend used by capability checks.
type CapabilityQuerier interface {
	QueryCapability(name string) bool
}

// Discard drops the contents of h when b supports it.
func Discard(b Backend, h Handle) {
	if d, ok := b.(Discarder); ok {
		d.DiscardContents(h)
	}
}
