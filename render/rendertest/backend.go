// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package rendertest provides a recording render.Backend for tests.
//
// The backend performs no drawing. It issues handles, records every call in
// order and flags protocol violations such as releasing a handle twice or
// blitting from a released buffer.
package rendertest

import (
	"fmt"

	"github.com/gogpu/postfx/render"
)

// Call is one recorded backend call.
type Call struct {
	Op      string
	Handle  render.Handle
	Dst     render.Handle
	Targets []render.Handle
	Desc    render.BufferDescriptor
	Program string
	// Pass is the pass index, or -1 for a plain copy.
	Pass     int
	Uniforms []render.Uniform
}

// Backend is a recording render.Backend.
type Backend struct {
	Width  int
	Height int

	// Caps overrides capability answers. Missing names are supported.
	Caps map[string]bool

	// FailAcquireAt makes the n-th AcquireBuffer call (1-based) fail with
	// render.ErrResourceExhausted. Zero disables the failure.
	FailAcquireAt int

	// FailBlitAt makes the n-th Blit call (1-based) fail.
	FailBlitAt int

	Calls          []Call
	Violations     []error
	DepthRequested bool

	live     map[render.Handle]render.BufferDescriptor
	next     render.Handle
	acquires int
	acquired int
	releases int
	blits    int
}

// New creates a recording backend with the given display size.
func New(width, height int) *Backend {
	return &Backend{
		Width:  width,
		Height: height,
		live:   make(map[render.Handle]render.BufferDescriptor),
	}
}

// AcquireBuffer implements render.Backend.
func (b *Backend) AcquireBuffer(desc render.BufferDescriptor) (render.Handle, error) {
	b.acquires++
	if b.FailAcquireAt > 0 && b.acquires == b.FailAcquireAt {
		b.Calls = append(b.Calls, Call{Op: "acquire-fail", Desc: desc, Pass: -1})
		return render.Display, fmt.Errorf("rendertest: acquire %v: %w", desc, render.ErrResourceExhausted)
	}
	if err := desc.Validate(); err != nil {
		b.violate("acquire %v: %v", desc, err)
		return render.Display, err
	}
	b.next++
	b.acquired++
	h := b.next
	b.live[h] = desc
	b.Calls = append(b.Calls, Call{Op: "acquire", Handle: h, Desc: desc, Pass: -1})
	return h, nil
}

// ReleaseBuffer implements render.Backend.
func (b *Backend) ReleaseBuffer(h render.Handle) {
	if _, ok := b.live[h]; !ok {
		b.violate("release of %v which is not live", h)
	}
	delete(b.live, h)
	b.releases++
	b.Calls = append(b.Calls, Call{Op: "release", Handle: h, Pass: -1})
}

// BindRenderTargets implements render.Backend.
func (b *Backend) BindRenderTargets(targets []render.Handle, depth render.Handle) error {
	for _, t := range targets {
		b.check("bind", t)
	}
	if depth != render.Display {
		b.check("bind depth", depth)
	}
	b.Calls = append(b.Calls, Call{
		Op:      "bind",
		Targets: append([]render.Handle(nil), targets...),
		Handle:  depth,
		Pass:    -1,
	})
	return nil
}

// Clear implements render.Backend.
func (b *Backend) Clear(h render.Handle, _ render.RGBA) error {
	b.check("clear", h)
	b.Calls = append(b.Calls, Call{Op: "clear", Handle: h, Pass: -1})
	return nil
}

// Blit implements render.Backend.
func (b *Backend) Blit(src, dst render.Handle, pass *render.Pass) error {
	b.blits++
	b.check("blit source", src)
	if dst != render.Display {
		b.check("blit destination", dst)
	}
	c := Call{Op: "blit", Handle: src, Dst: dst, Pass: -1}
	if pass != nil {
		c.Program = pass.Program
		c.Pass = pass.Index
		c.Uniforms = append([]render.Uniform(nil), pass.Uniforms...)
		for _, u := range pass.Uniforms {
			if u.Kind == render.UniformTexture {
				b.check("uniform "+u.Name, u.Texture)
			}
		}
	}
	if b.FailBlitAt > 0 && b.blits == b.FailBlitAt {
		c.Op = "blit-fail"
		b.Calls = append(b.Calls, c)
		return fmt.Errorf("rendertest: blit %v -> %v failed", src, dst)
	}
	b.Calls = append(b.Calls, c)
	return nil
}

// QueryCapability implements render.Backend.
func (b *Backend) QueryCapability(name string) bool {
	if v, ok := b.Caps[name]; ok {
		return v
	}
	return true
}

// DisplaySize implements render.Backend.
func (b *Backend) DisplaySize() (int, int) {
	return b.Width, b.Height
}

// DiscardContents implements render.Discarder.
func (b *Backend) DiscardContents(h render.Handle) {
	b.check("discard", h)
	b.Calls = append(b.Calls, Call{Op: "discard", Handle: h, Pass: -1})
}

// RequestDepthTexture implements render.DepthRequester.
func (b *Backend) RequestDepthTexture() {
	b.DepthRequested = true
}

// Live returns the number of buffers acquired and not yet released.
func (b *Backend) Live() int { return len(b.live) }

// Acquired returns the number of successful acquisitions.
func (b *Backend) Acquired() int { return b.acquired }

// Released returns the number of releases.
func (b *Backend) Released() int { return b.releases }

// Descriptor returns the descriptor of a live handle.
func (b *Backend) Descriptor(h render.Handle) (render.BufferDescriptor, bool) {
	d, ok := b.live[h]
	return d, ok
}

// Ops returns the operation names of all recorded calls, in order.
func (b *Backend) Ops() []string {
	ops := make([]string, len(b.Calls))
	for i, c := range b.Calls {
		ops[i] = c.Op
	}
	return ops
}

// Filter returns the recorded calls with the given operation name.
func (b *Backend) Filter(op string) []Call {
	var out []Call
	for _, c := range b.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Reset clears the call log. Live buffers are kept.
func (b *Backend) Reset() {
	b.Calls = nil
	b.Violations = nil
}

func (b *Backend) check(what string, h render.Handle) {
	if _, ok := b.live[h]; !ok {
		b.violate("%s uses %v which is not live", what, h)
	}
}

func (b *Backend) violate(format string, args ...any) {
	b.Violations = append(b.Violations, fmt.Errorf(format, args...))
}

var (
	_ render.Backend        = (*Backend)(nil)
	_ render.Discarder      = (*Backend)(nil)
	_ render.DepthRequester = (*Backend)(nil)
)
