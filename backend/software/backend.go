// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/postfx/internal/logging"
	"github.com/gogpu/postfx/internal/parallel"
	"github.com/gogpu/postfx/render"
	"github.com/gogpu/postfx/shader"
)

// ErrBudgetExceeded is returned by AcquireBuffer when the memory budget
// cannot hold another buffer. It matches render.ErrResourceExhausted.
var ErrBudgetExceeded = fmt.Errorf("software: memory budget exceeded: %w", render.ErrResourceExhausted)

// ErrDepthUnsupported is returned by AcquireBuffer for a depth attachment
// the backend was configured without.
var ErrDepthUnsupported = errors.New("software: depth format not supported")

// DefaultPoolSize is the number of released surfaces kept per size.
const DefaultPoolSize = 4

// minBandRows is the smallest row band handed to a worker.
const minBandRows = 16

// Option configures a Backend.
type Option func(*Backend)

// WithBudget limits the bytes held by live buffers, counted in the GPU
// formats of their attachments (render.BufferDescriptor.SizeBytes). Zero
// means unlimited.
func WithBudget(bytes int64) Option {
	return func(b *Backend) {
		b.budget = bytes
	}
}

// WithPoolSize sets how many released surfaces of each size are kept for
// reuse. Zero keeps every surface.
func WithPoolSize(n int) Option {
	return func(b *Backend) {
		b.pool = newPool(n)
	}
}

// WithWorkers runs the filter and composite passes on n goroutines. Values
// below 2 keep every pass on the calling goroutine; -1 uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(b *Backend) {
		if n < 0 {
			n = 0
		} else if n < 2 {
			return
		}
		b.workers = parallel.NewWorkerPool(n)
		b.rows = func(height int, fn func(y0, y1 int)) {
			b.workers.Rows(height, minBandRows, fn)
		}
	}
}

// WithoutCapability makes QueryCapability report name as missing.
func WithoutCapability(name string) Option {
	return func(b *Backend) {
		b.missing[name] = true
	}
}

// Stats describes the buffers of a Backend.
type Stats struct {
	Live       int
	Pooled     int
	BytesInUse int64
	Acquired   int
	Released   int
	Discards   int
	Blits      int
}

// buffer is a live surface issued by AcquireBuffer.
type buffer struct {
	desc render.BufferDescriptor
	surf *surface
}

// Backend is a CPU render.Backend.
//
// A Backend is not safe for concurrent use, matching the single render thread
// that drives a pipeline.
type Backend struct {
	width   int
	height  int
	display *surface

	buffers map[render.Handle]*buffer
	next    render.Handle
	used    int64
	budget  int64
	pool    *pool
	workers *parallel.WorkerPool
	rows    rowFunc

	targets []render.Handle
	depth   render.Handle

	missing        map[string]bool
	depthRequested bool
	logger         atomic.Pointer[slog.Logger]
	stats          Stats
}

// New creates a backend with a display of the given size.
func New(width, height int, opts ...Option) *Backend {
	b := &Backend{
		width:   width,
		height:  height,
		display: newSurface(width, height, render.FullColor),
		buffers: make(map[render.Handle]*buffer),
		pool:    newPool(DefaultPoolSize),
		rows:    serialRows,
		missing: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SetLogger sets the logger used by the backend. Nil restores the shared
// postfx logger, read at each log call. SetLogger is safe for concurrent use.
func (b *Backend) SetLogger(l *slog.Logger) {
	b.logger.Store(l)
}

func (b *Backend) log() *slog.Logger {
	if l := b.logger.Load(); l != nil {
		return l
	}
	return logging.Logger()
}

// AcquireBuffer implements render.Backend.
func (b *Backend) AcquireBuffer(desc render.BufferDescriptor) (render.Handle, error) {
	if err := desc.Validate(); err != nil {
		return render.Display, err
	}

	if df := desc.DepthFormat(); df.HasDepth() && b.missing[render.CapDepthFormat] {
		return render.Display, fmt.Errorf("software: acquire %v: %w: %v", desc, ErrDepthUnsupported, df)
	}

	need := desc.SizeBytes()
	if b.budget > 0 && b.used+need > b.budget {
		b.log().Debug("software: budget exceeded",
			"buffer", desc.String(),
			"need", need,
			"in_use", b.used,
			"budget", b.budget)
		return render.Display, fmt.Errorf("software: acquire %v: %w", desc, ErrBudgetExceeded)
	}

	s := b.pool.get(desc)
	if s == nil {
		s = newSurface(desc.Width, desc.Height, desc.Format)
	}

	b.next++
	h := b.next
	b.buffers[h] = &buffer{desc: desc, surf: s}
	b.used += need
	b.stats.Acquired++
	return h, nil
}

// ReleaseBuffer implements render.Backend.
func (b *Backend) ReleaseBuffer(h render.Handle) {
	buf, ok := b.buffers[h]
	if !ok {
		b.log().Warn("software: release of unknown buffer", "handle", h.String())
		return
	}
	delete(b.buffers, h)
	b.used -= buf.desc.SizeBytes()
	b.stats.Released++
	b.pool.put(buf.surf)
}

// BindRenderTargets implements render.Backend.
func (b *Backend) BindRenderTargets(targets []render.Handle, depth render.Handle) error {
	for _, t := range targets {
		if _, err := b.lookup(t); err != nil {
			return fmt.Errorf("software: bind: %w", err)
		}
	}
	b.targets = append(b.targets[:0], targets...)
	b.depth = depth
	return nil
}

// Clear implements render.Backend.
func (b *Backend) Clear(h render.Handle, c render.RGBA) error {
	s, err := b.lookup(h)
	if err != nil {
		return fmt.Errorf("software: clear: %w", err)
	}
	s.fill(c)
	return nil
}

// Blit implements render.Backend.
func (b *Backend) Blit(src, dst render.Handle, pass *render.Pass) error {
	from, err := b.lookup(src)
	if err != nil {
		return fmt.Errorf("software: blit source: %w", err)
	}
	to, err := b.lookup(dst)
	if err != nil {
		return fmt.Errorf("software: blit destination: %w", err)
	}
	b.stats.Blits++

	if pass == nil {
		copySurface(from, to)
		return nil
	}
	if pass.Program != shader.Program {
		return fmt.Errorf("software: unknown program %q", pass.Program)
	}

	switch pass.Index {
	case shader.PassDown:
		hx, hy := pass.FloatValue(shader.HalfPixelX, 0), pass.FloatValue(shader.HalfPixelY, 0)
		downsample(from, to, hx, hy, b.rows)
	case shader.PassUp:
		hx, hy := pass.FloatValue(shader.HalfPixelX, 0), pass.FloatValue(shader.HalfPixelY, 0)
		upsample(from, to, hx, hy, b.rows)
	case shader.PassBloom, shader.PassGrading, shader.PassGradingBloom:
		return b.composite(pass, from, to)
	default:
		return fmt.Errorf("software: unknown pass %d of %s", pass.Index, pass.Program)
	}
	return nil
}

// QueryCapability implements render.Backend.
func (b *Backend) QueryCapability(name string) bool {
	switch name {
	case render.CapImageEffects, render.CapDepthFormat, render.CapTexture3D, render.CapMultipleRenderTargets:
		return !b.missing[name]
	default:
		return false
	}
}

// DisplaySize implements render.Backend.
func (b *Backend) DisplaySize() (int, int) {
	return b.width, b.height
}

// DiscardContents implements render.Discarder. The software backend never
// reads back, so only the call is counted.
func (b *Backend) DiscardContents(render.Handle) {
	b.stats.Discards++
}

// RequestDepthTexture implements render.DepthRequester.
func (b *Backend) RequestDepthTexture() {
	b.depthRequested = true
}

// DepthRequested reports whether a scene depth texture was requested.
func (b *Backend) DepthRequested() bool {
	return b.depthRequested
}

// Stats returns buffer counters.
func (b *Backend) Stats() Stats {
	s := b.stats
	s.Live = len(b.buffers)
	s.Pooled = b.pool.size()
	s.BytesInUse = b.used
	return s
}

// Display returns a copy of the display framebuffer.
func (b *Backend) Display() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := b.display.at(x, y).Clamp()
			img.Set(x, y, color.NRGBA{
				R: to8(c.R),
				G: to8(c.G),
				B: to8(c.B),
				A: to8(c.A),
			})
		}
	}
	return img
}

// Close drops every buffer and pooled surface and stops the workers.
func (b *Backend) Close() {
	if b.workers != nil {
		b.workers.Close()
	}
	clear(b.buffers)
	b.pool.drain()
	b.used = 0
	b.targets = nil
}

// lookup resolves a handle; Display resolves to the display surface.
func (b *Backend) lookup(h render.Handle) (*surface, error) {
	if h == render.Display {
		return b.display, nil
	}
	buf, ok := b.buffers[h]
	if !ok {
		return nil, fmt.Errorf("%w: %v", render.ErrUnknownHandle, h)
	}
	return buf.surf, nil
}

func to8(v float32) uint8 {
	return uint8(v*0xff + 0.5)
}

var (
	_ render.Backend        = (*Backend)(nil)
	_ render.Discarder      = (*Backend)(nil)
	_ render.DepthRequester = (*Backend)(nil)
)
