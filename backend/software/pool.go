// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"sync"

	"github.com/gogpu/postfx/render"
)

// pool reuses released surfaces.
//
// Surfaces are grouped by size and format so that the mip levels of one frame
// are handed back to the next. Pooled surfaces do not count against the
// memory budget.
//
// All methods are safe for concurrent use.
type pool struct {
	mu      sync.Mutex
	buckets map[poolKey][]*surface
	maxSize int // max surfaces per bucket
}

// poolKey identifies a bucket of identical surfaces.
type poolKey struct {
	width  int
	height int
	format render.ChannelFormat
}

// newPool creates a pool retaining at most maxPerBucket surfaces of each
// size and format. Zero means unlimited.
func newPool(maxPerBucket int) *pool {
	return &pool{
		buckets: make(map[poolKey][]*surface),
		maxSize: maxPerBucket,
	}
}

// get returns a cleared pooled surface, or nil when the bucket is empty.
func (p *pool) get(desc render.BufferDescriptor) *surface {
	key := poolKey{width: desc.Width, height: desc.Height, format: desc.Format}

	p.mu.Lock()
	bucket := p.buckets[key]
	if len(bucket) == 0 {
		p.mu.Unlock()
		return nil
	}
	s := bucket[len(bucket)-1]
	p.buckets[key] = bucket[:len(bucket)-1]
	p.mu.Unlock()

	clear(s.pix)
	return s
}

// put stores s for reuse. It reports false when the bucket is full and s
// was dropped.
func (p *pool) put(s *surface) bool {
	if s == nil {
		return false
	}
	key := poolKey{width: s.width, height: s.height, format: s.format}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return false
	}
	p.buckets[key] = append(bucket, s)
	return true
}

// size returns the number of pooled surfaces.
func (p *pool) size() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for _, b := range p.buckets {
		n += len(b)
	}
	return n
}

// drain drops every pooled surface.
func (p *pool) drain() {
	p.mu.Lock()
	defer p.mu.Unlock()
	clear(p.buckets)
}
