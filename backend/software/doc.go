// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package software provides a CPU implementation of render.Backend.
//
// Buffers are planes of float32 RGBA texels. The dual-filter passes and the
// composite passes of the bloom program are emulated with bilinear,
// clamp-to-edge sampling, so the output closely follows what a GPU backend
// running the WGSL sources of package shader produces.
//
// The backend registers itself with package backend under the name
// "software":
//
//	import _ "github.com/gogpu/postfx/backend/software"
//
//	b, err := backend.Get(backend.NameSoftware, 1280, 720)
//
// A memory budget bounds the bytes held by live buffers. Acquisitions beyond
// it fail with ErrBudgetExceeded, which matches render.ErrResourceExhausted.
package software
