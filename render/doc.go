// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render defines the seam between the post-processing pipeline and
// the host rendering backend.
//
// The pipeline never owns a GPU device. It RECEIVES a [Backend] from the host
// and drives it through a small set of calls: acquire and release transient
// buffers, bind render targets, clear, blit with an optional shader pass, and
// query platform capabilities.
//
// # Core Types
//
//   - Backend: buffer allocation, target binding and blits
//   - Handle: opaque buffer identifier; [Display] is the default framebuffer
//   - BufferDescriptor: size, channel format and depth of a surface
//   - Pass: program, pass index and the uniform values for one blit
//   - Volume: a 3D lookup table bound as a uniform
//
// # Optional Interfaces
//
// Backends may additionally implement [Discarder] (drop buffer contents
// without a read-back) and [DepthRequester] (attach depth information to the
// camera output). Callers detect them with a type assertion.
//
// # Capabilities
//
// [ProviderCapabilities] answers capability queries for a host that exposes
// its GPU through [gpucontext.DeviceProvider].
//
// # Thread Safety
//
// Backends are driven from the render thread only. Implementations are not
// required to be safe for concurrent use.
package render
