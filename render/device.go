// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Capability names queried by the pipeline.
const (
	// CapImageEffects reports support for full-screen image effects.
	CapImageEffects = "imageEffects"

	// CapDepthFormat reports support for a depth-capable buffer format.
	CapDepthFormat = "depthFormat"

	// CapTexture3D reports support for sampling 3D textures.
	CapTexture3D = "texture3D"

	// CapMultipleRenderTargets reports support for binding more than one
	// color target in a single render.
	CapMultipleRenderTargets = "multipleRenderTargets"
)

// DeviceHandle provides GPU device access from the host application.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider, so any host that
// already integrates with the gpucontext ecosystem can answer capability
// queries through ProviderCapabilities.
type DeviceHandle = gpucontext.DeviceProvider

// NullDeviceHandle is a DeviceHandle without a device. Capability queries
// against it always fail.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// Ensure NullDeviceHandle implements DeviceHandle.
var _ DeviceHandle = NullDeviceHandle{}

// ProviderCapabilities answers capability queries for a WebGPU device.
//
// WebGPU guarantees render attachments, depth24plus-stencil8, 3D textures
// and up to eight color targets on every conforming device, so every
// capability is reported as supported once a device and a presentable
// surface format exist.
type ProviderCapabilities struct {
	Provider DeviceHandle
}

// QueryCapability implements CapabilityQuerier.
func (p ProviderCapabilities) QueryCapability(name string) bool {
	if p.Provider == nil || p.Provider.Device() == nil {
		return false
	}
	if p.Provider.SurfaceFormat() == gputypes.TextureFormatUndefined {
		return false
	}
	switch name {
	case CapImageEffects, CapDepthFormat, CapTexture3D, CapMultipleRenderTargets:
		return true
	default:
		return false
	}
}

var _ CapabilityQuerier = ProviderCapabilities{}
