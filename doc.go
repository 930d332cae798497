// Package postfx provides a per-frame post-processing pipeline that combines
// dual-filter bloom with 3D LUT color grading.
//
// # Overview
//
// A Pipeline sits around the host's scene render. Before the scene renders it
// allocates the frame buffers for the current mode and binds them as render
// targets, so the scene is drawn exactly once. After the scene renders it
// filters the bloom source through a progressive downsample/upsample mip
// chain, grades the result with a lookup table and writes the final image to
// the display.
//
// # Quick Start
//
//	b := software.New(1280, 720)
//	p, err := postfx.New(b, postfx.WithConfig(postfx.Config{
//	    EnableBloom:         true,
//	    EnableColorGrading:  true,
//	    BloomExtend:         4,
//	    BloomColor:          render.White,
//	    GlobalBloomStrength: 1.5,
//	}))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := p.SetLUT(strip); err != nil {
//	    log.Printf("keeping identity grading: %v", err)
//	}
//
//	for frame := range frames {
//	    if err := p.BeforeSceneRender(); err != nil {
//	        log.Printf("frame skipped: %v", err)
//	    }
//	    drawScene(frame)
//	    if err := p.AfterSceneRender(); err != nil {
//	        log.Printf("frame fell back: %v", err)
//	    }
//	}
//
// # Modes
//
// The enable flags of Config select one of four exclusive modes, see
// SelectMode. Bloom modes render into a main buffer and a single-channel
// bloom source through one multiple-render-target bind.
//
// # Lookup Tables
//
// LUTs are supplied as 2D strips of dim tiles of dim×dim pixels laid out
// horizontally, so that height == floor(sqrt(width)). See package lut.
//
// # Backends
//
// Rendering goes through the narrow render.Backend interface. Package
// backend/software implements it on the CPU; hosts with a GPU engine adapt
// their render-texture and blit APIs to it.
package postfx

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
