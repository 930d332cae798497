package postfx

import (
	"errors"

	"github.com/gogpu/postfx/render"
)

// Sentinel errors. Use errors.Is to match them through wrapping.
var (
	// ErrUnsupported is returned when the platform lacks a capability the
	// pipeline needs. The pipeline stays disabled until Enable succeeds.
	ErrUnsupported = errors.New("postfx: post-processing not supported")

	// ErrFrameOrder is the panic value (wrapped) for frame hooks called out
	// of order. It is a programming error in the host frame loop.
	ErrFrameOrder = errors.New("postfx: frame hooks called out of order")

	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("postfx: invalid config")

	// ErrNilBackend is returned by New when no backend is given.
	ErrNilBackend = errors.New("postfx: nil backend")
)

// ErrResourceExhausted is render.ErrResourceExhausted, re-exported so that
// hosts need not import the render package to detect frame failures.
var ErrResourceExhausted = render.ErrResourceExhausted
