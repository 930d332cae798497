package backend

import (
	"errors"

	"github.com/gogpu/postfx/render"
)

// ErrBackendNotAvailable is returned when a requested backend is not available.
var ErrBackendNotAvailable = errors.New("backend: not available")

// Backend name constants.
const (
	// NameSoftware is the name of the CPU backend in backend/software.
	NameSoftware = "software"
)

// Factory creates a backend with a display of the given size.
type Factory func(width, height int) render.Backend
