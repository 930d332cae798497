// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"github.com/gogpu/postfx/backend"
	"github.com/gogpu/postfx/render"
)

// init registers the software backend on package import.
func init() {
	backend.Register(backend.NameSoftware, func(width, height int) render.Backend {
		return New(width, height, WithWorkers(-1))
	})
}
