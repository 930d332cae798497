package lut

import (
	"errors"
	"image"

	"github.com/gogpu/postfx/internal/logging"
)

// Manager owns the active lookup table of a pipeline.
//
// The table is replaced, never mutated: every successful build destroys the
// previous table immediately. A Manager is not safe for concurrent use; it is
// read during frame composite and written only between frames.
type Manager struct {
	table *Table
}

// NewManager returns a Manager without a table.
func NewManager() *Manager {
	return &Manager{}
}

// Current returns the active table, or nil.
func (m *Manager) Current() *Table {
	return m.table
}

// Dim returns the edge length of the active table, or 0.
func (m *Manager) Dim() int {
	return m.table.Dim()
}

// Set installs t as the active table, destroying the previous one.
func (m *Manager) Set(t *Table) {
	if m.table == t {
		return
	}
	m.table.destroy()
	m.table = t
}

// BuildIdentity installs a DefaultDim identity table and returns it.
func (m *Manager) BuildIdentity() *Table {
	t := Identity(DefaultDim)
	m.Set(t)
	logging.Logger().Debug("lut: identity table built", "dim", t.Dim())
	return t
}

// Convert builds a table from a strip image and installs it.
//
// On a dimension mismatch a warning is logged, the active table is left
// untouched and the *ValidationError is returned; callers fall back to the
// identity table or disable grading.
func (m *Manager) Convert(img image.Image) error {
	t, err := Convert(img)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidDimensions):
			logging.Logger().Warn("lut: strip image cannot be used as a 3D LUT", "error", err)
		default:
			logging.Logger().Error("lut: could not color correct with 3D LUT", "error", err)
		}
		return err
	}
	m.Set(t)
	logging.Logger().Debug("lut: table converted", "dim", t.Dim())
	return nil
}

// Ensure returns the active table, synthesizing an identity table first when
// none is installed.
func (m *Manager) Ensure() *Table {
	if m.table == nil || m.table.Destroyed() {
		return m.BuildIdentity()
	}
	return m.table
}

// SamplingConstants returns the scale and offset of the active table.
func (m *Manager) SamplingConstants() (scale, offset float32) {
	return SamplingConstants(m.Dim())
}

// Reset destroys the active table.
func (m *Manager) Reset() {
	m.Set(nil)
}
