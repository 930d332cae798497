package postfx

import (
	"github.com/gogpu/postfx/shader"
)

// Mode is the composition performed by one frame.
type Mode int

const (
	// ModeDisabled renders the scene straight to the display.
	ModeDisabled Mode = iota

	// ModeGrading renders into one main buffer and grades it with the LUT.
	ModeGrading

	// ModeBloom renders main and bloom source in one multi-target pass and
	// adds the filtered bloom over main.
	ModeBloom

	// ModeCombined adds the filtered bloom, then grades the sum.
	ModeCombined
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeDisabled:
		return "Disabled"
	case ModeGrading:
		return "Grading"
	case ModeBloom:
		return "Bloom"
	case ModeCombined:
		return "Combined"
	default:
		return "Unknown"
	}
}

// SelectMode chooses the frame mode from the enable flags.
//
//	bloom  grading  mode
//	no     yes      ModeGrading
//	yes    no       ModeBloom
//	yes    yes      ModeCombined
//	no     no       ModeDisabled
func SelectMode(bloom, grading bool) Mode {
	switch {
	case bloom && grading:
		return ModeCombined
	case bloom:
		return ModeBloom
	case grading:
		return ModeGrading
	default:
		return ModeDisabled
	}
}

// HasBloom reports whether the mode runs the bloom filter.
func (m Mode) HasBloom() bool {
	return m == ModeBloom || m == ModeCombined
}

// HasGrading reports whether the mode samples the LUT.
func (m Mode) HasGrading() bool {
	return m == ModeGrading || m == ModeCombined
}

// BufferCount returns how many frame buffers the mode allocates before the
// scene renders.
func (m Mode) BufferCount() int {
	switch {
	case m.HasBloom():
		return 2
	case m == ModeGrading:
		return 1
	default:
		return 0
	}
}

// CompositePass returns the shader pass of the final composite, or false for
// ModeDisabled.
func (m Mode) CompositePass() (int, bool) {
	switch m {
	case ModeGrading:
		return shader.PassGrading, true
	case ModeBloom:
		return shader.PassBloom, true
	case ModeCombined:
		return shader.PassGradingBloom, true
	default:
		return 0, false
	}
}
