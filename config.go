package postfx

import (
	"fmt"

	"github.com/gogpu/postfx/internal/bloom"
	"github.com/gogpu/postfx/render"
)

// Config holds the per-frame settings of a Pipeline.
//
// A Config is latched by BeforeSceneRender; changes made with
// Pipeline.SetConfig take effect on the next frame.
type Config struct {
	// EnableBloom turns on the dual-filter bloom.
	EnableBloom bool `yaml:"enable_bloom"`

	// EnableColorGrading turns on the 3D LUT color transform.
	EnableColorGrading bool `yaml:"enable_color_grading"`

	// BloomExtend is the maximum number of downsample levels, in [2, 16].
	BloomExtend int `yaml:"bloom_extend"`

	// BloomColor tints the filtered bloom before it is added.
	BloomColor render.RGBA `yaml:"bloom_color"`

	// GlobalBloomStrength scales the filtered bloom. Must not be negative.
	GlobalBloomStrength float32 `yaml:"global_bloom_strength"`
}

// DefaultConfig returns bloom enabled, grading disabled, four levels of
// white bloom at strength 1.5.
func DefaultConfig() Config {
	return Config{
		EnableBloom:         true,
		EnableColorGrading:  false,
		BloomExtend:         bloom.DefaultExtend,
		BloomColor:          render.White,
		GlobalBloomStrength: 1.5,
	}
}

// Validate reports whether c can drive a frame.
func (c Config) Validate() error {
	if c.BloomExtend < bloom.MinExtend || c.BloomExtend > bloom.MaxExtend {
		return fmt.Errorf("%w: bloom extend %d outside [%d, %d]",
			ErrInvalidConfig, c.BloomExtend, bloom.MinExtend, bloom.MaxExtend)
	}
	if c.GlobalBloomStrength < 0 {
		return fmt.Errorf("%w: negative bloom strength %g", ErrInvalidConfig, c.GlobalBloomStrength)
	}
	return nil
}

// Mode returns the frame mode selected by the enable flags.
func (c Config) Mode() Mode {
	return SelectMode(c.EnableBloom, c.EnableColorGrading)
}
