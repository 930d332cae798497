package postfx

import "github.com/gogpu/postfx/lut"

// Option configures a Pipeline during creation.
//
// Example:
//
//	cfg := postfx.DefaultConfig()
//	cfg.EnableColorGrading = true
//	p, err := postfx.New(backend, postfx.WithConfig(cfg))
type Option func(*pipelineOptions)

// pipelineOptions holds optional configuration for Pipeline creation.
type pipelineOptions struct {
	config     Config
	needsDepth bool
	luts       *lut.Manager
}

// defaultOptions returns the default pipeline options.
func defaultOptions() pipelineOptions {
	return pipelineOptions{
		config:     DefaultConfig(),
		needsDepth: true,
	}
}

// WithConfig sets the initial configuration. New validates it.
func WithConfig(c Config) Option {
	return func(o *pipelineOptions) {
		o.config = c
	}
}

// WithDepth controls whether the pipeline needs a depth-capable format and
// asks the backend for a scene depth texture. Enabled by default.
func WithDepth(needsDepth bool) Option {
	return func(o *pipelineOptions) {
		o.needsDepth = needsDepth
	}
}

// WithLUTManager shares a LUT manager owned by the host, e.g. to keep one
// converted table across several pipelines. A nil manager is ignored.
func WithLUTManager(m *lut.Manager) Option {
	return func(o *pipelineOptions) {
		if m != nil {
			o.luts = m
		}
	}
}
