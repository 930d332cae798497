package bloom

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/postfx/internal/logging"
	"github.com/gogpu/postfx/render"
	"github.com/gogpu/postfx/shader"
)

// Extend limits: the maximum number of downsample levels per pass.
const (
	MinExtend     = 2
	MaxExtend     = 16
	DefaultExtend = 4
)

// minLevelSize is the smallest width or height a mip level may have.
const minLevelSize = 2

// ErrInvalidSource is returned when the bloom source descriptor cannot be
// filtered.
var ErrInvalidSource = errors.New("bloom: invalid source buffer")

// Stats describes one completed or aborted bloom pass.
type Stats struct {
	// Levels is the number of downsample levels below the source.
	Levels int

	// Acquired and Released count engine-owned buffers. They are equal
	// after every Run, including failed ones.
	Acquired int
	Released int

	// Sizes lists the resolution of each downsample level in order.
	Sizes []image.Point
}

// Engine runs dual-filter bloom passes on a render backend.
type Engine struct {
	backend render.Backend
}

// NewEngine creates an engine that allocates and blits through b.
func NewEngine(b render.Backend) *Engine {
	return &Engine{backend: b}
}

// ClampExtend limits n to [MinExtend, MaxExtend].
func ClampExtend(n int) int {
	if n < MinExtend {
		return MinExtend
	}
	if n > MaxExtend {
		return MaxExtend
	}
	return n
}

// Run filters the bloom source src, described by desc, through at most
// extend downsample levels and back.
//
// The result is written into src itself, which is returned; src is
// borrowed and never released by the engine. Every intermediate level is
// acquired and released within the call. On error all levels acquired so far
// are released before returning, and the content of src is undefined.
func (e *Engine) Run(src render.Handle, desc render.BufferDescriptor, extend int) (render.Handle, Stats, error) {
	var stats Stats
	if err := desc.Validate(); err != nil {
		return src, stats, fmt.Errorf("%w: %w", ErrInvalidSource, err)
	}
	if src == render.Display {
		return src, stats, fmt.Errorf("%w: display framebuffer", ErrInvalidSource)
	}

	extend = ClampExtend(extend)
	c := newChain(extend + 1)
	c.push(level{handle: src, desc: desc, borrowed: true})

	if err := e.downsample(c, extend, &stats); err != nil {
		e.unwind(c, &stats)
		return src, stats, err
	}
	if err := e.upsample(c, &stats); err != nil {
		e.unwind(c, &stats)
		return src, stats, err
	}

	logging.Logger().Debug("bloom: mip chain filtered",
		"source", desc.String(),
		"extend", extend,
		"levels", stats.Levels)

	return c.top().handle, stats, nil
}

// downsample halves the top level until extend levels exist or a dimension
// would drop below minLevelSize.
func (e *Engine) downsample(c *chain, extend int, stats *Stats) error {
	for i := 0; i < extend; i++ {
		source := c.top()
		width, height := source.desc.Width/2, source.desc.Height/2
		if width < minLevelSize || height < minLevelSize {
			break
		}

		desc := source.desc.Resized(width, height)
		dst, err := e.backend.AcquireBuffer(desc)
		if err != nil {
			return fmt.Errorf("bloom: acquire level %d (%dx%d): %w", i+1, width, height, err)
		}
		c.push(level{handle: dst, desc: desc})
		stats.Acquired++
		stats.Levels++
		stats.Sizes = append(stats.Sizes, image.Pt(width, height))

		render.Discard(e.backend, dst)

		// first step is a plain blit; filtering starts one level down
		var pass *render.Pass
		if i > 0 {
			pass = dualFilterPass(shader.PassDown, source.desc)
		}
		if err := e.backend.Blit(source.handle, dst, pass); err != nil {
			return fmt.Errorf("bloom: downsample level %d: %w", i+1, err)
		}

		render.Discard(e.backend, source.handle)
	}
	return nil
}

// upsample walks the stack back to level 0, releasing each level once it has
// been read.
func (e *Engine) upsample(c *chain, stats *Stats) error {
	for c.depth() > 1 {
		source := c.pop()
		target := c.top()

		render.Discard(e.backend, target.handle)

		var pass *render.Pass
		if c.depth() > 1 {
			pass = dualFilterPass(shader.PassUp, target.desc)
		}
		err := e.backend.Blit(source.handle, target.handle, pass)

		render.Discard(e.backend, source.handle)
		e.backend.ReleaseBuffer(source.handle)
		stats.Released++

		if err != nil {
			return fmt.Errorf("bloom: upsample into %dx%d: %w", target.desc.Width, target.desc.Height, err)
		}
	}
	return nil
}

// unwind releases every engine-owned level left on the stack.
func (e *Engine) unwind(c *chain, stats *Stats) {
	for c.depth() > 0 {
		l := c.pop()
		if l.borrowed {
			continue
		}
		e.backend.ReleaseBuffer(l.handle)
		stats.Released++
	}
}

// dualFilterPass builds a dual-filter pass with the half-texel offsets of
// desc.
func dualFilterPass(index int, desc render.BufferDescriptor) *render.Pass {
	hx, hy := desc.HalfTexel()
	return &render.Pass{
		Program: shader.Program,
		Index:   index,
		Uniforms: []render.Uniform{
			render.Float(shader.HalfPixelX, hx),
			render.Float(shader.HalfPixelY, hy),
		},
	}
}
