package postfx

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/postfx/internal/bloom"
	"github.com/gogpu/postfx/lut"
	"github.com/gogpu/postfx/render"
	"github.com/gogpu/postfx/shader"
)

// Depth bits of the main frame buffer.
const mainDepthBits = 16

// FrameStats counts frames processed by a Pipeline.
type FrameStats struct {
	// Frames is the number of BeforeSceneRender calls while active.
	Frames int

	// Composited frames ended with a composite pass.
	Composited int

	// PassThrough frames ran in ModeDisabled.
	PassThrough int

	// Failed frames were aborted and fell back to the unmodified scene.
	Failed int

	// LastMode is the mode of the most recent frame.
	LastMode Mode

	// BloomLevels is the number of mip levels of the most recent bloom pass.
	BloomLevels int
}

// frameBuffers holds the buffers of the frame in flight.
type frameBuffers struct {
	mode    Mode
	config  Config
	aborted bool

	main      render.Handle
	mainDesc  render.BufferDescriptor
	bloom     render.Handle
	bloomDesc render.BufferDescriptor
}

// Pipeline is a per-frame post-processing pipeline combining dual-filter
// bloom and 3D LUT color grading.
//
// The host calls BeforeSceneRender before rendering its scene and
// AfterSceneRender after it, exactly once per frame, in that order. A
// Pipeline is not safe for concurrent use.
type Pipeline struct {
	backend    render.Backend
	engine     *bloom.Engine
	luts       *lut.Manager
	config     Config
	needsDepth bool

	supported bool
	enabled   bool
	frame     *frameBuffers
	stats     FrameStats
}

// New creates a pipeline rendering through b and runs the capability gate.
//
// A platform lacking a capability is not an error: the pipeline is created
// disabled, every hook is a no-op and Supported reports false.
func New(b render.Backend, opts ...Option) (*Pipeline, error) {
	if b == nil {
		return nil, ErrNilBackend
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.config.Validate(); err != nil {
		return nil, err
	}
	if o.luts == nil {
		o.luts = lut.NewManager()
	}

	p := &Pipeline{
		backend:    b,
		engine:     bloom.NewEngine(b),
		luts:       o.luts,
		config:     o.config,
		needsDepth: o.needsDepth,
	}
	attachLogger(p)
	if err := p.Enable(); err != nil {
		Logger().Warn("postfx: pipeline disabled", "error", err)
	}
	return p, nil
}

// Enable re-runs the capability gate and activates the pipeline when it
// passes. It returns an error wrapping ErrUnsupported otherwise.
func (p *Pipeline) Enable() error {
	p.mustBeIdle("Enable")
	s := CheckSupport(p.backend, p.needsDepth)
	p.supported = s.Supported
	p.enabled = s.Supported
	if err := s.Err(); err != nil {
		return err
	}
	Logger().Info("postfx: pipeline enabled", "mode", p.config.Mode().String())
	return nil
}

// Disable turns every hook into a no-op until Enable is called.
func (p *Pipeline) Disable() {
	p.mustBeIdle("Disable")
	p.enabled = false
}

// Supported reports whether the last capability check passed.
func (p *Pipeline) Supported() bool { return p.supported }

// Enabled reports whether the hooks are active.
func (p *Pipeline) Enabled() bool { return p.enabled && p.supported }

// Config returns the configuration used for the next frame.
func (p *Pipeline) Config() Config { return p.config }

// SetConfig replaces the configuration from the next frame on. An invalid
// config is rejected and the current one kept.
func (p *Pipeline) SetConfig(c Config) error {
	if err := c.Validate(); err != nil {
		return err
	}
	p.config = c
	return nil
}

// Stats returns the frame counters.
func (p *Pipeline) Stats() FrameStats { return p.stats }

// LUTs returns the LUT manager of the pipeline.
func (p *Pipeline) LUTs() *lut.Manager { return p.luts }

// SetLUT converts a strip image into the active lookup table. On failure the
// previous table stays active. It works even when the pipeline is
// unsupported, since the table is host-owned state.
func (p *Pipeline) SetLUT(img image.Image) error {
	p.mustBeIdle("SetLUT")
	return p.luts.Convert(img)
}

// BuildIdentityLUT installs an identity lookup table.
func (p *Pipeline) BuildIdentityLUT() {
	p.mustBeIdle("BuildIdentityLUT")
	p.luts.BuildIdentity()
}

// LUTDimension returns the edge length of the active table, or 0.
func (p *Pipeline) LUTDimension() int { return p.luts.Dim() }

// Close disables the pipeline and destroys its lookup table. A frame in
// flight is released first. The backend stops receiving SetLogger updates.
func (p *Pipeline) Close() {
	detachLogger(p)
	if p.frame != nil {
		p.releaseFrame(p.frame)
		p.frame = nil
	}
	p.enabled = false
	p.luts.Reset()
}

// BeforeSceneRender allocates the frame buffers for the current mode, clears
// them and binds them as the scene's render targets.
//
// When allocation fails, everything acquired so far is released, the
// display is bound so the scene renders unmodified, and an error wrapping
// ErrResourceExhausted is returned. AfterSceneRender is then a no-op for the
// frame.
//
// It panics with ErrFrameOrder when the previous frame was not finished.
func (p *Pipeline) BeforeSceneRender() error {
	if !p.Enabled() {
		return nil
	}
	if p.frame != nil {
		panic(fmt.Errorf("%w: BeforeSceneRender called twice", ErrFrameOrder))
	}

	f := &frameBuffers{config: p.config, mode: p.config.Mode()}
	p.frame = f
	p.stats.Frames++
	p.stats.LastMode = f.mode

	if f.mode == ModeDisabled {
		return nil
	}

	if err := p.allocate(f); err != nil {
		p.abort(f, err)
		return fmt.Errorf("postfx: frame %d: %w", p.stats.Frames, err)
	}
	return nil
}

// allocate acquires, clears and binds the buffers of f.
func (p *Pipeline) allocate(f *frameBuffers) error {
	width, height := p.backend.DisplaySize()

	f.mainDesc = render.BufferDescriptor{
		Width:     width,
		Height:    height,
		Format:    render.FullColor,
		DepthBits: mainDepthBits,
	}
	main, err := p.backend.AcquireBuffer(f.mainDesc)
	if err != nil {
		return fmt.Errorf("acquire main buffer: %w", err)
	}
	f.main = main
	if err := p.backend.Clear(main, render.Transparent); err != nil {
		return fmt.Errorf("clear main buffer: %w", err)
	}
	targets := []render.Handle{main}

	if f.mode.HasBloom() {
		f.bloomDesc = render.BufferDescriptor{
			Width:  width,
			Height: height,
			Format: render.SingleChannel,
		}
		h, err := p.backend.AcquireBuffer(f.bloomDesc)
		if err != nil {
			return fmt.Errorf("acquire bloom buffer: %w", err)
		}
		f.bloom = h
		if err := p.backend.Clear(h, render.Transparent); err != nil {
			return fmt.Errorf("clear bloom buffer: %w", err)
		}
		targets = append(targets, h)
	}

	if err := p.backend.BindRenderTargets(targets, main); err != nil {
		return fmt.Errorf("bind targets: %w", err)
	}

	Logger().Debug("postfx: frame buffers bound",
		"mode", f.mode.String(),
		"size", f.mainDesc.String(),
		"targets", len(targets))
	return nil
}

// abort releases the buffers of a frame that failed before the scene render
// and rebinds the display.
func (p *Pipeline) abort(f *frameBuffers, cause error) {
	p.releaseFrame(f)
	f.aborted = true
	p.stats.Failed++
	if err := p.backend.BindRenderTargets(nil, render.Display); err != nil {
		Logger().Error("postfx: rebind display", "error", err)
	}
	Logger().Error("postfx: frame aborted before scene render", "error", cause)
}

// AfterSceneRender restores the display target, filters the bloom source,
// composites the frame onto the display and releases every frame buffer.
//
// When the bloom filter or composite fails, every buffer is released, the
// unmodified main buffer is copied to the display and the error is returned.
//
// It panics with ErrFrameOrder when BeforeSceneRender was not called for the
// frame.
func (p *Pipeline) AfterSceneRender() error {
	if !p.Enabled() {
		return nil
	}
	f := p.frame
	if f == nil {
		panic(fmt.Errorf("%w: AfterSceneRender without BeforeSceneRender", ErrFrameOrder))
	}
	p.frame = nil

	switch {
	case f.aborted:
		return nil
	case f.mode == ModeDisabled:
		p.stats.PassThrough++
		return nil
	}

	if err := p.composite(f); err != nil {
		return p.fallback(f, err)
	}
	p.releaseFrame(f)
	p.stats.Composited++
	return nil
}

// composite runs the bloom filter and the single composite pass of f.
func (p *Pipeline) composite(f *frameBuffers) error {
	if err := p.backend.BindRenderTargets(nil, render.Display); err != nil {
		return fmt.Errorf("bind display: %w", err)
	}

	index, _ := f.mode.CompositePass()
	pass := &render.Pass{
		Program:  shader.Program,
		Index:    index,
		Uniforms: []render.Uniform{render.Texture(shader.SourceTex, f.main)},
	}
	src := f.main

	if f.mode.HasBloom() {
		filtered, stats, err := p.engine.Run(f.bloom, f.bloomDesc, f.config.BloomExtend)
		p.stats.BloomLevels = stats.Levels
		if err != nil {
			return err
		}
		src = filtered
		pass.Uniforms = append(pass.Uniforms,
			render.Color(shader.BloomColor, f.config.BloomColor),
			render.Float(shader.GlobalBloomStrength, f.config.GlobalBloomStrength))
	}

	if f.mode.HasGrading() {
		table := p.luts.Ensure()
		scale, offset := table.SamplingConstants()
		pass.Uniforms = append(pass.Uniforms,
			render.Float(shader.Scale, scale),
			render.Float(shader.Offset, offset),
			render.VolumeTexture(shader.ClutTex, table))
	}

	if err := p.backend.Blit(src, render.Display, pass); err != nil {
		return fmt.Errorf("composite %s: %w", f.mode, err)
	}
	return nil
}

// fallback copies the unmodified main buffer to the display after a failed
// composite and releases the frame.
func (p *Pipeline) fallback(f *frameBuffers, cause error) error {
	err := fmt.Errorf("postfx: frame %d: %w", p.stats.Frames, cause)
	if blitErr := p.backend.Blit(f.main, render.Display, nil); blitErr != nil {
		err = errors.Join(err, fmt.Errorf("postfx: fallback copy: %w", blitErr))
	}
	p.releaseFrame(f)
	p.stats.Failed++
	Logger().Error("postfx: frame fell back to unmodified scene", "mode", f.mode.String(), "error", err)
	return err
}

// releaseFrame releases every buffer of f. Handles are cleared so a frame is
// never released twice.
func (p *Pipeline) releaseFrame(f *frameBuffers) {
	for _, h := range []*render.Handle{&f.main, &f.bloom} {
		if *h == render.Display {
			continue
		}
		render.Discard(p.backend, *h)
		p.backend.ReleaseBuffer(*h)
		*h = render.Display
	}
}

// mustBeIdle panics when a frame is in flight.
func (p *Pipeline) mustBeIdle(op string) {
	if p.frame != nil {
		panic(fmt.Errorf("%w: %s during a frame", ErrFrameOrder, op))
	}
}
