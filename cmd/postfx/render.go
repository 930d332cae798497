package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/gogpu/postfx"
	"github.com/gogpu/postfx/backend"
	"github.com/gogpu/postfx/render"

	_ "github.com/gogpu/postfx/backend/software"
)

// sceneBackend is a backend that can stand in for the host scene render and
// expose its display.
type sceneBackend interface {
	render.Backend
	DrawScene(main, bloom image.Image) error
	Display() *image.RGBA
	Close()
}

type renderOptions struct {
	scene     string
	bloom     string
	lut       string
	config    string
	output    string
	backend   string
	threshold float64
	frames    int
	breath    float64
	fps       float64
	verbose   bool
}

func parseRenderFlags(args []string, stderr io.Writer) (renderOptions, error) {
	var o renderOptions
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.scene, "scene", "", "scene image (required)")
	fs.StringVar(&o.bloom, "bloom", "", "bloom mask image; defaults to scene luminance above -threshold")
	fs.StringVar(&o.lut, "lut", "", "LUT strip image; enables color grading")
	fs.StringVar(&o.config, "config", "", "YAML pipeline config")
	fs.StringVar(&o.output, "o", "out.png", "output PNG")
	fs.StringVar(&o.backend, "backend", backend.NameSoftware, "render backend")
	fs.Float64Var(&o.threshold, "threshold", 0.8, "luminance threshold of the derived bloom mask")
	fs.IntVar(&o.frames, "frames", 1, "number of frames to render")
	fs.Float64Var(&o.breath, "breath", 0, "bloom breathing speed in radians per second; 0 disables")
	fs.Float64Var(&o.fps, "fps", 30, "frame rate used to time breathing")
	fs.BoolVar(&o.verbose, "v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.scene == "" {
		return o, errors.New("render: -scene is required")
	}
	if o.frames < 1 {
		return o, fmt.Errorf("render: -frames %d must be positive", o.frames)
	}
	if o.fps <= 0 {
		return o, fmt.Errorf("render: -fps %g must be positive", o.fps)
	}
	return o, nil
}

func runRender(args []string, stdout, stderr io.Writer) error {
	o, err := parseRenderFlags(args, stderr)
	if err != nil {
		return err
	}
	enableLogging(stderr, o.verbose)

	cfg, err := loadConfig(o.config)
	if err != nil {
		return err
	}

	scene, err := loadImage(o.scene)
	if err != nil {
		return err
	}
	var mask image.Image
	if o.bloom != "" {
		if mask, err = loadImage(o.bloom); err != nil {
			return err
		}
	} else {
		mask = luminanceMask(scene, o.threshold)
	}

	var strip image.Image
	if o.lut != "" {
		if strip, err = loadImage(o.lut); err != nil {
			return err
		}
		cfg.EnableColorGrading = true
	}

	size := scene.Bounds().Size()
	rb, err := backend.Get(o.backend, size.X, size.Y)
	if err != nil {
		return err
	}
	b, ok := rb.(sceneBackend)
	if !ok {
		return fmt.Errorf("render: backend %q cannot draw image scenes", o.backend)
	}
	defer b.Close()

	p, err := postfx.New(b, postfx.WithConfig(cfg))
	if err != nil {
		return err
	}
	defer p.Close()
	if !p.Supported() {
		return fmt.Errorf("render: %w on backend %q", postfx.ErrUnsupported, o.backend)
	}
	if strip != nil {
		if err := p.SetLUT(strip); err != nil {
			return err
		}
	}

	breath := postfx.Breath{Speed: o.breath}
	for i := 0; i < o.frames; i++ {
		frameMask := mask
		if o.breath != 0 {
			t := time.Duration(float64(i) / o.fps * float64(time.Second))
			frameMask = scaleMask(mask, breath.Strength(t))
		}

		if err := renderFrame(p, b, scene, frameMask); err != nil {
			return fmt.Errorf("render: frame %d: %w", i, err)
		}

		path := framePath(o.output, i, o.frames)
		if err := savePNG(path, b.Display()); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "wrote %s (%dx%d, %s)\n", path, size.X, size.Y, p.Stats().LastMode)
	}
	return nil
}

// renderFrame runs both hooks around the scene draw. A frame that fell back
// to the unmodified scene still produced a displayable image, so only hook
// errors that left nothing on the display are returned.
func renderFrame(p *postfx.Pipeline, b sceneBackend, scene, mask image.Image) error {
	if err := p.BeforeSceneRender(); err != nil {
		if !errors.Is(err, postfx.ErrResourceExhausted) {
			return err
		}
	}
	if err := b.DrawScene(scene, mask); err != nil {
		return err
	}
	if err := p.AfterSceneRender(); err != nil && !errors.Is(err, postfx.ErrResourceExhausted) {
		return err
	}
	return nil
}
