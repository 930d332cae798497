// Command postfx runs the post-processing pipeline on image files.
//
// Usage:
//
//	postfx render -scene in.png [-bloom mask.png] [-lut strip.png] [-config cfg.yaml]
//	              [-frames n -breath speed -fps 30] -o out.png
//	postfx lut [-dim 16] -o strip.png
//
// render feeds the scene (and an optional single-channel bloom mask) through
// one frame of the pipeline on the software backend and writes the display.
// Without a mask, the bloom source is the scene luminance above -threshold.
// With -frames, the mask is modulated by a breathing strength and one image
// per frame is written.
//
// lut writes an identity LUT strip to be edited in an image editor and
// passed back with -lut.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/postfx"
)

var errUsage = errors.New("usage: postfx <render|lut> [flags]")

func main() {
	log.SetFlags(0)
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Fatal(err)
	}
}

// run dispatches a subcommand.
func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	switch args[0] {
	case "render":
		return runRender(args[1:], stdout, stderr)
	case "lut":
		return runLUT(args[1:], stdout, stderr)
	case "version":
		_, err := fmt.Fprintln(stdout, "postfx", postfx.Version)
		return err
	default:
		return fmt.Errorf("unknown command %q: %w", args[0], errUsage)
	}
}

// enableLogging routes pipeline logs to w.
func enableLogging(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	postfx.SetLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}
