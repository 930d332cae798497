package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/gogpu/postfx/lut"
)

func runLUT(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("lut", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dim := fs.Int("dim", lut.DefaultDim, "edge length of the cube")
	output := fs.String("o", "identity.png", "output PNG")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dim < 2 || *dim > 64 {
		return fmt.Errorf("lut: -dim %d outside [2, 64]", *dim)
	}

	if err := savePNG(*output, lut.Strip(lut.Identity(*dim))); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote %s (%dx%d identity strip)\n", *output, *dim**dim, *dim)
	return nil
}
