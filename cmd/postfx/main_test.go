package main

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/postfx"
	"github.com/gogpu/postfx/render"
)

func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, savePNG(path, img))
	return path
}

func solid(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestRunUsage(t *testing.T) {
	var out, errOut bytes.Buffer
	assert.ErrorIs(t, run(nil, &out, &errOut), errUsage)
	assert.ErrorIs(t, run([]string{"explode"}, &out, &errOut), errUsage)

	require.NoError(t, run([]string{"version"}, &out, &errOut))
	assert.Contains(t, out.String(), postfx.Version)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, postfx.DefaultConfig(), cfg)

	path := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
enable_color_grading: true
bloom_extend: 6
bloom_color: {r: 1, g: 0.5, b: 0.25, a: 1}
`), 0o600))

	cfg, err = loadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.EnableBloom, "unset keys keep their defaults")
	assert.True(t, cfg.EnableColorGrading)
	assert.Equal(t, 6, cfg.BloomExtend)
	assert.Equal(t, render.RGBA{R: 1, G: 0.5, B: 0.25, A: 1}, cfg.BloomColor)
	assert.Equal(t, float32(1.5), cfg.GlobalBloomStrength)
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := loadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("bloom_extend: [1, 2"), 0o600))
	_, err = loadConfig(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("bloom_extend: 30\n"), 0o600))
	_, err = loadConfig(invalid)
	assert.ErrorIs(t, err, postfx.ErrInvalidConfig)
}

func TestFramePath(t *testing.T) {
	assert.Equal(t, "out.png", framePath("out.png", 0, 1))
	assert.Equal(t, "out_000.png", framePath("out.png", 0, 3))
	assert.Equal(t, filepath.Join("dir", "a_012.png"), framePath(filepath.Join("dir", "a.png"), 12, 20))
}

func TestLuminanceMask(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.White)
	img.Set(1, 0, color.NRGBA{R: 100, G: 100, B: 100, A: 255})

	mask := luminanceMask(img, 0.8)
	assert.Equal(t, uint8(255), mask.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(0), mask.GrayAt(1, 0).Y)
}

func TestScaleMask(t *testing.T) {
	mask := image.NewGray(image.Rect(0, 0, 1, 1))
	mask.SetGray(0, 0, color.Gray{Y: 200})
	assert.Equal(t, uint8(100), scaleMask(mask, 0.5).GrayAt(0, 0).Y)
	assert.Equal(t, uint8(0), scaleMask(mask, 0).GrayAt(0, 0).Y)
}

func TestRenderIdentityGrading(t *testing.T) {
	dir := t.TempDir()
	scene := solid(16, 16, color.NRGBA{R: 40, G: 120, B: 200, A: 255})
	scenePath := writePNG(t, dir, "scene.png", scene)

	var stripOut, lutOut bytes.Buffer
	stripPath := filepath.Join(dir, "strip.png")
	require.NoError(t, run([]string{"lut", "-dim", "8", "-o", stripPath}, &stripOut, &lutOut))

	cfgPath := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("enable_bloom: false\n"), 0o600))

	outPath := filepath.Join(dir, "out.png")
	var out, errOut bytes.Buffer
	err := run([]string{"render",
		"-scene", scenePath,
		"-lut", stripPath,
		"-config", cfgPath,
		"-o", outPath,
	}, &out, &errOut)
	require.NoError(t, err, errOut.String())
	assert.Contains(t, out.String(), "Grading")

	got, err := loadImage(outPath)
	require.NoError(t, err)
	c := color.NRGBAModel.Convert(got.At(8, 8)).(color.NRGBA)
	assert.InDelta(t, 40, int(c.R), 1)
	assert.InDelta(t, 120, int(c.G), 1)
	assert.InDelta(t, 200, int(c.B), 1)
}

func TestRenderBloomFrames(t *testing.T) {
	dir := t.TempDir()
	scene := solid(32, 32, color.NRGBA{A: 255})
	mask := image.NewGray(image.Rect(0, 0, 32, 32))
	for y := 12; y < 20; y++ {
		for x := 12; x < 20; x++ {
			mask.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	scenePath := writePNG(t, dir, "scene.png", scene)
	maskPath := writePNG(t, dir, "mask.png", mask)

	outPath := filepath.Join(dir, "glow.png")
	var out, errOut bytes.Buffer
	err := run([]string{"render",
		"-scene", scenePath,
		"-bloom", maskPath,
		"-frames", "3",
		"-breath", "2",
		"-o", outPath,
	}, &out, &errOut)
	require.NoError(t, err, errOut.String())

	for i := 0; i < 3; i++ {
		_, err := os.Stat(framePath(outPath, i, 3))
		assert.NoError(t, err, "frame %d", i)
	}

	// frame 0 breathes at half strength and still glows at the centre
	first, err := loadImage(framePath(outPath, 0, 3))
	require.NoError(t, err)
	c := color.NRGBAModel.Convert(first.At(16, 16)).(color.NRGBA)
	assert.Greater(t, c.R, uint8(0))
}

func TestRenderFlagErrors(t *testing.T) {
	var out, errOut bytes.Buffer
	assert.Error(t, run([]string{"render"}, &out, &errOut), "missing -scene")
	assert.Error(t, run([]string{"render", "-scene", "x.png", "-frames", "0"}, &out, &errOut))
	assert.Error(t, run([]string{"render", "-scene", filepath.Join(t.TempDir(), "none.png")}, &out, &errOut))
	assert.Error(t, run([]string{"lut", "-dim", "1"}, &out, &errOut))
}

func TestRenderRejectsBadStrip(t *testing.T) {
	dir := t.TempDir()
	scenePath := writePNG(t, dir, "scene.png", solid(8, 8, color.White))
	stripPath := writePNG(t, dir, "strip.png", solid(300, 16, color.White))

	var out, errOut bytes.Buffer
	err := run([]string{"render", "-scene", scenePath, "-lut", stripPath, "-o", filepath.Join(dir, "o.png")}, &out, &errOut)
	assert.Error(t, err)
}
