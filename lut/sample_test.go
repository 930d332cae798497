package lut

import (
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/postfx/render"
)

func TestIdentitySampleIsIdentity(t *testing.T) {
	for _, dim := range []int{2, 16, 33} {
		tbl := Identity(dim)
		const steps = 20
		for r := 0; r <= steps; r++ {
			for g := 0; g <= steps; g++ {
				for b := 0; b <= steps; b++ {
					c := render.RGBA{
						R: float32(r) / steps,
						G: float32(g) / steps,
						B: float32(b) / steps,
						A: 0.5,
					}
					got := tbl.Apply(c)
					if !colorApproxEqual(got, c, 1e-5) {
						t.Fatalf("dim %d: Apply(%v) = %v", dim, c, got)
					}
				}
			}
		}
	}
}

func TestSampleClampsInput(t *testing.T) {
	tbl := Identity(16)
	got := tbl.Apply(render.RGBA{R: -1, G: 2, B: 0.5, A: 1})
	want := render.RGBA{R: 0, G: 1, B: 0.5, A: 1}
	if !colorApproxEqual(got, want, 1e-5) {
		t.Errorf("Apply(out of range) = %v, want %v", got, want)
	}
}

// invert is a volume mapping c to 1-c.
type invert struct{ dim int }

func (v invert) Dim() int { return v.dim }
func (v invert) Texel(i, j, k int) render.RGBA {
	last := float32(v.dim - 1)
	return render.RGBA{R: 1 - float32(i)/last, G: 1 - float32(j)/last, B: 1 - float32(k)/last, A: 1}
}

func TestSampleInterpolates(t *testing.T) {
	v := invert{dim: 8}
	scale, offset := SamplingConstants(v.dim)
	c := render.RGBA{R: 0.3, G: 0.6, B: 0.95, A: 1}
	got := Sample(v, c, scale, offset)
	want := render.RGBA{R: 0.7, G: 0.4, B: 0.05, A: 1}
	if !colorApproxEqual(got, want, 1e-5) {
		t.Errorf("Sample(invert, %v) = %v, want %v", c, got, want)
	}
}

func TestSampleEmptyVolume(t *testing.T) {
	c := render.RGBA{R: 0.2, G: 0.4, B: 0.6, A: 1}
	var tbl *Table
	if got := Sample(tbl, c, 0, 0); got != c {
		t.Errorf("Sample(empty) = %v, want input", got)
	}
}

func TestSampleFollowsAddressMode(t *testing.T) {
	base := Identity(4)
	in := render.RGBA{R: 1.25, A: 1}

	tests := []struct {
		mode  gputypes.AddressMode
		wantR float32
	}{
		// clamp: the input is limited to 1
		{gputypes.AddressModeClampToEdge, 1},
		// repeat: texel coordinate 3.75 blends cell 3 with cell 0
		{gputypes.AddressModeRepeat, 0.25},
		// mirror: cell 4 reflects onto cell 3
		{gputypes.AddressModeMirrorRepeat, 1},
	}
	for _, tt := range tests {
		tbl := base.WithAddressMode(tt.mode)
		got := tbl.Apply(in)
		if absf32(got.R-tt.wantR) > 1e-5 || got.G != 0 || got.B != 0 {
			t.Errorf("%v: Apply(%v) = %v, want R=%g", tt.mode, in, got, tt.wantR)
		}
	}
}

func TestSampleRepeatInRangeMatchesClamp(t *testing.T) {
	clamp := Identity(8)
	repeat := clamp.WithAddressMode(gputypes.AddressModeRepeat)
	for _, v := range []float32{0, 0.1, 0.5, 0.93} {
		c := render.RGBA{R: v, G: v / 2, B: 1 - v, A: 1}
		a, b := clamp.Apply(c), repeat.Apply(c)
		if !colorApproxEqual(a, b, 1e-5) {
			t.Errorf("Apply(%v): clamp %v, repeat %v", c, a, b)
		}
	}
}
