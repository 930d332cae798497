// Package lut builds 3D color lookup tables for color grading.
//
// A table is a cube of dim³ colors addressed by (r, g, b) cell indices and
// stored at linear offset i + j·dim + k·dim². Tables come from two places:
//
//   - [Identity] synthesizes the no-op transform
//   - [Convert] unpacks a 2D strip image of dim tiles of dim×dim pixels
//
// Tables are sampled with clamp-to-edge addressing unless another
// gputypes.AddressMode is chosen with [Table.WithAddressMode]. [SamplingConstants]
// returns the scale and offset that move a [0,1] color onto texel centres so
// the outermost cells are not blended with the border.
package lut

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/postfx/render"
)

// DefaultDim is the edge length of synthesized identity tables.
const DefaultDim = 16

// DefaultAddressMode is the wrap mode of new tables.
const DefaultAddressMode = gputypes.AddressModeClampToEdge

// Table is a 3D color lookup table. It implements render.Volume.
//
// A Table is never mutated after construction; replacing the active table
// means building a new one.
type Table struct {
	dim    int
	texels []render.RGBA
	mode   gputypes.AddressMode
}

// newTable wraps texels, which must hold exactly dim³ entries.
func newTable(dim int, texels []render.RGBA) *Table {
	return &Table{dim: dim, texels: texels, mode: DefaultAddressMode}
}

// AddressMode returns the wrap mode applied to out-of-range cells.
func (t *Table) AddressMode() gputypes.AddressMode {
	if t == nil {
		return DefaultAddressMode
	}
	return t.mode
}

// WithAddressMode returns a table sharing the entries of t that wraps
// out-of-range cells with mode. AddressModeUndefined selects the default.
func (t *Table) WithAddressMode(mode gputypes.AddressMode) *Table {
	if mode == gputypes.AddressModeUndefined {
		mode = DefaultAddressMode
	}
	return &Table{dim: t.dim, texels: t.texels, mode: mode}
}

// Identity returns the identity table of the given edge length. The entry at
// cell (i, j, k) is (i/(dim-1), j/(dim-1), k/(dim-1), 1). Dimensions below 2
// fall back to DefaultDim.
func Identity(dim int) *Table {
	if dim < 2 {
		dim = DefaultDim
	}

	texels := make([]render.RGBA, dim*dim*dim)
	oneOverDim := 1 / float32(dim-1)

	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			for k := 0; k < dim; k++ {
				texels[i+j*dim+k*dim*dim] = render.RGBA{
					R: float32(i) * oneOverDim,
					G: float32(j) * oneOverDim,
					B: float32(k) * oneOverDim,
					A: 1,
				}
			}
		}
	}
	return newTable(dim, texels)
}

// Dim returns the edge length of the cube. A destroyed table reports 0.
func (t *Table) Dim() int {
	if t == nil {
		return 0
	}
	return t.dim
}

// Len returns the number of entries, dim³.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.texels)
}

// Texel returns the entry at cell (i, j, k). Out-of-range indices are
// wrapped with the address mode of the table.
func (t *Table) Texel(i, j, k int) render.RGBA {
	if t.Len() == 0 {
		return render.Transparent
	}
	i = wrapIndex(i, t.dim, t.mode)
	j = wrapIndex(j, t.dim, t.mode)
	k = wrapIndex(k, t.dim, t.mode)
	return t.texels[i+j*t.dim+k*t.dim*t.dim]
}

// At returns the entry at a linear offset i + j·dim + k·dim².
func (t *Table) At(offset int) render.RGBA {
	return t.texels[offset]
}

// Texels returns a copy of all entries in linear order.
func (t *Table) Texels() []render.RGBA {
	if t == nil {
		return nil
	}
	return append([]render.RGBA(nil), t.texels...)
}

// SamplingConstants returns the scale and offset for this table.
func (t *Table) SamplingConstants() (scale, offset float32) {
	return SamplingConstants(t.Dim())
}

// Apply maps c through the table using the sampling constants of the table.
func (t *Table) Apply(c render.RGBA) render.RGBA {
	scale, offset := t.SamplingConstants()
	return Sample(t, c, scale, offset)
}

// Destroyed reports whether the table was released by a Manager.
func (t *Table) Destroyed() bool {
	return t != nil && t.texels == nil
}

// destroy releases the entries. Readers still holding the table see an
// empty cube afterwards.
func (t *Table) destroy() {
	if t == nil {
		return
	}
	t.texels = nil
	t.dim = 0
}

// SamplingConstants returns scale = (dim-1)/dim and offset = 1/(2·dim), which
// remap a [0,1] query onto [offset, offset+scale] so that lookups land on
// texel centres. Non-positive dimensions return (0, 0).
func SamplingConstants(dim int) (scale, offset float32) {
	if dim <= 0 {
		return 0, 0
	}
	d := float32(dim)
	return (d - 1) / d, 1 / (2 * d)
}

// wrapIndex maps a cell index into [0, dim) the way a sampler with the given
// address mode does.
func wrapIndex(i, dim int, mode gputypes.AddressMode) int {
	switch mode {
	case gputypes.AddressModeRepeat:
		return mod(i, dim)
	case gputypes.AddressModeMirrorRepeat:
		m := mod(i, 2*dim)
		if m >= dim {
			return 2*dim - 1 - m
		}
		return m
	default:
		if i < 0 {
			return 0
		}
		if i >= dim {
			return dim - 1
		}
		return i
	}
}

func mod(i, n int) int {
	return ((i % n) + n) % n
}

var _ render.Volume = (*Table)(nil)
