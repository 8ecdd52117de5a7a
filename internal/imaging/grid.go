package imaging

import (
	"fmt"
	"image"
	"image/color"
)

// MaxChannel is the largest value a channel can hold.
const MaxChannel = 255

// RGB is one pixel: three 8-bit channels.
type RGB struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// Grey returns a pixel with v replicated into all three channels.
func Grey(v uint8) RGB {
	return RGB{R: v, G: v, B: v}
}

// Grid is an in-memory RGB image with fixed dimensions.
//
// Pixels are stored contiguously in row-major order: the pixel at (x, y) lives at
// index y*Width+x. (0,0) is the top-left corner, X increases rightward and Y
// increases downward, the same convention used everywhere else in this package.
//
// Width and Height never change after construction. Transforms never modify a
// Grid in place; they build a fresh one.
type Grid struct {
	Width  int
	Height int
	Pix    []RGB
}

// NewGrid allocates a black grid of the given dimensions.
//
// # Errors
//
//   - Returns ErrInvalidDimensions if width or height is not positive.
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Grid{
		Width:  width,
		Height: height,
		Pix:    make([]RGB, width*height),
	}, nil
}

// newGridLike allocates a grid with the same dimensions as g.
func newGridLike(g *Grid) *Grid {
	return &Grid{
		Width:  g.Width,
		Height: g.Height,
		Pix:    make([]RGB, len(g.Pix)),
	}
}

// At returns the pixel at (x, y). It panics if the coordinates are out of range.
func (g *Grid) At(x, y int) RGB {
	return g.Pix[y*g.Width+x]
}

// Set stores p at (x, y). It panics if the coordinates are out of range.
func (g *Grid) Set(x, y int, p RGB) {
	g.Pix[y*g.Width+x] = p
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	c := newGridLike(g)
	copy(c.Pix, g.Pix)
	return c
}

// SameSize reports whether g and o have identical dimensions.
func (g *Grid) SameSize(o *Grid) bool {
	return g.Width == o.Width && g.Height == o.Height
}

// Equal reports whether g and o have identical dimensions and pixels.
func (g *Grid) Equal(o *Grid) bool {
	if !g.SameSize(o) {
		return false
	}
	for i := range g.Pix {
		if g.Pix[i] != o.Pix[i] {
			return false
		}
	}
	return true
}

// ToNRGBA converts the grid into an opaque standard library image.
func (g *Grid) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.Width, g.Height))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			p := g.At(x, y)
			img.SetNRGBA(x, y, color.NRGBA{R: p.R, G: p.G, B: p.B, A: 255})
		}
	}
	return img
}

// FromNRGBA builds a grid from a non-premultiplied image, dropping alpha.
//
// The image bounds may start anywhere; the grid is always re-based at (0,0).
func FromNRGBA(img *image.NRGBA) (*Grid, error) {
	b := img.Bounds()
	g, err := NewGrid(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := img.NRGBAAt(b.Min.X+x, b.Min.Y+y)
			g.Set(x, y, RGB{R: c.R, G: c.G, B: c.B})
		}
	}
	return g, nil
}

// clampChannel constrains an integer channel value to [0, MaxChannel].
func clampChannel(v int) uint8 {
	return uint8(clamp(v, 0, MaxChannel))
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
