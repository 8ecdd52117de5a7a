package imaging

import "fmt"

// RGBSplit computes one grey value per pixel of src with SplitWeights and
// registers three grids: dstRed carries it in the red channel, dstGreen in the
// green channel and dstBlue in the blue channel, with the other channels zero.
//
// All three destinations are installed together.
func RGBSplit(reg *Registry, src, dstRed, dstGreen, dstBlue string) error {
	g, err := reg.Get(src)
	if err != nil {
		return err
	}

	red, green, blue := newGridLike(g), newGridLike(g), newGridLike(g)
	for i, p := range g.Pix {
		v := clampChannel(SplitWeights.apply(p.R, p.G, p.B))
		red.Pix[i] = RGB{R: v}
		green.Pix[i] = RGB{G: v}
		blue.Pix[i] = RGB{B: v}
	}

	reg.putAll(map[string]*Grid{
		dstRed:   red,
		dstGreen: green,
		dstBlue:  blue,
	})
	return nil
}

// RGBCombine builds dst from the red channel of redSrc, the green channel of
// greenSrc and the blue channel of blueSrc.
//
// Because RGBSplit fills a single channel per output, combining its three outputs
// yields a grey image, not the original.
//
// # Errors
//
//   - ErrImageNotFound if any source is not registered.
//   - ErrDimensionMismatch if the sources differ in width or height. Nothing is
//     registered in that case.
func RGBCombine(reg *Registry, dst, redSrc, greenSrc, blueSrc string) error {
	r, err := reg.Get(redSrc)
	if err != nil {
		return err
	}
	g, err := reg.Get(greenSrc)
	if err != nil {
		return err
	}
	b, err := reg.Get(blueSrc)
	if err != nil {
		return err
	}
	if !r.SameSize(g) || !g.SameSize(b) {
		return fmt.Errorf("%w: red %dx%d, green %dx%d, blue %dx%d", ErrDimensionMismatch,
			r.Width, r.Height, g.Width, g.Height, b.Width, b.Height)
	}

	out := newGridLike(r)
	for i := range out.Pix {
		out.Pix[i] = RGB{R: r.Pix[i].R, G: g.Pix[i].G, B: b.Pix[i].B}
	}
	reg.Put(dst, out)
	return nil
}
