package imaging

// HorizontalFlip mirrors src left-to-right and registers the result as dst.
func HorizontalFlip(reg *Registry, src, dst string) error {
	g, err := reg.Get(src)
	if err != nil {
		return err
	}
	reg.Put(dst, flipHorizontal(g))
	return nil
}

// VerticalFlip mirrors src top-to-bottom and registers the result as dst.
func VerticalFlip(reg *Registry, src, dst string) error {
	g, err := reg.Get(src)
	if err != nil {
		return err
	}
	reg.Put(dst, flipVertical(g))
	return nil
}

func flipHorizontal(g *Grid) *Grid {
	out := newGridLike(g)
	for y := 0; y < g.Height; y++ {
		row := y * g.Width
		for x := 0; x < g.Width; x++ {
			out.Pix[row+x] = g.Pix[row+g.Width-1-x]
		}
	}
	return out
}

func flipVertical(g *Grid) *Grid {
	out := newGridLike(g)
	for y := 0; y < g.Height; y++ {
		copy(out.Pix[y*g.Width:(y+1)*g.Width], g.Pix[(g.Height-1-y)*g.Width:(g.Height-y)*g.Width])
	}
	return out
}
