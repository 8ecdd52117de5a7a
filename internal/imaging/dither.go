package imaging

// Error diffusion weights, in sixteenths, for the not-yet-visited neighbors.
const (
	diffuseRight      = 7
	diffuseBelowLeft  = 3
	diffuseBelow      = 5
	diffuseBelowRight = 1
	diffuseDivisor    = 16

	ditherThreshold = 128
)

// Dither produces a pure black-and-white version of src by Floyd-Steinberg error
// diffusion and registers it as dst.
//
// # Algorithm
//
//  1. Compute the luma greyscale of src into a private int buffer. The buffer is
//     never registered and never shared.
//  2. Scan the buffer in raster order (top-to-bottom, left-to-right). Each value
//     becomes 0 if below 128, otherwise 255; that is the output pixel.
//  3. The quantization error (value - output) is pushed into the neighbors that
//     have not been visited yet, using integer arithmetic truncated toward zero:
//     right +7/16, below-left +3/16, below +5/16, below-right +1/16. Neighbors
//     outside the image are skipped.
//
// Later pixels read values already adjusted by earlier ones, so the scan is
// strictly sequential.
func Dither(reg *Registry, src, dst string) error {
	g, err := reg.Get(src)
	if err != nil {
		return err
	}
	reg.Put(dst, dither(g))
	return nil
}

func dither(g *Grid) *Grid {
	work := make([]int, len(g.Pix))
	for i, p := range g.Pix {
		work[i] = int(luma(p))
	}

	out := newGridLike(g)
	for i, v := range diffuse(work, g.Width, g.Height) {
		out.Pix[i] = Grey(v)
	}
	return out
}

// diffuse thresholds work in raster order, spreading each pixel's error into its
// unvisited neighbors. work is modified in place; values may leave [0,255] while
// errors accumulate since they are only ever thresholded.
func diffuse(work []int, w, h int) []uint8 {
	out := make([]uint8, len(work))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			old := work[i]
			var quantized int
			if old >= ditherThreshold {
				quantized = MaxChannel
			}
			out[i] = uint8(quantized)

			e := old - quantized
			if x < w-1 {
				work[i+1] += e * diffuseRight / diffuseDivisor
			}
			if y < h-1 {
				if x > 0 {
					work[i+w-1] += e * diffuseBelowLeft / diffuseDivisor
				}
				work[i+w] += e * diffuseBelow / diffuseDivisor
				if x < w-1 {
					work[i+w+1] += e * diffuseBelowRight / diffuseDivisor
				}
			}
		}
	}
	return out
}
