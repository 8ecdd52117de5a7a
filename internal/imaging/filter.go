package imaging

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/convolution"
)

// BlurKernel returns the 3x3 Gaussian-like blur kernel. Its weights sum to 1:
//
//	1/16 1/8 1/16
//	1/8  1/4 1/8
//	1/16 1/8 1/16
func BlurKernel() *convolution.Kernel {
	return &convolution.Kernel{
		Matrix: []float64{
			0.0625, 0.125, 0.0625,
			0.125, 0.25, 0.125,
			0.0625, 0.125, 0.0625,
		},
		Width:  3,
		Height: 3,
	}
}

// SharpenKernel returns the 3x3 sharpening kernel: a center weight of 2 with
// every neighbor at -1/8, so the weights sum to 1.
func SharpenKernel() *convolution.Kernel {
	return &convolution.Kernel{
		Matrix: []float64{
			-0.125, -0.125, -0.125,
			-0.125, 2.0, -0.125,
			-0.125, -0.125, -0.125,
		},
		Width:  3,
		Height: 3,
	}
}

// Blur convolves src with BlurKernel and registers the result as dst.
func Blur(reg *Registry, src, dst string) error {
	return Convolve(reg, BlurKernel(), src, dst)
}

// Sharpen convolves src with SharpenKernel and registers the result as dst.
func Sharpen(reg *Registry, src, dst string) error {
	return Convolve(reg, SharpenKernel(), src, dst)
}

// Convolve applies a square, odd-sized kernel to each channel of src independently
// and registers the result as dst.
//
// # Algorithm
//
// For every pixel (x, y) and channel c:
//
//	out = clamp(round(Σ k[u][v] · c(x+u-r, y+v-r)), 0, 255)
//
// where r is the kernel radius (side/2) and u, v run over the kernel. The sum is
// computed by bild's convolution with a bias of 0.5, which rounds half up once the
// result is truncated back to 8 bits.
//
// # Border Handling
//
// Neighbors that fall outside the image use the nearest edge pixel (bild's edge
// extension), so every output pixel sees a full neighborhood and the output has
// the same dimensions as the input.
//
// # Errors
//
//   - ErrInvalidKernel if k is nil, not square, has an even side, or its matrix
//     length does not match Width*Height.
//   - ErrImageNotFound if src is not registered.
func Convolve(reg *Registry, k *convolution.Kernel, src, dst string) error {
	if err := validateKernel(k); err != nil {
		return err
	}
	g, err := reg.Get(src)
	if err != nil {
		return err
	}
	reg.Put(dst, convolve(g, k))
	return nil
}

func validateKernel(k *convolution.Kernel) error {
	if k == nil || k.Width <= 0 || k.Height <= 0 {
		return fmt.Errorf("%w: empty kernel", ErrInvalidKernel)
	}
	if k.Width != k.Height || k.Width%2 == 0 {
		return fmt.Errorf("%w: %dx%d is not square with an odd side", ErrInvalidKernel, k.Width, k.Height)
	}
	if len(k.Matrix) != k.Width*k.Height {
		return fmt.Errorf("%w: %d weights for a %dx%d kernel", ErrInvalidKernel, len(k.Matrix), k.Width, k.Height)
	}
	return nil
}

func convolve(g *Grid, k *convolution.Kernel) *Grid {
	res := convolution.Convolve(g.ToNRGBA(), k, &convolution.Options{Bias: 0.5, KeepAlpha: true})
	return fromRGBA(res)
}

// fromRGBA copies the color channels of an opaque RGBA image into a new grid.
func fromRGBA(img *image.RGBA) *Grid {
	b := img.Bounds()
	out := &Grid{Width: b.Dx(), Height: b.Dy(), Pix: make([]RGB, b.Dx()*b.Dy())}
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			i := img.PixOffset(b.Min.X+x, b.Min.Y+y)
			out.Pix[y*out.Width+x] = RGB{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2]}
		}
	}
	return out
}
