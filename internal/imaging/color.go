package imaging

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Component selects the formula used by GreyscaleByComponent.
type Component string

// Supported greyscale components.
const (
	RedComponent       Component = "red-component"
	GreenComponent     Component = "green-component"
	BlueComponent      Component = "blue-component"
	ValueComponent     Component = "value-component"
	LumaComponent      Component = "luma-component"
	IntensityComponent Component = "intensity-component"
)

// Components lists every supported component in a stable order.
var Components = []Component{
	RedComponent, GreenComponent, BlueComponent,
	ValueComponent, LumaComponent, IntensityComponent,
}

// Weights is a set of per-channel multipliers for a weighted grey value.
type Weights struct {
	R, G, B float64
}

var (
	// LumaWeights are the ITU-R BT.709 weights used by the luma component.
	LumaWeights = Weights{R: 0.2126, G: 0.7152, B: 0.0722}

	// SplitWeights are the ITU-R BT.601 weights used by RGBSplit and by the
	// single-channel components.
	SplitWeights = Weights{R: 0.299, G: 0.587, B: 0.114}
)

// apply returns the weighted sum truncated toward zero. The explicit float64
// conversions keep each product rounded, so no platform fuses them.
func (w Weights) apply(r, g, b uint8) int {
	return int(float64(w.R*float64(r)) + float64(w.G*float64(g)) + float64(w.B*float64(b)))
}

// greyFunc returns the per-pixel formula for c. An empty component means luma.
func greyFunc(c Component) (func(RGB) uint8, error) {
	switch c {
	case RedComponent:
		return func(p RGB) uint8 { return clampChannel(SplitWeights.apply(p.R, p.R, p.R)) }, nil
	case GreenComponent:
		return func(p RGB) uint8 { return clampChannel(SplitWeights.apply(p.G, p.G, p.G)) }, nil
	case BlueComponent:
		return func(p RGB) uint8 { return clampChannel(SplitWeights.apply(p.B, p.B, p.B)) }, nil
	case ValueComponent:
		return func(p RGB) uint8 { return max(p.R, p.G, p.B) }, nil
	case LumaComponent, "":
		return luma, nil
	case IntensityComponent:
		return func(p RGB) uint8 { return uint8((int(p.R) + int(p.G) + int(p.B)) / 3) }, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidComponentType, c)
	}
}

func luma(p RGB) uint8 {
	return clampChannel(LumaWeights.apply(p.R, p.G, p.B))
}

// GreyscaleByComponent replaces every pixel of src with a single grey value
// computed from component and registers the result as dst.
//
// Formulas (all truncated toward zero):
//   - red-component, green-component, blue-component: 0.299c + 0.587c + 0.114c
//     where c is that single channel
//   - value-component: max(r, g, b)
//   - luma-component: 0.2126r + 0.7152g + 0.0722b (also used when component is empty)
//   - intensity-component: (r + g + b) / 3
//
// # Errors
//
//   - ErrInvalidComponentType for an unrecognised component. Nothing is registered.
//   - ErrImageNotFound if src is not registered.
func GreyscaleByComponent(reg *Registry, component Component, src, dst string) error {
	grey, err := greyFunc(component)
	if err != nil {
		return err
	}
	g, err := reg.Get(src)
	if err != nil {
		return err
	}
	reg.Put(dst, mapPixels(g, func(p RGB) RGB { return Grey(grey(p)) }))
	return nil
}

// Greyscale is GreyscaleByComponent with the luma component.
func Greyscale(reg *Registry, src, dst string) error {
	return GreyscaleByComponent(reg, LumaComponent, src, dst)
}

// Brighten adds delta to every channel of src, clamping to [0,255], and registers
// the result as dst. A negative delta darkens; zero copies the image.
//
// A channel whose sum with delta would overflow int is left unchanged.
func Brighten(reg *Registry, delta int, src, dst string) error {
	g, err := reg.Get(src)
	if err != nil {
		return err
	}
	reg.Put(dst, mapPixels(g, func(p RGB) RGB {
		return RGB{
			R: brightenChannel(p.R, delta),
			G: brightenChannel(p.G, delta),
			B: brightenChannel(p.B, delta),
		}
	}))
	return nil
}

func brightenChannel(v uint8, delta int) uint8 {
	if delta > 0 && int(v) > math.MaxInt-delta {
		return v
	}
	return clampChannel(int(v) + delta)
}

// ColorMatrix maps an input pixel to an output pixel: row i gives the weights
// of (r, g, b) for output channel i. Each product is truncated to an integer
// before the three are summed and clamped.
type ColorMatrix [3][3]float64

// SepiaMatrix produces the characteristic red-brown sepia tone.
var SepiaMatrix = ColorMatrix{
	{0.393, 0.769, 0.189},
	{0.349, 0.686, 0.168},
	{0.272, 0.534, 0.131},
}

func (m ColorMatrix) apply(p RGB) RGB {
	var out [3]uint8
	for i, row := range m {
		sum := int(float64(row[0]*float64(p.R))) + int(float64(row[1]*float64(p.G))) + int(float64(row[2]*float64(p.B)))
		out[i] = clampChannel(sum)
	}
	return RGB{R: out[0], G: out[1], B: out[2]}
}

// Recolor applies m to every pixel of src and registers the result as dst.
func Recolor(reg *Registry, m ColorMatrix, src, dst string) error {
	g, err := reg.Get(src)
	if err != nil {
		return err
	}
	reg.Put(dst, mapPixels(g, m.apply))
	return nil
}

// Sepia recolors src with SepiaMatrix and registers the result as dst.
func Sepia(reg *Registry, src, dst string) error {
	return Recolor(reg, SepiaMatrix, src, dst)
}

// mapPixels builds a new grid by applying fn to each pixel of g independently.
func mapPixels(g *Grid, fn func(RGB) RGB) *Grid {
	out := newGridLike(g)
	for i, p := range g.Pix {
		out.Pix[i] = fn(p)
	}
	return out
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in several representations.
type ColorResult struct {
	Hex string   `json:"hex"` // Hex format "#rrggbb"
	RGB RGB      `json:"rgb"`
	HSL HSLColor `json:"hsl"`
}

// ImageInfo summarises a registered image.
type ImageInfo struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`

	// MeanColor is the per-channel average over all pixels, rounded to the
	// nearest integer.
	MeanColor ColorResult `json:"mean_color"`
}

// Describe returns the dimensions and mean color of the image registered as name.
func Describe(reg *Registry, name string) (*ImageInfo, error) {
	g, err := reg.Get(name)
	if err != nil {
		return nil, err
	}

	var sr, sg, sb float64
	for _, p := range g.Pix {
		sr += float64(p.R)
		sg += float64(p.G)
		sb += float64(p.B)
	}
	n := float64(len(g.Pix))
	mean := RGB{
		R: clampChannel(int(math.Round(sr / n))),
		G: clampChannel(int(math.Round(sg / n))),
		B: clampChannel(int(math.Round(sb / n))),
	}

	return &ImageInfo{
		Name:      name,
		Width:     g.Width,
		Height:    g.Height,
		MeanColor: describeColor(mean),
	}, nil
}

func describeColor(p RGB) ColorResult {
	c := colorful.Color{
		R: float64(p.R) / MaxChannel,
		G: float64(p.G) / MaxChannel,
		B: float64(p.B) / MaxChannel,
	}
	h, s, l := c.Hsl()
	return ColorResult{
		Hex: c.Hex(),
		RGB: p,
		HSL: HSLColor{
			H: int(math.Round(h)) % 360,
			S: int(math.Round(s * 100)),
			L: int(math.Round(l * 100)),
		},
	}
}

// HistogramResult holds 256-bin value counts for each channel of an image.
//
// Intensity is the integer average (r+g+b)/3 of each pixel.
type HistogramResult struct {
	Name      string   `json:"name"`
	Red       [256]int `json:"red"`
	Green     [256]int `json:"green"`
	Blue      [256]int `json:"blue"`
	Intensity [256]int `json:"intensity"`
}

// Histogram counts channel values of the image registered as name.
func Histogram(reg *Registry, name string) (*HistogramResult, error) {
	g, err := reg.Get(name)
	if err != nil {
		return nil, err
	}
	h := &HistogramResult{Name: name}
	for _, p := range g.Pix {
		h.Red[p.R]++
		h.Green[p.G]++
		h.Blue[p.B]++
		h.Intensity[(int(p.R)+int(p.G)+int(p.B))/3]++
	}
	return h, nil
}
