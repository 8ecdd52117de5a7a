// Package imaging provides the pixel-manipulation engine: an in-memory RGB grid,
// a named image registry, and the catalog of transforms that read grids from the
// registry and register new ones.
//
// Every transform takes a *Registry, the source name(s), the destination name(s)
// and any transform-specific parameters. It either computes a complete new grid
// and installs it under the destination name, or fails before installing
// anything. Sources are never modified.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based with the origin at the
// top-left corner:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - Grid.Pix is row-major: the pixel at (x, y) is Pix[y*Width+x]
//
// # Transforms
//
//   - Geometric: HorizontalFlip, VerticalFlip
//   - Point-wise: Brighten, GreyscaleByComponent, Greyscale, Sepia, Recolor
//   - Channel: RGBSplit, RGBCombine
//   - Convolution: Blur, Sharpen, Convolve
//   - Error diffusion: Dither
//
// Read-only analysis helpers Describe and Histogram report on a registered image.
//
// # Channel Values
//
// Channels are 8-bit. Every computation that can leave [0,255] is clamped before
// it is stored. Two different grey weightings are in use on purpose: LumaWeights
// (BT.709) for the luma component and SplitWeights (BT.601) for RGBSplit.
//
// # Thread Safety
//
// Registry is safe for concurrent use. Transforms hold no state of their own.
//
// # Error Handling
//
// Failures wrap one of the package's sentinel errors (ErrImageNotFound,
// ErrInvalidComponentType, ErrDimensionMismatch, ...). Use errors.Is to match
// them, or Classify to group them into not-found, malformed and I/O failures.
package imaging
