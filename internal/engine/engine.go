// Package engine is the operation surface over a shared image registry.
//
// An Engine pairs an imaging.Registry with file I/O through the codec package
// and structured logging. Every operation reads its sources by name and
// installs its results by name; on failure the registry is left untouched.
package engine

import (
	"bytes"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ironsheep/image-manip-mcp/internal/codec"
	"github.com/ironsheep/image-manip-mcp/internal/imaging"
)

// Engine executes image operations against one registry.
// It is safe for concurrent use.
type Engine struct {
	reg    *imaging.Registry
	logger *zap.Logger
}

// New creates an engine with an empty registry. A nil logger disables logging.
func New(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		reg:    imaging.NewRegistry(),
		logger: logger.Named("engine"),
	}
}

// Registry returns the registry the engine operates on.
func (e *Engine) Registry() *imaging.Registry {
	return e.reg
}

// Load reads the file at path and installs it under name.
//
// The codec is chosen by extension (see codec.ForPath). Unreadable files and
// undecodable bytes fail with imaging.ErrCodecIO; a malformed PPM header fails
// with imaging.ErrInvalidHeader.
func (e *Engine) Load(path, name string) error {
	c := codec.ForPath(path)

	f, err := os.Open(path)
	if err != nil {
		return e.finish("load", fmt.Errorf("%w: failed to open image: %w", imaging.ErrCodecIO, err), zap.String("path", path))
	}
	defer f.Close()

	g, err := c.Decode(f)
	if err != nil {
		return e.finish("load", fmt.Errorf("failed to load %s: %w", path, err), zap.String("path", path), zap.String("codec", c.Name()))
	}

	e.reg.Put(name, g)
	return e.finish("load", nil, zap.String("path", path), zap.String("codec", c.Name()), zap.Strings("installed", []string{name}))
}

// Save encodes the image registered under name and writes it to path.
//
// Nothing is written when name is unknown or encoding fails.
func (e *Engine) Save(path, name string) error {
	g, err := e.reg.Get(name)
	if err != nil {
		return e.finish("save", err, zap.String("path", path))
	}

	c := codec.ForPath(path)
	var buf bytes.Buffer
	if err := c.Encode(&buf, g); err != nil {
		return e.finish("save", fmt.Errorf("failed to save %s: %w", path, err), zap.String("path", path), zap.String("codec", c.Name()))
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return e.finish("save", fmt.Errorf("%w: failed to write image: %w", imaging.ErrCodecIO, err), zap.String("path", path))
	}

	return e.finish("save", nil, zap.String("path", path), zap.String("codec", c.Name()), zap.Int("bytes", buf.Len()))
}

// Brighten adds delta to every channel of src and installs the result as dst.
func (e *Engine) Brighten(delta int, src, dst string) error {
	return e.finish("brighten", imaging.Brighten(e.reg, delta, src, dst), installed(dst), zap.Int("delta", delta))
}

// HorizontalFlip mirrors src left to right into dst.
func (e *Engine) HorizontalFlip(src, dst string) error {
	return e.finish("horizontal-flip", imaging.HorizontalFlip(e.reg, src, dst), installed(dst))
}

// VerticalFlip mirrors src top to bottom into dst.
func (e *Engine) VerticalFlip(src, dst string) error {
	return e.finish("vertical-flip", imaging.VerticalFlip(e.reg, src, dst), installed(dst))
}

// Greyscale converts src to grey using component. An empty component means
// luma.
func (e *Engine) Greyscale(component imaging.Component, src, dst string) error {
	return e.finish("greyscale", imaging.GreyscaleByComponent(e.reg, component, src, dst), installed(dst), zap.String("component", string(component)))
}

// RGBSplit writes one grey image per channel of src.
func (e *Engine) RGBSplit(src, dstRed, dstGreen, dstBlue string) error {
	return e.finish("rgb-split", imaging.RGBSplit(e.reg, src, dstRed, dstGreen, dstBlue), installed(dstRed, dstGreen, dstBlue))
}

// RGBCombine builds dst from the red channel of redSrc, the green channel of
// greenSrc and the blue channel of blueSrc.
func (e *Engine) RGBCombine(dst, redSrc, greenSrc, blueSrc string) error {
	return e.finish("rgb-combine", imaging.RGBCombine(e.reg, dst, redSrc, greenSrc, blueSrc), installed(dst))
}

// Blur smooths src with the 3x3 blur kernel into dst.
func (e *Engine) Blur(src, dst string) error {
	return e.finish("blur", imaging.Blur(e.reg, src, dst), installed(dst))
}

// Sharpen applies the 3x3 sharpening kernel to src into dst.
func (e *Engine) Sharpen(src, dst string) error {
	return e.finish("sharpen", imaging.Sharpen(e.reg, src, dst), installed(dst))
}

// Sepia recolors src with the sepia matrix into dst.
func (e *Engine) Sepia(src, dst string) error {
	return e.finish("sepia", imaging.Sepia(e.reg, src, dst), installed(dst))
}

// Dither reduces src to black and white with Floyd-Steinberg error diffusion into dst.
func (e *Engine) Dither(src, dst string) error {
	return e.finish("dither", imaging.Dither(e.reg, src, dst), installed(dst))
}

// Describe reports the size and mean color of a registered image.
func (e *Engine) Describe(name string) (*imaging.ImageInfo, error) {
	return imaging.Describe(e.reg, name)
}

// Histogram counts channel values of a registered image.
func (e *Engine) Histogram(name string) (*imaging.HistogramResult, error) {
	return imaging.Histogram(e.reg, name)
}

// Names lists registered image names in sorted order.
func (e *Engine) Names() []string {
	return e.reg.Names()
}

func installed(names ...string) zap.Field {
	return zap.Strings("installed", names)
}

// finish logs the outcome of op and returns err unchanged.
func (e *Engine) finish(op string, err error, fields ...zap.Field) error {
	if err == nil {
		e.logger.Debug("operation completed", append(fields, zap.String("op", op))...)
		return nil
	}

	class := imaging.Classify(err)
	fields = append(fields, zap.String("op", op), zap.Stringer("class", class), zap.Error(err))
	if class == imaging.IOFailure {
		e.logger.Warn("codec failure", fields...)
	} else {
		e.logger.Debug("operation rejected", fields...)
	}
	return err
}
