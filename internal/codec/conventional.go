package codec

import (
	"fmt"
	"io"

	conv "github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ironsheep/image-manip-mcp/internal/imaging"
)

// Conventional adapts the platform raster codecs to Codec.
//
// Decoding sniffs the format from the data itself, so any registered format
// (PNG, JPEG, GIF, BMP, TIFF, WebP) loads regardless of Ext. Alpha is dropped;
// the color channels are read non-premultiplied. Encoding writes the format
// named by Ext (png, jpg/jpeg, gif, bmp, tif/tiff) as an opaque image.
type Conventional struct {
	// Ext is the lowercase file extension, without the dot, that selects the
	// output format.
	Ext string
}

// Name implements Codec.
func (c Conventional) Name() string { return c.Ext }

// Decode implements Codec.
func (c Conventional) Decode(r io.Reader) (*imaging.Grid, error) {
	img, err := conv.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode image: %w", imaging.ErrCodecIO, err)
	}
	g, err := imaging.FromNRGBA(conv.Clone(img))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", imaging.ErrCodecIO, err)
	}
	return g, nil
}

// Encode implements Codec.
//
// # Errors
//
//   - imaging.ErrCodecIO if Ext names no supported output format or the
//     underlying encoder fails.
func (c Conventional) Encode(w io.Writer, g *imaging.Grid) error {
	format, err := conv.FormatFromExtension(c.Ext)
	if err != nil {
		return fmt.Errorf("%w: cannot encode %q: %w", imaging.ErrCodecIO, c.Ext, err)
	}
	if err := conv.Encode(w, g.ToNRGBA(), format); err != nil {
		return fmt.Errorf("%w: failed to encode %s: %w", imaging.ErrCodecIO, format, err)
	}
	return nil
}
