package codec

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/ironsheep/image-manip-mcp/internal/imaging"
)

// Codec decodes and encodes one family of image formats.
type Codec interface {
	// Name identifies the codec: "ppm" or the conventional format extension.
	Name() string

	// Decode reads a complete image from r.
	Decode(r io.Reader) (*imaging.Grid, error)

	// Encode writes g to w.
	Encode(w io.Writer, g *imaging.Grid) error
}

// Extension returns the lowercase extension of path without the leading dot.
func Extension(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// ForPath selects the codec for a file by its extension.
//
// The comparison is case-insensitive: "photo.PPM" selects PPM. Any other
// extension, including none at all, selects Conventional; whether the format is
// actually supported is only known when encoding.
func ForPath(path string) Codec {
	ext := Extension(path)
	if ext == "ppm" {
		return PPM{}
	}
	return Conventional{Ext: ext}
}
