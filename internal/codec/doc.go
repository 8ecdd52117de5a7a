// Package codec converts between encoded image bytes and imaging.Grid.
//
// Two codecs implement the Codec interface:
//
//   - PPM: the plain-text "P3" RGB format, read and written by this package.
//   - Conventional: PNG, JPEG, GIF, BMP and TIFF (plus WebP for reading),
//     delegated to github.com/disintegration/imaging and the standard image
//     decoders.
//
// ForPath picks the codec from a file name: a ".ppm" extension (any case)
// selects PPM, everything else selects Conventional.
//
// All failures wrap imaging.ErrCodecIO, except a PPM stream whose header is
// wrong, which wraps imaging.ErrInvalidHeader.
package codec
