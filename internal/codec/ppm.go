package codec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ironsheep/image-manip-mcp/internal/imaging"
)

const (
	ppmMagic  = "P3"
	ppmMaxVal = 65535
)

// PPM is the plain-text RGB codec.
//
// # Format
//
// The stream is ASCII: the magic token "P3", then width, height and the maximum
// channel value, then width*height "r g b" triples in row-major order (top row
// first, left to right). Tokens are separated by any whitespace. Lines whose
// first character is '#' are comments and are skipped before tokenizing; an
// indented '#' is an ordinary token.
//
// Decoding clamps channel values into [0,255]. Encoding always writes 255 as the
// maximum value, one image row per line, and no comments.
type PPM struct{}

// Name implements Codec.
func (PPM) Name() string { return "ppm" }

// Decode implements Codec.
//
// # Errors
//
//   - imaging.ErrInvalidHeader if the magic token is not "P3", or the width,
//     height or maximum value is missing, non-numeric or out of range.
//   - imaging.ErrCodecIO if reading fails or the pixel data is truncated or
//     non-numeric.
func (PPM) Decode(r io.Reader) (*imaging.Grid, error) {
	tok, err := tokenize(r)
	if err != nil {
		return nil, err
	}

	magic, ok := tok.next()
	if !ok || magic != ppmMagic {
		return nil, fmt.Errorf("%w: plain PPM must begin with %s", imaging.ErrInvalidHeader, ppmMagic)
	}
	width, err := tok.headerInt("width", 1, 1<<20)
	if err != nil {
		return nil, err
	}
	height, err := tok.headerInt("height", 1, 1<<20)
	if err != nil {
		return nil, err
	}
	if _, err := tok.headerInt("max value", 1, ppmMaxVal); err != nil {
		return nil, err
	}

	if want := 3 * int64(width) * int64(height); int64(tok.remaining()) < want {
		return nil, fmt.Errorf("%w: pixel data truncated: header claims %dx%d", imaging.ErrCodecIO, width, height)
	}

	g, err := imaging.NewGrid(width, height)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", imaging.ErrInvalidHeader, err)
	}

	var ch [3]int
	for i := range g.Pix {
		for c := range ch {
			s, ok := tok.next()
			if !ok {
				return nil, fmt.Errorf("%w: pixel data truncated at pixel %d of %d", imaging.ErrCodecIO, i, len(g.Pix))
			}
			v, err := strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid channel value %q at pixel %d", imaging.ErrCodecIO, s, i)
			}
			ch[c] = v
		}
		g.Pix[i] = imaging.RGB{R: clamp8(ch[0]), G: clamp8(ch[1]), B: clamp8(ch[2])}
	}
	return g, nil
}

// Encode implements Codec.
func (PPM) Encode(w io.Writer, g *imaging.Grid) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n%d %d\n%d\n", ppmMagic, g.Width, g.Height, imaging.MaxChannel)

	buf := make([]byte, 0, 12*g.Width)
	for y := 0; y < g.Height; y++ {
		buf = buf[:0]
		for x := 0; x < g.Width; x++ {
			p := g.At(x, y)
			if x > 0 {
				buf = append(buf, ' ')
			}
			buf = strconv.AppendUint(buf, uint64(p.R), 10)
			buf = append(buf, ' ')
			buf = strconv.AppendUint(buf, uint64(p.G), 10)
			buf = append(buf, ' ')
			buf = strconv.AppendUint(buf, uint64(p.B), 10)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("%w: %w", imaging.ErrCodecIO, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %w", imaging.ErrCodecIO, err)
	}
	return nil
}

// tokens is the whitespace-separated content of a PPM stream with comments removed.
type tokens struct {
	items []string
	pos   int
}

func tokenize(r io.Reader) (*tokens, error) {
	br := bufio.NewReader(r)
	t := &tokens{}
	for {
		line, err := br.ReadString('\n')
		if !strings.HasPrefix(line, "#") {
			t.items = append(t.items, strings.Fields(line)...)
		}
		if errors.Is(err, io.EOF) {
			return t, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read image: %w", imaging.ErrCodecIO, err)
		}
	}
}

func (t *tokens) next() (string, bool) {
	if t.pos >= len(t.items) {
		return "", false
	}
	s := t.items[t.pos]
	t.pos++
	return s, true
}

// remaining reports how many tokens have not been consumed yet.
func (t *tokens) remaining() int {
	return len(t.items) - t.pos
}

func (t *tokens) headerInt(field string, min, max int) (int, error) {
	s, ok := t.next()
	if !ok {
		return 0, fmt.Errorf("%w: missing %s", imaging.ErrInvalidHeader, field)
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < min || v > max {
		return 0, fmt.Errorf("%w: invalid %s %q", imaging.ErrInvalidHeader, field, s)
	}
	return v, nil
}

func clamp8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > imaging.MaxChannel {
		return imaging.MaxChannel
	}
	return uint8(v)
}
