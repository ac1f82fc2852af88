// Package loader is the host-level image decoding collaborator spec.md §1
// and §6 place outside the execution core: it decodes a PNG/GIF/QOI file
// into a rectangular RGB grid at codel resolution. None of the execution
// core (codel, grid, engine) imports this package.
package loader

import (
	"fmt"
	"image"
	_ "image/gif" // registers the "gif" format with image.Decode
	_ "image/png" // registers the "png" format with image.Decode
	"io"
	"os"

	_ "github.com/xfmoulet/qoi" // registers the "qoi" format with image.Decode
)

// Load opens path, decodes it as PNG, GIF or QOI, and downsamples it to
// codel resolution at the given codel size, per spec.md §6's Image
// decoding contract: codelSize N means one pixel is sampled per NxN block,
// and the image's width and height must both be divisible by N.
//
// The result is rows x cols of [3]uint8 RGB triples, origin top-left, the
// exact shape grid.NewGrid expects.
func Load(path string, codelSize int) ([][][3]uint8, error) {
	if codelSize < 1 {
		return nil, fmt.Errorf("loader: codel size must be positive, got %d", codelSize)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: couldn't open image %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("loader: couldn't decode image %q: %w", path, err)
	}

	return Downsample(img, codelSize)
}

// Downsample converts a decoded image to an RGB grid at codel resolution,
// sampling the top-left pixel of each codelSize x codelSize block. It
// rejects dimensions that don't divide evenly by codelSize.
func Downsample(img image.Image, codelSize int) ([][][3]uint8, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if w%codelSize != 0 || h%codelSize != 0 {
		return nil, fmt.Errorf("loader: image dimensions %dx%d are not divisible by codel size %d", w, h, codelSize)
	}

	cols, rows := w/codelSize, h/codelSize
	out := make([][][3]uint8, rows)
	for y := 0; y < rows; y++ {
		row := make([][3]uint8, cols)
		for x := 0; x < cols; x++ {
			px := b.Min.X + x*codelSize
			py := b.Min.Y + y*codelSize
			r, g, bl, _ := img.At(px, py).RGBA()
			row[x] = [3]uint8{uint8(r >> 8), uint8(g >> 8), uint8(bl >> 8)}
		}
		out[y] = row
	}
	return out, nil
}

// OpenTrace opens dest for the host's optional execution trace (SPEC_FULL
// §3/§5). When dest ends in ".zst" the returned writer streams through a
// zstd encoder, mirroring how svanichkin/Babe wraps its encoded output in
// a compress/zstd writer; the returned closer must be invoked once the
// engine has finished running so the encoder flushes its frame.
func OpenTrace(dest string) (io.Writer, io.Closer, error) {
	f, err := os.Create(dest)
	if err != nil {
		return nil, nil, fmt.Errorf("loader: couldn't create trace file %q: %w", dest, err)
	}
	if !isZstdPath(dest) {
		return f, f, nil
	}

	zw, err := newZstdWriter(f)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("loader: couldn't start zstd encoder for %q: %w", dest, err)
	}
	return zw, multiCloser{zw, f}, nil
}

func isZstdPath(dest string) bool {
	return len(dest) > 4 && dest[len(dest)-4:] == ".zst"
}

type multiCloser struct {
	first io.Closer
	then  io.Closer
}

func (m multiCloser) Close() error {
	if err := m.first.Close(); err != nil {
		return err
	}
	return m.then.Close()
}
