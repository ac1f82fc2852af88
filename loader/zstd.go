package loader

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// newZstdWriter wraps w in a zstd encoder, the same library
// svanichkin/Babe uses (github.com/klauspost/compress) to stream its
// encoded output. Closing the returned writer flushes the final frame.
func newZstdWriter(w io.Writer) (io.WriteCloser, error) {
	return zstd.NewWriter(w)
}
