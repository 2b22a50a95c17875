package intake

import (
	"context"
	"io"
)

// DecodeResult is the outcome of scanning an image for a QR code.
// Found false means no code could be read; Text is only meaningful when
// Found is true.
type DecodeResult struct {
	Found bool
	Text  string
}

// Decoder reads QR codes out of uploaded images. Implementations return
// DecodeResult{Found: false} for anything that prevents reading a code
// (no code in the picture, corrupt or unsupported image data) instead of
// an error; errors are reserved for failures of the decoding machinery
// itself.
type Decoder interface {
	Decode(ctx context.Context, r io.Reader) (DecodeResult, error)
}
