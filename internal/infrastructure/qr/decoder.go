package qr

import (
	"context"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"go.uber.org/zap"

	"github.com/shelfscan/backend/internal/application/intake"
)

// Decoder decodes QR codes from uploaded images using the zxing port.
// Anything that prevents reading a code out of the upload (no code in the
// picture, a corrupt or unsupported file) is a normal outcome with Found
// false, never an error: the worker retakes the photo.
type Decoder struct {
	logger *zap.Logger
}

// NewDecoder creates a new QR decoder
func NewDecoder(logger *zap.Logger) *Decoder {
	return &Decoder{logger: logger}
}

// Decode reads the image and extracts the first QR code payload, if any
func (d *Decoder) Decode(ctx context.Context, r io.Reader) (intake.DecodeResult, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		d.logger.Warn("unreadable image upload", zap.Error(err))
		return intake.DecodeResult{Found: false}, nil
	}

	if err := ctx.Err(); err != nil {
		return intake.DecodeResult{}, err
	}

	text, found := d.decodeImage(img)
	if !found {
		d.logger.Debug("no qr code in image", zap.String("format", format))
		return intake.DecodeResult{Found: false}, nil
	}

	return intake.DecodeResult{Found: true, Text: text}, nil
}

// decodeImage runs the zxing reader. The library can panic on degenerate
// bitmaps, which counts as "no code found" here.
func (d *Decoder) decodeImage(img image.Image) (text string, found bool) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Warn("qr reader panicked", zap.Any("panic", r))
			text, found = "", false
		}
	}()

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", false
	}

	result, err := qrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		return "", false
	}

	return result.GetText(), true
}

var _ intake.Decoder = (*Decoder)(nil)
