package qr

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// encodeQRPNG renders the text as a QR code PNG, round-tripping through the
// same zxing port the decoder uses.
func encodeQRPNG(t *testing.T, text string) []byte {
	t.Helper()

	matrix, err := qrcode.NewQRCodeWriter().Encode(text, gozxing.BarcodeFormat_QR_CODE, 256, 256, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, matrix))
	return buf.Bytes()
}

func TestDecode_RoundTrip(t *testing.T) {
	decoder := NewDecoder(zap.NewNop())
	payload := `{"article":"SKU-001","name":"Дрель аккумуляторная","price":4990}`

	result, err := decoder.Decode(context.Background(), bytes.NewReader(encodeQRPNG(t, payload)))

	require.NoError(t, err)
	assert.True(t, result.Found)
	assert.Equal(t, payload, result.Text)
}

func TestDecode_PlainTextPayload(t *testing.T) {
	decoder := NewDecoder(zap.NewNop())

	result, err := decoder.Decode(context.Background(), bytes.NewReader(encodeQRPNG(t, "SKU-42")))

	require.NoError(t, err)
	assert.True(t, result.Found)
	assert.Equal(t, "SKU-42", result.Text)
}

func TestDecode_NoCodeInImage(t *testing.T) {
	decoder := NewDecoder(zap.NewNop())

	img := image.NewRGBA(image.Rect(0, 0, 128, 128))
	for y := 0; y < 128; y++ {
		for x := 0; x < 128; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	result, err := decoder.Decode(context.Background(), &buf)

	require.NoError(t, err)
	assert.False(t, result.Found)
	assert.Empty(t, result.Text)
}

func TestDecode_CorruptImageIsNotFound(t *testing.T) {
	decoder := NewDecoder(zap.NewNop())

	result, err := decoder.Decode(context.Background(), strings.NewReader("not an image at all"))

	require.NoError(t, err)
	assert.False(t, result.Found)
	assert.Empty(t, result.Text)
}

func TestDecode_TruncatedImageIsNotFound(t *testing.T) {
	decoder := NewDecoder(zap.NewNop())
	truncated := encodeQRPNG(t, "SKU-42")[:64]

	result, err := decoder.Decode(context.Background(), bytes.NewReader(truncated))

	require.NoError(t, err)
	assert.False(t, result.Found)
}

func TestDecode_CancelledContext(t *testing.T) {
	decoder := NewDecoder(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := decoder.Decode(ctx, bytes.NewReader(encodeQRPNG(t, "SKU-42")))

	require.ErrorIs(t, err, context.Canceled)
}
