package intake

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/shelfscan/backend/internal/infrastructure/logger"
)

// ScanResult is returned to the worker after uploading an image
type ScanResult struct {
	Found     bool       `json:"found"`
	QRContent string     `json:"qr_content,omitempty"`
	Candidate *Candidate `json:"product,omitempty"`
}

// ScanService decodes uploaded images and interprets their payloads.
// A failed decode is a normal outcome (Found false), never an error: the
// worker retakes the photo and tries again.
type ScanService struct {
	decoder Decoder
	logger  *zap.Logger
}

// NewScanService creates a new scan service
func NewScanService(decoder Decoder, log *zap.Logger) *ScanService {
	return &ScanService{decoder: decoder, logger: log}
}

// Scan decodes the image and, when a QR code is found, interprets its
// payload into a product candidate.
func (s *ScanService) Scan(ctx context.Context, image io.Reader) (*ScanResult, error) {
	result, err := s.decoder.Decode(ctx, image)
	if err != nil {
		logger.L(ctx).Warn("image decode failed", zap.Error(err))
		return nil, err
	}

	if !result.Found {
		logger.L(ctx).Info("no qr code found in uploaded image")
		return &ScanResult{Found: false}, nil
	}

	candidate := Interpret(result.Text)
	logger.L(ctx).Info("qr code decoded",
		zap.String("article", candidate.Article),
		zap.Int("payload_len", len(result.Text)),
	)

	return &ScanResult{
		Found:     true,
		QRContent: result.Text,
		Candidate: &candidate,
	}, nil
}
