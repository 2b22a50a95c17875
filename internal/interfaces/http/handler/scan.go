package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shelfscan/backend/internal/application/intake"
	"github.com/shelfscan/backend/internal/domain/identity"
	"github.com/shelfscan/backend/internal/interfaces/http/dto"
	"github.com/shelfscan/backend/internal/interfaces/http/middleware"
)

// Scanner is the intake application surface the handler depends on
type Scanner interface {
	Scan(ctx context.Context, image io.Reader) (*intake.ScanResult, error)
}

// ScanHandler handles QR image uploads from workers
type ScanHandler struct {
	BaseHandler
	scanner       Scanner
	maxImageBytes int64
}

// NewScanHandler creates a new scan handler. maxImageBytes bounds the size
// of a single uploaded image.
func NewScanHandler(scanner Scanner, maxImageBytes int64) *ScanHandler {
	return &ScanHandler{scanner: scanner, maxImageBytes: maxImageBytes}
}

// RegisterRoutes registers scan routes on the given group. Scanning is the
// worker's workflow.
func (h *ScanHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/scan/decode", middleware.RequireRoles(identity.RoleWorker), h.Decode)
}

// Decode handles POST /scan/decode. The image arrives as the multipart
// field "image". A readable image with no QR code is a normal outcome and
// answers found:false so the worker can retake the photo.
func (h *ScanHandler) Decode(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		h.BadRequest(c, "Image file is required (multipart field 'image')")
		return
	}
	defer file.Close()

	if h.maxImageBytes > 0 && header.Size > h.maxImageBytes {
		c.JSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponseWithRequestID(
			"REQUEST_TOO_LARGE", "Uploaded image exceeds the size limit", getRequestID(c)))
		return
	}

	var reader io.Reader = file
	if h.maxImageBytes > 0 {
		// Size header is client-supplied; enforce the limit on the stream too
		reader = io.LimitReader(file, h.maxImageBytes+1)
	}

	result, err := h.scanner.Scan(c.Request.Context(), reader)
	if err != nil {
		h.BadRequest(c, "Could not read the uploaded image")
		return
	}

	if !result.Found {
		h.Success(c, gin.H{
			"found":   false,
			"message": "No QR code found in the image, try taking the photo again",
		})
		return
	}

	h.Success(c, result)
}
