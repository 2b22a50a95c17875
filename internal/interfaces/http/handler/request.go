package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apprequest "github.com/shelfscan/backend/internal/application/request"
	"github.com/shelfscan/backend/internal/domain/identity"
	"github.com/shelfscan/backend/internal/interfaces/http/dto"
	"github.com/shelfscan/backend/internal/interfaces/http/middleware"
)

// RequestService is the request application surface the handler depends on
type RequestService interface {
	Create(ctx context.Context, actor apprequest.Actor, input apprequest.CreateInput) (*apprequest.Info, error)
	List(ctx context.Context, actor apprequest.Actor) ([]apprequest.Info, error)
	Cancel(ctx context.Context, actor apprequest.Actor, id uuid.UUID) (*apprequest.Info, error)
	SetStatus(ctx context.Context, actor apprequest.Actor, input apprequest.SetStatusInput) (*apprequest.Info, error)
}

// statusLabels maps Russian display labels to the internal status codes.
// The labels exist only at this edge; everything below works with the codes.
var statusLabels = map[string]string{
	"Новая":     "new",
	"В работе":  "in-progress",
	"Выполнена": "completed",
	"Одобрена":  "completed",
	"Отменена":  "cancelled",
	"Отклонена": "cancelled",
}

// RequestHandler handles customer request endpoints
type RequestHandler struct {
	BaseHandler
	requests RequestService
}

// NewRequestHandler creates a new request handler
func NewRequestHandler(requests RequestService) *RequestHandler {
	return &RequestHandler{requests: requests}
}

// RegisterRoutes registers request routes on the given group
func (h *RequestHandler) RegisterRoutes(rg *gin.RouterGroup) {
	requests := rg.Group("/requests")
	{
		requests.POST("", middleware.RequireRoles(identity.RoleCustomer), h.Create)
		requests.GET("", middleware.RequireRoles(identity.RoleOwner, identity.RoleCustomer), h.List)
		requests.POST("/:id/cancel", middleware.RequireRoles(identity.RoleCustomer), h.Cancel)
		requests.PUT("/:id/status", middleware.RequireRoles(identity.RoleOwner), h.SetStatus)
	}
}

// CreateRequestRequest is the request creation payload. A product_id makes
// it a product request; otherwise type/priority/description describe a
// general one.
type CreateRequestRequest struct {
	ProductID   *string `json:"product_id" binding:"omitempty,uuid"`
	Type        string  `json:"type" binding:"max=100"`
	Priority    string  `json:"priority" binding:"max=50"`
	Description string  `json:"description" binding:"max=2000"`
}

// SetStatusRequest carries an owner status change. Status accepts either an
// internal code or its Russian display label.
type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Create handles POST /requests
func (h *RequestHandler) Create(c *gin.Context) {
	var req CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
			"Invalid request payload", getRequestID(c), bindingDetails(err)))
		return
	}

	act, err := requestActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, ok := parseOptionalUUID(c, req.ProductID)
	if !ok {
		return
	}

	info, err := h.requests.Create(c.Request.Context(), act, apprequest.CreateInput{
		ProductID:   productID,
		Type:        req.Type,
		Priority:    req.Priority,
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, info)
}

// List handles GET /requests
func (h *RequestHandler) List(c *gin.Context) {
	act, err := requestActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	infos, err := h.requests.List(c.Request.Context(), act)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, infos)
}

// Cancel handles POST /requests/:id/cancel
func (h *RequestHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	act, err := requestActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	info, err := h.requests.Cancel(c.Request.Context(), act, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, info)
}

// SetStatus handles PUT /requests/:id/status
func (h *RequestHandler) SetStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
			"Invalid status payload", getRequestID(c), bindingDetails(err)))
		return
	}

	act, err := requestActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	status := req.Status
	if code, ok := statusLabels[status]; ok {
		status = code
	}

	info, err := h.requests.SetStatus(c.Request.Context(), act, apprequest.SetStatusInput{
		RequestID: id,
		Status:    status,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, info)
}
