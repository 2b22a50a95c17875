package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appinventory "github.com/shelfscan/backend/internal/application/inventory"
	"github.com/shelfscan/backend/internal/domain/identity"
	"github.com/shelfscan/backend/internal/interfaces/http/dto"
	"github.com/shelfscan/backend/internal/interfaces/http/middleware"
)

// ShelfService is the inventory application surface for shelves
type ShelfService interface {
	Create(ctx context.Context, actor appinventory.Actor, name string) (*appinventory.ShelfInfo, error)
	List(ctx context.Context, actor appinventory.Actor) ([]appinventory.ShelfInfo, error)
	Delete(ctx context.Context, actor appinventory.Actor, id uuid.UUID) error
	DeleteAll(ctx context.Context, actor appinventory.Actor) (int64, error)
}

// ShelfHandler handles shelf endpoints
type ShelfHandler struct {
	BaseHandler
	shelves ShelfService
}

// NewShelfHandler creates a new shelf handler
func NewShelfHandler(shelves ShelfService) *ShelfHandler {
	return &ShelfHandler{shelves: shelves}
}

// RegisterRoutes registers shelf routes on the given group
func (h *ShelfHandler) RegisterRoutes(rg *gin.RouterGroup) {
	shelves := rg.Group("/shelves")
	shelves.Use(middleware.RequireRoles(identity.RoleOwner, identity.RoleWorker))
	{
		shelves.POST("", h.Create)
		shelves.GET("", h.List)
		shelves.DELETE("/:id", h.Delete)
		shelves.DELETE("", h.DeleteAll)
	}
}

// CreateShelfRequest is the shelf creation payload
type CreateShelfRequest struct {
	Name string `json:"name" binding:"required,max=200"`
}

// Create handles POST /shelves
func (h *ShelfHandler) Create(c *gin.Context) {
	var req CreateShelfRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
			"Invalid shelf payload", getRequestID(c), bindingDetails(err)))
		return
	}

	act, err := actor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	info, err := h.shelves.Create(c.Request.Context(), act, req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, info)
}

// List handles GET /shelves
func (h *ShelfHandler) List(c *gin.Context) {
	act, err := actor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	infos, err := h.shelves.List(c.Request.Context(), act)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, infos)
}

// Delete handles DELETE /shelves/:id. Products on the shelf survive with
// their placement cleared.
func (h *ShelfHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	act, err := actor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.shelves.Delete(c.Request.Context(), act, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Shelf deleted"})
}

// DeleteAll handles DELETE /shelves
func (h *ShelfHandler) DeleteAll(c *gin.Context) {
	act, err := actor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	deleted, err := h.shelves.DeleteAll(c.Request.Context(), act)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"deleted": deleted})
}
