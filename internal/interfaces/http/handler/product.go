package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appinventory "github.com/shelfscan/backend/internal/application/inventory"
	"github.com/shelfscan/backend/internal/domain/identity"
	"github.com/shelfscan/backend/internal/domain/shared"
	"github.com/shelfscan/backend/internal/interfaces/http/dto"
	"github.com/shelfscan/backend/internal/interfaces/http/middleware"
)

// ProductService is the inventory application surface for products
type ProductService interface {
	Create(ctx context.Context, actor appinventory.Actor, input appinventory.CreateProductInput) (*appinventory.ProductInfo, error)
	List(ctx context.Context, actor appinventory.Actor, input appinventory.ListProductsInput) (*shared.Paginated[appinventory.ProductInfo], error)
	Get(ctx context.Context, actor appinventory.Actor, id uuid.UUID) (*appinventory.ProductInfo, error)
	Update(ctx context.Context, actor appinventory.Actor, id uuid.UUID, input appinventory.UpdateProductInput) (*appinventory.ProductInfo, error)
	Delete(ctx context.Context, actor appinventory.Actor, id uuid.UUID) error
	MoveToShelf(ctx context.Context, actor appinventory.Actor, productID uuid.UUID, shelfID *uuid.UUID) (*appinventory.ProductInfo, error)
}

// ProductHandler handles product endpoints
type ProductHandler struct {
	BaseHandler
	products ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(products ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// RegisterRoutes registers product routes on the given group. Creation,
// editing and deletion are for owner/worker; listing is open to every role
// and scoped inside the service.
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.GET("", h.List)
		products.GET("/search", h.Search)
		products.GET("/:id", h.Get)

		manage := products.Group("")
		manage.Use(middleware.RequireRoles(identity.RoleOwner, identity.RoleWorker))
		{
			manage.POST("", h.Create)
			manage.PUT("/:id", h.Update)
			manage.DELETE("/:id", h.Delete)
			manage.PUT("/:id/shelf", h.MoveToShelf)
		}
	}
}

// CreateProductRequest confirms a scanned QR payload as a product
type CreateProductRequest struct {
	QRContent string  `json:"qr_content" binding:"required"`
	Article   string  `json:"article"`
	Name      string  `json:"name"`
	Price     string  `json:"price"`
	ShelfID   *string `json:"shelf_id" binding:"omitempty,uuid"`
}

// UpdateProductRequest carries the editable product fields
type UpdateProductRequest struct {
	Article string `json:"article" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Price   string `json:"price"`
}

// MoveProductRequest places a product on a shelf; a null shelf_id clears
// the placement
type MoveProductRequest struct {
	ShelfID *string `json:"shelf_id" binding:"omitempty,uuid"`
}

// Create handles POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
			"Invalid product payload", getRequestID(c), bindingDetails(err)))
		return
	}

	act, err := actor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	shelfID, ok := parseOptionalUUID(c, req.ShelfID)
	if !ok {
		return
	}

	info, err := h.products.Create(c.Request.Context(), act, appinventory.CreateProductInput{
		Article:   req.Article,
		Name:      req.Name,
		Price:     req.Price,
		QRContent: req.QRContent,
		ShelfID:   shelfID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, info)
}

// List handles GET /products
func (h *ProductHandler) List(c *gin.Context) {
	h.list(c, "")
}

// Search handles GET /products/search?q=. Matching is a case-insensitive
// substring search over the raw QR payload.
func (h *ProductHandler) Search(c *gin.Context) {
	h.list(c, c.Query("q"))
}

func (h *ProductHandler) list(c *gin.Context, search string) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
			"Invalid list parameters", getRequestID(c), bindingDetails(err)))
		return
	}
	if search == "" {
		search = req.Search
	}

	act, err := actor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.products.List(c.Request.Context(), act, appinventory.ListProductsInput{
		Search: search,
		Filter: shared.Filter{
			Page:     req.Page,
			PageSize: req.PageSize,
			OrderBy:  req.OrderBy,
			OrderDir: req.OrderDir,
		},
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get handles GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	act, err := actor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	info, err := h.products.Get(c.Request.Context(), act, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, info)
}

// Update handles PUT /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
			"Invalid product payload", getRequestID(c), bindingDetails(err)))
		return
	}

	act, err := actor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	info, err := h.products.Update(c.Request.Context(), act, id, appinventory.UpdateProductInput{
		Article: req.Article,
		Name:    req.Name,
		Price:   req.Price,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, info)
}

// Delete handles DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	act, err := actor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.products.Delete(c.Request.Context(), act, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Product deleted"})
}

// MoveToShelf handles PUT /products/:id/shelf
func (h *ProductHandler) MoveToShelf(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req MoveProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
			"Invalid move payload", getRequestID(c), bindingDetails(err)))
		return
	}

	act, err := actor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	shelfID, ok := parseOptionalUUID(c, req.ShelfID)
	if !ok {
		return
	}

	info, err := h.products.MoveToShelf(c.Request.Context(), act, id, shelfID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, info)
}

// parseOptionalUUID parses a nullable UUID string from a payload. An empty
// string reads the same as null.
func parseOptionalUUID(c *gin.Context, s *string) (*uuid.UUID, bool) {
	if s == nil || *s == "" {
		return nil, true
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
			"INVALID_INPUT", "Invalid ID format", getRequestID(c)))
		return nil, false
	}
	return &id, true
}
