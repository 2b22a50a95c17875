package inventory

import (
	"github.com/google/uuid"

	"github.com/shelfscan/backend/internal/domain/identity"
	"github.com/shelfscan/backend/internal/domain/shared"
)

// Actor identifies the authenticated user performing an operation
type Actor struct {
	CompanyID uuid.UUID
	UserID    uuid.UUID
	Role      identity.Role
}

// CreateProductInput contains the input for confirming a scanned product.
// Article/Name/Price may be left empty, in which case they are interpreted
// from the QR payload again.
type CreateProductInput struct {
	Article   string
	Name      string
	Price     string
	QRContent string
	ShelfID   *uuid.UUID
}

// UpdateProductInput contains the editable product fields
type UpdateProductInput struct {
	Article string
	Name    string
	Price   string
}

// ProductInfo is the product representation returned to clients
type ProductInfo struct {
	ID        uuid.UUID      `json:"id"`
	Article   string         `json:"article"`
	Name      string         `json:"name"`
	Price     string         `json:"price"`
	QRContent string         `json:"qr_content"`
	ShelfID   *uuid.UUID     `json:"shelf_id,omitempty"`
	ShelfName string         `json:"shelf_name,omitempty"`
	CreatedBy *uuid.UUID     `json:"created_by,omitempty"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// ListProductsInput narrows product listings
type ListProductsInput struct {
	Search string
	Filter shared.Filter
}

// ShelfInfo is the shelf representation returned to clients
type ShelfInfo struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	ProductCount int64     `json:"product_count"`
}
