package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shelfscan/backend/internal/domain/shared"
)

// ProductQuery narrows product listings and searches.
// A nil UploadedBy returns company-wide results; a non-nil value restricts
// the listing to a single uploader (worker visibility).
type ProductQuery struct {
	UploadedBy *uuid.UUID
	Search     string
	Filter     shared.Filter
}

// ProductRepository defines persistence operations for products.
// Every method is scoped to a company; product IDs belonging to other
// companies read as not found.
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, companyID, id uuid.UUID) error
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*Product, error)
	FindAll(ctx context.Context, companyID uuid.UUID, query ProductQuery) ([]*Product, int64, error)
	CountByShelf(ctx context.Context, companyID, shelfID uuid.UUID) (int64, error)
}

// ShelfRepository defines persistence operations for shelves.
// Deletes clear shelf references on products in the same transaction:
// referential integrity between products and shelves is maintained here,
// not by database cascades.
//
// FindAll with a nil createdBy returns the whole company; a non-nil value
// restricts the listing to shelves created by that user (worker visibility,
// same convention as ProductQuery.UploadedBy). DeleteAllWithReassign always
// takes the acting user: the bulk delete only removes that user's shelves.
type ShelfRepository interface {
	Create(ctx context.Context, shelf *Shelf) error
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*Shelf, error)
	FindAll(ctx context.Context, companyID uuid.UUID, createdBy *uuid.UUID) ([]*Shelf, error)
	DeleteWithReassign(ctx context.Context, companyID, id uuid.UUID) error
	DeleteAllWithReassign(ctx context.Context, companyID, createdBy uuid.UUID) (int64, error)
}
