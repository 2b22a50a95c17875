package request

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for requests.
// Create enforces the one-active-product-request rule: a transactional
// pre-check plus a partial unique index in the store make it race-safe.
type Repository interface {
	Create(ctx context.Context, r *Request) error
	Update(ctx context.Context, r *Request) error
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*Request, error)
	FindAll(ctx context.Context, companyID uuid.UUID) ([]*Request, error)
	FindByCustomer(ctx context.Context, companyID, customerID uuid.UUID) ([]*Request, error)
}
