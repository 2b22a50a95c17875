package request

import (
	"time"

	"github.com/google/uuid"

	"github.com/shelfscan/backend/internal/domain/identity"
)

// Actor identifies the authenticated user performing an operation
type Actor struct {
	CompanyID uuid.UUID
	UserID    uuid.UUID
	Role      identity.Role
}

// CreateInput contains the input for creating a request. A non-nil ProductID
// makes it a product request; otherwise Type/Priority/Description describe a
// general one.
type CreateInput struct {
	ProductID   *uuid.UUID
	Type        string
	Priority    string
	Description string
}

// SetStatusInput contains the input for an owner status change
type SetStatusInput struct {
	RequestID uuid.UUID
	Status    string
}

// Info is the request representation returned to clients
type Info struct {
	ID          uuid.UUID  `json:"id"`
	CustomerID  uuid.UUID  `json:"customer_id"`
	ProductID   *uuid.UUID `json:"product_id,omitempty"`
	ProductName string     `json:"product_name,omitempty"`
	Type        string     `json:"type,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
