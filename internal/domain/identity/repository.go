package identity

import (
	"context"

	"github.com/google/uuid"
)

// CompanyRepository defines persistence operations for companies
type CompanyRepository interface {
	Create(ctx context.Context, company *Company) error
	// FindOrCreateByDomain returns the company registered under the domain,
	// creating it atomically when absent. The returned bool is true when the
	// company already existed.
	FindOrCreateByDomain(ctx context.Context, company *Company) (*Company, bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)
	FindByDomain(ctx context.Context, domain string) (*Company, error)
}

// UserRepository defines persistence operations for users.
// Lookups are always scoped to a company; IDs from other companies read as
// not found.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, companyID uuid.UUID, email string) (*User, error)
}
