package inventory

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shelfscan/backend/internal/domain/shared"
)

// Shelf represents a storage location within a company
type Shelf struct {
	shared.CompanyAggregateRoot
	Name string
}

// NewShelf creates a new shelf
func NewShelf(companyID, createdBy uuid.UUID, name string) (*Shelf, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Shelf name is required")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Shelf name cannot exceed 200 characters")
	}

	return &Shelf{
		CompanyAggregateRoot: shared.NewCompanyAggregateRootWithCreator(companyID, createdBy),
		Name:                 name,
	}, nil
}

// Rename updates the shelf's name
func (s *Shelf) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Shelf name is required")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_INPUT", "Shelf name cannot exceed 200 characters")
	}
	s.Name = name
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}
