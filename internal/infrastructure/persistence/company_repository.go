package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shelfscan/backend/internal/domain/identity"
	"github.com/shelfscan/backend/internal/domain/shared"
	"github.com/shelfscan/backend/internal/infrastructure/persistence/models"
)

// GormCompanyRepository implements identity.CompanyRepository using GORM
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new GormCompanyRepository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// Create inserts a new company
func (r *GormCompanyRepository) Create(ctx context.Context, company *identity.Company) error {
	model := models.CompanyModelFromDomain(company)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// FindOrCreateByDomain returns the company registered under the candidate's
// domain, creating it when absent. Two registrations racing on the same
// domain both resolve to the single winning row: the loser's insert hits the
// unique index and falls back to a lookup.
func (r *GormCompanyRepository) FindOrCreateByDomain(ctx context.Context, company *identity.Company) (*identity.Company, bool, error) {
	existing, err := r.FindByDomain(ctx, company.Domain)
	if err == nil {
		return existing, true, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, false, err
	}

	model := models.CompanyModelFromDomain(company)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, err := r.FindByDomain(ctx, company.Domain)
			if err != nil {
				return nil, false, err
			}
			return existing, true, nil
		}
		return nil, false, err
	}
	return company, false, nil
}

// FindByID finds a company by its ID
func (r *GormCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Company, error) {
	var model models.CompanyModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByDomain finds a company by its normalized domain
func (r *GormCompanyRepository) FindByDomain(ctx context.Context, domain string) (*identity.Company, error) {
	var model models.CompanyModel
	if err := r.db.WithContext(ctx).
		Where("domain = ?", identity.NormalizeDomain(domain)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Ensure GormCompanyRepository implements CompanyRepository
var _ identity.CompanyRepository = (*GormCompanyRepository)(nil)
