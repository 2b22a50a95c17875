package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shelfscan/backend/internal/domain/request"
	"github.com/shelfscan/backend/internal/domain/shared"
	"github.com/shelfscan/backend/internal/infrastructure/persistence/models"
)

// GormRequestRepository implements request.Repository using GORM
type GormRequestRepository struct {
	db *gorm.DB
}

// NewGormRequestRepository creates a new GormRequestRepository
func NewGormRequestRepository(db *gorm.DB) *GormRequestRepository {
	return &GormRequestRepository{db: db}
}

// Create inserts a new request. For product-linked requests the transaction
// first checks for an existing active request on the same product by the same
// customer; the partial unique index in the store backs the check against
// races, surfacing as a duplicate key on the losing insert.
func (r *GormRequestRepository) Create(ctx context.Context, req *request.Request) error {
	model := models.RequestModelFromDomain(req)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.ProductID != nil {
			var count int64
			if err := tx.Model(&models.RequestModel{}).
				Where("company_id = ? AND customer_id = ? AND product_id = ? AND status <> ?",
					req.CompanyID, req.CustomerID, *req.ProductID, request.StatusCancelled).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return shared.ErrAlreadyExists
			}
		}

		if err := tx.Create(model).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return shared.ErrAlreadyExists
			}
			return err
		}
		return nil
	})
}

// Update saves an existing request with optimistic locking
func (r *GormRequestRepository) Update(ctx context.Context, req *request.Request) error {
	model := models.RequestModelFromDomain(req)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND company_id = ? AND version = ?", req.ID, req.CompanyID, req.Version-1).
		Select("status", "version", "updated_at").
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// FindByID finds a request by ID within a company
func (r *GormRequestRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*request.Request, error) {
	var model models.RequestModel
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all requests within a company, newest first
func (r *GormRequestRepository) FindAll(ctx context.Context, companyID uuid.UUID) ([]*request.Request, error) {
	var requestModels []models.RequestModel
	if err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&requestModels).Error; err != nil {
		return nil, err
	}
	return toDomainRequests(requestModels), nil
}

// FindByCustomer finds a customer's own requests within a company, newest first
func (r *GormRequestRepository) FindByCustomer(ctx context.Context, companyID, customerID uuid.UUID) ([]*request.Request, error) {
	var requestModels []models.RequestModel
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND customer_id = ?", companyID, customerID).
		Order("created_at DESC").
		Find(&requestModels).Error; err != nil {
		return nil, err
	}
	return toDomainRequests(requestModels), nil
}

func toDomainRequests(requestModels []models.RequestModel) []*request.Request {
	requests := make([]*request.Request, len(requestModels))
	for i := range requestModels {
		requests[i] = requestModels[i].ToDomain()
	}
	return requests
}

// Ensure GormRequestRepository implements Repository
var _ request.Repository = (*GormRequestRepository)(nil)
