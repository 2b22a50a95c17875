package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shelfscan/backend/internal/domain/inventory"
	"github.com/shelfscan/backend/internal/domain/shared"
	"github.com/shelfscan/backend/internal/infrastructure/persistence/models"
)

// GormShelfRepository implements inventory.ShelfRepository using GORM.
// Shelf deletion clears product references in the same transaction; there are
// no database-level cascades between products and shelves.
type GormShelfRepository struct {
	db *gorm.DB
}

// NewGormShelfRepository creates a new GormShelfRepository
func NewGormShelfRepository(db *gorm.DB) *GormShelfRepository {
	return &GormShelfRepository{db: db}
}

// Create inserts a new shelf
func (r *GormShelfRepository) Create(ctx context.Context, shelf *inventory.Shelf) error {
	model := models.ShelfModelFromDomain(shelf)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByID finds a shelf by ID within a company
func (r *GormShelfRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*inventory.Shelf, error) {
	var model models.ShelfModel
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

// FindAll finds shelves within a company, oldest first. A non-nil createdBy
// restricts the result to shelves created by that user.
func (r *GormShelfRepository) FindAll(ctx context.Context, companyID uuid.UUID, createdBy *uuid.UUID) ([]*inventory.Shelf, error) {
	query := r.db.WithContext(ctx).Where("company_id = ?", companyID)
	if createdBy != nil {
		query = query.Where("created_by = ?", *createdBy)
	}

	var shelfModels []models.ShelfModel
	if err := query.Order("created_at ASC").Find(&shelfModels).Error; err != nil {
		return nil, err
	}

	shelves := make([]*inventory.Shelf, len(shelfModels))
	for i := range shelfModels {
		shelves[i] = shelfModels[i].ToDomain()
	}
	return shelves, nil
}

// DeleteWithReassign deletes a shelf and clears the shelf reference on its
// products in the same transaction. Products are never deleted with the shelf.
func (r *GormShelfRepository) DeleteWithReassign(ctx context.Context, companyID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ProductModel{}).
			Where("company_id = ? AND shelf_id = ?", companyID, id).
			Update("shelf_id", nil).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.ShelfModel{}, "company_id = ? AND id = ?", companyID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// DeleteAllWithReassign deletes every shelf the user created in the company,
// clearing product references first. Shelves created by other users are left
// alone. Returns the number of shelves deleted.
func (r *GormShelfRepository) DeleteAllWithReassign(ctx context.Context, companyID, createdBy uuid.UUID) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownShelves := tx.Model(&models.ShelfModel{}).
			Select("id").
			Where("company_id = ? AND created_by = ?", companyID, createdBy)

		if err := tx.Model(&models.ProductModel{}).
			Where("company_id = ? AND shelf_id IN (?)", companyID, ownShelves).
			Update("shelf_id", nil).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.ShelfModel{}, "company_id = ? AND created_by = ?", companyID, createdBy)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	return deleted, err
}

// Ensure GormShelfRepository implements ShelfRepository
var _ inventory.ShelfRepository = (*GormShelfRepository)(nil)
