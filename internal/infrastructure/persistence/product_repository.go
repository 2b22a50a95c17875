package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shelfscan/backend/internal/domain/inventory"
	"github.com/shelfscan/backend/internal/domain/shared"
	"github.com/shelfscan/backend/internal/infrastructure/persistence/models"
)

// GormProductRepository implements inventory.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Create inserts a new product
func (r *GormProductRepository) Create(ctx context.Context, product *inventory.Product) error {
	model := models.ProductModelFromDomain(product)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update saves an existing product with optimistic locking
func (r *GormProductRepository) Update(ctx context.Context, product *inventory.Product) error {
	model := models.ProductModelFromDomain(product)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND company_id = ? AND version = ?", product.ID, product.CompanyID, product.Version-1).
		Select("article", "name", "price", "shelf_id", "version", "updated_at").
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete removes a product within a company
func (r *GormProductRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&models.ProductModel{}, "company_id = ? AND id = ?", companyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a product by ID within a company
func (r *GormProductRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*inventory.Product, error) {
	var model models.ProductModel
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

// FindAll finds products matching the query within a company, returning the
// page and the total match count.
func (r *GormProductRepository) FindAll(ctx context.Context, companyID uuid.UUID, query inventory.ProductQuery) ([]*inventory.Product, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("company_id = ?", companyID)

	if query.UploadedBy != nil {
		base = base.Where("created_by = ?", *query.UploadedBy)
	}
	if query.Search != "" {
		base = base.Where("LOWER(qr_content) LIKE ?", "%"+strings.ToLower(query.Search)+"%")
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := ValidateSortField(query.Filter.OrderBy, ProductSortFields, "created_at")
	orderDir := ValidateSortOrder(query.Filter.OrderDir)

	var productModels []models.ProductModel
	if err := base.
		Order(orderBy + " " + orderDir).
		Offset(query.Filter.Offset()).
		Limit(query.Filter.Limit()).
		Find(&productModels).Error; err != nil {
		return nil, 0, err
	}

	products := make([]*inventory.Product, len(productModels))
	for i := range productModels {
		products[i] = productModels[i].ToDomain()
	}
	return products, total, nil
}

// CountByShelf counts products placed on a shelf within a company
func (r *GormProductRepository) CountByShelf(ctx context.Context, companyID, shelfID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("company_id = ? AND shelf_id = ?", companyID, shelfID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormProductRepository implements ProductRepository
var _ inventory.ProductRepository = (*GormProductRepository)(nil)
