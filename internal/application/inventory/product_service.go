package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shelfscan/backend/internal/application/intake"
	"github.com/shelfscan/backend/internal/domain/identity"
	"github.com/shelfscan/backend/internal/domain/inventory"
	"github.com/shelfscan/backend/internal/domain/shared"
)

// ProductService handles product CRUD, search and shelf placement.
// Listings are role-scoped: workers see only their own uploads, owners and
// customers see the whole company.
type ProductService struct {
	productRepo inventory.ProductRepository
	shelfRepo   inventory.ShelfRepository
	events      shared.EventPublisher
	logger      *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(
	productRepo inventory.ProductRepository,
	shelfRepo inventory.ShelfRepository,
	events shared.EventPublisher,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		shelfRepo:   shelfRepo,
		events:      events,
		logger:      logger,
	}
}

// Create confirms a scanned QR payload as a product. Missing candidate
// fields are interpreted from the raw payload.
func (s *ProductService) Create(ctx context.Context, actor Actor, input CreateProductInput) (*ProductInfo, error) {
	if input.QRContent == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "QR content is required")
	}

	article, name, price := input.Article, input.Name, input.Price
	if article == "" || name == "" {
		candidate := intake.Interpret(input.QRContent)
		if article == "" {
			article = candidate.Article
		}
		if name == "" {
			name = candidate.Name
		}
		if price == "" {
			price = candidate.Price
		}
	}

	product, err := inventory.NewProduct(actor.CompanyID, actor.UserID, article, name, price, input.QRContent)
	if err != nil {
		return nil, err
	}

	if input.ShelfID != nil {
		shelf, err := s.resolveShelf(ctx, actor, *input.ShelfID)
		if err != nil {
			return nil, err
		}
		product.PlaceOnShelf(&shelf.ID)
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error("Failed to create product",
			zap.String("company_id", actor.CompanyID.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create product")
	}

	s.publishEvents(ctx, product.GetDomainEvents())
	product.ClearDomainEvents()

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("article", product.Article),
		zap.String("company_id", actor.CompanyID.String()))

	return s.productInfo(product, nil), nil
}

// List returns products visible to the actor, paginated
func (s *ProductService) List(ctx context.Context, actor Actor, input ListProductsInput) (*shared.Paginated[ProductInfo], error) {
	query := inventory.ProductQuery{
		Search: input.Search,
		Filter: input.Filter,
	}
	if actor.Role == identity.RoleWorker {
		uploadedBy := actor.UserID
		query.UploadedBy = &uploadedBy
	}

	products, total, err := s.productRepo.FindAll(ctx, actor.CompanyID, query)
	if err != nil {
		s.logger.Error("Failed to list products",
			zap.String("company_id", actor.CompanyID.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list products")
	}

	shelfNames, err := s.shelfNames(ctx, actor.CompanyID)
	if err != nil {
		return nil, err
	}

	items := make([]ProductInfo, 0, len(products))
	for _, p := range products {
		items = append(items, *s.productInfo(p, shelfNames))
	}

	result := shared.NewPaginated(items, total, input.Filter.Page, input.Filter.Limit())
	return &result, nil
}

// Get returns a single product visible to the actor
func (s *ProductService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*ProductInfo, error) {
	product, err := s.findVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	shelfNames, err := s.shelfNames(ctx, actor.CompanyID)
	if err != nil {
		return nil, err
	}
	return s.productInfo(product, shelfNames), nil
}

// Update replaces a product's editable fields
func (s *ProductService) Update(ctx context.Context, actor Actor, id uuid.UUID, input UpdateProductInput) (*ProductInfo, error) {
	product, err := s.findVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if err := product.Update(input.Article, input.Name, input.Price); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		s.logger.Error("Failed to update product",
			zap.String("product_id", id.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update product")
	}

	s.logger.Info("Product updated", zap.String("product_id", id.String()))
	return s.productInfo(product, nil), nil
}

// Delete removes a product visible to the actor
func (s *ProductService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if _, err := s.findVisible(ctx, actor, id); err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, actor.CompanyID, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Product not found")
		}
		s.logger.Error("Failed to delete product",
			zap.String("product_id", id.String()), zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete product")
	}

	s.logger.Info("Product deleted", zap.String("product_id", id.String()))
	return nil
}

// MoveToShelf places a product on a shelf, or clears the placement when
// shelfID is nil.
func (s *ProductService) MoveToShelf(ctx context.Context, actor Actor, productID uuid.UUID, shelfID *uuid.UUID) (*ProductInfo, error) {
	product, err := s.findVisible(ctx, actor, productID)
	if err != nil {
		return nil, err
	}

	if shelfID != nil {
		shelf, err := s.resolveShelf(ctx, actor, *shelfID)
		if err != nil {
			return nil, err
		}
		product.PlaceOnShelf(&shelf.ID)
	} else {
		product.PlaceOnShelf(nil)
	}
	product.AddDomainEvent(inventory.NewProductMovedEvent(product))

	if err := s.productRepo.Update(ctx, product); err != nil {
		s.logger.Error("Failed to move product",
			zap.String("product_id", productID.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to move product")
	}

	s.publishEvents(ctx, product.GetDomainEvents())
	product.ClearDomainEvents()

	s.logger.Info("Product moved",
		zap.String("product_id", productID.String()),
		zap.Any("shelf_id", shelfID))

	return s.productInfo(product, nil), nil
}

// findVisible loads a product enforcing the actor's visibility: workers only
// see their own uploads, so foreign products read as not found.
func (s *ProductService) findVisible(ctx context.Context, actor Actor, id uuid.UUID) (*inventory.Product, error) {
	product, err := s.productRepo.FindByID(ctx, actor.CompanyID, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
		}
		s.logger.Error("Failed to load product",
			zap.String("product_id", id.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load product")
	}

	if actor.Role == identity.RoleWorker && !product.UploadedBy(actor.UserID) {
		return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
	}

	return product, nil
}

// resolveShelf validates that a placement target exists, belongs to the
// actor's company and, for workers, was created by the acting user.
func (s *ProductService) resolveShelf(ctx context.Context, actor Actor, shelfID uuid.UUID) (*inventory.Shelf, error) {
	shelf, err := s.shelfRepo.FindByID(ctx, actor.CompanyID, shelfID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("SHELF_NOT_FOUND", "Target shelf not found")
		}
		s.logger.Error("Failed to load shelf",
			zap.String("shelf_id", shelfID.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load shelf")
	}

	if actor.Role == identity.RoleWorker && shelf.CreatedBy != nil && *shelf.CreatedBy != actor.UserID {
		return nil, shared.NewDomainError("FORBIDDEN", "Shelf belongs to another user")
	}

	return shelf, nil
}

func (s *ProductService) shelfNames(ctx context.Context, companyID uuid.UUID) (map[uuid.UUID]string, error) {
	shelves, err := s.shelfRepo.FindAll(ctx, companyID, nil)
	if err != nil {
		s.logger.Error("Failed to load shelves",
			zap.String("company_id", companyID.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load shelves")
	}
	names := make(map[uuid.UUID]string, len(shelves))
	for _, shelf := range shelves {
		names[shelf.ID] = shelf.Name
	}
	return names, nil
}

func (s *ProductService) productInfo(p *inventory.Product, shelfNames map[uuid.UUID]string) *ProductInfo {
	info := &ProductInfo{
		ID:        p.ID,
		Article:   p.Article,
		Name:      p.Name,
		Price:     p.Price,
		QRContent: p.QRContent,
		ShelfID:   p.ShelfID,
		CreatedBy: p.CreatedBy,
	}
	if p.ShelfID != nil && shelfNames != nil {
		info.ShelfName = shelfNames[*p.ShelfID]
	}
	return info
}

func (s *ProductService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.events == nil || len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish domain events", zap.Error(err))
	}
}
