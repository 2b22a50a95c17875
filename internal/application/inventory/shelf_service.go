package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shelfscan/backend/internal/domain/identity"
	"github.com/shelfscan/backend/internal/domain/inventory"
	"github.com/shelfscan/backend/internal/domain/shared"
)

// ShelfService handles shelf management. Deleting a shelf never deletes its
// products: their shelf reference is cleared in the same transaction.
// Workers only see and delete shelves they created; owners see the whole
// company. The bulk delete is always scoped to the acting user's shelves.
type ShelfService struct {
	shelfRepo   inventory.ShelfRepository
	productRepo inventory.ProductRepository
	logger      *zap.Logger
}

// NewShelfService creates a new shelf service
func NewShelfService(
	shelfRepo inventory.ShelfRepository,
	productRepo inventory.ProductRepository,
	logger *zap.Logger,
) *ShelfService {
	return &ShelfService{
		shelfRepo:   shelfRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// Create adds a new shelf for the actor's company
func (s *ShelfService) Create(ctx context.Context, actor Actor, name string) (*ShelfInfo, error) {
	shelf, err := inventory.NewShelf(actor.CompanyID, actor.UserID, name)
	if err != nil {
		return nil, err
	}

	if err := s.shelfRepo.Create(ctx, shelf); err != nil {
		s.logger.Error("Failed to create shelf",
			zap.String("company_id", actor.CompanyID.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create shelf")
	}

	s.logger.Info("Shelf created",
		zap.String("shelf_id", shelf.ID.String()),
		zap.String("name", shelf.Name))

	return &ShelfInfo{ID: shelf.ID, Name: shelf.Name}, nil
}

// List returns the shelves visible to the actor with their product counts.
// Workers get only their own shelves, owners the whole company.
func (s *ShelfService) List(ctx context.Context, actor Actor) ([]ShelfInfo, error) {
	var createdBy *uuid.UUID
	if actor.Role == identity.RoleWorker {
		userID := actor.UserID
		createdBy = &userID
	}

	shelves, err := s.shelfRepo.FindAll(ctx, actor.CompanyID, createdBy)
	if err != nil {
		s.logger.Error("Failed to list shelves",
			zap.String("company_id", actor.CompanyID.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list shelves")
	}

	infos := make([]ShelfInfo, 0, len(shelves))
	for _, shelf := range shelves {
		count, err := s.productRepo.CountByShelf(ctx, actor.CompanyID, shelf.ID)
		if err != nil {
			s.logger.Error("Failed to count shelf products",
				zap.String("shelf_id", shelf.ID.String()), zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list shelves")
		}
		infos = append(infos, ShelfInfo{ID: shelf.ID, Name: shelf.Name, ProductCount: count})
	}

	return infos, nil
}

// Delete removes a shelf, clearing the shelf reference on its products.
// Workers can only delete shelves they created; a foreign shelf reads as
// not found, same as foreign products.
func (s *ShelfService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	shelf, err := s.shelfRepo.FindByID(ctx, actor.CompanyID, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Shelf not found")
		}
		s.logger.Error("Failed to load shelf",
			zap.String("shelf_id", id.String()), zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to load shelf")
	}

	if actor.Role == identity.RoleWorker && shelf.CreatedBy != nil && *shelf.CreatedBy != actor.UserID {
		return shared.NewDomainError("NOT_FOUND", "Shelf not found")
	}

	if err := s.shelfRepo.DeleteWithReassign(ctx, actor.CompanyID, id); err != nil {
		s.logger.Error("Failed to delete shelf",
			zap.String("shelf_id", id.String()), zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete shelf")
	}

	s.logger.Info("Shelf deleted", zap.String("shelf_id", id.String()))
	return nil
}

// DeleteAll removes every shelf the acting user created and returns how many
// were deleted. Other users' shelves are untouched; products keep existing
// without a shelf.
func (s *ShelfService) DeleteAll(ctx context.Context, actor Actor) (int64, error) {
	deleted, err := s.shelfRepo.DeleteAllWithReassign(ctx, actor.CompanyID, actor.UserID)
	if err != nil {
		s.logger.Error("Failed to delete shelves",
			zap.String("company_id", actor.CompanyID.String()), zap.Error(err))
		return 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to delete shelves")
	}

	s.logger.Info("All shelves deleted",
		zap.String("company_id", actor.CompanyID.String()),
		zap.String("user_id", actor.UserID.String()),
		zap.Int64("count", deleted))

	return deleted, nil
}
