package request

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shelfscan/backend/internal/domain/identity"
	"github.com/shelfscan/backend/internal/domain/inventory"
	"github.com/shelfscan/backend/internal/domain/request"
	"github.com/shelfscan/backend/internal/domain/shared"
)

// Service handles the customer request workflow: creation, listing,
// cancellation and owner-driven status changes.
type Service struct {
	requestRepo request.Repository
	productRepo inventory.ProductRepository
	events      shared.EventPublisher
	logger      *zap.Logger
}

// NewService creates a new request service
func NewService(
	requestRepo request.Repository,
	productRepo inventory.ProductRepository,
	events shared.EventPublisher,
	logger *zap.Logger,
) *Service {
	return &Service{
		requestRepo: requestRepo,
		productRepo: productRepo,
		events:      events,
		logger:      logger,
	}
}

// Create registers a new request for the acting customer. Product requests
// are rejected when the customer already has an active (non-cancelled)
// request for the same product.
func (s *Service) Create(ctx context.Context, actor Actor, input CreateInput) (*Info, error) {
	var (
		req *request.Request
		err error
	)

	if input.ProductID != nil {
		// The product must exist within the customer's company
		if _, err := s.productRepo.FindByID(ctx, actor.CompanyID, *input.ProductID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Requested product not found")
			}
			s.logger.Error("Failed to load product for request",
				zap.String("product_id", input.ProductID.String()), zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create request")
		}
		req, err = request.NewProductRequest(actor.CompanyID, actor.UserID, *input.ProductID)
	} else {
		req, err = request.NewGeneralRequest(actor.CompanyID, actor.UserID, input.Type, input.Priority, input.Description)
	}
	if err != nil {
		return nil, err
	}

	if err := s.requestRepo.Create(ctx, req); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "An active request for this product already exists")
		}
		s.logger.Error("Failed to create request",
			zap.String("customer_id", actor.UserID.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create request")
	}

	s.publishEvents(ctx, req.GetDomainEvents())
	req.ClearDomainEvents()

	s.logger.Info("Request created",
		zap.String("request_id", req.ID.String()),
		zap.String("customer_id", actor.UserID.String()),
		zap.Bool("product_linked", req.ProductID != nil))

	return s.info(ctx, actor.CompanyID, req), nil
}

// List returns requests visible to the actor: owners see the whole company,
// customers see their own.
func (s *Service) List(ctx context.Context, actor Actor) ([]Info, error) {
	var (
		requests []*request.Request
		err      error
	)
	if actor.Role == identity.RoleOwner {
		requests, err = s.requestRepo.FindAll(ctx, actor.CompanyID)
	} else {
		requests, err = s.requestRepo.FindByCustomer(ctx, actor.CompanyID, actor.UserID)
	}
	if err != nil {
		s.logger.Error("Failed to list requests",
			zap.String("company_id", actor.CompanyID.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list requests")
	}

	infos := make([]Info, 0, len(requests))
	for _, req := range requests {
		infos = append(infos, *s.info(ctx, actor.CompanyID, req))
	}
	return infos, nil
}

// Cancel moves a request to cancelled. Only the requesting customer may
// cancel their own request.
func (s *Service) Cancel(ctx context.Context, actor Actor, id uuid.UUID) (*Info, error) {
	req, err := s.find(ctx, actor.CompanyID, id)
	if err != nil {
		return nil, err
	}

	if req.CustomerID != actor.UserID {
		return nil, shared.NewDomainError("FORBIDDEN", "Only the requesting customer may cancel this request")
	}

	if err := req.Cancel(); err != nil {
		return nil, err
	}

	if err := s.requestRepo.Update(ctx, req); err != nil {
		s.logger.Error("Failed to cancel request",
			zap.String("request_id", id.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to cancel request")
	}

	s.publishEvents(ctx, req.GetDomainEvents())
	req.ClearDomainEvents()

	s.logger.Info("Request cancelled", zap.String("request_id", id.String()))
	return s.info(ctx, actor.CompanyID, req), nil
}

// SetStatus applies an owner status change, enforcing the transition table
func (s *Service) SetStatus(ctx context.Context, actor Actor, input SetStatusInput) (*Info, error) {
	target, err := request.ParseStatus(input.Status)
	if err != nil {
		return nil, err
	}

	req, err := s.find(ctx, actor.CompanyID, input.RequestID)
	if err != nil {
		return nil, err
	}

	if err := req.TransitionTo(target); err != nil {
		return nil, err
	}

	if err := s.requestRepo.Update(ctx, req); err != nil {
		s.logger.Error("Failed to update request status",
			zap.String("request_id", input.RequestID.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update request")
	}

	s.publishEvents(ctx, req.GetDomainEvents())
	req.ClearDomainEvents()

	s.logger.Info("Request status changed",
		zap.String("request_id", input.RequestID.String()),
		zap.String("status", string(target)))

	return s.info(ctx, actor.CompanyID, req), nil
}

func (s *Service) find(ctx context.Context, companyID, id uuid.UUID) (*request.Request, error) {
	req, err := s.requestRepo.FindByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Request not found")
		}
		s.logger.Error("Failed to load request",
			zap.String("request_id", id.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load request")
	}
	return req, nil
}

// info builds the client representation, resolving the product name when the
// request is product-linked. A missing product (deleted since) is not an
// error; the request simply renders without a name.
func (s *Service) info(ctx context.Context, companyID uuid.UUID, req *request.Request) *Info {
	info := &Info{
		ID:          req.ID,
		CustomerID:  req.CustomerID,
		ProductID:   req.ProductID,
		Type:        req.Type,
		Priority:    req.Priority,
		Description: req.Description,
		Status:      string(req.Status),
		CreatedAt:   req.CreatedAt,
		UpdatedAt:   req.UpdatedAt,
	}
	if req.ProductID != nil {
		if product, err := s.productRepo.FindByID(ctx, companyID, *req.ProductID); err == nil {
			info.ProductName = product.Name
		}
	}
	return info
}

func (s *Service) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.events == nil || len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish domain events", zap.Error(err))
	}
}
