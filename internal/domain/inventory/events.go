package inventory

import (
	"github.com/google/uuid"
	"github.com/shelfscan/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeProduct = "Product"
	AggregateTypeShelf   = "Shelf"
)

// Inventory domain event types
const (
	EventTypeProductCreated = "ProductCreated"
	EventTypeProductMoved   = "ProductMoved"
)

// ProductCreatedEvent is published when a product is added to inventory
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	Article   string `json:"article"`
	QRContent string `json:"qr_content"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, product.ID, product.CompanyID),
		Article:         product.Article,
		QRContent:       product.QRContent,
	}
}

// ProductMovedEvent is published when a product changes shelf
type ProductMovedEvent struct {
	shared.BaseDomainEvent
	ShelfID *uuid.UUID `json:"shelf_id"`
}

// NewProductMovedEvent creates a new ProductMovedEvent
func NewProductMovedEvent(product *Product) *ProductMovedEvent {
	return &ProductMovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductMoved, AggregateTypeProduct, product.ID, product.CompanyID),
		ShelfID:         product.ShelfID,
	}
}
