package request

import (
	"github.com/google/uuid"
	"github.com/shelfscan/backend/internal/domain/shared"
)

// AggregateTypeRequest identifies the request aggregate in events
const AggregateTypeRequest = "Request"

// Request domain event types
const (
	EventTypeRequestCreated       = "RequestCreated"
	EventTypeRequestStatusChanged = "RequestStatusChanged"
)

// RequestCreatedEvent is published when a customer files a request
type RequestCreatedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID  `json:"customer_id"`
	ProductID  *uuid.UUID `json:"product_id"`
}

// NewRequestCreatedEvent creates a new RequestCreatedEvent
func NewRequestCreatedEvent(r *Request) *RequestCreatedEvent {
	return &RequestCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRequestCreated, AggregateTypeRequest, r.ID, r.CompanyID),
		CustomerID:      r.CustomerID,
		ProductID:       r.ProductID,
	}
}

// RequestStatusChangedEvent is published on every status transition
type RequestStatusChangedEvent struct {
	shared.BaseDomainEvent
	From Status `json:"from"`
	To   Status `json:"to"`
}

// NewRequestStatusChangedEvent creates a new RequestStatusChangedEvent
func NewRequestStatusChangedEvent(r *Request, from Status) *RequestStatusChangedEvent {
	return &RequestStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRequestStatusChanged, AggregateTypeRequest, r.ID, r.CompanyID),
		From:            from,
		To:              r.Status,
	}
}
