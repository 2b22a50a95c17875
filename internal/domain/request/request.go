package request

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shelfscan/backend/internal/domain/shared"
)

// Status represents the lifecycle state of a customer request
type Status string

const (
	StatusNew        Status = "new"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// allowedTransitions is the request state machine. Terminal states have no
// outgoing transitions.
var allowedTransitions = map[Status][]Status{
	StatusNew:        {StatusInProgress, StatusCompleted, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// ParseStatus validates and returns a Status from its string form
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusNew:
		return StatusNew, nil
	case StatusInProgress:
		return StatusInProgress, nil
	case StatusCompleted:
		return StatusCompleted, nil
	case StatusCancelled:
		return StatusCancelled, nil
	default:
		return "", shared.NewDomainError("INVALID_STATUS", "Unknown request status")
	}
}

// IsTerminal reports whether the status permits no further transitions
func (s Status) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

// CanTransitionTo reports whether the transition is allowed
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range allowedTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// Request represents a customer request, either linked to a product or a
// general request described by type/priority/description.
type Request struct {
	shared.CompanyAggregateRoot
	CustomerID  uuid.UUID
	ProductID   *uuid.UUID
	Type        string
	Priority    string
	Description string
	Status      Status
}

// NewProductRequest creates a request for a specific product
func NewProductRequest(companyID, customerID, productID uuid.UUID) (*Request, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer ID is required")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product ID is required")
	}
	r := &Request{
		CompanyAggregateRoot: shared.NewCompanyAggregateRootWithCreator(companyID, customerID),
		CustomerID:           customerID,
		ProductID:            &productID,
		Status:               StatusNew,
	}
	r.AddDomainEvent(NewRequestCreatedEvent(r))
	return r, nil
}

// NewGeneralRequest creates a request not linked to any product
func NewGeneralRequest(companyID, customerID uuid.UUID, reqType, priority, description string) (*Request, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer ID is required")
	}
	description = strings.TrimSpace(description)
	if reqType == "" && description == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "General request needs a type or a description")
	}
	r := &Request{
		CompanyAggregateRoot: shared.NewCompanyAggregateRootWithCreator(companyID, customerID),
		CustomerID:           customerID,
		Type:                 reqType,
		Priority:             priority,
		Description:          description,
		Status:               StatusNew,
	}
	r.AddDomainEvent(NewRequestCreatedEvent(r))
	return r, nil
}

// IsActive reports whether the request counts against the one-active-request
// rule (anything not cancelled).
func (r *Request) IsActive() bool {
	return r.Status != StatusCancelled
}

// TransitionTo moves the request to the target status, enforcing the state
// machine. Terminal requests are immutable.
func (r *Request) TransitionTo(target Status) error {
	if r.Status == target {
		return shared.NewDomainError("INVALID_STATE", "Request is already in status "+string(target))
	}
	if !r.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot transition request from "+string(r.Status)+" to "+string(target))
	}
	from := r.Status
	r.Status = target
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	r.AddDomainEvent(NewRequestStatusChangedEvent(r, from))
	return nil
}

// Cancel moves any non-terminal request to cancelled. Only the requesting
// customer may cancel; ownership is checked by the caller against CustomerID.
func (r *Request) Cancel() error {
	if r.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Request is already closed")
	}
	return r.TransitionTo(StatusCancelled)
}
