package identity

import (
	"github.com/shelfscan/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeCompany = "Company"
	AggregateTypeUser    = "User"
)

// Identity domain event types
const (
	EventTypeCompanyCreated = "CompanyCreated"
	EventTypeUserRegistered = "UserRegistered"
)

// CompanyCreatedEvent is published when a company is created
type CompanyCreatedEvent struct {
	shared.BaseDomainEvent
	Domain string `json:"domain"`
	Name   string `json:"name"`
}

// NewCompanyCreatedEvent creates a new CompanyCreatedEvent
func NewCompanyCreatedEvent(company *Company) *CompanyCreatedEvent {
	return &CompanyCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCompanyCreated, AggregateTypeCompany, company.ID, company.ID),
		Domain:          company.Domain,
		Name:            company.Name,
	}
}

// UserRegisteredEvent is published when a user registers
type UserRegisteredEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// NewUserRegisteredEvent creates a new UserRegisteredEvent
func NewUserRegisteredEvent(user *User) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserRegistered, AggregateTypeUser, user.ID, user.CompanyID),
		Email:           user.Email,
		Role:            user.Role,
	}
}
