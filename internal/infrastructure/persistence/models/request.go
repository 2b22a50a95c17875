package models

import (
	"github.com/google/uuid"
	"github.com/shelfscan/backend/internal/domain/request"
)

// RequestModel is the persistence model for customer requests.
// A partial unique index on (company_id, customer_id, product_id) where the
// status is not cancelled backs the one-active-product-request rule; it is
// created by the SQL migrations, not by gorm tags.
type RequestModel struct {
	CompanyAggregateModel
	CustomerID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProductID   *uuid.UUID `gorm:"type:uuid;index"`
	Type        string     `gorm:"size:100"`
	Priority    string     `gorm:"size:50"`
	Description string     `gorm:"size:2000"`
	Status      string     `gorm:"size:20;not null;default:'new';index"`
}

// TableName returns the table name for RequestModel
func (RequestModel) TableName() string {
	return "requests"
}

// ToDomain converts RequestModel to a domain Request
func (m *RequestModel) ToDomain() *request.Request {
	r := &request.Request{
		CustomerID:  m.CustomerID,
		ProductID:   m.ProductID,
		Type:        m.Type,
		Priority:    m.Priority,
		Description: m.Description,
		Status:      request.Status(m.Status),
	}
	m.PopulateCompanyAggregateRoot(&r.CompanyAggregateRoot)
	return r
}

// RequestModelFromDomain converts a domain Request to RequestModel
func RequestModelFromDomain(r *request.Request) *RequestModel {
	m := &RequestModel{
		CustomerID:  r.CustomerID,
		ProductID:   r.ProductID,
		Type:        r.Type,
		Priority:    r.Priority,
		Description: r.Description,
		Status:      string(r.Status),
	}
	m.FromDomainCompanyAggregateRoot(r.CompanyAggregateRoot)
	return m
}
