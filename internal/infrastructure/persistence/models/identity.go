package models

import (
	"github.com/google/uuid"
	"github.com/shelfscan/backend/internal/domain/identity"
)

// CompanyModel is the persistence model for companies.
// The domain is globally unique and doubles as the tenant lookup key.
type CompanyModel struct {
	AggregateModel
	Domain string `gorm:"size:200;not null;uniqueIndex:idx_companies_domain"`
	Name   string `gorm:"size:200;not null"`
}

// TableName returns the table name for CompanyModel
func (CompanyModel) TableName() string {
	return "companies"
}

// ToDomain converts CompanyModel to a domain Company
func (m *CompanyModel) ToDomain() *identity.Company {
	company := &identity.Company{
		Domain: m.Domain,
		Name:   m.Name,
	}
	m.PopulateAggregateRoot(&company.BaseAggregateRoot)
	return company
}

// CompanyModelFromDomain converts a domain Company to CompanyModel
func CompanyModelFromDomain(c *identity.Company) *CompanyModel {
	m := &CompanyModel{
		Domain: c.Domain,
		Name:   c.Name,
	}
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	return m
}

// UserModel is the persistence model for users.
// Email uniqueness is per company, not global.
type UserModel struct {
	AggregateModel
	CompanyID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_users_company_email"`
	Email        string    `gorm:"size:200;not null;uniqueIndex:idx_users_company_email"`
	PasswordHash string    `gorm:"size:100;not null"`
	Role         string    `gorm:"size:20;not null"`
	Status       string    `gorm:"size:20;not null;default:'active'"`
}

// TableName returns the table name for UserModel
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts UserModel to a domain User
func (m *UserModel) ToDomain() *identity.User {
	user := &identity.User{
		CompanyID:    m.CompanyID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         identity.Role(m.Role),
		Status:       identity.UserStatus(m.Status),
	}
	m.PopulateAggregateRoot(&user.BaseAggregateRoot)
	return user
}

// UserModelFromDomain converts a domain User to UserModel
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		CompanyID:    u.CompanyID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		Status:       string(u.Status),
	}
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	return m
}
