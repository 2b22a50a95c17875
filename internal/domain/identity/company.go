package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/shelfscan/backend/internal/domain/shared"
)

// Company represents an organization (tenant) in the multi-tenant system.
// A company is identified externally by its domain, which is globally unique.
type Company struct {
	shared.BaseAggregateRoot
	Domain string
	Name   string
}

var companyDomainPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9.-]{0,198}[a-z0-9])?$`)

// NormalizeDomain canonicalizes a company domain for lookups and storage
func NormalizeDomain(domain string) string {
	return strings.ToLower(strings.TrimSpace(domain))
}

func validateCompanyDomain(domain string) error {
	if domain == "" {
		return shared.NewDomainError("INVALID_DOMAIN", "Company domain is required")
	}
	if !companyDomainPattern.MatchString(domain) {
		return shared.NewDomainError("INVALID_DOMAIN", "Company domain contains invalid characters")
	}
	return nil
}

func validateCompanyName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Company name is required")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Company name cannot exceed 200 characters")
	}
	return nil
}

// NewCompany creates a new company with a normalized domain
func NewCompany(domain, name string) (*Company, error) {
	domain = NormalizeDomain(domain)
	if err := validateCompanyDomain(domain); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		// Registration form allows an empty display name; fall back to the domain
		name = domain
	}
	if err := validateCompanyName(name); err != nil {
		return nil, err
	}

	company := &Company{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Domain:            domain,
		Name:              name,
	}

	company.AddDomainEvent(NewCompanyCreatedEvent(company))

	return company, nil
}

// Rename updates the company's display name
func (c *Company) Rename(name string) error {
	if err := validateCompanyName(name); err != nil {
		return err
	}
	c.Name = strings.TrimSpace(name)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}
