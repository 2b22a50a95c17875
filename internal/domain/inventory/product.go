package inventory

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shelfscan/backend/internal/domain/shared"
)

// Product represents a scanned inventory item.
// The raw QR payload is always preserved in QRContent; Article/Name/Price are
// either interpreted from a JSON payload or synthesized from the opaque text.
type Product struct {
	shared.CompanyAggregateRoot
	Article   string
	Name      string
	Price     string
	QRContent string
	ShelfID   *uuid.UUID
}

func validateProductField(name, value string, max int) error {
	if strings.TrimSpace(value) == "" {
		return shared.NewDomainError("INVALID_INPUT", name+" is required")
	}
	if len(value) > max {
		return shared.NewDomainError("INVALID_INPUT", name+" is too long")
	}
	return nil
}

// NewProduct creates a new product owned by the uploading worker
func NewProduct(companyID, createdBy uuid.UUID, article, name, price, qrContent string) (*Product, error) {
	if err := validateProductField("Article", article, 500); err != nil {
		return nil, err
	}
	if err := validateProductField("Name", name, 500); err != nil {
		return nil, err
	}
	if price == "" {
		price = "0"
	}
	if qrContent == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "QR content is required")
	}

	product := &Product{
		CompanyAggregateRoot: shared.NewCompanyAggregateRootWithCreator(companyID, createdBy),
		Article:              article,
		Name:                 name,
		Price:                price,
		QRContent:            qrContent,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update replaces the product's editable fields
func (p *Product) Update(article, name, price string) error {
	if err := validateProductField("Article", article, 500); err != nil {
		return err
	}
	if err := validateProductField("Name", name, 500); err != nil {
		return err
	}
	if price == "" {
		price = "0"
	}

	p.Article = article
	p.Name = name
	p.Price = price
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// PlaceOnShelf assigns the product to a shelf. A nil shelfID clears the
// assignment.
func (p *Product) PlaceOnShelf(shelfID *uuid.UUID) {
	p.ShelfID = shelfID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// UploadedBy reports whether the product was uploaded by the given user
func (p *Product) UploadedBy(userID uuid.UUID) bool {
	return p.CreatedBy != nil && *p.CreatedBy == userID
}
