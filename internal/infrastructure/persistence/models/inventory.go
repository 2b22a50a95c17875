package models

import (
	"github.com/google/uuid"
	"github.com/shelfscan/backend/internal/domain/inventory"
)

// ProductModel is the persistence model for products.
// The raw QR payload is stored verbatim; interpreted fields live alongside it.
type ProductModel struct {
	CompanyAggregateModel
	Article   string     `gorm:"size:500;not null"`
	Name      string     `gorm:"size:500;not null"`
	Price     string     `gorm:"size:100;not null;default:'0'"`
	QRContent string     `gorm:"column:qr_content;not null"`
	ShelfID   *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for ProductModel
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts ProductModel to a domain Product
func (m *ProductModel) ToDomain() *inventory.Product {
	product := &inventory.Product{
		Article:   m.Article,
		Name:      m.Name,
		Price:     m.Price,
		QRContent: m.QRContent,
		ShelfID:   m.ShelfID,
	}
	m.PopulateCompanyAggregateRoot(&product.CompanyAggregateRoot)
	return product
}

// ProductModelFromDomain converts a domain Product to ProductModel
func ProductModelFromDomain(p *inventory.Product) *ProductModel {
	m := &ProductModel{
		Article:   p.Article,
		Name:      p.Name,
		Price:     p.Price,
		QRContent: p.QRContent,
		ShelfID:   p.ShelfID,
	}
	m.FromDomainCompanyAggregateRoot(p.CompanyAggregateRoot)
	return m
}

// ShelfModel is the persistence model for shelves
type ShelfModel struct {
	CompanyAggregateModel
	Name string `gorm:"size:200;not null"`
}

// TableName returns the table name for ShelfModel
func (ShelfModel) TableName() string {
	return "shelves"
}

// ToDomain converts ShelfModel to a domain Shelf
func (m *ShelfModel) ToDomain() *inventory.Shelf {
	shelf := &inventory.Shelf{
		Name: m.Name,
	}
	m.PopulateCompanyAggregateRoot(&shelf.CompanyAggregateRoot)
	return shelf
}

// ShelfModelFromDomain converts a domain Shelf to ShelfModel
func ShelfModelFromDomain(s *inventory.Shelf) *ShelfModel {
	m := &ShelfModel{
		Name: s.Name,
	}
	m.FromDomainCompanyAggregateRoot(s.CompanyAggregateRoot)
	return m
}
