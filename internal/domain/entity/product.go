package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. Code es único en todo el sistema.
type Product struct {
	ID          string
	Code        string
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal
	Barcode     *string
	Weight      *decimal.Decimal
	Dimensions  *string // formato "LxAxH", ej. "10x20x5.5"
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsAvailable indica si el producto admite movimientos de stock.
func (p *Product) IsAvailable() bool {
	return p.Active
}

// ProductUpdate campos opcionales para actualizar un producto.
type ProductUpdate struct {
	Code        *string
	Name        *string
	Description *string
	Category    *string
	Price       *decimal.Decimal
	Barcode     *string
	Weight      *decimal.Decimal
	Dimensions  *string
	Active      *bool
}

// Apply devuelve una copia del producto con los cambios aplicados.
func (p Product) Apply(u ProductUpdate, now time.Time) Product {
	if u.Code != nil {
		p.Code = *u.Code
	}
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Barcode != nil {
		p.Barcode = u.Barcode
	}
	if u.Weight != nil {
		p.Weight = u.Weight
	}
	if u.Dimensions != nil {
		p.Dimensions = u.Dimensions
	}
	if u.Active != nil {
		p.Active = *u.Active
	}
	p.UpdatedAt = now
	return p
}
