package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Active por defecto true.
type CreateProductRequest struct {
	Code        string           `json:"code"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Price       decimal.Decimal  `json:"price"`
	Barcode     *string          `json:"barcode,omitempty"`
	Weight      *decimal.Decimal `json:"weight,omitempty"`
	Dimensions  *string          `json:"dimensions,omitempty"`
	Active      *bool            `json:"active,omitempty"`
}

// UpdateProductRequest entrada para actualizar un producto; solo se aplican los campos presentes.
type UpdateProductRequest struct {
	Code        *string          `json:"code,omitempty"`
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Barcode     *string          `json:"barcode,omitempty"`
	Weight      *decimal.Decimal `json:"weight,omitempty"`
	Dimensions  *string          `json:"dimensions,omitempty"`
	Active      *bool            `json:"active,omitempty"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string           `json:"id"`
	Code        string           `json:"code"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Price       decimal.Decimal  `json:"price"`
	Barcode     *string          `json:"barcode,omitempty"`
	Weight      *decimal.Decimal `json:"weight,omitempty"`
	Dimensions  *string          `json:"dimensions,omitempty"`
	Active      bool             `json:"active"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Meta  ListMeta          `json:"meta"`
}
