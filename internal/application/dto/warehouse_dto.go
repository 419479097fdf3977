package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateWarehouseRequest entrada para crear una bodega.
type CreateWarehouseRequest struct {
	Name        string          `json:"name"`
	Location    string          `json:"location"`
	Capacity    decimal.Decimal `json:"capacity"`
	Description *string         `json:"description,omitempty"`
	Active      *bool           `json:"active,omitempty"`
}

// UpdateWarehouseRequest entrada para actualizar una bodega.
type UpdateWarehouseRequest struct {
	Name        *string          `json:"name,omitempty"`
	Location    *string          `json:"location,omitempty"`
	Capacity    *decimal.Decimal `json:"capacity,omitempty"`
	Description *string          `json:"description,omitempty"`
	Active      *bool            `json:"active,omitempty"`
}

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Location    string          `json:"location"`
	Capacity    decimal.Decimal `json:"capacity"`
	Description *string         `json:"description,omitempty"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// WarehouseListResponse lista de bodegas.
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
	Meta  ListMeta            `json:"meta"`
}

// WarehouseSummaryResponse ocupación y valor de una bodega.
type WarehouseSummaryResponse struct {
	Warehouse      WarehouseResponse `json:"warehouse"`
	ItemCount      int               `json:"item_count"`
	TotalQuantity  decimal.Decimal   `json:"total_quantity"`
	TotalValue     decimal.Decimal   `json:"total_value"`
	LowStockCount  int               `json:"low_stock_count"`
	ExcessCount    int               `json:"excess_count"`
	UtilizationPct decimal.Decimal   `json:"utilization_pct"`
}
