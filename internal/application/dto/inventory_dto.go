package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInventoryItemRequest body para POST /api/v1/inventory.
type CreateInventoryItemRequest struct {
	ProductID    string           `json:"product_id"`
	WarehouseID  string           `json:"warehouse_id"`
	Quantity     decimal.Decimal  `json:"quantity"`
	MinimumLevel *decimal.Decimal `json:"minimum_level,omitempty"`
	MaximumLevel *decimal.Decimal `json:"maximum_level,omitempty"`
}

// SetQuantityRequest body para PUT /api/v1/inventory/:productId/:warehouseId.
type SetQuantityRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// AdjustQuantityRequest body para POST .../adjust. Adjustment puede ser negativo.
type AdjustQuantityRequest struct {
	Adjustment decimal.Decimal `json:"adjustment"`
}

// UpdateLevelsRequest body para PUT /api/v1/inventory/:id/levels.
type UpdateLevelsRequest struct {
	MinimumLevel *decimal.Decimal `json:"minimum_level"`
	MaximumLevel *decimal.Decimal `json:"maximum_level"`
}

// InventoryItemResponse salida de un ítem de inventario.
type InventoryItemResponse struct {
	ID           string           `json:"id"`
	ProductID    string           `json:"product_id"`
	WarehouseID  string           `json:"warehouse_id"`
	Quantity     decimal.Decimal  `json:"quantity"`
	MinimumLevel *decimal.Decimal `json:"minimum_level,omitempty"`
	MaximumLevel *decimal.Decimal `json:"maximum_level,omitempty"`
	Status       string           `json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// InventoryItemListResponse lista de ítems.
type InventoryItemListResponse struct {
	Items []InventoryItemResponse `json:"items"`
	Meta  ListMeta                `json:"meta"`
}

// QuantityResponse cantidad actual de un producto en una bodega.
type QuantityResponse struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un ítem bajo su mínimo.
type ReplenishmentSuggestionDTO struct {
	ItemID       string          `json:"item_id"`
	ProductID    string          `json:"product_id"`
	WarehouseID  string          `json:"warehouse_id"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinimumLevel decimal.Decimal `json:"minimum_level"`
	TargetLevel  decimal.Decimal `json:"target_level"`  // máximo, o mínimo × 1.5
	SuggestedQty decimal.Decimal `json:"suggested_qty"` // TargetLevel - CurrentStock
	Priority     int             `json:"priority"`      // 1 = más urgente
}
