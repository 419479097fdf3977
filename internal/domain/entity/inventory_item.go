package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockStatus clasificación del nivel de stock respecto a los umbrales.
type StockStatus string

const (
	StockStatusLow    StockStatus = "LOW"
	StockStatusNormal StockStatus = "NORMAL"
	StockStatusExcess StockStatus = "EXCESS"
)

// InventoryItem es la proyección materializada del stock de un producto en una bodega.
// Existe a lo sumo uno por par (ProductID, WarehouseID) y Quantity nunca es negativa.
type InventoryItem struct {
	ID           string
	ProductID    string
	WarehouseID  string
	Quantity     decimal.Decimal
	MinimumLevel *decimal.Decimal
	MaximumLevel *decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewInventoryItem crea un ítem nuevo para el par producto/bodega.
func NewInventoryItem(id, productID, warehouseID string, qty decimal.Decimal, now time.Time) InventoryItem {
	return InventoryItem{
		ID:          id,
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    qty,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// WithQuantity devuelve una copia con la cantidad reemplazada.
func (i InventoryItem) WithQuantity(qty decimal.Decimal, now time.Time) InventoryItem {
	i.Quantity = qty
	i.UpdatedAt = now
	return i
}

// Adjusted devuelve una copia con la cantidad sumada a delta (puede ser negativa).
func (i InventoryItem) Adjusted(delta decimal.Decimal, now time.Time) InventoryItem {
	return i.WithQuantity(i.Quantity.Add(delta), now)
}

// WithLevels devuelve una copia con los umbrales mínimo/máximo.
func (i InventoryItem) WithLevels(minLevel, maxLevel *decimal.Decimal, now time.Time) InventoryItem {
	i.MinimumLevel = minLevel
	i.MaximumLevel = maxLevel
	i.UpdatedAt = now
	return i
}

// IsBelowMinimum true si hay umbral mínimo y la cantidad está por debajo.
func (i InventoryItem) IsBelowMinimum() bool {
	return i.MinimumLevel != nil && i.Quantity.LessThan(*i.MinimumLevel)
}

// IsAboveMaximum true si hay umbral máximo y la cantidad lo supera.
func (i InventoryItem) IsAboveMaximum() bool {
	return i.MaximumLevel != nil && i.Quantity.GreaterThan(*i.MaximumLevel)
}

// Status LOW, EXCESS o NORMAL según los umbrales.
func (i InventoryItem) Status() StockStatus {
	switch {
	case i.IsBelowMinimum():
		return StockStatusLow
	case i.IsAboveMaximum():
		return StockStatusExcess
	default:
		return StockStatusNormal
	}
}
