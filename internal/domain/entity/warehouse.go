package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Warehouse representa una bodega. Name es único.
type Warehouse struct {
	ID          string
	Name        string
	Location    string
	Capacity    decimal.Decimal
	Description *string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// WarehouseUpdate campos opcionales para actualizar una bodega.
type WarehouseUpdate struct {
	Name        *string
	Location    *string
	Capacity    *decimal.Decimal
	Description *string
	Active      *bool
}

// Apply devuelve una copia de la bodega con los cambios aplicados.
func (w Warehouse) Apply(u WarehouseUpdate, now time.Time) Warehouse {
	if u.Name != nil {
		w.Name = *u.Name
	}
	if u.Location != nil {
		w.Location = *u.Location
	}
	if u.Capacity != nil {
		w.Capacity = *u.Capacity
	}
	if u.Description != nil {
		w.Description = u.Description
	}
	if u.Active != nil {
		w.Active = *u.Active
	}
	w.UpdatedAt = now
	return w
}

// Utilization porcentaje de ocupación (cantidad total / capacidad × 100), redondeado a 2 decimales.
func (w *Warehouse) Utilization(totalQuantity decimal.Decimal) decimal.Decimal {
	if !w.Capacity.IsPositive() {
		return decimal.Zero
	}
	return totalQuantity.Div(w.Capacity).Mul(decimal.NewFromInt(100)).Round(2)
}
