package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-api/internal/domain"
)

// ApplyDelta calcula current + delta y rechaza resultados negativos (servicio de dominio).
func ApplyDelta(current, delta decimal.Decimal) (decimal.Decimal, error) {
	next := current.Add(delta)
	if next.IsNegative() {
		return current, domain.ErrNegativeStock
	}
	return next, nil
}

// Sufficient indica si hay stock para retirar required.
func Sufficient(available, required decimal.Decimal) bool {
	return available.GreaterThanOrEqual(required)
}

// StockValue valor del stock: cantidad × precio, redondeado a 2 decimales.
func StockValue(qty, price decimal.Decimal) decimal.Decimal {
	return qty.Mul(price).Round(2)
}
