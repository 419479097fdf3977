package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// CheckLowStock devuelve los ítems con cantidad <= threshold y registra una alerta por cada uno.
func (uc *InventoryUseCase) CheckLowStock(ctx context.Context, threshold decimal.Decimal) ([]*entity.InventoryItem, error) {
	items, err := uc.ListBelowThreshold(ctx, threshold)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		uc.sinks.Metrics.RecordLowStockAlert(it.WarehouseID)
		uc.sinks.Audit.LogAction(ctx, "LOW_STOCK_DETECTED", "InventoryItem", it.ID,
			fmt.Sprintf("producto=%s bodega=%s cantidad=%s umbral=%s", it.ProductID, it.WarehouseID, it.Quantity, threshold))
	}
	if len(items) > 0 {
		uc.sinks.Log.Warn().Int("items", len(items)).Str("threshold", threshold.String()).Msg("stock bajo detectado")
	}
	return items, nil
}

// CheckBelowMinimum ítems bajo su nivel mínimo, con alerta por cada uno.
func (uc *InventoryUseCase) CheckBelowMinimum(ctx context.Context) ([]*entity.InventoryItem, error) {
	items, err := uc.items.ListBelowMinimum(ctx)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		uc.sinks.Metrics.RecordLowStockAlert(it.WarehouseID)
		uc.sinks.Audit.LogAction(ctx, "BELOW_MINIMUM_DETECTED", "InventoryItem", it.ID,
			fmt.Sprintf("cantidad=%s mínimo=%s", it.Quantity, it.MinimumLevel))
	}
	return items, nil
}

// CheckAboveMaximum ítems sobre su nivel máximo.
func (uc *InventoryUseCase) CheckAboveMaximum(ctx context.Context) ([]*entity.InventoryItem, error) {
	items, err := uc.items.ListAboveMaximum(ctx)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		uc.sinks.Audit.LogAction(ctx, "ABOVE_MAXIMUM_DETECTED", "InventoryItem", it.ID,
			fmt.Sprintf("cantidad=%s máximo=%s", it.Quantity, it.MaximumLevel))
	}
	return items, nil
}

// ReplenishmentSuggestion cantidad sugerida para volver al nivel objetivo.
type ReplenishmentSuggestion struct {
	Item         *entity.InventoryItem
	TargetLevel  decimal.Decimal
	SuggestedQty decimal.Decimal
	Priority     int
}

// Replenishment lista los ítems bajo mínimo con la cantidad a pedir: hasta el máximo
// si existe, si no hasta 1.5 × mínimo. Prioridad 1 = mayor déficit.
func (uc *InventoryUseCase) Replenishment(ctx context.Context) ([]ReplenishmentSuggestion, error) {
	items, err := uc.items.ListBelowMinimum(ctx)
	if err != nil {
		return nil, err
	}
	factor := decimal.RequireFromString("1.5")
	out := make([]ReplenishmentSuggestion, 0, len(items))
	for _, it := range items {
		target := it.MinimumLevel.Mul(factor).Round(2)
		if it.MaximumLevel != nil {
			target = *it.MaximumLevel
		}
		suggested := target.Sub(it.Quantity)
		if suggested.IsNegative() {
			suggested = decimal.Zero
		}
		out = append(out, ReplenishmentSuggestion{Item: it, TargetLevel: target, SuggestedQty: suggested})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SuggestedQty.GreaterThan(out[j].SuggestedQty)
	})
	for i := range out {
		out[i].Priority = i + 1
	}
	return out, nil
}
