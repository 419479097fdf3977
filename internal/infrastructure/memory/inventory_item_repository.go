package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

// InventoryItemRepo ítems de inventario en memoria. El bloqueo de fila lo da TxRunner,
// que serializa las transacciones completas.
type InventoryItemRepo struct {
	s *Store
	j *journal
}

func (r *InventoryItemRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	it, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (r *InventoryItemRepo) Get(_ context.Context, productID, warehouseID string) (*entity.InventoryItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if it, ok := r.findPair(productID, warehouseID); ok {
		return &it, nil
	}
	return nil, nil
}

func (r *InventoryItemRepo) GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.InventoryItem, error) {
	return r.Get(ctx, productID, warehouseID)
}

// Save upsert por (producto, bodega); conserva el ID de la fila existente.
func (r *InventoryItemRepo) Save(_ context.Context, item *entity.InventoryItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if existing, ok := r.findPair(item.ProductID, item.WarehouseID); ok && existing.ID != item.ID {
		item.ID = existing.ID
		item.CreatedAt = existing.CreatedAt
	}
	r.j.record(restoreKey(r.s.items, item.ID))
	r.s.items[item.ID] = *item
	return nil
}

// AddQuantity suma sobre el ítem existente (conserva id, niveles y created_at) o lo crea.
func (r *InventoryItemRepo) AddQuantity(_ context.Context, item *entity.InventoryItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if existing, ok := r.findPair(item.ProductID, item.WarehouseID); ok {
		*item = existing.Adjusted(item.Quantity, item.UpdatedAt)
	}
	r.j.record(restoreKey(r.s.items, item.ID))
	r.s.items[item.ID] = *item
	return nil
}

func (r *InventoryItemRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.j.record(restoreKey(r.s.items, id))
	delete(r.s.items, id)
	return nil
}

func (r *InventoryItemRepo) ListAll(_ context.Context) ([]*entity.InventoryItem, error) {
	return r.filter(func(*entity.InventoryItem) bool { return true }), nil
}

func (r *InventoryItemRepo) ListByWarehouse(_ context.Context, warehouseID string) ([]*entity.InventoryItem, error) {
	return r.filter(func(it *entity.InventoryItem) bool { return it.WarehouseID == warehouseID }), nil
}

func (r *InventoryItemRepo) ListByProduct(_ context.Context, productID string) ([]*entity.InventoryItem, error) {
	return r.filter(func(it *entity.InventoryItem) bool { return it.ProductID == productID }), nil
}

func (r *InventoryItemRepo) ListBelowThreshold(_ context.Context, threshold decimal.Decimal) ([]*entity.InventoryItem, error) {
	return r.filter(func(it *entity.InventoryItem) bool { return it.Quantity.LessThanOrEqual(threshold) }), nil
}

func (r *InventoryItemRepo) ListBelowMinimum(_ context.Context) ([]*entity.InventoryItem, error) {
	return r.filter(func(it *entity.InventoryItem) bool { return it.IsBelowMinimum() }), nil
}

func (r *InventoryItemRepo) ListAboveMaximum(_ context.Context) ([]*entity.InventoryItem, error) {
	return r.filter(func(it *entity.InventoryItem) bool { return it.IsAboveMaximum() }), nil
}

func (r *InventoryItemRepo) CountByWarehouse(ctx context.Context, warehouseID string) (int, error) {
	items, _ := r.ListByWarehouse(ctx, warehouseID)
	return len(items), nil
}

func (r *InventoryItemRepo) SumQuantityByWarehouse(ctx context.Context, warehouseID string) (decimal.Decimal, error) {
	items, _ := r.ListByWarehouse(ctx, warehouseID)
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Quantity)
	}
	return total, nil
}

// findPair requiere el lock tomado por el caller.
func (r *InventoryItemRepo) findPair(productID, warehouseID string) (entity.InventoryItem, bool) {
	for _, it := range r.s.items {
		if it.ProductID == productID && it.WarehouseID == warehouseID {
			return it, true
		}
	}
	return entity.InventoryItem{}, false
}

func (r *InventoryItemRepo) filter(keep func(*entity.InventoryItem) bool) []*entity.InventoryItem {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.InventoryItem, 0)
	for _, it := range r.s.items {
		if keep(&it) {
			out = append(out, &it)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
