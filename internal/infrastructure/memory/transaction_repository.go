package memory

import (
	"context"
	"slices"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo ledger en memoria (solo inserción).
type TransactionRepo struct {
	s *Store
	j *journal
}

func (r *TransactionRepo) Create(_ context.Context, t *entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	id := t.ID
	r.j.record(func() {
		r.s.transactions = slices.DeleteFunc(r.s.transactions, func(x entity.Transaction) bool { return x.ID == id })
	})
	r.s.transactions = append(r.s.transactions, *t)
	return nil
}

func (r *TransactionRepo) GetByID(_ context.Context, id string) (*entity.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, t := range r.s.transactions {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, nil
}

func (r *TransactionRepo) ListAll(_ context.Context) ([]*entity.Transaction, error) {
	return r.filter(func(*entity.Transaction) bool { return true }), nil
}

func (r *TransactionRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Transaction, error) {
	return r.filter(func(t *entity.Transaction) bool { return t.ProductID == productID }), nil
}

func (r *TransactionRepo) ListByWarehouse(_ context.Context, warehouseID string) ([]*entity.Transaction, error) {
	return r.filter(func(t *entity.Transaction) bool {
		return (t.SourceWarehouseID != nil && *t.SourceWarehouseID == warehouseID) ||
			(t.DestinationWarehouseID != nil && *t.DestinationWarehouseID == warehouseID)
	}), nil
}

func (r *TransactionRepo) ListByPeriod(_ context.Context, from, to time.Time) ([]*entity.Transaction, error) {
	return r.filter(func(t *entity.Transaction) bool { return inRange(t.Timestamp, from, to) }), nil
}

func (r *TransactionRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Transaction, error) {
	all, _ := r.ListAll(ctx)
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *TransactionRepo) TotalsByType(_ context.Context, from, to time.Time) ([]repository.TypeTotals, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	byType := map[entity.TransactionType]*repository.TypeTotals{}
	for _, t := range r.s.transactions {
		if !inRange(t.Timestamp, from, to) {
			continue
		}
		agg, ok := byType[t.Type]
		if !ok {
			agg = &repository.TypeTotals{Type: t.Type, Quantity: decimal.Zero}
			byType[t.Type] = agg
		}
		agg.Count++
		agg.Quantity = agg.Quantity.Add(t.Quantity)
	}
	out := make([]repository.TypeTotals, 0, len(byType))
	for _, agg := range byType {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out, nil
}

// filter devuelve los movimientos más recientes primero.
func (r *TransactionRepo) filter(keep func(*entity.Transaction) bool) []*entity.Transaction {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Transaction, 0)
	for i := len(r.s.transactions) - 1; i >= 0; i-- {
		t := r.s.transactions[i]
		if keep(&t) {
			out = append(out, &t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out
}

func inRange(ts, from, to time.Time) bool {
	return !ts.Before(from) && !ts.After(to)
}
