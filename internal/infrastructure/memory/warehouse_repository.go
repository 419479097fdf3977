package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo bodegas en memoria.
type WarehouseRepo struct {
	s *Store
	j *journal
}

func (r *WarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.warehouses {
		if existing.Name == w.Name {
			return domain.ErrDuplicate
		}
	}
	r.j.record(restoreKey(r.s.warehouses, w.ID))
	r.s.warehouses[w.ID] = *w
	return nil
}

func (r *WarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	w, ok := r.s.warehouses[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r *WarehouseRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, w := range r.s.warehouses {
		if w.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *WarehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.warehouses[w.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, existing := range r.s.warehouses {
		if id != w.ID && existing.Name == w.Name {
			return domain.ErrDuplicate
		}
	}
	r.j.record(restoreKey(r.s.warehouses, w.ID))
	r.s.warehouses[w.ID] = *w
	return nil
}

func (r *WarehouseRepo) List(ctx context.Context) ([]*entity.Warehouse, error) {
	return r.Search(ctx, "", "")
}

func (r *WarehouseRepo) Search(_ context.Context, name, location string) ([]*entity.Warehouse, error) {
	name, location = strings.ToLower(name), strings.ToLower(location)
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Warehouse, 0, len(r.s.warehouses))
	for _, w := range r.s.warehouses {
		if name != "" && !strings.Contains(strings.ToLower(w.Name), name) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(w.Location), location) {
			continue
		}
		out = append(out, &w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *WarehouseRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.j.record(restoreKey(r.s.warehouses, id))
	delete(r.s.warehouses, id)
	return nil
}
