package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/ports"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	invdomain "github.com/jhoicas/warehouse-api/internal/domain/inventory"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
	"github.com/jhoicas/warehouse-api/internal/domain/validation"
)

// WarehouseUseCase casos de uso CRUD para bodegas.
type WarehouseUseCase struct {
	repo     repository.WarehouseRepository
	items    repository.InventoryItemRepository
	products repository.ProductRepository
	sinks    ports.Sinks
	now      func() time.Time
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(
	repo repository.WarehouseRepository,
	items repository.InventoryItemRepository,
	products repository.ProductRepository,
	sinks ports.Sinks,
) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo, items: items, products: products, sinks: sinks.WithDefaults(), now: time.Now}
}

// Create crea una nueva bodega. El nombre debe ser único.
func (uc *WarehouseUseCase) Create(ctx context.Context, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	now := uc.now()
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	warehouse := &entity.Warehouse{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Location:    strings.TrimSpace(in.Location),
		Capacity:    in.Capacity,
		Description: in.Description,
		Active:      active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := validation.ValidateWarehouse(warehouse); err != nil {
		return nil, uc.fail(ctx, "CREATE_WAREHOUSE", err)
	}
	exists, err := uc.repo.ExistsByName(ctx, warehouse.Name)
	if err != nil {
		return nil, uc.fail(ctx, "CREATE_WAREHOUSE", err)
	}
	if exists {
		return nil, uc.fail(ctx, "CREATE_WAREHOUSE", fmt.Errorf("bodega con nombre '%s': %w", warehouse.Name, domain.ErrDuplicate))
	}
	if err := uc.repo.Create(ctx, warehouse); err != nil {
		return nil, uc.fail(ctx, "CREATE_WAREHOUSE", err)
	}
	uc.sinks.Audit.LogDataChange(ctx, "WAREHOUSE_CREATED", "Warehouse", warehouse.ID, nil, toWarehouseResponse(warehouse))
	return toWarehouseResponse(warehouse), nil
}

// GetByID obtiene una bodega por ID.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, id string) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// Update actualiza una bodega.
func (uc *WarehouseUseCase) Update(ctx context.Context, id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	current, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := current.Apply(entity.WarehouseUpdate{
		Name:        in.Name,
		Location:    in.Location,
		Capacity:    in.Capacity,
		Description: in.Description,
		Active:      in.Active,
	}, uc.now())
	if err := validation.ValidateWarehouse(&updated); err != nil {
		return nil, uc.fail(ctx, "UPDATE_WAREHOUSE", err)
	}
	if updated.Name != current.Name {
		exists, err := uc.repo.ExistsByName(ctx, updated.Name)
		if err != nil {
			return nil, uc.fail(ctx, "UPDATE_WAREHOUSE", err)
		}
		if exists {
			return nil, uc.fail(ctx, "UPDATE_WAREHOUSE", fmt.Errorf("bodega con nombre '%s': %w", updated.Name, domain.ErrDuplicate))
		}
	}
	if err := uc.repo.Update(ctx, &updated); err != nil {
		return nil, uc.fail(ctx, "UPDATE_WAREHOUSE", err)
	}
	uc.sinks.Audit.LogDataChange(ctx, "WAREHOUSE_UPDATED", "Warehouse", id, toWarehouseResponse(current), toWarehouseResponse(&updated))
	return toWarehouseResponse(&updated), nil
}

// List lista todas las bodegas.
func (uc *WarehouseUseCase) List(ctx context.Context) (*dto.WarehouseListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toWarehouseList(list), nil
}

// Search filtra por nombre y/o ubicación; sin filtros devuelve todas.
func (uc *WarehouseUseCase) Search(ctx context.Context, name, location string) (*dto.WarehouseListResponse, error) {
	name, location = strings.TrimSpace(name), strings.TrimSpace(location)
	if name == "" && location == "" {
		return uc.List(ctx)
	}
	list, err := uc.repo.Search(ctx, name, location)
	if err != nil {
		return nil, err
	}
	return toWarehouseList(list), nil
}

// Delete elimina una bodega solo si no tiene inventario.
func (uc *WarehouseUseCase) Delete(ctx context.Context, id string) error {
	warehouse, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	count, err := uc.items.CountByWarehouse(ctx, id)
	if err != nil {
		return uc.fail(ctx, "DELETE_WAREHOUSE", err)
	}
	if count > 0 {
		return uc.fail(ctx, "DELETE_WAREHOUSE",
			domain.Conflictf("no se puede eliminar una bodega con inventario; ítems: %d", count))
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return uc.fail(ctx, "DELETE_WAREHOUSE", err)
	}
	uc.sinks.Audit.LogDataChange(ctx, "WAREHOUSE_DELETED", "Warehouse", id, toWarehouseResponse(warehouse), nil)
	return nil
}

// Summary cantidad total, valor, alertas y ocupación de la bodega.
func (uc *WarehouseUseCase) Summary(ctx context.Context, id string) (*dto.WarehouseSummaryResponse, error) {
	warehouse, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := uc.items.ListByWarehouse(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &dto.WarehouseSummaryResponse{
		Warehouse:     *toWarehouseResponse(warehouse),
		ItemCount:     len(items),
		TotalQuantity: decimal.Zero,
		TotalValue:    decimal.Zero,
	}
	prices := map[string]decimal.Decimal{}
	for _, it := range items {
		price, ok := prices[it.ProductID]
		if !ok {
			p, err := uc.products.GetByID(ctx, it.ProductID)
			if err != nil {
				return nil, err
			}
			if p != nil {
				price = p.Price
			}
			prices[it.ProductID] = price
		}
		out.TotalQuantity = out.TotalQuantity.Add(it.Quantity)
		out.TotalValue = out.TotalValue.Add(invdomain.StockValue(it.Quantity, price))
		if it.IsBelowMinimum() {
			out.LowStockCount++
		}
		if it.IsAboveMaximum() {
			out.ExcessCount++
		}
	}
	out.UtilizationPct = warehouse.Utilization(out.TotalQuantity)
	return out, nil
}

func (uc *WarehouseUseCase) get(ctx context.Context, id string) (*entity.Warehouse, error) {
	warehouse, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.NotFoundf("bodega %s", id)
	}
	return warehouse, nil
}

func (uc *WarehouseUseCase) fail(ctx context.Context, action string, err error) error {
	return recordFailure(ctx, uc.sinks, "warehouse", action, err)
}

func toWarehouseList(list []*entity.Warehouse) *dto.WarehouseListResponse {
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{Items: items, Meta: dto.ListMeta{Total: len(items)}}
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	if w == nil {
		return nil
	}
	out := dto.NewWarehouseResponse(w)
	return &out
}
