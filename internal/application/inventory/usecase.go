package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-api/internal/application/ports"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	invdomain "github.com/jhoicas/warehouse-api/internal/domain/inventory"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
	"github.com/jhoicas/warehouse-api/internal/domain/validation"
)

var _ StockMover = (*InventoryUseCase)(nil)

// InventoryUseCase mantiene la cantidad por producto+bodega. Toda escritura corre dentro
// de TxRunner y bloquea la fila (SELECT FOR UPDATE) antes de leer-modificar-escribir.
type InventoryUseCase struct {
	txRunner TxRunner
	items    repository.InventoryItemRepository
	sinks    Sinks
	now      func() time.Time
}

// NewInventoryUseCase construye el caso de uso. items se usa para lecturas fuera de transacción.
func NewInventoryUseCase(txRunner TxRunner, items repository.InventoryItemRepository, sinks Sinks) *InventoryUseCase {
	return &InventoryUseCase{
		txRunner: txRunner,
		items:    items,
		sinks:    sinks.WithDefaults(),
		now:      time.Now,
	}
}

// CreateItemInput entrada para crear (o reemplazar) un ítem con umbrales.
type CreateItemInput struct {
	ProductID    string
	WarehouseID  string
	Quantity     decimal.Decimal
	MinimumLevel *decimal.Decimal
	MaximumLevel *decimal.Decimal
}

// SetQuantity fija la cantidad absoluta; crea el ítem si no existe.
func (uc *InventoryUseCase) SetQuantity(ctx context.Context, productID, warehouseID string, qty decimal.Decimal) (*entity.InventoryItem, error) {
	return uc.CreateItem(ctx, CreateItemInput{ProductID: productID, WarehouseID: warehouseID, Quantity: qty})
}

// CreateItem como SetQuantity, aplicando además los umbrales si vienen informados.
func (uc *InventoryUseCase) CreateItem(ctx context.Context, in CreateItemInput) (*entity.InventoryItem, error) {
	if err := validation.ValidateStockQuantity(in.Quantity, "fijar inventario"); err != nil {
		return nil, err
	}
	if err := validation.ValidateLevels(in.MinimumLevel, in.MaximumLevel); err != nil {
		return nil, err
	}
	withLevels := in.MinimumLevel != nil || in.MaximumLevel != nil

	var before *entity.InventoryItem
	var after entity.InventoryItem
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		if err := requireProductAndWarehouse(ctx, r, in.ProductID, in.WarehouseID); err != nil {
			return err
		}
		now := uc.now()
		current, err := r.Items.GetForUpdate(ctx, in.ProductID, in.WarehouseID)
		if err != nil {
			return err
		}
		if current == nil {
			after = entity.NewInventoryItem(uuid.New().String(), in.ProductID, in.WarehouseID, in.Quantity, now)
		} else {
			snapshot := *current
			before = &snapshot
			after = current.WithQuantity(in.Quantity, now)
		}
		if withLevels {
			after = after.WithLevels(in.MinimumLevel, in.MaximumLevel, now)
		}
		return r.Items.Save(ctx, &after)
	})
	if err != nil {
		return nil, uc.fail(ctx, "SET_INVENTORY", err)
	}

	uc.sinks.Log.Info().
		Str("product_id", after.ProductID).
		Str("warehouse_id", after.WarehouseID).
		Str("quantity", after.Quantity.String()).
		Msg("inventario actualizado")
	uc.sinks.Audit.LogDataChange(ctx, "INVENTORY_SET", "InventoryItem", after.ID, before, after)
	uc.sinks.Metrics.RecordInventoryUpdate("set")
	uc.publish(after, "SET")
	return &after, nil
}

// Adjust suma delta (positivo o negativo) a la cantidad actual.
// Si el ítem no existe devuelve ErrNotFound, a diferencia de IncreaseStock que lo crea.
func (uc *InventoryUseCase) Adjust(ctx context.Context, productID, warehouseID string, delta decimal.Decimal) (*entity.InventoryItem, error) {
	if !delta.Equal(delta.Truncate(2)) {
		return nil, domain.NewValidationError("ajuste: la cantidad admite como máximo 2 decimales")
	}

	var before, after entity.InventoryItem
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		current, err := r.Items.GetForUpdate(ctx, productID, warehouseID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.NotFoundf("ítem de inventario producto=%s bodega=%s", productID, warehouseID)
		}
		before = *current
		if _, err := invdomain.ApplyDelta(current.Quantity, delta); err != nil {
			return fmt.Errorf("ajuste %s sobre %s: %w", delta, current.Quantity, err)
		}
		after = current.Adjusted(delta, uc.now())
		return r.Items.Save(ctx, &after)
	})
	if err != nil {
		return nil, uc.fail(ctx, "ADJUST_INVENTORY", err)
	}

	uc.sinks.Audit.LogDataChange(ctx, "INVENTORY_ADJUSTED", "InventoryItem", after.ID, before, after)
	uc.sinks.Metrics.RecordInventoryUpdate("adjust")
	uc.publish(after, "ADJUST")
	return &after, nil
}

// UpdateLevels reemplaza los umbrales mínimo/máximo de un ítem.
func (uc *InventoryUseCase) UpdateLevels(ctx context.Context, itemID string, minLevel, maxLevel *decimal.Decimal) (*entity.InventoryItem, error) {
	if err := validation.ValidateLevels(minLevel, maxLevel); err != nil {
		return nil, err
	}
	var before, after entity.InventoryItem
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		current, err := r.Items.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.NotFoundf("ítem de inventario %s", itemID)
		}
		before = *current
		after = current.WithLevels(minLevel, maxLevel, uc.now())
		return r.Items.Save(ctx, &after)
	})
	if err != nil {
		return nil, uc.fail(ctx, "UPDATE_LEVELS", err)
	}
	uc.sinks.Audit.LogDataChange(ctx, "INVENTORY_LEVELS_UPDATED", "InventoryItem", after.ID, before, after)
	return &after, nil
}

// DeleteItem elimina un ítem (acción administrativa explícita).
func (uc *InventoryUseCase) DeleteItem(ctx context.Context, itemID string) error {
	var removed entity.InventoryItem
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		current, err := r.Items.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.NotFoundf("ítem de inventario %s", itemID)
		}
		removed = *current
		return r.Items.Delete(ctx, itemID)
	})
	if err != nil {
		return uc.fail(ctx, "DELETE_INVENTORY", err)
	}
	uc.sinks.Audit.LogDataChange(ctx, "INVENTORY_DELETED", "InventoryItem", itemID, removed, nil)
	uc.sinks.Metrics.RecordInventoryUpdate("delete")
	return nil
}

// ── StockMover ────────────────────────────────────────────────────────────────

// AvailableQuantity lee y bloquea la fila; 0 si no existe.
func (uc *InventoryUseCase) AvailableQuantity(ctx context.Context, items repository.InventoryItemRepository, productID, warehouseID string) (decimal.Decimal, error) {
	item, err := items.GetForUpdate(ctx, productID, warehouseID)
	if err != nil {
		return decimal.Zero, err
	}
	if item == nil {
		return decimal.Zero, nil
	}
	return item.Quantity, nil
}

// IncreaseStock suma qty; crea el ítem si no existe.
func (uc *InventoryUseCase) IncreaseStock(ctx context.Context, items repository.InventoryItemRepository, productID, warehouseID string, qty decimal.Decimal) (*entity.InventoryItem, error) {
	if err := validation.ValidateQuantity(qty, "aumentar stock"); err != nil {
		return nil, err
	}
	// La suma la hace el repositorio en una sola escritura: un par nuevo no tiene fila que bloquear.
	next := entity.NewInventoryItem(uuid.New().String(), productID, warehouseID, qty, uc.now())
	if err := items.AddQuantity(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

// DecreaseStock resta qty; ErrNotFound si no hay ítem y ErrNegativeStock si no alcanza.
func (uc *InventoryUseCase) DecreaseStock(ctx context.Context, items repository.InventoryItemRepository, productID, warehouseID string, qty decimal.Decimal) (*entity.InventoryItem, error) {
	if err := validation.ValidateQuantity(qty, "disminuir stock"); err != nil {
		return nil, err
	}
	current, err := items.GetForUpdate(ctx, productID, warehouseID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.NotFoundf("ítem de inventario producto=%s bodega=%s", productID, warehouseID)
	}
	if _, err := invdomain.ApplyDelta(current.Quantity, qty.Neg()); err != nil {
		return nil, fmt.Errorf("disminuir %s sobre %s: %w", qty, current.Quantity, err)
	}
	next := current.Adjusted(qty.Neg(), uc.now())
	if err := items.Save(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

// ── Consultas ─────────────────────────────────────────────────────────────────

// GetQuantity cantidad actual; 0 si el ítem no existe.
func (uc *InventoryUseCase) GetQuantity(ctx context.Context, productID, warehouseID string) (decimal.Decimal, error) {
	item, err := uc.items.Get(ctx, productID, warehouseID)
	if err != nil {
		return decimal.Zero, err
	}
	if item == nil {
		return decimal.Zero, nil
	}
	return item.Quantity, nil
}

// GetItem obtiene un ítem por ID.
func (uc *InventoryUseCase) GetItem(ctx context.Context, id string) (*entity.InventoryItem, error) {
	item, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.NotFoundf("ítem de inventario %s", id)
	}
	return item, nil
}

func (uc *InventoryUseCase) ListAll(ctx context.Context) ([]*entity.InventoryItem, error) {
	return uc.items.ListAll(ctx)
}

func (uc *InventoryUseCase) ListByWarehouse(ctx context.Context, warehouseID string) ([]*entity.InventoryItem, error) {
	return uc.items.ListByWarehouse(ctx, warehouseID)
}

func (uc *InventoryUseCase) ListByProduct(ctx context.Context, productID string) ([]*entity.InventoryItem, error) {
	return uc.items.ListByProduct(ctx, productID)
}

func (uc *InventoryUseCase) ListBelowMinimum(ctx context.Context) ([]*entity.InventoryItem, error) {
	return uc.items.ListBelowMinimum(ctx)
}

func (uc *InventoryUseCase) ListAboveMaximum(ctx context.Context) ([]*entity.InventoryItem, error) {
	return uc.items.ListAboveMaximum(ctx)
}

// ListBelowThreshold ítems con cantidad <= threshold.
func (uc *InventoryUseCase) ListBelowThreshold(ctx context.Context, threshold decimal.Decimal) ([]*entity.InventoryItem, error) {
	if threshold.IsNegative() {
		return nil, domain.NewValidationError("el umbral no puede ser negativo")
	}
	return uc.items.ListBelowThreshold(ctx, threshold)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func requireProductAndWarehouse(ctx context.Context, r TxRepos, productID, warehouseID string) error {
	product, err := r.Products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.NotFoundf("producto %s", productID)
	}
	warehouse, err := r.Warehouses.GetByID(ctx, warehouseID)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return domain.NotFoundf("bodega %s", warehouseID)
	}
	return nil
}

func (uc *InventoryUseCase) fail(ctx context.Context, action string, err error) error {
	kind := domain.Kind(err)
	uc.sinks.Metrics.RecordError(kind, "inventory")
	if kind == "unexpected" {
		uc.sinks.Log.Error().Err(err).Str("action", action).Str("user", ports.Actor(ctx)).Msg("error inesperado en inventario")
		uc.sinks.Audit.LogError(ctx, action, "error inesperado en inventario", err)
	}
	return err
}

func (uc *InventoryUseCase) publish(item entity.InventoryItem, reason string) {
	uc.sinks.Events.PublishStockChange(ports.StockChange{
		ItemID:      item.ID,
		ProductID:   item.ProductID,
		WarehouseID: item.WarehouseID,
		Quantity:    item.Quantity,
		Reason:      reason,
		At:          item.UpdatedAt,
	})
}
