package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// InventoryItemRepository puerto para la proyección de stock por producto+bodega.
// Usable dentro de transacciones: GetForUpdate bloquea la fila hasta el commit.
type InventoryItemRepository interface {
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	Get(ctx context.Context, productID, warehouseID string) (*entity.InventoryItem, error)
	GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.InventoryItem, error)
	// Save inserta o actualiza por el par (product_id, warehouse_id).
	Save(ctx context.Context, item *entity.InventoryItem) error
	// AddQuantity suma item.Quantity a la fila del par en una sola escritura atómica; si no
	// existe la crea con los valores de item. Al volver, item refleja la fila almacenada.
	AddQuantity(ctx context.Context, item *entity.InventoryItem) error
	Delete(ctx context.Context, id string) error

	ListAll(ctx context.Context) ([]*entity.InventoryItem, error)
	ListByWarehouse(ctx context.Context, warehouseID string) ([]*entity.InventoryItem, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.InventoryItem, error)
	// ListBelowThreshold devuelve los ítems con quantity <= threshold.
	ListBelowThreshold(ctx context.Context, threshold decimal.Decimal) ([]*entity.InventoryItem, error)
	ListBelowMinimum(ctx context.Context) ([]*entity.InventoryItem, error)
	ListAboveMaximum(ctx context.Context) ([]*entity.InventoryItem, error)

	CountByWarehouse(ctx context.Context, warehouseID string) (int, error)
	SumQuantityByWarehouse(ctx context.Context, warehouseID string) (decimal.Decimal, error)
}
