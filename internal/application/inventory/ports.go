package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-api/internal/application/ports"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Products     repository.ProductRepository
	Warehouses   repository.WarehouseRepository
	Items        repository.InventoryItemRepository
	Transactions repository.TransactionRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback de todo lo escrito.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}

// StockMover operaciones de stock que el componente de movimientos necesita.
// Reciben el repositorio de la transacción en curso para participar en el mismo commit.
type StockMover interface {
	AvailableQuantity(ctx context.Context, items repository.InventoryItemRepository, productID, warehouseID string) (decimal.Decimal, error)
	IncreaseStock(ctx context.Context, items repository.InventoryItemRepository, productID, warehouseID string, qty decimal.Decimal) (*entity.InventoryItem, error)
	DecreaseStock(ctx context.Context, items repository.InventoryItemRepository, productID, warehouseID string, qty decimal.Decimal) (*entity.InventoryItem, error)
}

// Sinks efectos laterales compartidos por los casos de uso.
type Sinks = ports.Sinks
