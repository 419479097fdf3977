package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// TypeTotals agregado de movimientos por tipo.
type TypeTotals struct {
	Type     entity.TransactionType
	Count    int
	Quantity decimal.Decimal
}

// TransactionRepository puerto del libro de movimientos (solo inserción).
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	ListAll(ctx context.Context) ([]*entity.Transaction, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.Transaction, error)
	// ListByWarehouse incluye movimientos donde la bodega es origen o destino.
	ListByWarehouse(ctx context.Context, warehouseID string) ([]*entity.Transaction, error)
	ListByPeriod(ctx context.Context, from, to time.Time) ([]*entity.Transaction, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.Transaction, error)
	TotalsByType(ctx context.Context, from, to time.Time) ([]TypeTotals, error)
}
