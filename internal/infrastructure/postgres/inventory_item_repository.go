package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

// InventoryItemRepo implementación de InventoryItemRepository sobre PostgreSQL (usable con pool o tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador de inventario. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

const itemColumns = `id, product_id, warehouse_id, quantity, minimum_level, maximum_level, created_at, updated_at`

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := row.Scan(
		&it.ID, &it.ProductID, &it.WarehouseID, &it.Quantity,
		&it.MinimumLevel, &it.MaximumLevel, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *InventoryItemRepo) one(ctx context.Context, op, query string, args ...any) (*entity.InventoryItem, error) {
	it, err := scanItem(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return it, nil
}

func (r *InventoryItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.one(ctx, "get inventory item", `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1`, id)
}

// Get obtiene el ítem de un producto en una bodega.
func (r *InventoryItemRepo) Get(ctx context.Context, productID, warehouseID string) (*entity.InventoryItem, error) {
	return r.one(ctx, "get inventory item",
		`SELECT `+itemColumns+` FROM inventory_items WHERE product_id = $1 AND warehouse_id = $2`,
		productID, warehouseID)
}

// GetForUpdate obtiene el ítem y bloquea la fila para update (SELECT FOR UPDATE).
func (r *InventoryItemRepo) GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.InventoryItem, error) {
	return r.one(ctx, "get inventory item for update", `
		SELECT `+itemColumns+` FROM inventory_items
		WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`, productID, warehouseID)
}

// Save inserta o actualiza por (product_id, warehouse_id). En conflicto se conservan id y created_at.
func (r *InventoryItemRepo) Save(ctx context.Context, it *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = EXCLUDED.quantity,
			minimum_level = EXCLUDED.minimum_level,
			maximum_level = EXCLUDED.maximum_level,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		it.ID, it.ProductID, it.WarehouseID, it.Quantity,
		it.MinimumLevel, it.MaximumLevel, it.CreatedAt, it.UpdatedAt,
	).Scan(&it.ID, &it.CreatedAt)
	if err != nil {
		return mapWriteError("upsert inventory item", err)
	}
	return nil
}

// AddQuantity incrementa en la propia sentencia para que dos entradas concurrentes
// sobre un par nuevo no se pisen: la segunda espera el índice único y suma sobre la primera.
func (r *InventoryItemRepo) AddQuantity(ctx context.Context, it *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = inventory_items.quantity + EXCLUDED.quantity,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + itemColumns
	stored, err := scanItem(r.q.QueryRow(ctx, query,
		it.ID, it.ProductID, it.WarehouseID, it.Quantity,
		it.MinimumLevel, it.MaximumLevel, it.CreatedAt, it.UpdatedAt,
	))
	if err != nil {
		return mapWriteError("add inventory quantity", err)
	}
	*it = *stored
	return nil
}

func (r *InventoryItemRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id); err != nil {
		return mapWriteError("delete inventory item", err)
	}
	return nil
}

func (r *InventoryItemRepo) ListAll(ctx context.Context) ([]*entity.InventoryItem, error) {
	return r.list(ctx, `SELECT `+itemColumns+` FROM inventory_items ORDER BY created_at, id`)
}

func (r *InventoryItemRepo) ListByWarehouse(ctx context.Context, warehouseID string) ([]*entity.InventoryItem, error) {
	return r.list(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE warehouse_id = $1 ORDER BY created_at, id`, warehouseID)
}

func (r *InventoryItemRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.InventoryItem, error) {
	return r.list(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE product_id = $1 ORDER BY created_at, id`, productID)
}

// ListBelowThreshold ítems con quantity <= threshold.
func (r *InventoryItemRepo) ListBelowThreshold(ctx context.Context, threshold decimal.Decimal) ([]*entity.InventoryItem, error) {
	return r.list(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE quantity <= $1 ORDER BY created_at, id`, threshold)
}

func (r *InventoryItemRepo) ListBelowMinimum(ctx context.Context) ([]*entity.InventoryItem, error) {
	return r.list(ctx, `
		SELECT `+itemColumns+` FROM inventory_items
		WHERE minimum_level IS NOT NULL AND quantity < minimum_level
		ORDER BY created_at, id`)
}

func (r *InventoryItemRepo) ListAboveMaximum(ctx context.Context) ([]*entity.InventoryItem, error) {
	return r.list(ctx, `
		SELECT `+itemColumns+` FROM inventory_items
		WHERE maximum_level IS NOT NULL AND quantity > maximum_level
		ORDER BY created_at, id`)
}

func (r *InventoryItemRepo) CountByWarehouse(ctx context.Context, warehouseID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM inventory_items WHERE warehouse_id = $1`, warehouseID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count inventory items: %w", err)
	}
	return n, nil
}

func (r *InventoryItemRepo) SumQuantityByWarehouse(ctx context.Context, warehouseID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(quantity), 0) FROM inventory_items WHERE warehouse_id = $1`, warehouseID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum inventory quantity: %w", err)
	}
	return total, nil
}

func (r *InventoryItemRepo) list(ctx context.Context, query string, args ...any) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.InventoryItem, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}
