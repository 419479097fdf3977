package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo libro de movimientos sobre PostgreSQL. Solo inserción.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const transactionColumns = `id, type, product_id, source_warehouse_id, destination_warehouse_id, quantity,
	occurred_at, description, user_id, reference_number`

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	var typ string
	err := row.Scan(
		&t.ID, &typ, &t.ProductID, &t.SourceWarehouseID, &t.DestinationWarehouseID, &t.Quantity,
		&t.Timestamp, &t.Description, &t.UserID, &t.ReferenceNumber,
	)
	if err != nil {
		return nil, err
	}
	t.Type = entity.TransactionType(typ)
	return &t, nil
}

// Create inserta el movimiento.
func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		t.ID, string(t.Type), t.ProductID, t.SourceWarehouseID, t.DestinationWarehouseID, t.Quantity,
		t.Timestamp, t.Description, t.UserID, t.ReferenceNumber,
	)
	if err != nil {
		return mapWriteError("insert transaction", err)
	}
	return nil
}

func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	t, err := scanTransaction(r.q.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

func (r *TransactionRepo) ListAll(ctx context.Context) ([]*entity.Transaction, error) {
	return r.list(ctx, `SELECT `+transactionColumns+` FROM transactions ORDER BY occurred_at DESC, id`)
}

func (r *TransactionRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Transaction, error) {
	return r.list(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE product_id = $1 ORDER BY occurred_at DESC, id`, productID)
}

// ListByWarehouse movimientos donde la bodega es origen o destino.
func (r *TransactionRepo) ListByWarehouse(ctx context.Context, warehouseID string) ([]*entity.Transaction, error) {
	return r.list(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE source_warehouse_id = $1 OR destination_warehouse_id = $1
		ORDER BY occurred_at DESC, id`, warehouseID)
}

// ListByPeriod movimientos con occurred_at en [from, to].
func (r *TransactionRepo) ListByPeriod(ctx context.Context, from, to time.Time) ([]*entity.Transaction, error) {
	return r.list(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE occurred_at BETWEEN $1 AND $2
		ORDER BY occurred_at DESC, id`, from, to)
}

func (r *TransactionRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Transaction, error) {
	return r.list(ctx, `SELECT `+transactionColumns+` FROM transactions ORDER BY occurred_at DESC, id LIMIT $1`, limit)
}

// TotalsByType conteo y suma de cantidades por tipo en [from, to].
func (r *TransactionRepo) TotalsByType(ctx context.Context, from, to time.Time) ([]repository.TypeTotals, error) {
	rows, err := r.q.Query(ctx, `
		SELECT type, COUNT(*), COALESCE(SUM(quantity), 0)
		FROM transactions
		WHERE occurred_at BETWEEN $1 AND $2
		GROUP BY type
		ORDER BY type`, from, to)
	if err != nil {
		return nil, fmt.Errorf("totals by type: %w", err)
	}
	defer rows.Close()
	out := make([]repository.TypeTotals, 0, 3)
	for rows.Next() {
		var tt repository.TypeTotals
		var typ string
		if err := rows.Scan(&typ, &tt.Count, &tt.Quantity); err != nil {
			return nil, fmt.Errorf("scan totals: %w", err)
		}
		tt.Type = entity.TransactionType(typ)
		out = append(out, tt)
	}
	return out, rows.Err()
}

func (r *TransactionRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Transaction, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
