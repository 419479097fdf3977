package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo tabla audit_log. Fuera de las transacciones de negocio.
type AuditLogRepo struct {
	q Querier
}

func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

func (r *AuditLogRepo) Create(ctx context.Context, e *entity.AuditEntry) error {
	query := `
		INSERT INTO audit_log (id, level, action, user_id, entity_type, entity_id, details, old_value, new_value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.Level, e.Action, e.UserID, e.EntityType, e.EntityID, e.Details,
		nullableJSON(e.OldValue), nullableJSON(e.NewValue), e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// ListRecent últimas entradas, la más reciente primero.
func (r *AuditLogRepo) ListRecent(ctx context.Context, limit int) ([]*entity.AuditEntry, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, level, action, user_id, entity_type, entity_id, details, old_value, new_value, created_at
		FROM audit_log ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit log: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.AuditEntry, 0, limit)
	for rows.Next() {
		var e entity.AuditEntry
		var oldValue, newValue []byte
		if err := rows.Scan(&e.ID, &e.Level, &e.Action, &e.UserID, &e.EntityType, &e.EntityID, &e.Details,
			&oldValue, &newValue, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		e.OldValue, e.NewValue = oldValue, newValue
		list = append(list, &e)
	}
	return list, rows.Err()
}

// nullableJSON evita insertar '' en columnas JSONB.
func nullableJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
