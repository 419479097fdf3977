package repository

import (
	"context"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// AuditLogRepository persiste registros de auditoría.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *entity.AuditEntry) error
	ListRecent(ctx context.Context, limit int) ([]*entity.AuditEntry, error)
}
