package memory

import (
	"context"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo auditoría en memoria. No participa del rollback.
type AuditLogRepo struct {
	s *Store
}

func (r *AuditLogRepo) Create(_ context.Context, e *entity.AuditEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.audit = append(r.s.audit, *e)
	return nil
}

func (r *AuditLogRepo) ListRecent(_ context.Context, limit int) ([]*entity.AuditEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.AuditEntry, 0, limit)
	for i := len(r.s.audit) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		e := r.s.audit[i]
		out = append(out, &e)
	}
	return out, nil
}
