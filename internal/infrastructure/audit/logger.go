// Package audit implementa ports.AuditSink con zerolog y, opcionalmente, la tabla audit_log.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/warehouse-api/internal/application/ports"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

var _ ports.AuditSink = (*Logger)(nil)

// SlowOperationThreshold por encima se registra la operación como WARN.
const SlowOperationThreshold = 5 * time.Second

const persistTimeout = 2 * time.Second

// Logger escribe cada acción en el log estructurado; si repo != nil también la persiste.
// Ningún fallo se propaga al llamador.
type Logger struct {
	log  zerolog.Logger
	repo repository.AuditLogRepository
	now  func() time.Time
}

// New repo puede ser nil (solo log).
func New(base zerolog.Logger, repo repository.AuditLogRepository) *Logger {
	return &Logger{
		log:  base.With().Str("component", "audit").Logger(),
		repo: repo,
		now:  time.Now,
	}
}

func (l *Logger) LogAction(ctx context.Context, action, entityType, entityID, details string) {
	user := ports.Actor(ctx)
	l.log.Info().Str("action", action).Str("user", user).
		Str("entity_type", entityType).Str("entity_id", entityID).Msg(details)
	l.persist(ctx, &entity.AuditEntry{
		Level: entity.AuditLevelInfo, Action: action, UserID: user,
		EntityType: entityType, EntityID: entityID, Details: details,
	})
}

func (l *Logger) LogError(ctx context.Context, action, details string, err error) {
	user := ports.Actor(ctx)
	l.log.Error().Err(err).Str("action", action).Str("user", user).Msg(details)
	msg := details
	if err != nil {
		msg = details + ": " + err.Error()
	}
	l.persist(ctx, &entity.AuditEntry{
		Level: entity.AuditLevelError, Action: action, UserID: user, Details: msg,
	})
}

// LogDataChange guarda el antes y el después serializados a JSON.
func (l *Logger) LogDataChange(ctx context.Context, action, entityType, entityID string, oldValue, newValue any) {
	user := ports.Actor(ctx)
	oldJSON := l.marshal(oldValue)
	newJSON := l.marshal(newValue)
	ev := l.log.Info().Str("action", action).Str("user", user).
		Str("entity_type", entityType).Str("entity_id", entityID)
	if oldJSON != nil {
		ev = ev.RawJSON("old", oldJSON)
	}
	if newJSON != nil {
		ev = ev.RawJSON("new", newJSON)
	}
	ev.Msg("cambio de datos")
	l.persist(ctx, &entity.AuditEntry{
		Level: entity.AuditLevelInfo, Action: action, UserID: user,
		EntityType: entityType, EntityID: entityID,
		OldValue: oldJSON, NewValue: newJSON,
	})
}

func (l *Logger) LogSecurityEvent(ctx context.Context, event, details string) {
	user := ports.Actor(ctx)
	l.log.Warn().Str("event", event).Str("user", user).Str("level", entity.AuditLevelSecurity).Msg(details)
	l.persist(ctx, &entity.AuditEntry{
		Level: entity.AuditLevelSecurity, Action: event, UserID: user, Details: details,
	})
}

// LogPerformance solo persiste operaciones lentas.
func (l *Logger) LogPerformance(ctx context.Context, operation string, elapsed time.Duration) {
	if elapsed <= SlowOperationThreshold {
		l.log.Debug().Str("operation", operation).Dur("elapsed", elapsed).Msg("rendimiento")
		return
	}
	l.log.Warn().Str("operation", operation).Dur("elapsed", elapsed).Msg("operación lenta")
	l.persist(ctx, &entity.AuditEntry{
		Level: entity.AuditLevelWarn, Action: "SLOW_OPERATION", UserID: ports.Actor(ctx),
		Details: operation + " tardó " + elapsed.String(),
	})
}

func (l *Logger) marshal(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		l.log.Warn().Err(err).Msg("no se pudo serializar valor de auditoría")
		return nil
	}
	return b
}

func (l *Logger) persist(ctx context.Context, e *entity.AuditEntry) {
	if l.repo == nil {
		return
	}
	e.ID = uuid.NewString()
	e.CreatedAt = l.now().UTC()
	// La petición puede haberse cancelado ya; la auditoría se guarda igual.
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()
	if err := l.repo.Create(pctx, e); err != nil {
		l.log.Error().Err(err).Str("action", e.Action).Msg("no se pudo persistir auditoría")
	}
}
