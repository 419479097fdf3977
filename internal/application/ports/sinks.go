package ports

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// AuditSink registra acciones relevantes. Las implementaciones nunca deben
// bloquear ni hacer fallar la operación de negocio: los errores se tragan y se loguean.
type AuditSink interface {
	LogAction(ctx context.Context, action, entityType, entityID, details string)
	LogError(ctx context.Context, action, details string, err error)
	LogDataChange(ctx context.Context, action, entityType, entityID string, oldValue, newValue any)
	LogSecurityEvent(ctx context.Context, event, details string)
	LogPerformance(ctx context.Context, operation string, elapsed time.Duration)
}

// MetricsSink contadores y temporizadores del dominio. Se inyecta; no hay registro global.
type MetricsSink interface {
	RecordTransaction(txType string)
	RecordInventoryUpdate(operation string)
	RecordLowStockAlert(warehouseID string)
	RecordProductOperation(operation string)
	RecordError(kind, component string)
	ObserveDuration(operation string, elapsed time.Duration)
}

// StockChange evento emitido después del commit cuando cambia una cantidad.
type StockChange struct {
	ItemID      string          `json:"item_id"`
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	Reason      string          `json:"reason"`
	At          time.Time       `json:"at"`
}

// StockEventPublisher difunde cambios de stock (ej. websocket).
type StockEventPublisher interface {
	PublishStockChange(ev StockChange)
}

// ── Implementaciones vacías ───────────────────────────────────────────────────

// NopAudit descarta todo.
type NopAudit struct{}

func (NopAudit) LogAction(context.Context, string, string, string, string)       {}
func (NopAudit) LogError(context.Context, string, string, error)                 {}
func (NopAudit) LogDataChange(context.Context, string, string, string, any, any) {}
func (NopAudit) LogSecurityEvent(context.Context, string, string)                {}
func (NopAudit) LogPerformance(context.Context, string, time.Duration)           {}

// NopMetrics descarta todo.
type NopMetrics struct{}

func (NopMetrics) RecordTransaction(string)              {}
func (NopMetrics) RecordInventoryUpdate(string)          {}
func (NopMetrics) RecordLowStockAlert(string)            {}
func (NopMetrics) RecordProductOperation(string)         {}
func (NopMetrics) RecordError(string, string)            {}
func (NopMetrics) ObserveDuration(string, time.Duration) {}

// NopPublisher descarta los eventos.
type NopPublisher struct{}

func (NopPublisher) PublishStockChange(StockChange) {}

// Sinks agrupa los efectos laterales que reciben los casos de uso.
type Sinks struct {
	Audit   AuditSink
	Metrics MetricsSink
	Events  StockEventPublisher
	Log     *zerolog.Logger
}

// WithDefaults reemplaza los campos nil por implementaciones vacías.
func (s Sinks) WithDefaults() Sinks {
	if s.Audit == nil {
		s.Audit = NopAudit{}
	}
	if s.Metrics == nil {
		s.Metrics = NopMetrics{}
	}
	if s.Events == nil {
		s.Events = NopPublisher{}
	}
	if s.Log == nil {
		nop := zerolog.Nop()
		s.Log = &nop
	}
	return s
}
