// Package metrics implementa ports.MetricsSink sobre Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/warehouse-api/internal/application/ports"
)

var _ ports.MetricsSink = (*Sink)(nil)

// Sink contadores del inventario registrados en un registry propio (sin registro global).
type Sink struct {
	registry *prometheus.Registry

	transactions     *prometheus.CounterVec
	inventoryUpdates *prometheus.CounterVec
	lowStockAlerts   *prometheus.CounterVec
	productOps       *prometheus.CounterVec
	errors           *prometheus.CounterVec
	durations        *prometheus.HistogramVec
	apiRequests      *prometheus.CounterVec
}

// New crea el sink. namespace vacío usa "warehouse".
func New(namespace string) *Sink {
	if namespace == "" {
		namespace = "warehouse"
	}
	reg := prometheus.NewRegistry()
	s := &Sink{
		registry: reg,
		transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "transactions_total",
			Help: "Movimientos de stock confirmados por tipo.",
		}, []string{"type"}),
		inventoryUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "inventory_updates_total",
			Help: "Cambios de cantidad en inventario por operación.",
		}, []string{"operation"}),
		lowStockAlerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "low_stock_alerts_total",
			Help: "Alertas de stock bajo por bodega.",
		}, []string{"warehouse_id"}),
		productOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "product_operations_total",
			Help: "Operaciones sobre productos.",
		}, []string{"operation"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "errors_total",
			Help: "Errores por clase y componente.",
		}, []string{"kind", "component"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "operation_duration_seconds",
			Help:    "Duración de operaciones de negocio.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Peticiones HTTP por método, ruta y estado.",
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(
		s.transactions, s.inventoryUpdates, s.lowStockAlerts, s.productOps,
		s.errors, s.durations, s.apiRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return s
}

// Registry para pruebas y para exponer /metrics.
func (s *Sink) Registry() *prometheus.Registry { return s.registry }

// Handler expone el registry en formato Prometheus.
func (s *Sink) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry})
}

func (s *Sink) RecordTransaction(txType string) {
	s.transactions.WithLabelValues(txType).Inc()
}

func (s *Sink) RecordInventoryUpdate(operation string) {
	s.inventoryUpdates.WithLabelValues(operation).Inc()
}

func (s *Sink) RecordLowStockAlert(warehouseID string) {
	s.lowStockAlerts.WithLabelValues(warehouseID).Inc()
}

func (s *Sink) RecordProductOperation(operation string) {
	s.productOps.WithLabelValues(operation).Inc()
}

func (s *Sink) RecordError(kind, component string) {
	s.errors.WithLabelValues(kind, component).Inc()
}

func (s *Sink) ObserveDuration(operation string, elapsed time.Duration) {
	s.durations.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// RecordAPIRequest route es el patrón de la ruta (ej. /api/v1/products/:id), no la URL concreta.
func (s *Sink) RecordAPIRequest(method, route string, status int) {
	s.apiRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
