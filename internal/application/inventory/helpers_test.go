package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/application/ports"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func str(s string) *string { return &s }

// spySinks registra las llamadas a auditoría y métricas.
type spySinks struct {
	mu           sync.Mutex
	actions      []string
	errors       []string
	changes      []string
	transactions []string
	updates      []string
	lowStock     []string
	failures     []string
	events       []ports.StockChange
}

func (s *spySinks) LogAction(_ context.Context, action, _, _, _ string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions = append(s.actions, action)
}
func (s *spySinks) LogError(_ context.Context, action, _ string, _ error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = append(s.errors, action)
}
func (s *spySinks) LogDataChange(_ context.Context, action, _, _ string, _, _ any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.changes = append(s.changes, action)
}
func (s *spySinks) LogSecurityEvent(context.Context, string, string)      {}
func (s *spySinks) LogPerformance(context.Context, string, time.Duration) {}

func (s *spySinks) RecordTransaction(t string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, t)
}
func (s *spySinks) RecordInventoryUpdate(op string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates = append(s.updates, op)
}
func (s *spySinks) RecordLowStockAlert(w string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lowStock = append(s.lowStock, w)
}
func (s *spySinks) RecordProductOperation(string) {}
func (s *spySinks) RecordError(kind, component string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, component+":"+kind)
}
func (s *spySinks) ObserveDuration(string, time.Duration) {}
func (s *spySinks) PublishStockChange(ev ports.StockChange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// fixture almacén en memoria con casos de uso cableados.
type fixture struct {
	store *memory.Store
	spy   *spySinks
	inv   *inventory.InventoryUseCase
	txs   *inventory.TransactionUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	spy := &spySinks{}
	sinks := inventory.Sinks{Audit: spy, Metrics: spy, Events: spy}
	inv := inventory.NewInventoryUseCase(store.TxRunner(), store.Items(), sinks)
	txs := inventory.NewTransactionUseCase(store.TxRunner(), inv, store.Transactions(), sinks)
	return &fixture{store: store, spy: spy, inv: inv, txs: txs}
}

func (f *fixture) product(t *testing.T, code string, active bool) *entity.Product {
	t.Helper()
	now := time.Now()
	p := &entity.Product{
		ID: uuid.NewString(), Code: code, Name: code, Description: "desc " + code,
		Category: "General", Price: dec("10.00"), Active: active, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, f.store.Products().Create(context.Background(), p))
	return p
}

func (f *fixture) warehouse(t *testing.T, name string) *entity.Warehouse {
	t.Helper()
	now := time.Now()
	w := &entity.Warehouse{
		ID: uuid.NewString(), Name: name, Location: "Zona " + name,
		Capacity: dec("1000"), Active: true, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, f.store.Warehouses().Create(context.Background(), w))
	return w
}

func (f *fixture) quantity(t *testing.T, productID, warehouseID string) decimal.Decimal {
	t.Helper()
	q, err := f.inv.GetQuantity(context.Background(), productID, warehouseID)
	require.NoError(t, err)
	return q
}

func (f *fixture) ledgerSize(t *testing.T) int {
	t.Helper()
	all, err := f.txs.ListAll(context.Background())
	require.NoError(t, err)
	return len(all)
}

type inventoryCreate = inventory.CreateItemInput
