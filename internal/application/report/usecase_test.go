package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/application/report"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr[T any](v T) *T { return &v }

type fakeRenderer struct {
	inventory    *dto.InventoryReportDTO
	transactions *dto.TransactionReportDTO
}

func (f *fakeRenderer) InventoryReportPDF(r *dto.InventoryReportDTO) ([]byte, error) {
	f.inventory = r
	return []byte("%PDF"), nil
}

func (f *fakeRenderer) InventoryReportXLSX(r *dto.InventoryReportDTO) ([]byte, error) {
	f.inventory = r
	return []byte("PK"), nil
}

func (f *fakeRenderer) TransactionReportXLSX(r *dto.TransactionReportDTO) ([]byte, error) {
	f.transactions = r
	return []byte("PK"), nil
}

type world struct {
	store    *memory.Store
	inv      *inventory.InventoryUseCase
	txs      *inventory.TransactionUseCase
	render   *fakeRenderer
	reports  *report.ReportUseCase
	central  *entity.Warehouse
	north    *entity.Warehouse
	hammer   *entity.Product
	drill    *entity.Product
	paint    *entity.Product
}

// newWorld dos bodegas y tres productos:
//
//	Central (cap. 100): martillo 5 (min 10 → LOW), taladro 30 (max 20 → EXCESS), pintura 15 (NORMAL)
//	Norte   (cap. 50):  vacía
func newWorld(t *testing.T) *world {
	t.Helper()
	store := memory.NewStore()
	inv := inventory.NewInventoryUseCase(store.TxRunner(), store.Items(), inventory.Sinks{})
	w := &world{
		store:  store,
		inv:    inv,
		txs:    inventory.NewTransactionUseCase(store.TxRunner(), inv, store.Transactions(), inventory.Sinks{}),
		render: &fakeRenderer{},
	}
	w.reports = report.NewReportUseCase(store.Products(), store.Warehouses(), store.Items(), store.Transactions(), w.render, w.render)

	ctx := context.Background()
	now := time.Now()
	mkWarehouse := func(name, capacity string) *entity.Warehouse {
		wh := &entity.Warehouse{ID: uuid.NewString(), Name: name, Location: "Cali", Capacity: dec(capacity), Active: true, CreatedAt: now, UpdatedAt: now}
		require.NoError(t, store.Warehouses().Create(ctx, wh))
		return wh
	}
	mkProduct := func(code, category, price string) *entity.Product {
		p := &entity.Product{ID: uuid.NewString(), Code: code, Name: code, Category: category, Price: dec(price), Active: true, CreatedAt: now, UpdatedAt: now}
		require.NoError(t, store.Products().Create(ctx, p))
		return p
	}
	w.central = mkWarehouse("Central", "100")
	w.north = mkWarehouse("Norte", "50")
	w.hammer = mkProduct("HAM", "Herramientas", "10")
	w.drill = mkProduct("DRL", "Herramientas", "100")
	w.paint = mkProduct("PNT", "Pinturas", "2.5")

	_, err := inv.CreateItem(ctx, inventory.CreateItemInput{ProductID: w.hammer.ID, WarehouseID: w.central.ID, Quantity: dec("5"), MinimumLevel: ptr(dec("10"))})
	require.NoError(t, err)
	_, err = inv.CreateItem(ctx, inventory.CreateItemInput{ProductID: w.drill.ID, WarehouseID: w.central.ID, Quantity: dec("30"), MaximumLevel: ptr(dec("20"))})
	require.NoError(t, err)
	_, err = inv.SetQuantity(ctx, w.paint.ID, w.central.ID, dec("15"))
	require.NoError(t, err)
	return w
}

// ──────────────────────────────────────────────────────────────────────────────
// Reporte de inventario
// ──────────────────────────────────────────────────────────────────────────────

func TestInventoryReport_TotalesYBuckets(t *testing.T) {
	w := newWorld(t)
	r, err := w.reports.InventoryReport(context.Background(), w.central.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, r.ItemCount)
	assert.True(t, dec("50").Equal(r.TotalQuantity))
	// 5×10 + 30×100 + 15×2.5
	assert.True(t, dec("3087.5").Equal(r.TotalValue), r.TotalValue.String())
	assert.True(t, dec("50").Equal(r.UtilizationPct))

	require.Len(t, r.LowStock, 1)
	assert.Equal(t, "HAM", r.LowStock[0].ProductCode)
	require.Len(t, r.Excess, 1)
	assert.Equal(t, "DRL", r.Excess[0].ProductCode)
	require.Len(t, r.Normal, 1)
	assert.Equal(t, "PNT", r.Normal[0].ProductCode)

	require.Len(t, r.Categories, 2)
	tools := r.Categories[0]
	assert.Equal(t, "Herramientas", tools.Category)
	assert.Equal(t, 2, tools.ItemCount)
	assert.True(t, dec("35").Equal(tools.TotalQuantity))
	assert.True(t, dec("3050").Equal(tools.TotalValue))
	assert.Equal(t, 1, tools.LowStockCount)
}

func TestInventoryReport_BodegaInexistente(t *testing.T) {
	w := newWorld(t)
	_, err := w.reports.InventoryReport(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOverallInventoryReport(t *testing.T) {
	w := newWorld(t)
	r, err := w.reports.OverallInventoryReport(context.Background())
	require.NoError(t, err)

	require.Len(t, r.Warehouses, 2)
	assert.Equal(t, 3, r.ItemCount)
	assert.True(t, dec("50").Equal(r.TotalQuantity))
	assert.Equal(t, 1, r.LowStockCount)
	assert.Equal(t, 1, r.ExcessCount)
}

// ──────────────────────────────────────────────────────────────────────────────
// Resumen del sistema y movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestSystemSummary(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	for i := 0; i < 12; i++ {
		_, err := w.txs.Create(ctx, inventory.CreateTransactionInput{
			Type: entity.TransactionReceipt, ProductID: w.paint.ID,
			DestinationWarehouseID: &w.north.ID, Quantity: dec("1"),
		})
		require.NoError(t, err)
	}

	s, err := w.reports.SystemSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, s.TotalProducts)
	assert.Equal(t, 3, s.ActiveProducts)
	assert.Equal(t, 2, s.TotalWarehouses)
	assert.Equal(t, 4, s.TotalItems)
	assert.True(t, dec("62").Equal(s.TotalQuantity))
	assert.True(t, dec("150").Equal(s.TotalCapacity))
	assert.Len(t, s.RecentTransactions, 10)
	assert.Equal(t, 12, s.TotalTransactions)
	require.Len(t, s.LowStockAlerts, 1)
	assert.Equal(t, "Central", s.LowStockAlerts[0].WarehouseName)
	assert.Len(t, s.ExcessAlerts, 1)
}

func TestTransactionReport(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	start := time.Now().Add(-time.Minute)

	_, err := w.txs.Create(ctx, inventory.CreateTransactionInput{
		Type: entity.TransactionReceipt, ProductID: w.hammer.ID, DestinationWarehouseID: &w.central.ID, Quantity: dec("10"),
	})
	require.NoError(t, err)
	_, err = w.txs.Create(ctx, inventory.CreateTransactionInput{
		Type: entity.TransactionIssue, ProductID: w.hammer.ID, SourceWarehouseID: &w.central.ID, Quantity: dec("3"),
	})
	require.NoError(t, err)
	_, err = w.txs.Create(ctx, inventory.CreateTransactionInput{
		Type: entity.TransactionTransfer, ProductID: w.hammer.ID, SourceWarehouseID: &w.central.ID, DestinationWarehouseID: &w.north.ID, Quantity: dec("2"),
	})
	require.NoError(t, err)

	r, err := w.reports.TransactionReport(ctx, start, time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 3, r.TotalCount)
	assert.True(t, dec("15").Equal(r.TotalQuantity))
	require.Len(t, r.ByType, 3)
	assert.Equal(t, "RECEIPT", r.ByType[0].Type)
	assert.True(t, dec("10").Equal(r.ByType[0].Quantity))
	assert.Equal(t, 1, r.ByType[1].Count)
	assert.Len(t, r.Transactions, 3)

	_, err = w.reports.TransactionReport(ctx, time.Now(), start)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ──────────────────────────────────────────────────────────────────────────────
// Exportaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestExports(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	pdf, err := w.reports.InventoryReportPDF(ctx, w.central.ID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf))
	require.NotNil(t, w.render.inventory)
	assert.Equal(t, "Central", w.render.inventory.Warehouse.Name)

	_, err = w.reports.InventoryReportXLSX(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = w.reports.TransactionReportXLSX(ctx, time.Now().Add(-time.Hour), time.Now())
	require.NoError(t, err)
	assert.NotNil(t, w.render.transactions)

	bare := report.NewReportUseCase(w.store.Products(), w.store.Warehouses(), w.store.Items(), w.store.Transactions(), nil, nil)
	_, err = bare.InventoryReportPDF(ctx, w.central.ID)
	assert.ErrorIs(t, err, report.ErrRendererUnavailable)
}
