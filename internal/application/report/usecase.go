// Package report contiene los reportes de inventario, movimientos y el resumen general del sistema.
package report

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	invdomain "github.com/jhoicas/warehouse-api/internal/domain/inventory"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

const recentTransactions = 10 // movimientos en el resumen del sistema

var transactionTypes = []entity.TransactionType{
	entity.TransactionReceipt,
	entity.TransactionIssue,
	entity.TransactionTransfer,
}

// ErrRendererUnavailable cuando no se configuró el generador del formato pedido.
var ErrRendererUnavailable = errors.New("generador de reporte no configurado")

// ReportUseCase arma los reportes a partir de los repositorios (solo lectura).
type ReportUseCase struct {
	products     repository.ProductRepository
	warehouses   repository.WarehouseRepository
	items        repository.InventoryItemRepository
	transactions repository.TransactionRepository
	pdf          PDFRenderer
	sheets       SpreadsheetRenderer
	now          func() time.Time
}

// NewReportUseCase construye el caso de uso. pdf y sheets pueden ser nil.
func NewReportUseCase(
	products repository.ProductRepository,
	warehouses repository.WarehouseRepository,
	items repository.InventoryItemRepository,
	transactions repository.TransactionRepository,
	pdf PDFRenderer,
	sheets SpreadsheetRenderer,
) *ReportUseCase {
	return &ReportUseCase{
		products:     products,
		warehouses:   warehouses,
		items:        items,
		transactions: transactions,
		pdf:          pdf,
		sheets:       sheets,
		now:          time.Now,
	}
}

// ── Inventario ────────────────────────────────────────────────────────────────

// InventoryReport reporte de una bodega: totales, ocupación, buckets por estado y desglose por categoría.
func (uc *ReportUseCase) InventoryReport(ctx context.Context, warehouseID string) (*dto.InventoryReportDTO, error) {
	w, err := uc.warehouses.GetByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.NotFoundf("bodega %s", warehouseID)
	}
	items, err := uc.items.ListByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	catalog, err := uc.productIndex(ctx)
	if err != nil {
		return nil, err
	}
	return uc.buildInventoryReport(w, items, catalog), nil
}

// OverallInventoryReport un reporte por bodega y totales generales.
func (uc *ReportUseCase) OverallInventoryReport(ctx context.Context) (*dto.OverallInventoryReportDTO, error) {
	warehouses, err := uc.warehouses.List(ctx)
	if err != nil {
		return nil, err
	}
	items, err := uc.items.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	catalog, err := uc.productIndex(ctx)
	if err != nil {
		return nil, err
	}
	byWarehouse := make(map[string][]*entity.InventoryItem, len(warehouses))
	for _, it := range items {
		byWarehouse[it.WarehouseID] = append(byWarehouse[it.WarehouseID], it)
	}

	out := &dto.OverallInventoryReportDTO{
		GeneratedAt:   uc.now(),
		Warehouses:    make([]dto.InventoryReportDTO, 0, len(warehouses)),
		TotalQuantity: decimal.Zero,
		TotalValue:    decimal.Zero,
	}
	for _, w := range warehouses {
		r := uc.buildInventoryReport(w, byWarehouse[w.ID], catalog)
		out.Warehouses = append(out.Warehouses, *r)
		out.ItemCount += r.ItemCount
		out.TotalQuantity = out.TotalQuantity.Add(r.TotalQuantity)
		out.TotalValue = out.TotalValue.Add(r.TotalValue)
		out.LowStockCount += len(r.LowStock)
		out.ExcessCount += len(r.Excess)
	}
	return out, nil
}

func (uc *ReportUseCase) buildInventoryReport(w *entity.Warehouse, items []*entity.InventoryItem, catalog map[string]*entity.Product) *dto.InventoryReportDTO {
	r := &dto.InventoryReportDTO{
		Warehouse:     dto.NewWarehouseResponse(w),
		GeneratedAt:   uc.now(),
		ItemCount:     len(items),
		TotalQuantity: decimal.Zero,
		TotalValue:    decimal.Zero,
		LowStock:      []dto.ReportLineDTO{},
		Excess:        []dto.ReportLineDTO{},
		Normal:        []dto.ReportLineDTO{},
	}
	categories := map[string]*dto.CategoryBreakdownDTO{}
	lines := make([]dto.ReportLineDTO, 0, len(items))
	for _, it := range items {
		line := reportLine(it, catalog[it.ProductID], w)
		lines = append(lines, line)
		r.TotalQuantity = r.TotalQuantity.Add(it.Quantity)
		r.TotalValue = r.TotalValue.Add(line.Value)

		cat, ok := categories[line.Category]
		if !ok {
			cat = &dto.CategoryBreakdownDTO{Category: line.Category, TotalQuantity: decimal.Zero, TotalValue: decimal.Zero}
			categories[line.Category] = cat
		}
		cat.ItemCount++
		cat.TotalQuantity = cat.TotalQuantity.Add(it.Quantity)
		cat.TotalValue = cat.TotalValue.Add(line.Value)
		if it.IsBelowMinimum() {
			cat.LowStockCount++
		}
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ProductCode < lines[j].ProductCode })
	for _, line := range lines {
		switch entity.StockStatus(line.Status) {
		case entity.StockStatusLow:
			r.LowStock = append(r.LowStock, line)
		case entity.StockStatusExcess:
			r.Excess = append(r.Excess, line)
		default:
			r.Normal = append(r.Normal, line)
		}
	}
	r.Categories = make([]dto.CategoryBreakdownDTO, 0, len(categories))
	for _, c := range categories {
		r.Categories = append(r.Categories, *c)
	}
	sort.Slice(r.Categories, func(i, j int) bool { return r.Categories[i].Category < r.Categories[j].Category })
	r.UtilizationPct = w.Utilization(r.TotalQuantity)
	return r
}

// ── Resumen del sistema ───────────────────────────────────────────────────────

// SystemSummary totales generales, últimos movimientos y alertas.
//
// Las consultas son independientes y se lanzan en paralelo.
func (uc *ReportUseCase) SystemSummary(ctx context.Context) (*dto.SystemSummaryDTO, error) {
	type productsResult struct {
		list []*entity.Product
		err  error
	}
	type warehousesResult struct {
		list []*entity.Warehouse
		err  error
	}
	type itemsResult struct {
		list []*entity.InventoryItem
		err  error
	}
	type txResult struct {
		list []*entity.Transaction
		err  error
	}
	type totalsResult struct {
		totals []repository.TypeTotals
		err    error
	}

	now := uc.now()
	productsCh := make(chan productsResult, 1)
	warehousesCh := make(chan warehousesResult, 1)
	itemsCh := make(chan itemsResult, 1)
	recentCh := make(chan txResult, 1)
	totalsCh := make(chan totalsResult, 1)

	go func() {
		list, err := uc.products.List(ctx)
		productsCh <- productsResult{list, err}
	}()
	go func() {
		list, err := uc.warehouses.List(ctx)
		warehousesCh <- warehousesResult{list, err}
	}()
	go func() {
		list, err := uc.items.ListAll(ctx)
		itemsCh <- itemsResult{list, err}
	}()
	go func() {
		list, err := uc.transactions.ListRecent(ctx, recentTransactions)
		recentCh <- txResult{list, err}
	}()
	go func() {
		totals, err := uc.transactions.TotalsByType(ctx, time.Time{}, now)
		totalsCh <- totalsResult{totals, err}
	}()

	products := <-productsCh
	warehouses := <-warehousesCh
	items := <-itemsCh
	recent := <-recentCh
	totals := <-totalsCh

	if err := errors.Join(products.err, warehouses.err, items.err, recent.err, totals.err); err != nil {
		return nil, err
	}

	catalog := make(map[string]*entity.Product, len(products.list))
	out := &dto.SystemSummaryDTO{
		GeneratedAt:        now,
		TotalProducts:      len(products.list),
		TotalWarehouses:    len(warehouses.list),
		TotalItems:         len(items.list),
		TotalQuantity:      decimal.Zero,
		TotalValue:         decimal.Zero,
		TotalCapacity:      decimal.Zero,
		RecentTransactions: make([]dto.TransactionResponse, 0, len(recent.list)),
		LowStockAlerts:     []dto.ReportLineDTO{},
		ExcessAlerts:       []dto.ReportLineDTO{},
	}
	for _, p := range products.list {
		catalog[p.ID] = p
		if p.Active {
			out.ActiveProducts++
		}
	}
	warehouseIdx := make(map[string]*entity.Warehouse, len(warehouses.list))
	for _, w := range warehouses.list {
		warehouseIdx[w.ID] = w
		out.TotalCapacity = out.TotalCapacity.Add(w.Capacity)
	}
	for _, it := range items.list {
		line := reportLine(it, catalog[it.ProductID], warehouseIdx[it.WarehouseID])
		out.TotalQuantity = out.TotalQuantity.Add(it.Quantity)
		out.TotalValue = out.TotalValue.Add(line.Value)
		switch it.Status() {
		case entity.StockStatusLow:
			out.LowStockAlerts = append(out.LowStockAlerts, line)
		case entity.StockStatusExcess:
			out.ExcessAlerts = append(out.ExcessAlerts, line)
		}
	}
	if out.TotalCapacity.IsPositive() {
		out.UtilizationPct = out.TotalQuantity.Div(out.TotalCapacity).Mul(decimal.NewFromInt(100)).Round(2)
	}
	for _, t := range recent.list {
		out.RecentTransactions = append(out.RecentTransactions, dto.NewTransactionResponse(t))
	}
	out.TransactionTotals, out.TotalTransactions, _ = typeTotals(totals.totals)
	return out, nil
}

// ── Movimientos ───────────────────────────────────────────────────────────────

// TransactionReport conteo y suma por tipo de los movimientos en [start, end].
func (uc *ReportUseCase) TransactionReport(ctx context.Context, start, end time.Time) (*dto.TransactionReportDTO, error) {
	if start.After(end) {
		return nil, domain.NewValidationError("la fecha inicial no puede ser posterior a la final")
	}
	list, err := uc.transactions.ListByPeriod(ctx, start, end)
	if err != nil {
		return nil, err
	}
	totals, err := uc.transactions.TotalsByType(ctx, start, end)
	if err != nil {
		return nil, err
	}
	out := &dto.TransactionReportDTO{
		Start:        start,
		End:          end,
		Transactions: dto.NewTransactionList(list).Items,
	}
	out.ByType, out.TotalCount, out.TotalQuantity = typeTotals(totals)
	return out, nil
}

// ── Exportaciones ─────────────────────────────────────────────────────────────

// InventoryReportPDF reporte de inventario de la bodega en PDF.
func (uc *ReportUseCase) InventoryReportPDF(ctx context.Context, warehouseID string) ([]byte, error) {
	if uc.pdf == nil {
		return nil, ErrRendererUnavailable
	}
	r, err := uc.InventoryReport(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	return uc.pdf.InventoryReportPDF(r)
}

// InventoryReportXLSX reporte de inventario de la bodega en Excel.
func (uc *ReportUseCase) InventoryReportXLSX(ctx context.Context, warehouseID string) ([]byte, error) {
	if uc.sheets == nil {
		return nil, ErrRendererUnavailable
	}
	r, err := uc.InventoryReport(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	return uc.sheets.InventoryReportXLSX(r)
}

// TransactionReportXLSX reporte de movimientos del período en Excel.
func (uc *ReportUseCase) TransactionReportXLSX(ctx context.Context, start, end time.Time) ([]byte, error) {
	if uc.sheets == nil {
		return nil, ErrRendererUnavailable
	}
	r, err := uc.TransactionReport(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return uc.sheets.TransactionReportXLSX(r)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (uc *ReportUseCase) productIndex(ctx context.Context) (map[string]*entity.Product, error) {
	list, err := uc.products.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := make(map[string]*entity.Product, len(list))
	for _, p := range list {
		idx[p.ID] = p
	}
	return idx, nil
}

func reportLine(it *entity.InventoryItem, p *entity.Product, w *entity.Warehouse) dto.ReportLineDTO {
	line := dto.ReportLineDTO{
		ItemID:       it.ID,
		ProductID:    it.ProductID,
		WarehouseID:  it.WarehouseID,
		Quantity:     it.Quantity,
		MinimumLevel: it.MinimumLevel,
		MaximumLevel: it.MaximumLevel,
		UnitPrice:    decimal.Zero,
		Value:        decimal.Zero,
		Status:       string(it.Status()),
	}
	if p != nil {
		line.ProductCode = p.Code
		line.ProductName = p.Name
		line.Category = p.Category
		line.UnitPrice = p.Price
		line.Value = invdomain.StockValue(it.Quantity, p.Price)
	}
	if w != nil {
		line.WarehouseName = w.Name
	}
	return line
}

// typeTotals completa los tres tipos (con cero si no hubo movimientos) y suma los totales.
func typeTotals(totals []repository.TypeTotals) ([]dto.TypeTotalDTO, int, decimal.Decimal) {
	byType := make(map[entity.TransactionType]repository.TypeTotals, len(totals))
	for _, t := range totals {
		byType[t.Type] = t
	}
	out := make([]dto.TypeTotalDTO, 0, len(transactionTypes))
	count, qty := 0, decimal.Zero
	for _, tt := range transactionTypes {
		t := byType[tt]
		out = append(out, dto.TypeTotalDTO{Type: string(tt), Description: tt.Description(), Count: t.Count, Quantity: t.Quantity})
		count += t.Count
		qty = qty.Add(t.Quantity)
	}
	return out, count, qty
}
