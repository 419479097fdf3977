package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryReportDTO reporte de inventario de una bodega.
type InventoryReportDTO struct {
	Warehouse      WarehouseResponse      `json:"warehouse"`
	GeneratedAt    time.Time              `json:"generated_at"`
	ItemCount      int                    `json:"item_count"`
	TotalQuantity  decimal.Decimal        `json:"total_quantity"`
	TotalValue     decimal.Decimal        `json:"total_value"`
	UtilizationPct decimal.Decimal        `json:"utilization_pct"`
	LowStock       []ReportLineDTO        `json:"low_stock"`
	Excess         []ReportLineDTO        `json:"excess"`
	Normal         []ReportLineDTO        `json:"normal"`
	Categories     []CategoryBreakdownDTO `json:"categories"`
}

// ReportLineDTO línea de producto dentro de un reporte.
type ReportLineDTO struct {
	ItemID        string           `json:"item_id"`
	ProductID     string           `json:"product_id"`
	WarehouseID   string           `json:"warehouse_id"`
	WarehouseName string           `json:"warehouse_name"`
	ProductCode   string           `json:"product_code"`
	ProductName   string           `json:"product_name"`
	Category      string           `json:"category"`
	Quantity      decimal.Decimal  `json:"quantity"`
	MinimumLevel  *decimal.Decimal `json:"minimum_level,omitempty"`
	MaximumLevel  *decimal.Decimal `json:"maximum_level,omitempty"`
	UnitPrice     decimal.Decimal  `json:"unit_price"`
	Value         decimal.Decimal  `json:"value"`
	Status        string           `json:"status"`
}

// CategoryBreakdownDTO agregado por categoría de producto.
type CategoryBreakdownDTO struct {
	Category      string          `json:"category"`
	ItemCount     int             `json:"item_count"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
	LowStockCount int             `json:"low_stock_count"`
}

// OverallInventoryReportDTO reporte de todas las bodegas con totales generales.
type OverallInventoryReportDTO struct {
	GeneratedAt   time.Time            `json:"generated_at"`
	Warehouses    []InventoryReportDTO `json:"warehouses"`
	ItemCount     int                  `json:"item_count"`
	TotalQuantity decimal.Decimal      `json:"total_quantity"`
	TotalValue    decimal.Decimal      `json:"total_value"`
	LowStockCount int                  `json:"low_stock_count"`
	ExcessCount   int                  `json:"excess_count"`
}

// SystemSummaryDTO respuesta de GET /api/v1/reports/summary.
type SystemSummaryDTO struct {
	GeneratedAt        time.Time             `json:"generated_at"`
	TotalProducts      int                   `json:"total_products"`
	ActiveProducts     int                   `json:"active_products"`
	TotalWarehouses    int                   `json:"total_warehouses"`
	TotalItems         int                   `json:"total_items"`
	TotalQuantity      decimal.Decimal       `json:"total_quantity"`
	TotalValue         decimal.Decimal       `json:"total_value"`
	TotalCapacity      decimal.Decimal       `json:"total_capacity"`
	UtilizationPct     decimal.Decimal       `json:"utilization_pct"`
	TotalTransactions  int                   `json:"total_transactions"`
	TransactionTotals  []TypeTotalDTO        `json:"transaction_totals"`
	RecentTransactions []TransactionResponse `json:"recent_transactions"`
	LowStockAlerts     []ReportLineDTO       `json:"low_stock_alerts"`
	ExcessAlerts       []ReportLineDTO       `json:"excess_alerts"`
}

// TransactionReportDTO movimientos de un período agregados por tipo.
type TransactionReportDTO struct {
	Start         time.Time           `json:"start"`
	End           time.Time           `json:"end"`
	ByType        []TypeTotalDTO      `json:"by_type"`
	TotalCount    int                 `json:"total_count"`
	TotalQuantity decimal.Decimal     `json:"total_quantity"`
	Transactions  []TransactionResponse `json:"transactions"`
}

// TypeTotalDTO conteo y suma de cantidades para un tipo de movimiento.
type TypeTotalDTO struct {
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Count       int             `json:"count"`
	Quantity    decimal.Decimal `json:"quantity"`
}
