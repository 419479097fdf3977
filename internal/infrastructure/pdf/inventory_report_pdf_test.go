package pdf_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/infrastructure/pdf"
)

func TestMarotoRenderer_InventoryReportPDF(t *testing.T) {
	minLevel := decimal.NewFromInt(10)
	r := &dto.InventoryReportDTO{
		Warehouse:      dto.WarehouseResponse{ID: "w-1", Name: "Central", Location: "Bogotá", Capacity: decimal.NewFromInt(100)},
		GeneratedAt:    time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		ItemCount:      1,
		TotalQuantity:  decimal.NewFromInt(5),
		TotalValue:     decimal.NewFromInt(50),
		UtilizationPct: decimal.NewFromInt(5),
		LowStock: []dto.ReportLineDTO{{
			ProductCode: "HAM", ProductName: "Martillo", Category: "Herramientas",
			Quantity: decimal.NewFromInt(5), MinimumLevel: &minLevel,
			UnitPrice: decimal.NewFromInt(10), Value: decimal.NewFromInt(50), Status: "LOW",
		}},
		Categories: []dto.CategoryBreakdownDTO{{
			Category: "Herramientas", ItemCount: 1, TotalQuantity: decimal.NewFromInt(5),
			TotalValue: decimal.NewFromInt(50), LowStockCount: 1,
		}},
	}

	out, err := pdf.NewMarotoRenderer().InventoryReportPDF(r)
	require.NoError(t, err)
	assert.True(t, len(out) > 4)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestMarotoRenderer_NilReport(t *testing.T) {
	_, err := pdf.NewMarotoRenderer().InventoryReportPDF(nil)
	assert.Error(t, err)
}
