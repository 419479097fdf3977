// Package xlsx exporta reportes a Excel e importa productos desde hojas de cálculo (excelize).
package xlsx

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/report"
)

var _ report.SpreadsheetRenderer = (*Renderer)(nil)

// Renderer implementa report.SpreadsheetRenderer.
type Renderer struct{}

func NewRenderer() *Renderer { return &Renderer{} }

// InventoryReportXLSX hoja "Inventario" con una fila por ítem y hoja "Categorías" con el agregado.
func (Renderer) InventoryReportXLSX(r *dto.InventoryReportDTO) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("xlsx: reporte nil")
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(sheet, "Inventario"); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	sheet = "Inventario"

	header := []any{"code", "product", "category", "quantity", "minimum_level", "maximum_level", "unit_price", "value", "status"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("xlsx: cabecera: %w", err)
	}
	row := 2
	for _, group := range [][]dto.ReportLineDTO{r.LowStock, r.Excess, r.Normal} {
		for _, l := range group {
			values := []any{
				l.ProductCode, l.ProductName, l.Category,
				l.Quantity.InexactFloat64(), levelCell(l.MinimumLevel), levelCell(l.MaximumLevel),
				l.UnitPrice.InexactFloat64(), l.Value.InexactFloat64(), l.Status,
			}
			if err := setRow(f, sheet, row, values); err != nil {
				return nil, err
			}
			row++
		}
	}
	totals := []any{"TOTAL", r.Warehouse.Name, "", r.TotalQuantity.InexactFloat64(), "", "", "", r.TotalValue.InexactFloat64(), ""}
	if err := setRow(f, sheet, row+1, totals); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet("Categorías"); err != nil {
		return nil, fmt.Errorf("xlsx: hoja categorías: %w", err)
	}
	catHeader := []any{"category", "item_count", "total_quantity", "total_value", "low_stock_count"}
	if err := f.SetSheetRow("Categorías", "A1", &catHeader); err != nil {
		return nil, fmt.Errorf("xlsx: cabecera categorías: %w", err)
	}
	for i, c := range r.Categories {
		values := []any{c.Category, c.ItemCount, c.TotalQuantity.InexactFloat64(), c.TotalValue.InexactFloat64(), c.LowStockCount}
		if err := setRow(f, "Categorías", i+2, values); err != nil {
			return nil, err
		}
	}
	return write(f)
}

// TransactionReportXLSX hoja "Resumen" por tipo y hoja "Movimientos" con el detalle.
func (Renderer) TransactionReportXLSX(r *dto.TransactionReportDTO) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("xlsx: reporte nil")
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(sheet, "Resumen"); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	header := []any{"type", "description", "count", "quantity"}
	if err := f.SetSheetRow("Resumen", "A1", &header); err != nil {
		return nil, fmt.Errorf("xlsx: cabecera: %w", err)
	}
	for i, t := range r.ByType {
		if err := setRow(f, "Resumen", i+2, []any{t.Type, t.Description, t.Count, t.Quantity.InexactFloat64()}); err != nil {
			return nil, err
		}
	}
	total := []any{"TOTAL", fmt.Sprintf("%s - %s", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02")), r.TotalCount, r.TotalQuantity.InexactFloat64()}
	if err := setRow(f, "Resumen", len(r.ByType)+3, total); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet("Movimientos"); err != nil {
		return nil, fmt.Errorf("xlsx: hoja movimientos: %w", err)
	}
	detailHeader := []any{"id", "timestamp", "type", "product_id", "source_warehouse_id", "destination_warehouse_id", "quantity", "user_id", "reference_number"}
	if err := f.SetSheetRow("Movimientos", "A1", &detailHeader); err != nil {
		return nil, fmt.Errorf("xlsx: cabecera movimientos: %w", err)
	}
	for i, t := range r.Transactions {
		values := []any{
			t.ID, t.Timestamp.Format("2006-01-02 15:04:05"), t.Type, t.ProductID,
			deref(t.SourceWarehouseID), deref(t.DestinationWarehouseID),
			t.Quantity.InexactFloat64(), t.UserID, deref(t.ReferenceNumber),
		}
		if err := setRow(f, "Movimientos", i+2, values); err != nil {
			return nil, err
		}
	}
	return write(f)
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("xlsx: celda: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("xlsx: fila %d: %w", row, err)
	}
	return nil
}

func write(f *excelize.File) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// levelCell umbral ausente = celda vacía.
func levelCell(d *decimal.Decimal) any {
	if d == nil {
		return ""
	}
	return d.InexactFloat64()
}
