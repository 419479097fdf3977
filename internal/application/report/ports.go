package report

import "github.com/jhoicas/warehouse-api/internal/application/dto"

// PDFRenderer genera el PDF de un reporte de inventario.
type PDFRenderer interface {
	InventoryReportPDF(r *dto.InventoryReportDTO) ([]byte, error)
}

// SpreadsheetRenderer genera hojas de cálculo (.xlsx) de los reportes.
type SpreadsheetRenderer interface {
	InventoryReportXLSX(r *dto.InventoryReportDTO) ([]byte, error)
	TransactionReportXLSX(r *dto.TransactionReportDTO) ([]byte, error)
}
