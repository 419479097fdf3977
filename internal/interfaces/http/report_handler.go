package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse-api/internal/application/report"
)

const (
	mimePDF  = "application/pdf"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ReportHandler reportes de inventario y movimientos (JSON, PDF o XLSX).
type ReportHandler struct {
	uc *report.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Inventory godoc
// @Summary      Reporte de inventario de una bodega
// @Tags         reports
// @Security     Bearer
// @Produce      json,application/pdf
// @Param        warehouseId  path   string  true   "ID de la bodega"
// @Param        format       query  string  false  "json | pdf | xlsx"
// @Success      200          {object}  dto.InventoryReportDTO
// @Failure      404          {object}  dto.ErrorResponse
// @Router       /api/v1/reports/inventory/{warehouseId} [get]
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	ctx, warehouseID := c.UserContext(), c.Params("warehouseId")
	switch format := c.Query("format", "json"); format {
	case "json":
		out, err := h.uc.InventoryReport(ctx, warehouseID)
		if err != nil {
			return err
		}
		return c.JSON(out)
	case "pdf":
		b, err := h.uc.InventoryReportPDF(ctx, warehouseID)
		if err != nil {
			return err
		}
		return sendFile(c, mimePDF, "inventario_"+warehouseID+".pdf", b)
	case "xlsx":
		b, err := h.uc.InventoryReportXLSX(ctx, warehouseID)
		if err != nil {
			return err
		}
		return sendFile(c, mimeXLSX, "inventario_"+warehouseID+".xlsx", b)
	default:
		return badRequest(c, "INVALID_PARAM", "format debe ser json, pdf o xlsx")
	}
}

// Overall godoc
// @Summary      Reporte de inventario de todas las bodegas
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OverallInventoryReportDTO
// @Router       /api/v1/reports/inventory [get]
func (h *ReportHandler) Overall(c *fiber.Ctx) error {
	out, err := h.uc.OverallInventoryReport(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Transactions godoc
// @Summary      Movimientos de un período agregados por tipo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start   query  string  false  "Inicio (RFC3339); por defecto hace 30 días"
// @Param        end     query  string  false  "Fin (RFC3339); por defecto ahora"
// @Param        format  query  string  false  "json | xlsx"
// @Success      200     {object}  dto.TransactionReportDTO
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/v1/reports/transactions [get]
func (h *ReportHandler) Transactions(c *fiber.Ctx) error {
	start, end, err := parsePeriod(c, false)
	if err != nil {
		return badRequest(c, "INVALID_PARAM", err.Error())
	}
	switch format := c.Query("format", "json"); format {
	case "json":
		out, err := h.uc.TransactionReport(c.UserContext(), start, end)
		if err != nil {
			return err
		}
		return c.JSON(out)
	case "xlsx":
		b, err := h.uc.TransactionReportXLSX(c.UserContext(), start, end)
		if err != nil {
			return err
		}
		name := fmt.Sprintf("movimientos_%s_%s.xlsx", start.Format("20060102"), end.Format("20060102"))
		return sendFile(c, mimeXLSX, name, b)
	default:
		return badRequest(c, "INVALID_PARAM", "format debe ser json o xlsx")
	}
}

// Summary godoc
// @Summary      Resumen general del sistema
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SystemSummaryDTO
// @Router       /api/v1/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.SystemSummary(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func sendFile(c *fiber.Ctx, mime, name string, body []byte) error {
	c.Set(fiber.HeaderContentType, mime)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Set("X-Generated-At", time.Now().UTC().Format(time.RFC3339))
	return c.Send(body)
}
