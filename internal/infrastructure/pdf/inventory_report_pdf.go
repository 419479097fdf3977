// Package pdf genera el reporte de inventario de una bodega en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Bodega + ubicación  │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Ítems / Cantidad / Valor / Utilización             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SECCIONES: Stock bajo, Exceso, Normal                       │
//	│    Código | Producto | Categoría | Cant. | Mín | Máx | Valor │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CATEGORÍAS: Ítems / Cantidad / Valor / Bajo mínimo          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/report"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorLow     = &props.Color{Red: 170, Green: 30, Blue: 30}
	colorExcess  = &props.Color{Red: 190, Green: 110, Blue: 0}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

var _ report.PDFRenderer = (*MarotoRenderer)(nil)

// MarotoRenderer implementa report.PDFRenderer usando Maroto v2.
type MarotoRenderer struct{}

// NewMarotoRenderer construye el renderer.
func NewMarotoRenderer() *MarotoRenderer { return &MarotoRenderer{} }

// InventoryReportPDF genera el PDF y devuelve sus bytes.
func (g *MarotoRenderer) InventoryReportPDF(r *dto.InventoryReportDTO) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("pdf: reporte nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de inventario - "+r.Warehouse.Name, true).
		WithAuthor("warehouse-api", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionRows("STOCK BAJO", colorLow, r.LowStock)...)
	m.AddRows(sectionRows("EXCESO", colorExcess, r.Excess)...)
	m.AddRows(sectionRows("NORMAL", colorPrimary, r.Normal)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(categoryRows(r.Categories)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r *dto.InventoryReportDTO) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(r.Warehouse.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Ubicación: "+r.Warehouse.Location, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("REPORTE DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+r.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func summaryRow(r *dto.InventoryReportDTO) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 7, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Top: 6}),
		)
	}
	return row.New(14).Add(
		cell("ÍTEMS", fmt.Sprintf("%d", r.ItemCount)),
		cell("CANTIDAD TOTAL", formatQty(r.TotalQuantity)),
		cell("VALOR TOTAL", "$"+formatMoney(r.TotalValue)),
		cell("UTILIZACIÓN", r.UtilizationPct.StringFixed(2)+"%"),
	)
}

// sectionRows título + cabecera + una fila por línea; sin líneas solo el título con "Sin ítems".
func sectionRows(title string, color *props.Color, lines []dto.ReportLineDTO) []core.Row {
	rows := []core.Row{
		row.New(8).Add(col.New(12).Add(
			text.New(fmt.Sprintf("%s (%d)", title, len(lines)), props.Text{
				Style: fontstyle.Bold, Size: 9, Color: color, Top: 3,
			}),
		)),
	}
	if len(lines) == 0 {
		return append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Sin ítems", props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
		)))
	}
	rows = append(rows, tableHeaderRow())
	for _, l := range lines {
		rows = append(rows, row.New(6).Add(
			col.New(2).Add(text.New(l.ProductCode, props.Text{Size: 7.5, Top: 1, Left: 1})),
			col.New(4).Add(text.New(l.ProductName, props.Text{Size: 7.5, Top: 1})),
			col.New(2).Add(text.New(l.Category, props.Text{Size: 7.5, Top: 1})),
			col.New(1).Add(text.New(formatQty(l.Quantity), props.Text{Size: 7.5, Align: align.Right, Top: 1})),
			col.New(1).Add(text.New(formatLevel(l.MinimumLevel), props.Text{Size: 7.5, Align: align.Right, Top: 1})),
			col.New(1).Add(text.New(formatLevel(l.MaximumLevel), props.Text{Size: 7.5, Align: align.Right, Top: 1})),
			col.New(1).Add(text.New(formatMoney(l.Value), props.Text{Size: 7.5, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7.5, Align: a,
			Color: colorPrimary, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Código", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Categoría", 2, align.Left),
		h("Cant.", 1, align.Right),
		h("Mín", 1, align.Right),
		h("Máx", 1, align.Right),
		h("Valor", 1, align.Right),
	)
}

func categoryRows(categories []dto.CategoryBreakdownDTO) []core.Row {
	rows := []core.Row{
		row.New(8).Add(col.New(12).Add(
			text.New("RESUMEN POR CATEGORÍA", props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
			}),
		)),
	}
	for _, c := range categories {
		rows = append(rows, row.New(6).Add(
			col.New(4).Add(text.New(c.Category, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d ítems", c.ItemCount), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(2).Add(text.New(formatQty(c.TotalQuantity), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(2).Add(text.New("$"+formatMoney(c.TotalValue), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d bajo mín.", c.LowStockCount), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1, Color: colorLow,
			})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func formatQty(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func formatLevel(d *decimal.Decimal) string {
	if d == nil {
		return "—"
	}
	return d.StringFixed(0)
}

// formatMoney separa miles con punto y decimales con coma.
// Ej: 1234567.5 → "1.234.567,50"
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	out := groupThousands(intPart) + "," + frac
	if d.IsNegative() {
		return "-" + out
	}
	return out
}

func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
