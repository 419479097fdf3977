package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

// defaultReportWindow período por defecto de los reportes de movimientos.
const defaultReportWindow = 30 * 24 * time.Hour

// parsePeriod lee start/end en RFC3339. Si required es false y faltan, usa los últimos 30 días.
func parsePeriod(c *fiber.Ctx, required bool) (time.Time, time.Time, error) {
	rawStart, rawEnd := c.Query("start"), c.Query("end")
	if rawStart == "" && rawEnd == "" && !required {
		end := time.Now().UTC()
		return end.Add(-defaultReportWindow), end, nil
	}
	if rawStart == "" || rawEnd == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("start y end son requeridos (RFC3339)")
	}
	start, err := time.Parse(time.RFC3339, rawStart)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start inválido: use RFC3339")
	}
	end, err := time.Parse(time.RFC3339, rawEnd)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end inválido: use RFC3339")
	}
	return start, end, nil
}
