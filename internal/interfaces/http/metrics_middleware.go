package http

import "github.com/gofiber/fiber/v2"

// RequestRecorder cuenta peticiones HTTP (lo implementa metrics.Sink).
type RequestRecorder interface {
	RecordAPIRequest(method, route string, status int)
}

// RequestMetrics incrementa api_requests_total{method,route,status}. La ruta es el patrón
// registrado para no disparar la cardinalidad con IDs.
func RequestMetrics(rec RequestRecorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			status, _ = StatusFor(err)
		}
		rec.RecordAPIRequest(c.Method(), c.Route().Path, status)
		return err
	}
}
