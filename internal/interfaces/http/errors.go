package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/ports"
	"github.com/jhoicas/warehouse-api/internal/application/report"
	"github.com/jhoicas/warehouse-api/internal/domain"
)

// StatusFor traduce un error de dominio a status HTTP y código de respuesta.
func StatusFor(err error) (int, string) {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code, "HTTP_ERROR"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrInactiveProduct):
		return fiber.StatusBadRequest, "INACTIVE_PRODUCT"
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrNegativeStock):
		return fiber.StatusConflict, "NEGATIVE_STOCK"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, report.ErrRendererUnavailable):
		return fiber.StatusNotImplemented, "FORMAT_UNAVAILABLE"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// NewErrorHandler handler de errores de Fiber. Los 500 se loguean y cuentan; el cliente
// solo recibe un mensaje genérico.
func NewErrorHandler(log zerolog.Logger, metrics ports.MetricsSink) fiber.ErrorHandler {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return func(c *fiber.Ctx, err error) error {
		status, code := StatusFor(err)
		resp := dto.ErrorResponse{Code: code, Message: err.Error()}
		if details := domain.ValidationMessages(err); len(details) > 0 {
			resp.Message = domain.ErrValidation.Error()
			resp.Details = details
		}
		if status >= fiber.StatusInternalServerError && status != fiber.StatusNotImplemented {
			log.Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("error no controlado")
			metrics.RecordError("unexpected", "http")
			resp.Message = "error interno del servidor"
		}
		return c.Status(status).JSON(resp)
	}
}

func badRequest(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: message})
}
