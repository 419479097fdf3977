package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrValidation        = errors.New("error de validación")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrNegativeStock     = errors.New("el inventario no puede ser negativo")
	ErrInactiveProduct   = errors.New("producto inactivo")
)

// ValidationError agrupa todas las reglas violadas en una sola respuesta.
type ValidationError struct {
	Messages []string
}

// NewValidationError construye el error; devuelve nil si no hay mensajes.
func NewValidationError(messages ...string) error {
	if len(messages) == 0 {
		return nil
	}
	return &ValidationError{Messages: messages}
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + strings.Join(e.Messages, "; ")
}

// Is permite errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundf envuelve ErrNotFound con contexto.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

// Conflictf envuelve ErrConflict con contexto.
func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrConflict)
}

// InsufficientStockError describe la falta de stock en la bodega origen.
type InsufficientStockError struct {
	Available string
	Required  string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: disponible %s, requerido %s", ErrInsufficientStock.Error(), e.Available, e.Required)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock || target == ErrConflict
}

// IsConflict indica si el error pertenece a la clase Conflict/InvalidState.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrDuplicate) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrNegativeStock)
}

// ValidationMessages devuelve los mensajes si err es un ValidationError.
func ValidationMessages(err error) []string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Messages
	}
	return nil
}

// Kind clasifica el error para métricas y logs: not_found, validation, conflict, auth o unexpected.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInactiveProduct):
		return "validation"
	case IsConflict(err):
		return "conflict"
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrForbidden):
		return "auth"
	default:
		return "unexpected"
	}
}
