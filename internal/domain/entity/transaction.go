package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tipo de movimiento de stock.
type TransactionType string

const (
	TransactionReceipt  TransactionType = "RECEIPT"  // entrada sin origen
	TransactionIssue    TransactionType = "ISSUE"    // salida sin destino
	TransactionTransfer TransactionType = "TRANSFER" // traslado entre bodegas distintas
)

// DefaultTransactionUser se usa cuando el movimiento no trae usuario.
const DefaultTransactionUser = "SYSTEM"

// ParseTransactionType valida el texto recibido.
func ParseTransactionType(s string) (TransactionType, bool) {
	switch t := TransactionType(s); t {
	case TransactionReceipt, TransactionIssue, TransactionTransfer:
		return t, true
	}
	return "", false
}

// Description etiqueta legible del tipo.
func (t TransactionType) Description() string {
	switch t {
	case TransactionReceipt:
		return "Recepción"
	case TransactionIssue:
		return "Despacho"
	case TransactionTransfer:
		return "Traslado"
	default:
		return string(t)
	}
}

// Transaction es una entrada inmutable del libro de movimientos.
type Transaction struct {
	ID                     string
	Type                   TransactionType
	ProductID              string
	SourceWarehouseID      *string
	DestinationWarehouseID *string
	Quantity               decimal.Decimal
	Timestamp              time.Time
	Description            *string
	UserID                 string
	ReferenceNumber        *string
}

// IsValid aplica las reglas de referencias por tipo.
//
//	RECEIPT:  destino requerido, sin origen
//	ISSUE:    origen requerido, sin destino
//	TRANSFER: ambos requeridos y distintos
func (t *Transaction) IsValid() bool {
	src, dst := t.SourceWarehouseID, t.DestinationWarehouseID
	switch t.Type {
	case TransactionReceipt:
		return dst != nil && src == nil
	case TransactionIssue:
		return src != nil && dst == nil
	case TransactionTransfer:
		return src != nil && dst != nil && *src != *dst
	default:
		return false
	}
}

// DirectionDescription describe el sentido del movimiento.
func (t *Transaction) DirectionDescription() string {
	switch t.Type {
	case TransactionReceipt:
		return "Entrada a " + deref(t.DestinationWarehouseID)
	case TransactionIssue:
		return "Salida de " + deref(t.SourceWarehouseID)
	case TransactionTransfer:
		return deref(t.SourceWarehouseID) + " → " + deref(t.DestinationWarehouseID)
	default:
		return "Desconocido"
	}
}

func deref(s *string) string {
	if s == nil {
		return "?"
	}
	return *s
}
