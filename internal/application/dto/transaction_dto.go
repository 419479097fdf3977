package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTransactionRequest body para POST /api/v1/transactions.
// El usuario se toma del token; si no hay, SYSTEM.
type CreateTransactionRequest struct {
	Type                   string          `json:"type"`
	ProductID              string          `json:"product_id"`
	SourceWarehouseID      *string         `json:"source_warehouse_id,omitempty"`
	DestinationWarehouseID *string         `json:"destination_warehouse_id,omitempty"`
	Quantity               decimal.Decimal `json:"quantity"`
	Description            *string         `json:"description,omitempty"`
	ReferenceNumber        *string         `json:"reference_number,omitempty"`
}

// TransactionResponse salida de un movimiento.
type TransactionResponse struct {
	ID                     string          `json:"id"`
	Type                   string          `json:"type"`
	TypeDescription        string          `json:"type_description"`
	ProductID              string          `json:"product_id"`
	SourceWarehouseID      *string         `json:"source_warehouse_id,omitempty"`
	DestinationWarehouseID *string         `json:"destination_warehouse_id,omitempty"`
	Quantity               decimal.Decimal `json:"quantity"`
	Timestamp              time.Time       `json:"timestamp"`
	Description            *string         `json:"description,omitempty"`
	UserID                 string          `json:"user_id"`
	ReferenceNumber        *string         `json:"reference_number,omitempty"`
}

// TransactionListResponse lista de movimientos.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Meta  ListMeta              `json:"meta"`
}
