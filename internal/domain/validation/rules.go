package validation

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// MaxWarehouseCapacity capacidad máxima admitida para una bodega.
const MaxWarehouseCapacity = 1000000

type productRules struct {
	Code        string           `label:"código" validate:"product_code"`
	Name        string           `label:"nombre" validate:"notblank,max=255"`
	Description string           `label:"descripción" validate:"notblank,max=1000"`
	Category    string           `label:"categoría" validate:"notblank,max=100"`
	Price       decimal.Decimal  `label:"precio" validate:"dec_gte0,dec_scale2"`
	Barcode     *string          `label:"código de barras" validate:"omitempty,barcode"`
	Weight      *decimal.Decimal `label:"peso" validate:"omitempty,dec_gte0"`
	Dimensions  *string          `label:"dimensiones" validate:"omitempty,dimensions"`
}

type warehouseRules struct {
	Name        string          `label:"nombre" validate:"notblank,max=100"`
	Location    string          `label:"ubicación" validate:"notblank,max=255"`
	Capacity    decimal.Decimal `label:"capacidad" validate:"dec_gt0,dec_lte=1000000"`
	Description *string         `label:"descripción" validate:"omitempty,max=1000"`
}

type transactionRules struct {
	Type            string          `label:"tipo" validate:"oneof=RECEIPT ISSUE TRANSFER"`
	ProductID       string          `label:"producto" validate:"notblank"`
	Quantity        decimal.Decimal `label:"cantidad" validate:"dec_gt0,dec_scale2"`
	Description     *string         `label:"descripción" validate:"omitempty,max=500"`
	UserID          string          `label:"usuario" validate:"max=50"`
	ReferenceNumber *string         `label:"número de referencia" validate:"omitempty,max=100"`
}

// ValidateProduct valida todos los campos del producto.
func ValidateProduct(p *entity.Product) error {
	return domain.NewValidationError(collect(productRules{
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Barcode:     p.Barcode,
		Weight:      p.Weight,
		Dimensions:  p.Dimensions,
	})...)
}

// ValidateWarehouse valida nombre, ubicación, capacidad y descripción.
func ValidateWarehouse(w *entity.Warehouse) error {
	return domain.NewValidationError(collect(warehouseRules{
		Name:        w.Name,
		Location:    w.Location,
		Capacity:    w.Capacity,
		Description: w.Description,
	})...)
}

// ValidateTransaction valida los campos y las referencias de bodega según el tipo.
func ValidateTransaction(t *entity.Transaction) error {
	msgs := collect(transactionRules{
		Type:            string(t.Type),
		ProductID:       t.ProductID,
		Quantity:        t.Quantity,
		Description:     t.Description,
		UserID:          t.UserID,
		ReferenceNumber: t.ReferenceNumber,
	})
	msgs = append(msgs, referenceMessages(t)...)
	return domain.NewValidationError(msgs...)
}

func referenceMessages(t *entity.Transaction) []string {
	src, dst := t.SourceWarehouseID, t.DestinationWarehouseID
	var msgs []string
	switch t.Type {
	case entity.TransactionReceipt:
		if dst == nil {
			msgs = append(msgs, "la recepción requiere bodega destino")
		}
		if src != nil {
			msgs = append(msgs, "la recepción no admite bodega origen")
		}
	case entity.TransactionIssue:
		if src == nil {
			msgs = append(msgs, "el despacho requiere bodega origen")
		}
		if dst != nil {
			msgs = append(msgs, "el despacho no admite bodega destino")
		}
	case entity.TransactionTransfer:
		if src == nil {
			msgs = append(msgs, "el traslado requiere bodega origen")
		}
		if dst == nil {
			msgs = append(msgs, "el traslado requiere bodega destino")
		}
		if src != nil && dst != nil && *src == *dst {
			msgs = append(msgs, "la bodega origen y destino no pueden ser la misma")
		}
	}
	return msgs
}

// ValidateQuantity exige cantidad positiva con máximo 2 decimales.
func ValidateQuantity(qty decimal.Decimal, operation string) error {
	var msgs []string
	if !qty.IsPositive() {
		msgs = append(msgs, fmt.Sprintf("%s: la cantidad debe ser mayor que cero", operation))
	}
	if !scaleOK(qty, 2) {
		msgs = append(msgs, fmt.Sprintf("%s: la cantidad admite como máximo 2 decimales", operation))
	}
	return domain.NewValidationError(msgs...)
}

// ValidateStockQuantity como ValidateQuantity pero admite cero (cantidades absolutas).
func ValidateStockQuantity(qty decimal.Decimal, operation string) error {
	var msgs []string
	if qty.IsNegative() {
		msgs = append(msgs, fmt.Sprintf("%s: la cantidad no puede ser negativa", operation))
	}
	if !scaleOK(qty, 2) {
		msgs = append(msgs, fmt.Sprintf("%s: la cantidad admite como máximo 2 decimales", operation))
	}
	return domain.NewValidationError(msgs...)
}

// ValidateID exige un UUID no vacío.
func ValidateID(id, entityName string) error {
	if id == "" {
		return domain.NewValidationError(fmt.Sprintf("el id de %s es obligatorio", entityName))
	}
	if _, err := uuid.Parse(id); err != nil {
		return domain.NewValidationError(fmt.Sprintf("el id de %s no es válido: %q", entityName, id))
	}
	return nil
}

// ValidateLevels valida umbrales mínimo/máximo opcionales.
func ValidateLevels(minLevel, maxLevel *decimal.Decimal) error {
	var msgs []string
	if minLevel != nil && minLevel.IsNegative() {
		msgs = append(msgs, "el nivel mínimo no puede ser negativo")
	}
	if maxLevel != nil && maxLevel.IsNegative() {
		msgs = append(msgs, "el nivel máximo no puede ser negativo")
	}
	if minLevel != nil && maxLevel != nil && minLevel.GreaterThan(*maxLevel) {
		msgs = append(msgs, "el nivel mínimo no puede superar al máximo")
	}
	return domain.NewValidationError(msgs...)
}
