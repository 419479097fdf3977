package validation_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/validation"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func str(s string) *string { return &s }

func validProduct() *entity.Product {
	return &entity.Product{
		Code:        "SKU-001_A",
		Name:        "Tornillo",
		Description: "Tornillo hexagonal",
		Category:    "Ferretería",
		Price:       dec("12.50"),
		Active:      true,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateProduct_Valido(t *testing.T) {
	p := validProduct()
	p.Barcode = str("12345678")
	w := dec("0")
	p.Weight = &w
	p.Dimensions = str("10 x 20.5 x 3")
	assert.NoError(t, validation.ValidateProduct(p))
}

func TestValidateProduct_AcumulaTodosLosErrores(t *testing.T) {
	p := &entity.Product{
		Code:        "sku minúscula",
		Name:        "   ",
		Description: "",
		Category:    strings.Repeat("c", 101),
		Price:       dec("-1.234"),
		Barcode:     str("12AB"),
		Dimensions:  str("10x20"),
	}
	err := validation.ValidateProduct(p)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)

	msgs := domain.ValidationMessages(err)
	// código, nombre, descripción, categoría, precio, barcode, dimensiones
	assert.Len(t, msgs, 7)
	joined := strings.Join(msgs, "|")
	assert.Contains(t, joined, "código")
	assert.Contains(t, joined, "nombre es obligatorio")
	assert.Contains(t, joined, "categoría no puede superar 100")
	assert.Contains(t, joined, "precio no puede ser negativo")
	assert.Contains(t, joined, "código de barras")
	assert.Contains(t, joined, "dimensiones")
}

func TestValidateProduct_EscalaPrecio(t *testing.T) {
	p := validProduct()
	p.Price = dec("1.234")
	err := validation.ValidateProduct(p)
	require.Error(t, err)
	assert.Equal(t, []string{"precio admite como máximo 2 decimales"}, domain.ValidationMessages(err))

	p.Price = dec("1.230")
	assert.NoError(t, validation.ValidateProduct(p))
}

func TestValidateProduct_CodigoLimites(t *testing.T) {
	p := validProduct()
	p.Code = strings.Repeat("A", 50)
	assert.NoError(t, validation.ValidateProduct(p))

	p.Code = strings.Repeat("A", 51)
	assert.Error(t, validation.ValidateProduct(p))
}

// ──────────────────────────────────────────────────────────────────────────────
// Bodegas
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateWarehouse(t *testing.T) {
	ok := &entity.Warehouse{Name: "Central", Location: "Bogotá", Capacity: dec("1000000")}
	assert.NoError(t, validation.ValidateWarehouse(ok))

	bad := &entity.Warehouse{Name: "", Location: " ", Capacity: dec("0"), Description: str(strings.Repeat("d", 1001))}
	err := validation.ValidateWarehouse(bad)
	require.Error(t, err)
	assert.Len(t, domain.ValidationMessages(err), 4)

	over := &entity.Warehouse{Name: "X", Location: "Y", Capacity: dec("1000000.01")}
	err = validation.ValidateWarehouse(over)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "capacidad no puede superar")
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateTransaction_ReglasPorTipo(t *testing.T) {
	w1, w2 := "w1", "w2"
	base := func(typ entity.TransactionType, src, dst *string) *entity.Transaction {
		return &entity.Transaction{
			Type: typ, ProductID: "p1", Quantity: dec("5"), UserID: entity.DefaultTransactionUser,
			SourceWarehouseID: src, DestinationWarehouseID: dst,
		}
	}

	assert.NoError(t, validation.ValidateTransaction(base(entity.TransactionReceipt, nil, &w1)))
	assert.NoError(t, validation.ValidateTransaction(base(entity.TransactionIssue, &w1, nil)))
	assert.NoError(t, validation.ValidateTransaction(base(entity.TransactionTransfer, &w1, &w2)))

	err := validation.ValidateTransaction(base(entity.TransactionReceipt, &w1, nil))
	require.Error(t, err)
	assert.Len(t, domain.ValidationMessages(err), 2)

	err = validation.ValidateTransaction(base(entity.TransactionTransfer, &w1, &w1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no pueden ser la misma")
}

func TestValidateTransaction_CantidadYLongitudes(t *testing.T) {
	w1 := "w1"
	tx := &entity.Transaction{
		Type:              entity.TransactionIssue,
		ProductID:         "p1",
		SourceWarehouseID: &w1,
		Quantity:          dec("0.001"),
		Description:       str(strings.Repeat("x", 501)),
		UserID:            strings.Repeat("u", 51),
		ReferenceNumber:   str(strings.Repeat("r", 101)),
	}
	err := validation.ValidateTransaction(tx)
	require.Error(t, err)
	// escala, descripción, usuario, referencia
	assert.Len(t, domain.ValidationMessages(err), 4)

	tx.Quantity = dec("0")
	tx.Description, tx.UserID, tx.ReferenceNumber = nil, "", nil
	err = validation.ValidateTransaction(tx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cantidad debe ser mayor que cero")
}

func TestValidateTransaction_TipoDesconocido(t *testing.T) {
	err := validation.ValidateTransaction(&entity.Transaction{Type: "LOAN", ProductID: "p1", Quantity: dec("1")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tipo debe ser uno de")
}

// ──────────────────────────────────────────────────────────────────────────────
// Guardas genéricas
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateQuantity(t *testing.T) {
	assert.NoError(t, validation.ValidateQuantity(dec("0.01"), "ajuste"))
	assert.Error(t, validation.ValidateQuantity(dec("0"), "ajuste"))
	err := validation.ValidateQuantity(dec("-1.555"), "ajuste")
	require.Error(t, err)
	assert.Len(t, domain.ValidationMessages(err), 2)
}

func TestValidateStockQuantity_AdmiteCero(t *testing.T) {
	assert.NoError(t, validation.ValidateStockQuantity(decimal.Zero, "set"))
	assert.Error(t, validation.ValidateStockQuantity(dec("-0.01"), "set"))
}

func TestValidateID(t *testing.T) {
	assert.NoError(t, validation.ValidateID(uuid.NewString(), "producto"))
	assert.ErrorIs(t, validation.ValidateID("", "producto"), domain.ErrValidation)
	assert.ErrorIs(t, validation.ValidateID("123", "producto"), domain.ErrValidation)
}

func TestValidateLevels(t *testing.T) {
	lo, hi := dec("5"), dec("10")
	assert.NoError(t, validation.ValidateLevels(&lo, &hi))
	assert.NoError(t, validation.ValidateLevels(nil, &hi))
	assert.Error(t, validation.ValidateLevels(&hi, &lo))
}
