package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/application/ports"
	"github.com/jhoicas/warehouse-api/internal/application/usecase"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type opsSpy struct {
	ports.NopAudit
	ports.NopMetrics
	changes []string
	ops     []string
}

func (s *opsSpy) LogDataChange(_ context.Context, action, _, _ string, _, _ any) {
	s.changes = append(s.changes, action)
}
func (s *opsSpy) RecordProductOperation(op string) { s.ops = append(s.ops, op) }

type env struct {
	store      *memory.Store
	spy        *opsSpy
	products   *usecase.ProductUseCase
	warehouses *usecase.WarehouseUseCase
	inv        *inventory.InventoryUseCase
}

func newEnv() *env {
	store := memory.NewStore()
	spy := &opsSpy{}
	sinks := ports.Sinks{Audit: spy, Metrics: spy}
	return &env{
		store:      store,
		spy:        spy,
		products:   usecase.NewProductUseCase(store.Products(), store.Items(), store.Transactions(), sinks),
		warehouses: usecase.NewWarehouseUseCase(store.Warehouses(), store.Items(), store.Products(), sinks),
		inv:        inventory.NewInventoryUseCase(store.TxRunner(), store.Items(), sinks),
	}
}

func productReq(code string) dto.CreateProductRequest {
	return dto.CreateProductRequest{Code: code, Name: "Producto " + code, Description: "desc", Category: "Herramientas", Price: dec("12.50")}
}

func warehouseReq(name string) dto.CreateWarehouseRequest {
	return dto.CreateWarehouseRequest{Name: name, Location: "Bogotá", Capacity: dec("200")}
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProductUseCase_CreateYConsultas(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	created, err := e.products.Create(ctx, productReq("P-001"))
	require.NoError(t, err)
	assert.True(t, created.Active)

	byID, err := e.products.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "P-001", byID.Code)

	byCode, err := e.products.GetByCode(ctx, "P-001")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byCode.ID)

	_, err = e.products.GetByCode(ctx, "NOPE")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, []string{"PRODUCT_CREATED"}, e.spy.changes)
	assert.Equal(t, []string{"create"}, e.spy.ops)
}

func TestProductUseCase_CodigoDuplicado(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	_, err := e.products.Create(ctx, productReq("P-001"))
	require.NoError(t, err)
	_, err = e.products.Create(ctx, productReq("P-001"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.True(t, domain.IsConflict(err))

	other, err := e.products.Create(ctx, productReq("P-002"))
	require.NoError(t, err)
	code := "P-001"
	_, err = e.products.Update(ctx, other.ID, dto.UpdateProductRequest{Code: &code})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductUseCase_CreateInvalido(t *testing.T) {
	e := newEnv()
	_, err := e.products.Create(context.Background(), dto.CreateProductRequest{Price: dec("-1")})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.GreaterOrEqual(t, len(domain.ValidationMessages(err)), 3)
}

func TestProductUseCase_UpdateParcial(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	created, err := e.products.Create(ctx, productReq("P-001"))
	require.NoError(t, err)

	price := dec("99.99")
	inactive := false
	updated, err := e.products.Update(ctx, created.ID, dto.UpdateProductRequest{Price: &price, Active: &inactive})
	require.NoError(t, err)
	assert.True(t, price.Equal(updated.Price))
	assert.False(t, updated.Active)
	assert.Equal(t, created.Name, updated.Name)

	_, err = e.products.Update(ctx, "nope", dto.UpdateProductRequest{Price: &price})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_Search(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	_, err := e.products.Create(ctx, productReq("TAL-01"))
	require.NoError(t, err)
	_, err = e.products.Create(ctx, productReq("MART-01"))
	require.NoError(t, err)

	res, err := e.products.Search(ctx, "tal")
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "TAL-01", res.Items[0].Code)

	all, err := e.products.Search(ctx, "  ")
	require.NoError(t, err)
	assert.Equal(t, 2, all.Meta.Total)
}

func TestProductUseCase_DeleteConInventarioEsConflicto(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	p, err := e.products.Create(ctx, productReq("P-001"))
	require.NoError(t, err)
	w, err := e.warehouses.Create(ctx, warehouseReq("Central"))
	require.NoError(t, err)
	_, err = e.inv.SetQuantity(ctx, p.ID, w.ID, dec("5"))
	require.NoError(t, err)

	err = e.products.Delete(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	free, err := e.products.Create(ctx, productReq("P-002"))
	require.NoError(t, err)
	require.NoError(t, e.products.Delete(ctx, free.ID))
	_, err = e.products.GetByID(ctx, free.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Bodegas
// ──────────────────────────────────────────────────────────────────────────────

func TestWarehouseUseCase_NombreDuplicado(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	_, err := e.warehouses.Create(ctx, warehouseReq("Central"))
	require.NoError(t, err)
	_, err = e.warehouses.Create(ctx, warehouseReq("Central"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestWarehouseUseCase_CapacidadInvalida(t *testing.T) {
	e := newEnv()
	req := warehouseReq("Central")
	req.Capacity = dec("0")
	_, err := e.warehouses.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestWarehouseUseCase_DeleteConInventarioRechazado(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	p, err := e.products.Create(ctx, productReq("P-001"))
	require.NoError(t, err)
	w, err := e.warehouses.Create(ctx, warehouseReq("Central"))
	require.NoError(t, err)
	_, err = e.inv.SetQuantity(ctx, p.ID, w.ID, dec("1"))
	require.NoError(t, err)

	err = e.warehouses.Delete(ctx, w.ID)
	require.ErrorIs(t, err, domain.ErrConflict)

	_, err = e.warehouses.GetByID(ctx, w.ID)
	assert.NoError(t, err)
}

func TestWarehouseUseCase_Summary(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	p1, err := e.products.Create(ctx, productReq("P-001")) // 12.50
	require.NoError(t, err)
	req := productReq("P-002")
	req.Price = dec("3")
	p2, err := e.products.Create(ctx, req)
	require.NoError(t, err)
	w, err := e.warehouses.Create(ctx, warehouseReq("Central")) // capacidad 200
	require.NoError(t, err)

	lo := dec("10")
	_, err = e.inv.CreateItem(ctx, inventory.CreateItemInput{ProductID: p1.ID, WarehouseID: w.ID, Quantity: dec("4"), MinimumLevel: &lo})
	require.NoError(t, err)
	_, err = e.inv.SetQuantity(ctx, p2.ID, w.ID, dec("46"))
	require.NoError(t, err)

	sum, err := e.warehouses.Summary(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.ItemCount)
	assert.True(t, dec("50").Equal(sum.TotalQuantity))
	assert.True(t, dec("188").Equal(sum.TotalValue), sum.TotalValue.String())
	assert.Equal(t, 1, sum.LowStockCount)
	assert.True(t, dec("25").Equal(sum.UtilizationPct))

	_, err = e.warehouses.Summary(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWarehouseUseCase_Search(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	_, err := e.warehouses.Create(ctx, warehouseReq("Central"))
	require.NoError(t, err)
	req := warehouseReq("Norte")
	req.Location = "Medellín"
	_, err = e.warehouses.Create(ctx, req)
	require.NoError(t, err)

	res, err := e.warehouses.Search(ctx, "", "medell")
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Norte", res.Items[0].Name)

	res, err = e.warehouses.Search(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, res.Items, 2)
}
