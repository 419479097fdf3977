package inventory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// SetQuantity / GetQuantity
// ──────────────────────────────────────────────────────────────────────────────

func TestSetQuantity_LuegoGetQuantityDevuelveElMismoValor(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "SKU1", true)
	w := f.warehouse(t, "W1")
	ctx := context.Background()

	for _, q := range []string{"0", "15", "15.25", "3"} {
		item, err := f.inv.SetQuantity(ctx, p.ID, w.ID, dec(q))
		require.NoError(t, err)
		assert.True(t, dec(q).Equal(item.Quantity))
		assert.True(t, dec(q).Equal(f.quantity(t, p.ID, w.ID)), "cantidad %s", q)
	}

	all, err := f.inv.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1, "un solo ítem por par producto/bodega")
	assert.Equal(t, []string{"INVENTORY_SET", "INVENTORY_SET", "INVENTORY_SET", "INVENTORY_SET"}, f.spy.changes)
	assert.Len(t, f.spy.updates, 4)
	assert.Len(t, f.spy.events, 4)
}

func TestSetQuantity_Errores(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "SKU1", true)
	w := f.warehouse(t, "W1")
	ctx := context.Background()

	_, err := f.inv.SetQuantity(ctx, p.ID, w.ID, dec("-1"))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.inv.SetQuantity(ctx, "no-existe", w.ID, dec("1"))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.inv.SetQuantity(ctx, p.ID, "no-existe", dec("1"))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.True(t, f.quantity(t, p.ID, w.ID).IsZero())
}

func TestGetQuantity_SinItemDevuelveCero(t *testing.T) {
	f := newFixture(t)
	assert.True(t, f.quantity(t, "p", "w").IsZero())
}

func TestCreateItem_ConUmbrales(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "SKU1", true)
	w := f.warehouse(t, "W1")
	lo, hi := dec("5"), dec("50")

	item, err := f.inv.CreateItem(context.Background(), inventoryInput(p.ID, w.ID, "3", &lo, &hi))
	require.NoError(t, err)
	assert.Equal(t, entity.StockStatusLow, item.Status())

	_, err = f.inv.CreateItem(context.Background(), inventoryInput(p.ID, w.ID, "3", &hi, &lo))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ──────────────────────────────────────────────────────────────────────────────
// Adjust
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjust_SumaAlgebraica(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "SKU1", true)
	w := f.warehouse(t, "W1")
	ctx := context.Background()

	_, err := f.inv.SetQuantity(ctx, p.ID, w.ID, dec("10"))
	require.NoError(t, err)

	expected := dec("10")
	for _, delta := range []string{"5", "-12", "0.5", "-3.5", "7"} {
		_, err := f.inv.Adjust(ctx, p.ID, w.ID, dec(delta))
		require.NoError(t, err)
		expected = expected.Add(dec(delta))
	}
	assert.True(t, expected.Equal(f.quantity(t, p.ID, w.ID)), "esperado %s", expected)
}

func TestAdjust_NegativoSeRechazaSinCambiarEstado(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "SKU1", true)
	w := f.warehouse(t, "W1")
	ctx := context.Background()

	_, err := f.inv.SetQuantity(ctx, p.ID, w.ID, dec("4"))
	require.NoError(t, err)

	_, err = f.inv.Adjust(ctx, p.ID, w.ID, dec("-4.01"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNegativeStock)
	assert.True(t, domain.IsConflict(err))
	assert.True(t, dec("4").Equal(f.quantity(t, p.ID, w.ID)))

	_, err = f.inv.Adjust(ctx, p.ID, w.ID, dec("-4"))
	require.NoError(t, err)
	assert.True(t, f.quantity(t, p.ID, w.ID).IsZero())
}

func TestAdjust_SinItemEsNotFound(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "SKU1", true)
	w := f.warehouse(t, "W1")

	_, err := f.inv.Adjust(context.Background(), p.ID, w.ID, dec("5"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDecreaseStock_SinItemEsNotFoundEIncreaseLoCrea(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "SKU1", true)
	w := f.warehouse(t, "W1")
	ctx := context.Background()

	_, err := f.inv.DecreaseStock(ctx, f.store.Items(), p.ID, w.ID, dec("1"))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	item, err := f.inv.IncreaseStock(ctx, f.store.Items(), p.ID, w.ID, dec("4"))
	require.NoError(t, err)
	assert.Equal(t, p.ID, item.ProductID)
	assert.True(t, f.quantity(t, p.ID, w.ID).Equal(dec("4")))
}

func TestIncreaseStock_SumaSobreElItemExistenteYConservaNiveles(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "SKU1", true)
	w := f.warehouse(t, "W1")
	ctx := context.Background()

	minLevel := dec("2")
	created, err := f.inv.CreateItem(ctx, inventoryInput(p.ID, w.ID, "3", &minLevel, nil))
	require.NoError(t, err)

	item, err := f.inv.IncreaseStock(ctx, f.store.Items(), p.ID, w.ID, dec("7"))
	require.NoError(t, err)
	assert.Equal(t, created.ID, item.ID)
	assert.True(t, item.Quantity.Equal(dec("10")))
	require.NotNil(t, item.MinimumLevel)
	assert.True(t, item.MinimumLevel.Equal(dec("2")))
}

func TestRecepcionesConcurrentesSobreParNuevoNoPierdenCantidad(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "SKU1", true)
	w := f.warehouse(t, "W1")
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.txs.Create(ctx, inventory.CreateTransactionInput{
				Type: entity.TransactionReceipt, ProductID: p.ID, DestinationWarehouseID: &w.ID, Quantity: dec("2"),
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	assert.True(t, f.quantity(t, p.ID, w.ID).Equal(dec("40")), "la cantidad debe igualar la suma del ledger")
	assert.Equal(t, n, f.ledgerSize(t))
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas y alertas
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckLowStock_DevuelveExactamenteLosItemsBajoOIgualAlUmbral(t *testing.T) {
	f := newFixture(t)
	w := f.warehouse(t, "W1")
	ctx := context.Background()

	quantities := map[string]string{"A": "0", "B": "9.99", "C": "10", "D": "10.01", "E": "250"}
	ids := map[string]string{}
	for code, q := range quantities {
		p := f.product(t, code, true)
		item, err := f.inv.SetQuantity(ctx, p.ID, w.ID, dec(q))
		require.NoError(t, err)
		ids[item.ID] = code
	}

	low, err := f.inv.CheckLowStock(ctx, dec("10"))
	require.NoError(t, err)

	var got []string
	for _, it := range low {
		got = append(got, ids[it.ID])
	}
	assert.ElementsMatch(t, []string{"A", "B", "C"}, got)
	assert.Len(t, f.spy.lowStock, 3)
	assert.Equal(t, []string{"LOW_STOCK_DETECTED", "LOW_STOCK_DETECTED", "LOW_STOCK_DETECTED"}, f.spy.actions)
}

func TestBelowMinimumAboveMaximumYReposicion(t *testing.T) {
	f := newFixture(t)
	w := f.warehouse(t, "W1")
	ctx := context.Background()

	lo, hi := dec("10"), dec("20")
	low := f.product(t, "LOW", true)
	high := f.product(t, "HIGH", true)
	ok := f.product(t, "OK", true)
	onlyMin := f.product(t, "ONLYMIN", true)

	_, err := f.inv.CreateItem(ctx, inventoryInput(low.ID, w.ID, "4", &lo, &hi))
	require.NoError(t, err)
	_, err = f.inv.CreateItem(ctx, inventoryInput(high.ID, w.ID, "25", &lo, &hi))
	require.NoError(t, err)
	_, err = f.inv.CreateItem(ctx, inventoryInput(ok.ID, w.ID, "15", &lo, &hi))
	require.NoError(t, err)
	_, err = f.inv.CreateItem(ctx, inventoryInput(onlyMin.ID, w.ID, "9", &lo, nil))
	require.NoError(t, err)

	below, err := f.inv.CheckBelowMinimum(ctx)
	require.NoError(t, err)
	assert.Len(t, below, 2)

	above, err := f.inv.CheckAboveMaximum(ctx)
	require.NoError(t, err)
	require.Len(t, above, 1)
	assert.Equal(t, high.ID, above[0].ProductID)

	sugg, err := f.inv.Replenishment(ctx)
	require.NoError(t, err)
	require.Len(t, sugg, 2)
	// LOW: 20 - 4 = 16; ONLYMIN: 15 - 9 = 6
	assert.Equal(t, low.ID, sugg[0].Item.ProductID)
	assert.True(t, dec("16").Equal(sugg[0].SuggestedQty))
	assert.Equal(t, 1, sugg[0].Priority)
	assert.True(t, dec("6").Equal(sugg[1].SuggestedQty))
}

func TestUpdateLevelsYDeleteItem(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "SKU1", true)
	w := f.warehouse(t, "W1")
	ctx := context.Background()

	item, err := f.inv.SetQuantity(ctx, p.ID, w.ID, dec("8"))
	require.NoError(t, err)

	lo := dec("10")
	updated, err := f.inv.UpdateLevels(ctx, item.ID, &lo, nil)
	require.NoError(t, err)
	assert.True(t, updated.IsBelowMinimum())

	require.NoError(t, f.inv.DeleteItem(ctx, item.ID))
	_, err = f.inv.GetItem(ctx, item.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.inv.DeleteItem(ctx, item.ID), domain.ErrNotFound)
}

func TestListBelowThreshold_UmbralNegativo(t *testing.T) {
	f := newFixture(t)
	_, err := f.inv.ListBelowThreshold(context.Background(), dec("-1"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func inventoryInput(productID, warehouseID, qty string, lo, hi *decimal.Decimal) inventoryCreate {
	return inventoryCreate{ProductID: productID, WarehouseID: warehouseID, Quantity: dec(qty), MinimumLevel: lo, MaximumLevel: hi}
}
