package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/infrastructure/memory"
)

var errBoom = errors.New("falla forzada")

func product(id, code string) *entity.Product {
	now := time.Now()
	return &entity.Product{ID: id, Code: code, Name: code, Description: code, Category: "General", Active: true, CreatedAt: now, UpdatedAt: now}
}

func TestTxRunner_RollbackNoBorraEscriturasAjenas(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	err := store.TxRunner().Run(ctx, func(r inventory.TxRepos) error {
		require.NoError(t, r.Products.Create(ctx, product("tx-1", "TX-1")))

		// Escritura fuera de la transacción mientras sigue abierta.
		require.NoError(t, store.Products().Create(ctx, product("p1", "P-1")))
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	kept, err := store.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.NotNil(t, kept, "la creación confirmada fuera de la transacción debe sobrevivir")

	undone, err := store.Products().GetByID(ctx, "tx-1")
	require.NoError(t, err)
	assert.Nil(t, undone, "lo escrito por la transacción fallida se deshace")
}

func TestTxRunner_RollbackReponeValoresPrevios(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	now := time.Now()

	item := entity.NewInventoryItem("i1", "p1", "w1", decimal.NewFromInt(5), now)
	require.NoError(t, store.Items().Save(ctx, &item))

	err := store.TxRunner().Run(ctx, func(r inventory.TxRepos) error {
		next := item.Adjusted(decimal.NewFromInt(10), now)
		require.NoError(t, r.Items.Save(ctx, &next))
		require.NoError(t, r.Transactions.Create(ctx, &entity.Transaction{ID: "t1", Type: entity.TransactionReceipt, ProductID: "p1", Quantity: decimal.NewFromInt(10), Timestamp: now}))
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	got, err := store.Items().Get(ctx, "p1", "w1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Quantity.Equal(decimal.NewFromInt(5)))

	list, err := store.Transactions().ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTxRunner_CommitConservaCambios(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	require.NoError(t, store.TxRunner().Run(ctx, func(r inventory.TxRepos) error {
		return r.Products.Create(ctx, product("p1", "P-1"))
	}))
	got, err := store.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.NotNil(t, got)
}
