package memory

import (
	"context"

	"github.com/jhoicas/warehouse-api/internal/application/inventory"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner serializa las transacciones y, si fn falla, deshace solo sus escrituras.
type TxRunner struct {
	s *Store
}

// Run ejecuta fn con los repositorios del almacén; ante error deshace todos los cambios.
func (r *TxRunner) Run(ctx context.Context, fn func(repos inventory.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	j := &journal{}
	err := fn(inventory.TxRepos{
		Products:     &ProductRepo{s: r.s, j: j},
		Warehouses:   &WarehouseRepo{s: r.s, j: j},
		Items:        &InventoryItemRepo{s: r.s, j: j},
		Transactions: &TransactionRepo{s: r.s, j: j},
	})
	if err != nil {
		r.s.rollback(j)
		return err
	}
	return nil
}
