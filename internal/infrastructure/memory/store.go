// Package memory implementa los puertos de persistencia en memoria de proceso.
// Se usa en desarrollo (STORAGE_DRIVER=memory) y como respaldo de los tests.
package memory

import (
	"sync"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// Store datos compartidos por todos los repositorios en memoria.
type Store struct {
	mu           sync.RWMutex
	txMu         sync.Mutex
	products     map[string]entity.Product
	warehouses   map[string]entity.Warehouse
	items        map[string]entity.InventoryItem
	transactions []entity.Transaction
	audit        []entity.AuditEntry
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		products:   make(map[string]entity.Product),
		warehouses: make(map[string]entity.Warehouse),
		items:      make(map[string]entity.InventoryItem),
	}
}

// journal registra cómo deshacer cada escritura hecha dentro de TxRunner.Run.
// Fuera de una transacción es nil y no registra nada.
type journal struct {
	undo []func()
}

// record se llama con s.mu tomado, antes de escribir.
func (j *journal) record(fn func()) {
	if j != nil {
		j.undo = append(j.undo, fn)
	}
}

// rollback aplica los undo en orden inverso. Solo toca las claves que escribió la transacción.
func (s *Store) rollback(j *journal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
}

// restoreKey devuelve el undo que repone el valor previo de m[id] (o lo borra si no existía).
func restoreKey[V any](m map[string]V, id string) func() {
	prev, existed := m[id]
	return func() {
		if existed {
			m[id] = prev
		} else {
			delete(m, id)
		}
	}
}

// Products repositorio de productos.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Warehouses repositorio de bodegas.
func (s *Store) Warehouses() *WarehouseRepo { return &WarehouseRepo{s: s} }

// Items repositorio de ítems de inventario.
func (s *Store) Items() *InventoryItemRepo { return &InventoryItemRepo{s: s} }

// Transactions repositorio del ledger.
func (s *Store) Transactions() *TransactionRepo { return &TransactionRepo{s: s} }

// AuditLogs repositorio de auditoría.
func (s *Store) AuditLogs() *AuditLogRepo { return &AuditLogRepo{s: s} }

// TxRunner runner transaccional sobre este almacén.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }
