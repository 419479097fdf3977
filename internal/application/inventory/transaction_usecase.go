package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-api/internal/application/ports"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	invdomain "github.com/jhoicas/warehouse-api/internal/domain/inventory"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
	"github.com/jhoicas/warehouse-api/internal/domain/validation"
)

// RecentTransactionsLimit cantidad de movimientos en "recientes".
const RecentTransactionsLimit = 10

// TransactionUseCase registra movimientos de stock (RECEIPT, ISSUE, TRANSFER).
// Ledger y efectos de inventario se confirman en una sola transacción de BD.
type TransactionUseCase struct {
	txRunner     TxRunner
	stock        StockMover
	transactions repository.TransactionRepository
	sinks        Sinks
	now          func() time.Time
}

// NewTransactionUseCase construye el caso de uso.
func NewTransactionUseCase(
	txRunner TxRunner,
	stock StockMover,
	transactions repository.TransactionRepository,
	sinks Sinks,
) *TransactionUseCase {
	return &TransactionUseCase{
		txRunner:     txRunner,
		stock:        stock,
		transactions: transactions,
		sinks:        sinks.WithDefaults(),
		now:          time.Now,
	}
}

// CreateTransactionInput entrada para registrar un movimiento.
// UserID vacío toma el usuario del contexto (o SYSTEM).
type CreateTransactionInput struct {
	Type                   entity.TransactionType
	ProductID              string
	SourceWarehouseID      *string
	DestinationWarehouseID *string
	Quantity               decimal.Decimal
	Description            *string
	UserID                 string
	ReferenceNumber        *string
}

// Create valida y registra el movimiento y aplica sus efectos sobre el inventario:
//
//	RECEIPT:  +qty en destino
//	ISSUE:    -qty en origen (falla si no alcanza)
//	TRANSFER: -qty en origen, luego +qty en destino
//
// Cualquier error deshace el registro del ledger y todos los cambios de stock.
func (uc *TransactionUseCase) Create(ctx context.Context, in CreateTransactionInput) (*entity.Transaction, error) {
	started := uc.now()
	userID := in.UserID
	if userID == "" {
		userID = ports.Actor(ctx)
	}

	uc.sinks.Log.Info().
		Str("product_id", in.ProductID).
		Str("type", string(in.Type)).
		Str("quantity", in.Quantity.String()).
		Msg("registrando movimiento")

	var (
		created entity.Transaction
		product *entity.Product
		touched []*entity.InventoryItem
	)
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		var err error
		product, err = r.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NotFoundf("producto %s", in.ProductID)
		}
		if !product.IsAvailable() {
			return fmt.Errorf("producto %s: %w", product.Code, domain.ErrInactiveProduct)
		}
		if err := requireWarehouse(ctx, r, in.SourceWarehouseID, "bodega origen"); err != nil {
			return err
		}
		if err := requireWarehouse(ctx, r, in.DestinationWarehouseID, "bodega destino"); err != nil {
			return err
		}

		created = entity.Transaction{
			ID:                     uuid.New().String(),
			Type:                   in.Type,
			ProductID:              in.ProductID,
			SourceWarehouseID:      in.SourceWarehouseID,
			DestinationWarehouseID: in.DestinationWarehouseID,
			Quantity:               in.Quantity,
			Timestamp:              uc.now(),
			Description:            in.Description,
			UserID:                 userID,
			ReferenceNumber:        in.ReferenceNumber,
		}
		if err := validation.ValidateTransaction(&created); err != nil {
			return err
		}

		if src := created.SourceWarehouseID; src != nil {
			available, err := uc.stock.AvailableQuantity(ctx, r.Items, created.ProductID, *src)
			if err != nil {
				return err
			}
			if !invdomain.Sufficient(available, created.Quantity) {
				return &domain.InsufficientStockError{
					Available: available.String(),
					Required:  created.Quantity.String(),
				}
			}
		}

		if err := r.Transactions.Create(ctx, &created); err != nil {
			return err
		}
		touched, err = uc.applyEffects(ctx, r, &created)
		return err
	})
	if err != nil {
		kind := domain.Kind(err)
		uc.sinks.Log.Error().Err(err).
			Str("product_id", in.ProductID).
			Str("type", string(in.Type)).
			Str("kind", kind).
			Msg("error registrando movimiento")
		uc.sinks.Audit.LogError(ctx, "CREATE_TRANSACTION",
			fmt.Sprintf("error registrando movimiento: producto=%s tipo=%s", in.ProductID, in.Type), err)
		uc.sinks.Metrics.RecordError(kind, "transaction")
		return nil, err
	}

	uc.sinks.Audit.LogAction(ctx, "TRANSACTION_CREATED", "Transaction", created.ID,
		fmt.Sprintf("%s: producto=%s cantidad=%s", created.Type.Description(), product.Code, created.Quantity))
	uc.sinks.Metrics.RecordTransaction(string(created.Type))
	for _, item := range touched {
		uc.sinks.Metrics.RecordInventoryUpdate(string(created.Type))
		uc.sinks.Events.PublishStockChange(ports.StockChange{
			ItemID:      item.ID,
			ProductID:   item.ProductID,
			WarehouseID: item.WarehouseID,
			Quantity:    item.Quantity,
			Reason:      string(created.Type),
			At:          item.UpdatedAt,
		})
	}
	elapsed := uc.now().Sub(started)
	uc.sinks.Audit.LogPerformance(ctx, "CREATE_TRANSACTION", elapsed)
	uc.sinks.Metrics.ObserveDuration("create_transaction", elapsed)

	uc.sinks.Log.Info().Str("transaction_id", created.ID).Msg("movimiento registrado")
	return &created, nil
}

func (uc *TransactionUseCase) applyEffects(ctx context.Context, r TxRepos, t *entity.Transaction) ([]*entity.InventoryItem, error) {
	var touched []*entity.InventoryItem
	if t.Type == entity.TransactionIssue || t.Type == entity.TransactionTransfer {
		item, err := uc.stock.DecreaseStock(ctx, r.Items, t.ProductID, *t.SourceWarehouseID, t.Quantity)
		if err != nil {
			return nil, err
		}
		touched = append(touched, item)
	}
	if t.Type == entity.TransactionReceipt || t.Type == entity.TransactionTransfer {
		item, err := uc.stock.IncreaseStock(ctx, r.Items, t.ProductID, *t.DestinationWarehouseID, t.Quantity)
		if err != nil {
			return nil, err
		}
		touched = append(touched, item)
	}
	return touched, nil
}

func requireWarehouse(ctx context.Context, r TxRepos, id *string, label string) error {
	if id == nil {
		return nil
	}
	w, err := r.Warehouses.GetByID(ctx, *id)
	if err != nil {
		return err
	}
	if w == nil {
		return domain.NotFoundf("%s %s", label, *id)
	}
	return nil
}

// ── Consultas ─────────────────────────────────────────────────────────────────

// GetByID obtiene un movimiento por ID.
func (uc *TransactionUseCase) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	t, err := uc.transactions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.NotFoundf("movimiento %s", id)
	}
	return t, nil
}

func (uc *TransactionUseCase) ListAll(ctx context.Context) ([]*entity.Transaction, error) {
	return uc.transactions.ListAll(ctx)
}

func (uc *TransactionUseCase) ListByProduct(ctx context.Context, productID string) ([]*entity.Transaction, error) {
	return uc.transactions.ListByProduct(ctx, productID)
}

// ListByWarehouse movimientos donde la bodega es origen o destino.
func (uc *TransactionUseCase) ListByWarehouse(ctx context.Context, warehouseID string) ([]*entity.Transaction, error) {
	return uc.transactions.ListByWarehouse(ctx, warehouseID)
}

// ListByPeriod movimientos con timestamp en [from, to].
func (uc *TransactionUseCase) ListByPeriod(ctx context.Context, from, to time.Time) ([]*entity.Transaction, error) {
	if from.After(to) {
		return nil, domain.NewValidationError("la fecha inicial no puede ser posterior a la final")
	}
	return uc.transactions.ListByPeriod(ctx, from, to)
}

// Recent últimos movimientos registrados.
func (uc *TransactionUseCase) Recent(ctx context.Context) ([]*entity.Transaction, error) {
	return uc.transactions.ListRecent(ctx, RecentTransactionsLimit)
}
