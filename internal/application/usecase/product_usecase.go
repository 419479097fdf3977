package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/ports"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
	"github.com/jhoicas/warehouse-api/internal/domain/validation"
)

// ProductUseCase casos de uso CRUD para productos. El stock se maneja vía movimientos.
type ProductUseCase struct {
	repo  repository.ProductRepository
	items repository.InventoryItemRepository
	txs   repository.TransactionRepository
	sinks ports.Sinks
	now   func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	items repository.InventoryItemRepository,
	txs repository.TransactionRepository,
	sinks ports.Sinks,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, items: items, txs: txs, sinks: sinks.WithDefaults(), now: time.Now}
}

// Create crea un nuevo producto. El código debe ser único.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	now := uc.now()
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	product := &entity.Product{
		ID:          uuid.New().String(),
		Code:        strings.TrimSpace(in.Code),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Category:    strings.TrimSpace(in.Category),
		Price:       in.Price,
		Barcode:     in.Barcode,
		Weight:      in.Weight,
		Dimensions:  in.Dimensions,
		Active:      active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := validation.ValidateProduct(product); err != nil {
		return nil, uc.fail(ctx, "CREATE_PRODUCT", err)
	}
	exists, err := uc.repo.ExistsByCode(ctx, product.Code)
	if err != nil {
		return nil, uc.fail(ctx, "CREATE_PRODUCT", err)
	}
	if exists {
		return nil, uc.fail(ctx, "CREATE_PRODUCT", fmt.Errorf("producto con código %s: %w", product.Code, domain.ErrDuplicate))
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, uc.fail(ctx, "CREATE_PRODUCT", err)
	}
	uc.sinks.Audit.LogDataChange(ctx, "PRODUCT_CREATED", "Product", product.ID, nil, toProductResponse(product))
	uc.sinks.Metrics.RecordProductOperation("create")
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByCode obtiene un producto por código.
func (uc *ProductUseCase) GetByCode(ctx context.Context, code string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFoundf("producto con código %s", code)
	}
	return toProductResponse(product), nil
}

// Update aplica los campos presentes. Un código ya usado por otro producto es conflicto.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	current, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := current.Apply(entity.ProductUpdate{
		Code:        in.Code,
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Price:       in.Price,
		Barcode:     in.Barcode,
		Weight:      in.Weight,
		Dimensions:  in.Dimensions,
		Active:      in.Active,
	}, uc.now())
	if err := validation.ValidateProduct(&updated); err != nil {
		return nil, uc.fail(ctx, "UPDATE_PRODUCT", err)
	}
	if updated.Code != current.Code {
		other, err := uc.repo.GetByCode(ctx, updated.Code)
		if err != nil {
			return nil, uc.fail(ctx, "UPDATE_PRODUCT", err)
		}
		if other != nil && other.ID != id {
			return nil, uc.fail(ctx, "UPDATE_PRODUCT", fmt.Errorf("otro producto ya usa el código %s: %w", updated.Code, domain.ErrDuplicate))
		}
	}
	if err := uc.repo.Update(ctx, &updated); err != nil {
		return nil, uc.fail(ctx, "UPDATE_PRODUCT", err)
	}
	uc.sinks.Audit.LogDataChange(ctx, "PRODUCT_UPDATED", "Product", id, toProductResponse(current), toProductResponse(&updated))
	uc.sinks.Metrics.RecordProductOperation("update")
	return toProductResponse(&updated), nil
}

// List lista todos los productos ordenados por código.
func (uc *ProductUseCase) List(ctx context.Context) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toProductList(list), nil
}

// Search busca por código, nombre o categoría.
func (uc *ProductUseCase) Search(ctx context.Context, query string) (*dto.ProductListResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return uc.List(ctx)
	}
	list, err := uc.repo.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return toProductList(list), nil
}

// Delete elimina un producto sin inventario ni movimientos registrados.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	items, err := uc.items.ListByProduct(ctx, id)
	if err != nil {
		return uc.fail(ctx, "DELETE_PRODUCT", err)
	}
	if len(items) > 0 {
		return uc.fail(ctx, "DELETE_PRODUCT", domain.Conflictf("el producto %s tiene inventario en %d bodega(s)", product.Code, len(items)))
	}
	history, err := uc.txs.ListByProduct(ctx, id)
	if err != nil {
		return uc.fail(ctx, "DELETE_PRODUCT", err)
	}
	if len(history) > 0 {
		return uc.fail(ctx, "DELETE_PRODUCT", domain.Conflictf("el producto %s tiene %d movimiento(s) registrados", product.Code, len(history)))
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return uc.fail(ctx, "DELETE_PRODUCT", err)
	}
	uc.sinks.Audit.LogDataChange(ctx, "PRODUCT_DELETED", "Product", id, toProductResponse(product), nil)
	uc.sinks.Metrics.RecordProductOperation("delete")
	return nil
}

func (uc *ProductUseCase) get(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFoundf("producto %s", id)
	}
	return product, nil
}

func (uc *ProductUseCase) fail(ctx context.Context, action string, err error) error {
	return recordFailure(ctx, uc.sinks, "product", action, err)
}

// recordFailure registra métricas de error y, si es inesperado, log y auditoría.
func recordFailure(ctx context.Context, sinks ports.Sinks, component, action string, err error) error {
	kind := domain.Kind(err)
	sinks.Metrics.RecordError(kind, component)
	if kind == "unexpected" {
		sinks.Log.Error().Err(err).Str("action", action).Str("user", ports.Actor(ctx)).Msg("error inesperado")
		sinks.Audit.LogError(ctx, action, "error inesperado en "+component, err)
	}
	return err
}

func toProductList(list []*entity.Product) *dto.ProductListResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Meta: dto.ListMeta{Total: len(items)}}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Barcode:     p.Barcode,
		Weight:      p.Weight,
		Dimensions:  p.Dimensions,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
