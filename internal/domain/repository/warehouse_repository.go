package repository

import (
	"context"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Update(ctx context.Context, warehouse *entity.Warehouse) error
	List(ctx context.Context) ([]*entity.Warehouse, error)
	// Search filtra por coincidencia parcial (sin distinguir mayúsculas) de nombre y/o ubicación.
	Search(ctx context.Context, name, location string) ([]*entity.Warehouse, error)
	Delete(ctx context.Context, id string) error
}
