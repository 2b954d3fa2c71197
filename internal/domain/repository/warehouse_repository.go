package repository

import "github.com/jhoicas/Inventario-core/internal/domain/entity"

// WarehouseRepository define el puerto de persistencia de bodegas.
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	// GetByID devuelve nil, nil si la bodega no existe.
	GetByID(id string) (*entity.Warehouse, error)
	List(limit, offset int) ([]*entity.Warehouse, error)
}
