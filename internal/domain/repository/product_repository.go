package repository

import "github.com/jhoicas/Inventario-core/internal/domain/entity"

// ProductRepository define el puerto de persistencia del catálogo de productos.
type ProductRepository interface {
	Create(product *entity.Product) error
	// GetByID devuelve nil, nil si el producto no existe.
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
}
