package bundle

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Inventario-core/internal/domain"
	domainbundle "github.com/jhoicas/Inventario-core/internal/domain/bundle"
	"github.com/jhoicas/Inventario-core/internal/domain/entity"
	"github.com/jhoicas/Inventario-core/internal/domain/repository"
)

// ResolveTxRunner ejecuta la resolución sobre una transacción de solo lectura
// con snapshot consistente: todas las cantidades leídas pertenecen al mismo
// instante, sin bloquear a los escritores. Un resultado momentáneamente
// desactualizado (pesimista) es aceptable; uno sobreestimado no.
type ResolveTxRunner interface {
	RunResolve(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		componentRepo repository.BundleComponentRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// MaxBuildableUseCase calcula cuántas unidades de un bundle pueden armarse en
// una bodega con el stock actual de sus componentes. Solo lectura: no toca
// ledger ni stock materializado.
type MaxBuildableUseCase struct {
	runner        ResolveTxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewMaxBuildableUseCase construye el caso de uso.
func NewMaxBuildableUseCase(
	runner ResolveTxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *MaxBuildableUseCase {
	return &MaxBuildableUseCase{
		runner:        runner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// MaxBuildable valida que el producto exista y sea bundle, que la bodega
// exista, y resuelve recursivamente sobre un snapshot consistente.
// Un grafo con ciclos devuelve domain.ErrCyclicBundle.
func (uc *MaxBuildableUseCase) MaxBuildable(ctx context.Context, bundleID, warehouseID string) (int64, error) {
	product, err := uc.productRepo.GetByID(bundleID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, domain.ErrNotFound
	}
	if !product.IsBundle {
		return 0, domain.ErrInvalidInput
	}
	warehouse, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return 0, err
	}
	if warehouse == nil {
		return 0, domain.ErrNotFound
	}

	var buildable int64
	err = uc.runner.RunResolve(ctx, func(
		stockRepo repository.StockRepository,
		componentRepo repository.BundleComponentRepository,
		productRepo repository.ProductRepository,
	) error {
		resolver := domainbundle.NewResolver(
			stockSource{stockRepo},
			componentSource{componentRepo},
			productSource{productRepo},
		)
		n, err := resolver.MaxBuildable(bundleID, warehouseID)
		if err != nil {
			return err
		}
		buildable = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return buildable, nil
}

// Adaptadores de los puertos de repositorio a las fuentes del resolver de dominio.

type stockSource struct{ repo repository.StockRepository }

func (s stockSource) Quantity(warehouseID, productID string) (decimal.Decimal, error) {
	stock, err := s.repo.Get(warehouseID, productID)
	if err != nil {
		return decimal.Zero, err
	}
	return stock.Quantity, nil
}

type componentSource struct{ repo repository.BundleComponentRepository }

func (s componentSource) ComponentsOf(bundleID string) ([]*entity.BundleComponent, error) {
	return s.repo.ComponentsOf(bundleID)
}

type productSource struct{ repo repository.ProductRepository }

func (s productSource) IsBundle(productID string) (bool, error) {
	product, err := s.repo.GetByID(productID)
	if err != nil {
		return false, err
	}
	if product == nil {
		return false, domain.ErrNotFound
	}
	return product.IsBundle, nil
}
