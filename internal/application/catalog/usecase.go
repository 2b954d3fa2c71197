package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Inventario-core/internal/application/dto"
	"github.com/jhoicas/Inventario-core/internal/application/inventory"
	"github.com/jhoicas/Inventario-core/internal/domain"
	"github.com/jhoicas/Inventario-core/internal/domain/entity"
	"github.com/jhoicas/Inventario-core/internal/domain/repository"
)

// ProductUseCase gestión del catálogo: alta de productos (con stock inicial
// opcional, registrado a través del coordinador para no saltarse el ledger)
// y mantenimiento del grafo de composición de bundles.
type ProductUseCase struct {
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	componentRepo repository.BundleComponentRepository
	movementUC    *inventory.RecordMovementUseCase
}

// NewProductUseCase construye el caso de uso de catálogo.
func NewProductUseCase(
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	componentRepo repository.BundleComponentRepository,
	movementUC *inventory.RecordMovementUseCase,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		componentRepo: componentRepo,
		movementUC:    movementUC,
	}
}

// CreateProduct valida SKU único en toda la plataforma y crea el producto.
// Si InitialQuantity > 0 registra el movimiento de apertura en WarehouseID;
// el stock inicial entra por el coordinador como cualquier otro movimiento,
// de modo que el ledger siga siendo la única fuente de verdad.
func (uc *ProductUseCase) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.InitialQuantity.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.InitialQuantity.GreaterThan(decimal.Zero) {
		if in.WarehouseID == "" || in.PerformedBy == "" {
			return nil, domain.ErrInvalidInput
		}
		if in.IsBundle {
			// El stock de un bundle es virtual: se arma desde componentes.
			return nil, domain.ErrInvalidInput
		}
	}

	existing, err := uc.productRepo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		SKU:          in.SKU,
		Name:         in.Name,
		Description:  in.Description,
		IsBundle:     in.IsBundle,
		ReorderLevel: in.ReorderLevel,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}

	if in.InitialQuantity.GreaterThan(decimal.Zero) {
		_, err := uc.movementUC.RecordMovement(ctx, inventory.MovementInput{
			WarehouseID: in.WarehouseID,
			ProductID:   product.ID,
			Type:        entity.MovementTypeIn,
			Quantity:    in.InitialQuantity,
			Reason:      "stock inicial",
			PerformedBy: in.PerformedBy,
		})
		if err != nil {
			return nil, err
		}
	}
	return product, nil
}

// AddBundleComponent agrega la arista bundle → componente. Rechaza cantidades
// menores a 1, auto-referencias y cualquier arista que cierre un ciclo en el
// grafo de composición (domain.ErrCyclicBundle).
func (uc *ProductUseCase) AddBundleComponent(ctx context.Context, bundleID, componentID string, quantity decimal.Decimal) error {
	if quantity.LessThan(decimal.NewFromInt(1)) {
		return domain.ErrInvalidInput
	}
	if bundleID == componentID {
		return domain.ErrCyclicBundle
	}

	bundle, err := uc.productRepo.GetByID(bundleID)
	if err != nil {
		return err
	}
	if bundle == nil {
		return domain.ErrNotFound
	}
	if !bundle.IsBundle {
		return domain.ErrInvalidInput
	}
	component, err := uc.productRepo.GetByID(componentID)
	if err != nil {
		return err
	}
	if component == nil {
		return domain.ErrNotFound
	}

	// La arista cerraría un ciclo si desde el componente ya se alcanza el bundle.
	reaches, err := uc.reaches(componentID, bundleID, map[string]bool{})
	if err != nil {
		return err
	}
	if reaches {
		return domain.ErrCyclicBundle
	}

	return uc.componentRepo.Add(&entity.BundleComponent{
		BundleID:    bundleID,
		ComponentID: componentID,
		Quantity:    quantity,
		CreatedAt:   time.Now(),
	})
}

// RemoveBundleComponent elimina la arista bundle → componente.
func (uc *ProductUseCase) RemoveBundleComponent(ctx context.Context, bundleID, componentID string) error {
	return uc.componentRepo.Remove(bundleID, componentID)
}

// reaches DFS sobre el grafo de composición: ¿desde from se alcanza target?
func (uc *ProductUseCase) reaches(from, target string, visited map[string]bool) (bool, error) {
	if from == target {
		return true, nil
	}
	if visited[from] {
		return false, nil
	}
	visited[from] = true

	comps, err := uc.componentRepo.ComponentsOf(from)
	if err != nil {
		return false, err
	}
	for _, comp := range comps {
		found, err := uc.reaches(comp.ComponentID, target, visited)
		if err != nil {
			return false, err
		}
		if found {
			return true, nil
		}
	}
	return false, nil
}
