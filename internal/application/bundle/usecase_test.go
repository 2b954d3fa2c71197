package bundle_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbundle "github.com/jhoicas/Inventario-core/internal/application/bundle"
	"github.com/jhoicas/Inventario-core/internal/domain"
	"github.com/jhoicas/Inventario-core/internal/domain/entity"
	"github.com/jhoicas/Inventario-core/internal/domain/repository"
)

// fixture mundo en memoria: catálogo, grafo de composición y stock de una bodega.
type fixture struct {
	products   map[string]*entity.Product
	warehouses map[string]*entity.Warehouse
	components map[string][]*entity.BundleComponent
	stock      map[string]decimal.Decimal // "bodega|producto" -> cantidad
}

func newFixture() *fixture {
	return &fixture{
		products:   map[string]*entity.Product{},
		warehouses: map[string]*entity.Warehouse{},
		components: map[string][]*entity.BundleComponent{},
		stock:      map[string]decimal.Decimal{},
	}
}

func (f *fixture) addProduct(id string, isBundle bool) {
	f.products[id] = &entity.Product{ID: id, SKU: "sku-" + id, Name: id, IsBundle: isBundle, IsActive: true}
}

func (f *fixture) addWarehouse(id string) {
	f.warehouses[id] = &entity.Warehouse{ID: id, Name: id, IsActive: true}
}

func (f *fixture) addComponent(bundleID, componentID string, qty int64) {
	f.components[bundleID] = append(f.components[bundleID], &entity.BundleComponent{
		BundleID:    bundleID,
		ComponentID: componentID,
		Quantity:    decimal.NewFromInt(qty),
		CreatedAt:   time.Now(),
	})
}

func (f *fixture) setStock(warehouseID, productID string, qty int64) {
	f.stock[warehouseID+"|"+productID] = decimal.NewFromInt(qty)
}

// Implementaciones de los puertos sobre la fixture.

func (f *fixture) Get(warehouseID, productID string) (*entity.Stock, error) {
	return &entity.Stock{
		WarehouseID: warehouseID,
		ProductID:   productID,
		Quantity:    f.stock[warehouseID+"|"+productID],
	}, nil
}

func (f *fixture) GetForUpdate(warehouseID, productID string) (*entity.Stock, error) {
	return f.Get(warehouseID, productID)
}

func (f *fixture) Upsert(stock *entity.Stock) error {
	f.stock[stock.WarehouseID+"|"+stock.ProductID] = stock.Quantity
	return nil
}

func (f *fixture) Add(c *entity.BundleComponent) error {
	f.components[c.BundleID] = append(f.components[c.BundleID], c)
	return nil
}

func (f *fixture) Remove(bundleID, componentID string) error {
	kept := f.components[bundleID][:0]
	for _, c := range f.components[bundleID] {
		if c.ComponentID != componentID {
			kept = append(kept, c)
		}
	}
	f.components[bundleID] = kept
	return nil
}

func (f *fixture) ComponentsOf(bundleID string) ([]*entity.BundleComponent, error) {
	return f.components[bundleID], nil
}

func (f *fixture) Create(p *entity.Product) error { f.products[p.ID] = p; return nil }

func (f *fixture) GetByID(id string) (*entity.Product, error) { return f.products[id], nil }

func (f *fixture) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fixture) Update(p *entity.Product) error { f.products[p.ID] = p; return nil }

func (f *fixture) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }

// warehousePort evita el choque de GetByID/List entre productos y bodegas.
type warehousePort struct{ f *fixture }

func (w warehousePort) Create(wh *entity.Warehouse) error { w.f.warehouses[wh.ID] = wh; return nil }

func (w warehousePort) GetByID(id string) (*entity.Warehouse, error) {
	return w.f.warehouses[id], nil
}

func (w warehousePort) List(limit, offset int) ([]*entity.Warehouse, error) { return nil, nil }

// RunResolve sin base de datos: la fixture ya es un snapshot consistente.
func (f *fixture) RunResolve(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	componentRepo repository.BundleComponentRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(f, f, f)
}

func buildUseCase(f *fixture) *appbundle.MaxBuildableUseCase {
	return appbundle.NewMaxBuildableUseCase(f, f, warehousePort{f})
}

// ──────────────────────────────────────────────────────────────

func TestMaxBuildable_ResuelveSobreStockReal(t *testing.T) {
	f := newFixture()
	f.addWarehouse("bodega-1")
	f.addProduct("kit", true)
	f.addProduct("tornillo", false)
	f.addProduct("placa", false)
	f.addComponent("kit", "tornillo", 4)
	f.addComponent("kit", "placa", 1)
	f.setStock("bodega-1", "tornillo", 20)
	f.setStock("bodega-1", "placa", 3)

	n, err := buildUseCase(f).MaxBuildable(context.Background(), "kit", "bodega-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n, "min(20/4, 3/1) = 3")
}

func TestMaxBuildable_ProductoInexistente(t *testing.T) {
	f := newFixture()
	f.addWarehouse("bodega-1")

	_, err := buildUseCase(f).MaxBuildable(context.Background(), "fantasma", "bodega-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMaxBuildable_ProductoNoEsBundle(t *testing.T) {
	f := newFixture()
	f.addWarehouse("bodega-1")
	f.addProduct("tornillo", false)

	_, err := buildUseCase(f).MaxBuildable(context.Background(), "tornillo", "bodega-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMaxBuildable_BodegaInexistente(t *testing.T) {
	f := newFixture()
	f.addProduct("kit", true)

	_, err := buildUseCase(f).MaxBuildable(context.Background(), "kit", "bodega-x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMaxBuildable_CicloPropagadoDesdeElResolver(t *testing.T) {
	f := newFixture()
	f.addWarehouse("bodega-1")
	f.addProduct("a", true)
	f.addProduct("b", true)
	f.addComponent("a", "b", 1)
	f.addComponent("b", "a", 1)

	_, err := buildUseCase(f).MaxBuildable(context.Background(), "a", "bodega-1")
	assert.ErrorIs(t, err, domain.ErrCyclicBundle)
}

func TestMaxBuildable_BundleSinComponentes(t *testing.T) {
	f := newFixture()
	f.addWarehouse("bodega-1")
	f.addProduct("kit", true)

	n, err := buildUseCase(f).MaxBuildable(context.Background(), "kit", "bodega-1")
	require.NoError(t, err)
	assert.Zero(t, n)
}
